// internal/domain/models/office.go
package models

// Office is a branch location. City is unique by convention only.
type Office struct {
	Base `bson:",inline"`

	Name     string `bson:"name,omitempty" json:"name"`
	City     string `bson:"city" json:"city"`
	Address  string `bson:"address,omitempty" json:"address"`
	Phone    string `bson:"phone" json:"phone"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	MapEmbed string `bson:"map_embed,omitempty" json:"mapEmbed,omitempty"`
	Hours    string `bson:"hours,omitempty" json:"hours"`
	Active   bool   `bson:"active" json:"active"`
	Order    int    `bson:"order" json:"order"`
}
