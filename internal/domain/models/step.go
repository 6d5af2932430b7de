// internal/domain/models/step.go
package models

// Step is one stage of the "study abroad in N steps" walkthrough.
type Step struct {
	Base `bson:",inline"`

	Title       string   `bson:"title" json:"title"`
	Slug        string   `bson:"slug" json:"slug"`
	Description string   `bson:"description" json:"description"`
	Icon        MediaRef `bson:"icon" json:"icon"`
	StepNumber  int      `bson:"step_number" json:"stepNumber"`
	Active      bool     `bson:"active" json:"active"`
	Order       int      `bson:"order" json:"order"`
}
