// internal/domain/models/user.go
package models

import "time"

// User roles.
const (
	RoleUser    = "USER"
	RoleSupport = "SUPPORT"
	RoleAdmin   = "ADMIN"
)

// UserRoles is the closed set of roles.
var UserRoles = []string{RoleUser, RoleSupport, RoleAdmin}

// User is an account known to the site. Sign-in itself is handled by an
// external auth service; this record carries profile and role.
//
// UploadCount is computed from the uploads collection on read and never stored.
type User struct {
	Base `bson:",inline"`

	Name          string     `bson:"name" json:"name"`
	Email         string     `bson:"email" json:"email"`
	EmailCI       string     `bson:"email_ci" json:"-"`
	Role          string     `bson:"role" json:"role"`
	Image         string     `bson:"image,omitempty" json:"image,omitempty"`
	EmailVerified *time.Time `bson:"email_verified,omitempty" json:"emailVerified,omitempty"`

	UploadCount int64 `bson:"-" json:"uploadCount"`
}
