// internal/app/policy/accesspolicy/accesspolicy.go
package accesspolicy

import (
	"net/http"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/dalemusser/edupath/internal/domain/models"
)

var staff = []string{models.RoleAdmin, models.RoleSupport}
var admins = []string{models.RoleAdmin}

// Content is for marketing content: staff edit, only admins delete.
var Content = crud.Access{Read: staff, Write: staff, Delete: admins}

// Registrations lets staff work the registration queue; only admins delete.
var Registrations = crud.Access{Read: staff, Write: staff, Delete: admins}

// AdminOnly is for users and anything that changes who can do what.
var AdminOnly = crud.Access{Read: admins, Write: admins, Delete: admins}

// Uploads lets staff record and browse uploads; only admins delete.
var Uploads = crud.Access{Read: staff, Write: staff, Delete: admins}

// Staff returns the roles allowed into the admin API at all.
func Staff() []string { return append([]string(nil), staff...) }

// Admins returns the admin roles.
func Admins() []string { return append([]string(nil), admins...) }

// IsAdmin reports whether the request user is an admin.
func IsAdmin(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.HasRole(admins...)
}
