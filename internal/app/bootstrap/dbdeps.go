// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/store/gateway"
	"github.com/dalemusser/edupath/internal/app/system/ratelimit"
	"github.com/dalemusser/edupath/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the backend handles built in ConnectDB.
type DBDeps struct {
	Gateway  *gateway.Gateway
	Database *mongo.Database

	// AuditRetention is nil when audit_retention is zero.
	AuditRetention *workers.AuditRetention

	// RegisterLimiter throttles public registrations; nil when
	// register_rate_limit is zero.
	RegisterLimiter *ratelimit.Limiter
}

// Source is what stores and services read the database through.
func (d DBDeps) Source() content.Source {
	if d.Gateway != nil {
		return d.Gateway
	}
	return content.Static(d.Database)
}
