// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds EduPath's configuration.
//
// Values come from EDUPATH_* environment variables, config files or flags
// (loaded in LoadConfig). WAFFLE's CoreConfig covers the framework side:
// ports, TLS, log level, CORS. Everything specific to this service lives
// here and is passed to every lifecycle hook.
type AppConfig struct {
	// MongoDB
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session cookie issued by the external auth service
	SessionKey    string
	SessionName   string
	SessionDomain string
	SessionMaxAge time.Duration

	// Error reporting; blank DSN disables Sentry
	SentryDSN string
	SentryEnv string

	// Audit destinations: "all", "db", "log" or "off"
	AuditLogAdmin  string
	AuditLogPublic string

	// Audit events older than AuditRetention are purged every
	// AuditPurgeInterval; zero retention keeps them forever.
	AuditRetention     time.Duration
	AuditPurgeInterval time.Duration

	// Request handling
	MaxBodyBytes       int64
	DefaultPageLimit   int
	PublicCacheSeconds int

	// Public registration throttle per client IP
	RegisterRateLimit  int
	RegisterRateWindow time.Duration

	// TrustedProxies lists addresses or CIDR ranges whose forwarding
	// headers name the real client. Blank trusts nobody.
	TrustedProxies string

	// Store call budgets
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// AdminEmail is created or promoted to ADMIN on startup when set.
	AdminEmail string

	// Version is reported by /health.
	Version string
}
