// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dalemusser/edupath/internal/app/system/auditlog"
	"github.com/dalemusser/edupath/internal/app/system/paging"
	"github.com/dalemusser/edupath/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// minSessionKeyLen is the shortest session key accepted in production.
const minSessionKeyLen = 32

// appConfigKeys defines the configuration keys for EduPath.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: EDUPATH_MONGO_URI, EDUPATH_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "edupath", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key shared with the auth service"},
	{Name: "session_name", Default: "edupath-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime"},

	{Name: "sentry_dsn", Default: "", Desc: "Sentry DSN; blank disables error reporting"},
	{Name: "sentry_env", Default: "", Desc: "Sentry environment (defaults to the WAFFLE env)"},

	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_public", Default: "all", Desc: "Public event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_retention", Default: "0s", Desc: "Delete audit events older than this (0 keeps them forever)"},
	{Name: "audit_purge_interval", Default: "1h", Desc: "How often the audit retention purge runs"},

	{Name: "max_body_bytes", Default: 1 << 20, Desc: "Maximum JSON request body size in bytes"},
	{Name: "default_page_limit", Default: paging.DefaultLimit, Desc: "Page size when a list request sends no limit"},
	{Name: "public_cache_seconds", Default: 60, Desc: "Cache-Control max-age for public GET responses (0 disables)"},

	{Name: "register_rate_limit", Default: 5, Desc: "Public registrations allowed per client IP per window (0 disables)"},
	{Name: "register_rate_window", Default: "10m", Desc: "Window for register_rate_limit"},
	{Name: "trusted_proxies", Default: "", Desc: "Comma-separated proxy IPs or CIDRs allowed to set X-Forwarded-For (blank trusts none)"},

	{Name: "timeout_short", Default: "5s", Desc: "Budget for single-document store calls"},
	{Name: "timeout_medium", Default: "10s", Desc: "Budget for list and count store calls"},
	{Name: "timeout_long", Default: "30s", Desc: "Budget for multi-document writes"},

	{Name: "admin_email", Default: "", Desc: "Email of a user to create or promote to ADMIN on startup"},
	{Name: "version", Default: "dev", Desc: "Build version reported by /health"},
}

// LoadConfig loads WAFFLE core config and EduPath's app config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// EDUPATH_* environment variables and flags with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "EDUPATH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 30*24*time.Hour),

		SentryDSN: appValues.String("sentry_dsn"),
		SentryEnv: appValues.String("sentry_env"),

		AuditLogAdmin:  appValues.String("audit_log_admin"),
		AuditLogPublic: appValues.String("audit_log_public"),

		AuditRetention:     appValues.Duration("audit_retention", 0),
		AuditPurgeInterval: appValues.Duration("audit_purge_interval", time.Hour),

		MaxBodyBytes:       int64(appValues.Int("max_body_bytes")),
		DefaultPageLimit:   appValues.Int("default_page_limit"),
		PublicCacheSeconds: appValues.Int("public_cache_seconds"),

		RegisterRateLimit:  appValues.Int("register_rate_limit"),
		RegisterRateWindow: appValues.Duration("register_rate_window", 10*time.Minute),
		TrustedProxies:     appValues.String("trusted_proxies"),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutLong:   appValues.Duration("timeout_long", 30*time.Second),

		AdminEmail: appValues.String("admin_email"),
		Version:    appValues.String("version"),
	}
	if appCfg.SentryEnv == "" {
		appCfg.SentryEnv = coreCfg.Env
	}

	return coreCfg, appCfg, nil
}

var auditSettings = []string{auditlog.All, auditlog.DB, auditlog.Log, auditlog.Off}

// ValidateConfig rejects configs that would fail later or run unsafely.
// The MongoDB URI is checked before any connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateApp(coreCfg.Env, appCfg)
}

func validateApp(env string, appCfg AppConfig) error {
	var errs []error
	if appCfg.MongoDatabase == "" {
		errs = append(errs, errors.New("mongo_database must be set"))
	}
	if env == "prod" && len(appCfg.SessionKey) < minSessionKeyLen {
		errs = append(errs, fmt.Errorf("session_key must be at least %d characters in prod", minSessionKeyLen))
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		errs = append(errs, errors.New("mongo_min_pool_size must not exceed mongo_max_pool_size"))
	}
	if appCfg.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("max_body_bytes must be positive"))
	}
	if appCfg.DefaultPageLimit < 1 || appCfg.DefaultPageLimit > paging.MaxLimit {
		errs = append(errs, fmt.Errorf("default_page_limit must be between 1 and %d", paging.MaxLimit))
	}
	if appCfg.PublicCacheSeconds < 0 {
		errs = append(errs, errors.New("public_cache_seconds must not be negative"))
	}
	if appCfg.RegisterRateLimit < 0 {
		errs = append(errs, errors.New("register_rate_limit must not be negative"))
	}
	if _, err := ratelimit.ParseProxies(appCfg.TrustedProxies); err != nil {
		errs = append(errs, fmt.Errorf("trusted_proxies: %w", err))
	}
	if appCfg.AuditRetention < 0 {
		errs = append(errs, errors.New("audit_retention must not be negative"))
	}
	if appCfg.AuditRetention > 0 && appCfg.AuditPurgeInterval <= 0 {
		errs = append(errs, errors.New("audit_purge_interval must be positive when audit_retention is set"))
	}
	if !slices.Contains(auditSettings, appCfg.AuditLogAdmin) {
		errs = append(errs, fmt.Errorf("audit_log_admin must be one of %v, got %q", auditSettings, appCfg.AuditLogAdmin))
	}
	if !slices.Contains(auditSettings, appCfg.AuditLogPublic) {
		errs = append(errs, fmt.Errorf("audit_log_public must be one of %v, got %q", auditSettings, appCfg.AuditLogPublic))
	}
	return errors.Join(errs...)
}
