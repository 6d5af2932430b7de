// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/edupath/internal/app/store/audit"
	"github.com/dalemusser/edupath/internal/app/store/gateway"
	"github.com/dalemusser/edupath/internal/app/system/indexes"
	"github.com/dalemusser/edupath/internal/app/system/ratelimit"
	"github.com/dalemusser/edupath/internal/app/system/validators"
	"github.com/dalemusser/edupath/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB opens the shared MongoDB client. The gateway pings on connect,
// so a bad URI or unreachable server fails startup here.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	gw := gateway.New(gateway.Config{
		URI:         appCfg.MongoURI,
		Database:    appCfg.MongoDatabase,
		MaxPoolSize: appCfg.MongoMaxPoolSize,
		MinPoolSize: appCfg.MongoMinPoolSize,
	}, logger)

	db, err := gw.Handle(ctx)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect to MongoDB: %w", err)
	}
	return withBackground(DBDeps{Gateway: gw, Database: db}, appCfg, logger), nil
}

// withBackground attaches the long-lived helpers that Shutdown stops.
func withBackground(deps DBDeps, appCfg AppConfig, logger *zap.Logger) DBDeps {
	if appCfg.AuditRetention > 0 {
		deps.AuditRetention = workers.NewAuditRetention(audit.New(deps.Source()), logger,
			appCfg.AuditPurgeInterval, appCfg.AuditRetention)
	}
	if appCfg.RegisterRateLimit > 0 {
		deps.RegisterLimiter = ratelimit.New(appCfg.RegisterRateLimit, appCfg.RegisterRateWindow)
	}
	return deps
}

// EnsureSchema creates collections with their JSON Schema validators, then
// reconciles indexes. Both steps are idempotent.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := validators.EnsureAll(ctx, deps.Database); err != nil {
		logger.Error("ensure validators", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.Database, logger); err != nil {
		logger.Error("ensure indexes", zap.Error(err))
		return err
	}
	return nil
}
