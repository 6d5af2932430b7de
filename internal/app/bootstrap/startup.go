// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/features/users"
	"github.com/dalemusser/edupath/internal/app/system/reporting"
	"github.com/dalemusser/edupath/internal/app/system/timeouts"
	"github.com/dalemusser/edupath/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Startup runs once after the database is ready and before the handler is
// built: it applies the store timeouts, turns on Sentry when a DSN is set,
// makes sure the configured admin account exists, then starts the audit
// retention worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	if _, err := reporting.Init(reporting.Config{
		DSN:         appCfg.SentryDSN,
		Environment: appCfg.SentryEnv,
		Release:     appCfg.Version,
	}, logger); err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}

	if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
		return err
	}

	if deps.AuditRetention != nil {
		deps.AuditRetention.Start()
	}
	return nil
}

// ensureAdmin creates a user with the ADMIN role for email, or promotes the
// existing user with that email. A blank email does nothing.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	svc := users.NewService(deps.Source(), logger)
	role := models.RoleAdmin

	u, err := svc.GetBy(ctx, bson.M{"email_ci": text.Fold(email)})
	switch {
	case crud.IsNotFound(err):
		name, _, _ := strings.Cut(email, "@")
		u, err = svc.Create(ctx, users.Input{Name: &name, Email: &email, Role: &role})
		if err != nil {
			return fmt.Errorf("create admin %s: %w", email, err)
		}
		logger.Info("created admin user", zap.String("email", email), zap.String("id", u.ID.Hex()))
		return nil
	case err != nil:
		return fmt.Errorf("look up admin %s: %w", email, err)
	case u.Role == models.RoleAdmin:
		return nil
	}

	if _, err := svc.Update(ctx, u.ID.Hex(), users.Input{Role: &role}); err != nil {
		return fmt.Errorf("promote admin %s: %w", email, err)
	}
	logger.Info("promoted user to admin", zap.String("email", email), zap.String("previous_role", u.Role))
	return nil
}
