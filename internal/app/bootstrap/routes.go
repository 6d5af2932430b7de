// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/edupath/internal/app/crud"
	auditlogfeature "github.com/dalemusser/edupath/internal/app/features/auditlog"
	awardsfeature "github.com/dalemusser/edupath/internal/app/features/awards"
	blogsfeature "github.com/dalemusser/edupath/internal/app/features/blogs"
	errorsfeature "github.com/dalemusser/edupath/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/edupath/internal/app/features/events"
	featuresfeature "github.com/dalemusser/edupath/internal/app/features/features"
	healthfeature "github.com/dalemusser/edupath/internal/app/features/health"
	officesfeature "github.com/dalemusser/edupath/internal/app/features/offices"
	partnersfeature "github.com/dalemusser/edupath/internal/app/features/partners"
	publicfeature "github.com/dalemusser/edupath/internal/app/features/public"
	registrationsfeature "github.com/dalemusser/edupath/internal/app/features/registrations"
	settingsfeature "github.com/dalemusser/edupath/internal/app/features/settings"
	slidesfeature "github.com/dalemusser/edupath/internal/app/features/slides"
	stepsfeature "github.com/dalemusser/edupath/internal/app/features/steps"
	uploadsfeature "github.com/dalemusser/edupath/internal/app/features/uploads"
	usersfeature "github.com/dalemusser/edupath/internal/app/features/users"
	"github.com/dalemusser/edupath/internal/app/store/audit"
	settingsstore "github.com/dalemusser/edupath/internal/app/store/settings"
	"github.com/dalemusser/edupath/internal/app/system/auditlog"
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/dalemusser/edupath/internal/app/system/ratelimit"
	"github.com/dalemusser/edupath/internal/app/system/reporting"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler.
//
// WAFFLE calls this after configuration, DB connections, schema setup and
// Startup have completed. The router carries:
//   - /health for load balancers
//   - /api/public for the marketing site (no session)
//   - /api/<resource> admin CRUD, gated by the session role
//   - /api/settings and /api/audit-events
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// The cookie is issued by the auth service; this app only reads it.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain,
		appCfg.SessionMaxAge, secure, coreCfg.Env == "dev", logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	src := deps.Source()
	auditStore := audit.New(src)
	auditLog := auditlog.New(auditStore, logger, auditlog.Config{
		Admin:  appCfg.AuditLogAdmin,
		Public: appCfg.AuditLogPublic,
	})
	crudDeps := crud.Deps{
		AuditLog: auditLog,
		Log:      logger,
		Options: crud.Options{
			MaxBodyBytes:     appCfg.MaxBodyBytes,
			DefaultPageLimit: appCfg.DefaultPageLimit,
		},
	}

	blogs := blogsfeature.NewService(src, logger)
	partners := partnersfeature.NewService(src, logger)
	awards := awardsfeature.NewService(src, logger)
	steps := stepsfeature.NewService(src, logger)
	features := featuresfeature.NewService(src, logger)
	offices := officesfeature.NewService(src, logger)
	slides := slidesfeature.NewService(src, logger)
	events := eventsfeature.NewService(src, logger)
	registrations := registrationsfeature.NewService(src, logger)
	users := usersfeature.NewService(src, logger)
	uploads := uploadsfeature.NewService(src, logger)
	settings := settingsstore.New(src)

	proxies, err := ratelimit.ParseProxies(appCfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(proxies.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(reporting.Middleware())

	// Loads the SessionUser into context when a valid cookie is present.
	r.Use(sessionMgr.LoadSessionUser)

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	healthHandler := healthfeature.NewHandler(deps.Gateway, appCfg.Version, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Public read API
	publicHandler := publicfeature.NewHandler(publicfeature.Services{
		Blogs:         blogs,
		Events:        events,
		Registrations: registrations,
		Partners:      partners,
		Awards:        awards,
		Steps:         steps,
		Features:      features,
		Offices:       offices,
		Slides:        slides,
	}, settings, auditLog, deps.RegisterLimiter, logger, publicfeature.Options{
		CacheSeconds:     appCfg.PublicCacheSeconds,
		MaxBodyBytes:     appCfg.MaxBodyBytes,
		DefaultPageLimit: appCfg.DefaultPageLimit,
	})
	r.Mount("/api/public", publicfeature.Routes(publicHandler))

	// Admin CRUD
	r.Mount("/api/blogs", blogsfeature.Routes(blogsfeature.NewHandler(blogs, crudDeps), sessionMgr))
	r.Mount("/api/partners", partnersfeature.Routes(partnersfeature.NewHandler(partners, crudDeps), sessionMgr))
	r.Mount("/api/awards", awardsfeature.Routes(awardsfeature.NewHandler(awards, crudDeps), sessionMgr))
	r.Mount("/api/study-abroad-steps", stepsfeature.Routes(stepsfeature.NewHandler(steps, crudDeps), sessionMgr))
	r.Mount("/api/why-choose-us-features", featuresfeature.Routes(featuresfeature.NewHandler(features, crudDeps), sessionMgr))
	r.Mount("/api/offices", officesfeature.Routes(officesfeature.NewHandler(offices, crudDeps), sessionMgr))
	r.Mount("/api/slides", slidesfeature.Routes(slidesfeature.NewHandler(slides, crudDeps), sessionMgr))
	r.Mount("/api/events", eventsfeature.Routes(eventsfeature.NewHandler(events, crudDeps), sessionMgr))
	r.Mount("/api/event-registrations", registrationsfeature.Routes(registrationsfeature.NewHandler(registrations, crudDeps), sessionMgr))
	r.Mount("/api/users", usersfeature.Routes(usersfeature.NewHandler(users, crudDeps), sessionMgr))
	r.Mount("/api/uploads", uploadsfeature.Routes(uploadsfeature.NewHandler(uploads, crudDeps), sessionMgr))

	settingsHandler := settingsfeature.NewHandler(settings, auditLog, logger, appCfg.MaxBodyBytes)
	r.Mount("/api/settings", settingsfeature.Routes(settingsHandler, sessionMgr))

	auditHandler := auditlogfeature.NewHandler(auditStore, logger)
	r.Mount("/api/audit-events", auditlogfeature.Routes(auditHandler, sessionMgr))

	return r, nil
}
