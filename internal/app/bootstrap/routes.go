// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	contactapifeature "github.com/dalemusser/stratapapers/internal/app/features/contactapi"
	errorsfeature "github.com/dalemusser/stratapapers/internal/app/features/errors"
	examboardsfeature "github.com/dalemusser/stratapapers/internal/app/features/examboards"
	healthfeature "github.com/dalemusser/stratapapers/internal/app/features/health"
	homefeature "github.com/dalemusser/stratapapers/internal/app/features/home"
	revalidatefeature "github.com/dalemusser/stratapapers/internal/app/features/revalidate"
	subjectsfeature "github.com/dalemusser/stratapapers/internal/app/features/subjects"
	appresources "github.com/dalemusser/stratapapers/internal/app/resources"
	"github.com/dalemusser/stratapapers/internal/app/system/apicors"
	"github.com/dalemusser/stratapapers/internal/app/system/flash"
	"github.com/dalemusser/stratapapers/internal/app/system/rendercache"
	"github.com/dalemusser/stratapapers/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// csrfExempt lists paths that no session cookie authorizes. The revalidate
// webhook carries a shared secret. The JSON contact API is open to any
// client; it is throttled per address, and without CORS headers a browser
// will not send it cross-origin JSON.
var csrfExempt = map[string]bool{
	"/api/revalidate": true,
	"/api/contact":    true,
}

// BuildHandler constructs the root HTTP handler for the site.
//
// Public pages: /, /subjects/{subjectID}[/{examBoard}], /exam-boards/{subjectSlug}.
// Inquiries: POST /api/contact (JSON) and POST /contact (form fallback).
// Operations: /api/revalidate, /health, /ready, /live and /metrics.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	s := site
	if s == nil {
		s = newServices(appCfg, deps, logger)
		site = s
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	flashes, err := flash.NewManager(appCfg.SessionKey, appCfg.SessionName, secure, logger)
	if err != nil {
		logger.Error("flash manager init failed", zap.Error(err))
		return nil, err
	}

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	viewdata.Init(s.content, flashes, appCfg.BaseURL, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	errPages := errorsfeature.NewHandler()

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(s.metrics.Middleware)
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))
	r.Use(csrfMiddleware(appCfg, secure, logger))

	// ─────────────────────────────────────────────────────────────────────────────
	// Operations
	// ─────────────────────────────────────────────────────────────────────────────

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	if deps.Redis != nil {
		healthHandler.WithOptional("redis", rendercache.NewRedisBackend(deps.Redis))
	}
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	var invalidator revalidatefeature.Invalidator
	if s.cache.Enabled() {
		invalidator = s.cache
	}
	revalidateHandler := revalidatefeature.NewHandler(invalidator, appCfg.RevalidateSecret, logger)
	r.Route("/api/revalidate", func(sr chi.Router) {
		sr.Use(apicors.Middleware())
		sr.Mount("/", revalidatefeature.Routes(revalidateHandler))
	})

	// ─────────────────────────────────────────────────────────────────────────────
	// Static assets
	// ─────────────────────────────────────────────────────────────────────────────

	r.Handle("/static/*", fileserver.Handler("/static", "static"))
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// CMS uploads (local storage only)
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// ─────────────────────────────────────────────────────────────────────────────
	// Public pages and inquiries
	// ─────────────────────────────────────────────────────────────────────────────

	r.Mount("/", homefeature.Routes(s.home))

	subjectsHandler := subjectsfeature.NewHandler(s.content, errPages, errLog, s.metrics, logger)
	r.Mount("/subjects", subjectsfeature.Routes(subjectsHandler))

	examBoardsHandler := examboardsfeature.NewHandler(s.content, errPages, errLog, logger)
	r.Mount("/exam-boards", examboardsfeature.Routes(examBoardsHandler))

	contactHandler := contactapifeature.NewHandler(s.submissions, s.notifier, flashes, s.metrics, errLog, logger)
	if s.limiter != nil {
		contactHandler.WithLimiter(s.limiter, appCfg.TrustProxy)
	}
	r.Mount("/api/contact", contactapifeature.APIRoutes(contactHandler))
	r.Mount("/contact", contactapifeature.FormRoutes(contactHandler))

	// 404 catch-all for unmatched routes
	r.NotFound(errPages.NotFound)

	return r, nil
}

// csrfMiddleware protects every unsafe request except the exempt paths.
func csrfMiddleware(appCfg AppConfig, secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("stratapapers_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins.
	if !secure {
		opts = append(opts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	protect := csrf.Protect([]byte(appCfg.CSRFKey), opts...)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if csrfExempt[req.URL.Path] {
				next.ServeHTTP(w, req)
				return
			}
			protected.ServeHTTP(w, req)
		})
	}
}
