// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"strings"

	errorsfeature "github.com/dalemusser/stratapapers/internal/app/features/errors"
	homefeature "github.com/dalemusser/stratapapers/internal/app/features/home"
	"github.com/dalemusser/stratapapers/internal/app/resources"
	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/app/store/ratelimit"
	submissionstore "github.com/dalemusser/stratapapers/internal/app/store/submissions"
	"github.com/dalemusser/stratapapers/internal/app/system/certcheck"
	"github.com/dalemusser/stratapapers/internal/app/system/metrics"
	"github.com/dalemusser/stratapapers/internal/app/system/notify"
	"github.com/dalemusser/stratapapers/internal/app/system/rendercache"
	"github.com/dalemusser/stratapapers/internal/app/system/tasks"
	"github.com/dalemusser/stratapapers/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// services are the long-lived objects shared by BuildHandler, the
// background jobs and Shutdown.
type services struct {
	metrics     *metrics.Metrics
	content     *contentstore.Store
	submissions *submissionstore.Store
	limiter     *ratelimit.Store
	cache       *rendercache.Cache
	notifier    *notify.Notifier
	home        *homefeature.Handler
	runner      *tasks.Runner
}

// site holds the services built by Startup.
var site *services

// Startup runs once after DB connections and schema setup and before the
// HTTP handler is built. It registers shared templates, applies configured
// timeouts, builds the shared services and starts the background jobs.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{
		Query:  appCfg.QueryTimeout,
		Page:   appCfg.PageTimeout,
		Import: appCfg.ImportTimeout,
	})

	site = newServices(appCfg, deps, logger)
	startTaskRunner(site, appCfg, logger)

	return nil
}

func newServices(appCfg AppConfig, deps DBDeps, logger *zap.Logger) *services {
	s := &services{}

	if appCfg.MetricsEnabled {
		s.metrics = metrics.New()
	}

	s.content = contentstore.New(deps.MongoDatabase, deps.FileStorage)
	s.submissions = submissionstore.New(deps.MongoDatabase)
	if appCfg.ContactRateLimit > 0 {
		s.limiter = ratelimit.New(deps.MongoDatabase, appCfg.ContactRateLimit, appCfg.ContactRateWindow)
	}

	if deps.Redis != nil {
		s.cache = rendercache.New(rendercache.NewRedisBackend(deps.Redis), appCfg.HomeCacheTTL, s.metrics, logger)
	}

	s.notifier = notify.New(notify.Config{
		AdminEmail:  appCfg.NotifyAdminEmail,
		SendTimeout: appCfg.MailTimeout,
	}, deps.Mailer, s.content, s.metrics, logger)

	s.home = homefeature.NewHandler(s.content, s.cache, errorsfeature.NewHandler(), errorsfeature.NewErrorLogger(logger), s.metrics, logger)
	return s
}

// startTaskRunner registers the site's background jobs and starts them.
func startTaskRunner(s *services, appCfg AppConfig, logger *zap.Logger) {
	s.runner = tasks.New(logger, s.metrics)
	for _, job := range siteJobs(s, appCfg, logger) {
		s.runner.Register(job)
	}
	s.runner.Start()
}

// siteJobs returns the background jobs the configuration enables.
func siteJobs(s *services, appCfg AppConfig, logger *zap.Logger) []tasks.Job {
	var jobs []tasks.Job
	if s.cache.Enabled() {
		jobs = append(jobs, tasks.HomeWarmJob(s.home, appCfg.HomeWarmInterval))
	}
	if appCfg.StaleInquiryAge > 0 {
		jobs = append(jobs, tasks.StaleInquiryJob(s.submissions, appCfg.StaleInquiryAge, logger))
	}
	if appCfg.CertWarnWithin > 0 && strings.HasPrefix(appCfg.BaseURL, "https://") {
		jobs = append(jobs, tasks.CertExpiryJob(checkCert, appCfg.BaseURL, appCfg.CertWarnWithin, logger))
	}
	return jobs
}

func checkCert(ctx context.Context, siteURL string) (certcheck.Info, error) {
	return certcheck.Check(ctx, siteURL, nil)
}
