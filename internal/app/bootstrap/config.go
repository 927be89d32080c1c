// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/stratapapers/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATAPAPERS"

// Development defaults for the signing keys. ValidateConfig rejects them in prod.
const (
	devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"
	devCSRFKey    = "dev-only-csrf-key-please-change-0123456789"
)

// minKeyLength is the shortest signing key accepted in prod.
const minKeyLength = 32

// appConfigKeys defines the configuration keys for this application.
// Each key is read from config files (mongo_uri), environment variables
// (STRATAPAPERS_MONGO_URI) and flags (--mongo_uri).
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "stratapapers", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: devSessionKey, Desc: "Flash cookie signing key (32+ chars in production)"},
	{Name: "session_name", Default: "stratapapers-flash", Desc: "Flash cookie name"},
	{Name: "csrf_key", Default: devCSRFKey, Desc: "CSRF token signing key (32+ chars in production)"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for CMS assets"},
	{Name: "storage_local_url", Default: "/files", Desc: "URL prefix for serving local files"},
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "uploads/", Desc: "S3 key prefix"},
	{Name: "storage_cf_url", Default: "", Desc: "CloudFront distribution URL"},
	{Name: "storage_cf_keypair_id", Default: "", Desc: "CloudFront key pair ID"},
	{Name: "storage_cf_key_path", Default: "", Desc: "Path to CloudFront private key file"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (empty disables notification emails)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@example.com", Desc: "From email address"},
	{Name: "mail_from_name", Default: "StrataPapers", Desc: "From display name"},
	{Name: "mail_timeout", Default: "30s", Desc: "Per-email send timeout"},
	{Name: "notify_admin_email", Default: "", Desc: "Inquiry recipient when the CMS names none"},

	{Name: "base_url", Default: "http://localhost:8080", Desc: "Public site origin for canonical links"},

	// Render cache
	{Name: "redis_addr", Default: "", Desc: "Redis address for the homepage cache (empty disables it)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},
	{Name: "home_cache_ttl", Default: "10m", Desc: "Homepage cache lifetime"},
	{Name: "home_warm_interval", Default: "5m", Desc: "Homepage cache re-warm interval (0 warms once)"},
	{Name: "revalidate_secret", Default: "", Desc: "Shared secret for POST /api/revalidate"},

	{Name: "metrics_enabled", Default: true, Desc: "Serve Prometheus metrics on /metrics"},
	{Name: "seed_demo", Default: false, Desc: "Load demo content into an empty store at startup"},
	{Name: "stale_inquiry_age", Default: "48h", Desc: "Warn about new inquiries older than this (0 disables)"},
	{Name: "cert_warn_within", Default: "336h", Desc: "Warn when the base_url certificate expires within this (0 disables)"},

	// Contact throttle
	{Name: "contact_rate_limit", Default: 5, Desc: "Inquiries accepted per client address per window (0 disables)"},
	{Name: "contact_rate_window", Default: "1h", Desc: "Contact throttle window"},
	{Name: "trust_proxy", Default: true, Desc: "Read the client address from X-Forwarded-For / X-Real-IP"},

	// Timeouts
	{Name: "query_timeout", Default: "5s", Desc: "Single content query timeout"},
	{Name: "page_timeout", Default: "10s", Desc: "Whole page assembly timeout"},
	{Name: "import_timeout", Default: "2m", Desc: "Content import timeout"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
// Precedence is flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:  appValues.String("session_key"),
		SessionName: appValues.String("session_name"),
		CSRFKey:     appValues.String("csrf_key"),

		StorageType:        appValues.String("storage_type"),
		StorageLocalPath:   appValues.String("storage_local_path"),
		StorageLocalURL:    appValues.String("storage_local_url"),
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageCFURL:       appValues.String("storage_cf_url"),
		StorageCFKeyPairID: appValues.String("storage_cf_keypair_id"),
		StorageCFKeyPath:   appValues.String("storage_cf_key_path"),

		MailSMTPHost:     appValues.String("mail_smtp_host"),
		MailSMTPPort:     appValues.Int("mail_smtp_port"),
		MailSMTPUser:     appValues.String("mail_smtp_user"),
		MailSMTPPass:     appValues.String("mail_smtp_pass"),
		MailFrom:         appValues.String("mail_from"),
		MailFromName:     appValues.String("mail_from_name"),
		MailTimeout:      appValues.Duration("mail_timeout", 30*time.Second),
		NotifyAdminEmail: appValues.String("notify_admin_email"),

		BaseURL: strings.TrimRight(appValues.String("base_url"), "/"),

		RedisAddr:        appValues.String("redis_addr"),
		RedisPassword:    appValues.String("redis_password"),
		RedisDB:          appValues.Int("redis_db"),
		HomeCacheTTL:     appValues.Duration("home_cache_ttl", 10*time.Minute),
		HomeWarmInterval: appValues.Duration("home_warm_interval", 5*time.Minute),
		RevalidateSecret: appValues.String("revalidate_secret"),

		MetricsEnabled:  appValues.Bool("metrics_enabled"),
		SeedDemo:        appValues.Bool("seed_demo"),
		StaleInquiryAge: appValues.Duration("stale_inquiry_age", 48*time.Hour),
		CertWarnWithin:  appValues.Duration("cert_warn_within", 14*24*time.Hour),

		ContactRateLimit:  appValues.Int("contact_rate_limit"),
		ContactRateWindow: appValues.Duration("contact_rate_window", time.Hour),
		TrustProxy:        appValues.Bool("trust_proxy"),

		QueryTimeout:  appValues.Duration("query_timeout", timeouts.DefaultQuery),
		PageTimeout:   appValues.Duration("page_timeout", timeouts.DefaultPage),
		ImportTimeout: appValues.Duration("import_timeout", timeouts.DefaultImport),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation. Every problem is
// reported, not just the first.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var problems []error

	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		problems = append(problems, fmt.Errorf("invalid MongoDB URI: %w", err))
	}

	switch appCfg.StorageType {
	case "", "local":
	case "s3":
		if appCfg.StorageS3Bucket == "" {
			problems = append(problems, errors.New("storage_s3_bucket is required when storage_type is s3"))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown storage type: %s", appCfg.StorageType))
	}

	if appCfg.cacheEnabled() && appCfg.HomeCacheTTL <= 0 {
		problems = append(problems, errors.New("home_cache_ttl must be positive when redis_addr is set"))
	}
	if appCfg.ContactRateLimit < 0 {
		problems = append(problems, errors.New("contact_rate_limit must not be negative"))
	}
	if appCfg.ContactRateLimit > 0 && appCfg.ContactRateWindow <= 0 {
		problems = append(problems, errors.New("contact_rate_window must be positive when contact_rate_limit is set"))
	}
	if appCfg.PageTimeout > 0 && appCfg.QueryTimeout > appCfg.PageTimeout {
		problems = append(problems, errors.New("query_timeout must not exceed page_timeout"))
	}

	if coreCfg != nil && coreCfg.Env == "prod" {
		problems = append(problems, checkKey("session_key", appCfg.SessionKey, devSessionKey)...)
		problems = append(problems, checkKey("csrf_key", appCfg.CSRFKey, devCSRFKey)...)
		if appCfg.RevalidateSecret == "" {
			logger.Warn("revalidate_secret is empty; anyone can invalidate the homepage cache")
		}
	}

	return errors.Join(problems...)
}

func checkKey(name, value, devDefault string) []error {
	var out []error
	if value == devDefault {
		out = append(out, fmt.Errorf("%s must be changed from the development default", name))
	}
	if len(value) < minKeyLength {
		out = append(out, fmt.Errorf("%s must be at least %d characters", name, minKeyLength))
	}
	return out
}
