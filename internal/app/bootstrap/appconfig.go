// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// Values come from config files, STRATAPAPERS_* environment variables or
// command-line flags (see LoadConfig). Framework settings such as ports, TLS,
// log level, CORS and DB connect timeouts live in WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Flash cookie used by the contact form fallback
	SessionKey  string // Signing key for the flash cookie (must be strong in production)
	SessionName string // Flash cookie name

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// File storage backs CMS asset URLs (logos, hero images, avatars)
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3Prefix    string
	StorageCFURL       string
	StorageCFKeyPairID string
	StorageCFKeyPath   string

	// Email/SMTP configuration for inquiry notifications
	MailSMTPHost string // Empty disables sending; inquiries are still stored
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string
	MailTimeout  time.Duration // Per-send limit

	// NotifyAdminEmail receives new inquiries when the CMS contact form
	// section names no recipient.
	NotifyAdminEmail string

	// BaseURL is the public site origin, used for canonical and og:url links.
	BaseURL string

	// Redis backs the homepage render cache. An empty address disables it.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HomeCacheTTL     time.Duration // Lifetime of a cached homepage batch
	HomeWarmInterval time.Duration // Re-warm period for the homepage cache; zero warms once at startup

	// RevalidateSecret guards POST /api/revalidate. Empty accepts every caller.
	RevalidateSecret string

	MetricsEnabled bool // Serve /metrics and record counters

	// SeedDemo loads the embedded demo content into an empty store at startup.
	SeedDemo bool

	// StaleInquiryAge is how long a "new" inquiry may wait before the
	// reminder job warns about it. Zero disables the job.
	StaleInquiryAge time.Duration

	// CertWarnWithin is how close to expiry the https certificate of BaseURL
	// may get before the daily check warns. Zero disables the check.
	CertWarnWithin time.Duration

	// Contact throttle: at most ContactRateLimit stored inquiries per client
	// address per ContactRateWindow. Zero limit disables it.
	ContactRateLimit  int
	ContactRateWindow time.Duration
	TrustProxy        bool // Take the client address from X-Forwarded-For / X-Real-IP

	// Timeouts
	QueryTimeout  time.Duration
	PageTimeout   time.Duration
	ImportTimeout time.Duration
}

// cacheEnabled reports whether a Redis render cache is configured.
func (c AppConfig) cacheEnabled() bool {
	return c.RedisAddr != ""
}
