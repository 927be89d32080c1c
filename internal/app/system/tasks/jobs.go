// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratapapers/internal/app/system/certcheck"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.uber.org/zap"
)

// Warmer fills a cache ahead of the first request.
type Warmer interface {
	Warm(ctx context.Context) error
}

// HomeWarmJob keeps the homepage render cache populated. With a zero
// interval it runs once at startup.
func HomeWarmJob(w Warmer, interval time.Duration) Job {
	return Job{
		Name:     "home-cache-warm",
		Interval: interval,
		Run:      w.Warm,
	}
}

// StaleCounter counts inquiries left in a status since before a cutoff.
type StaleCounter interface {
	CountOlderThan(ctx context.Context, status models.SubmissionStatus, cutoff time.Time) (int64, error)
}

// StaleInquiryJob warns when new inquiries have waited longer than maxAge
// without being triaged.
func StaleInquiryJob(c StaleCounter, maxAge time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "stale-inquiries",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			n, err := c.CountOlderThan(ctx, models.SubmissionNew, time.Now().Add(-maxAge))
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Warn("inquiries waiting for triage",
					zap.Int64("count", n),
					zap.Duration("older_than", maxAge))
			}
			return nil
		},
	}
}

// CertChecker returns the certificate a site presents.
type CertChecker func(ctx context.Context, siteURL string) (certcheck.Info, error)

// CertExpiryJob checks the public site's certificate once a day and warns
// when it expires within warnWithin. Sites served over plain http are
// skipped.
func CertExpiryJob(check CertChecker, siteURL string, warnWithin time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "tls-expiry",
		Interval: 24 * time.Hour,
		Run: func(ctx context.Context) error {
			info, err := check(ctx, siteURL)
			if errors.Is(err, certcheck.ErrNoTLS) {
				return nil
			}
			if err != nil {
				return err
			}
			now := time.Now()
			if !info.Valid(now) || info.ExpiresAt.Sub(now) < warnWithin {
				logger.Warn("site certificate expires soon",
					zap.String("host", info.Host),
					zap.Time("expires_at", info.ExpiresAt),
					zap.Int("days_left", info.DaysLeft(now)))
			}
			return nil
		},
	}
}
