// internal/app/system/notify/notify.go
//
// Package notify sends the emails that follow a contact form submission.
// Sends run in the background and never affect the HTTP response; their
// outcomes are only logged and counted.
package notify

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/stratapapers/internal/app/system/fallback"
	"github.com/dalemusser/stratapapers/internal/app/system/mailer"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.uber.org/zap"
)

// Email kinds, used as log fields and metric labels.
const (
	KindAdmin     = "admin"
	KindAutoReply = "auto_reply"
)

// Outcomes recorded per send.
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// DefaultSendTimeout bounds each background send.
const DefaultSendTimeout = 30 * time.Second

// settingsTimeout bounds the notification settings lookup.
const settingsTimeout = 5 * time.Second

// Sender delivers one email. *mailer.Mailer satisfies it.
type Sender interface {
	Enabled() bool
	Send(ctx context.Context, email mailer.Email) error
}

// SettingsSource loads the live contact form section. A nil section means
// none has been authored.
type SettingsSource interface {
	ContactForm(ctx context.Context) (*models.ContactFormSection, error)
}

// Recorder counts send outcomes. A nil Recorder is allowed.
type Recorder interface {
	RecordNotification(kind, outcome string)
}

// Config holds the static notifier settings.
type Config struct {
	SiteName    string
	AdminEmail  string        // used when the CMS section has none
	SendTimeout time.Duration // zero means DefaultSendTimeout
}

// Notifier dispatches the admin notification and the auto-reply.
type Notifier struct {
	sender   Sender
	settings SettingsSource
	rec      Recorder
	log      *zap.Logger

	siteName    string
	adminEmail  string
	sendTimeout time.Duration

	wg sync.WaitGroup
}

// New creates a Notifier. settings and rec may be nil.
func New(cfg Config, sender Sender, settings SettingsSource, rec Recorder, log *zap.Logger) *Notifier {
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	return &Notifier{
		sender:      sender,
		settings:    settings,
		rec:         rec,
		log:         log,
		siteName:    fallback.Text(cfg.SiteName, models.DefaultSiteName),
		adminEmail:  strings.TrimSpace(cfg.AdminEmail),
		sendTimeout: timeout,
	}
}

// Settings is the notification configuration after defaults are applied.
type Settings struct {
	AdminEmail       string
	AdminSubject     string
	AutoReplySubject string
	AutoReplyBody    string
}

// ResolveSettings overlays the CMS notification block on the defaults.
// configAdmin is the recipient used when the CMS names none.
func ResolveSettings(section *models.ContactFormSection, configAdmin string) Settings {
	var n models.ContactNotification
	if section != nil {
		n = section.Notification
	}
	return Settings{
		AdminEmail:       fallback.Text(n.AdminEmail, configAdmin),
		AdminSubject:     fallback.Text(n.AdminSubject, models.DefaultAdminSubject),
		AutoReplySubject: fallback.Text(n.AutoReplySubject, models.DefaultAutoReplySubject),
		AutoReplyBody:    fallback.Text(n.AutoReplyBody, models.DefaultAutoReplyBody),
	}
}

// Dispatch starts the admin email and the auto-reply for a stored submission
// in the background. The settings lookup runs there too, so Dispatch returns
// without touching the database. The two sends are independent.
func (n *Notifier) Dispatch(sub models.ContactSubmission) {
	if n == nil {
		return
	}
	if n.sender == nil || !n.sender.Enabled() {
		n.log.Info("mail transport not configured, skipping contact notifications",
			zap.String("submission_id", sub.ID.Hex()))
		n.record(KindAdmin, OutcomeSkipped)
		n.record(KindAutoReply, OutcomeSkipped)
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.dispatch(sub, ResolveSettings(n.loadSection(), n.adminEmail))
	}()
}

func (n *Notifier) dispatch(sub models.ContactSubmission, s Settings) {
	if s.AdminEmail == "" {
		n.log.Info("no admin recipient configured, skipping admin notification",
			zap.String("submission_id", sub.ID.Hex()))
		n.record(KindAdmin, OutcomeSkipped)
	} else {
		text, html := mailer.ContactAdminEmail(mailer.ContactAdminEmailData{
			SiteName:        n.siteName,
			SubmissionID:    sub.ID.Hex(),
			FullName:        sub.FullName,
			Country:         sub.Country,
			Email:           sub.Email,
			Phone:           sub.Phone,
			TutoringDetails: sub.TutoringDetails,
			HourlyBudget:    sub.HourlyBudget,
			SubmittedAt:     sub.SubmittedAt,
		})
		n.send(KindAdmin, mailer.Email{
			To:       s.AdminEmail,
			ReplyTo:  sub.Email,
			Subject:  mailer.ContactAdminSubject(s.AdminSubject, sub.FullName),
			TextBody: text,
			HTMLBody: html,
		})
	}

	text, html := mailer.ContactAutoReplyEmail(mailer.ContactAutoReplyEmailData{
		SiteName: n.siteName,
		FullName: sub.FullName,
		Body:     s.AutoReplyBody,
	})
	n.send(KindAutoReply, mailer.Email{
		To:       sub.Email,
		ReplyTo:  s.AdminEmail,
		Subject:  s.AutoReplySubject,
		TextBody: text,
		HTMLBody: html,
	})
}

// Wait blocks until every in-flight dispatch and send finishes or ctx ends.
func (n *Notifier) Wait(ctx context.Context) error {
	if n == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) loadSection() *models.ContactFormSection {
	if n.settings == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()

	section, err := n.settings.ContactForm(ctx)
	if err != nil {
		n.log.Warn("failed to load contact notification settings, using defaults", zap.Error(err))
		return nil
	}
	return section
}

func (n *Notifier) send(kind string, email mailer.Email) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.sendTimeout)
		defer cancel()

		if err := n.sender.Send(ctx, email); err != nil {
			n.log.Warn("contact notification failed",
				zap.String("kind", kind),
				zap.String("to", email.To),
				zap.String("subject", email.Subject),
				zap.Error(err))
			n.record(kind, OutcomeFailed)
			return
		}
		n.record(kind, OutcomeSent)
	}()
}

func (n *Notifier) record(kind, outcome string) {
	if n.rec != nil {
		n.rec.RecordNotification(kind, outcome)
	}
}
