package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/stratapapers/internal/app/system/mailer"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSender struct {
	enabled bool
	fail    map[string]error // by recipient
	block   chan struct{}    // when set, Send waits on it

	mu   sync.Mutex
	sent []mailer.Email
}

func (f *fakeSender) Enabled() bool { return f.enabled }

func (f *fakeSender) Send(ctx context.Context, email mailer.Email) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := f.fail[email.To]; err != nil {
		return err
	}
	f.mu.Lock()
	f.sent = append(f.sent, email)
	f.mu.Unlock()
	return nil
}

func (f *fakeSender) byRecipient() map[string]mailer.Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]mailer.Email, len(f.sent))
	for _, e := range f.sent {
		out[e.To] = e
	}
	return out
}

type fakeSettings struct {
	section *models.ContactFormSection
	err     error
	block   chan struct{} // when set, ContactForm waits on it
}

func (f fakeSettings) ContactForm(ctx context.Context) (*models.ContactFormSection, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.section, f.err
}

type fakeRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *fakeRecorder) RecordNotification(kind, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[kind+"/"+outcome]++
}

func (r *fakeRecorder) get(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[key]
}

func submission() models.ContactSubmission {
	return models.ContactSubmission{
		ID:              primitive.NewObjectID(),
		FullName:        "Ada Lovelace",
		Country:         "UK",
		Email:           "ada@example.com",
		Phone:           "+44 20 7946 0000",
		TutoringDetails: "A Level maths",
		HourlyBudget:    "£40",
		SubmittedAt:     time.Now().UTC(),
		Status:          models.SubmissionNew,
	}
}

func waitFor(t *testing.T, n *Notifier) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := n.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}

func TestDispatch_SendsBothEmails(t *testing.T) {
	sender := &fakeSender{enabled: true}
	rec := &fakeRecorder{}
	n := New(Config{SiteName: "StrataPapers", AdminEmail: "ops@example.com"}, sender, fakeSettings{}, rec, zap.NewNop())

	n.Dispatch(submission())
	waitFor(t, n)

	got := sender.byRecipient()
	admin, ok := got["ops@example.com"]
	if !ok {
		t.Fatal("admin email not sent")
	}
	if admin.ReplyTo != "ada@example.com" {
		t.Errorf("admin Reply-To = %q, want submitter", admin.ReplyTo)
	}
	if admin.Subject != models.DefaultAdminSubject+" from Ada Lovelace" {
		t.Errorf("admin subject = %q", admin.Subject)
	}

	reply, ok := got["ada@example.com"]
	if !ok {
		t.Fatal("auto-reply not sent")
	}
	if reply.Subject != models.DefaultAutoReplySubject {
		t.Errorf("auto-reply subject = %q", reply.Subject)
	}
	if rec.get(KindAdmin+"/"+OutcomeSent) != 1 || rec.get(KindAutoReply+"/"+OutcomeSent) != 1 {
		t.Errorf("recorded = %v", rec.counts)
	}
}

func TestDispatch_CMSSettingsOverrideDefaults(t *testing.T) {
	sender := &fakeSender{enabled: true}
	section := &models.ContactFormSection{Notification: models.ContactNotification{
		AdminEmail:       "tutors@example.com",
		AdminSubject:     "Tutoring lead",
		AutoReplySubject: "We got your message",
		AutoReplyBody:    "<p>Talk soon.</p>",
	}}
	n := New(Config{AdminEmail: "ops@example.com"}, sender, fakeSettings{section: section}, nil, zap.NewNop())

	n.Dispatch(submission())
	waitFor(t, n)

	got := sender.byRecipient()
	if _, ok := got["ops@example.com"]; ok {
		t.Error("config admin address should be overridden by the CMS")
	}
	if got["tutors@example.com"].Subject != "Tutoring lead from Ada Lovelace" {
		t.Errorf("admin subject = %q", got["tutors@example.com"].Subject)
	}
	reply := got["ada@example.com"]
	if reply.Subject != "We got your message" {
		t.Errorf("auto-reply subject = %q", reply.Subject)
	}
	if reply.TextBody == "" || reply.HTMLBody == "" {
		t.Error("auto-reply should carry both bodies")
	}
}

func TestDispatch_SettingsErrorFallsBack(t *testing.T) {
	sender := &fakeSender{enabled: true}
	n := New(Config{AdminEmail: "ops@example.com"}, sender, fakeSettings{err: errors.New("db down")}, nil, zap.NewNop())

	n.Dispatch(submission())
	waitFor(t, n)

	if len(sender.byRecipient()) != 2 {
		t.Errorf("sent = %d, want 2", len(sender.byRecipient()))
	}
}

func TestDispatch_TransportNotConfigured(t *testing.T) {
	sender := &fakeSender{enabled: false}
	rec := &fakeRecorder{}
	n := New(Config{AdminEmail: "ops@example.com"}, sender, fakeSettings{}, rec, zap.NewNop())

	n.Dispatch(submission())
	waitFor(t, n)

	if len(sender.byRecipient()) != 0 {
		t.Error("nothing should be sent without a transport")
	}
	if rec.get(KindAdmin+"/"+OutcomeSkipped) != 1 || rec.get(KindAutoReply+"/"+OutcomeSkipped) != 1 {
		t.Errorf("recorded = %v", rec.counts)
	}
}

func TestDispatch_NoAdminRecipient(t *testing.T) {
	sender := &fakeSender{enabled: true}
	rec := &fakeRecorder{}
	n := New(Config{}, sender, nil, rec, zap.NewNop())

	n.Dispatch(submission())
	waitFor(t, n)

	got := sender.byRecipient()
	if len(got) != 1 {
		t.Fatalf("sent = %v, want only the auto-reply", got)
	}
	if _, ok := got["ada@example.com"]; !ok {
		t.Error("auto-reply should still be sent")
	}
	if rec.get(KindAdmin+"/"+OutcomeSkipped) != 1 {
		t.Errorf("recorded = %v", rec.counts)
	}
}

func TestDispatch_FailuresAreIndependent(t *testing.T) {
	sender := &fakeSender{enabled: true, fail: map[string]error{"ops@example.com": errors.New("550 rejected")}}
	rec := &fakeRecorder{}
	n := New(Config{AdminEmail: "ops@example.com"}, sender, fakeSettings{}, rec, zap.NewNop())

	n.Dispatch(submission())
	waitFor(t, n)

	if _, ok := sender.byRecipient()["ada@example.com"]; !ok {
		t.Error("auto-reply should be sent even when the admin email fails")
	}
	if rec.get(KindAdmin+"/"+OutcomeFailed) != 1 {
		t.Errorf("recorded = %v", rec.counts)
	}
	if rec.get(KindAutoReply+"/"+OutcomeSent) != 1 {
		t.Errorf("recorded = %v", rec.counts)
	}
}

func TestDispatch_ReturnsBeforeSendsComplete(t *testing.T) {
	sender := &fakeSender{enabled: true, block: make(chan struct{})}
	n := New(Config{AdminEmail: "ops@example.com"}, sender, fakeSettings{}, nil, zap.NewNop())

	done := make(chan struct{})
	go func() {
		n.Dispatch(submission())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked on the sends")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := n.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() with blocked sends = %v, want deadline exceeded", err)
	}

	close(sender.block)
	waitFor(t, n)
	if len(sender.byRecipient()) != 2 {
		t.Errorf("sent = %d, want 2", len(sender.byRecipient()))
	}
}

func TestDispatch_ReturnsBeforeSettingsLoad(t *testing.T) {
	sender := &fakeSender{enabled: true}
	settings := fakeSettings{block: make(chan struct{})}
	n := New(Config{AdminEmail: "ops@example.com"}, sender, settings, nil, zap.NewNop())

	done := make(chan struct{})
	go func() {
		n.Dispatch(submission())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked on the settings lookup")
	}
	if len(sender.byRecipient()) != 0 {
		t.Error("nothing should be sent before the settings load")
	}

	close(settings.block)
	waitFor(t, n)
	if len(sender.byRecipient()) != 2 {
		t.Errorf("sent = %d, want 2", len(sender.byRecipient()))
	}
}

func TestDispatch_SendTimeout(t *testing.T) {
	sender := &fakeSender{enabled: true, block: make(chan struct{})}
	rec := &fakeRecorder{}
	n := New(Config{AdminEmail: "ops@example.com", SendTimeout: 10 * time.Millisecond}, sender, fakeSettings{}, rec, zap.NewNop())

	n.Dispatch(submission())
	waitFor(t, n)

	if rec.get(KindAdmin+"/"+OutcomeFailed) != 1 || rec.get(KindAutoReply+"/"+OutcomeFailed) != 1 {
		t.Errorf("recorded = %v", rec.counts)
	}
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	n.Dispatch(submission())
	if err := n.Wait(context.Background()); err != nil {
		t.Errorf("Wait() = %v", err)
	}
}

func TestResolveSettings(t *testing.T) {
	s := ResolveSettings(nil, "ops@example.com")
	want := Settings{
		AdminEmail:       "ops@example.com",
		AdminSubject:     models.DefaultAdminSubject,
		AutoReplySubject: models.DefaultAutoReplySubject,
		AutoReplyBody:    models.DefaultAutoReplyBody,
	}
	if s != want {
		t.Errorf("ResolveSettings(nil) = %+v, want %+v", s, want)
	}

	s = ResolveSettings(&models.ContactFormSection{Notification: models.ContactNotification{AdminSubject: "  "}}, "")
	if s.AdminSubject != models.DefaultAdminSubject {
		t.Errorf("blank subject should fall back, got %q", s.AdminSubject)
	}
}
