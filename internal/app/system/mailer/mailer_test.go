package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"host and from", Config{Host: "smtp.example.com", Port: 587, From: "noreply@example.com"}, true},
		{"missing host", Config{Port: 587, From: "noreply@example.com"}, false},
		{"missing from", Config{Host: "smtp.example.com", Port: 587}, false},
		{"whitespace host", Config{Host: "  ", From: "noreply@example.com"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.cfg, zap.NewNop())
			if got := m.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}

	var nilMailer *Mailer
	if nilMailer.Enabled() {
		t.Error("nil mailer should not be enabled")
	}
}

func TestSend_NotConfigured(t *testing.T) {
	m := New(Config{}, zap.NewNop())
	err := m.Send(context.Background(), Email{To: "a@b.c", Subject: "hi", TextBody: "x"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Send() error = %v, want ErrNotConfigured", err)
	}
}

func TestSend_ContextCanceled(t *testing.T) {
	m := New(Config{Host: "192.0.2.1", Port: 25, From: "noreply@example.com"}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Send(ctx, Email{To: "a@b.c", Subject: "hi", TextBody: "x"}); err == nil {
		t.Fatal("Send() with canceled context should fail")
	}
}

func TestBuildMessage_Headers(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", Port: 587, From: "noreply@example.com", FromName: "StrataPapers"}, zap.NewNop())
	now := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)

	msg := string(m.buildMessage(Email{
		To:       "admin@example.com",
		ReplyTo:  "ada@example.com",
		Subject:  "New Contact Form Submission",
		TextBody: "plain",
	}, now))

	for _, want := range []string{
		"From: StrataPapers <noreply@example.com>\r\n",
		"To: admin@example.com\r\n",
		"Reply-To: ada@example.com\r\n",
		"Date: Wed, 04 Mar 2026 10:30:00 +0000\r\n",
		"@example.com>\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: text/plain; charset=UTF-8\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q\n%s", want, msg)
		}
	}
	if !strings.Contains(msg, "Message-ID: <") {
		t.Error("message missing Message-ID")
	}
	if !strings.HasSuffix(msg, "plain") {
		t.Error("text body should follow the headers")
	}
}

func TestBuildMessage_NoReplyTo(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", From: "noreply@example.com"}, zap.NewNop())
	msg := string(m.buildMessage(Email{To: "a@b.c", Subject: "x", TextBody: "y"}, time.Now()))
	if strings.Contains(msg, "Reply-To:") {
		t.Error("Reply-To should be omitted when empty")
	}
	if !strings.Contains(msg, "From: noreply@example.com\r\n") {
		t.Error("From should be the bare address without a display name")
	}
}

func TestBuildMessage_HeaderInjection(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", From: "noreply@example.com"}, zap.NewNop())
	msg := string(m.buildMessage(Email{
		To:       "admin@example.com",
		ReplyTo:  "ada@example.com\r\nBcc: victim@example.com",
		Subject:  "hi",
		TextBody: "y",
	}, time.Now()))

	if strings.Contains(msg, "\r\nBcc:") {
		t.Errorf("CR/LF in a header value must not start a new header:\n%s", msg)
	}
}

func TestBuildMessage_Multipart(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", From: "noreply@example.com"}, zap.NewNop())
	msg := string(m.buildMessage(Email{
		To:       "a@b.c",
		Subject:  "x",
		TextBody: "text part",
		HTMLBody: "<p>html part</p>",
	}, time.Now()))

	if !strings.Contains(msg, "multipart/alternative; boundary=") {
		t.Fatal("expected multipart content type")
	}
	ti := strings.Index(msg, "text part")
	hi := strings.Index(msg, "<p>html part</p>")
	if ti < 0 || hi < 0 || ti > hi {
		t.Error("text part should precede html part")
	}
	if !strings.Contains(msg, "--\r\n") {
		t.Error("missing closing boundary")
	}
}

func TestRandomBoundary_Unique(t *testing.T) {
	a, b := randomBoundary(), randomBoundary()
	if a == b {
		t.Error("boundaries should differ")
	}
	if !strings.HasPrefix(a, "----=_Part_") {
		t.Errorf("boundary = %q", a)
	}
}

func TestContactAdminEmail(t *testing.T) {
	text, html := ContactAdminEmail(ContactAdminEmailData{
		SiteName:        "StrataPapers",
		SubmissionID:    "64b7f0c2a1b2c3d4e5f60718",
		FullName:        "Ada <Lovelace>",
		Country:         "UK",
		Email:           "ada@example.com",
		Phone:           "+44 20 7946 0000",
		TutoringDetails: "A Level maths\nPaper 3 help",
		HourlyBudget:    "£40",
		SubmittedAt:     time.Date(2026, 1, 2, 9, 5, 0, 0, time.UTC),
	})

	for _, want := range []string{"Name: Ada <Lovelace>", "Country: UK", "Hourly budget: £40", "Submitted: 2 Jan 2026 09:05 UTC", "Reference: 64b7f0c2a1b2c3d4e5f60718", "A Level maths\nPaper 3 help"} {
		if !strings.Contains(text, want) {
			t.Errorf("text body missing %q", want)
		}
	}
	if strings.Contains(html, "<Lovelace>") {
		t.Error("html body should escape submitter input")
	}
	if !strings.Contains(html, "Ada &lt;Lovelace&gt;") {
		t.Error("html body should contain escaped name")
	}
	if !strings.Contains(html, "A Level maths<br>Paper 3 help") {
		t.Error("details lines should be joined with <br>")
	}
}

func TestContactAutoReplyEmail(t *testing.T) {
	text, html := ContactAutoReplyEmail(ContactAutoReplyEmailData{
		SiteName: "StrataPapers",
		FullName: "Ada",
		Body:     `<p>Thanks!</p><script>alert(1)</script><p>We reply within <strong>24 hours</strong>.</p>`,
	})

	if !strings.HasPrefix(text, "Hi Ada,\n\n") {
		t.Errorf("text greeting = %q", text)
	}
	if strings.Contains(text, "<p>") || strings.Contains(text, "alert") {
		t.Errorf("text body should be stripped: %q", text)
	}
	if !strings.Contains(text, "We reply within 24 hours.") {
		t.Errorf("text body = %q", text)
	}
	if strings.Contains(html, "<script>") {
		t.Error("html body should be sanitized")
	}
	if !strings.Contains(html, "<strong>24 hours</strong>") {
		t.Error("html body should keep safe formatting")
	}
}

func TestContactAutoReplyEmail_PlainBody(t *testing.T) {
	_, html := ContactAutoReplyEmail(ContactAutoReplyEmailData{SiteName: "S", Body: "Thanks\nSee you soon"})
	if !strings.Contains(html, "<p>Thanks<br>See you soon</p>") {
		t.Errorf("plain body should be converted to html: %s", html)
	}
	if !strings.Contains(html, "Hello,") {
		t.Error("missing fallback greeting")
	}
}

func TestContactAdminSubject(t *testing.T) {
	if got := ContactAdminSubject("New inquiry", " Ada "); got != "New inquiry from Ada" {
		t.Errorf("got %q", got)
	}
	if got := ContactAdminSubject("New inquiry", ""); got != "New inquiry" {
		t.Errorf("got %q", got)
	}
}
