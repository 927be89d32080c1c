// internal/app/system/flash/flash.go
//
// Package flash carries one-shot messages across the redirect that follows
// the no-JavaScript contact form post. Messages live in a signed cookie.
package flash

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Message kinds.
const (
	KindSuccess = "success"
	KindError   = "error"
)

// DefaultName is the cookie name when none is configured.
const DefaultName = "stratapapers-flash"

// Message is one flash notice.
type Message struct {
	Kind string
	Text string
}

// Manager reads and writes flash messages.
type Manager struct {
	store  *sessions.CookieStore
	name   string
	logger *zap.Logger
}

// ConfigError is returned when the signing key is unusable.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// NewManager creates a Manager. The key must be at least 32 characters and
// not a placeholder when secure is set; in dev a weak key only logs a warning.
func NewManager(key, name string, secure bool, logger *zap.Logger) (*Manager, error) {
	if key == "" {
		return nil, &ConfigError{Message: "session key is empty; provide ≥32 random chars"}
	}

	isWeak := len(key) < 32 || isDefaultKey(key)
	if secure && isWeak {
		return nil, &ConfigError{
			Message: "session key is too weak for production; provide ≥32 random chars (not the default dev key)",
		}
	} else if isWeak {
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(key)),
			zap.Bool("is_default", isDefaultKey(key)))
	}

	if name == "" {
		name = DefaultName
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, name: name, logger: logger}, nil
}

// Name returns the cookie name.
func (m *Manager) Name() string {
	return m.name
}

// Add queues a message for the next request.
func (m *Manager) Add(w http.ResponseWriter, r *http.Request, msg Message) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		// A stale or tampered cookie yields a fresh session; overwrite it.
		m.logger.Debug("discarding unreadable flash cookie", zap.Error(err))
	}
	sess.AddFlash(msg.Kind + "|" + msg.Text)
	if err := sess.Save(r, w); err != nil {
		m.logger.Warn("failed to save flash message", zap.Error(err))
	}
}

// Pop returns and clears the pending messages.
func (m *Manager) Pop(w http.ResponseWriter, r *http.Request) []Message {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		m.logger.Warn("failed to clear flash messages", zap.Error(err))
	}

	out := make([]Message, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		kind, text, found := strings.Cut(s, "|")
		if !found {
			kind, text = KindSuccess, s
		}
		out = append(out, Message{Kind: kind, Text: text})
	}
	return out
}

// isDefaultKey checks if the key appears to be a default/placeholder value.
func isDefaultKey(key string) bool {
	lower := strings.ToLower(key)
	patterns := []string{
		"dev-only",
		"change-me",
		"placeholder",
		"default",
		"example",
		"insecure",
		"test-key",
		"secret123",
		"password",
	}
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
