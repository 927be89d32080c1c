// Package contactapi accepts tutoring inquiries from the homepage contact form.
//
// Endpoints:
//   - POST /api/contact - JSON submission used by the page script
//   - POST /contact     - form-encoded fallback; redirects to /#contact with a flash
//
// Every accepted inquiry is stored in contact_submissions with status "new"
// before any email is attempted. Email is best effort and never changes the
// response. With a Limiter attached, each client address may store only a
// limited number of inquiries per window; further attempts get 429.
package contactapi

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	errorsfeature "github.com/dalemusser/stratapapers/internal/app/features/errors"
	"github.com/dalemusser/stratapapers/internal/app/store/ratelimit"
	submissionstore "github.com/dalemusser/stratapapers/internal/app/store/submissions"
	"github.com/dalemusser/stratapapers/internal/app/system/flash"
	"github.com/dalemusser/stratapapers/internal/app/system/inputval"
	"github.com/dalemusser/stratapapers/internal/app/system/jsonutil"
	"github.com/dalemusser/stratapapers/internal/app/system/metrics"
	"github.com/dalemusser/stratapapers/internal/app/system/network"
	"github.com/dalemusser/stratapapers/internal/app/system/timeouts"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.uber.org/zap"
)

// Client-facing messages. Internal error detail is never echoed.
const (
	MsgRequired     = "All fields are required"
	MsgInvalidEmail = "Invalid email format"
	MsgFailed       = "Failed to submit form. Please try again."
	MsgTooMany      = "Too many submissions. Please try again later."
)

// Outcome labels recorded in metrics.
const (
	OutcomeAccepted  = "accepted"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
	OutcomeThrottled = "throttled"
)

// RedirectTarget is where the form fallback sends the browser.
const RedirectTarget = "/#contact"

// SubmissionStore persists inquiries. submissionstore.Store satisfies it.
type SubmissionStore interface {
	Create(ctx context.Context, in submissionstore.Input) (models.ContactSubmission, error)
}

// Dispatcher sends the notification emails for a stored inquiry without
// blocking. notify.Notifier satisfies it.
type Dispatcher interface {
	Dispatch(sub models.ContactSubmission)
}

// Limiter counts submissions per client address. ratelimit.Store satisfies it.
type Limiter interface {
	Hit(ctx context.Context, key string) (ratelimit.Decision, error)
}

// Handler handles contact submissions.
type Handler struct {
	store      SubmissionStore
	notifier   Dispatcher
	limiter    Limiter
	trustProxy bool
	flashes    *flash.Manager
	metrics    *metrics.Metrics
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a new contactapi Handler. notifier, flashes and m may be nil.
func NewHandler(store SubmissionStore, notifier Dispatcher, flashes *flash.Manager, m *metrics.Metrics, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		notifier: notifier,
		flashes:  flashes,
		metrics:  m,
		errLog:   errLog,
		logger:   logger,
	}
}

// WithLimiter throttles submissions per client address. trustProxy selects
// whether X-Forwarded-For and X-Real-IP identify the client.
func (h *Handler) WithLimiter(l Limiter, trustProxy bool) *Handler {
	h.limiter = l
	h.trustProxy = trustProxy
	return h
}

// Input is the submitted form. Every field is required after trimming.
type Input struct {
	FullName        string `json:"fullName" validate:"required" label:"Full name"`
	Country         string `json:"country" validate:"required" label:"Country"`
	Email           string `json:"email" validate:"required,basicemail" label:"Email"`
	Phone           string `json:"phone" validate:"required" label:"Phone"`
	TutoringDetails string `json:"tutoringDetails" validate:"required" label:"Tutoring details"`
	HourlyBudget    string `json:"hourlyBudget" validate:"required" label:"Hourly budget"`
}

func (in Input) trimmed() Input {
	return Input{
		FullName:        strings.TrimSpace(in.FullName),
		Country:         strings.TrimSpace(in.Country),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		TutoringDetails: strings.TrimSpace(in.TutoringDetails),
		HourlyBudget:    strings.TrimSpace(in.HourlyBudget),
	}
}

// Validate returns the client message for invalid input, or "" when the
// input is acceptable. Missing fields are reported before a bad email.
func (in Input) Validate() string {
	res := inputval.ValidateAll(in.trimmed())
	switch {
	case res.HasRule("required"):
		return MsgRequired
	case res.HasRule("basicemail"):
		return MsgInvalidEmail
	case res.HasErrors():
		return MsgRequired
	}
	return ""
}

// Response is the JSON body of a successful submission.
type Response struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
}

// Submit handles POST /api/contact.
//
// Request body:
//
//	{"fullName": "...", "country": "...", "email": "...",
//	 "phone": "...", "tutoringDetails": "...", "hourlyBudget": "..."}
//
// Response (200 OK):
//
//	{"success": true, "message": "...", "submissionId": "..."}
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := jsonutil.Decode(r, &in); err != nil {
		h.metrics.RecordSubmission(OutcomeInvalid)
		jsonutil.BadRequest(w, MsgRequired)
		return
	}

	sub, status, msg := h.process(w, r, in)
	if status != http.StatusOK {
		jsonutil.Error(w, status, msg)
		return
	}
	jsonutil.OK(w, Response{
		Success:      true,
		Message:      msg,
		SubmissionID: sub.ID.Hex(),
	})
}

// SubmitForm handles POST /contact for browsers without script.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, jsonutil.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.metrics.RecordSubmission(OutcomeInvalid)
		h.redirect(w, r, flash.Message{Kind: flash.KindError, Text: MsgRequired})
		return
	}

	in := Input{
		FullName:        r.PostFormValue("fullName"),
		Country:         r.PostFormValue("country"),
		Email:           r.PostFormValue("email"),
		Phone:           r.PostFormValue("phone"),
		TutoringDetails: r.PostFormValue("tutoringDetails"),
		HourlyBudget:    r.PostFormValue("hourlyBudget"),
	}
	_, status, msg := h.process(w, r, in)

	kind := flash.KindSuccess
	if status != http.StatusOK {
		kind = flash.KindError
	}
	h.redirect(w, r, flash.Message{Kind: kind, Text: msg})
}

// process validates, throttles, persists and dispatches notifications. It
// returns the stored record, the HTTP status and the message for the client.
func (h *Handler) process(w http.ResponseWriter, r *http.Request, in Input) (models.ContactSubmission, int, string) {
	if msg := in.Validate(); msg != "" {
		h.metrics.RecordSubmission(OutcomeInvalid)
		return models.ContactSubmission{}, http.StatusBadRequest, msg
	}
	in = in.trimmed()
	clientIP := network.ClientIP(r, h.trustProxy)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	if h.limiter != nil {
		d, err := h.limiter.Hit(ctx, clientIP)
		switch {
		case err != nil:
			// Fail open: a throttle outage must not drop inquiries.
			h.logger.Warn("contact rate limit check failed", zap.Error(err))
		case !d.Allowed:
			h.metrics.RecordSubmission(OutcomeThrottled)
			h.logger.Info("contact submission throttled",
				zap.String("client_ip", clientIP),
				zap.Int("count", d.Count))
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
			return models.ContactSubmission{}, http.StatusTooManyRequests, MsgTooMany
		}
	}

	sub, err := h.store.Create(ctx, submissionstore.Input{
		FullName:        in.FullName,
		Country:         in.Country,
		Email:           in.Email,
		Phone:           in.Phone,
		TutoringDetails: in.TutoringDetails,
		HourlyBudget:    in.HourlyBudget,
	})
	if err != nil {
		h.metrics.RecordSubmission(OutcomeFailed)
		h.errLog.Log(r, "failed to store contact submission", err)
		return models.ContactSubmission{}, http.StatusInternalServerError, MsgFailed
	}

	h.metrics.RecordSubmission(OutcomeAccepted)
	h.logger.Info("contact submission stored",
		zap.String("submission_id", sub.ID.Hex()),
		zap.String("country", sub.Country),
		zap.String("client_ip", clientIP),
	)

	if h.notifier != nil {
		h.notifier.Dispatch(sub)
	}
	return sub, http.StatusOK, models.DefaultContactSuccessMessage
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, msg flash.Message) {
	if h.flashes != nil {
		h.flashes.Add(w, r, msg)
	}
	http.Redirect(w, r, RedirectTarget, http.StatusSeeOther)
}
