// internal/app/features/subjects/subjects.go
package subjects

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	errorsfeature "github.com/dalemusser/stratapapers/internal/app/features/errors"
	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/app/system/metrics"
	"github.com/dalemusser/stratapapers/internal/app/system/normalize"
	"github.com/dalemusser/stratapapers/internal/app/system/timeouts"
	"github.com/dalemusser/stratapapers/internal/app/system/viewdata"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler serves the subject pages.
type Handler struct {
	content  *contentstore.Store
	errPages *errorsfeature.Handler
	errLog   *errorsfeature.ErrorLogger
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewHandler creates a new subjects Handler. m may be nil.
func NewHandler(content *contentstore.Store, errPages *errorsfeature.Handler, errLog *errorsfeature.ErrorLogger, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		content:  content,
		errPages: errPages,
		errLog:   errLog,
		metrics:  m,
		logger:   logger,
	}
}

// SubjectVM is the view model for a subject page.
type SubjectVM struct {
	viewdata.BaseVM
	Page          SubjectPageVM
	Subject       *contentstore.SubjectView
	Topics        []contentstore.TopicView
	CatalogPapers []contentstore.PastPaperView
	ResetURL      string
}

// Routes returns a chi.Router with subject routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/{subjectID}", h.Show)
	r.Get("/{subjectID}/{examBoard}", h.Show)
	return r
}

// FilterFromRequest reads the year, session and type query parameters.
func FilterFromRequest(r *http.Request) Filter {
	q := r.URL.Query()
	return Filter{
		Year:    normalize.QueryParam(q.Get("year")),
		Session: normalize.QueryParam(q.Get("session")),
		Type:    normalize.QueryParam(q.Get("type")),
	}
}

// pageData is what one subject page render loads.
type pageData struct {
	page    *contentstore.SubjectPageView
	subject *contentstore.SubjectView
	topics  []contentstore.TopicView
	papers  []contentstore.PastPaperView
}

// Show renders /subjects/{subjectID} and /subjects/{subjectID}/{examBoard}.
// Segments that are not valid slugs are a 404 without a query.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")
	board := chi.URLParam(r, "examBoard")
	if !models.IsValidSlug(subjectID) || (board != "" && !models.IsValidSlug(board)) {
		h.errPages.NotFound(w, r)
		return
	}
	filter := FilterFromRequest(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Page(), h.logger, "subject page")
	defer cancel()

	data, err := h.load(ctx, subjectID, board, filter)
	if err != nil {
		h.errLog.Log(r, "failed to load subject page", err)
		h.errPages.InternalError(w, r)
		return
	}
	if data.page == nil && data.subject == nil {
		h.errPages.NotFound(w, r)
		return
	}

	base, err := viewdata.Load(ctx, w, r)
	if err != nil {
		h.errLog.Log(r, "failed to load site chrome", err)
		h.errPages.InternalError(w, r)
		return
	}

	vm := SubjectVM{
		BaseVM:        base,
		Page:          ResolveSubjectPage(data.page, subjectID, board, filter),
		Subject:       data.subject,
		Topics:        data.topics,
		CatalogPapers: data.papers,
		ResetURL:      r.URL.Path,
	}
	vm.Title = vm.Page.MetaTitle
	vm.MetaDescription = vm.Page.MetaDescription
	vm.OGImageURL = vm.Page.OGImageURL

	templates.Render(w, r, "subjects/show", vm)
}

// load runs the page lookup and the catalog lookups concurrently. Any failed
// read fails the whole load.
func (h *Handler) load(ctx context.Context, subjectID, board string, filter Filter) (pageData, error) {
	var data pageData
	start := time.Now()
	defer func() { h.metrics.ObserveQuery("subject_page", time.Since(start)) }()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := h.findPage(gctx, subjectID, board)
		if err != nil {
			return fmt.Errorf("subject page: %w", err)
		}
		data.page = page
		return nil
	})
	g.Go(func() error {
		subject, err := h.content.GetSubjectBySlug(gctx, subjectID)
		if err != nil {
			return fmt.Errorf("catalog subject: %w", err)
		}
		if subject == nil {
			return nil
		}
		topics, err := h.content.ListActiveTopics(gctx, subject.ID)
		if err != nil {
			return fmt.Errorf("topics: %w", err)
		}
		data.subject, data.topics = subject, topics
		return nil
	})
	g.Go(func() error {
		f := contentstore.PastPaperFilter{SubjectSlug: subjectID, ExamBoardSlug: board}
		if y, err := strconv.Atoi(filter.Year); err == nil {
			f.Year = y
		}
		papers, err := h.content.ListActivePastPapers(gctx, f)
		if err != nil {
			return fmt.Errorf("catalog past papers: %w", err)
		}
		data.papers = papers
		return nil
	})
	err := g.Wait()
	return data, err
}

// findPage prefers the exam board specific page and falls back to the
// generic one. The board lookup has to finish before the fallback runs.
func (h *Handler) findPage(ctx context.Context, subjectID, board string) (*contentstore.SubjectPageView, error) {
	if board != "" {
		page, err := h.content.GetSubjectPageByExamBoard(ctx, subjectID, board)
		if err != nil || page != nil {
			return page, err
		}
	}
	return h.content.GetSubjectPage(ctx, subjectID)
}
