// internal/app/features/examboards/examboards.go
package examboards

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratapapers/internal/app/features/errors"
	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/app/system/timeouts"
	"github.com/dalemusser/stratapapers/internal/app/system/viewdata"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the exam board pages.
type Handler struct {
	content  *contentstore.Store
	errPages *errorsfeature.Handler
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new exam boards Handler.
func NewHandler(content *contentstore.Store, errPages *errorsfeature.Handler, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		content:  content,
		errPages: errPages,
		errLog:   errLog,
		logger:   logger,
	}
}

// ExamBoardsVM is the view model for an exam board page.
type ExamBoardsVM struct {
	viewdata.BaseVM
	Page ExamBoardPageVM
}

// Routes returns a chi.Router with exam board routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/{subjectSlug}", h.Show)
	return r
}

// Show renders /exam-boards/{subjectSlug}. Without an authored page the
// catalog subject is required; with neither the response is a 404.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "subjectSlug")
	if !models.IsValidSlug(slug) {
		h.errPages.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Page(), h.logger, "exam board page")
	defer cancel()

	view, err := h.content.GetExamBoardPage(ctx, slug)
	if err != nil {
		h.errLog.Log(r, "failed to load exam board page", err)
		h.errPages.InternalError(w, r)
		return
	}

	subject, err := h.content.GetSubjectBySlug(ctx, slug)
	if err != nil {
		h.errLog.Log(r, "failed to load subject", err)
		h.errPages.InternalError(w, r)
		return
	}

	var page *models.ExamBoardPage
	var boards []contentstore.ExamBoardView
	switch {
	case view != nil:
		page, boards = &view.Page, view.ExamBoards
	case subject != nil:
		boards, err = h.content.ListActiveExamBoards(ctx)
		if err != nil {
			h.errLog.Log(r, "failed to list exam boards", err)
			h.errPages.InternalError(w, r)
			return
		}
	default:
		h.errPages.NotFound(w, r)
		return
	}

	var subjectTitle string
	if subject != nil {
		subjectTitle = subject.Title
	}

	base, err := viewdata.Load(ctx, w, r)
	if err != nil {
		h.errLog.Log(r, "failed to load site chrome", err)
		h.errPages.InternalError(w, r)
		return
	}

	vm := ExamBoardsVM{
		BaseVM: base,
		Page:   ResolveExamBoardPage(page, boards, slug, subjectTitle, h.content.AssetURL),
	}
	vm.Title = vm.Page.MetaTitle
	vm.MetaDescription = vm.Page.MetaDescription
	vm.OGImageURL = vm.Page.OGImageURL

	templates.Render(w, r, "examboards/show", vm)
}
