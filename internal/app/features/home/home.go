// internal/app/features/home/home.go
package home

import (
	"context"
	"fmt"
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/stratapapers/internal/app/features/errors"
	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/app/system/fallback"
	"github.com/dalemusser/stratapapers/internal/app/system/metrics"
	"github.com/dalemusser/stratapapers/internal/app/system/rendercache"
	"github.com/dalemusser/stratapapers/internal/app/system/timeouts"
	"github.com/dalemusser/stratapapers/internal/app/system/viewdata"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CacheKey is the render cache key of the homepage content.
var CacheKey = rendercache.Key("home")

// Handler provides home page handlers.
type Handler struct {
	content  *contentstore.Store
	cache    *rendercache.Cache
	errPages *errorsfeature.Handler
	errLog   *errorsfeature.ErrorLogger
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewHandler creates a new home Handler. cache and m may be nil.
func NewHandler(content *contentstore.Store, cache *rendercache.Cache, errPages *errorsfeature.Handler, errLog *errorsfeature.ErrorLogger, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		content:  content,
		cache:    cache,
		errPages: errPages,
		errLog:   errLog,
		metrics:  m,
		logger:   logger,
	}
}

// Content is everything on the homepage that does not vary per request.
// It is what the render cache stores.
type Content struct {
	Header          viewdata.HeaderVM
	Footer          viewdata.FooterVM
	MetaDescription string
	OGImageURL      string
	Hero            HeroVM
	Subjects        SubjectsVM
	ExamBoards      ExamBoardsVM
	WhyChoose       WhyChooseVM
	FAQ             FAQVM
	Testimonials    TestimonialsVM
	Contact         ContactVM
}

// HomeVM is the view model for the home page. The layout reads the header,
// footer and meta fields from BaseVM; the sections live under Content.
type HomeVM struct {
	viewdata.BaseVM
	Content Content
}

// NewHomeVM wraps cached or freshly loaded content with the per-request
// fields.
func NewHomeVM(w http.ResponseWriter, r *http.Request, c Content) HomeVM {
	vm := HomeVM{
		BaseVM:  viewdata.FromResolved(w, r, c.Header, c.Footer),
		Content: c,
	}
	vm.MetaDescription = c.MetaDescription
	vm.OGImageURL = c.OGImageURL
	return vm
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the home page. A failed section read is a 500; nothing is
// cached then.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var c Content
	if !h.cache.Get(r.Context(), CacheKey, &c) {
		var err error
		if c, err = h.Load(r.Context()); err != nil {
			h.errLog.Log(r, "failed to load homepage", err)
			h.errPages.InternalError(w, r)
			return
		}
		h.cache.Set(r.Context(), CacheKey, c)
	}

	templates.Render(w, r, "home/index", NewHomeVM(w, r, c))
}

// Warm loads the homepage content and stores it in the render cache.
// Nothing is cached when a read fails.
func (h *Handler) Warm(ctx context.Context) error {
	if !h.cache.Enabled() {
		return nil
	}
	c, err := h.Load(ctx)
	if err != nil {
		return err
	}
	h.cache.Set(ctx, CacheKey, c)
	return nil
}

// sections is one homepage batch. Each field is nil when the section is
// not authored.
type sections struct {
	header       *models.HeaderSection
	hero         *models.HeroSection
	footer       *models.FooterSection
	faq          *models.FAQSection
	testimonials *models.TestimonialsSection
	contact      *models.ContactFormSection
	whyChoose    *models.WhyChooseSection
	subjectsHead *models.SubjectsSection
	boardsHead   *models.ExamBoardsSection
	subjects     []contentstore.SubjectView
	boards       []contentstore.ExamBoardView
}

// Load fetches every homepage section concurrently and resolves them.
// Absent sections resolve to defaults; the first failed read cancels the
// rest of the batch and is returned.
func (h *Handler) Load(ctx context.Context) (Content, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Page(), h.logger, "home batch")
	defer cancel()

	var s sections
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	task := func(name string, fn func(context.Context) error) {
		g.Go(func() error {
			if err := fn(gctx); err != nil {
				return fmt.Errorf("homepage section %s: %w", name, err)
			}
			return nil
		})
	}

	task(models.SectionHeader, func(ctx context.Context) (err error) {
		s.header, err = h.content.Header(ctx)
		return err
	})
	task(models.SectionHero, func(ctx context.Context) (err error) {
		s.hero, err = h.content.Hero(ctx)
		return err
	})
	task(models.SectionFooter, func(ctx context.Context) (err error) {
		s.footer, err = h.content.Footer(ctx)
		return err
	})
	task(models.SectionFAQ, func(ctx context.Context) (err error) {
		s.faq, err = h.content.FAQ(ctx)
		return err
	})
	task(models.SectionTestimonials, func(ctx context.Context) (err error) {
		s.testimonials, err = h.content.Testimonials(ctx)
		return err
	})
	task(models.SectionContactForm, func(ctx context.Context) (err error) {
		s.contact, err = h.content.ContactForm(ctx)
		return err
	})
	task(models.SectionWhyChoose, func(ctx context.Context) (err error) {
		s.whyChoose, err = h.content.WhyChoose(ctx)
		return err
	})
	task("subjects", func(ctx context.Context) error {
		head, err := h.content.SubjectsSection(ctx)
		if err != nil {
			return err
		}
		list, err := h.content.ListActiveSubjects(ctx)
		if err != nil {
			return err
		}
		s.subjectsHead, s.subjects = head, list
		return nil
	})
	task("exam_boards", func(ctx context.Context) error {
		head, err := h.content.ExamBoardsSection(ctx)
		if err != nil {
			return err
		}
		list, err := h.content.ListActiveExamBoards(ctx)
		if err != nil {
			return err
		}
		s.boardsHead, s.boards = head, list
		return nil
	})
	err := g.Wait()
	h.metrics.ObserveQuery("home_batch", time.Since(start))
	if err != nil {
		return Content{}, err
	}
	return s.resolve(h.content.AssetURL, time.Now().Year()), nil
}

func (s sections) resolve(urlFor AssetURLFunc, year int) Content {
	header := viewdata.ResolveHeader(s.header, urlFor)
	hero := ResolveHero(s.hero, urlFor)
	var description string
	if s.hero != nil {
		description = s.hero.Description
	}
	return Content{
		Header:          header,
		Footer:          viewdata.ResolveFooter(s.footer, header.SiteName, year),
		MetaDescription: fallback.Text(description, models.DefaultSiteDescription),
		OGImageURL:      viewdata.AbsoluteURL(hero.ImageURL),
		Hero:            hero,
		Subjects:        ResolveSubjects(s.subjectsHead, s.subjects),
		ExamBoards:      ResolveExamBoards(s.boardsHead, s.boards),
		WhyChoose:       ResolveWhyChoose(s.whyChoose),
		FAQ:             ResolveFAQ(s.faq),
		Testimonials:    ResolveTestimonials(s.testimonials, urlFor),
		Contact:         ResolveContact(s.contact),
	}
}
