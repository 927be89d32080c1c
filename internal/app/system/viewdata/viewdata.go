// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/app/system/fallback"
	"github.com/dalemusser/stratapapers/internal/app/system/flash"
	"github.com/dalemusser/stratapapers/internal/app/system/icons"
	"github.com/dalemusser/stratapapers/internal/app/system/timeouts"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// HeaderVM is the resolved site header.
type HeaderVM struct {
	SiteName string
	LogoURL  string
	LogoAlt  string
	NavLinks []models.NavLink
	CTA      models.Button
}

// SocialVM is a footer social link with its icon.
type SocialVM struct {
	Platform string
	URL      string
	Icon     template.HTML
}

// FooterVM is the resolved site footer.
type FooterVM struct {
	SiteName     string
	Description  string
	Columns      []models.FooterColumn
	SocialLinks  []SocialVM
	ContactEmail string
	ContactPhone string
	Copyright    string
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.New(w, r),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string
	Header   HeaderVM
	Footer   FooterVM

	// Page context
	Title           string
	MetaDescription string
	OGImageURL      string
	CanonicalURL    string
	CurrentPath     string

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)

	// One-shot notices from the previous request
	Flash []flash.Message
}

var (
	content *contentstore.Store
	flashes *flash.Manager
	baseURL string
	log     = zap.NewNop()
)

// Init wires the content store, flash manager and public base URL.
// Call this once at startup from bootstrap. Any argument may be nil/empty.
func Init(store *contentstore.Store, fm *flash.Manager, siteURL string, logger *zap.Logger) {
	content = store
	flashes = fm
	baseURL = strings.TrimRight(strings.TrimSpace(siteURL), "/")
	if logger != nil {
		log = logger
	}
}

// New creates a BaseVM with header and footer loaded from the CMS. A failed
// read falls back to the defaults, so error pages still render during an
// outage.
func New(w http.ResponseWriter, r *http.Request) BaseVM {
	header, footer, err := loadChrome(r.Context())
	if err != nil {
		log.Warn("failed to load site chrome, using defaults", zap.Error(err))
	}
	return FromSections(w, r, header, footer)
}

// Load is New for content pages: a failed header or footer read is returned
// and the page should not render.
func Load(ctx context.Context, w http.ResponseWriter, r *http.Request) (BaseVM, error) {
	header, footer, err := loadChrome(ctx)
	if err != nil {
		return BaseVM{}, err
	}
	return FromSections(w, r, header, footer), nil
}

func loadChrome(ctx context.Context) (*models.HeaderSection, *models.FooterSection, error) {
	if content == nil {
		return nil, nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Query())
	defer cancel()

	header, err := content.Header(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("header section: %w", err)
	}
	footer, err := content.Footer(ctx)
	if err != nil {
		return header, nil, fmt.Errorf("footer section: %w", err)
	}
	return header, footer, nil
}

// FromSections builds a BaseVM from already loaded sections. The homepage
// loads them in its own batch and uses this directly.
func FromSections(w http.ResponseWriter, r *http.Request, header *models.HeaderSection, footer *models.FooterSection) BaseVM {
	h := ResolveHeader(header, assetURL)
	return FromResolved(w, r, h, ResolveFooter(footer, h.SiteName, time.Now().Year()))
}

// FromResolved builds a BaseVM around an already resolved header and footer,
// adding the per-request fields (path, CSRF token, flash).
func FromResolved(w http.ResponseWriter, r *http.Request, header HeaderVM, footer FooterVM) BaseVM {
	vm := BaseVM{
		SiteName:    header.SiteName,
		Header:      header,
		Footer:      footer,
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
	if baseURL != "" {
		vm.CanonicalURL = baseURL + r.URL.Path
	}
	if flashes != nil && w != nil {
		vm.Flash = flashes.Pop(w, r)
	}
	return vm
}

// ResolveHeader applies header defaults. urlFor may be nil.
func ResolveHeader(doc *models.HeaderSection, urlFor func(*models.Asset) string) HeaderVM {
	var d models.HeaderSection
	if doc != nil {
		d = *doc
	}
	vm := HeaderVM{
		SiteName: fallback.Text(d.SiteName, models.DefaultSiteName),
		NavLinks: fallback.Slice(d.NavLinks, models.DefaultNavLinks),
		CTA:      ResolveButton(d.CTA, models.DefaultHeaderCTA),
	}
	if d.Logo.HasFile() && urlFor != nil {
		vm.LogoURL = urlFor(d.Logo)
		vm.LogoAlt = fallback.Text(d.Logo.Alt, vm.SiteName)
	}
	return vm
}

// ResolveFooter applies footer defaults and fills {year} in the copyright.
func ResolveFooter(doc *models.FooterSection, siteName string, year int) FooterVM {
	var d models.FooterSection
	if doc != nil {
		d = *doc
	}
	vm := FooterVM{
		SiteName:     siteName,
		Description:  fallback.Text(d.Description, models.DefaultFooterDescription),
		Columns:      fallback.Slice(d.Columns, models.DefaultFooterColumns),
		ContactEmail: strings.TrimSpace(d.ContactEmail),
		ContactPhone: strings.TrimSpace(d.ContactPhone),
		Copyright:    fallback.Year(fallback.Text(d.Copyright, models.DefaultCopyright), year),
	}
	for _, s := range d.SocialLinks {
		if strings.TrimSpace(s.URL) == "" {
			continue
		}
		vm.SocialLinks = append(vm.SocialLinks, SocialVM{
			Platform: s.Platform,
			URL:      s.URL,
			Icon:     icons.Lookup(s.Platform),
		})
	}
	return vm
}

// ResolveButton applies a default to each empty part of a CMS button.
func ResolveButton(b, def models.Button) models.Button {
	return models.Button{
		Text: fallback.Text(b.Text, def.Text),
		URL:  fallback.Text(b.URL, def.URL),
	}
}

// PillVM is a rendered pill: a link when URL is set, a label otherwise.
type PillVM struct {
	Text string
	URL  string
}

// Pills keeps at most models.MaxRecommendedPills non-empty pills.
func Pills(pills []models.Pill) []PillVM {
	out := make([]PillVM, 0, len(pills))
	for _, p := range pills {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		vm := PillVM{Text: p.Text}
		if p.IsLink() {
			vm.URL = p.URL
		}
		out = append(out, vm)
		if len(out) == models.MaxRecommendedPills {
			break
		}
	}
	return out
}

func assetURL(a *models.Asset) string {
	if content == nil {
		return ""
	}
	return content.AssetURL(a)
}

// AbsoluteURL prefixes a site-relative path with the configured base URL.
// Absolute URLs and an unset base URL return the input unchanged.
func AbsoluteURL(path string) string {
	if path == "" || baseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}
