// internal/app/features/examboards/resolve.go
package examboards

import (
	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/app/system/fallback"
	"github.com/dalemusser/stratapapers/internal/app/system/viewdata"
	"github.com/dalemusser/stratapapers/internal/domain/models"
)

// BoardCardVM is one exam board card. PapersURL leads to the subject page
// for that board.
type BoardCardVM struct {
	Name        string
	Slug        string
	Description string
	LogoURL     string
	WebsiteURL  string
	PapersURL   string
	Pills       []viewdata.PillVM
}

// ExamBoardPageVM is a fully resolved exam board page.
type ExamBoardPageVM struct {
	SubjectSlug     string
	Title           string
	Description     string
	BoardsTitle     string
	BoardsSubtitle  string
	VisitLabel      string
	ViewPapersLabel string
	Boards          []BoardCardVM
	EmptyMessage    string
	CTATitle        string
	CTADescription  string
	CTAButton       models.Button
	MetaTitle       string
	MetaDescription string
	OGImageURL      string
}

// ResolveExamBoardPage applies defaults to page (nil when not authored).
// boards is the live catalog; subjectTitle names the subject when the page
// has no title of its own and falls back to the title-cased slug.
func ResolveExamBoardPage(page *models.ExamBoardPage, boards []contentstore.ExamBoardView, subjectSlug, subjectTitle string, urlFor func(*models.Asset) string) ExamBoardPageVM {
	var p models.ExamBoardPage
	if page != nil {
		p = *page
	}
	name := fallback.Text(subjectTitle, fallback.TitleFromSlug(subjectSlug))

	vm := ExamBoardPageVM{
		SubjectSlug:     subjectSlug,
		Title:           fallback.Text(p.Hero.Title, name+" "+models.DefaultBoardsHeroSuffix),
		Description:     fallback.Text(p.Hero.Description, models.DefaultBoardsHeroDescription),
		BoardsTitle:     fallback.Text(p.Labels.BoardsTitle, models.DefaultBoardsTitle),
		BoardsSubtitle:  fallback.Text(p.Labels.BoardsSubtitle, models.DefaultBoardsSubtitle),
		VisitLabel:      fallback.Text(p.Labels.VisitWebsite, models.DefaultExamBoardsVisit),
		ViewPapersLabel: fallback.Text(p.Labels.ViewPapers, models.DefaultViewPapersLabel),
		Boards:          make([]BoardCardVM, 0, len(boards)),
		EmptyMessage:    models.DefaultExamBoardsEmpty,
		CTATitle:        fallback.Text(p.CTA.Title, models.DefaultCTATitle),
		CTADescription:  fallback.Text(p.CTA.Description, models.DefaultCTADescription),
		CTAButton:       viewdata.ResolveButton(p.CTA.Button, models.DefaultCTAButton),
	}
	vm.MetaTitle = fallback.Text(p.SEO.MetaTitle, vm.Title)
	vm.MetaDescription = fallback.Text(p.SEO.MetaDescription, vm.Description)
	if p.SEO.OGImage.HasFile() && urlFor != nil {
		vm.OGImageURL = viewdata.AbsoluteURL(urlFor(p.SEO.OGImage))
	}

	for _, b := range boards {
		vm.Boards = append(vm.Boards, BoardCardVM{
			Name:        b.Name,
			Slug:        b.Slug,
			Description: b.Description,
			LogoURL:     b.LogoURL,
			WebsiteURL:  b.WebsiteURL,
			PapersURL:   "/subjects/" + subjectSlug + "/" + b.Slug,
			Pills:       viewdata.Pills(b.Pills),
		})
	}
	return vm
}
