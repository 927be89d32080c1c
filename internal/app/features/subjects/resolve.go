// internal/app/features/subjects/resolve.go
package subjects

import (
	"sort"
	"strings"

	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/app/system/fallback"
	"github.com/dalemusser/stratapapers/internal/app/system/viewdata"
	"github.com/dalemusser/stratapapers/internal/domain/models"
)

// Filter is the paper table filter state, read from the query string.
// Empty fields match everything.
type Filter struct {
	Year    string
	Session string
	Type    string
}

// Active reports whether any filter is set.
func (f Filter) Active() bool {
	return f.Year != "" || f.Session != "" || f.Type != ""
}

func (f Filter) match(p contentstore.PaperView) bool {
	if f.Year != "" && strings.TrimSpace(p.Year) != f.Year {
		return false
	}
	if f.Session != "" && !strings.EqualFold(strings.TrimSpace(p.Session), f.Session) {
		return false
	}
	if f.Type != "" && !strings.EqualFold(strings.TrimSpace(p.PaperType), f.Type) {
		return false
	}
	return true
}

// PaperRowVM is one row of the paper table. An uploaded file takes
// precedence over the explicit URL for each link.
type PaperRowVM struct {
	Title              string
	Year               string
	Session            string
	Curriculum         string
	PaperType          string
	QuestionPaperURL   string
	MarkSchemeURL      string
	QuestionPaperLabel string
	MarkSchemeLabel    string
}

// DatabaseVM is the filterable paper table.
type DatabaseVM struct {
	Title        string
	ShowingText  string
	YearLabel    string
	SessionLabel string
	TypeLabel    string
	AllLabel     string
	ResetLabel   string
	EmptyText    string
	PaperLabel   string
	SchemeLabel  string
	Years        []string
	Sessions     []string
	Types        []string
	Filter       Filter
	Rows         []PaperRowVM
	Total        int
}

// QuickStatsVM is the statistics box. Values cover every paper on the
// page, not just the filtered rows.
type QuickStatsVM struct {
	Title             string
	TotalPapersLabel  string
	TotalPapers       int
	YearsCoveredLabel string
	YearsCovered      int
	LatestYearLabel   string
	LatestYear        string
}

// TutorVM is one tutor card.
type TutorVM struct {
	Name       string
	Subject    string
	Experience string
	Rating     string
	PhotoURL   string
}

// SidebarVM is the right-hand column.
type SidebarVM struct {
	QuickStats       QuickStatsVM
	PrimaryButton    models.Button
	SecondaryButton  models.Button
	PromoTitle       string
	PromoDescription string
	PromoButton      models.Button
	Tutors           []TutorVM
}

// SubjectPageVM is a fully resolved subject page, minus the per-request
// base fields.
type SubjectPageVM struct {
	SubjectID       string
	BoardSegment    string
	Title           string
	Description     string
	ResourcesBadge  string
	ExamBoardBadge  string
	MetaTitle       string
	MetaDescription string
	OGImageURL      string
	Database        DatabaseVM
	Sidebar         SidebarVM
}

// ResolveSubjectPage applies defaults to a subject page document (nil when
// none exists) and filters its papers. On an exam board route whose page
// has no board-specific text, the title and board badge come from the
// title-cased URL segments.
func ResolveSubjectPage(doc *contentstore.SubjectPageView, subjectID, boardSegment string, filter Filter) SubjectPageVM {
	var page models.SubjectPage
	var papers []contentstore.PaperView
	var tutors []contentstore.TutorView
	var ogImage string
	boardName := ""
	if doc != nil {
		page = doc.Page
		papers = doc.Papers
		tutors = doc.Tutors
		ogImage = doc.OGImageURL
		if doc.ExamBoard != nil {
			boardName = doc.ExamBoard.Name
		}
	}
	if boardName == "" && boardSegment != "" {
		boardName = fallback.TitleFromSlug(boardSegment)
	}

	subjectName := fallback.TitleFromSlug(subjectID)
	defaultTitle := subjectName + " " + models.DefaultSubjectTitleSuffix
	if boardName != "" {
		defaultTitle = boardName + " " + defaultTitle
	}

	vm := SubjectPageVM{
		SubjectID:      subjectID,
		BoardSegment:   boardSegment,
		Title:          fallback.Text(page.Header.Title, defaultTitle),
		Description:    fallback.Text(page.Header.Description, models.DefaultSubjectDescription),
		ResourcesBadge: fallback.Count(fallback.Text(page.Badges.ResourcesBadge, models.DefaultResourcesBadge), len(papers)),
		ExamBoardBadge: fallback.Text(page.Badges.ExamBoardBadge, fallback.Text(boardName, models.DefaultExamBoardBadge)),
		OGImageURL:     viewdata.AbsoluteURL(ogImage),
	}
	vm.MetaTitle = fallback.Text(page.SEO.MetaTitle, vm.Title)
	vm.MetaDescription = fallback.Text(page.SEO.MetaDescription, vm.Description)
	vm.Database = resolveDatabase(page.Database, papers, filter)
	vm.Sidebar = resolveSidebar(page.Sidebar, papers, tutors)
	return vm
}

func resolveDatabase(d models.DatabaseSection, papers []contentstore.PaperView, filter Filter) DatabaseVM {
	vm := DatabaseVM{
		Title:        fallback.Text(d.Title, models.DefaultDatabaseTitle),
		YearLabel:    fallback.Text(d.YearLabel, models.DefaultYearLabel),
		SessionLabel: fallback.Text(d.SessionLabel, models.DefaultSessionLabel),
		TypeLabel:    fallback.Text(d.TypeLabel, models.DefaultTypeLabel),
		AllLabel:     fallback.Text(d.AllLabel, models.DefaultAllLabel),
		ResetLabel:   fallback.Text(d.ResetLabel, models.DefaultResetLabel),
		EmptyText:    fallback.Text(d.EmptyText, models.DefaultEmptyText),
		Filter:       filter,
		Total:        len(papers),
		Rows:         []PaperRowVM{},
	}

	vm.PaperLabel = fallback.Text(d.QuestionPaperLabel, models.DefaultQuestionPaperLabel)
	vm.SchemeLabel = fallback.Text(d.MarkSchemeLabel, models.DefaultMarkSchemeLabel)

	years := map[string]bool{}
	sessions := map[string]bool{}
	types := map[string]bool{}
	for _, p := range papers {
		addOption(years, p.Year)
		addOption(sessions, p.Session)
		addOption(types, p.PaperType)

		if !filter.match(p) {
			continue
		}
		vm.Rows = append(vm.Rows, PaperRowVM{
			Title:              p.Title,
			Year:               strings.TrimSpace(p.Year),
			Session:            p.Session,
			Curriculum:         p.Curriculum,
			PaperType:          p.PaperType,
			QuestionPaperURL:   fallback.Text(p.QuestionPaperFileURL, p.QuestionPaperURL),
			MarkSchemeURL:      fallback.Text(p.MarkSchemeFileURL, p.MarkSchemeURL),
			QuestionPaperLabel: fallback.Text(p.QuestionPaperLabel, vm.PaperLabel),
			MarkSchemeLabel:    fallback.Text(p.MarkSchemeLabel, vm.SchemeLabel),
		})
	}

	vm.Years = sortedKeys(years)
	sort.Sort(sort.Reverse(sort.StringSlice(vm.Years)))
	vm.Sessions = sortedKeys(sessions)
	vm.Types = sortedKeys(types)
	vm.ShowingText = fallback.Showing(fallback.Text(d.ShowingText, models.DefaultShowingText), len(vm.Rows), vm.Total)
	return vm
}

func resolveSidebar(s models.Sidebar, papers []contentstore.PaperView, tutors []contentstore.TutorView) SidebarVM {
	years := map[string]bool{}
	latest := ""
	for _, p := range papers {
		y := strings.TrimSpace(p.Year)
		if y == "" {
			continue
		}
		years[y] = true
		if y > latest {
			latest = y
		}
	}

	vm := SidebarVM{
		QuickStats: QuickStatsVM{
			Title:             fallback.Text(s.QuickStats.Title, models.DefaultQuickStatsTitle),
			TotalPapersLabel:  fallback.Text(s.QuickStats.TotalPapersLabel, models.DefaultTotalPapersLabel),
			TotalPapers:       len(papers),
			YearsCoveredLabel: fallback.Text(s.QuickStats.YearsCoveredLabel, models.DefaultYearsCoveredLabel),
			YearsCovered:      len(years),
			LatestYearLabel:   fallback.Text(s.QuickStats.LatestYearLabel, models.DefaultLatestYearLabel),
			LatestYear:        fallback.Text(latest, "-"),
		},
		PrimaryButton:    viewdata.ResolveButton(s.PrimaryButton, models.DefaultSidebarPrimary),
		SecondaryButton:  viewdata.ResolveButton(s.SecondaryButton, models.DefaultSidebarSecondary),
		PromoTitle:       fallback.Text(s.TutorPromo.Title, models.DefaultTutorPromoTitle),
		PromoDescription: fallback.Text(s.TutorPromo.Description, models.DefaultTutorPromoDescription),
		PromoButton:      viewdata.ResolveButton(s.TutorPromo.Button, models.DefaultTutorPromoButton),
	}
	for _, t := range tutors {
		if strings.TrimSpace(t.Name) == "" {
			continue
		}
		vm.Tutors = append(vm.Tutors, TutorVM{
			Name:       t.Name,
			Subject:    t.Subject,
			Experience: t.Experience,
			Rating:     t.Rating,
			PhotoURL:   t.PhotoURL,
		})
	}
	return vm
}

func addOption(set map[string]bool, v string) {
	if v = strings.TrimSpace(v); v != "" {
		set[v] = true
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
