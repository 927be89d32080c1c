package subjects

import (
	"fmt"
	"testing"

	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/google/go-cmp/cmp"
)

func papers(n int) []contentstore.PaperView {
	out := make([]contentstore.PaperView, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, contentstore.PaperView{InlinePaper: models.InlinePaper{
			Title: fmt.Sprintf("Paper %d", i+1),
			Year:  "2023",
		}})
	}
	return out
}

func TestResolveSubjectPage_ResourcesBadgeCount(t *testing.T) {
	doc := &contentstore.SubjectPageView{
		Page:   models.SubjectPage{Badges: models.SubjectPageBadges{ResourcesBadge: "{count} Papers"}},
		Papers: papers(7),
	}
	got := ResolveSubjectPage(doc, "mathematics", "", Filter{})
	if got.ResourcesBadge != "7 Papers" {
		t.Errorf("ResourcesBadge = %q, want %q", got.ResourcesBadge, "7 Papers")
	}
}

func TestResolveSubjectPage_ShowingText(t *testing.T) {
	list := papers(12)
	for i := range list {
		if i < 3 {
			list[i].Year = "2021"
		}
	}
	doc := &contentstore.SubjectPageView{Papers: list}

	got := ResolveSubjectPage(doc, "physics", "", Filter{Year: "2021"})
	if got.Database.ShowingText != "Showing 3 of 12 papers" {
		t.Errorf("ShowingText = %q", got.Database.ShowingText)
	}
	if len(got.Database.Rows) != 3 || got.Database.Total != 12 {
		t.Errorf("Rows = %d, Total = %d", len(got.Database.Rows), got.Database.Total)
	}

	got = ResolveSubjectPage(doc, "physics", "", Filter{})
	if got.Database.ShowingText != "Showing 12 of 12 papers" {
		t.Errorf("unfiltered ShowingText = %q", got.Database.ShowingText)
	}
}

func TestResolveSubjectPage_CustomShowingText(t *testing.T) {
	doc := &contentstore.SubjectPageView{
		Page:   models.SubjectPage{Database: models.DatabaseSection{ShowingText: "{filtered}/{total}"}},
		Papers: papers(4),
	}
	got := ResolveSubjectPage(doc, "physics", "", Filter{Year: "1999"})
	if got.Database.ShowingText != "0/4" {
		t.Errorf("ShowingText = %q, want 0/4", got.Database.ShowingText)
	}
	if got.Database.Rows == nil {
		t.Error("Rows should be empty, not nil")
	}
}

func TestResolveSubjectPage_Filters(t *testing.T) {
	doc := &contentstore.SubjectPageView{Papers: []contentstore.PaperView{
		{InlinePaper: models.InlinePaper{Title: "A", Year: "2022", Session: "May/June", PaperType: "Paper 1"}},
		{InlinePaper: models.InlinePaper{Title: "B", Year: "2022", Session: "Oct/Nov", PaperType: "Paper 2"}},
		{InlinePaper: models.InlinePaper{Title: "C", Year: "2023", Session: "May/June", PaperType: "Paper 2"}},
	}}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"none", Filter{}, []string{"A", "B", "C"}},
		{"year", Filter{Year: "2022"}, []string{"A", "B"}},
		{"session case-insensitive", Filter{Session: "may/june"}, []string{"A", "C"}},
		{"type and year", Filter{Year: "2023", Type: "Paper 2"}, []string{"C"}},
		{"no match", Filter{Type: "Paper 9"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSubjectPage(doc, "chemistry", "", tt.filter)
			titles := []string{}
			for _, r := range got.Database.Rows {
				titles = append(titles, r.Title)
			}
			if diff := cmp.Diff(tt.want, titles); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}

	got := ResolveSubjectPage(doc, "chemistry", "", Filter{Year: "2022"})
	if diff := cmp.Diff([]string{"2023", "2022"}, got.Database.Years); diff != "" {
		t.Errorf("Years mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"May/June", "Oct/Nov"}, got.Database.Sessions); diff != "" {
		t.Errorf("Sessions mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSubjectPage_LinkPrecedence(t *testing.T) {
	doc := &contentstore.SubjectPageView{Papers: []contentstore.PaperView{
		{
			InlinePaper: models.InlinePaper{
				Title:            "Both",
				Year:             "2020",
				QuestionPaperURL: "https://example.com/qp.pdf",
				MarkSchemeURL:    "https://example.com/ms.pdf",
				MarkSchemeLabel:  "Answers",
			},
			QuestionPaperFileURL: "https://cdn.test/qp.pdf",
		},
	}}
	got := ResolveSubjectPage(doc, "biology", "", Filter{})

	want := PaperRowVM{
		Title:              "Both",
		Year:               "2020",
		QuestionPaperURL:   "https://cdn.test/qp.pdf",
		MarkSchemeURL:      "https://example.com/ms.pdf",
		QuestionPaperLabel: models.DefaultQuestionPaperLabel,
		MarkSchemeLabel:    "Answers",
	}
	if diff := cmp.Diff([]PaperRowVM{want}, got.Database.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSubjectPage_BoardSegmentFallback(t *testing.T) {
	got := ResolveSubjectPage(nil, "mathematics", "cambridge-igcse", Filter{})
	if got.Title != "Cambridge Igcse Mathematics Past Papers" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.ExamBoardBadge != "Cambridge Igcse" {
		t.Errorf("ExamBoardBadge = %q", got.ExamBoardBadge)
	}
	if got.ResourcesBadge != "0 Resources Available" {
		t.Errorf("ResourcesBadge = %q", got.ResourcesBadge)
	}

	doc := &contentstore.SubjectPageView{
		Page:      models.SubjectPage{Header: models.SubjectPageHeader{Title: "Maths"}},
		ExamBoard: &contentstore.ExamBoardView{Name: "Cambridge IGCSE"},
	}
	got = ResolveSubjectPage(doc, "mathematics", "cambridge-igcse", Filter{})
	if got.Title != "Maths" {
		t.Errorf("CMS Title = %q, want Maths", got.Title)
	}
	if got.ExamBoardBadge != "Cambridge IGCSE" {
		t.Errorf("ExamBoardBadge = %q, want board name", got.ExamBoardBadge)
	}
}

func TestResolveSubjectPage_GenericDefaults(t *testing.T) {
	got := ResolveSubjectPage(nil, "further-maths", "", Filter{})
	if got.Title != "Further Maths Past Papers" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.ExamBoardBadge != models.DefaultExamBoardBadge {
		t.Errorf("ExamBoardBadge = %q", got.ExamBoardBadge)
	}
	if got.MetaTitle != got.Title || got.MetaDescription != models.DefaultSubjectDescription {
		t.Errorf("SEO = %q / %q", got.MetaTitle, got.MetaDescription)
	}
	if got.Sidebar.QuickStats.LatestYear != "-" {
		t.Errorf("LatestYear = %q", got.Sidebar.QuickStats.LatestYear)
	}
}

func TestResolveSidebar_QuickStats(t *testing.T) {
	doc := &contentstore.SubjectPageView{
		Papers: []contentstore.PaperView{
			{InlinePaper: models.InlinePaper{Year: "2019"}},
			{InlinePaper: models.InlinePaper{Year: "2023"}},
			{InlinePaper: models.InlinePaper{Year: "2023"}},
		},
		Tutors: []contentstore.TutorView{
			{Tutor: models.Tutor{Name: "Dr Shah", Subject: "Physics"}, PhotoURL: "https://cdn.test/shah.jpg"},
			{Tutor: models.Tutor{Name: " "}},
		},
	}
	got := ResolveSubjectPage(doc, "physics", "", Filter{}).Sidebar

	want := QuickStatsVM{
		Title:             models.DefaultQuickStatsTitle,
		TotalPapersLabel:  models.DefaultTotalPapersLabel,
		TotalPapers:       3,
		YearsCoveredLabel: models.DefaultYearsCoveredLabel,
		YearsCovered:      2,
		LatestYearLabel:   models.DefaultLatestYearLabel,
		LatestYear:        "2023",
	}
	if diff := cmp.Diff(want, got.QuickStats); diff != "" {
		t.Errorf("QuickStats mismatch (-want +got):\n%s", diff)
	}
	if len(got.Tutors) != 1 || got.Tutors[0].PhotoURL != "https://cdn.test/shah.jpg" {
		t.Errorf("Tutors = %+v", got.Tutors)
	}
	if got.PrimaryButton != models.DefaultSidebarPrimary {
		t.Errorf("PrimaryButton = %+v", got.PrimaryButton)
	}
}
