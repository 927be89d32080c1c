package examboards

import (
	"testing"

	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/app/system/viewdata"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/google/go-cmp/cmp"
)

func TestResolveExamBoardPage_Defaults(t *testing.T) {
	got := ResolveExamBoardPage(nil, nil, "further-maths", "", nil)

	if got.Title != "Further Maths Exam Boards" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Description != models.DefaultBoardsHeroDescription {
		t.Errorf("Description = %q", got.Description)
	}
	if got.CTAButton != models.DefaultCTAButton {
		t.Errorf("CTAButton = %+v", got.CTAButton)
	}
	if got.MetaTitle != got.Title {
		t.Errorf("MetaTitle = %q, want title", got.MetaTitle)
	}
	if len(got.Boards) != 0 {
		t.Errorf("Boards = %v, want empty", got.Boards)
	}
}

func TestResolveExamBoardPage_SubjectTitle(t *testing.T) {
	got := ResolveExamBoardPage(nil, nil, "maths", "Mathematics", nil)
	if got.Title != "Mathematics Exam Boards" {
		t.Errorf("Title = %q", got.Title)
	}

	page := &models.ExamBoardPage{Hero: models.ExamBoardPageHero{Title: "Pick a board"}}
	got = ResolveExamBoardPage(page, nil, "maths", "Mathematics", nil)
	if got.Title != "Pick a board" {
		t.Errorf("CMS Title = %q", got.Title)
	}
}

func TestResolveExamBoardPage_Boards(t *testing.T) {
	boards := []contentstore.ExamBoardView{
		{
			Name:       "Cambridge",
			Slug:       "cambridge",
			WebsiteURL: "https://cambridgeinternational.org",
			Pills:      []models.Pill{models.LinkPill("IGCSE", "/subjects/physics/cambridge")},
		},
	}
	page := &models.ExamBoardPage{
		Labels: models.ExamBoardPageLabels{ViewPapers: "See papers"},
		SEO:    models.SEO{MetaDescription: "Boards for physics", OGImage: &models.Asset{Path: "og.png"}},
	}
	urlFor := func(a *models.Asset) string { return "https://cdn.test/" + a.Path }

	got := ResolveExamBoardPage(page, boards, "physics", "Physics", urlFor)

	want := []BoardCardVM{{
		Name:       "Cambridge",
		Slug:       "cambridge",
		WebsiteURL: "https://cambridgeinternational.org",
		PapersURL:  "/subjects/physics/cambridge",
		Pills:      []viewdata.PillVM{{Text: "IGCSE", URL: "/subjects/physics/cambridge"}},
	}}
	if diff := cmp.Diff(want, got.Boards); diff != "" {
		t.Errorf("Boards mismatch (-want +got):\n%s", diff)
	}
	if got.ViewPapersLabel != "See papers" || got.VisitLabel != models.DefaultExamBoardsVisit {
		t.Errorf("labels = %q / %q", got.ViewPapersLabel, got.VisitLabel)
	}
	if got.MetaDescription != "Boards for physics" {
		t.Errorf("MetaDescription = %q", got.MetaDescription)
	}
	if got.OGImageURL != "https://cdn.test/og.png" {
		t.Errorf("OGImageURL = %q", got.OGImageURL)
	}
}
