package seeding

import (
	"strings"
	"testing"

	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/dalemusser/stratapapers/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestDemoBundle_Valid(t *testing.T) {
	b, err := DemoBundle()
	if err != nil {
		t.Fatalf("DemoBundle() error = %v", err)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(b.Subjects) == 0 || len(b.ExamBoards) == 0 || len(b.Sections) == 0 {
		t.Errorf("demo bundle looks empty: %d subjects, %d boards, %d sections",
			len(b.Subjects), len(b.ExamBoards), len(b.Sections))
	}
}

func TestParse_Pills(t *testing.T) {
	b, err := Parse(strings.NewReader(`
exam_boards:
  - name: Cambridge
    slug: cambridge
    pills:
      - IGCSE
      - {kind: link, text: Syllabus, url: "https://example.org"}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	pills := b.ExamBoards[0].Pills
	if len(pills) != 2 {
		t.Fatalf("pills = %+v", pills)
	}
	if pills[0].Pill != models.LabelPill("IGCSE") {
		t.Errorf("pills[0] = %+v, want label", pills[0].Pill)
	}
	if pills[1].Kind != models.PillLink || pills[1].URL != "https://example.org" {
		t.Errorf("pills[1] = %+v, want link", pills[1].Pill)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown top-level key", "widgets: []\n"},
		{"unknown pill kind", "exam_boards:\n  - name: X\n    slug: x\n    pills:\n      - {kind: badge, text: X}\n"},
		{"malformed", "subjects: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.yaml)); err == nil {
				t.Error("Parse() error = nil")
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	b, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() of empty bundle error = %v", err)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	b := &Bundle{
		Subjects: []SubjectDoc{{Title: "Maths", Slug: "Maths"}},
		PastPapers: []PastPaperDoc{{
			Title: "P", Slug: "p", Subject: "maths", ExamBoard: "cie",
			Year: 1999, Season: "spring", PaperNumber: 10, Level: "igcse",
		}},
		Questions:    []QuestionDoc{{Title: "Q", QuestionNumber: "1", Marks: 101, Difficulty: "easy", PastPaper: "p"}},
		SubjectPages: []map[string]any{{"subject_id": "Has Spaces"}},
		Sections:     []map[string]any{{"type": "banner"}},
	}
	err := b.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil")
	}
	for _, want := range []string{"subjects[0]", "year 1999", "paper number 10", "marks 101", "subject_pages[0]", `unknown type "banner"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error missing %q: %v", want, err)
		}
	}
}

func TestImport_Demo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, err := DemoBundle()
	if err != nil {
		t.Fatalf("DemoBundle() error = %v", err)
	}
	res, err := Import(ctx, db, b)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.Subjects != len(b.Subjects) || res.Sections != len(b.Sections) {
		t.Errorf("Import() result = %+v", res)
	}

	store := contentstore.New(db, nil)
	subjects, err := store.ListActiveSubjects(ctx)
	if err != nil {
		t.Fatalf("ListActiveSubjects() error = %v", err)
	}
	if len(subjects) != 3 || subjects[0].Slug != "mathematics" {
		t.Fatalf("subjects = %+v", subjects)
	}
	if len(subjects[0].ExamBoards) != 3 || subjects[0].ExamBoards[0].Slug != "cambridge" {
		t.Errorf("mathematics boards = %+v", subjects[0].ExamBoards)
	}
	if len(subjects[0].Topics) != 2 || subjects[0].Topics[0].Slug != "algebra" {
		t.Errorf("mathematics topics = %+v", subjects[0].Topics)
	}

	page, err := store.GetSubjectPageByExamBoard(ctx, "mathematics", "cambridge")
	if err != nil || page == nil {
		t.Fatalf("GetSubjectPageByExamBoard() = %v, %v", page, err)
	}
	if len(page.Papers) != 1 || page.Papers[0].Year != "2023" {
		t.Errorf("board page papers = %+v (unquoted year should become a string)", page.Papers)
	}

	hero, err := store.Hero(ctx)
	if err != nil || hero == nil {
		t.Fatalf("Hero() = %v, %v", hero, err)
	}
	if hero.Highlight != "real past papers" {
		t.Errorf("hero highlight = %q", hero.Highlight)
	}

	var paper models.PastPaper
	if err := db.Collection(contentstore.PastPapersCollection).
		FindOne(ctx, bson.M{"slug": "cambridge-0580-2023-mj-p2"}).Decode(&paper); err != nil {
		t.Fatalf("find paper error = %v", err)
	}
	if len(paper.Questions) != 2 {
		t.Errorf("paper questions = %v, want 2", paper.Questions)
	}
}

func TestImport_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, _ := DemoBundle()
	for i := 0; i < 2; i++ {
		if _, err := Import(ctx, db, b); err != nil {
			t.Fatalf("Import() run %d error = %v", i, err)
		}
	}

	counts := map[string]int64{
		contentstore.SubjectsCollection:     int64(len(b.Subjects)),
		contentstore.QuestionsCollection:    int64(len(b.Questions)),
		contentstore.SubjectPagesCollection: int64(len(b.SubjectPages)),
		contentstore.SectionsCollection:     int64(len(b.Sections)),
	}
	for coll, want := range counts {
		n, err := db.Collection(coll).CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("count %s error = %v", coll, err)
		}
		if n != want {
			t.Errorf("%s count = %d, want %d", coll, n, want)
		}
	}
}

func TestImport_UnknownReference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b := &Bundle{Topics: []TopicDoc{{Title: "Optics", Slug: "optics", Subject: "physics"}}}
	_, err := Import(ctx, db, b)
	if err == nil || !strings.Contains(err.Error(), `unknown subjects slug "physics"`) {
		t.Errorf("Import() error = %v", err)
	}
}

func TestImport_ResolvesExistingDocuments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := &Bundle{Subjects: []SubjectDoc{{Title: "Physics", Slug: "physics"}}}
	if _, err := Import(ctx, db, first); err != nil {
		t.Fatalf("first Import() error = %v", err)
	}
	second := &Bundle{Topics: []TopicDoc{{Title: "Optics", Slug: "optics", Subject: "physics"}}}
	if _, err := Import(ctx, db, second); err != nil {
		t.Fatalf("second Import() error = %v", err)
	}
}

func TestSeedAll_SkipsWhenContentPresent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := db.Collection(contentstore.SubjectsCollection).InsertOne(ctx, bson.M{"title": "Latin", "slug": "latin", "active": true}); err != nil {
		t.Fatalf("insert error = %v", err)
	}
	if err := SeedAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("SeedAll() error = %v", err)
	}
	n, _ := db.Collection(contentstore.SectionsCollection).CountDocuments(ctx, bson.M{})
	if n != 0 {
		t.Errorf("sections = %d, want 0 when content already present", n)
	}
}

func TestSeedAll_EmptyStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := SeedAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("SeedAll() error = %v", err)
	}
	n, _ := db.Collection(contentstore.SubjectsCollection).CountDocuments(ctx, bson.M{})
	if n != 3 {
		t.Errorf("subjects = %d, want 3", n)
	}
}
