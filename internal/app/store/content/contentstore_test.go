package contentstore

import (
	"testing"

	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/dalemusser/stratapapers/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type prefixURLs string

func (p prefixURLs) URL(path string) string { return string(p) + "/" + path }

func insert(t *testing.T, db *mongo.Database, coll string, docs ...any) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := db.Collection(coll).InsertMany(ctx, docs); err != nil {
		t.Fatalf("insert into %s: %v", coll, err)
	}
}

func TestListActiveSubjects_ExcludesInactive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	insert(t, db, SubjectsCollection,
		models.Subject{ID: primitive.NewObjectID(), Title: "Maths", Slug: "maths", Order: 1, Active: true},
		models.Subject{ID: primitive.NewObjectID(), Title: "Latin", Slug: "latin", Order: 0, Active: false},
		models.Subject{ID: primitive.NewObjectID(), Title: "Physics", Slug: "physics", Order: 2, Active: true},
	)

	got, err := store.ListActiveSubjects(ctx)
	if err != nil {
		t.Fatalf("ListActiveSubjects() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, s := range got {
		if s.Slug == "latin" {
			t.Error("inactive subject returned")
		}
	}
}

func TestListActiveSubjects_OrderNonDecreasing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	insert(t, db, SubjectsCollection,
		models.Subject{ID: primitive.NewObjectID(), Title: "C", Slug: "c", Order: 5, Active: true},
		models.Subject{ID: second, Title: "B2", Slug: "b2", Order: 2, Active: true},
		models.Subject{ID: first, Title: "B1", Slug: "b1", Order: 2, Active: true},
		models.Subject{ID: primitive.NewObjectID(), Title: "A", Slug: "a", Order: 1, Active: true},
	)

	got, err := store.ListActiveSubjects(ctx)
	if err != nil {
		t.Fatalf("ListActiveSubjects() error = %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Order < got[i-1].Order {
			t.Errorf("order decreased at %d: %d < %d", i, got[i].Order, got[i-1].Order)
		}
	}
	// Equal orders fall back to _id, which follows creation order.
	if got[1].ID != first || got[2].ID != second {
		t.Errorf("tie not broken by _id: got %s, %s", got[1].Slug, got[2].Slug)
	}
}

func TestListActiveSubjects_ResolvesReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, prefixURLs("https://cdn.test"))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cie := primitive.NewObjectID()
	aqa := primitive.NewObjectID()
	old := primitive.NewObjectID()
	insert(t, db, ExamBoardsCollection,
		models.ExamBoard{ID: cie, Name: "Cambridge", Slug: "cambridge", Active: true, Logo: &models.Asset{Path: "logos/cie.png"}},
		models.ExamBoard{ID: aqa, Name: "AQA", Slug: "aqa", Active: true},
		models.ExamBoard{ID: old, Name: "Retired", Slug: "retired", Active: false},
	)
	algebra := primitive.NewObjectID()
	insert(t, db, TopicsCollection,
		models.Topic{ID: algebra, Title: "Algebra", Slug: "algebra", Active: true},
	)
	insert(t, db, SubjectsCollection, models.Subject{
		ID:         primitive.NewObjectID(),
		Title:      "Maths",
		Slug:       "maths",
		Image:      &models.Asset{Path: "subjects/maths.jpg", Alt: "Chalkboard"},
		ExamBoards: []primitive.ObjectID{aqa, old, cie},
		Topics:     []primitive.ObjectID{algebra},
		Active:     true,
	})

	got, err := store.ListActiveSubjects(ctx)
	if err != nil {
		t.Fatalf("ListActiveSubjects() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	s := got[0]
	if s.ImageURL != "https://cdn.test/subjects/maths.jpg" {
		t.Errorf("ImageURL = %q", s.ImageURL)
	}
	if s.ImageAlt != "Chalkboard" {
		t.Errorf("ImageAlt = %q", s.ImageAlt)
	}
	if len(s.ExamBoards) != 2 {
		t.Fatalf("ExamBoards len = %d, want 2 (inactive dropped)", len(s.ExamBoards))
	}
	if s.ExamBoards[0].Slug != "aqa" || s.ExamBoards[1].Slug != "cambridge" {
		t.Errorf("ExamBoards not in reference order: %s, %s", s.ExamBoards[0].Slug, s.ExamBoards[1].Slug)
	}
	if s.ExamBoards[1].LogoURL != "https://cdn.test/logos/cie.png" {
		t.Errorf("LogoURL = %q", s.ExamBoards[1].LogoURL)
	}
	if len(s.Topics) != 1 || s.Topics[0].Title != "Algebra" {
		t.Errorf("Topics = %+v", s.Topics)
	}
}

func TestGetSubjectBySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	insert(t, db, SubjectsCollection,
		models.Subject{ID: primitive.NewObjectID(), Title: "Maths", Slug: "maths", Active: true},
		models.Subject{ID: primitive.NewObjectID(), Title: "Latin", Slug: "latin", Active: false},
	)

	got, err := store.GetSubjectBySlug(ctx, "maths")
	if err != nil {
		t.Fatalf("GetSubjectBySlug() error = %v", err)
	}
	if got == nil || got.Title != "Maths" {
		t.Fatalf("GetSubjectBySlug(maths) = %+v", got)
	}

	for _, slug := range []string{"latin", "missing", "MATHS"} {
		got, err := store.GetSubjectBySlug(ctx, slug)
		if err != nil {
			t.Errorf("GetSubjectBySlug(%q) error = %v, want nil", slug, err)
		}
		if got != nil {
			t.Errorf("GetSubjectBySlug(%q) = %+v, want nil", slug, got)
		}
	}
}

func TestListActiveExamBoards_SortedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	insert(t, db, ExamBoardsCollection,
		models.ExamBoard{ID: primitive.NewObjectID(), Name: "Edexcel", Slug: "edexcel", Active: true},
		models.ExamBoard{ID: primitive.NewObjectID(), Name: "AQA", Slug: "aqa", Active: true},
		models.ExamBoard{ID: primitive.NewObjectID(), Name: "Cambridge", Slug: "cambridge", Active: true},
		models.ExamBoard{ID: primitive.NewObjectID(), Name: "Beta", Slug: "beta", Active: false},
	)

	got, err := store.ListActiveExamBoards(ctx)
	if err != nil {
		t.Fatalf("ListActiveExamBoards() error = %v", err)
	}
	var names []string
	for _, b := range got {
		names = append(names, b.Name)
	}
	want := []string{"AQA", "Cambridge", "Edexcel"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestListActiveExamBoards_DecodesLegacyPills(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	insert(t, db, ExamBoardsCollection, bson.M{
		"_id":    primitive.NewObjectID(),
		"name":   "Cambridge",
		"slug":   "cambridge",
		"active": true,
		"pills": bson.A{
			"IGCSE",
			bson.M{"kind": "link", "text": "Syllabus", "url": "https://example.com"},
		},
	})

	got, err := store.ListActiveExamBoards(ctx)
	if err != nil {
		t.Fatalf("ListActiveExamBoards() error = %v", err)
	}
	if len(got) != 1 || len(got[0].Pills) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got[0].Pills[0] != models.LabelPill("IGCSE") {
		t.Errorf("Pills[0] = %+v", got[0].Pills[0])
	}
	if !got[0].Pills[1].IsLink() {
		t.Errorf("Pills[1] = %+v, want link", got[0].Pills[1])
	}
}

func TestListActiveTopics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	subj := primitive.NewObjectID()
	insert(t, db, TopicsCollection,
		models.Topic{ID: primitive.NewObjectID(), Title: "Calculus", Slug: "calculus", Subject: subj, Order: 2, Active: true},
		models.Topic{ID: primitive.NewObjectID(), Title: "Algebra", Slug: "algebra", Subject: subj, Order: 1, Active: true},
		models.Topic{ID: primitive.NewObjectID(), Title: "Hidden", Slug: "hidden", Subject: subj, Order: 0, Active: false},
		models.Topic{ID: primitive.NewObjectID(), Title: "Optics", Slug: "optics", Subject: primitive.NewObjectID(), Active: true},
	)

	got, err := store.ListActiveTopics(ctx, subj)
	if err != nil {
		t.Fatalf("ListActiveTopics() error = %v", err)
	}
	if len(got) != 2 || got[0].Slug != "algebra" || got[1].Slug != "calculus" {
		t.Errorf("ListActiveTopics() = %+v", got)
	}
}
