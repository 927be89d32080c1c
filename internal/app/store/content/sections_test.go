package contentstore

import (
	"testing"

	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/dalemusser/stratapapers/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetSection_Absent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hero, err := store.Hero(ctx)
	if err != nil {
		t.Fatalf("Hero() error = %v", err)
	}
	if hero != nil {
		t.Errorf("Hero() = %+v, want nil", hero)
	}
}

func TestGetSection_FirstDocumentWins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	older := primitive.NewObjectID()
	newer := primitive.NewObjectID()
	insert(t, db, SectionsCollection,
		bson.M{"_id": newer, "type": models.SectionHero, "title": "Newer"},
		bson.M{"_id": older, "type": models.SectionHero, "title": "Older"},
		bson.M{"_id": primitive.NewObjectID(), "type": models.SectionFAQ, "title": "FAQ"},
	)

	hero, err := store.Hero(ctx)
	if err != nil {
		t.Fatalf("Hero() error = %v", err)
	}
	if hero == nil || hero.Title != "Older" {
		t.Fatalf("Hero() = %+v, want title Older", hero)
	}
	if hero.Type != models.SectionHero {
		t.Errorf("Type = %q", hero.Type)
	}
}

func TestGetSection_DecodesNestedFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	insert(t, db, SectionsCollection, bson.M{
		"_id":   primitive.NewObjectID(),
		"type":  models.SectionContactForm,
		"title": "Talk to us",
		"notification": bson.M{
			"admin_email":   "admin@example.com",
			"admin_subject": "New lead",
		},
	})

	cf, err := store.ContactForm(ctx)
	if err != nil {
		t.Fatalf("ContactForm() error = %v", err)
	}
	if cf == nil {
		t.Fatal("ContactForm() = nil")
	}
	if cf.Notification.AdminEmail != "admin@example.com" || cf.Notification.AdminSubject != "New lead" {
		t.Errorf("Notification = %+v", cf.Notification)
	}
}
