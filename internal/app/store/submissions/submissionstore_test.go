package submissionstore

import (
	"testing"
	"time"

	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/dalemusser/stratapapers/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func validInput() Input {
	return Input{
		FullName:        "Ada Lovelace",
		Country:         "United Kingdom",
		Email:           "ada@example.com",
		Phone:           "+44 20 7946 0000",
		TutoringDetails: "A Level Maths, twice a week",
		HourlyBudget:    "£40",
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := time.Now().UTC().Add(-time.Second)
	sub, err := store.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	after := time.Now().UTC().Add(time.Second)

	if sub.ID.IsZero() {
		t.Error("ID should be set")
	}

	got, err := store.GetByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() = nil")
	}
	if got.Status != models.SubmissionNew {
		t.Errorf("Status = %q, want new", got.Status)
	}
	if got.SubmittedAt.Before(before) || got.SubmittedAt.After(after) {
		t.Errorf("SubmittedAt = %v, want between %v and %v", got.SubmittedAt, before, after)
	}
	if got.FullName != "Ada Lovelace" || got.HourlyBudget != "£40" {
		t.Errorf("fields not stored: %+v", got)
	}
}

func TestStore_Create_NoDeduplication(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() #1 error = %v", err)
	}
	b, err := store.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() #2 error = %v", err)
	}
	if a.ID == b.ID {
		t.Error("identical submissions share an ID")
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetByID() = %+v, want nil", got)
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sub, err := store.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.UpdateStatus(ctx, sub.ID, models.SubmissionContacted, "Called on Monday"); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	got, _ := store.GetByID(ctx, sub.ID)
	if got.Status != models.SubmissionContacted {
		t.Errorf("Status = %q, want contacted", got.Status)
	}
	if got.Notes != "Called on Monday" {
		t.Errorf("Notes = %q", got.Notes)
	}
	if !got.SubmittedAt.Equal(sub.SubmittedAt) {
		t.Errorf("SubmittedAt changed: %v -> %v", sub.SubmittedAt, got.SubmittedAt)
	}
	if got.UpdatedAt == nil {
		t.Error("UpdatedAt should be set")
	}

	if err := store.UpdateStatus(ctx, sub.ID, "archived", ""); err == nil {
		t.Error("UpdateStatus(archived) should fail")
	}
	if err := store.UpdateStatus(ctx, primitive.NewObjectID(), models.SubmissionClosed, ""); err != mongo.ErrNoDocuments {
		t.Errorf("UpdateStatus(missing) error = %v, want ErrNoDocuments", err)
	}
}

func TestStore_ListAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var ids []primitive.ObjectID
	for i := 0; i < 3; i++ {
		sub, err := store.Create(ctx, validInput())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, sub.ID)
		time.Sleep(2 * time.Millisecond)
	}
	if err := store.UpdateStatus(ctx, ids[0], models.SubmissionClosed, ""); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	all, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() len = %d, want 3", len(all))
	}
	if all[0].ID != ids[2] {
		t.Errorf("List() not newest first")
	}

	open, err := store.List(ctx, ListFilter{Status: models.SubmissionNew, Limit: 1})
	if err != nil {
		t.Fatalf("List(new) error = %v", err)
	}
	if len(open) != 1 || open[0].Status != models.SubmissionNew {
		t.Errorf("List(new, 1) = %+v", open)
	}

	second, err := store.List(ctx, ListFilter{Limit: 2, Page: 2})
	if err != nil {
		t.Fatalf("List(page 2) error = %v", err)
	}
	if len(second) != 1 || second[0].ID != ids[0] {
		t.Errorf("List(limit 2, page 2) = %+v, want only the oldest", second)
	}

	counts, err := store.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if counts[models.SubmissionNew] != 2 || counts[models.SubmissionClosed] != 1 || counts[models.SubmissionContacted] != 0 {
		t.Errorf("CountByStatus() = %v", counts)
	}
}

func TestStore_CountOlderThan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Create(ctx, validInput()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.UpdateStatus(ctx, first.ID, models.SubmissionContacted, ""); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	future := time.Now().Add(time.Hour)
	n, err := store.CountOlderThan(ctx, models.SubmissionNew, future)
	if err != nil {
		t.Fatalf("CountOlderThan() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountOlderThan(new, +1h) = %d, want 1", n)
	}

	n, err = store.CountOlderThan(ctx, models.SubmissionNew, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountOlderThan() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountOlderThan(new, -1h) = %d, want 0", n)
	}
}
