package indexes_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/stratapapers/internal/app/system/indexes"
	"github.com/dalemusser/stratapapers/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	// SetupTestDB already ran EnsureAll once.
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll() error = %v", err)
	}
}

func TestEnsureAll_UniqueSlugs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, coll := range []string{"subjects", "exam_boards", "past_papers"} {
		c := db.Collection(coll)
		if _, err := c.InsertOne(ctx, bson.M{"slug": "maths"}); err != nil {
			t.Fatalf("%s: first insert error = %v", coll, err)
		}
		_, err := c.InsertOne(ctx, bson.M{"slug": "maths"})
		if !indexes.IsDuplicateKeyErr(err) {
			t.Errorf("%s: duplicate slug error = %v, want duplicate key", coll, err)
		}
	}
}

func TestEnsureAll_SectionTypeNotUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := db.Collection("site_sections")
	for i := 0; i < 2; i++ {
		if _, err := c.InsertOne(ctx, bson.M{"type": "hero"}); err != nil {
			t.Fatalf("insert %d error = %v", i, err)
		}
	}
}

func TestKeySig(t *testing.T) {
	got := indexes.KeySig(bson.D{{Key: "subject", Value: 1}, {Key: "year", Value: -1}})
	if got != "subject:1, year:-1" {
		t.Errorf("keySig() = %q", got)
	}
}

func TestIsDuplicateKeyErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"generic", errors.New("boom"), false},
		{"write exception", mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}, true},
		{"command error", mongo.CommandError{Code: 11000}, true},
		{"message", errors.New("E11000 duplicate key error collection"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := indexes.IsDuplicateKeyErr(tt.err); got != tt.want {
				t.Errorf("isDuplicateKeyErr() = %v, want %v", got, tt.want)
			}
		})
	}
}
