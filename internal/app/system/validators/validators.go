// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Collections lists every collection EnsureAll manages, in creation order.
var Collections = []string{
	"subjects",
	"exam_boards",
	"topics",
	"past_papers",
	"questions",
	"subject_pages",
	"exam_board_pages",
	"site_sections",
	"contact_submissions",
}

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. The store enforces content rules, so an authoring tool that
// writes an out-of-range year or an unknown status gets a write error. On
// servers that don't support collMod/validators (e.g. some DocumentDB
// versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	schemas := Schemas()
	for _, coll := range Collections {
		ensure(coll, schemas[coll])
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// IsValidationError reports whether err is a write rejected by a collection
// validator (DocumentValidationFailure, code 121).
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 121 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 121 {
		return true
	}
	return strings.Contains(err.Error(), "Document failed validation")
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

// Schemas returns the validator document for each managed collection.
func Schemas() map[string]bson.M {
	return map[string]bson.M{
		"subjects":            subjectsSchema(),
		"exam_boards":         examBoardsSchema(),
		"topics":              topicsSchema(),
		"past_papers":         pastPapersSchema(),
		"questions":           questionsSchema(),
		"subject_pages":       subjectPagesSchema(),
		"exam_board_pages":    examBoardPagesSchema(),
		"site_sections":       sectionsSchema(),
		"contact_submissions": submissionsSchema(),
	}
}

func jsonSchema(required []string, props bson.M) bson.M {
	req := bson.A{}
	for _, r := range required {
		req = append(req, r)
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   req,
			"properties": props,
		},
	}
}

func enumOf[T ~string](vals []T) bson.A {
	out := bson.A{}
	for _, v := range vals {
		out = append(out, string(v))
	}
	return out
}

var (
	nonBlank  = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	slugField = bson.M{"bsonType": "string", "pattern": models.SlugPattern}
	boolField = bson.M{"bsonType": "bool"}
	refField  = bson.M{"bsonType": "objectId"}
	refArray  = bson.M{"bsonType": "array", "items": bson.M{"bsonType": "objectId"}}
	optRef    = bson.M{"bsonType": bson.A{"objectId", "null"}}
	assetDoc  = bson.M{
		"bsonType": bson.A{"object", "null"},
		"required": bson.A{"path"},
		"properties": bson.M{
			"path": bson.M{"bsonType": "string"},
		},
	}
)

func intRange(min, max int) bson.M {
	return bson.M{"bsonType": bson.A{"int", "long"}, "minimum": min, "maximum": max}
}

func subjectsSchema() bson.M {
	return jsonSchema([]string{"title", "slug", "active"}, bson.M{
		"title":       nonBlank,
		"slug":        slugField,
		"image":       assetDoc,
		"exam_boards": refArray,
		"topics":      refArray,
		"order":       bson.M{"bsonType": "number"},
		"active":      boolField,
	})
}

func examBoardsSchema() bson.M {
	pill := bson.M{
		// A bare string is a legacy label pill.
		"bsonType": bson.A{"string", "object"},
		"properties": bson.M{
			"kind": bson.M{"enum": bson.A{string(models.PillLabel), string(models.PillLink)}},
			"text": bson.M{"bsonType": "string"},
			"url":  bson.M{"bsonType": "string"},
		},
	}
	return jsonSchema([]string{"name", "slug", "active"}, bson.M{
		"name":        nonBlank,
		"slug":        slugField,
		"logo":        assetDoc,
		"website_url": bson.M{"bsonType": "string"},
		"pills":       bson.M{"bsonType": "array", "items": pill},
		"active":      boolField,
	})
}

func topicsSchema() bson.M {
	return jsonSchema([]string{"title", "slug", "subject", "active"}, bson.M{
		"title":       nonBlank,
		"slug":        slugField,
		"subject":     refField,
		"exam_boards": refArray,
		"order":       bson.M{"bsonType": "number"},
		"active":      boolField,
	})
}

func pastPapersSchema() bson.M {
	return jsonSchema(
		[]string{"title", "slug", "subject", "exam_board", "year", "season", "paper_number", "level", "active"},
		bson.M{
			"title":          nonBlank,
			"slug":           slugField,
			"subject":        refField,
			"exam_board":     refField,
			"topic":          optRef,
			"year":           intRange(models.MinPaperYear, models.MaxPaperYear),
			"season":         bson.M{"enum": enumOf(models.AllSeasons)},
			"paper_number":   intRange(models.MinPaperNumber, models.MaxPaperNumber),
			"level":          bson.M{"enum": enumOf(models.AllLevels)},
			"question_paper": assetDoc,
			"mark_scheme":    assetDoc,
			"questions":      refArray,
			"active":         boolField,
		},
	)
}

func questionsSchema() bson.M {
	return jsonSchema(
		[]string{"title", "question_number", "marks", "difficulty", "past_paper", "active"},
		bson.M{
			"title":           nonBlank,
			"question_number": nonBlank,
			"marks":           intRange(models.MinQuestionMarks, models.MaxQuestionMarks),
			"difficulty": bson.M{"enum": enumOf([]models.Difficulty{
				models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard,
			})},
			"topic":      optRef,
			"past_paper": refField,
			"body":       bson.M{"bsonType": "string"},
			"active":     boolField,
		},
	)
}

func subjectPagesSchema() bson.M {
	paper := bson.M{
		"bsonType": "object",
		"required": bson.A{"title", "year"},
		"properties": bson.M{
			"title":               bson.M{"bsonType": "string"},
			"year":                bson.M{"bsonType": "string", "pattern": "^[0-9]{4}$"},
			"question_paper_file": assetDoc,
			"mark_scheme_file":    assetDoc,
		},
	}
	return jsonSchema([]string{"subject_id"}, bson.M{
		"subject_id":  slugField,
		"exam_board":  optRef,
		"past_papers": bson.M{"bsonType": bson.A{"array", "null"}, "items": paper},
	})
}

func examBoardPagesSchema() bson.M {
	return jsonSchema([]string{"subject_slug"}, bson.M{
		"subject_slug": slugField,
	})
}

func sectionsSchema() bson.M {
	return jsonSchema([]string{"type"}, bson.M{
		"type": bson.M{"enum": enumOf(models.AllSectionTypes)},
	})
}

func submissionsSchema() bson.M {
	return jsonSchema(
		[]string{"full_name", "country", "email", "phone", "tutoring_details", "hourly_budget", "submitted_at", "status"},
		bson.M{
			"full_name":        nonBlank,
			"country":          nonBlank,
			"email":            nonBlank,
			"phone":            nonBlank,
			"tutoring_details": nonBlank,
			"hourly_budget":    nonBlank,
			"submitted_at":     bson.M{"bsonType": "date"},
			"status":           bson.M{"enum": enumOf(models.AllSubmissionStatuses)},
			"notes":            bson.M{"bsonType": "string"},
		},
	)
}
