// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup and by `paperctl schema ensure`. Each ensure*
function is idempotent. Errors are aggregated so every problem is visible and
startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	steps := []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"subjects", ensureSubjects},
		{"exam_boards", ensureExamBoards},
		{"topics", ensureTopics},
		{"past_papers", ensurePastPapers},
		{"questions", ensureQuestions},
		{"subject_pages", ensureSubjectPages},
		{"exam_board_pages", ensureExamBoardPages},
		{"site_sections", ensureSections},
		{"contact_submissions", ensureSubmissions},
		{"contact_rate_limits", ensureRateLimits},
	}
	for _, s := range steps {
		if err := s.fn(ctx, db); err != nil {
			problems = append(problems, s.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))

		// 1) Load existing indexes
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			defer cur.Close(ctx)
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					zap.L().Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
		}

		if ex, ok := existing[desiredSig]; ok {
			// Same key pattern exists already.
			if sameBoolPtr(desiredUnique, ex.Unique) {
				// Names aligned (or we don't care) → reuse
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Bool("unique", ex.Unique != nil && *ex.Unique),
					zap.String("took", time.Since(start).String()))
				continue
			}

			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				zap.L().Warn("drop existing index failed",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
					errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
				} else {
					errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				}
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
			continue
		}

		// 2) No existing index with the same keys: create it.
		if created, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				zap.L().Warn("index ensure failed (options conflict)",
					zap.String("collection", coll.Name()),
					zap.String("name", desiredName),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}

			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		} else {
			zap.L().Info("index ensured",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("created_name", created),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Catalog                                                                    */
/* -------------------------------------------------------------------------- */

func ensureSubjects(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("subjects")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_subjects_slug"),
		},
		// Homepage grid: active subjects by order
		{
			Keys: bson.D{
				{Key: "active", Value: 1},
				{Key: "order", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_subjects_active_order_id"),
		},
	})
}

func ensureExamBoards(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("exam_boards")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_exam_boards_slug"),
		},
		{
			Keys: bson.D{
				{Key: "active", Value: 1},
				{Key: "name", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_exam_boards_active_name_id"),
		},
	})
}

func ensureTopics(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("topics")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "subject", Value: 1},
				{Key: "active", Value: 1},
				{Key: "order", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_topics_subject_active_order_id"),
		},
	})
}

func ensurePastPapers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("past_papers")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_past_papers_slug"),
		},
		// Subject page catalog: subject + board, newest first
		{
			Keys: bson.D{
				{Key: "subject", Value: 1},
				{Key: "exam_board", Value: 1},
				{Key: "active", Value: 1},
				{Key: "year", Value: -1},
				{Key: "paper_number", Value: 1},
			},
			Options: options.Index().SetName("idx_past_papers_subject_board_active_year_number"),
		},
	})
}

func ensureQuestions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("questions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "past_paper", Value: 1},
				{Key: "active", Value: 1},
			},
			Options: options.Index().SetName("idx_questions_paper_active"),
		},
		{
			Keys:    bson.D{{Key: "topic", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("idx_questions_topic"),
		},
	})
}

/* -------------------------------------------------------------------------- */
/* Pages and singleton sections                                               */
/* -------------------------------------------------------------------------- */

func ensureSubjectPages(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("subject_pages")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Not unique: the generic page and each board page share subject_id,
		// and lookups take the first document by _id.
		{
			Keys: bson.D{
				{Key: "subject_id", Value: 1},
				{Key: "exam_board", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_subject_pages_subject_board_id"),
		},
	})
}

func ensureExamBoardPages(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("exam_board_pages")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "subject_slug", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_exam_board_pages_subject_id"),
		},
	})
}

func ensureSections(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("site_sections")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Deliberately not unique: extra documents of a type may exist and the
		// first by _id is live.
		{
			Keys: bson.D{
				{Key: "type", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_site_sections_type_id"),
		},
	})
}

/* -------------------------------------------------------------------------- */
/* Contact submissions                                                        */
/* -------------------------------------------------------------------------- */

func ensureSubmissions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("contact_submissions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Triage list: newest first, optionally by status
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "submitted_at", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("idx_contact_submissions_status_submitted_id"),
		},
		{
			Keys: bson.D{
				{Key: "submitted_at", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("idx_contact_submissions_submitted_id"),
		},
	})
}

func ensureRateLimits(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("contact_rate_limits")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Buckets are dropped once their window has passed.
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_contact_rate_limits_expires"),
		},
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetName("idx_contact_rate_limits_key"),
		},
	})
}
