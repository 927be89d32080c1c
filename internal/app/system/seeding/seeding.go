// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedAll loads the demo bundle when the store holds no subjects. A store
// with any content is left alone.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	n, err := db.Collection(contentstore.SubjectsCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		logger.Error("failed to count subjects", zap.Error(err))
		return err
	}
	if n > 0 {
		logger.Info("content present, demo seed skipped", zap.Int64("subjects", n))
		return nil
	}

	b, err := DemoBundle()
	if err != nil {
		return err
	}
	res, err := Import(ctx, db, b)
	if err != nil {
		logger.Error("failed to seed demo content", zap.Error(err))
		return err
	}
	logger.Info("seeded demo content",
		zap.Int("subjects", res.Subjects),
		zap.Int("exam_boards", res.ExamBoards),
		zap.Int("past_papers", res.PastPapers),
		zap.Int("sections", res.Sections))
	return nil
}
