// internal/app/store/content/pastpapers.go
package contentstore

import (
	"context"

	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PastPaperFilter narrows the catalog listing. Empty fields do not filter.
type PastPaperFilter struct {
	SubjectSlug   string
	ExamBoardSlug string
	Year          int
}

// PastPaperView is a catalog paper with asset URLs resolved.
type PastPaperView struct {
	ID               primitive.ObjectID
	Title            string
	Slug             string
	Year             int
	Season           models.Season
	PaperNumber      int
	Level            models.Level
	QuestionPaperURL string
	MarkSchemeURL    string
	QuestionCount    int
}

// SeasonLabel is the display name of the season.
func (p PastPaperView) SeasonLabel() string { return p.Season.Label() }

// LevelLabel is the display name of the level.
func (p PastPaperView) LevelLabel() string { return p.Level.Label() }

// ListActivePastPapers returns active catalog papers, newest year first and
// then by paper number. A subject or board slug that matches no active
// document yields an empty list.
func (s *Store) ListActivePastPapers(ctx context.Context, f PastPaperFilter) ([]PastPaperView, error) {
	filter := bson.M{"active": true}

	if f.SubjectSlug != "" {
		var subj models.Subject
		err := s.subjects.FindOne(ctx, bson.M{"slug": f.SubjectSlug, "active": true},
			options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&subj)
		if err != nil {
			if isNoDocuments(err) {
				return []PastPaperView{}, nil
			}
			return nil, err
		}
		filter["subject"] = subj.ID
	}
	if f.ExamBoardSlug != "" {
		board, err := s.activeExamBoardBySlug(ctx, f.ExamBoardSlug)
		if err != nil {
			return nil, err
		}
		if board == nil {
			return []PastPaperView{}, nil
		}
		filter["exam_board"] = board.ID
	}
	if f.Year > 0 {
		filter["year"] = f.Year
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "year", Value: -1},
		{Key: "paper_number", Value: 1},
		{Key: "_id", Value: 1},
	})
	cur, err := s.pastPapers.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var papers []models.PastPaper
	if err := cur.All(ctx, &papers); err != nil {
		return nil, err
	}

	out := make([]PastPaperView, 0, len(papers))
	for _, p := range papers {
		out = append(out, PastPaperView{
			ID:               p.ID,
			Title:            p.Title,
			Slug:             p.Slug,
			Year:             p.Year,
			Season:           p.Season,
			PaperNumber:      p.PaperNumber,
			Level:            p.Level,
			QuestionPaperURL: s.assetURL(p.QuestionPaper),
			MarkSchemeURL:    s.assetURL(p.MarkScheme),
			QuestionCount:    len(p.Questions),
		})
	}
	return out, nil
}
