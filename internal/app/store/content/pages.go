// internal/app/store/content/pages.go
package contentstore

import (
	"context"

	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExamBoardPageView is an exam board page plus the live active board catalog.
type ExamBoardPageView struct {
	Page       models.ExamBoardPage
	ExamBoards []ExamBoardView
}

// SubjectPageView is a subject page with every file asset resolved.
type SubjectPageView struct {
	Page       models.SubjectPage
	ExamBoard  *ExamBoardView // set when the page is exam-board specific
	Papers     []PaperView
	OGImageURL string
	Tutors     []TutorView
}

// PaperView is an inline paper with both link sources kept apart.
// Callers decide precedence between the uploaded file and the explicit URL.
type PaperView struct {
	models.InlinePaper
	QuestionPaperFileURL string
	MarkSchemeFileURL    string
}

// TutorView is a tutor card with its photo URL resolved.
type TutorView struct {
	models.Tutor
	PhotoURL string
}

// GetExamBoardPage returns the page for subjectSlug together with a freshly
// queried list of all active exam boards, or nil if no page exists.
func (s *Store) GetExamBoardPage(ctx context.Context, subjectSlug string) (*ExamBoardPageView, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	var page models.ExamBoardPage
	err := s.examBoardPages.FindOne(ctx, bson.M{"subject_slug": subjectSlug}, opts).Decode(&page)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	boards, err := s.ListActiveExamBoards(ctx)
	if err != nil {
		return nil, err
	}
	return &ExamBoardPageView{Page: page, ExamBoards: boards}, nil
}

// GetSubjectPage returns the generic (not exam-board specific) page for
// subjectID, or nil. The match on subject_id is exact.
func (s *Store) GetSubjectPage(ctx context.Context, subjectID string) (*SubjectPageView, error) {
	return s.findSubjectPage(ctx, bson.M{"subject_id": subjectID, "exam_board": nil}, nil)
}

// GetSubjectPageByExamBoard returns the page for subjectID that references
// the active exam board with examBoardSlug, or nil if the board or the page
// does not exist.
func (s *Store) GetSubjectPageByExamBoard(ctx context.Context, subjectID, examBoardSlug string) (*SubjectPageView, error) {
	board, err := s.activeExamBoardBySlug(ctx, examBoardSlug)
	if err != nil || board == nil {
		return nil, err
	}
	bv := s.examBoardView(*board)
	return s.findSubjectPage(ctx, bson.M{"subject_id": subjectID, "exam_board": board.ID}, &bv)
}

func (s *Store) findSubjectPage(ctx context.Context, filter bson.M, board *ExamBoardView) (*SubjectPageView, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	var page models.SubjectPage
	err := s.subjectPages.FindOne(ctx, filter, opts).Decode(&page)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.subjectPageView(page, board), nil
}

func (s *Store) subjectPageView(page models.SubjectPage, board *ExamBoardView) *SubjectPageView {
	v := &SubjectPageView{
		Page:       page,
		ExamBoard:  board,
		Papers:     make([]PaperView, 0, len(page.Papers)),
		OGImageURL: s.assetURL(page.SEO.OGImage),
	}
	for _, p := range page.Papers {
		v.Papers = append(v.Papers, PaperView{
			InlinePaper:          p,
			QuestionPaperFileURL: s.assetURL(p.QuestionPaperFile),
			MarkSchemeFileURL:    s.assetURL(p.MarkSchemeFile),
		})
	}
	for _, t := range page.Sidebar.TutorPromo.Tutors {
		v.Tutors = append(v.Tutors, TutorView{Tutor: t, PhotoURL: s.assetURL(t.Photo)})
	}
	return v
}
