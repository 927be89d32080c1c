// internal/app/store/content/contentstore.go
package contentstore

import (
	"context"

	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	SubjectsCollection       = "subjects"
	ExamBoardsCollection     = "exam_boards"
	TopicsCollection         = "topics"
	PastPapersCollection     = "past_papers"
	QuestionsCollection      = "questions"
	SubjectPagesCollection   = "subject_pages"
	ExamBoardPagesCollection = "exam_board_pages"
	SectionsCollection       = "site_sections"
)

// URLResolver turns a stored asset path into a public URL.
// storage.Store from waffle satisfies it.
type URLResolver interface {
	URL(path string) string
}

// Store is the read-only query catalog the public site renders from.
// Every list and detail query on catalog collections carries active: true.
// Absent documents come back as nil (or an empty slice), never as an error.
type Store struct {
	subjects       *mongo.Collection
	examBoards     *mongo.Collection
	topics         *mongo.Collection
	pastPapers     *mongo.Collection
	subjectPages   *mongo.Collection
	examBoardPages *mongo.Collection
	sections       *mongo.Collection
	urls           URLResolver
}

// New creates a content store. urls may be nil, in which case asset URLs
// resolve to "".
func New(db *mongo.Database, urls URLResolver) *Store {
	return &Store{
		subjects:       db.Collection(SubjectsCollection),
		examBoards:     db.Collection(ExamBoardsCollection),
		topics:         db.Collection(TopicsCollection),
		pastPapers:     db.Collection(PastPapersCollection),
		subjectPages:   db.Collection(SubjectPagesCollection),
		examBoardPages: db.Collection(ExamBoardPagesCollection),
		sections:       db.Collection(SectionsCollection),
		urls:           urls,
	}
}

// assetURL resolves an asset to its public URL.
func (s *Store) assetURL(a *models.Asset) string {
	if !a.HasFile() || s.urls == nil {
		return ""
	}
	return s.urls.URL(a.Path)
}

// subjectRow is a subject with its looked-up references.
type subjectRow struct {
	models.Subject `bson:",inline"`
	BoardDocs      []models.ExamBoard `bson:"board_docs"`
	TopicDocs      []models.Topic     `bson:"topic_docs"`
}

// activeLookup joins active documents whose _id is in the array field.
func activeLookup(from, field, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": from,
		"let":  bson.M{"ids": bson.M{"$ifNull": bson.A{"$" + field, bson.A{}}}},
		"pipeline": bson.A{
			bson.M{"$match": bson.M{
				"active": true,
				"$expr":  bson.M{"$in": bson.A{"$_id", "$$ids"}},
			}},
		},
		"as": as,
	}}}
}

func subjectPipeline(match bson.M, limit int64) mongo.Pipeline {
	p := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}}},
	}
	if limit > 0 {
		p = append(p, bson.D{{Key: "$limit", Value: limit}})
	}
	return append(p,
		activeLookup(ExamBoardsCollection, "exam_boards", "board_docs"),
		activeLookup(TopicsCollection, "topics", "topic_docs"),
	)
}

// ListActiveSubjects returns every active subject ordered by order ascending,
// ties broken by _id. Exam boards and topics are resolved in reference order
// and inactive references are dropped.
func (s *Store) ListActiveSubjects(ctx context.Context) ([]SubjectView, error) {
	cur, err := s.subjects.Aggregate(ctx, subjectPipeline(bson.M{"active": true}, 0))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []subjectRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]SubjectView, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.subjectView(row))
	}
	return out, nil
}

// GetSubjectBySlug returns the active subject with the slug, or nil.
func (s *Store) GetSubjectBySlug(ctx context.Context, slug string) (*SubjectView, error) {
	cur, err := s.subjects.Aggregate(ctx, subjectPipeline(bson.M{"slug": slug, "active": true}, 1))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []subjectRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	v := s.subjectView(rows[0])
	return &v, nil
}

// ListActiveExamBoards returns every active exam board sorted by name.
func (s *Store) ListActiveExamBoards(ctx context.Context) ([]ExamBoardView, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.examBoards.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var boards []models.ExamBoard
	if err := cur.All(ctx, &boards); err != nil {
		return nil, err
	}

	out := make([]ExamBoardView, 0, len(boards))
	for _, b := range boards {
		out = append(out, s.examBoardView(b))
	}
	return out, nil
}

// ListActiveTopics returns the active topics of a subject by order.
func (s *Store) ListActiveTopics(ctx context.Context, subjectID primitive.ObjectID) ([]TopicView, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.topics.Find(ctx, bson.M{"subject": subjectID, "active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var topics []models.Topic
	if err := cur.All(ctx, &topics); err != nil {
		return nil, err
	}

	out := make([]TopicView, 0, len(topics))
	for _, t := range topics {
		out = append(out, topicView(t))
	}
	return out, nil
}

// activeExamBoardBySlug returns the active board with the slug, or nil.
func (s *Store) activeExamBoardBySlug(ctx context.Context, slug string) (*models.ExamBoard, error) {
	var b models.ExamBoard
	err := s.examBoards.FindOne(ctx, bson.M{"slug": slug, "active": true}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func isNoDocuments(err error) bool {
	return err == mongo.ErrNoDocuments
}
