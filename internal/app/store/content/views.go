// internal/app/store/content/views.go
package contentstore

import (
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubjectView is a subject with resolved references and image URL.
type SubjectView struct {
	ID          primitive.ObjectID
	Title       string
	Slug        string
	Description string
	ImageURL    string
	ImageAlt    string
	Order       int
	ExamBoards  []ExamBoardView
	Topics      []TopicView
}

// ExamBoardView is an exam board with its logo URL resolved.
type ExamBoardView struct {
	ID          primitive.ObjectID
	Name        string
	Slug        string
	Description string
	LogoURL     string
	WebsiteURL  string
	Pills       []models.Pill
}

// TopicView is a topic as listed under a subject.
type TopicView struct {
	ID          primitive.ObjectID
	Title       string
	Slug        string
	Description string
	Order       int
}

func (s *Store) examBoardView(b models.ExamBoard) ExamBoardView {
	return ExamBoardView{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		LogoURL:     s.assetURL(b.Logo),
		WebsiteURL:  b.WebsiteURL,
		Pills:       b.Pills,
	}
}

func topicView(t models.Topic) TopicView {
	return TopicView{
		ID:          t.ID,
		Title:       t.Title,
		Slug:        t.Slug,
		Description: t.Description,
		Order:       t.Order,
	}
}

// subjectView orders looked-up boards and topics by the subject's own
// reference lists. References to missing or inactive documents are skipped.
func (s *Store) subjectView(row subjectRow) SubjectView {
	v := SubjectView{
		ID:          row.ID,
		Title:       row.Title,
		Slug:        row.Slug,
		Description: row.Description,
		ImageURL:    s.assetURL(row.Image),
		Order:       row.Order,
		ExamBoards:  []ExamBoardView{},
		Topics:      []TopicView{},
	}
	if row.Image != nil {
		v.ImageAlt = row.Image.Alt
	}

	boards := make(map[primitive.ObjectID]models.ExamBoard, len(row.BoardDocs))
	for _, b := range row.BoardDocs {
		boards[b.ID] = b
	}
	for _, id := range row.ExamBoards {
		if b, ok := boards[id]; ok {
			v.ExamBoards = append(v.ExamBoards, s.examBoardView(b))
			delete(boards, id)
		}
	}

	topics := make(map[primitive.ObjectID]models.Topic, len(row.TopicDocs))
	for _, t := range row.TopicDocs {
		topics[t.ID] = t
	}
	for _, id := range row.Topics {
		if t, ok := topics[id]; ok {
			v.Topics = append(v.Topics, topicView(t))
			delete(topics, id)
		}
	}
	return v
}
