package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Topic is a syllabus topic within a subject.
type Topic struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string               `bson:"title" json:"title"`
	Slug        string               `bson:"slug" json:"slug"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Subject     primitive.ObjectID   `bson:"subject" json:"subject"`
	ExamBoards  []primitive.ObjectID `bson:"exam_boards,omitempty" json:"exam_boards,omitempty"`
	Order       int                  `bson:"order" json:"order"`
	Active      bool                 `bson:"active" json:"active"`

	CreatedAt *time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
