package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty grades a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValidDifficulty checks a difficulty value.
func IsValidDifficulty(s string) bool {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Mark bounds enforced by the store validator.
const (
	MinQuestionMarks = 0
	MaxQuestionMarks = 100
)

// Question is a single question from a catalog past paper.
type Question struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Title          string              `bson:"title" json:"title"`
	QuestionNumber string              `bson:"question_number" json:"question_number"` // e.g. "3(b)(ii)"
	Marks          int                 `bson:"marks" json:"marks"`
	Difficulty     Difficulty          `bson:"difficulty" json:"difficulty"`
	Topic          *primitive.ObjectID `bson:"topic,omitempty" json:"topic,omitempty"`
	PastPaper      primitive.ObjectID  `bson:"past_paper" json:"past_paper"`
	Body           string              `bson:"body,omitempty" json:"body,omitempty"` // Rich text (HTML)
	Active         bool                `bson:"active" json:"active"`

	CreatedAt *time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
