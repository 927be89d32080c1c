package models

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subject is a school subject listed on the homepage grid.
type Subject struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string               `bson:"title" json:"title"`
	Slug        string               `bson:"slug" json:"slug"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Image       *Asset               `bson:"image,omitempty" json:"image,omitempty"`
	ExamBoards  []primitive.ObjectID `bson:"exam_boards" json:"exam_boards"` // Display order
	Topics      []primitive.ObjectID `bson:"topics" json:"topics"`           // Display order
	Order       int                  `bson:"order" json:"order"`
	Active      bool                 `bson:"active" json:"active"`

	CreatedAt *time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// SlugPattern is the shape of every slug and subject page identifier.
const SlugPattern = `^[a-z0-9-]+$`

var slugRe = regexp.MustCompile(SlugPattern)

// IsValidSlug checks a slug or subject page identifier.
func IsValidSlug(s string) bool {
	return slugRe.MatchString(s)
}
