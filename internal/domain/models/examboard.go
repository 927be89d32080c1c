package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExamBoard is an awarding body such as Cambridge or Edexcel.
type ExamBoard struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Logo        *Asset             `bson:"logo,omitempty" json:"logo,omitempty"`
	WebsiteURL  string             `bson:"website_url,omitempty" json:"website_url,omitempty"`
	Pills       []Pill             `bson:"pills,omitempty" json:"pills,omitempty"`
	Active      bool               `bson:"active" json:"active"`

	CreatedAt *time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
