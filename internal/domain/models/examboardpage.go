package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExamBoardPage configures /exam-boards/{subjectSlug}. The exam boards it
// shows are always the live active catalog, not a list stored on the page.
type ExamBoardPage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SubjectSlug string             `bson:"subject_slug" json:"subject_slug"`

	Hero   ExamBoardPageHero   `bson:"hero" json:"hero"`
	Labels ExamBoardPageLabels `bson:"labels" json:"labels"`
	CTA    CallToAction        `bson:"cta" json:"cta"`
	SEO    SEO                 `bson:"seo" json:"seo"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ExamBoardPageHero is the page hero.
type ExamBoardPageHero struct {
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// ExamBoardPageLabels are the section headings and link labels.
type ExamBoardPageLabels struct {
	BoardsTitle    string `bson:"boards_title,omitempty" json:"boards_title,omitempty"`
	BoardsSubtitle string `bson:"boards_subtitle,omitempty" json:"boards_subtitle,omitempty"`
	VisitWebsite   string `bson:"visit_website,omitempty" json:"visit_website,omitempty"`
	ViewPapers     string `bson:"view_papers,omitempty" json:"view_papers,omitempty"`
}

// CallToAction is a closing banner with one button.
type CallToAction struct {
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Button      Button `bson:"button" json:"button"`
}
