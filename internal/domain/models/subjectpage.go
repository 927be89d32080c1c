package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubjectPage configures the /subjects/{subjectID} pages. A page with an
// ExamBoard reference serves /subjects/{subjectID}/{examBoard}; a page
// without one is the generic subject page.
type SubjectPage struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	SubjectID string              `bson:"subject_id" json:"subject_id"` // Matches the URL segment exactly
	ExamBoard *primitive.ObjectID `bson:"exam_board,omitempty" json:"exam_board,omitempty"`

	Header   SubjectPageHeader `bson:"header" json:"header"`
	Badges   SubjectPageBadges `bson:"badges" json:"badges"`
	Database DatabaseSection   `bson:"database_section" json:"database_section"`
	Papers   []InlinePaper     `bson:"past_papers" json:"past_papers"`
	Sidebar  Sidebar           `bson:"sidebar" json:"sidebar"`
	SEO      SEO               `bson:"seo" json:"seo"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// SubjectPageHeader is the page hero.
type SubjectPageHeader struct {
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// SubjectPageBadges are the pills under the page title.
type SubjectPageBadges struct {
	ResourcesBadge string `bson:"resources_badge,omitempty" json:"resources_badge,omitempty"` // May contain {count}
	ExamBoardBadge string `bson:"exam_board_badge,omitempty" json:"exam_board_badge,omitempty"`
}

// DatabaseSection labels the filterable paper table.
type DatabaseSection struct {
	Title              string `bson:"title,omitempty" json:"title,omitempty"`
	ShowingText        string `bson:"showing_text,omitempty" json:"showing_text,omitempty"` // May contain {filtered} and {total}
	YearLabel          string `bson:"year_label,omitempty" json:"year_label,omitempty"`
	SessionLabel       string `bson:"session_label,omitempty" json:"session_label,omitempty"`
	TypeLabel          string `bson:"type_label,omitempty" json:"type_label,omitempty"`
	AllLabel           string `bson:"all_label,omitempty" json:"all_label,omitempty"`
	ResetLabel         string `bson:"reset_label,omitempty" json:"reset_label,omitempty"`
	EmptyText          string `bson:"empty_text,omitempty" json:"empty_text,omitempty"`
	QuestionPaperLabel string `bson:"question_paper_label,omitempty" json:"question_paper_label,omitempty"`
	MarkSchemeLabel    string `bson:"mark_scheme_label,omitempty" json:"mark_scheme_label,omitempty"`
}

// InlinePaper is a paper listed directly on a SubjectPage. A link may be an
// explicit URL, an uploaded file, or both.
type InlinePaper struct {
	Title              string `bson:"title" json:"title"`
	Year               string `bson:"year" json:"year"` // Four digits
	Session            string `bson:"session,omitempty" json:"session,omitempty"`
	Curriculum         string `bson:"curriculum,omitempty" json:"curriculum,omitempty"`
	PaperType          string `bson:"paper_type,omitempty" json:"paper_type,omitempty"`
	QuestionPaperURL   string `bson:"question_paper_url,omitempty" json:"question_paper_url,omitempty"`
	QuestionPaperFile  *Asset `bson:"question_paper_file,omitempty" json:"question_paper_file,omitempty"`
	MarkSchemeURL      string `bson:"mark_scheme_url,omitempty" json:"mark_scheme_url,omitempty"`
	MarkSchemeFile     *Asset `bson:"mark_scheme_file,omitempty" json:"mark_scheme_file,omitempty"`
	QuestionPaperLabel string `bson:"question_paper_label,omitempty" json:"question_paper_label,omitempty"`
	MarkSchemeLabel    string `bson:"mark_scheme_label,omitempty" json:"mark_scheme_label,omitempty"`
}

// Sidebar is the right-hand column of a subject page.
type Sidebar struct {
	QuickStats      QuickStats `bson:"quick_stats" json:"quick_stats"`
	PrimaryButton   Button     `bson:"primary_button" json:"primary_button"`
	SecondaryButton Button     `bson:"secondary_button" json:"secondary_button"`
	TutorPromo      TutorPromo `bson:"tutor_promo" json:"tutor_promo"`
}

// QuickStats labels the paper statistics box.
type QuickStats struct {
	Title             string `bson:"title,omitempty" json:"title,omitempty"`
	TotalPapersLabel  string `bson:"total_papers_label,omitempty" json:"total_papers_label,omitempty"`
	YearsCoveredLabel string `bson:"years_covered_label,omitempty" json:"years_covered_label,omitempty"`
	LatestYearLabel   string `bson:"latest_year_label,omitempty" json:"latest_year_label,omitempty"`
}

// TutorPromo advertises tutors for the subject.
type TutorPromo struct {
	Title       string  `bson:"title,omitempty" json:"title,omitempty"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Tutors      []Tutor `bson:"tutors,omitempty" json:"tutors,omitempty"`
	Button      Button  `bson:"button" json:"button"`
}

// Tutor is one tutor card in the promotion block.
type Tutor struct {
	Name       string `bson:"name" json:"name"`
	Subject    string `bson:"subject,omitempty" json:"subject,omitempty"`
	Experience string `bson:"experience,omitempty" json:"experience,omitempty"`
	Rating     string `bson:"rating,omitempty" json:"rating,omitempty"`
	Photo      *Asset `bson:"photo,omitempty" json:"photo,omitempty"`
}

// Button is a labelled link.
type Button struct {
	Text string `bson:"text,omitempty" json:"text,omitempty"`
	URL  string `bson:"url,omitempty" json:"url,omitempty"`
}

// SEO is page metadata.
type SEO struct {
	MetaTitle       string   `bson:"meta_title,omitempty" json:"meta_title,omitempty"`
	MetaDescription string   `bson:"meta_description,omitempty" json:"meta_description,omitempty"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
	OGImage         *Asset   `bson:"og_image,omitempty" json:"og_image,omitempty"`
}
