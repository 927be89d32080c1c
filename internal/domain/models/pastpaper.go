package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Season is the exam sitting a paper belongs to.
type Season string

const (
	SeasonJanuary         Season = "january"
	SeasonMayJune         Season = "may_june"
	SeasonOctoberNovember Season = "october_november"
	SeasonFebruaryMarch   Season = "february_march"
	SeasonSummer          Season = "summer"
	SeasonWinter          Season = "winter"
)

// AllSeasons lists seasons in calendar order.
var AllSeasons = []Season{
	SeasonJanuary,
	SeasonFebruaryMarch,
	SeasonMayJune,
	SeasonSummer,
	SeasonOctoberNovember,
	SeasonWinter,
}

var seasonLabels = map[Season]string{
	SeasonJanuary:         "January",
	SeasonMayJune:         "May/June",
	SeasonOctoberNovember: "October/November",
	SeasonFebruaryMarch:   "February/March",
	SeasonSummer:          "Summer",
	SeasonWinter:          "Winter",
}

// Label returns the display name of the season.
func (s Season) Label() string {
	if l, ok := seasonLabels[s]; ok {
		return l
	}
	return string(s)
}

// IsValidSeason checks a season value.
func IsValidSeason(s string) bool {
	_, ok := seasonLabels[Season(s)]
	return ok
}

// Level is the qualification level of a paper.
type Level string

const (
	LevelGCSE    Level = "gcse"
	LevelIGCSE   Level = "igcse"
	LevelASLevel Level = "as_level"
	LevelALevel  Level = "a_level"
	LevelIB      Level = "ib"
	LevelOLevel  Level = "o_level"
)

// AllLevels lists every qualification level.
var AllLevels = []Level{LevelGCSE, LevelIGCSE, LevelOLevel, LevelASLevel, LevelALevel, LevelIB}

var levelLabels = map[Level]string{
	LevelGCSE:    "GCSE",
	LevelIGCSE:   "IGCSE",
	LevelASLevel: "AS Level",
	LevelALevel:  "A Level",
	LevelIB:      "IB",
	LevelOLevel:  "O Level",
}

// Label returns the display name of the level.
func (l Level) Label() string {
	if v, ok := levelLabels[l]; ok {
		return v
	}
	return string(l)
}

// IsValidLevel checks a level value.
func IsValidLevel(s string) bool {
	_, ok := levelLabels[Level(s)]
	return ok
}

// Paper year and number bounds enforced by the store validator.
const (
	MinPaperYear   = 2000
	MaxPaperYear   = 2030
	MinPaperNumber = 1
	MaxPaperNumber = 9
)

// PastPaper is a catalog entry for one exam paper.
//
// It is independent of the papers embedded in a SubjectPage; the two are
// never reconciled.
type PastPaper struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string               `bson:"title" json:"title"`
	Slug          string               `bson:"slug" json:"slug"`
	Subject       primitive.ObjectID   `bson:"subject" json:"subject"`
	ExamBoard     primitive.ObjectID   `bson:"exam_board" json:"exam_board"`
	Topic         *primitive.ObjectID  `bson:"topic,omitempty" json:"topic,omitempty"`
	Year          int                  `bson:"year" json:"year"`
	Season        Season               `bson:"season" json:"season"`
	PaperNumber   int                  `bson:"paper_number" json:"paper_number"`
	Level         Level                `bson:"level" json:"level"`
	QuestionPaper *Asset               `bson:"question_paper,omitempty" json:"question_paper,omitempty"`
	MarkScheme    *Asset               `bson:"mark_scheme,omitempty" json:"mark_scheme,omitempty"`
	Questions     []primitive.ObjectID `bson:"questions,omitempty" json:"questions,omitempty"`
	Active        bool                 `bson:"active" json:"active"`

	CreatedAt *time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
