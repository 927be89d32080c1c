package seeding

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dalemusser/stratapapers/internal/app/system/inputval"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

// Bundle is a content import file. Catalog documents reference each other by
// slug; references are resolved against the bundle first and then against
// documents already in the store.
type Bundle struct {
	ExamBoards     []ExamBoardDoc   `yaml:"exam_boards"`
	Subjects       []SubjectDoc     `yaml:"subjects"`
	Topics         []TopicDoc       `yaml:"topics"`
	PastPapers     []PastPaperDoc   `yaml:"past_papers"`
	Questions      []QuestionDoc    `yaml:"questions"`
	SubjectPages   []map[string]any `yaml:"subject_pages"`
	ExamBoardPages []map[string]any `yaml:"exam_board_pages"`
	Sections       []map[string]any `yaml:"sections"`
}

// AssetDoc is an uploaded file reference.
type AssetDoc struct {
	Path string `yaml:"path"`
	Name string `yaml:"name"`
	Alt  string `yaml:"alt"`
}

func (a *AssetDoc) model() *models.Asset {
	if a == nil || strings.TrimSpace(a.Path) == "" {
		return nil
	}
	return &models.Asset{Path: a.Path, Name: a.Name, Alt: a.Alt}
}

// PillDoc accepts either a bare string (a label) or a {kind, text, url} map.
type PillDoc struct {
	models.Pill
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PillDoc) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		p.Pill = models.LabelPill(n.Value)
		return nil
	}
	var raw struct {
		Kind string `yaml:"kind"`
		Text string `yaml:"text"`
		URL  string `yaml:"url"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	kind := models.PillKind(raw.Kind)
	switch kind {
	case "", models.PillLabel:
		kind = models.PillLabel
	case models.PillLink:
	default:
		return fmt.Errorf("line %d: unknown pill kind %q", n.Line, raw.Kind)
	}
	p.Pill = models.Pill{Kind: kind, Text: raw.Text, URL: raw.URL}
	return nil
}

// ExamBoardDoc is an exam board entry.
type ExamBoardDoc struct {
	Name        string    `yaml:"name" validate:"required" label:"Name"`
	Slug        string    `yaml:"slug" validate:"required,slug" label:"Slug"`
	Description string    `yaml:"description"`
	Logo        *AssetDoc `yaml:"logo"`
	WebsiteURL  string    `yaml:"website_url" validate:"httpurl" label:"Website URL"`
	Pills       []PillDoc `yaml:"pills"`
	Active      *bool     `yaml:"active"`
}

// SubjectDoc is a subject entry. ExamBoards and Topics are slugs in display
// order.
type SubjectDoc struct {
	Title       string    `yaml:"title" validate:"required" label:"Title"`
	Slug        string    `yaml:"slug" validate:"required,slug" label:"Slug"`
	Description string    `yaml:"description"`
	Image       *AssetDoc `yaml:"image"`
	ExamBoards  []string  `yaml:"exam_boards"`
	Topics      []string  `yaml:"topics"`
	Order       int       `yaml:"order"`
	Active      *bool     `yaml:"active"`
}

// TopicDoc is a topic entry.
type TopicDoc struct {
	Title       string   `yaml:"title" validate:"required" label:"Title"`
	Slug        string   `yaml:"slug" validate:"required,slug" label:"Slug"`
	Description string   `yaml:"description"`
	Subject     string   `yaml:"subject" validate:"required,slug" label:"Subject"`
	ExamBoards  []string `yaml:"exam_boards"`
	Order       int      `yaml:"order"`
	Active      *bool    `yaml:"active"`
}

// PastPaperDoc is a catalog paper entry.
type PastPaperDoc struct {
	Title         string    `yaml:"title" validate:"required" label:"Title"`
	Slug          string    `yaml:"slug" validate:"required,slug" label:"Slug"`
	Subject       string    `yaml:"subject" validate:"required,slug" label:"Subject"`
	ExamBoard     string    `yaml:"exam_board" validate:"required,slug" label:"Exam board"`
	Topic         string    `yaml:"topic"`
	Year          int       `yaml:"year"`
	Season        string    `yaml:"season" validate:"required,season" label:"Season"`
	PaperNumber   int       `yaml:"paper_number"`
	Level         string    `yaml:"level" validate:"required,level" label:"Level"`
	QuestionPaper *AssetDoc `yaml:"question_paper"`
	MarkScheme    *AssetDoc `yaml:"mark_scheme"`
	Active        *bool     `yaml:"active"`
}

// QuestionDoc is a question within a catalog paper.
type QuestionDoc struct {
	Title          string `yaml:"title" validate:"required" label:"Title"`
	QuestionNumber string `yaml:"question_number" validate:"required" label:"Question number"`
	Marks          int    `yaml:"marks"`
	Difficulty     string `yaml:"difficulty" validate:"required,difficulty" label:"Difficulty"`
	Topic          string `yaml:"topic"`
	PastPaper      string `yaml:"past_paper" validate:"required,slug" label:"Past paper"`
	Body           string `yaml:"body"`
	Active         *bool  `yaml:"active"`
}

func active(b *bool) bool {
	return b == nil || *b
}

// Parse decodes a bundle. Unknown top-level keys are rejected.
func Parse(r io.Reader) (*Bundle, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var b Bundle
	if err := dec.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return &b, nil
		}
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	return &b, nil
}

// ParseFile reads and decodes a bundle file.
func ParseFile(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// DemoBundle returns the bundled demo content.
func DemoBundle() (*Bundle, error) {
	return Parse(strings.NewReader(string(demoYAML)))
}

// Validate checks every entry before anything is written. All problems are
// reported together.
func (b *Bundle) Validate() error {
	var problems []string
	check := func(kind string, i int, v any) {
		if res := inputval.ValidateAll(v); res.HasErrors() {
			problems = append(problems, fmt.Sprintf("%s[%d]: %s", kind, i, res.All()))
		}
	}
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	for i, d := range b.ExamBoards {
		check("exam_boards", i, d)
		if len(d.Pills) > models.MaxRecommendedPills {
			add("exam_boards[%d]: %d pills, at most %d are shown", i, len(d.Pills), models.MaxRecommendedPills)
		}
	}
	for i, d := range b.Subjects {
		check("subjects", i, d)
	}
	for i, d := range b.Topics {
		check("topics", i, d)
	}
	for i, d := range b.PastPapers {
		check("past_papers", i, d)
		if d.Year < models.MinPaperYear || d.Year > models.MaxPaperYear {
			add("past_papers[%d]: year %d outside %d-%d", i, d.Year, models.MinPaperYear, models.MaxPaperYear)
		}
		if d.PaperNumber < models.MinPaperNumber || d.PaperNumber > models.MaxPaperNumber {
			add("past_papers[%d]: paper number %d outside %d-%d", i, d.PaperNumber, models.MinPaperNumber, models.MaxPaperNumber)
		}
	}
	for i, d := range b.Questions {
		check("questions", i, d)
		if d.Marks < models.MinQuestionMarks || d.Marks > models.MaxQuestionMarks {
			add("questions[%d]: marks %d outside %d-%d", i, d.Marks, models.MinQuestionMarks, models.MaxQuestionMarks)
		}
	}
	for i, p := range b.SubjectPages {
		if id, _ := p["subject_id"].(string); !models.IsValidSlug(id) {
			add("subject_pages[%d]: subject_id %q must match %s", i, id, models.SlugPattern)
		}
	}
	for i, p := range b.ExamBoardPages {
		if s, _ := p["subject_slug"].(string); !models.IsValidSlug(s) {
			add("exam_board_pages[%d]: subject_slug %q must match %s", i, s, models.SlugPattern)
		}
	}
	for i, s := range b.Sections {
		typ, _ := s["type"].(string)
		if !isSectionType(typ) {
			add("sections[%d]: unknown type %q", i, typ)
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func isSectionType(t string) bool {
	for _, s := range models.AllSectionTypes {
		if s == t {
			return true
		}
	}
	return false
}
