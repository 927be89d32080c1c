// internal/app/features/home/resolve.go
package home

import (
	"html/template"
	"strings"

	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/app/system/fallback"
	"github.com/dalemusser/stratapapers/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratapapers/internal/app/system/icons"
	"github.com/dalemusser/stratapapers/internal/app/system/viewdata"
	"github.com/dalemusser/stratapapers/internal/domain/models"
)

// Each Resolve function maps one CMS section (nil when not authored) onto
// its view model, filling every empty field from models/defaults.go.

// AssetURLFunc resolves an uploaded asset to a public URL.
type AssetURLFunc func(*models.Asset) string

// HeroVM is the resolved hero.
type HeroVM struct {
	Badge           string
	Title           string
	Highlight       string
	Description     string
	PrimaryButton   models.Button
	SecondaryButton models.Button
	ImageURL        string
	ImageAlt        string
	Stats           []models.HeroStat
}

// ResolveHero applies hero defaults.
func ResolveHero(doc *models.HeroSection, urlFor AssetURLFunc) HeroVM {
	var d models.HeroSection
	if doc != nil {
		d = *doc
	}
	vm := HeroVM{
		Badge:           fallback.Text(d.Badge, models.DefaultHeroBadge),
		Title:           fallback.Text(d.Title, models.DefaultHeroTitle),
		Highlight:       fallback.Text(d.Highlight, models.DefaultHeroHighlight),
		Description:     fallback.Text(d.Description, models.DefaultHeroDescription),
		PrimaryButton:   viewdata.ResolveButton(d.PrimaryButton, models.DefaultHeroPrimaryButton),
		SecondaryButton: viewdata.ResolveButton(d.SecondaryButton, models.DefaultHeroSecondaryButton),
		Stats:           fallback.Slice(d.Stats, models.DefaultHeroStats),
	}
	if d.Image.HasFile() && urlFor != nil {
		vm.ImageURL = urlFor(d.Image)
		vm.ImageAlt = fallback.Text(d.Image.Alt, vm.Title)
	}
	return vm
}

// SubjectCardVM is one card in the subjects grid.
type SubjectCardVM struct {
	Title       string
	Description string
	ImageURL    string
	ImageAlt    string
	URL         string
	BoardsURL   string
	ExamBoards  []string
	TopicCount  int
}

// SubjectsVM is the resolved subjects grid.
type SubjectsVM struct {
	Title        string
	Subtitle     string
	ViewLabel    string
	EmptyMessage string
	Items        []SubjectCardVM
}

// ResolveSubjects applies section defaults and maps the live subject list.
func ResolveSubjects(doc *models.SubjectsSection, subjects []contentstore.SubjectView) SubjectsVM {
	var d models.SubjectsSection
	if doc != nil {
		d = *doc
	}
	vm := SubjectsVM{
		Title:        fallback.Text(d.Title, models.DefaultSubjectsTitle),
		Subtitle:     fallback.Text(d.Subtitle, models.DefaultSubjectsSubtitle),
		ViewLabel:    fallback.Text(d.ViewLabel, models.DefaultSubjectsViewLabel),
		EmptyMessage: fallback.Text(d.EmptyMessage, models.DefaultSubjectsEmpty),
		Items:        make([]SubjectCardVM, 0, len(subjects)),
	}
	for _, s := range subjects {
		card := SubjectCardVM{
			Title:       s.Title,
			Description: s.Description,
			ImageURL:    s.ImageURL,
			ImageAlt:    fallback.Text(s.ImageAlt, s.Title),
			URL:         "/subjects/" + s.Slug,
			BoardsURL:   "/exam-boards/" + s.Slug,
			TopicCount:  len(s.Topics),
		}
		for _, b := range s.ExamBoards {
			card.ExamBoards = append(card.ExamBoards, b.Name)
		}
		vm.Items = append(vm.Items, card)
	}
	return vm
}

// ExamBoardCardVM is one card in the exam boards strip.
type ExamBoardCardVM struct {
	Name        string
	Description string
	LogoURL     string
	WebsiteURL  string
	Pills       []viewdata.PillVM
}

// ExamBoardsVM is the resolved exam boards strip.
type ExamBoardsVM struct {
	Title        string
	Subtitle     string
	VisitLabel   string
	EmptyMessage string
	Items        []ExamBoardCardVM
}

// ResolveExamBoards applies section defaults and maps the live board list.
func ResolveExamBoards(doc *models.ExamBoardsSection, boards []contentstore.ExamBoardView) ExamBoardsVM {
	var d models.ExamBoardsSection
	if doc != nil {
		d = *doc
	}
	vm := ExamBoardsVM{
		Title:        fallback.Text(d.Title, models.DefaultExamBoardsTitle),
		Subtitle:     fallback.Text(d.Subtitle, models.DefaultExamBoardsSubtitle),
		VisitLabel:   fallback.Text(d.VisitLabel, models.DefaultExamBoardsVisit),
		EmptyMessage: fallback.Text(d.EmptyMessage, models.DefaultExamBoardsEmpty),
		Items:        make([]ExamBoardCardVM, 0, len(boards)),
	}
	for _, b := range boards {
		vm.Items = append(vm.Items, ExamBoardCardVM{
			Name:        b.Name,
			Description: b.Description,
			LogoURL:     b.LogoURL,
			WebsiteURL:  b.WebsiteURL,
			Pills:       viewdata.Pills(b.Pills),
		})
	}
	return vm
}

// FeatureVM is one why-choose card.
type FeatureVM struct {
	Icon        template.HTML
	Title       string
	Description string
}

// WhyChooseVM is the resolved why-choose section.
type WhyChooseVM struct {
	Title    string
	Subtitle string
	Features []FeatureVM
}

// ResolveWhyChoose applies defaults and maps icon names to SVG.
func ResolveWhyChoose(doc *models.WhyChooseSection) WhyChooseVM {
	var d models.WhyChooseSection
	if doc != nil {
		d = *doc
	}
	features := fallback.Slice(d.Features, models.DefaultFeatures)
	vm := WhyChooseVM{
		Title:    fallback.Text(d.Title, models.DefaultWhyChooseTitle),
		Subtitle: fallback.Text(d.Subtitle, models.DefaultWhyChooseSubtitle),
		Features: make([]FeatureVM, 0, len(features)),
	}
	for _, f := range features {
		vm.Features = append(vm.Features, FeatureVM{
			Icon:        icons.Lookup(f.Icon),
			Title:       f.Title,
			Description: f.Description,
		})
	}
	return vm
}

// FAQItemVM is one FAQ entry with its answer sanitized.
type FAQItemVM struct {
	Question string
	Answer   template.HTML
}

// FAQVM is the resolved FAQ.
type FAQVM struct {
	Title    string
	Subtitle string
	Items    []FAQItemVM
}

// ResolveFAQ applies defaults and sanitizes answers.
func ResolveFAQ(doc *models.FAQSection) FAQVM {
	var d models.FAQSection
	if doc != nil {
		d = *doc
	}
	items := fallback.Slice(d.Items, models.DefaultFAQItems)
	vm := FAQVM{
		Title:    fallback.Text(d.Title, models.DefaultFAQTitle),
		Subtitle: fallback.Text(d.Subtitle, models.DefaultFAQSubtitle),
		Items:    make([]FAQItemVM, 0, len(items)),
	}
	for _, it := range items {
		vm.Items = append(vm.Items, FAQItemVM{
			Question: it.Question,
			Answer:   htmlsanitize.PrepareForDisplay(it.Answer),
		})
	}
	return vm
}

// TestimonialVM is one quote.
type TestimonialVM struct {
	Name      string
	Role      string
	Quote     string
	Rating    int
	AvatarURL string
	Initials  string
}

// Stars returns a slice the template can range over once per star.
func (t TestimonialVM) Stars() []struct{} {
	return make([]struct{}, t.Rating)
}

// TestimonialsVM is the resolved testimonials section. An empty Items
// hides the section.
type TestimonialsVM struct {
	Title    string
	Subtitle string
	Items    []TestimonialVM
}

// ResolveTestimonials applies defaults and clamps ratings to 0..5.
func ResolveTestimonials(doc *models.TestimonialsSection, urlFor AssetURLFunc) TestimonialsVM {
	var d models.TestimonialsSection
	if doc != nil {
		d = *doc
	}
	vm := TestimonialsVM{
		Title:    fallback.Text(d.Title, models.DefaultTestimonialsTitle),
		Subtitle: fallback.Text(d.Subtitle, models.DefaultTestimonialsSubtitle),
	}
	for _, t := range d.Items {
		if strings.TrimSpace(t.Quote) == "" {
			continue
		}
		item := TestimonialVM{
			Name:     t.Name,
			Role:     t.Role,
			Quote:    t.Quote,
			Rating:   min(max(t.Rating, 0), 5),
			Initials: initials(t.Name),
		}
		if t.Avatar.HasFile() && urlFor != nil {
			item.AvatarURL = urlFor(t.Avatar)
		}
		vm.Items = append(vm.Items, item)
	}
	return vm
}

func initials(name string) string {
	var b strings.Builder
	for _, f := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(f)[:1])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

// ContactVM is the resolved contact form.
type ContactVM struct {
	Title          string
	Subtitle       string
	Labels         models.ContactFormLabels
	SuccessMessage string
}

// ResolveContact applies defaults field by field, so a CMS document that
// sets only some labels keeps the default text for the rest.
func ResolveContact(doc *models.ContactFormSection) ContactVM {
	var d models.ContactFormSection
	if doc != nil {
		d = *doc
	}
	def := models.DefaultContactLabels
	return ContactVM{
		Title:    fallback.Text(d.Title, models.DefaultContactTitle),
		Subtitle: fallback.Text(d.Subtitle, models.DefaultContactSubtitle),
		Labels: models.ContactFormLabels{
			FullName:        fallback.Text(d.Labels.FullName, def.FullName),
			Country:         fallback.Text(d.Labels.Country, def.Country),
			Email:           fallback.Text(d.Labels.Email, def.Email),
			Phone:           fallback.Text(d.Labels.Phone, def.Phone),
			TutoringDetails: fallback.Text(d.Labels.TutoringDetails, def.TutoringDetails),
			HourlyBudget:    fallback.Text(d.Labels.HourlyBudget, def.HourlyBudget),
			Submit:          fallback.Text(d.Labels.Submit, def.Submit),
		},
		SuccessMessage: fallback.Text(d.SuccessMessage, models.DefaultContactSuccessMessage),
	}
}
