package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Singleton section types stored in site_sections. The first document of a
// type (by _id) is the live one.
const (
	SectionHeader            = "header"
	SectionHero              = "hero"
	SectionFooter            = "footer"
	SectionFAQ               = "faq"
	SectionTestimonials      = "testimonials"
	SectionContactForm       = "contact_form"
	SectionWhyChoose         = "why_choose"
	SectionSubjectsSection   = "subjects_section"
	SectionExamBoardsSection = "exam_boards_section"
)

// AllSectionTypes lists every singleton section type.
var AllSectionTypes = []string{
	SectionHeader,
	SectionHero,
	SectionFooter,
	SectionFAQ,
	SectionTestimonials,
	SectionContactForm,
	SectionWhyChoose,
	SectionSubjectsSection,
	SectionExamBoardsSection,
}

// SectionMeta is embedded in every section document.
type SectionMeta struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type      string             `bson:"type" json:"type"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// NavLink is a labelled navigation link.
type NavLink struct {
	Label string `bson:"label" json:"label"`
	URL   string `bson:"url" json:"url"`
}

// HeaderSection is the site header.
type HeaderSection struct {
	SectionMeta `bson:",inline"`
	SiteName    string    `bson:"site_name,omitempty" json:"site_name,omitempty"`
	Logo        *Asset    `bson:"logo,omitempty" json:"logo,omitempty"`
	NavLinks    []NavLink `bson:"nav_links,omitempty" json:"nav_links,omitempty"`
	CTA         Button    `bson:"cta" json:"cta"`
}

// HeroStat is a headline number in the hero.
type HeroStat struct {
	Value string `bson:"value" json:"value"`
	Label string `bson:"label" json:"label"`
}

// HeroSection is the homepage hero.
type HeroSection struct {
	SectionMeta     `bson:",inline"`
	Badge           string     `bson:"badge,omitempty" json:"badge,omitempty"`
	Title           string     `bson:"title,omitempty" json:"title,omitempty"`
	Highlight       string     `bson:"highlight,omitempty" json:"highlight,omitempty"`
	Description     string     `bson:"description,omitempty" json:"description,omitempty"`
	PrimaryButton   Button     `bson:"primary_button" json:"primary_button"`
	SecondaryButton Button     `bson:"secondary_button" json:"secondary_button"`
	Image           *Asset     `bson:"image,omitempty" json:"image,omitempty"`
	Stats           []HeroStat `bson:"stats,omitempty" json:"stats,omitempty"`
}

// FooterColumn is a titled list of footer links.
type FooterColumn struct {
	Title string    `bson:"title" json:"title"`
	Links []NavLink `bson:"links,omitempty" json:"links,omitempty"`
}

// SocialLink points at a social profile. Platform doubles as the icon name.
type SocialLink struct {
	Platform string `bson:"platform" json:"platform"`
	URL      string `bson:"url" json:"url"`
}

// FooterSection is the site footer.
type FooterSection struct {
	SectionMeta  `bson:",inline"`
	Description  string         `bson:"description,omitempty" json:"description,omitempty"`
	Columns      []FooterColumn `bson:"columns,omitempty" json:"columns,omitempty"`
	SocialLinks  []SocialLink   `bson:"social_links,omitempty" json:"social_links,omitempty"`
	ContactEmail string         `bson:"contact_email,omitempty" json:"contact_email,omitempty"`
	ContactPhone string         `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	Copyright    string         `bson:"copyright,omitempty" json:"copyright,omitempty"` // May contain {year}
}

// FAQItem is one question and answer.
type FAQItem struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"` // Rich text (HTML)
}

// FAQSection is the homepage FAQ.
type FAQSection struct {
	SectionMeta `bson:",inline"`
	Title       string    `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle    string    `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Items       []FAQItem `bson:"items,omitempty" json:"items,omitempty"`
}

// Testimonial is one student quote.
type Testimonial struct {
	Name   string `bson:"name" json:"name"`
	Role   string `bson:"role,omitempty" json:"role,omitempty"` // e.g. "A Level student"
	Quote  string `bson:"quote" json:"quote"`
	Rating int    `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5
	Avatar *Asset `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// TestimonialsSection is the homepage testimonials carousel.
type TestimonialsSection struct {
	SectionMeta `bson:",inline"`
	Title       string        `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle    string        `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Items       []Testimonial `bson:"items,omitempty" json:"items,omitempty"`
}

// ContactFormLabels are the field labels of the contact form.
type ContactFormLabels struct {
	FullName        string `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Country         string `bson:"country,omitempty" json:"country,omitempty"`
	Email           string `bson:"email,omitempty" json:"email,omitempty"`
	Phone           string `bson:"phone,omitempty" json:"phone,omitempty"`
	TutoringDetails string `bson:"tutoring_details,omitempty" json:"tutoring_details,omitempty"`
	HourlyBudget    string `bson:"hourly_budget,omitempty" json:"hourly_budget,omitempty"`
	Submit          string `bson:"submit,omitempty" json:"submit,omitempty"`
}

// ContactNotification configures the emails sent for each inquiry.
type ContactNotification struct {
	AdminEmail       string `bson:"admin_email,omitempty" json:"admin_email,omitempty"`
	AdminSubject     string `bson:"admin_subject,omitempty" json:"admin_subject,omitempty"`
	AutoReplySubject string `bson:"auto_reply_subject,omitempty" json:"auto_reply_subject,omitempty"`
	AutoReplyBody    string `bson:"auto_reply_body,omitempty" json:"auto_reply_body,omitempty"` // Rich text (HTML)
}

// ContactFormSection is the homepage contact form.
type ContactFormSection struct {
	SectionMeta    `bson:",inline"`
	Title          string              `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle       string              `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Labels         ContactFormLabels   `bson:"labels" json:"labels"`
	SuccessMessage string              `bson:"success_message,omitempty" json:"success_message,omitempty"`
	Notification   ContactNotification `bson:"notification" json:"notification"`
}

// Feature is one reason card in the why-choose section. Icon is a name
// from the icon set.
type Feature struct {
	Icon        string `bson:"icon,omitempty" json:"icon,omitempty"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// WhyChooseSection lists the platform's selling points.
type WhyChooseSection struct {
	SectionMeta `bson:",inline"`
	Title       string    `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle    string    `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Features    []Feature `bson:"features,omitempty" json:"features,omitempty"`
}

// SubjectsSection heads the homepage subjects grid.
type SubjectsSection struct {
	SectionMeta  `bson:",inline"`
	Title        string `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle     string `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ViewLabel    string `bson:"view_label,omitempty" json:"view_label,omitempty"`
	EmptyMessage string `bson:"empty_message,omitempty" json:"empty_message,omitempty"`
}

// ExamBoardsSection heads the homepage exam board strip.
type ExamBoardsSection struct {
	SectionMeta  `bson:",inline"`
	Title        string `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle     string `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	VisitLabel   string `bson:"visit_label,omitempty" json:"visit_label,omitempty"`
	EmptyMessage string `bson:"empty_message,omitempty" json:"empty_message,omitempty"`
}
