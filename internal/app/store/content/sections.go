// internal/app/store/content/sections.go
package contentstore

import (
	"context"

	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetSection returns the first document of a singleton section type decoded
// into T, or nil if none exists. "First" is the oldest by _id.
func GetSection[T any](ctx context.Context, s *Store, sectionType string) (*T, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	var out T
	err := s.sections.FindOne(ctx, bson.M{"type": sectionType}, opts).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Header returns the header section, or nil.
func (s *Store) Header(ctx context.Context) (*models.HeaderSection, error) {
	return GetSection[models.HeaderSection](ctx, s, models.SectionHeader)
}

// Hero returns the hero section, or nil.
func (s *Store) Hero(ctx context.Context) (*models.HeroSection, error) {
	return GetSection[models.HeroSection](ctx, s, models.SectionHero)
}

// Footer returns the footer section, or nil.
func (s *Store) Footer(ctx context.Context) (*models.FooterSection, error) {
	return GetSection[models.FooterSection](ctx, s, models.SectionFooter)
}

// FAQ returns the FAQ section, or nil.
func (s *Store) FAQ(ctx context.Context) (*models.FAQSection, error) {
	return GetSection[models.FAQSection](ctx, s, models.SectionFAQ)
}

// Testimonials returns the testimonials section, or nil.
func (s *Store) Testimonials(ctx context.Context) (*models.TestimonialsSection, error) {
	return GetSection[models.TestimonialsSection](ctx, s, models.SectionTestimonials)
}

// ContactForm returns the contact form section, or nil.
func (s *Store) ContactForm(ctx context.Context) (*models.ContactFormSection, error) {
	return GetSection[models.ContactFormSection](ctx, s, models.SectionContactForm)
}

// WhyChoose returns the why-choose-us section, or nil.
func (s *Store) WhyChoose(ctx context.Context) (*models.WhyChooseSection, error) {
	return GetSection[models.WhyChooseSection](ctx, s, models.SectionWhyChoose)
}

// SubjectsSection returns the subjects grid heading section, or nil.
func (s *Store) SubjectsSection(ctx context.Context) (*models.SubjectsSection, error) {
	return GetSection[models.SubjectsSection](ctx, s, models.SectionSubjectsSection)
}

// ExamBoardsSection returns the exam boards heading section, or nil.
func (s *Store) ExamBoardsSection(ctx context.Context) (*models.ExamBoardsSection, error) {
	return GetSection[models.ExamBoardsSection](ctx, s, models.SectionExamBoardsSection)
}

// AssetURL resolves an asset for callers rendering section documents.
func (s *Store) AssetURL(a *models.Asset) string {
	return s.assetURL(a)
}
