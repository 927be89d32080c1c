package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionStatus tracks operator triage of an inquiry.
type SubmissionStatus string

const (
	SubmissionNew        SubmissionStatus = "new"
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionContacted  SubmissionStatus = "contacted"
	SubmissionClosed     SubmissionStatus = "closed"
)

// AllSubmissionStatuses lists statuses in triage order.
var AllSubmissionStatuses = []SubmissionStatus{
	SubmissionNew,
	SubmissionInProgress,
	SubmissionContacted,
	SubmissionClosed,
}

// IsValidSubmissionStatus checks a status value.
func IsValidSubmissionStatus(s string) bool {
	for _, st := range AllSubmissionStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

// ContactSubmission is one tutoring inquiry from the contact form.
// SubmittedAt is set on creation and never changed; only Status, Notes and
// UpdatedAt change afterwards.
type ContactSubmission struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName        string             `bson:"full_name" json:"fullName"`
	Country         string             `bson:"country" json:"country"`
	Email           string             `bson:"email" json:"email"`
	Phone           string             `bson:"phone" json:"phone"`
	TutoringDetails string             `bson:"tutoring_details" json:"tutoringDetails"`
	HourlyBudget    string             `bson:"hourly_budget" json:"hourlyBudget"`
	SubmittedAt     time.Time          `bson:"submitted_at" json:"submittedAt"`
	Status          SubmissionStatus   `bson:"status" json:"status"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	UpdatedAt       *time.Time         `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
