// internal/app/store/submissions/submissionstore.go
package submissionstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/stratapapers/internal/app/store/storeutil"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the collection inquiries are stored in.
const CollectionName = "contact_submissions"

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = storeutil.DefaultLimit

// Store provides access to the contact_submissions collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new submission store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Input is the six user-supplied fields of an inquiry.
type Input struct {
	FullName        string
	Country         string
	Email           string
	Phone           string
	TutoringDetails string
	HourlyBudget    string
}

// Create inserts a new inquiry with status "new" and submitted_at set to now.
// Every call creates a distinct record; identical inputs are not merged.
func (s *Store) Create(ctx context.Context, in Input) (models.ContactSubmission, error) {
	sub := models.ContactSubmission{
		ID:              primitive.NewObjectID(),
		FullName:        strings.TrimSpace(in.FullName),
		Country:         strings.TrimSpace(in.Country),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		TutoringDetails: strings.TrimSpace(in.TutoringDetails),
		HourlyBudget:    strings.TrimSpace(in.HourlyBudget),
		SubmittedAt:     time.Now().UTC().Truncate(time.Millisecond),
		Status:          models.SubmissionNew,
	}
	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return models.ContactSubmission{}, err
	}
	return sub, nil
}

// GetByID returns an inquiry, or nil if it does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContactSubmission, error) {
	var sub models.ContactSubmission
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListFilter narrows List. An empty Status lists every status. Page is
// 1-based.
type ListFilter struct {
	Status models.SubmissionStatus
	Limit  int64
	Page   int64
}

// List returns inquiries newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.ContactSubmission, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	opts := storeutil.Paginate(f.Limit, f.Page).
		SetSort(bson.D{{Key: "submitted_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	subs := []models.ContactSubmission{}
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// UpdateStatus moves an inquiry to a new triage status. A non-empty note
// replaces the stored notes. submitted_at is never touched.
// Returns mongo.ErrNoDocuments when id does not exist.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.SubmissionStatus, note string) error {
	if !models.IsValidSubmissionStatus(string(status)) {
		return fmt.Errorf("invalid submission status %q", status)
	}
	set := bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if n := strings.TrimSpace(note); n != "" {
		set["notes"] = n
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountByStatus returns the number of inquiries in each status.
// Statuses with no inquiries are reported as zero.
func (s *Store) CountByStatus(ctx context.Context) (map[models.SubmissionStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status models.SubmissionStatus `bson:"_id"`
		Count  int64                   `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[models.SubmissionStatus]int64, len(models.AllSubmissionStatuses))
	for _, st := range models.AllSubmissionStatuses {
		out[st] = 0
	}
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}

// Count returns the total number of inquiries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CountOlderThan counts inquiries in status that were submitted before cutoff.
func (s *Store) CountOlderThan(ctx context.Context, status models.SubmissionStatus, cutoff time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"status":       status,
		"submitted_at": bson.M{"$lt": cutoff},
	})
}
