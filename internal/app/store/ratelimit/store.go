// internal/app/store/ratelimit/store.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/stratapapers/internal/app/system/normalize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName holds one counter document per key and window.
const CollectionName = "contact_rate_limits"

// Bucket counts hits for one key inside one fixed window.
type Bucket struct {
	ID          string    `bson:"_id"`   // key|window start (unix seconds)
	Key         string    `bson:"key"`   // normalized key, usually a client IP
	Count       int       `bson:"count"` // hits in this window
	WindowStart time.Time `bson:"window_start"`
	ExpiresAt   time.Time `bson:"expires_at"` // TTL index removes the bucket after this
}

// Decision is the result of a Hit.
type Decision struct {
	Allowed    bool
	Count      int           // hits in the current window, including this one
	Remaining  int           // hits left before the limit (0 when over)
	RetryAfter time.Duration // time until the window resets (0 when allowed)
}

// Store is a MongoDB-backed fixed-window counter.
type Store struct {
	c      *mongo.Collection
	limit  int
	window time.Duration
	now    func() time.Time
}

// New creates a Store allowing limit hits per key in each window.
func New(db *mongo.Database, limit int, window time.Duration) *Store {
	return &Store{
		c:      db.Collection(CollectionName),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// windowStart truncates t to the start of its window.
func (s *Store) windowStart(t time.Time) time.Time {
	return t.Truncate(s.window)
}

// Hit records one hit for key and reports whether it is within the limit.
// The increment is a single upsert, so concurrent hits are counted exactly.
func (s *Store) Hit(ctx context.Context, key string) (Decision, error) {
	key = normalize.Key(key)
	now := s.now()
	start := s.windowStart(now)
	end := start.Add(s.window)

	var b Bucket
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": fmt.Sprintf("%s|%d", key, start.Unix())},
		bson.M{
			"$inc": bson.M{"count": 1},
			"$setOnInsert": bson.M{
				"key":          key,
				"window_start": start,
				"expires_at":   end,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		return Decision{}, err
	}

	d := Decision{Count: b.Count, Remaining: s.limit - b.Count}
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	if b.Count <= s.limit {
		d.Allowed = true
		return d, nil
	}
	d.RetryAfter = end.Sub(now)
	return d, nil
}

// Get returns the bucket for key in the current window, or nil when there
// have been no hits yet.
func (s *Store) Get(ctx context.Context, key string) (*Bucket, error) {
	key = normalize.Key(key)
	start := s.windowStart(s.now())

	var b Bucket
	err := s.c.FindOne(ctx, bson.M{"_id": fmt.Sprintf("%s|%d", key, start.Unix())}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Reset removes every bucket for key.
func (s *Store) Reset(ctx context.Context, key string) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"key": normalize.Key(key)})
	return err
}
