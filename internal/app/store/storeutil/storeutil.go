// Package storeutil holds query helpers shared by the stores.
package storeutil

import "go.mongodb.org/mongo-driver/mongo/options"

const (
	// DefaultLimit is the page size when a caller gives none.
	DefaultLimit int64 = 50
	// MaxLimit caps a single page.
	MaxLimit int64 = 500
)

// Paginate returns *options.FindOptions with skip/limit for a 1-based page.
// limit is clamped to [1, MaxLimit], defaulting to DefaultLimit.
func Paginate(limit, page int64) *options.FindOptions {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if page <= 0 {
		page = 1
	}
	return options.Find().SetLimit(limit).SetSkip((page - 1) * limit)
}
