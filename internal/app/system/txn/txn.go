// Package txn runs a group of MongoDB writes in a transaction when the
// deployment supports one, and without one when it does not (a standalone
// development server, DocumentDB with transactions disabled).
//
//	err := txn.Run(ctx, db, logger, func(ctx context.Context) error {
//		// use ctx for every operation
//		return nil
//	})
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Func holds the writes to run. ctx is a session context inside a
// transaction and the caller's context otherwise. Func may run more than
// once: the driver retries transient transaction errors, and a deployment
// without transactions gets a second, plain run.
type Func func(ctx context.Context) error

// Run executes fn in a transaction, falling back to a plain run when
// transactions are unavailable. log may be nil.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn Func) error {
	session, err := db.Client().StartSession()
	if err != nil {
		warn(log, "failed to start session, running without transaction", err)
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		warn(log, "transactions not supported, running without transaction", err)
		return fn(ctx)
	}
	return err
}

func warn(log *zap.Logger, msg string, err error) {
	if log != nil {
		log.Warn(msg, zap.Error(err))
	}
}

// IsNotSupported reports whether err means the deployment cannot run
// multi-document transactions. Known codes:
//   - 20: transaction numbers are only allowed on a replica set member or mongos
//   - 51: IllegalOperation
//   - 263: operation not allowed in a transaction
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	// DocumentDB and older servers vary the wording. Two keyword hits avoid
	// matching ordinary errors that mention one of them.
	s := strings.ToLower(err.Error())
	hits := 0
	for _, kw := range []string{"transaction", "replica set", "session", "not supported", "illegal operation"} {
		if strings.Contains(s, kw) {
			hits++
		}
	}
	return hits >= 2
}
