// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/stratapapers/internal/app/system/mailer"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the backend connections created in ConnectDB and passed to
// EnsureSchema, Startup, BuildHandler and Shutdown. Shutdown closes them.
type DBDeps struct {
	// MongoDB client and database
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// FileStorage resolves CMS asset paths to public URLs.
	FileStorage storage.Store

	// Mailer sends inquiry notifications.
	Mailer *mailer.Mailer

	// Redis backs the homepage render cache; nil when redis_addr is empty.
	Redis *redis.Client
}
