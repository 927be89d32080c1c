// Command paperctl is the operator CLI: content import, schema setup and
// inquiry triage against the site's MongoDB, plus cache revalidation and a
// certificate check against the running site.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dalemusser/stratapapers/internal/app/bootstrap"
	"github.com/dalemusser/stratapapers/internal/app/system/timeouts"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cli carries global flags and the pieces tests replace.
type cli struct {
	mongoURI string
	database string
	timeout  time.Duration
	verbose  bool

	logger *zap.Logger
	out    io.Writer

	// connect opens the database; the returned func releases it.
	connect func(ctx context.Context) (*mongo.Database, func(), error)
	// tlsConfig verifies site certificates; nil uses the system roots.
	tlsConfig *tls.Config
}

func main() {
	c := &cli{out: os.Stdout}
	if err := newRootCmd(c).Execute(); err != nil {
		os.Exit(1)
	}
}

// envDefault reads STRATAPAPERS_<KEY>, falling back to def.
func envDefault(key, def string) string {
	if v := os.Getenv(bootstrap.EnvVarPrefix + "_" + strings.ToUpper(key)); v != "" {
		return v
	}
	return def
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "paperctl",
		Short: "Operate the StrataPapers content store and inquiries",
		Long: `paperctl manages the MongoDB database behind the StrataPapers site.

Connection settings default to the server's STRATAPAPERS_MONGO_URI and
STRATAPAPERS_MONGO_DATABASE environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if c.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.mongoURI, "mongo-uri", envDefault("mongo_uri", "mongodb://localhost:27017"), "MongoDB connection URI")
	pf.StringVar(&c.database, "db", envDefault("mongo_database", "stratapapers"), "MongoDB database name")
	pf.DurationVar(&c.timeout, "timeout", timeouts.DefaultImport, "overall command timeout")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newImportCmd(c),
		newSchemaCmd(c),
		newSubmissionsCmd(c),
		newRevalidateCmd(c),
		newCertCmd(c),
		newKeysCmd(c),
	)
	return root
}

// open connects to MongoDB with the command timeout applied to ctx.
func (c *cli) open(ctx context.Context) (*mongo.Database, func(), error) {
	if c.connect != nil {
		return c.connect(ctx)
	}
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(c.mongoURI).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	c.logger.Debug("connected to MongoDB", zap.String("database", c.database))
	return client.Database(c.database), func() { _ = client.Disconnect(context.Background()) }, nil
}

// withDB runs fn against the database under the command timeout.
func (c *cli) withDB(cmd *cobra.Command, fn func(ctx context.Context, db *mongo.Database) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
	defer cancel()

	db, release, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx, db)
}
