package main

import (
	"context"
	"fmt"

	"github.com/dalemusser/stratapapers/internal/app/system/indexes"
	"github.com/dalemusser/stratapapers/internal/app/system/validators"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

func newSchemaCmd(c *cli) *cobra.Command {
	schema := &cobra.Command{
		Use:   "schema",
		Short: "Collection validators and indexes",
	}

	schema.AddCommand(&cobra.Command{
		Use:   "ensure",
		Short: "Create collections, attach validators and build indexes",
		Long: `Runs the same reconciliation the server runs at startup. Safe to
repeat; existing indexes with matching keys and options are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				if err := validators.EnsureAll(ctx, db); err != nil {
					return fmt.Errorf("validators: %w", err)
				}
				if err := indexes.EnsureAll(ctx, db); err != nil {
					return fmt.Errorf("indexes: %w", err)
				}
				fmt.Fprintf(c.out, "schema ensured for %d collections\n", len(validators.Collections))
				return nil
			})
		},
	})

	return schema
}
