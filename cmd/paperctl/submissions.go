package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	submissionstore "github.com/dalemusser/stratapapers/internal/app/store/submissions"
	"github.com/dalemusser/stratapapers/internal/app/system/normalize"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newSubmissionsCmd(c *cli) *cobra.Command {
	subs := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"subs"},
		Short:   "List and triage tutoring inquiries",
	}
	subs.AddCommand(
		newSubmissionsListCmd(c),
		newSubmissionsShowCmd(c),
		newSubmissionsStatusCmd(c),
		newSubmissionsStatsCmd(c),
	)
	return subs
}

func newSubmissionsListCmd(c *cli) *cobra.Command {
	var (
		status string
		limit  int64
		page   int64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inquiries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status = normalize.Status(status)
			if status != "" && !models.IsValidSubmissionStatus(status) {
				return fmt.Errorf("unknown status %q (want one of %v)", status, models.AllSubmissionStatuses)
			}
			return c.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				list, err := submissionstore.New(db).List(ctx, submissionstore.ListFilter{
					Status: models.SubmissionStatus(status),
					Limit:  limit,
					Page:   page,
				})
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(c, list)
				}

				tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tSUBMITTED\tSTATUS\tNAME\tEMAIL\tCOUNTRY")
				for _, s := range list {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						s.ID.Hex(), s.SubmittedAt.Format(time.RFC3339), s.Status, s.FullName, s.Email, s.Country)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only this status (new, in_progress, contacted, closed)")
	cmd.Flags().Int64Var(&limit, "limit", submissionstore.DefaultListLimit, "rows per page")
	cmd.Flags().Int64Var(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newSubmissionsShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one inquiry as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				sub, err := submissionstore.New(db).GetByID(ctx, id)
				if err != nil {
					return err
				}
				if sub == nil {
					return fmt.Errorf("no inquiry with id %s", args[0])
				}
				return writeJSON(c, sub)
			})
		},
	}
}

func newSubmissionsStatusCmd(c *cli) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "status <id> <new|in_progress|contacted|closed>",
		Short: "Move an inquiry to a triage status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status := normalize.Status(args[1])
			if !models.IsValidSubmissionStatus(status) {
				return fmt.Errorf("unknown status %q (want one of %v)", status, models.AllSubmissionStatuses)
			}
			return c.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				err := submissionstore.New(db).UpdateStatus(ctx, id, models.SubmissionStatus(status), note)
				if errors.Is(err, mongo.ErrNoDocuments) {
					return fmt.Errorf("no inquiry with id %s", args[0])
				}
				if err != nil {
					return err
				}
				c.logger.Info("inquiry status updated",
					zap.String("id", args[0]), zap.String("status", status))
				fmt.Fprintf(c.out, "%s -> %s\n", args[0], status)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "replace the operator notes")
	return cmd
}

func newSubmissionsStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count inquiries per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				counts, err := submissionstore.New(db).CountByStatus(ctx)
				if err != nil {
					return err
				}
				var total int64
				for _, st := range models.AllSubmissionStatuses {
					fmt.Fprintf(c.out, "%-12s %d\n", st, counts[st])
					total += counts[st]
				}
				fmt.Fprintf(c.out, "%-12s %d\n", "total", total)
				return nil
			})
		},
	}
}

func parseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func writeJSON(c *cli, v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
