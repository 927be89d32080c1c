package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/stratapapers/internal/app/system/seeding"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newImportCmd(c *cli) *cobra.Command {
	var demo, dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file.yaml]",
		Short: "Load catalog and CMS content from a YAML bundle",
		Long: `Imports exam boards, subjects, topics, past papers, questions, subject
pages, exam board pages and site sections. References between documents
are slugs. Re-importing the same bundle updates documents in place.

Example:
  paperctl import content/2024.yaml
  paperctl import --demo`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBundle(args, demo)
			if err != nil {
				return err
			}
			if err := b.Validate(); err != nil {
				return fmt.Errorf("bundle is invalid:\n%w", err)
			}
			if dryRun {
				fmt.Fprintf(c.out, "bundle ok: %d subjects, %d exam boards, %d past papers, %d sections\n",
					len(b.Subjects), len(b.ExamBoards), len(b.PastPapers), len(b.Sections))
				return nil
			}

			return c.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				res, err := seeding.Import(ctx, db, b)
				if err != nil {
					return err
				}
				c.logger.Info("content imported", zap.Int("documents", res.Total()))
				printResult(c, res)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "import the built-in demo bundle")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate only")
	return cmd
}

func loadBundle(args []string, demo bool) (*seeding.Bundle, error) {
	switch {
	case demo && len(args) > 0:
		return nil, errors.New("give a file or --demo, not both")
	case demo:
		return seeding.DemoBundle()
	case len(args) == 1:
		return seeding.ParseFile(args[0])
	default:
		return nil, errors.New("a bundle file or --demo is required")
	}
}

func printResult(c *cli, res seeding.Result) {
	rows := []struct {
		name string
		n    int
	}{
		{"exam boards", res.ExamBoards},
		{"subjects", res.Subjects},
		{"topics", res.Topics},
		{"past papers", res.PastPapers},
		{"questions", res.Questions},
		{"subject pages", res.SubjectPages},
		{"exam board pages", res.ExamBoardPages},
		{"sections", res.Sections},
	}
	for _, r := range rows {
		fmt.Fprintf(c.out, "%-17s %d\n", r.name, r.n)
	}
	fmt.Fprintf(c.out, "%-17s %d\n", "total", res.Total())
}
