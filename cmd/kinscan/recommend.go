package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/terojleinonen/kinscan/app"
	"github.com/terojleinonen/kinscan/domain"
	"github.com/terojleinonen/kinscan/service"
)

var (
	recommendFormat     string
	recommendJSON       bool
	recommendOutputPath string
	recommendSortBy     string
	recommendStatusFile string
	recommendStatus     string
	recommendEffort     string
	recommendImpact     string
	recommendSearch     string
)

func recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <quality-report.json>",
		Short: "Turn quality violations into prioritized recommendations",
		Long: `Read a quality report produced by the rule engine and synthesize
prioritized, actionable refactoring recommendations from its violations.

The report is a JSON document: either an array of per-file quality records
or an object with a "files" key. Workflow status (pending, in-progress,
completed, dismissed) is kept in a separate status file keyed by
recommendation id, so re-running the analysis preserves your progress.

Examples:
  kinscan recommend quality.json
  kinscan recommend --sort effort quality.json
  kinscan recommend --status-file .kinscan-status.json quality.json
  kinscan recommend --effort small --json quality.json`,
		RunE: runRecommend,
	}

	cmd.Flags().StringVarP(&recommendFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&recommendJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&recommendOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&recommendSortBy, "sort", "s", "priority",
		"Sort recommendations by: priority, effort, impact, time")
	cmd.Flags().StringVar(&recommendStatusFile, "status-file", "",
		"Path to the persisted recommendation status map")
	cmd.Flags().StringVar(&recommendStatus, "status", "",
		"Only show recommendations with this workflow status")
	cmd.Flags().StringVar(&recommendEffort, "effort", "",
		"Only show recommendations with this effort: small, medium, large")
	cmd.Flags().StringVar(&recommendImpact, "impact", "",
		"Only show recommendations with this impact: low, medium, high")
	cmd.Flags().StringVar(&recommendSearch, "search", "",
		"Only show recommendations matching this text")

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) (err error) {
	if len(args) != 1 {
		return fmt.Errorf("exactly one quality report path is required")
	}

	format := domain.OutputFormat(recommendFormat)
	if recommendJSON {
		format = domain.OutputFormatJSON
	}

	files, err := app.LoadQualityFile(args[0])
	if err != nil {
		return err
	}

	statuses, err := app.LoadStatusFile(recommendStatusFile)
	if err != nil {
		return err
	}

	req := domain.RecommendationRequest{
		Files: files,
		Filter: domain.RecommendationFilter{
			Search: recommendSearch,
			Status: domain.RecommendationStatus(recommendStatus),
			Effort: domain.Effort(recommendEffort),
			Impact: domain.Impact(recommendImpact),
		},
		SortKey:      domain.ParseRecommendationSortKey(recommendSortBy),
		OutputFormat: format,
	}

	svc := service.NewRecommendationService(statuses)
	useCase := app.NewRecommendUseCase(svc)

	response, err := useCase.Execute(context.Background(), req)
	if err != nil {
		return err
	}

	writer, closeWriter, err := openOutputWriter(recommendOutputPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeWriter(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	formatter := service.NewOutputFormatter()
	if err := formatter.WriteRecommendations(response, format, writer); err != nil {
		return err
	}

	if recommendOutputPath != "" {
		absPath, _ := filepath.Abs(recommendOutputPath)
		fmt.Printf("Output saved to: %s\n", absPath)
	}

	return nil
}
