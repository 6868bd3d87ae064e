package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/terojleinonen/kinscan/app"
	"github.com/terojleinonen/kinscan/domain"
	"github.com/terojleinonen/kinscan/service"
)

var (
	complexityFormat     string
	complexityJSON       bool
	complexityConfigPath string
	complexityOutputPath string
	complexityMin        int
	complexityMax        int
	complexitySortBy     string
	complexityLow        int
	complexityMedium     int
	complexityDetails    bool
	complexityRecursive  bool
	complexityInclude    []string
	complexityExclude    []string
)

func complexityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complexity [path...]",
		Short: "Measure cyclomatic and cognitive complexity",
		Long: `Measure cyclomatic complexity, cognitive complexity, nesting depth and
parameter counts for every function in the given JavaScript/TypeScript files.

Files the parser cannot handle fall back to a line-based heuristic estimate
and are marked as estimated in the output.

Examples:
  kinscan complexity src/
  kinscan complexity --min 5 --sort complexity src/
  kinscan complexity --json src/
  kinscan complexity --format yaml -o report.yaml src/`,
		RunE: runComplexity,
	}

	cmd.Flags().StringVarP(&complexityFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&complexityJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&complexityOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&complexityConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().IntVar(&complexityMin, "min", 1,
		"Minimum complexity to report")
	cmd.Flags().IntVar(&complexityMax, "max", 0,
		"Maximum allowed complexity (0 = no limit)")
	cmd.Flags().StringVar(&complexitySortBy, "sort", "complexity",
		"Sort functions by: complexity, name, risk")
	cmd.Flags().IntVar(&complexityLow, "low-threshold", 9,
		"Cyclomatic complexity upper bound for LOW risk")
	cmd.Flags().IntVar(&complexityMedium, "medium-threshold", 19,
		"Cyclomatic complexity upper bound for MEDIUM risk")
	cmd.Flags().BoolVar(&complexityDetails, "details", false,
		"Show per-function breakdown")
	cmd.Flags().BoolVar(&complexityRecursive, "recursive", true,
		"Analyze directories recursively")
	cmd.Flags().StringSliceVar(&complexityInclude, "include", nil,
		"File patterns to include (glob)")
	cmd.Flags().StringSliceVar(&complexityExclude, "exclude", nil,
		"File patterns to exclude (glob)")

	return cmd
}

func runComplexity(cmd *cobra.Command, args []string) (err error) {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	format := domain.OutputFormat(complexityFormat)
	if complexityJSON {
		format = domain.OutputFormatJSON
	}

	// Load configuration and merge CLI overrides on top
	loader := service.NewConfigurationLoader()
	var base *domain.ComplexityRequest
	if complexityConfigPath != "" {
		base, err = loader.LoadConfig(complexityConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
	} else {
		base = loader.LoadDefaultConfig()
	}

	override := &domain.ComplexityRequest{
		Paths:           args,
		OutputFormat:    format,
		ShowDetails:     complexityDetails,
		MinComplexity:   complexityMin,
		MaxComplexity:   complexityMax,
		SortBy:          domain.SortCriteria(complexitySortBy),
		LowThreshold:    complexityLow,
		MediumThreshold: complexityMedium,
		ConfigPath:      complexityConfigPath,
	}

	req := loader.MergeConfig(base, override)

	// File selection flags win over config when explicitly set
	if cmd.Flags().Changed("recursive") || !req.Recursive {
		req.Recursive = complexityRecursive
	}
	if cmd.Flags().Changed("include") {
		req.IncludePatterns = complexityInclude
	}
	if cmd.Flags().Changed("exclude") {
		req.ExcludePatterns = complexityExclude
	}

	if err := loader.ValidateConfig(req); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Progress is only meaningful for interactive text output
	pm := service.NewProgressManager(format == domain.OutputFormatText && complexityOutputPath == "")
	defer pm.Close()

	svc := service.NewComplexityServiceWithProgress(nil, pm)
	useCase := app.NewComplexityUseCase(svc)

	response, err := useCase.Execute(context.Background(), *req)
	if err != nil {
		return err
	}

	writer, closeWriter, err := openOutputWriter(complexityOutputPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeWriter(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	formatter := service.NewOutputFormatter()
	if err := formatter.Write(response, format, writer); err != nil {
		return err
	}

	if complexityOutputPath != "" {
		absPath, _ := filepath.Abs(complexityOutputPath)
		fmt.Printf("Output saved to: %s\n", absPath)
	}

	return nil
}

// openOutputWriter returns stdout or a freshly created file plus its closer
func openOutputWriter(path string) (*os.File, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
