package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/terojleinonen/kinscan/app"
	"github.com/terojleinonen/kinscan/internal/config"
	"github.com/terojleinonen/kinscan/internal/version"
	"github.com/terojleinonen/kinscan/service"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkMaxComplexity int
	checkMaxNesting    int
	checkMaxParams     int
	checkVerbose       bool
	checkJSON          bool
	checkNoColor       bool
	checkConfigPath    string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fast quality gate for CI/CD pipelines",
		Long: `Run complexity analysis and fail when any function exceeds the
configured limits.

Exit codes:
  0 - All checks pass
  1 - Quality limit(s) exceeded
  2 - Analysis error (file not found, parse error, etc.)

Examples:
  # Basic check with defaults
  kinscan check src/

  # Strict complexity gate
  kinscan check --max-complexity 10 src/

  # Disable the nesting gate
  kinscan check --max-nesting 0 src/

  # JSON output for machine parsing
  kinscan check --json src/`,
		RunE:          runCheck,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	defaults := app.DefaultCheckConfig()
	cmd.Flags().IntVar(&checkMaxComplexity, "max-complexity", defaults.MaxComplexity,
		"Maximum allowed cyclomatic complexity per function (0 = disabled)")
	cmd.Flags().IntVar(&checkMaxNesting, "max-nesting", defaults.MaxNestingDepth,
		"Maximum allowed nesting depth per function (0 = disabled)")
	cmd.Flags().IntVar(&checkMaxParams, "max-params", defaults.MaxParameterCount,
		"Maximum allowed parameter count per function (0 = disabled)")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show detailed output")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVar(&checkNoColor, "no-color", false,
		"Disable colored output")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

// checkReport is the JSON shape emitted by --json
type checkReport struct {
	Passed      bool               `json:"passed"`
	ExitCode    int                `json:"exit_code"`
	Failures    []checkFailureJSON `json:"failures"`
	Summary     checkSummaryJSON   `json:"summary"`
	DurationMS  int64              `json:"duration_ms"`
	GeneratedAt string             `json:"generated_at"`
	Version     string             `json:"version"`
}

type checkFailureJSON struct {
	Function string `json:"function"`
	Location string `json:"location"`
	Metric   string `json:"metric"`
	Value    int    `json:"value"`
	Limit    int    `json:"limit"`
}

type checkSummaryJSON struct {
	FilesAnalyzed  int `json:"files_analyzed"`
	TotalFunctions int `json:"total_functions"`
	TotalFailures  int `json:"total_failures"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: 2, Message: "no paths specified"}
	}

	if checkNoColor {
		color.NoColor = true
	}

	// Load configuration
	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	checkConfig := app.DefaultCheckConfig()
	checkConfig.LowThreshold = cfg.Complexity.LowThreshold
	checkConfig.MediumThreshold = cfg.Complexity.MediumThreshold
	checkConfig.IncludePatterns = cfg.Analysis.IncludePatterns
	checkConfig.ExcludePatterns = cfg.Analysis.ExcludePatterns

	// Apply config values for flags not explicitly set on CLI
	if cmd.Flags().Changed("max-complexity") || cfg.Complexity.MaxComplexity <= 0 {
		checkConfig.MaxComplexity = checkMaxComplexity
	} else {
		checkConfig.MaxComplexity = cfg.Complexity.MaxComplexity
	}
	checkConfig.MaxNestingDepth = checkMaxNesting
	checkConfig.MaxParameterCount = checkMaxParams

	// Progress is noise in CI and breaks JSON output
	pm := service.NewProgressManager(!checkJSON)
	defer pm.Close()

	svc := service.NewComplexityServiceWithProgress(&cfg.Complexity, pm)
	useCase := app.NewCheckUseCase(app.NewComplexityUseCase(svc))

	result, err := useCase.Execute(context.Background(), checkConfig, args)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	if checkJSON {
		return outputCheckJSON(result)
	}
	return outputCheckText(result)
}

func outputCheckText(result *app.CheckResult) error {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	warn := color.New(color.FgYellow)

	if result.Passed() {
		pass.Println("PASS: All quality checks passed")
		if checkVerbose {
			fmt.Printf("  Files analyzed: %d\n", len(result.Complexity.Files))
			fmt.Printf("  Functions: %d\n", result.Complexity.Summary.TotalFunctions)
			fmt.Printf("  Duration: %dms\n", result.Duration.Milliseconds())
		}
		return nil
	}

	fail.Println("FAIL: Quality check failed")
	fmt.Printf("  Violations: %d\n", len(result.Failures))

	for _, f := range result.Failures {
		warn.Printf("  [%s]", f.Metric)
		fmt.Printf(" %s:%d %s: %d exceeds limit %d\n",
			f.FilePath, f.StartLine, f.FunctionName, f.Value, f.Limit)
	}

	if checkVerbose {
		fmt.Printf("\nSummary:\n")
		fmt.Printf("  Files: %d\n", len(result.Complexity.Files))
		fmt.Printf("  Functions: %d\n", result.Complexity.Summary.TotalFunctions)
		fmt.Printf("  Duration: %dms\n", result.Duration.Milliseconds())
	}

	return &CheckExitError{Code: 1, Message: ""}
}

func outputCheckJSON(result *app.CheckResult) error {
	report := checkReport{
		Passed:   result.Passed(),
		ExitCode: 0,
		Failures: []checkFailureJSON{},
		Summary: checkSummaryJSON{
			FilesAnalyzed:  len(result.Complexity.Files),
			TotalFunctions: result.Complexity.Summary.TotalFunctions,
			TotalFailures:  len(result.Failures),
		},
		DurationMS:  result.Duration.Milliseconds(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}
	if !report.Passed {
		report.ExitCode = 1
	}

	for _, f := range result.Failures {
		report.Failures = append(report.Failures, checkFailureJSON{
			Function: f.FunctionName,
			Location: fmt.Sprintf("%s:%d", f.FilePath, f.StartLine),
			Metric:   f.Metric,
			Value:    f.Value,
			Limit:    f.Limit,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}

	if !report.Passed {
		return &CheckExitError{Code: 1, Message: ""}
	}
	return nil
}
