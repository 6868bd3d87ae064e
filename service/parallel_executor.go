package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/terojleinonen/kinscan/internal/config"
)

const (
	// DefaultMaxWorkers bounds the fan-out when the configured value is
	// unusable. NewParallelExecutor prefers runtime.NumCPU().
	DefaultMaxWorkers = 4
	DefaultTimeout    = 5 * time.Minute
)

// FileError records the failure of a single file during a parallel run.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("[%s] %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// PartialFailure is returned when some files failed but the run as a whole
// completed. Callers inspect Failures to report per-file errors while still
// using the results of the files that succeeded.
type PartialFailure struct {
	Failures []FileError
}

func (e *PartialFailure) Error() string {
	switch len(e.Failures) {
	case 0:
		return "no failures"
	case 1:
		return e.Failures[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d files failed:\n", len(e.Failures))
	for i, fe := range e.Failures {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, fe.Error())
	}
	return sb.String()
}

// Unwrap exposes the first failure for errors.Is/As.
func (e *PartialFailure) Unwrap() error {
	if len(e.Failures) == 0 {
		return nil
	}
	return e.Failures[0].Err
}

// FileFunc is the per-file unit of work. The index identifies the file's
// slot in the caller's result slice so workers never share mutable state.
type FileFunc func(ctx context.Context, index int, path string) error

// ParallelExecutorImpl fans a FileFunc out across files with bounded
// parallelism. Analysis of a single file stays sequential; only the
// per-file loop is concurrent.
type ParallelExecutorImpl struct {
	maxWorkers int
	timeout    time.Duration
}

// NewParallelExecutor returns an executor sized to the machine.
func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{
		maxWorkers: runtime.NumCPU(),
		timeout:    DefaultTimeout,
	}
}

// NewParallelExecutorFromConfig returns an executor sized from configuration.
func NewParallelExecutorFromConfig(cfg *config.PerformanceConfig) *ParallelExecutorImpl {
	maxWorkers := cfg.MaxGoroutines
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ParallelExecutorImpl{
		maxWorkers: maxWorkers,
		timeout:    timeout,
	}
}

// ForEachFile runs fn once per path. File failures do not stop the run;
// they are collected and returned as a *PartialFailure after every file
// has been attempted. Context cancellation and the executor timeout do
// stop the run and are returned directly.
func (e *ParallelExecutorImpl) ForEachFile(ctx context.Context, paths []string, fn FileFunc) error {
	if len(paths) == 0 {
		return nil
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(runCtx)
	g.SetLimit(e.maxWorkers)

	var mu sync.Mutex
	var failures []FileError

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err := fn(gCtx, i, path); err != nil {
				mu.Lock()
				failures = append(failures, FileError{Path: path, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if len(failures) > 0 {
		return &PartialFailure{Failures: failures}
	}
	return nil
}
