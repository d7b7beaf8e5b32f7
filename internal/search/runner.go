package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/modelgen/internal/partial"
)

// Mode selects between exhaustive enumeration and first-model search.
type Mode string

const (
	ModeAll   Mode = "all"
	ModeFirst Mode = "first"
)

// ParseMode accepts "all", "first" or "" (meaning all).
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeFirst:
		return ModeFirst, nil
	}
	return "", fmt.Errorf("invalid mode %q: must be %q or %q", s, ModeAll, ModeFirst)
}

// Request describes one run.
type Request struct {
	// Name labels the run in logs and results. Optional.
	Name string

	// Problem is problem text; see ParseProblem.
	Problem string

	// Filter adds filter tokens to those in Problem.
	Filter string

	Size  int
	Mode  Mode
	Limit int
}

// Result summarises a finished run.
type Result struct {
	RunID    string
	Name     string
	Size     int
	Mode     Mode
	Formula  string
	Filter   []string
	Models   int
	Cells    int
	Duration time.Duration
}

// Runner executes Requests.
type Runner struct {
	ids    RunIDGenerator
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunIDs overrides the run ID generator (for testing).
func WithRunIDs(g RunIDGenerator) RunnerOption {
	return func(r *Runner) { r.ids = g }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a Runner with UUIDv7 run IDs.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{ids: UUIDv7Generator{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run compiles req and emits its models into sink.
//
// The search itself cannot be interrupted; ctx is checked before it starts.
func (r *Runner) Run(ctx context.Context, req Request, sink partial.Sink) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	problem, err := ParseProblem(req.Problem)
	if err != nil {
		return nil, err
	}
	formula, err := problem.Compile()
	if err != nil {
		return nil, fmt.Errorf("parse formula: %w", err)
	}
	filter := strings.TrimSpace(problem.Filter + " " + req.Filter)

	runID := r.ids.Generate()
	logger := r.logger.With("run_id", runID)
	if req.Name != "" {
		logger = logger.With("name", req.Name)
	}

	m, err := partial.NewModelPrinter(formula, req.Size,
		partial.WithSink(sink),
		partial.WithFilter(filter),
		partial.WithLimit(req.Limit),
		partial.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}

	logger.Info("search starting", "size", req.Size, "mode", mode, "formula", formula.String())
	start := time.Now()
	var stats partial.Stats
	if mode == ModeFirst {
		stats, err = m.PrintFirstModel()
	} else {
		stats, err = m.PrintAllModels()
	}
	res := &Result{
		RunID:    runID,
		Name:     req.Name,
		Size:     req.Size,
		Mode:     mode,
		Formula:  formula.String(),
		Filter:   m.Filter(),
		Models:   stats.Models,
		Cells:    stats.Cells,
		Duration: time.Since(start),
	}
	if err != nil {
		logger.Error("search failed", "models", res.Models, "error", err)
		return res, err
	}
	logger.Info("search finished", "models", res.Models, "duration", res.Duration)
	return res, nil
}
