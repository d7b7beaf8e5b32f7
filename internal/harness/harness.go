package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/modelgen/internal/alg"
	"github.com/roach88/modelgen/internal/printer"
	"github.com/roach88/modelgen/internal/search"
	"github.com/roach88/modelgen/internal/testutil"
)

// Option configures a scenario run.
type Option func(*config)

type config struct {
	logger *slog.Logger
	ctx    context.Context
}

// WithLogger sets the logger handed to the search. The default discards
// all output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithContext sets the context the run checks before starting.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

// Run executes a scenario and checks its expectations.
//
// A returned error means the search could not run at all; expectation
// mismatches are reported through Result.Pass and Result.Errors.
func Run(s *Scenario, opts ...Option) (*Result, error) {
	cfg := config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	runner := search.NewRunner(
		search.WithRunIDs(testutil.NewFixedRunID(s.RunID)),
		search.WithLogger(cfg.logger),
	)
	sink := &modelSink{}
	res, err := runner.Run(cfg.ctx, s.Request(), sink)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	result := NewResult()
	result.Search = res
	result.Models = sink.models
	checkExpect(s, result)
	return result, nil
}

func checkExpect(s *Scenario, r *Result) {
	if want := *s.Expect.Count; r.Search.Models != want {
		r.AddError(fmt.Sprintf("expected %d models, got %d", want, r.Search.Models))
	}
	if s.Expect.Filter != nil && !slices.Equal(s.Expect.Filter, r.Search.Filter) {
		r.AddError(fmt.Sprintf("expected filter %v, got %v", s.Expect.Filter, r.Search.Filter))
	}
}

// modelSink keeps a snapshot of each model with its comment.
type modelSink struct {
	comment string
	models  []Model
}

func (m *modelSink) Comment(text string) error {
	m.comment = text
	return nil
}

func (m *modelSink) Algebra(a alg.Algebra) error {
	snap := alg.Snapshot(a)
	fp, err := printer.Fingerprint(snap)
	if err != nil {
		return err
	}
	m.models = append(m.models, Model{Comment: m.comment, Algebra: snap, Fingerprint: fp})
	m.comment = ""
	return nil
}
