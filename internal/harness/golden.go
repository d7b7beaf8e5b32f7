package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/modelgen/internal/printer"
)

// toCanonicalMap converts a run into a map[string]any for canonical JSON
// serialization. Timing is left out so the snapshot is deterministic.
func toCanonicalMap(s *Scenario, r *Result) map[string]any {
	models := make([]any, len(r.Models))
	for i, m := range r.Models {
		doc := printer.Document(m.Algebra, m.Comment)
		doc["fingerprint"] = m.Fingerprint
		models[i] = doc
	}
	filter := make([]any, len(r.Search.Filter))
	for i, tok := range r.Search.Filter {
		filter[i] = tok
	}
	return map[string]any{
		"scenario_name": s.Name,
		"run_id":        r.Search.RunID,
		"size":          r.Search.Size,
		"mode":          string(r.Search.Mode),
		"formula":       s.Formula,
		"filter":        filter,
		"count":         r.Search.Models,
		"models":        models,
	}
}

// Snapshot returns the canonical JSON form of a run, newline terminated.
// This is what golden files hold.
func Snapshot(s *Scenario, r *Result) ([]byte, error) {
	data, err := printer.MarshalCanonical(toCanonicalMap(s, r))
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check Pass; returns an error if
// the scenario could not run.
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
