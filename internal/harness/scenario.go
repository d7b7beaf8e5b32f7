package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/modelgen/internal/search"
)

// Scenario defines one search and its expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Size is the domain size searched.
	Size int `yaml:"size"`

	// Formula is problem text: one formula per line, with optional
	// "only" lines and the "poset" shorthand.
	Formula string `yaml:"formula"`

	// Mode is "all" (default) or "first".
	Mode string `yaml:"mode,omitempty"`

	// Only adds filter tokens.
	Only string `yaml:"only,omitempty"`

	// Limit caps the number of models; zero means no limit.
	Limit int `yaml:"limit,omitempty"`

	// RunID is an optional fixed run ID. If empty, defaults to
	// "test-run-default" so golden snapshots are stable.
	RunID string `yaml:"run_id,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect lists the checks made against a run.
type Expect struct {
	// Count is the exact number of models expected.
	Count *int `yaml:"count"`

	// Filter, if set, is the list of filter predicates the search must
	// have applied, in order.
	Filter []string `yaml:"filter,omitempty"`
}

// Request converts the scenario into a search request.
func (s *Scenario) Request() search.Request {
	return search.Request{
		Name:    s.Name,
		Problem: s.Formula,
		Filter:  s.Only,
		Size:    s.Size,
		Mode:    search.Mode(s.Mode),
		Limit:   s.Limit,
	}
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", s.Size)
	}
	if _, err := search.ParseProblem(s.Formula); err != nil {
		return fmt.Errorf("formula: %w", err)
	}
	if _, err := search.ParseMode(s.Mode); err != nil {
		return err
	}
	if s.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", s.Limit)
	}
	if s.Expect.Count == nil {
		return fmt.Errorf("expect.count is required")
	}
	if *s.Expect.Count < 0 {
		return fmt.Errorf("expect.count must be non-negative, got %d", *s.Expect.Count)
	}
	return nil
}
