package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/modelgen/internal/partial"
	"github.com/roach88/modelgen/internal/printer"
	"github.com/roach88/modelgen/internal/search"
	"github.com/roach88/modelgen/internal/symbol"
)

// ModelsOptions holds flags for the models and first commands.
type ModelsOptions struct {
	*RootOptions
	Limit int    // stop after this many models
	Count bool   // print only the number of models
	File  string // read problem text from a file
	Only  string // extra filter tokens
}

// Summary describes a finished search.
type Summary struct {
	RunID      string   `json:"run_id"`
	Size       int      `json:"size"`
	Mode       string   `json:"mode"`
	Formula    string   `json:"formula"`
	Filter     []string `json:"filter,omitempty"`
	Models     int      `json:"models"`
	Cells      int      `json:"cells"`
	DurationMS int64    `json:"duration_ms"`
}

func newSummary(res *search.Result) Summary {
	return Summary{
		RunID:      res.RunID,
		Size:       res.Size,
		Mode:       string(res.Mode),
		Formula:    res.Formula,
		Filter:     res.Filter,
		Models:     res.Models,
		Cells:      res.Cells,
		DurationMS: res.Duration.Milliseconds(),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("%d models (size %d, %d cells)", s.Models, s.Size, s.Cells)
}

// NewModelsCommand creates the models command.
func NewModelsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ModelsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "models <size> [formula...]",
		Short: "Print every model of a formula",
		Long: `Print one model of each isomorphism class satisfying the formula.

The formula is the remaining arguments joined by spaces, or the contents of
--file. Problem text may span several lines: each line is a formula and the
lines are conjoined; "only <tokens>" lines select filters (si, noncon,
toursp, nontoursp, intour3) and "poset" stands for the partial order axioms.

With --format json each model is printed as one JSON object per line.

Examples:
  modelgen models 3 '(x*y)*z = x*(y*z)'
  modelgen models 4 --count 'x*x = x & x*y = y*x & (x*y)*z = x*(y*z)'
  modelgen models 4 --file lattices.txt --limit 10`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModels(opts, search.ModeAll, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "stop after this many models (0 = no limit)")
	cmd.Flags().BoolVar(&opts.Count, "count", false, "print only the number of models")
	cmd.Flags().StringVar(&opts.File, "file", "", "read the problem from a file")
	cmd.Flags().StringVar(&opts.Only, "only", "", "filter tokens applied to every model")

	return cmd
}

// NewFirstCommand creates the first command.
func NewFirstCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ModelsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "first <size> [formula...]",
		Short: "Print the first model of a formula",
		Long: `Print the first model found, or nothing if the formula has no model
of the given size.

Example:
  modelgen first 6 'x*y != y*x & (x*y)*z = x*(y*z) & 1*x = x & x*1 = x & i(x)*x = 1'`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModels(opts, search.ModeFirst, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "read the problem from a file")
	cmd.Flags().StringVar(&opts.Only, "only", "", "filter tokens applied to every model")

	return cmd
}

func runModels(opts *ModelsOptions, mode search.Mode, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	size, err := parseSize(args[0])
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeArgs, err)
	}
	problem, err := problemText(opts.File, args[1:])
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeArgs, err)
	}
	if opts.Limit < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeArgs, fmt.Errorf("limit must be non-negative, got %d", opts.Limit))
	}

	req := search.Request{
		Problem: problem,
		Filter:  opts.Only,
		Size:    size,
		Mode:    mode,
		Limit:   opts.Limit,
	}

	var sink partial.Sink
	switch {
	case opts.Count:
		sink = &printer.Counter{}
	case opts.Format == "json":
		sink = printer.NewJSONPrinter(formatter.Writer)
	default:
		sink = printer.NewTextPrinter(formatter.Writer)
	}

	runner := newRunner(opts.RootOptions, newLogger(opts.RootOptions, cmd))
	res, err := runner.Run(commandContext(cmd), req, sink)
	if err != nil {
		return searchFailure(formatter, res, err)
	}

	summary := newSummary(res)
	switch {
	case opts.Count:
		return formatter.Success(summary)
	case opts.Format == "json":
		return nil
	default:
		fmt.Fprintf(formatter.Writer, "# %s\n", summary)
		return nil
	}
}

// searchFailure maps a Runner error onto an exit code and error code.
func searchFailure(f *OutputFormatter, res *search.Result, err error) error {
	var parseErr *symbol.ParseError
	switch {
	case errors.Is(err, partial.ErrDomain):
		return f.Fail(ExitCommandError, ErrCodeArgs, err)
	case errors.As(err, &parseErr), res == nil:
		return f.Fail(ExitCommandError, ErrCodeFormula, err)
	default:
		return f.Fail(ExitFailure, ErrCodeSearch, err)
	}
}

func parseSize(arg string) (int, error) {
	size, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", arg, err)
	}
	if size <= 0 {
		return 0, fmt.Errorf("size must be positive, got %d", size)
	}
	return size, nil
}

// problemText reads the problem from file, or joins the formula arguments.
func problemText(file string, args []string) (string, error) {
	if file != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("formula arguments cannot be combined with --file")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read problem: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("no formula given")
	}
	return strings.Join(args, " "), nil
}
