package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/modelgen/internal/job"
	"github.com/roach88/modelgen/internal/partial"
	"github.com/roach88/modelgen/internal/printer"
	"github.com/roach88/modelgen/internal/search"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Out string // directory receiving one model file per job
}

// JobResult holds the outcome of one job.
type JobResult struct {
	Name    string   `json:"name"`
	Pass    bool     `json:"pass"`
	Summary *Summary `json:"summary,omitempty"`
	Output  string   `json:"output,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// RunResult holds the outcome of a batch.
type RunResult struct {
	Jobs   []JobResult `json:"jobs"`
	Passed int         `json:"passed"`
	Failed int         `json:"failed"`
	Total  int         `json:"total"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <jobs-dir>",
		Short: "Run a batch of searches from CUE job files",
		Long: `Run every job defined in the CUE package in <jobs-dir>:

  job: semigroups: {
      size:    3
      formula: "(x*y)*z = x*(y*z)"
      mode:    "all"     // or "first"
      only:    "si"      // optional filter tokens
      limit:   0         // optional, 0 = no limit
  }

Jobs run one after another. With --out, each job's models are written to
<out>/<name>.txt (or .jsonl with --format json); otherwise only counts are
reported.

Exit codes:
  0 - All jobs ran
  1 - One or more jobs failed
  2 - Command error (unreadable or invalid job files)`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobs(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "write each job's models into this directory")

	return cmd
}

func runJobs(opts *RunOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd)

	jobs, err := job.Load(dir)
	if err != nil {
		var loadErr *job.LoadError
		if errors.As(err, &loadErr) {
			return formatter.Fail(ExitCommandError, loadErr.Code, err)
		}
		return formatter.Fail(ExitCommandError, ErrCodeJobs, err)
	}
	formatter.VerboseLog("loaded %d job(s) from %s", len(jobs), dir)

	if opts.Out != "" {
		if err := os.MkdirAll(opts.Out, 0o755); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeArgs, fmt.Errorf("create output directory: %w", err))
		}
	}

	runner := newRunner(opts.RootOptions, logger)
	result := RunResult{Jobs: make([]JobResult, 0, len(jobs)), Total: len(jobs)}
	for _, j := range jobs {
		jr := runJob(opts, runner, j, cmd)
		if jr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		if opts.Format != "json" {
			if jr.Pass {
				formatter.Status(true, "%s: %s", jr.Name, jr.Summary)
			} else {
				formatter.Status(false, "%s: %s", jr.Name, jr.Error)
			}
		}
		result.Jobs = append(result.Jobs, jr)
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "\nRun Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d job(s) failed", result.Failed))
	}
	return nil
}

func runJob(opts *RunOptions, runner *search.Runner, j job.Job, cmd *cobra.Command) JobResult {
	jr := JobResult{Name: j.Name}

	var sink partial.Sink = &printer.Counter{}
	var out *os.File
	if opts.Out != "" {
		ext := ".txt"
		if opts.Format == "json" {
			ext = ".jsonl"
		}
		path := filepath.Join(opts.Out, j.Name+ext)
		f, err := os.Create(path)
		if err != nil {
			jr.Error = fmt.Sprintf("create output: %v", err)
			return jr
		}
		out = f
		jr.Output = path
		if opts.Format == "json" {
			sink = printer.NewJSONPrinter(f)
		} else {
			sink = printer.NewTextPrinter(f)
		}
	}

	res, err := runner.Run(commandContext(cmd), j.Request(), sink)
	if out != nil {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}
	if err != nil {
		jr.Error = err.Error()
		return jr
	}
	summary := newSummary(res)
	jr.Summary = &summary
	jr.Pass = true
	return jr
}
