package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/modelgen/internal/search"
	"github.com/roach88/modelgen/internal/symbol"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	File string
}

// SymbolInfo is one operation or relation symbol.
type SymbolInfo struct {
	Name  string `json:"name"`
	Arity int    `json:"arity"`
}

// CheckResult is the symbol inventory of a problem.
type CheckResult struct {
	Formula    string       `json:"formula"`
	Operations []SymbolInfo `json:"operations"`
	Relations  []SymbolInfo `json:"relations"`
	Variables  []string     `json:"variables"`
	Free       []string     `json:"free"`
	Filter     string       `json:"filter,omitempty"`
}

func (r CheckResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "formula:    %s\n", r.Formula)
	fmt.Fprintf(&b, "operations: %s\n", symbolList(r.Operations))
	fmt.Fprintf(&b, "relations:  %s\n", symbolList(r.Relations))
	fmt.Fprintf(&b, "variables:  %s\n", strings.Join(r.Variables, " "))
	fmt.Fprintf(&b, "free:       %s", strings.Join(r.Free, " "))
	if r.Filter != "" {
		fmt.Fprintf(&b, "\nfilter:     %s", r.Filter)
	}
	return b.String()
}

func symbolList(syms []SymbolInfo) string {
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = fmt.Sprintf("%s/%d", s.Name, s.Arity)
	}
	return strings.Join(parts, " ")
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [formula...]",
		Short: "Parse a formula and list its symbols",
		Long: `Parse and type-check a problem without searching, then list the
operations, relations and variables it uses.

Examples:
  modelgen check 'forall x. exists y. x*y = e'
  modelgen check --file groups.txt --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "read the problem from a file")

	return cmd
}

func runCheck(opts *CheckOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	text, err := problemText(opts.File, args)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeArgs, err)
	}
	problem, err := search.ParseProblem(text)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeFormula, err)
	}
	f, err := problem.Compile()
	if err == nil {
		err = f.Check()
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeFormula, err)
	}

	return formatter.Success(CheckResult{
		Formula:    f.String(),
		Operations: symbolInfos(f.Operations()),
		Relations:  symbolInfos(f.Relations()),
		Variables:  nonNil(f.Variables()),
		Free:       nonNil(f.FreeVariables()),
		Filter:     problem.Filter,
	})
}

func symbolInfos(syms []symbol.Symbol) []SymbolInfo {
	out := make([]SymbolInfo, len(syms))
	for i, s := range syms {
		out[i] = SymbolInfo{Name: s.Name, Arity: s.Arity}
	}
	return out
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
