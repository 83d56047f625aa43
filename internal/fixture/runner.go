package fixture

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/noindent/internal/command"
	"github.com/dshills/noindent/internal/engine"
)

// Result is the outcome of one case.
type Result struct {
	Suite      string
	Case       string
	Text       string
	Selections string
	Status     command.Status
	Failures   []string
}

// Passed reports whether the case produced the expected text and selections.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Runner executes fixture cases against fresh engines.
type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a fixture runner. A nil logger discards output.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// RunCase runs one case of suite. The error reports a case that could
// not run at all; expectation mismatches are listed in Result.Failures.
func (r *Runner) RunCase(ctx context.Context, suite *Suite, c Case) (*Result, error) {
	sels, err := ParseSelections(c.Selections)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	want, err := ParseSelections(c.ExpectedSelections)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}

	eng := engine.New(
		engine.WithContent(c.Document(suite)),
		engine.WithMergeOverlapping(c.Merge),
		engine.WithLogger(r.logger),
	)
	eng.SetSelections(sels)

	runner := command.NewRunner(
		command.StaticSettings{c.Command: c.Settings()},
		command.WithLogger(r.logger),
	)
	outcome, err := runner.Run(ctx, eng, c.Command)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}

	result := &Result{
		Suite:      suite.Path,
		Case:       c.Name,
		Text:       eng.Text(),
		Selections: FormatSelections(eng.Selections()),
		Status:     outcome.Status,
	}
	if result.Text != c.ExpectedText {
		result.Failures = append(result.Failures,
			fmt.Sprintf("text: expected %q, got %q", c.ExpectedText, result.Text))
	}
	if expected := FormatSelections(want); result.Selections != expected {
		result.Failures = append(result.Failures,
			fmt.Sprintf("selections: expected %s, got %s", expected, result.Selections))
	}
	return result, nil
}

// RunSuite runs every case of suite in order and stops at the first case
// that cannot run.
func (r *Runner) RunSuite(ctx context.Context, suite *Suite) ([]*Result, error) {
	results := make([]*Result, 0, len(suite.Cases))
	for _, c := range suite.Cases {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := r.RunCase(ctx, suite, c)
		if err != nil {
			return results, err
		}
		if !result.Passed() {
			r.logger.Debug("fixture failed",
				zap.String("suite", suite.Path),
				zap.String("case", c.Name),
				zap.Strings("failures", result.Failures))
		}
		results = append(results, result)
	}
	return results, nil
}
