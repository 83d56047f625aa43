package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/noindent/internal/fixture"
)

// fixtureStyles holds the color formatters for fixture reports.
type fixtureStyles struct {
	pass    *color.Color
	fail    *color.Color
	summary *color.Color
}

// newFixtureStyles creates the report formatters. enabled=false strips
// every escape sequence.
func newFixtureStyles(enabled bool) *fixtureStyles {
	s := &fixtureStyles{
		pass:    color.New(color.FgHiGreen),
		fail:    color.New(color.Bold, color.FgHiRed),
		summary: color.New(color.Bold),
	}
	for _, c := range []*color.Color{s.pass, s.fail, s.summary} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// colorEnabled resolves the --color flag for out.
func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		if !ok || os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}

func newFixtureCmd(root *rootOptions) *cobra.Command {
	var (
		failFast  bool
		colorMode string
	)

	cmd := &cobra.Command{
		Use:   "fixture <path>...",
		Short: "Run fixture suites",
		Long: `Run YAML fixture suites. Each path is a suite file or a directory whose
*.yaml and *.yml files are loaded in name order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixture(cmd, args, root, failFast, colorMode)
		},
	}
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failing suite")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")
	return cmd
}

func runFixture(cmd *cobra.Command, args []string, root *rootOptions, failFast bool, colorMode string) error {
	out := cmd.OutOrStdout()
	enabled, err := colorEnabled(colorMode, out)
	if err != nil {
		return err
	}
	styles := newFixtureStyles(enabled)

	_, logger, err := root.load(cmd, nil)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	suites, err := loadSuites(args)
	if err != nil {
		return err
	}

	runner := fixture.NewRunner(logger)
	var passed, failed int
	for _, suite := range suites {
		results, err := runner.RunSuite(cmd.Context(), suite)
		if err != nil {
			return fmt.Errorf("%s: %w", suite.Path, err)
		}

		suiteFailed := 0
		for _, r := range results {
			if r.Passed() {
				passed++
				if root.verbose {
					fmt.Fprintf(out, "%s %s %s\n", styles.pass.Sprint("PASS"), suite.Path, r.Case)
				}
				continue
			}
			failed++
			suiteFailed++
			fmt.Fprintf(out, "%s %s %s\n", styles.fail.Sprint("FAIL"), suite.Path, r.Case)
			for _, f := range r.Failures {
				fmt.Fprintf(out, "    %s\n", f)
			}
		}
		fmt.Fprintf(out, "%s: %d/%d passed\n", suite.Path, len(results)-suiteFailed, len(results))
		if failFast && suiteFailed > 0 {
			break
		}
	}

	fmt.Fprintln(out)
	styles.summary.Fprintf(out, "%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return fmt.Errorf("%d fixture case(s) failed", failed)
	}
	return nil
}

func loadSuites(paths []string) ([]*fixture.Suite, error) {
	var suites []*fixture.Suite
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			dir, err := fixture.LoadDir(path)
			if err != nil {
				return nil, err
			}
			suites = append(suites, dir...)
			continue
		}
		suite, err := fixture.LoadFile(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}
