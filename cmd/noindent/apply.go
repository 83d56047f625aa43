package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/dshills/noindent/internal/command"
	"github.com/dshills/noindent/internal/config"
	"github.com/dshills/noindent/internal/engine"
	"github.com/dshills/noindent/internal/fixture"
)

type applyOptions struct {
	root *rootOptions

	selections string
	position   string
	invert     bool
	filter     bool
	merge      bool
	output     string
	write      bool
	format     string
}

func newApplyCmd(root *rootOptions) *cobra.Command {
	opts := &applyOptions{root: root}

	cmd := &cobra.Command{
		Use:   "apply <command> [file]",
		Short: "Run a newline command on a document",
		Long: `Run one of the newline commands (before, after, up, down) on a document
read from file or standard input. Selections use the notation
{({anchorLine,anchorChar},{activeLine,activeChar}),...} with 0-based
lines and characters.`,
		Example: `  noindent apply up notes.txt -s '{({0,3},{0,4})}'
  printf 'abc def' | noindent apply after -s '{({0,3},{0,3})}' --format json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.selections, "selections", "s", "", "Selections in {({l,c},{l,c}),...} notation (default: cursor at 0,0)")
	f.StringVar(&opts.position, "position", "", "Reference point: active, anchor, start, end")
	f.BoolVar(&opts.invert, "invert", false, "Invert caret placement for cursors sharing a line")
	f.BoolVar(&opts.filter, "filter", false, "Drop overlapping selections before splitting (up/down only)")
	f.BoolVar(&opts.merge, "merge", true, "Merge overlapping selections like editor.multiCursorMergeOverlapping")
	f.StringVarP(&opts.output, "output", "o", "", "Write the document to this file instead of standard output")
	f.BoolVarP(&opts.write, "write", "w", false, "Write the result back to the input file")
	f.StringVar(&opts.format, "format", "text", "Output format: text, json")
	return cmd
}

func runApply(cmd *cobra.Command, args []string, opts *applyOptions) error {
	name, err := command.ParseName(args[0])
	if err != nil {
		return err
	}
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	path := "-"
	if len(args) == 2 {
		path = args[1]
	}
	if opts.write && path == "-" {
		return errors.New("--write requires a file argument")
	}
	if opts.write && opts.output != "" {
		return errors.New("--write and --output are mutually exclusive")
	}

	cfg, logger, err := opts.root.load(cmd, opts.overrides(cmd, name))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var sels []engine.Selection
	if opts.selections != "" {
		sels, err = fixture.ParseSelections(opts.selections)
		if err != nil {
			return err
		}
	}

	in, closeIn, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	eng, err := engine.NewFromReader(in,
		engine.WithDetectedLineEnding(),
		engine.WithMergeOverlapping(cfg.Editor().MultiCursorMergeOverlapping),
		engine.WithLogger(logger),
	)
	closeIn()
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if sels != nil {
		eng.SetSelections(sels)
	}

	runner := command.NewRunner(cfg, command.WithLogger(logger))
	outcome, err := runner.Run(cmd.Context(), eng, name)
	if err != nil {
		return err
	}
	for key, cerr := range cfg.ConfigErrors() {
		logger.Warn("invalid setting ignored", zap.String("key", key), zap.Error(cerr))
	}
	logger.Info("command finished",
		zap.String("command", name.ID()),
		zap.Stringer("status", outcome.Status),
		zap.Int("edits", outcome.Edits),
		zap.String("selections", fixture.FormatSelections(outcome.Selections)))

	var data []byte
	switch opts.format {
	case "json":
		data, err = applyJSON(eng, outcome)
		if err != nil {
			return err
		}
	default:
		data = []byte(eng.Text())
	}

	switch {
	case opts.write:
		return writeFile(path, []byte(eng.Text()))
	case opts.output != "":
		return writeFile(opts.output, data)
	default:
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
}

// overrides maps the flags the user set onto configuration keys.
func (o *applyOptions) overrides(cmd *cobra.Command, n command.Name) map[string]any {
	out := make(map[string]any)
	flags := cmd.Flags()
	if flags.Changed("position") {
		out[command.SettingPosition.Key(n)] = o.position
	}
	if flags.Changed("invert") {
		out[command.SettingInvert.Key(n)] = o.invert
	}
	if flags.Changed("filter") && n.Destructive() {
		out[command.SettingFilter.Key(n)] = o.filter
	}
	if flags.Changed("merge") {
		out[config.PathMergeOverlapping] = o.merge
	}
	return out
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func applyJSON(eng *engine.Engine, outcome *command.Outcome) ([]byte, error) {
	doc := []byte(`{}`)
	set := func(path string, value any) error {
		var err error
		doc, err = sjson.SetBytes(doc, path, value)
		return err
	}

	fields := []struct {
		path  string
		value any
	}{
		{"command", outcome.Command.ID()},
		{"status", outcome.Status.String()},
		{"text", eng.Text()},
		{"selections", fixture.FormatSelections(outcome.Selections)},
		{"edits", outcome.Edits},
		{"inserts", outcome.Inserts},
		{"deletes", outcome.Deletes},
		{"clumps", outcome.Clumps},
		{"dropped", outcome.Dropped},
		{"revision", uint64(eng.RevisionID())},
	}
	for _, field := range fields {
		if err := set(field.path, field.value); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", field.path, err)
		}
	}
	if outcome.Status == command.StatusOK {
		if err := set("transaction", outcome.TxID.String()); err != nil {
			return nil, fmt.Errorf("encoding transaction: %w", err)
		}
	}
	return append(doc, '\n'), nil
}
