package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/noindent/internal/manifest"
)

type manifestOptions struct {
	readme  bool
	write   bool
	version string
}

func newManifestCmd() *cobra.Command {
	opts := &manifestOptions{}

	cmd := &cobra.Command{
		Use:   "manifest [package.json]",
		Short: "Generate the extension manifest",
		Long: `Generate the contributes section of the extension package.json: commands,
keybindings and the per-command settings. With a path, the existing
manifest is updated in place of a fresh one; other fields are kept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManifest(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.readme, "readme", false, "Print the README features and settings sections instead")
	f.BoolVarP(&opts.write, "write", "w", false, "Write the result back to the given package.json")
	f.StringVar(&opts.version, "set-version", "", "Extension version to record")
	return cmd
}

func runManifest(cmd *cobra.Command, args []string, opts *manifestOptions) error {
	if opts.readme {
		_, err := fmt.Fprint(cmd.OutOrStdout(), manifest.Readme())
		return err
	}
	if opts.write && len(args) == 0 {
		return errors.New("--write requires a package.json argument")
	}

	meta := manifest.DefaultMeta()
	if opts.version != "" {
		meta.Version = opts.version
	}

	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		doc, rerr := os.ReadFile(args[0])
		if rerr != nil {
			return rerr
		}
		data, err = manifest.Apply(doc, meta)
	} else {
		data, err = manifest.Generate(meta)
	}
	if err != nil {
		return err
	}

	if opts.write {
		return writeFile(args[0], data)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
