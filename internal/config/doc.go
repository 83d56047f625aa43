// Package config loads the settings of the newline commands.
//
// Settings use the same keys as the editor contribution, for example
// "no-indent-newline.up.position" and "editor.multiCursorMergeOverlapping".
// Sources are merged in order, later ones overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  4. Overrides (flags)       │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← NOINDENT_UP_POSITION=start
//	├─────────────────────────────┤
//	│  2. Files                   │  ← TOML, YAML or settings.json
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile("noindent.toml"))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	runner := command.NewRunner(cfg)
//
// A TOML file looks like:
//
//	[editor]
//	multiCursorMergeOverlapping = true
//
//	[no-indent-newline.up]
//	position = "start"
//	filter = true
//
// Unknown commands, unknown settings and invalid values inside the
// command namespace fail validation with errors matching
// ErrValidationFailed. Other sections are ignored.
package config
