package command

import (
	"github.com/dshills/noindent/internal/engine/cursor"
	"github.com/dshills/noindent/internal/newline"
)

// Setting names a per-command setting.
type Setting string

const (
	SettingEnable   Setting = "enable"
	SettingInvert   Setting = "invert"
	SettingPosition Setting = "position"
	SettingFilter   Setting = "filter"
)

// SettingNames lists every per-command setting in declaration order.
var SettingNames = []Setting{SettingEnable, SettingInvert, SettingPosition, SettingFilter}

// Key returns the full setting key for command n, e.g.
// "no-indent-newline.up.enable".
func (s Setting) Key(n Name) string {
	return Namespace + "." + string(n) + "." + string(s)
}

// Settings holds the configuration of one command.
type Settings struct {
	Enable   bool            `toml:"enable" yaml:"enable"`
	Invert   bool            `toml:"invert" yaml:"invert"`
	Position cursor.RefPoint `toml:"position" yaml:"position"`
	Filter   bool            `toml:"filter" yaml:"filter"`
}

// DefaultSettings returns the settings every command starts with.
func DefaultSettings() Settings {
	return Settings{
		Enable:   true,
		Invert:   false,
		Position: cursor.RefEnd,
		Filter:   false,
	}
}

// Defaults returns the default settings of every command.
func Defaults() map[Name]Settings {
	defaults := make(map[Name]Settings, len(Names))
	for _, n := range Names {
		defaults[n] = DefaultSettings()
	}
	return defaults
}

// Flags derives the planner flags of command n. Filtering only applies to
// destructive commands.
func Flags(n Name, s Settings, mergeOverlapping bool) newline.Flags {
	return newline.Flags{
		RefPoint:         s.Position,
		Invert:           s.Invert,
		Destructive:      n.Destructive(),
		Postfix:          n.Postfix(),
		Filter:           n.Destructive() && s.Filter,
		MergeOverlapping: mergeOverlapping,
	}
}

// SettingsProvider supplies the settings of a command.
type SettingsProvider interface {
	CommandSettings(n Name) Settings
}

// StaticSettings is a SettingsProvider backed by a map. Commands missing
// from the map use DefaultSettings.
type StaticSettings map[Name]Settings

// CommandSettings implements SettingsProvider.
func (s StaticSettings) CommandSettings(n Name) Settings {
	if settings, ok := s[n]; ok {
		return settings
	}
	return DefaultSettings()
}
