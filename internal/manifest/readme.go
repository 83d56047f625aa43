package manifest

import (
	"fmt"
	"strings"

	"github.com/dshills/noindent/internal/command"
)

// Readme renders the Features and Settings sections of the README.
func Readme() string {
	defaults := command.DefaultSettings()
	var features, settings strings.Builder

	for _, n := range command.Names {
		linux, win, mac := displayKeys(n)

		fmt.Fprintf(&features, "\n### %s", n.Title())
		fmt.Fprintf(&features, "\n* Command Palette Name: `%s`", n.Title())
		fmt.Fprintf(&features, "\n* Command Name: `%s`", n.ID())
		fmt.Fprintf(&features, "\n* Linux default keybind: `%s`", linux)
		fmt.Fprintf(&features, "\n* Windows default keybind: `%s`", win)
		fmt.Fprintf(&features, "\n* Mac default keybind: `%s`", mac)
		fmt.Fprintf(&features, "\n* Default when condition: `%s`", When(n))
		features.WriteString("\n")

		placement := "bottom"
		if n.Postfix() {
			placement = "top"
		}

		fmt.Fprintf(&settings, "\n### %s", title(n))
		for _, s := range Settings(n) {
			var value any
			switch s {
			case command.SettingEnable:
				value = defaults.Enable
			case command.SettingInvert:
				value = defaults.Invert
			case command.SettingPosition:
				value = defaults.Position
			case command.SettingFilter:
				value = defaults.Filter
			}
			fmt.Fprintf(&settings, "\n* `%s` : `%v` : %s", s.Key(n), value, description(n, s, placement))
		}
		settings.WriteString("\n")
	}

	return "## Features" + features.String() + "\n## Settings" + settings.String() + "\n"
}

// displayKeys returns the key chords of n as written for users.
func displayKeys(n command.Name) (linux, win, mac string) {
	linux = defaultKeys[n]
	return linux, strings.ReplaceAll(linux, "Meta", "Win"), strings.ReplaceAll(linux, "Ctrl", "Cmd")
}
