package manifest

import (
	"strings"

	"github.com/dshills/noindent/internal/command"
	"github.com/dshills/noindent/internal/engine/cursor"
)

// Meta identifies the published extension.
type Meta struct {
	Author  string
	Title   string
	Name    string
	URL     string
	Version string
}

// DefaultMeta returns the metadata of the published extension.
func DefaultMeta() Meta {
	return Meta{
		Author:  "fjara",
		Title:   "No Indent Newline",
		Name:    command.Namespace,
		URL:     "https://github.com/Fjara-h/no-indent-newline-vscode",
		Version: "1.0.1",
	}
}

// ID returns the marketplace identifier, e.g. "fjara.no-indent-newline".
func (m Meta) ID() string {
	return m.Author + "." + m.Name
}

// Command is a contributes.commands entry.
type Command struct {
	Command string `json:"command"`
	Title   string `json:"title"`
}

// Keybinding is a contributes.keybindings entry.
type Keybinding struct {
	Command string `json:"command"`
	Key     string `json:"key"`
	Win     string `json:"win"`
	Linux   string `json:"linux"`
	Mac     string `json:"mac"`
	When    string `json:"when"`
}

// Property is one configuration property.
type Property struct {
	Key                      string   `json:"-"`
	Order                    int      `json:"order"`
	Type                     string   `json:"type"`
	Description              string   `json:"description"`
	Default                  any      `json:"default"`
	Enum                     []string `json:"enum,omitempty"`
	MarkdownEnumDescriptions []string `json:"markdownEnumDescriptions,omitempty"`
	EnumItemLabels           []string `json:"enumItemLabels,omitempty"`
}

// Section is a contributes.configuration entry holding the properties of
// one command.
type Section struct {
	Order      int
	ID         string
	Title      string
	Properties []Property
}

// Default key chords, written as shown to users.
var defaultKeys = map[command.Name]string{
	command.After:  "Ctrl + Shift + Meta + Enter",
	command.Before: "Ctrl + Shift + Alt + Meta + Enter",
	command.Down:   "Ctrl + Meta + Enter",
	command.Up:     "Ctrl + Alt + Meta + Enter",
}

const (
	enableDesc   = "Enables the command and keybind to insert a non-indented newline on the %postfix% line%destructive%."
	invertDesc   = "Invert the default ordering - With multiple selections on the same line, the left-most selection is placed at the %postfix%."
	positionDesc = "Selection position to compare and use as the focal point of calculations. Start, Active, Anchor, End."
	filterDesc   = "Filter selections similar to how VSCode does before doing operations."

	destructiveSuffix = " deleting the selection and moving text after it, with it"
)

var positionDescriptions = map[cursor.RefPoint]string{
	cursor.RefActive: "A selection's active cursor position",
	cursor.RefAnchor: "A selection's anchor position, opposite the active cursor",
	cursor.RefStart:  "A selection's beginning position",
	cursor.RefEnd:    "A selection's ending position",
}

var positionLabels = map[cursor.RefPoint]string{
	cursor.RefActive: "Selection active cursor",
	cursor.RefAnchor: "Selection anchor",
	cursor.RefStart:  "Selection start",
	cursor.RefEnd:    "Selection end",
}

// Keys returns the default key chord of n for Linux, Windows and macOS.
func Keys(n command.Name) (linux, win, mac string) {
	linux = strings.ToLower(strings.ReplaceAll(defaultKeys[n], " ", ""))
	win = strings.ReplaceAll(linux, "meta", "win")
	mac = strings.ReplaceAll(linux, "ctrl", "cmd")
	return linux, win, mac
}

// When returns the default when clause of n.
func When(n command.Name) string {
	return "editorTextFocus && !editorReadonly && config." + command.SettingEnable.Key(n)
}

// Commands returns the command contributions in declaration order.
func Commands() []Command {
	commands := make([]Command, 0, len(command.Names))
	for _, n := range command.Names {
		commands = append(commands, Command{Command: n.ID(), Title: n.Title()})
	}
	return commands
}

// Keybindings returns the default keybindings in declaration order.
func Keybindings() []Keybinding {
	bindings := make([]Keybinding, 0, len(command.Names))
	for _, n := range command.Names {
		linux, win, mac := Keys(n)
		bindings = append(bindings, Keybinding{
			Command: n.ID(),
			Key:     linux,
			Win:     win,
			Linux:   linux,
			Mac:     mac,
			When:    When(n),
		})
	}
	return bindings
}

// Settings returns the configurable settings of n. Filtering only exists
// for destructive commands.
func Settings(n command.Name) []command.Setting {
	settings := make([]command.Setting, 0, len(command.SettingNames))
	for _, s := range command.SettingNames {
		if s == command.SettingFilter && !n.Destructive() {
			continue
		}
		settings = append(settings, s)
	}
	return settings
}

// Configuration returns one configuration section per command.
func Configuration() []Section {
	defaults := command.DefaultSettings()
	sections := make([]Section, 0, len(command.Names))

	for order, n := range command.Names {
		section := Section{Order: order, ID: string(n), Title: title(n)}
		for i, s := range Settings(n) {
			p := Property{Key: s.Key(n), Order: i, Description: description(n, s, n.Direction())}
			switch s {
			case command.SettingEnable:
				p.Type, p.Default = "boolean", defaults.Enable
			case command.SettingInvert:
				p.Type, p.Default = "boolean", defaults.Invert
			case command.SettingFilter:
				p.Type, p.Default = "boolean", defaults.Filter
			case command.SettingPosition:
				p.Type, p.Default = "string", defaults.Position.String()
				for _, ref := range cursor.RefPoints {
					p.Enum = append(p.Enum, ref.String())
					p.MarkdownEnumDescriptions = append(p.MarkdownEnumDescriptions, positionDescriptions[ref])
					p.EnumItemLabels = append(p.EnumItemLabels, positionLabels[ref])
				}
			}
			section.Properties = append(section.Properties, p)
		}
		sections = append(sections, section)
	}
	return sections
}

// description fills the description template of setting s. placement
// replaces the postfix placeholder of the invert description.
func description(n command.Name, s command.Setting, placement string) string {
	switch s {
	case command.SettingEnable:
		suffix := ""
		if n.Destructive() {
			suffix = destructiveSuffix
		}
		return strings.NewReplacer("%postfix%", n.Direction(), "%destructive%", suffix).Replace(enableDesc)
	case command.SettingInvert:
		return strings.ReplaceAll(invertDesc, "%postfix%", placement)
	case command.SettingPosition:
		return positionDesc
	case command.SettingFilter:
		return filterDesc
	default:
		return ""
	}
}

func title(n command.Name) string {
	s := string(n)
	return strings.ToUpper(s[:1]) + s[1:]
}
