// Package command wires the newline planner to an engine as the four
// commands before, after, up and down, each with its own settings.
package command
