package config

import (
	"errors"

	"github.com/dshills/noindent/internal/command"
	"github.com/dshills/noindent/internal/engine/cursor"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// EditorConfig provides type-safe access to editor settings.
type EditorConfig struct {
	// MultiCursorMergeOverlapping merges overlapping selections.
	MultiCursorMergeOverlapping bool
}

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string

	// Format is the log encoding ("console", "json").
	Format string
}

// Editor returns type-safe access to editor settings.
func (c *Config) Editor() EditorConfig {
	return EditorConfig{
		MultiCursorMergeOverlapping: c.getBoolOr(PathMergeOverlapping, true),
	}
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level:  c.getStringOr(PathLogLevel, "info"),
		Format: c.getStringOr(PathLogFormat, "console"),
	}
}

// Command returns the settings of command n.
func (c *Config) Command(n command.Name) command.Settings {
	defaults := command.DefaultSettings()

	position := defaults.Position
	if raw := c.getStringOr(command.SettingPosition.Key(n), defaults.Position.String()); raw != "" {
		parsed, err := cursor.ParseRefPoint(raw)
		if err != nil {
			c.recordConfigError(command.SettingPosition.Key(n), err)
		} else {
			position = parsed
		}
	}

	return command.Settings{
		Enable:   c.getBoolOr(command.SettingEnable.Key(n), defaults.Enable),
		Invert:   c.getBoolOr(command.SettingInvert.Key(n), defaults.Invert),
		Position: position,
		Filter:   c.getBoolOr(command.SettingFilter.Key(n), defaults.Filter),
	}
}

// CommandSettings implements command.SettingsProvider.
func (c *Config) CommandSettings(n command.Name) command.Settings {
	return c.Command(n)
}

// Commands returns the settings of every command.
func (c *Config) Commands() map[command.Name]command.Settings {
	result := make(map[command.Name]command.Settings, len(command.Names))
	for _, n := range command.Names {
		result[n] = c.Command(n)
	}
	return result
}

// These methods only return the default for ErrSettingNotFound.
// Type errors are recorded and return the default to avoid breaking callers.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

// recordConfigError stores the first error seen for path.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns any configuration errors encountered during access.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	result := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		result[k] = v
	}
	return result
}
