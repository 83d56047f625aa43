package config

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/dshills/noindent/internal/command"
	"github.com/dshills/noindent/internal/engine/cursor"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"console", "json"}
)

// Validate checks the merged configuration. Sections other than editor,
// logging and the command namespace are ignored, so a shared editor
// settings file can be loaded as is.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return validate(c.data)
}

// validate returns every problem found in data joined into one error.
func validate(data map[string]any) error {
	var errs []error
	add := func(err *ValidationError) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if editor, ok := data["editor"].(map[string]any); ok {
		if v, ok := editor["multiCursorMergeOverlapping"]; ok {
			add(expectBool(PathMergeOverlapping, v))
		}
	}

	switch logging := data["logging"].(type) {
	case nil:
	case map[string]any:
		for _, key := range sortedKeys(logging) {
			path := "logging." + key
			switch key {
			case "level":
				add(expectEnum(path, logging[key], logLevels))
			case "format":
				add(expectEnum(path, logging[key], logFormats))
			default:
				add(unknownSetting(path, logging[key]))
			}
		}
	default:
		add(&ValidationError{Path: "logging", Message: "expected a section", Value: logging, Code: ErrCodeTypeMismatch})
	}

	switch commands := data[command.Namespace].(type) {
	case nil:
	case map[string]any:
		for _, key := range sortedKeys(commands) {
			errs = append(errs, validateCommand(key, commands[key])...)
		}
	default:
		add(&ValidationError{Path: command.Namespace, Message: "expected a section", Value: commands, Code: ErrCodeTypeMismatch})
	}

	return errors.Join(errs...)
}

func validateCommand(name string, value any) []error {
	n := command.Name(name)
	path := command.Namespace + "." + name
	if !n.Valid() {
		return []error{unknownSetting(path, value)}
	}

	settings, ok := value.(map[string]any)
	if !ok {
		return []error{&ValidationError{Path: path, Message: "expected a section", Value: value, Code: ErrCodeTypeMismatch}}
	}

	var errs []error
	for _, key := range sortedKeys(settings) {
		s := command.Setting(key)
		v := settings[key]

		var err *ValidationError
		switch s {
		case command.SettingEnable, command.SettingInvert, command.SettingFilter:
			err = expectBool(s.Key(n), v)
		case command.SettingPosition:
			err = expectPosition(s.Key(n), v)
		default:
			err = unknownSetting(s.Key(n), v)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func expectBool(path string, v any) *ValidationError {
	if _, ok := v.(bool); ok {
		return nil
	}
	return &ValidationError{
		Path:    path,
		Message: fmt.Sprintf("expected bool, got %s", typeName(v)),
		Value:   v,
		Code:    ErrCodeTypeMismatch,
	}
}

func expectEnum(path string, v any, allowed []string) *ValidationError {
	s, ok := v.(string)
	if !ok {
		return &ValidationError{
			Path:    path,
			Message: fmt.Sprintf("expected string, got %s", typeName(v)),
			Value:   v,
			Code:    ErrCodeTypeMismatch,
		}
	}
	if !slices.Contains(allowed, s) {
		return &ValidationError{
			Path:    path,
			Message: fmt.Sprintf("must be one of %v", allowed),
			Value:   v,
			Code:    ErrCodeInvalidEnum,
		}
	}
	return nil
}

func expectPosition(path string, v any) *ValidationError {
	allowed := make([]string, len(cursor.RefPoints))
	for i, ref := range cursor.RefPoints {
		allowed[i] = ref.String()
	}
	return expectEnum(path, v, allowed)
}

func unknownSetting(path string, v any) *ValidationError {
	return &ValidationError{Path: path, Message: "unknown setting", Value: v, Code: ErrCodeUnknownSetting}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
