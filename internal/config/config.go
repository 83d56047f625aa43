package config

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/noindent/internal/command"
	"github.com/dshills/noindent/internal/config/loader"
)

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "NOINDENT_"

// Setting paths outside the command namespace.
const (
	PathMergeOverlapping = "editor.multiCursorMergeOverlapping"
	PathLogLevel         = "logging.level"
	PathLogFormat        = "logging.format"
)

// Config holds the merged configuration: built-in defaults, then each
// file in order, then environment variables, then explicit overrides.
type Config struct {
	mu sync.RWMutex

	data map[string]any

	// Sources
	fs        loader.FileSystem
	files     []string
	useEnv    bool
	envPrefix string
	overrides map[string]any

	// configErrors stores errors encountered during configuration access.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile adds a configuration file. Later files override earlier ones.
// The format follows the file extension.
func WithFile(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.files = append(c.files, path)
		}
	}
}

// WithFileSystem sets the file system configuration files are read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnv enables or disables reading environment variables.
func WithEnv(enable bool) Option {
	return func(c *Config) {
		c.useEnv = enable
	}
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithOverride sets a value that takes precedence over every source.
func WithOverride(path string, value any) Option {
	return func(c *Config) {
		if c.overrides == nil {
			c.overrides = make(map[string]any)
		}
		c.overrides[path] = value
	}
}

// New creates a Config holding the defaults. Call Load to read the
// configured sources.
func New(opts ...Option) *Config {
	c := &Config{
		data:      defaultConfig(),
		fs:        loader.DefaultFS(),
		useEnv:    true,
		envPrefix: EnvPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads every source and validates the result. On error the
// previous configuration is kept.
func (c *Config) Load(_ context.Context) error {
	data := defaultConfig()

	for _, path := range c.files {
		fileData, err := loader.New(c.fs, path).Load()
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		data = loader.DeepMerge(data, fileData)
	}

	if c.useEnv {
		envData, err := loader.NewEnvLoaderWithMapping(c.envPrefix, EnvMapping(c.envPrefix)).Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		data = loader.DeepMerge(data, envData)
	}

	for path, value := range c.overrides {
		loader.SetByPath(data, path, value)
	}

	if err := validate(data); err != nil {
		return err
	}

	c.mu.Lock()
	c.data = data
	c.configErrors = nil
	c.mu.Unlock()
	return nil
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.GetByPath(c.data, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// Set validates and stores a value.
func (c *Config) Set(path string, value any) error {
	if len(loader.SplitPath(path)) == 0 {
		return ErrInvalidPath
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := loader.Clone(c.data)
	loader.SetByPath(next, path, value)
	if err := validate(next); err != nil {
		return err
	}
	c.data = next
	return nil
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.data)
}

// EnvMapping returns the environment variables read with the given
// prefix and the setting path each one sets, e.g. NOINDENT_UP_POSITION
// sets no-indent-newline.up.position.
func EnvMapping(prefix string) map[string]string {
	mapping := map[string]string{
		prefix + "MERGE_OVERLAPPING": PathMergeOverlapping,
		prefix + "LOG_LEVEL":         PathLogLevel,
		prefix + "LOG_FORMAT":        PathLogFormat,
	}
	for _, n := range command.Names {
		for _, s := range command.SettingNames {
			env := prefix + strings.ToUpper(string(n)) + "_" + strings.ToUpper(string(s))
			mapping[env] = s.Key(n)
		}
	}
	return mapping
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	commands := make(map[string]any, len(command.Names))
	for n, s := range command.Defaults() {
		commands[string(n)] = map[string]any{
			string(command.SettingEnable):   s.Enable,
			string(command.SettingInvert):   s.Invert,
			string(command.SettingPosition): s.Position.String(),
			string(command.SettingFilter):   s.Filter,
		}
	}

	return map[string]any{
		"editor": map[string]any{
			"multiCursorMergeOverlapping": true,
		},
		"logging": map[string]any{
			"level":  "info",
			"format": "console",
		},
		command.Namespace: commands,
	}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
