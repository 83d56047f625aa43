package fixture

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dshills/noindent/internal/command"
	"github.com/dshills/noindent/internal/engine/cursor"
)

// Suite is a fixture file: a shared document and the cases run against it.
type Suite struct {
	Path        string `yaml:"-"`
	Description string `yaml:"description"`
	Text        string `yaml:"text"`
	Cases       []Case `yaml:"cases"`
}

// Case describes one command run and its expected outcome.
type Case struct {
	Name     string          `yaml:"name"`
	Command  command.Name    `yaml:"command"`
	Enable   *bool           `yaml:"enable,omitempty"`
	Position cursor.RefPoint `yaml:"position"`
	Invert   bool            `yaml:"invert"`
	Merge    bool            `yaml:"merge"`
	Filter   bool            `yaml:"filter"`

	// Text replaces the suite document when set.
	Text *string `yaml:"text,omitempty"`

	Selections         string `yaml:"selections"`
	ExpectedSelections string `yaml:"expected_selections"`
	ExpectedText       string `yaml:"expected_text"`
}

// Settings returns the command settings the case runs with. A case
// without an enable key is enabled.
func (c Case) Settings() command.Settings {
	enable := true
	if c.Enable != nil {
		enable = *c.Enable
	}
	return command.Settings{
		Enable:   enable,
		Invert:   c.Invert,
		Position: c.Position,
		Filter:   c.Filter,
	}
}

// Document returns the text the case starts from.
func (c Case) Document(suite *Suite) string {
	if c.Text != nil {
		return *c.Text
	}
	return suite.Text
}

// Parse reads a suite from r and checks every case.
func Parse(r io.Reader) (*Suite, error) {
	var suite Suite
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&suite); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}

	for i, c := range suite.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("case %d: missing name", i)
		}
		if !c.Command.Valid() {
			return nil, fmt.Errorf("case %s: %w: %q", c.Name, command.ErrUnknownCommand, string(c.Command))
		}
		if _, err := ParseSelections(c.Selections); err != nil {
			return nil, fmt.Errorf("case %s: selections: %w", c.Name, err)
		}
		if _, err := ParseSelections(c.ExpectedSelections); err != nil {
			return nil, fmt.Errorf("case %s: expected selections: %w", c.Name, err)
		}
	}
	return &suite, nil
}

// LoadFile reads the suite at path.
func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	suite, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	suite.Path = path
	return suite, nil
}

// LoadDir reads every .yaml and .yml suite in dir, ordered by file name.
func LoadDir(dir string) ([]*Suite, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	suites := make([]*Suite, 0, len(paths))
	for _, path := range paths {
		suite, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

// Encode writes suite as YAML.
func Encode(w io.Writer, suite *Suite) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(suite); err != nil {
		return err
	}
	return enc.Close()
}
