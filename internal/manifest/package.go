package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ErrInvalidManifest is returned when the input is not a JSON object.
var ErrInvalidManifest = errors.New("invalid package manifest")

// Generate returns a package.json holding only the generated fields.
func Generate(meta Meta) ([]byte, error) {
	return Apply(nil, meta)
}

// Apply rewrites the generated fields of the package.json document doc
// and leaves every other field untouched. The result is indented with
// four spaces.
func Apply(doc []byte, meta Meta) ([]byte, error) {
	if len(strings.TrimSpace(string(doc))) == 0 {
		doc = []byte("{}")
	}
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return nil, ErrInvalidManifest
	}

	fields := []struct {
		path  string
		value any
	}{
		{"name", meta.Name},
		{"displayName", meta.Title},
		{"version", meta.Version},
		{"publisher", meta.Author},
		{"bugs.url", meta.URL + "/issues/"},
		{"repository.type", "git"},
		{"repository.url", meta.URL + ".git"},
		{"homepage", meta.URL + "/"},
		{"contributes.commands", Commands()},
		{"contributes.keybindings", Keybindings()},
	}

	var err error
	for _, f := range fields {
		if doc, err = sjson.SetBytes(doc, f.path, f.value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", f.path, err)
		}
	}

	if doc, err = sjson.SetRawBytes(doc, "contributes.configuration", []byte("[]")); err != nil {
		return nil, fmt.Errorf("setting contributes.configuration: %w", err)
	}
	for _, section := range Configuration() {
		raw, err := section.MarshalJSON()
		if err != nil {
			return nil, err
		}
		if doc, err = sjson.SetRawBytes(doc, "contributes.configuration.-1", raw); err != nil {
			return nil, fmt.Errorf("appending section %s: %w", section.ID, err)
		}
	}

	return pretty.PrettyOptions(doc, &pretty.Options{Width: 80, Indent: "    "}), nil
}

// MarshalJSON writes the section with its properties keyed by setting
// key, in property order.
func (s Section) MarshalJSON() ([]byte, error) {
	doc := []byte("{}")
	var err error
	if doc, err = sjson.SetBytes(doc, "order", s.Order); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "id", s.ID); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "title", s.Title); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetRawBytes(doc, "properties", []byte("{}")); err != nil {
		return nil, err
	}
	for _, p := range s.Properties {
		if doc, err = sjson.SetBytes(doc, "properties."+EscapeKey(p.Key), p); err != nil {
			return nil, fmt.Errorf("setting property %s: %w", p.Key, err)
		}
	}
	return doc, nil
}

// EscapeKey escapes the path syntax characters of a JSON key so it can
// be used as a single gjson or sjson path component.
func EscapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
