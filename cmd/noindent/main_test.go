package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/noindent/internal/command"
	"github.com/dshills/noindent/internal/config"
	"github.com/dshills/noindent/internal/fixture"
	"github.com/dshills/noindent/internal/newline"
)

// execute runs a fresh root command with environment lookups disabled.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--no-env"))

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApplyFile(t *testing.T) {
	path := writeTemp(t, "doc.txt", "abc def")

	tests := []struct {
		command string
		want    string
	}{
		{"before", "\nabc def"},
		{"after", "abc def\n"},
		{"up", "def\nabc"},
		{"no-indent-newline.down", "abc\ndef"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			out, _, err := execute(t, "", "apply", tt.command, path, "-s", "{({0,3},{0,4})}")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc def", string(data), "input must not change without --write")
}

func TestApplyStdin(t *testing.T) {
	out, _, err := execute(t, "abc def", "apply", "after", "-", "-s", "{({0,3},{0,3})}")
	require.NoError(t, err)
	assert.Equal(t, "abc def\n", out)
}

func TestApplyDefaultCursor(t *testing.T) {
	out, _, err := execute(t, "abc", "apply", "before")
	require.NoError(t, err)
	assert.Equal(t, "\nabc", out)
}

func TestApplyJSON(t *testing.T) {
	out, _, err := execute(t, "abc def", "apply", "up", "-s", "{({0,3},{0,4})}", "--format", "json")
	require.NoError(t, err)
	require.True(t, gjson.Valid(out))

	doc := gjson.Parse(out)
	assert.Equal(t, "no-indent-newline.up", doc.Get("command").String())
	assert.Equal(t, "ok", doc.Get("status").String())
	assert.Equal(t, "def\nabc", doc.Get("text").String())
	assert.Equal(t, "{({0,0},{0,0})}", doc.Get("selections").String())
	assert.Equal(t, int64(1), doc.Get("clumps").Int())
	assert.Equal(t, int64(3), doc.Get("edits").Int())
	assert.Equal(t, int64(1), doc.Get("inserts").Int())
	assert.Equal(t, int64(2), doc.Get("deletes").Int())
	assert.NotEmpty(t, doc.Get("transaction").String())
}

func TestApplyWrite(t *testing.T) {
	path := writeTemp(t, "doc.txt", "abc def")

	out, _, err := execute(t, "", "apply", "down", path, "-s", "{({0,3},{0,4})}", "--write")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc\ndef", string(data))
}

func TestApplyOutput(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")

	_, _, err := execute(t, "abc def", "apply", "up", "-s", "{({0,3},{0,4})}", "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "def\nabc", string(data))
}

func TestApplyDisabledByConfig(t *testing.T) {
	cfgPath := writeTemp(t, "noindent.yaml", "no-indent-newline:\n  up:\n    enable: false\n")

	out, _, err := execute(t, "abc def", "apply", "up", "-s", "{({0,3},{0,4})}", "-c", cfgPath, "--format", "json")
	require.NoError(t, err)

	doc := gjson.Parse(out)
	assert.Equal(t, "disabled", doc.Get("status").String())
	assert.Equal(t, "abc def", doc.Get("text").String())
	assert.False(t, doc.Get("transaction").Exists())
}

func TestApplyErrors(t *testing.T) {
	path := writeTemp(t, "doc.txt", "abc")

	_, _, err := execute(t, "abc", "apply", "sideways")
	assert.ErrorIs(t, err, command.ErrUnknownCommand)

	_, _, err = execute(t, "abc", "apply", "up", "-s", "{(0,0)}")
	assert.ErrorIs(t, err, fixture.ErrNotation)

	_, _, err = execute(t, "abc\ndef", "apply", "up", "-s", "{({0,9},{0,9})}")
	assert.ErrorIs(t, err, newline.ErrInvalidCharacter)

	_, _, err = execute(t, "abc", "apply", "up", "--write")
	assert.Error(t, err)

	_, _, err = execute(t, "", "apply", "up", path, "--write", "-o", filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err)

	_, _, err = execute(t, "abc", "apply", "up", "--position", "middle")
	assert.ErrorIs(t, err, config.ErrValidationFailed)

	_, _, err = execute(t, "abc", "apply", "up", "--format", "xml")
	assert.Error(t, err)

	_, _, err = execute(t, "", "apply", "up", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestApplyLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "abc def", "apply", "up", "-s", "{({0,3},{0,4})}", "--log-format", "json")
	require.NoError(t, err)
	assert.Equal(t, "def\nabc", out)

	line := strings.TrimSpace(errOut)
	require.NotEmpty(t, line)
	last := line[strings.LastIndex(line, "\n")+1:]
	assert.Equal(t, "command finished", gjson.Get(last, "msg").String())
	assert.Equal(t, "ok", gjson.Get(last, "status").String())
}

func TestFixtureTestdata(t *testing.T) {
	out, _, err := execute(t, "", "fixture", filepath.Join("..", "..", "internal", "fixture", "testdata"))
	require.NoError(t, err)
	assert.Contains(t, out, ", 0 failed")
	assert.NotContains(t, out, "FAIL")
}

func TestFixtureFailure(t *testing.T) {
	path := writeTemp(t, "bad.yaml", `description: wrong expectation
text: "abc"
cases:
  - name: before_wrong
    command: before
    selections: "{({0,0},{0,0})}"
    expected_selections: "{({0,0},{0,0})}"
    expected_text: "abc"
`)

	out, _, err := execute(t, "", "fixture", path)
	require.Error(t, err)
	assert.Contains(t, out, "FAIL "+path+" before_wrong")
	assert.Contains(t, out, "0 passed, 1 failed")
}

func TestFixtureMissingPath(t *testing.T) {
	_, _, err := execute(t, "", "fixture", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestManifestGenerate(t *testing.T) {
	out, _, err := execute(t, "", "manifest", "--set-version", "2.0.0")
	require.NoError(t, err)
	require.True(t, gjson.Valid(out))

	assert.Equal(t, "no-indent-newline", gjson.Get(out, "name").String())
	assert.Equal(t, "2.0.0", gjson.Get(out, "version").String())
	assert.Equal(t, int64(4), gjson.Get(out, "contributes.commands.#").Int())
	assert.Equal(t, int64(4), gjson.Get(out, "contributes.keybindings.#").Int())
}

func TestManifestWrite(t *testing.T) {
	path := writeTemp(t, "package.json", `{"license": "MIT", "engines": {"vscode": "^1.50.0"}}`)

	out, _, err := execute(t, "", "manifest", path, "--write")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "MIT", gjson.GetBytes(data, "license").String())
	assert.Equal(t, "^1.50.0", gjson.GetBytes(data, "engines.vscode").String())
	assert.Equal(t, "fjara", gjson.GetBytes(data, "publisher").String())
}

func TestManifestReadme(t *testing.T) {
	out, _, err := execute(t, "", "manifest", "--readme")
	require.NoError(t, err)
	assert.Contains(t, out, "## Features")
	assert.Contains(t, out, "## Settings")
}

func TestManifestErrors(t *testing.T) {
	_, _, err := execute(t, "", "manifest", "--write")
	assert.Error(t, err)

	path := writeTemp(t, "package.json", `[1, 2]`)
	_, _, err = execute(t, "", "manifest", path)
	assert.Error(t, err)
}

func TestRunVersion(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := runVersion(cmd, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "noindent v")
	assert.Contains(t, out, "Go version:")
	assert.Contains(t, out, "OS/Arch:")
}

func TestFixtureVerboseLists(t *testing.T) {
	path := writeTemp(t, "ok.yaml", `text: "abc"
cases:
  - name: before_ok
    command: before
    selections: "{({0,0},{0,0})}"
    expected_selections: "{({0,0},{0,0})}"
    expected_text: "\nabc"
`)

	out, _, err := execute(t, "", "fixture", path, "-v", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS "+path+" before_ok")
	assert.Contains(t, out, "1 passed, 0 failed")
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	on, err := colorEnabled("always", &buf)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = colorEnabled("auto", &buf)
	require.NoError(t, err)
	assert.False(t, on, "a buffer is never a terminal")

	_, err = colorEnabled("sometimes", &buf)
	assert.Error(t, err)
}

func TestFixtureStylesAlways(t *testing.T) {
	s := newFixtureStyles(true)
	assert.Contains(t, s.fail.Sprint("FAIL"), "\x1b[")

	s = newFixtureStyles(false)
	assert.Equal(t, "FAIL", s.fail.Sprint("FAIL"))
}
