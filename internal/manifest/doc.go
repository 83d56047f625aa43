// Package manifest generates the editor extension contributions: the
// commands, their default keybindings and the per-command configuration
// properties of package.json, plus the matching README sections.
//
// Apply rewrites only the generated fields of an existing package.json:
//
//	data, _ := os.ReadFile("package.json")
//	out, err := manifest.Apply(data, manifest.DefaultMeta())
package manifest
