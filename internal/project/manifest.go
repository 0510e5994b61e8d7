package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project manifest file name.
const ManifestName = "ldc.toml"

// Manifest is a parsed ldc.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Check   CheckSection   `toml:"check"`
}

// PackageSection is the [package] table.
type PackageSection struct {
	Name string `toml:"name"`
}

// CheckSection is the [check] table. Paths are directories or files,
// relative to the project root, that `ldc check` walks by default.
type CheckSection struct {
	Paths []string `toml:"paths"`
}

// ErrPackageSectionMissing indicates that [package] is missing from a manifest.
var ErrPackageSectionMissing = errors.New("missing [package]")

// LoadManifest parses an ldc.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%s: [package].name must not be empty", path)
	}
	if len(m.Check.Paths) == 0 {
		m.Check.Paths = []string{"."}
	}
	return &m, nil
}

// SourcePaths resolves the manifest's check paths against the project root.
func (m *Manifest) SourcePaths(root string) []string {
	out := make([]string, 0, len(m.Check.Paths))
	for _, p := range m.Check.Paths {
		out = append(out, filepath.Join(root, filepath.FromSlash(p)))
	}
	return out
}

// Scaffold writes a fresh manifest and a hello-world source file into dir.
// It refuses to overwrite an existing manifest.
func Scaffold(dir, name string) error {
	manifestPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	manifest := fmt.Sprintf("[package]\nname = %q\n\n[check]\npaths = [\".\"]\n", name)
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		return err
	}

	mainPath := filepath.Join(dir, "main.ld")
	if _, err := os.Stat(mainPath); err == nil {
		return nil
	}
	hello := "fn main() -> () {\n    ()\n}\n"
	return os.WriteFile(mainPath, []byte(hello), 0o644)
}
