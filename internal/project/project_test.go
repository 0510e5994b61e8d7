package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	src := "[package]\nname = \"demo\"\n\n[check]\npaths = [\"src\", \"tools\"]\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Package.Name != "demo" {
		t.Fatalf("name = %q", m.Package.Name)
	}
	if len(m.Check.Paths) != 2 || m.Check.Paths[0] != "src" {
		t.Fatalf("paths = %v", m.Check.Paths)
	}

	resolved := m.SourcePaths(dir)
	if resolved[0] != filepath.Join(dir, "src") {
		t.Fatalf("resolved = %v", resolved)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte("[package]\nname = \"demo\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Check.Paths) != 1 || m.Check.Paths[0] != "." {
		t.Fatalf("default paths = %v", m.Check.Paths)
	}
}

func TestLoadManifestMissingPackage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte("[check]\npaths = [\".\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadManifest(path)
	if !errors.Is(err, ErrPackageSectionMissing) {
		t.Fatalf("expected ErrPackageSectionMissing, got %v", err)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("[package]\nname = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindProjectRoot(nested)
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: ok=%v err=%v", ok, err)
	}
	// macOS tempdirs resolve through symlinks; compare by manifest presence.
	if _, statErr := os.Stat(filepath.Join(got, ManifestName)); statErr != nil {
		t.Fatalf("returned root %q has no manifest: %v", got, statErr)
	}
}

func TestFindProjectRootAbsent(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindProjectRoot(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("no manifest should be found in an empty tempdir")
	}
}

func TestScaffold(t *testing.T) {
	dir := t.TempDir()
	if err := Scaffold(dir, "hello"); err != nil {
		t.Fatalf("Scaffold: %v", err)
	}

	m, err := LoadManifest(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatalf("scaffolded manifest does not load: %v", err)
	}
	if m.Package.Name != "hello" {
		t.Fatalf("name = %q", m.Package.Name)
	}
	if _, err := os.Stat(filepath.Join(dir, "main.ld")); err != nil {
		t.Fatalf("main.ld missing: %v", err)
	}

	if err := Scaffold(dir, "hello"); err == nil {
		t.Fatal("second Scaffold must refuse to overwrite")
	}
}
