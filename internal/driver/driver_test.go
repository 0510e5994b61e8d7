package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ldc/internal/diag"
	"ldc/internal/token"
)

func writeSource(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestTokenize(t *testing.T) {
	path := writeSource(t, "main.ld", "fn main() -> i32 { 42 }\n")

	result, err := Tokenize(path, 16)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Bag.Items())
	}
	if len(result.Tokens) == 0 {
		t.Fatal("no tokens")
	}
	last := result.Tokens[len(result.Tokens)-1]
	if last.Kind != token.EOF {
		t.Fatalf("stream must end with EOF, got %s", last.Kind)
	}
	if result.Tokens[0].Kind != token.KwFn {
		t.Fatalf("first token = %s, want KwFn", result.Tokens[0].Kind)
	}
}

func TestParse(t *testing.T) {
	path := writeSource(t, "main.ld", "fn add(a: i32, b: i32) -> i32 { a }\n")

	result, err := Parse(path, 16)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Bag.Items())
	}
	file := result.Builder.Files.Get(result.FileID)
	if len(file.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(file.Items))
	}
}

func TestCheckClean(t *testing.T) {
	path := writeSource(t, "main.ld", `
fn id(c: char) -> char { c }
fn main() -> char { id('x') }
`)

	result, err := Check(path, 16)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Bag.Items())
	}
	if result.Table == nil {
		t.Fatal("check must expose its symbol table")
	}
}

func TestCheckUnresolved(t *testing.T) {
	path := writeSource(t, "main.ld", "fn main() -> char { missing }\n")

	result, err := Check(path, 16)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	d := result.Bag.Items()[0]
	if d.Code != diag.SemaUnresolvedIdentifier {
		t.Fatalf("code = %s, want %s", d.Code, diag.SemaUnresolvedIdentifier)
	}
	if d.Primary.Start == 0 && d.Primary.End == 0 {
		t.Fatal("diagnostic must carry the identifier span")
	}
}

func TestCheckTypeMismatch(t *testing.T) {
	path := writeSource(t, "main.ld", "fn main() -> bool { 'x' }\n")

	result, err := Check(path, 16)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if got := result.Bag.Items()[0].Code; got != diag.SemaInvalidType {
		t.Fatalf("code = %s, want %s", got, diag.SemaInvalidType)
	}
}

func TestCheckSkipsSemaAfterParseErrors(t *testing.T) {
	path := writeSource(t, "main.ld", "fn main( { }\n")

	result, err := Check(path, 16)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Bag.HasErrors() {
		t.Fatal("expected parse diagnostics")
	}
	for _, d := range result.Bag.Items() {
		if d.Code >= 3000 {
			t.Fatalf("sema must not run after parse errors, got %s", d.Code)
		}
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := Digest{1, 2, 3}
	in := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   "main.ld",
		Clean:  false,
		Diagnostics: []CachedDiagnostic{{
			Severity: uint8(diag.SevError),
			Code:     uint16(diag.SemaInvalidType),
			Message:  "invalid type",
			Start:    4,
			End:      9,
		}},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if out.Path != in.Path || out.Clean != in.Clean {
		t.Fatalf("payload mismatch: %+v", out)
	}
	if len(out.Diagnostics) != 1 || out.Diagnostics[0].Message != "invalid type" {
		t.Fatalf("diagnostics mismatch: %+v", out.Diagnostics)
	}

	var miss DiskPayload
	hit, err = cache.Get(Digest{9, 9, 9}, &miss)
	if err != nil || hit {
		t.Fatalf("absent key must miss: hit=%v err=%v", hit, err)
	}
}

func TestCheckMany(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ld")
	bad := filepath.Join(dir, "bad.ld")
	if err := os.WriteFile(good, []byte("fn ok() -> char { 'x' }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("fn no() -> char { missing }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %v", paths)
	}

	_, results, err := CheckMany(context.Background(), paths, CheckManyOptions{
		MaxDiagnostics: 16,
		Jobs:           2,
	})
	if err != nil {
		t.Fatalf("CheckMany: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// paths are sorted, so bad.ld comes first
	if !results[0].Bag.HasErrors() {
		t.Fatalf("%s should have errors", results[0].Path)
	}
	if results[1].Bag.HasErrors() {
		t.Fatalf("%s should be clean: %v", results[1].Path, results[1].Bag.Items())
	}
}

func TestCheckManyUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ld")
	if err := os.WriteFile(path, []byte("fn ok() -> char { 'x' }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	opts := CheckManyOptions{MaxDiagnostics: 16, Cache: cache}

	_, first, err := CheckMany(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first[0].Cached {
		t.Fatal("first run cannot be a cache hit")
	}

	_, second, err := CheckMany(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second[0].Cached {
		t.Fatal("second run must hit the cache")
	}
	if second[0].Bag.HasErrors() {
		t.Fatalf("replayed result must stay clean: %v", second[0].Bag.Items())
	}
}

func TestCheckManyEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ld")
	if err := os.WriteFile(path, []byte("fn ok() -> char { 'x' }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var events []Event
	sink := func(ev Event) { events = append(events, ev) }

	_, _, err := CheckMany(context.Background(), []string{path}, CheckManyOptions{
		MaxDiagnostics: 16,
		Jobs:           1,
		Events:         sink,
	})
	if err != nil {
		t.Fatalf("CheckMany: %v", err)
	}

	if len(events) == 0 {
		t.Fatal("no events emitted")
	}
	if events[0].Status != StatusQueued {
		t.Fatalf("first event = %s, want queued", events[0].Status)
	}
	last := events[len(events)-1]
	if last.Status != StatusDone || last.Stage != StageCheck {
		t.Fatalf("last event = %s/%s, want check/done", last.Stage, last.Status)
	}
}
