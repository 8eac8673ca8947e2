package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fxsema/internal/diag"
)

func TestAnalyzeDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "shader.json"), []byte(entryDocJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := Options{Profile: "vs_2_0", Entry: "main"}
	results, err := AnalyzeDir(context.Background(), dir, opts, 2)
	if err != nil {
		t.Fatalf("analyze dir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 json inputs", len(results))
	}

	// Path-sorted: broken.json first.
	broken := results[0]
	if filepath.Base(broken.Path) != "broken.json" {
		t.Fatalf("result order = %q, %q", results[0].Path, results[1].Path)
	}
	if got := broken.Bag.CountCode(diag.IOLoadFileError); got != 1 {
		t.Errorf("broken input diagnostics = %+v", broken.Bag.Items())
	}
	if broken.Model == nil || len(broken.Model.Diagnostics) != 1 {
		t.Errorf("broken input must still carry a model: %+v", broken.Model)
	}

	shader := results[1]
	if shader.Bag.HasErrors() {
		t.Errorf("unexpected errors: %+v", shader.Bag.Items())
	}
	if len(shader.Model.EntryPoints) != 1 || shader.Model.EntryPoints[0].Name != "main" {
		t.Errorf("entry points = %+v", shader.Model.EntryPoints)
	}
}

func TestAnalyzeDirEmpty(t *testing.T) {
	results, err := AnalyzeDir(context.Background(), t.TempDir(), Options{Profile: "vs_2_0"}, 0)
	if err != nil || results != nil {
		t.Fatalf("empty dir: results=%v err=%v", results, err)
	}
}

func TestAnalyzeDirCancelled(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shader.json"), []byte(entryDocJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AnalyzeDir(ctx, dir, Options{Profile: "vs_2_0", Entry: "main"}, 1)
	if err == nil {
		t.Fatal("cancelled context must surface an error")
	}
}
