package driver

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"fxsema/internal/diag"
	"fxsema/internal/model"
)

// AnalyzeDirResult holds the outcome for one input document.
type AnalyzeDirResult struct {
	Path   string
	Model  *model.Model
	Bag    *diag.Bag
	Source string
}

// listInputFiles returns a sorted list of all *.json inputs under dir.
func listInputFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Sorted for deterministic result order.
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyzes every *.json document under dir in parallel. Each
// file gets its own bag; load and decode failures are reported as I/O
// diagnostics on the affected file rather than aborting the batch, so
// the returned slice always has one entry per input, in path order.
func AnalyzeDir(ctx context.Context, dir string, opts Options, jobs int) ([]AnalyzeDirResult, error) {
	files, err := listInputFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes a unique index, no mutex needed.
	results := make([]AnalyzeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			data, err := os.ReadFile(path)
			if err != nil {
				results[i] = failedInput(path, opts, "failed to load file: "+err.Error())
				return nil
			}

			res, err := Analyze(data, opts)
			if err != nil {
				results[i] = failedInput(path, opts, err.Error())
				return nil
			}

			results[i] = AnalyzeDirResult{Path: path, Model: res.Model, Bag: res.Bag, Source: res.Source}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func failedInput(path string, opts Options, msg string) AnalyzeDirResult {
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  msg,
	})
	m := model.Empty(opts.Profile)
	m.Diagnostics = append(m.Diagnostics, model.Diagnostic{
		Severity: diag.SevError.String(),
		ID:       diag.IOLoadFileError.ID(),
		Message:  msg,
	})
	return AnalyzeDirResult{Path: path, Model: m, Bag: bag}
}
