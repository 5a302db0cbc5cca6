package jsscope

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/jsscope/jsscope/internal/analyzer"
	"github.com/jsscope/jsscope/internal/types"
	"github.com/jsscope/jsscope/js"
)

// binaryCheckSize is how much of a file is searched for NUL bytes before
// it is treated as binary and skipped.
const binaryCheckSize = 8 * 1024

// FileResult holds the reported diagnostics of one linted file.
type FileResult struct {
	Path        string              `json:"path"`
	Size        int                 `json:"size"`
	Outcome     js.Outcome          `json:"-"`
	Diagnostics []js.FileDiagnostic `json:"diagnostics"`
}

// FileError records a file that could not be read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Report is the result of Lint. Files are sorted by path and the
// diagnostics of each file by offset.
type Report struct {
	Files  []FileResult
	Errors []*FileError
	// Skipped lists files that looked binary.
	Skipped []string
}

// Diagnostics returns the diagnostics of all files in report order.
func (r *Report) Diagnostics() []js.FileDiagnostic {
	var out []js.FileDiagnostic
	for _, f := range r.Files {
		out = append(out, f.Diagnostics...)
	}
	return out
}

// HasFailures reports whether any diagnostic reaches the cfg.FailAt
// threshold.
func (r *Report) HasFailures(cfg js.DiagnosticConfig) bool {
	for _, f := range r.Files {
		for _, d := range f.Diagnostics {
			if cfg.ShouldFail(d.Severity) {
				return true
			}
		}
	}
	return false
}

// Bytes returns the total size of the linted files.
func (r *Report) Bytes() int64 {
	var n int64
	for _, f := range r.Files {
		n += int64(f.Size)
	}
	return n
}

// Counts returns the number of diagnostics at each severity.
func (r *Report) Counts() map[js.Severity]int {
	counts := make(map[js.Severity]int)
	for _, f := range r.Files {
		for _, d := range f.Diagnostics {
			counts[d.Severity]++
		}
	}
	return counts
}

// Lint checks every file of the configured sources in parallel. Unreadable
// files are collected in Report.Errors and do not stop the others. Lint
// returns an error only when no sources are given, a source cannot list
// its files, or ctx is done.
//
// Example:
//
//	report, err := jsscope.Lint(ctx,
//	    jsscope.WithSource(jsscope.MustDirTree("./src")),
//	    jsscope.WithLogger(slog.Default()),
//	)
func Lint(ctx context.Context, opts ...Option) (*Report, error) {
	cfg := newConfig(opts)
	if len(cfg.sources) == 0 {
		return nil, ErrNoSources
	}
	logger := types.Logger{L: componentLogger(cfg.logger, "lint")}

	type job struct {
		src  Source
		name string
	}
	var jobs []job
	for _, src := range cfg.sources {
		names, err := src.ListFiles()
		if err != nil {
			return nil, fmt.Errorf("listing files: %w", err)
		}
		for _, name := range names {
			jobs = append(jobs, job{src: src, name: name})
		}
	}

	logger.Log(slog.LevelInfo, "parallel linting", slog.Int("files", len(jobs)))

	type lintResult struct {
		file    FileResult
		err     *FileError
		skipped bool
	}
	results := make([]lintResult, len(jobs))
	globals := cfg.analyzerGlobals()

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())

	for i, j := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			file, skipped, err := cfg.lintFile(j.src, j.name, globals)
			if err != nil {
				logger.Log(slog.LevelDebug, "file unreadable",
					slog.String("path", file.Path), slog.Any("error", err))
				results[i] = lintResult{err: &FileError{Path: file.Path, Err: err}}
				return
			}
			results[i] = lintResult{file: file, skipped: skipped}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, r := range results {
		switch {
		case r.err != nil:
			report.Errors = append(report.Errors, r.err)
		case r.skipped:
			report.Skipped = append(report.Skipped, r.file.Path)
		default:
			report.Files = append(report.Files, r.file)
		}
	}
	slices.SortFunc(report.Files, func(a, b FileResult) int {
		return cmp.Compare(a.Path, b.Path)
	})
	slices.SortFunc(report.Errors, func(a, b *FileError) int {
		return cmp.Compare(a.Path, b.Path)
	})
	slices.Sort(report.Skipped)

	logger.Log(slog.LevelInfo, "parallel linting complete",
		slog.Int("files", len(report.Files)),
		slog.Int("errors", len(report.Errors)),
		slog.Int("skipped", len(report.Skipped)))

	return report, nil
}

func (c *config) lintFile(src Source, name string, globals *analyzer.Globals) (FileResult, bool, error) {
	r, path, err := src.Find(name)
	if path == "" {
		path = name
	}
	file := FileResult{Path: path}
	if err != nil {
		return file, false, err
	}
	content, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		return file, false, err
	}
	file.Size = len(content)

	if looksBinary(content) {
		return file, true, nil
	}

	res := c.check(content, nil, globals)
	file.Outcome = res.Outcome
	file.Diagnostics = c.resolve(path, content, res.Diagnostics)
	return file, false, nil
}

// resolve converts diags to FileDiagnostics and drops those the diagnostic
// config does not report.
func (c *config) resolve(path string, content []byte, diags []js.Diagnostic) []js.FileDiagnostic {
	out := []js.FileDiagnostic{}
	if len(diags) == 0 {
		return out
	}
	loc := js.NewLocator(content)
	for _, d := range diags {
		if !c.diagConfig.ShouldReport(d.Code(), d.Severity()) {
			continue
		}
		out = append(out, js.Resolve(d, path, content, loc, c.diagConfig))
	}
	return out
}

// CheckFile checks one buffer the way Lint checks a file and returns the
// diagnostics it would report. path labels the diagnostics.
func CheckFile(path string, content []byte, opts ...Option) (js.Outcome, []js.FileDiagnostic) {
	cfg := newConfig(opts)
	res := cfg.check(content, nil, cfg.analyzerGlobals())
	return res.Outcome, cfg.resolve(path, content, res.Diagnostics)
}

func looksBinary(content []byte) bool {
	return bytes.IndexByte(content[:min(len(content), binaryCheckSize)], 0) >= 0
}
