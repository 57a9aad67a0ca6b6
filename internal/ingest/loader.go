// Package ingest turns measurement files on disk into psp records. Every per-file problem
// is reported as a rejection; only cancellation stops a batch.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"synaptology/domain/core"
	"synaptology/domain/psp"
	"synaptology/internal"
	"synaptology/ports"

	"golang.org/x/sync/errgroup"
)

// Loader builds records from measurement files
type Loader struct {
	matrices   ports.MatrixReader
	subjects   ports.SkinLatencyLookup
	correction psp.Correction
	workers    int
}

// Rejection names a file that produced no record and why
type Rejection struct {
	Path   string `json:"path"`
	Reason error  `json:"-"`
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s: %v", r.Path, r.Reason)
}

// Result is the outcome of loading a batch, both lists in input order
type Result struct {
	Records    []psp.Record
	Rejections []Rejection
}

// NewLoader creates a loader. workers below 1 loads sequentially.
func NewLoader(matrices ports.MatrixReader, subjects ports.SkinLatencyLookup, correction psp.Correction, workers int) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{
		matrices:   matrices,
		subjects:   subjects,
		correction: correction,
		workers:    workers,
	}
}

// DecodeFilename parses a measurement filename, logging names that do not match.
func DecodeFilename(path string) (psp.FilenameMetadata, bool) {
	meta, ok := psp.ParseFilename(path)
	if !ok {
		internal.DefaultLogger.Warn("[Loader] No match: %s", path)
	}
	return meta, ok
}

// Load builds one record. Any failure returns an error wrapping core.ErrIngestion.
func (l *Loader) Load(path string) (psp.Record, error) {
	meta, ok := DecodeFilename(path)
	if !ok {
		return psp.Record{}, fmt.Errorf("%w: %s", core.ErrUnmatchedFilename, path)
	}

	skinLatency, known := l.subjects.SkinLatency(meta.SubjectID)
	if !known {
		internal.DefaultLogger.Debug("[Loader] Subject %s has no skin latency", meta.SubjectID)
		skinLatency = psp.UnknownSkinLatency
	}

	matrix, err := l.matrices.ReadMatrix(path)
	if err != nil {
		return psp.Record{}, fmt.Errorf("%w: %s: %v", core.ErrUnreadable, path, err)
	}

	return psp.NewRecord(path, meta, skinLatency, matrix, l.correction)
}

// LoadAll loads every path, sharding the work over the loader's workers.
func (l *Loader) LoadAll(ctx context.Context, paths []string) (*Result, error) {
	records := make([]psp.Record, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i], errs[i] = l.Load(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Records: make([]psp.Record, 0, len(paths))}
	for i, path := range paths {
		if errs[i] != nil {
			internal.DefaultLogger.Info("[Loader] Skipping %v", errs[i])
			result.Rejections = append(result.Rejections, Rejection{Path: path, Reason: errs[i]})
			continue
		}
		result.Records = append(result.Records, records[i])
	}

	internal.DefaultLogger.Info("[Loader] Loaded %d records, rejected %d files", len(result.Records), len(result.Rejections))
	return result, nil
}

// Discover walks root recursively and returns the files whose base name matches pattern,
// sorted lexically.
func Discover(root, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
