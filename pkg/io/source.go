package io

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/karyotype"
)

// Source loads datasets by name.
type Source interface {
	Load(ctx context.Context, name string) (*karyotype.Dataset, error)
	List(ctx context.Context) ([]string, error)
}

// Saver is a Source that can store datasets.
type Saver interface {
	Source
	Save(ctx context.Context, name string, ds *karyotype.Dataset) error
}

// DirSource serves <name>.json files from a directory.
type DirSource struct {
	Dir string
}

// NewDirSource returns a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Load reads <dir>/<name>.json. Unknown names return NOT_FOUND.
func (s *DirSource) Load(ctx context.Context, name string) (*karyotype.Dataset, error) {
	if err := errors.ValidateDatasetName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds, err := ImportJSON(filepath.Join(s.Dir, name+".json"))
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return nil, errors.New(errors.ErrCodeNotFound, "dataset %s not found", name)
	}
	return ds, err
}

// List returns the dataset names in the directory, sorted.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "list %s", s.Dir)
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Save writes ds to <dir>/<name>.json, creating the directory.
func (s *DirSource) Save(ctx context.Context, name string, ds *karyotype.Dataset) error {
	if err := errors.ValidateDatasetName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", s.Dir)
	}
	return ExportJSON(ds, filepath.Join(s.Dir, name+".json"))
}

var _ Saver = (*DirSource)(nil)
