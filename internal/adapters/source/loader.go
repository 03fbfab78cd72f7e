// Package source fetches the competition dataset the dashboard is built from.
package source

import (
	"bytes"
	"context"
	"os"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/okian/pitchside/internal/domain/model"
)

// Loader fetches one complete dataset. A nil dataset with a nil error means
// the source has no data yet.
type Loader interface {
	Load(ctx context.Context) (*model.Dataset, error)
}

// Decode parses a dataset document. An empty body or a JSON null decodes
// to a nil dataset.
func Decode(raw []byte) (*model.Dataset, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var ds model.Dataset
	if err := sonic.Unmarshal(trimmed, &ds); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode dataset"), ErrDecode)
	}
	return &ds, nil
}

// Encode renders ds the way Decode reads it.
func Encode(ds *model.Dataset) ([]byte, error) {
	b, err := sonic.ConfigStd.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode dataset")
	}
	return b, nil
}

// FileLoader reads the dataset from a JSON file on every Load.
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader for the JSON document at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Load reads and decodes the file.
func (l *FileLoader) Load(ctx context.Context) (*model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "load dataset file")
	}
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.Wrapf(err, "read dataset file %s", l.path)
	}
	return Decode(raw)
}

// Static serves a fixed dataset or error. It backs tests and the
// "no source configured" mode.
type Static struct {
	ds  *model.Dataset
	err error
}

// NewStatic returns a loader that always yields ds.
func NewStatic(ds *model.Dataset) *Static { return &Static{ds: ds} }

// Failing returns a loader that always fails with err.
func Failing(err error) *Static { return &Static{err: err} }

// Load returns the configured dataset or error.
func (s *Static) Load(ctx context.Context) (*model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "load static dataset")
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.ds, nil
}

// Select picks the loader for the configured source. A URL wins over a
// file; ErrNoSource is returned when neither is set.
func Select(file, url string, opts ...Option) (Loader, error) {
	switch {
	case url != "":
		return NewHTTPLoader(url, opts...), nil
	case file != "":
		return NewFileLoader(file), nil
	default:
		return nil, ErrNoSource
	}
}
