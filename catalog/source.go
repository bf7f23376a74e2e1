package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gitref/db"
	"gitref/model"
)

// Source provides the raw records of a catalog.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]model.Command, error)
}

var (
	_ Source = CSVSource{}
	_ Source = (*ReaderSource)(nil)
	_ Source = db.FileSource{}
)

//go:embed data/comandos.csv
var defaultCSV []byte

// Default returns the catalog bundled with the binary.
func Default() Source {
	return NewReaderSource("embedded comandos.csv", bytes.NewReader(defaultCSV))
}

// Open picks a source for path: the bundled catalog when path is empty, a
// SQLite catalog for .db, .sqlite and .sqlite3 files, and CSV otherwise.
func Open(path string) Source {
	if path == "" {
		return Default()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return db.FileSource{Path: path}
	default:
		return CSVSource{Path: path}
	}
}

// CSVSource reads a catalog file from disk.
type CSVSource struct {
	Path string
}

func (s CSVSource) Name() string {
	return s.Path
}

func (s CSVSource) Records(ctx context.Context) ([]model.Command, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &DataFormatError{Source: s.Path, Reason: "file not found", Err: err}
	}
	if err != nil {
		return nil, &DataFormatError{Source: s.Path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	return ParseCSV(s.Path, f)
}

// ReaderSource parses CSV from an already open reader. It can be read once.
type ReaderSource struct {
	name string
	r    io.Reader
}

func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{name: name, r: r}
}

func (s *ReaderSource) Name() string {
	return s.name
}

func (s *ReaderSource) Records(ctx context.Context) ([]model.Command, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ParseCSV(s.name, s.r)
}
