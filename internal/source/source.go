// Package source reads a household ledger from wherever it is kept (a CSV
// export, an Excel workbook, or a Google spreadsheet) into a model.Table.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/orden-economico/gastos/internal/locale"
	"github.com/orden-economico/gastos/internal/model"
)

var (
	ErrFileNotFound   = errors.New("file not found")
	ErrMalformedInput = errors.New("malformed input")
	ErrUnknownFormat  = errors.New("unknown source format")
)

// Reader produces the raw table of a ledger.
type Reader interface {
	Read(ctx context.Context) (*model.Table, error)
}

// Parser converts a ledger file into a Table.
type Parser interface {
	Parse(r io.Reader) (*model.Table, error)
	Format() string
}

// Registry holds named file parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// FileOptions tune the built-in file parsers.
type FileOptions struct {
	Delimiter rune   // CSV field separator; ',' when zero
	Sheet     string // XLSX worksheet; the first one when empty
	Policy    locale.Policy
}

// DefaultRegistry returns a registry with all built-in file parsers.
func DefaultRegistry(opts FileOptions) *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{Comma: opts.Delimiter})
	r.Register(&XLSXParser{Sheet: opts.Sheet, Policy: opts.Policy})
	return r
}

// File reads a ledger file from disk with a Parser.
type File struct {
	Path   string
	Parser Parser
}

// NewFile looks up format in reg and returns a Reader for path.
func NewFile(reg *Registry, format, path string) (*File, error) {
	p := reg.Get(format)
	if p == nil {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownFormat, format, strings.Join(reg.Formats(), ", "))
	}
	return &File{Path: path, Parser: p}, nil
}

// Read opens the file, parses it and closes it.
func (f *File) Read(_ context.Context) (*model.Table, error) {
	fh, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, f.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrMalformedInput, f.Path, err)
	}
	defer fh.Close()

	tbl, err := f.Parser.Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return tbl, nil
}

// newTable builds a Table from a header and rows, trimming the header names
// and padding short rows. firstLine is the line number of rows[0].
func newTable(header []string, rows [][]string, firstLine int) (*model.Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrMalformedInput)
	}

	names := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		names[i] = strings.TrimSpace(h)
	}

	tbl := &model.Table{Header: names}
	for i, cells := range rows {
		if len(cells) > len(names) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				ErrMalformedInput, firstLine+i, len(cells), len(names))
		}
		padded := make([]string, len(names))
		copy(padded, cells)
		tbl.Rows = append(tbl.Rows, model.Row{Line: firstLine + i, Cells: padded})
	}
	return tbl, nil
}
