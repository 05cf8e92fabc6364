// SPDX-License-Identifier: MIT

package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"fortio.org/safecast"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hans-elliott99/statql/array"
)

// Table is a set of typed columns allocated in one Runtime.
// A Table is reusable: Init on a loaded table releases the previous arrays
// first.
type Table struct {
	rt      *array.Runtime
	log     *slog.Logger
	comma   rune
	charmap *charmap.Charmap

	source  string
	nrows   int
	names   array.Handle // Text 1×ncols
	types   array.Handle // Integer 1×ncols of array.Variant codes
	cols    []array.Handle
	index   map[string]int
	header  []string
	records [][]string // raw cells, kept for Head
	loaded  bool
}

// New returns an empty Table bound to rt.
func New(rt *array.Runtime, opts ...Option) *Table {
	o := gatherOptions(opts...)

	return &Table{rt: rt, log: o.logger, comma: o.comma, charmap: o.charmap}
}

// Load is New followed by Init.
func Load(rt *array.Runtime, r io.Reader, source string, opts ...Option) (*Table, error) {
	t := New(rt, opts...)
	if err := t.Init(r, source); err != nil {
		return nil, err
	}

	return t, nil
}

// Init reads a header record and data records from r. source only labels
// log lines and Source. If t was already initialized, a warning is logged
// and the previous arrays are released before loading.
func (t *Table) Init(r io.Reader, source string) error {
	if t.loaded {
		t.log.Warn("table already initialized, releasing previous arrays",
			slog.String("source", t.source))
		if err := t.Release(); err != nil {
			return tableErrorf(opInit, err)
		}
	}

	header, records, err := t.read(r)
	if err != nil {
		return tableErrorf(opInit, err)
	}
	if err = t.build(header, records); err != nil {
		t.discard()
		return tableErrorf(opInit, err)
	}
	t.source = source
	t.loaded = true
	t.log.Info("table loaded",
		slog.String("source", source),
		slog.Int("rows", t.nrows),
		slog.Int("cols", len(t.cols)))

	return nil
}

func (t *Table) read(r io.Reader) ([]string, [][]string, error) {
	if t.charmap != nil {
		r = transform.NewReader(r, t.charmap.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = t.comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrNoHeader
	}
	if err != nil {
		return nil, nil, err
	}
	for i := range header {
		header[i] = norm.NFC.String(strings.TrimSpace(header[i]))
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if len(rec) != len(header) {
			line, _ := cr.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: %d fields, header has %d: %w",
				line, len(rec), len(header), ErrRaggedRow)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no data records: %w", array.ErrBadShape)
	}

	return header, records, nil
}

// build allocates the header arrays and one column array per field.
func (t *Table) build(header []string, records [][]string) error {
	rt := t.rt
	ncols := len(header)
	t.header, t.records, t.nrows = header, records, len(records)
	t.index = make(map[string]int, ncols)

	var err error
	if t.names, err = rt.AllocRow(array.Text, ncols); err != nil {
		return err
	}
	if t.types, err = rt.AllocRow(array.Integer, ncols); err != nil {
		return err
	}
	t.cols = make([]array.Handle, 0, ncols)

	for j, name := range header {
		if _, dup := t.index[name]; dup {
			t.log.Warn("duplicate column name, keeping the first", slog.String("column", name))
		} else {
			t.index[name] = j
		}
		if err = rt.SetText(t.names, 0, j, name); err != nil {
			return err
		}
		v := infer(records, j)
		if err = rt.SetInt(t.types, 0, j, int(v)); err != nil {
			return err
		}
		h, err := t.column(records, j, v)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		t.cols = append(t.cols, h)
	}

	return nil
}

// column allocates the nrows×1 array for field j.
func (t *Table) column(records [][]string, j int, v array.Variant) (array.Handle, error) {
	rt := t.rt
	h, err := rt.Alloc(v, len(records), 1)
	if err != nil {
		return array.Handle{}, err
	}
	for i, rec := range records {
		cell := strings.TrimSpace(rec[j])
		switch v {
		case array.Integer:
			n, _ := parseInt(cell)
			err = rt.SetInt(h, i, 0, n)
		case array.Real:
			x := math.NaN()
			if !missing(cell) {
				x, _ = strconv.ParseFloat(cell, 64)
			}
			err = rt.SetReal(h, i, 0, x)
		default:
			if !missing(cell) {
				err = rt.SetText(h, i, 0, norm.NFC.String(cell))
			}
		}
		if err != nil {
			_ = rt.Release(h)
			return array.Handle{}, err
		}
	}

	return h, nil
}

// infer picks the narrowest variant that holds every present cell of field j.
func infer(records [][]string, j int) array.Variant {
	v := array.Integer
	for _, rec := range records {
		cell := strings.TrimSpace(rec[j])
		if missing(cell) {
			v = max(v, array.Real)
			continue
		}
		if v == array.Integer {
			if _, err := parseInt(cell); err == nil {
				continue
			}
			v = array.Real
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return array.Text
		}
	}

	return v
}

func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}

	return safecast.Conv[int](n)
}

func missing(cell string) bool {
	return cell == "" || cell == "NA" || cell == "NULL"
}

// Release frees every array of the table. The Table can be re-initialized.
func (t *Table) Release() error {
	if !t.loaded {
		return nil
	}
	err := t.discard()
	t.log.Debug("table released", slog.String("source", t.source))
	t.source = ""

	return err
}

// discard releases whatever build managed to allocate and resets state.
func (t *Table) discard() error {
	hs := append([]array.Handle{t.names, t.types}, t.cols...)
	err := t.rt.ReleaseAll(hs...)
	t.names, t.types = array.Handle{}, array.Handle{}
	t.cols, t.index, t.header, t.records = nil, nil, nil, nil
	t.nrows = 0
	t.loaded = false

	return err
}

// Source returns the label passed to Init.
func (t *Table) Source() string { return t.source }

// Rows returns the number of data records.
func (t *Table) Rows() int { return t.nrows }

// Cols returns the number of columns.
func (t *Table) Cols() int { return len(t.cols) }

// Names returns the Text 1×ncols array of column names.
func (t *Table) Names() array.Handle { return t.names }

// Types returns the Integer 1×ncols array of column variant codes.
func (t *Table) Types() array.Handle { return t.types }

// Columns returns the column handles in header order.
func (t *Table) Columns() []array.Handle { return append([]array.Handle(nil), t.cols...) }

// Column returns the nrows×1 array of the named column. The Table keeps
// ownership; do not release it.
func (t *Table) Column(name string) (array.Handle, error) {
	if !t.loaded {
		return array.Handle{}, tableErrorf(opColumn, ErrNotLoaded)
	}
	j, ok := t.index[name]
	if !ok {
		return array.Handle{}, tableErrorf(opColumn, fmt.Errorf("%q: %w", name, ErrUnknownColumn))
	}

	return t.cols[j], nil
}

// Design builds a Real n×p design matrix from the named numeric columns,
// with a leading column of ones when intercept is set. The caller owns the
// result.
func (t *Table) Design(predictors []string, intercept bool) (array.Handle, error) {
	if !t.loaded {
		return array.Handle{}, tableErrorf(opDesign, ErrNotLoaded)
	}
	cols := make([]array.Handle, 0, len(predictors))
	for _, name := range predictors {
		h, err := t.Column(name)
		if err != nil {
			return array.Handle{}, tableErrorf(opDesign, err)
		}
		if v, _ := t.rt.Variant(h); !v.Numeric() {
			return array.Handle{}, tableErrorf(opDesign, fmt.Errorf("%q is %s: %w", name, v, ErrNotNumeric))
		}
		cols = append(cols, h)
	}
	p := len(cols)
	if intercept {
		p++
	}

	rt := t.rt
	x, err := rt.Alloc(array.Real, t.nrows, p)
	if err != nil {
		return array.Handle{}, tableErrorf(opDesign, err)
	}
	off := 0
	if intercept {
		ones, err := rt.Alloc(array.Real, t.nrows, 1)
		if err == nil {
			err = rt.FillRange(ones, 1, 0)
		}
		if err == nil {
			err = rt.SetCol(x, 0, ones)
		}
		_ = rt.Release(ones)
		if err != nil {
			_ = rt.Release(x)
			return array.Handle{}, tableErrorf(opDesign, err)
		}
		off = 1
	}
	for j, h := range cols {
		if err = rt.SetCol(x, j+off, h); err != nil {
			_ = rt.Release(x)
			return array.Handle{}, tableErrorf(opDesign, err)
		}
	}

	return x, nil
}

// Head writes the header and the first n records to w as aligned columns.
// n == 0 means DefaultHeadRows.
func (t *Table) Head(w io.Writer, n int) error {
	if !t.loaded {
		return tableErrorf(opHead, ErrNotLoaded)
	}
	if n <= 0 {
		n = DefaultHeadRows
	}
	n = min(n, len(t.records))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.header, "\t"))
	for _, rec := range t.records[:n] {
		fmt.Fprintln(tw, strings.Join(rec, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return tableErrorf(opHead, err)
	}

	return nil
}
