// Package table loads whitespace-delimited measurement tables, the format
// written by hashgen and read by perfplot.
package table

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Table is a parsed measurement file: a header naming the columns and the
// data rows in file order.
type Table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

// Load reads the file at 'path'. Fields are separated by one or more
// whitespace characters, the first non-blank line is the header and blank
// lines are skipped. A data row with a different number of fields than the
// header is an error.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening table %s", path)
	}
	defer file.Close()

	var tbl *Table
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if tbl == nil {
			tbl, err = New(fields)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d", path, lineNo)
			}
			continue
		}
		if len(fields) != len(tbl.header) {
			return nil, errors.Errorf("%s:%d: expected %d fields, got %d", path, lineNo, len(tbl.header), len(fields))
		}
		tbl.rows = append(tbl.rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading table %s", path)
	}
	if tbl == nil {
		return nil, errors.Errorf("%s: no header row", path)
	}
	return tbl, nil
}

// New returns an empty table with the given header. Column names must be
// unique.
func New(header []string) (*Table, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; dup {
			return nil, errors.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}
	return &Table{header: append([]string(nil), header...), index: index}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns the header names in file order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.header...)
}

// Row returns the raw fields of data row 'i'.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Column returns the raw values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, errors.Errorf("unknown column %q", name)
	}
	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Floats returns the named column parsed as float64 values.
func (t *Table) Floats(name string) ([]float64, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q row %d", name, i+1)
		}
		values[i] = v
	}
	return values, nil
}
