// Package dataset provides the tabular input format for dice and domino plots.
//
// # Overview
//
// A [Table] holds rows of named string columns, in insertion order. Tables
// are typically imported from CSV or JSON files, but can also be built
// programmatically:
//
//	t, _ := dataset.New([]string{"CellType", "Pathway", "PathologyVariable"})
//	_ = t.Append("Neuron", "Apoptosis", "Amyloid")
//
// Column access is by name; looking up an unknown column is a configuration
// error with code INVALID_COLUMN.
//
// # Level Orderings
//
// Plot axes are ordered sequences of unique column values. [Table.Levels]
// returns them in first-seen order, [Table.SortedLevels] in lexical order.
// Clustering-based orderings live in the dice/ordering package.
package dataset

import (
	"slices"

	"github.com/maflot/diceplot/pkg/errors"
)

// Table is an in-memory tabular dataset with named string columns.
// The zero value is not usable; create tables with [New].
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty table with the given column names.
// Column names must be unique and pass validation.
func New(columns []string) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "table needs at least one column")
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if err := errors.ValidateColumnName(c); err != nil {
			return nil, err
		}
		if _, dup := index[c]; dup {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "duplicate column: %q", c)
		}
		index[c] = i
	}

	return &Table{
		columns: slices.Clone(columns),
		index:   index,
	}, nil
}

// Append adds one row. The number of values must match the column count.
func (t *Table) Append(values ...string) error {
	if len(values) != len(t.columns) {
		return errors.New(errors.ErrCodeInvalidDataset,
			"row has %d values, table has %d columns", len(values), len(t.columns))
	}
	t.rows = append(t.rows, slices.Clone(values))
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the column names in order.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column resolves a column by name for fast per-row access.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, errors.New(errors.ErrCodeInvalidColumn,
			"unknown column: %q (have %v)", name, t.columns)
	}
	return Column{name: name, idx: i, table: t}, nil
}

// Levels returns the unique values of a column in first-seen order.
func (t *Table) Levels(name string) ([]string, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var levels []string
	for i := range t.rows {
		v := col.At(i)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		levels = append(levels, v)
	}
	return levels, nil
}

// SortedLevels returns the unique values of a column in lexical order.
func (t *Table) SortedLevels(name string) ([]string, error) {
	levels, err := t.Levels(name)
	if err != nil {
		return nil, err
	}
	slices.Sort(levels)
	return levels, nil
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []string { return slices.Clone(t.rows[i]) }

// Column is a resolved handle for per-row value access.
type Column struct {
	name  string
	idx   int
	table *Table
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// At returns the value in row i.
func (c Column) At(i int) string { return c.table.rows[i][c.idx] }
