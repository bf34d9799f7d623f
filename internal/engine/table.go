package engine

import (
	"fmt"

	"github.com/tuannm99/tinysql/internal/record"
)

// Table is an in-memory, row-oriented table.
// RowCount mirrors len(Rows).
type Table struct {
	Name     string
	Schema   record.Schema
	Rows     []record.Row
	RowCount int
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

// Insert appends a row. Full-width rows must match the schema cell by cell;
// narrower rows (an INSERT that left columns out) are stored as given.
func (t *Table) Insert(row record.Row) error {
	if len(row) > t.Schema.NumCols() {
		return fmt.Errorf("engine: row has %d cells, table %s has %d columns", len(row), t.Name, t.Schema.NumCols())
	}
	if len(row) == t.Schema.NumCols() {
		for i, c := range row {
			col := t.Schema.Cols[i]
			if c.Type != col.Type {
				return fmt.Errorf("engine: column %s expects %v, got %v", col.Name, col.Type, c.Type)
			}
		}
	}

	t.Rows = append(t.Rows, row.Clone())
	t.RowCount++
	return nil
}

// Scan calls fn for every row in insertion order.
func (t *Table) Scan(fn func(i int, row record.Row) error) error {
	for i, row := range t.Rows {
		if err := fn(i, row); err != nil {
			return err
		}
	}
	return nil
}

// Truncate drops every row and keeps the columns.
func (t *Table) Truncate() {
	t.Rows = nil
	t.RowCount = 0
}

func (t *Table) addColumn(col record.Column) error {
	if t.Schema.ColPos(col.Name) >= 0 {
		return fmt.Errorf("%w: %s.%s", ErrColumnExists, t.Name, col.Name)
	}
	t.Schema.Cols = append(t.Schema.Cols, col)
	return nil
}

func (t *Table) backfill(cell record.Cell) {
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], cell)
	}
}
