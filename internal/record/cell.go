package record

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrValueParse = errors.New("record: cannot parse value")

// Cell is one typed value at a row/column position.
// Size and Nullable are copied from the column the cell was made for.
type Cell struct {
	Type     ColumnType
	Int      int32
	Text     string
	Size     uint32
	Nullable bool
}

// Row is an ordered list of cells matching a schema by position.
type Row []Cell

func IntCell(v int32, size uint32, nullable bool) Cell {
	return Cell{Type: ColInt, Int: v, Size: size, Nullable: nullable}
}

func TextCell(v string, size uint32, nullable bool) Cell {
	return Cell{Type: ColText, Text: v, Size: size, Nullable: nullable}
}

// DefaultCell is the value appended to existing rows when col is added.
func DefaultCell(col Column) (Cell, error) {
	switch col.Type {
	case ColInt:
		return IntCell(0, col.Size, col.Nullable), nil
	case ColText:
		return TextCell("", col.Size, col.Nullable), nil
	default:
		return Cell{}, fmt.Errorf("record: unsupported column type %v", col.Type)
	}
}

// ParseCell converts raw script text into a cell for col.
// INT text must fit in int32; VARCHAR text is cut to col.Size runes.
func ParseCell(col Column, raw string) (Cell, error) {
	switch col.Type {
	case ColInt:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return Cell{}, fmt.Errorf("%w: column %s expects INT, got %q", ErrValueParse, col.Name, raw)
		}
		return IntCell(int32(v), col.Size, col.Nullable), nil
	case ColText:
		return TextCell(truncateRunes(raw, int(col.Size)), col.Size, col.Nullable), nil
	default:
		return Cell{}, fmt.Errorf("record: unsupported column type %v", col.Type)
	}
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Equal compares values only; cells of different types are never equal.
func (c Cell) Equal(o Cell) bool {
	if c.Type != o.Type {
		return false
	}
	switch c.Type {
	case ColInt:
		return c.Int == o.Int
	case ColText:
		return c.Text == o.Text
	default:
		return false
	}
}

// Value returns the cell as int32 or string.
func (c Cell) Value() any {
	if c.Type == ColInt {
		return c.Int
	}
	return c.Text
}

func (c Cell) String() string {
	if c.Type == ColInt {
		return strconv.FormatInt(int64(c.Int), 10)
	}
	return c.Text
}

// Equal reports positional equality of two rows.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if !r[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not alias r.
func (r Row) Clone() Row {
	cp := make(Row, len(r))
	copy(cp, r)
	return cp
}
