package record

import "fmt"

type ColumnType uint8

const (
	ColInt  ColumnType = iota // 32-bit signed
	ColText                   // UTF-8, capped at Column.Size runes
)

func (t ColumnType) String() string {
	switch t {
	case ColInt:
		return "INT"
	case ColText:
		return "VARCHAR"
	default:
		return fmt.Sprintf("ColumnType(%d)", uint8(t))
	}
}

type Column struct {
	Name     string     `json:"name"`
	Type     ColumnType `json:"type"`
	Size     uint32     `json:"size"` // 0 for INT
	Nullable bool       `json:"nullable"`
}

type Schema struct {
	Cols []Column `json:"cols"`
}

func (s Schema) NumCols() int { return len(s.Cols) }

// ColPos returns the position of the named column or -1.
func (s Schema) ColPos(name string) int {
	for i := range s.Cols {
		if s.Cols[i].Name == name {
			return i
		}
	}
	return -1
}

// Names returns the column names in declaration order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Cols))
	for i, c := range s.Cols {
		out[i] = c.Name
	}
	return out
}
