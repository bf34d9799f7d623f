package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/tuannm99/tinysql/internal/record"
)

var (
	ErrTableExists    = errors.New("engine: table already exists")
	ErrTableNotFound  = errors.New("engine: table not found")
	ErrColumnNotFound = errors.New("engine: column not found")
	ErrColumnExists   = errors.New("engine: column already exists")
)

// BackfillScope selects which rows get a default cell when a column is added.
type BackfillScope string

const (
	// BackfillDatabase appends the default cell to the rows of every table.
	BackfillDatabase BackfillScope = "database"
	// BackfillTable only touches the rows of the altered table.
	BackfillTable BackfillScope = "table"
)

func ParseBackfillScope(s string) (BackfillScope, error) {
	switch BackfillScope(s) {
	case BackfillDatabase, BackfillTable:
		return BackfillScope(s), nil
	case "":
		return BackfillDatabase, nil
	default:
		return "", fmt.Errorf("engine: unknown backfill scope %q (want %q or %q)", s, BackfillDatabase, BackfillTable)
	}
}

type DatabaseOperation interface {
	CreateTable(name string) (*Table, error)
	OpenTable(name string) (*Table, error)
	DropTable(name string) error
	TruncateTable(name string) error
	AddColumn(table string, col record.Column) error
	InsertRow(table string, row record.Row) error
	ListTables() []TableMeta
}

// TableMeta is the SHOW TABLES view of a table.
type TableMeta struct {
	Name        string `json:"name"`
	RowCount    int    `json:"row_count"`
	ColumnCount int    `json:"column_count"`
}

var _ DatabaseOperation = (*Database)(nil)

// Database maps table names to tables. It lives for one run (or one
// network session) and is never persisted. Not safe for concurrent use.
type Database struct {
	tables   map[string]*Table
	backfill BackfillScope
}

// NewDatabase creates an empty database.
func NewDatabase(backfill BackfillScope) *Database {
	if backfill == "" {
		backfill = BackfillDatabase
	}
	return &Database{
		tables:   make(map[string]*Table),
		backfill: backfill,
	}
}

func (db *Database) Backfill() BackfillScope { return db.backfill }

func (db *Database) CreateTable(name string) (*Table, error) {
	if _, ok := db.tables[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrTableExists, name)
	}
	tbl := NewTable(name)
	db.tables[name] = tbl
	return tbl, nil
}

func (db *Database) OpenTable(name string) (*Table, error) {
	tbl, ok := db.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return tbl, nil
}

// TableSchema returns a copy of the table's schema.
func (db *Database) TableSchema(name string) (record.Schema, error) {
	tbl, err := db.OpenTable(name)
	if err != nil {
		return record.Schema{}, err
	}
	cols := make([]record.Column, len(tbl.Schema.Cols))
	copy(cols, tbl.Schema.Cols)
	return record.Schema{Cols: cols}, nil
}

func (db *Database) DropTable(name string) error {
	if _, err := db.OpenTable(name); err != nil {
		return err
	}
	delete(db.tables, name)
	return nil
}

func (db *Database) TruncateTable(name string) error {
	tbl, err := db.OpenTable(name)
	if err != nil {
		return err
	}
	tbl.Truncate()
	return nil
}

// AddColumn appends col to the table's schema, then appends col's default
// cell to existing rows according to the backfill scope.
func (db *Database) AddColumn(table string, col record.Column) error {
	tbl, err := db.OpenTable(table)
	if err != nil {
		return err
	}
	cell, err := record.DefaultCell(col)
	if err != nil {
		return err
	}
	if err := tbl.addColumn(col); err != nil {
		return err
	}

	if db.backfill == BackfillTable {
		tbl.backfill(cell)
		return nil
	}

	touched := 0
	for _, t := range db.tables {
		if len(t.Rows) == 0 {
			continue
		}
		t.backfill(cell)
		if t != tbl {
			touched++
		}
	}
	if touched > 0 {
		slog.Debug("engine: column default appended to other tables",
			"table", table, "column", col.Name, "otherTables", touched)
	}
	return nil
}

func (db *Database) InsertRow(table string, row record.Row) error {
	tbl, err := db.OpenTable(table)
	if err != nil {
		return err
	}
	return tbl.Insert(row)
}

// ListTables returns every table sorted by name.
func (db *Database) ListTables() []TableMeta {
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]TableMeta, 0, len(names))
	for _, name := range names {
		t := db.tables[name]
		out = append(out, TableMeta{
			Name:        name,
			RowCount:    t.RowCount,
			ColumnCount: t.Schema.NumCols(),
		})
	}
	return out
}
