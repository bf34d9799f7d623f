package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/record"
	"github.com/tuannm99/tinysql/internal/sql/parser"
)

var (
	ErrUnsupportedType = errors.New("planner: unsupported column type")
	ErrMissingColumn   = errors.New("planner: column not provided")
)

// Catalog is the read-only view of the database the planner binds against.
type Catalog interface {
	TableSchema(name string) (record.Schema, error)
}

type Options struct {
	// StrictInsert rejects an INSERT whose column list does not name every
	// column of the table instead of storing a short row.
	StrictInsert bool
}

// BuildPlan binds one statement against the current catalog.
// DDL plans that only name a table do not touch cat.
func BuildPlan(stmt parser.Statement, cat Catalog, opts Options) (Plan, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return buildCreateTablePlan(s)
	case *parser.DropTableStmt:
		return &DropTablePlan{TableName: s.TableName}, nil
	case *parser.TruncateTableStmt:
		return &TruncateTablePlan{TableName: s.TableName}, nil
	case *parser.AlterTableStmt:
		return buildAddColumnsPlan(s, cat)
	case *parser.InsertStmt:
		return buildInsertPlan(s, cat, opts)
	case *parser.SelectStmt:
		return buildSelectPlan(s, cat)
	case *parser.ShowTablesStmt:
		return &ShowTablesPlan{}, nil
	default:
		return nil, fmt.Errorf("planner: unsupported statement type %T", stmt)
	}
}

func buildCreateTablePlan(s *parser.CreateTableStmt) (Plan, error) {
	cols, err := mapColumns(s.TableName, s.Columns, record.Schema{})
	if err != nil {
		return nil, err
	}
	return &CreateTablePlan{
		TableName: s.TableName,
		Schema:    record.Schema{Cols: cols},
	}, nil
}

func buildAddColumnsPlan(s *parser.AlterTableStmt, cat Catalog) (Plan, error) {
	schema, err := cat.TableSchema(s.TableName)
	if err != nil {
		return nil, err
	}
	cols, err := mapColumns(s.TableName, s.Columns, schema)
	if err != nil {
		return nil, err
	}
	return &AddColumnsPlan{TableName: s.TableName, Columns: cols}, nil
}

// mapColumns types the column definitions and rejects names already in
// existing or repeated within defs.
func mapColumns(table string, defs []parser.ColumnDef, existing record.Schema) ([]record.Column, error) {
	seen := make(map[string]struct{}, len(defs))
	for _, c := range existing.Cols {
		seen[c.Name] = struct{}{}
	}

	cols := make([]record.Column, 0, len(defs))
	for _, d := range defs {
		if _, dup := seen[d.Name]; dup {
			return nil, fmt.Errorf("%w: %s.%s", engine.ErrColumnExists, table, d.Name)
		}
		seen[d.Name] = struct{}{}

		colType, err := mapSQLType(d.Type)
		if err != nil {
			return nil, err
		}
		size := d.Size
		if colType == record.ColInt {
			size = 0
		}
		cols = append(cols, record.Column{
			Name: d.Name,
			Type: colType,
			Size: size,
		})
	}
	return cols, nil
}

func buildInsertPlan(s *parser.InsertStmt, cat Catalog, opts Options) (Plan, error) {
	schema, err := cat.TableSchema(s.TableName)
	if err != nil {
		return nil, err
	}
	if len(s.Columns) != len(s.Values) {
		return nil, fmt.Errorf("planner: INSERT INTO %s has %d columns but %d values", s.TableName, len(s.Columns), len(s.Values))
	}

	for _, name := range s.Columns {
		if schema.ColPos(name) < 0 {
			return nil, fmt.Errorf("%w: %s.%s", engine.ErrColumnNotFound, s.TableName, name)
		}
	}

	plan := &InsertPlan{TableName: s.TableName}
	for _, col := range schema.Cols {
		idx := indexOf(s.Columns, col.Name)
		if idx < 0 {
			plan.Omitted = append(plan.Omitted, col.Name)
			continue
		}
		plan.Cols = append(plan.Cols, col)
		plan.Values = append(plan.Values, s.Values[idx])
	}

	if opts.StrictInsert && len(plan.Omitted) > 0 {
		return nil, fmt.Errorf("%w: %s.%s", ErrMissingColumn, s.TableName, plan.Omitted[0])
	}
	return plan, nil
}

func buildSelectPlan(s *parser.SelectStmt, cat Catalog) (Plan, error) {
	schema, err := cat.TableSchema(s.TableName)
	if err != nil {
		return nil, err
	}

	plan := &SeqScanPlan{TableName: s.TableName, Distinct: s.Distinct}
	for _, name := range s.Columns {
		if name == parser.Wildcard {
			for i, col := range schema.Cols {
				plan.Columns = append(plan.Columns, col.Name)
				plan.Positions = append(plan.Positions, i)
			}
			continue
		}

		pos := schema.ColPos(name)
		if pos < 0 {
			return nil, fmt.Errorf("%w: %s.%s", engine.ErrColumnNotFound, s.TableName, name)
		}
		plan.Columns = append(plan.Columns, name)
		plan.Positions = append(plan.Positions, pos)
	}
	return plan, nil
}

func mapSQLType(t string) (record.ColumnType, error) {
	switch strings.ToUpper(t) {
	case "INT":
		return record.ColInt, nil
	case "VARCHAR":
		return record.ColText, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

func indexOf(list []string, s string) int {
	for i := range list {
		if list[i] == s {
			return i
		}
	}
	return -1
}
