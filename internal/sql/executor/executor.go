package executor

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/record"
	"github.com/tuannm99/tinysql/internal/sql/parser"
	"github.com/tuannm99/tinysql/internal/sql/planner"
)

// executorDB is a small seam for unit-testing Executor without a real DB.
type executorDB interface {
	planner.Catalog

	CreateTable(name string) (*engine.Table, error)
	DropTable(name string) error
	TruncateTable(name string) error
	OpenTable(name string) (*engine.Table, error)
	AddColumn(table string, col record.Column) error
	InsertRow(table string, row record.Row) error
	ListTables() []engine.TableMeta
}

var _ executorDB = (*engine.Database)(nil)

type Options struct {
	Parser  parser.Options
	Planner planner.Options
}

// Executor runs statements, one at a time, against a Database.
type Executor struct {
	DB   executorDB
	opts Options
}

func NewExecutor(db *engine.Database, opts Options) *Executor {
	return &Executor{DB: db, opts: opts}
}

// NewExecutorForTest allows injecting a fake executorDB.
func NewExecutorForTest(db executorDB, opts Options) *Executor {
	return &Executor{DB: db, opts: opts}
}

// ExecScript parses the whole script, then executes the statements in order.
// A parse error runs nothing. An execution error stops the run; the results
// of the statements that already ran are returned with it, and the error is
// a *StatementError naming the failed statement.
func (e *Executor) ExecScript(script string) ([]*Result, error) {
	stmts, err := parser.ParseWithOptions(script, e.opts.Parser)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(stmts))
	for i, stmt := range stmts {
		res, err := e.Exec(stmt)
		if err != nil {
			cmd := CommandName(stmt)
			slog.Debug("executor: statement failed", "index", i, "command", cmd, "err", err)
			return results, &StatementError{Index: i, Command: cmd, Err: err}
		}
		results = append(results, res)
	}
	return results, nil
}

// Exec binds and executes a single statement.
func (e *Executor) Exec(stmt parser.Statement) (*Result, error) {
	plan, err := planner.BuildPlan(stmt, e.DB, e.opts.Planner)
	if err != nil {
		return nil, err
	}
	return e.execPlan(plan)
}

func (e *Executor) execPlan(p planner.Plan) (*Result, error) {
	switch plan := p.(type) {
	case *planner.CreateTablePlan:
		return e.execCreateTable(plan)
	case *planner.DropTablePlan:
		return e.execDropTable(plan)
	case *planner.TruncateTablePlan:
		return e.execTruncateTable(plan)
	case *planner.AddColumnsPlan:
		return e.execAddColumns(plan)
	case *planner.InsertPlan:
		return e.execInsert(plan)
	case *planner.SeqScanPlan:
		return e.execSeqScan(plan)
	case *planner.ShowTablesPlan:
		return e.execShowTables()
	default:
		return nil, fmt.Errorf("executor: unsupported plan type %T", p)
	}
}

func (e *Executor) execCreateTable(p *planner.CreateTablePlan) (*Result, error) {
	if _, err := e.DB.CreateTable(p.TableName); err != nil {
		return nil, err
	}
	for _, col := range p.Schema.Cols {
		if err := e.DB.AddColumn(p.TableName, col); err != nil {
			return nil, err
		}
	}
	slog.Debug("executor: table created", "table", p.TableName, "columns", len(p.Schema.Cols))
	return &Result{Command: CmdCreate}, nil
}

func (e *Executor) execDropTable(p *planner.DropTablePlan) (*Result, error) {
	if err := e.DB.DropTable(p.TableName); err != nil {
		return nil, err
	}
	return &Result{Command: CmdDrop}, nil
}

func (e *Executor) execTruncateTable(p *planner.TruncateTablePlan) (*Result, error) {
	tbl, err := e.DB.OpenTable(p.TableName)
	if err != nil {
		return nil, err
	}
	n := tbl.RowCount
	if err := e.DB.TruncateTable(p.TableName); err != nil {
		return nil, err
	}
	return &Result{Command: CmdTruncate, AffectedRows: int64(n)}, nil
}

func (e *Executor) execAddColumns(p *planner.AddColumnsPlan) (*Result, error) {
	for _, col := range p.Columns {
		if err := e.DB.AddColumn(p.TableName, col); err != nil {
			return nil, err
		}
	}
	return &Result{Command: CmdAlter}, nil
}

func (e *Executor) execInsert(p *planner.InsertPlan) (*Result, error) {
	row := make(record.Row, 0, len(p.Cols))
	for i, col := range p.Cols {
		cell, err := record.ParseCell(col, p.Values[i])
		if err != nil {
			return nil, err
		}
		row = append(row, cell)
	}

	if len(p.Omitted) > 0 {
		slog.Warn("executor: insert leaves columns out, storing a short row",
			"table", p.TableName, "omitted", p.Omitted)
	}

	if err := e.DB.InsertRow(p.TableName, row); err != nil {
		return nil, err
	}
	return &Result{Command: CmdInsert, AffectedRows: 1}, nil
}

func (e *Executor) execSeqScan(p *planner.SeqScanPlan) (*Result, error) {
	tbl, err := e.DB.OpenTable(p.TableName)
	if err != nil {
		return nil, err
	}

	var out []record.Row
	err = tbl.Scan(func(_ int, row record.Row) error {
		// a short row contributes only the cells it has
		proj := make(record.Row, 0, len(p.Positions))
		for _, pos := range p.Positions {
			if pos < len(row) {
				proj = append(proj, row[pos])
			}
		}
		out = append(out, proj)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if p.Distinct {
		out = distinctRows(out)
	}

	res := &Result{
		Command: CmdSelect,
		Columns: append([]string(nil), p.Columns...),
		Rows:    make([][]any, 0, len(out)),
	}
	for _, row := range out {
		vals := make([]any, len(row))
		for i, c := range row {
			vals[i] = c.Value()
		}
		res.Rows = append(res.Rows, vals)
	}
	res.AffectedRows = int64(len(res.Rows))
	return res, nil
}

// distinctRows keeps the first occurrence of every row, comparing whole rows
// position by position. Quadratic; tables here are small.
func distinctRows(rows []record.Row) []record.Row {
	kept := make([]record.Row, 0, len(rows))
	for _, cand := range rows {
		dup := false
		for _, k := range kept {
			if cand.Equal(k) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, cand)
		}
	}
	return kept
}

func (e *Executor) execShowTables() (*Result, error) {
	return &Result{Command: CmdShowTables, Tables: e.DB.ListTables()}, nil
}

// CommandName maps a statement to the name printed for it.
func CommandName(stmt parser.Statement) string {
	switch stmt.(type) {
	case *parser.CreateTableStmt:
		return CmdCreate
	case *parser.DropTableStmt:
		return CmdDrop
	case *parser.SelectStmt:
		return CmdSelect
	case *parser.InsertStmt:
		return CmdInsert
	case *parser.ShowTablesStmt:
		return CmdShowTables
	case *parser.AlterTableStmt:
		return CmdAlter
	case *parser.TruncateTableStmt:
		return CmdTruncate
	default:
		return fmt.Sprintf("%T", stmt)
	}
}
