package parser

// Statement is the root interface for all SQL statements.
type Statement interface {
	stmtNode()
}

// ----- column definitions -----

// ColumnDef is a column as written in CREATE TABLE / ALTER TABLE.
type ColumnDef struct {
	Name string
	Type string // "INT" or "VARCHAR"
	Size uint32 // VARCHAR(n); 0 for INT
}

// ----- CREATE TABLE -----
type CreateTableStmt struct {
	TableName string
	Columns   []ColumnDef
}

func (*CreateTableStmt) stmtNode() {}

// ----- DROP TABLE -----
type DropTableStmt struct {
	TableName string
}

func (*DropTableStmt) stmtNode() {}

// ----- TRUNCATE TABLE -----
type TruncateTableStmt struct {
	TableName string
}

func (*TruncateTableStmt) stmtNode() {}

// ----- ALTER TABLE ... ADD -----
type AlterTableStmt struct {
	TableName string
	Columns   []ColumnDef
}

func (*AlterTableStmt) stmtNode() {}

// ----- INSERT -----
// Values are raw text; they are typed against the schema at execution.
type InsertStmt struct {
	TableName string
	Columns   []string
	Values    []string
}

func (*InsertStmt) stmtNode() {}

// ----- SELECT -----
type SelectStmt struct {
	TableName string
	Distinct  bool
	Columns   []string // may contain Wildcard
}

func (*SelectStmt) stmtNode() {}

// ----- SHOW TABLES -----
type ShowTablesStmt struct{}

func (*ShowTablesStmt) stmtNode() {}

// Wildcard selects every column in table order.
const Wildcard = "*"
