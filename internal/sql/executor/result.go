package executor

import "github.com/tuannm99/tinysql/internal/engine"

// Command names, as printed in "Command: <name> statement".
const (
	CmdCreate     = "Create"
	CmdDrop       = "Drop"
	CmdSelect     = "Select"
	CmdInsert     = "Insert"
	CmdShowTables = "Show tables"
	CmdAlter      = "Alter"
	CmdTruncate   = "Truncate"
)

// Result is the generic statement result returned to the caller.
type Result struct {
	Command string `json:"command"`

	// For SELECT:
	Columns []string `json:"columns,omitempty"`
	Rows    [][]any  `json:"rows,omitempty"`

	// For SHOW TABLES:
	Tables []engine.TableMeta `json:"tables,omitempty"`

	// For DML:
	AffectedRows int64 `json:"affected_rows"`
}
