// Package tinysql is the top-level facade for the tinysql interpreter.
package tinysql

import (
	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/sql/executor"
)

type (
	Database = engine.Database
	Executor = executor.Executor
	Result   = executor.Result
	Options  = executor.Options
)

// Open returns an executor over a new empty database that backfills
// added columns across every table.
func Open(opts Options) *Executor {
	return executor.NewExecutor(engine.NewDatabase(engine.BackfillDatabase), opts)
}
