package planner

import (
	"github.com/tuannm99/tinysql/internal/record"
)

// Plan is the interface for executable plans.
type Plan interface {
	planNode()
}

// ----- Plan nodes -----

type CreateTablePlan struct {
	TableName string
	Schema    record.Schema
}

func (*CreateTablePlan) planNode() {}

type DropTablePlan struct {
	TableName string
}

func (*DropTablePlan) planNode() {}

type TruncateTablePlan struct {
	TableName string
}

func (*TruncateTablePlan) planNode() {}

type AddColumnsPlan struct {
	TableName string
	Columns   []record.Column
}

func (*AddColumnsPlan) planNode() {}

// InsertPlan holds the table columns that received a value, in table
// order, with the raw value for each. Omitted lists the columns that did not.
type InsertPlan struct {
	TableName string
	Cols      []record.Column
	Values    []string
	Omitted   []string
}

func (*InsertPlan) planNode() {}

// SeqScanPlan reads every row and projects the cells at Positions.
type SeqScanPlan struct {
	TableName string
	Columns   []string // output header
	Positions []int    // table column position per output column
	Distinct  bool
}

func (*SeqScanPlan) planNode() {}

type ShowTablesPlan struct{}

func (*ShowTablesPlan) planNode() {}
