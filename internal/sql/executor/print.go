package executor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// DefaultColumnWidth is the minimum width of a SELECT output cell.
const DefaultColumnWidth = 15

// Printer renders results as the line-oriented text the CLI prints.
type Printer struct {
	Width int
}

func NewPrinter(width int) *Printer {
	if width <= 0 {
		width = DefaultColumnWidth
	}
	return &Printer{Width: width}
}

// Write prints one result, prefixed by its command line.
func (p *Printer) Write(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Command: %s statement\n", res.Command)

	switch res.Command {
	case CmdShowTables:
		for _, t := range res.Tables {
			fmt.Fprintf(bw, "Table name: %s\n", t.Name)
			fmt.Fprintf(bw, "\tRow count: %d\n", t.RowCount)
			fmt.Fprintf(bw, "\tColumn count: %d\n", t.ColumnCount)
		}

	case CmdSelect:
		fmt.Fprintln(bw, "Results:")
		fmt.Fprintln(bw)
		p.writeRow(bw, len(res.Columns), func(i int) any { return res.Columns[i] })
		for _, row := range res.Rows {
			p.writeRow(bw, len(row), func(i int) any { return row[i] })
		}
		fmt.Fprintln(bw)
	}

	// bufio keeps the first write error; Flush reports it.
	return bw.Flush()
}

// WriteAll prints results in order.
func (p *Printer) WriteAll(w io.Writer, results []*Result) error {
	for _, res := range results {
		if err := p.Write(w, res); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) writeRow(w io.Writer, n int, cell func(i int) any) {
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, " %-*v |", p.Width, cell(i))
	}
	fmt.Fprintln(w)
}

// Report prints results, then the command line of the statement that
// failed, if execErr names one. It returns execErr, or the first write error
// when execution succeeded.
func (p *Printer) Report(w io.Writer, results []*Result, execErr error) error {
	err := p.WriteAll(w, results)
	var se *StatementError
	if err == nil && errors.As(execErr, &se) && se.Command != "" {
		_, err = fmt.Fprintf(w, "Command: %s statement\n", se.Command)
	}
	if execErr != nil {
		return execErr
	}
	return err
}
