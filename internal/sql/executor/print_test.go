package executor

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/record"
)

func runPrinted(e *Executor, w io.Writer, p *Printer, script string) error {
	results, err := e.ExecScript(script)
	return p.Report(w, results, err)
}

func TestReport_SelectOutput(t *testing.T) {
	e, _ := newTestExecutor(engine.BackfillDatabase, Options{})

	var buf bytes.Buffer
	err := runPrinted(e, &buf, NewPrinter(DefaultColumnWidth), `CREATE TABLE t (id INT, name VARCHAR(5));
INSERT INTO t (id, name) VALUES (1, helloworld);
SELECT * FROM t;`)
	require.NoError(t, err)

	want := "Command: Create statement\n" +
		"Command: Insert statement\n" +
		"Command: Select statement\n" +
		"Results:\n" +
		"\n" +
		" id              | name            |\n" +
		" 1               | hello           |\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestReport_ShowTablesOutput(t *testing.T) {
	e, _ := newTestExecutor(engine.BackfillDatabase, Options{})

	var buf bytes.Buffer
	err := runPrinted(e, &buf, NewPrinter(0), `CREATE TABLE b (x INT);
CREATE TABLE a (x INT, y INT);
INSERT INTO b (x) VALUES (5);
SHOW TABLES;`)
	require.NoError(t, err)

	want := "Command: Create statement\n" +
		"Command: Create statement\n" +
		"Command: Insert statement\n" +
		"Command: Show tables statement\n" +
		"Table name: a\n" +
		"\tRow count: 0\n" +
		"\tColumn count: 2\n" +
		"Table name: b\n" +
		"\tRow count: 1\n" +
		"\tColumn count: 1\n"
	assert.Equal(t, want, buf.String())
}

func TestReport_CommandLines(t *testing.T) {
	e, _ := newTestExecutor(engine.BackfillDatabase, Options{})

	var buf bytes.Buffer
	err := runPrinted(e, &buf, NewPrinter(0), `CREATE TABLE t (id INT);
ALTER TABLE t ADD n INT;
TRUNCATE TABLE t;
DROP TABLE t;`)
	require.NoError(t, err)

	assert.Equal(t, "Command: Create statement\n"+
		"Command: Alter statement\n"+
		"Command: Truncate statement\n"+
		"Command: Drop statement\n", buf.String())
}

func TestPrinter_NarrowWidthAndLongValues(t *testing.T) {
	p := NewPrinter(3)
	res := &Result{
		Command: CmdSelect,
		Columns: []string{"id", "name"},
		Rows:    [][]any{{int32(7), "héllo"}},
	}

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf, res))
	assert.Equal(t, "Command: Select statement\nResults:\n\n id  | name |\n 7   | héllo |\n\n", buf.String())
}

func TestPrinter_JSONNumbers(t *testing.T) {
	// results that crossed the wire carry json.Number instead of int32
	res := &Result{
		Command: CmdSelect,
		Columns: []string{"n"},
		Rows:    [][]any{{json.Number("2147483647")}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(0).Write(&buf, res))
	assert.Contains(t, buf.String(), " 2147483647      |\n")
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrinter_WriteError(t *testing.T) {
	err := NewPrinter(0).Write(errWriter{}, &Result{Command: CmdDrop})
	require.Error(t, err)
}

func TestReport_PrintsCommandOfFailedStatement(t *testing.T) {
	e, _ := newTestExecutor(engine.BackfillDatabase, Options{})

	var buf bytes.Buffer
	err := runPrinted(e, &buf, NewPrinter(0), `CREATE TABLE t (id INT);
INSERT INTO t (id) VALUES (1);
INSERT INTO t (id) VALUES (oops);
SHOW TABLES;`)
	require.ErrorIs(t, err, record.ErrValueParse)

	assert.Equal(t, "Command: Create statement\n"+
		"Command: Insert statement\n"+
		"Command: Insert statement\n", buf.String())
}

func TestReport_ParseErrorPrintsNothing(t *testing.T) {
	e, _ := newTestExecutor(engine.BackfillDatabase, Options{})

	var buf bytes.Buffer
	err := runPrinted(e, &buf, NewPrinter(0), "CREATE TABLE t (id FLOAT);")
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestReport_ExecErrorWinsOverWriteError(t *testing.T) {
	boom := errors.New("boom")
	err := NewPrinter(0).Report(errWriter{}, []*Result{{Command: CmdDrop}}, boom)
	assert.Same(t, boom, err)

	err = NewPrinter(0).Report(errWriter{}, []*Result{{Command: CmdDrop}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}
