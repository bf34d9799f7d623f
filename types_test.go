package tinysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ex := Open(Options{})

	res, err := ex.ExecScript("CREATE TABLE t (id INT);INSERT INTO t (id) VALUES (3);SELECT id FROM t;")
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, [][]any{{int32(3)}}, res[2].Rows)

	other := Open(Options{})
	res, err = other.ExecScript("SHOW TABLES;")
	require.NoError(t, err)
	assert.Empty(t, res[0].Tables)
}
