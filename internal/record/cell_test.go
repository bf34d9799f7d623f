package record

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestSchema() Schema {
	return Schema{
		Cols: []Column{
			{Name: "id", Type: ColInt},
			{Name: "name", Type: ColText, Size: 5},
		},
	}
}

func TestSchema_ColPos(t *testing.T) {
	s := makeTestSchema()
	assert.Equal(t, 0, s.ColPos("id"))
	assert.Equal(t, 1, s.ColPos("name"))
	assert.Equal(t, -1, s.ColPos("missing"))
	assert.Equal(t, []string{"id", "name"}, s.Names())
	assert.Equal(t, 2, s.NumCols())
}

func TestParseCell_Int(t *testing.T) {
	col := Column{Name: "id", Type: ColInt}

	c, err := ParseCell(col, "42")
	require.NoError(t, err)
	assert.Equal(t, ColInt, c.Type)
	assert.Equal(t, int32(42), c.Int)

	c, err = ParseCell(col, "-7")
	require.NoError(t, err)
	assert.Equal(t, int32(-7), c.Int)

	c, err = ParseCell(col, strconv.Itoa(math.MaxInt32))
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt32), c.Int)
}

func TestParseCell_IntInvalid(t *testing.T) {
	col := Column{Name: "id", Type: ColInt}

	for _, in := range []string{"abc", "1.5", "", "2147483648", "'1'"} {
		_, err := ParseCell(col, in)
		require.Error(t, err, "ParseCell(%q)", in)
		assert.ErrorIs(t, err, ErrValueParse)
	}
}

func TestParseCell_TextTruncatesByRunes(t *testing.T) {
	col := Column{Name: "name", Type: ColText, Size: 5, Nullable: true}

	c, err := ParseCell(col, "helloworld")
	require.NoError(t, err)
	assert.Equal(t, "hello", c.Text)
	assert.Equal(t, uint32(5), c.Size)
	assert.True(t, c.Nullable)

	c, err = ParseCell(col, "héllöwörld")
	require.NoError(t, err)
	assert.Equal(t, "héllö", c.Text)

	c, err = ParseCell(col, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", c.Text)

	c, err = ParseCell(Column{Name: "z", Type: ColText, Size: 0}, "abc")
	require.NoError(t, err)
	assert.Equal(t, "", c.Text)
}

func TestDefaultCell(t *testing.T) {
	c, err := DefaultCell(Column{Name: "n", Type: ColInt})
	require.NoError(t, err)
	assert.Equal(t, IntCell(0, 0, false), c)

	c, err = DefaultCell(Column{Name: "s", Type: ColText, Size: 8, Nullable: true})
	require.NoError(t, err)
	assert.Equal(t, TextCell("", 8, true), c)

	_, err = DefaultCell(Column{Name: "x", Type: ColumnType(9)})
	require.Error(t, err)
}

func TestCell_EqualIgnoresMetadata(t *testing.T) {
	assert.True(t, IntCell(1, 0, false).Equal(IntCell(1, 4, true)))
	assert.False(t, IntCell(1, 0, false).Equal(IntCell(2, 0, false)))
	assert.True(t, TextCell("a", 1, false).Equal(TextCell("a", 10, true)))

	// different tags never match, even for the "same" text
	assert.False(t, IntCell(0, 0, false).Equal(TextCell("0", 0, false)))
	assert.False(t, TextCell("", 0, false).Equal(IntCell(0, 0, false)))
}

func TestRow_Equal(t *testing.T) {
	a := Row{IntCell(1, 0, false), TextCell("x", 1, false)}
	b := Row{IntCell(1, 0, false), TextCell("x", 9, true)}
	c := Row{IntCell(1, 0, false)}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, c.Equal(a))

	cp := a.Clone()
	cp[0].Int = 99
	assert.Equal(t, int32(1), a[0].Int)
}

func TestCell_ValueAndString(t *testing.T) {
	assert.Equal(t, int32(3), IntCell(3, 0, false).Value())
	assert.Equal(t, "abc", TextCell("abc", 3, false).Value())
	assert.Equal(t, "-3", IntCell(-3, 0, false).String())
	assert.Equal(t, "INT", ColInt.String())
	assert.Equal(t, "VARCHAR", ColText.String())
}
