package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Table {
	t := New("a", "b", "c")
	t.Append("1", "2", "3")
	t.Append("4", "5", "6")
	return t
}

func TestDropDoesNotMutateInput(t *testing.T) {
	src := sample()
	out := src.Drop("b", "missing")

	assert.Equal(t, []string{"a", "c"}, out.Columns)
	assert.Equal(t, []string{"1", "3"}, out.Rows[0])
	assert.Equal(t, []string{"a", "b", "c"}, src.Columns)
	assert.Equal(t, []string{"1", "2", "3"}, src.Rows[0])
}

func TestRenameAndSelect(t *testing.T) {
	out, err := sample().Rename(map[string]string{"a": "x"}).Select("c", "x")
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "x"}, out.Columns)
	assert.Equal(t, []string{"6", "4"}, out.Rows[1])

	_, err = sample().Select("zzz")
	assert.Error(t, err)
}

func TestWithColumn(t *testing.T) {
	src := sample()
	out := src.WithColumn("d", "0").WithColumn("a", "9")

	assert.Equal(t, []string{"a", "b", "c", "d"}, out.Columns)
	assert.Equal(t, []string{"9", "2", "3", "0"}, out.Rows[0])
	assert.Equal(t, "1", src.Rows[0][0])
}

func TestConcatRequiresSameColumns(t *testing.T) {
	out, err := Concat(sample(), sample())
	require.NoError(t, err)
	assert.Equal(t, 4, out.Len())

	_, err = Concat(sample(), New("a", "c", "b"))
	assert.Error(t, err)
}

func TestFilterAndGet(t *testing.T) {
	src := sample()
	out := src.Filter(func(i int) bool { return src.Get(i, "a") == "4" })

	require.Equal(t, 1, out.Len())
	assert.Equal(t, "6", out.Get(0, "c"))
	assert.Equal(t, "", out.Get(0, "nope"))
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(""))
	assert.True(t, IsNull(" NaN "))
	assert.False(t, IsNull("0"))
}
