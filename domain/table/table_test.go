package table

import (
	"errors"
	"math"
	"testing"

	"evalreport/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tbl := New("id", "group", "score")
	require.NoError(t, tbl.Append("a", "x", 1))
	require.NoError(t, tbl.Append("b", "y", 2.5))
	require.NoError(t, tbl.Append("c", "x", nil))
	return tbl
}

func TestNormalize(t *testing.T) {
	s := "text"
	f := 2.0
	var nilString *string

	assert.Nil(t, Normalize(nil))
	assert.Nil(t, Normalize(math.NaN()))
	assert.Nil(t, Normalize(nilString))
	assert.Equal(t, 3.0, Normalize(3))
	assert.Equal(t, 3.0, Normalize(int64(3)))
	assert.Equal(t, 3.0, Normalize(uint8(3)))
	assert.Equal(t, "text", Normalize(&s))
	assert.Equal(t, 2.0, Normalize(&f))
	assert.Equal(t, true, Normalize(true))
}

func TestEqualAcrossNumericKinds(t *testing.T) {
	assert.True(t, Equal(1, 1.0))
	assert.True(t, Equal(int32(7), uint64(7)))
	assert.False(t, Equal("1", 1))
	assert.True(t, Equal(nil, nil))
}

func TestLessOrdersByKindThenValue(t *testing.T) {
	assert.True(t, Less(nil, false))
	assert.True(t, Less(false, true))
	assert.True(t, Less(true, 0.0))
	assert.True(t, Less(1.0, 2.0))
	assert.True(t, Less(99.0, "a"))
	assert.True(t, Less("F1C1", "F1C2"))
	assert.False(t, Less("b", "a"))
	assert.False(t, Less(2.0, 2.0))
}

func TestFloat(t *testing.T) {
	f, ok := Float(2.5)
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	f, ok = Float(true)
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)

	_, ok = Float("2.5")
	assert.False(t, ok)
}

func TestAppend_NormalizesAndChecksWidth(t *testing.T) {
	tbl := sample(t)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, 3, tbl.Width())
	assert.Equal(t, 1.0, tbl.Value(0, "score"))

	err := tbl.Append("d", "z")
	assert.Error(t, err)
	assert.Equal(t, 3, tbl.Len())
}

func TestAppendMap_MissingKeysAreNil(t *testing.T) {
	tbl := New("id", "score")
	tbl.AppendMap(map[string]any{"id": "a", "ignored": 4})

	assert.Equal(t, []any{"a", nil}, tbl.Row(0))
}

func TestNewWithColumns_DedupesAndDefaultsLabels(t *testing.T) {
	tbl := NewWithColumns(Column{Key: "a"}, Column{Key: "b", Label: "Bee"}, Column{Key: "a", Label: "again"})

	assert.Equal(t, []string{"a", "b"}, tbl.Keys())
	assert.Equal(t, []string{"a", "Bee"}, tbl.Labels())
}

func TestRequire(t *testing.T) {
	tbl := sample(t)

	assert.NoError(t, tbl.Require("id", "score"))
	err := tbl.Require("id", "missing")
	assert.True(t, errors.Is(err, core.ErrMissingColumn))
	assert.Contains(t, err.Error(), "missing")
}

func TestProject_CopiesRows(t *testing.T) {
	tbl := sample(t)

	p, err := tbl.Project("score", "id", "score")
	require.NoError(t, err)

	assert.Equal(t, []string{"score", "id"}, p.Keys())
	p.Set(0, "score", 10)
	assert.Equal(t, 1.0, tbl.Value(0, "score"))
}

func TestDropAndReorder(t *testing.T) {
	tbl := sample(t)

	assert.Equal(t, []string{"id", "score"}, tbl.Drop("group", "absent").Keys())
	assert.Equal(t, []string{"score", "id", "group"}, tbl.Reorder("score", "absent", "id").Keys())
	assert.Equal(t, []string{"id", "group", "score"}, tbl.Keys())
}

func TestLabelsNeverChangeKeys(t *testing.T) {
	tbl := sample(t)
	tbl.SetLabel("score", "Score")
	tbl.Relabel(func(c Column) string { return "[" + c.Label + "]" })

	assert.Equal(t, []string{"id", "group", "score"}, tbl.Keys())
	assert.Equal(t, "[Score]", tbl.Label("score"))
	assert.Equal(t, 2.5, tbl.Value(1, "score"))
}

func TestClone_IsIndependent(t *testing.T) {
	tbl := sample(t)
	c := tbl.Clone()
	c.Set(0, "id", "z")
	c.SetLabel("id", "ID")

	assert.Equal(t, "a", tbl.Value(0, "id"))
	assert.Equal(t, "id", tbl.Label("id"))
}

func TestMergeLeft(t *testing.T) {
	left := New("group", "mean", "n")
	require.NoError(t, left.Append("x", "1.00", 4))
	require.NoError(t, left.Append("y", "2.00", 3))
	require.NoError(t, left.Append(nil, "3.00", 1))

	right := NewWithColumns(Column{Key: "group"}, Column{Key: "rate", Label: "Rate"}, Column{Key: "n"})
	require.NoError(t, right.Append("x", "50%", 9))
	require.NoError(t, right.Append("x", "75%", 9))

	merged, err := left.MergeLeft(right, "group")
	require.NoError(t, err)

	assert.Equal(t, []string{"group", "mean", "n", "rate"}, merged.Keys())
	assert.Equal(t, "Rate", merged.Label("rate"))
	assert.Equal(t, []any{"x", "1.00", 4.0, "50%"}, merged.Row(0))
	assert.Equal(t, []any{"y", "2.00", 3.0, nil}, merged.Row(1))
	assert.Equal(t, []any{nil, "3.00", 1.0, nil}, merged.Row(2))
}

func TestMergeLeft_RequiresKey(t *testing.T) {
	left := New("group")
	right := New("other")

	_, err := left.MergeLeft(right, "group")
	assert.True(t, errors.Is(err, core.ErrMissingColumn))
}
