package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestWriteReadDelete(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	in := testRecord{ID: "abc", Name: "first"}
	require.NoError(t, s.Write("customers", "abc", in))

	var out testRecord
	require.NoError(t, s.Read("customers", "abc", &out))
	assert.Equal(t, in, out)

	require.NoError(t, s.Delete("customers", "abc"))
	assert.ErrorIs(t, s.Read("customers", "abc", &out), ErrNotFound)
	assert.ErrorIs(t, s.Delete("customers", "abc"), ErrNotFound)
}

func TestWriteOverwrites(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Write("customers", "abc", testRecord{ID: "abc", Name: "old"}))
	require.NoError(t, s.Write("customers", "abc", testRecord{ID: "abc", Name: "new"}))

	var out testRecord
	require.NoError(t, s.Read("customers", "abc", &out))
	assert.Equal(t, "new", out.Name)
}

func TestListSortedAndEmpty(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	records, err := s.List("missing")
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, s.Write("invoices", "b", testRecord{ID: "b"}))
	require.NoError(t, s.Write("invoices", "a", testRecord{ID: "a"}))

	records, err = s.List("invoices")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Contains(t, string(records[0]), `"a"`)
	assert.Contains(t, string(records[1]), `"b"`)
}

func TestRejectsPathEscapes(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Write("../escape", "abc", testRecord{}))
	assert.Error(t, s.Write("customers", "../escape", testRecord{}))
	assert.Error(t, s.Read("customers", "a/b", &testRecord{}))
}
