package fugue

import (
	"testing"

	"github.com/listcrdt/listcrdt/crdt"
	"github.com/stretchr/testify/require"
)

func TestLocalInsertAppend(t *testing.T) {
	tr := NewTree[string]()
	for i, c := range []string{"h", "e", "l", "l", "o"} {
		id, err := tr.LocalInsert("A", i, c)
		require.NoError(t, err)
		require.Equal(t, crdt.Agent("A"), id.Agent)
		require.Equal(t, uint64(i), id.Seq)
	}
	require.Equal(t, []string{"h", "e", "l", "l", "o"}, tr.GetArray())
	require.Equal(t, 5, tr.Length())
}

func TestLocalInsertMiddle(t *testing.T) {
	tr := NewTree[string]()
	_, err := tr.LocalInsert("A", 0, "a")
	require.NoError(t, err)
	_, err = tr.LocalInsert("A", 1, "c")
	require.NoError(t, err)
	_, err = tr.LocalInsert("A", 1, "b")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, tr.GetArray())
}

func TestLocalInsertPrepend(t *testing.T) {
	tr := NewTree[string]()
	_, err := tr.LocalInsert("A", 0, "b")
	require.NoError(t, err)
	_, err = tr.LocalInsert("A", 0, "a")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, tr.GetArray())
}

func TestLocalDeleteHidesContent(t *testing.T) {
	tr := NewTree[string]()
	_, err := tr.LocalInsert("A", 0, "a")
	require.NoError(t, err)
	_, err = tr.LocalInsert("A", 1, "b")
	require.NoError(t, err)
	require.NoError(t, tr.LocalDelete("A", 0))
	require.Equal(t, []string{"b"}, tr.GetArray())
	require.Equal(t, 1, tr.Length())
}

func TestLocalDeleteOutOfRange(t *testing.T) {
	tr := NewTree[string]()
	err := tr.LocalDelete("A", 0)
	require.ErrorIs(t, err, crdt.ErrPositionOutOfRange)
}

func TestConcurrentInsertAtSamePosition(t *testing.T) {
	a := NewTree[string]()
	b := NewTree[string]()
	_, err := a.LocalInsert("A", 0, "x")
	require.NoError(t, err)
	_, err = b.LocalInsert("B", 0, "y")
	require.NoError(t, err)

	require.NoError(t, MergeInto(a, b))
	require.NoError(t, MergeInto(b, a))

	require.Equal(t, a.GetArray(), b.GetArray())
	require.Len(t, a.GetArray(), 2)
}

func TestConcurrentInsertRunsDoNotInterleave(t *testing.T) {
	a := NewTree[string]()
	b := NewTree[string]()
	for _, c := range []string{"a", "a", "a"} {
		_, err := a.LocalInsert("A", a.Length(), c)
		require.NoError(t, err)
	}
	for _, c := range []string{"b", "b", "b"} {
		_, err := b.LocalInsert("B", b.Length(), c)
		require.NoError(t, err)
	}

	require.NoError(t, MergeInto(a, b))
	require.NoError(t, MergeInto(b, a))

	require.Equal(t, a.GetArray(), b.GetArray())
	require.True(t, isRunPartitioned(a.GetArray()))
}

func isRunPartitioned(seq []string) bool {
	seen := map[string]bool{}
	last := ""
	for _, v := range seq {
		if v != last {
			if seen[v] {
				return false
			}
			seen[v] = true
			last = v
		}
	}
	return true
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tr := NewTree[string]()
	_, err := tr.LocalInsert("A", 0, "a")
	require.NoError(t, err)
	_, err = tr.LocalInsert("A", 1, "c")
	require.NoError(t, err)
	_, err = tr.LocalInsert("B", 1, "b")
	require.NoError(t, err)
	require.NoError(t, tr.LocalDelete("A", 0))

	wire := tr.Save()
	loaded, err := Load(wire)
	require.NoError(t, err)
	require.Equal(t, tr.GetArray(), loaded.GetArray())
	require.Equal(t, tr.Length(), loaded.Length())
}

func TestIntegrateRejectsCausalGap(t *testing.T) {
	tr := NewTree[string]()
	err := tr.Integrate(&Node[string]{Id: crdt.Id{Agent: "A", Seq: 1}, Content: "x"})
	require.ErrorIs(t, err, crdt.ErrCausalGap)
}
