package crdt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalInsertAppend(t *testing.T) {
	doc := NewDocument[string](YjsClassic)
	for i, c := range []string{"h", "e", "l", "l", "o"} {
		id, err := doc.LocalInsert("A", i, c)
		require.NoError(t, err)
		require.Equal(t, Agent("A"), id.Agent)
		require.Equal(t, uint64(i), id.Seq)
	}
	require.Equal(t, []string{"h", "e", "l", "l", "o"}, doc.GetArray())
	require.Equal(t, 5, doc.Length())
}

func TestLocalInsertMiddle(t *testing.T) {
	doc := NewDocument[string](RGA)
	_, err := doc.LocalInsert("A", 0, "a")
	require.NoError(t, err)
	_, err = doc.LocalInsert("A", 1, "c")
	require.NoError(t, err)
	_, err = doc.LocalInsert("A", 1, "b")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, doc.GetArray())
}

func TestLocalDeleteHidesContent(t *testing.T) {
	doc := NewDocument[string](YjsMod)
	_, err := doc.LocalInsert("A", 0, "a")
	require.NoError(t, err)
	_, err = doc.LocalInsert("A", 1, "b")
	require.NoError(t, err)
	require.NoError(t, doc.LocalDelete("A", 0))
	require.Equal(t, []string{"b"}, doc.GetArray())
	require.Equal(t, 1, doc.Length())
}

func TestLocalDeletePositionOutOfRange(t *testing.T) {
	doc := NewDocument[string](YjsClassic)
	err := doc.LocalDelete("A", 0)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPositionOutOfRange)
}

func TestIntegrateRejectsCausalGap(t *testing.T) {
	doc := NewDocument[string](YjsClassic)
	err := doc.Integrate(Item[string]{Id: Id{"A", 1}, Present: true, Content: "x"}, -1)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCausalGap)
}

func TestIntegrateRejectsUnknownOrigin(t *testing.T) {
	doc := NewDocument[string](YjsClassic)
	err := doc.Integrate(Item[string]{
		Id: Id{"A", 0}, Present: true, Content: "x",
		OriginLeft: Id{"B", 0},
	}, -1)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCausalGap)
}

func TestSnapshotMatchesGetArrayAndVersion(t *testing.T) {
	doc := NewDocument[string](Sync9)
	_, err := doc.LocalInsert("A", 0, "x")
	require.NoError(t, err)
	_, err = doc.LocalInsert("A", 1, "y")
	require.NoError(t, err)

	arr, v := doc.Snapshot()
	require.Equal(t, doc.GetArray(), arr)
	require.Equal(t, uint64(1), v["A"])

	// Mutating the returned version must not affect the document's own.
	v["A"] = 99
	require.Equal(t, uint64(1), doc.Version["A"])
}

func TestWireRoundTrip(t *testing.T) {
	it := Item[string]{
		Id: Id{"A", 3}, Present: true, Content: "z",
		OriginLeft: Id{"A", 2}, OriginRight: Id{"B", 0},
		Seq: 7, InsertAfter: true,
	}
	back := FromWire(ToWire(it))
	require.Equal(t, it.Id, back.Id)
	require.Equal(t, it.Present, back.Present)
	require.Equal(t, it.Content, back.Content)
	require.Equal(t, it.OriginLeft, back.OriginLeft)
	require.Equal(t, it.OriginRight, back.OriginRight)
	require.Equal(t, it.Seq, back.Seq)
	require.Equal(t, it.InsertAfter, back.InsertAfter)
}

func TestAlgorithmString(t *testing.T) {
	require.Equal(t, "YjsClassic", YjsClassic.String())
	require.Equal(t, "YjsMod", YjsMod.String())
	require.Equal(t, "RGA", RGA.String())
	require.Equal(t, "Sync9", Sync9.String())
	require.Equal(t, "Unknown", Algorithm(99).String())
}
