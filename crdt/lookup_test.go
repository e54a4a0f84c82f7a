package crdt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindByPosSkipsDeleted(t *testing.T) {
	content := []Item[string]{
		{Id: Id{"A", 0}, Present: true, Content: "a"},
		{Id: Id{"A", 1}, Present: true, Content: "b", IsDeleted: true},
		{Id: Id{"A", 2}, Present: true, Content: "c"},
	}
	idx, err := findByPos(content, 1, false)
	require.NoError(t, err)
	require.Equal(t, 2, idx, "visible position 1 is the third array slot (b is deleted)")
}

func TestFindByPosStickToEndAbsorbsMarker(t *testing.T) {
	content := []Item[string]{
		{Id: Id{"A", 0}, Present: true, Content: "a"},
		{Id: splitMarkerId(Id{"A", 0}), Present: false},
		{Id: Id{"A", 1}, Present: true, Content: "b"},
	}
	idx, err := findByPos(content, 1, true)
	require.NoError(t, err)
	require.Equal(t, 1, idx, "with stickToEnd, lands on the marker slot itself")

	idx, err = findByPos(content, 1, false)
	require.NoError(t, err)
	require.Equal(t, 2, idx, "without stickToEnd, skips past the marker to b")
}

func TestFindByPosOutOfRange(t *testing.T) {
	_, err := findByPos([]Item[string]{}, 1, false)
	require.ErrorIs(t, err, ErrPositionOutOfRange)

	_, err = findByPos([]Item[string]{}, -1, false)
	require.ErrorIs(t, err, ErrPositionOutOfRange)
}

func TestFindByPosAtEndOfContent(t *testing.T) {
	content := []Item[string]{{Id: Id{"A", 0}, Present: true, Content: "a"}}
	idx, err := findByPos(content, 1, false)
	require.NoError(t, err)
	require.Equal(t, 1, idx)
}

func TestFindByIdAbsentIsSentinel(t *testing.T) {
	idx, err := findById([]Item[string]{}, nil, NoId, 0, idLookupOpts{})
	require.NoError(t, err)
	require.Equal(t, -1, idx)
}

func TestFindByIdHintHit(t *testing.T) {
	content := []Item[string]{
		{Id: Id{"A", 0}, Present: true, Content: "a"},
		{Id: Id{"A", 1}, Present: true, Content: "b"},
	}
	idx, err := findById(content, nil, Id{"A", 1}, 1, idLookupOpts{})
	require.NoError(t, err)
	require.Equal(t, 1, idx)
}

func TestFindByIdWindowFallback(t *testing.T) {
	content := make([]Item[string], 0, 20)
	for i := 0; i < 20; i++ {
		content = append(content, Item[string]{Id: Id{"A", uint64(i)}, Present: true})
	}
	// Bad hint, but within the +/-8 window of the real index (10).
	idx, err := findById(content, nil, Id{"A", 10}, 12, idLookupOpts{})
	require.NoError(t, err)
	require.Equal(t, 10, idx)
}

func TestFindByIdLinearFallback(t *testing.T) {
	content := make([]Item[string], 0, 40)
	for i := 0; i < 40; i++ {
		content = append(content, Item[string]{Id: Id{"A", uint64(i)}, Present: true})
	}
	// Hint is far outside the window; only the linear scan finds it.
	idx, err := findById(content, nil, Id{"A", 5}, 35, idLookupOpts{})
	require.NoError(t, err)
	require.Equal(t, 5, idx)
}

func TestFindByIdViaBtreeIndex(t *testing.T) {
	content := make([]Item[string], 0, 40)
	idx := newIdIndex()
	for i := 0; i < 40; i++ {
		content = append(content, Item[string]{Id: Id{"A", uint64(i)}, Present: true})
		idx.set(Id{"A", uint64(i)}, i)
	}
	gotIdx, err := findById(content, idx, Id{"A", 30}, 0, idLookupOpts{})
	require.NoError(t, err)
	require.Equal(t, 30, gotIdx)
}

func TestFindByIdNotFound(t *testing.T) {
	content := []Item[string]{{Id: Id{"A", 0}, Present: true}}
	_, err := findById(content, nil, Id{"B", 0}, 0, idLookupOpts{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindByIdAtEndSkipsMarker(t *testing.T) {
	marker := splitMarkerId(Id{"A", 0})
	content := []Item[string]{
		{Id: Id{"A", 0}, Present: true, Content: "a"},
		{Id: marker, Present: false},
	}
	_, err := findById(content, nil, marker, 1, idLookupOpts{atEnd: true})
	require.ErrorIs(t, err, ErrNotFound)

	gotIdx, err := findById(content, nil, marker, 1, idLookupOpts{})
	require.NoError(t, err)
	require.Equal(t, 1, gotIdx)
}

func TestVisibleLength(t *testing.T) {
	content := []Item[string]{
		{Present: true},
		{Present: true, IsDeleted: true},
		{Present: false},
		{Present: true},
	}
	require.Equal(t, 2, visibleLength(content))
}
