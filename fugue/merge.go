package fugue

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/listcrdt/listcrdt/crdt"
)

// MergeInto imports every node from src that dest does not yet have,
// admitting each once its causal dependencies are satisfied — the same
// fixed-point merge driver crdt.MergeInto runs over a flat content array
// (see crdt/merge.go), adapted here to walk src's causally ordered log
// instead of a content slice.
func MergeInto[T any](dest, src *Tree[T]) error {
	pending := mapset.NewSet[*Node[T]]()
	for _, n := range src.log {
		if dest.Version.Contains(n.Id) {
			if n.IsDeleted {
				if dn, ok := dest.idx.get(n.Id); !ok || !dn.IsDeleted {
					return crdt.NewError(crdt.UnsupportedOp, n.Id, "merging a deleted node is not supported")
				}
			}
			continue
		}
		if n.IsDeleted {
			return crdt.NewError(crdt.UnsupportedOp, n.Id, "merging a deleted node is not supported")
		}
		pending.Add(n)
	}

	for pending.Cardinality() > 0 {
		placedAny := false
		for _, n := range pending.ToSlice() {
			if !canInsertNow(dest, n) {
				continue
			}
			fresh := &Node[T]{Id: n.Id, Content: n.Content, OriginLeft: n.OriginLeft, OriginRight: n.OriginRight}
			if err := dest.Integrate(fresh); err != nil {
				return err
			}
			pending.Remove(n)
			placedAny = true
		}
		if !placedAny {
			return crdt.NewError(crdt.MergeStall, crdt.NoId, "merge pass placed zero nodes; input is not causally consistent")
		}
	}

	return nil
}

func canInsertNow[T any](dest *Tree[T], n *Node[T]) bool {
	if dest.Version.Contains(n.Id) {
		return false
	}
	if n.Id.Seq > 0 {
		prior := crdt.Id{Agent: n.Id.Agent, Seq: n.Id.Seq - 1}
		if !dest.Version.Contains(prior) {
			return false
		}
	}
	if !n.OriginLeft.IsAbsent() && !dest.Version.Contains(n.OriginLeft) {
		return false
	}
	if !n.OriginRight.IsAbsent() && !dest.Version.Contains(n.OriginRight) {
		return false
	}
	return true
}
