package crdt

import "github.com/tidwall/btree"

// idIndex accelerates id -> content-array-index lookups beyond the bare
// caller-provided hint plus linear fallback (see lookup.go): an
// order-statistics tree standing in for the flat array on the lookup path
// only, leaving the document's visible order a flat slice.
//
// It is a thin wrapper over a tidwall/btree.BTreeG ordered by Id, carrying
// a PathHint so repeated lookups of ids inserted near each other stay
// cheap — the same locality trick the hinted lookup exploits at the array
// level.
type idIndex struct {
	tree *btree.BTreeG[idPos]
	hint btree.PathHint
}

type idPos struct {
	id  Id
	pos int
}

func lessId(a, b Id) bool {
	if a.Agent != b.Agent {
		return a.Agent < b.Agent
	}
	return a.Seq < b.Seq
}

func newIdIndex() *idIndex {
	return &idIndex{
		tree: btree.NewBTreeGOptions(func(a, b idPos) bool {
			return lessId(a.id, b.id)
		}, btree.Options{NoLocks: true, Degree: 32}),
	}
}

// set records that id currently lives at pos.
func (x *idIndex) set(id Id, pos int) {
	x.tree.SetHint(idPos{id: id, pos: pos}, &x.hint)
}

// get returns the recorded position for id, if any.
func (x *idIndex) get(id Id) (int, bool) {
	p, ok := x.tree.GetHint(idPos{id: id}, &x.hint)
	return p.pos, ok
}

// delete removes id from the index (used when an item is spliced out of
// its old position and reinserted, which this package never does post
// integration, but kept for completeness of the wrapper's contract).
func (x *idIndex) delete(id Id) {
	x.tree.Delete(idPos{id: id})
}

// shiftFrom bumps the recorded position of every indexed id whose position
// is >= from by delta. Called after a splice so the index stays consistent
// with the content array without a full rebuild.
func (x *idIndex) shiftFrom(from, delta int) {
	if delta == 0 {
		return
	}
	var toUpdate []idPos
	x.tree.Scan(func(p idPos) bool {
		if p.pos >= from {
			toUpdate = append(toUpdate, p)
		}
		return true
	})
	for _, p := range toUpdate {
		x.tree.Delete(p)
		p.pos += delta
		x.tree.Set(p)
	}
}

func (x *idIndex) len() int {
	return x.tree.Len()
}
