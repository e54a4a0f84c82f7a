package fugue

import (
	"github.com/listcrdt/listcrdt/crdt"
	"github.com/tidwall/btree"
)

// nodeIndex is the id -> *Node lookup every kernel needs to resolve
// originLeft/originRight, backed by the same tidwall/btree.BTreeG the
// crdt package's idindex.go uses for its content-array index — here
// ordered by id rather than array position, since Fugue has no array
// position to order by. The ordering is incidental to lookup (a plain map
// would serve that); it earns its keep in Dump, which renders nodes in a
// stable (agent, seq) order rather than map iteration order.
type nodeIndex[T any] struct {
	tree *btree.BTreeG[nodeEntry[T]]
	hint btree.PathHint
}

type nodeEntry[T any] struct {
	id   crdt.Id
	node *Node[T]
}

func lessId(a, b crdt.Id) bool {
	if a.Agent != b.Agent {
		return a.Agent < b.Agent
	}
	return a.Seq < b.Seq
}

func newNodeIndex[T any]() *nodeIndex[T] {
	return &nodeIndex[T]{
		tree: btree.NewBTreeGOptions(func(a, b nodeEntry[T]) bool {
			return lessId(a.id, b.id)
		}, btree.Options{NoLocks: true, Degree: 32}),
	}
}

func (x *nodeIndex[T]) set(id crdt.Id, n *Node[T]) {
	x.tree.SetHint(nodeEntry[T]{id: id, node: n}, &x.hint)
}

func (x *nodeIndex[T]) get(id crdt.Id) (*Node[T], bool) {
	e, ok := x.tree.GetHint(nodeEntry[T]{id: id}, &x.hint)
	return e.node, ok
}

func (x *nodeIndex[T]) len() int {
	return x.tree.Len()
}

// ascend calls fn for every entry in ascending (agent, seq) order, stopping
// early if fn returns false.
func (x *nodeIndex[T]) ascend(fn func(*Node[T]) bool) {
	x.tree.Scan(func(e nodeEntry[T]) bool {
		return fn(e.node)
	})
}
