package fugue

import "github.com/listcrdt/listcrdt/crdt"

// Tree is Fugue's document: a binary tree rooted at an unexported virtual
// node whose right children are the document's top-level items. Its
// public contract mirrors crdt.Document so a caller can swap algorithms
// without otherwise changing how it drives a document.
type Tree[T any] struct {
	Version crdt.Version

	root *Node[T]
	idx  *nodeIndex[T]

	// log records nodes in the order they were integrated, which is
	// always a causally consistent order (Integrate refuses a node until
	// its dependencies are already in Version) — exactly what Save needs
	// to hand Load without recomputing a topological sort.
	log []*Node[T]
}

// NewTree creates an empty Fugue document.
func NewTree[T any]() *Tree[T] {
	return &Tree[T]{
		Version: crdt.Version{},
		root:    &Node[T]{IsDeleted: true},
		idx:     newNodeIndex[T](),
	}
}

// Length returns the number of visible (non-deleted) nodes.
func (t *Tree[T]) Length() int {
	return t.root.visibleSize
}

// GetArray returns the visible content in in-order (document) order. The
// returned slice is a fresh copy.
func (t *Tree[T]) GetArray() []T {
	out := make([]T, 0, t.Length())
	var walk func(n *Node[T])
	walk = func(n *Node[T]) {
		if n == nil {
			return
		}
		for _, l := range n.leftChildren {
			walk(l)
		}
		if n.visible() {
			out = append(out, n.Content)
		}
		for _, r := range n.rightChildren {
			walk(r)
		}
	}
	for _, r := range t.root.rightChildren {
		walk(r)
	}
	return out
}

// Snapshot returns the visible content together with the version vector
// that produced it, as one atomic read (mirrors crdt.Document.Snapshot).
func (t *Tree[T]) Snapshot() ([]T, crdt.Version) {
	return t.GetArray(), t.Version.Clone()
}

// lookup resolves id to its node, or to the virtual root for the absent
// id. A non-absent id that is not found is the caller's bug — every
// origin referenced by an integrated node is guaranteed present.
func (t *Tree[T]) lookup(id crdt.Id) (*Node[T], error) {
	if id.IsAbsent() {
		return t.root, nil
	}
	n, ok := t.idx.get(id)
	if !ok {
		return nil, crdt.NewError(crdt.NotFound, id, "id not present in tree")
	}
	return n, nil
}

// position returns the number of visible nodes strictly before n in
// document order, by climbing from n to the root, adding the visible size
// of every subtree known to precede n at each level. Subtree-size caching
// keeps each level's work proportional to the sibling count at that level
// rather than to the whole tree.
func position[T any](n *Node[T]) int {
	count := 0
	for _, l := range n.leftChildren {
		count += l.visibleSize
	}
	for cur := n; cur.parent != nil; cur = cur.parent {
		p := cur.parent
		if cur.side == sideLeft {
			for _, sib := range p.leftChildren {
				if sib == cur {
					break
				}
				count += sib.visibleSize
			}
			continue
		}
		for _, l := range p.leftChildren {
			count += l.visibleSize
		}
		if p.visible() {
			count++
		}
		for _, sib := range p.rightChildren {
			if sib == cur {
				break
			}
			count += sib.visibleSize
		}
	}
	return count
}

// nodeAtPosition returns the node occupying visible position idx within
// n's subtree (idx is 0-based, counting only visible nodes), or nil if
// idx is out of range for this subtree.
func nodeAtPosition[T any](n *Node[T], idx int) *Node[T] {
	for _, l := range n.leftChildren {
		if idx < l.visibleSize {
			return nodeAtPosition(l, idx)
		}
		idx -= l.visibleSize
	}
	if n.visible() {
		if idx == 0 {
			return n
		}
		idx--
	}
	for _, r := range n.rightChildren {
		if idx < r.visibleSize {
			return nodeAtPosition(r, idx)
		}
		idx -= r.visibleSize
	}
	return nil
}

// bumpVisibleSize adjusts n and every ancestor's cached visible-node count
// by delta.
func bumpVisibleSize[T any](n *Node[T], delta int) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.visibleSize += delta
	}
}

// parentAndSide implements the tree-placement rule of the Fugue
// integration kernel: a new node becomes a left child of its originRight
// node when that node's own originLeft matches the new node's originLeft
// (both were generated relative to the same left neighbor, so the later
// one nests under the earlier rather than displacing it); otherwise it
// becomes a right child of its originLeft node (the absent id resolving
// to the virtual root).
func (t *Tree[T]) parentAndSide(originLeft, originRight crdt.Id) (*Node[T], side, error) {
	if !originRight.IsAbsent() {
		orNode, err := t.lookup(originRight)
		if err != nil {
			return nil, 0, err
		}
		if orNode.OriginLeft == originLeft {
			return orNode, sideLeft, nil
		}
	}
	olNode, err := t.lookup(originLeft)
	if err != nil {
		return nil, 0, err
	}
	return olNode, sideRight, nil
}

// insertSorted inserts n into the side-appropriate sibling slice of
// parent, keeping it ordered by the Fugue sibling comparators, and wires
// up n's parent/side fields.
func (t *Tree[T]) insertSorted(parent *Node[T], sd side, n *Node[T]) {
	n.parent = parent
	n.side = sd
	if sd == sideLeft {
		parent.leftChildren = insertAt(parent.leftChildren, n, t.lessLeftSibling)
	} else {
		parent.rightChildren = insertAt(parent.rightChildren, n, t.lessRightSibling)
	}
}

// lessLeftSibling orders left children by agent descending: a higher
// agent id sorts first, i.e. nearer the parent's left boundary.
func (t *Tree[T]) lessLeftSibling(a, b *Node[T]) bool {
	return a.Id.Agent > b.Id.Agent
}

// lessRightSibling orders right children by their own originRight's
// current document position, descending (the sibling whose originRight
// reaches furthest into the document sorts first), ties broken by agent
// descending. A node whose originRight is absent is treated as pointing
// past the document's end, so it sorts before every sibling with a
// concrete originRight.
func (t *Tree[T]) lessRightSibling(a, b *Node[T]) bool {
	pa, aAbsent := t.rightOriginPosition(a)
	pb, bAbsent := t.rightOriginPosition(b)
	switch {
	case aAbsent && bAbsent:
		return a.Id.Agent > b.Id.Agent
	case aAbsent:
		return true
	case bAbsent:
		return false
	case pa != pb:
		return pa > pb
	default:
		return a.Id.Agent > b.Id.Agent
	}
}

func (t *Tree[T]) rightOriginPosition(n *Node[T]) (pos int, absent bool) {
	if n.OriginRight.IsAbsent() {
		return 0, true
	}
	orNode, ok := t.idx.get(n.OriginRight)
	if !ok {
		return 0, true
	}
	return position(orNode), false
}

// insertAt inserts n into a slice already sorted by less, returning the
// new slice.
func insertAt[T any](s []*Node[T], n *Node[T], less func(a, b *Node[T]) bool) []*Node[T] {
	i := 0
	for i < len(s) && less(s[i], n) {
		i++
	}
	s = append(s, nil)
	copy(s[i+1:], s[i:])
	s[i] = n
	return s
}

// Integrate admits a node (foreign or freshly generated locally) into the
// tree.
func (t *Tree[T]) Integrate(n *Node[T]) error {
	expected := t.Version.NextSeq(n.Id.Agent)
	if n.Id.Seq != expected {
		return crdt.NewError(crdt.CausalGap, n.Id, "expected seq %d, got %d", expected, n.Id.Seq)
	}
	if !n.OriginLeft.IsAbsent() && !t.Version.Contains(n.OriginLeft) {
		return crdt.NewError(crdt.CausalGap, n.OriginLeft, "originLeft not yet integrated")
	}
	if !n.OriginRight.IsAbsent() && !t.Version.Contains(n.OriginRight) {
		return crdt.NewError(crdt.CausalGap, n.OriginRight, "originRight not yet integrated")
	}

	parent, sd, err := t.parentAndSide(n.OriginLeft, n.OriginRight)
	if err != nil {
		return err
	}

	t.Version.Advance(n.Id)
	n.visibleSize = 1
	t.insertSorted(parent, sd, n)
	t.idx.set(n.Id, n)
	bumpVisibleSize(parent, 1)
	t.log = append(t.log, n)
	return nil
}

// LocalInsert inserts content at visible position pos as agent.
func (t *Tree[T]) LocalInsert(agent crdt.Agent, pos int, content T) (crdt.Id, error) {
	n, err := t.generateInsert(agent, pos, content)
	if err != nil {
		return crdt.NoId, err
	}
	if err := t.Integrate(n); err != nil {
		return crdt.NoId, err
	}
	return n.Id, nil
}

// LocalDelete marks the node at visible position pos deleted. Nodes are
// never removed from the tree: their subtree may still anchor other
// nodes' parent/side placement.
func (t *Tree[T]) LocalDelete(agent crdt.Agent, pos int) error {
	n := nodeAtPosition(t.root, pos)
	if n == nil {
		return crdt.NewError(crdt.PositionOutOfRange, crdt.NoId, "no visible item at position %d", pos)
	}
	n.IsDeleted = true
	bumpVisibleSize(n, -1)
	return nil
}
