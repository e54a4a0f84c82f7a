package fugue

import "github.com/listcrdt/listcrdt/crdt"

// generateInsert builds the node a local insert at visible pos should
// produce, without integrating it — integration always goes through
// Tree.Integrate so every node, local or foreign, passes through the same
// placement logic.
func (t *Tree[T]) generateInsert(agent crdt.Agent, pos int, content T) (*Node[T], error) {
	id := crdt.Id{Agent: agent, Seq: t.Version.NextSeq(agent)}

	if pos < 0 || pos > t.Length() {
		return nil, crdt.NewError(crdt.PositionOutOfRange, crdt.NoId, "position %d exceeds visible length", pos)
	}

	var left, right *Node[T]
	if pos > 0 {
		left = nodeAtPosition(t.root, pos-1)
	}
	if pos < t.Length() {
		right = nodeAtPosition(t.root, pos)
	}

	n := &Node[T]{Id: id, Content: content}
	if left != nil {
		n.OriginLeft = left.Id
	}

	switch {
	case right == nil:
		// Inserting at the document's end: no right origin.
	case left != nil && isRightDescendant(right, left):
		// The visible right neighbor is reached from the left neighbor
		// purely through right-child links: this insert is continuing a
		// chain of right descendants, so its right origin is left
		// implicit (absent) rather than named.
	default:
		n.OriginRight = right.Id
	}

	return n, nil
}
