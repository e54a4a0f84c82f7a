package fugue

import "github.com/listcrdt/listcrdt/crdt"

// WireNode is the language-independent wire shape for a saved node,
// mirroring crdt.WireItem's role for the flat-array algorithms. Save/Load
// do not attempt compression or delta encoding; they exist so a caller has
// a concrete causal-order exchange format to serialize however it likes.
type WireNode[T any] struct {
	Agent            crdt.Agent `json:"agent"`
	Seq              uint64     `json:"seq"`
	OriginLeftAgent  crdt.Agent `json:"originLeftAgent,omitempty"`
	OriginLeftSeq    uint64     `json:"originLeftSeq,omitempty"`
	OriginRightAgent crdt.Agent `json:"originRightAgent,omitempty"`
	OriginRightSeq   uint64     `json:"originRightSeq,omitempty"`
	IsDeleted        bool       `json:"isDeleted,omitempty"`
	Content          T          `json:"content"`
}

// Save exports every node in the order it was integrated. That order is
// always causally consistent (Integrate refuses a node until its
// dependencies are already present), which is exactly what Load needs:
// by the time Load reaches a node, everything its sibling-ordering
// comparators might dereference (its own originRight included) is already
// in the tree being rebuilt.
func (t *Tree[T]) Save() []WireNode[T] {
	out := make([]WireNode[T], 0, len(t.log))
	for _, n := range t.log {
		w := WireNode[T]{Agent: n.Id.Agent, Seq: n.Id.Seq, IsDeleted: n.IsDeleted, Content: n.Content}
		if !n.OriginLeft.IsAbsent() {
			w.OriginLeftAgent, w.OriginLeftSeq = n.OriginLeft.Agent, n.OriginLeft.Seq
		}
		if !n.OriginRight.IsAbsent() {
			w.OriginRightAgent, w.OriginRightSeq = n.OriginRight.Agent, n.OriginRight.Seq
		}
		out = append(out, w)
	}
	return out
}

// Load rebuilds a tree from a causal-order wire export. Nodes must arrive
// in the same causally consistent order Save produces (or any order
// satisfying the same property); Load does not re-sort its input.
func Load[T any](nodes []WireNode[T]) (*Tree[T], error) {
	t := NewTree[T]()
	for _, w := range nodes {
		n := &Node[T]{
			Id:      crdt.Id{Agent: w.Agent, Seq: w.Seq},
			Content: w.Content,
		}
		if w.OriginLeftAgent != "" || w.OriginLeftSeq != 0 {
			n.OriginLeft = crdt.Id{Agent: w.OriginLeftAgent, Seq: w.OriginLeftSeq}
		}
		if w.OriginRightAgent != "" || w.OriginRightSeq != 0 {
			n.OriginRight = crdt.Id{Agent: w.OriginRightAgent, Seq: w.OriginRightSeq}
		}
		if err := t.Integrate(n); err != nil {
			return nil, err
		}
		n.IsDeleted = w.IsDeleted
		if w.IsDeleted {
			bumpVisibleSize(n, -1)
		}
	}
	return t, nil
}
