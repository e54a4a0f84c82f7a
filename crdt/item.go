package crdt

// Item is a single element of a document's content array. The generic
// parameter T is the payload type; Present distinguishes "no content" (a
// Sync9 split marker) from a zero value of T.
type Item[T any] struct {
	// Id uniquely identifies this item.
	Id Id

	// Present is false for Sync9 split markers: zero-width anchors created
	// when a parent must be subdivided to accept a before-anchor child.
	// Present items with Present == false are skipped by every
	// visible-length / visible-position computation but otherwise behave
	// as ordinary items during traversal.
	Present bool
	Content T

	// OriginLeft is the id of the item this item's author observed
	// immediately to its left at generation time. NoId means "virtual
	// document start". Plays the role of "parent" in RGA vocabulary.
	OriginLeft Id

	// OriginRight is the id of the item this item's author observed
	// immediately to its right at generation time. NoId means "virtual
	// document end". Used by the Yjs family and by Fugue; unused by RGA.
	OriginRight Id

	// Seq is RGA/Automerge's Lamport-like counter: strictly greater than
	// every seq the author had observed at generation time. Unused by the
	// other kernels.
	Seq uint64

	// InsertAfter is Sync9-only: when the parent item has been split, does
	// this child attach to the parent's "after" anchor or its "before"
	// anchor?
	InsertAfter bool

	// IsDeleted is the local tombstone bit. Deleted items are never
	// removed from the content array; they are retained to preserve
	// causal references other items may hold to them.
	IsDeleted bool
}

// visible reports whether the item counts toward a document's visible
// sequence: present content that has not been deleted.
func (it *Item[T]) visible() bool {
	return it.Present && !it.IsDeleted
}

// WireItem is the language-independent wire shape for an Item. This
// package does not implement serialization itself; WireItem exists so a
// caller writing their own encoder has a concrete, documented shape to
// target, and so tests can round-trip an Item through it without
// inventing one ad hoc.
type WireItem[T any] struct {
	Agent            Agent  `json:"agent"`
	Seq              uint64 `json:"seq"`
	OriginLeftAgent  Agent  `json:"originLeftAgent,omitempty"`
	OriginLeftSeq    uint64 `json:"originLeftSeq,omitempty"`
	OriginRightAgent Agent  `json:"originRightAgent,omitempty"`
	OriginRightSeq   uint64 `json:"originRightSeq,omitempty"`
	ItemSeq          uint64 `json:"itemSeq,omitempty"`
	InsertAfter      bool   `json:"insertAfter,omitempty"`
	ContentPresent   bool   `json:"contentPresent"`
	Content          T      `json:"content,omitempty"`
}

// ToWire converts an Item to its wire shape.
func ToWire[T any](it Item[T]) WireItem[T] {
	w := WireItem[T]{
		Agent:          it.Id.Agent,
		Seq:            it.Id.Seq,
		ItemSeq:        it.Seq,
		InsertAfter:    it.InsertAfter,
		ContentPresent: it.Present,
	}
	if it.Present {
		w.Content = it.Content
	}
	if !it.OriginLeft.IsAbsent() {
		w.OriginLeftAgent, w.OriginLeftSeq = it.OriginLeft.Agent, it.OriginLeft.Seq
	}
	if !it.OriginRight.IsAbsent() {
		w.OriginRightAgent, w.OriginRightSeq = it.OriginRight.Agent, it.OriginRight.Seq
	}
	return w
}

// FromWire converts a wire item back to an Item. IsDeleted is always false:
// the wire shape carries no tombstone bit because delete-merge is out of
// scope (see the document-level Merge driver).
func FromWire[T any](w WireItem[T]) Item[T] {
	it := Item[T]{
		Id:          Id{Agent: w.Agent, Seq: w.Seq},
		Present:     w.ContentPresent,
		Seq:         w.ItemSeq,
		InsertAfter: w.InsertAfter,
	}
	if w.ContentPresent {
		it.Content = w.Content
	}
	if w.OriginLeftAgent != "" || w.OriginLeftSeq != 0 {
		it.OriginLeft = Id{Agent: w.OriginLeftAgent, Seq: w.OriginLeftSeq}
	}
	if w.OriginRightAgent != "" || w.OriginRightSeq != 0 {
		it.OriginRight = Id{Agent: w.OriginRightAgent, Seq: w.OriginRightSeq}
	}
	return it
}
