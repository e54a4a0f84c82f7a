package crdt

// markerSeqBit marks a synthetic id as belonging to a split marker rather
// than to a locally generated item. Every replica derives the identical
// marker id from the real parent's id it split, so markers never need
// their own agent/seq allocation or cross-document version tracking —
// they are content-absent tree-structure artifacts, recomputed locally
// whenever integration needs one rather than merged across documents.
const markerSeqBit = uint64(1) << 63

func splitMarkerId(parent Id) Id {
	return Id{Agent: parent.Agent, Seq: parent.Seq | markerSeqBit}
}

// integrateSync9 handles the before-anchor special case (split the parent,
// attach as one of its before-children) by locating or creating a split
// marker to anchor against, then orders the new item among its siblings —
// before- and after-children use different sibling sets, but both are
// resolved by the same agent-ordered scan below.
func (d *Document[T]) integrateSync9(it Item[T], hint int) error {
	expected := d.Version.NextSeq(it.Id.Agent)
	if it.Id.Seq != expected {
		return newErr(CausalGap, it.Id, "expected seq %d, got %d", expected, it.Id.Seq)
	}
	if !it.OriginLeft.IsAbsent() && !d.Version.Contains(it.OriginLeft) {
		return newErr(CausalGap, it.OriginLeft, "originLeft not yet integrated")
	}

	parentIdx, err := findById(d.Content, d.idx, it.OriginLeft, hint, idLookupOpts{atEnd: it.InsertAfter})
	if err != nil {
		return err
	}

	d.Version.Advance(it.Id)

	anchorIdx := parentIdx

	if !it.InsertAfter && parentIdx >= 0 && parentIdx < len(d.Content) && d.Content[parentIdx].Present {
		markerId := splitMarkerId(it.OriginLeft)
		if mi, ok := findByIdMaybe(d.Content, d.idx, markerId); ok {
			// An earlier concurrent before-sibling already split this
			// parent; attach alongside it rather than splitting again.
			// The marker's id is derived solely from the parent it split,
			// so every replica that has integrated a before-child of this
			// parent has created the identical marker — look it up by id
			// rather than assuming it still sits immediately to the
			// parent's left, since other siblings may since have been
			// spliced between them.
			anchorIdx = mi
		} else {
			parent := d.Content[parentIdx]
			marker := Item[T]{
				Id:          markerId,
				Present:     false,
				OriginLeft:  parent.OriginLeft,
				InsertAfter: parent.InsertAfter,
			}
			d.splice(parentIdx, marker)
			anchorIdx = parentIdx
		}
	}

	// Siblings attaching at the same point are ordered by agent ascending.
	// An item's anchor is its OriginLeft for an after-child, or the split
	// marker of its OriginLeft for a before-child. The scan passes over
	// items anchored further right (a sibling's descendants) and stops at
	// the first item anchored left of ours.
	anchorOf := func(o *Item[T], cursor int) (int, error) {
		if o.InsertAfter || o.OriginLeft.IsAbsent() {
			return findById(d.Content, d.idx, o.OriginLeft, cursor, idLookupOpts{atEnd: true})
		}
		return findById(d.Content, d.idx, splitMarkerId(o.OriginLeft), cursor, idLookupOpts{})
	}

	destIdx := anchorIdx + 1
	for cursor := anchorIdx + 1; cursor < len(d.Content); cursor++ {
		o := &d.Content[cursor]
		oanchorIdx, err := anchorOf(o, cursor)
		if err != nil {
			return err
		}
		if oanchorIdx < anchorIdx || (oanchorIdx == anchorIdx && it.Id.Agent < o.Id.Agent) {
			break
		}
		destIdx = cursor + 1
	}

	d.splice(destIdx, it)
	return nil
}
