package crdt

// generateInsert builds the Item a local insert at visible pos should
// produce, setting origin fields per the document's algorithm, but does
// not integrate it — integration always goes through Document.Integrate so
// every item, local or remote, passes through the same kernel. It returns
// a hint for where the new item's boundaries were found, so the caller's
// subsequent Integrate call can reuse the locality.
func (d *Document[T]) generateInsert(agent Agent, pos int, content T) (Item[T], int, error) {
	id := Id{Agent: agent, Seq: d.Version.NextSeq(agent)}

	switch d.Algorithm {
	case YjsClassic, YjsMod, RGA:
		return d.generateYjsFamily(id, pos, content)
	case Sync9:
		return d.generateSync9(id, pos, content)
	default:
		return Item[T]{}, 0, newErr(UnsupportedOp, id, "unknown algorithm %v", d.Algorithm)
	}
}

// visibleNeighbors finds the ids of the visible items immediately
// around content-array index at (the index a new item would be spliced at
// if nothing needed to scan forward). leftAt is the array index of the
// left neighbor (or -1), rightAt is the index of the right neighbor (or
// len(content)).
func (d *Document[T]) visibleNeighbors(at int) (leftId Id, leftAt int, rightId Id, rightAt int) {
	leftAt, rightAt = -1, len(d.Content)
	for i := at - 1; i >= 0; i-- {
		if d.Content[i].visible() {
			leftAt = i
			leftId = d.Content[i].Id
			break
		}
	}
	for i := at; i < len(d.Content); i++ {
		if d.Content[i].visible() {
			rightAt = i
			rightId = d.Content[i].Id
			break
		}
	}
	return
}

// generateYjsFamily sets originLeft/Right to the visible neighbors around
// pos; RGA additionally stamps Seq = MaxSeq+1.
func (d *Document[T]) generateYjsFamily(id Id, pos int, content T) (Item[T], int, error) {
	at, err := findByPos(d.Content, pos, false)
	if err != nil {
		return Item[T]{}, 0, err
	}
	leftId, leftAt, rightId, _ := d.visibleNeighbors(at)

	it := Item[T]{
		Id:          id,
		Present:     true,
		Content:     content,
		OriginLeft:  leftId,
		OriginRight: rightId,
	}
	if d.Algorithm == RGA {
		it.Seq = d.MaxSeq + 1
	}
	hint := leftAt + 1
	if hint < 0 {
		hint = 0
	}
	return it, hint, nil
}

// generateSync9 derives the new item's anchor and insertAfter flag.
// Because pos already pins the exact visible slot the new item must
// occupy, walking forward across
// children of the same parent collapses to a direct read of the slot's
// neighbors: attaching as the after-child of the nearest preceding real
// item when inserting into a gap or at the end of the document, or as the
// before-child (triggering a split in the kernel) when inserting
// immediately before an existing item with real content.
func (d *Document[T]) generateSync9(id Id, pos int, content T) (Item[T], int, error) {
	at, err := findByPos(d.Content, pos, false)
	if err != nil {
		return Item[T]{}, 0, err
	}

	it := Item[T]{Id: id, Present: true, Content: content}

	if at < len(d.Content) && d.Content[at].Present {
		// Landing exactly on a real item: attach before it, at its
		// before-anchor. The kernel splits the parent to make room.
		it.OriginLeft = d.Content[at].Id
		it.InsertAfter = false
		return it, at, nil
	}

	// Landing past the end of the document, or on/after a split marker
	// with no real item following it at this slot: attach as the
	// after-child of the nearest preceding real item (or NoId for the
	// virtual document start).
	parentAt := -1
	for i := at - 1; i >= 0; i-- {
		if d.Content[i].Present {
			parentAt = i
			break
		}
	}
	if parentAt >= 0 {
		it.OriginLeft = d.Content[parentAt].Id
	}
	it.InsertAfter = true
	hint := parentAt + 1
	if hint < 0 {
		hint = 0
	}
	return it, hint, nil
}
