package crdt

// findByPos translates a user-visible position into a content-array index.
// It walks left-to-right, skipping items that are deleted or whose content
// is absent, decrementing a counter, and lands on the visible item at pos.
// With stickToEnd set, a position that lies exactly at a boundary adjacent
// to absent/deleted items lands on the first such index rather than
// skipping past it.
//
// Fails with PositionOutOfRange if pos exceeds the visible length (+1 for
// the one-past-the-end insertion position local inserts are allowed to
// target).
func findByPos[T any](content []Item[T], pos int, stickToEnd bool) (int, error) {
	if pos < 0 {
		return 0, newErr(PositionOutOfRange, NoId, "negative position %d", pos)
	}
	remaining := pos
	for i := 0; i < len(content); i++ {
		if remaining == 0 && stickToEnd {
			// Stop at the boundary itself, so a split marker sitting
			// exactly at the insertion point is the landing index.
			return i, nil
		}
		if !content[i].visible() {
			continue
		}
		if remaining == 0 {
			return i, nil
		}
		remaining--
	}
	if remaining == 0 {
		return len(content), nil
	}
	return 0, newErr(PositionOutOfRange, NoId, "position %d exceeds visible length", pos)
}

// idLookupOpts configures findById's atEnd behavior.
type idLookupOpts struct {
	// atEnd requires the matching item to have non-absent content,
	// treating Sync9 split markers as non-matches. Used when resolving a
	// Sync9 "after-anchor" target, which must land on real content.
	atEnd bool
}

// findById returns the content-array index of the item with the given id,
// using hint as a starting guess, via a three-tier composition: (1) exact
// hint match, (2) a small window around the hint, (3) linear scan
// fallback. When idx is available it is consulted between (2) and (3).
//
// The absent id resolves to the sentinel index -1 ("before position 0")
// without consulting content at all. A non-absent id that cannot be found
// is a fatal NotFound error: every origin referenced by a present item is
// guaranteed by the data-model invariants to be present too.
func findById[T any](content []Item[T], idx *idIndex, id Id, hint int, opts idLookupOpts) (int, error) {
	if id.IsAbsent() {
		return -1, nil
	}

	matches := func(i int) bool {
		if i < 0 || i >= len(content) {
			return false
		}
		it := &content[i]
		if it.Id != id {
			return false
		}
		if opts.atEnd && !it.Present {
			return false
		}
		return true
	}

	if matches(hint) {
		return hint, nil
	}

	const window = 8
	lo, hi := hint-window, hint+window+1
	if lo < 0 {
		lo = 0
	}
	if hi > len(content) {
		hi = len(content)
	}
	for i := lo; i < hi; i++ {
		if matches(i) {
			return i, nil
		}
	}

	if idx != nil {
		if p, ok := idx.get(id); ok && matches(p) {
			return p, nil
		}
	}

	for i := 0; i < len(content); i++ {
		if matches(i) {
			return i, nil
		}
	}

	return 0, newErr(NotFound, id, "id not present in document")
}

// findByIdMaybe is findById without the NotFound error: ok reports whether
// id is present in content at all. Used by callers for whom "not integrated
// yet" is an expected, non-fatal outcome (e.g. Sync9's split-marker reuse
// check), as opposed to findById's callers, for whom a missing origin is
// always a data-model violation.
func findByIdMaybe[T any](content []Item[T], idx *idIndex, id Id) (int, bool) {
	i, err := findById(content, idx, id, len(content), idLookupOpts{})
	if err != nil {
		return 0, false
	}
	return i, true
}

// visibleLength counts items with Present && !IsDeleted.
func visibleLength[T any](content []Item[T]) int {
	n := 0
	for i := range content {
		if content[i].visible() {
			n++
		}
	}
	return n
}
