package crdt

import mapset "github.com/deckarep/golang-set/v2"

// MergeInto imports every item from src that dest does not yet have,
// admitting each once its causal dependencies are satisfied. It is
// deterministic given its input, and the final sequence is independent of
// the order concurrent foreign items are offered to the integration
// kernel, as long as each item's dependencies are already in place when
// integrated — that invariant is exactly what canInsertNow enforces below.
func MergeInto[T any](dest, src *Document[T]) error {
	if dest.Algorithm != src.Algorithm {
		return newErr(UnsupportedOp, NoId, "cannot merge %v into %v", src.Algorithm, dest.Algorithm)
	}

	pendingIdx := mapset.NewSet[int]()
	for i := range src.Content {
		it := src.Content[i]
		if !it.Present {
			// Tree-structure artifacts of src (Sync9 split markers); the
			// destination recomputes its own when and if it needs them.
			continue
		}
		if dest.Version.Contains(it.Id) {
			if it.IsDeleted {
				// dest has the item but maybe not its delete; skipping it
				// would drop that delete silently.
				di, err := findById(dest.Content, dest.idx, it.Id, i, idLookupOpts{})
				if err != nil || !dest.Content[di].IsDeleted {
					return newErr(UnsupportedOp, it.Id, "merging a deleted item is not supported")
				}
			}
			continue
		}
		if it.IsDeleted {
			// Importing this as a live insert would silently resurrect a
			// delete the source already applied, so reject instead:
			// delete-merge is not supported by this driver.
			return newErr(UnsupportedOp, it.Id, "merging a deleted item is not supported")
		}
		pendingIdx.Add(i)
	}

	for pendingIdx.Cardinality() > 0 {
		placedAny := false
		for _, i := range pendingIdx.ToSlice() {
			it := src.Content[i]
			if !canInsertNow(dest, it) {
				continue
			}
			if err := dest.Integrate(it, -1); err != nil {
				return err
			}
			pendingIdx.Remove(i)
			placedAny = true
		}
		if !placedAny {
			return newErr(MergeStall, NoId, "merge pass placed zero items; input is not causally consistent")
		}
	}

	return nil
}

// canInsertNow is the readiness predicate for admitting a pending item:
// its own id is not yet integrated, its agent's prior seq (if any) already
// is, and both origins (if present) already are.
func canInsertNow[T any](dest *Document[T], it Item[T]) bool {
	if dest.Version.Contains(it.Id) {
		return false
	}
	if it.Id.Seq > 0 {
		prior := Id{Agent: it.Id.Agent, Seq: it.Id.Seq - 1}
		if !dest.Version.Contains(prior) {
			return false
		}
	}
	if !it.OriginLeft.IsAbsent() && !dest.Version.Contains(it.OriginLeft) {
		return false
	}
	if !it.OriginRight.IsAbsent() && !dest.Version.Contains(it.OriginRight) {
		return false
	}
	return true
}
