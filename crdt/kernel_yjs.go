package crdt

// integrateYjs implements the scan shared by YjsMod and upstream-compatible
// Yjs. Both variants share everything but the tie-break inside the
// oleft == left branch, which mod selects via the isMod flag.
func (d *Document[T]) integrateYjs(it Item[T], hint int, isMod bool) error {
	leftIdx, err := d.prelude(it)
	if err != nil {
		return err
	}

	rightIdx, err := d.boundaryIndex(it.OriginRight, hint, idLookupOpts{})
	if err != nil {
		return err
	}
	if it.OriginRight.IsAbsent() {
		rightIdx = len(d.Content)
	}

	destIdx := leftIdx + 1
	scanning := false

scan:
	for cursor := leftIdx + 1; cursor < rightIdx && cursor < len(d.Content); cursor++ {
		o := &d.Content[cursor]

		oleftIdx, err := d.boundaryIndex(o.OriginLeft, cursor, idLookupOpts{})
		if err != nil {
			return err
		}

		if oleftIdx < leftIdx {
			break scan
		}
		if oleftIdx > leftIdx {
			if !scanning {
				destIdx = cursor + 1
			}
			continue
		}

		orightIdx, err := d.boundaryIndex(o.OriginRight, cursor, idLookupOpts{})
		if err != nil {
			return err
		}
		if o.OriginRight.IsAbsent() {
			orightIdx = len(d.Content)
		}

		stop := false
		if isMod {
			switch {
			case orightIdx < rightIdx:
				scanning = true
			case orightIdx == rightIdx:
				if it.Id.Agent < o.Id.Agent {
					stop = true
				} else {
					scanning = false
				}
			default:
				scanning = false
			}
		} else {
			if it.Id.Agent > o.Id.Agent {
				scanning = false
			} else if orightIdx == rightIdx {
				stop = true
			} else {
				scanning = true
			}
		}
		if stop {
			break scan
		}

		if !scanning {
			destIdx = cursor + 1
		}
	}

	d.Version.Advance(it.Id)
	d.splice(destIdx, it)
	return nil
}
