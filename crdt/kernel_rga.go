package crdt

// integrateRGA scans only by OriginLeft (the "parent"); OriginRight plays
// no role. Concurrent siblings — items sharing the same parent — are
// ordered by Seq descending, then by Agent ascending.
func (d *Document[T]) integrateRGA(it Item[T], hint int) error {
	leftIdx, err := d.prelude(it)
	if err != nil {
		return err
	}

	destIdx := leftIdx + 1

	for cursor := leftIdx + 1; cursor < len(d.Content); cursor++ {
		o := &d.Content[cursor]

		// Optimization: a strictly greater seq already decides "stop" in
		// our favor without needing the parent lookup at all.
		if it.Seq > o.Seq {
			break
		}

		oparentIdx, err := d.boundaryIndex(o.OriginLeft, cursor, idLookupOpts{})
		if err != nil {
			return err
		}

		if oparentIdx < leftIdx {
			break
		}
		if oparentIdx > leftIdx {
			destIdx = cursor + 1
			continue
		}

		// Concurrent siblings: seq descending, then agent ascending.
		if it.Seq == o.Seq && it.Id.Agent < o.Id.Agent {
			break
		}
		destIdx = cursor + 1
	}

	d.Version.Advance(it.Id)
	d.splice(destIdx, it)
	return nil
}
