package crdt

// Algorithm selects the integration kernel and local-insert generator a
// Document uses: a tagged variant dispatched with a switch on its value
// rather than through an interface hierarchy, since the four kernels share state
// and structure more than they differ.
type Algorithm int

const (
	YjsClassic Algorithm = iota
	YjsMod
	RGA
	Sync9
)

func (a Algorithm) String() string {
	switch a {
	case YjsClassic:
		return "YjsClassic"
	case YjsMod:
		return "YjsMod"
	case RGA:
		return "RGA"
	case Sync9:
		return "Sync9"
	default:
		return "Unknown"
	}
}

// Document is an ordered sequence of items shared by all four flat-array
// algorithms (the fifth, Fugue, is fugue.Tree — see the sibling package).
// Index 0 is the leftmost item. A Document is not safe for concurrent use;
// callers sharing one across goroutines must serialize access themselves.
type Document[T any] struct {
	Algorithm Algorithm

	// Content is the ordered list of items, index 0 = leftmost. Append-
	// and splice-only: an item, once integrated, is never removed nor
	// reordered.
	Content []Item[T]

	// Version is the per-agent last seq integrated.
	Version Version

	// MaxSeq is the maximum Item.Seq observed so far (RGA only).
	MaxSeq uint64

	idx *idIndex
}

// NewDocument creates an empty document that will use the given algorithm
// for every local insert and integration.
func NewDocument[T any](alg Algorithm) *Document[T] {
	return &Document[T]{
		Algorithm: alg,
		Version:   Version{},
		idx:       newIdIndex(),
	}
}

// Length returns the visible length: items with !IsDeleted && Present.
func (d *Document[T]) Length() int {
	return visibleLength(d.Content)
}

// GetArray returns the visible content in sequence order. The returned
// slice is a fresh copy; mutating it does not affect the document.
func (d *Document[T]) GetArray() []T {
	out := make([]T, 0, d.Length())
	for i := range d.Content {
		if d.Content[i].visible() {
			out = append(out, d.Content[i].Content)
		}
	}
	return out
}

// Snapshot returns the visible content together with the version vector
// that produced it, as one atomic read. This is sugar over GetArray +
// Version for a caller holding the document's mutex across both reads (see
// Document); it changes nothing about what the two
// underlying calls already return.
func (d *Document[T]) Snapshot() ([]T, Version) {
	return d.GetArray(), d.Version.Clone()
}

// splice inserts it at content-array index at, fixing up the id index to
// match.
func (d *Document[T]) splice(at int, it Item[T]) {
	d.Content = append(d.Content, Item[T]{})
	copy(d.Content[at+1:], d.Content[at:])
	d.Content[at] = it
	d.idx.shiftFrom(at, 1)
	d.idx.set(it.Id, at)
	if it.Seq > d.MaxSeq {
		d.MaxSeq = it.Seq
	}
}

// boundaryIndex resolves an origin id (possibly absent) to a content-array
// index via the hinted lookup, using the caller's hint as given.
func (d *Document[T]) boundaryIndex(id Id, hint int, opts idLookupOpts) (int, error) {
	return findById(d.Content, d.idx, id, hint, opts)
}

// prelude runs the checks and bookkeeping every integration kernel shares:
// validate id.Seq == version[id.Agent]+1 (fail on gap or replay), locate
// the left boundary from originLeft (index -1 if absent), and return it.
// Callers that use originRight resolve it themselves. Sync9 does not call
// prelude; its kernel runs its own checks.
func (d *Document[T]) prelude(it Item[T]) (leftIdx int, err error) {
	expected := d.Version.NextSeq(it.Id.Agent)
	if it.Id.Seq != expected {
		return 0, newErr(CausalGap, it.Id, "expected seq %d, got %d", expected, it.Id.Seq)
	}
	if !it.OriginLeft.IsAbsent() && !d.Version.Contains(it.OriginLeft) {
		return 0, newErr(CausalGap, it.OriginLeft, "originLeft not yet integrated")
	}
	if !it.OriginRight.IsAbsent() && !d.Version.Contains(it.OriginRight) {
		return 0, newErr(CausalGap, it.OriginRight, "originRight not yet integrated")
	}
	leftIdx, err = d.boundaryIndex(it.OriginLeft, len(d.Content), idLookupOpts{})
	if err != nil {
		return 0, err
	}
	return leftIdx, nil
}

// Integrate admits a foreign (or freshly generated local) item into the
// document, dispatching to the algorithm's integration kernel. hint biases
// the id lookups used to resolve origins; pass -1 (or any stale guess) if
// the caller has none — the fallback window scan and linear scan still
// guarantee correctness.
func (d *Document[T]) Integrate(it Item[T], hint int) error {
	switch d.Algorithm {
	case YjsClassic:
		return d.integrateYjs(it, hint, false)
	case YjsMod:
		return d.integrateYjs(it, hint, true)
	case RGA:
		return d.integrateRGA(it, hint)
	case Sync9:
		return d.integrateSync9(it, hint)
	default:
		return newErr(UnsupportedOp, it.Id, "unknown algorithm %v", d.Algorithm)
	}
}

// LocalInsert inserts content at visible position pos as agent, generating
// the item with the algorithm-appropriate origin fields and integrating it.
func (d *Document[T]) LocalInsert(agent Agent, pos int, content T) (Id, error) {
	it, hint, err := d.generateInsert(agent, pos, content)
	if err != nil {
		return NoId, err
	}
	if err := d.Integrate(it, hint); err != nil {
		return NoId, err
	}
	return it.Id, nil
}

// LocalDelete marks the item at visible position pos deleted. Items are
// never removed from the content array.
func (d *Document[T]) LocalDelete(agent Agent, pos int) error {
	idx, err := findByPos(d.Content, pos, false)
	if err != nil {
		return err
	}
	if idx >= len(d.Content) || !d.Content[idx].visible() {
		return newErr(PositionOutOfRange, NoId, "no visible item at position %d", pos)
	}
	d.Content[idx].IsDeleted = true
	return nil
}
