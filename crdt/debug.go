package crdt

import "github.com/sanity-io/litter"

// Dump renders the document's internal structure for use in failed test
// assertions, the way kevinxiao27-eg-walker's main.go configures litter for
// readable op-log dumps. It is not used by any non-test code path.
func (d *Document[T]) Dump() string {
	return litter.Sdump(struct {
		Algorithm Algorithm
		Content   []Item[T]
		Version   Version
		MaxSeq    uint64
	}{d.Algorithm, d.Content, d.Version, d.MaxSeq})
}
