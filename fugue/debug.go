package fugue

import "github.com/sanity-io/litter"

// Dump renders the tree's nodes, in ascending id order, for use in failed
// test assertions — the same role crdt.Document.Dump plays for the
// flat-array algorithms.
func (t *Tree[T]) Dump() string {
	type line struct {
		Id          string
		Content     T
		IsDeleted   bool
		OriginLeft  string
		OriginRight string
	}
	var lines []line
	t.idx.ascend(func(n *Node[T]) bool {
		lines = append(lines, line{
			Id:          n.Id.String(),
			Content:     n.Content,
			IsDeleted:   n.IsDeleted,
			OriginLeft:  n.OriginLeft.String(),
			OriginRight: n.OriginRight.String(),
		})
		return true
	})
	return litter.Sdump(lines)
}
