package crdt

import (
	"fmt"
)

// ErrKind classifies a CrdtError. Every kind is fatal: none is retried
// internally, and all are meant to be surfaced to the caller with enough
// context to identify the offending item.
type ErrKind int

const (
	// CausalGap: a local insert skipped a seq, or an origin was claimed to
	// be present but is not in the version.
	CausalGap ErrKind = iota
	// NotFound: an id lookup failed for a non-absent id.
	NotFound
	// PositionOutOfRange: a visible position exceeded the document length.
	PositionOutOfRange
	// MergeStall: a merge pass placed zero items — the input was not
	// causally consistent.
	MergeStall
	// UnsupportedOp: an operation this package declares out of scope, e.g.
	// merging a delete across documents.
	UnsupportedOp
)

func (k ErrKind) String() string {
	switch k {
	case CausalGap:
		return "CausalGap"
	case NotFound:
		return "NotFound"
	case PositionOutOfRange:
		return "PositionOutOfRange"
	case MergeStall:
		return "MergeStall"
	case UnsupportedOp:
		return "UnsupportedOp"
	default:
		return "Unknown"
	}
}

// CrdtError is the concrete error type returned by every fallible operation
// in this package. Id is the offending item's id when known (NoId
// otherwise).
type CrdtError struct {
	Kind ErrKind
	Id   Id
	msg  string
}

func (e *CrdtError) Error() string {
	if e.Id.IsAbsent() {
		return fmt.Sprintf("%s: %s", e.Kind, e.msg)
	}
	return fmt.Sprintf("%s: %s (id=%s)", e.Kind, e.msg, e.Id)
}

func newErr(kind ErrKind, id Id, format string, args ...any) *CrdtError {
	return &CrdtError{Kind: kind, Id: id, msg: fmt.Sprintf(format, args...)}
}

// NewError is newErr exported for the fugue package, which shares this
// package's error taxonomy (see its package doc) rather than inventing its
// own CausalGap/NotFound/PositionOutOfRange/MergeStall/UnsupportedOp set.
func NewError(kind ErrKind, id Id, format string, args ...any) *CrdtError {
	return newErr(kind, id, format, args...)
}

// sentinel errors so callers can errors.Is against a kind without caring
// about the message or offending id.
var (
	ErrCausalGap          = &CrdtError{Kind: CausalGap, msg: "causal gap"}
	ErrNotFound           = &CrdtError{Kind: NotFound, msg: "not found"}
	ErrPositionOutOfRange = &CrdtError{Kind: PositionOutOfRange, msg: "position out of range"}
	ErrMergeStall         = &CrdtError{Kind: MergeStall, msg: "merge stalled"}
	ErrUnsupportedOp      = &CrdtError{Kind: UnsupportedOp, msg: "unsupported op"}
)

// Is makes CrdtError support errors.Is comparisons by Kind alone, so
// errors.Is(err, crdt.ErrNotFound) matches any CrdtError of that kind
// regardless of its specific message or id.
func (e *CrdtError) Is(target error) bool {
	t, ok := target.(*CrdtError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
