// Package dag defines the abstract boundary between the revset algebra
// engine and the DAG/IdMap services it is built on top of, plus one
// concrete in-memory implementation of that boundary used by tests and the
// command-line inspector.
package dag

import (
	"github.com/ledgerwatch/revgraph/common"
)

// RevId and Hash20 are re-exported so callers of this package rarely need
// to import common directly.
type RevId = common.RevId
type Hash20 = common.Hash20
type Direction = common.Direction

// Hint is the direction metadata a DagSet may carry, consulted by NameSet to
// implement FastAsc/FastDesc without sorting.
type Hint int

const (
	// HintNone means the set carries no direction metadata.
	HintNone Hint = iota
	HintAsc
	HintDesc
)

// DagSet is the DAG-native hash-keyed set NameSet wraps. It is intentionally
// narrow: everything beyond membership, iteration, and the few combinators
// below belongs in the revset package, not here.
type DagSet interface {
	Hint() Hint
	Len() int
	SizeHint() (int, bool)
	ContainsHash(h Hash20) bool
	Iter() HashIterator
	RevIter() HashIterator
	FirstHash() (Hash20, bool)
	LastHash() (Hash20, bool)

	Union(other DagSet) DagSet
	Intersect(other DagSet) DagSet
	Difference(other DagSet) DagSet

	// SkipTake returns the sub-sequence starting after skip elements and
	// containing at most take of them, in the set's natural (hinted)
	// order.
	SkipTake(skip, take int) DagSet
}

// HashIterator yields commit hashes.
type HashIterator interface {
	Next() bool
	Hash() Hash20
}

// DagBackend is the abstract collaborator the core algebra calls into. No
// byte-exact format is mandated; MemBackend (in memory.go) is one concrete
// implementation.
type DagBackend interface {
	// AllIds returns the DagSet covering every valid, non-sentinel
	// revision currently known to the backend.
	AllIds() DagSet

	// Sort returns a DagSet with the same members as in, but carrying a
	// direction hint matching asc.
	Sort(in DagSet, asc bool) DagSet

	// SpansRange returns the DagSet of hashes whose assigned revision
	// falls in [lo, hi], in the requested direction.
	SpansRange(lo, hi RevId, asc bool) DagSet

	// SortByTopology returns a DagSet ordered by DAG topology (parents
	// before children) rather than by revision number. No type in the
	// revset package calls it.
	SortByTopology(in DagSet) DagSet

	Len() int
}
