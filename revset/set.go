// Package revset implements the revision-set algebra engine: the data
// structures, ordering contracts, laziness model, and set-algebra semantics
// used to represent, combine, and iterate sets of commits drawn from an
// append-only commit DAG.
//
// Consumers build sets with the factory functions (Baseset, IdsetRange,
// NamesetFromDag, Spanset, Fullreposet, Generatorset) and combine them with
// Intersect, Union, Subtract, Filter, Sort, Reverse, and Slice. Evaluation is
// pull-based: nothing is materialised until the caller iterates, and every
// combinator looks for a fast path before falling back to a generic one.
package revset

import (
	"context"

	"github.com/ledgerwatch/revgraph/common"
)

// RevId is an alias of common.RevId so callers of this package rarely need
// to import common directly.
type RevId = common.RevId

// Direction is an alias of common.Direction.
type Direction = common.Direction

const (
	Unspecified = common.Unspecified
	Ascending   = common.Ascending
	Descending  = common.Descending
)

// RevIterator yields revision ids one at a time. Next returns false once
// exhausted; callers must not call Rev after that.
type RevIterator interface {
	Next() bool
	Rev() RevId
}

// CommitCtx is a commit context as handed back by IterCtx: a revision id
// plus whatever prefetch fields have been populated on it so far.
type CommitCtx struct {
	Rev    RevId
	Fields map[string]interface{}
}

// CtxIterator yields commit contexts, routed through any prefetch pipelines
// the originating set carries.
type CtxIterator interface {
	Next() bool
	Ctx() *CommitCtx
	Err() error
}

// FilterFunc is a predicate over a revision id. Filter predicates are
// assumed total over RevId; FilteredSet does not trap panics they raise.
type FilterFunc func(RevId) bool

// FilterRepr describes how a predicate should be evaluated and cached.
type FilterRepr struct {
	// Name identifies the predicate for diagnostics and progress messages.
	Name string
	// Cacheable predicates are wrapped in an unbounded memoising cache.
	// Builtin predicates (equivalent: implemented in the DAG/bitmap layer)
	// skip the cache because re-evaluating them is already O(1).
	Cacheable bool
	Builtin   bool
}

// RevSet is the contract every set representation satisfies (SetTrait in
// the design). Combinators return new RevSet values; sets are immutable
// from the consumer's perspective.
type RevSet interface {
	// Contains is total and never depends on iteration state.
	Contains(rev RevId) bool

	// Iter returns an iterator that respects the set's current direction.
	Iter() RevIterator

	// FastAsc/FastDesc return an iterator in the requested direction only
	// if it can be produced without a full materialisation, signalled by
	// the boolean return.
	FastAsc() (RevIterator, bool)
	FastDesc() (RevIterator, bool)

	// Len forces materialisation if the size isn't already known.
	Len() int
	// SizeHint returns a cheap size estimate without materialising.
	SizeHint() (int, bool)

	First() (RevId, bool)
	Last() (RevId, bool)
	Min() (RevId, bool)
	Max() (RevId, bool)

	IsAscending() bool
	IsDescending() bool

	Intersect(other RevSet) RevSet
	Union(other RevSet) RevSet
	Subtract(other RevSet) RevSet
	Filter(p FilterFunc, repr FilterRepr) RevSet
	Sort(reverse bool) RevSet
	Reverse() RevSet
	Slice(start, stop int) (RevSet, error)

	// PrefetchFields attaches prefetch tags; it never alters membership or
	// order.
	PrefetchFields(tags ...string) RevSet
	IterCtx(ctx context.Context) (CtxIterator, error)

	// Repo resolves the set's weak back-reference, failing with
	// ErrRepoGone if the repository has been dropped.
	Repo() (*Repo, error)

	// direction reports the set's current Direction without forcing any
	// work; the generic fallbacks, UnionSet and FilteredSet read it to
	// carry an operand's direction onto a derived set.
	direction() Direction
}

// sliceIds materialises an iterator into a slice, in whatever order it
// yields. Used by the several representations that fall back to a generic
// path.
func sliceIds(it RevIterator) []RevId {
	var out []RevId
	for it.Next() {
		out = append(out, it.Rev())
	}
	return out
}

// sliceIterator adapts a []RevId to a RevIterator.
type sliceIterator struct {
	ids []RevId
	pos int
}

func newSliceIterator(ids []RevId) *sliceIterator {
	return &sliceIterator{ids: ids, pos: -1}
}

func (it *sliceIterator) Next() bool {
	it.pos++
	return it.pos < len(it.ids)
}

func (it *sliceIterator) Rev() RevId {
	return it.ids[it.pos]
}

// reverseCopy returns a new slice with ids in reverse order.
func reverseCopy(ids []RevId) []RevId {
	out := make([]RevId, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

// isAscendingSlice/isDescendingSlice implement P3's checkable half: strictly
// increasing/decreasing; a slice shorter than 2 counts as both.
func isAscendingSlice(ids []RevId) bool {
	if len(ids) < 2 {
		return true
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			return false
		}
	}
	return true
}

func isDescendingSlice(ids []RevId) bool {
	if len(ids) < 2 {
		return true
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] >= ids[i-1] {
			return false
		}
	}
	return true
}
