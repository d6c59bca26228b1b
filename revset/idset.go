package revset

import (
	"context"

	"github.com/ledgerwatch/revgraph/common"
	"github.com/ledgerwatch/revgraph/dag"
)

// IdSet wraps the DAG's span-compressed integer set (a Roaring bitmap, see
// dag.SpanSet). Direction defaults to Descending, matching the usual
// "newest first" expectation. Contains, Sort, and Reverse are constant-time
// with respect to the set's size.
type IdSet struct {
	span *dag.SpanSet
	dir  common.Direction
	repo weakRef
	tags map[string]struct{}
}

var _ RevSet = (*IdSet)(nil)

func toU64(id RevId) uint64   { return uint64(id) }
func fromU64(v uint64) RevId  { return RevId(v) }

// Idset builds an IdSet directly from a slice of ids. Sentinel ids (NullID,
// WdirID) are dropped: a DAG-backed set is never allowed to carry them
// (invariant 5), so a caller handing one to this constructor gets it
// silently filtered rather than a set that violates the invariant.
func Idset(ids []RevId, repo *Repo) *IdSet {
	vals := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id.IsVirtual() {
			continue
		}
		vals = append(vals, toU64(id))
	}
	return &IdSet{span: dag.NewSpanSetFromValues(vals), dir: Descending, repo: newWeakRef(repo)}
}

// IdsetRange constructs an IdSet covering [lo, hi] intersected with the
// repository's valid revision range, in the requested direction. If
// lo > hi, the empty set is returned.
func IdsetRange(repo *Repo, lo, hi RevId, asc bool) *IdSet {
	dir := Descending
	if asc {
		dir = Ascending
	}
	if repo == nil {
		return &IdSet{span: dag.NewSpanSet(), dir: dir}
	}
	total := RevId(repo.Dag.Len())
	if lo < 0 {
		lo = 0
	}
	if hi >= total {
		hi = total - 1
	}
	if lo > hi {
		return &IdSet{span: dag.NewSpanSet(), dir: dir, repo: newWeakRef(repo)}
	}
	allIds := dag.NewSpanSetRange(0, toU64(total-1))
	span := dag.NewSpanSetRange(toU64(lo), toU64(hi)).And(allIds)
	if span.RangeCardinality(toU64(lo), toU64(hi)) == 0 {
		return &IdSet{span: dag.NewSpanSet(), dir: dir, repo: newWeakRef(repo)}
	}
	return &IdSet{span: span, dir: dir, repo: newWeakRef(repo)}
}

func idsetFromSpan(span *dag.SpanSet, dir common.Direction, repo weakRef, tags map[string]struct{}) *IdSet {
	return &IdSet{span: span, dir: dir, repo: repo, tags: tags}
}

func (s *IdSet) clone(dir common.Direction) *IdSet {
	return &IdSet{span: s.span, dir: dir, repo: s.repo, tags: s.tags}
}

func (s *IdSet) direction() common.Direction { return s.dir }

func (s *IdSet) orderedValues() []uint64 {
	if s.dir == Ascending {
		return s.span.Ascending()
	}
	return s.span.Descending()
}

func (s *IdSet) Contains(rev RevId) bool {
	if rev.IsVirtual() {
		return false
	}
	return s.span.Contains(toU64(rev))
}

type u64Iterator struct {
	vals []uint64
	pos  int
}

func (it *u64Iterator) Next() bool {
	it.pos++
	return it.pos < len(it.vals)
}

func (it *u64Iterator) Rev() RevId { return fromU64(it.vals[it.pos]) }

func (s *IdSet) Iter() RevIterator {
	return &u64Iterator{vals: s.orderedValues(), pos: -1}
}

func (s *IdSet) FastAsc() (RevIterator, bool) {
	if s.dir == Ascending {
		return &u64Iterator{vals: s.span.Ascending(), pos: -1}, true
	}
	return nil, false
}

func (s *IdSet) FastDesc() (RevIterator, bool) {
	if s.dir == Descending {
		return &u64Iterator{vals: s.span.Descending(), pos: -1}, true
	}
	return nil, false
}

func (s *IdSet) Len() int { return int(s.span.Cardinality()) }

func (s *IdSet) SizeHint() (int, bool) { return int(s.span.Cardinality()), true }

func (s *IdSet) First() (RevId, bool) {
	if s.dir == Ascending {
		return s.Min()
	}
	return s.Max()
}

func (s *IdSet) Last() (RevId, bool) {
	if s.dir == Ascending {
		return s.Max()
	}
	return s.Min()
}

func (s *IdSet) Min() (RevId, bool) {
	v, ok := s.span.Minimum()
	return fromU64(v), ok
}

func (s *IdSet) Max() (RevId, bool) {
	v, ok := s.span.Maximum()
	return fromU64(v), ok
}

func (s *IdSet) IsAscending() bool {
	if s.Len() <= 1 {
		return true
	}
	return s.dir == Ascending
}

func (s *IdSet) IsDescending() bool {
	if s.Len() <= 1 {
		return true
	}
	return s.dir == Descending
}

func (s *IdSet) Intersect(other RevSet) RevSet {
	switch o := other.(type) {
	case *IdSet:
		return idsetFromSpan(s.span.And(o.span), s.dir, s.repo, s.tags)
	case *BaseSet:
		filtered := filterSentinels(o.core.list)
		return idsetFromSpan(s.span.And(dag.NewSpanSetFromValues(u64s(filtered))), s.dir, s.repo, s.tags)
	case *NameSet:
		return s.toNameSet().Intersect(other)
	default:
		return genericIntersect(s, other)
	}
}

func (s *IdSet) Subtract(other RevSet) RevSet {
	switch o := other.(type) {
	case *IdSet:
		return idsetFromSpan(s.span.AndNot(o.span), s.dir, s.repo, s.tags)
	case *BaseSet:
		filtered := filterSentinels(o.core.list)
		return idsetFromSpan(s.span.AndNot(dag.NewSpanSetFromValues(u64s(filtered))), s.dir, s.repo, s.tags)
	case *NameSet:
		return s.toNameSet().Subtract(other)
	default:
		return genericSubtract(s, other)
	}
}

func (s *IdSet) Union(other RevSet) RevSet {
	switch o := other.(type) {
	case *IdSet:
		return idsetFromSpan(s.span.Or(o.span), s.dir, s.repo, s.tags)
	case *BaseSet:
		if !o.containsSentinel() {
			return idsetFromSpan(s.span.Or(dag.NewSpanSetFromValues(u64s(o.core.list))), s.dir, s.repo, s.tags)
		}
		return genericUnion(s, other)
	default:
		return genericUnion(s, other)
	}
}

func filterSentinels(ids []RevId) []RevId {
	out := make([]RevId, 0, len(ids))
	for _, id := range ids {
		if !id.IsVirtual() {
			out = append(out, id)
		}
	}
	return out
}

func u64s(ids []RevId) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = toU64(id)
	}
	return out
}

// toNameSet converts self to a NameSet via a batch hash lookup, reaching
// the DAG fast path for algebra against a NameSet operand.
func (s *IdSet) toNameSet() RevSet {
	repo, err := s.repo.resolve()
	if err != nil {
		return s
	}
	ids := make([]RevId, 0, s.Len())
	it := s.Iter()
	for it.Next() {
		ids = append(ids, it.Rev())
	}
	hashes, err := repo.Ids.IdsToHashes(ids)
	if err != nil {
		return s
	}
	ns := namesetFromHashes(repo, hashes, s.dir)
	ns.tags = s.tags
	return ns
}

func (s *IdSet) Filter(p FilterFunc, repr FilterRepr) RevSet {
	return newFilteredSet(s, p, repr)
}

func (s *IdSet) Sort(reverse bool) RevSet {
	if reverse {
		return s.clone(Descending)
	}
	return s.clone(Ascending)
}

func (s *IdSet) Reverse() RevSet {
	return s.clone(s.dir.Reversed())
}

func (s *IdSet) Slice(start, stop int) (RevSet, error) {
	if start < 0 || stop < 0 {
		return nil, ErrInvalidSlice
	}
	v := s.orderedValues()
	if start > len(v) {
		start = len(v)
	}
	if stop > len(v) {
		stop = len(v)
	}
	if start >= stop {
		return idsetFromSpan(dag.NewSpanSet(), s.dir, s.repo, s.tags), nil
	}
	return idsetFromSpan(dag.NewSpanSetFromValues(v[start:stop]), s.dir, s.repo, s.tags), nil
}

func (s *IdSet) PrefetchFields(tags ...string) RevSet {
	c := s.clone(s.dir)
	c.tags = mergeTags(s.tags, tags...)
	return c
}

func (s *IdSet) IterCtx(ctx context.Context) (CtxIterator, error) {
	base := &baseCtxIterator{it: s.Iter()}
	return applyPrefetch(ctx, s.repo, base, s.tags)
}

func (s *IdSet) Repo() (*Repo, error) { return s.repo.resolve() }
