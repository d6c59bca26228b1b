package revset

import (
	"context"

	"github.com/ethereum/go-ethereum/log"
)

// UnionSet lazily merges two sets. When both operands expose a fast
// iterator in the desired direction, merging is a streaming two-pointer
// walk deduplicating equal heads; when neither does, both operands are
// materialised and sorted; otherwise it falls back to emitting a's own
// order followed by b's unseen elements. Changing direction via
// Sort/Reverse only updates the desired direction, it never re-merges
// eagerly.
type UnionSet struct {
	a, b RevSet
	dir  Direction
	repo weakRef
	tags map[string]struct{}
}

var _ RevSet = (*UnionSet)(nil)

func newUnionSet(a, b RevSet) *UnionSet {
	return &UnionSet{a: a, b: b, dir: derivedDir(a), repo: combinedRepo(a, b)}
}

func derivedDir(a RevSet) Direction {
	if d, ok := a.(interface{ direction() Direction }); ok {
		return d.direction()
	}
	return Unspecified
}

func combinedRepo(a, b RevSet) weakRef {
	if r, err := a.Repo(); err == nil {
		return newWeakRef(r)
	}
	if r, err := b.Repo(); err == nil {
		return newWeakRef(r)
	}
	return weakRef{}
}

func (s *UnionSet) direction() Direction { return s.dir }

// mergeIterator streams two same-polarity sorted iterators, dropping a
// duplicate head in favor of a single emission.
type mergeIterator struct {
	a, b               RevIterator
	ascending          bool
	aHasNext, bHasNext bool
	aVal, bVal         RevId
	cur                RevId
}

func newMergeIterator(a, b RevIterator, ascending bool) *mergeIterator {
	m := &mergeIterator{a: a, b: b, ascending: ascending}
	m.aHasNext = a.Next()
	if m.aHasNext {
		m.aVal = a.Rev()
	}
	m.bHasNext = b.Next()
	if m.bHasNext {
		m.bVal = b.Rev()
	}
	return m
}

func (m *mergeIterator) less(x, y RevId) bool {
	if m.ascending {
		return x < y
	}
	return x > y
}

func (m *mergeIterator) Next() bool {
	if !m.aHasNext && !m.bHasNext {
		return false
	}
	if !m.aHasNext {
		m.cur = m.bVal
		m.bHasNext = m.b.Next()
		if m.bHasNext {
			m.bVal = m.b.Rev()
		}
		return true
	}
	if !m.bHasNext {
		m.cur = m.aVal
		m.aHasNext = m.a.Next()
		if m.aHasNext {
			m.aVal = m.a.Rev()
		}
		return true
	}
	if m.aVal == m.bVal {
		m.cur = m.aVal
		m.aHasNext = m.a.Next()
		if m.aHasNext {
			m.aVal = m.a.Rev()
		}
		m.bHasNext = m.b.Next()
		if m.bHasNext {
			m.bVal = m.b.Rev()
		}
		return true
	}
	if m.less(m.aVal, m.bVal) {
		m.cur = m.aVal
		m.aHasNext = m.a.Next()
		if m.aHasNext {
			m.aVal = m.a.Rev()
		}
		return true
	}
	m.cur = m.bVal
	m.bHasNext = m.b.Next()
	if m.bHasNext {
		m.bVal = m.b.Rev()
	}
	return true
}

func (m *mergeIterator) Rev() RevId { return m.cur }

// concatDedupIterator handles the Unspecified-direction case: a's own
// order is emitted unchanged, followed by b's elements that a doesn't
// already contain.
type concatDedupIterator struct {
	aSet RevSet
	aIt  RevIterator
	bIt  RevIterator
	inA  bool
	cur  RevId
}

func newConcatDedupIterator(aSet, bSet RevSet) *concatDedupIterator {
	return &concatDedupIterator{aSet: aSet, aIt: aSet.Iter(), bIt: bSet.Iter(), inA: true}
}

func (it *concatDedupIterator) Next() bool {
	if it.inA {
		if it.aIt.Next() {
			it.cur = it.aIt.Rev()
			return true
		}
		it.inA = false
	}
	for it.bIt.Next() {
		r := it.bIt.Rev()
		if !it.aSet.Contains(r) {
			it.cur = r
			return true
		}
	}
	return false
}

func (it *concatDedupIterator) Rev() RevId { return it.cur }

// Iter prefers the streaming two-pointer merge when both operands expose a
// fast iterator in the union's direction. When neither operand exposes one,
// both are materialised and sorted (sortRevs) in the union's direction.
// When only one does, it emits a's own order followed by b's unseen
// elements, exactly like the Unspecified case.
func (s *UnionSet) Iter() RevIterator {
	switch s.dir {
	case Ascending:
		if ia, oka := s.a.FastAsc(); oka {
			if ib, okb := s.b.FastAsc(); okb {
				return newMergeIterator(ia, ib, true)
			}
		}
		if _, oka := s.a.FastAsc(); !oka {
			if _, okb := s.b.FastAsc(); !okb {
				return newSliceIterator(sortRevs(append(sliceIds(s.a.Iter()), sliceIds(s.b.Iter())...), true))
			}
		}
		log.Debug("unionset: falling back to concat-dedup merge", "direction", "ascending")
		return newConcatDedupIterator(s.a, s.b)
	case Descending:
		if ia, oka := s.a.FastDesc(); oka {
			if ib, okb := s.b.FastDesc(); okb {
				return newMergeIterator(ia, ib, false)
			}
		}
		if _, oka := s.a.FastDesc(); !oka {
			if _, okb := s.b.FastDesc(); !okb {
				return newSliceIterator(sortRevs(append(sliceIds(s.a.Iter()), sliceIds(s.b.Iter())...), false))
			}
		}
		log.Debug("unionset: falling back to concat-dedup merge", "direction", "descending")
		return newConcatDedupIterator(s.a, s.b)
	default:
		return newConcatDedupIterator(s.a, s.b)
	}
}

func (s *UnionSet) FastAsc() (RevIterator, bool) {
	if s.dir != Ascending {
		return nil, false
	}
	ia, oka := s.a.FastAsc()
	ib, okb := s.b.FastAsc()
	if !oka || !okb {
		return nil, false
	}
	return newMergeIterator(ia, ib, true), true
}

func (s *UnionSet) FastDesc() (RevIterator, bool) {
	if s.dir != Descending {
		return nil, false
	}
	ia, oka := s.a.FastDesc()
	ib, okb := s.b.FastDesc()
	if !oka || !okb {
		return nil, false
	}
	return newMergeIterator(ia, ib, false), true
}

func (s *UnionSet) Len() int {
	n := 0
	it := s.Iter()
	for it.Next() {
		n++
	}
	return n
}

func (s *UnionSet) SizeHint() (int, bool) {
	ah, aok := s.a.SizeHint()
	bh, bok := s.b.SizeHint()
	if aok && bok {
		return ah + bh, false
	}
	return 0, false
}

func (s *UnionSet) Contains(rev RevId) bool {
	return s.a.Contains(rev) || s.b.Contains(rev)
}

func (s *UnionSet) First() (RevId, bool) {
	it := s.Iter()
	if it.Next() {
		return it.Rev(), true
	}
	return 0, false
}

func (s *UnionSet) Last() (RevId, bool) {
	var last RevId
	found := false
	it := s.Iter()
	for it.Next() {
		last, found = it.Rev(), true
	}
	return last, found
}

func (s *UnionSet) Min() (RevId, bool) {
	am, aok := s.a.Min()
	bm, bok := s.b.Min()
	switch {
	case aok && bok:
		if am < bm {
			return am, true
		}
		return bm, true
	case aok:
		return am, true
	case bok:
		return bm, true
	default:
		return 0, false
	}
}

func (s *UnionSet) Max() (RevId, bool) {
	am, aok := s.a.Max()
	bm, bok := s.b.Max()
	switch {
	case aok && bok:
		if am > bm {
			return am, true
		}
		return bm, true
	case aok:
		return am, true
	case bok:
		return bm, true
	default:
		return 0, false
	}
}

func (s *UnionSet) IsAscending() bool {
	if s.Len() <= 1 {
		return true
	}
	return s.dir == Ascending
}

func (s *UnionSet) IsDescending() bool {
	if s.Len() <= 1 {
		return true
	}
	return s.dir == Descending
}

func (s *UnionSet) Intersect(other RevSet) RevSet { return genericIntersect(s, other) }
func (s *UnionSet) Subtract(other RevSet) RevSet  { return genericSubtract(s, other) }
func (s *UnionSet) Union(other RevSet) RevSet     { return genericUnion(s, other) }

func (s *UnionSet) Filter(p FilterFunc, repr FilterRepr) RevSet {
	return newFilteredSet(s, p, repr)
}

func (s *UnionSet) Sort(reverse bool) RevSet {
	dir := Ascending
	if reverse {
		dir = Descending
	}
	return &UnionSet{a: s.a, b: s.b, dir: dir, repo: s.repo, tags: s.tags}
}

func (s *UnionSet) Reverse() RevSet {
	if s.dir == Unspecified {
		ids := sliceIds(s.Iter())
		repo, _ := s.Repo()
		return Baseset(reverseCopy(ids), repo)
	}
	return &UnionSet{a: s.a, b: s.b, dir: s.dir.Reversed(), repo: s.repo, tags: s.tags}
}

func (s *UnionSet) Slice(start, stop int) (RevSet, error) {
	if start < 0 || stop < 0 {
		return nil, ErrInvalidSlice
	}
	var out []RevId
	it := s.Iter()
	i := 0
	for i < stop && it.Next() {
		if i >= start {
			out = append(out, it.Rev())
		}
		i++
	}
	repo, _ := s.Repo()
	return Baseset(out, repo).clone(s.dir), nil
}

func (s *UnionSet) PrefetchFields(tags ...string) RevSet {
	return &UnionSet{a: s.a, b: s.b, dir: s.dir, repo: s.repo, tags: mergeTags(s.tags, tags...)}
}

func (s *UnionSet) IterCtx(ctx context.Context) (CtxIterator, error) {
	base := &baseCtxIterator{it: s.Iter()}
	return applyPrefetch(ctx, s.repo, base, s.tags)
}

func (s *UnionSet) Repo() (*Repo, error) { return s.repo.resolve() }
