package revset

import "context"

// FilteredSet lazily filters an underlying set through a predicate. When
// repr.Cacheable is set, results are memoized in an unbounded map keyed by
// revision: cardinality here is expected to stay within a single query's
// working set, unlike the bounded LRU fronting IdMap translation (see
// dag.CachedIdMap), so there is no eviction policy to get wrong.
type FilteredSet struct {
	underlying RevSet
	pred       FilterFunc
	repr       FilterRepr

	cache map[RevId]bool
}

var _ RevSet = (*FilteredSet)(nil)

func newFilteredSet(underlying RevSet, p FilterFunc, repr FilterRepr) RevSet {
	fs := &FilteredSet{underlying: underlying, pred: p, repr: repr}
	if repr.Cacheable && !repr.Builtin {
		fs.cache = make(map[RevId]bool)
	}
	return fs
}

func (s *FilteredSet) direction() Direction {
	if d, ok := s.underlying.(interface{ direction() Direction }); ok {
		return d.direction()
	}
	return Unspecified
}

func (s *FilteredSet) test(rev RevId) bool {
	s.advanceProgress(1)
	if s.cache != nil {
		if v, ok := s.cache[rev]; ok {
			return v
		}
	}
	v := s.pred(rev)
	if s.cache != nil {
		s.cache[rev] = v
	}
	return v
}

func (s *FilteredSet) advanceProgress(n int) {
	repo, err := s.Repo()
	if err != nil || repo.Progress == nil {
		return
	}
	repo.Progress.Advance(n, s.repr.Name)
}

func (s *FilteredSet) Contains(rev RevId) bool {
	return s.underlying.Contains(rev) && s.test(rev)
}

type filteredIterator struct {
	it RevIterator
	fs *FilteredSet
	cur RevId
}

func (it *filteredIterator) Next() bool {
	for it.it.Next() {
		r := it.it.Rev()
		if it.fs.test(r) {
			it.cur = r
			return true
		}
	}
	return false
}

func (it *filteredIterator) Rev() RevId { return it.cur }

func (s *FilteredSet) Iter() RevIterator {
	return &filteredIterator{it: s.underlying.Iter(), fs: s}
}

func (s *FilteredSet) FastAsc() (RevIterator, bool) {
	it, ok := s.underlying.FastAsc()
	if !ok {
		return nil, false
	}
	return &filteredIterator{it: it, fs: s}, true
}

func (s *FilteredSet) FastDesc() (RevIterator, bool) {
	it, ok := s.underlying.FastDesc()
	if !ok {
		return nil, false
	}
	return &filteredIterator{it: it, fs: s}, true
}

// Len forces a full walk: filtering is not reversible from a size hint.
func (s *FilteredSet) Len() int {
	n := 0
	it := s.Iter()
	for it.Next() {
		n++
	}
	return n
}

func (s *FilteredSet) SizeHint() (int, bool) {
	n, ok := s.underlying.SizeHint()
	if !ok {
		return 0, false
	}
	return n, false // predicate can only shrink it, so the hint becomes an upper bound, not exact
}

func (s *FilteredSet) First() (RevId, bool) {
	it := s.Iter()
	if it.Next() {
		return it.Rev(), true
	}
	return 0, false
}

func (s *FilteredSet) Last() (RevId, bool) {
	var last RevId
	found := false
	it := s.Iter()
	for it.Next() {
		last, found = it.Rev(), true
	}
	return last, found
}

func (s *FilteredSet) Min() (RevId, bool) {
	var best RevId
	found := false
	it := s.Iter()
	for it.Next() {
		r := it.Rev()
		if !found || r < best {
			best, found = r, true
		}
	}
	return best, found
}

func (s *FilteredSet) Max() (RevId, bool) {
	var best RevId
	found := false
	it := s.Iter()
	for it.Next() {
		r := it.Rev()
		if !found || r > best {
			best, found = r, true
		}
	}
	return best, found
}

func (s *FilteredSet) IsAscending() bool  { return s.underlying.IsAscending() }
func (s *FilteredSet) IsDescending() bool { return s.underlying.IsDescending() }

func (s *FilteredSet) Intersect(other RevSet) RevSet { return genericIntersect(s, other) }
func (s *FilteredSet) Subtract(other RevSet) RevSet  { return genericSubtract(s, other) }
func (s *FilteredSet) Union(other RevSet) RevSet     { return genericUnion(s, other) }

func (s *FilteredSet) Filter(p FilterFunc, repr FilterRepr) RevSet {
	return newFilteredSet(s, p, repr)
}

func (s *FilteredSet) Sort(reverse bool) RevSet {
	return newFilteredSet(s.underlying.Sort(reverse), s.pred, s.repr)
}

func (s *FilteredSet) Reverse() RevSet {
	return newFilteredSet(s.underlying.Reverse(), s.pred, s.repr)
}

func (s *FilteredSet) Slice(start, stop int) (RevSet, error) {
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
	return Baseset(out, repo).clone(s.direction()), nil
}

func (s *FilteredSet) PrefetchFields(tags ...string) RevSet {
	return newFilteredSet(s.underlying.PrefetchFields(tags...), s.pred, s.repr)
}

func (s *FilteredSet) IterCtx(ctx context.Context) (CtxIterator, error) {
	underlying, err := s.underlying.IterCtx(ctx)
	if err != nil {
		return nil, err
	}
	return &filteredCtxIterator{underlying: underlying, fs: s}, nil
}

type filteredCtxIterator struct {
	underlying CtxIterator
	fs         *FilteredSet
}

func (it *filteredCtxIterator) Next() bool {
	for it.underlying.Next() {
		ctx := it.underlying.Ctx()
		if it.fs.test(ctx.Rev) {
			return true
		}
	}
	return false
}

func (it *filteredCtxIterator) Ctx() *CommitCtx { return it.underlying.Ctx() }
func (it *filteredCtxIterator) Err() error       { return it.underlying.Err() }

func (s *FilteredSet) Repo() (*Repo, error) {
	type repoer interface{ Repo() (*Repo, error) }
	if r, ok := s.underlying.(repoer); ok {
		return r.Repo()
	}
	return nil, ErrRepoGone
}
