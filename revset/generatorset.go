package revset

import "context"

// GeneratorSet wraps a one-shot producer (a channel of RevId) as a RevSet.
// Every value pulled from the channel is cached so the set can be iterated
// or queried more than once despite the channel itself being single-use.
// An optional monotonicity hint lets Contains short-circuit once the
// source has passed the point where rev could appear.
type GeneratorSet struct {
	source <-chan RevId
	dir    Direction // Ascending/Descending if the source is known monotonic, Unspecified otherwise

	drained []RevId
	index   map[RevId]int
	done    bool

	repo weakRef
	tags map[string]struct{}
}

var _ RevSet = (*GeneratorSet)(nil)

// Generatorset wraps source as a RevSet. Pass Ascending or Descending for
// dir only when the caller guarantees the channel yields values in that
// order; Unspecified disables the Contains short-circuit and the
// FastAsc/FastDesc iterators.
func Generatorset(source <-chan RevId, dir Direction, repo *Repo) *GeneratorSet {
	return &GeneratorSet{source: source, dir: dir, index: make(map[RevId]int), repo: newWeakRef(repo)}
}

func (s *GeneratorSet) direction() Direction { return s.dir }

// pull advances the generator until it produces rev, runs out, or (for a
// monotonic source) passes the point where rev could still appear.
func (s *GeneratorSet) pull(target RevId, haveTarget bool) {
	if s.done {
		return
	}
	for {
		if haveTarget {
			if _, ok := s.index[target]; ok {
				return
			}
			if s.dir != Unspecified && len(s.drained) > 0 {
				last := s.drained[len(s.drained)-1]
				if (s.dir == Ascending && last > target) || (s.dir == Descending && last < target) {
					return
				}
			}
		}
		v, ok := <-s.source
		if !ok {
			s.done = true
			return
		}
		s.index[v] = len(s.drained)
		s.drained = append(s.drained, v)
	}
}

func (s *GeneratorSet) drainAll() {
	s.pull(0, false)
}

func (s *GeneratorSet) Contains(rev RevId) bool {
	s.pull(rev, true)
	_, ok := s.index[rev]
	return ok
}

type generatorIterator struct {
	s   *GeneratorSet
	pos int
}

func (it *generatorIterator) Next() bool {
	it.pos++
	if it.pos < len(it.s.drained) {
		return true
	}
	if it.s.done {
		return false
	}
	v, ok := <-it.s.source
	if !ok {
		it.s.done = true
		return false
	}
	it.s.index[v] = len(it.s.drained)
	it.s.drained = append(it.s.drained, v)
	return true
}

func (it *generatorIterator) Rev() RevId { return it.s.drained[it.pos] }

func (s *GeneratorSet) Iter() RevIterator {
	return &generatorIterator{s: s, pos: -1}
}

func (s *GeneratorSet) FastAsc() (RevIterator, bool) {
	if s.dir == Ascending {
		return s.Iter(), true
	}
	return nil, false
}

func (s *GeneratorSet) FastDesc() (RevIterator, bool) {
	if s.dir == Descending {
		return s.Iter(), true
	}
	return nil, false
}

func (s *GeneratorSet) Len() int {
	s.drainAll()
	return len(s.drained)
}

func (s *GeneratorSet) SizeHint() (int, bool) {
	if s.done {
		return len(s.drained), true
	}
	return len(s.drained), false
}

func (s *GeneratorSet) First() (RevId, bool) {
	it := s.Iter()
	if it.Next() {
		return it.Rev(), true
	}
	return 0, false
}

func (s *GeneratorSet) Last() (RevId, bool) {
	s.drainAll()
	if len(s.drained) == 0 {
		return 0, false
	}
	return s.drained[len(s.drained)-1], true
}

func (s *GeneratorSet) Min() (RevId, bool) {
	s.drainAll()
	if len(s.drained) == 0 {
		return 0, false
	}
	if s.dir == Ascending {
		return s.drained[0], true
	}
	if s.dir == Descending {
		return s.drained[len(s.drained)-1], true
	}
	sorted := sortRevs(s.drained, true)
	return sorted[0], true
}

func (s *GeneratorSet) Max() (RevId, bool) {
	s.drainAll()
	if len(s.drained) == 0 {
		return 0, false
	}
	if s.dir == Ascending {
		return s.drained[len(s.drained)-1], true
	}
	if s.dir == Descending {
		return s.drained[0], true
	}
	sorted := sortRevs(s.drained, true)
	return sorted[len(sorted)-1], true
}

func (s *GeneratorSet) IsAscending() bool {
	if s.Len() <= 1 {
		return true
	}
	return s.dir == Ascending
}

func (s *GeneratorSet) IsDescending() bool {
	if s.Len() <= 1 {
		return true
	}
	return s.dir == Descending
}

func (s *GeneratorSet) Intersect(other RevSet) RevSet { return genericIntersect(s, other) }
func (s *GeneratorSet) Subtract(other RevSet) RevSet  { return genericSubtract(s, other) }
func (s *GeneratorSet) Union(other RevSet) RevSet     { return genericUnion(s, other) }

func (s *GeneratorSet) Filter(p FilterFunc, repr FilterRepr) RevSet {
	return newFilteredSet(s, p, repr)
}

// Sort/Reverse/Slice all force full drainage: once a channel-backed set
// needs reordering there is no way to stay lazy.
func (s *GeneratorSet) Sort(reverse bool) RevSet {
	s.drainAll()
	repo, _ := s.Repo()
	bs := Baseset(s.drained, repo)
	return bs.Sort(reverse)
}

func (s *GeneratorSet) Reverse() RevSet {
	s.drainAll()
	repo, _ := s.Repo()
	return Baseset(reverseCopy(s.drained), repo)
}

func (s *GeneratorSet) Slice(start, stop int) (RevSet, error) {
	if start < 0 || stop < 0 {
		return nil, ErrInvalidSlice
	}
	s.drainAll()
	repo, _ := s.Repo()
	return Baseset(s.drained, repo).Slice(start, stop)
}

func (s *GeneratorSet) PrefetchFields(tags ...string) RevSet {
	s.tags = mergeTags(s.tags, tags...)
	return s
}

func (s *GeneratorSet) IterCtx(ctx context.Context) (CtxIterator, error) {
	base := &baseCtxIterator{it: s.Iter()}
	return applyPrefetch(ctx, s.repo, base, s.tags)
}

func (s *GeneratorSet) Repo() (*Repo, error) { return s.repo.resolve() }
