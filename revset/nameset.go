package revset

import (
	"context"

	"github.com/ethereum/go-ethereum/log"

	"github.com/ledgerwatch/revgraph/common"
	"github.com/ledgerwatch/revgraph/dag"
)

// NameSet wraps a hash-keyed dag.DagSet. It can never carry NullID or
// WdirID: every member must round-trip through the IdMap. Direction is
// claimed at construction time; a hinted DagSet is walked forward or
// backward to match it, and only a DagSet with no hint falls back to
// asking the DAG backend to sort.
type NameSet struct {
	set      dag.DagSet
	dir      common.Direction
	reversed bool
	repo     weakRef
	tags     map[string]struct{}
}

var _ RevSet = (*NameSet)(nil)

// effectiveDir combines the claimed direction with the reversed flag that
// Reverse() toggles, via common.FlipIf.
func (s *NameSet) effectiveDir() common.Direction {
	return common.FlipIf(s.reversed, s.dir)
}

func hintForDir(dir common.Direction) dag.Hint {
	switch dir {
	case Ascending:
		return dag.HintAsc
	case Descending:
		return dag.HintDesc
	default:
		return dag.HintNone
	}
}

// namesetFromHashes wraps hashes, already ordered according to dir, as a
// NameSet. Used when another representation promotes itself to reach the
// DAG algebra fast path.
func namesetFromHashes(repo *Repo, hashes []common.Hash20, dir common.Direction) *NameSet {
	return &NameSet{set: dag.NewDagSet(hashes, hintForDir(dir)), dir: dir, repo: newWeakRef(repo)}
}

// NamesetFromDag wraps an arbitrary DagSet (e.g. the result of a DAG
// ancestors/range query) as a NameSet, claiming dir as its direction.
func NamesetFromDag(repo *Repo, set dag.DagSet, dir common.Direction) *NameSet {
	return &NameSet{set: set, dir: dir, repo: newWeakRef(repo)}
}

func namesetFromDagSet(repo weakRef, set dag.DagSet, dir common.Direction, tags map[string]struct{}) *NameSet {
	return &NameSet{set: set, dir: dir, repo: repo, tags: tags}
}

func (s *NameSet) direction() common.Direction { return s.effectiveDir() }

func (s *NameSet) hashToRev(h common.Hash20) (RevId, bool) {
	repo, err := s.repo.resolve()
	if err != nil {
		return 0, false
	}
	id, err := repo.Ids.HashToID(h)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (s *NameSet) Contains(rev RevId) bool {
	if rev.IsVirtual() {
		return false
	}
	repo, err := s.repo.resolve()
	if err != nil {
		return false
	}
	h, err := repo.Ids.IdToHash(rev)
	if err != nil {
		return false
	}
	return s.set.ContainsHash(h)
}

func (s *NameSet) sortedIter(asc bool) dag.HashIterator {
	repo, err := s.repo.resolve()
	if err != nil {
		return dag.NewDagSet(nil, dag.HintNone).Iter()
	}
	log.Debug("nameset: no direction hint, asking backend to sort", "ascending", asc)
	return repo.Dag.Sort(s.set, asc).Iter()
}

func (s *NameSet) orderedHashIter() dag.HashIterator {
	switch s.effectiveDir() {
	case Ascending:
		switch s.set.Hint() {
		case dag.HintAsc:
			return s.set.Iter()
		case dag.HintDesc:
			return s.set.RevIter()
		default:
			return s.sortedIter(true)
		}
	case Descending:
		switch s.set.Hint() {
		case dag.HintDesc:
			return s.set.Iter()
		case dag.HintAsc:
			return s.set.RevIter()
		default:
			return s.sortedIter(false)
		}
	default:
		return s.set.Iter()
	}
}

type nameRevIterator struct {
	hashIt dag.HashIterator
	repo   weakRef
	cur    RevId
}

func (it *nameRevIterator) Next() bool {
	for it.hashIt.Next() {
		repo, err := it.repo.resolve()
		if err != nil {
			return false
		}
		id, err := repo.Ids.HashToID(it.hashIt.Hash())
		if err != nil {
			continue
		}
		it.cur = id
		return true
	}
	return false
}

func (it *nameRevIterator) Rev() RevId { return it.cur }

func (s *NameSet) Iter() RevIterator {
	return &nameRevIterator{hashIt: s.orderedHashIter(), repo: s.repo}
}

func (s *NameSet) FastAsc() (RevIterator, bool) {
	if s.effectiveDir() == Ascending && s.set.Hint() != dag.HintNone {
		return &nameRevIterator{hashIt: s.orderedHashIter(), repo: s.repo}, true
	}
	return nil, false
}

func (s *NameSet) FastDesc() (RevIterator, bool) {
	if s.effectiveDir() == Descending && s.set.Hint() != dag.HintNone {
		return &nameRevIterator{hashIt: s.orderedHashIter(), repo: s.repo}, true
	}
	return nil, false
}

func (s *NameSet) Len() int { return s.set.Len() }

func (s *NameSet) SizeHint() (int, bool) { return s.set.SizeHint() }

func (s *NameSet) firstHashInDir() (common.Hash20, bool) {
	switch s.effectiveDir() {
	case Ascending:
		switch s.set.Hint() {
		case dag.HintAsc:
			return s.set.FirstHash()
		case dag.HintDesc:
			return s.set.LastHash()
		default:
			it := s.sortedIter(true)
			if it.Next() {
				return it.Hash(), true
			}
			return common.Hash20{}, false
		}
	case Descending:
		switch s.set.Hint() {
		case dag.HintDesc:
			return s.set.FirstHash()
		case dag.HintAsc:
			return s.set.LastHash()
		default:
			it := s.sortedIter(false)
			if it.Next() {
				return it.Hash(), true
			}
			return common.Hash20{}, false
		}
	default:
		return s.set.FirstHash()
	}
}

func (s *NameSet) First() (RevId, bool) {
	h, ok := s.firstHashInDir()
	if !ok {
		return 0, false
	}
	return s.hashToRev(h)
}

func (s *NameSet) Last() (RevId, bool) {
	it := s.Iter()
	var last RevId
	found := false
	for it.Next() {
		last = it.Rev()
		found = true
	}
	return last, found
}

func (s *NameSet) minmax(wantMin bool) (RevId, bool) {
	it := s.Iter()
	var best RevId
	found := false
	for it.Next() {
		r := it.Rev()
		if !found {
			best, found = r, true
			continue
		}
		if wantMin && r < best {
			best = r
		}
		if !wantMin && r > best {
			best = r
		}
	}
	return best, found
}

func (s *NameSet) Min() (RevId, bool) { return s.minmax(true) }
func (s *NameSet) Max() (RevId, bool) { return s.minmax(false) }

func (s *NameSet) IsAscending() bool {
	if s.Len() <= 1 {
		return true
	}
	return s.effectiveDir() == Ascending
}

func (s *NameSet) IsDescending() bool {
	if s.Len() <= 1 {
		return true
	}
	return s.effectiveDir() == Descending
}

func (s *NameSet) Intersect(other RevSet) RevSet {
	switch o := other.(type) {
	case *NameSet:
		return namesetFromDagSet(s.repo, s.set.Intersect(o.set), s.effectiveDir(), s.tags)
	case *IdSet:
		return s.Intersect(o.toNameSet())
	case *BaseSet:
		return s.Intersect(o.toNameSet())
	default:
		return genericIntersect(s, other)
	}
}

func (s *NameSet) Subtract(other RevSet) RevSet {
	switch o := other.(type) {
	case *NameSet:
		return namesetFromDagSet(s.repo, s.set.Difference(o.set), s.effectiveDir(), s.tags)
	case *IdSet:
		return s.Subtract(o.toNameSet())
	case *BaseSet:
		return s.Subtract(o.toNameSet())
	default:
		return genericSubtract(s, other)
	}
}

func (s *NameSet) Union(other RevSet) RevSet {
	switch o := other.(type) {
	case *NameSet:
		return namesetFromDagSet(s.repo, s.set.Union(o.set), s.effectiveDir(), s.tags)
	case *IdSet:
		return s.Union(o.toNameSet())
	case *BaseSet:
		if o.containsSentinel() {
			return genericUnion(s, other)
		}
		return s.Union(o.toNameSet())
	default:
		return genericUnion(s, other)
	}
}

func (s *NameSet) Filter(p FilterFunc, repr FilterRepr) RevSet {
	return newFilteredSet(s, p, repr)
}

// Sort resets the reversed flag and re-sorts, per SPEC_FULL.md §4.4: Reverse
// only ever toggles reversed, only Sort picks a fresh base direction.
func (s *NameSet) Sort(reverse bool) RevSet {
	dir := Ascending
	if reverse {
		dir = Descending
	}
	return &NameSet{set: s.set, dir: dir, repo: s.repo, tags: s.tags}
}

// Reverse toggles the reversed flag composed with the claimed direction via
// common.FlipIf, leaving the underlying DagSet untouched. An Unspecified
// base direction is invariant under flip_if, so there the only way to
// actually reverse iteration order is to materialise and physically flip.
func (s *NameSet) Reverse() RevSet {
	if s.dir == Unspecified {
		it := s.set.Iter()
		var hashes []common.Hash20
		for it.Next() {
			hashes = append(hashes, it.Hash())
		}
		return &NameSet{set: dag.NewDagSet(reverseHashes(hashes), dag.HintNone), dir: Unspecified, repo: s.repo, tags: s.tags}
	}
	return &NameSet{set: s.set, dir: s.dir, reversed: !s.reversed, repo: s.repo, tags: s.tags}
}

func reverseHashes(hashes []common.Hash20) []common.Hash20 {
	out := make([]common.Hash20, len(hashes))
	for i, h := range hashes {
		out[len(hashes)-1-i] = h
	}
	return out
}

func (s *NameSet) Slice(start, stop int) (RevSet, error) {
	if start < 0 || stop < 0 {
		return nil, ErrInvalidSlice
	}
	eff := s.effectiveDir()
	if start >= stop {
		return &BaseSet{core: newBaseCore(nil), dir: eff, repo: s.repo, tags: s.tags}, nil
	}
	if (eff == Ascending && s.set.Hint() == dag.HintAsc) || (eff == Descending && s.set.Hint() == dag.HintDesc) {
		sub := s.set.SkipTake(start, stop-start)
		return &NameSet{set: sub, dir: eff, repo: s.repo, tags: s.tags}, nil
	}
	it := s.orderedHashIter()
	var collected []common.Hash20
	i := 0
	for i < stop && it.Next() {
		if i >= start {
			collected = append(collected, it.Hash())
		}
		i++
	}
	return &NameSet{set: dag.NewDagSet(collected, hintForDir(eff)), dir: eff, repo: s.repo, tags: s.tags}, nil
}

func (s *NameSet) PrefetchFields(tags ...string) RevSet {
	return &NameSet{set: s.set, dir: s.dir, reversed: s.reversed, repo: s.repo, tags: mergeTags(s.tags, tags...)}
}

func (s *NameSet) IterCtx(ctx context.Context) (CtxIterator, error) {
	base := &baseCtxIterator{it: s.Iter()}
	return applyPrefetch(ctx, s.repo, base, s.tags)
}

func (s *NameSet) Repo() (*Repo, error) { return s.repo.resolve() }
