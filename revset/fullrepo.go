package revset

import (
	"context"

	"github.com/ledgerwatch/revgraph/common"
)

// FullRepoSet is the virtual "every revision" identity set: Intersect with
// anything returns that thing unchanged rather than walking the whole DAG.
// It never materialises unless a caller forces iteration, at which point it
// delegates to the DAG's own all-ids view.
type FullRepoSet struct {
	repo weakRef
	dir  Direction
	tags map[string]struct{}
}

var _ RevSet = (*FullRepoSet)(nil)

// Fullreposet builds the identity set over repo, iterating ascending.
func Fullreposet(repo *Repo) *FullRepoSet {
	return &FullRepoSet{repo: newWeakRef(repo), dir: Ascending}
}

func (s *FullRepoSet) direction() Direction { return s.dir }

func (s *FullRepoSet) backing() RevSet {
	repo, err := s.repo.resolve()
	if err != nil {
		return Baseset(nil, nil)
	}
	all := repo.Dag.AllIds()
	ns := NamesetFromDag(repo, all, s.dir)
	ns.tags = s.tags
	return ns
}

func (s *FullRepoSet) Contains(rev RevId) bool {
	if rev.IsVirtual() {
		return false
	}
	repo, err := s.repo.resolve()
	if err != nil {
		return false
	}
	_, err = repo.Ids.IdToHash(rev)
	return err == nil
}

func (s *FullRepoSet) Iter() RevIterator            { return s.backing().Iter() }
func (s *FullRepoSet) FastAsc() (RevIterator, bool)  { return s.backing().FastAsc() }
func (s *FullRepoSet) FastDesc() (RevIterator, bool) { return s.backing().FastDesc() }
func (s *FullRepoSet) Len() int                      { return s.backing().Len() }
func (s *FullRepoSet) SizeHint() (int, bool)         { return s.backing().SizeHint() }
func (s *FullRepoSet) First() (RevId, bool)          { return s.backing().First() }
func (s *FullRepoSet) Last() (RevId, bool)           { return s.backing().Last() }
func (s *FullRepoSet) Min() (RevId, bool)            { return s.backing().Min() }
func (s *FullRepoSet) Max() (RevId, bool)            { return s.backing().Max() }
func (s *FullRepoSet) IsAscending() bool             { return s.dir == Ascending }
func (s *FullRepoSet) IsDescending() bool            { return s.dir == Descending }

// Intersect returns the other operand untouched rather than walking
// anything; Union below likewise returns s itself.
func (s *FullRepoSet) Intersect(other RevSet) RevSet { return other }

func (s *FullRepoSet) Subtract(other RevSet) RevSet { return genericSubtract(s, other) }
func (s *FullRepoSet) Union(other RevSet) RevSet     { return s }

func (s *FullRepoSet) Filter(p FilterFunc, repr FilterRepr) RevSet {
	return newFilteredSet(s, p, repr)
}

func (s *FullRepoSet) Sort(reverse bool) RevSet {
	dir := Ascending
	if reverse {
		dir = Descending
	}
	return &FullRepoSet{repo: s.repo, dir: dir, tags: s.tags}
}

func (s *FullRepoSet) Reverse() RevSet {
	return &FullRepoSet{repo: s.repo, dir: s.dir.Reversed(), tags: s.tags}
}

func (s *FullRepoSet) Slice(start, stop int) (RevSet, error) {
	return s.backing().Slice(start, stop)
}

func (s *FullRepoSet) PrefetchFields(tags ...string) RevSet {
	return &FullRepoSet{repo: s.repo, dir: s.dir, tags: mergeTags(s.tags, tags...)}
}

func (s *FullRepoSet) IterCtx(ctx context.Context) (CtxIterator, error) {
	base := &baseCtxIterator{it: s.Iter()}
	return applyPrefetch(ctx, s.repo, base, s.tags)
}

func (s *FullRepoSet) Repo() (*Repo, error) { return s.repo.resolve() }

// Spanset constructs a full-range IdSet-backed set between lo and hi:
// ascending when lo <= hi, descending otherwise. When lo is NullID the
// NullID sentinel itself is injected by unioning in a
// single-element BaseSet, since IdSet itself can never carry it.
func Spanset(repo *Repo, lo, hi RevId) RevSet {
	if lo == common.NullID {
		rest := IdsetRange(repo, 0, hi, true)
		return Baseset([]RevId{common.NullID}, repo).Union(rest)
	}
	asc := lo <= hi
	if asc {
		return IdsetRange(repo, lo, hi, true)
	}
	return IdsetRange(repo, hi, lo, false)
}
