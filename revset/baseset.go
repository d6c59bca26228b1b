package revset

import (
	"context"
	"sort"

	mapset "github.com/deckarep/golang-set"

	"github.com/ledgerwatch/revgraph/common"
)

// baseCore holds the data a BaseSet's clones (produced by Sort/Reverse)
// share: the original list, its lazily-sorted ascending view, and the
// membership index used for O(1) Contains and the hash-set fast algebra
// path. None of this is invalidated once computed, matching the source's
// propertycache descriptors.
type baseCore struct {
	list       []RevId
	membership mapset.Set // ValueSet-style membership index, generalized from absint_valueset.go's map[AbsValue]bool to a real set library.

	ascDone bool
	ascList []RevId

	minDone bool
	minVal  RevId
	minOk   bool

	maxDone bool
	maxVal  RevId
	maxOk   bool
}

func newBaseCore(list []RevId) *baseCore {
	idx := mapset.NewThreadUnsafeSet()
	for _, id := range list {
		idx.Add(id)
	}
	return &baseCore{list: list, membership: idx}
}

func (c *baseCore) ascending() []RevId {
	if !c.ascDone {
		out := make([]RevId, len(c.list))
		copy(out, c.list)
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		c.ascList = out
		c.ascDone = true
	}
	return c.ascList
}

func (c *baseCore) min() (RevId, bool) {
	if !c.minDone {
		asc := c.ascending()
		if len(asc) == 0 {
			c.minOk = false
		} else {
			c.minVal, c.minOk = asc[0], true
		}
		c.minDone = true
	}
	return c.minVal, c.minOk
}

func (c *baseCore) max() (RevId, bool) {
	if !c.maxDone {
		asc := c.ascending()
		if len(asc) == 0 {
			c.maxOk = false
		} else {
			c.maxVal, c.maxOk = asc[len(asc)-1], true
		}
		c.maxDone = true
	}
	return c.maxVal, c.maxOk
}

// BaseSet is an eagerly materialised set built from either an ordered slice
// (direction Unspecified, insertion order preserved) or an unordered
// hash-set (direction forced to Ascending for determinism). It is the only
// representation allowed to carry the sentinel revisions NullID and WdirID.
type BaseSet struct {
	core *baseCore
	dir  common.Direction
	repo weakRef
	tags map[string]struct{}
}

var _ RevSet = (*BaseSet)(nil)

// Baseset builds a BaseSet from an ordered slice of ids, preserving
// insertion order (direction Unspecified).
func Baseset(ids []RevId, repo *Repo) *BaseSet {
	cp := make([]RevId, len(ids))
	copy(cp, ids)
	return &BaseSet{core: newBaseCore(cp), dir: Unspecified, repo: newWeakRef(repo)}
}

// BasesetFromHashset builds a BaseSet from an unordered hash-set. Direction
// is forced to Ascending so that iteration is deterministic even though the
// set itself carries no order.
func BasesetFromHashset(set mapset.Set, repo *Repo) *BaseSet {
	ids := make([]RevId, 0, set.Cardinality())
	for v := range set.Iter() {
		ids = append(ids, v.(RevId))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &BaseSet{core: newBaseCore(ids), dir: Ascending, repo: newWeakRef(repo)}
}

func (s *BaseSet) clone(dir common.Direction) *BaseSet {
	return &BaseSet{core: s.core, dir: dir, repo: s.repo, tags: s.tags}
}

func (s *BaseSet) direction() common.Direction { return s.dir }

func (s *BaseSet) orderedView() []RevId {
	switch s.dir {
	case Ascending:
		return s.core.ascending()
	case Descending:
		return reverseCopy(s.core.ascending())
	default:
		return s.core.list
	}
}

func (s *BaseSet) Contains(rev RevId) bool {
	return s.core.membership.Contains(rev)
}

func (s *BaseSet) Iter() RevIterator {
	return newSliceIterator(s.orderedView())
}

func (s *BaseSet) FastAsc() (RevIterator, bool) {
	if s.dir == Ascending {
		return newSliceIterator(s.core.ascending()), true
	}
	return nil, false
}

func (s *BaseSet) FastDesc() (RevIterator, bool) {
	if s.dir == Descending {
		return newSliceIterator(reverseCopy(s.core.ascending())), true
	}
	return nil, false
}

func (s *BaseSet) Len() int { return len(s.core.list) }

func (s *BaseSet) SizeHint() (int, bool) { return len(s.core.list), true }

func (s *BaseSet) First() (RevId, bool) {
	v := s.orderedView()
	if len(v) == 0 {
		return 0, false
	}
	return v[0], true
}

func (s *BaseSet) Last() (RevId, bool) {
	v := s.orderedView()
	if len(v) == 0 {
		return 0, false
	}
	return v[len(v)-1], true
}

func (s *BaseSet) Min() (RevId, bool) { return s.core.min() }
func (s *BaseSet) Max() (RevId, bool) { return s.core.max() }

func (s *BaseSet) IsAscending() bool {
	if s.Len() <= 1 {
		return true
	}
	return s.dir == Ascending
}

func (s *BaseSet) IsDescending() bool {
	if s.Len() <= 1 {
		return true
	}
	return s.dir == Descending
}

// containsSentinel reports whether the set holds NullID or WdirID, the
// guard IdSet's union fast path uses before handing a BaseSet to the
// bitmap layer.
func (s *BaseSet) containsSentinel() bool {
	return s.core.membership.Contains(common.NullID) || s.core.membership.Contains(common.WdirID)
}

func (s *BaseSet) Intersect(other RevSet) RevSet {
	if ob, ok := other.(*BaseSet); ok && s.dir == Ascending && ob.dir == Ascending {
		merged := s.core.membership.Intersect(ob.core.membership)
		return hashResultSet(merged, s)
	}
	if _, ok := other.(*NameSet); ok {
		return s.toNameSet().Intersect(other)
	}
	return genericIntersect(s, other)
}

func (s *BaseSet) Subtract(other RevSet) RevSet {
	if ob, ok := other.(*BaseSet); ok && s.dir == Ascending && ob.dir == Ascending {
		merged := s.core.membership.Difference(ob.core.membership)
		return hashResultSet(merged, s)
	}
	if _, ok := other.(*NameSet); ok {
		return s.toNameSet().Subtract(other)
	}
	return genericSubtract(s, other)
}

func (s *BaseSet) Union(other RevSet) RevSet {
	return genericUnion(s, other)
}

// hashResultSet rebuilds a BaseSet from a mapset result, preserving the
// receiver's Ascending direction (both inputs were required to be
// Ascending to reach this path).
func hashResultSet(result mapset.Set, receiver *BaseSet) RevSet {
	ids := make([]RevId, 0, result.Cardinality())
	for v := range result.Iter() {
		ids = append(ids, v.(RevId))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := &BaseSet{core: newBaseCore(ids), dir: Ascending, repo: receiver.repo, tags: receiver.tags}
	return out
}

// toNameSet converts self to a NameSet via a batch hash lookup, reaching
// the DAG fast path for algebra against another NameSet/IdSet.
func (s *BaseSet) toNameSet() RevSet {
	repo, err := s.repo.resolve()
	if err != nil {
		return s
	}
	ids := make([]RevId, 0, len(s.core.list))
	for _, id := range s.orderedView() {
		if !id.IsVirtual() {
			ids = append(ids, id)
		}
	}
	hashes, err := repo.Ids.IdsToHashes(ids)
	if err != nil {
		return s
	}
	ns := namesetFromHashes(repo, hashes, s.dir)
	ns.tags = s.tags
	return ns
}

func (s *BaseSet) Filter(p FilterFunc, repr FilterRepr) RevSet {
	return newFilteredSet(s, p, repr)
}

func (s *BaseSet) Sort(reverse bool) RevSet {
	if reverse {
		return s.clone(Descending)
	}
	return s.clone(Ascending)
}

func (s *BaseSet) Reverse() RevSet {
	if s.dir == Unspecified {
		return &BaseSet{core: newBaseCore(reverseCopy(s.core.list)), dir: Unspecified, repo: s.repo, tags: s.tags}
	}
	return s.clone(s.dir.Reversed())
}

func (s *BaseSet) Slice(start, stop int) (RevSet, error) {
	if start < 0 || stop < 0 {
		return nil, ErrInvalidSlice
	}
	v := s.orderedView()
	if start > len(v) {
		start = len(v)
	}
	if stop > len(v) {
		stop = len(v)
	}
	if start >= stop {
		return &BaseSet{core: newBaseCore(nil), dir: s.dir, repo: s.repo, tags: s.tags}, nil
	}
	out := make([]RevId, stop-start)
	copy(out, v[start:stop])
	return &BaseSet{core: newBaseCore(out), dir: s.dir, repo: s.repo, tags: s.tags}, nil
}

func (s *BaseSet) PrefetchFields(tags ...string) RevSet {
	c := s.clone(s.dir)
	c.tags = mergeTags(s.tags, tags...)
	return c
}

func (s *BaseSet) IterCtx(ctx context.Context) (CtxIterator, error) {
	base := &baseCtxIterator{it: s.Iter()}
	return applyPrefetch(ctx, s.repo, base, s.tags)
}

func (s *BaseSet) Repo() (*Repo, error) { return s.repo.resolve() }
