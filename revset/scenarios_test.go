package revset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerwatch/revgraph/common"
)

func TestScenarioBasesetUnspecifiedAlgebra(t *testing.T) {
	repo := newTestRepo(t, 20)
	a := Baseset([]RevId{4, 0, 7, 6}, repo)
	b := Baseset([]RevId{5, 6, 7, 3}, repo)

	require.Equal(t, []RevId{4, 0, 7, 6, 5, 3}, collect(a.Union(b).Iter()))
	require.Equal(t, []RevId{7, 6}, collect(a.Intersect(b).Iter()))
	require.Equal(t, []RevId{4, 0}, collect(a.Subtract(b).Iter()))
}

func TestScenarioBasesetDescendingAlgebra(t *testing.T) {
	repo := newTestRepo(t, 20)
	a := Baseset([]RevId{4, 0, 7, 6}, repo).Sort(true)
	b := Baseset([]RevId{5, 6, 7, 3}, repo)

	require.Equal(t, []RevId{7, 6, 4, 0, 5, 3}, collect(a.Union(b).Iter()))
	require.ElementsMatch(t, []RevId{7, 6}, collect(a.Intersect(b).Iter()))
}

func TestScenarioIdsetDescendingThenReverse(t *testing.T) {
	repo := newTestRepo(t, 20)
	s := Idset([]RevId{1, 3, 2, 4, 11, 10}, repo)

	require.Equal(t, []RevId{11, 10, 4, 3, 2, 1}, collect(s.Iter()))

	rev := s.Reverse()
	require.Equal(t, []RevId{1, 2, 3, 4, 10, 11}, collect(rev.Iter()))
	require.Equal(t, 6, s.Len())

	min, ok := s.Min()
	require.True(t, ok)
	require.Equal(t, RevId(1), min)
	max, ok := s.Max()
	require.True(t, ok)
	require.Equal(t, RevId(11), max)
}

func TestScenarioSpansetIntersectBaseset(t *testing.T) {
	repo := newTestRepo(t, 20)
	span := Spanset(repo, 0, common.MaxID)
	other := Baseset([]RevId{common.NullID, 0, 5}, repo)

	require.Equal(t, []RevId{0, 5}, collect(span.Intersect(other).Iter()))
}

func TestScenarioGeneratorsetLastIsStableAfterDrain(t *testing.T) {
	repo := newTestRepo(t, 20)
	gs := Generatorset(chanOf(0, 1, 4), Ascending, repo)

	last, ok := gs.Last()
	require.True(t, ok)
	require.Equal(t, RevId(4), last)
	require.True(t, gs.done)
	require.Equal(t, []RevId{0, 1, 4}, gs.drained)

	last2, ok := gs.Last()
	require.True(t, ok)
	require.Equal(t, RevId(4), last2)
}

type countingProgress struct {
	total int
	msg   string
}

func (p *countingProgress) Advance(n int, message string) {
	p.total += n
	p.msg = message
}

func TestScenarioFilteredsetProgressCountsVisitsNotKeeps(t *testing.T) {
	repo := newTestRepo(t, 20)
	tracker := &countingProgress{}
	repo.Progress = tracker

	set := IdsetRange(repo, 0, 10, true).Filter(isEven, FilterRepr{Name: "even"})

	require.Equal(t, []RevId{0, 2, 4, 6, 8, 10}, collect(set.Iter()))
	require.False(t, set.Contains(3))
	require.True(t, set.Contains(4))
	// 11 ids visited during iteration, plus one visit per Contains call
	// (3 and 4 are both in the underlying range, so both reach the filter).
	require.Equal(t, 11+1+1, tracker.total)
	require.Equal(t, "even", tracker.msg)
}

func TestPropertySortIdempotent(t *testing.T) {
	repo := newTestRepo(t, 20)
	s := Baseset([]RevId{5, 1, 9, 3}, repo)
	once := s.Sort(false)
	twice := once.Sort(false)
	require.Equal(t, collect(once.Iter()), collect(twice.Iter()))
}

func TestPropertyReverseInvolution(t *testing.T) {
	repo := newTestRepo(t, 20)
	s := Baseset([]RevId{5, 1, 9, 3}, repo)
	back := s.Reverse().Reverse()
	require.Equal(t, collect(s.Iter()), collect(back.Iter()))
}

func TestPropertyFullRepoSetIdentity(t *testing.T) {
	repo := newTestRepo(t, 10)
	full := Fullreposet(repo)
	s := IdsetRange(repo, 2, 5, true)
	require.Same(t, s, full.Intersect(s))
}

func TestPropertySentinelIsolation(t *testing.T) {
	repo := newTestRepo(t, 10)
	s := Baseset([]RevId{common.NullID, common.WdirID, 1}, repo)
	r := s.Reverse()
	require.True(t, r.Contains(common.NullID))
	require.True(t, r.Contains(common.WdirID))

	idset := IdsetRange(repo, 0, 5, true)
	require.False(t, idset.Contains(common.NullID))
	require.False(t, idset.Contains(common.WdirID))
}

func TestPropertySliceOfFullRangeIsIdentity(t *testing.T) {
	repo := newTestRepo(t, 10)
	s := Baseset([]RevId{1, 2, 3}, repo)
	sliced, err := s.Slice(0, s.Len())
	require.NoError(t, err)
	require.Equal(t, collect(s.Iter()), collect(sliced.Iter()))
}

func TestPropertyPrefetchTransparency(t *testing.T) {
	repo := newTestRepo(t, 10)
	repo.RegisterPrefetch("noop", func(r *Repo, in CtxIterator) (CtxIterator, error) { return in, nil })

	plain := Baseset([]RevId{1, 2, 3}, repo)
	tagged := plain.PrefetchFields("noop")
	require.Equal(t, collect(plain.Iter()), collect(tagged.Iter()))
}
