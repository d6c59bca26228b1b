package revset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerwatch/revgraph/common"
)

func TestBasesetPreservesInsertionOrder(t *testing.T) {
	repo := newTestRepo(t, 10)
	s := Baseset([]RevId{5, 1, 3}, repo)
	require.False(t, s.IsAscending())
	require.False(t, s.IsDescending())
	require.Equal(t, []RevId{5, 1, 3}, collect(s.Iter()))
}

func TestBasesetSortAndReverse(t *testing.T) {
	repo := newTestRepo(t, 10)
	s := Baseset([]RevId{5, 1, 3}, repo)

	asc := s.Sort(false)
	require.True(t, asc.IsAscending())
	require.Equal(t, []RevId{1, 3, 5}, collect(asc.Iter()))

	desc := s.Sort(true)
	require.True(t, desc.IsDescending())
	require.Equal(t, []RevId{5, 3, 1}, collect(desc.Iter()))

	rev := s.Reverse()
	require.Equal(t, []RevId{3, 1, 5}, collect(rev.Iter()))
}

func TestBasesetContainsAndMinMax(t *testing.T) {
	repo := newTestRepo(t, 10)
	s := Baseset([]RevId{5, 1, 3}, repo)
	require.True(t, s.Contains(5))
	require.False(t, s.Contains(9))

	min, ok := s.Min()
	require.True(t, ok)
	require.Equal(t, RevId(1), min)

	max, ok := s.Max()
	require.True(t, ok)
	require.Equal(t, RevId(5), max)
}

func TestBasesetSentinelMembership(t *testing.T) {
	repo := newTestRepo(t, 10)
	s := Baseset([]RevId{common.NullID, 1, 2}, repo)
	require.True(t, s.containsSentinel())
	require.True(t, s.Contains(common.NullID))

	without := Baseset([]RevId{1, 2}, repo)
	require.False(t, without.containsSentinel())
}

func TestBasesetIntersectHashFastPath(t *testing.T) {
	repo := newTestRepo(t, 10)
	a := BasesetFromHashset(toMapset(1, 2, 3, 4), repo)
	b := BasesetFromHashset(toMapset(3, 4, 5), repo)

	result := a.Intersect(b)
	require.ElementsMatch(t, []RevId{3, 4}, collect(result.Iter()))
}

func TestBasesetSlice(t *testing.T) {
	repo := newTestRepo(t, 10)
	s := Baseset([]RevId{1, 2, 3, 4, 5}, repo).Sort(false)
	sliced, err := s.Slice(1, 3)
	require.NoError(t, err)
	require.Equal(t, []RevId{2, 3}, collect(sliced.Iter()))

	_, err = s.Slice(-1, 2)
	require.ErrorIs(t, err, ErrInvalidSlice)
}
