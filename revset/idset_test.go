package revset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerwatch/revgraph/common"
)

func TestIdsetRangeAscendingDescending(t *testing.T) {
	repo := newTestRepo(t, 10)

	asc := IdsetRange(repo, 2, 5, true)
	require.True(t, asc.IsAscending())
	require.Equal(t, []RevId{2, 3, 4, 5}, collect(asc.Iter()))

	desc := IdsetRange(repo, 2, 5, false)
	require.True(t, desc.IsDescending())
	require.Equal(t, []RevId{5, 4, 3, 2}, collect(desc.Iter()))
}

func TestIdsetRangeClampsAndEmptyOnInverted(t *testing.T) {
	repo := newTestRepo(t, 10)

	clamped := IdsetRange(repo, -5, 100, true)
	require.Equal(t, 10, clamped.Len())

	empty := IdsetRange(repo, 7, 3, true)
	require.Equal(t, 0, empty.Len())
}

func TestIdsetNativeAlgebra(t *testing.T) {
	repo := newTestRepo(t, 10)
	a := IdsetRange(repo, 0, 5, true)
	b := IdsetRange(repo, 3, 8, true)

	require.ElementsMatch(t, []RevId{3, 4, 5}, collect(a.Intersect(b).Iter()))
	require.ElementsMatch(t, []RevId{0, 1, 2, 3, 4, 5, 6, 7, 8}, collect(a.Union(b).Iter()))
	require.ElementsMatch(t, []RevId{0, 1, 2}, collect(a.Subtract(b).Iter()))
}

func TestIdsetUnionWithSentinelBaseSetFallsBack(t *testing.T) {
	repo := newTestRepo(t, 10)
	ids := IdsetRange(repo, 0, 3, true)
	withSentinel := Baseset([]RevId{common.NullID}, repo)

	result := ids.Union(withSentinel)
	require.True(t, result.Contains(common.NullID))
	require.ElementsMatch(t, []RevId{0, 1, 2, 3, common.NullID}, collect(result.Iter()))
}

func TestIdsetSentinelNeverContained(t *testing.T) {
	repo := newTestRepo(t, 10)
	s := Idset([]RevId{common.NullID, common.WdirID, 1, 2}, repo)
	require.Equal(t, 2, s.Len())
	require.False(t, s.Contains(common.NullID))
}
