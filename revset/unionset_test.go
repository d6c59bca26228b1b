package revset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnionSetFastMergeDedupsEqualHeads(t *testing.T) {
	repo := newTestRepo(t, 10)
	a := Baseset([]RevId{1, 3, 5, 7}, repo).Sort(false)
	b := Baseset([]RevId{3, 4, 5, 6}, repo).Sort(false)

	u := a.Union(b)
	require.Equal(t, []RevId{1, 3, 4, 5, 6, 7}, collect(u.Iter()))
}

func TestUnionSetDescending(t *testing.T) {
	repo := newTestRepo(t, 10)
	a := Baseset([]RevId{1, 3, 5}, repo).Sort(true)
	b := Baseset([]RevId{2, 3, 4}, repo).Sort(true)

	u := a.Union(b)
	require.Equal(t, []RevId{5, 4, 3, 2, 1}, collect(u.Iter()))
}

func TestUnionSetUnspecifiedConcatenatesWithDedup(t *testing.T) {
	repo := newTestRepo(t, 10)
	a := Baseset([]RevId{5, 1, 3}, repo)
	b := Baseset([]RevId{3, 9}, repo)

	u := a.Union(b)
	require.Equal(t, []RevId{5, 1, 3, 9}, collect(u.Iter()))
}

func TestUnionSetContainsAndLen(t *testing.T) {
	repo := newTestRepo(t, 10)
	a := Baseset([]RevId{1, 2}, repo)
	b := Baseset([]RevId{2, 3}, repo)
	u := a.Union(b)

	require.True(t, u.Contains(3))
	require.False(t, u.Contains(9))
	require.Equal(t, 3, u.Len())
}

func TestUnionSetSortDoesNotReMerge(t *testing.T) {
	repo := newTestRepo(t, 10)
	a := Baseset([]RevId{5, 1}, repo)
	b := Baseset([]RevId{3, 9}, repo)
	u := a.Union(b).Sort(false)

	require.Equal(t, []RevId{1, 3, 5, 9}, collect(u.Iter()))
}
