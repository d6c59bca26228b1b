package revset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerwatch/revgraph/common"
)

func TestFullRepoSetIntersectIsIdentity(t *testing.T) {
	repo := newTestRepo(t, 10)
	full := Fullreposet(repo)
	other := Baseset([]RevId{2, 4, 6}, repo)

	require.Same(t, other, full.Intersect(other))
}

func TestFullRepoSetContainsKnownRevisions(t *testing.T) {
	repo := newTestRepo(t, 10)
	full := Fullreposet(repo)
	require.True(t, full.Contains(0))
	require.True(t, full.Contains(9))
	require.False(t, full.Contains(10))
	require.False(t, full.Contains(common.NullID))
}

func TestFullRepoSetIteratesAllRevisions(t *testing.T) {
	repo := newTestRepo(t, 5)
	full := Fullreposet(repo)
	require.Equal(t, []RevId{0, 1, 2, 3, 4}, collect(full.Iter()))
}

func TestSpansetInjectsNullSentinel(t *testing.T) {
	repo := newTestRepo(t, 5)
	s := Spanset(repo, common.NullID, 2)
	require.True(t, s.Contains(common.NullID))
	require.ElementsMatch(t, []RevId{common.NullID, 0, 1, 2}, collect(s.Iter()))
}

func TestSpansetDescendingWhenLoGreaterThanHi(t *testing.T) {
	repo := newTestRepo(t, 5)
	s := Spanset(repo, 3, 0)
	require.Equal(t, []RevId{3, 2, 1, 0}, collect(s.Iter()))
}
