package revset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func chanOf(ids ...RevId) <-chan RevId {
	ch := make(chan RevId, len(ids))
	for _, id := range ids {
		ch <- id
	}
	close(ch)
	return ch
}

func TestGeneratorSetIteratesAndCaches(t *testing.T) {
	repo := newTestRepo(t, 10)
	gs := Generatorset(chanOf(1, 2, 3), Ascending, repo)

	require.Equal(t, []RevId{1, 2, 3}, collect(gs.Iter()))
	// Second pass reads from the drained cache, not the (now closed) channel.
	require.Equal(t, []RevId{1, 2, 3}, collect(gs.Iter()))
}

func TestGeneratorSetContainsShortCircuitsOnMonotonic(t *testing.T) {
	repo := newTestRepo(t, 10)
	gs := Generatorset(chanOf(1, 3, 5, 7), Ascending, repo)

	require.True(t, gs.Contains(5))
	require.False(t, gs.Contains(4))
	require.False(t, gs.Contains(100))
}

func TestGeneratorSetLenDrainsFully(t *testing.T) {
	repo := newTestRepo(t, 10)
	gs := Generatorset(chanOf(1, 2, 3, 4), Unspecified, repo)
	require.Equal(t, 4, gs.Len())
}

func TestGeneratorSetSortMaterializes(t *testing.T) {
	repo := newTestRepo(t, 10)
	gs := Generatorset(chanOf(3, 1, 2), Unspecified, repo)
	sorted := gs.Sort(false)
	require.Equal(t, []RevId{1, 2, 3}, collect(sorted.Iter()))
}
