package revset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterPrefetchAppliesInSortedOrder(t *testing.T) {
	repo := newTestRepo(t, 5)
	var order []string

	repo.RegisterPrefetch("b-field", func(r *Repo, in CtxIterator) (CtxIterator, error) {
		order = append(order, "b-field")
		return in, nil
	})
	repo.RegisterPrefetch("a-field", func(r *Repo, in CtxIterator) (CtxIterator, error) {
		order = append(order, "a-field")
		return in, nil
	})

	set := Baseset([]RevId{0, 1}, repo).PrefetchFields("b-field", "a-field")
	it, err := set.IterCtx(context.Background())
	require.NoError(t, err)
	for it.Next() {
		require.NotNil(t, it.Ctx())
	}
	require.NoError(t, it.Err())
	require.Equal(t, []string{"a-field", "b-field"}, order)
}

func TestUnknownPrefetchTagErrors(t *testing.T) {
	repo := newTestRepo(t, 5)
	set := Baseset([]RevId{0, 1}, repo).PrefetchFields("missing")
	_, err := set.IterCtx(context.Background())
	require.ErrorIs(t, err, ErrUnknownPrefetchField)
}

func TestBuggyPrefetchPipelineReturningNilIteratorIsProgrammingError(t *testing.T) {
	repo := newTestRepo(t, 5)
	repo.RegisterPrefetch("broken", func(r *Repo, in CtxIterator) (CtxIterator, error) {
		return nil, nil
	})

	set := Baseset([]RevId{0, 1}, repo).PrefetchFields("broken")
	_, err := set.IterCtx(context.Background())
	require.Error(t, err)
	var progErr *ProgrammingErr
	require.ErrorAs(t, err, &progErr)
}

func TestRepoCloseMakesRepoUnresolvable(t *testing.T) {
	repo := newTestRepo(t, 5)
	set := Baseset([]RevId{0, 1}, repo)

	repo.Close()
	_, err := set.Repo()
	require.ErrorIs(t, err, ErrRepoGone)

	// Structural operations keep working against the live set.
	require.True(t, set.Contains(0))
}
