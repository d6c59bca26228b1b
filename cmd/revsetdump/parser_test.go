package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerwatch/revgraph/dag"
	"github.com/ledgerwatch/revgraph/revset"
)

func testRepo(t *testing.T, n int) *revset.Repo {
	t.Helper()
	backend := dag.NewMemBackend()
	for i := 0; i < n; i++ {
		backend.AddCommit(syntheticHash(i))
	}
	return revset.NewRepo(backend, backend)
}

func members(t *testing.T, set revset.RevSet) []revset.RevId {
	t.Helper()
	var out []revset.RevId
	it := set.Iter()
	for it.Next() {
		out = append(out, it.Rev())
	}
	return out
}

func TestParseIdList(t *testing.T) {
	repo := testRepo(t, 10)
	set, err := parseExpr("1,2,3", repo)
	require.NoError(t, err)
	require.ElementsMatch(t, []revset.RevId{1, 2, 3}, members(t, set))
}

func TestParseUnion(t *testing.T) {
	repo := testRepo(t, 10)
	set, err := parseExpr("1,2 | 3,4", repo)
	require.NoError(t, err)
	require.ElementsMatch(t, []revset.RevId{1, 2, 3, 4}, members(t, set))
}

func TestParseIntersect(t *testing.T) {
	repo := testRepo(t, 10)
	set, err := parseExpr("(1,2,3) & (2,3,4)", repo)
	require.NoError(t, err)
	require.ElementsMatch(t, []revset.RevId{2, 3}, members(t, set))
}

func TestParseSubtractAndReverse(t *testing.T) {
	repo := testRepo(t, 10)
	set, err := parseExpr("1,2,3 - 2", repo)
	require.NoError(t, err)
	require.ElementsMatch(t, []revset.RevId{1, 3}, members(t, set))

	rev, err := parseExpr("~1,2,3", repo)
	require.NoError(t, err)
	require.Equal(t, []revset.RevId{3, 2, 1}, members(t, rev))
}

func TestParseErrors(t *testing.T) {
	repo := testRepo(t, 10)
	_, err := parseExpr("(1,2", repo)
	require.Error(t, err)

	_, err = parseExpr("", repo)
	require.Error(t, err)

	_, err = parseExpr("1,2 $ 3", repo)
	require.Error(t, err)
}
