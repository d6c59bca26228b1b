package revset

import (
	"testing"

	mapset "github.com/deckarep/golang-set"

	"github.com/ledgerwatch/revgraph/common"
	"github.com/ledgerwatch/revgraph/dag"
)

func toMapset(ids ...RevId) mapset.Set {
	s := mapset.NewThreadUnsafeSet()
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// newTestRepo builds a Repo over an in-memory DAG of n commits, numbered
// 0..n-1 in topological (and therefore numeric) order.
func newTestRepo(t *testing.T, n int) *Repo {
	t.Helper()
	backend := dag.NewMemBackend()
	for i := 0; i < n; i++ {
		var h common.Hash20
		h[19] = byte(i)
		h[18] = byte(i >> 8)
		backend.AddCommit(h)
	}
	return NewRepo(backend, backend)
}

func collect(it RevIterator) []RevId {
	var out []RevId
	for it.Next() {
		out = append(out, it.Rev())
	}
	return out
}
