package revset

import (
	"sync"
	"sync/atomic"

	"github.com/ledgerwatch/revgraph/dag"
)

// Repo is the immutable services bundle every set holds a weak reference
// to: the DagBackend, the cached IdMap, the prefetch registry, and an
// optional progress sink. In the source this is a single repository object
// sets hold a weak pointer to; here it is shared-ownership (*Repo) plus an
// observer token that is flipped dead on Close, so dropping the repo never
// blocks on a live set but any operation that needs it afterward fails with
// ErrRepoGone.
type Repo struct {
	Dag      dag.DagBackend
	Ids      dag.IdMap
	Progress ProgressSink
	token    *repoToken

	mu       sync.RWMutex
	prefetch map[string]PrefetchPipeline
	symbols  map[string]map[string]struct{}
}

// ProgressSink receives visit counts from FilteredSet as it walks an
// underlying set, independent of how many elements the predicate keeps.
// message carries the predicate's FilterRepr.Name so a ticking log line can
// say which filter it is reporting on. The progress package's Tracker
// implements this; it is nil by default so filtering never requires a
// progress model to be wired up.
type ProgressSink interface {
	Advance(n int, message string)
}

type repoToken struct {
	alive int32
}

func (t *repoToken) isAlive() bool {
	return atomic.LoadInt32(&t.alive) != 0
}

func (t *repoToken) kill() {
	atomic.StoreInt32(&t.alive, 0)
}

// NewRepo builds a services bundle over the given backend and id map.
func NewRepo(d dag.DagBackend, ids dag.IdMap) *Repo {
	return &Repo{
		Dag:      d,
		Ids:      ids,
		token:    &repoToken{alive: 1},
		prefetch: make(map[string]PrefetchPipeline),
		symbols:  make(map[string]map[string]struct{}),
	}
}

// Close invalidates the repo's weak back-reference. Sets that still hold it
// keep working for operations that don't need Repo(), but any call to
// Repo() after Close returns ErrRepoGone.
func (r *Repo) Close() {
	r.token.kill()
}

// weakRef is the handle a set actually stores: the repo pointer plus the
// token, so Repo() can fail fast without dereferencing anything that might
// have been finalized.
type weakRef struct {
	repo  *Repo
	token *repoToken
}

func newWeakRef(r *Repo) weakRef {
	if r == nil {
		return weakRef{}
	}
	return weakRef{repo: r, token: r.token}
}

func (w weakRef) resolve() (*Repo, error) {
	if w.repo == nil || w.token == nil || !w.token.isAlive() {
		return nil, ErrRepoGone
	}
	return w.repo, nil
}
