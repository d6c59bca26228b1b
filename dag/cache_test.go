package dag

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// countingIdMap counts how many times the underlying lookup actually ran,
// so tests can assert the LRU + singleflight combination collapses
// concurrent identical misses into one backend call.
type countingIdMap struct {
	hashCalls int32
	idCalls   int32
	hashOf    map[RevId]Hash20
	idOf      map[Hash20]RevId
}

func newCountingIdMap() *countingIdMap {
	return &countingIdMap{hashOf: make(map[RevId]Hash20), idOf: make(map[Hash20]RevId)}
}

func (c *countingIdMap) put(id RevId, h Hash20) {
	c.hashOf[id] = h
	c.idOf[h] = id
}

func (c *countingIdMap) IdToHash(id RevId) (Hash20, error) {
	atomic.AddInt32(&c.hashCalls, 1)
	h, ok := c.hashOf[id]
	if !ok {
		return Hash20{}, ErrNotFound
	}
	return h, nil
}

func (c *countingIdMap) HashToID(h Hash20) (RevId, error) {
	atomic.AddInt32(&c.idCalls, 1)
	id, ok := c.idOf[h]
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

func (c *countingIdMap) IdsToHashes(ids []RevId) ([]Hash20, error) {
	out := make([]Hash20, len(ids))
	for i, id := range ids {
		h, err := c.IdToHash(id)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

func hashFor(b byte) Hash20 {
	var h Hash20
	h[0] = b
	return h
}

func TestCachedIdMapHitsAvoidBackendCalls(t *testing.T) {
	backend := newCountingIdMap()
	backend.put(1, hashFor(1))
	cache, err := NewCachedIdMap(backend, 16)
	require.NoError(t, err)

	h, err := cache.IdToHash(1)
	require.NoError(t, err)
	require.Equal(t, hashFor(1), h)
	require.EqualValues(t, 1, backend.hashCalls)

	h2, err := cache.IdToHash(1)
	require.NoError(t, err)
	require.Equal(t, h, h2)
	require.EqualValues(t, 1, backend.hashCalls, "second lookup must be served from cache")
}

func TestCachedIdMapPopulatesBothDirections(t *testing.T) {
	backend := newCountingIdMap()
	backend.put(7, hashFor(7))
	cache, err := NewCachedIdMap(backend, 16)
	require.NoError(t, err)

	_, err = cache.IdToHash(7)
	require.NoError(t, err)

	id, err := cache.HashToID(hashFor(7))
	require.NoError(t, err)
	require.Equal(t, RevId(7), id)
	require.EqualValues(t, 0, backend.idCalls, "reverse lookup already populated by the forward miss")
}

// TestCachedIdMapCollapsesConcurrentMisses exercises the singleflight path:
// many goroutines racing to resolve the same never-before-seen id should
// produce exactly one call into the backend.
func TestCachedIdMapCollapsesConcurrentMisses(t *testing.T) {
	backend := newCountingIdMap()
	backend.put(42, hashFor(42))
	cache, err := NewCachedIdMap(backend, 16)
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	results := make([]Hash20, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			h, err := cache.IdToHash(42)
			require.NoError(t, err)
			results[i] = h
		}(i)
	}
	wg.Wait()

	for _, h := range results {
		require.Equal(t, hashFor(42), h)
	}
	require.EqualValues(t, 1, backend.hashCalls)
}

func TestCachedIdMapMissPropagatesNotFound(t *testing.T) {
	backend := newCountingIdMap()
	cache, err := NewCachedIdMap(backend, 16)
	require.NoError(t, err)

	_, err = cache.IdToHash(99)
	require.ErrorIs(t, err, ErrNotFound)
}
