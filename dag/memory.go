package dag

import (
	"sort"
	"sync"
)

// MemBackend is a small in-memory DagBackend + IdMap, grounded on the
// teacher's NewMemDatabase pattern (ethdb/memory_database.go): an in-memory
// stand-in for the real storage-backed service, good enough to exercise the
// full revset algebra in tests and in the CLI inspector without a real
// repository on disk.
//
// Commits are assigned revisions in insertion order, which this backend
// also treats as a valid topological order (parents must be added before
// their children by the caller).
type MemBackend struct {
	mu     sync.RWMutex
	byRev  []Hash20
	revOf  map[Hash20]RevId
}

var (
	_ DagBackend = (*MemBackend)(nil)
	_ IdMap      = (*MemBackend)(nil)
)

// NewMemBackend builds an empty in-memory backend.
func NewMemBackend() *MemBackend {
	return &MemBackend{revOf: make(map[Hash20]RevId)}
}

// AddCommit assigns the next revision number to hash and returns it. The
// caller is responsible for adding parents before children if it cares
// about SortByTopology's order matching real topology.
func (m *MemBackend) AddCommit(hash Hash20) RevId {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := RevId(len(m.byRev))
	m.byRev = append(m.byRev, hash)
	m.revOf[hash] = id
	return id
}

func (m *MemBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byRev)
}

func (m *MemBackend) AllIds() DagSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return NewDagSet(m.byRev, HintAsc)
}

func (m *MemBackend) Sort(in DagSet, asc bool) DagSet {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hashes []Hash20
	it := in.Iter()
	for it.Next() {
		hashes = append(hashes, it.Hash())
	}
	sort.Slice(hashes, func(i, j int) bool {
		ri, oki := m.revOf[hashes[i]]
		rj, okj := m.revOf[hashes[j]]
		if !oki || !okj {
			return false
		}
		if asc {
			return ri < rj
		}
		return ri > rj
	})
	hint := HintAsc
	if !asc {
		hint = HintDesc
	}
	return NewDagSet(hashes, hint)
}

func (m *MemBackend) SpansRange(lo, hi RevId, asc bool) DagSet {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if lo < 0 {
		lo = 0
	}
	if int(hi) >= len(m.byRev) {
		hi = RevId(len(m.byRev) - 1)
	}
	if lo > hi {
		return NewDagSet(nil, HintAsc)
	}
	out := make([]Hash20, 0, int(hi-lo)+1)
	if asc {
		for r := lo; r <= hi; r++ {
			out = append(out, m.byRev[r])
		}
		return NewDagSet(out, HintAsc)
	}
	for r := hi; r >= lo; r-- {
		out = append(out, m.byRev[r])
	}
	return NewDagSet(out, HintDesc)
}

func (m *MemBackend) SortByTopology(in DagSet) DagSet {
	return m.Sort(in, true)
}

func (m *MemBackend) IdToHash(id RevId) (Hash20, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id < 0 || int(id) >= len(m.byRev) {
		return Hash20{}, ErrNotFound
	}
	return m.byRev[id], nil
}

func (m *MemBackend) HashToID(h Hash20) (RevId, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.revOf[h]
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

func (m *MemBackend) IdsToHashes(ids []RevId) ([]Hash20, error) {
	out := make([]Hash20, len(ids))
	for i, id := range ids {
		h, err := m.IdToHash(id)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}
