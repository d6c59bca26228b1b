package dag

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
)

// CachedIdMap fronts an IdMap with a bounded LRU and a singleflight group,
// so concurrent lookups for the same miss only hit the underlying map
// once. Grounded on the teacher's header-download cache discipline
// (turbo/stages/headerdownload keeps a bounded working set of headers in
// memory rather than re-fetching per consumer).
type CachedIdMap struct {
	underlying IdMap
	toHash     *lru.Cache
	toID       *lru.Cache
	group      singleflight.Group
}

// NewCachedIdMap wraps underlying with two size-bounded LRUs, one per
// lookup direction.
func NewCachedIdMap(underlying IdMap, size int) (*CachedIdMap, error) {
	toHash, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	toID, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachedIdMap{underlying: underlying, toHash: toHash, toID: toID}, nil
}

var _ IdMap = (*CachedIdMap)(nil)

func (c *CachedIdMap) IdToHash(id RevId) (Hash20, error) {
	if v, ok := c.toHash.Get(id); ok {
		return v.(Hash20), nil
	}
	v, err, _ := c.group.Do(hashKey(id), func() (interface{}, error) {
		if v, ok := c.toHash.Get(id); ok {
			return v, nil
		}
		h, err := c.underlying.IdToHash(id)
		if err != nil {
			return nil, err
		}
		c.toHash.Add(id, h)
		c.toID.Add(h, id)
		return h, nil
	})
	if err != nil {
		return Hash20{}, err
	}
	return v.(Hash20), nil
}

func (c *CachedIdMap) HashToID(h Hash20) (RevId, error) {
	if v, ok := c.toID.Get(h); ok {
		return v.(RevId), nil
	}
	v, err, _ := c.group.Do(idKey(h), func() (interface{}, error) {
		if v, ok := c.toID.Get(h); ok {
			return v, nil
		}
		id, err := c.underlying.HashToID(h)
		if err != nil {
			return nil, err
		}
		c.toID.Add(h, id)
		c.toHash.Add(id, h)
		return id, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(RevId), nil
}

func (c *CachedIdMap) IdsToHashes(ids []RevId) ([]Hash20, error) {
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

func hashKey(id RevId) string {
	return "h:" + strconv.FormatInt(int64(id), 10)
}

func idKey(h Hash20) string {
	return "i:" + h.String()
}
