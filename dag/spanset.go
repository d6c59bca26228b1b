package dag

import (
	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/c2h5oh/datasize"
)

// shardByteBudget is the teacher's on-disk shard limit (ethdb/bitmapdb's
// ShardLimit = 3 * datasize.KB), kept as the same literal even though this
// SpanSet never touches a disk. roaring64 has no cheap serialized-size probe
// the way the 32-bit codec does, so the budget is approximated as an
// element count (run-compressed data averages well under 2 bytes/element).
const shardByteBudget = 3 * datasize.KB
const shardCardinalityLimit = uint64(shardByteBudget) / 2

// SpanSet is the Roaring-bitmap-backed span-compressed integer set IdSet
// wraps. It is adapted from ethdb/bitmapdb/dbutils.go's AppendMergeByOr /
// writeBitmapSharded pair: deltas are merged into the trailing shard and,
// once a merged shard grows past shardCardinalityLimit, split back down
// using the same "AddRange by step, And, Or, RemoveRange" technique the
// teacher used to keep individual LMDB writes small. Queries always read
// through the single merged bitmap (bm); shards exist purely to mirror the
// teacher's write-path discipline.
type SpanSet struct {
	bm     *roaring64.Bitmap
	shards []*roaring64.Bitmap
}

// NewSpanSet returns an empty SpanSet.
func NewSpanSet() *SpanSet {
	return &SpanSet{bm: roaring64.New()}
}

// NewSpanSetFromValues builds a SpanSet containing exactly values, in one
// merge rather than one per element.
func NewSpanSetFromValues(values []uint64) *SpanSet {
	s := NewSpanSet()
	if len(values) == 0 {
		return s
	}
	delta := roaring64.New()
	for _, v := range values {
		delta.Add(v)
	}
	s.MergeOr(delta)
	return s
}

// NewSpanSetRange builds a SpanSet containing every integer in [lo, hi] in
// one run rather than one insertion per element.
func NewSpanSetRange(lo, hi uint64) *SpanSet {
	s := NewSpanSet()
	if hi < lo {
		return s
	}
	delta := roaring64.New()
	delta.AddRange(lo, hi+1)
	s.MergeOr(delta)
	return s
}

func wrapBitmap(bm *roaring64.Bitmap) *SpanSet {
	return &SpanSet{bm: bm, shards: []*roaring64.Bitmap{bm}}
}

// MergeOr merges delta into the set by Or, maintaining sharding: the last
// shard absorbs delta, then the combined bitmap is split back into shards
// bounded by shardCardinalityLimit.
func (s *SpanSet) MergeOr(delta *roaring64.Bitmap) {
	combined := delta.Clone()
	if len(s.shards) > 0 {
		last := s.shards[len(s.shards)-1]
		combined.Or(last)
		s.shards = s.shards[:len(s.shards)-1]
	}
	s.shards = append(s.shards, shardDelta(combined)...)
	s.bm = roaring64.FastOr(s.shards...)
}

// shardDelta splits delta into shards no larger than shardCardinalityLimit,
// following writeBitmapSharded's technique: walk delta from its minimum in
// steps sized so that roughly shardCardinalityLimit elements land in each
// shard, using AddRange+And to carve out each step and RemoveRange to
// advance.
func shardDelta(delta *roaring64.Bitmap) []*roaring64.Bitmap {
	if delta.IsEmpty() {
		return nil
	}
	if delta.GetCardinality() <= shardCardinalityLimit {
		return []*roaring64.Bitmap{delta}
	}

	shardsAmount := delta.GetCardinality() / shardCardinalityLimit
	if shardsAmount == 0 {
		shardsAmount = 1
	}
	step := (delta.Maximum() - delta.Minimum()) / shardsAmount
	step /= 16
	if step == 0 {
		step = 1
	}

	var shards []*roaring64.Bitmap
	shard, tmp := roaring64.New(), roaring64.New()
	for !delta.IsEmpty() {
		from := delta.Minimum()
		to := from + step
		tmp.Clear()
		tmp.AddRange(from, to)
		tmp.And(delta)
		shard.Or(tmp)
		shard.RunOptimize()
		delta.RemoveRange(from, to)
		if delta.IsEmpty() {
			break
		}
		if shard.GetCardinality() >= shardCardinalityLimit {
			shards = append(shards, shard)
			shard = roaring64.New()
		}
	}
	if shard.GetCardinality() > 0 {
		shards = append(shards, shard)
	}
	return shards
}

func (s *SpanSet) Contains(v uint64) bool { return s.bm.Contains(v) }
func (s *SpanSet) Cardinality() uint64    { return s.bm.GetCardinality() }
func (s *SpanSet) IsEmpty() bool          { return s.bm.IsEmpty() }

func (s *SpanSet) Minimum() (uint64, bool) {
	if s.bm.IsEmpty() {
		return 0, false
	}
	return s.bm.Minimum(), true
}

func (s *SpanSet) Maximum() (uint64, bool) {
	if s.bm.IsEmpty() {
		return 0, false
	}
	return s.bm.Maximum(), true
}

func (s *SpanSet) And(other *SpanSet) *SpanSet {
	return wrapBitmap(roaring64.And(s.bm, other.bm))
}

func (s *SpanSet) Or(other *SpanSet) *SpanSet {
	return wrapBitmap(roaring64.Or(s.bm, other.bm))
}

func (s *SpanSet) AndNot(other *SpanSet) *SpanSet {
	return wrapBitmap(roaring64.AndNot(s.bm, other.bm))
}

// RangeCardinality returns how many members fall in [lo, hi].
func (s *SpanSet) RangeCardinality(lo, hi uint64) uint64 {
	bound := roaring64.New()
	bound.AddRange(lo, hi+1)
	return roaring64.And(s.bm, bound).GetCardinality()
}

// Ascending returns the set's members in ascending order.
func (s *SpanSet) Ascending() []uint64 {
	return s.bm.ToArray()
}

// Descending returns the set's members in descending order.
func (s *SpanSet) Descending() []uint64 {
	asc := s.bm.ToArray()
	out := make([]uint64, len(asc))
	for i, v := range asc {
		out[len(asc)-1-i] = v
	}
	return out
}
