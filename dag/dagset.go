package dag

// hashSet is the concrete DagSet implementation shared by MemBackend and by
// ad-hoc conversions (a BaseSet being promoted to reach the DAG fast path
// hands this constructor a plain hash list). It is a value, not tied to any
// particular backend: "the DAG's hash-keyed set" in the design is this
// shape plus whatever hint its producer attached.
type hashSet struct {
	hashes []Hash20
	index  map[Hash20]struct{}
	hint   Hint
}

// NewDagSet builds a DagSet over hashes in the given natural order, tagged
// with hint. Passing HintNone means the order is not claimed to be
// meaningful.
func NewDagSet(hashes []Hash20, hint Hint) DagSet {
	cp := make([]Hash20, len(hashes))
	copy(cp, hashes)
	idx := make(map[Hash20]struct{}, len(cp))
	for _, h := range cp {
		idx[h] = struct{}{}
	}
	return &hashSet{hashes: cp, index: idx, hint: hint}
}

func (s *hashSet) Hint() Hint { return s.hint }
func (s *hashSet) Len() int   { return len(s.hashes) }
func (s *hashSet) SizeHint() (int, bool) {
	return len(s.hashes), true
}
func (s *hashSet) ContainsHash(h Hash20) bool {
	_, ok := s.index[h]
	return ok
}

type hashSliceIterator struct {
	hashes []Hash20
	pos    int
}

func (it *hashSliceIterator) Next() bool {
	it.pos++
	return it.pos < len(it.hashes)
}

func (it *hashSliceIterator) Hash() Hash20 { return it.hashes[it.pos] }

func (s *hashSet) Iter() HashIterator {
	return &hashSliceIterator{hashes: s.hashes, pos: -1}
}

func (s *hashSet) RevIter() HashIterator {
	rev := make([]Hash20, len(s.hashes))
	for i, h := range s.hashes {
		rev[len(s.hashes)-1-i] = h
	}
	return &hashSliceIterator{hashes: rev, pos: -1}
}

func (s *hashSet) FirstHash() (Hash20, bool) {
	if len(s.hashes) == 0 {
		return Hash20{}, false
	}
	return s.hashes[0], true
}

func (s *hashSet) LastHash() (Hash20, bool) {
	if len(s.hashes) == 0 {
		return Hash20{}, false
	}
	return s.hashes[len(s.hashes)-1], true
}

// algebra results intentionally drop the hint: the caller (NameSet) is
// responsible for re-requesting a hinted ordering via DagBackend.Sort when
// it needs one, matching the design's explicit "re-apply direction" rule.
func (s *hashSet) Union(other DagSet) DagSet {
	out := append([]Hash20{}, s.hashes...)
	o := other.(*hashSet)
	for _, h := range o.hashes {
		if _, ok := s.index[h]; !ok {
			out = append(out, h)
		}
	}
	return NewDagSet(out, HintNone)
}

func (s *hashSet) Intersect(other DagSet) DagSet {
	o := other.(*hashSet)
	var out []Hash20
	for _, h := range s.hashes {
		if _, ok := o.index[h]; ok {
			out = append(out, h)
		}
	}
	return NewDagSet(out, HintNone)
}

func (s *hashSet) Difference(other DagSet) DagSet {
	o := other.(*hashSet)
	var out []Hash20
	for _, h := range s.hashes {
		if _, ok := o.index[h]; !ok {
			out = append(out, h)
		}
	}
	return NewDagSet(out, HintNone)
}

func (s *hashSet) SkipTake(skip, take int) DagSet {
	if take <= 0 || skip >= len(s.hashes) {
		return NewDagSet(nil, s.hint)
	}
	end := skip + take
	if end > len(s.hashes) {
		end = len(s.hashes)
	}
	return NewDagSet(s.hashes[skip:end], s.hint)
}
