package revset

// generic.go holds the membership-driven fallbacks used whenever two set
// representations have no dedicated native path against each other. They
// are the algebra of last resort: correct for any RevSet pair, at the cost
// of walking the receiver's own iteration order and testing membership in
// the other operand.

// genericIntersect walks a in a's own direction, keeping members also
// present in b. Per P4, the result carries a's direction.
func genericIntersect(a, b RevSet) RevSet {
	var out []RevId
	it := a.Iter()
	for it.Next() {
		r := it.Rev()
		if b.Contains(r) {
			out = append(out, r)
		}
	}
	return wrapGeneric(out, a)
}

// genericSubtract walks a in a's own direction, dropping members present
// in b. Result carries a's direction.
func genericSubtract(a, b RevSet) RevSet {
	var out []RevId
	it := a.Iter()
	for it.Next() {
		r := it.Rev()
		if !b.Contains(r) {
			out = append(out, r)
		}
	}
	return wrapGeneric(out, a)
}

// genericUnion defers to UnionSet, which already knows how to merge two
// arbitrarily-ordered sets lazily, falling back to a materialized sort only
// when neither side's fast path satisfies the requested direction.
func genericUnion(a, b RevSet) RevSet {
	return newUnionSet(a, b)
}

// wrapGeneric packages a materialized id slice as a BaseSet carrying the
// source set's repo/direction, matching how eager fallbacks are expected to
// behave: the result is concrete (no further laziness), but still reports
// the direction the caller asked for.
func wrapGeneric(ids []RevId, like RevSet) RevSet {
	dirHolder, ok := like.(interface{ direction() Direction })
	dir := Unspecified
	if ok {
		dir = dirHolder.direction()
	}
	repoHolder, ok := like.(interface {
		Repo() (*Repo, error)
	})
	var repo *Repo
	if ok {
		repo, _ = repoHolder.Repo()
	}
	bs := Baseset(ids, repo)
	switch dir {
	case Ascending:
		return bs.clone(Ascending)
	case Descending:
		return bs.clone(Descending)
	default:
		return bs
	}
}
