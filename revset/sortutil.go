package revset

import "github.com/petar/GoLLRB/llrb"

// revItem adapts a RevId to llrb.Item, grounded on
// turbo/stages/headerdownload/header_data_struct.go's TipItem.Less: an
// ordered tree keyed by a single scalar, used here whenever a combinator
// needs a materialised sort and doesn't already hold one of its operands
// pre-sorted.
type revItem RevId

func (a revItem) Less(than llrb.Item) bool {
	return RevId(a) < RevId(than.(revItem))
}

// sortRevs returns ids sorted ascending (or descending) via an LLRB tree.
// Used by UnionSet when neither operand has a fast iterator in the wanted
// direction, and by GeneratorSet.Min/Max once an unhinted source channel
// is exhausted.
func sortRevs(ids []RevId, ascending bool) []RevId {
	tree := llrb.New()
	for _, id := range ids {
		tree.ReplaceOrInsert(revItem(id))
	}
	if tree.Len() == 0 {
		return nil
	}
	out := make([]RevId, 0, tree.Len())
	tree.AscendGreaterOrEqual(tree.Min(), func(i llrb.Item) bool {
		out = append(out, RevId(i.(revItem)))
		return true
	})
	if !ascending {
		out = reverseCopy(out)
	}
	return out
}
