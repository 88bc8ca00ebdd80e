package resolver

import "sort"

// rank orders candidates best-first: hint match descending, cover
// specificity descending, then the fixed lexicographic tuple of
// (route family, operation, world, morphism row, node, cover) ids.
// Insertion order never influences the outcome.
func rank(cands []candidate, hint string) {
	sort.SliceStable(cands, func(i, j int) bool {
		return compare(cands[i], cands[j], hint) < 0
	})
}

// equalRank reports an exact tie under the full ranking order, the
// condition the resolver treats as hard ambiguity.
func equalRank(a, b candidate, hint string) bool {
	return compare(a, b, hint) == 0
}

// compare is the total ranking order; negative means a ranks before b.
func compare(a, b candidate, hint string) int {
	am, bm := hintRank(a, hint), hintRank(b, hint)
	if am != bm {
		return bm - am
	}
	if as, bs := a.cover.Specificity(), b.cover.Specificity(); as != bs {
		return bs - as
	}
	pairs := [][2]string{
		{a.route.Family, b.route.Family},
		{a.op.ID, b.op.ID},
		{a.route.WorldID, b.route.WorldID},
		{a.route.MorphismRowID, b.route.MorphismRowID},
		{a.route.SiteNode, b.route.SiteNode},
		{a.route.Cover, b.route.Cover},
	}
	for _, p := range pairs {
		if p[0] != p[1] {
			if p[0] < p[1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func hintRank(c candidate, hint string) int {
	if hint != "" && c.route.Family == hint {
		return 1
	}
	return 0
}
