package gate

import (
	"fmt"

	"doctrine/internal/world"
	"doctrine/pkg/failures"
)

// runDescent checks existence and contractible uniqueness of a global
// value reconstructing the local family. Structural problems (cover
// validity, arity, local definability) accumulate; the compatibility
// sweeps and the search abort on their first violation to keep witness
// digests stable and small.
func runDescent[C comparable, V any](w world.World[C, V], c Descent[C, V], profile Profile, schemes *SchemeRegistry[C, V]) Result {
	if fs := descentStructure(w, c); len(fs) > 0 {
		failures.Sort(fs)
		return rejected(fs...)
	}

	if !c.OverlapCertified {
		if f, ok := descentOverlaps(w, c); !ok {
			return rejected(f)
		}
	}
	if !c.CocycleCertified {
		if f, ok := descentCocycles(w, c); !ok {
			return rejected(f)
		}
	}

	if c.Contractibility != nil {
		return descentCertified(w, c, schemes)
	}
	return descentSearch(w, c, profile)
}

// descentStructure validates cover, arity, and per-leg definability.
func descentStructure[C comparable, V any](w world.World[C, V], c Descent[C, V]) []failures.Failure {
	var fs []failures.Failure
	if !w.ValidCover(c.Base, c.Legs) {
		fs = append(fs, failures.New(failures.ClassDescent, LawCover,
			"legs do not form a declared cover of the base context"))
	}
	if len(c.Legs) != len(c.Locals) {
		fs = append(fs, failures.New(failures.ClassDescent, LawCover,
			fmt.Sprintf("cover has %d legs but %d local values were supplied", len(c.Legs), len(c.Locals))))
		return fs
	}
	for i := range c.Legs {
		if !w.Definable(c.Legs[i], c.Locals[i]) {
			fs = append(fs, failures.New(failures.ClassDescent, LawDefinability,
				fmt.Sprintf("local value %d is not definable at its leg", i)).
				With("leg_index", fmt.Sprintf("%d", i)))
		}
	}
	return fs
}

// descentOverlaps requires every unordered pair of locals to agree on
// the pairwise overlap. First incompatible pair aborts.
func descentOverlaps[C comparable, V any](w world.World[C, V], c Descent[C, V]) (failures.Failure, bool) {
	for i := 0; i < len(c.Legs); i++ {
		for j := i + 1; j < len(c.Legs); j++ {
			o, ok := w.Overlap(c.Legs[i], c.Legs[j])
			if !ok {
				continue
			}
			ri, ok := w.Restrict(c.Locals[i], c.Legs[i], o)
			if !ok {
				return pairFailure(LawOverlap, i, j,
					fmt.Sprintf("local %d does not restrict to its overlap with leg %d", i, j)), false
			}
			rj, ok := w.Restrict(c.Locals[j], c.Legs[j], o)
			if !ok {
				return pairFailure(LawOverlap, i, j,
					fmt.Sprintf("local %d does not restrict to its overlap with leg %d", j, i)), false
			}
			if !w.EqualAt(o, ri, rj) {
				return pairFailure(LawOverlap, i, j,
					fmt.Sprintf("locals %d and %d disagree on their overlap", i, j)), false
			}
		}
	}
	return failures.Failure{}, true
}

// descentCocycles requires every unordered triple of locals to agree on
// the triple intersection. First violation aborts.
func descentCocycles[C comparable, V any](w world.World[C, V], c Descent[C, V]) (failures.Failure, bool) {
	for i := 0; i < len(c.Legs); i++ {
		for j := i + 1; j < len(c.Legs); j++ {
			for k := j + 1; k < len(c.Legs); k++ {
				ij, ok := w.Overlap(c.Legs[i], c.Legs[j])
				if !ok {
					continue
				}
				o, ok := w.Overlap(ij, c.Legs[k])
				if !ok {
					continue
				}
				idx := []int{i, j, k}
				restricted := make([]V, 3)
				for n, m := range idx {
					r, ok := w.Restrict(c.Locals[m], c.Legs[m], o)
					if !ok {
						return tripleFailure(i, j, k,
							fmt.Sprintf("local %d does not restrict to the triple intersection", m)), false
					}
					restricted[n] = r
				}
				if !w.EqualAt(o, restricted[0], restricted[1]) || !w.EqualAt(o, restricted[1], restricted[2]) {
					return tripleFailure(i, j, k,
						fmt.Sprintf("locals %d, %d, %d disagree on their triple intersection", i, j, k)), false
				}
			}
		}
	}
	return failures.Failure{}, true
}

// descentCertified validates a contractibility certificate: witness and
// proof material must be present, the named scheme must validate, and
// the witness must restrict leg by leg to the claimed locals.
func descentCertified[C comparable, V any](w world.World[C, V], c Descent[C, V], schemes *SchemeRegistry[C, V]) Result {
	cert := c.Contractibility
	if c.Glue == nil {
		return rejected(failures.New(failures.ClassDescent, LawExistence,
			"certified contractibility requires a glue witness"))
	}
	if !w.Definable(c.Base, *c.Glue) {
		return rejected(failures.New(failures.ClassDescent, LawDefinability,
			"glue witness is not definable at the base context"))
	}
	if cert.Scheme == "" {
		return rejected(failures.New(failures.ClassDescent, LawExistence,
			"certified contractibility requires a proof scheme id"))
	}
	if len(cert.Proof) == 0 {
		return rejected(failures.New(failures.ClassDescent, LawExistence,
			"certified contractibility requires a proof payload"))
	}

	verify, ok := schemes.Lookup(cert.Scheme)
	if !ok {
		return rejected(failures.New(failures.ClassGlueNonContractible, LawUniqueness,
			fmt.Sprintf("unknown proof scheme %q", cert.Scheme)).
			With("scheme", cert.Scheme))
	}
	if err := verify(w, c); err != nil {
		return rejected(failures.New(failures.ClassGlueNonContractible, LawUniqueness, err.Error()).
			With("scheme", cert.Scheme))
	}

	// Existence sanity: the witness must reproduce the claimed locals.
	for i := range c.Legs {
		r, ok := w.Restrict(*c.Glue, c.Base, c.Legs[i])
		if !ok {
			return rejected(failures.New(failures.ClassDescent, LawExistence,
				fmt.Sprintf("glue witness does not restrict to leg %d", i)).
				With("leg_index", fmt.Sprintf("%d", i)))
		}
		if !w.EqualAt(c.Legs[i], r, c.Locals[i]) {
			return rejected(failures.New(failures.ClassDescent, LawExistence,
				fmt.Sprintf("glue witness disagrees with local %d on its leg", i)).
				With("leg_index", fmt.Sprintf("%d", i)))
		}
	}
	return accepted()
}

// descentSearch is the non-certified path: brute-force existence plus
// contractible-uniqueness search over the world's enumeration.
func descentSearch[C comparable, V any](w world.World[C, V], c Descent[C, V], profile Profile) Result {
	enum, ok := world.EnumeratorOf(w)
	if !ok {
		return rejected(failures.New(failures.ClassDescent, LawExistence,
			"uniqueness requires a proof the kernel cannot produce by enumeration"))
	}
	globals, ok := enum.Enumerate(c.Base)
	if !ok {
		return rejected(failures.New(failures.ClassDescent, LawExistence,
			"world cannot enumerate definables at the base context"))
	}
	if profile.EnumerationBudget > 0 && len(globals) > profile.EnumerationBudget {
		return rejected(failures.New(failures.ClassDescent, LawExistence,
			fmt.Sprintf("enumeration of %d candidates exceeds the profile budget of %d",
				len(globals), profile.EnumerationBudget)))
	}

	var candidates []V
	for _, g := range globals {
		if restrictsToLocals(w, c, g) {
			candidates = append(candidates, g)
		}
	}

	switch {
	case len(candidates) == 0:
		return rejected(failures.New(failures.ClassDescent, LawExistence,
			"no global glue exists for the local family"))
	case len(candidates) > 1:
		return rejected(failures.New(failures.ClassGlueNonContractible, LawUniqueness,
			fmt.Sprintf("uniqueness axiom violated: %d distinct glues reconstruct the family", len(candidates))))
	}
	if c.Glue != nil && !w.EqualAt(c.Base, *c.Glue, candidates[0]) {
		return rejected(failures.New(failures.ClassDescent, LawExistence,
			"supplied glue witness disagrees with the unique reconstruction"))
	}
	return accepted()
}

// restrictsToLocals reports whether g restricts, leg by leg, to exactly
// the claimed locals.
func restrictsToLocals[C comparable, V any](w world.World[C, V], c Descent[C, V], g V) bool {
	for i := range c.Legs {
		r, ok := w.Restrict(g, c.Base, c.Legs[i])
		if !ok || !w.EqualAt(c.Legs[i], r, c.Locals[i]) {
			return false
		}
	}
	return true
}

func pairFailure(law string, i, j int, msg string) failures.Failure {
	return failures.New(failures.ClassDescent, law, msg).
		With("pair", fmt.Sprintf("%d,%d", i, j))
}

func tripleFailure(i, j, k int, msg string) failures.Failure {
	return failures.New(failures.ClassDescent, LawCocycle, msg).
		With("triple", fmt.Sprintf("%d,%d,%d", i, j, k))
}
