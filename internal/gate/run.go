package gate

import (
	"fmt"

	"doctrine/internal/world"
	"doctrine/pkg/failures"
)

// Run executes one check against a world under a profile using the
// default proof-scheme registry. The result is a pure function of its
// arguments; repeated calls on identical inputs return identical
// verdicts.
func Run[C comparable, V any](w world.World[C, V], chk Check[C, V], profile Profile) Result {
	return RunWithSchemes(w, chk, profile, DefaultSchemes[C, V]())
}

// RunWithSchemes is Run with an explicit proof-scheme registry, the
// extension point for callers carrying their own certified verifiers.
func RunWithSchemes[C comparable, V any](w world.World[C, V], chk Check[C, V], profile Profile, schemes *SchemeRegistry[C, V]) Result {
	switch c := chk.(type) {
	case Stability[C, V]:
		return runStability(w, c)
	case Locality[C, V]:
		return runLocality(w, c)
	case Descent[C, V]:
		return runDescent(w, c, profile, schemes)
	case AdjointTriple[C, V]:
		return runAdjointTriple(w)
	default:
		// Check is sealed; no other variant can exist.
		panic(fmt.Sprintf("gate: unknown check kind %q", chk.Kind()))
	}
}

// runStability applies the stability laws in order, short-circuiting on
// the first violation:
//  1. definability at the base context
//  2. chain well-formedness (f into the base, g into f's source)
//  3. identity law (restricting base to base is the value itself)
//  4. composition law (direct restriction equals the two-step path)
func runStability[C comparable, V any](w world.World[C, V], c Stability[C, V]) Result {
	if !w.Definable(c.At, c.Value) {
		return rejected(failures.New(failures.ClassStability, LawDefinability,
			"value is not definable at the base context"))
	}
	if c.F.Dst != c.At {
		return rejected(failures.New(failures.ClassStability, LawChain,
			"morphism f does not target the base context"))
	}
	if c.G.Dst != c.F.Src {
		return rejected(failures.New(failures.ClassStability, LawChain,
			"morphism g does not target the source of f"))
	}

	// Identity law.
	self, ok := w.Restrict(c.Value, c.At, c.At)
	if !ok {
		return rejected(failures.New(failures.ClassStability, LawIdentity,
			"identity restriction is undefined at the base context"))
	}
	if !w.EqualAt(c.At, self, c.Value) {
		return rejected(failures.New(failures.ClassStability, LawIdentity,
			"identity restriction does not preserve the value"))
	}

	// Composition law: base -> g.Src directly versus base -> f.Src -> g.Src.
	direct, ok := w.Restrict(c.Value, c.At, c.G.Src)
	if !ok {
		return rejected(failures.New(failures.ClassStability, LawComposition,
			"direct restriction along the composite is undefined"))
	}
	mid, ok := w.Restrict(c.Value, c.At, c.F.Src)
	if !ok {
		return rejected(failures.New(failures.ClassStability, LawComposition,
			"restriction along f is undefined"))
	}
	composed, ok := w.Restrict(mid, c.F.Src, c.G.Src)
	if !ok {
		return rejected(failures.New(failures.ClassStability, LawComposition,
			"restriction along g after f is undefined"))
	}
	if !w.EqualAt(c.G.Src, direct, composed) {
		return rejected(failures.New(failures.ClassStability, LawComposition,
			"restriction along the two paths disagrees"))
	}
	return accepted()
}

// runLocality checks definability, cover validity, then each leg in
// order, reporting only the first undefined restriction.
func runLocality[C comparable, V any](w world.World[C, V], c Locality[C, V]) Result {
	if !w.Definable(c.At, c.Value) {
		return rejected(failures.New(failures.ClassLocality, LawDefinability,
			"value is not definable at the base context"))
	}
	if !w.ValidCover(c.At, c.Legs) {
		return rejected(failures.New(failures.ClassLocality, LawCover,
			"legs do not form a declared cover of the base context"))
	}
	for i := range c.Legs {
		if _, ok := w.Restrict(c.Value, c.At, c.Legs[i]); !ok {
			return rejected(failures.New(failures.ClassLocality, LawRestriction,
				fmt.Sprintf("restriction to cover leg %d is undefined", i)).
				With("leg_index", fmt.Sprintf("%d", i)))
		}
	}
	return accepted()
}

// runAdjointTriple delegates to the world's own coherence check.
// Worlds that do not advertise the capability reject deterministically,
// never silently skip.
func runAdjointTriple[C comparable, V any](w world.World[C, V]) Result {
	adj, ok := world.AdjointOf(w)
	if !ok {
		return rejected(failures.New(failures.ClassAdjointTriple, LawAdjoint,
			"world does not advertise adjoint-triple coherence"))
	}
	if err := adj.AdjointTriple(); err != nil {
		return rejected(failures.New(failures.ClassAdjointTriple, LawAdjoint, err.Error()))
	}
	return accepted()
}
