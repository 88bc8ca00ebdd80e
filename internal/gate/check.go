// Package gate runs admissibility checks against a World and produces
// accept/reject verdicts with typed failures. Checks are self-contained
// values; Run is pure domain logic - no I/O, no side effects.
package gate

import "doctrine/pkg/failures"

// Kind tags the check variants.
type Kind string

const (
	KindStability     Kind = "stability"
	KindLocality      Kind = "locality"
	KindDescent       Kind = "descent"
	KindAdjointTriple Kind = "adjoint_triple"
)

// Law references attached to failures so callers can cite the violated
// law without parsing messages.
const (
	LawDefinability = "law_definability"
	LawChain        = "law_chain"
	LawIdentity     = "law_identity"
	LawComposition  = "law_composition"
	LawCover        = "law_cover"
	LawRestriction  = "law_restriction"
	LawOverlap      = "law_overlap"
	LawCocycle      = "law_cocycle"
	LawExistence    = "law_existence"
	LawUniqueness   = "law_uniqueness"
	LawAdjoint      = "law_adjoint"
)

// Check is the sealed sum of the four check variants. The unexported
// marker keeps the set closed so Run's type switch stays exhaustive.
type Check[C comparable, V any] interface {
	Kind() Kind
	sealed()
}

// Morphism is one context morphism in a restriction chain. Restriction
// runs Dst to Src: Src is the smaller context being restricted into.
type Morphism[C comparable] struct {
	Src C
	Dst C
}

// Stability checks invariance of a value under the two equivalent
// restriction paths induced by a composable chain g then f into At.
type Stability[C comparable, V any] struct {
	At    C
	Value V
	F     Morphism[C]
	G     Morphism[C]
}

func (Stability[C, V]) Kind() Kind { return KindStability }
func (Stability[C, V]) sealed()    {}

// Locality checks that a value restricts along every leg of a declared
// cover of At.
type Locality[C comparable, V any] struct {
	At    C
	Value V
	Legs  []C
}

func (Locality[C, V]) Kind() Kind { return KindLocality }
func (Locality[C, V]) sealed()    {}

// ContractibilityCert names a proof scheme and carries its opaque
// payload. Presence of the cert routes descent through the certified
// path instead of enumeration.
type ContractibilityCert struct {
	Scheme string
	Proof  []byte
}

// Descent checks existence and contractible uniqueness of a global
// value reconstructing the given local family.
type Descent[C comparable, V any] struct {
	Base   C
	Legs   []C
	Locals []V

	// Glue is the optional claimed global witness.
	Glue *V

	// OverlapCertified and CocycleCertified skip the pairwise and
	// triple compatibility sweeps for pre-certified inputs.
	OverlapCertified bool
	CocycleCertified bool

	// Contractibility, when present, replaces enumeration search with
	// proof validation under the named scheme.
	Contractibility *ContractibilityCert
}

func (Descent[C, V]) Kind() Kind { return KindDescent }
func (Descent[C, V]) sealed()    {}

// AdjointTriple delegates coherence of the world's adjoint triple to
// the backend, when it advertises the capability.
type AdjointTriple[C comparable, V any] struct{}

func (AdjointTriple[C, V]) Kind() Kind { return KindAdjointTriple }
func (AdjointTriple[C, V]) sealed()    {}

// Profile identifies the checking profile a verdict was produced under.
// EnumerationBudget bounds the descent existence search; zero means
// unbounded. The verdict is a pure function of (world, check, profile).
type Profile struct {
	ID                string
	EnumerationBudget int
}

// DefaultProfile is used when callers have no profile of their own.
var DefaultProfile = Profile{ID: "default"}

// Result is the gate verdict: accepted, or rejected with typed failures.
type Result struct {
	Accepted bool
	Failures []failures.Failure
}

func accepted() Result {
	return Result{Accepted: true}
}

func rejected(fs ...failures.Failure) Result {
	return Result{Accepted: false, Failures: fs}
}
