// Package world defines the capability surface a concrete backend
// implements for the admissibility gate. A World owns all policy about
// what is definable where, how values restrict between contexts, and
// which families of contexts count as covers. Backends range from the
// bitmask toys in bitworld (used for conformance testing) to real
// repository-backed implementations owned by the calling layer.
package world

// World is the required capability set, polymorphic over the backend's
// context identifier type C and definable value type V.
//
// All methods are pure: no I/O, no hidden state, safe for concurrent use.
// Restrict is a partial function — the second result reports whether the
// restriction is defined at all; false is a fact, not an error.
type World[C comparable, V any] interface {
	// Definable reports whether v is a valid definable at the context.
	Definable(at C, v V) bool

	// Restrict pulls a definable from context from down to context to.
	// Returns false when the restriction is undefined.
	Restrict(v V, from, to C) (V, bool)

	// EqualAt reports sameness of two definables at a context. Equality
	// is context-relative: the backend decides what counts.
	EqualAt(at C, a, b V) bool

	// ValidCover reports whether legs form a declared cover of base.
	ValidCover(base C, legs []C) bool

	// Overlap computes the pairwise overlap of two contexts. Returns
	// false when the two contexts have no defined overlap.
	Overlap(a, b C) (C, bool)
}

// Enumerator is the optional finite-enumeration capability. The descent
// check's non-certified path requires it; backends without it must route
// descent through a certified proof instead.
//
// Enumerate must yield values in a fixed, total order so that repeated
// runs visit candidates identically.
type Enumerator[C comparable, V any] interface {
	// Enumerate lists every definable at the context. Returns false when
	// enumeration is unsupported or infeasible at this context.
	Enumerate(at C) ([]V, bool)
}

// AdjointCoherent is the optional adjoint-triple coherence capability.
// A backend advertising it owns the whole coherence argument; the gate
// only translates the outcome.
type AdjointCoherent interface {
	// AdjointTriple checks coherence of the backend's adjoint triple.
	// A nil return means coherent; an error carries the 1:1 message.
	AdjointTriple() error
}

// EnumeratorOf discovers the enumeration capability of a world, stdlib
// io.ReaderFrom style.
func EnumeratorOf[C comparable, V any](w World[C, V]) (Enumerator[C, V], bool) {
	e, ok := w.(Enumerator[C, V])
	return e, ok
}

// AdjointOf discovers the adjoint-triple capability of a world.
func AdjointOf[C comparable, V any](w World[C, V]) (AdjointCoherent, bool) {
	a, ok := w.(AdjointCoherent)
	return a, ok
}
