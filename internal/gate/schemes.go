package gate

import (
	"fmt"

	"doctrine/internal/world"
)

// SchemeEnumerateCompare is the one built-in contractibility proof
// scheme: deterministically re-derive the unique glue by enumeration and
// compare it against the certified witness.
const SchemeEnumerateCompare = "enumerate-compare"

// Scheme validates a contractibility proof for a descent check. A nil
// return certifies the proof; an error message is surfaced 1:1 in the
// resulting failure.
type Scheme[C comparable, V any] func(w world.World[C, V], chk Descent[C, V]) error

// SchemeRegistry maps scheme ids to verifiers. It is the open extension
// point for certified proofs; unknown ids always reject.
type SchemeRegistry[C comparable, V any] struct {
	schemes map[string]Scheme[C, V]
}

// DefaultSchemes returns a registry holding the built-in scheme.
func DefaultSchemes[C comparable, V any]() *SchemeRegistry[C, V] {
	r := &SchemeRegistry[C, V]{schemes: map[string]Scheme[C, V]{}}
	r.Register(SchemeEnumerateCompare, enumerateCompare[C, V])
	return r
}

// Register installs a verifier under a scheme id, replacing any
// previous registration.
func (r *SchemeRegistry[C, V]) Register(id string, s Scheme[C, V]) {
	r.schemes[id] = s
}

// Lookup resolves a scheme id.
func (r *SchemeRegistry[C, V]) Lookup(id string) (Scheme[C, V], bool) {
	s, ok := r.schemes[id]
	return s, ok
}

// enumerateCompare re-runs the brute-force search and requires exactly
// one candidate equal to the certified witness. The proof payload is
// opaque to this scheme; presence is checked by the caller.
func enumerateCompare[C comparable, V any](w world.World[C, V], chk Descent[C, V]) error {
	enum, ok := world.EnumeratorOf(w)
	if !ok {
		return fmt.Errorf("scheme %s requires an enumerable world", SchemeEnumerateCompare)
	}
	globals, ok := enum.Enumerate(chk.Base)
	if !ok {
		return fmt.Errorf("scheme %s cannot enumerate the base context", SchemeEnumerateCompare)
	}
	var matches int
	var candidate V
	for _, g := range globals {
		if restrictsToLocals(w, chk, g) {
			matches++
			candidate = g
		}
	}
	if matches != 1 {
		return fmt.Errorf("contractibility proof does not hold: %d candidates reconstruct the family", matches)
	}
	if chk.Glue == nil || !w.EqualAt(chk.Base, candidate, *chk.Glue) {
		return fmt.Errorf("certified witness is not the unique reconstruction")
	}
	return nil
}
