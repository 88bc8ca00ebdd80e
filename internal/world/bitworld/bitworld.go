// Package bitworld provides small bitmask-backed worlds. Contexts are
// uint64 masks over atomic facts; subset, union, and overlap are the
// bitwise operators. These backends exist for conformance testing and as
// the reference enumeration-capable worlds for descent search.
package bitworld

import (
	"fmt"
	"math/bits"
)

// maxEnumerableBits bounds enumeration so k^popcount stays tractable.
const maxEnumerableBits = 16

// Assignment is a SheafBits definable: one symbol per set bit of its
// home context.
type Assignment map[int]uint8

// subset reports a ⊆ b on masks.
func subset(a, b uint64) bool {
	return a&^b == 0
}

// coverOf reports whether legs are submasks of base whose union is base.
func coverOf(base uint64, legs []uint64) bool {
	if len(legs) == 0 {
		return false
	}
	var union uint64
	for _, leg := range legs {
		if !subset(leg, base) {
			return false
		}
		union |= leg
	}
	return union == base
}

// setBits lists the set bit positions of a mask in ascending order.
func setBits(mask uint64) []int {
	out := make([]int, 0, bits.OnesCount64(mask))
	for mask != 0 {
		b := bits.TrailingZeros64(mask)
		out = append(out, b)
		mask &^= 1 << b
	}
	return out
}

// SheafBits is the full function sheaf over bitmask contexts: a definable
// at mask m is an assignment of one of Symbols values to every set bit of
// m. Restriction drops bits, so every compatible local family glues
// uniquely — the canonical descent-friendly world.
type SheafBits struct {
	// Symbols is the alphabet size; assignments map bits to [0,Symbols).
	Symbols uint8
}

// NewSheafBits returns a function sheaf with the given alphabet size.
// Zero is normalized to the binary alphabet.
func NewSheafBits(symbols uint8) *SheafBits {
	if symbols == 0 {
		symbols = 2
	}
	return &SheafBits{Symbols: symbols}
}

func (s *SheafBits) Definable(at uint64, v Assignment) bool {
	if len(v) != bits.OnesCount64(at) {
		return false
	}
	for b, sym := range v {
		if b < 0 || b >= 64 || at&(1<<b) == 0 {
			return false
		}
		if sym >= s.Symbols {
			return false
		}
	}
	return true
}

func (s *SheafBits) Restrict(v Assignment, from, to uint64) (Assignment, bool) {
	if !subset(to, from) || !s.Definable(from, v) {
		return nil, false
	}
	out := make(Assignment, bits.OnesCount64(to))
	for _, b := range setBits(to) {
		out[b] = v[b]
	}
	return out, true
}

func (s *SheafBits) EqualAt(at uint64, a, b Assignment) bool {
	for _, bit := range setBits(at) {
		av, aok := a[bit]
		bv, bok := b[bit]
		if !aok || !bok || av != bv {
			return false
		}
	}
	return true
}

func (s *SheafBits) ValidCover(base uint64, legs []uint64) bool {
	return coverOf(base, legs)
}

func (s *SheafBits) Overlap(a, b uint64) (uint64, bool) {
	return a & b, true
}

// Enumerate lists every assignment at the context in lexicographic
// symbol order over ascending bits. Refuses contexts too wide to sweep.
func (s *SheafBits) Enumerate(at uint64) ([]Assignment, bool) {
	bs := setBits(at)
	if len(bs) > maxEnumerableBits {
		return nil, false
	}
	total := 1
	for range bs {
		total *= int(s.Symbols)
	}
	out := make([]Assignment, 0, total)
	counter := make([]uint8, len(bs))
	for {
		v := make(Assignment, len(bs))
		for i, b := range bs {
			v[b] = counter[i]
		}
		out = append(out, v)
		i := len(counter) - 1
		for i >= 0 {
			counter[i]++
			if counter[i] < s.Symbols {
				break
			}
			counter[i] = 0
			i--
		}
		if i < 0 {
			break
		}
	}
	return out, true
}

// AdjointTriple verifies the triangle identities of the extension
// adjoints on a bounded sweep of contexts: extending an assignment to a
// larger mask (by zero fill and by max fill) and restricting back must
// be the identity. The sweep covers all submask pairs of a 4-bit base.
func (s *SheafBits) AdjointTriple() error {
	const sweep = uint64(0xF)
	for from := uint64(0); from <= sweep; from++ {
		for to := from; to <= sweep; to++ {
			if !subset(from, to) {
				continue
			}
			locals, ok := s.Enumerate(from)
			if !ok {
				return fmt.Errorf("enumeration unavailable at context %d", from)
			}
			for _, v := range locals {
				for _, fill := range []uint8{0, s.Symbols - 1} {
					ext := s.extend(v, from, to, fill)
					back, ok := s.Restrict(ext, to, from)
					if !ok {
						return fmt.Errorf("extension of context %d to %d does not restrict back", from, to)
					}
					if !s.EqualAt(from, back, v) {
						return fmt.Errorf("triangle identity broken between contexts %d and %d", from, to)
					}
				}
			}
		}
	}
	return nil
}

// extend fills the bits of to missing from from with the given symbol.
func (s *SheafBits) extend(v Assignment, from, to uint64, fill uint8) Assignment {
	out := make(Assignment, bits.OnesCount64(to))
	for _, b := range setBits(to) {
		if from&(1<<b) != 0 {
			out[b] = v[b]
		} else {
			out[b] = fill
		}
	}
	return out
}

// EmptyGlyph is the single definable Collapse admits at the empty context.
const EmptyGlyph = "*"

// Collapse is a deliberately lossy world: every restriction to a proper
// nonempty submask collapses to the zero symbol, and the empty context
// holds only the glyph "*". Restriction forgets, so gluing either has no
// solution or too many — the reference counterexample world for descent.
type Collapse struct {
	// Symbols is how many distinct values live at each nonempty context.
	Symbols int
}

// NewCollapse returns a collapsing world with the given alphabet size.
// Zero is normalized to the binary alphabet.
func NewCollapse(symbols int) *Collapse {
	if symbols == 0 {
		symbols = 2
	}
	return &Collapse{Symbols: symbols}
}

func (c *Collapse) Definable(at uint64, v any) bool {
	if at == 0 {
		return v == EmptyGlyph
	}
	n, ok := v.(int)
	return ok && n >= 0 && n < c.Symbols
}

func (c *Collapse) Restrict(v any, from, to uint64) (any, bool) {
	if !subset(to, from) || !c.Definable(from, v) {
		return nil, false
	}
	switch {
	case to == from:
		return v, true
	case to == 0:
		return EmptyGlyph, true
	default:
		return 0, true
	}
}

func (c *Collapse) EqualAt(at uint64, a, b any) bool {
	return a == b
}

func (c *Collapse) ValidCover(base uint64, legs []uint64) bool {
	return coverOf(base, legs)
}

func (c *Collapse) Overlap(a, b uint64) (uint64, bool) {
	return a & b, true
}

func (c *Collapse) Enumerate(at uint64) ([]any, bool) {
	if at == 0 {
		return []any{EmptyGlyph}, true
	}
	out := make([]any, c.Symbols)
	for i := range out {
		out[i] = i
	}
	return out, true
}

// Identity is the trivial world: restriction is the identity wherever
// the target is a submask of the source. It satisfies the stability laws
// by construction and exists to anchor the gate's positive cases.
type Identity struct {
	// Universe is the fixed set of definables at every context.
	Universe []string
}

// NewIdentity returns an identity world over the given universe.
func NewIdentity(universe ...string) *Identity {
	return &Identity{Universe: universe}
}

func (w *Identity) Definable(at uint64, v string) bool {
	for _, u := range w.Universe {
		if u == v {
			return true
		}
	}
	return false
}

func (w *Identity) Restrict(v string, from, to uint64) (string, bool) {
	if !subset(to, from) {
		return "", false
	}
	return v, true
}

func (w *Identity) EqualAt(at uint64, a, b string) bool {
	return a == b
}

func (w *Identity) ValidCover(base uint64, legs []uint64) bool {
	return coverOf(base, legs)
}

func (w *Identity) Overlap(a, b uint64) (uint64, bool) {
	return a & b, true
}

func (w *Identity) Enumerate(at uint64) ([]string, bool) {
	out := make([]string, len(w.Universe))
	copy(out, w.Universe)
	return out, true
}
