// Package worldtest runs the gate's law battery over a candidate World
// backend. Fixtures are independent pure checks, so the battery fans
// out concurrently and reports results in fixture order.
package worldtest

import (
	"context"

	"golang.org/x/sync/errgroup"

	"doctrine/internal/gate"
	"doctrine/internal/world"
)

// Fixture is one named check a backend must pass (or provably fail).
type Fixture[C comparable, V any] struct {
	Name  string
	Check gate.Check[C, V]

	// WantAccepted is the expected verdict.
	WantAccepted bool
}

// Outcome pairs a fixture with its verdict.
type Outcome[C comparable, V any] struct {
	Fixture Fixture[C, V]
	Result  gate.Result

	// Conforms reports whether the verdict matched the expectation.
	Conforms bool
}

// Run executes every fixture against the world under the profile,
// concurrently, and returns outcomes in fixture order.
func Run[C comparable, V any](ctx context.Context, w world.World[C, V], profile gate.Profile, fixtures []Fixture[C, V]) ([]Outcome[C, V], error) {
	outcomes := make([]Outcome[C, V], len(fixtures))
	g, _ := errgroup.WithContext(ctx)
	for i, fx := range fixtures {
		i, fx := i, fx
		g.Go(func() error {
			result := gate.Run(w, fx.Check, profile)
			outcomes[i] = Outcome[C, V]{
				Fixture:  fx,
				Result:   result,
				Conforms: result.Accepted == fx.WantAccepted,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// StabilityFixtures builds the standard stability battery over bitmask
// contexts for a value definable at base: the identity chain and a
// proper two-step chain through mid down to low.
func StabilityFixtures[V any](base, mid, low uint64, value V) []Fixture[uint64, V] {
	return []Fixture[uint64, V]{
		{
			Name: "stability identity chain",
			Check: gate.Stability[uint64, V]{
				At:    base,
				Value: value,
				F:     gate.Morphism[uint64]{Src: base, Dst: base},
				G:     gate.Morphism[uint64]{Src: base, Dst: base},
			},
			WantAccepted: true,
		},
		{
			Name: "stability two-step chain",
			Check: gate.Stability[uint64, V]{
				At:    base,
				Value: value,
				F:     gate.Morphism[uint64]{Src: mid, Dst: base},
				G:     gate.Morphism[uint64]{Src: low, Dst: mid},
			},
			WantAccepted: true,
		},
	}
}
