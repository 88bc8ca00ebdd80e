// Package operation models the operation-registry artifact. The
// registry arrives as already-parsed structured data owned by the
// calling layer; this package only validates its shape and answers
// lookups. Malformed input is a rejection, not an error.
package operation

import (
	"fmt"
	"strings"

	"doctrine/pkg/failures"
)

// SchemaKind tags a well-formed operation registry artifact.
const SchemaKind = "doctrine/operation-registry@v1"

// ClassRouteBound marks operations eligible for route binding.
const ClassRouteBound = "route-bound"

// Row is one declared operation.
type Row struct {
	ID          string
	Class       string
	RouteFamily string
	Morphisms   []string

	// ResolverEligible and WorldRouteRequired are the route-eligibility
	// flags the site resolver filters on.
	ResolverEligible   bool
	WorldRouteRequired bool
}

// Registry is the declared operation set.
type Registry struct {
	SchemaKind string
	Operations []Row
}

// Validate checks the structural shape of the registry. Violations are
// reported as site_resolve_unbound: a registry the resolver cannot read
// binds nothing.
func (r Registry) Validate() []failures.Failure {
	var fs []failures.Failure
	if r.SchemaKind != SchemaKind {
		fs = append(fs, failures.New(failures.ClassResolveUnbound, "",
			fmt.Sprintf("operation registry kind %q is not %q", r.SchemaKind, SchemaKind)).
			At("operation_registry.schema_kind"))
	}
	seen := make(map[string]bool, len(r.Operations))
	for i, op := range r.Operations {
		path := fmt.Sprintf("operation_registry.operations[%d]", i)
		if strings.TrimSpace(op.ID) == "" {
			fs = append(fs, failures.New(failures.ClassResolveUnbound, "",
				"operation id is empty").At(path+".id"))
			continue
		}
		if seen[op.ID] {
			fs = append(fs, failures.New(failures.ClassResolveUnbound, "",
				fmt.Sprintf("operation id %q is declared more than once", op.ID)).At(path+".id"))
		}
		seen[op.ID] = true
	}
	failures.Sort(fs)
	return fs
}

// Lookup returns the row for an operation id.
func (r Registry) Lookup(id string) (Row, bool) {
	for _, op := range r.Operations {
		if op.ID == id {
			return op, true
		}
	}
	return Row{}, false
}

// MorphismSet returns the declared morphisms of a row as a set.
func (row Row) MorphismSet() map[string]struct{} {
	m := make(map[string]struct{}, len(row.Morphisms))
	for _, name := range row.Morphisms {
		m[name] = struct{}{}
	}
	return m
}
