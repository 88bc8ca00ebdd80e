// Package failures defines the closed vocabulary of failure classes the
// kernel reports, plus the structured Failure record attached to every
// rejection. Classes are values, never transformed human strings: callers
// branch on Class and show Message.
package failures

import (
	"sort"
	"strings"
)

// Class identifies one kind of admissibility or resolution failure.
// This is a domain primitive that enforces validity at parse time.
type Class string

// The failure-class vocabulary. The set is closed but growable: adding a
// class here is an API change callers must handle.
const (
	ClassStability              Class = "stability_failure"
	ClassLocality               Class = "locality_failure"
	ClassDescent                Class = "descent_failure"
	ClassGlueNonContractible    Class = "glue_non_contractible"
	ClassAdjointTriple          Class = "adjoint_triple_coherence_failure"
	ClassWorldRouteUnbound      Class = "world_route_unbound"
	ClassWorldRouteUnknownWorld Class = "world_route_unknown_world"
	ClassWorldRouteUnknownMorph Class = "world_route_unknown_morphism"
	ClassWorldRouteDrift        Class = "world_route_morphism_drift"
	ClassResolveUnbound         Class = "site_resolve_unbound"
	ClassResolveAmbiguous       Class = "site_resolve_ambiguous"
	ClassCapabilityMissing      Class = "site_resolve_capability_missing"
	ClassPolicyDenied           Class = "site_resolve_policy_denied"
	ClassSiteOverlapMismatch    Class = "site_overlap_mismatch"
	ClassSiteGlueMissing        Class = "site_glue_missing"
	ClassSiteGlueNonContract    Class = "site_glue_non_contractible"
)

// validClasses is the single source of truth for valid failure classes.
var validClasses = map[Class]bool{
	ClassStability:              true,
	ClassLocality:               true,
	ClassDescent:                true,
	ClassGlueNonContractible:    true,
	ClassAdjointTriple:          true,
	ClassWorldRouteUnbound:      true,
	ClassWorldRouteUnknownWorld: true,
	ClassWorldRouteUnknownMorph: true,
	ClassWorldRouteDrift:        true,
	ClassResolveUnbound:         true,
	ClassResolveAmbiguous:       true,
	ClassCapabilityMissing:      true,
	ClassPolicyDenied:           true,
	ClassSiteOverlapMismatch:    true,
	ClassSiteGlueMissing:        true,
	ClassSiteGlueNonContract:    true,
}

// IsValid checks if the class is one of the supported vocabulary values.
func (c Class) IsValid() bool {
	return validClasses[c]
}

// String returns the string representation of the class.
func (c Class) String() string {
	return string(c)
}

// Failure is one structured rejection record. Law names the violated law
// (law_identity, law_cover, ...), Path points into the offending input
// artifact when there is one, and Context carries structured extras.
type Failure struct {
	Class   Class
	Law     string
	Message string
	Path    string
	Context map[string]string
}

// New constructs a Failure with just a class, law, and message.
func New(class Class, law, message string) Failure {
	return Failure{Class: class, Law: law, Message: message}
}

// At returns a copy of the failure pointing at an artifact path.
func (f Failure) At(path string) Failure {
	f.Path = path
	return f
}

// With returns a copy of the failure with one context key set.
func (f Failure) With(key, value string) Failure {
	ctx := make(map[string]string, len(f.Context)+1)
	for k, v := range f.Context {
		ctx[k] = v
	}
	ctx[key] = value
	f.Context = ctx
	return f
}

// Classes extracts the deduplicated, sorted class set of a failure list.
// Output order is total and stable so digests built over it are
// reproducible across runs.
func Classes(fs []Failure) []Class {
	seen := make(map[Class]bool, len(fs))
	var out []Class
	for _, f := range fs {
		if !seen[f.Class] {
			seen[f.Class] = true
			out = append(out, f.Class)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortClasses sorts a class slice in place and removes duplicates.
func SortClasses(cs []Class) []Class {
	seen := make(map[Class]bool, len(cs))
	var out []Class
	for _, c := range cs {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Sort orders failures by (Path, Class, Message). Reports built from
// set-like traversal must pass through here before being emitted.
func Sort(fs []Failure) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Path != fs[j].Path {
			return fs[i].Path < fs[j].Path
		}
		if fs[i].Class != fs[j].Class {
			return fs[i].Class < fs[j].Class
		}
		return fs[i].Message < fs[j].Message
	})
}

// JoinClasses renders a class list as a comma-separated string for logs.
func JoinClasses(cs []Class) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
