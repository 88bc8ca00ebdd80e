// Package registry validates the declarative world/route registry: the
// substrate binding operation route families to worlds and morphism
// rows. Registries are request-scoped values loaded by the caller;
// nothing here persists or mutates them.
package registry

import "doctrine/pkg/failures"

// Schema kinds for the two artifact forms.
const (
	SchemaKind         = "doctrine/world-registry@v1"
	BindingsSchemaKind = "doctrine/world-route-bindings@v1"
)

// World is one declared world row.
type World struct {
	ID              string
	Role            string
	ContextFamily   string
	DefinableFamily string
	CoverKind       string
	EqualityMode    string
}

// MorphismRow declares a mapping between two worlds together with the
// doctrine morphisms it requires of bound operations.
type MorphismRow struct {
	ID                string
	FromWorld         string
	ToWorld           string
	RequiredMorphisms []string
	Preserves         []string
}

// RouteBinding binds a route family of operations to a world and a
// morphism row. FailureClass is raised when the binding cannot serve.
type RouteBinding struct {
	Family        string
	Operations    []string
	WorldID       string
	MorphismRowID string
	FailureClass  failures.Class

	// Site placement consumed by the resolver.
	SiteNode string
	Cover    string
	Edge     string
}

// Registry is the full declarative registry.
type Registry struct {
	SchemaKind string
	Worlds     []World
	Morphisms  []MorphismRow
	Routes     []RouteBinding
}

// BindingEntry is one row of the simpler world-route-binding artifact a
// full registry can be synthesized from.
type BindingEntry struct {
	Family            string
	Operations        []string
	WorldID           string
	MorphismRowID     string
	RequiredMorphisms []string
	FailureClass      failures.Class

	SiteNode string
	Cover    string
	Edge     string
}

// Bindings is the declarative world-route-binding artifact.
type Bindings struct {
	SchemaKind string
	Entries    []BindingEntry
}

// Report is a deterministically ordered validation outcome: failures
// sorted by (path, class, message), class list deduplicated and sorted.
// Permuting input rows never changes the class set.
type Report struct {
	Failures []failures.Failure
	Classes  []failures.Class
}

// OK reports a clean validation.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// buildReport seals a failure list into a Report.
func buildReport(fs []failures.Failure) Report {
	failures.Sort(fs)
	return Report{Failures: fs, Classes: failures.Classes(fs)}
}

// merge concatenates reports into one deterministically ordered Report.
func merge(reports ...Report) Report {
	var fs []failures.Failure
	for _, r := range reports {
		fs = append(fs, r.Failures...)
	}
	return buildReport(fs)
}

// LookupMorphism resolves a morphism-row id.
func (r Registry) LookupMorphism(id string) (MorphismRow, bool) {
	for _, m := range r.Morphisms {
		if m.ID == id {
			return m, true
		}
	}
	return MorphismRow{}, false
}

// LookupWorld resolves a world id.
func (r Registry) LookupWorld(id string) (World, bool) {
	for _, w := range r.Worlds {
		if w.ID == id {
			return w, true
		}
	}
	return World{}, false
}

// LookupRoute resolves a route-family id.
func (r Registry) LookupRoute(family string) (RouteBinding, bool) {
	for _, rb := range r.Routes {
		if rb.Family == family {
			return rb, true
		}
	}
	return RouteBinding{}, false
}
