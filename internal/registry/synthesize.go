package registry

import (
	"fmt"
	"sort"

	"doctrine/internal/operation"
	"doctrine/pkg/failures"
)

// Synthesize expands the declarative world-route-binding artifact into
// a full registry by auto-minting world and morphism rows. Conflicting
// declarations for the same morphism-row id across entries are flagged.
func Synthesize(b Bindings) (Registry, Report) {
	var fs []failures.Failure
	reg := Registry{SchemaKind: SchemaKind}

	worlds := make(map[string]bool)
	morphisms := make(map[string][]string)

	for i, e := range b.Entries {
		path := fmt.Sprintf("world_route_bindings.entries[%d]", i)
		if !worlds[e.WorldID] {
			worlds[e.WorldID] = true
			reg.Worlds = append(reg.Worlds, World{
				ID:           e.WorldID,
				Role:         "route",
				CoverKind:    "canonical",
				EqualityMode: "strict",
			})
		}
		if prior, minted := morphisms[e.MorphismRowID]; minted {
			if !sameMorphisms(prior, e.RequiredMorphisms) {
				fs = append(fs, failures.New(failures.ClassWorldRouteUnknownMorph, "",
					fmt.Sprintf("morphism row %q is declared with conflicting required morphisms", e.MorphismRowID)).
					At(path+".morphism_row_id"))
			}
		} else {
			morphisms[e.MorphismRowID] = e.RequiredMorphisms
			reg.Morphisms = append(reg.Morphisms, MorphismRow{
				ID:                e.MorphismRowID,
				FromWorld:         e.WorldID,
				ToWorld:           e.WorldID,
				RequiredMorphisms: e.RequiredMorphisms,
			})
		}
		reg.Routes = append(reg.Routes, RouteBinding{
			Family:        e.Family,
			Operations:    dedupe(e.Operations),
			WorldID:       e.WorldID,
			MorphismRowID: e.MorphismRowID,
			FailureClass:  e.FailureClass,
			SiteNode:      e.SiteNode,
			Cover:         e.Cover,
			Edge:          e.Edge,
		})
	}
	return reg, buildReport(fs)
}

// ValidateDeclaredBindings parses the declarative form, reports required
// route families and required family-to-operation bindings missing from
// the declaration, synthesizes a registry, and re-runs the operation
// cross-check, merging everything into one deterministically ordered
// report.
func ValidateDeclaredBindings(b Bindings, ops operation.Registry, requiredFamilies []string, requiredBindings map[string][]string) Report {
	var fs []failures.Failure

	if b.SchemaKind != BindingsSchemaKind {
		fs = append(fs, failures.New(failures.ClassWorldRouteUnbound, "",
			fmt.Sprintf("bindings kind %q is not %q", b.SchemaKind, BindingsSchemaKind)).
			At("world_route_bindings.schema_kind"))
	}
	if len(b.Entries) == 0 {
		fs = append(fs, failures.New(failures.ClassWorldRouteUnbound, "",
			"no world-route bindings are declared").At("world_route_bindings.entries"))
	}

	declared := make(map[string]map[string]struct{}, len(b.Entries))
	for _, e := range b.Entries {
		set, ok := declared[e.Family]
		if !ok {
			set = make(map[string]struct{})
			declared[e.Family] = set
		}
		for _, opID := range e.Operations {
			set[opID] = struct{}{}
		}
	}

	for _, family := range requiredFamilies {
		if _, ok := declared[family]; !ok {
			fs = append(fs, failures.New(failures.ClassWorldRouteUnbound, "",
				fmt.Sprintf("required route family %q is not declared", family)).
				At("world_route_bindings.entries"))
		}
	}

	// Sort map keys before traversal: report order must not depend on
	// Go's map iteration.
	families := make([]string, 0, len(requiredBindings))
	for family := range requiredBindings {
		families = append(families, family)
	}
	sort.Strings(families)
	for _, family := range families {
		bound := declared[family]
		for _, opID := range requiredBindings[family] {
			if _, ok := bound[opID]; !ok {
				fs = append(fs, failures.New(failures.ClassWorldRouteUnbound, "",
					fmt.Sprintf("required binding of operation %q under route family %q is not declared", opID, family)).
					At("world_route_bindings.entries"))
			}
		}
	}

	reg, synthReport := Synthesize(b)
	crossReport := ValidateAgainstOperations(reg, ops)
	return merge(buildReport(fs), synthReport, crossReport)
}

func sameMorphisms(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
