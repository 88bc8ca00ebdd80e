package registry

import (
	"fmt"

	"doctrine/internal/operation"
	"doctrine/pkg/failures"
)

// Validate runs the structural checks on a full registry: schema kind,
// non-empty row lists, id uniqueness, referential integrity of route
// bindings, and single-family ownership of every operation id.
func Validate(reg Registry) Report {
	return buildReport(structural(reg))
}

func structural(reg Registry) []failures.Failure {
	var fs []failures.Failure

	if reg.SchemaKind != SchemaKind {
		fs = append(fs, failures.New(failures.ClassWorldRouteUnbound, "",
			fmt.Sprintf("registry kind %q is not %q", reg.SchemaKind, SchemaKind)).
			At("world_registry.schema_kind"))
	}
	if len(reg.Worlds) == 0 {
		fs = append(fs, failures.New(failures.ClassWorldRouteUnknownWorld, "",
			"registry declares no worlds").At("world_registry.worlds"))
	}
	if len(reg.Morphisms) == 0 {
		fs = append(fs, failures.New(failures.ClassWorldRouteUnknownMorph, "",
			"registry declares no morphism rows").At("world_registry.morphisms"))
	}
	if len(reg.Routes) == 0 {
		fs = append(fs, failures.New(failures.ClassWorldRouteUnbound, "",
			"registry declares no route bindings").At("world_registry.routes"))
	}

	worldIDs := make(map[string]bool, len(reg.Worlds))
	for i, w := range reg.Worlds {
		if worldIDs[w.ID] {
			fs = append(fs, failures.New(failures.ClassWorldRouteUnknownWorld, "",
				fmt.Sprintf("world id %q is declared more than once", w.ID)).
				At(fmt.Sprintf("world_registry.worlds[%d].id", i)))
		}
		worldIDs[w.ID] = true
	}

	morphIDs := make(map[string]bool, len(reg.Morphisms))
	for i, m := range reg.Morphisms {
		path := fmt.Sprintf("world_registry.morphisms[%d]", i)
		if morphIDs[m.ID] {
			fs = append(fs, failures.New(failures.ClassWorldRouteUnknownMorph, "",
				fmt.Sprintf("morphism row id %q is declared more than once", m.ID)).
				At(path+".id"))
		}
		morphIDs[m.ID] = true
		if !worldIDs[m.FromWorld] {
			fs = append(fs, failures.New(failures.ClassWorldRouteUnknownWorld, "",
				fmt.Sprintf("morphism row %q names unknown source world %q", m.ID, m.FromWorld)).
				At(path+".from_world"))
		}
		if !worldIDs[m.ToWorld] {
			fs = append(fs, failures.New(failures.ClassWorldRouteUnknownWorld, "",
				fmt.Sprintf("morphism row %q names unknown target world %q", m.ID, m.ToWorld)).
				At(path+".to_world"))
		}
	}

	families := make(map[string]bool, len(reg.Routes))
	// ownedBy maps an operation id to the first family that bound it.
	// Rebinding under a second family is a conflict; a duplicate listing
	// inside the same family is tolerated (the artifact is a set written
	// down as a list).
	ownedBy := make(map[string]string)
	for i, rb := range reg.Routes {
		path := fmt.Sprintf("world_registry.routes[%d]", i)
		if families[rb.Family] {
			fs = append(fs, failures.New(failures.ClassWorldRouteUnbound, "",
				fmt.Sprintf("route family %q is declared more than once", rb.Family)).
				At(path+".family"))
		}
		families[rb.Family] = true
		if !worldIDs[rb.WorldID] {
			fs = append(fs, failures.New(failures.ClassWorldRouteUnknownWorld, "",
				fmt.Sprintf("route family %q names unknown world %q", rb.Family, rb.WorldID)).
				At(path+".world_id"))
		}
		if _, ok := morphIDs[rb.MorphismRowID]; !ok {
			fs = append(fs, failures.New(failures.ClassWorldRouteUnknownMorph, "",
				fmt.Sprintf("route family %q names unknown morphism row %q", rb.Family, rb.MorphismRowID)).
				At(path+".morphism_row_id"))
		}
		for _, opID := range rb.Operations {
			owner, bound := ownedBy[opID]
			switch {
			case !bound:
				ownedBy[opID] = rb.Family
			case owner != rb.Family:
				fs = append(fs, failures.New(failures.ClassWorldRouteUnbound, "",
					fmt.Sprintf("operation %q is bound under both %q and %q", opID, owner, rb.Family)).
					At(path+".operations"))
			}
		}
	}
	return fs
}

// ValidateAgainstOperations runs Validate and additionally cross-checks
// each route binding's required morphisms (via its morphism row) against
// the actual morphisms each bound operation declares.
func ValidateAgainstOperations(reg Registry, ops operation.Registry) Report {
	fs := structural(reg)
	fs = append(fs, crossCheck(reg, ops)...)
	return buildReport(fs)
}

func crossCheck(reg Registry, ops operation.Registry) []failures.Failure {
	var fs []failures.Failure
	for i, rb := range reg.Routes {
		path := fmt.Sprintf("world_registry.routes[%d]", i)
		row, ok := reg.LookupMorphism(rb.MorphismRowID)
		if !ok {
			// Already reported structurally; nothing to cross-check.
			continue
		}
		for _, opID := range rb.Operations {
			op, found := ops.Lookup(opID)
			if !found {
				fs = append(fs, failures.New(failures.ClassWorldRouteUnbound, "",
					fmt.Sprintf("route family %q binds unknown operation %q", rb.Family, opID)).
					At(path+".operations"))
				continue
			}
			declared := op.MorphismSet()
			for _, required := range row.RequiredMorphisms {
				if _, has := declared[required]; !has {
					fs = append(fs, failures.New(failures.ClassWorldRouteDrift, "",
						fmt.Sprintf("operation %q lacks morphism %q required by route family %q",
							opID, required, rb.Family)).
						At(path+".operations"))
				}
			}
		}
	}
	return fs
}
