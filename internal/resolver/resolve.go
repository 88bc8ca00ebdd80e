package resolver

import (
	"fmt"

	"doctrine/internal/operation"
	"doctrine/internal/registry"
	"doctrine/internal/site"
	"doctrine/pkg/failures"
)

// Resolve runs the resolution state machine for one request. Terminal
// states are accepted and rejected; nothing is persisted in between.
func Resolve(req Request, in Inputs) Response {
	canon := req.canonicalize()

	// Request shape gates.
	if canon.SchemaKind != RequestSchemaKind {
		return reject(canon, in, failures.New(failures.ClassResolveUnbound, "",
			fmt.Sprintf("request kind %q is not %q", canon.SchemaKind, RequestSchemaKind)).
			At("request.schema_kind"))
	}
	if canon.Operation == "" {
		return reject(canon, in, failures.New(failures.ClassResolveUnbound, "",
			"request names no operation").At("request.operation"))
	}
	if canon.PolicyDigest == "" {
		return reject(canon, in, failures.New(failures.ClassPolicyDenied, "",
			"request carries no policy digest").At("request.policy_digest"))
	}
	if canon.ProfileID == "" {
		return reject(canon, in, failures.New(failures.ClassPolicyDenied, "",
			"request carries no profile id").At("request.profile_id"))
	}

	// Artifact shape gates: parse errors are fatal rejections.
	if fs := in.Operations.Validate(); len(fs) > 0 {
		return reject(canon, in, fs...)
	}
	if fs := in.Site.Validate(); len(fs) > 0 {
		return reject(canon, in, fs...)
	}
	if in.SiteInput.SchemaKind != registry.BindingsSchemaKind {
		return reject(canon, in, failures.New(failures.ClassWorldRouteUnbound, "",
			fmt.Sprintf("site input kind %q is not %q", in.SiteInput.SchemaKind, registry.BindingsSchemaKind)).
			At("world_route_bindings.schema_kind"))
	}
	if len(in.SiteInput.Entries) == 0 {
		return reject(canon, in, failures.New(failures.ClassWorldRouteUnbound, "",
			"no world-route bindings are declared").At("world_route_bindings.entries"))
	}

	// Candidate gathering: matching id, route-bound class, eligibility
	// flags, and the hint as a hard filter when present.
	eligible := gatherOperations(canon, in.Operations)
	if len(eligible) == 0 {
		return reject(canon, in, failures.New(failures.ClassResolveUnbound, "",
			fmt.Sprintf("no route-bound operation matches %q", canon.Operation)))
	}

	// Capability gate.
	executable := in.Capabilities.Set()
	var missing []failures.Failure
	for _, tag := range canon.Capabilities {
		if _, ok := executable[tag]; !ok {
			missing = append(missing, failures.New(failures.ClassCapabilityMissing, "",
				fmt.Sprintf("claimed capability %q is not executable", tag)))
		}
	}
	if len(missing) > 0 {
		return reject(canon, in, missing...)
	}

	// Policy gate.
	if !in.Contract.AllowsProfile(canon.ProfileID) {
		return reject(canon, in, failures.New(failures.ClassPolicyDenied, "",
			fmt.Sprintf("profile %q is not allowed by the control-plane contract", canon.ProfileID)))
	}
	if !in.Contract.AllowsDigest(canon.PolicyDigest) {
		return reject(canon, in, failures.New(failures.ClassPolicyDenied, "",
			"policy digest does not match the declared prefix"))
	}

	// World-route validation: synthesize the registry (conflicting
	// binding declarations are fatal), then pair each eligible operation
	// with the declared rows of its route family; drop pairs whose
	// required morphisms drift, accumulating the failure classes of the
	// drops.
	reg, synthReport := registry.Synthesize(in.SiteInput)
	if !synthReport.OK() {
		return reject(canon, in, synthReport.Failures...)
	}
	candidates, dropped := gatherCandidates(eligible, reg)
	if len(candidates) == 0 {
		if len(dropped) == 0 {
			dropped = []failures.Failure{failures.New(failures.ClassWorldRouteUnbound, "",
				fmt.Sprintf("operation %q has no world-route binding", canon.Operation))}
		}
		return reject(canon, in, dropped...)
	}

	// Site topology validation.
	candidates, siteFailures := validateTopology(candidates, in.Site)
	if len(candidates) == 0 {
		if len(siteFailures) == 0 {
			siteFailures = []failures.Failure{failures.New(failures.ClassSiteGlueNonContract, "",
				fmt.Sprintf("no site placement survives for operation %q", canon.Operation))}
		}
		return reject(canon, in, siteFailures...)
	}

	// Deterministic ranking; exact ties are a hard failure.
	rank(candidates, canon.RouteFamilyHint)
	if len(candidates) > 1 && equalRank(candidates[0], candidates[1], canon.RouteFamilyHint) {
		return reject(canon, in, failures.New(failures.ClassResolveAmbiguous, "",
			fmt.Sprintf("resolution of %q is ambiguous between equally ranked bindings", canon.Operation)))
	}

	top := candidates[0]
	selected := &Binding{
		Operation:         top.op.ID,
		RouteFamily:       top.route.Family,
		SiteNode:          top.route.SiteNode,
		Cover:             top.route.Cover,
		WorldID:           top.route.WorldID,
		MorphismRowID:     top.route.MorphismRowID,
		RequiredMorphisms: top.required,
	}
	return finish(canon, in, ResultAccepted, nil, selected)
}

// candidate is one (operation row, world-route row) pairing that
// survived the gates so far.
type candidate struct {
	op       operation.Row
	route    registry.RouteBinding
	required []string
	cover    site.Cover
}

// gatherOperations filters the operation registry down to rows the
// request can bind: id match, route-bound class, resolver-eligible and
// world-route-required flags, and the optional hint as a hard filter.
func gatherOperations(canon Request, ops operation.Registry) []operation.Row {
	var out []operation.Row
	for _, op := range ops.Operations {
		if op.ID != canon.Operation || op.Class != operation.ClassRouteBound {
			continue
		}
		if !op.ResolverEligible || !op.WorldRouteRequired {
			continue
		}
		if canon.RouteFamilyHint != "" && op.RouteFamily != canon.RouteFamilyHint {
			continue
		}
		out = append(out, op)
	}
	return out
}

// gatherCandidates pairs operations with the world-route rows of their
// families, dropping pairs that fail the binding rules. Dropped pairs
// accumulate failures; surviving pairs carry their required morphisms.
func gatherCandidates(eligible []operation.Row, reg registry.Registry) ([]candidate, []failures.Failure) {
	var out []candidate
	var dropped []failures.Failure
	for _, op := range eligible {
		matched := false
		for _, rb := range reg.Routes {
			if rb.Family != op.RouteFamily {
				continue
			}
			matched = true
			if !contains(rb.Operations, op.ID) {
				class := rb.FailureClass
				if !class.IsValid() {
					class = failures.ClassWorldRouteUnbound
				}
				dropped = append(dropped, failures.New(class, "",
					fmt.Sprintf("route family %q does not bind operation %q", rb.Family, op.ID)))
				continue
			}
			row, ok := reg.LookupMorphism(rb.MorphismRowID)
			if !ok {
				dropped = append(dropped, failures.New(failures.ClassWorldRouteUnknownMorph, "",
					fmt.Sprintf("route family %q names unknown morphism row %q", rb.Family, rb.MorphismRowID)))
				continue
			}
			declared := op.MorphismSet()
			drift := false
			for _, required := range row.RequiredMorphisms {
				if _, has := declared[required]; !has {
					dropped = append(dropped, failures.New(failures.ClassWorldRouteDrift, "",
						fmt.Sprintf("operation %q lacks morphism %q required by route family %q",
							op.ID, required, rb.Family)))
					drift = true
				}
			}
			if drift {
				continue
			}
			out = append(out, candidate{op: op, route: rb, required: row.RequiredMorphisms})
		}
		if !matched {
			dropped = append(dropped, failures.New(failures.ClassWorldRouteUnbound, "",
				fmt.Sprintf("operation %q names route family %q with no world-route row", op.ID, op.RouteFamily)))
		}
	}
	return out, dropped
}

// validateTopology keeps candidates whose site placement resolves: an
// existing node, an existing cover (whose part count becomes the
// tie-break specificity), and a non-empty registered edge.
func validateTopology(cands []candidate, doctrine site.Doctrine) ([]candidate, []failures.Failure) {
	var out []candidate
	var fs []failures.Failure
	for _, c := range cands {
		if _, ok := doctrine.LookupNode(c.route.SiteNode); !ok {
			fs = append(fs, failures.New(failures.ClassSiteGlueMissing, "",
				fmt.Sprintf("route family %q references unknown site node %q", c.route.Family, c.route.SiteNode)))
			continue
		}
		cover, ok := doctrine.LookupCover(c.route.Cover)
		if !ok {
			fs = append(fs, failures.New(failures.ClassSiteGlueMissing, "",
				fmt.Sprintf("route family %q references unknown cover %q", c.route.Family, c.route.Cover)))
			continue
		}
		if c.route.Edge == "" || !doctrine.HasEdge(c.route.Edge) {
			fs = append(fs, failures.New(failures.ClassSiteOverlapMismatch, "",
				fmt.Sprintf("route family %q references unregistered edge %q", c.route.Family, c.route.Edge)))
			continue
		}
		c.cover = cover
		out = append(out, c)
	}
	return out, fs
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// reject finishes a resolution in the rejected state.
func reject(canon Request, in Inputs, fs ...failures.Failure) Response {
	return finish(canon, in, ResultRejected, fs, nil)
}

// finish seals the terminal state: failures sorted, classes deduped,
// projection and witness computed. The witness digest depends on
// nothing beyond the semantic fields.
func finish(canon Request, in Inputs, result ResultKind, fs []failures.Failure, selected *Binding) Response {
	failures.Sort(fs)
	classes := failures.Classes(fs)
	return Response{
		Result:         result,
		FailureClasses: classes,
		Failures:       fs,
		Selected:       selected,
		Projection:     project(canon, in),
		Witness: Witness{
			SemanticDigest: semanticDigest(in.Site.SiteID, canon.Operation, selected, result, classes),
			Result:         result,
			FailureClasses: classes,
		},
	}
}
