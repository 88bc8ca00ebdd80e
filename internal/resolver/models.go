// Package resolver deterministically resolves which route binding a
// requested operation is bound to, or rejects with a specific failure
// class. Resolution is a pure function over immutable inputs; every
// outcome carries a projection of the consumed artifacts and a
// content-addressed witness.
package resolver

import (
	"sort"
	"strings"

	"doctrine/internal/capability"
	"doctrine/internal/controlplane"
	"doctrine/internal/operation"
	"doctrine/internal/registry"
	"doctrine/internal/site"
	"doctrine/pkg/failures"
)

// RequestSchemaKind tags a well-formed resolve request.
const RequestSchemaKind = "doctrine/site-resolve-request@v1"

// ResultKind is the terminal state of a resolution.
type ResultKind string

const (
	ResultAccepted ResultKind = "accepted"
	ResultRejected ResultKind = "rejected"
)

// Request asks for the route binding of one operation.
type Request struct {
	SchemaKind      string
	Operation       string
	RouteFamilyHint string
	Capabilities    []string
	PolicyDigest    string
	ProfileID       string
	ContextRef      string
}

// canonicalize normalizes the request: identifier fields are trimmed
// and lowercased (matching is case-invariant), capabilities are
// deduplicated into a sorted set.
func (r Request) canonicalize() Request {
	canon := Request{
		SchemaKind:      strings.TrimSpace(r.SchemaKind),
		Operation:       strings.ToLower(strings.TrimSpace(r.Operation)),
		RouteFamilyHint: strings.ToLower(strings.TrimSpace(r.RouteFamilyHint)),
		PolicyDigest:    strings.ToLower(strings.TrimSpace(r.PolicyDigest)),
		ProfileID:       strings.ToLower(strings.TrimSpace(r.ProfileID)),
		ContextRef:      strings.TrimSpace(r.ContextRef),
	}
	seen := make(map[string]bool, len(r.Capabilities))
	for _, claimed := range r.Capabilities {
		tag := strings.ToLower(strings.TrimSpace(claimed))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		canon.Capabilities = append(canon.Capabilities, tag)
	}
	sort.Strings(canon.Capabilities)
	return canon
}

// Inputs bundles the five declarative artifacts a resolution consumes.
// The kernel never loads these itself; the caller parses and owns them.
type Inputs struct {
	// SiteInput is the world-route-bindings declaration.
	SiteInput registry.Bindings

	Site         site.Doctrine
	Operations   operation.Registry
	Contract     controlplane.Contract
	Capabilities capability.Registry
}

// Binding is the selected operation-to-route resolution.
type Binding struct {
	Operation         string
	RouteFamily       string
	SiteNode          string
	Cover             string
	WorldID           string
	MorphismRowID     string
	RequiredMorphisms []string
}

// Projection captures a digest of every input artifact consumed, so
// callers can detect which input changed between two resolutions.
type Projection struct {
	Request              Digest
	SiteInput            Digest
	DoctrineSite         Digest
	OperationRegistry    Digest
	ControlPlaneContract Digest
	CapabilityRegistry   Digest
}

// Witness is the content-addressed decision record. SemanticDigest is a
// pure function of (site id, operation id, selected route family, world,
// morphism row, result, failure classes): identical outcomes on
// identical inputs always share a digest.
type Witness struct {
	SemanticDigest Digest
	Result         ResultKind
	FailureClasses []failures.Class
}

// Response is the terminal resolution outcome.
type Response struct {
	Result         ResultKind
	FailureClasses []failures.Class
	Failures       []failures.Failure
	Selected       *Binding
	Projection     Projection
	Witness        Witness
}
