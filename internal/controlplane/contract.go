// Package controlplane models the control-plane policy contract the
// resolver consults: which profiles may resolve and which policy digest
// lineage is trusted.
package controlplane

import "strings"

// SchemaKind tags a well-formed control-plane contract artifact.
const SchemaKind = "doctrine/control-plane-contract@v1"

// Contract is the policy surface. Empty fields declare no constraint:
// an empty ProfileIDs list allows every profile and an empty digest
// prefix accepts any digest.
type Contract struct {
	SchemaKind         string
	ProfileIDs         []string
	PolicyDigestPrefix string
}

// AllowsProfile reports whether the profile id passes the contract.
func (c Contract) AllowsProfile(id string) bool {
	if len(c.ProfileIDs) == 0 {
		return true
	}
	for _, p := range c.ProfileIDs {
		if p == id {
			return true
		}
	}
	return false
}

// AllowsDigest reports whether the policy digest matches the declared
// prefix, when one is declared.
func (c Contract) AllowsDigest(digest string) bool {
	if c.PolicyDigestPrefix == "" {
		return true
	}
	return strings.HasPrefix(digest, c.PolicyDigestPrefix)
}
