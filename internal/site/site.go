// Package site models the canonical doctrine-site topology artifact:
// node ids, covers with their parts, and registered edge ids.
package site

import (
	"fmt"
	"strings"

	"doctrine/pkg/failures"
)

// SchemaKind tags a well-formed doctrine site artifact.
const SchemaKind = "doctrine/site@v1"

// Node is one site node.
type Node struct {
	ID string
}

// Cover is a declared cover of a node. Its specificity for resolver
// tie-breaking is the number of parts.
type Cover struct {
	ID    string
	Node  string
	Parts []string
}

// Edge is a registered edge id.
type Edge struct {
	ID string
}

// Doctrine is the parsed site topology.
type Doctrine struct {
	SchemaKind string
	SiteID     string
	Nodes      []Node
	Covers     []Cover
	Edges      []Edge
}

// Validate checks the structural shape of the site. Violations are
// reported as site_glue_missing: topology the resolver cannot read has
// no glue to offer.
func (d Doctrine) Validate() []failures.Failure {
	var fs []failures.Failure
	if d.SchemaKind != SchemaKind {
		fs = append(fs, failures.New(failures.ClassSiteGlueMissing, "",
			fmt.Sprintf("doctrine site kind %q is not %q", d.SchemaKind, SchemaKind)).
			At("doctrine_site.schema_kind"))
	}
	if strings.TrimSpace(d.SiteID) == "" {
		fs = append(fs, failures.New(failures.ClassSiteGlueMissing, "",
			"doctrine site id is empty").At("doctrine_site.site_id"))
	}
	for i, c := range d.Covers {
		if _, ok := d.LookupNode(c.Node); !ok {
			fs = append(fs, failures.New(failures.ClassSiteGlueMissing, "",
				fmt.Sprintf("cover %q names unknown node %q", c.ID, c.Node)).
				At(fmt.Sprintf("doctrine_site.covers[%d].node", i)))
		}
	}
	failures.Sort(fs)
	return fs
}

// LookupNode resolves a node id.
func (d Doctrine) LookupNode(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// LookupCover resolves a cover id.
func (d Doctrine) LookupCover(id string) (Cover, bool) {
	for _, c := range d.Covers {
		if c.ID == id {
			return c, true
		}
	}
	return Cover{}, false
}

// HasEdge reports whether an edge id is registered.
func (d Doctrine) HasEdge(id string) bool {
	for _, e := range d.Edges {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Specificity is the cover's part count, the resolver's tie-break key.
func (c Cover) Specificity() int {
	return len(c.Parts)
}
