// Package capability models the flat executable-capability registry the
// resolver gates claimed capabilities against.
package capability

// SchemaKind tags a well-formed capability registry artifact.
const SchemaKind = "doctrine/capability-registry@v1"

// Registry is the flat list of executable capability tags.
type Registry struct {
	SchemaKind string
	Executable []string
}

// Set returns the executable tags as a set for membership checks.
func (r Registry) Set() map[string]struct{} {
	m := make(map[string]struct{}, len(r.Executable))
	for _, tag := range r.Executable {
		m[tag] = struct{}{}
	}
	return m
}
