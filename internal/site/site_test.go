package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doctrine/pkg/failures"
)

func doctrine() Doctrine {
	return Doctrine{
		SchemaKind: SchemaKind,
		SiteID:     "site-main",
		Nodes:      []Node{{ID: "trunk"}},
		Covers:     []Cover{{ID: "trunk-cover", Node: "trunk", Parts: []string{"lint", "test"}}},
		Edges:      []Edge{{ID: "trunk-edge"}},
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.Empty(t, doctrine().Validate())
}

func TestValidateRejectsCoverWithUnknownNode(t *testing.T) {
	d := doctrine()
	d.Covers = append(d.Covers, Cover{ID: "orphan", Node: "ghost"})
	fs := d.Validate()
	require.Len(t, fs, 1)
	assert.Equal(t, failures.ClassSiteGlueMissing, fs[0].Class)
}

func TestValidateRejectsEmptySiteID(t *testing.T) {
	d := doctrine()
	d.SiteID = " "
	fs := d.Validate()
	require.Len(t, fs, 1)
	assert.Equal(t, failures.ClassSiteGlueMissing, fs[0].Class)
}

func TestLookupsAndSpecificity(t *testing.T) {
	d := doctrine()

	cover, ok := d.LookupCover("trunk-cover")
	require.True(t, ok)
	assert.Equal(t, 2, cover.Specificity())

	_, ok = d.LookupNode("ghost")
	assert.False(t, ok)
	assert.True(t, d.HasEdge("trunk-edge"))
	assert.False(t, d.HasEdge(""))
}
