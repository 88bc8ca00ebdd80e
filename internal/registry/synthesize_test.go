package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doctrine/internal/operation"
	"doctrine/pkg/failures"
)

func bindings() Bindings {
	return Bindings{
		SchemaKind: BindingsSchemaKind,
		Entries: []BindingEntry{
			{
				Family:            "merge",
				Operations:        []string{"op.merge", "op.merge"},
				WorldID:           "w-merge",
				MorphismRowID:     "m-merge",
				RequiredMorphisms: []string{"restrict"},
				FailureClass:      failures.ClassWorldRouteDrift,
				SiteNode:          "trunk",
				Cover:             "trunk-cover",
			},
		},
	}
}

func TestSynthesizeMintsWorldsAndMorphisms(t *testing.T) {
	reg, report := Synthesize(bindings())
	require.True(t, report.OK())

	require.Len(t, reg.Worlds, 1)
	assert.Equal(t, "w-merge", reg.Worlds[0].ID)
	assert.Equal(t, "route", reg.Worlds[0].Role)
	assert.Equal(t, "canonical", reg.Worlds[0].CoverKind)
	assert.Equal(t, "strict", reg.Worlds[0].EqualityMode)

	require.Len(t, reg.Morphisms, 1)
	assert.Equal(t, "w-merge", reg.Morphisms[0].FromWorld)
	assert.Equal(t, "w-merge", reg.Morphisms[0].ToWorld)
	assert.Equal(t, []string{"restrict"}, reg.Morphisms[0].RequiredMorphisms)

	require.Len(t, reg.Routes, 1)
	assert.Equal(t, []string{"op.merge"}, reg.Routes[0].Operations, "duplicates within an entry collapse")
	assert.Equal(t, "trunk", reg.Routes[0].SiteNode)

	assert.True(t, Validate(reg).OK(), "synthesized registries are structurally valid")
}

func TestSynthesizeSharesMorphismRowsAcrossEntries(t *testing.T) {
	b := bindings()
	b.Entries = append(b.Entries, BindingEntry{
		Family:            "review",
		Operations:        []string{"op.review"},
		WorldID:           "w-merge",
		MorphismRowID:     "m-merge",
		RequiredMorphisms: []string{"restrict"},
	})
	reg, report := Synthesize(b)
	require.True(t, report.OK())
	assert.Len(t, reg.Worlds, 1)
	assert.Len(t, reg.Morphisms, 1)
	assert.Len(t, reg.Routes, 2)
}

func TestSynthesizeFlagsConflictingMorphismRedeclaration(t *testing.T) {
	b := bindings()
	b.Entries = append(b.Entries, BindingEntry{
		Family:            "review",
		Operations:        []string{"op.review"},
		WorldID:           "w-merge",
		MorphismRowID:     "m-merge",
		RequiredMorphisms: []string{"restrict", "glue"},
	})
	_, report := Synthesize(b)
	require.False(t, report.OK())
	assert.Equal(t, []failures.Class{failures.ClassWorldRouteUnknownMorph}, report.Classes)
}

func TestSynthesizeToleratesReorderedMorphismRedeclaration(t *testing.T) {
	b := bindings()
	b.Entries[0].RequiredMorphisms = []string{"restrict", "glue"}
	b.Entries = append(b.Entries, BindingEntry{
		Family:            "review",
		Operations:        []string{"op.review"},
		WorldID:           "w-merge",
		MorphismRowID:     "m-merge",
		RequiredMorphisms: []string{"glue", "restrict"},
	})
	_, report := Synthesize(b)
	assert.True(t, report.OK())
}

func TestValidateDeclaredBindingsAccepts(t *testing.T) {
	report := ValidateDeclaredBindings(bindings(), opsRegistry(),
		[]string{"merge"}, map[string][]string{"merge": {"op.merge"}})
	assert.True(t, report.OK())
}

func TestValidateDeclaredBindingsRejectsWrongKind(t *testing.T) {
	b := bindings()
	b.SchemaKind = "doctrine/world-route-bindings@v0"
	report := ValidateDeclaredBindings(b, opsRegistry(), nil, nil)
	require.False(t, report.OK())
	assert.Contains(t, report.Classes, failures.ClassWorldRouteUnbound)
}

func TestValidateDeclaredBindingsReportsGaps(t *testing.T) {
	report := ValidateDeclaredBindings(bindings(), opsRegistry(),
		[]string{"merge", "review"},
		map[string][]string{"merge": {"op.merge", "op.squash"}})
	require.False(t, report.OK())
	assert.Equal(t, []failures.Class{failures.ClassWorldRouteUnbound}, report.Classes)
	require.Len(t, report.Failures, 2)
	assert.Contains(t, report.Failures[0].Message, "op.squash")
	assert.Contains(t, report.Failures[1].Message, "review")
}

func TestValidateDeclaredBindingsCrossChecksOperations(t *testing.T) {
	b := bindings()
	b.Entries[0].RequiredMorphisms = []string{"restrict", "glue"}
	report := ValidateDeclaredBindings(b, opsRegistry(), nil, nil)
	require.False(t, report.OK())
	assert.Contains(t, report.Classes, failures.ClassWorldRouteDrift)
}

func TestValidateDeclaredBindingsEmpty(t *testing.T) {
	report := ValidateDeclaredBindings(Bindings{SchemaKind: BindingsSchemaKind},
		operation.Registry{SchemaKind: operation.SchemaKind}, nil, nil)
	require.False(t, report.OK())
	assert.Contains(t, report.Classes, failures.ClassWorldRouteUnbound)
}
