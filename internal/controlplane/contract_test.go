package controlplane

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyContractAllowsEverything(t *testing.T) {
	c := Contract{SchemaKind: SchemaKind}
	assert.True(t, c.AllowsProfile("default"))
	assert.True(t, c.AllowsDigest("sha256:anything"))
}

func TestProfileAllowList(t *testing.T) {
	c := Contract{SchemaKind: SchemaKind, ProfileIDs: []string{"prod", "staging"}}
	assert.True(t, c.AllowsProfile("staging"))
	assert.False(t, c.AllowsProfile("default"))
}

func TestDigestLineagePrefix(t *testing.T) {
	c := Contract{SchemaKind: SchemaKind, PolicyDigestPrefix: "sha256:ab"}
	assert.True(t, c.AllowsDigest("sha256:abcd"))
	assert.False(t, c.AllowsDigest("sha256:feed"))
}
