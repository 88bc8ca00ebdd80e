package failures

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassIsValid(t *testing.T) {
	assert.True(t, ClassDescent.IsValid())
	assert.True(t, ClassResolveAmbiguous.IsValid())
	assert.False(t, Class("not_a_class").IsValid())
	assert.False(t, Class("").IsValid())
}

func TestClassesDedupesAndSorts(t *testing.T) {
	fs := []Failure{
		New(ClassWorldRouteDrift, "law_cover", "drift b"),
		New(ClassDescent, "law_existence", "no glue"),
		New(ClassWorldRouteDrift, "law_cover", "drift a"),
	}
	got := Classes(fs)
	assert.Equal(t, []Class{ClassDescent, ClassWorldRouteDrift}, got)
}

func TestSortOrdersByPathClassMessage(t *testing.T) {
	fs := []Failure{
		New(ClassLocality, "law_cover", "zz").At("b"),
		New(ClassDescent, "law_cover", "aa").At("b"),
		New(ClassStability, "law_identity", "mm").At("a"),
		New(ClassDescent, "law_cover", "ab").At("b"),
	}
	Sort(fs)
	assert.Equal(t, "a", fs[0].Path)
	assert.Equal(t, ClassDescent, fs[1].Class)
	assert.Equal(t, "aa", fs[1].Message)
	assert.Equal(t, "ab", fs[2].Message)
	assert.Equal(t, ClassLocality, fs[3].Class)
}

func TestWithDoesNotMutateOriginal(t *testing.T) {
	base := New(ClassDescent, "law_existence", "no glue").With("leg", "3")
	derived := base.With("leg", "6")
	assert.Equal(t, "3", base.Context["leg"])
	assert.Equal(t, "6", derived.Context["leg"])
}
