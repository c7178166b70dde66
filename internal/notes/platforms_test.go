package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	p := DefaultPlatforms()
	assert.Equal(t, Gen4, p.Classify("ps4"))
	assert.Equal(t, Gen4, p.Classify("XB1"))
	assert.Equal(t, Gen5, p.Classify("ps5"))
	assert.Equal(t, Gen5, p.Classify(" steamdeck "))
	assert.Equal(t, GenUnknown, p.Classify("amiga"))
	assert.Equal(t, GenUnknown, p.Classify(""))
}

func TestNewPlatforms_DuplicatesResolveToGen4(t *testing.T) {
	p := NewPlatforms([]string{"shared", "ps4"}, []string{"shared", "pc"})
	assert.Equal(t, Gen4, p.Classify("shared"))
	assert.Equal(t, []string{"pc", "ps4", "shared"}, p.All())
}

func TestPlatforms_Contains(t *testing.T) {
	p := DefaultPlatforms()
	assert.True(t, p.Contains("nx2"))
	assert.False(t, p.Contains("gen4"), "generation keys are not platforms")
}

func TestPlatforms_AllIsACopy(t *testing.T) {
	p := DefaultPlatforms()
	all := p.All()
	all[0] = "mutated"
	assert.NotEqual(t, all[0], p.All()[0])
}
