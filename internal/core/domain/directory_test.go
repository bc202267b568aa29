package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDirectory_SortsNames(t *testing.T) {
	dir := NewDirectory([]string{"b.txt", "a.txt"})

	assert.Equal(t, []string{"a.txt", "b.txt"}, dir.Names)
	assert.Equal(t, []string{SelectPlaceholder, "a.txt", "b.txt"}, dir.Options())
	assert.Equal(t, 2, dir.Len())
}

func TestNewDirectory_DoesNotMutateInput(t *testing.T) {
	input := []string{"z", "m", "a"}

	_ = NewDirectory(input)

	assert.Equal(t, []string{"z", "m", "a"}, input)
}

func TestDirectory_OptionsPlaceholderAlwaysFirst(t *testing.T) {
	inputs := [][]string{
		nil,
		{"only.pdf"},
		{"Zeta.md", "alpha.md", "Beta.md", "10.txt", "2.txt"},
	}

	for _, names := range inputs {
		options := NewDirectory(names).Options()
		assert.Equal(t, SelectPlaceholder, options[0])
		assert.Len(t, options, len(names)+1)
		assert.IsNonDecreasing(t, options[1:])
	}
}
