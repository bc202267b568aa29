package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Distinct(t *testing.T) {
	errs := []error{ErrMissingDirectory, ErrMissingBrowser, ErrMissingEditor}
	for i, a := range errs {
		assert.Contains(t, a.Error(), "tui:")
		for j, b := range errs {
			if i != j {
				assert.NotEqual(t, a, b)
			}
		}
	}
}
