package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandString(t *testing.T) {
	s := RandString(8)
	assert.Len(t, s, 8)
	for _, r := range s {
		assert.Contains(t, letters, string(r))
	}
	assert.Empty(t, RandString(0))
}
