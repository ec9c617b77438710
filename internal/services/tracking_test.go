package services_test

import (
	"regexp"
	"testing"

	"foodcourt/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTrackingID(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{10}$`)

	seen := make(map[string]bool)
	for i := 0; i < 2000; i++ {
		id, err := services.GenerateTrackingID()
		assert.NoError(t, err)
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate tracking ID %s", id)
		seen[id] = true
	}
}

func TestGenerateTrackingIDUsesWholeAlphabet(t *testing.T) {
	// Sampling must be uniform over A-Z0-9; with 20000 characters drawn,
	// every symbol shows up and no symbol dominates.
	counts := make(map[rune]int)
	for i := 0; i < 2000; i++ {
		id, err := services.GenerateTrackingID()
		assert.NoError(t, err)
		for _, r := range id {
			counts[r]++
		}
	}

	assert.Len(t, counts, 36)
	// Expected count per symbol is 20000/36, about 556; allow a wide band
	// so the test never flakes while still catching a skewed sampler.
	for r, n := range counts {
		assert.Greater(t, n, 300, "symbol %c under-represented", r)
		assert.Less(t, n, 900, "symbol %c over-represented", r)
	}
}
