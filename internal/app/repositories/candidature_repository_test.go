package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidatureSortKeys(t *testing.T) {
	// The controllers fall back to DefaultCandidatureSort, so it must
	// resolve to a real column.
	column, ok := candidatureSortColumns[DefaultCandidatureSort]
	assert.True(t, ok)
	assert.Equal(t, "ca.submitted_at", column)

	for key, column := range candidatureSortColumns {
		assert.NotEmpty(t, key)
		assert.NotEmpty(t, column)
	}

	_, ok = candidatureSortColumns["submitted_at"]
	assert.False(t, ok, "snake_case keys are not part of the API surface")
}
