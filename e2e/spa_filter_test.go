//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelqa/staysuite/internal/scenarios"
)

// TestSpaFilter
// Feature: Amenity filter
//
//	As a traveller
//	I want to narrow Cork hotels to those with a spa
//	So that I only see stays I would book
func TestSpaFilter(t *testing.T) {
	j := newJourney(t)

	// Given I searched for a double room in Cork for a month
	require.NoError(t, j.Search(scenarios.DefaultSearch))

	// Then I should see results
	names, err := j.ShowResults()
	require.NoError(t, err)
	assert.Contains(t, names, "Jurys Inn Cork")

	// When I apply the Spa filter
	// Then The River Lee is listed and Jurys Inn Cork is not
	require.NoError(t, j.ApplyFilter(scenarios.SpaPlan.Check))
}
