package selection

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuttle/internal/models"
)

func seeded(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)))
}

func TestSelect_EmptyRequired(t *testing.T) {
	eng := seeded(1)

	for _, mult := range []models.MultiplicityPolicy{models.AllowMany, models.SingleOnly, models.RandomOne} {
		_, err := eng.Select(nil, mult, models.Required, models.Limit{})
		assert.ErrorIs(t, err, models.ErrNoFilesFound, "multiplicity=%s", mult)
	}
}

func TestSelect_EmptyOptional(t *testing.T) {
	eng := seeded(1)

	selected, err := eng.Select(nil, models.AllowMany, models.Optional, models.Limit{})
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestSelect_SingleOnlyFailsOnMany(t *testing.T) {
	eng := seeded(1)

	_, err := eng.Select([]string{"a.csv", "b.csv"}, models.SingleOnly, models.Required, models.Limit{})
	assert.ErrorIs(t, err, models.ErrMultipleMatches)
}

func TestSelect_SingleMatchPassesThrough(t *testing.T) {
	eng := seeded(1)

	selected, err := eng.Select([]string{"report_2024.txt"}, models.SingleOnly, models.Required, models.Limit{})
	require.NoError(t, err)
	assert.Equal(t, []string{"report_2024.txt"}, selected)
}

func TestSelect_PreservesDiscoveryOrder(t *testing.T) {
	eng := seeded(1)
	candidates := []string{"c.txt", "a.txt", "b.txt"}

	selected, err := eng.Select(candidates, models.AllowMany, models.Required, models.Limit{})
	require.NoError(t, err)
	assert.Equal(t, candidates, selected)
}

func TestSelect_RandomOnePicksExactlyOne(t *testing.T) {
	eng := seeded(42)
	candidates := []string{"a", "b", "c"}

	selected, err := eng.Select(candidates, models.RandomOne, models.Required, models.Limit{})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Contains(t, candidates, selected[0])
}

func TestSelect_RandomOneIsUniform(t *testing.T) {
	eng := seeded(7)
	candidates := []string{"a", "b", "c", "d"}

	const trials = 4000
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		selected, err := eng.Select(candidates, models.RandomOne, models.Required, models.Limit{})
		require.NoError(t, err)
		counts[selected[0]]++
	}

	// Each candidate should land near trials/len(candidates).
	for _, name := range candidates {
		assert.InDelta(t, trials/len(candidates), counts[name], trials/10, "candidate %s", name)
	}
}

func TestSelect_LimitTruncates(t *testing.T) {
	eng := seeded(3)
	candidates := []string{"a.csv", "b.csv", "c.csv", "d.csv"}

	selected, err := eng.Select(candidates, models.AllowMany, models.Required, models.Limit{Bounded: true, N: 2})
	require.NoError(t, err)
	require.Len(t, selected, 2)
	for _, name := range selected {
		assert.Contains(t, candidates, name)
	}
	assert.NotEqual(t, selected[0], selected[1])
}

func TestSelect_LimitWithinBoundKeepsAll(t *testing.T) {
	eng := seeded(3)
	candidates := []string{"a.csv", "b.csv"}

	selected, err := eng.Select(candidates, models.AllowMany, models.Required, models.Limit{Bounded: true, N: 5})
	require.NoError(t, err)
	assert.Equal(t, candidates, selected)
}

func TestSelect_LimitZeroOptional(t *testing.T) {
	eng := seeded(3)

	selected, err := eng.Select([]string{"a.csv"}, models.AllowMany, models.Optional, models.Limit{Bounded: true, N: 0})
	require.NoError(t, err)
	assert.Empty(t, selected)
}
