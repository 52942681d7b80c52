package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creatureworks/creature-api/internal/entities"
	"github.com/creatureworks/creature-api/internal/pkg/rng"
	"github.com/creatureworks/creature-api/internal/rules"
)

func TestSummonSpecies_WeightedTiers(t *testing.T) {
	src := rng.NewSeeded(99)

	const draws = 200000
	counts := map[entities.RarityTier]int{}
	for i := 0; i < draws; i++ {
		id := rules.SummonSpecies(src)
		assert.Greater(t, id, int32(0))
		counts[rules.Classify(id)]++
	}

	mythRate := float64(counts[entities.RarityMythical]) / draws
	assert.InDelta(t, 0.001, mythRate, 0.0005, "mythical summon weight")

	// the uniform pool excludes mythical/legendary/ultra-beast but keeps
	// rare species at their natural odds, so common dominates
	assert.Greater(t, counts[entities.RarityCommon], draws/2)
	assert.Greater(t, counts[entities.RarityRare], 0)
}

func TestSummonSpecies_ForcedSpecialDraws(t *testing.T) {
	// a roll below the mythical weight picks from the mythical set
	src := rng.NewFixed(0.0005)
	id := rules.SummonSpecies(src)
	assert.Equal(t, entities.RarityMythical, rules.Classify(id))

	// a roll past every special weight falls through to the uniform pool
	src = rng.NewFixed(0.99)
	id = rules.SummonSpecies(src)
	assert.Equal(t, entities.RarityCommon, rules.Classify(id))
}
