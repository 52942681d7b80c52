package rules

import (
	"github.com/creatureworks/creature-api/internal/pkg/rng"
)

// maxSpeciesID bounds the uniform pick for non-special summons.
const maxSpeciesID = 1000

// Summon weights, in percent of all summons.
const (
	mythicalWeight   = 0.10
	legendaryWeight  = 0.05
	ultraBeastWeight = 0.01
)

// SummonSpecies picks a species to spawn. Mythical, legendary, and
// ultra-beast species come from their curated sets at fixed low weights;
// everything else is a uniform pick over the remaining species IDs
// (rare species stay in the uniform pool and keep their natural odds).
func SummonSpecies(src rng.Source) int32 {
	roll := src.Float64() * 100

	switch {
	case roll < mythicalWeight:
		return mythicalSpecies[src.IntN(len(mythicalSpecies))]
	case roll < mythicalWeight+legendaryWeight:
		return legendarySpecies[src.IntN(len(legendarySpecies))]
	case roll < mythicalWeight+legendaryWeight+ultraBeastWeight:
		return ultraBeastSpecies[src.IntN(len(ultraBeastSpecies))]
	}

	for {
		id := int32(src.IntN(maxSpeciesID)) + 1
		if _, ok := mythicalSet[id]; ok {
			continue
		}
		if _, ok := legendarySet[id]; ok {
			continue
		}
		if _, ok := ultraBeastSet[id]; ok {
			continue
		}
		return id
	}
}
