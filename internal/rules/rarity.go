// Package rules holds the pure game rules: rarity classification,
// capture resolution, reward ranges, and the weighted summon table.
// Everything here is stateless; random draws come from an injected
// rng.Source.
package rules

import (
	"github.com/creatureworks/creature-api/internal/entities"
)

// Hand-curated species membership per tier. Anything unmatched is
// common. A few species appear in more than one set; classification
// precedence (mythical, legendary, ultra-beast, rare) breaks the tie.
var legendarySpecies = []int32{
	144, 145, 146, 150,
	243, 244, 245,
	249, 250,
	377, 378, 379,
	380, 381,
	382, 383, 384,
	480, 481, 482,
	483, 484, 485, 486,
	487, 488,
	638, 639, 640,
	641, 642, 645,
	643, 644, 646,
	716, 717, 718,
	785, 786, 787, 788,
	891, 892, 894, 895, 896, 897,
	898,
}

var mythicalSpecies = []int32{
	151,
	251,
	385,
	386,
	489, 490,
	491, 492, 493,
	494,
	647, 648, 649,
	719,
	720,
	721,
	801,
	802,
	807,
	808, 809,
	893,
	1005, 1006, 1007, 1008,
	1009, 1010,
}

var ultraBeastSpecies = []int32{
	793, 794, 795, 796, 797, 798, 799, 800,
	803, 804, 805, 806,
	891, 892,
}

var rareSpecies = []int32{
	149,
	248,
	373,
	376,
	445,
	635,
	706,
	784,
	887,
}

var (
	legendarySet  = toSet(legendarySpecies)
	mythicalSet   = toSet(mythicalSpecies)
	ultraBeastSet = toSet(ultraBeastSpecies)
	rareSet       = toSet(rareSpecies)
)

func toSet(ids []int32) map[int32]struct{} {
	set := make(map[int32]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Classify maps a species ID to its rarity tier. The check order is the
// classification precedence and must not be reordered.
func Classify(speciesID int32) entities.RarityTier {
	if _, ok := mythicalSet[speciesID]; ok {
		return entities.RarityMythical
	}
	if _, ok := legendarySet[speciesID]; ok {
		return entities.RarityLegendary
	}
	if _, ok := ultraBeastSet[speciesID]; ok {
		return entities.RarityUltraBeast
	}
	if _, ok := rareSet[speciesID]; ok {
		return entities.RarityRare
	}
	return entities.RarityCommon
}

// Rank gives a total order over tiers for display sorting. It plays no
// part in any economic decision.
func Rank(tier entities.RarityTier) int {
	switch tier {
	case entities.RarityMythical:
		return 5
	case entities.RarityLegendary:
		return 4
	case entities.RarityUltraBeast:
		return 3
	case entities.RarityRare:
		return 2
	default:
		return 1
	}
}
