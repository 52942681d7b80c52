package rules

import (
	"github.com/creatureworks/creature-api/internal/entities"
	"github.com/creatureworks/creature-api/internal/errors"
	"github.com/creatureworks/creature-api/internal/pkg/rng"
)

// captureRates is the success probability per tier and orb. The master
// orb guarantees capture at every tier.
var captureRates = map[entities.RarityTier]map[entities.ItemType]float64{
	entities.RarityCommon: {
		entities.ItemBasicOrb:  0.50,
		entities.ItemGreatOrb:  0.65,
		entities.ItemUltraOrb:  0.80,
		entities.ItemMasterOrb: 1.0,
	},
	entities.RarityRare: {
		entities.ItemBasicOrb:  0.25,
		entities.ItemGreatOrb:  0.45,
		entities.ItemUltraOrb:  0.65,
		entities.ItemMasterOrb: 1.0,
	},
	entities.RarityLegendary: {
		entities.ItemBasicOrb:  0.08,
		entities.ItemGreatOrb:  0.18,
		entities.ItemUltraOrb:  0.30,
		entities.ItemMasterOrb: 1.0,
	},
	entities.RarityMythical: {
		entities.ItemBasicOrb:  0.05,
		entities.ItemGreatOrb:  0.12,
		entities.ItemUltraOrb:  0.25,
		entities.ItemMasterOrb: 1.0,
	},
	entities.RarityUltraBeast: {
		entities.ItemBasicOrb:  0.05,
		entities.ItemGreatOrb:  0.15,
		entities.ItemUltraOrb:  0.30,
		entities.ItemMasterOrb: 1.0,
	},
}

// CaptureChance returns the success probability for a tier and orb.
func CaptureChance(tier entities.RarityTier, item entities.ItemType) (float64, error) {
	rates, ok := captureRates[tier]
	if !ok {
		return 0, errors.InvalidArgumentf("unknown rarity tier: %s", tier)
	}
	p, ok := rates[item]
	if !ok {
		return 0, errors.InvalidArgumentf("unknown item type: %s", item)
	}
	return p, nil
}

// ResolveCapture draws one fresh uniform sample and reports success.
// Item consumption is the caller's responsibility; the outcome here is
// independent of it.
func ResolveCapture(src rng.Source, tier entities.RarityTier, item entities.ItemType) (bool, error) {
	p, err := CaptureChance(tier, item)
	if err != nil {
		return false, err
	}
	return src.Float64() < p, nil
}
