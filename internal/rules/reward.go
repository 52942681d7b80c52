package rules

import (
	"github.com/creatureworks/creature-api/internal/entities"
	"github.com/creatureworks/creature-api/internal/pkg/rng"
)

type rewardRange struct {
	min, max int64
}

// Closed currency reward ranges per tier, paid on successful capture.
var rewardRanges = map[entities.RarityTier]rewardRange{
	entities.RarityCommon:     {120, 230},
	entities.RarityRare:       {250, 350},
	entities.RarityUltraBeast: {400, 600},
	entities.RarityLegendary:  {500, 700},
	entities.RarityMythical:   {800, 1000},
}

// Reward returns a uniform reward within the tier's closed range.
// Unknown tiers pay the common range.
func Reward(src rng.Source, tier entities.RarityTier) int64 {
	r, ok := rewardRanges[tier]
	if !ok {
		r = rewardRanges[entities.RarityCommon]
	}
	return r.min + int64(src.IntN(int(r.max-r.min+1)))
}
