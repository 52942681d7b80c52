package entities

// RarityTier is one of the five fixed rarity categories. It governs
// capture difficulty and reward magnitude.
type RarityTier string

// Rarity tiers
const (
	RarityCommon     RarityTier = "common"
	RarityRare       RarityTier = "rare"
	RarityUltraBeast RarityTier = "ultra-beast"
	RarityLegendary  RarityTier = "legendary"
	RarityMythical   RarityTier = "mythical"
)

// CreatureInstance is a specific owned or listed copy of a species.
// Exactly one of OwnerID / Listed is set once the instance exists;
// catalog metadata is normalized in at creation time and never
// re-derived on read.
type CreatureInstance struct {
	ID         string     `json:"id"`
	SpeciesID  int32      `json:"species_id"`
	Name       string     `json:"name"`
	Image      string     `json:"image"`
	Types      []string   `json:"types"`
	Rarity     RarityTier `json:"rarity"`
	OwnerID    string     `json:"owner_id,omitempty"`
	Listed     bool       `json:"listed,omitempty"`
	CapturedAt int64      `json:"captured_at"`
}

// OwnedBy reports whether the instance is currently owned by accountID.
// A listed instance is owned by nobody.
func (c *CreatureInstance) OwnedBy(accountID string) bool {
	return !c.Listed && c.OwnerID == accountID
}
