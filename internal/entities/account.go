// Package entities holds the domain types shared across repositories,
// orchestrators, and handlers. They carry no behavior beyond small
// convenience accessors.
package entities

// ItemType identifies a consumable capture item. Ordered weakest to
// strongest; the strongest tier guarantees capture at every rarity.
type ItemType string

// Capture item types
const (
	ItemBasicOrb  ItemType = "basic_orb"
	ItemGreatOrb  ItemType = "great_orb"
	ItemUltraOrb  ItemType = "ultra_orb"
	ItemMasterOrb ItemType = "master_orb"
)

// ItemTypes lists every known capture item, weakest first.
var ItemTypes = []ItemType{ItemBasicOrb, ItemGreatOrb, ItemUltraOrb, ItemMasterOrb}

// IsValidItemType reports whether t names a known capture item.
func IsValidItemType(t ItemType) bool {
	for _, known := range ItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Account is a player account. Balance and item counts are
// server-authoritative and never go negative.
type Account struct {
	ID          string             `json:"id"`
	DisplayName string             `json:"display_name"`
	Balance     int64              `json:"balance"`
	Items       map[ItemType]int64 `json:"items"`
	CompanionID string             `json:"companion_id,omitempty"`
	CreatedAt   int64              `json:"created_at"`
}
