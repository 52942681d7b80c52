package entities

// MarketListing is a creature instance offered for sale. SellerID may be
// empty for system-seeded listings, in which case purchase proceeds are
// not routed anywhere.
type MarketListing struct {
	InstanceID string `json:"instance_id"`
	SellerID   string `json:"seller_id,omitempty"`
	Price      int64  `json:"price"`
	ListedAt   int64  `json:"listed_at"`
}
