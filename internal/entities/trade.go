package entities

// TradeStatus is the lifecycle state of a trade offer. Offers transition
// out of pending exactly once.
type TradeStatus string

// Trade offer states
const (
	TradePending  TradeStatus = "pending"
	TradeAccepted TradeStatus = "accepted"
	TradeRejected TradeStatus = "rejected"
)

// TradeRequestKind tags what the initiator wants back.
type TradeRequestKind string

// Trade request variants
const (
	TradeRequestAny      TradeRequestKind = "any"
	TradeRequestSpecific TradeRequestKind = "specific"
)

// TradeRequest is the requested side of an offer: either a specific
// instance owned by the target, or nothing in particular ("any", a
// one-way gift from the target's point of view).
type TradeRequest struct {
	Kind       TradeRequestKind `json:"kind"`
	InstanceID string           `json:"instance_id,omitempty"`
}

// RequestAny returns a request that asks for nothing specific.
func RequestAny() TradeRequest {
	return TradeRequest{Kind: TradeRequestAny}
}

// RequestSpecific returns a request for a particular instance.
func RequestSpecific(instanceID string) TradeRequest {
	return TradeRequest{Kind: TradeRequestSpecific, InstanceID: instanceID}
}

// IsSpecific reports whether the request names an instance.
func (r TradeRequest) IsSpecific() bool {
	return r.Kind == TradeRequestSpecific
}

// TradeOffer is a two-party swap proposal. Resolution (accept or reject)
// happens at most once; both instance transfers are atomic with the
// status transition.
type TradeOffer struct {
	ID         string       `json:"id"`
	FromID     string       `json:"from_id"`
	ToID       string       `json:"to_id"`
	OfferedID  string       `json:"offered_id"`
	Requested  TradeRequest `json:"requested"`
	Status     TradeStatus  `json:"status"`
	CreatedAt  int64        `json:"created_at"`
	ResolvedAt int64        `json:"resolved_at,omitempty"`
}

// Involves reports whether accountID is a party to the offer.
func (t *TradeOffer) Involves(accountID string) bool {
	return t.FromID == accountID || t.ToID == accountID
}
