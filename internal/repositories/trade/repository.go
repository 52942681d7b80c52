// Package trade defines the interface for trade offer persistence and
// the all-or-nothing creature swap that resolves an accepted offer.
package trade

//go:generate mockgen -destination=mock/mock_repository.go -package=trademock github.com/creatureworks/creature-api/internal/repositories/trade Repository

import (
	"context"

	"github.com/creatureworks/creature-api/internal/entities"
)

// Repository owns trade offers. Offers do not escrow creatures; an
// offer is a standing intent, re-validated against live ownership at
// the moment it resolves.
type Repository interface {
	// Create stores a pending offer and indexes it for both parties
	// Returns errors.AlreadyExists if the offer ID is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an offer by ID
	// Returns errors.NotFound if it doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListPendingByAccount returns the pending offers an account is
	// party to, as proposer or target
	ListPendingByAccount(ctx context.Context, input ListPendingByAccountInput) (*ListPendingByAccountOutput, error)

	// Accept resolves a pending offer, swapping both creatures in one
	// transaction. A resolved or missing offer reports errors.NotFound;
	// only the target may accept
	Accept(ctx context.Context, input AcceptInput) (*AcceptOutput, error)

	// Reject resolves a pending offer without transferring anything
	// Returns errors.NotFound for resolved or missing offers
	Reject(ctx context.Context, input RejectInput) (*RejectOutput, error)

	// Invalidate rejects a pending offer without an authorization
	// check. Used to sweep offers whose creatures changed hands
	Invalidate(ctx context.Context, input InvalidateInput) (*InvalidateOutput, error)
}

// CreateInput defines the input for creating an offer
type CreateInput struct {
	Offer *entities.TradeOffer
}

// CreateOutput defines the output for creating an offer
type CreateOutput struct {
	Offer *entities.TradeOffer
}

// GetInput defines the input for getting an offer
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an offer
type GetOutput struct {
	Offer *entities.TradeOffer
}

// ListPendingByAccountInput defines the input for listing pending offers
type ListPendingByAccountInput struct {
	AccountID string
}

// ListPendingByAccountOutput defines the output for listing pending offers
type ListPendingByAccountOutput struct {
	Offers []*entities.TradeOffer
}

// AcceptInput defines the input for accepting an offer
type AcceptInput struct {
	ID         string
	ActingID   string
	ResolvedAt int64
}

// AcceptOutput defines the output for accepting an offer
type AcceptOutput struct {
	Offer *entities.TradeOffer
	// Received is the instance the acceptor gained
	Received *entities.CreatureInstance
	// Sent is the instance the acceptor gave up, nil for open offers
	Sent *entities.CreatureInstance
}

// RejectInput defines the input for rejecting an offer
type RejectInput struct {
	ID         string
	ActingID   string
	ResolvedAt int64
}

// RejectOutput defines the output for rejecting an offer
type RejectOutput struct {
	Offer *entities.TradeOffer
}

// InvalidateInput defines the input for invalidating an offer
type InvalidateInput struct {
	ID         string
	ResolvedAt int64
}

// InvalidateOutput defines the output for invalidating an offer
type InvalidateOutput struct {
	Offer *entities.TradeOffer
}
