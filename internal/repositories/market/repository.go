// Package market defines the interface for marketplace persistence.
// Listings reference creature instances held in escrow; a listed
// instance belongs to the market until purchased or withdrawn.
package market

//go:generate mockgen -destination=mock/mock_repository.go -package=marketmock github.com/creatureworks/creature-api/internal/repositories/market Repository

import (
	"context"

	"github.com/creatureworks/creature-api/internal/entities"
)

// Repository owns market listings and the money-for-creature
// settlement. Listing, withdrawal and purchase all flip the instance's
// escrow flag and its ownership in the same transaction that touches
// the listing, so no interleaving can observe a half-settled state.
type Repository interface {
	// List places an instance on the market at the given price
	// Returns errors.FailedPrecondition when the seller doesn't own it
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// ListSystem creates an instance that goes straight into escrow
	// as a sellerless listing. Purchase proceeds from system listings
	// leave circulation
	ListSystem(ctx context.Context, input ListSystemInput) (*ListOutput, error)

	// Get retrieves a listing by instance ID
	// Returns errors.NotFound if the instance is not listed
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Browse returns every active listing
	Browse(ctx context.Context, input BrowseInput) (*BrowseOutput, error)

	// Withdraw takes a listing off the market and returns the
	// instance to its seller
	// Returns errors.PermissionDenied when the caller isn't the seller
	Withdraw(ctx context.Context, input WithdrawInput) (*WithdrawOutput, error)

	// Purchase settles a listing: debits the buyer, credits the
	// seller, and moves the instance to the buyer, atomically
	// Returns errors.NotFound if the listing is gone and
	// errors.FailedPrecondition if the buyer can't afford it
	Purchase(ctx context.Context, input PurchaseInput) (*PurchaseOutput, error)
}

// ListInput defines the input for creating a listing
type ListInput struct {
	InstanceID string
	SellerID   string
	Price      int64
	ListedAt   int64
}

// ListOutput defines the output for creating a listing
type ListOutput struct {
	Listing *entities.MarketListing
}

// ListSystemInput defines the input for creating a system listing
type ListSystemInput struct {
	Instance *entities.CreatureInstance
	Price    int64
	ListedAt int64
}

// GetInput defines the input for getting a listing
type GetInput struct {
	InstanceID string
}

// GetOutput defines the output for getting a listing
type GetOutput struct {
	Listing  *entities.MarketListing
	Instance *entities.CreatureInstance
}

// BrowseInput defines the input for browsing listings
type BrowseInput struct{}

// BrowseOutput defines the output for browsing listings
type BrowseOutput struct {
	Listings  []*entities.MarketListing
	Instances []*entities.CreatureInstance
}

// WithdrawInput defines the input for withdrawing a listing
type WithdrawInput struct {
	InstanceID string
	SellerID   string
}

// WithdrawOutput defines the output for withdrawing a listing
type WithdrawOutput struct {
	Instance *entities.CreatureInstance
}

// PurchaseInput defines the input for purchasing a listing
type PurchaseInput struct {
	InstanceID string
	BuyerID    string
}

// PurchaseOutput defines the output for purchasing a listing
type PurchaseOutput struct {
	Instance *entities.CreatureInstance
	Price    int64
	SellerID string
}
