// Package game defines the interface for the game economy operations:
// accounts, summons, captures, the collection, the market, and trades.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/creatureworks/creature-api/internal/services/game Service

import (
	"context"

	"github.com/creatureworks/creature-api/internal/entities"
)

// Service defines the interface for game economy operations
type Service interface {
	// Accounts
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error)
	GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error)
	GetInventory(ctx context.Context, input *GetInventoryInput) (*GetInventoryOutput, error)

	// Summons and captures
	SummonCreature(ctx context.Context, input *SummonCreatureInput) (*SummonCreatureOutput, error)
	AttemptCapture(ctx context.Context, input *AttemptCaptureInput) (*AttemptCaptureOutput, error)

	// Collection
	ListCollection(ctx context.Context, input *ListCollectionInput) (*ListCollectionOutput, error)

	// Market
	ListMarket(ctx context.Context, input *ListMarketInput) (*ListMarketOutput, error)
	ListInstance(ctx context.Context, input *ListInstanceInput) (*ListInstanceOutput, error)
	WithdrawListing(ctx context.Context, input *WithdrawListingInput) (*WithdrawListingOutput, error)
	PurchaseInstance(ctx context.Context, input *PurchaseInstanceInput) (*PurchaseInstanceOutput, error)

	// Trades
	ProposeTrade(ctx context.Context, input *ProposeTradeInput) (*ProposeTradeOutput, error)
	ListTrades(ctx context.Context, input *ListTradesInput) (*ListTradesOutput, error)
	AcceptTrade(ctx context.Context, input *AcceptTradeInput) (*AcceptTradeOutput, error)
	RejectTrade(ctx context.Context, input *RejectTradeInput) (*RejectTradeOutput, error)

	// Companion
	GetCompanion(ctx context.Context, input *GetCompanionInput) (*GetCompanionOutput, error)
	SetCompanion(ctx context.Context, input *SetCompanionInput) (*SetCompanionOutput, error)
}

// Account types

// CreateAccountInput defines the request for creating an account
type CreateAccountInput struct {
	AccountID   string
	DisplayName string
}

// CreateAccountOutput defines the response for creating an account
type CreateAccountOutput struct {
	Account *entities.Account
}

// GetBalanceInput defines the request for reading a balance
type GetBalanceInput struct {
	AccountID string
}

// GetBalanceOutput defines the response for reading a balance
type GetBalanceOutput struct {
	Balance int64
}

// GetInventoryInput defines the request for reading item counts
type GetInventoryInput struct {
	AccountID string
}

// GetInventoryOutput defines the response for reading item counts
type GetInventoryOutput struct {
	Items map[entities.ItemType]int64
}

// Summon and capture types

// SummonCreatureInput defines the request for summoning a wild creature
type SummonCreatureInput struct {
	AccountID string
}

// SummonCreatureOutput defines the response for summoning a wild creature.
// The summoned creature is not owned; it is a capture target.
type SummonCreatureOutput struct {
	SpeciesID int32
	Name      string
	Image     string
	Types     []string
	Rarity    entities.RarityTier
}

// AttemptCaptureInput defines the request for a capture attempt
type AttemptCaptureInput struct {
	AccountID string
	SpeciesID int32
	Item      entities.ItemType
}

// AttemptCaptureOutput defines the response for a capture attempt.
// Instance and Reward are set only when Captured is true.
type AttemptCaptureOutput struct {
	Captured  bool
	Rarity    entities.RarityTier
	Reward    int64
	Remaining int64
	Instance  *entities.CreatureInstance
}

// Collection types

// ListCollectionInput defines the request for listing owned creatures
type ListCollectionInput struct {
	AccountID string
}

// ListCollectionOutput defines the response for listing owned creatures,
// sorted by rarity rank descending
type ListCollectionOutput struct {
	Instances []*entities.CreatureInstance
}

// Market types

// ListMarketInput defines the request for browsing the market
type ListMarketInput struct{}

// MarketEntry pairs a listing with its creature's display data
type MarketEntry struct {
	Listing  *entities.MarketListing
	Instance *entities.CreatureInstance
}

// ListMarketOutput defines the response for browsing the market
type ListMarketOutput struct {
	Entries []*MarketEntry
}

// ListInstanceInput defines the request for listing a creature for sale
type ListInstanceInput struct {
	AccountID  string
	InstanceID string
	Price      int64
}

// ListInstanceOutput defines the response for listing a creature for sale
type ListInstanceOutput struct {
	Listing *entities.MarketListing
}

// WithdrawListingInput defines the request for withdrawing a listing
type WithdrawListingInput struct {
	AccountID  string
	InstanceID string
}

// WithdrawListingOutput defines the response for withdrawing a listing
type WithdrawListingOutput struct {
	Instance *entities.CreatureInstance
}

// PurchaseInstanceInput defines the request for purchasing a listing
type PurchaseInstanceInput struct {
	AccountID  string
	InstanceID string
}

// PurchaseInstanceOutput defines the response for purchasing a listing
type PurchaseInstanceOutput struct {
	Instance *entities.CreatureInstance
	Price    int64
	Balance  int64
}

// Trade types

// ProposeTradeInput defines the request for proposing a trade
type ProposeTradeInput struct {
	AccountID string
	ToID      string
	OfferedID string
	Requested entities.TradeRequest
}

// ProposeTradeOutput defines the response for proposing a trade
type ProposeTradeOutput struct {
	Offer *entities.TradeOffer
}

// ListTradesInput defines the request for listing pending trades
type ListTradesInput struct {
	AccountID string
}

// ListTradesOutput defines the response for listing pending trades
type ListTradesOutput struct {
	Offers []*entities.TradeOffer
}

// AcceptTradeInput defines the request for accepting a trade
type AcceptTradeInput struct {
	AccountID string
	TradeID   string
}

// AcceptTradeOutput defines the response for accepting a trade
type AcceptTradeOutput struct {
	Offer    *entities.TradeOffer
	Received *entities.CreatureInstance
	Sent     *entities.CreatureInstance
}

// RejectTradeInput defines the request for rejecting a trade
type RejectTradeInput struct {
	AccountID string
	TradeID   string
}

// RejectTradeOutput defines the response for rejecting a trade
type RejectTradeOutput struct {
	Offer *entities.TradeOffer
}

// Companion types

// GetCompanionInput defines the request for reading the companion
type GetCompanionInput struct {
	AccountID string
}

// GetCompanionOutput defines the response for reading the companion.
// Instance is nil when no companion is set.
type GetCompanionOutput struct {
	Instance *entities.CreatureInstance
}

// SetCompanionInput defines the request for setting the companion
type SetCompanionInput struct {
	AccountID  string
	InstanceID string
}

// SetCompanionOutput defines the response for setting the companion
type SetCompanionOutput struct {
	Instance *entities.CreatureInstance
}
