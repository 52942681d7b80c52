// Package game implements the game economy orchestrator: it composes
// the rules, the catalog client, and the repositories into the
// operations the API exposes.
package game

import (
	"context"
	"log/slog"
	"sort"

	"github.com/creatureworks/creature-api/internal/clients/catalog"
	"github.com/creatureworks/creature-api/internal/entities"
	"github.com/creatureworks/creature-api/internal/errors"
	"github.com/creatureworks/creature-api/internal/pkg/clock"
	"github.com/creatureworks/creature-api/internal/pkg/idgen"
	"github.com/creatureworks/creature-api/internal/pkg/rng"
	accountrepo "github.com/creatureworks/creature-api/internal/repositories/account"
	collectionrepo "github.com/creatureworks/creature-api/internal/repositories/collection"
	marketrepo "github.com/creatureworks/creature-api/internal/repositories/market"
	traderepo "github.com/creatureworks/creature-api/internal/repositories/trade"
	"github.com/creatureworks/creature-api/internal/rules"
	"github.com/creatureworks/creature-api/internal/services/game"
)

// Registration grants, from the original game's onboarding.
const (
	startingBalance = 5000
)

var startingItems = map[entities.ItemType]int64{
	entities.ItemBasicOrb:  10,
	entities.ItemGreatOrb:  5,
	entities.ItemUltraOrb:  3,
	entities.ItemMasterOrb: 1,
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	AccountRepo    accountrepo.Repository
	CollectionRepo collectionrepo.Repository
	MarketRepo     marketrepo.Repository
	TradeRepo      traderepo.Repository
	CatalogClient  catalog.Client
	RNG            rng.Source
	InstanceIDGen  idgen.Generator
	TradeIDGen     idgen.Generator
	Clock          clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.AccountRepo == nil {
		vb.RequiredField("AccountRepo")
	}
	if c.CollectionRepo == nil {
		vb.RequiredField("CollectionRepo")
	}
	if c.MarketRepo == nil {
		vb.RequiredField("MarketRepo")
	}
	if c.TradeRepo == nil {
		vb.RequiredField("TradeRepo")
	}
	if c.CatalogClient == nil {
		vb.RequiredField("CatalogClient")
	}
	if c.RNG == nil {
		vb.RequiredField("RNG")
	}
	if c.InstanceIDGen == nil {
		vb.RequiredField("InstanceIDGen")
	}
	if c.TradeIDGen == nil {
		vb.RequiredField("TradeIDGen")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Orchestrator implements the game.Service interface
type Orchestrator struct {
	accountRepo    accountrepo.Repository
	collectionRepo collectionrepo.Repository
	marketRepo     marketrepo.Repository
	tradeRepo      traderepo.Repository
	catalogClient  catalog.Client
	rng            rng.Source
	instanceIDGen  idgen.Generator
	tradeIDGen     idgen.Generator
	clock          clock.Clock
}

// New creates a new game orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		accountRepo:    cfg.AccountRepo,
		collectionRepo: cfg.CollectionRepo,
		marketRepo:     cfg.MarketRepo,
		tradeRepo:      cfg.TradeRepo,
		catalogClient:  cfg.CatalogClient,
		rng:            cfg.RNG,
		instanceIDGen:  cfg.InstanceIDGen,
		tradeIDGen:     cfg.TradeIDGen,
		clock:          cfg.Clock,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ game.Service = (*Orchestrator)(nil)

// Account operations

// CreateAccount registers an account with the starting grants
func (o *Orchestrator) CreateAccount(ctx context.Context, input *game.CreateAccountInput) (*game.CreateAccountOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.AccountID == "" {
		vb.RequiredField("AccountID")
	}
	if input.DisplayName == "" {
		vb.RequiredField("DisplayName")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	items := make(map[entities.ItemType]int64, len(startingItems))
	for item, count := range startingItems {
		items[item] = count
	}

	acc := &entities.Account{
		ID:          input.AccountID,
		DisplayName: input.DisplayName,
		Balance:     startingBalance,
		Items:       items,
		CreatedAt:   o.clock.Now().Unix(),
	}

	out, err := o.accountRepo.Create(ctx, accountrepo.CreateInput{Account: acc})
	if err != nil {
		return nil, err
	}

	slog.Info("account created", "account_id", acc.ID)
	return &game.CreateAccountOutput{Account: out.Account}, nil
}

// GetBalance returns the account's coin balance
func (o *Orchestrator) GetBalance(ctx context.Context, input *game.GetBalanceInput) (*game.GetBalanceOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	out, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, err
	}

	return &game.GetBalanceOutput{Balance: out.Account.Balance}, nil
}

// GetInventory returns the account's item counts
func (o *Orchestrator) GetInventory(ctx context.Context, input *game.GetInventoryInput) (*game.GetInventoryOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	out, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, err
	}

	items := make(map[entities.ItemType]int64, len(entities.ItemTypes))
	for _, item := range entities.ItemTypes {
		items[item] = out.Account.Items[item]
	}

	return &game.GetInventoryOutput{Items: items}, nil
}

// Summon and capture operations

// SummonCreature rolls a wild species and resolves its display data
func (o *Orchestrator) SummonCreature(ctx context.Context, input *game.SummonCreatureInput) (*game.SummonCreatureOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	// summoning is free but requires a real account
	if _, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.AccountID}); err != nil {
		return nil, err
	}

	speciesID := rules.SummonSpecies(o.rng)

	species, err := o.catalogClient.GetSpecies(ctx, speciesID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve summoned species %d", speciesID)
	}

	return &game.SummonCreatureOutput{
		SpeciesID: speciesID,
		Name:      species.Name,
		Image:     species.Image,
		Types:     species.Types,
		Rarity:    rules.Classify(speciesID),
	}, nil
}

// AttemptCapture resolves a capture attempt. The orb is consumed
// before the dice roll and is gone regardless of the outcome; a
// success mints the instance and pays the reward.
func (o *Orchestrator) AttemptCapture(ctx context.Context, input *game.AttemptCaptureInput) (*game.AttemptCaptureOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.AccountID == "" {
		vb.RequiredField("AccountID")
	}
	if input.SpeciesID <= 0 {
		vb.InvalidField("SpeciesID", "must be positive")
	}
	if !entities.IsValidItemType(input.Item) {
		vb.InvalidField("Item", "unknown item type")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	tier := rules.Classify(input.SpeciesID)

	// Resolve the species up front; a catalog failure must not cost
	// the player an orb.
	species, err := o.catalogClient.GetSpecies(ctx, input.SpeciesID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve species %d", input.SpeciesID)
	}

	consumed, err := o.accountRepo.ConsumeItem(ctx, accountrepo.ConsumeItemInput{
		ID:   input.AccountID,
		Item: input.Item,
	})
	if err != nil {
		return nil, err
	}

	captured, err := rules.ResolveCapture(o.rng, tier, input.Item)
	if err != nil {
		return nil, err
	}

	out := &game.AttemptCaptureOutput{
		Captured:  captured,
		Rarity:    tier,
		Remaining: consumed.Remaining,
	}
	if !captured {
		slog.Info("capture failed",
			"account_id", input.AccountID,
			"species_id", input.SpeciesID,
			"tier", tier,
			"item", input.Item)
		return out, nil
	}

	inst := &entities.CreatureInstance{
		ID:         o.instanceIDGen.Generate(),
		SpeciesID:  input.SpeciesID,
		Name:       species.Name,
		Image:      species.Image,
		Types:      species.Types,
		Rarity:     tier,
		OwnerID:    input.AccountID,
		CapturedAt: o.clock.Now().Unix(),
	}

	added, err := o.collectionRepo.Add(ctx, collectionrepo.AddInput{Instance: inst})
	if err != nil {
		return nil, errors.Wrap(err, "capture resolved but instance could not be stored")
	}

	reward := rules.Reward(o.rng, tier)
	if _, err := o.accountRepo.Credit(ctx, accountrepo.CreditInput{
		ID:     input.AccountID,
		Amount: reward,
	}); err != nil {
		// the creature is already theirs; surface the reward failure
		return nil, errors.Wrap(err, "capture succeeded but reward could not be credited")
	}

	slog.Info("capture succeeded",
		"account_id", input.AccountID,
		"species_id", input.SpeciesID,
		"tier", tier,
		"reward", reward)

	out.Instance = added.Instance
	out.Reward = reward
	return out, nil
}

// Collection operations

// ListCollection returns the account's creatures, rarest first
func (o *Orchestrator) ListCollection(ctx context.Context, input *game.ListCollectionInput) (*game.ListCollectionOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	out, err := o.collectionRepo.ListByOwner(ctx, collectionrepo.ListByOwnerInput{OwnerID: input.AccountID})
	if err != nil {
		return nil, err
	}

	instances := out.Instances
	sort.Slice(instances, func(i, j int) bool {
		ri, rj := rules.Rank(instances[i].Rarity), rules.Rank(instances[j].Rarity)
		if ri != rj {
			return ri > rj
		}
		return instances[i].CapturedAt > instances[j].CapturedAt
	})

	return &game.ListCollectionOutput{Instances: instances}, nil
}

// Market operations

// ListMarket returns every active listing with its creature
func (o *Orchestrator) ListMarket(ctx context.Context, input *game.ListMarketInput) (*game.ListMarketOutput, error) {
	out, err := o.marketRepo.Browse(ctx, marketrepo.BrowseInput{})
	if err != nil {
		return nil, err
	}

	entries := make([]*game.MarketEntry, len(out.Listings))
	for i := range out.Listings {
		entries[i] = &game.MarketEntry{
			Listing:  out.Listings[i],
			Instance: out.Instances[i],
		}
	}

	return &game.ListMarketOutput{Entries: entries}, nil
}

// ListInstance puts one of the caller's creatures up for sale
func (o *Orchestrator) ListInstance(ctx context.Context, input *game.ListInstanceInput) (*game.ListInstanceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.AccountID == "" || input.InstanceID == "" {
		return nil, errors.InvalidArgument("account ID and instance ID are required")
	}

	out, err := o.marketRepo.List(ctx, marketrepo.ListInput{
		InstanceID: input.InstanceID,
		SellerID:   input.AccountID,
		Price:      input.Price,
		ListedAt:   o.clock.Now().Unix(),
	})
	if err != nil {
		return nil, err
	}

	o.clearCompanionIfGone(ctx, input.AccountID, input.InstanceID)

	return &game.ListInstanceOutput{Listing: out.Listing}, nil
}

// WithdrawListing takes the caller's listing off the market
func (o *Orchestrator) WithdrawListing(ctx context.Context, input *game.WithdrawListingInput) (*game.WithdrawListingOutput, error) {
	if input == nil || input.AccountID == "" || input.InstanceID == "" {
		return nil, errors.InvalidArgument("account ID and instance ID are required")
	}

	out, err := o.marketRepo.Withdraw(ctx, marketrepo.WithdrawInput{
		InstanceID: input.InstanceID,
		SellerID:   input.AccountID,
	})
	if err != nil {
		return nil, err
	}

	return &game.WithdrawListingOutput{Instance: out.Instance}, nil
}

// PurchaseInstance settles a listing for the caller
func (o *Orchestrator) PurchaseInstance(ctx context.Context, input *game.PurchaseInstanceInput) (*game.PurchaseInstanceOutput, error) {
	if input == nil || input.AccountID == "" || input.InstanceID == "" {
		return nil, errors.InvalidArgument("account ID and instance ID are required")
	}

	out, err := o.marketRepo.Purchase(ctx, marketrepo.PurchaseInput{
		InstanceID: input.InstanceID,
		BuyerID:    input.AccountID,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("listing purchased",
		"instance_id", input.InstanceID,
		"buyer_id", input.AccountID,
		"seller_id", out.SellerID,
		"price", out.Price)

	o.sweepStaleOffers(ctx, input.AccountID)
	if out.SellerID != "" {
		o.sweepStaleOffers(ctx, out.SellerID)
	}

	balance, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, err
	}

	return &game.PurchaseInstanceOutput{
		Instance: out.Instance,
		Price:    out.Price,
		Balance:  balance.Account.Balance,
	}, nil
}

// Trade operations

// ProposeTrade creates a pending offer from the caller to another account
func (o *Orchestrator) ProposeTrade(ctx context.Context, input *game.ProposeTradeInput) (*game.ProposeTradeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.AccountID == "" {
		vb.RequiredField("AccountID")
	}
	if input.ToID == "" {
		vb.RequiredField("ToID")
	}
	if input.OfferedID == "" {
		vb.RequiredField("OfferedID")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if input.AccountID == input.ToID {
		return nil, errors.InvalidArgument("cannot trade with yourself")
	}

	if _, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.ToID}); err != nil {
		return nil, err
	}

	offered, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: input.OfferedID})
	if err != nil {
		return nil, err
	}
	if !offered.Instance.OwnedBy(input.AccountID) {
		return nil, errors.FailedPreconditionf("instance %s is not owned by account %s", input.OfferedID, input.AccountID)
	}

	if input.Requested.Kind == "" {
		input.Requested = entities.RequestAny()
	}
	if input.Requested.IsSpecific() {
		requested, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: input.Requested.InstanceID})
		if err != nil {
			return nil, err
		}
		if !requested.Instance.OwnedBy(input.ToID) {
			return nil, errors.FailedPreconditionf("instance %s is not owned by account %s",
				input.Requested.InstanceID, input.ToID)
		}
	}

	offer := &entities.TradeOffer{
		ID:        o.tradeIDGen.Generate(),
		FromID:    input.AccountID,
		ToID:      input.ToID,
		OfferedID: input.OfferedID,
		Requested: input.Requested,
		Status:    entities.TradePending,
		CreatedAt: o.clock.Now().Unix(),
	}

	out, err := o.tradeRepo.Create(ctx, traderepo.CreateInput{Offer: offer})
	if err != nil {
		return nil, err
	}

	slog.Info("trade proposed",
		"trade_id", offer.ID,
		"from_id", offer.FromID,
		"to_id", offer.ToID)

	return &game.ProposeTradeOutput{Offer: out.Offer}, nil
}

// ListTrades returns the pending offers the caller is party to
func (o *Orchestrator) ListTrades(ctx context.Context, input *game.ListTradesInput) (*game.ListTradesOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	out, err := o.tradeRepo.ListPendingByAccount(ctx, traderepo.ListPendingByAccountInput{AccountID: input.AccountID})
	if err != nil {
		return nil, err
	}

	return &game.ListTradesOutput{Offers: out.Offers}, nil
}

// AcceptTrade resolves a pending offer as the target, swapping both
// creatures, then sweeps offers the swap made stale
func (o *Orchestrator) AcceptTrade(ctx context.Context, input *game.AcceptTradeInput) (*game.AcceptTradeOutput, error) {
	if input == nil || input.AccountID == "" || input.TradeID == "" {
		return nil, errors.InvalidArgument("account ID and trade ID are required")
	}

	out, err := o.tradeRepo.Accept(ctx, traderepo.AcceptInput{
		ID:         input.TradeID,
		ActingID:   input.AccountID,
		ResolvedAt: o.clock.Now().Unix(),
	})
	if err != nil {
		return nil, err
	}

	o.clearCompanionIfGone(ctx, out.Offer.FromID, out.Offer.OfferedID)
	if out.Sent != nil {
		o.clearCompanionIfGone(ctx, out.Offer.ToID, out.Sent.ID)
	}

	o.sweepStaleOffers(ctx, out.Offer.FromID)
	o.sweepStaleOffers(ctx, out.Offer.ToID)

	slog.Info("trade accepted",
		"trade_id", out.Offer.ID,
		"from_id", out.Offer.FromID,
		"to_id", out.Offer.ToID)

	return &game.AcceptTradeOutput{
		Offer:    out.Offer,
		Received: out.Received,
		Sent:     out.Sent,
	}, nil
}

// RejectTrade resolves a pending offer as the target without a swap
func (o *Orchestrator) RejectTrade(ctx context.Context, input *game.RejectTradeInput) (*game.RejectTradeOutput, error) {
	if input == nil || input.AccountID == "" || input.TradeID == "" {
		return nil, errors.InvalidArgument("account ID and trade ID are required")
	}

	out, err := o.tradeRepo.Reject(ctx, traderepo.RejectInput{
		ID:         input.TradeID,
		ActingID:   input.AccountID,
		ResolvedAt: o.clock.Now().Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &game.RejectTradeOutput{Offer: out.Offer}, nil
}

// Companion operations

// GetCompanion returns the caller's companion creature, if any
func (o *Orchestrator) GetCompanion(ctx context.Context, input *game.GetCompanionInput) (*game.GetCompanionOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	acc, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, err
	}
	if acc.Account.CompanionID == "" {
		return &game.GetCompanionOutput{}, nil
	}

	inst, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: acc.Account.CompanionID})
	if err != nil {
		if errors.IsNotFound(err) {
			// the companion reference outlived the instance; clear it
			o.clearCompanionIfGone(ctx, input.AccountID, acc.Account.CompanionID)
			return &game.GetCompanionOutput{}, nil
		}
		return nil, err
	}

	return &game.GetCompanionOutput{Instance: inst.Instance}, nil
}

// SetCompanion points the caller's companion at an owned creature
func (o *Orchestrator) SetCompanion(ctx context.Context, input *game.SetCompanionInput) (*game.SetCompanionOutput, error) {
	if input == nil || input.AccountID == "" || input.InstanceID == "" {
		return nil, errors.InvalidArgument("account ID and instance ID are required")
	}

	inst, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: input.InstanceID})
	if err != nil {
		return nil, err
	}
	if !inst.Instance.OwnedBy(input.AccountID) {
		return nil, errors.FailedPreconditionf("instance %s is not owned by account %s", input.InstanceID, input.AccountID)
	}

	if _, err := o.accountRepo.SetCompanion(ctx, accountrepo.SetCompanionInput{
		ID:         input.AccountID,
		InstanceID: input.InstanceID,
	}); err != nil {
		return nil, err
	}

	return &game.SetCompanionOutput{Instance: inst.Instance}, nil
}

// clearCompanionIfGone drops the account's companion reference when it
// points at instanceID. Best effort; the companion is display state and
// a failed clear must not fail the operation that moved the creature.
func (o *Orchestrator) clearCompanionIfGone(ctx context.Context, accountID, instanceID string) {
	_, err := o.accountRepo.ClearCompanionIf(ctx, accountrepo.ClearCompanionIfInput{
		ID:         accountID,
		InstanceID: instanceID,
	})
	if err != nil && !errors.IsNotFound(err) {
		slog.Warn("failed to clear companion",
			"account_id", accountID,
			"instance_id", instanceID,
			"error", err)
	}
}

// sweepStaleOffers invalidates the account's pending offers whose
// creatures are no longer where the offer assumed. Best effort; a
// stale offer left behind still fails cleanly at accept time.
func (o *Orchestrator) sweepStaleOffers(ctx context.Context, accountID string) {
	pending, err := o.tradeRepo.ListPendingByAccount(ctx, traderepo.ListPendingByAccountInput{AccountID: accountID})
	if err != nil {
		slog.Warn("stale offer sweep failed", "account_id", accountID, "error", err)
		return
	}

	for _, offer := range pending.Offers {
		if o.offerStillValid(ctx, offer) {
			continue
		}
		if _, err := o.tradeRepo.Invalidate(ctx, traderepo.InvalidateInput{
			ID:         offer.ID,
			ResolvedAt: o.clock.Now().Unix(),
		}); err != nil && !errors.IsNotFound(err) {
			slog.Warn("failed to invalidate stale offer", "trade_id", offer.ID, "error", err)
		}
	}
}

func (o *Orchestrator) offerStillValid(ctx context.Context, offer *entities.TradeOffer) bool {
	offered, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: offer.OfferedID})
	if err != nil || !offered.Instance.OwnedBy(offer.FromID) {
		return false
	}
	if offer.Requested.IsSpecific() {
		requested, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: offer.Requested.InstanceID})
		if err != nil || !requested.Instance.OwnedBy(offer.ToID) {
			return false
		}
	}
	return true
}
