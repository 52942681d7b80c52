package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/creatureworks/creature-api/internal/clients/catalog"
	catalogmock "github.com/creatureworks/creature-api/internal/clients/catalog/mock"
	"github.com/creatureworks/creature-api/internal/entities"
	"github.com/creatureworks/creature-api/internal/errors"
	"github.com/creatureworks/creature-api/internal/orchestrators/game"
	"github.com/creatureworks/creature-api/internal/pkg/clock"
	"github.com/creatureworks/creature-api/internal/pkg/idgen"
	"github.com/creatureworks/creature-api/internal/pkg/rng"
	accountrepo "github.com/creatureworks/creature-api/internal/repositories/account"
	collectionrepo "github.com/creatureworks/creature-api/internal/repositories/collection"
	marketrepo "github.com/creatureworks/creature-api/internal/repositories/market"
	traderepo "github.com/creatureworks/creature-api/internal/repositories/trade"
	gamesvc "github.com/creatureworks/creature-api/internal/services/game"
	"github.com/creatureworks/creature-api/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	catalogMock *catalogmock.MockClient
	accounts    accountrepo.Repository
	collections collectionrepo.Repository
	trades      traderepo.Repository
	rng         *rng.Fixed
	clock       *clock.Fixed
	orch        *game.Orchestrator
	ctx         context.Context
	cleanup     func()
}

func (s *OrchestratorTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	s.ctrl = gomock.NewController(s.T())
	s.catalogMock = catalogmock.NewMockClient(s.ctrl)

	var err error
	s.accounts, err = accountrepo.NewRedis(&accountrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.collections, err = collectionrepo.NewRedis(&collectionrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	markets, err := marketrepo.NewRedis(&marketrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.trades, err = traderepo.NewRedis(&traderepo.RedisConfig{Client: client})
	s.Require().NoError(err)

	s.rng = rng.NewFixed(0.5)
	s.clock = clock.NewFixed(time.Unix(1700000000, 0))

	s.orch, err = game.New(&game.Config{
		AccountRepo:    s.accounts,
		CollectionRepo: s.collections,
		MarketRepo:     markets,
		TradeRepo:      s.trades,
		CatalogClient:  s.catalogMock,
		RNG:            s.rng,
		InstanceIDGen:  idgen.NewSequential("crt"),
		TradeIDGen:     idgen.NewSequential("trd"),
		Clock:          s.clock,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.cleanup()
	s.ctrl.Finish()
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) createAccount(id string) {
	_, err := s.orch.CreateAccount(s.ctx, &gamesvc.CreateAccountInput{
		AccountID:   id,
		DisplayName: "Trainer " + id,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) addInstance(id, owner string, speciesID int32, rarity entities.RarityTier) {
	_, err := s.collections.Add(s.ctx, collectionrepo.AddInput{
		Instance: &entities.CreatureInstance{
			ID:        id,
			SpeciesID: speciesID,
			Rarity:    rarity,
			OwnerID:   owner,
		},
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) expectSpecies(id int32, name string) {
	s.catalogMock.EXPECT().
		GetSpecies(gomock.Any(), id).
		Return(&catalog.SpeciesData{
			ID:    id,
			Name:  name,
			Image: "https://img.example/" + name + ".png",
			Types: []string{"normal"},
		}, nil)
}

func (s *OrchestratorTestSuite) TestCreateAccountGrantsStartingResources() {
	out, err := s.orch.CreateAccount(s.ctx, &gamesvc.CreateAccountInput{
		AccountID:   "acc_new",
		DisplayName: "Misty",
	})
	s.Require().NoError(err)
	s.Equal(int64(5000), out.Account.Balance)
	s.Equal(int64(10), out.Account.Items[entities.ItemBasicOrb])
	s.Equal(int64(5), out.Account.Items[entities.ItemGreatOrb])
	s.Equal(int64(3), out.Account.Items[entities.ItemUltraOrb])
	s.Equal(int64(1), out.Account.Items[entities.ItemMasterOrb])
	s.Equal(int64(1700000000), out.Account.CreatedAt)
}

func (s *OrchestratorTestSuite) TestCaptureSuccessMintsInstanceAndPaysReward() {
	s.createAccount("acc_a")
	s.expectSpecies(25, "pikachu")

	// one draw resolves the capture (0.1 < 0.50 for a common with a
	// basic orb), the next feeds the reward range
	s.rng.SetValues(0.1, 0.0)

	out, err := s.orch.AttemptCapture(s.ctx, &gamesvc.AttemptCaptureInput{
		AccountID: "acc_a",
		SpeciesID: 25,
		Item:      entities.ItemBasicOrb,
	})
	s.Require().NoError(err)
	s.True(out.Captured)
	s.Equal(entities.RarityCommon, out.Rarity)
	s.Equal(int64(9), out.Remaining)
	s.Require().NotNil(out.Instance)
	s.Equal("pikachu", out.Instance.Name)
	s.Equal("acc_a", out.Instance.OwnerID)
	s.GreaterOrEqual(out.Reward, int64(120))
	s.LessOrEqual(out.Reward, int64(230))

	// the reward landed on the balance
	balance, err := s.orch.GetBalance(s.ctx, &gamesvc.GetBalanceInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Equal(int64(5000)+out.Reward, balance.Balance)

	owned, err := s.orch.ListCollection(s.ctx, &gamesvc.ListCollectionInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Len(owned.Instances, 1)
}

func (s *OrchestratorTestSuite) TestCaptureFailureStillConsumesOrb() {
	s.createAccount("acc_a")
	s.expectSpecies(25, "pikachu")

	// 0.99 >= 0.50, the attempt fails
	s.rng.SetValues(0.99)

	out, err := s.orch.AttemptCapture(s.ctx, &gamesvc.AttemptCaptureInput{
		AccountID: "acc_a",
		SpeciesID: 25,
		Item:      entities.ItemBasicOrb,
	})
	s.Require().NoError(err)
	s.False(out.Captured)
	s.Nil(out.Instance)
	s.Zero(out.Reward)
	s.Equal(int64(9), out.Remaining)

	inv, err := s.orch.GetInventory(s.ctx, &gamesvc.GetInventoryInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Equal(int64(9), inv.Items[entities.ItemBasicOrb])

	// no creature, no reward
	owned, err := s.orch.ListCollection(s.ctx, &gamesvc.ListCollectionInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Empty(owned.Instances)

	balance, err := s.orch.GetBalance(s.ctx, &gamesvc.GetBalanceInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Equal(int64(5000), balance.Balance)
}

func (s *OrchestratorTestSuite) TestCaptureAtZeroCountDoesNotDecrement() {
	s.createAccount("acc_a")

	// drain the master orb with a guaranteed catch
	s.expectSpecies(25, "pikachu")
	s.rng.SetValues(0.5, 0.5)
	out, err := s.orch.AttemptCapture(s.ctx, &gamesvc.AttemptCaptureInput{
		AccountID: "acc_a",
		SpeciesID: 25,
		Item:      entities.ItemMasterOrb,
	})
	s.Require().NoError(err)
	s.True(out.Captured)
	s.Equal(int64(0), out.Remaining)

	// the next attempt is rejected without touching the count
	s.expectSpecies(25, "pikachu")
	_, err = s.orch.AttemptCapture(s.ctx, &gamesvc.AttemptCaptureInput{
		AccountID: "acc_a",
		SpeciesID: 25,
		Item:      entities.ItemMasterOrb,
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	inv, err := s.orch.GetInventory(s.ctx, &gamesvc.GetInventoryInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Equal(int64(0), inv.Items[entities.ItemMasterOrb])
}

func (s *OrchestratorTestSuite) TestCaptureValidation() {
	_, err := s.orch.AttemptCapture(s.ctx, &gamesvc.AttemptCaptureInput{
		AccountID: "acc_a",
		SpeciesID: 25,
		Item:      "snowball",
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.AttemptCapture(s.ctx, &gamesvc.AttemptCaptureInput{
		AccountID: "acc_a",
		SpeciesID: 0,
		Item:      entities.ItemBasicOrb,
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSummonCreature() {
	s.createAccount("acc_a")

	// 50.0 lands in the uniform bucket; IntN on the fixed source
	// returns 0, species 1
	s.rng.SetValues(0.5)
	s.expectSpecies(1, "bulbasaur")

	out, err := s.orch.SummonCreature(s.ctx, &gamesvc.SummonCreatureInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Equal(int32(1), out.SpeciesID)
	s.Equal("bulbasaur", out.Name)
	s.Equal(entities.RarityCommon, out.Rarity)
}

func (s *OrchestratorTestSuite) TestSummonRequiresAccount() {
	_, err := s.orch.SummonCreature(s.ctx, &gamesvc.SummonCreatureInput{AccountID: "acc_ghost"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListCollectionSortsRarestFirst() {
	s.createAccount("acc_a")
	s.addInstance("crt_c", "acc_a", 10, entities.RarityCommon)
	s.addInstance("crt_m", "acc_a", 151, entities.RarityMythical)
	s.addInstance("crt_r", "acc_a", 147, entities.RarityRare)

	out, err := s.orch.ListCollection(s.ctx, &gamesvc.ListCollectionInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Require().Len(out.Instances, 3)
	s.Equal("crt_m", out.Instances[0].ID)
	s.Equal("crt_r", out.Instances[1].ID)
	s.Equal("crt_c", out.Instances[2].ID)
}

func (s *OrchestratorTestSuite) TestListingClearsCompanion() {
	s.createAccount("acc_a")
	s.addInstance("crt_1", "acc_a", 25, entities.RarityCommon)

	_, err := s.orch.SetCompanion(s.ctx, &gamesvc.SetCompanionInput{
		AccountID:  "acc_a",
		InstanceID: "crt_1",
	})
	s.Require().NoError(err)

	_, err = s.orch.ListInstance(s.ctx, &gamesvc.ListInstanceInput{
		AccountID:  "acc_a",
		InstanceID: "crt_1",
		Price:      500,
	})
	s.Require().NoError(err)

	companion, err := s.orch.GetCompanion(s.ctx, &gamesvc.GetCompanionInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Nil(companion.Instance)
}

func (s *OrchestratorTestSuite) TestSetCompanionRequiresOwnership() {
	s.createAccount("acc_a")
	s.addInstance("crt_1", "acc_b", 25, entities.RarityCommon)

	_, err := s.orch.SetCompanion(s.ctx, &gamesvc.SetCompanionInput{
		AccountID:  "acc_a",
		InstanceID: "crt_1",
	})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestMarketRoundTrip() {
	s.createAccount("acc_seller")
	s.createAccount("acc_buyer")
	s.addInstance("crt_1", "acc_seller", 25, entities.RarityCommon)

	_, err := s.orch.ListInstance(s.ctx, &gamesvc.ListInstanceInput{
		AccountID:  "acc_seller",
		InstanceID: "crt_1",
		Price:      300,
	})
	s.Require().NoError(err)

	market, err := s.orch.ListMarket(s.ctx, &gamesvc.ListMarketInput{})
	s.Require().NoError(err)
	s.Require().Len(market.Entries, 1)
	s.Equal(int64(300), market.Entries[0].Listing.Price)

	out, err := s.orch.PurchaseInstance(s.ctx, &gamesvc.PurchaseInstanceInput{
		AccountID:  "acc_buyer",
		InstanceID: "crt_1",
	})
	s.Require().NoError(err)
	s.Equal(int64(300), out.Price)
	s.Equal(int64(4700), out.Balance)
	s.Equal("acc_buyer", out.Instance.OwnerID)

	seller, err := s.orch.GetBalance(s.ctx, &gamesvc.GetBalanceInput{AccountID: "acc_seller"})
	s.Require().NoError(err)
	s.Equal(int64(5300), seller.Balance)
}

func (s *OrchestratorTestSuite) TestProposeTradeValidatesBothSides() {
	s.createAccount("acc_a")
	s.createAccount("acc_b")
	s.addInstance("crt_1", "acc_a", 25, entities.RarityCommon)
	s.addInstance("crt_2", "acc_c", 7, entities.RarityCommon)

	// requesting a creature the target doesn't own
	_, err := s.orch.ProposeTrade(s.ctx, &gamesvc.ProposeTradeInput{
		AccountID: "acc_a",
		ToID:      "acc_b",
		OfferedID: "crt_1",
		Requested: entities.RequestSpecific("crt_2"),
	})
	s.True(errors.IsFailedPrecondition(err))

	// offering a creature the proposer doesn't own
	_, err = s.orch.ProposeTrade(s.ctx, &gamesvc.ProposeTradeInput{
		AccountID: "acc_a",
		ToID:      "acc_b",
		OfferedID: "crt_2",
	})
	s.True(errors.IsFailedPrecondition(err))

	// unknown target account
	_, err = s.orch.ProposeTrade(s.ctx, &gamesvc.ProposeTradeInput{
		AccountID: "acc_a",
		ToID:      "acc_ghost",
		OfferedID: "crt_1",
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestAcceptTradeSweepsStaleOffers() {
	s.createAccount("acc_a")
	s.createAccount("acc_b")
	s.createAccount("acc_c")
	s.addInstance("crt_1", "acc_a", 25, entities.RarityCommon)
	s.addInstance("crt_2", "acc_b", 7, entities.RarityCommon)

	// acc_a offers crt_1 to acc_b, and the same crt_1 to acc_c
	first, err := s.orch.ProposeTrade(s.ctx, &gamesvc.ProposeTradeInput{
		AccountID: "acc_a",
		ToID:      "acc_b",
		OfferedID: "crt_1",
		Requested: entities.RequestSpecific("crt_2"),
	})
	s.Require().NoError(err)

	second, err := s.orch.ProposeTrade(s.ctx, &gamesvc.ProposeTradeInput{
		AccountID: "acc_a",
		ToID:      "acc_c",
		OfferedID: "crt_1",
	})
	s.Require().NoError(err)

	// acc_b accepts the first offer; crt_1 moves to acc_b
	out, err := s.orch.AcceptTrade(s.ctx, &gamesvc.AcceptTradeInput{
		AccountID: "acc_b",
		TradeID:   first.Offer.ID,
	})
	s.Require().NoError(err)
	s.Equal("acc_b", out.Received.OwnerID)
	s.Require().NotNil(out.Sent)
	s.Equal("acc_a", out.Sent.OwnerID)

	// the second offer was invalidated by the sweep
	got, err := s.trades.Get(s.ctx, traderepo.GetInput{ID: second.Offer.ID})
	s.Require().NoError(err)
	s.Equal(entities.TradeRejected, got.Offer.Status)

	pending, err := s.orch.ListTrades(s.ctx, &gamesvc.ListTradesInput{AccountID: "acc_c"})
	s.Require().NoError(err)
	s.Empty(pending.Offers)
}

func (s *OrchestratorTestSuite) TestTradeAwayClearsCompanion() {
	s.createAccount("acc_a")
	s.createAccount("acc_b")
	s.addInstance("crt_1", "acc_a", 25, entities.RarityCommon)

	_, err := s.orch.SetCompanion(s.ctx, &gamesvc.SetCompanionInput{
		AccountID:  "acc_a",
		InstanceID: "crt_1",
	})
	s.Require().NoError(err)

	offer, err := s.orch.ProposeTrade(s.ctx, &gamesvc.ProposeTradeInput{
		AccountID: "acc_a",
		ToID:      "acc_b",
		OfferedID: "crt_1",
	})
	s.Require().NoError(err)

	_, err = s.orch.AcceptTrade(s.ctx, &gamesvc.AcceptTradeInput{
		AccountID: "acc_b",
		TradeID:   offer.Offer.ID,
	})
	s.Require().NoError(err)

	companion, err := s.orch.GetCompanion(s.ctx, &gamesvc.GetCompanionInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Nil(companion.Instance)
}
