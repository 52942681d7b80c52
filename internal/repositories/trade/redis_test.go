package trade_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/creatureworks/creature-api/internal/entities"
	"github.com/creatureworks/creature-api/internal/errors"
	"github.com/creatureworks/creature-api/internal/repositories/collection"
	"github.com/creatureworks/creature-api/internal/repositories/trade"
	"github.com/creatureworks/creature-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo        trade.Repository
	collections collection.Repository
	ctx         context.Context
	cleanup     func()
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	repo, err := trade.NewRedis(&trade.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo

	collections, err := collection.NewRedis(&collection.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.collections = collections
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) addInstance(id, owner string) {
	_, err := s.collections.Add(s.ctx, collection.AddInput{
		Instance: &entities.CreatureInstance{
			ID:        id,
			SpeciesID: 25,
			Name:      "testmon",
			Rarity:    entities.RarityCommon,
			OwnerID:   owner,
		},
	})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) createOffer(id, from, to, offered string, requested entities.TradeRequest) *entities.TradeOffer {
	offer := &entities.TradeOffer{
		ID:        id,
		FromID:    from,
		ToID:      to,
		OfferedID: offered,
		Requested: requested,
		Status:    entities.TradePending,
		CreatedAt: 1700000000,
	}
	_, err := s.repo.Create(s.ctx, trade.CreateInput{Offer: offer})
	s.Require().NoError(err)
	return offer
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	s.createOffer("trd_1", "acc_a", "acc_b", "crt_1", entities.RequestSpecific("crt_2"))

	got, err := s.repo.Get(s.ctx, trade.GetInput{ID: "trd_1"})
	s.Require().NoError(err)
	s.Equal("acc_a", got.Offer.FromID)
	s.Equal(entities.TradePending, got.Offer.Status)
	s.True(got.Offer.Requested.IsSpecific())
	s.Equal("crt_2", got.Offer.Requested.InstanceID)
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, trade.CreateInput{Offer: nil})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, trade.CreateInput{
		Offer: &entities.TradeOffer{
			ID: "trd_self", FromID: "acc_a", ToID: "acc_a",
			OfferedID: "crt_1", Requested: entities.RequestAny(),
			Status: entities.TradePending,
		},
	})
	s.True(errors.IsInvalidArgument(err), "self-trade rejected")

	_, err = s.repo.Create(s.ctx, trade.CreateInput{
		Offer: &entities.TradeOffer{
			ID: "trd_spec", FromID: "acc_a", ToID: "acc_b",
			OfferedID: "crt_1",
			Requested: entities.TradeRequest{Kind: entities.TradeRequestSpecific},
			Status:    entities.TradePending,
		},
	})
	s.True(errors.IsInvalidArgument(err), "specific request without an instance")
}

func (s *RedisRepositoryTestSuite) TestListPendingByAccount() {
	s.createOffer("trd_1", "acc_a", "acc_b", "crt_1", entities.RequestAny())
	s.createOffer("trd_2", "acc_c", "acc_a", "crt_3", entities.RequestAny())
	s.createOffer("trd_3", "acc_c", "acc_d", "crt_4", entities.RequestAny())

	out, err := s.repo.ListPendingByAccount(s.ctx, trade.ListPendingByAccountInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Len(out.Offers, 2)

	empty, err := s.repo.ListPendingByAccount(s.ctx, trade.ListPendingByAccountInput{AccountID: "acc_ghost"})
	s.Require().NoError(err)
	s.Empty(empty.Offers)
}

func (s *RedisRepositoryTestSuite) TestAcceptSwapsBothCreatures() {
	s.addInstance("crt_1", "acc_a")
	s.addInstance("crt_2", "acc_b")
	s.createOffer("trd_1", "acc_a", "acc_b", "crt_1", entities.RequestSpecific("crt_2"))

	out, err := s.repo.Accept(s.ctx, trade.AcceptInput{
		ID:         "trd_1",
		ActingID:   "acc_b",
		ResolvedAt: 1700000100,
	})
	s.Require().NoError(err)
	s.Equal(entities.TradeAccepted, out.Offer.Status)
	s.Equal(int64(1700000100), out.Offer.ResolvedAt)
	s.Equal("acc_b", out.Received.OwnerID)
	s.Require().NotNil(out.Sent)
	s.Equal("acc_a", out.Sent.OwnerID)

	aOwned, err := s.collections.ListByOwner(s.ctx, collection.ListByOwnerInput{OwnerID: "acc_a"})
	s.Require().NoError(err)
	s.Require().Len(aOwned.Instances, 1)
	s.Equal("crt_2", aOwned.Instances[0].ID)

	bOwned, err := s.collections.ListByOwner(s.ctx, collection.ListByOwnerInput{OwnerID: "acc_b"})
	s.Require().NoError(err)
	s.Require().Len(bOwned.Instances, 1)
	s.Equal("crt_1", bOwned.Instances[0].ID)

	// resolved offers drop out of both pending indexes
	pending, err := s.repo.ListPendingByAccount(s.ctx, trade.ListPendingByAccountInput{AccountID: "acc_a"})
	s.Require().NoError(err)
	s.Empty(pending.Offers)
}

func (s *RedisRepositoryTestSuite) TestAcceptOpenOfferIsOneWay() {
	s.addInstance("crt_1", "acc_a")
	s.createOffer("trd_1", "acc_a", "acc_b", "crt_1", entities.RequestAny())

	out, err := s.repo.Accept(s.ctx, trade.AcceptInput{
		ID:       "trd_1",
		ActingID: "acc_b",
	})
	s.Require().NoError(err)
	s.Equal("acc_b", out.Received.OwnerID)
	s.Nil(out.Sent)
}

func (s *RedisRepositoryTestSuite) TestAcceptOnlyByTarget() {
	s.addInstance("crt_1", "acc_a")
	s.createOffer("trd_1", "acc_a", "acc_b", "crt_1", entities.RequestAny())

	_, err := s.repo.Accept(s.ctx, trade.AcceptInput{ID: "trd_1", ActingID: "acc_a"})
	s.True(errors.IsPermissionDenied(err))

	_, err = s.repo.Accept(s.ctx, trade.AcceptInput{ID: "trd_1", ActingID: "acc_c"})
	s.True(errors.IsPermissionDenied(err))
}

func (s *RedisRepositoryTestSuite) TestAcceptFailsWhenProposerLostOffered() {
	s.addInstance("crt_1", "acc_a")
	s.addInstance("crt_2", "acc_b")
	s.createOffer("trd_1", "acc_a", "acc_b", "crt_1", entities.RequestSpecific("crt_2"))

	// the offered creature changed hands after the offer was made
	_, err := s.collections.Transfer(s.ctx, collection.TransferInput{
		InstanceID: "crt_1",
		FromID:     "acc_a",
		ToID:       "acc_c",
	})
	s.Require().NoError(err)

	_, err = s.repo.Accept(s.ctx, trade.AcceptInput{ID: "trd_1", ActingID: "acc_b"})
	s.True(errors.IsFailedPrecondition(err))

	// nothing moved and the offer is still pending
	got, err := s.repo.Get(s.ctx, trade.GetInput{ID: "trd_1"})
	s.Require().NoError(err)
	s.Equal(entities.TradePending, got.Offer.Status)

	bOwned, err := s.collections.ListByOwner(s.ctx, collection.ListByOwnerInput{OwnerID: "acc_b"})
	s.Require().NoError(err)
	s.Require().Len(bOwned.Instances, 1)
	s.Equal("crt_2", bOwned.Instances[0].ID)
}

func (s *RedisRepositoryTestSuite) TestAcceptFailsWhenTargetLostRequested() {
	s.addInstance("crt_1", "acc_a")
	s.addInstance("crt_2", "acc_b")
	s.createOffer("trd_1", "acc_a", "acc_b", "crt_1", entities.RequestSpecific("crt_2"))

	_, err := s.collections.Transfer(s.ctx, collection.TransferInput{
		InstanceID: "crt_2",
		FromID:     "acc_b",
		ToID:       "acc_c",
	})
	s.Require().NoError(err)

	_, err = s.repo.Accept(s.ctx, trade.AcceptInput{ID: "trd_1", ActingID: "acc_b"})
	s.True(errors.IsFailedPrecondition(err))

	// the offered creature stayed with the proposer
	got, err := s.collections.Get(s.ctx, collection.GetInput{ID: "crt_1"})
	s.Require().NoError(err)
	s.Equal("acc_a", got.Instance.OwnerID)
}

func (s *RedisRepositoryTestSuite) TestAcceptResolvedOfferReportsNotFound() {
	s.addInstance("crt_1", "acc_a")
	s.createOffer("trd_1", "acc_a", "acc_b", "crt_1", entities.RequestAny())

	_, err := s.repo.Accept(s.ctx, trade.AcceptInput{ID: "trd_1", ActingID: "acc_b"})
	s.Require().NoError(err)

	_, err = s.repo.Accept(s.ctx, trade.AcceptInput{ID: "trd_1", ActingID: "acc_b"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestReject() {
	s.addInstance("crt_1", "acc_a")
	s.createOffer("trd_1", "acc_a", "acc_b", "crt_1", entities.RequestAny())

	out, err := s.repo.Reject(s.ctx, trade.RejectInput{
		ID:         "trd_1",
		ActingID:   "acc_b",
		ResolvedAt: 1700000100,
	})
	s.Require().NoError(err)
	s.Equal(entities.TradeRejected, out.Offer.Status)

	// ownership untouched
	got, err := s.collections.Get(s.ctx, collection.GetInput{ID: "crt_1"})
	s.Require().NoError(err)
	s.Equal("acc_a", got.Instance.OwnerID)

	// a second reject reports NotFound, same as accept
	_, err = s.repo.Reject(s.ctx, trade.RejectInput{ID: "trd_1", ActingID: "acc_b"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestRejectOnlyByTarget() {
	s.createOffer("trd_1", "acc_a", "acc_b", "crt_1", entities.RequestAny())

	_, err := s.repo.Reject(s.ctx, trade.RejectInput{ID: "trd_1", ActingID: "acc_a"})
	s.True(errors.IsPermissionDenied(err))
}

func (s *RedisRepositoryTestSuite) TestInvalidateSkipsAuthorization() {
	s.createOffer("trd_1", "acc_a", "acc_b", "crt_1", entities.RequestAny())

	out, err := s.repo.Invalidate(s.ctx, trade.InvalidateInput{
		ID:         "trd_1",
		ResolvedAt: 1700000100,
	})
	s.Require().NoError(err)
	s.Equal(entities.TradeRejected, out.Offer.Status)

	pending, err := s.repo.ListPendingByAccount(s.ctx, trade.ListPendingByAccountInput{AccountID: "acc_b"})
	s.Require().NoError(err)
	s.Empty(pending.Offers)
}
