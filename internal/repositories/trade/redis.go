package trade

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/creatureworks/creature-api/internal/entities"
	"github.com/creatureworks/creature-api/internal/errors"
	redisclient "github.com/creatureworks/creature-api/internal/redis"
	"github.com/creatureworks/creature-api/internal/repositories/collection"
)

const (
	tradeKeyPrefix     = "trade:"
	pendingIndexPrefix = "trade:pending:"

	maxTxRetries = 5

	// Error messages
	errOfferNil     = "offer cannot be nil"
	errOfferIDEmpty = "offer ID cannot be empty"
)

// TradeKey returns the Redis key of an offer document.
func TradeKey(tradeID string) string {
	return tradeKeyPrefix + tradeID
}

// PendingIndexKey returns the Redis key of an account's pending offer
// index. Both parties of an offer are indexed.
func PendingIndexKey(accountID string) string {
	return pendingIndexPrefix + accountID
}

func marshalOffer(offer *entities.TradeOffer) ([]byte, error) {
	data, err := json.Marshal(offer)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal offer")
	}
	return data, nil
}

func unmarshalOffer(data string) (*entities.TradeOffer, error) {
	var offer entities.TradeOffer
	if err := json.Unmarshal([]byte(data), &offer); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal offer")
	}
	return &offer, nil
}

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis trade repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed trade repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) watch(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, fn, keys...)
		if err != redis.TxFailedErr {
			return err
		}
	}
	return errors.Abortedf("trade resolution lost %d races, giving up", maxTxRetries)
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Offer == nil {
		return nil, errors.InvalidArgument(errOfferNil)
	}
	offer := input.Offer
	if offer.ID == "" {
		return nil, errors.InvalidArgument(errOfferIDEmpty)
	}
	if offer.FromID == "" || offer.ToID == "" {
		return nil, errors.InvalidArgument("both trade parties are required")
	}
	if offer.FromID == offer.ToID {
		return nil, errors.InvalidArgument("cannot trade with yourself")
	}
	if offer.OfferedID == "" {
		return nil, errors.InvalidArgument("offered instance ID cannot be empty")
	}
	if offer.Requested.IsSpecific() && offer.Requested.InstanceID == "" {
		return nil, errors.InvalidArgument("specific request must name an instance")
	}
	if offer.Status != entities.TradePending {
		return nil, errors.InvalidArgument("new offer must be pending")
	}

	key := TradeKey(offer.ID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("offer with ID %s already exists", offer.ID)
	}

	data, err := marshalOffer(offer)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, PendingIndexKey(offer.FromID), offer.ID)
	pipe.SAdd(ctx, PendingIndexKey(offer.ToID), offer.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create offer")
	}

	return &CreateOutput{Offer: offer}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errOfferIDEmpty)
	}

	raw, err := r.client.Get(ctx, TradeKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("offer with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get offer")
	}

	offer, err := unmarshalOffer(raw)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Offer: offer}, nil
}

func (r *redisRepository) ListPendingByAccount(ctx context.Context, input ListPendingByAccountInput) (*ListPendingByAccountOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID cannot be empty")
	}

	ids, err := r.client.SMembers(ctx, PendingIndexKey(input.AccountID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read pending index")
	}
	if len(ids) == 0 {
		return &ListPendingByAccountOutput{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = TradeKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load offers")
	}

	offers := make([]*entities.TradeOffer, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		offer, err := unmarshalOffer(raw)
		if err != nil {
			return nil, err
		}
		if offer.Status != entities.TradePending {
			// index entry that outlived resolution; skip
			continue
		}
		offers = append(offers, offer)
	}

	return &ListPendingByAccountOutput{Offers: offers}, nil
}

// Accept swaps the offered creature and, for a specific request, the
// requested creature, in the same transaction that flips the offer to
// accepted. Ownership is re-validated against live documents inside
// the WATCH; an offer whose creatures moved since it was proposed
// fails with FailedPrecondition and stays pending.
func (r *redisRepository) Accept(ctx context.Context, input AcceptInput) (*AcceptOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errOfferIDEmpty)
	}
	if input.ActingID == "" {
		return nil, errors.InvalidArgument("acting account ID cannot be empty")
	}

	tradeKey := TradeKey(input.ID)

	// The instance keys have to be known before WATCH can cover them,
	// so read the offer first and re-verify it inside the transaction.
	preview, err := r.Get(ctx, GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}
	if preview.Offer.Status != entities.TradePending {
		return nil, errors.NotFoundf("offer with ID %s is already resolved", input.ID)
	}
	if preview.Offer.ToID != input.ActingID {
		return nil, errors.PermissionDeniedf("account %s is not the target of offer %s", input.ActingID, input.ID)
	}

	watchKeys := []string{tradeKey, collection.InstanceKey(preview.Offer.OfferedID)}
	if preview.Offer.Requested.IsSpecific() {
		watchKeys = append(watchKeys, collection.InstanceKey(preview.Offer.Requested.InstanceID))
	}

	out := &AcceptOutput{}

	err = r.watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, tradeKey).Result()
		if err == redis.Nil {
			return errors.NotFoundf("offer with ID %s not found", input.ID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to get offer")
		}
		offer, err := unmarshalOffer(raw)
		if err != nil {
			return err
		}
		if offer.Status != entities.TradePending {
			return errors.NotFoundf("offer with ID %s is already resolved", input.ID)
		}
		if offer.ToID != input.ActingID {
			return errors.PermissionDeniedf("account %s is not the target of offer %s", input.ActingID, input.ID)
		}

		offered, err := r.loadOwnedInstance(ctx, tx, offer.OfferedID, offer.FromID)
		if err != nil {
			return err
		}

		var requested *entities.CreatureInstance
		if offer.Requested.IsSpecific() {
			requested, err = r.loadOwnedInstance(ctx, tx, offer.Requested.InstanceID, offer.ToID)
			if err != nil {
				return err
			}
		}

		offered.OwnerID = offer.ToID
		offeredData, err := collection.MarshalInstance(offered)
		if err != nil {
			return err
		}

		var requestedData []byte
		if requested != nil {
			requested.OwnerID = offer.FromID
			requestedData, err = collection.MarshalInstance(requested)
			if err != nil {
				return err
			}
		}

		offer.Status = entities.TradeAccepted
		offer.ResolvedAt = input.ResolvedAt
		offerData, err := marshalOffer(offer)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, collection.InstanceKey(offered.ID), offeredData, 0)
			pipe.SRem(ctx, collection.OwnerIndexKey(offer.FromID), offered.ID)
			pipe.SAdd(ctx, collection.OwnerIndexKey(offer.ToID), offered.ID)
			if requested != nil {
				pipe.Set(ctx, collection.InstanceKey(requested.ID), requestedData, 0)
				pipe.SRem(ctx, collection.OwnerIndexKey(offer.ToID), requested.ID)
				pipe.SAdd(ctx, collection.OwnerIndexKey(offer.FromID), requested.ID)
			}
			pipe.Set(ctx, tradeKey, offerData, 0)
			pipe.SRem(ctx, PendingIndexKey(offer.FromID), offer.ID)
			pipe.SRem(ctx, PendingIndexKey(offer.ToID), offer.ID)
			return nil
		})
		if err != nil {
			return err
		}
		out.Offer = offer
		out.Received = offered
		out.Sent = requested
		return nil
	}, watchKeys...)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *redisRepository) loadOwnedInstance(ctx context.Context, tx *redis.Tx, instanceID, ownerID string) (*entities.CreatureInstance, error) {
	raw, err := tx.Get(ctx, collection.InstanceKey(instanceID)).Result()
	if err == redis.Nil {
		return nil, errors.FailedPreconditionf("instance %s no longer exists", instanceID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get instance")
	}
	inst, err := collection.UnmarshalInstance(raw)
	if err != nil {
		return nil, err
	}
	if !inst.OwnedBy(ownerID) {
		return nil, errors.FailedPreconditionf("instance %s is not owned by account %s", instanceID, ownerID).
			WithMeta("instance_id", instanceID)
	}
	return inst, nil
}

func (r *redisRepository) Reject(ctx context.Context, input RejectInput) (*RejectOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errOfferIDEmpty)
	}
	if input.ActingID == "" {
		return nil, errors.InvalidArgument("acting account ID cannot be empty")
	}

	offer, err := r.resolveWithoutTransfer(ctx, input.ID, input.ResolvedAt, func(offer *entities.TradeOffer) error {
		if offer.ToID != input.ActingID {
			return errors.PermissionDeniedf("account %s is not the target of offer %s", input.ActingID, input.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RejectOutput{Offer: offer}, nil
}

func (r *redisRepository) Invalidate(ctx context.Context, input InvalidateInput) (*InvalidateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errOfferIDEmpty)
	}

	offer, err := r.resolveWithoutTransfer(ctx, input.ID, input.ResolvedAt, nil)
	if err != nil {
		return nil, err
	}

	return &InvalidateOutput{Offer: offer}, nil
}

func (r *redisRepository) resolveWithoutTransfer(ctx context.Context, id string, resolvedAt int64, authorize func(*entities.TradeOffer) error) (*entities.TradeOffer, error) {
	tradeKey := TradeKey(id)
	var resolved *entities.TradeOffer

	err := r.watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, tradeKey).Result()
		if err == redis.Nil {
			return errors.NotFoundf("offer with ID %s not found", id)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to get offer")
		}
		offer, err := unmarshalOffer(raw)
		if err != nil {
			return err
		}
		if offer.Status != entities.TradePending {
			return errors.NotFoundf("offer with ID %s is already resolved", id)
		}
		if authorize != nil {
			if err := authorize(offer); err != nil {
				return err
			}
		}

		offer.Status = entities.TradeRejected
		offer.ResolvedAt = resolvedAt
		data, err := marshalOffer(offer)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, tradeKey, data, 0)
			pipe.SRem(ctx, PendingIndexKey(offer.FromID), offer.ID)
			pipe.SRem(ctx, PendingIndexKey(offer.ToID), offer.ID)
			return nil
		})
		if err != nil {
			return err
		}
		resolved = offer
		return nil
	}, tradeKey)
	if err != nil {
		return nil, err
	}

	return resolved, nil
}
