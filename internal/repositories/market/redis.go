package market

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/creatureworks/creature-api/internal/entities"
	"github.com/creatureworks/creature-api/internal/errors"
	redisclient "github.com/creatureworks/creature-api/internal/redis"
	"github.com/creatureworks/creature-api/internal/repositories/account"
	"github.com/creatureworks/creature-api/internal/repositories/collection"
)

const (
	listingKeyPrefix = "market:listing:"
	marketIndexKey   = "market:index"

	maxTxRetries = 5

	// Error messages
	errInstanceIDEmpty = "instance ID cannot be empty"
	errSellerIDEmpty   = "seller ID cannot be empty"
	errBuyerIDEmpty    = "buyer ID cannot be empty"
)

// ListingKey returns the Redis key of a listing document.
func ListingKey(instanceID string) string {
	return listingKeyPrefix + instanceID
}

func marshalListing(listing *entities.MarketListing) ([]byte, error) {
	data, err := json.Marshal(listing)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal listing")
	}
	return data, nil
}

func unmarshalListing(data string) (*entities.MarketListing, error) {
	var listing entities.MarketListing
	if err := json.Unmarshal([]byte(data), &listing); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal listing")
	}
	return &listing, nil
}

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis market repository.
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

// NewRedis creates a new Redis-backed market repository
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
	return errors.Abortedf("market settlement lost %d races, giving up", maxTxRetries)
}

// List moves the instance into escrow. While listed the instance
// carries no owner and appears in no collection; the listing records
// the seller so withdrawal and settlement know where it came from.
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.InstanceID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}
	if input.SellerID == "" {
		return nil, errors.InvalidArgument(errSellerIDEmpty)
	}
	if input.Price <= 0 {
		return nil, errors.InvalidArgument("price must be positive")
	}

	instanceKey := collection.InstanceKey(input.InstanceID)
	listingKey := ListingKey(input.InstanceID)
	out := &ListOutput{}

	err := r.watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, instanceKey).Result()
		if err == redis.Nil {
			return errors.NotFoundf("instance with ID %s not found", input.InstanceID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to get instance")
		}

		inst, err := collection.UnmarshalInstance(raw)
		if err != nil {
			return err
		}
		if !inst.OwnedBy(input.SellerID) {
			return errors.FailedPreconditionf("instance %s is not owned by account %s", input.InstanceID, input.SellerID)
		}

		listing := &entities.MarketListing{
			InstanceID: input.InstanceID,
			SellerID:   input.SellerID,
			Price:      input.Price,
			ListedAt:   input.ListedAt,
		}
		listingData, err := marshalListing(listing)
		if err != nil {
			return err
		}

		inst.Listed = true
		inst.OwnerID = ""
		instData, err := collection.MarshalInstance(inst)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listingKey, listingData, 0)
			pipe.Set(ctx, instanceKey, instData, 0)
			pipe.SRem(ctx, collection.OwnerIndexKey(input.SellerID), input.InstanceID)
			pipe.SAdd(ctx, marketIndexKey, input.InstanceID)
			return nil
		})
		if err != nil {
			return err
		}
		out.Listing = listing
		return nil
	}, instanceKey, listingKey)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *redisRepository) ListSystem(ctx context.Context, input ListSystemInput) (*ListOutput, error) {
	if input.Instance == nil {
		return nil, errors.InvalidArgument("instance cannot be nil")
	}
	if input.Instance.ID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}
	if input.Price <= 0 {
		return nil, errors.InvalidArgument("price must be positive")
	}

	instanceKey := collection.InstanceKey(input.Instance.ID)
	listingKey := ListingKey(input.Instance.ID)

	exists, err := r.client.Exists(ctx, instanceKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("instance with ID %s already exists", input.Instance.ID)
	}

	listing := &entities.MarketListing{
		InstanceID: input.Instance.ID,
		Price:      input.Price,
		ListedAt:   input.ListedAt,
	}
	listingData, err := marshalListing(listing)
	if err != nil {
		return nil, err
	}

	inst := *input.Instance
	inst.Listed = true
	inst.OwnerID = ""
	instData, err := collection.MarshalInstance(&inst)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, instanceKey, instData, 0)
	pipe.Set(ctx, listingKey, listingData, 0)
	pipe.SAdd(ctx, marketIndexKey, input.Instance.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create system listing")
	}

	return &ListOutput{Listing: listing}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.InstanceID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}

	raw, err := r.client.Get(ctx, ListingKey(input.InstanceID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("instance %s is not listed", input.InstanceID)
		}
		return nil, errors.Wrapf(err, "failed to get listing")
	}
	listing, err := unmarshalListing(raw)
	if err != nil {
		return nil, err
	}

	instRaw, err := r.client.Get(ctx, collection.InstanceKey(input.InstanceID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("instance with ID %s not found", input.InstanceID)
		}
		return nil, errors.Wrapf(err, "failed to get instance")
	}
	inst, err := collection.UnmarshalInstance(instRaw)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Listing: listing, Instance: inst}, nil
}

func (r *redisRepository) Browse(ctx context.Context, _ BrowseInput) (*BrowseOutput, error) {
	ids, err := r.client.SMembers(ctx, marketIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read market index")
	}
	if len(ids) == 0 {
		return &BrowseOutput{}, nil
	}

	listingKeys := make([]string, len(ids))
	instanceKeys := make([]string, len(ids))
	for i, id := range ids {
		listingKeys[i] = ListingKey(id)
		instanceKeys[i] = collection.InstanceKey(id)
	}

	listingValues, err := r.client.MGet(ctx, listingKeys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load listings")
	}
	instanceValues, err := r.client.MGet(ctx, instanceKeys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load listed instances")
	}

	out := &BrowseOutput{}
	for i := range ids {
		listingRaw, ok := listingValues[i].(string)
		if !ok {
			// index entry without a listing; a purchase settled
			// between SMEMBERS and MGET
			continue
		}
		instRaw, ok := instanceValues[i].(string)
		if !ok {
			continue
		}
		listing, err := unmarshalListing(listingRaw)
		if err != nil {
			return nil, err
		}
		inst, err := collection.UnmarshalInstance(instRaw)
		if err != nil {
			return nil, err
		}
		out.Listings = append(out.Listings, listing)
		out.Instances = append(out.Instances, inst)
	}

	return out, nil
}

func (r *redisRepository) Withdraw(ctx context.Context, input WithdrawInput) (*WithdrawOutput, error) {
	if input.InstanceID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}
	if input.SellerID == "" {
		return nil, errors.InvalidArgument(errSellerIDEmpty)
	}

	instanceKey := collection.InstanceKey(input.InstanceID)
	listingKey := ListingKey(input.InstanceID)
	out := &WithdrawOutput{}

	err := r.watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, listingKey).Result()
		if err == redis.Nil {
			return errors.NotFoundf("instance %s is not listed", input.InstanceID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to get listing")
		}
		listing, err := unmarshalListing(raw)
		if err != nil {
			return err
		}
		if listing.SellerID != input.SellerID {
			return errors.PermissionDeniedf("account %s is not the seller of instance %s", input.SellerID, input.InstanceID)
		}

		instRaw, err := tx.Get(ctx, instanceKey).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to get instance")
		}
		inst, err := collection.UnmarshalInstance(instRaw)
		if err != nil {
			return err
		}

		inst.Listed = false
		inst.OwnerID = input.SellerID
		instData, err := collection.MarshalInstance(inst)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, listingKey)
			pipe.SRem(ctx, marketIndexKey, input.InstanceID)
			pipe.Set(ctx, instanceKey, instData, 0)
			pipe.SAdd(ctx, collection.OwnerIndexKey(input.SellerID), input.InstanceID)
			return nil
		})
		if err != nil {
			return err
		}
		out.Instance = inst
		return nil
	}, listingKey, instanceKey)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Purchase settles four keys in one transaction: the listing goes
// away, the instance moves to the buyer, the buyer's balance drops by
// the price, and the seller's balance rises by it. A starter listing
// has no seller; its proceeds leave circulation.
func (r *redisRepository) Purchase(ctx context.Context, input PurchaseInput) (*PurchaseOutput, error) {
	if input.InstanceID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}
	if input.BuyerID == "" {
		return nil, errors.InvalidArgument(errBuyerIDEmpty)
	}

	listingKey := ListingKey(input.InstanceID)
	instanceKey := collection.InstanceKey(input.InstanceID)
	buyerKey := account.Key(input.BuyerID)

	// The seller's key has to be known before WATCH can cover it, so
	// read the listing first and re-verify it inside the transaction.
	raw, err := r.client.Get(ctx, listingKey).Result()
	if err == redis.Nil {
		return nil, errors.NotFoundf("instance %s is not listed", input.InstanceID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get listing")
	}
	preview, err := unmarshalListing(raw)
	if err != nil {
		return nil, err
	}
	if preview.SellerID == input.BuyerID {
		return nil, errors.InvalidArgument("cannot purchase your own listing")
	}

	watchKeys := []string{listingKey, instanceKey, buyerKey}
	if preview.SellerID != "" {
		watchKeys = append(watchKeys, account.Key(preview.SellerID))
	}

	out := &PurchaseOutput{}

	err = r.watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, listingKey).Result()
		if err == redis.Nil {
			return errors.NotFoundf("instance %s is not listed", input.InstanceID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to get listing")
		}
		listing, err := unmarshalListing(raw)
		if err != nil {
			return err
		}
		if listing.SellerID != preview.SellerID {
			// relisted by someone else between the preview and the
			// WATCH; the seller key set is stale
			return errors.Abortedf("listing for instance %s changed during purchase", input.InstanceID)
		}

		buyerExists, err := tx.Exists(ctx, buyerKey).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to check buyer account")
		}
		if buyerExists == 0 {
			return errors.NotFoundf("account with ID %s not found", input.BuyerID)
		}

		balance, err := tx.HGet(ctx, buyerKey, account.BalanceField()).Int64()
		if err != nil && err != redis.Nil {
			return errors.Wrapf(err, "failed to read buyer balance")
		}
		if balance < listing.Price {
			return errors.FailedPreconditionf("insufficient funds: balance %d, price %d", balance, listing.Price).
				WithMeta("balance", balance).
				WithMeta("price", listing.Price)
		}

		instRaw, err := tx.Get(ctx, instanceKey).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to get instance")
		}
		inst, err := collection.UnmarshalInstance(instRaw)
		if err != nil {
			return err
		}

		inst.Listed = false
		inst.OwnerID = input.BuyerID
		instData, err := collection.MarshalInstance(inst)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, listingKey)
			pipe.SRem(ctx, marketIndexKey, input.InstanceID)
			pipe.Set(ctx, instanceKey, instData, 0)
			pipe.SAdd(ctx, collection.OwnerIndexKey(input.BuyerID), input.InstanceID)
			pipe.HIncrBy(ctx, buyerKey, account.BalanceField(), -listing.Price)
			if listing.SellerID != "" {
				pipe.HIncrBy(ctx, account.Key(listing.SellerID), account.BalanceField(), listing.Price)
			}
			return nil
		})
		if err != nil {
			return err
		}
		out.Instance = inst
		out.Price = listing.Price
		out.SellerID = listing.SellerID
		return nil
	}, watchKeys...)
	if err != nil {
		return nil, err
	}

	return out, nil
}
