package account

import (
	"context"
	"strconv"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/creatureworks/creature-api/internal/entities"
	"github.com/creatureworks/creature-api/internal/errors"
	redisclient "github.com/creatureworks/creature-api/internal/redis"
)

const (
	accountKeyPrefix = "account:"
	itemFieldPrefix  = "item:"

	fieldDisplayName = "display_name"
	fieldBalance     = "balance"
	fieldCompanion   = "companion_id"
	fieldCreatedAt   = "created_at"

	maxTxRetries = 5

	// Error messages
	errAccountNil     = "account cannot be nil"
	errAccountIDEmpty = "account ID cannot be empty"
)

// Key returns the Redis key of an account hash. Exported because the
// market and trade repositories settle balances inside their own
// transactions and need to watch account keys.
func Key(accountID string) string {
	return accountKeyPrefix + accountID
}

// BalanceField is the hash field holding the currency balance.
func BalanceField() string {
	return fieldBalance
}

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis account repository.
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

// NewRedis creates a new Redis-backed account repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

// watch runs fn under WATCH on the given keys, retrying a bounded
// number of times when the transaction loses its race.
func (r *redisRepository) watch(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, fn, keys...)
		if err != redis.TxFailedErr {
			return err
		}
	}
	return errors.Abortedf("account update lost %d races, giving up", maxTxRetries)
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Account == nil {
		return nil, errors.InvalidArgument(errAccountNil)
	}
	if input.Account.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}
	if input.Account.Balance < 0 {
		return nil, errors.InvalidArgument("starting balance cannot be negative")
	}
	for item, count := range input.Account.Items {
		if count < 0 {
			return nil, errors.InvalidArgumentf("starting count for %s cannot be negative", item)
		}
	}

	key := Key(input.Account.ID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("account with ID %s already exists", input.Account.ID)
	}

	fields := map[string]interface{}{
		fieldDisplayName: input.Account.DisplayName,
		fieldBalance:     input.Account.Balance,
		fieldCreatedAt:   input.Account.CreatedAt,
	}
	if input.Account.CompanionID != "" {
		fields[fieldCompanion] = input.Account.CompanionID
	}
	for item, count := range input.Account.Items {
		fields[itemFieldPrefix+string(item)] = count
	}

	if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to create account")
	}

	return &CreateOutput{Account: input.Account}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}

	fields, err := r.client.HGetAll(ctx, Key(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account")
	}
	if len(fields) == 0 {
		return nil, errors.NotFoundf("account with ID %s not found", input.ID)
	}

	acc, err := accountFromHash(input.ID, fields)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Account: acc}, nil
}

func accountFromHash(id string, fields map[string]string) (*entities.Account, error) {
	acc := &entities.Account{
		ID:          id,
		DisplayName: fields[fieldDisplayName],
		CompanionID: fields[fieldCompanion],
		Items:       make(map[entities.ItemType]int64, len(entities.ItemTypes)),
	}

	var err error
	if raw, ok := fields[fieldBalance]; ok {
		if acc.Balance, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, errors.Wrapf(err, "corrupt balance for account %s", id)
		}
	}
	if raw, ok := fields[fieldCreatedAt]; ok {
		if acc.CreatedAt, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, errors.Wrapf(err, "corrupt created_at for account %s", id)
		}
	}

	for field, raw := range fields {
		if !strings.HasPrefix(field, itemFieldPrefix) {
			continue
		}
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt item count for account %s", id)
		}
		acc.Items[entities.ItemType(strings.TrimPrefix(field, itemFieldPrefix))] = count
	}

	return acc, nil
}

func (r *redisRepository) Credit(ctx context.Context, input CreditInput) (*CreditOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}
	if input.Amount <= 0 {
		return nil, errors.InvalidArgumentf("credit amount must be positive, got %d", input.Amount)
	}

	key := Key(input.ID)
	out := &CreditOutput{}

	err := r.watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to check existence")
		}
		if exists == 0 {
			return errors.NotFoundf("account with ID %s not found", input.ID)
		}

		var incr *redis.IntCmd
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.HIncrBy(ctx, key, fieldBalance, input.Amount)
			return nil
		})
		if err != nil {
			return err
		}
		out.Balance = incr.Val()
		return nil
	}, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to credit account %s", input.ID)
	}

	return out, nil
}

func (r *redisRepository) Debit(ctx context.Context, input DebitInput) (*DebitOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}
	if input.Amount <= 0 {
		return nil, errors.InvalidArgumentf("debit amount must be positive, got %d", input.Amount)
	}

	key := Key(input.ID)
	out := &DebitOutput{}

	err := r.watch(ctx, func(tx *redis.Tx) error {
		balance, err := tx.HGet(ctx, key, fieldBalance).Int64()
		if err == redis.Nil {
			return errors.NotFoundf("account with ID %s not found", input.ID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to read balance")
		}

		if balance < input.Amount {
			return errors.FailedPreconditionf("insufficient funds: balance %d, need %d", balance, input.Amount).
				WithMeta("account_id", input.ID)
		}

		var incr *redis.IntCmd
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.HIncrBy(ctx, key, fieldBalance, -input.Amount)
			return nil
		})
		if err != nil {
			return err
		}
		out.Balance = incr.Val()
		return nil
	}, key)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *redisRepository) ConsumeItem(ctx context.Context, input ConsumeItemInput) (*ConsumeItemOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}
	if !entities.IsValidItemType(input.Item) {
		return nil, errors.InvalidArgumentf("unknown item type: %s", input.Item)
	}

	key := Key(input.ID)
	field := itemFieldPrefix + string(input.Item)
	out := &ConsumeItemOutput{}

	err := r.watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to check existence")
		}
		if exists == 0 {
			return errors.NotFoundf("account with ID %s not found", input.ID)
		}

		count, err := tx.HGet(ctx, key, field).Int64()
		if err != nil && err != redis.Nil {
			return errors.Wrapf(err, "failed to read item count")
		}
		if count <= 0 {
			return errors.FailedPreconditionf("no %s left to consume", input.Item).
				WithMeta("account_id", input.ID)
		}

		var incr *redis.IntCmd
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.HIncrBy(ctx, key, field, -1)
			return nil
		})
		if err != nil {
			return err
		}
		out.Remaining = incr.Val()
		return nil
	}, key)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *redisRepository) SetItemCount(ctx context.Context, input SetItemCountInput) (*SetItemCountOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}
	if !entities.IsValidItemType(input.Item) {
		return nil, errors.InvalidArgumentf("unknown item type: %s", input.Item)
	}
	if input.Count < 0 {
		return nil, errors.InvalidArgumentf("item count cannot be negative, got %d", input.Count)
	}

	key := Key(input.ID)

	err := r.watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to check existence")
		}
		if exists == 0 {
			return errors.NotFoundf("account with ID %s not found", input.ID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, itemFieldPrefix+string(input.Item), input.Count)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return nil, err
	}

	return &SetItemCountOutput{}, nil
}

func (r *redisRepository) SetCompanion(ctx context.Context, input SetCompanionInput) (*SetCompanionOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}

	key := Key(input.ID)

	err := r.watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to check existence")
		}
		if exists == 0 {
			return errors.NotFoundf("account with ID %s not found", input.ID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if input.InstanceID == "" {
				pipe.HDel(ctx, key, fieldCompanion)
			} else {
				pipe.HSet(ctx, key, fieldCompanion, input.InstanceID)
			}
			return nil
		})
		return err
	}, key)
	if err != nil {
		return nil, err
	}

	return &SetCompanionOutput{}, nil
}

func (r *redisRepository) ClearCompanionIf(ctx context.Context, input ClearCompanionIfInput) (*ClearCompanionIfOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}
	if input.InstanceID == "" {
		return nil, errors.InvalidArgument("instance ID cannot be empty")
	}

	key := Key(input.ID)
	out := &ClearCompanionIfOutput{}

	err := r.watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, fieldCompanion).Result()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "failed to read companion")
		}
		if current != input.InstanceID {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, key, fieldCompanion)
			return nil
		})
		if err != nil {
			return err
		}
		out.Cleared = true
		return nil
	}, key)
	if err != nil {
		return nil, err
	}

	return out, nil
}
