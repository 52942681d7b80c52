package collection

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/creatureworks/creature-api/internal/entities"
	"github.com/creatureworks/creature-api/internal/errors"
	redisclient "github.com/creatureworks/creature-api/internal/redis"
)

const (
	instanceKeyPrefix = "creature:"
	ownerIndexPrefix  = "collection:"

	maxTxRetries = 5

	// Error messages
	errInstanceNil     = "instance cannot be nil"
	errInstanceIDEmpty = "instance ID cannot be empty"
	errOwnerIDEmpty    = "owner ID cannot be empty"
)

// InstanceKey returns the Redis key of an instance document. The market
// and trade repositories flip ownership inside their own transactions
// and need to watch and rewrite instance keys.
func InstanceKey(instanceID string) string {
	return instanceKeyPrefix + instanceID
}

// OwnerIndexKey returns the Redis key of an account's ownership index.
func OwnerIndexKey(accountID string) string {
	return ownerIndexPrefix + accountID
}

// UnmarshalInstance decodes an instance document. Shared with the
// market and trade repositories.
func UnmarshalInstance(data string) (*entities.CreatureInstance, error) {
	var inst entities.CreatureInstance
	if err := json.Unmarshal([]byte(data), &inst); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal instance")
	}
	return &inst, nil
}

// MarshalInstance encodes an instance document.
func MarshalInstance(inst *entities.CreatureInstance) ([]byte, error) {
	data, err := json.Marshal(inst)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal instance")
	}
	return data, nil
}

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis collection repository.
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

// NewRedis creates a new Redis-backed collection repository
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
	return errors.Abortedf("ownership update lost %d races, giving up", maxTxRetries)
}

func (r *redisRepository) Add(ctx context.Context, input AddInput) (*AddOutput, error) {
	if input.Instance == nil {
		return nil, errors.InvalidArgument(errInstanceNil)
	}
	if input.Instance.ID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}
	if input.Instance.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if input.Instance.Listed {
		return nil, errors.InvalidArgument("new instance cannot be listed")
	}

	key := InstanceKey(input.Instance.ID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("instance with ID %s already exists", input.Instance.ID)
	}

	data, err := MarshalInstance(input.Instance)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, OwnerIndexKey(input.Instance.OwnerID), input.Instance.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to add instance")
	}

	return &AddOutput{Instance: input.Instance}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}

	result, err := r.client.Get(ctx, InstanceKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("instance with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get instance")
	}

	inst, err := UnmarshalInstance(result)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Instance: inst}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	ids, err := r.client.SMembers(ctx, OwnerIndexKey(input.OwnerID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read owner index")
	}
	if len(ids) == 0 {
		return &ListByOwnerOutput{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = InstanceKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load instances")
	}

	instances := make([]*entities.CreatureInstance, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry without a document; skip rather than fail the listing
			continue
		}
		inst, err := UnmarshalInstance(raw)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}

	return &ListByOwnerOutput{Instances: instances}, nil
}

func (r *redisRepository) Transfer(ctx context.Context, input TransferInput) (*TransferOutput, error) {
	if input.InstanceID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}
	if input.FromID == "" || input.ToID == "" {
		return nil, errors.InvalidArgument("both transfer parties are required")
	}
	if input.FromID == input.ToID {
		return nil, errors.InvalidArgument("cannot transfer an instance to its current owner")
	}

	key := InstanceKey(input.InstanceID)
	out := &TransferOutput{}

	err := r.watch(ctx, func(tx *redis.Tx) error {
		result, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return errors.NotFoundf("instance with ID %s not found", input.InstanceID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to get instance")
		}

		inst, err := UnmarshalInstance(result)
		if err != nil {
			return err
		}
		if !inst.OwnedBy(input.FromID) {
			return errors.FailedPreconditionf("instance %s is not owned by account %s", input.InstanceID, input.FromID).
				WithMeta("instance_id", input.InstanceID)
		}

		inst.OwnerID = input.ToID
		data, err := MarshalInstance(inst)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SRem(ctx, OwnerIndexKey(input.FromID), input.InstanceID)
			pipe.SAdd(ctx, OwnerIndexKey(input.ToID), input.InstanceID)
			return nil
		})
		if err != nil {
			return err
		}
		out.Instance = inst
		return nil
	}, key)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *redisRepository) Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.InstanceID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	key := InstanceKey(input.InstanceID)

	err := r.watch(ctx, func(tx *redis.Tx) error {
		result, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return errors.NotFoundf("instance with ID %s not found", input.InstanceID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to get instance")
		}

		inst, err := UnmarshalInstance(result)
		if err != nil {
			return err
		}
		if !inst.OwnedBy(input.OwnerID) {
			return errors.FailedPreconditionf("instance %s is not owned by account %s", input.InstanceID, input.OwnerID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.SRem(ctx, OwnerIndexKey(input.OwnerID), input.InstanceID)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return nil, err
	}

	return &RemoveOutput{}, nil
}
