package conceptconfig

import (
	"context"
	"slices"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/psychics/internal/errors"
	redisclient "github.com/KirkDiggler/psychics/internal/redis"
)

const (
	conceptKeyPrefix = "psychics:concept:"
	conceptIndexKey  = "psychics:concepts"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis concept repository.
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

// NewRedis creates a Redis-backed concept repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	names, err := r.client.SMembers(ctx, conceptIndexKey).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list concepts")
	}

	slices.Sort(names)
	return &ListOutput{Names: names}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, conceptKeyPrefix+input.Name).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("concept %s not found", input.Name)
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get concept %s", input.Name)
	}

	return &GetOutput{Name: input.Name, Data: data}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}
	if len(input.Data) == 0 {
		return nil, errors.InvalidArgument(errDataEmpty)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, conceptKeyPrefix+input.Name, input.Data, 0)
	added := pipe.SAdd(ctx, conceptIndexKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to put concept %s", input.Name)
	}

	return &PutOutput{Created: added.Val() > 0}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	key := conceptKeyPrefix + input.Name
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to check concept %s", input.Name)
	}
	if exists == 0 {
		return nil, errors.NotFoundf("concept %s not found", input.Name)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, conceptIndexKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to delete concept %s", input.Name)
	}

	return &DeleteOutput{}, nil
}
