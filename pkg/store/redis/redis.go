package redis

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"
	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/store"
)

// New creates a Redis-backed keyed store. The connection is verified with a
// PING before use so a dead backend is reported at startup, not on the first
// request. All operations carry bounded timeouts via the client options.
func New(ctx context.Context, addr, password string, db int) (interfaces.KeyedStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, goerr.Wrap(types.ErrStoreUnavailable, "failed to connect to redis",
			goerr.V("addr", addr),
			goerr.V("cause", err.Error()),
		)
	}

	return &keyedStore{client: client}, nil
}

type keyedStore struct {
	client *redis.Client
}

func (x *keyedStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return goerr.Wrap(store.ErrInvalidInput, "key is empty")
	}

	if err := x.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return wrapUnavailable(err, "failed to set record", key)
	}

	return nil
}

func (x *keyedStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := x.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goerr.Wrap(store.ErrNotFound, "record not found", goerr.V("key", key))
		}
		return nil, wrapUnavailable(err, "failed to get record", key)
	}

	return value, nil
}

func (x *keyedStore) Delete(ctx context.Context, key string) (bool, error) {
	deleted, err := x.client.Del(ctx, key).Result()
	if err != nil {
		return false, wrapUnavailable(err, "failed to delete record", key)
	}

	return deleted > 0, nil
}

func (x *keyedStore) AddSetMember(ctx context.Context, setKey, member string) error {
	if setKey == "" || member == "" {
		return goerr.Wrap(store.ErrInvalidInput, "set key and member must not be empty")
	}

	if err := x.client.SAdd(ctx, setKey, member).Err(); err != nil {
		return wrapUnavailable(err, "failed to add set member", setKey)
	}

	return nil
}

func (x *keyedStore) RemoveSetMember(ctx context.Context, setKey, member string) error {
	if err := x.client.SRem(ctx, setKey, member).Err(); err != nil {
		return wrapUnavailable(err, "failed to remove set member", setKey)
	}

	return nil
}

func (x *keyedStore) SetMembers(ctx context.Context, setKey string) ([]string, error) {
	members, err := x.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, wrapUnavailable(err, "failed to list set members", setKey)
	}

	return members, nil
}

func (x *keyedStore) ExpireSet(ctx context.Context, setKey string, ttl time.Duration) error {
	if err := x.client.Expire(ctx, setKey, ttl).Err(); err != nil {
		return wrapUnavailable(err, "failed to expire set", setKey)
	}

	return nil
}

func (x *keyedStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := x.client.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, wrapUnavailable(err, "failed to list keys", pattern)
	}

	return keys, nil
}

func (x *keyedStore) Close() error {
	return x.client.Close()
}

func wrapUnavailable(err error, msg, key string) error {
	return goerr.Wrap(types.ErrStoreUnavailable, msg,
		goerr.V("key", key),
		goerr.V("cause", err.Error()),
	)
}
