package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"frustration-list/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// maxTxRetries bounds how often a WATCH-guarded move is retried when another
// client touched the pending list in between.
const maxTxRetries = 5

// RedisStore keeps each collection as a Redis list of IDs (head is newest)
// and the items themselves as JSON strings.
//
//	<prefix>:published  list of IDs
//	<prefix>:pending    list of IDs
//	<prefix>:item:<id>  item JSON
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore connects to Redis. All keys are namespaced under prefix so
// Reset only wipes this catalog.
func NewRedisStore(redisAddr, prefix string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if prefix == "" {
		prefix = "frustrations"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

func (s *RedisStore) publishedKey() string { return s.prefix + ":published" }
func (s *RedisStore) pendingKey() string   { return s.prefix + ":pending" }
func (s *RedisStore) itemKey(id string) string {
	return s.prefix + ":item:" + id
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) Reset(ctx context.Context, seed []model.Item) error {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, s.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan keys: %w", err)
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
		}
		for _, item := range seed {
			data, err := json.Marshal(item)
			if err != nil {
				return err
			}
			pipe.Set(ctx, s.itemKey(item.ID.String()), data, 0)
			pipe.RPush(ctx, s.publishedKey(), item.ID.String())
		}
		return nil
	})
	return err
}

func (s *RedisStore) AddPending(ctx context.Context, item *model.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.itemKey(item.ID.String()), data, 0)
	pipe.LPush(ctx, s.pendingKey(), item.ID.String())
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Publish(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	return s.movePending(ctx, id, func(pipe redis.Pipeliner, idStr string) {
		pipe.LPush(ctx, s.publishedKey(), idStr)
	})
}

func (s *RedisStore) Discard(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	return s.movePending(ctx, id, func(pipe redis.Pipeliner, idStr string) {
		pipe.Del(ctx, s.itemKey(idStr))
	})
}

// movePending removes id from the pending list and runs then in the same
// MULTI block. The pending list is WATCHed so two moderators racing on the
// same ID cannot both succeed.
func (s *RedisStore) movePending(ctx context.Context, id uuid.UUID, then func(redis.Pipeliner, string)) (*model.Item, error) {
	idStr := id.String()
	var item *model.Item

	txf := func(tx *redis.Tx) error {
		err := tx.LPos(ctx, s.pendingKey(), idStr, redis.LPosArgs{}).Err()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		val, err := tx.Get(ctx, s.itemKey(idStr)).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		var it model.Item
		if err := json.Unmarshal(val, &it); err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LRem(ctx, s.pendingKey(), 1, idStr)
			then(pipe, idStr)
			return nil
		})
		if err != nil {
			return err
		}
		item = &it
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, s.pendingKey())
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return item, nil
	}
	return nil, fmt.Errorf("moderate %s: %w", idStr, redis.TxFailedErr)
}

func (s *RedisStore) Published(ctx context.Context) ([]model.Item, error) {
	return s.list(ctx, s.publishedKey())
}

func (s *RedisStore) Pending(ctx context.Context) ([]model.Item, error) {
	return s.list(ctx, s.pendingKey())
}

func (s *RedisStore) list(ctx context.Context, key string) ([]model.Item, error) {
	ids, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.itemKey(id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	items := make([]model.Item, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var item model.Item
		if err := json.Unmarshal([]byte(str), &item); err == nil {
			items = append(items, item)
		}
	}
	return items, nil
}
