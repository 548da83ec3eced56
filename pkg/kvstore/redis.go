package kvstore

import (
	"context"
	stderrors "errors"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix     = "escrow"
	defaultRedisMaxRetries = 100
)

// redisReader команды чтения, общие для клиента и транзакции.
type redisReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

// RedisStore хранит записи строковыми ключами вида <prefix>:data:<namespace>:<id>, а для List поддерживает
// множество id на каждое пространство имен. Транзакции оптимистичные: ключи блокировки отслеживаются через
// WATCH, изменения применяются в MULTI/EXEC, при конфликте fn выполняется заново.
type RedisStore struct {
	client     redis.UniversalClient
	prefix     string
	maxRetries int
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client:     client,
		prefix:     defaultRedisPrefix,
		maxRetries: defaultRedisMaxRetries,
	}
}

// SetPrefix меняет префикс ключей, например, для изоляции тестов.
func (r *RedisStore) SetPrefix(prefix string) *RedisStore {
	r.prefix = prefix
	return r
}

func (r *RedisStore) Get(ctx context.Context, key Key) ([]byte, error) {
	return r.get(ctx, r.client, key)
}

func (r *RedisStore) List(ctx context.Context, namespace, prefix string) ([]Entry, error) {
	return r.list(ctx, r.client, namespace, prefix)
}

func (r *RedisStore) Do(ctx context.Context, locks []Key, fn TxFunc) error {
	keys := canonicalLocks(locks)
	watched := make([]string, len(keys))
	for i, k := range keys {
		watched[i] = r.dataKey(k)
	}

	for range r.maxRetries {
		err := r.client.Watch(ctx, func(rtx *redis.Tx) error {
			tx := &redisTx{store: r, rtx: rtx, staged: make(map[Key]stagedWrite)}
			if fnErr := fn(ctx, tx); fnErr != nil {
				return fnErr
			}
			_, execErr := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				r.apply(ctx, pipe, tx.staged)
				return nil
			})
			return execErr //nolint:wrapcheck
		}, watched...)

		if !stderrors.Is(err, redis.TxFailedErr) {
			return err //nolint:wrapcheck
		}

		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		case <-time.After(time.Duration(1+rand.IntN(5)) * time.Millisecond): //nolint:gosec,mnd
		}
	}
	return ErrConflict
}

func (r *RedisStore) Close() error {
	return errors.Wrap(r.client.Close(), "[kvstore/redis] close")
}

func (r *RedisStore) apply(ctx context.Context, pipe redis.Pipeliner, staged map[Key]stagedWrite) {
	for k, w := range staged {
		if w.deleted {
			pipe.Del(ctx, r.dataKey(k))
			pipe.SRem(ctx, r.indexKey(k.Namespace), k.ID)
			continue
		}
		pipe.Set(ctx, r.dataKey(k), w.value, 0)
		pipe.SAdd(ctx, r.indexKey(k.Namespace), k.ID)
	}
}

func (r *RedisStore) dataKey(k Key) string {
	return r.prefix + ":data:" + k.Namespace + ":" + k.ID
}

func (r *RedisStore) indexKey(namespace string) string {
	return r.prefix + ":index:" + namespace
}

func (r *RedisStore) get(ctx context.Context, c redisReader, key Key) ([]byte, error) {
	v, err := c.Get(ctx, r.dataKey(key)).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "[kvstore/redis] get %s", key)
	}
	return v, nil
}

func (r *RedisStore) list(ctx context.Context, c redisReader, namespace, prefix string) ([]Entry, error) {
	ids, err := c.SMembers(ctx, r.indexKey(namespace)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "[kvstore/redis] list %s", namespace)
	}
	ids = slices.DeleteFunc(ids, func(id string) bool { return !strings.HasPrefix(id, prefix) })
	if len(ids) == 0 {
		return nil, nil
	}
	slices.Sort(ids)

	dataKeys := make([]string, len(ids))
	for i, id := range ids {
		dataKeys[i] = r.dataKey(NewKey(namespace, id))
	}
	values, mgetErr := c.MGet(ctx, dataKeys...).Result()
	if mgetErr != nil {
		return nil, errors.Wrapf(mgetErr, "[kvstore/redis] list %s", namespace)
	}

	entries := make([]Entry, 0, len(ids))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// ключ удален между SMEMBERS и MGET
			continue
		}
		entries = append(entries, Entry{Key: NewKey(namespace, ids[i]), Value: []byte(s)})
	}
	return entries, nil
}

type redisTx struct {
	store  *RedisStore
	rtx    *redis.Tx
	staged map[Key]stagedWrite
}

func (t *redisTx) Get(ctx context.Context, key Key) ([]byte, error) {
	if w, ok := t.staged[key]; ok {
		if w.deleted {
			return nil, ErrNotFound
		}
		return slices.Clone(w.value), nil
	}
	return t.store.get(ctx, t.rtx, key)
}

func (t *redisTx) List(ctx context.Context, namespace, prefix string) ([]Entry, error) {
	committed, err := t.store.list(ctx, t.rtx, namespace, prefix)
	if err != nil {
		return nil, err
	}
	return mergeStaged(committed, t.staged, namespace, prefix), nil
}

func (t *redisTx) Put(_ context.Context, key Key, value []byte) error {
	t.staged[key] = stagedWrite{value: slices.Clone(value)}
	return nil
}

func (t *redisTx) Delete(_ context.Context, key Key) error {
	t.staged[key] = stagedWrite{deleted: true}
	return nil
}
