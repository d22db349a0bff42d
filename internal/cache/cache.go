// Package cache keeps recent duplicate lookups in redis so repeated passes do
// not hit the database for trims it already reported.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"manuaisprj/internal/dedup"
)

const defaultTTL = 30 * time.Minute

// CachedStore is a dedup.Store backed by Store with lookups cached in Client.
// Only positive counts are cached; a trim that does not exist yet is asked
// again next time.
type CachedStore struct {
	Client *redis.Client
	Store  dedup.Store
	TTL    time.Duration
	log    zerolog.Logger
}

func New(client *redis.Client, store dedup.Store, ttl time.Duration, log zerolog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &CachedStore{Client: client, Store: store, TTL: ttl, log: log}
}

// Key is the redis key of a trim identity.
func Key(brand, model, name string) string {
	return "trim:" + brand + ":" + model + ":" + name
}

func (s *CachedStore) Count(ctx context.Context, brand, model, name string) (int, error) {
	key := Key(brand, model, name)

	if s.Client != nil {
		n, err := s.Client.Get(ctx, key).Int()
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.Debug().Err(err).Str("chave", key).Msg("cache indisponível, consultando o banco")
		}
	}

	n, err := s.Store.Count(ctx, brand, model, name)
	if err != nil {
		return 0, err
	}

	if n > 0 && s.Client != nil {
		if err := s.Client.Set(ctx, key, n, s.TTL).Err(); err != nil {
			s.log.Debug().Err(err).Str("chave", key).Msg("falha ao gravar no cache")
		}
	}
	return n, nil
}
