// Package usecase implements the business logic for the rates feature.
package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tjkspices_backend/internal/feature/rates/domain/entity"
)

const cacheKey = "rates:inr"

// RateSource fetches current rates from the external provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type RateSource interface {
	LatestINR(ctx context.Context) (*entity.Rates, error)
}

// RatesUsecase serves exchange rates, caching provider responses for a short
// window. A nil Redis client disables caching.
type RatesUsecase struct {
	source RateSource
	rdb    *redis.Client
	ttl    time.Duration
}

// NewRatesUsecase creates a new RatesUsecase. If ttl is 0 it defaults to one
// hour.
func NewRatesUsecase(source RateSource, rdb *redis.Client, ttl time.Duration) *RatesUsecase {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RatesUsecase{source: source, rdb: rdb, ttl: ttl}
}

// LatestINR returns the current INR rates, served from cache when possible.
// Cache writes are best effort.
func (u *RatesUsecase) LatestINR(ctx context.Context) (*entity.Rates, error) {
	if u.rdb != nil {
		if b, err := u.rdb.Get(ctx, cacheKey).Bytes(); err == nil && len(b) > 0 {
			var out entity.Rates
			if err := json.Unmarshal(b, &out); err == nil {
				return &out, nil
			}
			_ = u.rdb.Del(ctx, cacheKey).Err()
		}
	}

	rates, err := u.source.LatestINR(ctx)
	if err != nil {
		return nil, err
	}

	if u.rdb != nil {
		if b, err := json.Marshal(rates); err == nil {
			_ = u.rdb.Set(ctx, cacheKey, b, u.ttl).Err()
		}
	}
	return rates, nil
}
