package app

import (
	"context"
	"time"

	"staynest/internal/domain"
)

type QueryService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// Get resolves a record by numeric id or slug. Cached under the identifier
// the client used; both keys are evicted on mutation.
func (s *QueryService) Get(ctx context.Context, identifier string) (domain.Hotel, error) {
	key := "hotel:" + identifier
	var h domain.Hotel
	// A corrupt cached blob decodes into a partial record; treat any cache
	// error as a miss and fall through to the store.
	if ok, err := s.cache.Get(ctx, key, &h); ok && err == nil {
		return h, nil
	}
	h, err := s.repo.Resolve(ctx, identifier)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	return h, nil
}

// List returns every record in id order; the empty store yields an empty
// slice, never an error.
func (s *QueryService) List(ctx context.Context) ([]domain.Hotel, error) {
	const key = "hotels:all"
	var out []domain.Hotel
	if ok, err := s.cache.Get(ctx, key, &out); ok && err == nil {
		return out, nil
	}
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Hotel{}
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}
