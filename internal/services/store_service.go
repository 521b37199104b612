package services

import (
	"context"
	"time"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/constants"
	"horizon-rp/quartermaster/internal/models/dtos"
	"horizon-rp/quartermaster/internal/providers"
)

// Tebex data changes rarely; cache aggressively to stay inside their limits.
const storeCacheTTL = 5 * time.Minute

// TebexClient is the slice of the Tebex provider the store facade uses.
type TebexClient interface {
	GetStoreInfo(ctx context.Context) (*providers.TebexStoreInfo, error)
	GetPackages(ctx context.Context) ([]dtos.StorePackage, error)
}

// StoreService caches Tebex webstore data for the site's donation page.
type StoreService struct {
	tebex TebexClient
	cache common.CacheInterface
}

func NewStoreService(tebex TebexClient, cache common.CacheInterface) *StoreService {
	return &StoreService{tebex: tebex, cache: cache}
}

func (s *StoreService) GetStoreInfo(ctx context.Context) (*providers.TebexStoreInfo, error) {
	val, err := s.cache.GetOrSet(string(constants.CachePrefixStoreInfo), storeCacheTTL, func() (any, error) {
		return s.tebex.GetStoreInfo(ctx)
	})
	if err != nil {
		return nil, err
	}
	info, _ := val.(*providers.TebexStoreInfo)
	return info, nil
}

func (s *StoreService) GetPackages(ctx context.Context) ([]dtos.StorePackage, error) {
	val, err := s.cache.GetOrSet(string(constants.CachePrefixStorePkgs), storeCacheTTL, func() (any, error) {
		return s.tebex.GetPackages(ctx)
	})
	if err != nil {
		return nil, err
	}
	packages, _ := val.([]dtos.StorePackage)
	return packages, nil
}
