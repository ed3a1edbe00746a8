package service

import (
	"context"
	"errors"
	"log"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/gradeshop/catalog-service/internal/cache"
	"github.com/gradeshop/catalog-service/internal/catalog"
	"github.com/gradeshop/catalog-service/internal/repository"
)

// CatalogService loads the per-product variant catalog, caching the raw
// snapshot so one product view costs one store round trip at most.
type CatalogService struct {
	repo  repository.CatalogRepository
	cache cache.CatalogCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCatalogService(repo repository.CatalogRepository, cache cache.CatalogCache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CatalogService) Load(ctx context.Context, productID int64) (*catalog.Catalog, error) {
	key := strconv.FormatInt(productID, 10)

	// Use singleflight to prevent multiple concurrent cache misses for same product
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {

		snap, err := s.cache.Get(ctx, productID)
		if err == nil {
			return snap, nil // snapshot is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		snap, errLoad := s.loadSnapshot(ctx, productID)
		if errLoad != nil {
			return nil, errLoad
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), productID, snap)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return snap, nil
	})

	if err != nil {
		return nil, err
	}

	snap := v.(*cache.Snapshot)
	return catalog.New(snap.Product, snap.Variants, snap.Grades), nil
}

func (s *CatalogService) loadSnapshot(ctx context.Context, productID int64) (*cache.Snapshot, error) {
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err // ErrProductNotFound passes through untouched
	}

	variants, err := s.repo.GetVariants(ctx, productID)
	if err != nil {
		return nil, err
	}

	grades, err := s.repo.GetGrades(ctx)
	if err != nil {
		return nil, err
	}

	return &cache.Snapshot{
		Product:  *product,
		Variants: variants,
		Grades:   grades,
	}, nil
}
