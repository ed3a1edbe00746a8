package service

import (
	"context"
	"errors"
	"log"

	"github.com/sony/gobreaker/v2"

	"github.com/gradeshop/catalog-service/internal/domain"
	"github.com/gradeshop/catalog-service/internal/repository"
)

// SizeChartService is a best-effort lookup: a missing chart is a normal nil
// result, and when the chart store keeps failing the breaker short-circuits
// to nil so the product view still renders.
type SizeChartService struct {
	repo    repository.CatalogRepository
	breaker *gobreaker.CircuitBreaker[*domain.SizeChart]
}

func NewSizeChartService(repo repository.CatalogRepository) *SizeChartService {
	cb := gobreaker.NewCircuitBreaker[*domain.SizeChart](gobreaker.Settings{
		Name: "size-charts",
		// Absence is a valid outcome, not a store failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, repository.ErrChartNotFound)
		},
	})
	return &SizeChartService{
		repo:    repo,
		breaker: cb,
	}
}

// Lookup returns (nil, nil) when no chart exists, when either key part is
// missing (no query is issued), or when the breaker is open. Other store
// failures propagate unmodified.
func (s *SizeChartService) Lookup(ctx context.Context, brandID int64, categoryName string) (*domain.SizeChart, error) {
	if brandID == 0 || categoryName == "" {
		return nil, nil
	}

	chart, err := s.breaker.Execute(func() (*domain.SizeChart, error) {
		return s.repo.GetSizeChart(ctx, brandID, categoryName)
	})
	if errors.Is(err, repository.ErrChartNotFound) {
		return nil, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		log.Printf("size chart breaker open for brand %d", brandID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return chart, nil
}
