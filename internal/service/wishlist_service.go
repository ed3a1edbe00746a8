package service

import (
	"context"
	"log"

	"github.com/gradeshop/catalog-service/internal/domain"
	"github.com/gradeshop/catalog-service/internal/events"
	"github.com/gradeshop/catalog-service/internal/repository"
)

// WishlistService flips (user, product) membership. Every call inverts
// state; only the presence of the row matters.
type WishlistService struct {
	repo   repository.WishlistRepository
	broker *events.Broker
}

func NewWishlistService(repo repository.WishlistRepository, broker *events.Broker) *WishlistService {
	return &WishlistService{
		repo:   repo,
		broker: broker,
	}
}

// Toggle reports true when the product was added, false when removed.
func (s *WishlistService) Toggle(ctx context.Context, userID string, productID int64) (bool, error) {
	added, err := s.repo.Toggle(ctx, userID, productID)
	if err != nil {
		log.Printf("repo toggle wishlist error: %v \n", err)
		return false, err
	}

	s.broker.Publish(events.SignalWishlistChanged, userID)
	return added, nil
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		log.Printf("repo list wishlist error: %v \n", err)
		return nil, err
	}
	return items, nil
}
