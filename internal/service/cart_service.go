package service

import (
	"context"
	"log"

	"github.com/gradeshop/catalog-service/internal/catalog"
	"github.com/gradeshop/catalog-service/internal/domain"
	"github.com/gradeshop/catalog-service/internal/events"
	"github.com/gradeshop/catalog-service/internal/repository"
)

// CartService reconciles add-to-cart intents against the persisted cart.
// The store does the merge atomically; this layer resolves the selection,
// enforces the stock gate and signals observers.
type CartService struct {
	catalogs *CatalogService
	repo     repository.CartRepository
	broker   *events.Broker
}

func NewCartService(catalogs *CatalogService, repo repository.CartRepository, broker *events.Broker) *CartService {
	return &CartService{
		catalogs: catalogs,
		repo:     repo,
		broker:   broker,
	}
}

// AddToCart resolves (size, grade) on the product's catalog and merges
// requestedQty into any existing row for (user, product, variant). The final
// quantity never exceeds the stock observed now; stock is informational at
// cart time and is re-validated at checkout.
func (s *CartService) AddToCart(ctx context.Context, userID string, productID int64, sel catalog.Selection, requestedQty int) (*domain.CartItem, error) {
	if requestedQty < 1 {
		return nil, ErrSelectionIncomplete
	}

	cat, err := s.catalogs.Load(ctx, productID)
	if err != nil {
		return nil, err
	}

	variant, ok := cat.Resolve(sel)
	if !ok {
		return nil, ErrSelectionIncomplete
	}
	if variant.Stock == 0 {
		return nil, ErrOutOfStock
	}

	item, err := s.repo.AddItem(ctx, userID, productID, variant.ID, requestedQty, variant.Stock)
	if err != nil {
		log.Printf("repo add item error: %v \n", err)
		return nil, err
	}

	s.broker.Publish(events.SignalCartChanged, userID)
	return item, nil
}

func (s *CartService) GetCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	items, err := s.repo.GetItems(ctx, userID)
	if err != nil {
		log.Printf("repo get items error: %v \n", err)
		return nil, err
	}
	return items, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, productID, variantID int64) error {
	errRemove := s.repo.RemoveItem(ctx, userID, productID, variantID)
	if errRemove != nil {
		log.Printf("repo remove item error: %v \n", errRemove)
		return errRemove
	}

	s.broker.Publish(events.SignalCartChanged, userID)
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	errClear := s.repo.Clear(ctx, userID)
	if errClear != nil {
		log.Printf("repo clear cart error: %v \n", errClear)
		return errClear
	}

	s.broker.Publish(events.SignalCartChanged, userID)
	return nil
}
