package repository

import (
	"context"
	"errors"

	"github.com/gradeshop/catalog-service/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("item not found in cart")
	ErrChartNotFound    = errors.New("size chart not found")
)

// CatalogRepository reads the admin-owned catalog tables. Everything here is
// read-only from the engine's point of view.
type CatalogRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetVariants(ctx context.Context, productID int64) ([]domain.Variant, error)
	GetGrades(ctx context.Context) ([]domain.Grade, error)
	GetSizeChart(ctx context.Context, brandID int64, categoryName string) (*domain.SizeChart, error)
	Close() error
}

// CartRepository defines the interface for cart data operations.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	// AddItem merges requestedQty into the row for (user, product, variant),
	// clamping the result to maxStock, as one atomic store operation.
	AddItem(ctx context.Context, userID string, productID, variantID int64, requestedQty, maxStock int) (*domain.CartItem, error)
	GetItems(ctx context.Context, userID string) ([]domain.CartItem, error)
	RemoveItem(ctx context.Context, userID string, productID, variantID int64) error
	Clear(ctx context.Context, userID string) error
}

// WishlistRepository flips and lists (user, product) memberships.
type WishlistRepository interface {
	// Toggle inverts membership and reports true when the call added it.
	Toggle(ctx context.Context, userID string, productID int64) (bool, error)
	List(ctx context.Context, userID string) ([]domain.WishlistItem, error)
}
