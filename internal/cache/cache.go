package cache

import (
	"context"
	"errors"

	"github.com/gradeshop/catalog-service/internal/domain"
)

// Snapshot is everything a product view needs to build a variant catalog,
// cached as one unit so one fetch serves the whole resolution flow.
type Snapshot struct {
	Product  domain.Product   `json:"product"`
	Variants []domain.Variant `json:"variants"`
	Grades   []domain.Grade   `json:"grades"`
}

type CatalogCache interface {
	Get(ctx context.Context, productID int64) (*Snapshot, error)
	Set(ctx context.Context, productID int64, snap *Snapshot) error
	Delete(ctx context.Context, productID int64) error
}

var ErrCacheMiss = errors.New("cache miss")
