package service

import (
	"context"
	"sync"

	"github.com/gradeshop/catalog-service/internal/cache"
	"github.com/gradeshop/catalog-service/internal/domain"
	"github.com/gradeshop/catalog-service/internal/repository"
)

type mockCatalogRepo struct {
	m        sync.RWMutex
	product  *domain.Product
	variants []domain.Variant
	grades   []domain.Grade
	chart    *domain.SizeChart
	err      error
	chartErr error
	calls    int
}

func (m *mockCatalogRepo) GetProduct(context.Context, int64) (*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.product == nil {
		return nil, repository.ErrProductNotFound
	}
	return m.product, nil
}

func (m *mockCatalogRepo) GetVariants(context.Context, int64) ([]domain.Variant, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.variants, nil
}

func (m *mockCatalogRepo) GetGrades(context.Context) ([]domain.Grade, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.grades, nil
}

func (m *mockCatalogRepo) GetSizeChart(context.Context, int64, string) (*domain.SizeChart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.chartErr != nil {
		return nil, m.chartErr
	}
	if m.chart == nil {
		return nil, repository.ErrChartNotFound
	}
	return m.chart, nil
}

func (m *mockCatalogRepo) Close() error { return nil }

func (m *mockCatalogRepo) callCount() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.calls
}

// mockCartRepo mirrors the store's merge-and-clamp contract in memory.
type mockCartRepo struct {
	m     sync.RWMutex
	items []domain.CartItem
	err   error
}

func (m *mockCartRepo) AddItem(_ context.Context, userID string, productID, variantID int64, requestedQty, maxStock int) (*domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.items {
		it := &m.items[i]
		if it.UserID == userID && it.ProductID == productID && it.VariantID == variantID {
			it.Quantity += requestedQty
			if it.Quantity > maxStock {
				it.Quantity = maxStock
			}
			copied := *it
			return &copied, nil
		}
	}
	qty := requestedQty
	if qty > maxStock {
		qty = maxStock
	}
	item := domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  qty,
	}
	m.items = append(m.items, item)
	return &item, nil
}

func (m *mockCartRepo) GetItems(_ context.Context, userID string) ([]domain.CartItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.CartItem
	for _, it := range m.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockCartRepo) RemoveItem(_ context.Context, userID string, productID, variantID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, it := range m.items {
		if it.UserID == userID && it.ProductID == productID && it.VariantID == variantID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrCartItemNotFound
}

func (m *mockCartRepo) Clear(_ context.Context, userID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	kept := m.items[:0]
	for _, it := range m.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return nil
}

type mockWishlistRepo struct {
	m       sync.RWMutex
	members map[int64]bool
	err     error
}

func (m *mockWishlistRepo) Toggle(_ context.Context, _ string, productID int64) (bool, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.members == nil {
		m.members = make(map[int64]bool)
	}
	if m.members[productID] {
		delete(m.members, productID)
		return false, nil
	}
	m.members[productID] = true
	return true, nil
}

func (m *mockWishlistRepo) List(_ context.Context, userID string) ([]domain.WishlistItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.WishlistItem
	for id := range m.members {
		out = append(out, domain.WishlistItem{UserID: userID, ProductID: id})
	}
	return out, nil
}

type mockCache struct {
	m    sync.RWMutex
	snap *cache.Snapshot
	err  error
}

func (m *mockCache) Get(context.Context, int64) (*cache.Snapshot, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.snap == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.snap, nil
}

func (m *mockCache) Set(_ context.Context, _ int64, snap *cache.Snapshot) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.snap = snap
	return m.err
}

func (m *mockCache) Delete(context.Context, int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.snap = nil
	return m.err
}

func (m *mockCache) getSnapshot() *cache.Snapshot {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.snap
}
