package domain

import "time"

type Product struct {
	ID          int64
	Name        string
	Description string
	BrandID     int64
	BrandName   string
	Categories  []Category
	CreatedAt   time.Time
}

type Category struct {
	ID   int64
	Name string
}

// Grade is a global quality tier label, shared across all products.
type Grade struct {
	ID   int64
	Name string
}

// Variant is a priced, stocked SKU for one (size, grade) cell of a product.
// At most one variant exists per (product, size, grade).
type Variant struct {
	ID        int64
	ProductID int64
	Size      string
	GradeID   int64
	GradeName string
	Stock     int
	Price     int64
}

// SizeChart points at a display image for a (brand, category) pair.
// Zero-or-one per key; absence is a normal state.
type SizeChart struct {
	BrandID      int64
	CategoryName string
	ImageURL     string
}
