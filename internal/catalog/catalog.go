package catalog

import (
	"errors"
	"strings"

	"github.com/gradeshop/catalog-service/internal/domain"
)

// ErrNoVariants marks a product with an empty variant matrix. The fallback
// display price is undefined for such a product, so this is a data error,
// not a valid zero.
var ErrNoVariants = errors.New("product has no variants")

// Catalog holds the sparse variant matrix for one product, plus the global
// grade list. It is read-only for the duration of one resolution.
type Catalog struct {
	product  domain.Product
	variants []domain.Variant
	grades   []domain.Grade
	sizes    []string
}

func New(product domain.Product, variants []domain.Variant, grades []domain.Grade) *Catalog {
	category := ""
	if len(product.Categories) > 0 {
		category = product.Categories[0].Name
	}
	return &Catalog{
		product:  product,
		variants: variants,
		grades:   grades,
		sizes:    SizeDomain(category),
	}
}

func (c *Catalog) Product() domain.Product { return c.product }

func (c *Catalog) Variants() []domain.Variant { return c.variants }

// Sizes returns the ordered size domain for the product's category.
func (c *Catalog) Sizes() []string { return c.sizes }

// Grades returns the global grade labels in catalog order. Availability
// filtering is a separate question answered by GradeAvailable.
func (c *Catalog) Grades() []string {
	names := make([]string, 0, len(c.grades))
	for _, g := range c.grades {
		names = append(names, g.Name)
	}
	return names
}

// Find returns the unique variant backing an exact (size, grade) pair.
func (c *Catalog) Find(size, grade string) (domain.Variant, bool) {
	for _, v := range c.variants {
		if strings.EqualFold(v.Size, size) && v.GradeName == grade {
			return v, true
		}
	}
	return domain.Variant{}, false
}

// SizeAvailable reports whether some in-stock variant carries the size. When
// the selection already has a grade, only variants of that grade count; the
// size axis itself is ignored so re-evaluation after a toggle stays
// independent per axis.
func (c *Catalog) SizeAvailable(size string, sel Selection) bool {
	for _, v := range c.variants {
		if !strings.EqualFold(v.Size, size) {
			continue
		}
		if sel.Grade != "" && v.GradeName != sel.Grade {
			continue
		}
		if v.Stock > 0 {
			return true
		}
	}
	return false
}

// GradeAvailable is the symmetric predicate for the grade axis.
func (c *Catalog) GradeAvailable(grade string, sel Selection) bool {
	for _, v := range c.variants {
		if v.GradeName != grade {
			continue
		}
		if sel.Size != "" && !strings.EqualFold(v.Size, sel.Size) {
			continue
		}
		if v.Stock > 0 {
			return true
		}
	}
	return false
}

// Resolve maps a complete selection to its unique backing variant. Both axes
// must be chosen; a partial selection or a pair with no backing variant is
// unresolved.
func (c *Catalog) Resolve(sel Selection) (domain.Variant, bool) {
	if !sel.Complete() {
		return domain.Variant{}, false
	}
	return c.Find(sel.Size, sel.Grade)
}

// MinPrice is the cheapest variant price, used as the display price while
// the selection is unresolved.
func (c *Catalog) MinPrice() (int64, error) {
	if len(c.variants) == 0 {
		return 0, ErrNoVariants
	}
	min := c.variants[0].Price
	for _, v := range c.variants[1:] {
		if v.Price < min {
			min = v.Price
		}
	}
	return min, nil
}

// DisplayPrice is the resolved variant's price, or the minimum across the
// matrix while unresolved.
func (c *Catalog) DisplayPrice(sel Selection) (int64, error) {
	if v, ok := c.Resolve(sel); ok {
		return v.Price, nil
	}
	return c.MinPrice()
}
