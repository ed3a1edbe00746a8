package catalog

import (
	"strconv"
	"strings"
)

// Fixed size domains. Which one a product uses depends on its first
// category label.
var (
	apparelSizes  = []string{"S", "M", "L", "XL", "XXL"}
	footwearSizes = buildFootwearSizes()
)

func buildFootwearSizes() []string {
	sizes := make([]string, 0, 12)
	for n := 36; n <= 47; n++ {
		sizes = append(sizes, strconv.Itoa(n))
	}
	return sizes
}

var apparelMarkers = []string{"apparel", "baju", "shirt"}

// SizeDomain classifies a category label into one of the two fixed size
// domains by case-insensitive substring match. Unmatched labels fall back to
// the footwear domain, matching how the storefront has always behaved.
func SizeDomain(categoryName string) []string {
	name := strings.ToLower(categoryName)
	for _, marker := range apparelMarkers {
		if strings.Contains(name, marker) {
			return apparelSizes
		}
	}
	return footwearSizes
}
