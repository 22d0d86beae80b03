// internal/catalog/pricing.go
package catalog

import "math"

// OriginalPrice derives the pre-discount price shown beside the selling
// price. A discount outside (0, 100) leaves the price unchanged.
func OriginalPrice(price, discount float64) float64 {
	if discount <= 0 || discount >= 100 {
		return price
	}
	return math.Round(price / (1 - discount/100))
}

// DiscountFromPrices recovers the discount percent from a price pair.
func DiscountFromPrices(price, originalPrice float64) float64 {
	if originalPrice <= 0 || price >= originalPrice {
		return 0
	}
	return (1 - price/originalPrice) * 100
}

// ValidDiscount reports whether d is a usable discount percent.
func ValidDiscount(d float64) bool {
	return d >= 0 && d <= 100 && !math.IsNaN(d)
}

// MainImage picks the first gallery image, or the last when the first is
// empty.
func MainImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	if images[0] != "" {
		return images[0]
	}
	return images[len(images)-1]
}
