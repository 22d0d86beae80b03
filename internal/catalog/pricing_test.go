package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"twenty percent", 50000, 20, 62500},
		{"no discount", 1000, 0, 1000},
		{"rounds to unit", 999, 33, 1491},
		{"negative discount ignored", 1000, -5, 1000},
		{"full discount keeps price", 1000, 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OriginalPrice(tt.price, tt.discount))
		})
	}
}

func TestDiscountRoundTrip(t *testing.T) {
	prices := []float64{1, 99, 1000, 50000, 1234567}
	for _, price := range prices {
		for d := 0.0; d < 100; d += 7.5 {
			original := OriginalPrice(price, d)
			recovered := DiscountFromPrices(price, original)
			if d == 0 {
				assert.Equal(t, 0.0, recovered)
				continue
			}
			// Rounding to a whole unit moves originalPrice by at most 0.5.
			tolerance := 0.5*(100-d)/original + 1e-9
			assert.InDelta(t, d, recovered, tolerance, "price=%v discount=%v", price, d)
		}
	}
}

func TestValidDiscount(t *testing.T) {
	assert.True(t, ValidDiscount(0))
	assert.True(t, ValidDiscount(100))
	assert.False(t, ValidDiscount(-1))
	assert.False(t, ValidDiscount(100.5))
}

func TestMainImage(t *testing.T) {
	assert.Equal(t, "a", MainImage([]string{"a", "b"}))
	assert.Equal(t, "b", MainImage([]string{"", "b"}))
	assert.Equal(t, "", MainImage(nil))
}
