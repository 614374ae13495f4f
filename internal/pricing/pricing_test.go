package pricing_test

import (
	"testing"

	"berserkfit/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	// Test the canonical storefront scenario: 100 at 25% off.
	assert.Equal(t, "75.00", pricing.Display(100, 25))
	assert.Equal(t, "$75.00", pricing.DisplayUSD(100, 25))

	// No discount leaves the base price, still two places.
	assert.Equal(t, "100.00", pricing.Display(100, 0))
	assert.Equal(t, "19.99", pricing.Display(19.99, 0))

	// Full discount bottoms out at zero.
	assert.Equal(t, "0.00", pricing.Display(49.90, 100))

	// Float-hostile combination stays exact to two places.
	assert.Equal(t, "9.99", pricing.Display(99.90, 90))

	// Free products are free regardless of discount.
	assert.Equal(t, "0.00", pricing.Display(0, 50))
}

func TestDisplayClampsDiscount(t *testing.T) {
	// Out-of-range discounts never produce a negative or inflated price.
	assert.Equal(t, "0.00", pricing.Display(100, 150))
	assert.Equal(t, "100.00", pricing.Display(100, -10))
}

func TestOriginalUSD(t *testing.T) {
	assert.Equal(t, "$100", pricing.OriginalUSD(100))
	assert.Equal(t, "$19.99", pricing.OriginalUSD(19.99))
}
