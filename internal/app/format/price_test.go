package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Rp 150.000", FormatPrice(150000))
	assert.Equal(t, "Rp 0", FormatPrice(0))
	assert.Equal(t, "Rp 999", FormatPrice(999))
	assert.Equal(t, "Rp 1.250.000", FormatPrice(1250000))
	assert.Equal(t, "Rp 1.000", FormatPrice(999.5))
	assert.Equal(t, "Rp 10", FormatPrice(10.49))
}

func TestDiscountedPrice(t *testing.T) {
	assert.Equal(t, 100000.0, DiscountedPrice(100000, nil))

	d := 25.0
	assert.Equal(t, 75000.0, DiscountedPrice(100000, &d))

	over := 150.0
	assert.Equal(t, 0.0, DiscountedPrice(100000, &over))
}
