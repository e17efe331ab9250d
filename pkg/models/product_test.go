package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	discount := 80.0

	p := Product{Price: 100}
	assert.Equal(t, 100.0, p.EffectivePrice())

	p.DiscountPrice = &discount
	assert.Equal(t, 80.0, p.EffectivePrice())

	line := CartLine{Price: 50}
	assert.Equal(t, 50.0, line.EffectivePrice())

	line.DiscountPrice = &discount
	assert.Equal(t, 80.0, line.EffectivePrice())
}

func TestDecodeImages(t *testing.T) {
	assert.Empty(t, DecodeImages(""))
	assert.Empty(t, DecodeImages("not json"))
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, DecodeImages(`["a.jpg","b.jpg"]`))
}
