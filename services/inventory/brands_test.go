package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeetsSpeedIndex(t *testing.T) {
	tests := []struct {
		name     string
		have     string
		required string
		want     bool
	}{
		{"no requirement", "T", "", true},
		{"no requirement and no symbol", "", "", true},
		{"exact match", "H", "H", true},
		{"higher rating passes", "V", "H", true},
		{"ZR is the top rating", "ZR", "Y", true},
		{"lower rating fails", "T", "H", false},
		{"missing symbol fails a requirement", "", "T", false},
		{"unknown symbol fails", "X9", "T", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MeetsSpeedIndex(tt.have, tt.required))
		})
	}
}

func TestMeetsLoadIndex(t *testing.T) {
	assert.True(t, MeetsLoadIndex("91", ""))
	assert.True(t, MeetsLoadIndex("91", "91"))
	assert.True(t, MeetsLoadIndex("94", "91"))
	assert.False(t, MeetsLoadIndex("88", "91"))
	assert.False(t, MeetsLoadIndex("", "91"))
	assert.False(t, MeetsLoadIndex("abc", "91"))
}

func TestBrandTiers(t *testing.T) {
	assert.True(t, IsPremiumBrand("Michelin"))
	assert.True(t, IsPremiumBrand("Continental"))
	assert.False(t, IsPremiumBrand("Hankook"))

	assert.True(t, IsQualityBrand("Hankook"))
	assert.True(t, IsQualityBrand("Nokian"))
	assert.False(t, IsQualityBrand("Michelin"))
	assert.False(t, IsQualityBrand("NoName"))
}

func TestBrandTiersIgnoreCasingAndSuffixes(t *testing.T) {
	assert.True(t, IsPremiumBrand("MICHELIN"))
	assert.True(t, IsPremiumBrand("Michelin Motorsport"))
	assert.True(t, IsPremiumBrand("goodyear"))

	assert.True(t, IsQualityBrand("HANKOOK"))
	assert.True(t, IsQualityBrand("Nokian Tyres"))
	assert.False(t, IsPremiumBrand("Michel"))
}
