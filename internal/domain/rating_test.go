package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForRating(t *testing.T) {
	tests := []struct {
		rate int
		want RatingTier
	}{
		{0, TierNone},
		{1, TierNone},
		{5, TierNone},
		{6, TierLight},
		{8, TierLight},
		{9, TierStrong},
		{10, TierStrong},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForRating(tt.rate), "rate %d", tt.rate)
	}
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 0, ClampRating(-3))
	assert.Equal(t, 7, ClampRating(7))
	assert.Equal(t, MaxRating, ClampRating(11))
}

func TestSubjectDisplayName(t *testing.T) {
	assert.Equal(t, "凉宫春日的忧郁", Subject{Name: "涼宮ハルヒの憂鬱", NameCN: "凉宫春日的忧郁"}.DisplayName())
	assert.Equal(t, "ARIA The ANIMATION", Subject{Name: "ARIA The ANIMATION"}.DisplayName())
}

func TestSubjectCoverURL(t *testing.T) {
	s := Subject{Images: SubjectImages{Small: "s", Medium: "m"}}
	assert.Equal(t, "m", s.CoverURL())

	s.Images.Common = "c"
	assert.Equal(t, "c", s.CoverURL())

	assert.Equal(t, "", Subject{}.CoverURL())
}
