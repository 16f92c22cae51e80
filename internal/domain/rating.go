package domain

// MaxRating is the top of Bangumi's personal rating scale
const MaxRating = 10

// RatingTier determines how strongly a grid cell is highlighted
type RatingTier int

const (
	// TierNone is used for unrated titles and ratings of 5 or below
	TierNone RatingTier = iota
	// TierLight is used for ratings 6-8
	TierLight
	// TierStrong is used for ratings 9-10
	TierStrong
)

// TierForRating maps a personal rating onto its highlight tier.  0 is treated as unrated.
func TierForRating(rate int) RatingTier {
	switch {
	case rate >= 9:
		return TierStrong
	case rate >= 6:
		return TierLight
	default:
		return TierNone
	}
}

// ClampRating forces a rating into the [0, MaxRating] range
func ClampRating(rate int) int {
	if rate < 0 {
		return 0
	}
	if rate > MaxRating {
		return MaxRating
	}
	return rate
}
