package domain

// SubjectType is the Bangumi catalogue category of a subject
type SubjectType int

const (
	_ SubjectType = iota
	SubjectTypeBook
	SubjectTypeAnime
	SubjectTypeMusic
	SubjectTypeGame
	_
	SubjectTypeReal
)

// CollectionType is the status a user has given a subject in their collection
type CollectionType int

const (
	_ CollectionType = iota
	CollectionWish
	CollectionWatched
	CollectionDoing
	CollectionOnHold
	CollectionDropped
)

// Subject is a catalogued anime title
type Subject struct {
	ID     int
	Name   string
	NameCN string
	// Air date, e.g. "2006-04-03".  Only the year is significant.
	Date   string
	Images SubjectImages
	Score  float64
}

// SubjectImages holds the image URIs Bangumi provides for a subject
type SubjectImages struct {
	Small  string
	Grid   string
	Large  string
	Medium string
	Common string
}

// DisplayName returns the localised name when there is one, else the canonical name
func (s Subject) DisplayName() string {
	if s.NameCN != "" {
		return s.NameCN
	}
	return s.Name
}

// CoverURL returns the best image for a small cover preview
func (s Subject) CoverURL() string {
	switch {
	case s.Images.Common != "":
		return s.Images.Common
	case s.Images.Medium != "":
		return s.Images.Medium
	default:
		return s.Images.Small
	}
}

// CollectionRecord pairs a subject with the user's rating and collection status
type CollectionRecord struct {
	SubjectID   int
	SubjectType SubjectType
	// Personal rating 0-10.  0 means unrated.
	Rate    int
	Type    CollectionType
	Subject Subject
}

// RatedSubject is a subject annotated with the user's rating for it
type RatedSubject struct {
	Subject
	UserRate int
}

// Tier returns the colour tier the user's rating falls into
func (r RatedSubject) Tier() RatingTier {
	return TierForRating(r.UserRate)
}

// YearBucket is every rated subject that aired in a given year, in collection order
type YearBucket struct {
	Year     string
	Subjects []RatedSubject
}

// ChartPoint is one bar of the per-year watch count chart
type ChartPoint struct {
	Year  string
	Count int
}
