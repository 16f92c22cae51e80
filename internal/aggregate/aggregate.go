// Package aggregate groups a user's collection into per-year buckets and derives the chart series drawn from them.
package aggregate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/log"
)

// MinStartYear is the earliest year a grid may start at
const MinStartYear = 1980

// EmptyYearText fills a year that has no titles, both in the terminal and in exported images
const EmptyYearText = "本年度无记录"

// Result is the year-bucketed view of a collection plus the statistics derived from it.  A Result is never mutated
// after Group returns it.
type Result struct {
	StartYear int
	EndYear   int
	// Buckets are in ascending year order and contain every year StartYear..EndYear, even when empty, plus any later
	// years a record was found for.
	Buckets []domain.YearBucket
	// Chart has exactly one point per bucket, in the same order
	Chart []domain.ChartPoint
	Total int

	index map[string]int
}

// ClampStartYear forces a configured start year into [MinStartYear, currentYear]
func ClampStartYear(year, currentYear int) int {
	if year < MinStartYear {
		return MinStartYear
	}
	if year > currentYear {
		return currentYear
	}
	return year
}

// Years returns the ascending year keys from the clamped start year through currentYear inclusive
func Years(startYear, currentYear int) []string {
	start := ClampStartYear(startYear, currentYear)
	years := make([]string, 0, currentYear-start+1)
	for y := start; y <= currentYear; y++ {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

// ExtractYear returns the first four characters of an air date such as "2006-04-03", "2006/04/03" or "20060403".
// Dates that are empty or do not start with four digits are reported as not ok.
func ExtractYear(date string) (string, bool) {
	if len(date) < 4 {
		return "", false
	}
	year := date[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return year, true
}

// Group buckets records by the air year of their subject.  Every year from the clamped start year through
// currentYear gets a bucket.  Records for later years grow the bucket set, records for earlier years or with no usable
// air date are dropped.  Record order is preserved within each bucket.
func Group(records []domain.CollectionRecord, startYear, currentYear int) *Result {
	start := ClampStartYear(startYear, currentYear)
	years := Years(start, currentYear)

	r := &Result{
		StartYear: start,
		EndYear:   currentYear,
		Buckets:   make([]domain.YearBucket, len(years)),
		index:     make(map[string]int, len(years)),
	}
	for i, year := range years {
		r.Buckets[i] = domain.YearBucket{Year: year, Subjects: []domain.RatedSubject{}}
		r.index[year] = i
	}

	var skippedNoDate, skippedEarly int
	for _, record := range records {
		year, ok := ExtractYear(record.Subject.Date)
		if !ok {
			skippedNoDate++
			continue
		}

		i, exists := r.index[year]
		if !exists {
			// ExtractYear guarantees this parses
			numeric, _ := strconv.Atoi(year)
			if numeric < start {
				skippedEarly++
				continue
			}
			i = r.insertBucket(year)
		}

		r.Buckets[i].Subjects = append(r.Buckets[i].Subjects, domain.RatedSubject{
			Subject:  record.Subject,
			UserRate: record.Rate,
		})
	}

	r.Chart = make([]domain.ChartPoint, len(r.Buckets))
	for i, bucket := range r.Buckets {
		r.Chart[i] = domain.ChartPoint{Year: bucket.Year, Count: len(bucket.Subjects)}
		r.Total += len(bucket.Subjects)
	}

	log.Debug("Grouped collection by year",
		"records", len(records),
		"total", r.Total,
		"years", len(r.Buckets),
		"skipped_no_date", skippedNoDate,
		"skipped_before_start", skippedEarly)

	return r
}

// insertBucket adds an empty bucket for year, keeping buckets in ascending order, and returns its index
func (r *Result) insertBucket(year string) int {
	// Four digit years order the same lexically and numerically
	pos := sort.Search(len(r.Buckets), func(i int) bool { return r.Buckets[i].Year > year })

	r.Buckets = append(r.Buckets, domain.YearBucket{})
	copy(r.Buckets[pos+1:], r.Buckets[pos:])
	r.Buckets[pos] = domain.YearBucket{Year: year, Subjects: []domain.RatedSubject{}}

	for i := pos; i < len(r.Buckets); i++ {
		r.index[r.Buckets[i].Year] = i
	}
	return pos
}

// Bucket returns the bucket for a year
func (r *Result) Bucket(year string) (domain.YearBucket, bool) {
	i, ok := r.index[year]
	if !ok {
		return domain.YearBucket{}, false
	}
	return r.Buckets[i], true
}

// Years returns the bucket keys in order
func (r *Result) Years() []string {
	years := make([]string, len(r.Buckets))
	for i, b := range r.Buckets {
		years[i] = b.Year
	}
	return years
}

// MaxCount returns the largest single-year count, used to scale chart bars
func (r *Result) MaxCount() int {
	maxCount := 0
	for _, p := range r.Chart {
		maxCount = max(maxCount, p.Count)
	}
	return maxCount
}

// SummaryLine describes the grid in one line, e.g. "共看过 42 部番剧 (2006 - 2024)"
func (r *Result) SummaryLine() string {
	return fmt.Sprintf("共看过 %d 部番剧 (%d - %d)", r.Total, r.StartYear, r.EndYear)
}
