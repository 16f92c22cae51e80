// Package export renders a grid as a standalone HTML page and captures it as a PNG image.
package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/PizzaHomicide/sedai/internal/aggregate"
	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/theme"
)

// pageWidth is the CSS width of the exported page in pixels
const pageWidth = 1400

//go:embed grid.html.tmpl
var gridTemplateSource string

var gridTemplate = template.Must(template.New("grid").Parse(gridTemplateSource))

// View is everything needed to draw one user's grid
type View struct {
	UserID  string
	Profile *domain.UserProfile
	Result  *aggregate.Result
}

// Options controls what goes into an exported image
type Options struct {
	IncludeProfile bool
	IncludeChart   bool
	Theme          theme.Theme
	// Scale is the device pixel ratio of the screenshot
	Scale float64
}

type pageData struct {
	Title     string
	Width     int
	Theme     theme.Theme
	Profile   *domain.UserProfile
	Summary   string
	EmptyText string
	Rows      []rowData
	Chart     []barData
}

type rowData struct {
	Year  string
	Cells []cellData
}

type cellData struct {
	Name       string
	Tooltip    string
	Background string
	Foreground string
}

type barData struct {
	Year    string
	Count   int
	Percent int
}

// RenderHTML renders the exportable part of a grid.  The avatar is never part of the page, the profile block and the
// chart are included according to opts.  The chart is also left out when there is nothing to chart.
func RenderHTML(view View, opts Options) ([]byte, error) {
	if view.Result == nil {
		return nil, fmt.Errorf("nothing to render for user %q", view.UserID)
	}

	data := pageData{
		Title:     "Anime Sedai - " + view.UserID,
		Width:     pageWidth,
		Theme:     opts.Theme,
		Summary:   view.Result.SummaryLine(),
		EmptyText: aggregate.EmptyYearText,
	}
	if opts.IncludeProfile && view.Profile != nil {
		data.Profile = view.Profile
	}

	for _, bucket := range view.Result.Buckets {
		row := rowData{Year: bucket.Year}
		for _, s := range bucket.Subjects {
			colors := opts.Theme.CellColors(s.Tier())
			row.Cells = append(row.Cells, cellData{
				Name:       s.DisplayName(),
				Tooltip:    tooltip(s),
				Background: colors.Background,
				Foreground: colors.Foreground,
			})
		}
		data.Rows = append(data.Rows, row)
	}

	if opts.IncludeChart && view.Result.Total > 0 {
		data.Chart = chartBars(view.Result.Chart, view.Result.MaxCount())
	}

	var buf bytes.Buffer
	if err := gridTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render grid page: %w", err)
	}
	return buf.Bytes(), nil
}

func tooltip(s domain.RatedSubject) string {
	rate := "-"
	if s.UserRate > 0 {
		rate = strconv.Itoa(s.UserRate)
	}
	return fmt.Sprintf("%s (评分: %s)", s.DisplayName(), rate)
}

func chartBars(points []domain.ChartPoint, maxCount int) []barData {
	bars := make([]barData, len(points))
	for i, p := range points {
		percent := 0
		if maxCount > 0 {
			percent = p.Count * 100 / maxCount
		}
		bars[i] = barData{Year: p.Year, Count: p.Count, Percent: percent}
	}
	return bars
}
