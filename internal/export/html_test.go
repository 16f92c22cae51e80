package export

import (
	"strings"
	"testing"

	"github.com/PizzaHomicide/sedai/internal/aggregate"
	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testView(records ...domain.CollectionRecord) View {
	return View{
		UserID: "605976",
		Profile: &domain.UserProfile{
			ID:       605976,
			Username: "sai",
			Nickname: "赛",
			Avatar:   domain.Avatar{Large: "https://lain.bgm.tv/pic/user/l/avatar.jpg"},
		},
		Result: aggregate.Group(records, 2022, 2024),
	}
}

func rec(name, date string, rate int) domain.CollectionRecord {
	return domain.CollectionRecord{
		Rate: rate,
		Subject: domain.Subject{
			Name:   name,
			Date:   date,
			Images: domain.SubjectImages{Common: "https://lain.bgm.tv/pic/cover/c/" + name + ".jpg"},
		},
	}
}

func render(t *testing.T, view View, opts Options) string {
	t.Helper()
	out, err := RenderHTML(view, opts)
	require.NoError(t, err)
	return string(out)
}

func TestRenderHTMLProfileBlock(t *testing.T) {
	view := testView(rec("Bocchi", "2022-10-09", 10))
	opts := Options{IncludeProfile: true, IncludeChart: true, Theme: theme.Get("sakura")}

	page := render(t, view, opts)
	assert.Contains(t, page, `id="user-profile-nickname"`)
	assert.Contains(t, page, "赛")
	assert.Contains(t, page, "ID: 605976")
	assert.Contains(t, page, "共看过 1 部番剧 (2022 - 2024)")
	assert.NotContains(t, page, "avatar.jpg")
	assert.NotContains(t, page, "<img")

	opts.IncludeProfile = false
	page = render(t, view, opts)
	assert.NotContains(t, page, `id="user-profile-container"`)
	assert.NotContains(t, page, "赛")
}

func TestRenderHTMLChartToggle(t *testing.T) {
	view := testView(rec("Bocchi", "2022-10-09", 10), rec("Frieren", "2023-09-29", 8))
	opts := Options{IncludeChart: true, Theme: theme.Get(theme.DefaultKey)}

	page := render(t, view, opts)
	assert.Contains(t, page, "观看历史统计")
	assert.Equal(t, 3, strings.Count(page, `class="bar"`))

	opts.IncludeChart = false
	assert.NotContains(t, render(t, view, opts), "观看历史统计")
}

func TestRenderHTMLNoChartWhenEmpty(t *testing.T) {
	view := testView()
	page := render(t, view, Options{IncludeChart: true, Theme: theme.Get(theme.DefaultKey)})

	assert.NotContains(t, page, "观看历史统计")
	assert.Equal(t, 3, strings.Count(page, aggregate.EmptyYearText))
}

func TestRenderHTMLCellColours(t *testing.T) {
	th := theme.Get("miku")
	view := testView(
		rec("Strong", "2022-01-01", 9),
		rec("Light", "2022-01-02", 6),
		rec("Plain", "2022-01-03", 5),
		rec("Unrated", "2022-01-04", 0),
	)
	page := render(t, view, Options{Theme: th})

	assert.Contains(t, page, `style="background-color: #39C5BB; color: #FFFFFF" title="Strong (评分: 9)">Strong<`)
	assert.Contains(t, page, `style="background-color: #E0F2F1; color: #1F2937" title="Light (评分: 6)">Light<`)
	assert.Contains(t, page, `style="background-color: #FFFFFF; color: #1F2937" title="Plain (评分: 5)">Plain<`)
	assert.Contains(t, page, `title="Unrated (评分: -)">Unrated<`)
	assert.NotContains(t, page, "lain.bgm.tv", "cover images are not part of the export")
}

func TestRenderHTMLEscapesTitles(t *testing.T) {
	view := testView(rec("<script>alert(1)</script>", "2023-01-01", 0))
	page := render(t, view, Options{Theme: theme.Get(theme.DefaultKey)})

	assert.NotContains(t, page, "<script>alert(1)</script>")
	assert.Contains(t, page, "&lt;script&gt;")
}

func TestRenderHTMLRequiresResult(t *testing.T) {
	_, err := RenderHTML(View{UserID: "1"}, Options{})
	assert.Error(t, err)
}

func TestChartBars(t *testing.T) {
	bars := chartBars([]domain.ChartPoint{{Year: "2022", Count: 4}, {Year: "2023", Count: 1}, {Year: "2024"}}, 4)
	assert.Equal(t, []barData{
		{Year: "2022", Count: 4, Percent: 100},
		{Year: "2023", Count: 1, Percent: 25},
		{Year: "2024", Count: 0, Percent: 0},
	}, bars)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "anime-sedai-605976-miku.png", FileName("605976", "miku"))
	assert.Equal(t, "anime-sedai-a_b-dark.png", FileName("a/b", "dark"))
}
