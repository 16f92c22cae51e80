package components

import (
	"strings"
	"testing"

	"github.com/PizzaHomicide/sedai/internal/aggregate"
	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func subject(name, nameCN, date string, rate int) domain.CollectionRecord {
	return domain.CollectionRecord{Rate: rate, Subject: domain.Subject{Name: name, NameCN: nameCN, Date: date}}
}

func TestGridRendersEveryYear(t *testing.T) {
	result := aggregate.Group([]domain.CollectionRecord{
		subject("Suzumiya Haruhi", "凉宫春日的忧郁", "2006-04-03", 9),
	}, 2006, 2008)

	out := Grid(result, GridOptions{Theme: theme.Get(theme.DefaultKey), Width: 80})

	assert.Contains(t, out, "2006")
	assert.Contains(t, out, "2007")
	assert.Contains(t, out, "2008")
	assert.Contains(t, out, "凉宫春日")
	assert.Equal(t, 2, strings.Count(out, aggregate.EmptyYearText))
}

func TestGridRowWraps(t *testing.T) {
	var subjects []domain.RatedSubject
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		subjects = append(subjects, domain.RatedSubject{Subject: domain.Subject{Name: name}})
	}

	// Room for two 10 wide cells per line next to the year label
	row := GridRow(domain.YearBucket{Year: "2010", Subjects: subjects}, GridOptions{
		Theme:     theme.Get("miku"),
		Width:     30,
		CellWidth: 10,
	})
	assert.Equal(t, 3, lipgloss.Height(row))
}

func TestMatchesTitle(t *testing.T) {
	s := domain.Subject{Name: "Neon Genesis Evangelion", NameCN: "新世纪福音战士"}

	assert.True(t, MatchesTitle("eva", s))
	assert.True(t, MatchesTitle("NGE", s))
	assert.True(t, MatchesTitle("福音", s))
	assert.False(t, MatchesTitle("haruhi", s))
}

func TestCountMatches(t *testing.T) {
	result := aggregate.Group([]domain.CollectionRecord{
		subject("Bocchi the Rock!", "孤独摇滚！", "2022-10-09", 10),
		subject("Lycoris Recoil", "莉可丽丝", "2022-07-02", 8),
		subject("Frieren", "葬送的芙莉莲", "2023-09-29", 9),
	}, 2022, 2024)

	assert.Equal(t, 1, CountMatches(result, "bocchi"))
	assert.Equal(t, 2, CountMatches(result, "co"))
	assert.Equal(t, 0, CountMatches(result, ""))
	assert.Equal(t, 0, CountMatches(nil, "bocchi"))
}

func TestChart(t *testing.T) {
	points := []domain.ChartPoint{{Year: "2022", Count: 10}, {Year: "2023", Count: 5}, {Year: "2024", Count: 0}}
	out := Chart(points, theme.Get(theme.DefaultKey), 40)

	lines := strings.Split(out, "\n")
	assert.Equal(t, ChartTitle, lines[0])
	assert.Len(t, lines, 5)
	assert.Equal(t, 2*strings.Count(lines[3], "█"), strings.Count(lines[2], "█"))
	assert.NotContains(t, lines[4], "█")
	assert.True(t, strings.HasSuffix(lines[4], " 0"))
}

func TestProfileHeader(t *testing.T) {
	profile := &domain.UserProfile{ID: 605976, Username: "sai"}
	out := ProfileHeader(profile, "共看过 3 部番剧 (2006 - 2024)", theme.Get("eva"), 80)

	assert.Contains(t, out, "sai")
	assert.Contains(t, out, "ID: 605976")
	assert.Contains(t, out, "共看过 3 部番剧")
	assert.Empty(t, ProfileHeader(nil, "", theme.Get("eva"), 80))
}

func TestKeyBindingsBarDropsHintsThatDoNotFit(t *testing.T) {
	bindings := []KeyBinding{{Key: "u", Desc: "User"}, {Key: "e", Desc: "Export"}, {Key: "a", Desc: "AI critic"}}

	wide := KeyBindingsBar(80, bindings)
	assert.Contains(t, wide, "AI critic")

	narrow := KeyBindingsBar(20, bindings)
	assert.Contains(t, narrow, "u: User")
	assert.Contains(t, narrow, "e: Export")
	assert.NotContains(t, narrow, "AI critic")
}
