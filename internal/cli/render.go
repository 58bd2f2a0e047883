package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/gophsocial/internal/models"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorError  = lipgloss.Color("#E74C3C")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	okStyle     = lipgloss.NewStyle().Foreground(colorAccent)
)

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

func renderEmpty(title string) string {
	return titleStyle.Render(title) + "\n" + mutedStyle.Render("(none)")
}

func renderProfile(p models.Profile) string {
	bio := p.Bio
	if bio == "" {
		bio = "-"
	}
	rows := [][]string{
		{"Name", p.Name},
		{"Handle", "@" + p.Handle},
		{"Email", p.Email},
		{"Bio", bio},
		{"Followers", strconv.FormatInt(p.FollowersCount, 10)},
		{"Following", strconv.FormatInt(p.FollowingCount, 10)},
	}
	return titleStyle.Render("Profile") + "\n" + renderTable([]string{"Field", "Value"}, rows)
}

func renderHandles(title string, handles []string) string {
	if len(handles) == 0 {
		return renderEmpty(title)
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, h := range handles {
		b.WriteString("\n  @" + h)
	}
	return b.String()
}

func renderConnections(c models.Connections) string {
	return renderHandles("Followers", c.Followers) + "\n\n" + renderHandles("Following", c.Following)
}

func renderRecommendations(recs []models.Recommendation) string {
	const title = "People you may know"
	if len(recs) == 0 {
		return renderEmpty(title)
	}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{"@" + r.Handle, strconv.FormatInt(r.CommonCount, 10)})
	}
	return titleStyle.Render(title) + "\n" + renderTable([]string{"Handle", "Followed by"}, rows)
}

func renderSearch(hits []models.SearchHit) string {
	const title = "Search results"
	if len(hits) == 0 {
		return renderEmpty(title)
	}
	rows := make([][]string, 0, len(hits))
	for _, h := range hits {
		rows = append(rows, []string{"@" + h.Handle, h.Name, strconv.FormatInt(h.FollowersCount, 10)})
	}
	return titleStyle.Render(title) + "\n" + renderTable([]string{"Handle", "Name", "Followers"}, rows)
}

func renderPopular(users []models.PopularUser) string {
	const title = "Popular users"
	if len(users) == 0 {
		return renderEmpty(title)
	}
	rows := make([][]string, 0, len(users))
	for i, u := range users {
		rows = append(rows, []string{strconv.Itoa(i + 1), "@" + u.Handle, u.Name, strconv.FormatInt(u.LiveFollowers, 10)})
	}
	return titleStyle.Render(title) + "\n" + renderTable([]string{"#", "Handle", "Name", "Followers"}, rows)
}
