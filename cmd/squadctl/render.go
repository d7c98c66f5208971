package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kezzyngotho/aura/internal/analytics"
	"github.com/kezzyngotho/aura/internal/classify"
)

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#6B7280")
	danger = lipgloss.Color("#E53935")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle   = lipgloss.NewStyle().Width(16).Foreground(muted)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(accent)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(danger)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func renderTemplates(templates []classify.Template) string {
	var b strings.Builder
	for _, t := range templates {
		lines := []string{
			titleStyle.Render(t.Emoji + " " + t.Name),
			mutedStyle.Render(string(t.Type)),
			t.Description,
			row("Roles", strings.Join(t.Roles, ", ")),
			row("Time", t.TimeEstimate),
			row("Base reward", fmt.Sprintf("%d AURA", t.BaseReward)),
		}
		b.WriteString(cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderResult(r *classify.Result) string {
	lines := []string{
		row("Kind", string(r.Kind)),
	}
	if r.Template != nil {
		lines = append(lines, row("Squad", r.Template.Emoji+" "+r.Template.Name))
	}
	if r.Intent != "" {
		lines = append(lines, row("Intent", r.Intent))
	}
	lines = append(lines, "", r.Message)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}

func renderMetrics(m *analytics.Metrics) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Last %d days", m.Days)),
		row("Total queries", fmt.Sprintf("%d", m.TotalQueries)),
		row("Unique users", fmt.Sprintf("%d", m.UniqueUsers)),
		row("Tokens earned", fmt.Sprintf("%.2f", m.TokensEarned)),
		row("Tokens spent", fmt.Sprintf("%.2f", m.TokensSpent)),
	}

	if len(m.TopCategories) > 0 {
		lines = append(lines, "", titleStyle.Render("Top categories"))
		for i, c := range m.TopCategories {
			lines = append(lines, row(fmt.Sprintf("%d. %s", i+1, c.Category), fmt.Sprintf("%d", c.Count)))
		}
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}
