package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/twitter/fleetsim/scheduler/domain"
	"github.com/twitter/fleetsim/scheduler/server"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(22)
	valueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	noteStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// RenderSummary renders the four run metrics with two decimals in a box.
func RenderSummary(policy domain.Policy, m server.Metrics) string {
	rows := []string{
		headerStyle.Render(fmt.Sprintf("Run summary (%s)", policy)),
		"",
		row("Avg response time", fmt.Sprintf("%.2f s", m.AvgResponseTime.Seconds())),
		row("Avg CPU utilization", fmt.Sprintf("%.2f %%", m.CPUUtilization)),
		row("Max wait time", fmt.Sprintf("%.2f s", m.MaxWaitTime.Seconds())),
		row("Throughput", fmt.Sprintf("%.2f tasks/s", m.Throughput)),
		"",
		noteStyle.Render(fmt.Sprintf("%d/%d tasks completed in %.2f s", m.Completed, m.Total, m.Elapsed.Seconds())),
	}
	if m.WaitSource == server.WaitDefault {
		rows = append(rows, noteStyle.Render("max wait time is a placeholder, no task was admitted"))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}
