package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	figure "github.com/common-nighthawk/go-figure"

	"github.com/aristath/moneyball/internal/tui/theme"
	"github.com/aristath/moneyball/internal/views"
)

const (
	barCells      = 30
	teamNameWidth = 22
)

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenLogin:
		body = m.viewLogin()
	case screenHome:
		body = m.viewHome()
	case screenPrediction:
		body = m.viewPrediction()
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

// renderBanner renders the title with figlet's small font.
func renderBanner(text string) string {
	fig := figure.NewFigure(text, "small", false)
	return strings.TrimRight(strings.Join(fig.Slicify(), "\n"), "\n ")
}

func help(bindings ...string) string {
	return lipgloss.NewStyle().Foreground(theme.Default.Muted).Render(strings.Join(bindings, " • "))
}

func errorLine(msg string) string {
	return lipgloss.NewStyle().Foreground(theme.Default.Error).Render(msg)
}

func (m Model) viewLogin() string {
	t := theme.Default
	l := m.login

	banner := theme.GradientText(renderBanner("Moneyball"), t.Primary, t.Accent)
	subtitle := lipgloss.NewStyle().Foreground(t.Muted).Render("AI-Powered Match Predictions")

	active := lipgloss.NewStyle().Foreground(t.Base).Background(t.Primary).Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1)
	loginTab, signupTab := inactive.Render("Login"), inactive.Render("Sign Up")
	if l.Mode == views.ModeSignup {
		signupTab = active.Render("Sign Up")
	} else {
		loginTab = active.Render("Login")
	}

	submit := lipgloss.NewStyle().Foreground(t.Text).Background(t.Primary).Padding(0, 2)
	if l.Pending {
		submit = submit.Background(t.Border)
	}

	lines := []string{
		banner,
		subtitle,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, loginTab, " ", signupTab),
		"",
		m.username.View(),
		m.password.View(),
		"",
	}
	if l.Error != "" {
		lines = append(lines, errorLine(l.Error), "")
	}
	label := l.SubmitLabel()
	if l.Pending {
		label = m.spinner.View() + " " + label
	}
	lines = append(lines,
		submit.Render(label),
		"",
		lipgloss.NewStyle().Foreground(t.Muted).Italic(true).Render(views.DemoHint),
		"",
		help("tab next field", "enter submit", "ctrl+t login/sign up", "ctrl+c quit"),
	)
	return strings.Join(lines, "\n")
}

func (m Model) viewHome() string {
	t := theme.Default
	h := m.home

	title := lipgloss.NewStyle().Bold(true).Foreground(t.Text).Render(h.Greeting())
	subtitle := lipgloss.NewStyle().Foreground(t.Muted).Render(views.HomeSubtitle)
	lines := []string{title, subtitle, ""}

	switch {
	case h.Loading:
		lines = append(lines, m.spinner.View()+" "+views.MsgLoadingMatches)
	case h.Error != "":
		lines = append(lines, errorLine(h.Error))
	default:
		for i, card := range h.Cards() {
			lines = append(lines, m.viewCard(card, i == m.cursor), "")
		}
	}

	lines = append(lines, help("↑/↓ move", "enter predict", "L logout", "q quit"))
	return strings.Join(lines, "\n")
}

func (m Model) viewCard(card views.Card, selected bool) string {
	t := theme.Default

	border := t.Border
	if selected {
		border = t.Accent
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	team := func(name, record string) string {
		n := lipgloss.NewStyle().Bold(true).Foreground(t.Text).Width(teamNameWidth).
			Render(ansi.Truncate(name, teamNameWidth, "…"))
		r := lipgloss.NewStyle().Foreground(t.Muted).Render(record)
		return n + " " + r
	}

	date := lipgloss.NewStyle().Foreground(t.Info).Render(card.Date)
	vs := lipgloss.NewStyle().Foreground(t.Muted).Render("VS")
	return style.Render(strings.Join([]string{
		date,
		team(card.HomeName, card.HomeRecord),
		vs,
		team(card.AwayName, card.AwayRecord),
	}, "\n"))
}

func (m Model) viewPrediction() string {
	t := theme.Default
	p := m.prediction

	if !p.HasMatch() {
		return strings.Join([]string{
			errorLine(views.MsgNoMatch),
			"",
			help("enter go back", "q quit"),
		}, "\n")
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(t.Text).Render(
		fmt.Sprintf("%s  VS  %s", p.Match.HomeTeam.Name, p.Match.AwayTeam.Name))
	kickoff := lipgloss.NewStyle().Foreground(t.Muted).Render(p.Kickoff())
	lines := []string{header, kickoff, ""}

	if p.Result == nil {
		check := "[ ]"
		if p.IncludeAI {
			check = "[x]"
		}
		label := p.TriggerLabel()
		if p.Pending {
			label = m.spinner.View() + " " + label
		}
		lines = append(lines,
			check+" "+views.ToggleLabel,
			"",
			lipgloss.NewStyle().Foreground(t.Text).Background(t.Primary).Padding(0, 2).Render(label),
		)
	}

	if p.Error != "" {
		lines = append(lines, "", errorLine(p.Error))
	}

	if p.Result != nil {
		lines = append(lines, m.viewResult()...)
		lines = append(lines, "", help("n Generate New Prediction", "esc back", "q quit"))
	} else {
		lines = append(lines, "", help("a toggle AI", "enter predict", "esc back", "q quit"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewResult() []string {
	t := theme.Default
	p := m.prediction

	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Render("Match Prediction"), ""}

	colors := []lipgloss.Color{t.Success, t.Warning, t.Error}
	for i, bar := range p.Bars() {
		lines = append(lines,
			fmt.Sprintf("%-*s %s", teamNameWidth+4, bar.Label, bar.Value),
			renderBar(bar.Width, colors[i%len(colors)]),
		)
	}

	label, class := p.Confidence()
	badge := lipgloss.NewStyle().Bold(true).Foreground(t.Base).
		Background(t.ConfidenceColor(class)).Padding(0, 1).Render(label)

	lines = append(lines,
		"",
		"Expected Score  "+lipgloss.NewStyle().Bold(true).Render(p.ExpectedScore()),
		"Confidence      "+badge,
	)

	if analysis := p.Analysis(); analysis != "" {
		width := m.width - 6
		if width < 20 {
			width = 60
		}
		lines = append(lines,
			"",
			lipgloss.NewStyle().Bold(true).Foreground(t.Info).Render("AI Analysis"),
			lipgloss.NewStyle().Width(width).Render(analysis),
		)
	}
	return lines
}

// renderBar draws a bar of barCells cells filled to widthPct percent.
func renderBar(widthPct float64, color lipgloss.Color) string {
	filled := int(math.Round(widthPct / 100 * barCells))
	if filled > barCells {
		filled = barCells
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Default.Border).Render(strings.Repeat("░", barCells-filled))
}
