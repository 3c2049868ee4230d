package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case authMsg:
		if m.login == nil || msg.view != m.login {
			return m, nil
		}
		nav := m.login.Complete(m.ctx, msg.resp, msg.err)
		if nav.Changed() {
			return m, m.navigate(nav)
		}
		m.password.Reset()
		return m, nil

	case matchesMsg:
		if m.home != nil && msg.view == m.home {
			m.home.Complete(msg.matches, msg.err)
		}
		return m, nil

	case predictionMsg:
		if m.prediction != nil && msg.view == m.prediction {
			_ = m.prediction.Complete(msg.prediction, msg.err) // logged by the view
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenHome:
			return m.updateHome(msg)
		case screenPrediction:
			return m.updatePrediction(msg)
		}
	}

	if m.screen == screenLogin {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.ToggleMode):
		m.login.ToggleMode()
		return m, nil

	case key.Matches(msg, keys.NextField):
		if m.username.Focused() {
			m.username.Blur()
			return m, m.password.Focus()
		}
		m.password.Blur()
		return m, m.username.Focus()

	case key.Matches(msg, keys.Select):
		if m.username.Focused() && m.password.Value() == "" {
			m.username.Blur()
			return m, m.password.Focus()
		}
		m.login.Username = m.username.Value()
		m.login.Password = m.password.Value()
		call, err := m.login.Begin()
		if err != nil {
			return m, nil
		}
		return m, fetchAuth(m.ctx, m.login, call)
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.login != nil && m.login.Pending {
		return m, nil
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Logout):
		return m, m.navigate(m.home.Logout(m.ctx))

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.home.Matches)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Select):
		if nav, ok := m.home.Select(m.cursor); ok {
			return m, m.navigate(nav)
		}
	}
	return m, nil
}

func (m Model) updatePrediction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.prediction

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		return m, m.navigate(p.Back())

	case !p.HasMatch():
		if key.Matches(msg, keys.Select) {
			return m, m.navigate(p.Back())
		}

	case key.Matches(msg, keys.ToggleAI):
		if p.Result == nil && !p.Pending {
			p.ToggleAI()
		}

	case key.Matches(msg, keys.Restart):
		if p.Result != nil {
			p.Restart()
		}

	case key.Matches(msg, keys.Predict):
		if p.Result != nil {
			return m, nil
		}
		call, err := p.Begin()
		if err != nil {
			return m, nil
		}
		return m, fetchPrediction(m.ctx, p, call)
	}
	return m, nil
}
