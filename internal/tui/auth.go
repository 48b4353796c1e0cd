package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/faena/internal/services/session"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldName
)

// authForm is the sign-in and registration screen
type authForm struct {
	register   bool
	inputs     []textinput.Model
	focused    int
	submitting bool
	err        error
}

func newAuthForm() *authForm {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email:    "

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword

	name := textinput.New()
	name.Placeholder = "Your name"
	name.Prompt = "Name:     "

	return &authForm{inputs: []textinput.Model{email, password, name}}
}

// fields returns how many inputs the current mode shows
func (f *authForm) fields() int {
	if f.register {
		return 3
	}
	return 2
}

func (f *authForm) route() session.Route {
	if f.register {
		return session.RouteRegister
	}
	return session.RouteLogin
}

func (f *authForm) focus() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focused].Focus()
}

func (f *authForm) move(delta int) tea.Cmd {
	n := f.fields()
	f.focused = (f.focused + delta + n) % n
	return f.focus()
}

func (f *authForm) toggle() tea.Cmd {
	f.register = !f.register
	f.err = nil
	f.focused = min(f.focused, f.fields()-1)
	return f.focus()
}

func (f *authForm) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

// reset clears the form after signing in or out
func (f *authForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.focused = fieldEmail
	f.submitting = false
	f.err = nil
}

func (m *Model) handleAuthKey(msg tea.KeyPressMsg) tea.Cmd {
	f := m.auth
	if f.submitting {
		return nil
	}

	switch msg.String() {
	case "tab", "down":
		return f.move(1)
	case "shift+tab", "up":
		return f.move(-1)
	case "ctrl+r":
		cmd := f.toggle()
		m.route = f.route()
		return cmd
	case "enter":
		if f.focused < f.fields()-1 {
			return f.move(1)
		}
		f.submitting = true
		f.err = nil
		return m.submitAuth(f.register, f.value(fieldEmail), f.inputs[fieldPassword].Value(), f.value(fieldName))
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

func (m *Model) handleAuthResult(msg authResultMsg) tea.Cmd {
	m.auth.submitting = false
	if msg.err != nil {
		m.auth.err = msg.err
		return nil
	}
	m.auth.reset()
	m.route = m.app.Session.Route(session.RouteDashboard)
	m.notifications.Clear()
	return m.reloadProjects()
}

func (m *Model) handleLoggedOut(msg loggedOutMsg) tea.Cmd {
	if msg.err != nil {
		m.notifications.Error(msg.err)
	}
	m.detail = nil
	m.dashboard = newDashboard()
	m.auth.reset()
	m.route = m.app.Session.Route(session.RouteDashboard)
	return m.auth.focus()
}
