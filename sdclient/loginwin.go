package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salesdesk/salesdesk/session"
)

// loginWindow is the session panel: login form when anonymous, session info
// and logout when authenticated.
type loginWindow struct {
	initless
	as *appState

	form     formHelper
	username *textInputHelper
}

func newLoginWindow(as *appState) (tea.Model, tea.Cmd) {
	lw := loginWindow{as: as}
	if as.sess.Authenticated() {
		return lw, nil
	}

	lw.username = newTextInputHelper(as.styles,
		tihWithPrompt("Username: "),
		tihWithValue(as.cfg.Username),
	)
	lw.form = newFormHelper(as.styles,
		lw.username,
		newButtonHelper(as.styles,
			btnWithLabel("[ Log in ]"),
			btnWithTrailing("  "),
			btnWithFixedMsgAction(msgSubmitForm{})),
		newButtonHelper(as.styles,
			btnWithLabel("[ Cancel ]"),
			btnWithTrailing("\n"),
			btnWithFixedMsgAction(msgCancelForm{})),
	)
	return lw, nil
}

func (lw loginWindow) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	as := lw.as

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		as.winW, as.winH = msg.Width, msg.Height
		return lw, nil

	case msgExpireToast:
		as.expireToast(msg.id)
		return lw, nil

	case msgCancelForm:
		cw, cmd := newConsoleWindow(as)
		return cw, cmd

	case msgSubmitForm:
		username := strings.TrimSpace(lw.username.Value())
		if username == "" {
			return lw, as.showToast(toastWarn, "Username is required")
		}
		cw, cmd := newConsoleWindow(as)
		return cw, batchCmds(appendCmd(appendCmd(nil,
			as.loginCmd(username)), cmd))

	case msgLoginResult, msgValidateResult, msgLogoutResult:
		// Land back on the console, which reacts to these.
		cw, showCmd := newConsoleWindow(as)
		model, cmd := cw.Update(msg)
		return model, batchCmds(appendCmd(appendCmd(nil, showCmd), cmd))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return lw, tea.Quit
		case "esc":
			cw, cmd := newConsoleWindow(as)
			return cw, cmd
		}

		if as.sess.Authenticated() {
			switch msg.String() {
			case "o", "O":
				return lw, as.logoutCmd()
			}
			return lw, nil
		}

		var cmd tea.Cmd
		lw.form, cmd = lw.form.Update(msg)
		return lw, cmd
	}

	if !as.sess.Authenticated() {
		var cmd tea.Cmd
		lw.form, cmd = lw.form.Update(msg)
		return lw, cmd
	}
	return lw, nil
}

func (lw loginWindow) View() string {
	as := lw.as
	var b strings.Builder
	b.WriteString(as.styles.header.Render(" Session "))
	b.WriteString("\n\n")

	switch as.sess.State() {
	case session.StateAuthenticated:
		u := as.sess.User()
		if u != nil {
			b.WriteString(renderUserDetail(as.styles, as.winW, u))
		} else {
			b.WriteString(fmt.Sprintf("Logged in as %s\n", as.sess.UserID()))
		}
		b.WriteString("\n")
		b.WriteString(as.styles.help.Render("o:log out esc:back"))

	case session.StateLoggingIn:
		b.WriteString("Logging in...\n")

	default:
		b.WriteString(lw.form.View())
		b.WriteString(as.styles.help.Render("tab:next field esc:back"))
	}

	body := b.String()
	lines := strings.Count(body, "\n")
	pad := as.winH - lines - 2
	if pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return fmt.Sprintf("%s\n%s", body, as.footerView(""))
}
