package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salesdesk/salesdesk/client"
)

// registerFormWindow registers a new user.
type registerFormWindow struct {
	initless
	as *appState

	form     formHelper
	userID   *textInputHelper
	username *textInputHelper
	nickname *textInputHelper
	phone    *textInputHelper
	email    *textInputHelper
}

func newRegisterFormWindow(as *appState) (tea.Model, tea.Cmd) {
	rfw := registerFormWindow{as: as}

	rfw.userID = newTextInputHelper(as.styles, tihWithPrompt("User id: "))
	rfw.username = newTextInputHelper(as.styles, tihWithPrompt("Username: "))
	rfw.nickname = newTextInputHelper(as.styles, tihWithPrompt("Nickname: "))
	rfw.phone = newTextInputHelper(as.styles, tihWithPrompt("Phone: "))
	rfw.email = newTextInputHelper(as.styles, tihWithPrompt("Email: "))

	rfw.form = newFormHelper(as.styles,
		rfw.userID,
		rfw.username,
		rfw.nickname,
		rfw.phone,
		rfw.email,
		newButtonHelper(as.styles,
			btnWithLabel("[ Register ]"),
			btnWithTrailing("  "),
			btnWithFixedMsgAction(msgSubmitForm{})),
		newButtonHelper(as.styles,
			btnWithLabel("[ Cancel ]"),
			btnWithTrailing("\n"),
			btnWithFixedMsgAction(msgCancelForm{})),
	)

	return rfw, nil
}

func (rfw registerFormWindow) submit() (tea.Cmd, bool) {
	as := rfw.as

	userID := strings.TrimSpace(rfw.userID.Value())
	if userID == "" {
		return as.showToast(toastWarn, "User id is required"), false
	}
	username := strings.TrimSpace(rfw.username.Value())
	if username == "" {
		return as.showToast(toastWarn, "Username is required"), false
	}

	u := client.User{
		UserID:   userID,
		Username: username,
		Nickname: strings.TrimSpace(rfw.nickname.Value()),
		Phone:    strings.TrimSpace(rfw.phone.Value()),
		Email:    strings.TrimSpace(rfw.email.Value()),
		Status:   client.UserActive,
	}
	return as.actionCmd(pageUsers, "User "+username+" registered",
		func(ctx context.Context) error {
			return as.c.Register(ctx, &u)
		}), true
}

func (rfw registerFormWindow) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	as := rfw.as

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		as.winW, as.winH = msg.Width, msg.Height
		return rfw, nil

	case msgExpireToast:
		as.expireToast(msg.id)
		return rfw, nil

	case msgCancelForm:
		cw, cmd := newConsoleWindow(as)
		return cw, cmd

	case msgSubmitForm:
		cmd, ok := rfw.submit()
		if !ok {
			return rfw, cmd
		}
		cw, showCmd := newConsoleWindow(as)
		return cw, batchCmds(appendCmd(appendCmd(nil, cmd), showCmd))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return rfw, tea.Quit
		case "esc":
			cw, cmd := newConsoleWindow(as)
			return cw, cmd
		}

		var cmd tea.Cmd
		rfw.form, cmd = rfw.form.Update(msg)
		return rfw, cmd
	}

	var cmd tea.Cmd
	rfw.form, cmd = rfw.form.Update(msg)
	return rfw, cmd
}

func (rfw registerFormWindow) View() string {
	as := rfw.as
	var b strings.Builder
	b.WriteString(as.styles.header.Render(" Register user "))
	b.WriteString("\n\n")
	b.WriteString(rfw.form.View())
	b.WriteString(as.styles.help.Render("tab:next field esc:cancel"))

	body := b.String()
	lines := strings.Count(body, "\n")
	pad := as.winH - lines - 2
	if pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return fmt.Sprintf("%s\n%s", body, as.footerView(""))
}
