package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmWindow asks a yes/no question and runs onConfirm when accepted.
type confirmWindow struct {
	initless
	as        *appState
	text      string
	onConfirm tea.Cmd
}

func newConfirmWindow(as *appState, text string, onConfirm tea.Cmd) (tea.Model, tea.Cmd) {
	return confirmWindow{as: as, text: text, onConfirm: onConfirm}, nil
}

func (cfw confirmWindow) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	as := cfw.as

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		as.winW, as.winH = msg.Width, msg.Height
		return cfw, nil

	case msgExpireToast:
		as.expireToast(msg.id)
		return cfw, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return cfw, tea.Quit
		case "y", "Y", "enter":
			cw, cmd := newConsoleWindow(as)
			return cw, batchCmds(appendCmd(appendCmd(nil,
				cfw.onConfirm), cmd))
		case "n", "N", "esc":
			cw, cmd := newConsoleWindow(as)
			return cw, cmd
		}
	}

	return cfw, nil
}

func (cfw confirmWindow) View() string {
	as := cfw.as
	var b strings.Builder
	b.WriteString(as.styles.title.Render(cfw.text))
	b.WriteString("\n\n")
	b.WriteString(as.styles.help.Render("y:confirm n:cancel"))

	body := b.String()
	lines := strings.Count(body, "\n")
	pad := as.winH - lines - 2
	if pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return fmt.Sprintf("%s\n%s", body, as.footerView(""))
}
