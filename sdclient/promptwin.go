package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// promptWindow asks for a single line of input and hands it to onSubmit.
type promptWindow struct {
	initless
	as       *appState
	title    string
	input    *textInputHelper
	onSubmit func(string) tea.Cmd
}

func newPromptWindow(as *appState, title, prompt, value string,
	onSubmit func(string) tea.Cmd) (tea.Model, tea.Cmd) {

	input := newTextInputHelper(as.styles,
		tihWithPrompt(prompt),
		tihWithValue(value),
	)
	cmd := input.Focus()
	pw := promptWindow{
		as:       as,
		title:    title,
		input:    input,
		onSubmit: onSubmit,
	}
	return pw, cmd
}

func (pw promptWindow) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	as := pw.as

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		as.winW, as.winH = msg.Width, msg.Height
		return pw, nil

	case msgExpireToast:
		as.expireToast(msg.id)
		return pw, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return pw, tea.Quit
		case "esc":
			cw, cmd := newConsoleWindow(as)
			return cw, cmd
		case "enter":
			cmd := pw.onSubmit(pw.input.Value())
			cw, showCmd := newConsoleWindow(as)
			return cw, batchCmds(appendCmd(appendCmd(nil, cmd), showCmd))
		}
	}

	model, cmd := pw.input.Update(msg)
	if input, ok := model.(*textInputHelper); ok {
		pw.input = input
	}
	return pw, cmd
}

func (pw promptWindow) View() string {
	as := pw.as
	var b strings.Builder
	b.WriteString(as.styles.header.Render(" " + pw.title + " "))
	b.WriteString("\n\n")
	b.WriteString(pw.input.View())
	b.WriteString("\n\n")
	b.WriteString(as.styles.help.Render("enter:confirm esc:cancel"))

	// Pad to the full window height so the footer stays at the bottom.
	body := b.String()
	lines := strings.Count(body, "\n")
	pad := as.winH - lines - 2
	if pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return fmt.Sprintf("%s\n%s", body, as.footerView(""))
}
