package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// detailWindow shows prerendered content (product, order or user detail) in a
// scrollable viewport. Esc goes back to the console.
type detailWindow struct {
	initless
	as    *appState
	title string

	viewport viewport.Model
}

func newDetailWindow(as *appState, title, content string) (tea.Model, tea.Cmd) {
	dw := detailWindow{
		as:       as,
		title:    title,
		viewport: viewport.New(as.winW, cwViewportHeight(as.winH)),
	}
	dw.viewport.SetContent(content)
	return dw, nil
}

func (dw detailWindow) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	as := dw.as

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		as.winW, as.winH = msg.Width, msg.Height
		dw.viewport.Width = msg.Width
		dw.viewport.Height = cwViewportHeight(msg.Height)
		return dw, nil

	case msgExpireToast:
		as.expireToast(msg.id)
		return dw, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return dw, tea.Quit
		case "esc", "q":
			cw, cmd := newConsoleWindow(as)
			return cw, cmd
		}
	}

	var cmd tea.Cmd
	dw.viewport, cmd = dw.viewport.Update(msg)
	return dw, cmd
}

func (dw detailWindow) View() string {
	header := dw.as.styles.header.Render(" " + dw.title + " ")
	return fmt.Sprintf("%s\n%s\n%s",
		header,
		dw.viewport.View(),
		dw.as.footerView("esc:back "))
}
