package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/salesdesk/salesdesk/internal/strescape"
)

type textInputHelperOption func(model *textinput.Model)

func tihWithPrompt(prompt string) textInputHelperOption {
	return func(model *textinput.Model) {
		model.Prompt = prompt
	}
}

func tihWithValue(value string) textInputHelperOption {
	return func(model *textinput.Model) {
		model.SetValue(value)
	}
}

// textInputHelper is a helper to work around textinput.Model quirks and to
// ease creating forms.
type textInputHelper struct {
	initless
	textinput.Model
	styles *theme
}

func (input *textInputHelper) Focus() tea.Cmd {
	input.Model.PromptStyle = input.styles.focused
	input.Model.TextStyle = input.styles.focused
	return input.Model.Focus()
}

func (input *textInputHelper) Blur() tea.Cmd {
	input.Model.PromptStyle = input.styles.noStyle
	input.Model.TextStyle = input.styles.noStyle
	input.Model.Blur()
	return nil
}

func (input *textInputHelper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Pasted multi-line content is folded into a single line before
		// reaching the underlying model.
		if strings.ContainsAny(msg.String(), "\n\r") {
			lines := strescape.CannonicalizeNL(msg.String())
			lines = strings.ReplaceAll(lines, "\n", " ")
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(lines)}
		}
		input.Model, cmd = input.Model.Update(msg)
		cmds = appendCmd(cmds, cmd)
	}

	return input, batchCmds(cmds)
}

func newTextInputHelper(styles *theme, opts ...textInputHelperOption) *textInputHelper {
	input := textInputHelper{
		styles: styles,
		Model:  textinput.New(),
	}
	input.Model.Cursor.SetMode(cursor.CursorBlink)

	for _, opt := range opts {
		opt(&input.Model)
	}

	return &input
}
