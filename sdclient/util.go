package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cast"
)

const (
	ISO8601DateTime = "2006-01-02 15:04:05"
	ISO8601Date     = "2006-01-02"

	// currencyGlyph prefixes every rendered money value.
	currencyGlyph = "¥"

	// datePlaceholder is rendered for absent dates.
	datePlaceholder = "-"
)

// Helper mixin to avoid having to add an Init() function everywhere.
type initless struct{}

func (initless) Init() tea.Cmd { return nil }

// formatMoney renders a monetary value with the currency glyph and exactly
// two fraction digits. Anything that does not coerce to a finite number
// renders as zero.
func formatMoney(v interface{}) string {
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return fmt.Sprintf("%s %.2f", currencyGlyph, f)
}

// formatDate parses a backend-provided timestamp tolerantly and renders it in
// local time. Empty or unparsable input renders as the fixed placeholder.
func formatDate(s string) string {
	if s == "" {
		return datePlaceholder
	}
	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return datePlaceholder
	}
	return t.Local().Format(ISO8601DateTime)
}

// today returns the current date in the form the analysis endpoint expects.
func today() string {
	return time.Now().Format(ISO8601Date)
}

// parseCount parses a non-negative integer typed by the user.
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a non-negative number", s)
	}
	return n, nil
}

func clamp(v, min, max int) int {
	if v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return v
}

// limitStr truncates s to at most maxLen bytes.
func limitStr(s string, maxLen int) string {
	if maxLen >= 0 && len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}

// ltjustify truncates or pads s to exactly l display cells. Display width is
// used instead of byte length so wide runes line up in table columns.
func ltjustify(s string, l int) string {
	w := runewidth.StringWidth(s)
	if w > l {
		return runewidth.Truncate(s, l, "")
	}
	return s + strings.Repeat(" ", l-w)
}

// appendCmd appends only non-nil cmds to cmds.
func appendCmd(cmds []tea.Cmd, cmd ...tea.Cmd) []tea.Cmd {
	for i := range cmd {
		if cmd[i] == nil {
			continue
		}
		cmds = append(cmds, cmd[i])
	}
	return cmds
}

// batchCmds maybe batches the list of cmds if needed.
func batchCmds(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}
