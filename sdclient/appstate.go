package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/decred/slog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/salesdesk/salesdesk/client"
	"github.com/salesdesk/salesdesk/session"
)

// errNoUserID is returned by loaders that need a user id when neither a
// session nor a configured default provides one.
var errNoUserID = errors.New("no user id: log in or set userid in the config")

// toastDuration is how long footer toasts stay visible.
const toastDuration = 4 * time.Second

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastWarn
	toastErr
)

type toast struct {
	id   uint64
	kind toastKind
	text string
}

// pageLoad tracks the load lifecycle of one page.
type pageLoad struct {
	seq     uint64
	loading bool
	err     error
	data    interface{}
}

// appState holds the state common to all windows. Fields other than the
// client, session store and loggers are only accessed from the update loop.
type appState struct {
	ctx     context.Context
	cancel  func()
	cfg     *config
	c       *client.Client
	sess    *session.Store
	styles  *theme
	sendMsg func(tea.Msg)
	logBknd *logBackend
	log     slog.Logger
	coll    *collate.Collator

	winW, winH int

	active pageID
	pages  map[pageID]*pageLoad

	// sel is the highlighted row of each page. It lives here so window
	// switches don't reset it.
	sel map[pageID]int

	// Page parameters, changed from the UI.
	filterUserID     string
	userStatusFilter int
	rankingType      client.RankingType
	rankingLimit     int
	analysisDate     string

	// busy is set while a checkout or quick-pay sequence is in flight, to
	// prevent double submission.
	busy bool

	toasts      []toast
	lastToastID uint64
}

func newAppState(cfg *config, c *client.Client, sess *session.Store,
	logBknd *logBackend) *appState {

	ctx, cancel := context.WithCancel(context.Background())
	as := &appState{
		ctx:              ctx,
		cancel:           cancel,
		cfg:              cfg,
		c:                c,
		sess:             sess,
		styles:           newTheme(),
		logBknd:          logBknd,
		log:              logBknd.logger("UI"),
		coll:             collate.New(language.Und),
		active:           pageDashboard,
		pages:            make(map[pageID]*pageLoad, len(pageDescs)),
		sel:              make(map[pageID]int, len(pageDescs)),
		userStatusFilter: client.UserActive,
		rankingType:      client.RankingDaily,
	}
	for id := range pageDescs {
		as.pages[id] = &pageLoad{}
	}
	return as
}

func (as *appState) page(id pageID) *pageLoad {
	return as.pages[id]
}

// orderUserID resolves the user id the orders and cart pages operate on: an
// explicit filter wins, then the logged-in user, then the configured default.
func (as *appState) orderUserID() string {
	if as.filterUserID != "" {
		return as.filterUserID
	}
	if id := as.sess.UserID(); id != "" {
		return id
	}
	return as.cfg.UserID
}

// loadCmd wraps a fetch into a tea.Cmd carrying the page and generation, so
// results of superseded loads can be dropped.
func (as *appState) loadCmd(page pageID, seq uint64,
	fetch func(ctx context.Context) (interface{}, error)) tea.Cmd {

	ctx := as.ctx
	return func() tea.Msg {
		data, err := fetch(ctx)
		if err != nil {
			return msgPageErr{page: page, seq: seq, err: err}
		}
		return msgPageData{page: page, seq: seq, data: data}
	}
}

// showPage makes page active and starts a fresh load. Unknown page ids are
// ignored. The generation bump makes any in-flight results and refresh ticks
// of the previous generation stale.
func (as *appState) showPage(page pageID) tea.Cmd {
	desc, ok := pageDescs[page]
	if !ok {
		as.log.Warnf("Ignoring unknown page %q", page)
		return nil
	}

	as.active = page
	return as.startLoad(page, desc)
}

// reloadPage restarts the load of page without changing the active page.
func (as *appState) reloadPage(page pageID) tea.Cmd {
	desc, ok := pageDescs[page]
	if !ok {
		return nil
	}
	return as.startLoad(page, desc)
}

func (as *appState) startLoad(page pageID, desc pageDesc) tea.Cmd {
	pl := as.page(page)
	pl.seq++
	pl.loading = true
	seq := pl.seq

	cmds := appendCmd(nil, desc.load(as, seq))
	cmds = appendCmd(cmds, as.refreshTick(page, seq))
	return batchCmds(cmds)
}

// refreshTick schedules the next periodic refresh of page for generation seq.
func (as *appState) refreshTick(page pageID, seq uint64) tea.Cmd {
	if as.cfg.RefreshSecs <= 0 {
		return nil
	}
	d := time.Duration(as.cfg.RefreshSecs) * time.Second
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msgRefreshTick{page: page, seq: seq}
	})
}

// handlePageMsg folds page load results and refresh ticks into the page
// state. It returns true when the result was current and the page display
// should be updated.
func (as *appState) handlePageMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case msgPageData:
		pl := as.page(msg.page)
		if pl == nil || msg.seq != pl.seq {
			return false, nil
		}
		pl.loading = false
		pl.err = nil
		// Sorting happens here instead of in the loader goroutine
		// because the collator keeps internal buffers across calls.
		if data, ok := msg.data.(*productsData); ok {
			as.sortProducts(data.products)
		}
		pl.data = msg.data
		return true, nil

	case msgPageErr:
		pl := as.page(msg.page)
		if pl == nil || msg.seq != pl.seq {
			return false, nil
		}
		pl.loading = false
		pl.err = msg.err
		as.log.Errorf("Unable to load %s page: %v", msg.page, msg.err)
		return true, nil

	case msgRefreshTick:
		pl := as.page(msg.page)
		if pl == nil || msg.seq != pl.seq || msg.page != as.active {
			// Stale tick from a superseded generation or an
			// inactive page.
			return false, nil
		}
		return false, as.reloadPage(msg.page)
	}

	return false, nil
}

// showToast adds a footer toast and schedules its expiration.
func (as *appState) showToast(kind toastKind, format string, args ...interface{}) tea.Cmd {
	as.lastToastID++
	t := toast{id: as.lastToastID, kind: kind, text: fmt.Sprintf(format, args...)}
	as.toasts = append(as.toasts, t)
	id := t.id
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return msgExpireToast{id: id}
	})
}

func (as *appState) expireToast(id uint64) {
	for i := range as.toasts {
		if as.toasts[i].id == id {
			as.toasts = append(as.toasts[:i], as.toasts[i+1:]...)
			break
		}
	}
}

// currentToast returns the most recent live toast, styled.
func (as *appState) currentToast() string {
	if len(as.toasts) == 0 {
		return ""
	}
	t := as.toasts[len(as.toasts)-1]
	switch t.kind {
	case toastSuccess:
		return as.styles.good.Render(t.text)
	case toastWarn:
		return as.styles.warn.Render(t.text)
	case toastErr:
		return as.styles.err.Render(t.text)
	default:
		return t.text
	}
}

// errorLogMsg surfaces error-level log lines as footer toasts. Called from
// the log backend goroutine, so it goes through sendMsg instead of touching
// state.
func (as *appState) errorLogMsg(msg string) {
	as.sendMsg(msgShowToast{kind: toastErr, text: strings.TrimSpace(msg)})
}

// sessionLine renders the footer's session summary.
func (as *appState) sessionLine() string {
	switch as.sess.State() {
	case session.StateAuthenticated:
		u := as.sess.User()
		if u != nil {
			return fmt.Sprintf("user %s", u.DisplayName())
		}
		return fmt.Sprintf("user %s", as.sess.UserID())
	case session.StateLoggingIn:
		return "logging in..."
	case session.StatePendingValidation:
		return "validating session..."
	default:
		return "anonymous"
	}
}

// footerView renders the bottom status bar: session summary on the left,
// toast or extraRight on the right.
func (as *appState) footerView(extraRight string) string {
	fs := as.styles.footer

	left := fs.Render(" " + as.sessionLine() + " ")
	right := as.currentToast()
	if right == "" {
		right = fs.Render(extraRight)
	}

	pad := as.winW - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 0 {
		pad = 0
	}
	return left + fs.Render(strings.Repeat(" ", pad)) + right
}

// sortProducts orders products by name using the collator, so names with
// non-ASCII runes sort in a stable, human order.
func (as *appState) sortProducts(products []client.Product) {
	sort.Slice(products, func(i, j int) bool {
		return as.coll.CompareString(products[i].Name, products[j].Name) < 0
	})
}
