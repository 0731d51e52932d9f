package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/slices"

	"github.com/salesdesk/salesdesk/client"
	"github.com/salesdesk/salesdesk/internal/strescape"
	"github.com/salesdesk/salesdesk/session"
)

// consoleWindow is the main window: a nav bar of pages, the active page's
// content in a viewport and the status footer.
type consoleWindow struct {
	as *appState

	viewport viewport.Model
}

func newConsoleWindow(as *appState) (consoleWindow, tea.Cmd) {
	cw := consoleWindow{
		as:       as,
		viewport: viewport.New(as.winW, cwViewportHeight(as.winH)),
	}
	cw.updateViewport()
	return cw, nil
}

// cwViewportHeight leaves room for the header and footer lines.
func cwViewportHeight(winH int) int {
	h := winH - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (cw consoleWindow) Init() tea.Cmd {
	cmds := appendCmd(nil, cw.as.showPage(cw.as.active))
	if cw.as.sess.State() == session.StatePendingValidation {
		cmds = appendCmd(cmds, cw.as.validateCmd())
	}
	return batchCmds(cmds)
}

// rowCount returns how many selectable rows the active page has.
func (cw *consoleWindow) rowCount() int {
	pl := cw.as.page(cw.as.active)
	if pl == nil || pl.data == nil {
		return 0
	}
	switch data := pl.data.(type) {
	case *productsData:
		return len(data.products)
	case *ordersData:
		return len(data.orders)
	case *cartData:
		return len(data.items)
	case *usersData:
		return len(data.users)
	}
	return 0
}

func (cw *consoleWindow) moveSel(delta int) {
	page := cw.as.active
	count := cw.rowCount()
	if count == 0 {
		cw.as.sel[page] = 0
		return
	}
	cw.as.sel[page] = clamp(cw.as.sel[page]+delta, 0, count-1)
}

// selectedProduct returns the highlighted product or nil.
func (cw *consoleWindow) selectedProduct() *client.Product {
	pl := cw.as.page(pageProducts)
	data, ok := pl.data.(*productsData)
	if !ok {
		return nil
	}
	i := cw.as.sel[pageProducts]
	if i < 0 || i >= len(data.products) {
		return nil
	}
	return &data.products[i]
}

func (cw *consoleWindow) selectedOrder() *client.Order {
	pl := cw.as.page(pageOrders)
	data, ok := pl.data.(*ordersData)
	if !ok {
		return nil
	}
	i := cw.as.sel[pageOrders]
	if i < 0 || i >= len(data.orders) {
		return nil
	}
	return &data.orders[i]
}

func (cw *consoleWindow) selectedCartItem() (*cartData, *client.CartItem) {
	pl := cw.as.page(pageCart)
	data, ok := pl.data.(*cartData)
	if !ok {
		return nil, nil
	}
	i := cw.as.sel[pageCart]
	if i < 0 || i >= len(data.items) {
		return data, nil
	}
	return data, &data.items[i]
}

func (cw *consoleWindow) selectedUser() *client.User {
	pl := cw.as.page(pageUsers)
	data, ok := pl.data.(*usersData)
	if !ok {
		return nil
	}
	i := cw.as.sel[pageUsers]
	if i < 0 || i >= len(data.users) {
		return nil
	}
	return &data.users[i]
}

// updateViewport re-renders the active page into the viewport.
func (cw *consoleWindow) updateViewport() {
	as := cw.as
	page := as.active
	pl := as.page(page)
	styles := as.styles
	w := as.winW
	sel := as.sel[page]

	var content string
	switch {
	case pl.err != nil:
		content = renderLoadFailure(styles, page, pl.err)
	case pl.data == nil:
		content = renderLoading(styles)
	default:
		switch data := pl.data.(type) {
		case *dashboardData:
			content = renderDashboard(styles, w, data)
		case *productsData:
			content = renderProducts(styles, w, data, sel)
		case *ordersData:
			content = renderOrders(styles, w, data, sel)
		case *cartData:
			content = renderCart(styles, w, data, sel)
		case *usersData:
			content = renderUsers(styles, w, data, sel)
		case *rankingData:
			content = renderRanking(styles, w, data)
		case *analysisData:
			content = renderAnalysis(styles, w, data)
		}
	}

	cw.viewport.SetContent(content)
}

func (cw consoleWindow) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	as := cw.as
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		as.winW, as.winH = msg.Width, msg.Height
		cw.viewport.Width = msg.Width
		cw.viewport.Height = cwViewportHeight(msg.Height)
		cw.updateViewport()
		return cw, nil

	case msgPageData, msgPageErr:
		changed, cmd := as.handlePageMsg(msg)
		cmds = appendCmd(cmds, cmd)
		if changed {
			cw.moveSel(0)
			cw.updateViewport()
		}
		return cw, batchCmds(cmds)

	case msgRefreshTick:
		_, cmd := as.handlePageMsg(msg)
		return cw, cmd

	case msgShowToast:
		return cw, as.showToast(msg.kind, "%s", msg.text)

	case msgExpireToast:
		as.expireToast(msg.id)
		return cw, nil

	case msgValidateResult:
		if msg.err != nil {
			cmds = appendCmd(cmds, as.showToast(toastWarn,
				"Stored session rejected: %v", msg.err))
		} else if msg.user != nil {
			cmds = appendCmd(cmds, as.showToast(toastSuccess,
				"Welcome back, %s", msg.user.DisplayName()))
		}
		cmds = appendCmd(cmds, as.reloadPage(as.active))
		return cw, batchCmds(cmds)

	case msgLoginResult:
		if msg.err != nil {
			cmds = appendCmd(cmds, as.showToast(toastErr,
				"Login failed: %v", msg.err))
		} else {
			cmds = appendCmd(cmds, as.showToast(toastSuccess,
				"Logged in as %s", msg.user.DisplayName()))
		}
		cmds = appendCmd(cmds, as.reloadPage(as.active))
		return cw, batchCmds(cmds)

	case msgLogoutResult:
		if msg.err != nil {
			cmds = appendCmd(cmds, as.showToast(toastWarn,
				"Logout completed locally, server said: %v", msg.err))
		} else {
			cmds = appendCmd(cmds, as.showToast(toastInfo, "Logged out"))
		}
		cmds = appendCmd(cmds, as.reloadPage(as.active))
		return cw, batchCmds(cmds)

	case msgActionDone:
		if msg.err != nil {
			cmds = appendCmd(cmds, as.showToast(toastErr, "%v", msg.err))
		} else {
			if msg.text != "" {
				cmds = appendCmd(cmds, as.showToast(toastSuccess,
					"%s", msg.text))
			}
			cmds = appendCmd(cmds, as.reloadPage(msg.page))
		}
		return cw, batchCmds(cmds)

	case msgCheckoutDone:
		as.busy = false
		if msg.err != nil {
			cmds = appendCmd(cmds, as.showToast(toastErr,
				"Checkout failed: %v", msg.err))
		} else {
			cmds = appendCmd(cmds, as.showToast(toastSuccess,
				"Order %s created (%s)", msg.order.OrderID,
				formatMoney(msg.order.ActualAmount)))
		}
		cmds = appendCmd(cmds, as.reloadPage(pageCart))
		cmds = appendCmd(cmds, as.reloadPage(pageOrders))
		return cw, batchCmds(cmds)

	case msgQuickPayDone:
		as.busy = false
		switch {
		case msg.err != nil && msg.order == nil:
			cmds = appendCmd(cmds, as.showToast(toastErr,
				"Checkout failed: %v", msg.err))
		case msg.err != nil:
			// Order exists but payment failed; it stays awaiting
			// payment on the orders page.
			cmds = appendCmd(cmds, as.showToast(toastWarn,
				"Order %s created but payment failed: %v",
				msg.order.OrderID, msg.err))
		default:
			cmds = appendCmd(cmds, as.showToast(toastSuccess,
				"Order %s paid (%s)", msg.order.OrderID,
				formatMoney(msg.order.ActualAmount)))
		}
		cmds = appendCmd(cmds, as.reloadPage(pageCart))
		cmds = appendCmd(cmds, as.reloadPage(pageOrders))
		cmds = appendCmd(cmds, as.reloadPage(pageDashboard))
		return cw, batchCmds(cmds)

	case msgStartCheckout:
		if as.busy {
			return cw, as.showToast(toastWarn, "A checkout is already in flight")
		}
		as.busy = true
		if msg.pay {
			return cw, as.checkoutAndPayCmd(msg.userID)
		}
		return cw, as.checkoutCmd(msg.userID)

	case msgUserLookup:
		if msg.err != nil {
			return cw, as.showToast(toastErr, "User lookup failed: %v", msg.err)
		}
		return newDetailWindow(as, "User "+msg.user.UserID,
			renderUserDetail(as.styles, as.winW, msg.user))

	case logUpdated:
		// Log lines don't repaint the console.
		return cw, nil

	case tea.KeyMsg:
		return cw.handleKey(msg)
	}

	var cmd tea.Cmd
	cw.viewport, cmd = cw.viewport.Update(msg)
	return cw, cmd
}

func (cw consoleWindow) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	as := cw.as

	switch msg.String() {
	case "ctrl+c", "q":
		return cw, tea.Quit

	case "tab", "shift+tab":
		idx := slices.Index(pageOrder, as.active)
		if idx < 0 {
			idx = 0
		}
		if msg.String() == "tab" {
			idx = (idx + 1) % len(pageOrder)
		} else {
			idx = (idx + len(pageOrder) - 1) % len(pageOrder)
		}
		cmd := as.showPage(pageOrder[idx])
		cw.updateViewport()
		return cw, cmd

	case "1", "2", "3", "4", "5", "6", "7":
		idx := int(msg.String()[0] - '1')
		cmd := as.showPage(pageOrder[idx])
		cw.updateViewport()
		return cw, cmd

	case "up", "k":
		cw.moveSel(-1)
		cw.updateViewport()
		return cw, nil

	case "down", "j":
		cw.moveSel(1)
		cw.updateViewport()
		return cw, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		cw.viewport, cmd = cw.viewport.Update(msg)
		return cw, cmd

	case "r", "R":
		return cw, as.reloadPage(as.active)

	case "u":
		return newPromptWindow(as, "User filter",
			"User id (empty follows the session): ", as.filterUserID,
			func(v string) tea.Cmd {
				as.filterUserID = strings.TrimSpace(v)
				return as.reloadPage(as.active)
			})

	case "L":
		return newLoginWindow(as)
	}

	switch as.active {
	case pageProducts:
		return cw.handleProductsKey(msg)
	case pageOrders:
		return cw.handleOrdersKey(msg)
	case pageCart:
		return cw.handleCartKey(msg)
	case pageUsers:
		return cw.handleUsersKey(msg)
	case pageRanking:
		return cw.handleRankingKey(msg)
	case pageAnalysis:
		return cw.handleAnalysisKey(msg)
	}

	var cmd tea.Cmd
	cw.viewport, cmd = cw.viewport.Update(msg)
	return cw, cmd
}

func (cw consoleWindow) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	as := cw.as
	p := cw.selectedProduct()

	switch msg.String() {
	case "enter":
		if p != nil {
			return newDetailWindow(as, "Product "+p.ProductID,
				renderProductDetail(as.styles, as.winW, p))
		}

	case "n":
		return newProductFormWindow(as, nil)

	case "e":
		if p != nil {
			return newProductFormWindow(as, p)
		}

	case "t":
		if p != nil {
			toggled := *p
			if toggled.Status == client.ProductListed {
				toggled.Status = client.ProductUnlisted
			} else {
				toggled.Status = client.ProductListed
			}
			return cw, as.actionCmd(pageProducts,
				"Product "+toggled.ProductID+" now "+
					client.ProductStatusLabel(toggled.Status),
				func(ctx context.Context) error {
					return as.c.UpdateProduct(ctx, &toggled)
				})
		}

	case "s":
		if p != nil {
			id := p.ProductID
			return newPromptWindow(as, "Set stock",
				fmt.Sprintf("New stock for %s: ", strescape.Line(p.Name)),
				fmt.Sprintf("%d", p.Stock()),
				func(v string) tea.Cmd {
					stock, err := parseCount(v)
					if err != nil {
						return as.showToast(toastErr, "%v", err)
					}
					return as.actionCmd(pageProducts, "Stock updated",
						func(ctx context.Context) error {
							return as.c.SetStock(ctx, id, stock)
						})
				})
		}

	case "x":
		if p != nil {
			id := p.ProductID
			return newPromptWindow(as, "Deduct stock",
				fmt.Sprintf("Quantity to deduct from %s: ", strescape.Line(p.Name)),
				"1",
				func(v string) tea.Cmd {
					qty, err := parseCount(v)
					if err != nil || qty < 1 {
						return as.showToast(toastErr,
							"%q is not a positive quantity", v)
					}
					return as.actionCmd(pageProducts, "Stock deducted",
						func(ctx context.Context) error {
							return as.c.DeductStock(ctx, id, qty)
						})
				})
		}

	case "D":
		if p != nil {
			id := p.ProductID
			return newConfirmWindow(as,
				fmt.Sprintf("Delete product %s (%s)?", id, strescape.Line(p.Name)),
				as.actionCmd(pageProducts, "Product "+id+" deleted",
					func(ctx context.Context) error {
						return as.c.DeleteProduct(ctx, id)
					}))
		}
	}

	return cw, nil
}

func (cw consoleWindow) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	as := cw.as
	o := cw.selectedOrder()

	switch msg.String() {
	case "enter":
		if o != nil {
			return newDetailWindow(as, "Order "+o.OrderID,
				renderOrderDetail(as.styles, as.winW, o))
		}

	case "p":
		if o != nil {
			if o.Status != client.OrderAwaitingPayment {
				return cw, as.showToast(toastWarn,
					"Order %s is %s, not awaiting payment",
					o.OrderID, o.Status)
			}
			return cw, as.payOrderCmd(o.OrderID)
		}

	case "s":
		if o != nil {
			return cw, as.advanceOrderCmd(o)
		}

	case "D":
		if o != nil {
			id := o.OrderID
			return newConfirmWindow(as,
				fmt.Sprintf("Delete order %s?", id),
				as.actionCmd(pageOrders, "Order "+id+" deleted",
					func(ctx context.Context) error {
						return as.c.DeleteOrder(ctx, id)
					}))
		}
	}

	return cw, nil
}

func (cw consoleWindow) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	as := cw.as
	data, it := cw.selectedCartItem()

	switch msg.String() {
	case " ", "space":
		if it != nil {
			userID, productID, sel := data.userID, it.ProductID, !it.Selected
			return cw, as.actionCmd(pageCart, "",
				func(ctx context.Context) error {
					return as.c.SetCartSelected(ctx, userID, productID, sel)
				})
		}

	case "+", "=":
		if it != nil {
			userID, productID, qty := data.userID, it.ProductID, it.Quantity+1
			return cw, as.actionCmd(pageCart, "",
				func(ctx context.Context) error {
					return as.c.SetCartQuantity(ctx, userID, productID, qty)
				})
		}

	case "-":
		if it != nil {
			if it.Quantity <= 1 {
				return cw, as.showToast(toastWarn,
					"Quantity is already 1; use d to remove")
			}
			userID, productID, qty := data.userID, it.ProductID, it.Quantity-1
			return cw, as.actionCmd(pageCart, "",
				func(ctx context.Context) error {
					return as.c.SetCartQuantity(ctx, userID, productID, qty)
				})
		}

	case "d":
		if it != nil {
			userID, productID := data.userID, it.ProductID
			return newConfirmWindow(as,
				fmt.Sprintf("Remove %s from the cart?", strescape.Line(it.ProductName)),
				as.actionCmd(pageCart, "Item removed",
					func(ctx context.Context) error {
						return as.c.RemoveCartItem(ctx, userID, productID)
					}))
		}

	case "X":
		if data != nil && len(data.items) > 0 {
			userID := data.userID
			return newConfirmWindow(as, "Clear the entire cart?",
				as.actionCmd(pageCart, "Cart cleared",
					func(ctx context.Context) error {
						return as.c.ClearCart(ctx, userID)
					}))
		}

	case "c", "P":
		if data == nil {
			return cw, nil
		}
		if as.busy {
			return cw, as.showToast(toastWarn, "A checkout is already in flight")
		}
		count, _ := cartTotals(data.items)
		if count == 0 {
			// Nothing selected: warn without touching the backend.
			return cw, as.showToast(toastWarn, "No cart items selected")
		}
		userID := data.userID
		pay := msg.String() == "P"
		label := "Checkout"
		if pay {
			label = "Checkout and pay"
		}
		_, amount := cartTotals(data.items)
		return newConfirmWindow(as,
			fmt.Sprintf("%s %d selected items for %s?", label, count,
				formatMoney(amount)),
			func() tea.Msg {
				return msgStartCheckout{userID: userID, pay: pay}
			})

	}

	return cw, nil
}

func (cw consoleWindow) handleUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	as := cw.as

	switch msg.String() {
	case "t":
		if as.userStatusFilter == client.UserActive {
			as.userStatusFilter = client.UserDisabled
		} else {
			as.userStatusFilter = client.UserActive
		}
		return cw, as.reloadPage(pageUsers)

	case "n":
		return newRegisterFormWindow(as)

	case "i":
		return newPromptWindow(as, "User lookup", "User id: ", "",
			func(v string) tea.Cmd {
				id := strings.TrimSpace(v)
				if id == "" {
					return nil
				}
				ctx := as.ctx
				return func() tea.Msg {
					u, err := as.c.User(ctx, id)
					return msgUserLookup{user: u, err: err}
				}
			})

	case "enter":
		if u := cw.selectedUser(); u != nil {
			return newDetailWindow(as, "User "+u.UserID,
				renderUserDetail(as.styles, as.winW, u))
		}
	}

	return cw, nil
}

func (cw consoleWindow) handleRankingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	as := cw.as

	switch msg.String() {
	case "t":
		switch as.rankingType {
		case client.RankingDaily:
			as.rankingType = client.RankingWeekly
		case client.RankingWeekly:
			as.rankingType = client.RankingHot
		default:
			as.rankingType = client.RankingDaily
		}
		return cw, as.reloadPage(pageRanking)

	case "l":
		limit := as.rankingLimit
		if limit <= 0 {
			limit = as.cfg.PageLimit
		}
		return newPromptWindow(as, "Ranking limit", "Entries to fetch: ",
			fmt.Sprintf("%d", limit), func(v string) tea.Cmd {
				n, err := parseCount(v)
				if err != nil {
					return as.showToast(toastErr, "%v", err)
				}
				as.rankingLimit = n
				return as.reloadPage(pageRanking)
			})
	}

	return cw, nil
}

func (cw consoleWindow) handleAnalysisKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	as := cw.as

	switch msg.String() {
	case "d":
		date := as.analysisDate
		if date == "" {
			date = today()
		}
		return newPromptWindow(as, "Analysis date", "Date (YYYY-MM-DD): ",
			date, func(v string) tea.Cmd {
				as.analysisDate = strings.TrimSpace(v)
				return as.reloadPage(pageAnalysis)
			})
	}

	return cw, nil
}

// headerView renders the nav bar.
func (cw consoleWindow) headerView() string {
	as := cw.as
	styles := as.styles

	parts := make([]string, 0, len(pageOrder))
	for i, id := range pageOrder {
		label := fmt.Sprintf(" %d:%s ", i+1, pageDescs[id].title)
		if id == as.active {
			parts = append(parts, styles.activeTab.Render(label))
		} else {
			parts = append(parts, styles.tab.Render(label))
		}
	}
	nav := strings.Join(parts, "")

	pad := as.winW - lipgloss.Width(nav)
	if pad < 0 {
		pad = 0
	}
	return nav + styles.header.Render(strings.Repeat(" ", pad))
}

func (cw consoleWindow) footerHelp() string {
	switch cw.as.active {
	case pageProducts:
		return "n:new e:edit t:toggle s:stock x:deduct D:del "
	case pageOrders:
		return "p:pay s:advance D:del u:user "
	case pageCart:
		return "spc:sel +/-:qty d:rm c:checkout P:pay "
	case pageUsers:
		return "n:register t:filter i:lookup "
	case pageRanking:
		return "t:type l:limit "
	case pageAnalysis:
		return "d:date "
	default:
		return "1-7:pages r:refresh L:login q:quit "
	}
}

func (cw consoleWindow) View() string {
	return fmt.Sprintf("%s\n%s\n%s",
		cw.headerView(),
		cw.viewport.View(),
		cw.as.footerView(cw.footerHelp()))
}
