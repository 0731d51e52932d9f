package main

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/salesdesk/salesdesk/client"
	"github.com/salesdesk/salesdesk/internal/strescape"
)

// Page renderers are pure functions from fetched data to text, so they can be
// exercised directly in tests. Mutation of any shared state is the update
// loop's job, never theirs.

// renderLoadFailure is the placeholder body shown when a page load failed.
func renderLoadFailure(styles *theme, page pageID, err error) string {
	var b strings.Builder
	b.WriteString(styles.err.Render(fmt.Sprintf("Unable to load %s page", page)))
	b.WriteString("\n\n")
	b.WriteString(styles.help.Render(strescape.Line(err.Error())))
	b.WriteString("\n\n")
	b.WriteString(styles.help.Render("Press R to retry."))
	return b.String()
}

func renderLoading(styles *theme) string {
	return styles.help.Render("Loading...")
}

// statLine renders one "label: value" stat line.
func statLine(b *strings.Builder, styles *theme, label, value string) {
	b.WriteString(styles.label.Render(ltjustify(label, 16)))
	b.WriteString(styles.value.Render(value))
	b.WriteString("\n")
}

func renderDashboard(styles *theme, w int, data *dashboardData) string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Realtime overview"))
	b.WriteString("\n\n")
	if data.stats != nil {
		statLine(&b, styles, "Sales", formatMoney(data.stats.TotalAmount))
		statLine(&b, styles, "Orders", fmt.Sprintf("%d", data.stats.OrderCount))
		statLine(&b, styles, "Users", fmt.Sprintf("%d", data.stats.UserCount))
		statLine(&b, styles, "Avg price", formatMoney(data.stats.AvgPrice))
	}

	b.WriteString("\n")
	b.WriteString(styles.title.Render("Hot products"))
	b.WriteString("\n\n")
	if len(data.hot) == 0 {
		b.WriteString(styles.help.Render("No hot products."))
		b.WriteString("\n")
	}
	for i, p := range data.hot {
		b.WriteString(fmt.Sprintf("%2d. %s %s\n", i+1,
			ltjustify(strescape.Line(p.Name), 32),
			formatMoney(p.Price)))
	}
	return b.String()
}

func productRow(styles *theme, w int, p *client.Product, selected bool) string {
	name := ltjustify(strescape.Line(p.Name), 28)
	cat := ltjustify(strescape.Line(p.Category), 12)
	price := ltjustify(formatMoney(p.Price), 12)
	stock := ltjustify(fmt.Sprintf("stock %d", p.Stock()), 12)
	status := client.ProductStatusLabel(p.Status)

	row := fmt.Sprintf("%s %s %s %s ", name, cat, price, stock)
	if selected {
		return styles.selected.Render(row + status)
	}
	st := styles.good
	if p.Status != client.ProductListed {
		st = styles.warn
	}
	return row + st.Render(status)
}

func renderProducts(styles *theme, w int, data *productsData, sel int) string {
	var b strings.Builder
	if len(data.products) == 0 {
		b.WriteString(styles.help.Render("No products."))
		return b.String()
	}
	for i := range data.products {
		b.WriteString(productRow(styles, w, &data.products[i], i == sel))
		b.WriteString("\n")
	}

	if len(data.lowStock) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.title.Render("Low stock"))
		b.WriteString("\n\n")
		for i := range data.lowStock {
			p := &data.lowStock[i]
			b.WriteString(styles.warn.Render(fmt.Sprintf("%s stock %d",
				ltjustify(strescape.Line(p.Name), 28), p.Stock())))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderProductDetail(styles *theme, w int, p *client.Product) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(strescape.Line(p.Name)))
	b.WriteString("\n\n")
	statLine(&b, styles, "Id", p.ProductID)
	statLine(&b, styles, "Category", strescape.Line(p.Category))
	statLine(&b, styles, "Price", formatMoney(p.Price))
	statLine(&b, styles, "Status", client.ProductStatusLabel(p.Status))
	statLine(&b, styles, "Stock", fmt.Sprintf("%d", p.Stock()))
	statLine(&b, styles, "Sales", fmt.Sprintf("%d", p.SaleCount))
	statLine(&b, styles, "Views", fmt.Sprintf("%d", p.ViewCount))
	if img := p.FirstImage(); img != "" {
		statLine(&b, styles, "Image", strescape.Line(img))
	}
	if p.Description != "" {
		b.WriteString("\n")
		wrapW := w - 2
		if wrapW < 16 {
			wrapW = 16
		}
		b.WriteString(wordwrap.String(strescape.Content(p.Description), wrapW))
		b.WriteString("\n")
	}
	return b.String()
}

func orderRow(styles *theme, w int, o *client.Order, selected bool) string {
	id := ltjustify(o.OrderID, 20)
	amount := ltjustify(formatMoney(o.ActualAmount), 12)
	date := ltjustify(formatDate(o.CreateTime), 20)
	status := o.Status.String()

	row := fmt.Sprintf("%s %s %s ", id, amount, date)
	if selected {
		return styles.selected.Render(row + status)
	}
	st := styles.value
	switch o.Status {
	case client.OrderCanceled:
		st = styles.warn
	case client.OrderCompleted:
		st = styles.good
	}
	return row + st.Render(status)
}

func renderOrders(styles *theme, w int, data *ordersData, sel int) string {
	var b strings.Builder
	if data.recent {
		b.WriteString(styles.help.Render("Showing recent orders across all users."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(styles.help.Render(fmt.Sprintf("Orders of user %s.", data.userID)))
		b.WriteString("\n\n")
	}
	if len(data.orders) == 0 {
		b.WriteString(styles.help.Render("No orders."))
		return b.String()
	}
	for i := range data.orders {
		b.WriteString(orderRow(styles, w, &data.orders[i], i == sel))
		b.WriteString("\n")
	}
	return b.String()
}

func renderOrderDetail(styles *theme, w int, o *client.Order) string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Order " + o.OrderID))
	b.WriteString("\n\n")
	statLine(&b, styles, "User", o.UserID)
	statLine(&b, styles, "Status", o.Status.String())
	statLine(&b, styles, "Total", formatMoney(o.TotalAmount))
	statLine(&b, styles, "Paid", formatMoney(o.ActualAmount))
	statLine(&b, styles, "Created", formatDate(o.CreateTime))
	if len(o.Items) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.title.Render("Items"))
		b.WriteString("\n\n")
		for _, it := range o.Items {
			b.WriteString(fmt.Sprintf("%s x%d %s\n",
				ltjustify(strescape.Line(it.ProductName), 28),
				it.Quantity, formatMoney(it.Price)))
		}
	}
	return b.String()
}

func cartRow(styles *theme, w int, it *client.CartItem, selected bool) string {
	mark := "[ ]"
	if it.Selected {
		mark = "[x]"
	}
	name := ltjustify(strescape.Line(it.ProductName), 28)
	row := fmt.Sprintf("%s %s x%-3d %s = %s", mark, name, it.Quantity,
		formatMoney(it.Price), formatMoney(it.Amount()))
	if selected {
		return styles.selected.Render(row)
	}
	return row
}

// cartTotals sums the selected cart items.
func cartTotals(items []client.CartItem) (count int, amount float64) {
	for i := range items {
		if !items[i].Selected {
			continue
		}
		count += items[i].Quantity
		amount += items[i].Amount()
	}
	return
}

func renderCart(styles *theme, w int, data *cartData, sel int) string {
	var b strings.Builder
	if len(data.items) == 0 {
		b.WriteString(styles.help.Render("Cart is empty."))
		return b.String()
	}
	b.WriteString(styles.help.Render(fmt.Sprintf("Cart of user %s (%d entries).",
		data.userID, data.count)))
	b.WriteString("\n\n")
	for i := range data.items {
		b.WriteString(cartRow(styles, w, &data.items[i], i == sel))
		b.WriteString("\n")
	}
	count, amount := cartTotals(data.items)
	b.WriteString("\n")
	b.WriteString(styles.title.Render(fmt.Sprintf("Selected: %d items, %s",
		count, formatMoney(amount))))
	b.WriteString("\n")
	return b.String()
}

func userRow(styles *theme, w int, u *client.User, selected bool) string {
	id := ltjustify(u.UserID, 12)
	name := ltjustify(strescape.Line(u.DisplayName()), 20)
	phone := ltjustify(strescape.Line(u.Phone), 16)
	reg := ltjustify(formatDate(u.RegisterTime), 20)
	status := client.UserStatusLabel(u.Status)

	row := fmt.Sprintf("%s %s %s %s ", id, name, phone, reg)
	if selected {
		return styles.selected.Render(row + status)
	}
	st := styles.good
	if u.Status != client.UserActive {
		st = styles.err
	}
	return row + st.Render(status)
}

func renderUsers(styles *theme, w int, data *usersData, sel int) string {
	var b strings.Builder
	b.WriteString(styles.help.Render(fmt.Sprintf("Users with status %q.",
		client.UserStatusLabel(data.status))))
	b.WriteString("\n\n")
	if len(data.users) == 0 {
		b.WriteString(styles.help.Render("No users."))
		return b.String()
	}
	for i := range data.users {
		b.WriteString(userRow(styles, w, &data.users[i], i == sel))
		b.WriteString("\n")
	}
	return b.String()
}

func renderUserDetail(styles *theme, w int, u *client.User) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(strescape.Line(u.DisplayName())))
	b.WriteString("\n\n")
	statLine(&b, styles, "Id", u.UserID)
	statLine(&b, styles, "Username", strescape.Line(u.Username))
	statLine(&b, styles, "Nickname", strescape.Line(u.Nickname))
	statLine(&b, styles, "Phone", strescape.Line(u.Phone))
	statLine(&b, styles, "Email", strescape.Line(u.Email))
	statLine(&b, styles, "Registered", formatDate(u.RegisterTime))
	statLine(&b, styles, "Status", client.UserStatusLabel(u.Status))
	return b.String()
}

func renderRanking(styles *theme, w int, data *rankingData) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("%s ranking", data.typ)))
	b.WriteString("\n\n")
	if len(data.entries) == 0 {
		b.WriteString(styles.help.Render("No ranking entries."))
		return b.String()
	}
	for _, e := range data.entries {
		name := e.ProductID
		var price string
		if p := data.products[e.ProductID]; p != nil {
			name = strescape.Line(p.Name)
			price = formatMoney(p.Price)
		}
		b.WriteString(fmt.Sprintf("%2d. %s %s\n", e.Rank,
			ltjustify(name, 32), price))
	}
	return b.String()
}

func renderAnalysis(styles *theme, w int, data *analysisData) string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Daily stats " + data.date))
	b.WriteString("\n\n")
	if data.daily != nil {
		statLine(&b, styles, "Sales count", fmt.Sprintf("%d", data.daily.SaleCount))
		statLine(&b, styles, "Sales amount", formatMoney(data.daily.SaleAmount))
		statLine(&b, styles, "Refund count", fmt.Sprintf("%d", data.daily.RefundCount))
		statLine(&b, styles, "Refund amount", formatMoney(data.daily.RefundAmount))
	}

	b.WriteString("\n")
	b.WriteString(styles.title.Render("Overall"))
	b.WriteString("\n\n")
	if data.stats != nil {
		statLine(&b, styles, "Sales", formatMoney(data.stats.TotalAmount))
		statLine(&b, styles, "Orders", fmt.Sprintf("%d", data.stats.OrderCount))
		statLine(&b, styles, "Users", fmt.Sprintf("%d", data.stats.UserCount))
		statLine(&b, styles, "Avg price", formatMoney(data.stats.AvgPrice))
	}
	return b.String()
}
