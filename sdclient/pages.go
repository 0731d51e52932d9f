package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salesdesk/salesdesk/client"
)

// hotProductsShown caps the dashboard's hot product list; lowStockShown caps
// the products page's low stock sublist.
const (
	hotProductsShown = 10
	lowStockShown    = 5
)

// pageID identifies one of the console's pages.
type pageID string

const (
	pageDashboard pageID = "dashboard"
	pageProducts  pageID = "products"
	pageOrders    pageID = "orders"
	pageCart      pageID = "cart"
	pageUsers     pageID = "users"
	pageRanking   pageID = "ranking"
	pageAnalysis  pageID = "analysis"
)

// pageOrder is the nav bar order. The index doubles as the shortcut key
// (1-based).
var pageOrder = []pageID{
	pageDashboard,
	pageProducts,
	pageOrders,
	pageCart,
	pageUsers,
	pageRanking,
	pageAnalysis,
}

type pageDesc struct {
	title string
	load  func(as *appState, seq uint64) tea.Cmd
}

// pageDescs is the closed set of pages. showPage ignores ids outside it.
var pageDescs = map[pageID]pageDesc{
	pageDashboard: {title: "Dashboard", load: loadDashboard},
	pageProducts:  {title: "Products", load: loadProducts},
	pageOrders:    {title: "Orders", load: loadOrders},
	pageCart:      {title: "Cart", load: loadCart},
	pageUsers:     {title: "Users", load: loadUsers},
	pageRanking:   {title: "Ranking", load: loadRanking},
	pageAnalysis:  {title: "Analysis", load: loadAnalysis},
}

// Per-page data payloads, carried inside msgPageData.

type dashboardData struct {
	stats *client.DashboardStats
	hot   []client.Product
}

type productsData struct {
	products []client.Product

	// lowStock is a best-effort sublist; an empty list may mean the
	// lookup failed.
	lowStock []client.Product
}

type ordersData struct {
	// recent is set when no user id was available and the global recent
	// orders were fetched instead.
	recent bool
	userID string
	orders []client.Order
}

type cartData struct {
	userID string
	items  []client.CartItem

	// count is the server-side cart badge count.
	count int
}

type usersData struct {
	status int
	users  []client.User
}

type rankingData struct {
	typ     client.RankingType
	entries []client.RankingEntry

	// products resolves the ranked ids for display; missing entries mean
	// the product lookup failed and the bare id is shown.
	products map[string]*client.Product
}

type analysisData struct {
	date  string
	daily *client.DailyStats
	stats *client.DashboardStats
}

func loadDashboard(as *appState, seq uint64) tea.Cmd {
	return as.loadCmd(pageDashboard, seq, func(ctx context.Context) (interface{}, error) {
		stats, err := as.c.RealtimeDashboard(ctx)
		if err != nil {
			return nil, err
		}
		hot, err := as.c.HotProducts(ctx, hotProductsShown)
		if err != nil {
			return nil, err
		}
		return &dashboardData{stats: stats, hot: hot}, nil
	})
}

func loadProducts(as *appState, seq uint64) tea.Cmd {
	return as.loadCmd(pageProducts, seq, func(ctx context.Context) (interface{}, error) {
		products, err := as.c.Products(ctx, as.cfg.PageLimit)
		if err != nil {
			return nil, err
		}
		lowStock, err := as.c.LowStockProducts(ctx, lowStockShown)
		if err != nil {
			as.log.Debugf("Unable to fetch low stock products: %v", err)
		}
		return &productsData{products: products, lowStock: lowStock}, nil
	})
}

func loadOrders(as *appState, seq uint64) tea.Cmd {
	userID := as.orderUserID()
	return as.loadCmd(pageOrders, seq, func(ctx context.Context) (interface{}, error) {
		if userID == "" {
			orders, err := as.c.RecentOrders(ctx, as.cfg.PageLimit)
			if err != nil {
				return nil, err
			}
			return &ordersData{recent: true, orders: orders}, nil
		}
		orders, err := as.c.UserOrders(ctx, userID, as.cfg.PageLimit)
		if err != nil {
			return nil, err
		}
		return &ordersData{userID: userID, orders: orders}, nil
	})
}

func loadCart(as *appState, seq uint64) tea.Cmd {
	userID := as.orderUserID()
	return as.loadCmd(pageCart, seq, func(ctx context.Context) (interface{}, error) {
		if userID == "" {
			return nil, errNoUserID
		}
		items, err := as.c.CartItems(ctx, userID)
		if err != nil {
			return nil, err
		}
		count, err := as.c.CartCount(ctx, userID)
		if err != nil {
			as.log.Debugf("Unable to fetch cart count: %v", err)
			count = len(items)
		}
		return &cartData{userID: userID, items: items, count: count}, nil
	})
}

func loadUsers(as *appState, seq uint64) tea.Cmd {
	status := as.userStatusFilter
	return as.loadCmd(pageUsers, seq, func(ctx context.Context) (interface{}, error) {
		users, err := as.c.UsersByStatus(ctx, status, as.cfg.PageLimit)
		if err != nil {
			return nil, err
		}
		return &usersData{status: status, users: users}, nil
	})
}

func loadRanking(as *appState, seq uint64) tea.Cmd {
	typ := as.rankingType
	limit := as.rankingLimit
	if limit <= 0 {
		limit = as.cfg.PageLimit
	}
	return as.loadCmd(pageRanking, seq, func(ctx context.Context) (interface{}, error) {
		entries, err := as.c.Ranking(ctx, typ, limit)
		if err != nil {
			return nil, err
		}

		// Resolve ranked product ids for display. Individual lookup
		// failures degrade to showing the bare id.
		products := make(map[string]*client.Product, len(entries))
		for _, e := range entries {
			if _, ok := products[e.ProductID]; ok {
				continue
			}
			p, err := as.c.Product(ctx, e.ProductID)
			if err != nil {
				as.log.Debugf("Unable to resolve ranked product %s: %v",
					e.ProductID, err)
				continue
			}
			products[e.ProductID] = p
		}
		return &rankingData{typ: typ, entries: entries, products: products}, nil
	})
}

func loadAnalysis(as *appState, seq uint64) tea.Cmd {
	date := as.analysisDate
	if date == "" {
		date = today()
	}
	return as.loadCmd(pageAnalysis, seq, func(ctx context.Context) (interface{}, error) {
		daily, err := as.c.DailyStats(ctx, date)
		if err != nil {
			return nil, err
		}
		stats, err := as.c.DashboardStats(ctx)
		if err != nil {
			return nil, err
		}
		return &analysisData{date: date, daily: daily, stats: stats}, nil
	})
}
