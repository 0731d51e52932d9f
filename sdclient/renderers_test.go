package main

import (
	"strings"
	"testing"

	"github.com/salesdesk/salesdesk/client"
)

func TestRenderDashboard(t *testing.T) {
	styles := newTheme()
	data := &dashboardData{
		stats: &client.DashboardStats{
			TotalAmount: 1000,
			OrderCount:  5,
			UserCount:   3,
			AvgPrice:    200,
		},
		hot: []client.Product{
			{ProductID: "p1", Name: "Tea Set", Price: 199.9},
		},
	}

	got := renderDashboard(styles, 80, data)
	for _, want := range []string{"¥ 1000.00", "¥ 200.00", "Tea Set", "¥ 199.90"} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered dashboard missing %q:\n%s", want, got)
		}
	}

	// Rendering is pure; a second render is identical.
	if again := renderDashboard(styles, 80, data); again != got {
		t.Fatal("render is not deterministic")
	}
}

func TestRenderProductDetail(t *testing.T) {
	styles := newTheme()
	p := &client.Product{
		ProductID:     "p42",
		Name:          "Kettle",
		Category:      "kitchen",
		Price:         12.5,
		Status:        client.ProductListed,
		RealTimeStock: 7,
		Description:   "A very long description that should be wrapped to the window width rather than run off the edge of the screen.",
	}

	got := renderProductDetail(styles, 40, p)
	for _, want := range []string{"p42", "Kettle", "¥ 12.50", "listed", "7"} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered detail missing %q:\n%s", want, got)
		}
	}

	// The wrapped description must not exceed the window width.
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 60 {
			t.Fatalf("line too long: %q", line)
		}
	}
}

func TestRenderProductDetailSanitizes(t *testing.T) {
	styles := newTheme()
	p := &client.Product{
		ProductID: "p1",
		Name:      "evil\x1b[31mname",
	}
	got := renderProductDetail(styles, 80, p)
	if strings.Contains(got, "\x1b[31m") {
		t.Fatal("control sequence from backend data leaked into output")
	}
}

func TestRenderLoadFailure(t *testing.T) {
	styles := newTheme()
	err := &client.HTTPError{Status: 500, Body: "boom"}
	got := renderLoadFailure(styles, pageProducts, err)
	for _, want := range []string{"products", "500", "boom"} {
		if !strings.Contains(got, want) {
			t.Fatalf("failure placeholder missing %q:\n%s", want, got)
		}
	}
}

func TestCartTotals(t *testing.T) {
	items := []client.CartItem{
		{ProductID: "a", Price: 10, Quantity: 2, Selected: true},
		{ProductID: "b", Price: 5, Quantity: 1, Selected: false},
		{ProductID: "c", Price: 1.5, Quantity: 4, Selected: true},
	}
	count, amount := cartTotals(items)
	if count != 6 {
		t.Fatalf("unexpected count: %d", count)
	}
	if amount != 26 {
		t.Fatalf("unexpected amount: %v", amount)
	}
}

func TestRenderCart(t *testing.T) {
	styles := newTheme()

	if got := renderCart(styles, 80, &cartData{}, 0); !strings.Contains(got, "empty") {
		t.Fatalf("empty cart not reported:\n%s", got)
	}

	data := &cartData{
		userID: "u1",
		items: []client.CartItem{
			{ProductID: "a", ProductName: "Cup", Price: 10, Quantity: 2, Selected: true},
			{ProductID: "b", ProductName: "Pot", Price: 30, Quantity: 1},
		},
	}
	got := renderCart(styles, 80, data, 0)
	if !strings.Contains(got, "[x]") || !strings.Contains(got, "[ ]") {
		t.Fatalf("selection marks missing:\n%s", got)
	}
	if !strings.Contains(got, "¥ 20.00") {
		t.Fatalf("selected total missing:\n%s", got)
	}
}

func TestRenderRankingFallsBackToID(t *testing.T) {
	styles := newTheme()
	data := &rankingData{
		typ: client.RankingDaily,
		entries: []client.RankingEntry{
			{Rank: 1, ProductID: "p1"},
			{Rank: 2, ProductID: "p2"},
		},
		products: map[string]*client.Product{
			"p1": {ProductID: "p1", Name: "Teapot", Price: 30},
		},
	}

	got := renderRanking(styles, 80, data)
	if !strings.Contains(got, "Teapot") {
		t.Fatalf("resolved product name missing:\n%s", got)
	}
	// p2 failed to resolve; its bare id is shown.
	if !strings.Contains(got, "p2") {
		t.Fatalf("unresolved entry not shown by id:\n%s", got)
	}
}

func TestRenderOrders(t *testing.T) {
	styles := newTheme()
	data := &ordersData{
		recent: true,
		orders: []client.Order{
			{OrderID: "o1", ActualAmount: 99.9, Status: client.OrderAwaitingPayment},
			{OrderID: "o2", ActualAmount: 10, Status: client.OrderCompleted},
		},
	}
	got := renderOrders(styles, 80, data, 1)
	for _, want := range []string{"recent orders", "o1", "awaiting payment", "o2", "completed"} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered orders missing %q:\n%s", want, got)
		}
	}
}
