package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salesdesk/salesdesk/client"
	"github.com/salesdesk/salesdesk/session"
)

// newTestAppState builds an appState talking to a fake backend, plus a
// counter of how many requests actually hit that backend.
func newTestAppState(t *testing.T, handler http.Handler) (*appState, *int32) {
	t.Helper()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if handler != nil {
			handler.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(client.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	logBknd, err := newLogBackend(nil, nil, "", "off", 0)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config{
		ServerAddr: srv.URL,
		PageLimit:  10,
		// RefreshSecs left at 0 so tests don't schedule ticks.
	}
	sess := session.NewStore(filepath.Join(t.TempDir(), "session.json"), nil)

	as := newAppState(cfg, c, sess, logBknd)
	as.sendMsg = func(tea.Msg) {}
	as.winW, as.winH = 80, 24
	t.Cleanup(as.cancel)
	return as, &calls
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func lastToastText(as *appState) string {
	if len(as.toasts) == 0 {
		return ""
	}
	return as.toasts[len(as.toasts)-1].text
}

func TestStaleResultsAreDropped(t *testing.T) {
	as, _ := newTestAppState(t, nil)

	pl := as.page(pageProducts)
	pl.seq = 2
	pl.loading = true

	// A result from a superseded generation changes nothing.
	changed, _ := as.handlePageMsg(msgPageData{
		page: pageProducts, seq: 1, data: &productsData{},
	})
	if changed || pl.data != nil || !pl.loading {
		t.Fatal("stale result was applied")
	}

	// The current generation lands.
	changed, _ = as.handlePageMsg(msgPageData{
		page: pageProducts, seq: 2, data: &productsData{},
	})
	if !changed || pl.data == nil || pl.loading {
		t.Fatal("current result was not applied")
	}
}

func TestStaleRefreshTickIsIgnored(t *testing.T) {
	as, _ := newTestAppState(t, nil)
	as.active = pageProducts
	as.page(pageProducts).seq = 2

	if _, cmd := as.handlePageMsg(msgRefreshTick{page: pageProducts, seq: 1}); cmd != nil {
		t.Fatal("stale tick produced a reload")
	}

	// Ticks for inactive pages are also ignored.
	as.page(pageOrders).seq = 1
	if _, cmd := as.handlePageMsg(msgRefreshTick{page: pageOrders, seq: 1}); cmd != nil {
		t.Fatal("tick for inactive page produced a reload")
	}
}

func TestCheckoutWithNothingSelectedSkipsBackend(t *testing.T) {
	as, calls := newTestAppState(t, nil)
	as.active = pageCart
	as.page(pageCart).data = &cartData{
		userID: "u1",
		items: []client.CartItem{
			{ProductID: "a", ProductName: "Cup", Price: 10, Quantity: 1},
		},
	}

	cw, _ := newConsoleWindow(as)
	_, cmd := cw.handleCartKey(keyMsg("c"))
	if cmd == nil {
		t.Fatal("expected a toast cmd")
	}
	if got := lastToastText(as); !strings.Contains(got, "No cart items selected") {
		t.Fatalf("unexpected toast: %q", got)
	}
	if n := atomic.LoadInt32(calls); n != 0 {
		t.Fatalf("backend was called %d times", n)
	}
}

func TestCheckoutBusyGuard(t *testing.T) {
	as, calls := newTestAppState(t, nil)
	as.active = pageCart
	as.busy = true
	as.page(pageCart).data = &cartData{
		userID: "u1",
		items: []client.CartItem{
			{ProductID: "a", ProductName: "Cup", Price: 10, Quantity: 1, Selected: true},
		},
	}

	cw, _ := newConsoleWindow(as)
	_, _ = cw.handleCartKey(keyMsg("c"))
	if got := lastToastText(as); !strings.Contains(got, "already in flight") {
		t.Fatalf("unexpected toast: %q", got)
	}
	if n := atomic.LoadInt32(calls); n != 0 {
		t.Fatalf("backend was called %d times", n)
	}
}

func TestCheckoutFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /cart/u1/checkout", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"orderId":"o9","userId":"u1","actualAmount":20,"status":1}`))
	})
	as, _ := newTestAppState(t, mux)
	as.active = pageCart

	cw, _ := newConsoleWindow(as)
	model, cmd := cw.Update(msgStartCheckout{userID: "u1"})
	if !as.busy {
		t.Fatal("busy flag not set while checkout in flight")
	}
	if cmd == nil {
		t.Fatal("no checkout cmd returned")
	}

	// Run the checkout cmd and feed the result back.
	res := cmd()
	done, ok := res.(msgCheckoutDone)
	if !ok {
		t.Fatalf("unexpected msg type %T", res)
	}
	if done.err != nil {
		t.Fatal(done.err)
	}
	if done.order == nil || done.order.OrderID != "o9" {
		t.Fatalf("unexpected order: %+v", done.order)
	}

	model, _ = model.Update(done)
	if as.busy {
		t.Fatal("busy flag not cleared after checkout")
	}
	if got := lastToastText(as); !strings.Contains(got, "o9") {
		t.Fatalf("unexpected toast: %q", got)
	}
	if _, ok := model.(consoleWindow); !ok {
		t.Fatalf("unexpected model type %T", model)
	}
}

func TestProductsSortedWhenApplied(t *testing.T) {
	as, _ := newTestAppState(t, nil)

	pl := as.page(pageProducts)
	pl.seq = 1
	data := &productsData{products: []client.Product{
		{ProductID: "c", Name: "pear"},
		{ProductID: "a", Name: "apple"},
		{ProductID: "b", Name: "mango"},
	}}
	changed, _ := as.handlePageMsg(msgPageData{
		page: pageProducts, seq: 1, data: data,
	})
	if !changed {
		t.Fatal("result was not applied")
	}

	got := pl.data.(*productsData).products
	want := []string{"apple", "mango", "pear"}
	for i := range want {
		if got[i].Name != want[i] {
			t.Fatalf("unexpected order at %d: got %q, want %q",
				i, got[i].Name, want[i])
		}
	}
}

// Product loads run in their own goroutines; only the application of the
// result may touch the collator.
func TestConcurrentProductLoads(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"productId":"c","name":"pear"},` +
			`{"productId":"a","name":"apple"}]`))
	})
	mux.HandleFunc("GET /products/low-stock", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	as, _ := newTestAppState(t, mux)

	const n = 8
	msgs := make(chan tea.Msg, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		cmd := loadProducts(as, uint64(i+1))
		wg.Add(1)
		go func() {
			defer wg.Done()
			msgs <- cmd()
		}()
	}
	wg.Wait()
	close(msgs)

	as.page(pageProducts).seq = n
	var applied bool
	for msg := range msgs {
		changed, _ := as.handlePageMsg(msg)
		applied = applied || changed
	}
	if !applied {
		t.Fatal("no load result was applied")
	}

	got := as.page(pageProducts).data.(*productsData).products
	if len(got) != 2 || got[0].Name != "apple" || got[1].Name != "pear" {
		t.Fatalf("unexpected products: %+v", got)
	}
}

func TestShowPageIgnoresUnknownID(t *testing.T) {
	as, _ := newTestAppState(t, nil)
	before := as.active
	if cmd := as.showPage(pageID("bogus")); cmd != nil {
		t.Fatal("unknown page produced a load cmd")
	}
	if as.active != before {
		t.Fatal("active page changed for unknown id")
	}
}
