package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unable to create client: %v", err)
	}
	return c, srv
}

func TestRequestDecodesJSON(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"productId":"p1","name":"tea","price":12.5}`))
	}))

	p, err := c.Product(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if p.ProductID != "p1" || p.Name != "tea" || p.Price != 12.5 {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestRequestEmptyBodyIsAbsence(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	raw, err := c.request(context.Background(), http.MethodGet, "/whatever", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected absent payload, got %q", raw)
	}
}

func TestRequestNonJSONContentTypeIsAbsence(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	}))

	raw, err := c.request(context.Background(), http.MethodGet, "/whatever", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected absent payload, got %q", raw)
	}
}

func TestRequestHTTPError(t *testing.T) {
	body := strings.Repeat("server error ", 40) // > 300 chars
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, body, http.StatusInternalServerError)
	}))

	_, err := c.Product(context.Background(), "p1")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", httpErr.Status)
	}
	if len(httpErr.Body) > maxErrBody {
		t.Fatalf("body not truncated: %d bytes", len(httpErr.Body))
	}
	if !strings.Contains(httpErr.Error(), "500") {
		t.Fatalf("error message misses status: %q", httpErr.Error())
	}
	if !strings.Contains(httpErr.Error(), body[:maxErrBody]) {
		t.Fatalf("error message misses body snippet: %q", httpErr.Error())
	}
}

func TestRequestDecodeError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"productId": "p1",`))
	}))

	_, err := c.Product(context.Background(), "p1")
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if !strings.Contains(decErr.Raw, `"productId"`) {
		t.Fatalf("decode error misses raw text: %q", decErr.Raw)
	}
}

func TestValidationShortCircuits(t *testing.T) {
	var calls int
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	ctx := context.Background()
	var vErr *ValidationError

	if _, err := c.CartItems(ctx, ""); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if err := c.SetCartQuantity(ctx, "u1", "p1", 0); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := c.UserOrders(ctx, "", 10); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := c.Ranking(ctx, "bogus", 10); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if calls != 0 {
		t.Fatalf("validation failures still hit the network %d times", calls)
	}
}

func TestLoginParsesEnvelope(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/login" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("username"); got != "alice" {
			t.Errorf("unexpected username %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"data":{"sessionId":"sess-1","userId":"u1"}}`))
	}))

	sessID, err := c.Login(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if sessID != "sess-1" {
		t.Fatalf("unexpected session id %q", sessID)
	}
}

func TestRankingStripsProductPrefix(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["product:p9","product:p3",1007]`))
	}))

	entries, err := c.HotRanking(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []RankingEntry{
		{Rank: 1, ProductID: "p9"},
		{Rank: 2, ProductID: "p3"},
		{Rank: 3, ProductID: "1007"},
	}
	if len(entries) != len(want) {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestEndpointPaths(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client) error
		path string
	}{{
		name: "set stock",
		call: func(c *Client) error {
			return c.SetStock(context.Background(), "p1", 7)
		},
		path: "/products/p1/stock?stock=7",
	}, {
		name: "deduct stock",
		call: func(c *Client) error {
			return c.DeductStock(context.Background(), "p1", 2)
		},
		path: "/products/p1/stock/deduct?quantity=2",
	}, {
		name: "cart select",
		call: func(c *Client) error {
			return c.SetCartSelected(context.Background(), "u1", "p1", true)
		},
		path: "/cart/u1/items/p1/select?selected=true",
	}, {
		name: "quick pay",
		call: func(c *Client) error {
			return c.QuickPay(context.Background(), "o1")
		},
		path: "/orders/o1/quick-pay",
	}, {
		name: "order status",
		call: func(c *Client) error {
			return c.UpdateOrderStatus(context.Background(), "o1", OrderShipped)
		},
		path: "/orders/o1/status?status=3",
	}, {
		name: "users by status",
		call: func(c *Client) error {
			_, err := c.UsersByStatus(context.Background(), UserActive, 20)
			return err
		},
		path: "/users/status/1?limit=20",
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotPath string
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.String()
			}))
			if err := tc.call(c); err != nil {
				t.Fatal(err)
			}
			if gotPath != tc.path {
				t.Fatalf("unexpected path: got %s, want %s", gotPath, tc.path)
			}
		})
	}
}
