package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/salesdesk/salesdesk/client"
)

func TestProductFormCreateSendsID(t *testing.T) {
	var got client.Product
	mux := http.NewServeMux()
	mux.HandleFunc("POST /products", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("unable to decode body: %v", err)
		}
	})
	as, calls := newTestAppState(t, mux)

	model, _ := newProductFormWindow(as, nil)
	pfw := model.(productFormWindow)
	pfw.productID.SetValue("p7")
	pfw.name.SetValue("Cup")
	pfw.price.SetValue("10.50")
	pfw.stock.SetValue("3")

	cmd, ok := pfw.submit()
	if !ok {
		t.Fatalf("submit rejected the form: %q", lastToastText(as))
	}
	done, ok := cmd().(msgActionDone)
	if !ok {
		t.Fatal("submit cmd did not produce an action result")
	}
	if done.err != nil {
		t.Fatal(done.err)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Fatalf("backend was called %d times", n)
	}
	if got.ProductID != "p7" || got.Name != "Cup" {
		t.Fatalf("unexpected created product: %+v", got)
	}
}

func TestProductFormCreateRequiresID(t *testing.T) {
	as, calls := newTestAppState(t, nil)

	model, _ := newProductFormWindow(as, nil)
	pfw := model.(productFormWindow)
	pfw.name.SetValue("Cup")
	pfw.price.SetValue("10.50")
	pfw.stock.SetValue("3")

	cmd, ok := pfw.submit()
	if ok {
		t.Fatal("submit accepted a form without a product id")
	}
	if cmd == nil {
		t.Fatal("expected a toast cmd")
	}
	if got := lastToastText(as); !strings.Contains(got, "Product id") {
		t.Fatalf("unexpected toast: %q", got)
	}
	if n := atomic.LoadInt32(calls); n != 0 {
		t.Fatalf("backend was called %d times", n)
	}
}

func TestProductFormEditKeepsID(t *testing.T) {
	var got client.Product
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /products/p7", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("unable to decode body: %v", err)
		}
	})
	as, calls := newTestAppState(t, mux)

	orig := &client.Product{
		ProductID: "p7",
		Name:      "Cup",
		Price:     10.5,
		Status:    client.ProductListed,
	}
	model, _ := newProductFormWindow(as, orig)
	pfw := model.(productFormWindow)
	if pfw.productID != nil {
		t.Fatal("edit form exposes a product id input")
	}
	pfw.name.SetValue("Big cup")

	cmd, ok := pfw.submit()
	if !ok {
		t.Fatalf("submit rejected the form: %q", lastToastText(as))
	}
	done, ok := cmd().(msgActionDone)
	if !ok {
		t.Fatal("submit cmd did not produce an action result")
	}
	if done.err != nil {
		t.Fatal(done.err)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Fatalf("backend was called %d times", n)
	}
	if got.ProductID != "p7" || got.Name != "Big cup" {
		t.Fatalf("unexpected updated product: %+v", got)
	}
}
