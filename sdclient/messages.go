package main

import (
	"github.com/salesdesk/salesdesk/client"
)

// logUpdated is sent by the log backend when new log messages are generated.
type logUpdated struct {
	line string
}

// msgPageData carries the data a page loader fetched. seq identifies the
// request generation; stale generations are dropped.
type msgPageData struct {
	page pageID
	seq  uint64
	data interface{}
}

// msgPageErr is the failure counterpart of msgPageData.
type msgPageErr struct {
	page pageID
	seq  uint64
	err  error
}

// msgRefreshTick triggers a periodic reload of the active page. Ticks from a
// superseded generation are ignored, which is how page switches cancel the
// previous page's refresh.
type msgRefreshTick struct {
	page pageID
	seq  uint64
}

// msgShowToast displays a transient status line in the footer.
type msgShowToast struct {
	kind toastKind
	text string
}

// msgExpireToast removes the toast with the given id.
type msgExpireToast struct {
	id uint64
}

// msgUserLookup is sent when an explicit user id lookup finishes.
type msgUserLookup struct {
	user *client.User
	err  error
}

// msgLoginResult is sent when an async login attempt finishes.
type msgLoginResult struct {
	user *client.User
	err  error
}

// msgValidateResult is sent when validation of a restored session finishes.
type msgValidateResult struct {
	user *client.User
	err  error
}

// msgLogoutResult is sent when an async logout finishes.
type msgLogoutResult struct {
	err error
}

// msgActionDone is sent when a mutating call (create, update, delete, stock
// or status change, cart edit) finishes. The named page is reloaded on
// success.
type msgActionDone struct {
	page pageID
	text string
	err  error
}

// msgStartCheckout is emitted by the checkout confirmation window. The main
// window flips the busy flag before starting the backend calls, so a second
// confirmation can't double-submit.
type msgStartCheckout struct {
	userID string
	pay    bool
}

// msgCheckoutDone is sent when a cart checkout finishes.
type msgCheckoutDone struct {
	order *client.Order
	err   error
}

// msgQuickPayDone is sent when the create-order-then-pay sequence finishes.
// order is the created order, which exists even when the pay step failed.
type msgQuickPayDone struct {
	order *client.Order
	err   error
}

type msgCancelForm struct{}
type msgSubmitForm struct{}
