package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salesdesk/salesdesk/client"
)

// actionCmd wraps a mutating backend call. The named page is reloaded by the
// main window when the action succeeds.
func (as *appState) actionCmd(page pageID, successText string,
	f func(ctx context.Context) error) tea.Cmd {

	ctx := as.ctx
	return func() tea.Msg {
		err := f(ctx)
		return msgActionDone{page: page, text: successText, err: err}
	}
}

// loginCmd performs the login sequence against the backend.
func (as *appState) loginCmd(username string) tea.Cmd {
	ctx, c, sess := as.ctx, as.c, as.sess
	return func() tea.Msg {
		u, err := sess.Login(ctx, c, username)
		return msgLoginResult{user: u, err: err}
	}
}

// validateCmd re-validates a session restored from disk.
func (as *appState) validateCmd() tea.Cmd {
	ctx, c, sess := as.ctx, as.c, as.sess
	return func() tea.Msg {
		u, err := sess.Validate(ctx, c)
		return msgValidateResult{user: u, err: err}
	}
}

func (as *appState) logoutCmd() tea.Cmd {
	ctx, c, sess := as.ctx, as.c, as.sess
	return func() tea.Msg {
		return msgLogoutResult{err: sess.Logout(ctx, c)}
	}
}

// checkoutCmd creates an order from the selected cart items.
func (as *appState) checkoutCmd(userID string) tea.Cmd {
	ctx, c := as.ctx, as.c
	return func() tea.Msg {
		order, err := c.Checkout(ctx, userID)
		return msgCheckoutDone{order: order, err: err}
	}
}

// checkoutAndPayCmd checks out the cart and immediately pays the created
// order. When the pay step fails the created order is still reported, so the
// orders page shows it awaiting payment.
func (as *appState) checkoutAndPayCmd(userID string) tea.Cmd {
	ctx, c := as.ctx, as.c
	return func() tea.Msg {
		order, err := c.Checkout(ctx, userID)
		if err != nil {
			return msgQuickPayDone{err: err}
		}
		if err := c.QuickPay(ctx, order.OrderID); err != nil {
			return msgQuickPayDone{order: order, err: err}
		}
		return msgQuickPayDone{order: order}
	}
}

// payOrderCmd pays an existing order.
func (as *appState) payOrderCmd(orderID string) tea.Cmd {
	return as.actionCmd(pageOrders, "Order "+orderID+" paid",
		func(ctx context.Context) error {
			return as.c.QuickPay(ctx, orderID)
		})
}

// advanceOrderCmd moves an order to the next status.
func (as *appState) advanceOrderCmd(o *client.Order) tea.Cmd {
	if o.Status.Terminal() {
		return as.showToast(toastWarn, "Order %s is already %s",
			o.OrderID, o.Status)
	}
	next := o.Status + 1
	id := o.OrderID
	return as.actionCmd(pageOrders, "Order "+id+" moved to "+next.String(),
		func(ctx context.Context) error {
			return as.c.UpdateOrderStatus(ctx, id, next)
		})
}
