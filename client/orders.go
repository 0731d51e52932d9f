package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// UserOrders lists up to limit orders of the given user.
func (c *Client) UserOrders(ctx context.Context, userID string, limit int) ([]Order, error) {
	if userID == "" {
		return nil, errMissingUserID()
	}
	var res []Order
	path := fmt.Sprintf("/orders/user/%s?limit=%d", url.PathEscape(userID), limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Order fetches a single order by id.
func (c *Client) Order(ctx context.Context, id string) (*Order, error) {
	if id == "" {
		return nil, &ValidationError{Field: "orderId", Msg: "no order id provided"}
	}
	var res Order
	path := "/orders/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateOrder submits a new order and returns the stored version, which
// carries the server-assigned order id.
func (c *Client) CreateOrder(ctx context.Context, o *Order) (*Order, error) {
	if o.UserID == "" {
		return nil, errMissingUserID()
	}
	if len(o.Items) == 0 {
		return nil, &ValidationError{Field: "items", Msg: "order has no items"}
	}
	var res Order
	if err := c.do(ctx, http.MethodPost, "/orders", o, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateOrderStatus moves the order to the given status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error {
	path := fmt.Sprintf("/orders/%s/status?status=%d", url.PathEscape(id), status)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// DeleteOrder removes the order.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	path := "/orders/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// QuickPay pays an existing order in a single step.
func (c *Client) QuickPay(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Field: "orderId", Msg: "no order id provided"}
	}
	path := fmt.Sprintf("/orders/%s/quick-pay", url.PathEscape(id))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// RecentOrders lists the most recent orders across all users.
func (c *Client) RecentOrders(ctx context.Context, limit int) ([]Order, error) {
	var res []Order
	path := fmt.Sprintf("/orders/recent?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}
