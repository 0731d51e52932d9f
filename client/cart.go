package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CartItems lists the cart of the given user.
func (c *Client) CartItems(ctx context.Context, userID string) ([]CartItem, error) {
	if userID == "" {
		return nil, errMissingUserID()
	}
	var res []CartItem
	path := "/cart/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// ClearCart removes every item from the user's cart.
func (c *Client) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return errMissingUserID()
	}
	return c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(userID), nil, nil)
}

// SetCartQuantity changes the quantity of a cart item. Quantities below one
// are rejected locally.
func (c *Client) SetCartQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if userID == "" {
		return errMissingUserID()
	}
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Msg: "quantity must be at least 1"}
	}
	path := fmt.Sprintf("/cart/%s/items/%s?quantity=%d",
		url.PathEscape(userID), url.PathEscape(productID), quantity)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// RemoveCartItem removes one item from the user's cart.
func (c *Client) RemoveCartItem(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return errMissingUserID()
	}
	path := fmt.Sprintf("/cart/%s/items/%s",
		url.PathEscape(userID), url.PathEscape(productID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// SetCartSelected toggles the selection flag of a cart item.
func (c *Client) SetCartSelected(ctx context.Context, userID, productID string, selected bool) error {
	if userID == "" {
		return errMissingUserID()
	}
	path := fmt.Sprintf("/cart/%s/items/%s/select?selected=%t",
		url.PathEscape(userID), url.PathEscape(productID), selected)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// Checkout converts the currently selected cart items into an order. The
// conversion is atomic on the server; the client only forwards the request
// and reports whatever the server decided.
func (c *Client) Checkout(ctx context.Context, userID string) (*Order, error) {
	if userID == "" {
		return nil, errMissingUserID()
	}
	var res Order
	path := fmt.Sprintf("/cart/%s/checkout", url.PathEscape(userID))
	if err := c.do(ctx, http.MethodPost, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CartCount returns the number of items in the user's cart.
func (c *Client) CartCount(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, errMissingUserID()
	}
	var res int
	path := fmt.Sprintf("/cart/%s/count", url.PathEscape(userID))
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return 0, err
	}
	return res, nil
}
