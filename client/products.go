package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Products lists up to limit products.
func (c *Client) Products(ctx context.Context, limit int) ([]Product, error) {
	var res []Product
	path := fmt.Sprintf("/products?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, &ValidationError{Field: "productId", Msg: "no product id provided"}
	}
	var res Product
	path := "/products/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateProduct registers a new product.
func (c *Client) CreateProduct(ctx context.Context, p *Product) error {
	if p.ProductID == "" {
		return &ValidationError{Field: "productId", Msg: "no product id provided"}
	}
	if p.Name == "" {
		return &ValidationError{Field: "name", Msg: "no product name provided"}
	}
	return c.do(ctx, http.MethodPost, "/products", p, nil)
}

// UpdateProduct replaces the stored product identified by p.ProductID.
func (c *Client) UpdateProduct(ctx context.Context, p *Product) error {
	if p.ProductID == "" {
		return &ValidationError{Field: "productId", Msg: "no product id provided"}
	}
	path := "/products/" + url.PathEscape(p.ProductID)
	return c.do(ctx, http.MethodPut, path, p, nil)
}

// DeleteProduct removes the product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	path := "/products/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// SetStock sets the absolute stock figure of a product.
func (c *Client) SetStock(ctx context.Context, id string, stock int) error {
	if stock < 0 {
		return &ValidationError{Field: "stock", Msg: "stock cannot be negative"}
	}
	path := fmt.Sprintf("/products/%s/stock?stock=%d", url.PathEscape(id), stock)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// DeductStock deducts quantity units from a product's stock.
func (c *Client) DeductStock(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Msg: "quantity must be at least 1"}
	}
	path := fmt.Sprintf("/products/%s/stock/deduct?quantity=%d",
		url.PathEscape(id), quantity)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// Stock fetches the current real-time stock of a product.
func (c *Client) Stock(ctx context.Context, id string) (int, error) {
	var res int
	path := fmt.Sprintf("/products/%s/stock", url.PathEscape(id))
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return 0, err
	}
	return res, nil
}

// HotProducts lists the current best selling products.
func (c *Client) HotProducts(ctx context.Context, limit int) ([]Product, error) {
	var res []Product
	path := fmt.Sprintf("/products/hot?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// LowStockProducts lists products whose stock fell below their safe level.
func (c *Client) LowStockProducts(ctx context.Context, limit int) ([]Product, error) {
	var res []Product
	path := fmt.Sprintf("/products/low-stock?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}
