package client

import (
	"context"
	"net/http"
	"net/url"
)

// DashboardStats fetches the aggregate dashboard figures.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var res DashboardStats
	if err := c.do(ctx, http.MethodGet, "/analysis/dashboard", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DailyStats fetches the sales analysis record for one day. The date uses
// the "2006-01-02" form.
func (c *Client) DailyStats(ctx context.Context, date string) (*DailyStats, error) {
	if date == "" {
		return nil, &ValidationError{Field: "date", Msg: "no date provided"}
	}
	var res DailyStats
	path := "/analysis/daily/" + url.PathEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RealtimeDashboard fetches the realtime variant of the dashboard figures.
func (c *Client) RealtimeDashboard(ctx context.Context) (*DashboardStats, error) {
	var res DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/realtime", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
