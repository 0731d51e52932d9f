package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// RankingType selects which product ranking to fetch.
type RankingType string

const (
	RankingDaily  RankingType = "daily"
	RankingWeekly RankingType = "weekly"
	RankingHot    RankingType = "hot"
)

// rankingProductPrefix tags ranking members that refer to products.
const rankingProductPrefix = "product:"

// Ranking fetches up to limit entries of the given ranking. The backend
// stores ranking members as loosely typed set elements; each is coerced to a
// string and stripped of the product prefix before being returned in rank
// order.
func (c *Client) Ranking(ctx context.Context, typ RankingType, limit int) ([]RankingEntry, error) {
	switch typ {
	case RankingDaily, RankingWeekly, RankingHot:
	default:
		return nil, &ValidationError{Field: "type",
			Msg: fmt.Sprintf("unknown ranking type %q", typ)}
	}
	path := fmt.Sprintf("/ranking/%s?limit=%d", url.PathEscape(string(typ)), limit)
	return c.fetchRanking(ctx, path)
}

// HotRanking fetches the hot products ranking.
func (c *Client) HotRanking(ctx context.Context, limit int) ([]RankingEntry, error) {
	return c.fetchRanking(ctx, fmt.Sprintf("/ranking/hot?limit=%d", limit))
}

// DashboardHotProducts fetches the hot product entries shown on the realtime
// dashboard.
func (c *Client) DashboardHotProducts(ctx context.Context, limit int) ([]RankingEntry, error) {
	return c.fetchRanking(ctx, fmt.Sprintf("/dashboard/hot-products?limit=%d", limit))
}

func (c *Client) fetchRanking(ctx context.Context, path string) ([]RankingEntry, error) {
	var raw []interface{}
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	entries := make([]RankingEntry, 0, len(raw))
	for _, m := range raw {
		id := strings.TrimPrefix(cast.ToString(m), rankingProductPrefix)
		if id == "" {
			continue
		}
		entries = append(entries, RankingEntry{
			Rank:      len(entries) + 1,
			ProductID: id,
		})
	}
	return entries, nil
}
