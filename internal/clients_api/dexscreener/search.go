package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Search queries pairs matching the given free-text term.
func (c *Client) Search(ctx context.Context, term string) ([]Pair, error) {
	endpoint := "/latest/dex/search?q=" + url.QueryEscape(term)

	body, err := c.MakeRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}

	return resp.Pairs, nil
}
