package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
)

// LatestTokens fetches the current token feed for the alert scanner.
// The feed is a flat list; the API may return the list bare or wrapped
// in a "tokens" object depending on endpoint version.
func (c *Client) LatestTokens(ctx context.Context) ([]FeedToken, error) {
	body, err := c.MakeRequest(ctx, "/token-profiles/latest/v1")
	if err != nil {
		return nil, fmt.Errorf("latest tokens: %w", err)
	}

	var tokens []FeedToken
	if err := json.Unmarshal(body, &tokens); err == nil {
		return tokens, nil
	}

	var wrapped struct {
		Tokens []FeedToken `json:"tokens"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token feed: %w", err)
	}
	return wrapped.Tokens, nil
}
