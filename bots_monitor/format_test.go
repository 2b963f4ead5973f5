package bot

import (
	"strings"
	"testing"

	"wordspotr/internal/clients_api/dexscreener"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-5, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{50000, "50.0K"},
		{1_200_000, "1.2M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in), "in=%v", tt.in)
	}
}

func TestFormatTokenMessageFallbacks(t *testing.T) {
	msg := formatTokenMessage(dexscreener.Pair{
		BaseToken: dexscreener.Token{Address: "ADDR", Name: "Moon", Symbol: "MOON"},
	}, 1, 3)

	assert.Contains(t, msg, "Token 1/3")
	assert.Contains(t, msg, "Moon")
	assert.Contains(t, msg, "ADDR")
	assert.Contains(t, msg, "Unknown") // missing chain
	assert.Contains(t, msg, "N/A")     // missing price, fdv, liquidity
}

func TestFormatTokenMessageEscapesHTML(t *testing.T) {
	msg := formatTokenMessage(dexscreener.Pair{
		BaseToken: dexscreener.Token{Address: "A", Name: "<script>", Symbol: "X&Y"},
	}, 1, 1)

	assert.NotContains(t, msg, "<script>")
	assert.Contains(t, msg, "&lt;script&gt;")
	assert.Contains(t, msg, "X&amp;Y")
}

func TestFormatAlertMessageListsMatchedWords(t *testing.T) {
	msg := formatAlertMessage(dexscreener.FeedToken{
		Address: "ADDR", Name: "MoonPepe", Symbol: "MP",
	}, []string{"moon", "pepe"})

	assert.Contains(t, msg, "NEW TOKEN ALERT")
	assert.Contains(t, msg, "moon")
	assert.Contains(t, msg, "pepe")
	assert.Contains(t, msg, "ADDR")
	assert.Equal(t, 1, strings.Count(msg, "NEW TOKEN ALERT"), "one message per token")
}

func TestTradingKeyboardLinks(t *testing.T) {
	kb := tradingKeyboard("ADDR", "MOON")

	var urls []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.URL != nil {
				urls = append(urls, *btn.URL)
			}
		}
	}
	assert.Len(t, urls, 4)
	for _, u := range urls {
		assert.Contains(t, u, "ADDR")
	}
}

func TestSearchLimiter(t *testing.T) {
	l := newSearchLimiter(3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(1), "request %d", i)
	}
	assert.False(t, l.Allow(1))

	// independent bucket per chat
	assert.True(t, l.Allow(2))
}
