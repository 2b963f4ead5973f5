package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"wordspotr/internal/clients_api/dexscreener"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// formatNumber renders a USD amount compactly: 1234567 -> 1.2M.
func formatNumber(num float64) string {
	switch {
	case num <= 0:
		return "0"
	case num >= 1_000_000:
		return strconv.FormatFloat(num/1_000_000, 'f', 1, 64) + "M"
	case num >= 1_000:
		return strconv.FormatFloat(num/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatFloat(num, 'f', -1, 64)
	}
}

func chainEmoji(chain string) string {
	switch strings.ToLower(chain) {
	case "solana":
		return "☀️"
	case "ethereum":
		return "💎"
	case "bsc":
		return "⚡"
	case "ton":
		return "🔷"
	}
	return "⛓️"
}

// formatTokenMessage renders one search result (index/total are
// 1-based global positions in the result list).
func formatTokenMessage(pair dexscreener.Pair, index, total int) string {
	chain := pair.ChainID
	if chain == "" {
		chain = "Unknown"
	}

	price := "N/A"
	if pair.PriceUsd != "" {
		if v, err := strconv.ParseFloat(pair.PriceUsd, 64); err == nil {
			price = fmt.Sprintf("$%.8f", v)
		}
	}
	fdv := "N/A"
	if pair.Fdv > 0 {
		fdv = "$" + formatNumber(pair.Fdv)
	}
	liquidity := "N/A"
	if pair.Liquidity != nil && pair.Liquidity.USD > 0 {
		liquidity = "$" + formatNumber(pair.Liquidity.USD)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎯 <b>Token %d/%d</b>\n\n", index, total)
	fmt.Fprintf(&b, "💎 <b>%s</b> (%s)\n", html.EscapeString(pair.BaseToken.Name), html.EscapeString(pair.BaseToken.Symbol))
	fmt.Fprintf(&b, "%s <b>Chain:</b> %s\n", chainEmoji(chain), html.EscapeString(chain))
	fmt.Fprintf(&b, "🏪 <b>DEX:</b> %s\n", html.EscapeString(pair.DexID))
	fmt.Fprintf(&b, "💰 <b>Price:</b> <code>%s</code>\n", price)
	fmt.Fprintf(&b, "📊 <b>Market Cap:</b> <code>%s</code>\n", fdv)
	fmt.Fprintf(&b, "💧 <b>Liquidity:</b> <code>%s</code>\n", liquidity)
	fmt.Fprintf(&b, "📋 <b>CA:</b> <code>%s</code>", html.EscapeString(pair.BaseToken.Address))
	return b.String()
}

// formatAlertMessage renders one alert for a feed token, listing every
// matched saved word in a single message.
func formatAlertMessage(token dexscreener.FeedToken, matched []string) string {
	name := token.Name
	if name == "" {
		name = "Unknown"
	}
	symbol := token.Symbol
	if symbol == "" {
		symbol = "N/A"
	}
	address := token.Address
	if address == "" {
		address = "N/A"
	}
	price := token.PriceUsd
	if price == "" {
		price = "N/A"
	}
	dex := token.DexID
	if dex == "" {
		dex = "N/A"
	}
	chain := token.ChainID
	if chain == "" {
		chain = "Unknown"
	}

	words := make([]string, len(matched))
	for i, w := range matched {
		words[i] = "<code>" + html.EscapeString(w) + "</code>"
	}

	var b strings.Builder
	b.WriteString("🚨 <b>NEW TOKEN ALERT!</b>\n\n")
	fmt.Fprintf(&b, "💎 <b>%s</b> (%s)\n\n", html.EscapeString(name), html.EscapeString(symbol))
	fmt.Fprintf(&b, "🎯 <b>Matched words:</b> %s\n\n", strings.Join(words, ", "))
	b.WriteString("📊 <b>Details:</b>\n")
	fmt.Fprintf(&b, "• Price: %s\n", html.EscapeString(price))
	fmt.Fprintf(&b, "• DEX: %s\n", html.EscapeString(dex))
	fmt.Fprintf(&b, "• Chain: %s\n", html.EscapeString(chain))
	fmt.Fprintf(&b, "• CA: <code>%s</code>\n\n", html.EscapeString(address))
	b.WriteString("⚡ <b>Quick Actions:</b>")
	return b.String()
}

// tradingKeyboard builds the trade-link buttons for a token with a
// usable contract address.
func tradingKeyboard(address, symbol string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(fmt.Sprintf("🎯 Trade %s on Maestro", symbol), "https://t.me/MaestroSniperBot?start="+address),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(fmt.Sprintf("⚡ Trade %s on Trojan", symbol), "https://t.me/TrojanBot?start="+address),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(fmt.Sprintf("☀️ Trade %s on SolTradingBot", symbol), "https://t.me/SolTradingBot?start="+address),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📊 View on DexScreener", "https://dexscreener.com/search?q="+address),
		),
	)
}

// degradedAlertKeyboard is the fallback action set for tokens without a
// contract address: no direct trade links are possible.
func degradedAlertKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 Search Similar", cbMenuSearch),
		),
	)
}
