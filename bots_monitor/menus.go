package bot

import (
	"fmt"
	"html"
	"strings"

	"wordspotr/internal/features/filters"
	"wordspotr/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func welcomeMessage() string {
	return "🎯 <b>Welcome to WordSpotr Bot!</b>\n\n" +
		"<b>Your Token Discovery Assistant</b>\n\n" +
		"✨ <b>What I can do for you:</b>\n" +
		"• 🔍 Search tokens by phrase using /checktoken\n" +
		"• ⚙️ Set trading filters with /checkfilter\n" +
		"• 💾 Save up to 5 words for instant alerts with /saveword\n" +
		"• 🚨 Get notifications for new token launches\n" +
		"• 📊 Filtering by market cap, liquidity and more\n\n" +
		"<b>Quick Start Commands:</b>\n" +
		"/start - Show this welcome message\n" +
		"/checktoken &lt;your phrase&gt; - Find tokens instantly\n" +
		"/checkfilter - Configure your trading preferences\n" +
		"/saveword &lt;words&gt; - Set up launch alerts\n" +
		"/help - Get detailed help"
}

func helpMessage() string {
	return "📚 <b>WordSpotr Bot Help Guide</b>\n\n" +
		"<b>🔍 SEARCH TOKENS</b>\n" +
		"<code>/checktoken nothing will be forgiven</code>\n" +
		"• Searches for tokens matching your phrase\n" +
		"• Applies your saved filters automatically\n" +
		"• Inline filters work too: <code>/checktoken moon fdv&gt;50000</code>\n" +
		"• Navigate results with pagination\n\n" +
		"<b>⚙️ CONFIGURE FILTERS</b>\n" +
		"<code>/checkfilter</code>\n" +
		"• Set market cap and liquidity thresholds\n" +
		"• Filter by blockchain (SOL, ETH, BNB, TON)\n" +
		"• Set volume buy/sell limits\n\n" +
		"<b>💾 WORD ALERTS</b>\n" +
		"<code>/saveword moon pepe hope rocket doge</code>\n" +
		"• Save up to 5 trigger words\n" +
		"• Get alerts for new launches\n" +
		"• Automatic matching on token names/symbols\n\n" +
		"<b>📊 MANAGE YOUR SETUP</b>\n" +
		"/mysavedwords - View saved words\n" +
		"/clearsavedwords - Reset word list\n" +
		"/mystats - View your activity"
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 Search Tokens", cbMenuSearch),
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Set Filters", cbMenuFilters),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💾 Manage Words", cbMenuWords),
			tgbotapi.NewInlineKeyboardButtonData("📊 My Stats", cbMenuStats),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Help Guide", cbMenuHelp),
		),
	)
}

// filterMenuKeyboard labels each filter button with its current value.
func filterMenuKeyboard(set filters.Set) tgbotapi.InlineKeyboardMarkup {
	label := func(emoji, name, key string) string {
		if c := set.Get(key); c != nil {
			return fmt.Sprintf("%s %s (%s)", emoji, name, c.String())
		}
		return fmt.Sprintf("%s %s", emoji, name)
	}

	chainLabel := "⛓️ Blockchain"
	if set.Chain != "" {
		chainLabel = fmt.Sprintf("⛓️ Blockchain (%s)", set.Chain)
	}

	clearLabel := "❌ Cancel"
	clearData := cbMenuMain
	if !set.IsEmpty() {
		clearLabel = "🗑️ Clear All"
		clearData = cbClearFilters
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label("💰", "Market Cap", filters.KeyFdv), cbSetFilterPrefix+filters.KeyFdv),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label("💧", "Liquidity", filters.KeyLiquidity), cbSetFilterPrefix+filters.KeyLiquidity),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label("📈", "Volume Buy", filters.KeyVolumeBuy), cbSetFilterPrefix+filters.KeyVolumeBuy),
			tgbotapi.NewInlineKeyboardButtonData(label("📉", "Volume Sell", filters.KeyVolumeSell), cbSetFilterPrefix+filters.KeyVolumeSell),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(chainLabel, cbFilterChain),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(clearLabel, clearData),
			tgbotapi.NewInlineKeyboardButtonData("✅ Done", cbFilterDone),
		),
	)
}

func chainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("☀️ Solana", cbChainPrefix+"SOL"),
			tgbotapi.NewInlineKeyboardButtonData("⚡ BNB Chain", cbChainPrefix+"BNB"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💎 Ethereum", cbChainPrefix+"ETH"),
			tgbotapi.NewInlineKeyboardButtonData("🔷 TON", cbChainPrefix+"TON"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Back", cbFilterBack),
		),
	)
}

func numericFilterKeyboard(key string) tgbotapi.InlineKeyboardMarkup {
	emoji := map[string]string{
		filters.KeyFdv:        "💰",
		filters.KeyLiquidity:  "💧",
		filters.KeyVolumeBuy:  "📈",
		filters.KeyVolumeSell: "📉",
	}[key]

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emoji+" > $10K", encodeNumPreset(key, "gt", 10000)),
			tgbotapi.NewInlineKeyboardButtonData(emoji+" > $50K", encodeNumPreset(key, "gt", 50000)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emoji+" < $10K", encodeNumPreset(key, "lt", 10000)),
			tgbotapi.NewInlineKeyboardButtonData(emoji+" < $50K", encodeNumPreset(key, "lt", 50000)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Custom Range", cbNumFilterPrefix+key+"_custom"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Back", cbFilterBack),
		),
	)
}

func wordsMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 View Saved Words", cbViewWords),
			tgbotapi.NewInlineKeyboardButtonData("➕ Add Words", cbAddWords),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Clear Words", cbClearWords),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Main Menu", cbMenuMain),
		),
	)
}

// filterSummary renders the active filters after "Done".
func filterSummary(set filters.Set) string {
	if set.IsEmpty() {
		return "✅ <b>Filters Configured</b>\n\nNo filters set. All tokens will be shown in searches."
	}

	var lines []string
	for _, key := range []string{filters.KeyFdv, filters.KeyLiquidity, filters.KeyVolumeBuy, filters.KeyVolumeSell, filters.KeyPrice, filters.KeyVolume} {
		if c := set.Get(key); c != nil {
			lines = append(lines, fmt.Sprintf("• %s: <code>%s</code>", filters.DisplayName(key), c.String()))
		}
	}
	if set.Chain != "" {
		lines = append(lines, fmt.Sprintf("• Blockchain: <code>%s</code>", html.EscapeString(set.Chain)))
	}

	return "✅ <b>Filters Configured</b>\n\n<b>Active Filters:</b>\n" + strings.Join(lines, "\n")
}

// statsMessage renders the /mystats report from a conversation snapshot.
func statsMessage(firstName string, chatID int64, snap store.Conversation) string {
	lastSearch := snap.LastSearch
	if lastSearch == "" {
		lastSearch = "Never"
	}
	alertStatus := "❌ Inactive"
	if len(snap.SavedWords) > 0 {
		alertStatus = "✅ Active"
	}

	var b strings.Builder
	b.WriteString("📊 <b>Your WordSpotr Statistics</b>\n\n")
	fmt.Fprintf(&b, "👤 <b>User:</b> %s\n", html.EscapeString(firstName))
	fmt.Fprintf(&b, "🆔 <b>Chat ID:</b> <code>%d</code>\n\n", chatID)
	fmt.Fprintf(&b, "⚙️ <b>Active Filters:</b> %d\n", snap.Filters.Count())
	fmt.Fprintf(&b, "💾 <b>Saved Words:</b> %d/%d\n", len(snap.SavedWords), store.MaxSavedWords)
	fmt.Fprintf(&b, "🚨 <b>Alert Status:</b> %s\n\n", alertStatus)
	b.WriteString("<b>Recent Activity:</b>\n")
	fmt.Fprintf(&b, "• Last search: %s\n", html.EscapeString(lastSearch))
	fmt.Fprintf(&b, "• Tokens found: %d\n", snap.TokensFound)
	fmt.Fprintf(&b, "• Alerts received: %d", snap.AlertsReceived)
	return b.String()
}

// savedWordsMessage renders the word list view.
func savedWordsMessage(words []string) string {
	if len(words) == 0 {
		return "📝 <b>Your Saved Words</b>\n\n❌ No words saved yet. Use <code>/saveword &lt;word1&gt; &lt;word2&gt; ...</code> to save up to 5 words for launch alerts."
	}
	var lines []string
	for i, w := range words {
		lines = append(lines, fmt.Sprintf("%d. <code>%s</code>", i+1, html.EscapeString(w)))
	}
	return fmt.Sprintf("📝 <b>Your Saved Words</b>\n\n%s\n\n<b>Status:</b> 🟢 Active alerts\n<b>Slots used:</b> %d/%d",
		strings.Join(lines, "\n"), len(words), store.MaxSavedWords)
}
