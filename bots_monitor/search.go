package bot

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"wordspotr/internal/features/filters"
	"wordspotr/internal/features/search"
	"wordspotr/internal/features/textnorm"
	log "wordspotr/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const searchTimeout = 30 * time.Second

// handleCheckToken runs one search session for a chat: normalize the
// phrase, pick the filter set, query the API per term, dedupe, filter
// and show page 1.
func (h *handler) handleCheckToken(msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	if strings.TrimSpace(args) == "" {
		h.sendHTML(chatID,
			"🔍 <b>Token Search</b>\n\n"+
				"Usage: <code>/checktoken &lt;your phrase&gt;</code>\n\n"+
				"Examples:\n"+
				"• <code>/checktoken nothing will be forgiven</code>\n"+
				"• <code>/checktoken moon rocket fdv&gt;50000</code>")
		return
	}

	if !h.limiter.Allow(chatID) {
		h.sendHTML(chatID, "⏳ <b>Slow down!</b>\n\nYou have used up your search quota for this minute. Try again shortly.")
		return
	}

	query, err := textnorm.Parse(args)
	if err != nil || len(query.Terms) == 0 {
		h.sendHTML(chatID, "❌ No searchable words in your phrase. Try something like <code>/checktoken moon doge</code>.")
		return
	}

	// Inline filter expressions override the saved set for this search
	// only; the saved set stays untouched.
	active := h.store.Filters(chatID)
	if query.HasFilters() {
		active = query.Filters
	}

	h.sendHTML(chatID, fmt.Sprintf("🔍 Searching for: <b>%s</b> ...", html.EscapeString(strings.Join(query.Terms, " "))))

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	pairs := search.Aggregate(ctx, h.client, query.Terms)
	total := len(pairs)

	matched := filters.Apply(pairs, active)

	log.LogInfo("Search completed",
		zap.Int64("chatID", chatID),
		zap.Strings("terms", query.Terms),
		zap.Int("total", total),
		zap.Int("matched", len(matched)))

	if total == 0 {
		h.sendHTML(chatID, "😔 <b>No tokens found</b>\n\nNothing on DexScreener matches your phrase. Try different words.")
		return
	}
	if len(matched) == 0 {
		h.sendHTML(chatID, fmt.Sprintf(
			"🔍 Found <b>%d</b> tokens for your phrase, but none passed your filters.\n\nAdjust them with /checkfilter or search again.", total))
		return
	}

	rs := search.NewResultSet(strings.Join(query.Terms, " "), matched)
	h.store.SetResults(chatID, rs)
	h.sendTokenPage(chatID, rs)
}

// handlePage navigates an existing result set. Presses on a stale or
// out-of-range page are answered but change nothing.
func (h *handler) handlePage(chatID int64, page int) {
	rs := h.store.Results(chatID)
	if rs == nil {
		h.sendHTML(chatID, "❌ No active search. Run /checktoken first.")
		return
	}
	if page < 1 || page > rs.TotalPages() {
		return
	}
	h.store.SetPage(chatID, page)
	h.sendTokenPage(chatID, h.store.Results(chatID))
}

// sendTokenPage deletes the previous page's messages, then sends the
// header, one message per token and the navigation row.
func (h *handler) sendTokenPage(chatID int64, rs *search.ResultSet) {
	for _, id := range h.store.PageMessageIDs(chatID) {
		// Best effort: old messages may already be gone.
		h.bot.Request(tgbotapi.NewDeleteMessage(chatID, id))
	}

	pagePairs, start := rs.PagePairs(rs.Page)
	if pagePairs == nil {
		return
	}

	var sentIDs []int

	header := fmt.Sprintf("📊 <b>Results for:</b> %s\n📄 Page %d/%d • %d tokens total",
		html.EscapeString(rs.Query), rs.Page, rs.TotalPages(), len(rs.Pairs))
	if id, ok := h.sendHTML(chatID, header); ok {
		sentIDs = append(sentIDs, id)
	}

	for i, pair := range pagePairs {
		msg := tgbotapi.NewMessage(chatID, formatTokenMessage(pair, start+i+1, len(rs.Pairs)))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = tradingKeyboard(pair.BaseToken.Address, pair.BaseToken.Symbol)
		sent, err := h.bot.Send(msg)
		if err != nil {
			log.LogError("Failed to send token message", zap.Error(err), zap.Int64("chatID", chatID))
			continue
		}
		sentIDs = append(sentIDs, sent.MessageID)
		if i < len(pagePairs)-1 {
			time.Sleep(h.messageDelay)
		}
	}

	if nav, ok := paginationKeyboard(rs); ok {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("📄 Page %d of %d", rs.Page, rs.TotalPages()))
		msg.ReplyMarkup = nav
		if sent, err := h.bot.Send(msg); err == nil {
			sentIDs = append(sentIDs, sent.MessageID)
		}
	}

	h.store.SetPageMessageIDs(chatID, sentIDs)
}

// paginationKeyboard returns the prev/next row, or ok=false when the
// set fits on a single page.
func paginationKeyboard(rs *search.ResultSet) (tgbotapi.InlineKeyboardMarkup, bool) {
	if rs.TotalPages() <= 1 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	var row []tgbotapi.InlineKeyboardButton
	if rs.HasPrev() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", encodePage(rs.Page-1)))
	}
	if rs.HasNext() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", encodePage(rs.Page+1)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row), true
}
