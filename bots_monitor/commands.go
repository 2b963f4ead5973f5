package bot

// Telegram command surface. One long-polling loop dispatches commands,
// button presses and plain-text replies; all per-chat state lives in
// the store.

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"wordspotr/internal/clients_api/dexscreener"
	"wordspotr/internal/features/filters"
	"wordspotr/internal/infra/config"
	log "wordspotr/internal/infra/log"
	"wordspotr/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type handler struct {
	bot          *tgbotapi.BotAPI
	store        *store.Store
	client       *dexscreener.Client
	limiter      *searchLimiter
	messageDelay time.Duration
}

// RunCommandHandler starts the Telegram update loop and blocks until
// the updates channel closes.
func RunCommandHandler(botAPI *tgbotapi.BotAPI, st *store.Store, client *dexscreener.Client, cfg *config.Config) {
	if botAPI == nil {
		log.LogWarn("Bot is nil, command handler not started")
		return
	}

	h := &handler{
		bot:          botAPI,
		store:        st,
		client:       client,
		limiter:      newSearchLimiter(cfg.App.SearchesPerMinute),
		messageDelay: time.Duration(cfg.Telegram.MessageDelayMs) * time.Millisecond,
	}

	log.LogInfo("Starting command handler", zap.String("bot", botAPI.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for update := range botAPI.GetUpdatesChan(u) {
		switch {
		case update.CallbackQuery != nil:
			h.handleCallback(update.CallbackQuery)
		case update.Message != nil && update.Message.IsCommand():
			h.handleCommand(update.Message)
		case update.Message != nil && update.Message.Text != "":
			h.handleText(update.Message)
		}
	}
}

func (h *handler) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	command := msg.Command()
	args := msg.CommandArguments()

	log.LogDebug("Received command",
		zap.String("command", command),
		zap.String("args", args),
		zap.Int64("chatID", chatID))

	switch command {
	case "start":
		h.sendWithKeyboard(chatID, welcomeMessage(), mainMenuKeyboard())

	case "help":
		h.sendHTML(chatID, helpMessage())

	case "checktoken":
		h.handleCheckToken(msg, args)

	case "checkfilter":
		h.sendWithKeyboard(chatID,
			"⚙️ <b>Configure Your Filters</b>\n\nPick a filter to adjust. Saved filters apply to every /checktoken search and stay until you clear them.",
			filterMenuKeyboard(h.store.Filters(chatID)))

	case "saveword":
		h.handleSaveWord(chatID, args)

	case "mysavedwords":
		h.sendWithKeyboard(chatID, savedWordsMessage(h.store.SavedWords(chatID)), wordsMenuKeyboard())

	case "clearsavedwords":
		h.sendWithKeyboard(chatID,
			"🗑️ <b>Clear Saved Words</b>\n\nThis removes all your alert words. Are you sure?",
			confirmClearKeyboard())

	case "mystats":
		firstName := ""
		if msg.From != nil {
			firstName = msg.From.FirstName
		}
		h.sendHTML(chatID, statsMessage(firstName, chatID, h.store.Snapshot(chatID)))
	}
}

func (h *handler) handleSaveWord(chatID int64, args string) {
	words := strings.Fields(args)
	if len(words) == 0 {
		h.sendHTML(chatID,
			"💾 <b>Save Alert Words</b>\n\n"+
				"Usage: <code>/saveword &lt;word1&gt; &lt;word2&gt; ...</code>\n\n"+
				"Example: <code>/saveword moon pepe hope rocket doge</code>\n\n"+
				fmt.Sprintf("You can save up to %d words. Saving replaces your previous list.", store.MaxSavedWords))
		return
	}

	if err := h.store.SetSavedWords(chatID, words); err != nil {
		h.sendHTML(chatID, fmt.Sprintf(
			"❌ <b>Too many words!</b>\n\nYou sent %d words but only %d are allowed. Your previous list is unchanged.",
			len(words), store.MaxSavedWords))
		return
	}

	saved := h.store.SavedWords(chatID)
	list := make([]string, len(saved))
	for i, w := range saved {
		list[i] = "<code>" + html.EscapeString(w) + "</code>"
	}
	h.sendHTML(chatID, fmt.Sprintf(
		"✅ <b>Words Saved!</b>\n\n🎯 Watching for: %s\n\n🚨 You will get an alert when a new token launch matches any of them.",
		strings.Join(list, ", ")))
}

func (h *handler) handleCallback(cq *tgbotapi.CallbackQuery) {
	// Acknowledge first so the button stops spinning.
	h.bot.Request(tgbotapi.NewCallback(cq.ID, ""))

	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID

	action, ok := decodeCallback(cq.Data)
	if !ok {
		log.LogWarn("Unknown callback payload", zap.String("data", cq.Data), zap.Int64("chatID", chatID))
		return
	}

	switch action.Kind {
	case actionMainMenu:
		h.edit(chatID, cq.Message.MessageID, welcomeMessage(), mainMenuKeyboard())

	case actionSearchMenu:
		h.edit(chatID, cq.Message.MessageID,
			"🔍 <b>Search Tokens</b>\n\n"+
				"Type <code>/checktoken</code> followed by your phrase:\n\n"+
				"<code>/checktoken nothing will be forgiven</code>\n\n"+
				"Your saved filters apply automatically. Inline expressions like <code>fdv&gt;50000</code> override them for that search.",
			searchMenuKeyboard())

	case actionSearchExamples:
		h.edit(chatID, cq.Message.MessageID,
			"💡 <b>Search Examples</b>\n\n"+
				"• <code>/checktoken moon rocket</code>\n"+
				"• <code>/checktoken pepe fdv&gt;100000</code>\n"+
				"• <code>/checktoken hope liquidity&gt;50000 volume&gt;10000</code>\n"+
				"• <code>/checktoken doge price&lt;1</code>\n\n"+
				"Words are matched by their stem, so <code>running</code> also finds <code>run</code> and <code>runs</code>.",
			searchMenuKeyboard())

	case actionFiltersMenu, actionFilterBack:
		h.edit(chatID, cq.Message.MessageID,
			"⚙️ <b>Configure Your Filters</b>\n\nPick a filter to adjust.",
			filterMenuKeyboard(h.store.Filters(chatID)))

	case actionFilterSelect:
		h.edit(chatID, cq.Message.MessageID,
			fmt.Sprintf("⚙️ <b>%s Filter</b>\n\nPick a preset or set a custom range.", filters.DisplayName(action.FilterKey)),
			numericFilterKeyboard(action.FilterKey))

	case actionNumPreset:
		h.store.SetConstraint(chatID, action.FilterKey, filters.Threshold(action.Op, action.Value))
		h.edit(chatID, cq.Message.MessageID,
			fmt.Sprintf("✅ <b>%s</b> set to <code>%s</code>.",
				filters.DisplayName(action.FilterKey), filters.Threshold(action.Op, action.Value).String()),
			filterMenuKeyboard(h.store.Filters(chatID)))

	case actionChainMenu:
		h.edit(chatID, cq.Message.MessageID,
			"⛓️ <b>Choose Blockchain</b>\n\nOnly tokens on the chosen chain will pass your filters.",
			chainKeyboard())

	case actionChooseChain:
		h.store.SetChain(chatID, action.Chain)
		h.edit(chatID, cq.Message.MessageID,
			fmt.Sprintf("✅ Blockchain set to <b>%s</b>.", html.EscapeString(action.Chain)),
			filterMenuKeyboard(h.store.Filters(chatID)))

	case actionNumCustom:
		h.store.SetAwaitingCustomRange(chatID, action.FilterKey)
		h.sendHTML(chatID, fmt.Sprintf(
			"🎯 <b>Custom %s Range</b>\n\nReply with your range in this format:\n\n<code>min 10000 max 50000</code>",
			filters.DisplayName(action.FilterKey)))

	case actionClearFilters:
		h.store.ClearFilters(chatID)
		h.edit(chatID, cq.Message.MessageID,
			"🗑️ All filters cleared.",
			filterMenuKeyboard(h.store.Filters(chatID)))

	case actionFilterDone:
		h.edit(chatID, cq.Message.MessageID, filterSummary(h.store.Filters(chatID)), mainMenuKeyboard())

	case actionWordsMenu:
		h.edit(chatID, cq.Message.MessageID,
			"💾 <b>Word Alerts</b>\n\nSaved words are matched against every new token launch.",
			wordsMenuKeyboard())

	case actionViewWords:
		h.edit(chatID, cq.Message.MessageID, savedWordsMessage(h.store.SavedWords(chatID)), wordsMenuKeyboard())

	case actionWordsHelp:
		h.edit(chatID, cq.Message.MessageID,
			"➕ <b>Add Words</b>\n\n"+
				"Use <code>/saveword &lt;word1&gt; &lt;word2&gt; ...</code>\n\n"+
				fmt.Sprintf("Up to %d words. Saving replaces your previous list, so include every word you want to keep.", store.MaxSavedWords),
			wordsMenuKeyboard())

	case actionClearWords:
		h.edit(chatID, cq.Message.MessageID,
			"🗑️ <b>Clear Saved Words</b>\n\nThis removes all your alert words. Are you sure?",
			confirmClearKeyboard())

	case actionConfirmClearWords:
		h.store.ClearSavedWords(chatID)
		h.edit(chatID, cq.Message.MessageID,
			"✅ All saved words removed. You will no longer receive launch alerts.",
			wordsMenuKeyboard())

	case actionStatsMenu:
		firstName := ""
		if cq.From != nil {
			firstName = cq.From.FirstName
		}
		h.edit(chatID, cq.Message.MessageID, statsMessage(firstName, chatID, h.store.Snapshot(chatID)), mainMenuKeyboard())

	case actionHelpMenu:
		h.edit(chatID, cq.Message.MessageID, helpMessage(), mainMenuKeyboard())

	case actionPage:
		h.handlePage(chatID, action.Page)
	}
}

var customRangeRe = regexp.MustCompile(`(?i)^\s*min\s+(\d+(?:\.\d+)?)\s+max\s+(\d+(?:\.\d+)?)\s*$`)

// handleText catches plain messages; the only stateful flow is the
// custom range reply.
func (h *handler) handleText(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	key := h.store.AwaitingCustomRange(chatID)
	if key == "" {
		return
	}

	m := customRangeRe.FindStringSubmatch(msg.Text)
	if m == nil {
		h.sendHTML(chatID,
			"❌ <b>Invalid format.</b>\n\nPlease reply exactly like this:\n\n<code>min 10000 max 50000</code>")
		return
	}

	minVal, err1 := strconv.ParseFloat(m[1], 64)
	maxVal, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil || minVal > maxVal {
		h.sendHTML(chatID,
			"❌ <b>Invalid range.</b>\n\nMin must not exceed max. Try again:\n\n<code>min 10000 max 50000</code>")
		return
	}

	h.store.SetConstraint(chatID, key, filters.Range(minVal, maxVal))
	h.store.SetAwaitingCustomRange(chatID, "")

	h.sendWithKeyboard(chatID,
		fmt.Sprintf("✅ <b>%s</b> set to <code>$%s - $%s</code>.",
			filters.DisplayName(key), formatNumber(minVal), formatNumber(maxVal)),
		filterMenuKeyboard(h.store.Filters(chatID)))
}

func searchMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💡 Examples", cbSearchExamples),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Main Menu", cbMenuMain),
		),
	)
}

func confirmClearKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, clear them", cbConfirmClearWords),
			tgbotapi.NewInlineKeyboardButtonData("❌ Keep my words", cbMenuWords),
		),
	)
}

// sendHTML sends one HTML message and returns its message ID.
func (h *handler) sendHTML(chatID int64, text string) (int, bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	sent, err := h.bot.Send(msg)
	if err != nil {
		log.LogError("Failed to send message", zap.Error(err), zap.Int64("chatID", chatID))
		return 0, false
	}
	return sent.MessageID, true
}

func (h *handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		log.LogError("Failed to send message", zap.Error(err), zap.Int64("chatID", chatID))
	}
}

// edit rewrites an existing menu message in place; when editing fails
// (for example the message is too old) a fresh message is sent instead.
func (h *handler) edit(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := h.bot.Send(edit); err != nil {
		h.sendWithKeyboard(chatID, text, kb)
	}
}
