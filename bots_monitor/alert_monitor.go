package bot

// New-launch alert delivery. The scanner decides who gets notified;
// this file only turns a match into a Telegram message.

import (
	"context"
	"time"

	"wordspotr/internal/clients_api/dexscreener"
	"wordspotr/internal/features/alerts"
	"wordspotr/internal/infra/config"
	log "wordspotr/internal/infra/log"
	"wordspotr/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type telegramNotifier struct {
	bot *tgbotapi.BotAPI
}

func (n *telegramNotifier) Notify(chatID int64, token dexscreener.FeedToken, matched []string) error {
	msg := tgbotapi.NewMessage(chatID, formatAlertMessage(token, matched))
	msg.ParseMode = tgbotapi.ModeHTML
	if token.Address != "" {
		msg.ReplyMarkup = tradingKeyboard(token.Address, token.Symbol)
	} else {
		msg.ReplyMarkup = degradedAlertKeyboard()
	}
	_, err := n.bot.Send(msg)
	return err
}

// RunAlertMonitor polls the launch feed and notifies chats whose saved
// words match a new token. Blocks until ctx is cancelled.
func RunAlertMonitor(ctx context.Context, botAPI *tgbotapi.BotAPI, st *store.Store, client *dexscreener.Client, cfg *config.Config) {
	if botAPI == nil {
		log.LogWarn("Bot is nil, alert monitor not started")
		return
	}

	interval := time.Duration(cfg.App.ScanIntervalSec) * time.Second
	initialDelay := time.Duration(cfg.App.ScanInitialDelay) * time.Second
	alertDelay := time.Duration(cfg.Telegram.AlertDelayMs) * time.Millisecond

	log.LogInfo("Starting alert monitor",
		zap.Duration("interval", interval),
		zap.Duration("initialDelay", initialDelay))

	scanner := alerts.New(client, st, &telegramNotifier{bot: botAPI}, alertDelay)
	scanner.Run(ctx, interval, initialDelay)
}
