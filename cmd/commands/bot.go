package commands

// Command to run the bot: command handler, alert monitor and the
// state flusher. Implements graceful shutdown for proper termination.

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	bot "wordspotr/bots_monitor"
	"wordspotr/internal/clients_api/dexscreener"
	"wordspotr/internal/infra/config"
	logging "wordspotr/internal/infra/log"
	"wordspotr/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot with search, filters and launch alerts",
	Long:  `Run the complete bot: phrase search over DexScreener, per-chat trading filters, saved word alerts on new token launches, and persistent per-chat state.`,
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.LogError("Failed to load config", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dataDir := cfg.App.DataDir
	if dataDir == "" {
		dataDir = "data"
	}

	st := store.New(dataDir)
	if err := st.Load(); err != nil {
		logging.LogWarn("Failed to load saved state, starting fresh", zap.Error(err))
	}

	client := dexscreener.NewClient(cfg.Dexscreener.BaseURL,
		dexscreener.WithTimeout(time.Duration(cfg.Dexscreener.RequestTimeout)*time.Second),
		dexscreener.WithMaxResponseSize(cfg.Dexscreener.MaxResponseSize),
		dexscreener.WithMaxRetries(cfg.Dexscreener.MaxRetries),
	)

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logging.LogError("Failed to initialize bot", zap.Error(err))
		return fmt.Errorf("failed to initialize bot: %w", err)
	}
	logging.LogSuccess("Bot authorized", zap.String("username", botAPI.Self.UserName))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		st.RunFlusher(ctx, time.Duration(cfg.App.FlushIntervalSec)*time.Second)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		bot.RunAlertMonitor(ctx, botAPI, st, client, cfg)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		bot.RunCommandHandler(botAPI, st, client, cfg)
	}()

	logging.LogSuccess("Bot is running", zap.String("status", "active"))

	<-ctx.Done()
	logging.LogInfo("Shutdown signal received, gracefully stopping...")

	// Closes the updates channel so the command handler returns.
	botAPI.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.LogSuccess("All workers stopped gracefully")
	case <-time.After(10 * time.Second):
		logging.LogWarn("Timeout waiting for workers to stop, forcing shutdown")
	}

	return nil
}
