package commands

// Root command for Cobra CLI
// Registers the bot subcommand

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wordspotr",
	Short: "WordSpotr - Telegram bot for token discovery and launch alerts",
	Long: `WordSpotr is a Go-based Telegram bot for discovering tokens on DexScreener
by free-text phrase search with configurable trading filters, and for alerting
on new token launches that match your saved words.`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(botCmd)
}
