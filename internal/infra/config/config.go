package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Telegram    TelegramConfig    `mapstructure:"telegram"`
	Dexscreener DexscreenerConfig `mapstructure:"dexscreener"`
	App         AppConfig         `mapstructure:"app"`
}

type TelegramConfig struct {
	BotToken       string `mapstructure:"bot_token"`
	MessageDelayMs int    `mapstructure:"message_delay_ms"` // delay between messages of one page (default 500)
	AlertDelayMs   int    `mapstructure:"alert_delay_ms"`   // delay between alert dispatches (default 1000)
}

// DexscreenerConfig holds settings for the DexScreener API client.
type DexscreenerConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	MaxRetries      int    `mapstructure:"max_retries"`
	MaxResponseSize int64  `mapstructure:"max_response_size"`
}

// AppConfig holds generic application settings.
type AppConfig struct {
	DataDir           string `mapstructure:"data_dir"`
	ScanIntervalSec   int    `mapstructure:"scan_interval"`      // alert scanner period (default 300)
	ScanInitialDelay  int    `mapstructure:"scan_initial_delay"` // seconds before first scan (default 30)
	FlushIntervalSec  int    `mapstructure:"flush_interval"`     // state persistence period (default 15)
	SearchesPerMinute int    `mapstructure:"searches_per_minute"`
}

// LoadConfig reads configuration in layers:
// 1. defaults
// 2. config.yaml
// 3. .env file
// 4. environment aliases and flags
func LoadConfig() (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.ReadInConfig() // missing file is not an error

	v.SetConfigType("env")
	v.SetConfigFile(".env")
	v.ReadInConfig() // missing file is not an error

	v.AutomaticEnv()

	setupEnvAliases(v)

	setupFlags(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	// TELEGRAM_BOT_TOKEN -> telegram.bot_token

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.message_delay_ms", "MESSAGE_DELAY_MS")
	v.BindEnv("telegram.alert_delay_ms", "ALERT_DELAY_MS")

	v.BindEnv("dexscreener.base_url", "DEXSCREENER_BASE_URL")
	v.BindEnv("dexscreener.request_timeout", "DEXSCREENER_REQUEST_TIMEOUT")
	v.BindEnv("dexscreener.max_retries", "DEXSCREENER_MAX_RETRIES")
	v.BindEnv("dexscreener.max_response_size", "DEXSCREENER_MAX_RESPONSE_SIZE")

	v.BindEnv("app.data_dir", "APP_DATA_DIR")
	v.BindEnv("app.scan_interval", "APP_SCAN_INTERVAL")
	v.BindEnv("app.scan_initial_delay", "APP_SCAN_INITIAL_DELAY")
	v.BindEnv("app.flush_interval", "APP_FLUSH_INTERVAL")
	v.BindEnv("app.searches_per_minute", "APP_SEARCHES_PER_MINUTE")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.message_delay_ms", 500)
	v.SetDefault("telegram.alert_delay_ms", 1000)

	v.SetDefault("dexscreener.base_url", "https://api.dexscreener.com")
	v.SetDefault("dexscreener.request_timeout", 30)
	v.SetDefault("dexscreener.max_retries", 3)
	v.SetDefault("dexscreener.max_response_size", 10*1024*1024) // 10MB

	v.SetDefault("app.data_dir", "data")
	v.SetDefault("app.scan_interval", 300)
	v.SetDefault("app.scan_initial_delay", 30)
	v.SetDefault("app.flush_interval", 15)
	v.SetDefault("app.searches_per_minute", 10)
}

func setupFlags(v *viper.Viper) {
	pflag.String("telegram.bot_token", "", "Telegram bot token (env: TELEGRAM_BOT_TOKEN)")
	pflag.Int("telegram.message_delay_ms", 500, "Delay between page messages in ms (env: MESSAGE_DELAY_MS)")
	pflag.Int("telegram.alert_delay_ms", 1000, "Delay between alert messages in ms (env: ALERT_DELAY_MS)")

	pflag.String("dexscreener.base_url", "https://api.dexscreener.com", "DexScreener API base URL (env: DEXSCREENER_BASE_URL)")
	pflag.Int("dexscreener.request_timeout", 30, "Request timeout in seconds (env: DEXSCREENER_REQUEST_TIMEOUT)")
	pflag.Int("dexscreener.max_retries", 3, "Max retries for failed requests (env: DEXSCREENER_MAX_RETRIES)")
	pflag.Int64("dexscreener.max_response_size", 10*1024*1024, "Max response size in bytes (env: DEXSCREENER_MAX_RESPONSE_SIZE)")

	pflag.String("app.data_dir", "data", "Data directory for persisted state (env: APP_DATA_DIR)")
	pflag.Int("app.scan_interval", 300, "Alert scan interval in seconds (env: APP_SCAN_INTERVAL)")
	pflag.Int("app.scan_initial_delay", 30, "Delay before first alert scan in seconds (env: APP_SCAN_INITIAL_DELAY)")
	pflag.Int("app.flush_interval", 15, "State flush interval in seconds (env: APP_FLUSH_INTERVAL)")
	pflag.Int("app.searches_per_minute", 10, "Per-chat search quota per minute (env: APP_SEARCHES_PER_MINUTE)")

	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)
}

func validateConfig(cfg *Config) error {
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if cfg.App.ScanIntervalSec <= 0 {
		return fmt.Errorf("app.scan_interval must be positive")
	}
	return nil
}
