package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Data source providers.
const (
	ProviderYahoo    = "yahoo"
	ProviderYFinance = "yfinance"
	ProviderREST     = "rest"
	ProviderMock     = "mock"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider          string  `yaml:"provider"`
		BaseURL           string  `yaml:"base_url"`
		APIKey            string  `yaml:"api_key"`
		ExchangeSuffix    string  `yaml:"exchange_suffix"`
		LookbackDays      int     `yaml:"lookback_days"`
		PeerLookbackDays  int     `yaml:"peer_lookback_days"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
	} `yaml:"data_source"`
	Watchlist []string `yaml:"watchlist"`
	Schedule  struct {
		AnalysisCron string `yaml:"analysis_cron"`
	} `yaml:"schedule"`
	Peers struct {
		TableFile      string `yaml:"table_file"`
		Limit          int    `yaml:"limit"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"peers"`
	Fundamentals struct {
		USDINRRate float64 `yaml:"usd_inr_rate"`
	} `yaml:"fundamentals"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Reports struct {
		Dir string `yaml:"dir"`
	} `yaml:"reports"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the process environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Watchlist = splitList(v)
	}
	if v := os.Getenv("CRON_ANALYSIS"); v != "" {
		c.Schedule.AnalysisCron = v
	}
	if v := os.Getenv("PEER_TABLE_FILE"); v != "" {
		c.Peers.TableFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("REPORTS_DIR"); v != "" {
		c.Reports.Dir = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = ProviderYahoo
	}
	if c.DataSource.ExchangeSuffix == "" {
		c.DataSource.ExchangeSuffix = ".NS"
	}
	if c.DataSource.LookbackDays == 0 {
		c.DataSource.LookbackDays = 1095
	}
	if c.DataSource.PeerLookbackDays == 0 {
		c.DataSource.PeerLookbackDays = 365
	}
	if c.DataSource.RequestsPerSecond == 0 {
		c.DataSource.RequestsPerSecond = 2
	}
	if c.Schedule.AnalysisCron == "" {
		c.Schedule.AnalysisCron = "0 30 16 * * 1-5"
	}
	if c.Peers.Limit == 0 {
		c.Peers.Limit = 3
	}
	if c.Peers.TimeoutSeconds == 0 {
		c.Peers.TimeoutSeconds = 15
	}
	if c.Fundamentals.USDINRRate == 0 {
		c.Fundamentals.USDINRRate = 83
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/stock_sentinel.db"
	}
	if c.Reports.Dir == "" {
		c.Reports.Dir = "data/reports"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderYFinance, ProviderMock:
	case ProviderREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, yfinance, rest, mock", c.DataSource.Provider)
	}
	if c.DataSource.LookbackDays <= 0 || c.DataSource.PeerLookbackDays <= 0 {
		return fmt.Errorf("data_source lookback days must be positive")
	}
	if c.DataSource.RequestsPerSecond < 0 {
		return fmt.Errorf("data_source.requests_per_second must not be negative")
	}
	if c.Peers.Limit <= 0 {
		return fmt.Errorf("peers.limit must be positive")
	}
	if c.Peers.TimeoutSeconds <= 0 {
		return fmt.Errorf("peers.timeout_seconds must be positive")
	}
	if c.Fundamentals.USDINRRate <= 0 {
		return fmt.Errorf("fundamentals.usd_inr_rate must be positive")
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.Schedule.AnalysisCron); err != nil {
		return fmt.Errorf("schedule.analysis_cron: %w", err)
	}
	for _, s := range c.Watchlist {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("watchlist contains an empty symbol")
		}
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
