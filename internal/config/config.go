package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the run configuration loaded from environment variables and
// an optional .env file.
type Config struct {
	IMAPHost string `mapstructure:"gmail_imap_host"`
	IMAPPort int    `mapstructure:"gmail_imap_port"`
	Username string `mapstructure:"gmail_address"`
	Password string `mapstructure:"gmail_app_password"`

	Mailbox       string `mapstructure:"mailbox"`
	Sender        string `mapstructure:"arxiv_sender"`
	SubjectFilter string `mapstructure:"email_subject_contains"`

	KeywordsFile string `mapstructure:"keywords_file"`
	OutputFile   string `mapstructure:"output_file"`
	LogLevel     string `mapstructure:"log_level"`

	// DryRun leaves every message unread, for trying out keyword files.
	DryRun bool `mapstructure:"dry_run"`
}

// Addr returns the host:port the IMAP dialer connects to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.IMAPHost, strconv.Itoa(c.IMAPPort))
}

// Load reads configuration from environment variables and an optional .env
// file in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("gmail_imap_host", "imap.gmail.com")
	v.SetDefault("gmail_imap_port", 993)
	v.SetDefault("gmail_address", "")
	v.SetDefault("gmail_app_password", "")
	v.SetDefault("mailbox", "INBOX")
	v.SetDefault("arxiv_sender", "")
	v.SetDefault("email_subject_contains", "")
	v.SetDefault("keywords_file", "keywords.txt")
	v.SetDefault("output_file", "matching_papers.txt")
	v.SetDefault("log_level", "info")
	v.SetDefault("dry_run", false)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("GMAIL_ADDRESS and GMAIL_APP_PASSWORD must be set")
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("ARXIV_SENDER must be set")
	}
	if cfg.IMAPPort <= 0 || cfg.IMAPPort > 65535 {
		return nil, fmt.Errorf("invalid gmail_imap_port %d", cfg.IMAPPort)
	}

	return &cfg, nil
}
