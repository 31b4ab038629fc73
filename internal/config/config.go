package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type PaymentConfig struct {
	Operator string `yaml:"operator"`
	APIKey   string `yaml:"api_key"`
	DryRun   bool   `yaml:"dry_run"`
}

type TelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	AdminChatID int64  `yaml:"admin_chat_id"`
}

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
}

type Config struct {
	Server struct {
		Port       int    `yaml:"port"`
		PublicURL  string `yaml:"public_url"`
		Production bool   `yaml:"production"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Files    FilesConfig    `yaml:"files"`
	Payment  PaymentConfig  `yaml:"payment"`
	Telegram TelegramConfig `yaml:"telegram"`

	// secrets come from the environment only, never from the yaml file
	JWTSecret     string `yaml:"-"`
	RefreshSecret string `yaml:"-"`
}

// Load reads config/config.yaml and the token secrets from the environment.
// A missing JWT_SECRET or REFRESH_SECRET is a startup error: there is no
// fallback value.
func Load() (*Config, error) {
	// .env is optional, real deployments set the variables directly
	_ = godotenv.Load()

	f, err := os.Open("config/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("open config.yaml: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config.yaml: %w", err)
	}

	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.RefreshSecret = os.Getenv("REFRESH_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("REFRESH_SECRET is not set")
	}
	if cfg.JWTSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("JWT_SECRET and REFRESH_SECRET must differ")
	}

	return &cfg, nil
}
