package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type StoreConfig struct {
	DataDir string
	DBFile  string
	LogFile string
}

type AuthConfig struct {
	// APITokenSecret enables bearer-token protection when non-empty.
	APITokenSecret string
}

type LedgerConfig struct {
	HistoryLimit int
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Store       StoreConfig
	Auth        AuthConfig
	Ledger      LedgerConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Store: StoreConfig{
			DataDir: v.GetString("DATA_DIR"),
			DBFile:  v.GetString("DB_FILE"),
			LogFile: v.GetString("LOG_FILE"),
		},
		Auth: AuthConfig{
			APITokenSecret: v.GetString("API_TOKEN_SECRET"),
		},
		Ledger: LedgerConfig{
			HistoryLimit: v.GetInt("HISTORY_LIMIT"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "127.0.0.1"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = defaultDataDir()
	}
	if cfg.Store.DBFile == "" {
		cfg.Store.DBFile = "oiltrack.db"
	}
	if cfg.Store.LogFile == "" {
		cfg.Store.LogFile = "oiltrack.log"
	}
	if cfg.Ledger.HistoryLimit == 0 {
		cfg.Ledger.HistoryLimit = 50
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Ledger.HistoryLimit < 0 {
		return fmt.Errorf("HISTORY_LIMIT must not be negative")
	}
	if filepath.Ext(cfg.Store.DBFile) == "" {
		return fmt.Errorf("DB_FILE must carry a file extension")
	}
	return nil
}

// DBPath is the absolute location of the embedded database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.Store.DataDir, c.Store.DBFile)
}

// LogPath is the location of the append-only diagnostic log.
func (c *Config) LogPath() string {
	return filepath.Join(c.Store.DataDir, c.Store.LogFile)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".oiltrack")
}
