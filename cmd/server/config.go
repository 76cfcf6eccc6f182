package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type config struct {
	ListenAddr       string
	StoreBackend     string
	SQLiteDSN        string
	MovementInterval time.Duration
	Commit           string
	BuildTime        string
}

func setDefaults() {
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("store_backend", "memory")
	viper.SetDefault("sqlite_dsn", "")
	viper.SetDefault("movement_interval", "2s")
	viper.SetDefault("commit", "")
	viper.SetDefault("build_time", "")
}

// loadConfig reads settings from BLUCENTIA_* environment variables, with a
// local .env file honored when present.
func loadConfig() config {
	_ = godotenv.Load()
	viper.SetEnvPrefix("blucentia")
	viper.AutomaticEnv()
	setDefaults()
	return config{
		ListenAddr:       viper.GetString("listen_addr"),
		StoreBackend:     viper.GetString("store_backend"),
		SQLiteDSN:        viper.GetString("sqlite_dsn"),
		MovementInterval: viper.GetDuration("movement_interval"),
		Commit:           viper.GetString("commit"),
		BuildTime:        viper.GetString("build_time"),
	}
}
