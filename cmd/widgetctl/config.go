package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// serverConfig holds preview server settings. Env overrides use the WIDGETS_ prefix.
type serverConfig struct {
	Addr     string
	BasePath string `mapstructure:"base_path"`
	Store    storeConfig
	Seed     seedConfig
	Theme    themeConfig
}

type storeConfig struct {
	Driver string
	DSN    string
}

type seedConfig struct {
	Defaults bool
	Manifest string
}

// themeConfig carries design tokens emitted as CSS variables on widget roots.
type themeConfig struct {
	Tokens   map[string]string
	Variants map[string]map[string]string
}

func loadServerConfig(path string) (serverConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return serverConfig{}, fmt.Errorf("widgetctl: load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("base_path", "/widgets")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.dsn", "widgets.db")
	v.SetDefault("seed.defaults", true)
	v.SetDefault("seed.manifest", "")

	if path == "" {
		path = os.Getenv("WIDGETS_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("widgets")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WIDGETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return serverConfig{}, fmt.Errorf("widgetctl: read config: %w", err)
		}
	}

	var cfg serverConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return serverConfig{}, fmt.Errorf("widgetctl: unmarshal config: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case "memory", "sqlite":
	default:
		return serverConfig{}, fmt.Errorf("widgetctl: unsupported store driver %q", cfg.Store.Driver)
	}
	return cfg, nil
}
