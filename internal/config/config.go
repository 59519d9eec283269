// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"planewar/internal/viewport"
)

// Config is read once at startup and not modified afterwards.
type Config struct {
	ContainerID   string        `env:"PLANEWAR_CONTAINER_ID"   envDefault:"app"`
	LogicalWidth  int           `env:"PLANEWAR_LOGICAL_WIDTH"  envDefault:"480"`
	LogicalHeight int           `env:"PLANEWAR_LOGICAL_HEIGHT" envDefault:"700"`
	AssetBase     string        `env:"PLANEWAR_ASSET_BASE"     envDefault:"./images"`
	LoadTimeout   time.Duration `env:"PLANEWAR_LOAD_TIMEOUT"   envDefault:"0s"`
	LogLevel      string        `env:"PLANEWAR_LOG_LEVEL"      envDefault:"info"`
	LogFormat     string        `env:"PLANEWAR_LOG_FORMAT"     envDefault:"text"`
	WindowTitle   string        `env:"PLANEWAR_WINDOW_TITLE"   envDefault:"Plane War"`
	WindowScale   float64       `env:"PLANEWAR_WINDOW_SCALE"   envDefault:"1"`
	HeroAnimation string        `env:"PLANEWAR_HERO_ANIMATION" envDefault:""`
}

// Load reads the optional dotenv files (".env" when none are given) and then
// parses the environment. Variables already set win over dotenv values.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ContainerID) == "" {
		return errors.New("container id must not be empty")
	}
	if err := c.Viewport().Validate(); err != nil {
		return err
	}
	if c.LoadTimeout < 0 {
		return fmt.Errorf("load timeout %v is negative", c.LoadTimeout)
	}
	if c.WindowScale <= 0 {
		return fmt.Errorf("window scale %v must be positive", c.WindowScale)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// Viewport is the immutable logical size handed to the scaler.
func (c Config) Viewport() viewport.Config {
	return viewport.Config{LogicalWidth: c.LogicalWidth, LogicalHeight: c.LogicalHeight}
}

// NewLogger builds a logger honouring LogLevel and LogFormat.
func (c Config) NewLogger(out io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(out)
	if lvl, err := log.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	if c.LogFormat == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger
}
