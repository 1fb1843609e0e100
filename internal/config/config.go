// Package config loads runtime settings for the HUD from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ayusman/jarvishud/internal/logger"
)

// Config holds the HUD settings. The backend endpoint is fixed and is not
// part of it.
type Config struct {
	HTTPAddr         string
	StaticDir        string
	CameraID         int
	FPS              int
	LogLevel         logger.Level
	Tray             bool
	HandshakeTimeout time.Duration
}

// MaxFPS caps HUD_FPS.
const MaxFPS = 120

// Default returns the settings used when nothing is set.
func Default() Config {
	return Config{
		HTTPAddr:         ":8080",
		CameraID:         0,
		FPS:              15,
		LogLevel:         logger.INFO,
		HandshakeTimeout: 5 * time.Second,
	}
}

// Load reads the given .env files (or ./.env when none are given) and then
// the process environment. Missing files are not an error.
func Load(files ...string) Config {
	if err := godotenv.Load(files...); err != nil {
		logger.Debug("config", "no .env file loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment on top of Default.
func FromEnv() Config {
	d := Default()

	cfg := Config{
		HTTPAddr:         getEnv("HUD_HTTP_ADDR", d.HTTPAddr),
		StaticDir:        getEnv("HUD_STATIC_DIR", d.StaticDir),
		CameraID:         getEnvInt("HUD_CAMERA_ID", d.CameraID),
		FPS:              getEnvInt("HUD_FPS", d.FPS),
		Tray:             getEnvBool("HUD_TRAY", d.Tray),
		HandshakeTimeout: getEnvDuration("HUD_HANDSHAKE_TIMEOUT", d.HandshakeTimeout),
		LogLevel:         d.LogLevel,
	}

	if v := os.Getenv("HUD_LOG_LEVEL"); v != "" {
		level, err := logger.ParseLevel(v)
		if err != nil {
			logger.Warn("config", "%v, using %s", err, d.LogLevel)
		} else {
			cfg.LogLevel = level
		}
	}

	if cfg.FPS <= 0 {
		logger.Warn("config", "HUD_FPS must be positive, using %d", d.FPS)
		cfg.FPS = d.FPS
	}
	if cfg.FPS > MaxFPS {
		logger.Warn("config", "HUD_FPS %d is above %d, clamping", cfg.FPS, MaxFPS)
		cfg.FPS = MaxFPS
	}

	return cfg
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
