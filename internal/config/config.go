// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds paths and tuning knobs read from the environment.
type Config struct {
	// ModelPath is the ONNX classifier model file.
	ModelPath string
	// MetadataPath is the JSON metadata describing the model's classes and shapes.
	MetadataPath string
	// OverlayAlpha is the default heatmap blend opacity.
	OverlayAlpha float64
	// MaxRegions caps how many region markers are drawn at once.
	MaxRegions int
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() *Config {
	// Missing .env is fine; environment variables still apply
	_ = godotenv.Load()

	cfg := &Config{
		ModelPath:    os.Getenv("XRAY_MODEL_PATH"),
		MetadataPath: os.Getenv("XRAY_MODEL_METADATA"),
		OverlayAlpha: 0.5,
		MaxRegions:   3,
	}

	if v := os.Getenv("XRAY_OVERLAY_ALPHA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.OverlayAlpha = f
		}
	}
	if v := os.Getenv("XRAY_MAX_REGIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxRegions = n
		}
	}

	return cfg
}
