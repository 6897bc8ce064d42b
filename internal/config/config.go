package config

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Frame loop
	FPS int

	// Drawing surface density, capped at 2 by the viewport manager.
	PixelRatio float64

	// Playback
	Volume float64

	// Scene
	Particles int
	Seed      uint64 // 0 seeds from the clock

	// Diagnostics log file; empty discards log output.
	LogPath string

	// Directory the file picker opens in.
	StartDir string
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		FPS:        clampInt(envInt("CLIMP3D_FPS", 30), 1, 120),
		PixelRatio: envFloat("CLIMP3D_PIXEL_RATIO", 1),
		Volume:     clampFloat(envFloat("CLIMP3D_VOLUME", 0.5), 0, 1),
		Particles:  clampInt(envInt("CLIMP3D_PARTICLES", 7000), 0, 100000),
		Seed:       envUint("CLIMP3D_SEED", 0),
		LogPath:    envStr("CLIMP3D_LOG", ""),
		StartDir:   envStr("CLIMP3D_DIR", "."),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
