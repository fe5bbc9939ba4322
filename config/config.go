// Package config loads process configuration from the environment.
//
// The environment is read and validated once at process start; a validation
// failure is a fatal startup error for the caller. Empty-string values are
// treated as absent.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/r0tools/datasheet-libs/cache"
	"github.com/r0tools/datasheet-libs/datasheet"
	libErrs "github.com/r0tools/datasheet-libs/errors"
	"github.com/r0tools/datasheet-libs/releases"
)

type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeTest        Mode = "test"
	ModeProduction  Mode = "production"
)

type Config struct {
	// AccessToken authenticates tag listing requests. Optional outside
	// production.
	AccessToken string
	Mode        Mode
	ListenAddr  string
	// BaseURL is the raw-content host serving datasheet artifacts.
	BaseURL      string
	TagsEndpoint string
	// RevalidateWindow bounds how long cached artifacts are served before a
	// refetch.
	RevalidateWindow time.Duration
	CacheMaxEntries  int
}

// Load reads and validates the environment.
func Load() (*Config, error) {
	cfg := &Config{
		AccessToken:  lookup("ACCESS_TOKEN", ""),
		ListenAddr:   lookup("LISTEN_ADDR", ":8080"),
		BaseURL:      lookup("DATASHEET_BASE_URL", datasheet.DefaultBaseURL),
		TagsEndpoint: lookup("RELEASE_TAGS_URL", releases.DefaultTagsEndpoint),
	}

	mode := Mode(lookup("APP_ENV", string(ModeDevelopment)))
	switch mode {
	case ModeDevelopment, ModeTest, ModeProduction:
		cfg.Mode = mode
	default:
		return nil, libErrs.NewConfigErr(fmt.Errorf("%w: APP_ENV=%q", libErrs.ErrInvalidEnv, mode))
	}

	if cfg.Mode == ModeProduction && cfg.AccessToken == "" {
		return nil, libErrs.NewConfigErr(fmt.Errorf("%w: ACCESS_TOKEN is required in production", libErrs.ErrMissingEnv))
	}

	window := cache.DefaultWindow
	if raw := lookup("REVALIDATE_WINDOW", ""); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return nil, libErrs.NewConfigErr(fmt.Errorf("%w: REVALIDATE_WINDOW=%q", libErrs.ErrInvalidEnv, raw))
		}
		window = parsed
	}
	cfg.RevalidateWindow = window

	maxEntries := 256
	if raw := lookup("CACHE_MAX_ENTRIES", ""); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, libErrs.NewConfigErr(fmt.Errorf("%w: CACHE_MAX_ENTRIES=%q", libErrs.ErrInvalidEnv, raw))
		}
		maxEntries = parsed
	}
	cfg.CacheMaxEntries = maxEntries

	return cfg, nil
}

// lookup returns the value of `key`, falling back when unset or empty.
func lookup(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
