package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	// Auth. Empty disables authentication.
	APIKey string

	// Anchor injection
	Targets []string

	// Menu wrapper markup
	ListOpen  string
	ListClose string
	ItemOpen  string
	ItemClose string

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("ANCHORNAV_API_KEY"),

		Targets: splitList(envOr("ANCHOR_TARGETS", "h1,h2,h3,h4,h5,h6")),

		ListOpen:  envOr("MENU_LIST_OPEN", "<UL>\n"),
		ListClose: envOr("MENU_LIST_CLOSE", "</UL>\n"),
		ItemOpen:  envOr("MENU_ITEM_OPEN", "<LI>"),
		ItemClose: envOr("MENU_ITEM_CLOSE", "</LI>\n"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("ANCHOR_TARGETS must name at least one element")
	}
	if c.ListOpen == "" || c.ListClose == "" {
		return fmt.Errorf("menu list wrapper markup must not be empty")
	}
	if c.ItemOpen == "" || c.ItemClose == "" {
		return fmt.Errorf("menu item wrapper markup must not be empty")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
