// Package menu formats a recorded anchor sequence into a standalone HTML
// fragment of links, wrapped in configurable list and item markup.
package menu

import (
	"strings"

	"github.com/dgallion1/anchornav/internal/anchor"
)

// Config holds the four markup fragments wrapping the menu. ListOpen and
// ListClose surround the whole fragment; ItemOpen and ItemClose surround
// each entry.
type Config struct {
	ListOpen  string
	ListClose string
	ItemOpen  string
	ItemClose string
}

// DefaultConfig returns unordered-list markup.
func DefaultConfig() Config {
	return Config{
		ListOpen:  "<UL>\n",
		ListClose: "</UL>\n",
		ItemOpen:  "<LI>",
		ItemClose: "</LI>\n",
	}
}

// Build renders one link per entry, in sequence order. An empty entry list
// yields just the list wrapper.
func Build(entries []anchor.Entry, cfg Config) string {
	var b strings.Builder
	b.WriteString(cfg.ListOpen)
	for _, e := range entries {
		b.WriteString(cfg.ItemOpen)
		b.WriteString(`<a href="#`)
		b.WriteString(e.ID)
		b.WriteString(`">`)
		b.WriteString(e.Text)
		b.WriteString(`</a>`)
		b.WriteString(cfg.ItemClose)
	}
	b.WriteString(cfg.ListClose)
	return b.String()
}
