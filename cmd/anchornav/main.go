// Command anchornav annotates a single document from the command line:
// it injects named anchors into the configured target elements and writes
// the rewritten document and the navigation menu fragment.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/anchornav/internal/annotate"
	"github.com/dgallion1/anchornav/internal/menu"
)

func main() {
	var (
		in        = flag.String("in", "", "input document (html, htm, md, txt, pdf, docx)")
		out       = flag.String("out", "", "output file for the annotated document (default stdout)")
		menuOut   = flag.String("menu-out", "", "output file for the menu fragment (default stdout, after the document)")
		targets   = flag.String("targets", "h1,h2,h3,h4,h5,h6", "comma-separated element names to anchor")
		listOpen  = flag.String("list-open", "<UL>\n", "markup opening the menu list")
		listClose = flag.String("list-close", "</UL>\n", "markup closing the menu list")
		itemOpen  = flag.String("item-open", "<LI>", "markup opening each menu item")
		itemClose = flag.String("item-close", "</LI>\n", "markup closing each menu item")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *in == "" {
		log.Error("missing required flag", "flag", "-in")
		flag.Usage()
		os.Exit(2)
	}

	opts := annotate.Options{
		Targets: splitTargets(*targets),
		Menu: menu.Config{
			ListOpen:  *listOpen,
			ListClose: *listClose,
			ItemOpen:  *itemOpen,
			ItemClose: *itemClose,
		},
	}

	result, err := annotate.AnnotateFile(*in, opts)
	if err != nil {
		log.Error("annotate failed", "file", *in, "error", err)
		os.Exit(1)
	}

	if err := write(*out, result.Document); err != nil {
		log.Error("write document failed", "file", *out, "error", err)
		os.Exit(1)
	}
	if err := write(*menuOut, result.Menu); err != nil {
		log.Error("write menu failed", "file", *menuOut, "error", err)
		os.Exit(1)
	}
}

func splitTargets(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func write(path, content string) error {
	if path == "" {
		_, err := fmt.Print(content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
