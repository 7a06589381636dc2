// Package annotate ties the anchor injector and the menu builder together:
// one call takes a document in, and hands back the rewritten document, the
// menu fragment, and the anchor list.
package annotate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/anchornav/internal/anchor"
	"github.com/dgallion1/anchornav/internal/convert"
	"github.com/dgallion1/anchornav/internal/menu"
)

// Options configures one annotation run.
type Options struct {
	Targets []string    // element names whose text gets anchored; required
	Menu    menu.Config // wrapper markup for the menu fragment
}

// DefaultOptions anchors all six heading levels with unordered-list menu
// markup.
func DefaultOptions() Options {
	return Options{
		Targets: []string{"h1", "h2", "h3", "h4", "h5", "h6"},
		Menu:    menu.DefaultConfig(),
	}
}

// Result holds the two output artifacts plus the anchors they share.
type Result struct {
	Document string
	Menu     string
	Anchors  []anchor.Entry
}

// Annotate injects anchors into document and builds the matching menu.
func Annotate(document string, opts Options) (*Result, error) {
	doc, anchors, err := anchor.Inject(document, opts.Targets)
	if err != nil {
		return nil, err
	}
	return &Result{
		Document: doc,
		Menu:     menu.Build(anchors, opts.Menu),
		Anchors:  anchors,
	}, nil
}

// AnnotateFile loads path, converts it to HTML by extension, and annotates
// it. The file is read fully into memory before any parsing begins.
func AnnotateFile(path string, opts Options) (*Result, error) {
	if !convert.IsSupportedExtension(path) {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
	conv, err := convert.ForFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	doc, err := conv.Convert(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", filepath.Base(path), err)
	}
	return Annotate(doc, opts)
}
