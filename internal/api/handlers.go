package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/anchornav/internal/anchor"
	"github.com/dgallion1/anchornav/internal/annotate"
	"github.com/dgallion1/anchornav/internal/convert"
	"github.com/dgallion1/anchornav/internal/menu"
)

// handleAnnotate accepts a multipart document upload, converts it to HTML
// by extension, injects anchors, and returns the rewritten document plus
// the menu fragment.
//
// Optional form fields: "targets" (comma-separated element names) and the
// four wrapper overrides "list_open", "list_close", "item_open",
// "item_close". Unset fields fall back to the server configuration.
func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !convert.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	opts := s.optionsFromForm(r)

	conv, err := convert.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := conv.Convert(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, fmt.Sprintf("convert %s: %v", filename, err), http.StatusUnprocessableEntity)
		return
	}

	result, err := annotate.Annotate(doc, opts)
	if err != nil {
		if errors.Is(err, anchor.ErrNoTargets) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	anchors := result.Anchors
	if anchors == nil {
		anchors = []anchor.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"filename": filename,
		"document": result.Document,
		"menu":     result.Menu,
		"anchors":  anchors,
	})
}

// optionsFromForm merges per-request overrides over the server defaults.
func (s *Server) optionsFromForm(r *http.Request) annotate.Options {
	opts := annotate.Options{
		Targets: s.cfg.Targets,
		Menu: menu.Config{
			ListOpen:  s.cfg.ListOpen,
			ListClose: s.cfg.ListClose,
			ItemOpen:  s.cfg.ItemOpen,
			ItemClose: s.cfg.ItemClose,
		},
	}

	if v := r.FormValue("targets"); v != "" {
		var targets []string
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				targets = append(targets, t)
			}
		}
		opts.Targets = targets
	}
	if v := r.FormValue("list_open"); v != "" {
		opts.Menu.ListOpen = v
	}
	if v := r.FormValue("list_close"); v != "" {
		opts.Menu.ListClose = v
	}
	if v := r.FormValue("item_open"); v != "" {
		opts.Menu.ItemOpen = v
	}
	if v := r.FormValue("item_close"); v != "" {
		opts.Menu.ItemClose = v
	}

	return opts
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
