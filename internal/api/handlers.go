package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/finchunk/internal/layout"
	"github.com/dgallion1/finchunk/internal/parser"
	"github.com/dgallion1/finchunk/internal/processor"
)

type segmentRequest struct {
	HTML     string           `json:"html,omitempty"`
	Text     string           `json:"text,omitempty"`
	Document *layout.Document `json:"document,omitempty"`
	MaxChars int              `json:"max_chars,omitempty"`
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req segmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.dispatch(req)
	if err != nil {
		if errors.Is(err, processor.ErrNoInput) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "segmentation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSegmentFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
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
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}

	input, err := p.Parse(io.LimitReader(file, s.cfg.MaxUploadBytes+1), filename)
	if err != nil {
		jsonError(w, "failed to parse file: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	maxChars := 0
	if v := r.FormValue("max_chars"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			maxChars = n
		}
	}

	res, err := s.dispatch(segmentRequest{
		HTML:     input.HTML,
		Text:     input.Text,
		Document: input.Document,
		MaxChars: maxChars,
	})
	if err != nil {
		if errors.Is(err, processor.ErrNoInput) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "segmentation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

// dispatch selects the processing path: parsed document, then HTML,
// then plain text. The chunk budget is sanitized here, at the I/O
// boundary.
func (s *Server) dispatch(req segmentRequest) (processor.Result, error) {
	maxChars := s.sanitizeMaxChars(req.MaxChars)

	start := time.Now()
	defer func() {
		s.stats.Record(time.Since(start).Milliseconds())
	}()

	switch {
	case req.Document != nil && !req.Document.IsEmpty():
		return s.proc.ProcessDocument(*req.Document, maxChars)
	case strings.TrimSpace(req.HTML) != "":
		return s.proc.ProcessHTML(req.HTML, maxChars)
	case strings.TrimSpace(req.Text) != "":
		return s.proc.ProcessText(req.Text, maxChars)
	default:
		return processor.Result{}, processor.ErrNoInput
	}
}

func (s *Server) sanitizeMaxChars(n int) int {
	if n <= 0 {
		return s.cfg.DefaultMaxChars
	}
	if n > s.cfg.MaxCharsCap {
		return s.cfg.MaxCharsCap
	}
	return n
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
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
