package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/brunobiangulo/goquiz"
)

type handler struct {
	engine    goquiz.Engine
	maxUpload int64
}

func newHandler(e goquiz.Engine, maxUpload int64) *handler {
	if maxUpload <= 0 {
		maxUpload = 50 << 20
	}
	return &handler{engine: e, maxUpload: maxUpload}
}

// POST /convert
// Accepts a multipart upload in field "file". With ?diagnostics=1 the
// response is {questions, unparsed, stats}; otherwise a bare question array.
func (h *handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: expected multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	// Sanitise filename to prevent path traversal.
	safeName := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(safeName))

	tmp, err := os.CreateTemp("", "goquiz-*"+ext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		slog.Error("creating temp file", "error", err)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, http.StatusInternalServerError, "failed to save file")
		slog.Error("saving uploaded file", "error", err)
		return
	}
	tmp.Close()

	result, err := h.engine.Convert(ctx, tmpPath, goquiz.WithFormat(ext))
	if err != nil {
		status, msg := classifyError(err)
		writeError(w, status, msg)
		slog.Error("convert error", "filename", safeName, "status", status, "error", err)
		return
	}

	w.Header().Set(headerQuestions, strconv.Itoa(len(result.Questions)))
	w.Header().Set(headerUnparsed, strconv.Itoa(result.Stats.Unparsed))

	if wantDiagnostics(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	writeJSON(w, http.StatusOK, result.Questions)
}

// GET /formats
func (h *handler) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"formats": h.engine.Formats(),
	})
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func wantDiagnostics(r *http.Request) bool {
	v := r.URL.Query().Get("diagnostics")
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// classifyError maps engine errors onto HTTP statuses: input rejections are
// the client's fault, decode failures mean the document could not be read.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, goquiz.ErrEmptyInput):
		return http.StatusBadRequest, "uploaded file is empty"
	case errors.Is(err, goquiz.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge, "uploaded file is too large"
	case errors.Is(err, goquiz.ErrUnsupportedFormat):
		return http.StatusBadRequest, "unsupported file type"
	case errors.Is(err, goquiz.ErrDecodeFailed):
		return http.StatusUnprocessableEntity, "document could not be decoded"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "conversion timed out"
	default:
		return http.StatusInternalServerError, "conversion failed"
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
