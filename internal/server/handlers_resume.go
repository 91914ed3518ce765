package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/jonathan/resume-studio/internal/normalize"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// NormalizeResponse is the editor state after applying a JSON document.
type NormalizeResponse struct {
	Data       types.ResumeData     `json:"data"`
	Employer   string               `json:"employer"`
	FileName   string               `json:"fileName"`
	ParseError string               `json:"parseError,omitempty"`
	Warnings   []schemas.FieldError `json:"warnings,omitempty"`
}

// EmployerRequest asks for the employer key of a JSON document to be rewritten.
type EmployerRequest struct {
	JSON     string `json:"json"`
	Employer string `json:"employer"`
}

// EmployerResponse carries the rewritten document.
type EmployerResponse struct {
	JSON string `json:"json"`
}

// handleSeed serves the resume.json seed file.
func (s *Server) handleSeed(w http.ResponseWriter, _ *http.Request) {
	content, err := os.ReadFile(s.cfg.SeedPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "resume.json not found", http.StatusNotFound)
			return
		}
		log.Printf("Error reading seed file %s: %v", s.cfg.SeedPath, err)
		http.Error(w, "failed to read resume.json", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(content)
}

// handleDefault returns the built-in resume as editable JSON text.
func (s *Server) handleDefault(w http.ResponseWriter, _ *http.Request) {
	content, err := normalize.DefaultJSON()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(content)
}

// handleNormalize applies the posted JSON text to the editing session.
// Malformed input is not an HTTP failure: the last good record comes back with parseError set.
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.editor.Apply(body); err != nil && !errors.Is(err, normalize.ErrMalformedInput) {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	state := s.editor.Snapshot()
	s.jsonResponse(w, http.StatusOK, NormalizeResponse{
		Data:       state.Data,
		Employer:   state.Employer,
		FileName:   rendering.FileName(state.Employer),
		ParseError: state.ParseError,
		Warnings:   state.Warnings,
	})
}

// handleEmployer rewrites the employer key of a JSON document.
func (s *Server) handleEmployer(w http.ResponseWriter, r *http.Request) {
	var req EmployerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	out, err := normalize.SetEmployer([]byte(req.JSON), req.Employer)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, EmployerResponse{JSON: string(out)})
}

// handlePreview renders a best-effort document for the preview pane.
// Malformed input previews the last good record; a render failure answers 204.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	data := s.editor.Snapshot().Data
	if len(bytes.TrimSpace(body)) > 0 {
		if result, err := normalize.Normalize(data, body); err == nil {
			data = result.Data
		}
	}

	content, err := s.render(data)
	if err != nil {
		log.Printf("[PREVIEW] Render failed: %v", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeDocument(w, content, "", false)
}

// handleDOCX renders the document for download. An empty body uses the editing session.
func (s *Server) handleDOCX(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	state := s.editor.Snapshot()
	data, employer := state.Data, state.Employer
	if len(bytes.TrimSpace(body)) > 0 {
		result, err := normalize.Normalize(data, body)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), errorMessage(err))
			return
		}
		data, employer = result.Data, result.Employer
	}

	content, err := s.render(data)
	if err != nil {
		log.Printf("[DOCX] Render failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate document")
		return
	}
	s.writeDocument(w, content, rendering.FileName(employer), true)
}

func (s *Server) writeDocument(w http.ResponseWriter, content []byte, fileName string, attachment bool) {
	w.Header().Set("Content-Type", rendering.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	if attachment {
		w.Header().Set("Content-Disposition", contentDisposition(fileName))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// contentDisposition quotes fileName for an attachment header. Names outside
// ASCII also get an RFC 5987 filename* parameter.
func contentDisposition(fileName string) string {
	quoted := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(fileName)
	for _, r := range fileName {
		if r > unicode.MaxASCII {
			return `attachment; filename="` + quoted + `"; filename*=UTF-8''` + url.PathEscape(fileName)
		}
	}
	return `attachment; filename="` + quoted + `"`
}
