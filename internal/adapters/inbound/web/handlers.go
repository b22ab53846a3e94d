package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/htmlview"
	"github.com/csvcheck/csvcheck/internal/application"
	"github.com/csvcheck/csvcheck/internal/domain"
	"go.uber.org/zap"
)

const (
	formField       = "file"
	defaultFileName = "upload.csv"
	msgNoFile       = "Please upload the customer data file before running the validation."
	msgBusy         = "a validation is already running, try again when it finishes"
)

// validateResponse is the JSON body of POST /api/v1/validate.
type validateResponse struct {
	File      string             `json:"file"`
	Checksum  string             `json:"checksum"`
	Status    domain.StatusLevel `json:"status,omitempty"`
	FromCache bool               `json:"from_cache,omitempty"`
	Blocks    []domain.Block     `json:"blocks"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "pong", "timestamp": time.Now().Format(time.RFC3339)})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusOK, htmlview.Page{})
}

// handleValidateForm runs the upload page flow: preview, then validation.
// The preview never blocks validation.
func (s *Server) handleValidateForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		code, msg := http.StatusBadRequest, msgNoFile
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			code, msg = http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxUploadBytes)
		}
		s.writePage(w, code, htmlview.Page{Error: msg})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, hdr, err := r.FormFile(formField)
	if err != nil {
		s.writePage(w, http.StatusBadRequest, htmlview.Page{Error: msgNoFile})
		return
	}
	defer file.Close()

	name := filepath.Base(hdr.Filename)
	page := htmlview.Page{FileName: name}
	if !domain.HasAcceptedExtension(name) {
		page.Error = fmt.Sprintf("unsupported file type %q: only .csv and .txt are accepted", filepath.Ext(name))
		s.writePage(w, http.StatusBadRequest, page)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		page.Error = fmt.Sprintf("reading upload: %v", err)
		s.writePage(w, http.StatusBadRequest, page)
		return
	}
	upload := domain.Upload{Name: name, ContentType: hdr.Header.Get("Content-Type"), Data: data}

	if pv, err := s.preview.Preview(upload); err != nil {
		page.PreviewError = err.Error()
	} else {
		page.Preview = pv
	}

	if !s.running.TryAcquire(1) {
		page.Error = msgBusy
		s.writePage(w, http.StatusTooManyRequests, page)
		return
	}
	run, err := s.validate.Validate(r.Context(), upload, application.ValidateOptions{})
	s.running.Release(1)
	if err != nil {
		page.Error = err.Error()
		s.writePage(w, statusForError(err), page)
		return
	}

	report, err := s.view.RenderReport(run.Blocks)
	if err != nil {
		s.logger.Error("rendering report", zap.Error(err))
		page.Error = "failed to render the validation result"
		s.writePage(w, http.StatusInternalServerError, page)
		return
	}
	page.Report = report
	s.writePage(w, http.StatusOK, page)
}

// handleValidateAPI validates the raw request body. ?name= sets the file name
// and ?cached=true reuses a stored response for identical bytes.
func (s *Server) handleValidateAPI(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = defaultFileName
	}
	name = filepath.Base(name)
	if !domain.HasAcceptedExtension(name) {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type %q: only .csv and .txt are accepted", filepath.Ext(name)))
		return
	}

	useCache := false
	if v := r.URL.Query().Get("cached"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "cached must be a boolean")
			return
		}
		useCache = b
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxUploadBytes))
			return
		}
		respondWithError(w, http.StatusBadRequest, "reading request body")
		return
	}
	if len(data) == 0 {
		respondWithError(w, http.StatusBadRequest, "empty request body")
		return
	}

	if !s.running.TryAcquire(1) {
		respondWithError(w, http.StatusTooManyRequests, msgBusy)
		return
	}
	defer s.running.Release(1)

	upload := domain.Upload{Name: name, ContentType: r.Header.Get("Content-Type"), Data: data}
	run, err := s.validate.Validate(r.Context(), upload, application.ValidateOptions{UseCache: useCache})
	if err != nil {
		respondWithJSON(w, statusForError(err), map[string]string{
			"error": err.Error(),
			"kind":  domain.ErrorKind(err),
		})
		return
	}

	respondWithJSON(w, http.StatusOK, validateResponse{
		File:      run.FileName,
		Checksum:  run.Checksum,
		Status:    run.Status(),
		FromCache: run.FromCache,
		Blocks:    run.Blocks,
	})
}

// statusForError maps upstream failures to gateway statuses.
func statusForError(err error) int {
	switch domain.ErrorKind(err) {
	case "network":
		return http.StatusGatewayTimeout
	case "http_status", "malformed_json", "invalid_format":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writePage(w http.ResponseWriter, code int, page htmlview.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := s.view.WritePage(w, page); err != nil {
		s.logger.Error("writing page", zap.Error(err))
	}
}

// respondWithError sends a JSON error response.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response with the given status code and payload.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to marshal response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
