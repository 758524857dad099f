package server

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/cleared-dev/statements/internal/logger"
	"github.com/cleared-dev/statements/internal/reader"
	"github.com/cleared-dev/statements/internal/service"
)

const defaultPreviewRows = 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	profiles := s.svc.Profiles()
	writeJSON(w, http.StatusOK, map[string]any{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

// handleNormalize handles POST /api/statements
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	file, header, ok := s.uploadedFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	req := service.Request{
		FileName: header.Filename,
		Profile:  r.FormValue("profile"),
		From:     r.FormValue("from"),
		To:       r.FormValue("to"),
	}
	if v := r.FormValue("header_row"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "header_row must be a non-negative integer")
			return
		}
		req.HeaderRow = &n
	}

	out, err := s.svc.Process(r.Context(), file, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handlePreview handles POST /api/statements/preview
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	file, header, ok := s.uploadedFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	limit := defaultPreviewRows
	if v := r.FormValue("rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "rows must be a non-negative integer")
			return
		}
		limit = n
	}

	sheet, rows, err := s.svc.Preview(header.Filename, file, limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sheet": sheet,
		"rows":  rows,
	})
}

// uploadedFile extracts the "file" part of a multipart upload, enforcing
// the size limit. It writes the error response itself when ok is false.
func (s *Server) uploadedFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return nil, nil, false
		}
		writeError(w, http.StatusBadRequest, "expected multipart/form-data upload")
		return nil, nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return nil, nil, false
	}
	return file, header, true
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	switch {
	case errors.Is(err, service.ErrUnknownProfile):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, reader.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, reader.ErrInvalidFile), errors.Is(err, reader.ErrHeaderRowOutOfRange):
		log.Warn().Err(err).Msg("statement rejected")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
