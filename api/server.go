package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"skudiff/adapters/excel"
	"skudiff/app"
	"skudiff/domain/compare"
	"skudiff/internal/config"
	"skudiff/internal/errors"
	"skudiff/internal/report"
)

// Server is the JSON API front-end. It exposes the same comparison
// routine as the web UI, for callers that want machine-readable output.
type Server struct {
	router  *chi.Mux
	service *app.CompareService
	cfg     *config.Config
}

// CompareResponse is the JSON rendering of a comparison result.
type CompareResponse struct {
	Missing    []string `json:"missing"`
	Count      int      `json:"count"`
	Direction  string   `json:"direction"`
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	SourceSize int      `json:"source_size"`
	TargetSize int      `json:"target_size"`
	Report     string   `json:"report"`
}

// NewServer creates the API server
func NewServer(cfg *config.Config, service *app.CompareService) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		cfg:     cfg,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/api/compare", s.handleCompare)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	log.Printf("[API] Starting skudiff API on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router exposes the chi mux for tests
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCompare accepts a multipart request with fields first_file,
// second_file, first_column, second_column and optional direction and
// case_sensitive flags. Uploads are removed before the handler returns.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.Uploads.MaxFileSizeMB << 20); err != nil {
		s.writeError(w, errors.InvalidInput("expected a multipart form upload"))
		return
	}

	opts := compare.Options{
		CaseSensitive: s.cfg.Compare.CaseSensitive,
		Direction:     compare.Direction(s.cfg.Compare.Direction),
	}
	if v := r.FormValue("direction"); v != "" {
		direction, err := compare.ParseDirection(v)
		if err != nil {
			s.writeError(w, err)
			return
		}
		opts.Direction = direction
	}
	if v := r.FormValue("case_sensitive"); v != "" {
		opts.CaseSensitive = compare.ParseCaseFlag(v, opts.CaseSensitive)
	}

	firstColumn := strings.TrimSpace(r.FormValue("first_column"))
	secondColumn := strings.TrimSpace(r.FormValue("second_column"))
	if firstColumn == "" || secondColumn == "" {
		s.writeError(w, errors.InvalidInput("first_column and second_column are required"))
		return
	}

	firstPath, firstName, err := s.saveUpload(r, "first_file")
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer os.Remove(firstPath)

	secondPath, secondName, err := s.saveUpload(r, "second_file")
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer os.Remove(secondPath)

	firstTable, err := excel.NewDataReader(firstPath).ReadTable()
	if err != nil {
		s.writeError(w, err)
		return
	}
	firstTable.Name = firstName

	secondTable, err := excel.NewDataReader(secondPath).ReadTable()
	if err != nil {
		s.writeError(w, err)
		return
	}
	secondTable.Name = secondName

	result, err := s.service.CompareTables(firstTable, firstColumn, secondTable, secondColumn, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, CompareResponse{
		Missing:    result.Codes(),
		Count:      result.Count,
		Direction:  string(result.Direction),
		Source:     result.Source,
		Target:     result.Target,
		SourceSize: result.SourceSize,
		TargetSize: result.TargetSize,
		Report:     report.Text(result),
	})
}

// saveUpload persists one uploaded file under a collision-free name
func (s *Server) saveUpload(r *http.Request, field string) (path, filename string, err error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", "", errors.InvalidInput(fmt.Sprintf("missing uploaded file %q", field))
	}
	defer file.Close()

	if header.Size > s.cfg.Uploads.MaxFileSizeMB<<20 {
		return "", "", errors.InvalidInput(fmt.Sprintf("file %s exceeds the %dMB limit",
			header.Filename, s.cfg.Uploads.MaxFileSizeMB))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".xlsx", ".xls", ".csv":
	default:
		return "", "", errors.InvalidInput("only Excel (.xlsx, .xls) and CSV (.csv) files are allowed")
	}

	dst := filepath.Join(s.cfg.Uploads.Dir, fmt.Sprintf("upload-%s%s", uuid.NewString(), ext))
	out, err := os.Create(dst)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to create upload file")
	}
	defer out.Close()

	if _, err := out.ReadFrom(file); err != nil {
		os.Remove(dst)
		return "", "", errors.Wrap(err, "failed to store upload")
	}
	return dst, header.Filename, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

// writeError maps application error codes onto HTTP statuses
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeColumnNotFound:
		status = http.StatusUnprocessableEntity
	case errors.CodeFileUnreadable, errors.CodeInvalidDirection, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}

	log.Printf("[API] Request failed (%s): %v", errors.GetCode(err), err)
	s.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
