// Package api exposes fact checks over HTTP: upload a CSV or XLSX file and get
// the report back as JSON, markdown, HTML or a styled workbook.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"factcheck/adapters/excel"
	"factcheck/adapters/render"
	"factcheck/adapters/sink"
	"factcheck/app"
	"factcheck/domain/core"
	"factcheck/internal"
	"factcheck/internal/config"
	"factcheck/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// uploadField is the multipart field holding the dataset file
const uploadField = "dataset"

// Server routes fact-check requests to the service
type Server struct {
	router    *chi.Mux
	service   *app.FactCheckService
	source    excel.ExcelConfig
	workbook  excel.WorkbookConfig
	maxUpload int64
	logger    *internal.Logger
}

// NewServer builds the router
func NewServer(service *app.FactCheckService, cfg *config.Config, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:    chi.NewRouter(),
		service:   service,
		source:    excel.FromAppConfig(cfg),
		workbook:  excel.WorkbookFromAppConfig(cfg),
		maxUpload: cfg.Server.MaxUploadBytes,
		logger:    logger.WithComponent("API"),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	if cfg.Server.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/profile", s.handleProfile)
	s.router.Route("/runs", func(r chi.Router) {
		r.Get("/", s.handleListRuns)
		r.Get("/{runID}", s.handleGetRun)
	})
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleProfile accepts a multipart upload in field "dataset". Query
// parameters: format=json|md|html|xlsx (default json) and name, which
// overrides the report name derived from the file name.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	switch format {
	case "json", "md", "html", "xlsx":
	default:
		s.writeError(w, errors.UnsupportedMedia(format))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		s.writeError(w, errors.InvalidInput(fmt.Sprintf("multipart field %q is required: %v", uploadField, err)))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, errors.InvalidInput("failed to read upload: "+err.Error()))
		return
	}

	reader := excel.NewDataReader(header.Filename, s.source, s.logger)
	src, err := newUploadSource(header.Filename, data, reader)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.service.Run(r.Context(), app.FactCheckRequest{Source: src})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("profiled upload %s (%d bytes) as %s", header.Filename, len(data), format)

	name := r.URL.Query().Get("name")
	if name == "" {
		name = result.SourceName
	}

	switch format {
	case "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, render.Markdown(name, result.Report))
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(render.HTML(name, result.Report))
	case "xlsx":
		s.writeWorkbook(w, r, result, name)
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) writeWorkbook(w http.ResponseWriter, r *http.Request, result *app.FactCheckResult, name string) {
	dir, err := os.MkdirTemp("", "fcotd-")
	if err != nil {
		s.writeError(w, errors.InternalError(err.Error()))
		return
	}
	defer os.RemoveAll(dir)

	dest := sink.Destination{Dir: dir, Name: name}
	path := dest.Path("xlsx")
	if err := excel.NewStyledWorkbookSink(s.workbook).Persist(r.Context(), result.Report, path); err != nil {
		s.writeError(w, errors.SinkError(err))
		return
	}

	body, err := os.ReadFile(path)
	if err != nil {
		s.writeError(w, errors.SinkError(err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("X-Report-Fingerprint", result.Fingerprint.String())
	w.Write(body)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	history := s.service.History()
	if history == nil {
		s.writeError(w, errors.NotFound("run history"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := history.ListRecent(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs, "count": len(runs)})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	history := s.service.History()
	if history == nil {
		s.writeError(w, errors.NotFound("run history"))
		return
	}
	id, err := core.ParseRunID(chi.URLParam(r, "runID"))
	if err != nil {
		s.writeError(w, errors.InvalidInput(err.Error()))
		return
	}
	record, err := history.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	} else {
		s.logger.Debug("request rejected: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
