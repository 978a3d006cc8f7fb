// Package web serves the upload page and the build endpoint.
package web

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/avaropoint/pledgebook/config"
	apperrors "github.com/avaropoint/pledgebook/errors"
	"github.com/avaropoint/pledgebook/formats"
	"github.com/avaropoint/pledgebook/logger"
	"github.com/avaropoint/pledgebook/pipeline"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WarningsHeader carries the number of degraded inputs of a build.
const WarningsHeader = "X-Pledgebook-Warnings"

type server struct {
	cfg     *config.Config
	version string
	now     func() time.Time
}

// NewRouter returns the HTTP handler. When the config sets a base
// path, every route is mounted under it.
func NewRouter(cfg *config.Config, version string) http.Handler {
	s := &server{cfg: cfg, version: version, now: time.Now}

	api := chi.NewRouter()
	api.Get("/", s.handleIndex)
	api.Route("/api", func(r chi.Router) {
		r.Get("/info", s.handleInfo)
		r.With(buildLimiter(cfg.Server.BuildBurst)).Post("/build", s.handleBuild)
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	if base := cfg.Server.BasePath; base != "" && base != "/" {
		r.Mount(base, api)
	} else {
		r.Mount("/", api)
	}
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Get().Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// buildLimiter refills one build slot every two seconds up to burst.
func buildLimiter(burst int) func(http.Handler) http.Handler {
	if burst <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Every(2*time.Second), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Get().Warnw("build rate limit exceeded", "remote", r.RemoteAddr)
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many builds, retry shortly")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(StaticFS, "static/index.html")
	if err != nil {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page)
}

func (s *server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"version": s.version,
		"banks":   s.cfg.BankIDs(),
		"sheets":  []string{s.cfg.Sheets.All, s.cfg.Sheets.Today, s.cfg.Sheets.Summary},
	})
}

func (s *server) handleBuild(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.Server.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_UPLOAD",
			fmt.Sprintf("upload could not be read (max %d MB)", s.cfg.Server.MaxUploadMB))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File
	in := pipeline.Inputs{}
	var err error
	if in.Positions, err = firstFile(files["positions"]); err != nil {
		s.fail(w, err)
		return
	}
	if in.Today, err = firstFile(files["today"]); err != nil {
		s.fail(w, err)
		return
	}
	var banks []pipeline.Source
	for _, fh := range files["banks"] {
		src, err := readFile(fh)
		if err != nil {
			s.fail(w, err)
			return
		}
		banks = append(banks, src)
	}
	in.Banks = pipeline.MatchBankFiles(s.cfg, banks)

	res, err := pipeline.Build(s.cfg, in)
	if err != nil {
		s.fail(w, err)
		return
	}
	data, err := res.Bytes()
	if err != nil {
		s.fail(w, err)
		return
	}

	log := logger.ForRun(res.Report.RunID)
	for _, wn := range res.Report.Warnings {
		log.Warnw("input degraded", "warning", wn.String())
	}

	name := formats.SanitizeFilename(pipeline.OutputName(s.cfg, s.now()))
	w.Header().Set("Content-Type", xlsxMime)
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	w.Header().Set(WarningsHeader, strconv.Itoa(len(res.Report.Warnings)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// firstFile reads the first file of a form field. A missing field is a
// missing base input.
func firstFile(fhs []*multipart.FileHeader) (pipeline.Source, error) {
	if len(fhs) == 0 {
		return pipeline.Source{}, apperrors.ErrBaseInputs
	}
	return readFile(fhs[0])
}

func readFile(fh *multipart.FileHeader) (pipeline.Source, error) {
	f, err := fh.Open()
	if err != nil {
		return pipeline.Source{}, apperrors.Wrap(apperrors.ErrUnreadableSource, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return pipeline.Source{}, apperrors.Wrap(apperrors.ErrUnreadableSource, err)
	}
	return pipeline.Source{Name: fh.Filename, Data: data}, nil
}

func (s *server) fail(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !stderrors.As(err, &appErr) {
		logger.Get().Errorw("build failed", "error", err)
		writeError(w, http.StatusInternalServerError, apperrors.ErrInternal.Code, apperrors.ErrInternal.Message)
		return
	}
	status := http.StatusBadRequest
	if appErr.Code == apperrors.ErrRender.Code || appErr.Code == apperrors.ErrInternal.Code {
		status = http.StatusInternalServerError
	}
	logger.Get().Warnw("build rejected", "code", appErr.Code, "error", err)
	writeError(w, status, appErr.Code, appErr.Message)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Get().Errorw("encoding response", "error", err)
	}
}
