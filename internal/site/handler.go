package site

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/gallery"
	"github.com/alnah/go-mdsite/internal/theme"
)

// Handler returns the HTTP handler serving the site.
func (s *Site) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(s.themes.Middleware)

	r.Get("/", s.handleIndex)
	r.Get("/index.html", s.handleIndex)
	r.Get("/gallery.html", s.handleGallery)
	r.Get("/{name}.html", s.handlePage)
	r.Get("/static/{style}.css", s.handleStyle)
	r.Post("/theme", s.handleTheme)

	if !s.Remote() {
		images := filepath.Join(contentDir(s.cfg), filepath.FromSlash(gallery.LocalDir))
		if info, err := os.Stat(images); err == nil && info.IsDir() {
			r.Handle("/"+gallery.LocalDir+"/*",
				http.StripPrefix("/"+gallery.LocalDir+"/", http.FileServer(http.Dir(images))))
		}
	}

	return r
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc, err := s.RenderIndex(theme.FromContext(r.Context()).Pref, false)
	s.writeDocument(w, r, doc, err)
}

func (s *Site) handleGallery(w http.ResponseWriter, r *http.Request) {
	doc, err := s.RenderGallery(theme.FromContext(r.Context()).Pref, false)
	s.writeDocument(w, r, doc, err)
}

func (s *Site) handlePage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := s.RenderPage(r.Context(), name, theme.FromContext(r.Context()).Pref, false)
	s.writeDocument(w, r, doc, err)
}

// writeDocument writes doc with a status derived from err. A document
// accompanying an error is the fallback page and is still sent.
func (s *Site) writeDocument(w http.ResponseWriter, r *http.Request, doc []byte, err error) {
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		s.logger.LogAttrs(r.Context(), levelFor(status), "page render failed",
			slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	if doc == nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(doc)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrPageNotFound), errors.Is(err, mdsite.ErrLoadFailure):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func levelFor(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelDebug
}

func (s *Site) handleStyle(w http.ResponseWriter, r *http.Request) {
	css, err := s.Style(chi.URLParam(r, "style"))
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			http.NotFound(w, r)
			return
		}
		s.logger.LogAttrs(r.Context(), slog.LevelError, "style load failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(css))
}

// handleTheme stores the opposite of the displayed theme and redirects back.
func (s *Site) handleTheme(w http.ResponseWriter, r *http.Request) {
	st := theme.FromContext(r.Context())
	next := theme.Toggle(st.Displayed())
	s.themes.Set(w, next)

	http.Redirect(w, r, returnPath(r.PostFormValue("return")), http.StatusSeeOther)
}

// returnPath accepts only same-site absolute paths.
func returnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.ContainsAny(p, "\\\r\n") {
		return "/"
	}
	return p
}

// requestLogger logs one line per request with the chi request ID.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.LogAttrs(r.Context(), slog.LevelInfo, "request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("duration", time.Since(start)),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
