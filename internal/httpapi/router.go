// Package httpapi assembles the HTTP surface: Connect services, document
// downloads, metrics and the static back-office pages.
package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atcommodities/erp/internal/auth"
	"github.com/atcommodities/erp/internal/middleware"
	"github.com/atcommodities/erp/internal/storage"
)

// Mount is a handler served under a path prefix, such as a Connect service.
type Mount struct {
	Path    string
	Handler http.Handler
}

// Options configures the router.
type Options struct {
	Store storage.Store

	// JWT guards downloads when set; nil leaves them open.
	JWT *auth.JWTManager

	// Company is printed as the payee on invoice PDFs.
	Company string

	// StaticDir is served for any other path when non-empty.
	StaticDir string

	Services []Mount
}

type server struct {
	store   storage.Store
	company string
	now     func() time.Time
}

// NewRouter builds the HTTP handler tree.
func NewRouter(opts Options) *mux.Router {
	s := &server{store: opts.Store, company: opts.Company, now: time.Now}
	return s.routes(opts)
}

func (s *server) routes(opts Options) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger, corsMiddleware)

	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	for _, m := range opts.Services {
		r.PathPrefix(m.Path).Handler(m.Handler)
	}

	docs := r.NewRoute().Subrouter()
	if opts.JWT != nil {
		docs.Use(mux.MiddlewareFunc(middleware.RequireAuthHTTP(opts.JWT)))
	}
	docs.HandleFunc("/invoices/{id}/pdf", s.handleInvoicePDF).Methods(http.MethodGet)
	docs.HandleFunc("/downloads/{report:attendance|invoices|deliveries}", s.handleDownload).Methods(http.MethodGet)

	if opts.StaticDir != "" {
		r.PathPrefix("/").Handler(staticHandler(opts.StaticDir, opts.Services))
	}
	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// staticHandler serves files from dir, falling back to index.html for unknown paths.
func staticHandler(dir string, services []Mount) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, m := range services {
			if strings.HasPrefix(r.URL.Path, m.Path) {
				http.NotFound(w, r)
				return
			}
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		filePath := filepath.Join(dir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	})
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
