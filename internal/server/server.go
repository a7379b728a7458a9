// Package server wires the HTTP router for the blob API.
//
// Endpoints:
//
//	POST   /api/upload       store a file (JSON base64 or multipart)
//	GET    /api/list-files   list stored files, newest first
//	PUT    /api/update-pdf   replace a file's bytes (delete then put)
//	DELETE /api/delete-file  remove a file
//	POST   /api/upload-url   presigned direct-upload URL
//	GET    /api/blob-info    configured store description
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/pdfdesk/service/internal/file"
	"github.com/pdfdesk/service/internal/metrics"
	appMiddleware "github.com/pdfdesk/service/internal/middleware"
	"github.com/pdfdesk/service/internal/response"

	_ "github.com/pdfdesk/service/docs/swagger"
)

// Options configures the router.
type Options struct {
	Logger zerolog.Logger
	// JWTSecret guards mutating routes when non-empty.
	JWTSecret string
	// MaxBodyBytes caps request bodies on /api routes.
	MaxBodyBytes int64
}

// NewRouter builds the chi router serving files through h.
func NewRouter(h *file.Handler, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(opts.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", metrics.Handler())

	// Swagger UI at /swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		if opts.MaxBodyBytes > 0 {
			r.Use(chiMiddleware.RequestSize(opts.MaxBodyBytes))
		}

		// Browsers without a preflight header still expect 200 on OPTIONS.
		for _, p := range []string{"/upload", "/list-files", "/update-pdf", "/delete-file", "/upload-url", "/blob-info"} {
			r.Options(p, preflight)
		}

		r.Get("/list-files", h.List)
		r.Get("/blob-info", h.Info)

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireAuth(opts.JWTSecret))
			r.Post("/upload", h.Upload)
			r.Put("/update-pdf", h.Update)
			r.Delete("/delete-file", h.Delete)
			r.Post("/upload-url", h.UploadURL)
		})
	})

	return r
}

func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
