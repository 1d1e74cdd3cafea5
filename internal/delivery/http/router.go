package http

import (
	"net/http"

	"fonda-catalogo/internal/delivery/http/handler"
	"fonda-catalogo/internal/delivery/http/middleware"
	"fonda-catalogo/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	productHandler *handler.ProductHandler
	uploadHandler  *handler.UploadHandler
	corsMiddleware *middleware.CORSMiddleware
	uploadDir      string
}

func NewRouter(
	productHandler *handler.ProductHandler,
	uploadHandler *handler.UploadHandler,
	corsMiddleware *middleware.CORSMiddleware,
	uploadDir string,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		productHandler: productHandler,
		uploadHandler:  uploadHandler,
		corsMiddleware: corsMiddleware,
		uploadDir:      uploadDir,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Product catalog
	api.HandleFunc("/products", r.productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products", r.productHandler.Actions).Methods(http.MethodPost)
	api.HandleFunc("/products/stats", r.productHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", r.productHandler.GetByID).Methods(http.MethodGet)

	// Image uploads
	api.HandleFunc("/uploads", r.uploadHandler.Upload).Methods(http.MethodPost)

	// Stored images are served directly from disk
	r.router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.uploadDir))),
	)

	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.MethodNotAllowed(w)
	})
	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "")
	})

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
