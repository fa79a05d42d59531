package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalog "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/favorites/store"
	"github.com/tair/storefront/internal/favorites/usecase/command"
	"github.com/tair/storefront/internal/favorites/usecase/query"
)

// FavoritesHandler handles HTTP requests for favorites
type FavoritesHandler struct {
	// Command handlers
	addHandler    *command.AddFavoriteHandler
	removeHandler *command.RemoveFavoriteHandler
	clearHandler  *command.ClearFavoritesHandler

	// Query handlers
	getHandler *query.GetFavoritesHandler
	hasHandler *query.HasFavoriteHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(favorites *store.Store) *FavoritesHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_service_requests_total",
			Help: "Total number of requests to favorites service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favorites_service_request_duration_seconds",
			Help:    "Duration of favorites service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &FavoritesHandler{
		addHandler:     command.NewAddFavoriteHandler(favorites),
		removeHandler:  command.NewRemoveFavoriteHandler(favorites),
		clearHandler:   command.NewClearFavoritesHandler(favorites),
		getHandler:     query.NewGetFavoritesHandler(favorites),
		hasHandler:     query.NewHasFavoriteHandler(favorites),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *FavoritesHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// GetFavorites handles GET /favorites
func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Owner not resolved")
		return
	}

	favorites, err := h.getHandler.Handle(r.Context(), query.GetFavoritesQuery{OwnerID: ownerID})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

// AddFavorite handles POST /favorites
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Owner not resolved")
		return
	}

	var req struct {
		Product catalog.Product `json:"product"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.AddFavoriteCommand{
		OwnerID: ownerID,
		Product: req.Product,
	}

	favorites, err := h.addHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

// RemoveFavorite handles DELETE /favorites/{productId}
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Owner not resolved")
		return
	}

	vars := mux.Vars(r)

	cmd := command.RemoveFavoriteCommand{
		OwnerID:   ownerID,
		ProductID: vars["productId"],
	}

	favorites, err := h.removeHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

// HasFavorite handles GET /favorites/{productId}
func (h *FavoritesHandler) HasFavorite(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Owner not resolved")
		return
	}

	vars := mux.Vars(r)

	favorite, err := h.hasHandler.Handle(r.Context(), query.HasFavoriteQuery{
		OwnerID:   ownerID,
		ProductID: vars["productId"],
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": vars["productId"],
		"favorite":   favorite,
	})
}

// ClearFavorites handles DELETE /favorites
func (h *FavoritesHandler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Owner not resolved")
		return
	}

	favorites, err := h.clearHandler.Handle(r.Context(), command.ClearFavoritesCommand{OwnerID: ownerID})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

// respondJSON sends a JSON response in the storefront envelope
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": status < 400,
		"data":    data,
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// RegisterRoutes registers all favorites routes
func (h *FavoritesHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", OwnerMiddleware(h.GetFavorites))).Methods("GET")
	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", OwnerMiddleware(h.AddFavorite))).Methods("POST")
	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", OwnerMiddleware(h.ClearFavorites))).Methods("DELETE")
	router.HandleFunc("/favorites/{productId}", h.metricsMiddleware("/favorites/{productId}", OwnerMiddleware(h.HasFavorite))).Methods("GET")
	router.HandleFunc("/favorites/{productId}", h.metricsMiddleware("/favorites/{productId}", OwnerMiddleware(h.RemoveFavorite))).Methods("DELETE")
}
