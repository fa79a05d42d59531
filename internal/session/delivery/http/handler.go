package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront/internal/catalog/client"
	"github.com/tair/storefront/internal/session/domain"
	"github.com/tair/storefront/internal/session/store"
	"github.com/tair/storefront/internal/session/usecase/command"
	"github.com/tair/storefront/internal/session/usecase/query"
)

// SessionHandler handles HTTP requests for sessions
type SessionHandler struct {
	// Command handlers
	loginHandler         *command.LoginHandler
	logoutHandler        *command.LogoutHandler
	updateProfileHandler *command.UpdateProfileHandler

	// Query handlers
	getSessionHandler *query.GetSessionHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	activeLogins   prometheus.Gauge
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *store.Store, auth command.Authenticator) *SessionHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_service_requests_total",
			Help: "Total number of requests to session service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "session_service_request_duration_seconds",
			Help:    "Duration of session service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	activeLogins := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "session_service_active_logins",
			Help: "Logins minus logouts since startup",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(activeLogins)

	return &SessionHandler{
		loginHandler:         command.NewLoginHandler(sessions, auth),
		logoutHandler:        command.NewLogoutHandler(sessions),
		updateProfileHandler: command.NewUpdateProfileHandler(sessions),
		getSessionHandler:    query.NewGetSessionHandler(sessions),
		requestCounter:       requestCounter,
		requestLatency:       requestLatency,
		activeLogins:         activeLogins,
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
func (h *SessionHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Session id required")
		return
	}

	session, err := h.getSessionHandler.Handle(r.Context(), query.GetSessionQuery{SessionID: sessionID})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// Login handles POST /session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Session id required")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.LoginCommand{
		SessionID: sessionID,
		Email:     req.Email,
		Password:  req.Password,
	}

	session, err := h.loginHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondLoginError(w, err)
		return
	}

	h.activeLogins.Inc()
	respondJSON(w, http.StatusOK, session)
}

// respondLoginError keeps upstream auth failures distinguishable: the
// server's own message for rejected credentials, transport categories for
// everything else
func (h *SessionHandler) respondLoginError(w http.ResponseWriter, err error) {
	var apiErr *client.Error
	if !errors.As(err, &apiErr) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch apiErr.Kind {
	case client.KindTimeout:
		respondError(w, http.StatusGatewayTimeout, apiErr.Message)
	case client.KindUnreachable:
		respondError(w, http.StatusBadGateway, apiErr.Message)
	default:
		status := apiErr.Status
		if status == 0 {
			status = http.StatusUnauthorized
		}
		respondError(w, status, apiErr.Message)
	}
}

// Logout handles POST /session/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Session id required")
		return
	}

	session, err := h.logoutHandler.Handle(r.Context(), command.LogoutCommand{SessionID: sessionID})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.activeLogins.Dec()
	respondJSON(w, http.StatusOK, session)
}

// UpdateProfile handles PUT /session/user
func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Session id required")
		return
	}

	var req domain.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateProfileCommand{
		SessionID: sessionID,
		Patch:     req,
	}

	session, err := h.updateProfileHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
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

// RegisterRoutes registers all session routes
func (h *SessionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/session", h.metricsMiddleware("/session", SessionMiddleware(h.GetSession))).Methods("GET")
	router.HandleFunc("/session/login", h.metricsMiddleware("/session/login", SessionMiddleware(h.Login))).Methods("POST")
	router.HandleFunc("/session/logout", h.metricsMiddleware("/session/logout", SessionMiddleware(h.Logout))).Methods("POST")
	router.HandleFunc("/session/user", h.metricsMiddleware("/session/user", SessionMiddleware(h.UpdateProfile))).Methods("PUT")
}
