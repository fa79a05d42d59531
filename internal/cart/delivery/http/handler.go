package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront/internal/cart/store"
	"github.com/tair/storefront/internal/cart/usecase/command"
	"github.com/tair/storefront/internal/cart/usecase/query"
	"github.com/tair/storefront/internal/catalog/client"
	catalog "github.com/tair/storefront/internal/catalog/domain"
)

// CartHandler handles HTTP requests for carts
type CartHandler struct {
	// Command handlers
	addItemHandler     *command.AddItemHandler
	removeItemHandler  *command.RemoveItemHandler
	setQuantityHandler *command.SetQuantityHandler
	clearCartHandler   *command.ClearCartHandler
	checkoutHandler    *command.CheckoutHandler

	// Query handlers
	getCartHandler *query.GetCartHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	cartMutations  prometheus.Counter
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *store.Store, orders command.OrderPlacer, publisher command.CheckoutPublisher) *CartHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_service_requests_total",
			Help: "Total number of requests to cart service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_service_request_duration_seconds",
			Help:    "Duration of cart service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	cartMutations := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_service_mutations_total",
			Help: "Total number of cart state mutations",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(cartMutations)

	return &CartHandler{
		addItemHandler:     command.NewAddItemHandler(carts),
		removeItemHandler:  command.NewRemoveItemHandler(carts),
		setQuantityHandler: command.NewSetQuantityHandler(carts),
		clearCartHandler:   command.NewClearCartHandler(carts),
		checkoutHandler:    command.NewCheckoutHandler(carts, orders, publisher),
		getCartHandler:     query.NewGetCartHandler(carts),
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		cartMutations:      cartMutations,
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
func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Owner not resolved")
		return
	}

	cart, err := h.getCartHandler.Handle(r.Context(), query.GetCartQuery{OwnerID: ownerID})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Owner not resolved")
		return
	}

	var req struct {
		Product  catalog.Product `json:"product"`
		Quantity int             `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.AddItemCommand{
		OwnerID:  ownerID,
		Product:  req.Product,
		Quantity: req.Quantity,
	}

	cart, err := h.addItemHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.cartMutations.Inc()
	respondJSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Owner not resolved")
		return
	}

	vars := mux.Vars(r)

	cmd := command.RemoveItemCommand{
		OwnerID:   ownerID,
		ProductID: vars["productId"],
	}

	cart, err := h.removeItemHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.cartMutations.Inc()
	respondJSON(w, http.StatusOK, cart)
}

// SetQuantity handles PUT /cart/items/{productId}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Owner not resolved")
		return
	}

	vars := mux.Vars(r)

	var req struct {
		Quantity int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.SetQuantityCommand{
		OwnerID:   ownerID,
		ProductID: vars["productId"],
		Quantity:  req.Quantity,
	}

	cart, err := h.setQuantityHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.cartMutations.Inc()
	respondJSON(w, http.StatusOK, cart)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Owner not resolved")
		return
	}

	cart, err := h.clearCartHandler.Handle(r.Context(), command.ClearCartCommand{OwnerID: ownerID})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.cartMutations.Inc()
	respondJSON(w, http.StatusOK, cart)
}

// Checkout handles POST /cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Owner not resolved")
		return
	}

	var req struct {
		ShippingAddress string `json:"shipping_address"`
		Note            string `json:"note"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CheckoutCommand{
		OwnerID:         ownerID,
		ShippingAddress: req.ShippingAddress,
		Note:            req.Note,
	}

	order, err := h.checkoutHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondAPIError(w, err)
		return
	}

	h.cartMutations.Inc()
	respondJSON(w, http.StatusCreated, order)
}

// respondAPIError maps upstream client failures onto gateway-friendly
// statuses; anything else is a plain bad request
func respondAPIError(w http.ResponseWriter, err error) {
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
	case client.KindUnauthorized:
		respondJSON(w, http.StatusUnauthorized, map[string]string{
			"message":  apiErr.Message,
			"redirect": apiErr.Redirect,
		})
	default:
		status := apiErr.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		respondError(w, status, apiErr.Message)
	}
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

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/cart", h.metricsMiddleware("/cart", OwnerMiddleware(h.GetCart))).Methods("GET")
	router.HandleFunc("/cart", h.metricsMiddleware("/cart", OwnerMiddleware(h.ClearCart))).Methods("DELETE")
	router.HandleFunc("/cart/items", h.metricsMiddleware("/cart/items", OwnerMiddleware(h.AddItem))).Methods("POST")
	router.HandleFunc("/cart/items/{productId}", h.metricsMiddleware("/cart/items/{productId}", OwnerMiddleware(h.SetQuantity))).Methods("PUT")
	router.HandleFunc("/cart/items/{productId}", h.metricsMiddleware("/cart/items/{productId}", OwnerMiddleware(h.RemoveItem))).Methods("DELETE")
	router.HandleFunc("/cart/checkout", h.metricsMiddleware("/cart/checkout", OwnerMiddleware(h.Checkout))).Methods("POST")
}
