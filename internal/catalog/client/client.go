// Package client talks to the storefront catalog API. All responses use a
// shared envelope and transport failures are normalized into user-facing
// error categories before they reach a caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	catalog "github.com/tair/storefront/internal/catalog/domain"
	session "github.com/tair/storefront/internal/session/domain"
	"github.com/tair/storefront/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// ErrorKind classifies a failed API call
type ErrorKind string

const (
	KindTimeout      ErrorKind = "timeout"
	KindUnreachable  ErrorKind = "unreachable"
	KindUnauthorized ErrorKind = "unauthorized"
	KindServer       ErrorKind = "server"
)

// Error messages shown to the user for transport failures
const (
	msgTimeout     = "request took too long, please try again"
	msgUnreachable = "cannot reach server, please check your connection"
	msgSessionGone = "your session has expired, please log in again"
)

// Error is the only error type returned by the client. Server validation
// messages pass through in Message verbatim; Redirect is set when the
// caller should navigate away.
type Error struct {
	Kind     ErrorKind
	Status   int
	Message  string
	Redirect string
}

func (e *Error) Error() string {
	return e.Message
}

// Retryable reports whether the caller may simply retry the same call
func (e *Error) Retryable() bool {
	return e.Kind == KindTimeout
}

// SessionInvalidator forces a session back to anonymous after the server
// rejects its credentials
type SessionInvalidator interface {
	ForceLogout(ctx context.Context, sessionID string) error
}

// Pagination mirrors the list envelope metadata
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Client is an HTTP client for the catalog API
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionInvalidator
}

// New creates a catalog client. The invalidator may be nil, in which case
// 401 responses still produce an unauthorized error but no local session
// is cleared.
func New(baseURL string, sessions SessionInvalidator) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		sessions: sessions,
	}
}

// WithHTTPClient overrides the underlying HTTP client, mainly for tests
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

type sessionContextKey struct{}

type sessionInfo struct {
	ID    string
	Token string
}

// WithSession attaches the calling session's id and bearer token to the
// context so every request made with it is authenticated
func WithSession(ctx context.Context, sessionID, token string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sessionInfo{ID: sessionID, Token: token})
}

func sessionFromContext(ctx context.Context) (sessionInfo, bool) {
	info, ok := ctx.Value(sessionContextKey{}).(sessionInfo)
	return info, ok
}

// GetProduct fetches a single product by id
func (c *Client) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &product); err != nil {
		return catalog.Product{}, err
	}
	return product, nil
}

// ListProductsParams filters a product listing
type ListProductsParams struct {
	Page       int
	Limit      int
	CategoryID string
	Search     string
}

// ListProducts fetches a page of products
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) ([]catalog.Product, *Pagination, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.CategoryID != "" {
		query.Set("category", params.CategoryID)
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}

	path := "/api/products"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var products []catalog.Product
	pagination, err := c.doList(ctx, path, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, pagination, nil
}

// ListCategories fetches all product categories
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// LoginResult is the payload of a successful credential login
type LoginResult struct {
	User  session.User `json:"user"`
	Token string       `json:"token"`
}

// LoginWithCredentials exchanges an email and password for a user profile
// and bearer token
func (c *Client) LoginWithCredentials(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// CreateOrder submits an order draft and returns the created order
func (c *Client) CreateOrder(ctx context.Context, draft catalog.OrderDraft) (catalog.Order, error) {
	var order catalog.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", draft, &order); err != nil {
		return catalog.Order{}, err
	}
	return order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	env, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Kind: KindServer, Message: fmt.Sprintf("unexpected response shape: %v", err)}
		}
	}
	return nil
}

func (c *Client) doList(ctx context.Context, path string, out any) (*Pagination, error) {
	env, err := c.roundTrip(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &Error{Kind: KindServer, Message: fmt.Sprintf("unexpected response shape: %v", err)}
		}
	}
	return env.Pagination, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	info, hasSession := sessionFromContext(ctx)
	if hasSession && info.Token != "" {
		req.Header.Set("Authorization", "Bearer "+info.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(ctx, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, Message: msgUnreachable}
	}

	var env envelope
	if len(raw) > 0 {
		// A non-JSON body from an intermediary is treated like any other
		// server failure below
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, c.handleUnauthorized(ctx, info, hasSession, env.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		message := env.Message
		if message == "" {
			message = fmt.Sprintf("server returned status %d", resp.StatusCode)
		}
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: message}
	}

	return &env, nil
}

func (c *Client) classifyTransportError(ctx context.Context, method, path string, err error) error {
	span := trace.SpanFromContext(ctx)

	var netErr net.Error
	timedOut := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())

	kind := KindUnreachable
	message := msgUnreachable
	if timedOut {
		kind = KindTimeout
		message = msgTimeout
	}

	logger.Logger.Warn().
		Err(err).
		Str("method", method).
		Str("path", path).
		Str("kind", string(kind)).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Catalog API call failed")

	return &Error{Kind: kind, Message: message}
}

// handleUnauthorized clears the local session and tells the caller to go
// back to the login view, whichever endpoint triggered the rejection
func (c *Client) handleUnauthorized(ctx context.Context, info sessionInfo, hasSession bool, serverMessage string) error {
	if c.sessions != nil && hasSession && info.ID != "" {
		if err := c.sessions.ForceLogout(ctx, info.ID); err != nil {
			logger.Logger.Error().
				Err(err).
				Str("session_id", info.ID).
				Msg("Failed to force logout after 401")
		}
	}

	message := serverMessage
	if message == "" {
		message = msgSessionGone
	}

	return &Error{
		Kind:     KindUnauthorized,
		Status:   http.StatusUnauthorized,
		Message:  message,
		Redirect: "/login",
	}
}
