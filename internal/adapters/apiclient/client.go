package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/phenrril/fashionshop/internal/domain"
)

const maxBody = 8 << 20

var errNoContent = errors.New("sin contenido")

// Client talks to the remote storefront API. Every response is wrapped in
// an envelope {success, data, error, count}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client (tests, custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBearerToken authenticates every request with a static OAuth2 bearer token.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		if strings.TrimSpace(token) == "" {
			return
		}
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.httpClient = &http.Client{
			Timeout: c.httpClient.Timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
				Base:   base,
			},
		}
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

func (e envelope[T]) reason() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return "success=false"
}

// StatusError carries the HTTP status of a non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Unwrap classifies the status: 404/405 mean the endpoint is missing,
// anything else is a transport-level failure.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound || e.Code == http.StatusMethodNotAllowed {
		return domain.ErrFeatureUnavailable
	}
	return domain.ErrNetwork
}

// do sends the request and decodes the body into out. A 204 returns
// errNoContent without touching out.
func (c *Client) do(ctx context.Context, method, path, apiKey string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "serializar payload")
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return errors.Wrap(err, "armar request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(domain.ErrNetwork, "%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return errors.Wrapf(domain.ErrNetwork, "%s %s: leer respuesta: %v", method, path, err)
	}
	if res.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(raw))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return &StatusError{Method: method, Path: path, Code: res.StatusCode, Body: snippet}
	}
	if res.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return errNoContent
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(domain.ErrProtocol, "%s %s: respuesta inválida: %v", method, path, err)
	}
	return nil
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var env envelope[[]domain.Product]
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &env); err != nil {
		return nil, featureAsNetwork(err)
	}
	if !env.Success {
		return nil, errors.Wrapf(domain.ErrProtocol, "GET /products: %s", env.reason())
	}
	return env.Data, nil
}

func (c *Client) Stats(ctx context.Context, apiKey string) (domain.DashboardStats, error) {
	var env envelope[domain.DashboardStats]
	if err := c.do(ctx, http.MethodGet, "/admin/stats", apiKey, nil, &env); err != nil {
		return domain.DashboardStats{}, featureAsNetwork(err)
	}
	if !env.Success {
		return domain.DashboardStats{}, errors.Wrapf(domain.ErrProtocol, "GET /admin/stats: %s", env.reason())
	}
	return env.Data, nil
}

func (c *Client) ListOrders(ctx context.Context, apiKey string) ([]domain.Order, error) {
	var env envelope[[]domain.Order]
	if err := c.do(ctx, http.MethodGet, "/admin/orders", apiKey, nil, &env); err != nil {
		return nil, featureAsNetwork(err)
	}
	if !env.Success {
		return nil, errors.Wrapf(domain.ErrProtocol, "GET /admin/orders: %s", env.reason())
	}
	if env.Data == nil {
		env.Data = []domain.Order{}
	}
	return env.Data, nil
}

func (c *Client) GetOrder(ctx context.Context, apiKey, id string) (domain.Order, error) {
	p := "/admin/orders/" + url.PathEscape(id)
	var env envelope[domain.Order]
	if err := c.do(ctx, http.MethodGet, p, apiKey, nil, &env); err != nil {
		if err == errNoContent {
			return domain.Order{}, errors.Wrap(domain.ErrProtocol, "respuesta vacía")
		}
		if errors.Is(err, domain.ErrFeatureUnavailable) {
			return domain.Order{}, errors.Wrapf(domain.ErrNotFound, "orden %s", id)
		}
		return domain.Order{}, err
	}
	if !env.Success {
		return domain.Order{}, errors.Wrapf(domain.ErrProtocol, "GET %s: %s", p, env.reason())
	}
	return env.Data, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, apiKey, id string, status domain.OrderStatus) error {
	p := "/admin/orders/" + url.PathEscape(id) + "/status"
	var env envelope[json.RawMessage]
	if err := c.do(ctx, http.MethodPut, p, apiKey, map[string]string{"status": string(status)}, &env); err != nil {
		if err == errNoContent {
			return nil
		}
		return featureAsNetwork(err)
	}
	if !env.Success {
		return errors.Wrapf(domain.ErrProtocol, "PUT %s: %s", p, env.reason())
	}
	return nil
}

// DeleteOrder maps 404/405 to ErrFeatureUnavailable: older servers lack the endpoint.
func (c *Client) DeleteOrder(ctx context.Context, apiKey, id string) error {
	p := "/admin/orders/" + url.PathEscape(id)
	var env envelope[json.RawMessage]
	if err := c.do(ctx, http.MethodDelete, p, apiKey, nil, &env); err != nil {
		if err == errNoContent {
			return nil
		}
		return err
	}
	if !env.Success {
		return errors.Wrapf(domain.ErrProtocol, "DELETE %s: %s", p, env.reason())
	}
	return nil
}

// featureAsNetwork reclassifies 404/405 on endpoints that must exist.
// An empty body on a read is a protocol failure.
func featureAsNetwork(err error) error {
	if err == errNoContent {
		return errors.Wrap(domain.ErrProtocol, "respuesta vacía")
	}
	var se *StatusError
	if errors.As(err, &se) && errors.Is(se, domain.ErrFeatureUnavailable) {
		return errors.Wrapf(domain.ErrNetwork, "%v", se)
	}
	return err
}
