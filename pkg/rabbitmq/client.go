package rabbitmq

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rmqtools/rabbitmq-admin/pkg/logging"
)

// Client is an HTTP client for the RabbitMQ management API. It holds the
// base URL and basic-auth credentials and issues exactly one request per
// method call. The zero value is not usable; construct with New.
//
// A Client is safe for concurrent use: it carries no mutable state beyond
// the underlying *http.Client.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client, for callers that need
// transport-level control (TLS config, proxies, their own timeout policy).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for request-level debug logging. The default
// logger discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a management API client. The baseURL is the root of the
// management listener (e.g. "http://localhost:15672"); username and password
// are sent with every request via basic auth.
func New(baseURL, username, password string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
