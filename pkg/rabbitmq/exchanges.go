package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
)

// ExchangeType is an AMQP exchange type.
type ExchangeType string

// Exchange types supported by the broker core.
const (
	ExchangeDirect  ExchangeType = "direct"
	ExchangeFanout  ExchangeType = "fanout"
	ExchangeTopic   ExchangeType = "topic"
	ExchangeHeaders ExchangeType = "headers"
)

var validExchangeTypes = map[ExchangeType]bool{
	ExchangeDirect:  true,
	ExchangeFanout:  true,
	ExchangeTopic:   true,
	ExchangeHeaders: true,
}

// CreateExchange is the request schema for declaring an exchange.
type CreateExchange struct {
	// Name is the exchange name. It rides in the URL, not the body.
	Name string

	// Type is the exchange type (direct, fanout, topic, headers).
	Type ExchangeType

	// Durable controls whether the exchange survives a broker restart.
	Durable bool

	// AutoDelete deletes the exchange once the last binding is removed.
	AutoDelete bool

	// Internal hides the exchange from publishers; only exchange-to-exchange
	// bindings can route into it.
	Internal bool

	// Arguments holds optional x-arguments (alternate-exchange, ...).
	Arguments map[string]any
}

// Validate checks required fields and the exchange type.
func (e CreateExchange) Validate() error {
	if e.Name == "" {
		return &ValidationError{Field: "name", Code: ErrCodeRequired, Message: "exchange name is required"}
	}
	if e.Type == "" {
		return &ValidationError{Field: "type", Code: ErrCodeRequired, Message: "exchange type is required"}
	}
	if !validExchangeTypes[e.Type] {
		return &ValidationError{
			Field:   "type",
			Code:    ErrCodeEnum,
			Message: fmt.Sprintf("unknown exchange type %q", e.Type),
		}
	}
	return nil
}

// payload returns the JSON body for PUT /api/exchanges/{vhost}/{name}.
func (e CreateExchange) payload() map[string]any {
	body := map[string]any{
		"type":        string(e.Type),
		"durable":     e.Durable,
		"auto_delete": e.AutoDelete,
		"internal":    e.Internal,
	}
	if len(e.Arguments) > 0 {
		body["arguments"] = e.Arguments
	}
	return body
}

// Exchange is an exchange as reported by the broker.
type Exchange struct {
	Name       string         `json:"name"`
	Vhost      string         `json:"vhost"`
	Type       string         `json:"type"`
	Durable    bool           `json:"durable"`
	AutoDelete bool           `json:"auto_delete"`
	Internal   bool           `json:"internal"`
	Arguments  map[string]any `json:"arguments"`
}

// ListExchanges returns all exchanges across all vhosts the credentials can
// see.
func (c *Client) ListExchanges(ctx context.Context) ([]Exchange, error) {
	return c.listExchanges(ctx, "/api/exchanges")
}

// ListVhostExchanges returns all exchanges in a vhost.
func (c *Client) ListVhostExchanges(ctx context.Context, vhost string) ([]Exchange, error) {
	return c.listExchanges(ctx, "/api/exchanges/"+pathEscape(vhost))
}

func (c *Client) listExchanges(ctx context.Context, path string) ([]Exchange, error) {
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var exchanges []Exchange
	if err := json.NewDecoder(resp.Body).Decode(&exchanges); err != nil {
		return nil, fmt.Errorf("failed to decode exchanges: %w", err)
	}
	return exchanges, nil
}

// GetExchange returns a specific exchange.
func (c *Client) GetExchange(ctx context.Context, vhost, name string) (*Exchange, error) {
	resp, err := c.get(ctx, "/api/exchanges/"+pathEscape(vhost)+"/"+pathEscape(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var exchange Exchange
	if err := json.NewDecoder(resp.Body).Decode(&exchange); err != nil {
		return nil, fmt.Errorf("failed to decode exchange: %w", err)
	}
	return &exchange, nil
}

// CreateExchange declares an exchange in a vhost.
func (c *Client) CreateExchange(ctx context.Context, vhost string, exchange CreateExchange) error {
	if err := exchange.Validate(); err != nil {
		return err
	}

	resp, err := c.put(ctx, "/api/exchanges/"+pathEscape(vhost)+"/"+pathEscape(exchange.Name), exchange.payload())
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}

// DeleteExchange deletes an exchange.
func (c *Client) DeleteExchange(ctx context.Context, vhost, name string) error {
	resp, err := c.delete(ctx, "/api/exchanges/"+pathEscape(vhost)+"/"+pathEscape(name))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}
