package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
)

// Binding destination kinds.
const (
	DestinationQueue    = "queue"
	DestinationExchange = "exchange"
)

// CreateBinding is the request schema for binding a queue or exchange to a
// source exchange.
type CreateBinding struct {
	// Source is the exchange messages are routed from.
	Source string

	// Destination is the queue or exchange messages are routed to.
	Destination string

	// DestinationType is "queue" or "exchange".
	DestinationType string

	// RoutingKey is matched against the routing key of published messages.
	RoutingKey string

	// Arguments holds optional binding arguments (headers matching, ...).
	Arguments map[string]any
}

// Validate checks required fields and the destination type.
func (b CreateBinding) Validate() error {
	if b.Source == "" {
		return &ValidationError{Field: "source", Code: ErrCodeRequired, Message: "source exchange is required"}
	}
	if b.Destination == "" {
		return &ValidationError{Field: "destination", Code: ErrCodeRequired, Message: "destination is required"}
	}
	if b.DestinationType != DestinationQueue && b.DestinationType != DestinationExchange {
		return &ValidationError{
			Field:   "destination_type",
			Code:    ErrCodeEnum,
			Message: fmt.Sprintf("destination type must be %q or %q, got %q", DestinationQueue, DestinationExchange, b.DestinationType),
		}
	}
	return nil
}

// payload returns the JSON body for the binding POST.
func (b CreateBinding) payload() map[string]any {
	body := map[string]any{
		"routing_key": b.RoutingKey,
	}
	if len(b.Arguments) > 0 {
		body["arguments"] = b.Arguments
	}
	return body
}

// path returns the endpoint path under /api/bindings/{vhost} for this
// binding's source, destination kind and destination.
func (b CreateBinding) path(vhost string) string {
	kind := "q"
	if b.DestinationType == DestinationExchange {
		kind = "e"
	}
	return "/api/bindings/" + pathEscape(vhost) +
		"/e/" + pathEscape(b.Source) +
		"/" + kind + "/" + pathEscape(b.Destination)
}

// Binding is a binding as reported by the broker. PropertiesKey identifies
// the binding among others with the same source and destination and is
// needed to delete it.
type Binding struct {
	Source          string         `json:"source"`
	Vhost           string         `json:"vhost"`
	Destination     string         `json:"destination"`
	DestinationType string         `json:"destination_type"`
	RoutingKey      string         `json:"routing_key"`
	Arguments       map[string]any `json:"arguments"`
	PropertiesKey   string         `json:"properties_key"`
}

// ListBindings returns all bindings across all vhosts the credentials can
// see.
func (c *Client) ListBindings(ctx context.Context) ([]Binding, error) {
	return c.listBindings(ctx, "/api/bindings")
}

// ListVhostBindings returns all bindings in a vhost.
func (c *Client) ListVhostBindings(ctx context.Context, vhost string) ([]Binding, error) {
	return c.listBindings(ctx, "/api/bindings/"+pathEscape(vhost))
}

func (c *Client) listBindings(ctx context.Context, path string) ([]Binding, error) {
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var bindings []Binding
	if err := json.NewDecoder(resp.Body).Decode(&bindings); err != nil {
		return nil, fmt.Errorf("failed to decode bindings: %w", err)
	}
	return bindings, nil
}

// CreateBinding creates a binding in a vhost.
func (c *Client) CreateBinding(ctx context.Context, vhost string, binding CreateBinding) error {
	if err := binding.Validate(); err != nil {
		return err
	}

	resp, err := c.post(ctx, binding.path(vhost), binding.payload())
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}

// DeleteBinding removes a binding previously returned by one of the listing
// calls; the broker addresses it by its properties key.
func (c *Client) DeleteBinding(ctx context.Context, vhost string, binding Binding) error {
	kind := "q"
	if binding.DestinationType == DestinationExchange {
		kind = "e"
	}
	path := "/api/bindings/" + pathEscape(vhost) +
		"/e/" + pathEscape(binding.Source) +
		"/" + kind + "/" + pathEscape(binding.Destination) +
		"/" + pathEscape(binding.PropertiesKey)

	resp, err := c.delete(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}
