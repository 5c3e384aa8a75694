package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
)

// CreateQueue is the request schema for declaring a queue.
type CreateQueue struct {
	// Name is the queue name. It rides in the URL, not the body.
	Name string

	// Durable controls whether the queue survives a broker restart.
	// Nil means durable, matching what a management-driven declare almost
	// always wants.
	Durable *bool

	// AutoDelete deletes the queue once its last consumer disconnects.
	AutoDelete bool

	// Arguments holds optional x-arguments (x-queue-type, x-message-ttl, ...).
	Arguments map[string]any

	// Node pins the queue to a specific cluster node. Empty lets the broker
	// choose.
	Node string
}

// Validate checks required fields.
func (q CreateQueue) Validate() error {
	if q.Name == "" {
		return &ValidationError{Field: "name", Code: ErrCodeRequired, Message: "queue name is required"}
	}
	return nil
}

// payload returns the JSON body for PUT /api/queues/{vhost}/{name}.
func (q CreateQueue) payload() map[string]any {
	durable := true
	if q.Durable != nil {
		durable = *q.Durable
	}
	body := map[string]any{
		"durable":     durable,
		"auto_delete": q.AutoDelete,
	}
	if len(q.Arguments) > 0 {
		body["arguments"] = q.Arguments
	}
	if q.Node != "" {
		body["node"] = q.Node
	}
	return body
}

// Queue is a queue as reported by the broker.
type Queue struct {
	Name       string         `json:"name"`
	Vhost      string         `json:"vhost"`
	Type       string         `json:"type"`
	Durable    bool           `json:"durable"`
	AutoDelete bool           `json:"auto_delete"`
	Arguments  map[string]any `json:"arguments"`
	Node       string         `json:"node"`
	State      string         `json:"state"`

	Messages               int `json:"messages"`
	MessagesReady          int `json:"messages_ready"`
	MessagesUnacknowledged int `json:"messages_unacknowledged"`
	Consumers              int `json:"consumers"`
}

// ListQueues returns all queues across all vhosts the credentials can see.
func (c *Client) ListQueues(ctx context.Context) ([]Queue, error) {
	return c.listQueues(ctx, "/api/queues")
}

// ListVhostQueues returns all queues in a vhost.
func (c *Client) ListVhostQueues(ctx context.Context, vhost string) ([]Queue, error) {
	return c.listQueues(ctx, "/api/queues/"+pathEscape(vhost))
}

func (c *Client) listQueues(ctx context.Context, path string) ([]Queue, error) {
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var queues []Queue
	if err := json.NewDecoder(resp.Body).Decode(&queues); err != nil {
		return nil, fmt.Errorf("failed to decode queues: %w", err)
	}
	return queues, nil
}

// GetQueue returns a specific queue.
func (c *Client) GetQueue(ctx context.Context, vhost, name string) (*Queue, error) {
	resp, err := c.get(ctx, "/api/queues/"+pathEscape(vhost)+"/"+pathEscape(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var queue Queue
	if err := json.NewDecoder(resp.Body).Decode(&queue); err != nil {
		return nil, fmt.Errorf("failed to decode queue: %w", err)
	}
	return &queue, nil
}

// CreateQueue declares a queue in a vhost.
func (c *Client) CreateQueue(ctx context.Context, vhost string, queue CreateQueue) error {
	if err := queue.Validate(); err != nil {
		return err
	}

	resp, err := c.put(ctx, "/api/queues/"+pathEscape(vhost)+"/"+pathEscape(queue.Name), queue.payload())
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}

// DeleteQueue deletes a queue.
func (c *Client) DeleteQueue(ctx context.Context, vhost, name string) error {
	resp, err := c.delete(ctx, "/api/queues/"+pathEscape(vhost)+"/"+pathEscape(name))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}

// PurgeQueue drops all messages from a queue without deleting it.
func (c *Client) PurgeQueue(ctx context.Context, vhost, name string) error {
	resp, err := c.delete(ctx, "/api/queues/"+pathEscape(vhost)+"/"+pathEscape(name)+"/contents")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}

// ListQueueBindings returns all bindings into a queue, including the default
// binding from the default exchange.
func (c *Client) ListQueueBindings(ctx context.Context, vhost, queue string) ([]Binding, error) {
	resp, err := c.get(ctx, "/api/queues/"+pathEscape(vhost)+"/"+pathEscape(queue)+"/bindings")
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
