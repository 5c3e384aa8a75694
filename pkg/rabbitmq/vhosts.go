package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
)

// QueueType is the default queue type a vhost assigns to new queues.
type QueueType string

// Queue types supported by the broker.
const (
	QueueTypeClassic QueueType = "classic"
	QueueTypeQuorum  QueueType = "quorum"
	QueueTypeStream  QueueType = "stream"
)

var validQueueTypes = map[QueueType]bool{
	QueueTypeClassic: true,
	QueueTypeQuorum:  true,
	QueueTypeStream:  true,
}

// CreateVhost is the request schema for creating or updating a vhost.
type CreateVhost struct {
	// Name is the vhost name. It rides in the URL, not the body.
	Name string

	// Description is a free-form description shown in the management UI.
	Description string

	// Tags is a comma-separated list of vhost tags.
	Tags string

	// Tracing enables firehose tracing on the vhost.
	Tracing bool

	// DefaultQueueType selects the queue type for queues declared without an
	// explicit x-queue-type. Empty leaves the broker default in place.
	DefaultQueueType QueueType
}

// Validate checks required fields and the queue type.
func (v CreateVhost) Validate() error {
	if v.Name == "" {
		return &ValidationError{Field: "name", Code: ErrCodeRequired, Message: "vhost name is required"}
	}
	if v.DefaultQueueType != "" && !validQueueTypes[v.DefaultQueueType] {
		return &ValidationError{
			Field:   "default_queue_type",
			Code:    ErrCodeEnum,
			Message: fmt.Sprintf("unknown queue type %q", v.DefaultQueueType),
		}
	}
	return nil
}

// payload returns the JSON body for PUT /api/vhosts/{name}, omitting
// zero-valued optional fields.
func (v CreateVhost) payload() map[string]any {
	body := map[string]any{}
	if v.Description != "" {
		body["description"] = v.Description
	}
	if v.Tags != "" {
		body["tags"] = v.Tags
	}
	if v.Tracing {
		body["tracing"] = true
	}
	if v.DefaultQueueType != "" {
		body["default_queue_type"] = string(v.DefaultQueueType)
	}
	return body
}

// Vhost is a virtual host as reported by the broker.
type Vhost struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	Tracing          bool     `json:"tracing"`
	DefaultQueueType string   `json:"default_queue_type"`

	Messages               int `json:"messages"`
	MessagesReady          int `json:"messages_ready"`
	MessagesUnacknowledged int `json:"messages_unacknowledged"`
}

// ListVhosts returns all vhosts.
func (c *Client) ListVhosts(ctx context.Context) ([]Vhost, error) {
	resp, err := c.get(ctx, "/api/vhosts")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var vhosts []Vhost
	if err := json.NewDecoder(resp.Body).Decode(&vhosts); err != nil {
		return nil, fmt.Errorf("failed to decode vhosts: %w", err)
	}
	return vhosts, nil
}

// GetVhost returns a specific vhost.
func (c *Client) GetVhost(ctx context.Context, name string) (*Vhost, error) {
	resp, err := c.get(ctx, "/api/vhosts/"+pathEscape(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var vhost Vhost
	if err := json.NewDecoder(resp.Body).Decode(&vhost); err != nil {
		return nil, fmt.Errorf("failed to decode vhost: %w", err)
	}
	return &vhost, nil
}

// CreateVhost creates or updates a vhost.
func (c *Client) CreateVhost(ctx context.Context, vhost CreateVhost) error {
	if err := vhost.Validate(); err != nil {
		return err
	}

	resp, err := c.put(ctx, "/api/vhosts/"+pathEscape(vhost.Name), vhost.payload())
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}

// DeleteVhost deletes a vhost along with everything in it.
func (c *Client) DeleteVhost(ctx context.Context, name string) error {
	resp, err := c.delete(ctx, "/api/vhosts/"+pathEscape(name))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}
