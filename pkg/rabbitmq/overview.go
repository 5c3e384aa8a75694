package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
)

// Overview is a snapshot of broker-wide state from GET /api/overview.
type Overview struct {
	ManagementVersion string `json:"management_version"`
	RabbitMQVersion   string `json:"rabbitmq_version"`
	ErlangVersion     string `json:"erlang_version"`
	ClusterName       string `json:"cluster_name"`
	Node              string `json:"node"`

	ObjectTotals struct {
		Connections int `json:"connections"`
		Channels    int `json:"channels"`
		Exchanges   int `json:"exchanges"`
		Queues      int `json:"queues"`
		Consumers   int `json:"consumers"`
	} `json:"object_totals"`

	QueueTotals struct {
		Messages               int `json:"messages"`
		MessagesReady          int `json:"messages_ready"`
		MessagesUnacknowledged int `json:"messages_unacknowledged"`
	} `json:"queue_totals"`
}

// ClusterName is the broker's cluster name.
type ClusterName struct {
	Name string `json:"name"`
}

// Overview returns broker-wide totals and version information.
func (c *Client) Overview(ctx context.Context) (*Overview, error) {
	resp, err := c.get(ctx, "/api/overview")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var overview Overview
	if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
		return nil, fmt.Errorf("failed to decode overview: %w", err)
	}
	return &overview, nil
}

// ClusterName returns the broker's cluster name.
func (c *Client) ClusterName(ctx context.Context) (*ClusterName, error) {
	resp, err := c.get(ctx, "/api/cluster-name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var name ClusterName
	if err := json.NewDecoder(resp.Body).Decode(&name); err != nil {
		return nil, fmt.Errorf("failed to decode cluster name: %w", err)
	}
	return &name, nil
}
