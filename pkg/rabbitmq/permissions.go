package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
)

// Permissions is the request schema for granting a user permissions on a
// vhost. Each field is a regular expression matched against resource names;
// "^$" matches nothing and so denies everything, ".*" allows everything.
type Permissions struct {
	Configure string
	Write     string
	Read      string
}

// Validate checks that all three patterns are present and compile.
func (p Permissions) Validate() error {
	fields := []struct {
		name    string
		pattern string
	}{
		{"configure", p.Configure},
		{"write", p.Write},
		{"read", p.Read},
	}
	for _, f := range fields {
		if f.pattern == "" {
			return &ValidationError{
				Field:   f.name,
				Code:    ErrCodeRequired,
				Message: fmt.Sprintf("%s pattern is required (use %q to deny)", f.name, "^$"),
			}
		}
		if _, err := regexp.Compile(f.pattern); err != nil {
			return &ValidationError{
				Field:   f.name,
				Code:    ErrCodePattern,
				Message: fmt.Sprintf("%s pattern does not compile: %v", f.name, err),
			}
		}
	}
	return nil
}

// payload returns the JSON body for PUT /api/permissions/{vhost}/{user}.
func (p Permissions) payload() map[string]any {
	return map[string]any{
		"configure": p.Configure,
		"write":     p.Write,
		"read":      p.Read,
	}
}

// Permission is a permission grant as reported by the broker.
type Permission struct {
	User      string `json:"user"`
	Vhost     string `json:"vhost"`
	Configure string `json:"configure"`
	Write     string `json:"write"`
	Read      string `json:"read"`
}

// TopicPermission is a topic permission grant as reported by the broker.
type TopicPermission struct {
	User     string `json:"user"`
	Vhost    string `json:"vhost"`
	Exchange string `json:"exchange"`
	Write    string `json:"write"`
	Read     string `json:"read"`
}

// ListPermissions returns all permission grants on the broker.
func (c *Client) ListPermissions(ctx context.Context) ([]Permission, error) {
	resp, err := c.get(ctx, "/api/permissions")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var permissions []Permission
	if err := json.NewDecoder(resp.Body).Decode(&permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}
	return permissions, nil
}

// UserPermissions returns all permission grants of a user across vhosts.
func (c *Client) UserPermissions(ctx context.Context, name string) ([]Permission, error) {
	resp, err := c.get(ctx, "/api/users/"+pathEscape(name)+"/permissions")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var permissions []Permission
	if err := json.NewDecoder(resp.Body).Decode(&permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}
	return permissions, nil
}

// UserTopicPermissions returns all topic permission grants of a user across
// vhosts.
func (c *Client) UserTopicPermissions(ctx context.Context, name string) ([]TopicPermission, error) {
	resp, err := c.get(ctx, "/api/users/"+pathEscape(name)+"/topic-permissions")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var permissions []TopicPermission
	if err := json.NewDecoder(resp.Body).Decode(&permissions); err != nil {
		return nil, fmt.Errorf("failed to decode topic permissions: %w", err)
	}
	return permissions, nil
}

// GetPermissions returns a user's permissions on a vhost.
func (c *Client) GetPermissions(ctx context.Context, vhost, user string) (*Permission, error) {
	resp, err := c.get(ctx, "/api/permissions/"+pathEscape(vhost)+"/"+pathEscape(user))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var permission Permission
	if err := json.NewDecoder(resp.Body).Decode(&permission); err != nil {
		return nil, fmt.Errorf("failed to decode permission: %w", err)
	}
	return &permission, nil
}

// SetPermissions grants a user permissions on a vhost, replacing any
// existing grant.
func (c *Client) SetPermissions(ctx context.Context, vhost, user string, permissions Permissions) error {
	if err := permissions.Validate(); err != nil {
		return err
	}

	resp, err := c.put(ctx, "/api/permissions/"+pathEscape(vhost)+"/"+pathEscape(user), permissions.payload())
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}

// DeletePermissions revokes a user's permissions on a vhost.
func (c *Client) DeletePermissions(ctx context.Context, vhost, user string) error {
	resp, err := c.delete(ctx, "/api/permissions/"+pathEscape(vhost)+"/"+pathEscape(user))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}
