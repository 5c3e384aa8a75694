package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// User tags understood by the management plugin.
const (
	TagManagement    = "management"
	TagPolicymaker   = "policymaker"
	TagMonitoring    = "monitoring"
	TagAdministrator = "administrator"
	TagImpersonator  = "impersonator"
)

var validUserTags = map[string]bool{
	TagManagement:    true,
	TagPolicymaker:   true,
	TagMonitoring:    true,
	TagAdministrator: true,
	TagImpersonator:  true,
}

// CreateUser is the request schema for creating or updating a user.
type CreateUser struct {
	// Name is the user name. It rides in the URL, not the body.
	Name string

	// Password is the plaintext password the broker will hash.
	Password string

	// Tags is a comma-separated list of user tags
	// (e.g. "administrator" or "monitoring,policymaker"). Empty is allowed.
	Tags string
}

// Validate checks required fields and tag values.
func (u CreateUser) Validate() error {
	if u.Name == "" {
		return &ValidationError{Field: "name", Code: ErrCodeRequired, Message: "user name is required"}
	}
	if u.Password == "" {
		return &ValidationError{Field: "password", Code: ErrCodeRequired, Message: "password is required"}
	}
	if u.Tags != "" {
		for _, tag := range strings.Split(u.Tags, ",") {
			if !validUserTags[strings.TrimSpace(tag)] {
				return &ValidationError{
					Field:   "tags",
					Code:    ErrCodeEnum,
					Message: fmt.Sprintf("unknown user tag %q", strings.TrimSpace(tag)),
				}
			}
		}
	}
	return nil
}

// payload returns the JSON body for PUT /api/users/{name}. The broker
// expects the tags field even when empty.
func (u CreateUser) payload() map[string]any {
	return map[string]any{
		"password": u.Password,
		"tags":     u.Tags,
	}
}

// User is a user as reported by the broker.
type User struct {
	Name             string   `json:"name"`
	Tags             []string `json:"tags"`
	PasswordHash     string   `json:"password_hash"`
	HashingAlgorithm string   `json:"hashing_algorithm"`
}

// ListUsers returns all users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.get(ctx, "/api/users")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var users []User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// ListUsersWithoutPermissions returns users that have no permissions on any
// vhost.
func (c *Client) ListUsersWithoutPermissions(ctx context.Context) ([]User, error) {
	resp, err := c.get(ctx, "/api/users-without-permissions")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var users []User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// GetUser returns a specific user.
func (c *Client) GetUser(ctx context.Context, name string) (*User, error) {
	resp, err := c.get(ctx, "/api/users/"+pathEscape(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, parseError(resp)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// CreateUser creates or updates a user. The broker answers 201 on creation
// and 204 when an existing user was updated.
func (c *Client) CreateUser(ctx context.Context, user CreateUser) error {
	if err := user.Validate(); err != nil {
		return err
	}

	resp, err := c.put(ctx, "/api/users/"+pathEscape(user.Name), user.payload())
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, name string) error {
	resp, err := c.delete(ctx, "/api/users/"+pathEscape(name))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return parseError(resp)
	}
	return nil
}
