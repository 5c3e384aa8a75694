// Package rabbitmq is a typed client for the RabbitMQ management HTTP API.
//
// Each method maps to exactly one REST endpoint: request schemas validate
// before any network I/O, responses decode into typed entities, and
// credentials travel with every request via basic auth.
//
// Usage:
//
//	client := rabbitmq.New("http://localhost:15672", "guest", "guest")
//
//	err := client.CreateUser(ctx, rabbitmq.CreateUser{
//		Name:     "svc-orders",
//		Password: "s3cret",
//		Tags:     rabbitmq.TagMonitoring,
//	})
//
//	user, err := client.GetUser(ctx, "svc-orders")
//
// Errors come in three kinds, distinguishable with errors.As:
//
//   - *ValidationError: a request schema failed validation; nothing was sent.
//   - *HTTPError: the broker answered non-2xx; carries status and body.
//   - *TransportError: the request never produced a response.
//
// The client never retries and keeps no state between calls; retry and
// backoff policy belong to the caller.
package rabbitmq
