// Package logging provides structured logging configuration built on
// log/slog.
//
// The rabbitmq client is silent by default; pass a logger built here via
// rabbitmq.WithLogger to see one debug line per request and response:
//
//	log := logging.NewWithLevel(logging.LevelDebug)
//	client := rabbitmq.New(url, user, pass, rabbitmq.WithLogger(log))
package logging
