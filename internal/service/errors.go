package service

import "errors"

// Refresh errors
var (
	ErrAllSourcesFailed = errors.New("all bookmaker sources failed")
	ErrNoSources        = errors.New("no bookmaker sources configured")
	ErrCircuitOpen      = errors.New("source skipped: circuit breaker open")
)
