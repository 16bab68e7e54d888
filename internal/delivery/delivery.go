// Package delivery defines the contract shared by all long-running
// entry points (HTTP server, background workers).
package delivery

import "context"

// Delivery is a long-running component started by the application entry
// point. Serve blocks until the component stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
