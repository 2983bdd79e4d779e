// Package delivery defines the servers exposed by the application.
package delivery

import "context"

// Delivery is a long-running server started by the application graph.
type Delivery interface {
	Serve(ctx context.Context) error
}
