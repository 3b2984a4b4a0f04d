// Package scw holds the client-side types shared by every testdata API,
// mirroring the shape of the wrapped SDK's core package.
package scw

import "time"

// Client is a placeholder for the SDK's authenticated client.
type Client struct{}

// RequestOption customizes a single API request.
type RequestOption func(any)

// WaitForOptions configures polling helpers. Fields of this type are
// excluded from generated request schemas.
type WaitForOptions struct {
	Timeout       time.Duration
	RetryInterval *time.Duration
}
