//go:build wasip1

package sdk

import "github.com/brensch/snekarena/raw"

// Default returns a client bound to the host imports.
func Default(opts ...Option) *Client {
	return New(raw.Imports{}, opts...)
}
