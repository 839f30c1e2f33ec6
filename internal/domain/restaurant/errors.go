package restaurant

import "errors"

var (
	// ErrNotFound indicates the restaurant doesn't exist.
	ErrNotFound = errors.New("restaurant not found")
	// ErrDiscoveryFailed indicates the external places search failed.
	ErrDiscoveryFailed = errors.New("restaurant discovery failed")
)
