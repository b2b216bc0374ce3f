package types

import "errors"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Workspace errors.
var (
	ErrWorkspaceClosed   = errors.New("workspace is closed")
	ErrPluginUnavailable = errors.New("plugin unavailable")
)

// Catalog errors.
var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrInvalidKey    = errors.New("invalid entry key")
)
