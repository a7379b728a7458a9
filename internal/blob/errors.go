// Package blob holds the storage-independent pieces of blob object management:
// key derivation, payload decoding, display formatting and the error taxonomy
// shared by the storage backends and HTTP handlers.
package blob

import "errors"

// ErrMissingField is returned when a required request field is absent.
var ErrMissingField = errors.New("missing required field")

// ErrInvalidPayload is returned when an encoded payload is not valid base64.
var ErrInvalidPayload = errors.New("invalid payload")

// ErrUnauthorized is returned when the store credential is missing or rejected.
var ErrUnauthorized = errors.New("store credential missing or rejected")

// ErrStoreUnavailable is returned when the external store cannot serve a request.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("object not found")

// ErrUnsupported is returned when a store backend lacks an optional capability.
var ErrUnsupported = errors.New("operation not supported by store")
