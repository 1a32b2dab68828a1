package events

import "errors"

// ErrInvalidEvent marks validation failures of event payloads. Always
// caller-fixable; handlers map it to HTTP 400.
var ErrInvalidEvent = errors.New("invalid event")
