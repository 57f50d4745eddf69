package netraw

import "errors"

// Error kinds from the probe engine's error taxonomy. Callers compare
// against these with errors.Is rather than type-switching, matching the
// sentinel style already used by internal/config's Validate paths.
var (
	// ErrInvalidConfig flags an out-of-range parameter: timeouts, counts,
	// port ranges, octet counts, mask bits.
	ErrInvalidConfig = errors.New("netraw: invalid config")

	// ErrPermission flags a kernel refusal to create a raw socket or
	// install a firewall rule.
	ErrPermission = errors.New("netraw: permission denied")

	// ErrEncode flags a header that would exceed a wire field's width,
	// e.g. a TCP option block too large to fit data_offset.
	ErrEncode = errors.New("netraw: encode failed")

	// ErrMalformedFrame flags an inbound frame that could not be parsed.
	// The receiver loop discards the frame and continues; this error
	// never terminates the process.
	ErrMalformedFrame = errors.New("netraw: malformed frame")

	// ErrTimeout flags that Receive's deadline elapsed with no frame
	// available. Not a hard error — callers poll again or give up
	// according to their own deadline.
	ErrTimeout = errors.New("netraw: receive timeout")
)
