package netraw

import (
	"context"
	"errors"
	"net"
	"time"
)

// Frame is one inbound datagram read off a RawSocket, tagged with the
// source address the kernel reported.
type Frame struct {
	From net.IP
	Data []byte
}

// pollInterval bounds how long a single Receive call blocks before the
// loop rechecks ctx.Done(). It does not bound per-frame latency — frames
// arrive as soon as the kernel delivers them; it only bounds how promptly
// cancellation is observed when nothing arrives.
const pollInterval = 200 * time.Millisecond

// RunReceiveLoop owns sock exclusively until ctx is canceled: it polls
// Receive in a tight loop and invokes onFrame with a copy of every datagram
// read (parsing is left to onFrame). ErrTimeout from a single Receive call
// is not an error — it just means the poll interval elapsed with nothing
// queued. Any other Receive error ends the loop; the error is neither
// logged nor returned, so the caller only sees that the loop has exited.
func RunReceiveLoop(ctx context.Context, sock RawSocket, onFrame func(Frame)) {
	buf := make([]byte, MaxFrameSize)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, from, err := sock.Receive(buf, pollInterval)
		if err != nil {
			if errors.Is(err, ErrTimeout) {
				continue
			}
			// Socket-level errors (closed fd, etc.) are terminal for this
			// loop and are not reported.
			return
		}

		frame := make([]byte, n)
		copy(frame, buf[:n])
		onFrame(Frame{From: from, Data: frame})
	}
}
