//go:build linux

package netraw

import (
	"fmt"
	"net"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// unixRawSocket implements RawSocket on Linux via golang.org/x/sys/unix,
// which (unlike the frozen standard-library syscall package) still
// receives new socket-option constants as the kernel adds them.
type unixRawSocket struct {
	mu     sync.Mutex
	fd     int
	kind   SocketKind
	closed bool
}

func newRawSocket(protocol int, kind SocketKind) (*unixRawSocket, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, protocol)
	if err != nil {
		if err == unix.EPERM || err == unix.EACCES {
			return nil, fmt.Errorf("%w: raw socket requires CAP_NET_RAW: %v", ErrPermission, err)
		}
		return nil, fmt.Errorf("raw socket create: %w", err)
	}

	if kind == RawTCP4 {
		if err := unix.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_HDRINCL, 1); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("set IP_HDRINCL: %w", err)
		}
	}

	return &unixRawSocket{fd: fd, kind: kind}, nil
}

// NewRawICMP4Socket opens an AF_INET/SOCK_RAW/IPPROTO_ICMP socket.
func NewRawICMP4Socket() (RawSocket, error) {
	return newRawSocket(unix.IPPROTO_ICMP, RawICMP4)
}

// NewRawTCP4Socket opens an AF_INET/SOCK_RAW/IPPROTO_TCP socket with
// IP_HDRINCL set.
func NewRawTCP4Socket() (RawSocket, error) {
	return newRawSocket(unix.IPPROTO_TCP, RawTCP4)
}

func (s *unixRawSocket) Send(dst net.IP, packet []byte) error {
	dst4 := dst.To4()
	if dst4 == nil {
		return fmt.Errorf("%w: destination must be IPv4", ErrEncode)
	}
	addr := &unix.SockaddrInet4{Addr: [4]byte{dst4[0], dst4[1], dst4[2], dst4[3]}}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("send on closed socket")
	}
	if err := unix.Sendto(s.fd, packet, 0, addr); err != nil {
		return fmt.Errorf("sendto: %w", err)
	}
	return nil
}

// Receive reads at most one frame, bounded by timeout via SO_RCVTIMEO.
// This is the non-blocking contract from the caller's point of view: the
// call always returns within ~timeout, letting the receiver loop recheck
// its cancellation signal between reads instead of blocking forever.
func (s *unixRawSocket) Receive(buf []byte, timeout time.Duration) (int, net.IP, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, nil, fmt.Errorf("receive on closed socket")
	}
	fd := s.fd
	s.mu.Unlock()

	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return 0, nil, fmt.Errorf("set recv timeout: %w", err)
	}

	n, from, err := unix.Recvfrom(fd, buf, 0)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, nil, ErrTimeout
		}
		return 0, nil, fmt.Errorf("recvfrom: %w", err)
	}

	var srcIP net.IP
	if addr, ok := from.(*unix.SockaddrInet4); ok {
		srcIP = net.IP(append(net.IP{}, addr.Addr[:]...))
	}
	return n, srcIP, nil
}

func (s *unixRawSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("socket already closed")
	}
	s.closed = true
	return unix.Close(s.fd)
}
