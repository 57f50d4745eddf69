//go:build windows

package netraw

import (
	"fmt"
	"net"
	"time"
)

// Windows restricts raw SOCK_RAW sockets (no ICMP/TCP send on raw sockets
// without WinPcap/Npcap or a firewall-aware driver). The probe engine does
// not support raw-socket probing on Windows; callers get ErrPermission and
// should fall back to the ICMP-helper path (pro-bing with SetPrivileged),
// matching scanner/alive.RunWithFallback's fallback behavior.
type unsupportedRawSocket struct{}

func NewRawICMP4Socket() (RawSocket, error) {
	return nil, fmt.Errorf("%w: raw ICMP sockets are not supported on windows", ErrPermission)
}

func NewRawTCP4Socket() (RawSocket, error) {
	return nil, fmt.Errorf("%w: raw TCP sockets are not supported on windows", ErrPermission)
}

func (unsupportedRawSocket) Send(net.IP, []byte) error                           { return fmt.Errorf("unsupported") }
func (unsupportedRawSocket) Receive([]byte, time.Duration) (int, net.IP, error) { return 0, nil, fmt.Errorf("unsupported") }
func (unsupportedRawSocket) Close() error                                        { return fmt.Errorf("unsupported") }
