package twitchirc

import (
	"net"

	"golang.org/x/sys/unix"
)

// dialNonblocking resolves host:port, opens a non-blocking TCP socket
// and starts an asynchronous connect. The returned fd is always valid
// if err is nil; inProgress reports whether the connect is still in
// flight (the common case for a non-blocking socket) versus having
// completed synchronously.
func dialNonblocking(host string, port int) (fd int, inProgress bool, err error) {
	ip, err := resolveHost(host)
	if err != nil {
		return -1, false, newConnError(ErrSocketConnect, err)
	}

	domain := unix.AF_INET
	if ip.To4() == nil {
		domain = unix.AF_INET6
	}

	fd, err = unix.Socket(domain, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return -1, false, newConnError(ErrSocketCreate, err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return -1, false, newConnError(ErrSocketCreate, err)
	}

	sa := sockaddrFor(ip, port)
	err = unix.Connect(fd, sa)
	if err == nil {
		return fd, false, nil
	}
	if err == unix.EINPROGRESS {
		return fd, true, nil
	}
	unix.Close(fd)
	return -1, false, newConnError(ErrSocketConnect, err)
}

func resolveHost(host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}
	addrs, err := net.LookupIP(host)
	if err != nil {
		return nil, err
	}
	for _, a := range addrs {
		if v4 := a.To4(); v4 != nil {
			return v4, nil
		}
	}
	return addrs[0], nil
}

func sockaddrFor(ip net.IP, port int) unix.Sockaddr {
	if v4 := ip.To4(); v4 != nil {
		var addr [4]byte
		copy(addr[:], v4)
		return &unix.SockaddrInet4{Port: port, Addr: addr}
	}
	var addr [16]byte
	copy(addr[:], ip.To16())
	return &unix.SockaddrInet6{Port: port, Addr: addr}
}

// socketError returns the pending SO_ERROR on fd, nil if none. Called
// once a connecting socket reports writable, to distinguish a
// completed connect from a failed one.
func socketError(fd int) error {
	errno, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return err
	}
	if errno != 0 {
		return unix.Errno(errno)
	}
	return nil
}

// socketSend writes data to fd, returning the number of bytes actually
// written. EAGAIN/EWOULDBLOCK is not an error here: it is reported as
// (0, nil) so the caller (rawSend's retry loop) can tell a full send
// buffer apart from a real I/O error and stop retrying rather than
// spin.
func socketSend(fd int, data []byte) (int, error) {
	n, err := unix.Write(fd, data)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, nil
		}
		return 0, newConnError(ErrSocketSend, err)
	}
	return n, nil
}

// socketRecv reads into buf. EAGAIN/EWOULDBLOCK is reported as (0, nil):
// nothing more to read for now. A zero-length read with no error means
// the peer closed its end of the connection (EOF) and is reported as an
// ErrConnClosed error.
func socketRecv(fd int, buf []byte) (int, error) {
	n, err := unix.Read(fd, buf)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, nil
		}
		return 0, newConnError(ErrSocketRecv, err)
	}
	if n == 0 && len(buf) > 0 {
		return 0, newConnError(ErrConnClosed, nil)
	}
	return n, nil
}

func socketClose(fd int) error {
	if err := unix.Close(fd); err != nil {
		return newConnError(ErrSocketClose, err)
	}
	return nil
}

// rawConn is the minimal socket surface the connection lifecycle needs:
// send, receive, check for a pending connect error, and close. Keeping
// client.go programmed against this interface rather than a bare fd
// lets the FSM, the inactivity deadline, and line framing be exercised
// in tests against an in-memory fake, with no live socket or OS
// readiness backend involved.
type rawConn interface {
	send(data []byte) (int, error)
	recv(buf []byte) (int, error)
	errCheck() error
	close() error
}

// fdConn is the real rawConn, backed by an OS socket fd.
type fdConn struct {
	fd int
}

func (f *fdConn) send(data []byte) (int, error) { return socketSend(f.fd, data) }
func (f *fdConn) recv(buf []byte) (int, error)  { return socketRecv(f.fd, buf) }
func (f *fdConn) errCheck() error               { return socketError(f.fd) }
func (f *fdConn) close() error                  { return socketClose(f.fd) }

// defaultDial is the Client's default dial function: a real
// non-blocking TCP socket wrapped in an fdConn. Tests override
// Client.dial to drive the connection lifecycle against a fake rawConn
// and a fake netpoll.Poller instead.
func defaultDial(host string, port int) (rawConn, int, bool, error) {
	fd, inProgress, err := dialNonblocking(host, port)
	if err != nil {
		return nil, -1, false, err
	}
	return &fdConn{fd: fd}, fd, inProgress, nil
}
