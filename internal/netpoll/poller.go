// Package netpoll provides the minimal readiness-polling abstraction the
// client needs over a single file descriptor: register it for read
// and/or write interest, block until something is ready, repeat. The
// two concrete backends (epoll on Linux, kqueue on Darwin) are kept
// behind this one interface so client.go never branches on GOOS.
package netpoll

// Interest is a bitmask of the readiness conditions a caller wants to
// be woken for.
type Interest uint8

const (
	Readable Interest = 1 << iota
	Writable
)

// Event reports which conditions fired for Fd.
type Event struct {
	Fd       int
	Readable bool
	Writable bool
	// Hup indicates the peer closed its end; Err indicates a pending
	// socket error (check SO_ERROR). Both are delivered as bits the
	// backend attaches to an otherwise-readable/writable event.
	Hup bool
	Err bool
}

// Poller multiplexes readiness across descriptors. A Poller instance
// is for a single goroutine; it is not safe for concurrent use, which
// matches the library's single-threaded, cooperative concurrency
// model.
type Poller interface {
	// Register starts watching fd for the given interest.
	Register(fd int, interest Interest) error
	// Modify changes the interest set for an already-registered fd.
	Modify(fd int, interest Interest) error
	// Remove stops watching fd.
	Remove(fd int) error
	// Wait blocks for up to timeoutMs milliseconds (0 = return
	// immediately, negative = block indefinitely) and returns the
	// events that fired, if any.
	Wait(timeoutMs int) ([]Event, error)
	// Close releases the underlying OS resource (epoll/kqueue fd).
	Close() error
}
