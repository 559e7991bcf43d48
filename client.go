// Package twitchirc is a minimal, single-threaded Twitch chat client: a
// non-blocking socket driven by OS readiness notifications, an
// IRCv3 wire parser, and a synchronous event-dispatch loop. There is no
// internal goroutine and no connection multiplexing; callers drive the
// connection by calling PollOnce repeatedly, and the user callback runs
// on the caller's own goroutine, inline, once per inbound message.
package twitchirc

import (
	"time"

	"github.com/rundownlabs/twitchirc/internal/constants"
	"github.com/rundownlabs/twitchirc/internal/logger"
	"github.com/rundownlabs/twitchirc/internal/netpoll"
	"github.com/rundownlabs/twitchirc/internal/validation"
)

// EventCallback is invoked synchronously, once per inbound message,
// from within PollOnce. It must not call back into the Client that
// invoked it except via methods explicitly documented as reentrant;
// none currently are.
type EventCallback func(c *Client, ev Event, userData interface{})

// Client is a single Twitch IRC connection. It is not safe for
// concurrent use: PollOnce, Connect, Disconnect and the command
// methods must all be called from the same goroutine.
type Client struct {
	conn   rawConn
	fd     int
	poller netpoll.Poller

	// dial and openPoller back Connect's socket/poller creation. Tests
	// override both to drive the FSM against an in-memory fake rawConn
	// and a fake netpoll.Poller, with no live socket involved.
	dial       func(host string, port int) (rawConn, int, bool, error)
	openPoller func() (netpoll.Poller, error)

	status Status
	login  Login

	lastError    *ConnError
	lastActivity time.Time

	callback EventCallback
	userData interface{}
	verbose  bool

	recvBuf [constants.ReadBufferSize]byte
	pending []byte
}

// NewClient constructs a Client in the disconnected state. callback is
// invoked for every inbound event once Connect and PollOnce are
// driving the connection; userData is passed through unmodified for
// the caller's own bookkeeping.
func NewClient(callback EventCallback, userData interface{}, verbose bool) *Client {
	return &Client{
		callback:   callback,
		userData:   userData,
		verbose:    verbose,
		dial:       defaultDial,
		openPoller: netpoll.Open,
	}
}

// LastError returns the most recent connection error, or nil.
func (c *Client) LastError() *ConnError { return c.lastError }

// Login returns the current login state (display name and user ID are
// populated once GLOBALUSERSTATE has been received).
func (c *Client) Login() Login { return c.login }

// Connect validates the target and credentials, opens a non-blocking
// TCP socket, and begins the connect handshake. It does not block
// until authentication completes; call PollOnce to drive the
// connection through Connecting -> Connected -> Authenticating ->
// Authenticated.
func (c *Client) Connect(nick, pass, host string, port int) error {
	if c.status != 0 {
		return newConnError(ErrConnSocket, errAlreadyConnected)
	}
	if err := validation.ValidateNick(nick); err != nil {
		return err
	}
	if err := validation.ValidateServerAddress(host, port); err != nil {
		return err
	}

	conn, fd, inProgress, err := c.dial(host, port)
	if err != nil {
		c.lastError = asConnError(err, ErrSocketConnect)
		return c.lastError
	}

	poller, err := c.openPoller()
	if err != nil {
		conn.close()
		c.lastError = newConnError(ErrEpollCreate, err)
		return c.lastError
	}

	interest := netpoll.Readable
	if inProgress {
		interest = netpoll.Writable
	}
	if err := poller.Register(fd, interest); err != nil {
		poller.Close()
		conn.close()
		c.lastError = newConnError(ErrEpollCtl, err)
		return c.lastError
	}

	c.conn = conn
	c.fd = fd
	c.poller = poller
	c.login = newLogin(nick, pass)
	c.lastActivity = time.Now()
	c.status = StatusConnecting
	if !inProgress {
		c.completeConnect()
	}

	logger.Log.Info().Str("host", host).Int("port", port).Msg("connect initiated")
	return nil
}

// completeConnect transitions Connecting -> Connected, switches poller
// interest to read-only, and sends the capability/auth handshake.
func (c *Client) completeConnect() {
	c.status = StatusConnected
	c.poller.Modify(c.fd, netpoll.Readable)

	c.rawSend(formatCapReqAll(constants.RequestedCapabilities))
	c.rawSend(formatPass(c.login.password))
	c.rawSend(formatNick(c.login.Nickname))
	c.status |= StatusAuthenticating

	if c.verbose {
		logger.Log.Debug().Msg(logger.Redact(formatPass(c.login.password), c.login.password))
	}
}

// PollOnce blocks for up to timeoutMs milliseconds waiting for
// readiness on the connection, processes whatever is ready, and
// returns. It returns false once the connection has been torn down
// (by the peer, by a socket error, or by the 315-second inactivity
// deadline); LastError explains why.
func (c *Client) PollOnce(timeoutMs int) bool {
	if c.status == 0 {
		return false
	}

	events, err := c.poller.Wait(timeoutMs)
	if err != nil {
		c.fail(newConnError(ErrEpollWait, err))
		return false
	}

	for _, ev := range events {
		if ev.Err {
			if sErr := c.conn.errCheck(); sErr != nil {
				c.fail(newConnError(ErrConnSocket, sErr))
				return false
			}
		}
		if ev.Hup && !ev.Readable {
			c.fail(newConnError(ErrConnHangup, nil))
			return false
		}

		if c.status.Has(StatusConnecting) && ev.Writable {
			if sErr := c.conn.errCheck(); sErr != nil {
				c.fail(newConnError(ErrSocketConnect, sErr))
				return false
			}
			c.completeConnect()
			continue
		}

		if ev.Readable {
			if !c.drainReadable() {
				return false
			}
		}
	}

	if c.status != 0 && time.Since(c.lastActivity) > constants.TimeoutInterval {
		c.fail(newConnError(ErrConnClosed, errInactivityTimeout))
		return false
	}

	return true
}

// drainReadable reads all currently available bytes from the socket,
// extracts and dispatches every complete line, and reports whether the
// connection is still alive. c.pending never grows past
// constants.ReadBufferSize: a line that runs past that with no CRLF in
// sight cannot be a valid Twitch IRC message and the connection is
// failed with ErrFrameTooLong rather than buffering it forever.
func (c *Client) drainReadable() bool {
	for {
		n, err := c.conn.recv(c.recvBuf[:])
		if err != nil {
			c.fail(asConnError(err, ErrSocketRecv))
			return false
		}
		if n == 0 {
			if len(c.pending) == 0 {
				return true
			}
			break
		}

		if len(c.pending)+n > constants.ReadBufferSize {
			c.fail(newConnError(ErrFrameTooLong, errFrameOverflow))
			return false
		}

		c.pending = append(c.pending, c.recvBuf[:n]...)
		c.lastActivity = time.Now()

		lines, consumed := splitLines(c.pending)
		if consumed > 0 {
			c.pending = append([]byte(nil), c.pending[consumed:]...)
		}
		for _, line := range lines {
			c.handleLine(line)
		}

		if n < constants.ReadBufferSize {
			// short read: the socket had no more buffered data.
			break
		}
	}
	return true
}

func (c *Client) handleLine(line string) {
	msg, err := parseLine(line)
	if err != nil {
		if c.verbose {
			logger.Log.Warn().Err(err).Str("line", line).Msg("discarding malformed line")
		}
		return
	}

	ev, pong := dispatch(msg, &c.login, &c.status)
	if pong.send {
		c.rawSend(formatPong(pong.param))
	}

	if c.callback != nil {
		c.callback(c, ev, c.userData)
	}
}

// send validates nothing about the payload itself (command formatters
// already produce well-formed lines) and writes it to the socket. A
// blocked write is surfaced as an error rather than queued: outbound
// backpressure is explicitly out of scope for this client.
func (c *Client) send(line string) error {
	if c.status == 0 {
		return newConnError(ErrConnClosed, nil)
	}
	return c.rawSend(line)
}

// rawSend loops, writing the remainder of data and advancing past
// whatever the kernel accepted, until the whole line is sent. Only
// EAGAIN/EWOULDBLOCK (conn.send returning 0, nil with data left)
// stops the loop — the send buffer is full and, with no outbound
// queue, that is surfaced as an error rather than retried later. Any
// other error fails the connection outright.
func (c *Client) rawSend(line string) error {
	remaining := []byte(line)
	for len(remaining) > 0 {
		n, err := c.conn.send(remaining)
		if err != nil {
			c.fail(asConnError(err, ErrSocketSend))
			return err
		}
		if n == 0 {
			cerr := newConnError(ErrSocketSend, errShortWrite)
			c.lastError = cerr
			return cerr
		}
		remaining = remaining[n:]
	}
	return nil
}

// Disconnect tears down the socket and poller and resets to the
// disconnected state. It is idempotent.
func (c *Client) Disconnect() {
	if c.status == 0 {
		return
	}
	if c.poller != nil {
		c.poller.Close()
		c.poller = nil
	}
	if c.conn != nil {
		c.conn.close()
		c.conn = nil
	}
	c.fd = 0
	c.pending = nil
	c.login = Login{}
	c.status.clear()
	logger.Log.Info().Msg("disconnected")
}

// QuitAndDisconnect sends QUIT and then tears down the connection. It
// returns false if QUIT could not be sent (the connection is torn down
// regardless).
func (c *Client) QuitAndDisconnect() bool {
	err := c.send(formatQuit())
	c.Disconnect()
	return err == nil
}

func (c *Client) fail(err *ConnError) {
	c.lastError = err
	logger.Log.Warn().Err(err).Msg("connection failed")
	c.Disconnect()
}

func asConnError(err error, fallback ErrorCode) *ConnError {
	if ce, ok := err.(*ConnError); ok {
		return ce
	}
	return newConnError(fallback, err)
}
