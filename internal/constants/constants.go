package constants

import "time"

const (
	// DefaultHost is the reference Twitch IRC server.
	DefaultHost = "irc.chat.twitch.tv"

	// DefaultPort is the plaintext port; TLS is out of scope.
	DefaultPort = 6667

	// ReadBufferSize is the fixed size of the connection's inbound ring
	// buffer. A single unframed message may not exceed this.
	ReadBufferSize = 2048

	// TimeoutIntervalSeconds is the inactivity deadline. Twitch pings
	// roughly every 5 minutes; this sits slightly above that to tolerate
	// scheduling jitter while still detecting a dead link that never
	// signals EOF (e.g. a laptop resumed from sleep).
	TimeoutIntervalSeconds = 5*60 + 15

	// RequestedCapabilities is sent as a single CAP REQ on every
	// connection attempt.
	RequestedCapabilities = "twitch.tv/tags twitch.tv/commands twitch.tv/membership"
)

// TimeoutInterval is TimeoutIntervalSeconds as a time.Duration, for use
// against a monotonic clock reading.
const TimeoutInterval = TimeoutIntervalSeconds * time.Second
