// Package validation holds the pre-send checks the command formatter
// runs before handing a line to the socket layer.
package validation

import (
	"fmt"
	"strings"
)

// ValidateChannelName validates a Twitch channel name. Twitch channels
// are always "#" followed by the broadcaster's lowercase login name;
// unlike general IRC, the "&", "+" and "!" channel-type prefixes never
// appear on Twitch.
func ValidateChannelName(channel string) error {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return fmt.Errorf("channel name is required")
	}
	if channel[0] != '#' {
		return fmt.Errorf("twitch channel name must start with '#'")
	}
	if len(channel) > 200 {
		return fmt.Errorf("channel name too long (max 200 characters)")
	}
	if strings.ContainsAny(channel, " \x00\x07\x0A\x0D,") {
		return fmt.Errorf("channel name contains invalid characters")
	}
	return nil
}

// ValidateNick validates a nickname before it is sent in a NICK command.
func ValidateNick(nick string) error {
	nick = strings.TrimSpace(nick)
	if nick == "" {
		return fmt.Errorf("nickname is required")
	}
	if len(nick) > 25 {
		return fmt.Errorf("nickname too long (max 25 characters)")
	}
	if strings.ContainsAny(nick, " \x00\x07\x0A\x0D,!@") {
		return fmt.Errorf("nickname contains invalid characters")
	}
	return nil
}

// ValidateServerAddress validates a server host and port before Connect
// initiates a TCP connection.
func ValidateServerAddress(address string, port int) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("server address is required")
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
