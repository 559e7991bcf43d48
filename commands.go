package twitchirc

import (
	"fmt"
	"strings"

	"github.com/rundownlabs/twitchirc/internal/validation"
)

// The formatters in this file are pure: they build the exact "\r\n"
// terminated line the wire codec on the other end expects, and nothing
// more. Client methods below send the result; keeping the string
// construction pure makes it testable without a socket.

func formatPass(pass string) string    { return "PASS " + pass + "\r\n" }
func formatNick(nick string) string    { return "NICK " + nick + "\r\n" }
func formatJoin(channel string) string { return "JOIN " + channel + "\r\n" }
func formatPart(channel string) string { return "PART " + channel + "\r\n" }
func formatQuit() string               { return "QUIT\r\n" }

func formatPrivmsg(channel, message string) string {
	return fmt.Sprintf("PRIVMSG %s :%s\r\n", channel, message)
}

// formatPong adds the leading ':' iff the caller-supplied param doesn't
// already have one; an empty param produces a bare "PONG\r\n".
func formatPong(param string) string {
	if param == "" {
		return "PONG\r\n"
	}
	if strings.HasPrefix(param, ":") {
		return "PONG " + param + "\r\n"
	}
	return "PONG :" + param + "\r\n"
}

// formatPing never gets a colon prefix, per spec.
func formatPing(param string) string {
	if param == "" {
		return "PING\r\n"
	}
	return "PING " + param + "\r\n"
}

func formatCTCPAction(channel, message string) string {
	return fmt.Sprintf("PRIVMSG %s :\x01ACTION %s\x01\r\n", channel, message)
}

func formatWhisper(selfNick, target, message string) string {
	return fmt.Sprintf("PRIVMSG #%s :/w %s %s\r\n", selfNick, target, message)
}

func formatCapReqTags() string        { return "CAP REQ :twitch.tv/tags\r\n" }
func formatCapReqCommands() string    { return "CAP REQ :twitch.tv/commands\r\n" }
func formatCapReqMembership() string  { return "CAP REQ :twitch.tv/membership\r\n" }
func formatCapReqAll(caps string) string {
	return "CAP REQ :" + caps + "\r\n"
}

// modCommand directs a /<verb> through PRIVMSG, as Twitch interprets these
// leading-slash commands server-side rather than as an IRC verb.
func modCommand(channel, verb string, args ...string) string {
	line := "/" + verb
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	return formatPrivmsg(channel, line)
}

func formatTimeout(channel, user, duration, reason string) string {
	args := []string{user}
	if duration != "" {
		args = append(args, duration)
	}
	if reason != "" {
		args = append(args, reason)
	}
	return modCommand(channel, "timeout", args...)
}

func formatUntimeout(channel, user string) string { return modCommand(channel, "untimeout", user) }

func formatBan(channel, user, reason string) string {
	args := []string{user}
	if reason != "" {
		args = append(args, reason)
	}
	return modCommand(channel, "ban", args...)
}

func formatUnban(channel, user string) string { return modCommand(channel, "unban", user) }

func formatSlow(channel string, seconds int) string {
	if seconds <= 0 {
		return modCommand(channel, "slow")
	}
	return modCommand(channel, "slow", fmt.Sprintf("%d", seconds))
}

func formatSlowoff(channel string) string { return modCommand(channel, "slowoff") }

func formatFollowers(channel, duration string) string {
	if duration == "" {
		return modCommand(channel, "followers")
	}
	return modCommand(channel, "followers", duration)
}

func formatFollowersoff(channel string) string  { return modCommand(channel, "followersoff") }
func formatSubscribers(channel string) string   { return modCommand(channel, "subscribers") }
func formatSubscribersoff(channel string) string { return modCommand(channel, "subscribersoff") }
func formatClear(channel string) string         { return modCommand(channel, "clear") }
func formatR9kBeta(channel string) string       { return modCommand(channel, "r9kbeta") }
func formatR9kBetaOff(channel string) string    { return modCommand(channel, "r9kbetaoff") }
func formatEmoteOnly(channel string) string     { return modCommand(channel, "emoteonly") }
func formatEmoteOnlyOff(channel string) string  { return modCommand(channel, "emoteonlyoff") }

func formatCommercial(channel string, seconds int) string {
	if seconds <= 0 {
		return modCommand(channel, "commercial")
	}
	return modCommand(channel, "commercial", fmt.Sprintf("%d", seconds))
}

func formatHost(channel, target string) string { return modCommand(channel, "host", target) }
func formatUnhost(channel string) string        { return modCommand(channel, "unhost") }
func formatMod(channel, nick string) string     { return modCommand(channel, "mod", nick) }
func formatUnmod(channel, nick string) string   { return modCommand(channel, "unmod", nick) }
func formatVip(channel, nick string) string     { return modCommand(channel, "vip", nick) }
func formatUnvip(channel, nick string) string   { return modCommand(channel, "unvip", nick) }
func formatDelete(channel, id string) string    { return modCommand(channel, "delete", id) }
func formatMods(channel string) string          { return modCommand(channel, "mods") }
func formatVips(channel string) string          { return modCommand(channel, "vips") }
func formatColor(channel, color string) string  { return modCommand(channel, "color", color) }
func formatMarker(channel, comment string) string {
	if comment == "" {
		return modCommand(channel, "marker")
	}
	return modCommand(channel, "marker", comment)
}

// --- Client-facing wrappers ---------------------------------------

// RequestTagsCapability sends CAP REQ for twitch.tv/tags alone.
func (c *Client) RequestTagsCapability() error { return c.send(formatCapReqTags()) }

// RequestCommandsCapability sends CAP REQ for twitch.tv/commands alone.
func (c *Client) RequestCommandsCapability() error { return c.send(formatCapReqCommands()) }

// RequestMembershipCapability sends CAP REQ for twitch.tv/membership alone.
func (c *Client) RequestMembershipCapability() error { return c.send(formatCapReqMembership()) }

// Join sends a JOIN for channel.
func (c *Client) Join(channel string) error {
	if err := validateChannel(channel); err != nil {
		return err
	}
	return c.send(formatJoin(channel))
}

// Part sends a PART for channel.
func (c *Client) Part(channel string) error {
	if err := validateChannel(channel); err != nil {
		return err
	}
	return c.send(formatPart(channel))
}

// SendMessage sends a PRIVMSG to channel.
func (c *Client) SendMessage(channel, message string) error {
	return c.send(formatPrivmsg(channel, message))
}

// SendAction sends a CTCP ACTION ("/me") to channel.
func (c *Client) SendAction(channel, message string) error {
	return c.send(formatCTCPAction(channel, message))
}

// SendWhisper sends a whisper to target via the self-PRIVMSG /w form.
func (c *Client) SendWhisper(target, message string) error {
	return c.send(formatWhisper(c.login.Nickname, target, message))
}

// Pong sends a PONG, optionally with param.
func (c *Client) Pong(param string) error { return c.send(formatPong(param)) }

// Ping sends a PING, optionally with param.
func (c *Client) Ping(param string) error { return c.send(formatPing(param)) }

func (c *Client) Timeout(channel, user, duration, reason string) error {
	return c.send(formatTimeout(channel, user, duration, reason))
}
func (c *Client) Untimeout(channel, user string) error { return c.send(formatUntimeout(channel, user)) }
func (c *Client) Ban(channel, user, reason string) error { return c.send(formatBan(channel, user, reason)) }
func (c *Client) Unban(channel, user string) error     { return c.send(formatUnban(channel, user)) }
func (c *Client) Slow(channel string, seconds int) error { return c.send(formatSlow(channel, seconds)) }
func (c *Client) SlowOff(channel string) error          { return c.send(formatSlowoff(channel)) }
func (c *Client) Followers(channel, duration string) error {
	return c.send(formatFollowers(channel, duration))
}
func (c *Client) FollowersOff(channel string) error    { return c.send(formatFollowersoff(channel)) }
func (c *Client) Subscribers(channel string) error     { return c.send(formatSubscribers(channel)) }
func (c *Client) SubscribersOff(channel string) error  { return c.send(formatSubscribersoff(channel)) }
func (c *Client) Clear(channel string) error           { return c.send(formatClear(channel)) }
func (c *Client) R9kBeta(channel string) error         { return c.send(formatR9kBeta(channel)) }
func (c *Client) R9kBetaOff(channel string) error      { return c.send(formatR9kBetaOff(channel)) }
func (c *Client) EmoteOnly(channel string) error        { return c.send(formatEmoteOnly(channel)) }
func (c *Client) EmoteOnlyOff(channel string) error     { return c.send(formatEmoteOnlyOff(channel)) }
func (c *Client) Commercial(channel string, seconds int) error {
	return c.send(formatCommercial(channel, seconds))
}
func (c *Client) Host(channel, target string) error { return c.send(formatHost(channel, target)) }
func (c *Client) Unhost(channel string) error        { return c.send(formatUnhost(channel)) }
func (c *Client) Mod(channel, nick string) error    { return c.send(formatMod(channel, nick)) }
func (c *Client) Unmod(channel, nick string) error  { return c.send(formatUnmod(channel, nick)) }
func (c *Client) Vip(channel, nick string) error    { return c.send(formatVip(channel, nick)) }
func (c *Client) Unvip(channel, nick string) error  { return c.send(formatUnvip(channel, nick)) }
func (c *Client) DeleteMessage(channel, id string) error { return c.send(formatDelete(channel, id)) }
func (c *Client) Mods(channel string) error         { return c.send(formatMods(channel)) }
func (c *Client) Vips(channel string) error         { return c.send(formatVips(channel)) }
func (c *Client) Color(channel, color string) error { return c.send(formatColor(channel, color)) }
func (c *Client) Marker(channel, comment string) error {
	return c.send(formatMarker(channel, comment))
}

func validateChannel(channel string) error {
	return validation.ValidateChannelName(channel)
}
