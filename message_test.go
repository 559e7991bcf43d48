package twitchirc

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	buf := []byte("PING :tmi.twitch.tv\r\nPRIVMSG #foo :hi\r\nPART")

	lines, consumed := splitLines(buf)
	want := []string{"PING :tmi.twitch.tv", "PRIVMSG #foo :hi"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %#v, want %#v", lines, want)
	}
	if consumed != len(buf)-len("PART") {
		t.Fatalf("consumed = %d, want %d", consumed, len(buf)-len("PART"))
	}
}

func TestSplitLinesNoCompleteLine(t *testing.T) {
	lines, consumed := splitLines([]byte("PING :tmi"))
	if lines != nil || consumed != 0 {
		t.Fatalf("got lines=%#v consumed=%d, want nil/0", lines, consumed)
	}
}

func TestParseLinePrivmsgWithTags(t *testing.T) {
	line := "@badge-info=;badges=broadcaster/1;color=#FF0000;display-name=Foo;" +
		"emotes=;id=abc;mod=0;room-id=1;subscriber=0;tmi-sent-ts=123;" +
		"turbo=0;user-id=1;user-type= :foo!foo@foo.tmi.twitch.tv PRIVMSG #foo :hello world"

	msg, err := parseLine(line)
	if err != nil {
		t.Fatalf("parseLine error: %v", err)
	}
	if msg.Command != "PRIVMSG" {
		t.Errorf("Command = %q", msg.Command)
	}
	if !reflect.DeepEqual(msg.Args, []string{"#foo"}) {
		t.Errorf("Args = %#v", msg.Args)
	}
	if msg.Parameter != "hello world" {
		t.Errorf("Parameter = %q", msg.Parameter)
	}
	if msg.Prefix != "foo!foo@foo.tmi.twitch.tv" {
		t.Errorf("Prefix = %q", msg.Prefix)
	}
	if GetTagValue(msg.Tags, "display-name") != "Foo" {
		t.Errorf("display-name tag = %q", GetTagValue(msg.Tags, "display-name"))
	}
	if msg.CTCP != "" {
		t.Errorf("CTCP = %q, want empty", msg.CTCP)
	}
}

func TestParseLinePing(t *testing.T) {
	msg, err := parseLine("PING :tmi.twitch.tv")
	if err != nil {
		t.Fatalf("parseLine error: %v", err)
	}
	if msg.Command != "PING" {
		t.Errorf("Command = %q", msg.Command)
	}
	if msg.Parameter != "tmi.twitch.tv" {
		t.Errorf("Parameter = %q", msg.Parameter)
	}
}

func TestParseLineCTCPAction(t *testing.T) {
	line := ":foo!foo@foo.tmi.twitch.tv PRIVMSG #foo :\x01ACTION waves\x01"
	msg, err := parseLine(line)
	if err != nil {
		t.Fatalf("parseLine error: %v", err)
	}
	if msg.CTCP != "ACTION" {
		t.Errorf("CTCP = %q", msg.CTCP)
	}
	if msg.Parameter != "waves" {
		t.Errorf("Parameter = %q", msg.Parameter)
	}
}

func TestParseLineMalformedCTCP(t *testing.T) {
	line := ":foo!foo@foo.tmi.twitch.tv PRIVMSG #foo :\x01ACTION\x01"
	if _, err := parseLine(line); err == nil {
		t.Fatal("expected error for CTCP envelope with no space")
	}
}

func TestParseLineMalformedPrefix(t *testing.T) {
	if _, err := parseLine(":nospacefollowing"); err == nil {
		t.Fatal("expected error for prefix with no trailing space")
	}
}

func TestParseLineEmptyCommand(t *testing.T) {
	if _, err := parseLine("   "); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestOriginFromPrefix(t *testing.T) {
	if got := originFromPrefix("foo!foo@foo.tmi.twitch.tv"); got != "foo" {
		t.Errorf("origin = %q", got)
	}
	if got := originFromPrefix("tmi.twitch.tv"); got != "" {
		t.Errorf("origin = %q, want empty", got)
	}
}
