package twitchirc

import (
	"fmt"
	"strings"
)

// RawMessage holds the syntactic decomposition of one wire line, before
// any command-specific semantic interpretation.
type RawMessage struct {
	Raw          string // original line, without the trailing CRLF
	Tags         Tags
	Prefix       string // source prefix with leading ':' stripped
	Command      string
	Args         []string
	Parameter    string // trailing parameter text, "" if absent
	HasParameter bool
	CTCP         string // CTCP command, e.g. "ACTION", "" if not a CTCP envelope
}

// splitLines scans buf for complete "\r\n"-terminated lines. It returns
// each complete line (without the delimiter) and the total number of
// bytes consumed, including delimiters. A trailing partial fragment is
// left unconsumed for the next call.
func splitLines(buf []byte) (lines []string, consumed int) {
	rest := buf
	for {
		idx := indexCRLF(rest)
		if idx < 0 {
			break
		}
		lines = append(lines, string(rest[:idx]))
		rest = rest[idx+2:]
		consumed += idx + 2
	}
	return lines, consumed
}

func indexCRLF(b []byte) int {
	for i := 0; i+1 < len(b); i++ {
		if b[i] == '\r' && b[i+1] == '\n' {
			return i
		}
	}
	return -1
}

// parseLine parses one complete line (without CRLF) into a RawMessage
// per the Twitch IRCv3 grammar:
//
//	['@' tags SP] [':' prefix SP] command (SP arg)* [SP ':' trailing]
func parseLine(line string) (RawMessage, error) {
	msg := RawMessage{Raw: line}
	rest := line

	if strings.HasPrefix(rest, "@") {
		sp := strings.IndexByte(rest, ' ')
		var tagBlock string
		if sp < 0 {
			tagBlock = rest[1:]
			rest = ""
		} else {
			tagBlock = rest[1:sp]
			rest = rest[sp+1:]
		}
		msg.Tags = parseTags(tagBlock)
	}

	if strings.HasPrefix(rest, ":") {
		sp := strings.IndexByte(rest, ' ')
		if sp < 0 {
			return msg, fmt.Errorf("twitchirc: malformed prefix (no space after ':'): %q", line)
		}
		msg.Prefix = rest[1:sp]
		rest = rest[sp+1:]
	}

	// command & arguments: split on the first ':' into head and the
	// trailing parameter.
	head := rest
	if ci := strings.IndexByte(rest, ':'); ci >= 0 {
		head = rest[:ci]
		msg.Parameter = rest[ci+1:]
		msg.HasParameter = true
	}
	head = strings.TrimSpace(head)
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return msg, fmt.Errorf("twitchirc: empty command: %q", line)
	}
	msg.Command = fields[0]
	msg.Args = fields[1:]

	if msg.HasParameter && len(msg.Parameter) >= 2 &&
		msg.Parameter[0] == '\x01' && msg.Parameter[len(msg.Parameter)-1] == '\x01' {
		inner := msg.Parameter[1 : len(msg.Parameter)-1]
		sp := strings.IndexByte(inner, ' ')
		if sp < 0 {
			return msg, fmt.Errorf("twitchirc: malformed CTCP envelope: %q", line)
		}
		msg.CTCP = inner[:sp]
		msg.Parameter = inner[sp+1:]
	}

	return msg, nil
}

// parseTags decodes a "k=v;k2=v2" tag block (the leading '@' and
// trailing space are already stripped by the caller).
func parseTags(block string) Tags {
	if block == "" {
		return nil
	}
	tokens := strings.Split(block, ";")
	tags := make(Tags, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		eq := strings.IndexByte(tok, '=')
		if eq < 0 {
			tags = append(tags, Tag{Key: tok})
			continue
		}
		key := tok[:eq]
		val := unescapeTagValue(tok[eq+1:])
		tags = append(tags, Tag{Key: key, Value: val})
	}
	return tags
}

// originFromPrefix extracts the nick portion of a message prefix
// ("nick!user@host" -> "nick"), or "" if the prefix has no '!'.
func originFromPrefix(prefix string) string {
	if bi := strings.IndexByte(prefix, '!'); bi >= 0 {
		return prefix[:bi]
	}
	return ""
}
