package twitchirc

import (
	"errors"
	"testing"
)

func TestConnErrorString(t *testing.T) {
	err := newConnError(ErrSocketConnect, errors.New("connection refused"))
	want := "socket_connect: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestConnErrorStringNoCause(t *testing.T) {
	err := newConnError(ErrConnHangup, nil)
	if err.Error() != "conn_hangup" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestConnErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := newConnError(ErrSocketSend, cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to see through to the cause")
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrNone.String() != "none" {
		t.Errorf("ErrNone.String() = %q", ErrNone.String())
	}
	if ErrorCode(999).String() != "unknown" {
		t.Errorf("unknown code String() = %q", ErrorCode(999).String())
	}
}
