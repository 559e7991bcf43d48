package chatlog

import (
	"path/filepath"
	"testing"
	"time"
)

func TestWriteAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatlog.db")
	store, err := Open(path, 8, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	msg := Message{
		Channel:     "#foo",
		User:        "bar",
		Body:        "hello",
		MessageType: "privmsg",
		Timestamp:   time.Now(),
		RawLine:     ":bar!bar@bar.tmi.twitch.tv PRIVMSG #foo :hello",
	}
	if err := store.Write(msg); err != nil {
		t.Fatalf("Write: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	var got []Message
	for time.Now().Before(deadline) {
		got, err = store.Recent("#foo", 10)
		if err != nil {
			t.Fatalf("Recent: %v", err)
		}
		if len(got) > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if len(got) != 1 {
		t.Fatalf("got %d messages, want 1", len(got))
	}
	if got[0].User != "bar" || got[0].Body != "hello" {
		t.Errorf("got message = %+v", got[0])
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatlog.db")
	store, err := Open(path, 8, time.Second)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
