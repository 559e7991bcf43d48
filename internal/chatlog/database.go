// Package chatlog persists chat events emitted by a twitchirc.Client to
// a local SQLite database. It is not part of the library's core — the
// base spec places persistence outside the library's responsibility —
// it exists only to give the example embedding application (see
// cmd/twitchirc-demo) somewhere to put history.
//
// The buffered-write-then-flush-on-ticker shape is carried over from
// the teacher's storage package: the IRC read path must never block on
// disk I/O, so writes land in a channel and a background goroutine
// batches them into the database.
package chatlog

import (
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rundownlabs/twitchirc/internal/logger"
)

// Store handles chat history persistence for a single connection.
type Store struct {
	db            *sqlx.DB
	writeBuffer   chan Message
	bufferSize    int
	flushInterval time.Duration
	mu            sync.Mutex
	stopCh        chan struct{}
	wg            sync.WaitGroup
	closed        bool
	closedMu      sync.RWMutex
}

// Open creates (or opens) the SQLite database at path and starts the
// background flush loop.
func Open(path string, bufferSize int, flushInterval time.Duration) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("chatlog: open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:            db,
		writeBuffer:   make(chan Message, bufferSize),
		bufferSize:    bufferSize,
		flushInterval: flushInterval,
		stopCh:        make(chan struct{}),
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("chatlog: migrate: %w", err)
	}

	s.wg.Add(1)
	go s.flushLoop()

	return s, nil
}

// Close stops the flush loop, flushes any remaining buffered messages,
// and closes the database handle. It is safe to call more than once.
func (s *Store) Close() error {
	s.closedMu.Lock()
	if s.closed {
		s.closedMu.Unlock()
		return nil
	}
	s.closed = true
	s.closedMu.Unlock()

	close(s.writeBuffer)
	close(s.stopCh)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		logger.Log.Debug().Msg("chatlog: flush loop still running after 500ms, closing database anyway")
	}

	s.flushBuffer()
	return s.db.Close()
}

func (s *Store) flushLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			s.flushBuffer()
			return
		case <-ticker.C:
			s.flushBuffer()
		}
	}
}

func (s *Store) flushBuffer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.writeBuffer) == 0 {
		return
	}

	messages := make([]Message, 0, s.bufferSize)
drain:
	for {
		select {
		case msg, ok := <-s.writeBuffer:
			if !ok {
				break drain
			}
			messages = append(messages, msg)
		default:
			break drain
		}
	}
	if len(messages) == 0 {
		return
	}

	const query = `INSERT INTO messages (channel, user, body, message_type, timestamp, raw_line)
	               VALUES (:channel, :user, :body, :message_type, :timestamp, :raw_line)`
	if _, err := s.db.NamedExec(query, messages); err != nil {
		logger.Log.Error().Err(err).Int("count", len(messages)).Msg("chatlog: failed to flush messages")
	}
}

// Write queues msg for batched insertion. If the buffer is full it
// flushes synchronously before retrying once.
func (s *Store) Write(msg Message) error {
	s.closedMu.RLock()
	if s.closed {
		s.closedMu.RUnlock()
		return fmt.Errorf("chatlog: store is closed")
	}
	s.closedMu.RUnlock()

	select {
	case s.writeBuffer <- msg:
		return nil
	default:
		s.flushBuffer()
		select {
		case s.writeBuffer <- msg:
			return nil
		default:
			return fmt.Errorf("chatlog: write buffer full")
		}
	}
}

// Recent returns up to limit messages for channel in chronological
// order, most recent last.
func (s *Store) Recent(channel string, limit int) ([]Message, error) {
	var messages []Message
	err := s.db.Select(&messages,
		`SELECT * FROM messages WHERE channel = ? ORDER BY timestamp DESC LIMIT ?`,
		channel, limit)
	if err != nil {
		return nil, fmt.Errorf("chatlog: get messages: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
