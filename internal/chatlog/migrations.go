package chatlog

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the single messages table this package needs. Unlike
// the teacher's multi-network schema, there is nothing here to evolve
// across versions yet, so this is a pair of idempotent statements (the
// table and its index) rather than a chain of migrations.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(createMessagesTable); err != nil {
		return fmt.Errorf("chatlog: create messages table: %w", err)
	}
	if _, err := db.Exec(createTimestampIndex); err != nil {
		return fmt.Errorf("chatlog: create timestamp index: %w", err)
	}
	return nil
}

const createMessagesTable = `
CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    channel TEXT NOT NULL,
    user TEXT NOT NULL,
    body TEXT NOT NULL,
    message_type TEXT NOT NULL DEFAULT 'privmsg',
    timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    raw_line TEXT
);
`

const createTimestampIndex = `
CREATE INDEX IF NOT EXISTS idx_messages_channel_time ON messages(channel, timestamp);
`
