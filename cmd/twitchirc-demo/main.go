// Command twitchirc-demo is a small example embedding application: it
// connects to Twitch chat with the library, logs every chat line to a
// local SQLite database, and prints connection lifecycle and chat
// events to the console. None of this is part of the library itself;
// it exists to demonstrate driving PollOnce from a real main loop and
// wiring the library's synchronous callback into a small application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rundownlabs/twitchirc"
	"github.com/rundownlabs/twitchirc/internal/chatlog"
	"github.com/rundownlabs/twitchirc/internal/constants"
	"github.com/rundownlabs/twitchirc/internal/logger"
)

type demoState struct {
	store   *chatlog.Store
	channel string
	joined  bool
}

func main() {
	nick := os.Getenv("TWITCHIRC_NICK")
	token := os.Getenv("TWITCHIRC_TOKEN")
	channel := os.Getenv("TWITCHIRC_CHANNEL")
	if nick == "" || token == "" || channel == "" {
		logger.Log.Fatal().Msg("TWITCHIRC_NICK, TWITCHIRC_TOKEN and TWITCHIRC_CHANNEL must all be set")
	}
	if os.Getenv("TWITCHIRC_DEBUG") != "" {
		logger.SetLevel(zerolog.DebugLevel)
	}

	store, err := chatlog.Open("twitchirc-demo.db", 64, 2*time.Second)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to open chat log")
	}
	defer store.Close()

	state := &demoState{store: store, channel: channel}

	client := twitchirc.NewClient(onEvent, state, os.Getenv("TWITCHIRC_DEBUG") != "")

	if err := client.Connect(nick, token, constants.DefaultHost, constants.DefaultPort); err != nil {
		logger.Log.Fatal().Err(err).Msg("connect failed")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sigCh:
			logger.Log.Info().Msg("shutting down")
			client.QuitAndDisconnect()
			return
		default:
		}

		if !client.PollOnce(250) {
			if err := client.LastError(); err != nil {
				logger.Log.Error().Err(err).Msg("connection ended")
			}
			return
		}

		if client.IsLoggedIn() && !state.joined {
			if err := client.Join(channel); err != nil {
				logger.Log.Error().Err(err).Msg("join failed")
			} else {
				state.joined = true
				fmt.Printf("[system] connection.established channel=%s\n", channel)
			}
		}
	}
}

func onEvent(c *twitchirc.Client, ev twitchirc.Event, userData interface{}) {
	state := userData.(*demoState)

	switch ev.Type {
	case twitchirc.Privmsg, twitchirc.CTCPAction:
		msgType := "privmsg"
		if ev.Type == twitchirc.CTCPAction {
			msgType = "action"
		}
		if err := state.store.Write(chatlog.Message{
			Channel:     ev.Channel,
			User:        ev.Origin,
			Body:        ev.Message,
			MessageType: msgType,
			Timestamp:   time.Now(),
			RawLine:     ev.Raw,
		}); err != nil {
			logger.Log.Warn().Err(err).Msg("failed to persist message")
		}
		fmt.Printf("[chat] %s: %s\n", ev.Origin, ev.Message)
	case twitchirc.Reconnect:
		logger.Log.Warn().Msg("server requested reconnect")
	case twitchirc.InvalidCommand:
		logger.Log.Warn().Str("raw", ev.Raw).Msg("server rejected a command")
	}
}
