package twitchirc

import "testing"

func TestDispatchPingRequestsPong(t *testing.T) {
	msg, err := parseLine("PING :tmi.twitch.tv")
	if err != nil {
		t.Fatalf("parseLine: %v", err)
	}
	var login Login
	var status Status

	ev, pong := dispatch(msg, &login, &status)
	if ev.Type != Ping {
		t.Errorf("Type = %v, want Ping", ev.Type)
	}
	if !pong.send {
		t.Fatal("expected pong.send to be true")
	}
	if !pong.hasParam || pong.param != "tmi.twitch.tv" {
		t.Errorf("pong = %+v", pong)
	}
}

func TestDispatchGlobalUserStatePopulatesLogin(t *testing.T) {
	msg, err := parseLine("@display-name=Foo;user-id=123 :tmi.twitch.tv GLOBALUSERSTATE")
	if err != nil {
		t.Fatalf("parseLine: %v", err)
	}
	login := Login{Nickname: "foo"}
	var status Status

	ev, pong := dispatch(msg, &login, &status)
	if ev.Type != GlobalUserState {
		t.Errorf("Type = %v, want GlobalUserState", ev.Type)
	}
	if pong.send {
		t.Error("did not expect a pong request")
	}
	if login.DisplayName != "Foo" || login.UserID != "123" {
		t.Errorf("login = %+v", login)
	}
	if !status.Has(StatusAuthenticated) {
		t.Error("expected StatusAuthenticated to be set")
	}
}

func TestDispatchPrivmsg(t *testing.T) {
	msg, err := parseLine(":bar!bar@bar.tmi.twitch.tv PRIVMSG #foo :hello there")
	if err != nil {
		t.Fatalf("parseLine: %v", err)
	}
	var login Login
	var status Status

	ev, _ := dispatch(msg, &login, &status)
	if ev.Type != Privmsg {
		t.Errorf("Type = %v, want Privmsg", ev.Type)
	}
	if ev.Origin != "bar" {
		t.Errorf("Origin = %q", ev.Origin)
	}
	if ev.Channel != "#foo" {
		t.Errorf("Channel = %q", ev.Channel)
	}
	if ev.Message != "hello there" {
		t.Errorf("Message = %q", ev.Message)
	}
}

func TestDispatchCTCPAction(t *testing.T) {
	msg, err := parseLine(":bar!bar@bar.tmi.twitch.tv PRIVMSG #foo :\x01ACTION waves\x01")
	if err != nil {
		t.Fatalf("parseLine: %v", err)
	}
	var login Login
	var status Status

	ev, pong := dispatch(msg, &login, &status)
	if ev.Type != CTCPAction {
		t.Errorf("Type = %v, want CTCPAction", ev.Type)
	}
	if ev.Message != "waves" {
		t.Errorf("Message = %q", ev.Message)
	}
	if pong.send {
		t.Error("did not expect a pong request")
	}
}

func TestDispatchReconnectHint(t *testing.T) {
	msg, err := parseLine("RECONNECT")
	if err != nil {
		t.Fatalf("parseLine: %v", err)
	}
	var login Login
	var status Status

	ev, _ := dispatch(msg, &login, &status)
	if ev.Type != Reconnect {
		t.Errorf("Type = %v, want Reconnect", ev.Type)
	}
}

func TestDispatchNamesAndEndOfNames(t *testing.T) {
	var login Login
	var status Status

	namesMsg, err := parseLine(":foo.tmi.twitch.tv 353 foo = #bar :foo bar baz")
	if err != nil {
		t.Fatalf("parseLine: %v", err)
	}
	ev, _ := dispatch(namesMsg, &login, &status)
	if ev.Type != Names || ev.Channel != "#bar" {
		t.Errorf("Names event = %+v", ev)
	}

	endMsg, err := parseLine(":foo.tmi.twitch.tv 366 foo #bar :End of /NAMES list")
	if err != nil {
		t.Fatalf("parseLine: %v", err)
	}
	ev2, _ := dispatch(endMsg, &login, &status)
	if ev2.Type != EndOfNames || ev2.Channel != "#bar" {
		t.Errorf("EndOfNames event = %+v", ev2)
	}
}

func TestCommandTypeString(t *testing.T) {
	if Privmsg.String() != "privmsg" {
		t.Errorf("Privmsg.String() = %q", Privmsg.String())
	}
	if CommandType(999).String() != "unknown" {
		t.Errorf("unknown CommandType.String() = %q", CommandType(999).String())
	}
}
