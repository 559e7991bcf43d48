package twitchirc

// Login is owned by the connection and reset on every Disconnect.
// Password is kept unexported so callers of Client.Login cannot read it
// directly. fmt's %v/%+v verbs still print unexported fields, so it does
// appear when a Login is formatted whole; the client's own debug log of
// the PASS line masks it with logger.Redact.
type Login struct {
	Nickname    string
	password    string
	DisplayName string
	UserID      string
}

func newLogin(nick, pass string) Login {
	return Login{Nickname: nick, password: pass}
}
