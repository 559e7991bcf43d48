package twitchirc

// CommandType is the closed taxonomy of semantic event types the
// dispatcher assigns to an inbound message.
type CommandType int

const (
	Unknown CommandType = iota
	Cap
	Authenticated
	GlobalUserState
	Join
	Part
	ClearChat
	RoomState
	UserState
	Moderator
	HostTarget
	Privmsg
	ClearMsg
	Notice
	UserNotice
	Whisper
	Ping
	Names
	EndOfNames
	Reconnect
	InvalidCommand
	CTCPAction
)

func (t CommandType) String() string {
	switch t {
	case Cap:
		return "cap"
	case Authenticated:
		return "authenticated"
	case GlobalUserState:
		return "globaluserstate"
	case Join:
		return "join"
	case Part:
		return "part"
	case ClearChat:
		return "clearchat"
	case RoomState:
		return "roomstate"
	case UserState:
		return "userstate"
	case Moderator:
		return "moderator"
	case HostTarget:
		return "hosttarget"
	case Privmsg:
		return "privmsg"
	case ClearMsg:
		return "clearmsg"
	case Notice:
		return "notice"
	case UserNotice:
		return "usernotice"
	case Whisper:
		return "whisper"
	case Ping:
		return "ping"
	case Names:
		return "names"
	case EndOfNames:
		return "end_of_names"
	case Reconnect:
		return "reconnect"
	case InvalidCommand:
		return "invalid_command"
	case CTCPAction:
		return "ctcp_action"
	default:
		return "unknown"
	}
}

// Event is the fully interpreted inbound message handed to the user
// callback. Raw and the syntactic fields are populated directly from
// the RawMessage; Type/Origin/Channel/Target/Message are derived by
// dispatch.
type Event struct {
	Raw         string
	Prefix      string
	Command     string
	CommandArgs []string
	Parameter   string
	CTCP        string
	Tags        Tags

	Type    CommandType
	Origin  string
	Channel string
	Target  string
	Message string
}

// dispatch classifies a parsed RawMessage into a semantic Event. It
// also mutates login (GLOBALUSERSTATE caches display-name/user-id) and
// status (001/GLOBALUSERSTATE set StatusAuthenticated), and returns
// whether the caller must send an auto-PONG before returning the event
// to the user callback.
func dispatch(msg RawMessage, login *Login, status *Status) (Event, pongRequest) {
	ev := Event{
		Raw:         msg.Raw,
		Prefix:      msg.Prefix,
		Command:     msg.Command,
		CommandArgs: msg.Args,
		Parameter:   msg.Parameter,
		CTCP:        msg.CTCP,
		Tags:        msg.Tags,
		Origin:      originFromPrefix(msg.Prefix),
	}

	var pong pongRequest

	if msg.CTCP != "" {
		if msg.CTCP == "ACTION" {
			ev.Type = CTCPAction
			ev.Channel = argAt(msg.Args, 0)
			ev.Message = msg.Parameter
		} else {
			ev.Type = Unknown
		}
		return ev, pong
	}

	switch msg.Command {
	case "CAP":
		ev.Type = Cap
	case "001":
		ev.Type = Authenticated
		status.set(StatusAuthenticated)
	case "GLOBALUSERSTATE":
		ev.Type = GlobalUserState
		status.set(StatusAuthenticated)
		login.DisplayName = GetTagValue(msg.Tags, "display-name")
		login.UserID = GetTagValue(msg.Tags, "user-id")
	case "JOIN":
		ev.Type = Join
		ev.Channel = argAt(msg.Args, 0)
	case "PART":
		ev.Type = Part
		ev.Channel = argAt(msg.Args, 0)
	case "CLEARCHAT":
		ev.Type = ClearChat
		ev.Channel = argAt(msg.Args, 0)
	case "ROOMSTATE":
		ev.Type = RoomState
		ev.Channel = argAt(msg.Args, 0)
	case "USERSTATE":
		ev.Type = UserState
		ev.Channel = argAt(msg.Args, 0)
	case "MODE":
		ev.Type = Moderator
		ev.Channel = argAt(msg.Args, 0)
	case "HOSTTARGET":
		ev.Type = HostTarget
		ev.Target = firstToken(msg.Parameter)
	case "PRIVMSG":
		ev.Type = Privmsg
		ev.Channel = argAt(msg.Args, 0)
		ev.Message = msg.Parameter
	case "CLEARMSG":
		ev.Type = ClearMsg
		ev.Channel = argAt(msg.Args, 0)
		ev.Message = msg.Parameter
	case "NOTICE":
		ev.Type = Notice
		ev.Channel = argAt(msg.Args, 0)
		ev.Message = msg.Parameter
	case "USERNOTICE":
		ev.Type = UserNotice
		ev.Channel = argAt(msg.Args, 0)
		ev.Message = msg.Parameter
	case "WHISPER":
		ev.Type = Whisper
		ev.Channel = argAt(msg.Args, 0)
		ev.Message = msg.Parameter
	case "PING":
		ev.Type = Ping
		pong.send = true
		if len(msg.Args) > 0 {
			pong.param = msg.Args[0]
			pong.hasParam = true
		} else if msg.HasParameter {
			pong.param = msg.Parameter
			pong.hasParam = true
		}
	case "353":
		ev.Type = Names
		ev.Channel = argAt(msg.Args, 2)
	case "366":
		ev.Type = EndOfNames
		ev.Channel = argAt(msg.Args, 1)
	case "421":
		ev.Type = InvalidCommand
	case "RECONNECT":
		ev.Type = Reconnect
	default:
		ev.Type = Unknown
	}

	return ev, pong
}

// pongRequest records whether dispatch determined an auto-PONG is due,
// and with what parameter.
type pongRequest struct {
	send     bool
	hasParam bool
	param    string
}

func argAt(args []string, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

func firstToken(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return s[:i]
		}
	}
	return s
}
