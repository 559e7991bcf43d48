package validation

import "testing"

func TestValidateChannelName(t *testing.T) {
	valid := []string{"#foo", "#foo_bar", "#123"}
	for _, c := range valid {
		if err := ValidateChannelName(c); err != nil {
			t.Errorf("ValidateChannelName(%q) = %v, want nil", c, err)
		}
	}

	invalid := []string{"", "foo", "&foo", "#foo bar", "#foo,bar"}
	for _, c := range invalid {
		if err := ValidateChannelName(c); err == nil {
			t.Errorf("ValidateChannelName(%q) = nil, want error", c)
		}
	}
}

func TestValidateNick(t *testing.T) {
	if err := ValidateNick("some_user_99"); err != nil {
		t.Errorf("ValidateNick valid = %v", err)
	}
	if err := ValidateNick(""); err == nil {
		t.Error("expected error for empty nick")
	}
	if err := ValidateNick("nick with space"); err == nil {
		t.Error("expected error for nick with space")
	}
}

func TestValidateServerAddress(t *testing.T) {
	if err := ValidateServerAddress("irc.chat.twitch.tv", 6667); err != nil {
		t.Errorf("valid address = %v", err)
	}
	if err := ValidateServerAddress("", 6667); err == nil {
		t.Error("expected error for empty address")
	}
	if err := ValidateServerAddress("host", 0); err == nil {
		t.Error("expected error for invalid port")
	}
	if err := ValidateServerAddress("host", 70000); err == nil {
		t.Error("expected error for out-of-range port")
	}
}
