package twitchirc

import "testing"

func TestUnescapeTagValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{`a\sb`, "a b"},
		{`a\:b`, "a;b"},
		{`a\\b`, `a\b`},
		{`a\rb`, "a\rb"},
		{`a\nb`, "a\nb"},
		{`trailing\`, "trailing"},
		{`a\xb`, "axb"},
	}
	for _, tc := range cases {
		if got := unescapeTagValue(tc.in); got != tc.want {
			t.Errorf("unescapeTagValue(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGetTagValue(t *testing.T) {
	tags := Tags{
		{Key: "display-name", Value: "PogChamp"},
		{Key: "subscriber", Value: "0"},
		{Key: "badges"},
	}

	if got := GetTagValue(tags, "display-name"); got != "PogChamp" {
		t.Errorf("display-name = %q", got)
	}
	if got := GetTagValue(tags, "badges"); got != "" {
		t.Errorf("badges = %q, want empty", got)
	}
	if got := GetTagValue(tags, "missing"); got != "" {
		t.Errorf("missing = %q, want empty", got)
	}

	if _, ok := GetTag(tags, "subscriber"); !ok {
		t.Error("expected subscriber tag to be found")
	}
	if _, ok := GetTag(tags, "nope"); ok {
		t.Error("expected nope tag to be absent")
	}
}
