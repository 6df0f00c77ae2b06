package store

import "testing"

func TestJIDClassification(t *testing.T) {
	cases := []struct {
		jid     string
		isGroup bool
		direct  bool
	}{
		{"5511999@s.whatsapp.net", false, true},
		{"12036302@g.us", true, false},
		{"status@broadcast", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.jid, func(t *testing.T) {
			if got := IsGroupJID(tc.jid); got != tc.isGroup {
				t.Errorf("IsGroupJID = %v, want %v", got, tc.isGroup)
			}
			if got := IsDirectJID(tc.jid); got != tc.direct {
				t.Errorf("IsDirectJID = %v, want %v", got, tc.direct)
			}
		})
	}
}

func TestPhoneNumber(t *testing.T) {
	if got := PhoneNumber("5511999@s.whatsapp.net"); got != "5511999" {
		t.Errorf("PhoneNumber = %q, want 5511999", got)
	}
	if got := PhoneNumber("raw"); got != "raw" {
		t.Errorf("PhoneNumber of jid without separator = %q, want raw", got)
	}
}

func TestDirectJIDRoundTrip(t *testing.T) {
	jid := DirectJID("5511999")
	if !IsDirectJID(jid) || PhoneNumber(jid) != "5511999" {
		t.Errorf("DirectJID produced %q", jid)
	}
}
