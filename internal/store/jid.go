package store

import "strings"

// JID suffixes as recorded by the bridge. Classification is purely a suffix
// check; there is no stored group flag.
const (
	GroupSuffix  = "@g.us"
	DirectSuffix = "@s.whatsapp.net"
)

// IsGroupJID reports whether jid identifies a group chat.
func IsGroupJID(jid string) bool {
	return strings.HasSuffix(jid, GroupSuffix)
}

// IsDirectJID reports whether jid identifies a direct (one-to-one) chat.
func IsDirectJID(jid string) bool {
	return strings.HasSuffix(jid, DirectSuffix)
}

// PhoneNumber returns the local part of a jid, which for direct chats is the
// contact's phone number.
func PhoneNumber(jid string) string {
	if i := strings.IndexByte(jid, '@'); i >= 0 {
		return jid[:i]
	}
	return jid
}

// DirectJID builds the direct-chat jid for a phone number.
func DirectJID(phone string) string {
	return phone + DirectSuffix
}
