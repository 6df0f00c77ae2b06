package store

import (
	"database/sql"
)

// lastMessageJoin correlates each chat with the message matching its
// last_message_time. Equal timestamps are broken deterministically by the
// highest message id so repeated calls pick the same row.
const lastMessageJoin = `
	LEFT JOIN messages m ON m.chat_jid = c.jid
		AND m.timestamp = c.last_message_time
		AND m.id = (
			SELECT MAX(m2.id) FROM messages m2
			WHERE m2.chat_jid = c.jid AND m2.timestamp = c.last_message_time
		)`

const chatWithLastMessageCols = `
	SELECT c.jid, COALESCE(c.name, ''), c.last_message_time,
		m.id, m.sender, m.content, m.is_from_me, m.media_type, m.filename
	FROM chats c` + lastMessageJoin

const chatOnlyCols = `
	SELECT c.jid, COALESCE(c.name, ''), c.last_message_time
	FROM chats c`

// ListChats returns chats ordered by last activity, newest first. When
// withLastMessage is set each row carries the chat's most recent message via
// the correlation join; otherwise the join is skipped entirely.
func (db *DB) ListChats(limit, offset int, withLastMessage bool) ([]ChatRow, error) {
	if limit <= 0 {
		limit = 20
	}
	query := chatOnlyCols
	if withLastMessage {
		query = chatWithLastMessageCols
	}
	query += `
	ORDER BY c.last_message_time DESC
	LIMIT ? OFFSET ?`

	rows, err := db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var chats []ChatRow
	for rows.Next() {
		row, err := scanChatRow(rows, withLastMessage)
		if err != nil {
			return nil, err
		}
		chats = append(chats, *row)
	}
	return chats, rows.Err()
}

// GetChat returns a single chat by JID, or (nil, nil) when it does not exist.
func (db *DB) GetChat(jid string, withLastMessage bool) (*ChatRow, error) {
	query := chatOnlyCols
	if withLastMessage {
		query = chatWithLastMessageCols
	}
	query += ` WHERE c.jid = ?`

	row, err := scanChatRow(db.QueryRow(query, jid), withLastMessage)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// GetDirectChatByPhone returns the direct chat whose jid local part equals
// the given phone number. Group chats can never match.
func (db *DB) GetDirectChatByPhone(phone string, withLastMessage bool) (*ChatRow, error) {
	return db.GetChat(DirectJID(phone), withLastMessage)
}

// ListChatsForContact returns the chats a contact participates in, either as
// the chat peer or as a message sender, ordered by last activity.
func (db *DB) ListChatsForContact(jid string, limit, offset int) ([]ChatRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT DISTINCT c.jid, COALESCE(c.name, ''), c.last_message_time
		FROM chats c
		JOIN messages msg ON msg.chat_jid = c.jid
		WHERE c.jid = ? OR msg.sender = ?
		ORDER BY c.last_message_time DESC
		LIMIT ? OFFSET ?`, jid, jid, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var chats []ChatRow
	for rows.Next() {
		row, err := scanChatRow(rows, false)
		if err != nil {
			return nil, err
		}
		chats = append(chats, *row)
	}
	return chats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChatRow(s rowScanner, withLastMessage bool) (*ChatRow, error) {
	var row ChatRow
	var lastTime sql.NullTime

	if !withLastMessage {
		if err := s.Scan(&row.JID, &row.Name, &lastTime); err != nil {
			return nil, err
		}
		row.LastMessageTime = lastTime.Time
		return &row, nil
	}

	var msgID, sender, content, mediaType, filename sql.NullString
	var fromMe sql.NullBool
	if err := s.Scan(&row.JID, &row.Name, &lastTime,
		&msgID, &sender, &content, &fromMe, &mediaType, &filename); err != nil {
		return nil, err
	}
	row.LastMessageTime = lastTime.Time

	// msgID is NULL when no message matched the chat's last_message_time.
	if msgID.Valid {
		row.LastMessage = &Message{
			ID:        msgID.String,
			ChatJID:   row.JID,
			Sender:    sender.String,
			Content:   content.String,
			Timestamp: row.LastMessageTime,
			IsFromMe:  fromMe.Bool,
			MediaType: mediaType.String,
			Filename:  filename.String,
		}
	}
	return &row, nil
}
