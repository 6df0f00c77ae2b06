package store

import (
	"database/sql"
	"strings"
	"time"
)

const messageCols = `
	SELECT id, chat_jid, sender, COALESCE(content, ''), timestamp, is_from_me,
		COALESCE(media_type, ''), COALESCE(filename, '')
	FROM messages`

// ListMessagesForChat returns one page of a chat's messages. Page boundaries
// are computed over timestamp descending (page 0 holds the most recent
// messages) but each page is returned oldest-first.
func (db *DB) ListMessagesForChat(chatJID string, limit, offset int) ([]Message, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(messageCols+`
		WHERE chat_jid = ?
		ORDER BY timestamp DESC
		LIMIT ? OFFSET ?`, chatJID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	msgs, err := collectMessages(rows)
	if err != nil {
		return nil, err
	}
	reverseMessages(msgs)
	return msgs, nil
}

// ListMessages returns one page of messages matching the filter, paginated
// like ListMessagesForChat: descending page boundary, oldest-first page.
func (db *DB) ListMessages(f MessageFilter) ([]Message, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	query := messageCols + ` WHERE 1=1`
	var args []any
	if f.ChatJID != "" {
		query += ` AND chat_jid = ?`
		args = append(args, f.ChatJID)
	}
	if f.Sender != "" {
		query += ` AND sender = ?`
		args = append(args, f.Sender)
	}
	if !f.After.IsZero() {
		query += ` AND timestamp > ?`
		args = append(args, f.After)
	}
	if !f.Before.IsZero() {
		query += ` AND timestamp < ?`
		args = append(args, f.Before)
	}
	if f.Query != "" {
		query += ` AND LOWER(content) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Query)+"%")
	}
	query += `
		ORDER BY timestamp DESC
		LIMIT ? OFFSET ?`
	args = append(args, limit, f.Offset)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	msgs, err := collectMessages(rows)
	if err != nil {
		return nil, err
	}
	reverseMessages(msgs)
	return msgs, nil
}

// GetMessageByID returns a message by id, or (nil, nil) when it does not
// exist. IDs are only guaranteed unique within a chat; when reused across
// chats the most recently stored row wins.
func (db *DB) GetMessageByID(id string) (*Message, error) {
	var m Message
	err := scanMessage(db.QueryRow(messageCols+`
		WHERE id = ?
		ORDER BY timestamp DESC
		LIMIT 1`, id), &m)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// LastMessageForSender returns the most recent message sent by the contact,
// or (nil, nil) when the contact never sent one.
func (db *DB) LastMessageForSender(jid string) (*Message, error) {
	var m Message
	err := scanMessage(db.QueryRow(messageCols+`
		WHERE sender = ?
		ORDER BY timestamp DESC
		LIMIT 1`, jid), &m)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMessagesBefore returns up to n messages of a chat strictly earlier
// than ts, in chronological order.
func (db *DB) ListMessagesBefore(chatJID string, ts time.Time, n int) ([]Message, error) {
	rows, err := db.Query(messageCols+`
		WHERE chat_jid = ? AND timestamp < ?
		ORDER BY timestamp DESC
		LIMIT ?`, chatJID, ts, n)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	msgs, err := collectMessages(rows)
	if err != nil {
		return nil, err
	}
	reverseMessages(msgs)
	return msgs, nil
}

// ListMessagesAfter returns up to n messages of a chat strictly later than
// ts, in chronological order.
func (db *DB) ListMessagesAfter(chatJID string, ts time.Time, n int) ([]Message, error) {
	rows, err := db.Query(messageCols+`
		WHERE chat_jid = ? AND timestamp > ?
		ORDER BY timestamp ASC
		LIMIT ?`, chatJID, ts, n)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectMessages(rows)
}

func collectMessages(rows *sql.Rows) ([]Message, error) {
	var msgs []Message
	for rows.Next() {
		var m Message
		if err := scanMessage(rows, &m); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func scanMessage(s rowScanner, m *Message) error {
	return s.Scan(&m.ID, &m.ChatJID, &m.Sender, &m.Content, &m.Timestamp,
		&m.IsFromMe, &m.MediaType, &m.Filename)
}

func reverseMessages(msgs []Message) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}
