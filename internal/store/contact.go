package store

// searchContactsLimit caps the contact directory derived from direct chats.
const searchContactsLimit = 50

// SearchContacts derives contacts from direct chats. An empty query returns
// all direct contacts; otherwise name and jid are matched case-insensitively
// as substrings. Group chats never appear.
func (db *DB) SearchContacts(query string) ([]Contact, error) {
	q := `
		SELECT DISTINCT jid, COALESCE(name, '')
		FROM chats
		WHERE jid LIKE '%' || ?`
	args := []any{DirectSuffix}
	if query != "" {
		q += `
		AND (LOWER(COALESCE(name, '')) LIKE LOWER(?) OR jid LIKE ?)`
		pattern := "%" + query + "%"
		args = append(args, pattern, pattern)
	}
	q += `
		ORDER BY name
		LIMIT ?`
	args = append(args, searchContactsLimit)

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.JID, &c.Name); err != nil {
			return nil, err
		}
		c.PhoneNumber = PhoneNumber(c.JID)
		if c.Name == "" {
			c.Name = c.PhoneNumber
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
