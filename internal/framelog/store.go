package framelog

// BeginSession records the start of a decoding session.
func (db *DB) BeginSession(sessionID, port string) error {
	_, err := db.Exec(
		`INSERT INTO sessions (session_id, port) VALUES (?, ?)`,
		sessionID, port,
	)
	return err
}

// RecordFrame appends one consumed line to the session's audit trail.
// seq is the 1-based position of the line within the session; kind is
// the trace kind (load, rotate, control, rejected) and detail its
// compact rendering.
func (db *DB) RecordFrame(sessionID string, seq int, rawLine, kind, detail string) error {
	_, err := db.Exec(
		`INSERT INTO frames (session_id, seq, raw_line, kind, detail) VALUES (?, ?, ?, ?, ?)`,
		sessionID, seq, rawLine, kind, detail,
	)
	return err
}

// EndSession finalizes the session row with its outcome and counters.
func (db *DB) EndSession(sessionID string, complete bool, linesSeen, framesOK, framesRejected int) error {
	_, err := db.Exec(
		`UPDATE sessions
		 SET ended_at = CURRENT_TIMESTAMP, complete = ?, lines_seen = ?, frames_ok = ?, frames_rejected = ?
		 WHERE session_id = ?`,
		complete, linesSeen, framesOK, framesRejected, sessionID,
	)
	return err
}

// SessionSummary reports per-kind frame counts for a session.
func (db *DB) SessionSummary(sessionID string) (map[string]int, error) {
	rows, err := db.Query(
		`SELECT kind, COUNT(*) FROM frames WHERE session_id = ? GROUP BY kind`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := make(map[string]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		summary[kind] = count
	}
	return summary, rows.Err()
}
