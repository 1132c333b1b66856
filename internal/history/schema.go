package history

import (
	"database/sql"

	"codeberg.org/mutker/psumon/internal/errors"
)

// initSchema creates the readings table. One row per (timestamp, kind,
// channel); re-recording the same instant overwrites rather than duplicates.
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS readings (
            timestamp INTEGER NOT NULL,
            kind TEXT NOT NULL,
            channel INTEGER NOT NULL,
            value INTEGER NOT NULL,
            PRIMARY KEY (timestamp, kind, channel)
        )
    `)
	if err != nil {
		return errors.New().Wrap(ErrSchemaInitFailed, err)
	}

	return nil
}

func insertSampleSQL() string {
	return `
        INSERT INTO readings (timestamp, kind, channel, value)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(timestamp, kind, channel) DO UPDATE SET
            value = excluded.value
    `
}
