// CLAUDE:SUMMARY SQLite schema for rate limit rules, seeded with quiz API defaults.
package shield

import "database/sql"

// Schema defines the rate_limits table used by RateLimiter, seeded with
// defaults for the quiz API: generation is expensive (one model call per
// request) so it gets a much tighter window than reads.
//
// All statements are idempotent (CREATE/INSERT OR IGNORE), so Init can run
// on every startup.
const Schema = `
CREATE TABLE IF NOT EXISTS rate_limits (
    endpoint       TEXT PRIMARY KEY,
    max_requests   INTEGER NOT NULL DEFAULT 60,
    window_seconds INTEGER NOT NULL DEFAULT 60,
    enabled        INTEGER NOT NULL DEFAULT 1
);

INSERT OR IGNORE INTO rate_limits (endpoint, max_requests, window_seconds, enabled)
VALUES ('POST /api/quizzes', 5, 60, 1);
`

// Init creates and seeds the shield tables if they don't exist.
func Init(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
