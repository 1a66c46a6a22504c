package db

// Schema creates the two leave tables. Every statement is idempotent so it
// runs on each startup; there is no migration history.
const Schema = `
CREATE TABLE IF NOT EXISTS employees (
    id TEXT PRIMARY KEY,
    employee_num TEXT,
    name TEXT,
    haken TEXT,
    granted REAL,
    used REAL,
    balance REAL,
    usage_rate REAL,
    year INTEGER,
    period_history TEXT,   -- JSON array of period snapshots
    yukyu_dates TEXT,      -- JSON array of date strings
    last_updated TEXT
);

CREATE TABLE IF NOT EXISTS leave_records (
    id TEXT PRIMARY KEY,
    employee_id TEXT,      -- not a foreign key, orphans are allowed
    date TEXT,
    type TEXT,
    duration TEXT,
    note TEXT,
    status TEXT,
    created_at TEXT
);
`
