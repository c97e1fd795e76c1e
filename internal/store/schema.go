package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS profiles (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL DEFAULT '',
    monthly_budget       TEXT NOT NULL DEFAULT '0.00',
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id                   TEXT NOT NULL,
    user_id              TEXT NOT NULL,
    item_name            TEXT NOT NULL,
    amount               TEXT NOT NULL,
    category             TEXT NOT NULL,
    expense_type         TEXT NOT NULL,
    date                 TEXT NOT NULL,
    created_at           TEXT NOT NULL,
    PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS goals (
    id                   TEXT PRIMARY KEY,
    user_id              TEXT NOT NULL,
    title                TEXT NOT NULL,
    target_amount        TEXT NOT NULL,
    current_amount       TEXT NOT NULL DEFAULT '0.00',
    deadline             TEXT,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS nudges (
    id                   TEXT PRIMARY KEY,
    user_id              TEXT NOT NULL,
    message              TEXT NOT NULL,
    category             TEXT,
    is_read              INTEGER NOT NULL DEFAULT 0,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS badges (
    id                   TEXT PRIMARY KEY,
    user_id              TEXT NOT NULL,
    badge_type           TEXT NOT NULL,
    badge_name           TEXT NOT NULL,
    description          TEXT NOT NULL DEFAULT '',
    earned_at            TEXT NOT NULL,
    UNIQUE (user_id, badge_type)
);

CREATE TABLE IF NOT EXISTS certificates (
    id                   TEXT PRIMARY KEY,
    user_id              TEXT NOT NULL,
    badge_id             TEXT NOT NULL UNIQUE REFERENCES badges(id) ON DELETE CASCADE,
    certificate_type     TEXT NOT NULL,
    issued_date          TEXT NOT NULL,
    recipient_name       TEXT NOT NULL,
    badge_name           TEXT NOT NULL,
    description          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS spending_comparisons (
    id                   TEXT PRIMARY KEY,
    user_id              TEXT NOT NULL,
    period_type          TEXT NOT NULL,
    period_start         TEXT NOT NULL,
    period_end           TEXT NOT NULL,
    total_spent          TEXT NOT NULL,
    category_breakdown   TEXT NOT NULL DEFAULT '{}',
    updated_at           TEXT NOT NULL,
    UNIQUE (user_id, period_type, period_start)
);

CREATE TABLE IF NOT EXISTS spending_insights (
    id                   TEXT PRIMARY KEY,
    user_id              TEXT NOT NULL,
    month                TEXT NOT NULL,
    total_spent          TEXT NOT NULL,
    smart_spend_score    INTEGER NOT NULL,
    insights_data        TEXT NOT NULL DEFAULT '{}',
    updated_at           TEXT NOT NULL,
    UNIQUE (user_id, month)
);

CREATE TABLE IF NOT EXISTS file_tracker (
    user_id              TEXT NOT NULL,
    file_path            TEXT NOT NULL,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    PRIMARY KEY (user_id, file_path)
);

CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses(user_id, date);
CREATE INDEX IF NOT EXISTS idx_nudges_user_created ON nudges(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);
`
