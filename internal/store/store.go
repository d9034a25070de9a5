// Package store implements the per-project relational persistence layer:
// projects, sessions, tool_usage, interactions, and the novel-theory /
// publication tables described by the data model. It is backed by
// modernc.org/sqlite, a pure-Go SQLite driver, so the server never needs
// cgo to persist research state.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection, matching this
// repo's existing pattern for swapping in failure-simulating drivers.
var openDB = sql.Open

// ─── Types ───────────────────────────────────────────────────────────────

// ToolUsage is one append-only record of a successful tool dispatch.
type ToolUsage struct {
	ID        int64  `json:"id"`
	ToolName  string `json:"tool_name"`
	Summary   string `json:"summary"`
	SessionID string `json:"session_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Interaction is one record of a tool call that carried semantically
// meaningful free text, enriched by the Interaction Analyzer.
type Interaction struct {
	ID                 int64  `json:"id"`
	SessionID          string `json:"session_id"`
	Type               string `json:"type"`
	Content            string `json:"content"` // JSON-encoded user inputs
	Response           string `json:"response,omitempty"`
	Domain             string `json:"domain,omitempty"`
	NovelTheoryContext string `json:"novel_theory_context,omitempty"`
	Metadata           string `json:"metadata,omitempty"` // JSON-encoded analysis blob
	CreatedAt          string `json:"created_at"`
}

// Session is a bounded span of activity within a project.
type Session struct {
	ID                string  `json:"id"`
	Type              string  `json:"type"`
	User               string  `json:"user,omitempty"`
	StartedAt         string  `json:"started_at"`
	EndedAt           *string `json:"ended_at,omitempty"`
	Status            string  `json:"status"`
	ParadigmInnovation bool   `json:"paradigm_innovation"`
}

// ParadigmComparison captures a mainstream-vs-alternative framing recorded
// against a novel-theory project.
type ParadigmComparison struct {
	ID                int64  `json:"id"`
	Mainstream        string `json:"mainstream"`
	Alternative       string `json:"alternative"`
	EqualTreatment    int    `json:"equal_treatment_score"`
	CreatedAt         string `json:"created_at"`
}

// NovelTheory is a tracked alternative-theory record for a project.
type NovelTheory struct {
	ID               int64  `json:"id"`
	Description      string `json:"description"`
	ValidationResults string `json:"validation_results,omitempty"` // JSON blob
	DevelopmentStage string `json:"development_stage"`
	CreatedAt        string `json:"created_at"`
}

// KnowledgeDocument records what has been indexed into the project's
// embedded vector collection (expansion over the base data model).
type KnowledgeDocument struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Collection string `json:"collection"`
	CreatedAt  string `json:"created_at"`
}

// ToolUsageByDate groups invocation counts by calendar date, used by
// velocity/sparkline computations.
type ToolUsageByDate struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ─── Store ───────────────────────────────────────────────────────────────

// Store wraps a single *sql.DB connection scoped to one project. Writes are
// serialized by the driver; the server additionally guards each Store with
// a mutex so tool bodies never interleave writes to the same project.
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Open creates (or reuses) the sessions.db file at dbPath and ensures its
// schema exists. Calling Open twice against the same path, or calling
// Initialize twice on the returned Store, is idempotent.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, path: dbPath}
	if err := s.Initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize idempotently creates the schema. Safe to call on an existing
// store — every statement uses CREATE TABLE/INDEX IF NOT EXISTS.
func (s *Store) Initialize() error {
	schema := `
		CREATE TABLE IF NOT EXISTS projects (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			name           TEXT NOT NULL,
			description    TEXT,
			domain         TEXT,
			methodology    TEXT,
			novel_theory   INTEGER NOT NULL DEFAULT 0,
			paradigm_focus TEXT,
			created_at     TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at     TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id                  TEXT PRIMARY KEY,
			project_id          INTEGER,
			type                TEXT NOT NULL,
			user                TEXT,
			started_at          TEXT NOT NULL DEFAULT (datetime('now')),
			ended_at            TEXT,
			status              TEXT NOT NULL DEFAULT 'active',
			paradigm_innovation INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_project ON sessions(project_id);

		CREATE TABLE IF NOT EXISTS tool_usage (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			tool_name  TEXT NOT NULL,
			summary    TEXT,
			session_id TEXT,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
		CREATE INDEX IF NOT EXISTS idx_tool_usage_name ON tool_usage(tool_name);
		CREATE INDEX IF NOT EXISTS idx_tool_usage_created ON tool_usage(created_at);

		CREATE TABLE IF NOT EXISTS interactions (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id           TEXT NOT NULL,
			type                 TEXT NOT NULL,
			content              TEXT NOT NULL,
			response             TEXT,
			domain               TEXT,
			novel_theory_context TEXT,
			metadata             TEXT,
			created_at           TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		);
		CREATE INDEX IF NOT EXISTS idx_interactions_session ON interactions(session_id);

		CREATE TABLE IF NOT EXISTS paradigm_comparisons (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id            INTEGER,
			mainstream            TEXT NOT NULL,
			alternative           TEXT NOT NULL,
			equal_treatment_score INTEGER NOT NULL DEFAULT 0,
			created_at            TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE TABLE IF NOT EXISTS novel_theories (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id         INTEGER,
			description        TEXT NOT NULL,
			validation_results TEXT,
			development_stage  TEXT NOT NULL DEFAULT 'proposed',
			created_at         TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);
		CREATE INDEX IF NOT EXISTS idx_novel_theories_project ON novel_theories(project_id);

		CREATE TABLE IF NOT EXISTS documents (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER,
			title      TEXT NOT NULL,
			kind       TEXT NOT NULL,
			path       TEXT,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);
		CREATE INDEX IF NOT EXISTS idx_documents_project ON documents(project_id);

		CREATE TABLE IF NOT EXISTS quality_checks (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER,
			kind       TEXT NOT NULL,
			passed     INTEGER NOT NULL,
			details    TEXT,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE TABLE IF NOT EXISTS knowledge_documents (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER,
			title      TEXT NOT NULL,
			collection TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Sessions ────────────────────────────────────────────────────────────

// SessionOpen creates a new active session under the caller-supplied id.
func (s *Store) SessionOpen(id, sessionType, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO sessions (id, type, user, status) VALUES (?, ?, ?, 'active')`,
		id, sessionType, user,
	)
	return err
}

// SessionClose marks a session ended at the current time.
func (s *Store) SessionClose(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`UPDATE sessions SET status = 'closed', ended_at = datetime('now') WHERE id = ?`,
		id,
	)
	return err
}

// ─── Tool usage ──────────────────────────────────────────────────────────

// RecordToolUsage appends a tool_usage row. Append-only: there is no Update
// or Delete on this table.
func (s *Store) RecordToolUsage(toolName, summary, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO tool_usage (tool_name, summary, session_id) VALUES (?, ?, ?)`,
		toolName, summary, nullIfEmpty(sessionID),
	)
	return err
}

// RecordInteraction appends an Interaction row carrying the raw user inputs
// and the analyzer's enrichment blob.
func (s *Store) RecordInteraction(in Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO interactions (session_id, type, content, response, domain, novel_theory_context, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.SessionID, in.Type, in.Content, nullIfEmpty(in.Response), nullIfEmpty(in.Domain),
		nullIfEmpty(in.NovelTheoryContext), nullIfEmpty(in.Metadata),
	)
	return err
}

// RecordKnowledgeDocument tracks that a document was indexed into the
// project's embedded vector collection.
func (s *Store) RecordKnowledgeDocument(title, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO knowledge_documents (title, collection) VALUES (?, ?)`,
		title, collection,
	)
	return err
}

// ─── Novel theory / paradigm / document tables ──────────────────────────

// RecordParadigmComparison appends a mainstream-vs-alternative comparison row.
func (s *Store) RecordParadigmComparison(mainstream, alternative string, equalTreatmentScore int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO paradigm_comparisons (mainstream, alternative, equal_treatment_score) VALUES (?, ?, ?)`,
		mainstream, alternative, equalTreatmentScore,
	)
	return err
}

// RecordNovelTheory appends a tracked novel-theory row.
func (s *Store) RecordNovelTheory(description, validationResults, developmentStage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if developmentStage == "" {
		developmentStage = "proposed"
	}
	_, err := s.db.Exec(
		`INSERT INTO novel_theories (description, validation_results, development_stage) VALUES (?, ?, ?)`,
		description, nullIfEmpty(validationResults), developmentStage,
	)
	return err
}

// RecordDocument appends a generated-document row (bibliography, LaTeX source, PDF).
func (s *Store) RecordDocument(title, kind, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO documents (title, kind, path) VALUES (?, ?, ?)`,
		title, kind, nullIfEmpty(path),
	)
	return err
}

// RecordQualityCheck appends one quality-check outcome.
func (s *Store) RecordQualityCheck(kind string, passed bool, details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO quality_checks (kind, passed, details) VALUES (?, ?, ?)`,
		kind, passed, nullIfEmpty(details),
	)
	return err
}

// ─── Query helpers used by Workflow Intelligence ────────────────────────

// DistinctToolNames returns every distinct tool name that has at least one
// tool_usage row, used to compute per-act completion sets.
func (s *Store) DistinctToolNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT tool_name FROM tool_usage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// TotalInvocations returns the total row count of tool_usage.
func (s *Store) TotalInvocations() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM tool_usage`).Scan(&n)
	return n, err
}

// RecentToolNames returns the last n tool names ordered by recency
// (most recent first).
func (s *Store) RecentToolNames(n int) ([]string, error) {
	rows, err := s.db.Query(`SELECT tool_name FROM tool_usage ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// UsageSince returns tool_usage rows with created_at >= since, ordered
// chronologically.
func (s *Store) UsageSince(since time.Time) ([]ToolUsage, error) {
	rows, err := s.db.Query(
		`SELECT id, tool_name, COALESCE(summary, ''), COALESCE(session_id, ''), created_at
		 FROM tool_usage WHERE created_at >= ? ORDER BY created_at ASC`,
		since.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ToolUsage
	for rows.Next() {
		var u ToolUsage
		if err := rows.Scan(&u.ID, &u.ToolName, &u.Summary, &u.SessionID, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// InteractionDomain is one interactions.domain value paired with its
// timestamp, in chronological order — the read path Journey uses to derive
// domain evolution from the Interaction Analyzer's stored semantic
// analyses instead of an input parameter.
type InteractionDomain struct {
	Domain    string
	CreatedAt string
}

// DomainsSince returns the non-empty interactions.domain values recorded
// since the given time, ordered chronologically, mirroring UsageSince's
// shape for the tool_usage table.
func (s *Store) DomainsSince(since time.Time) ([]InteractionDomain, error) {
	rows, err := s.db.Query(
		`SELECT domain, created_at FROM interactions
		 WHERE created_at >= ? AND domain IS NOT NULL AND domain != ''
		 ORDER BY created_at ASC`,
		since.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InteractionDomain
	for rows.Next() {
		var d InteractionDomain
		if err := rows.Scan(&d.Domain, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UsageByDate groups tool_usage counts by calendar date (UTC) over the
// trailing n days, used by velocity/sparkline and momentum computations.
func (s *Store) UsageByDate(days int) ([]ToolUsageByDate, error) {
	since := time.Now().UTC().AddDate(0, 0, -days+1).Format("2006-01-02")
	rows, err := s.db.Query(
		`SELECT date(created_at) AS d, COUNT(*) FROM tool_usage
		 WHERE date(created_at) >= ? GROUP BY d ORDER BY d ASC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ToolUsageByDate
	for rows.Next() {
		var d ToolUsageByDate
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// LastActivity returns the created_at of the most recent tool_usage row,
// or the empty string if there is none.
func (s *Store) LastActivity() (string, error) {
	var ts sql.NullString
	err := s.db.QueryRow(`SELECT MAX(created_at) FROM tool_usage`).Scan(&ts)
	if err != nil {
		return "", err
	}
	return ts.String, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
