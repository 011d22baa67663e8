// Package store persists brand profiles, content requests, artifact chains,
// post history and user feedback in an embedded sqlite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"postsmith/internal"
	"postsmith/internal/brand"
	"postsmith/internal/pipeline"
)

const (
	// historyLimit caps posts_history; oldest rows beyond it are dropped.
	historyLimit = 200
	// feedbackLimit caps each feedback kind independently.
	feedbackLimit = 50
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS brand_profiles (
		name TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS content_requests (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		platform TEXT NOT NULL,
		goal TEXT,
		style TEXT,
		language TEXT,
		profile TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- draft_artifacts stores the full revision chain of a completed run,
	-- position 0 being the original brief.
	CREATE TABLE IF NOT EXISTS draft_artifacts (
		id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		stage TEXT NOT NULL,
		content TEXT NOT NULL,
		critique_score REAL,
		critique_pass BOOLEAN,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (request_id) REFERENCES content_requests(id)
	);

	CREATE TABLE IF NOT EXISTS posts_history (
		id TEXT PRIMARY KEY,
		platform TEXT NOT NULL,
		topic TEXT NOT NULL,
		content TEXT NOT NULL,
		score REAL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- feedback holds user reactions used to build the learning context:
	-- kind is one of positive, negative, adjustment.
	CREATE TABLE IF NOT EXISTS feedback (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		platform TEXT,
		preview TEXT NOT NULL,
		reason TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_artifacts_request ON draft_artifacts(request_id, position);
	CREATE INDEX IF NOT EXISTS idx_history_platform ON posts_history(platform, created_at);
	CREATE INDEX IF NOT EXISTS idx_feedback_kind ON feedback(kind, platform, created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// --- brand profiles ---

// SaveProfile upserts a profile document.
func (s *Store) SaveProfile(ctx context.Context, name string, p *brand.Profile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO brand_profiles (name, document, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		name, string(doc), time.Now())
	return err
}

// LoadProfile returns the named profile, creating and persisting the default
// one on first use. Unknown fields in an old document fall back to defaults,
// so schema additions never lose data on load.
func (s *Store) LoadProfile(ctx context.Context, name string) (*brand.Profile, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM brand_profiles WHERE name = ?`, name).Scan(&doc)
	if err == sql.ErrNoRows {
		p := brand.Default()
		p.Name = name
		if err := s.SaveProfile(ctx, name, p); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err != nil {
		return nil, err
	}

	p := brand.Default()
	if err := json.Unmarshal([]byte(doc), p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", name, err)
	}
	return p, nil
}

// ListProfiles returns all stored profile names.
func (s *Store) ListProfiles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM brand_profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// --- runs ---

// SaveRequest records a submitted content request.
func (s *Store) SaveRequest(ctx context.Context, req internal.ContentRequest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO content_requests (id, topic, platform, goal, style, language, profile, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.Topic, req.Platform, req.Goal, req.Style, req.Language, req.Profile, req.Timestamp)
	return err
}

// SaveArtifacts persists a completed run's full revision chain, brief first.
func (s *Store) SaveArtifacts(ctx context.Context, requestID string, final *pipeline.DraftArtifact) error {
	chain := final.Chain()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := len(chain) - 1; i >= 0; i-- {
		a := chain[i]
		position := len(chain) - 1 - i

		var score sql.NullFloat64
		var pass sql.NullBool
		if a.Critique != nil {
			score = sql.NullFloat64{Float64: a.Critique.Score, Valid: true}
			pass = sql.NullBool{Bool: a.Critique.Pass, Valid: true}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO draft_artifacts (id, request_id, position, stage, content, critique_score, critique_pass, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, requestID, position, a.Stage, a.Content, score, pass, a.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ArtifactRow is one persisted chain entry.
type ArtifactRow struct {
	ID            string
	Position      int
	Stage         string
	Content       string
	CritiqueScore sql.NullFloat64
	CritiquePass  sql.NullBool
	CreatedAt     time.Time
}

// GetArtifacts returns a run's chain ordered brief first.
func (s *Store) GetArtifacts(ctx context.Context, requestID string) ([]ArtifactRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, position, stage, content, critique_score, critique_pass, created_at
		 FROM draft_artifacts WHERE request_id = ? ORDER BY position`,
		requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArtifactRow
	for rows.Next() {
		var r ArtifactRow
		if err := rows.Scan(&r.ID, &r.Position, &r.Stage, &r.Content, &r.CritiqueScore, &r.CritiquePass, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// --- posts history ---

// HistoryEntry is a row from the posts_history table.
type HistoryEntry struct {
	ID        string
	Platform  string
	Topic     string
	Content   string
	Score     sql.NullFloat64
	CreatedAt time.Time
}

// AddHistory records a generated post and trims the table to historyLimit.
func (s *Store) AddHistory(ctx context.Context, platform, topic, content string, score float64) (string, error) {
	id := fmt.Sprintf("post_%d", time.Now().UnixNano())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts_history (id, platform, topic, content, score, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, platform, normalizeText(topic), content, score, time.Now())
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM posts_history WHERE id NOT IN (
			SELECT id FROM posts_history ORDER BY created_at DESC, id DESC LIMIT ?)`,
		historyLimit)
	return id, err
}

// RecentHistory returns the newest posts, optionally filtered by platform.
func (s *Store) RecentHistory(ctx context.Context, limit int, platform string) ([]HistoryEntry, error) {
	query := `SELECT id, platform, topic, content, score, created_at FROM posts_history`
	var args []interface{}
	if platform != "" {
		query += ` WHERE platform = ?`
		args = append(args, platform)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Platform, &e.Topic, &e.Content, &e.Score, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// HistoryStats summarises the posts history.
type HistoryStats struct {
	TotalPosts   int
	AverageScore float64
	PerPlatform  map[string]int
}

func (s *Store) Stats(ctx context.Context) (*HistoryStats, error) {
	stats := &HistoryStats{PerPlatform: make(map[string]int)}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(score), 0) FROM posts_history`).Scan(&stats.TotalPosts, &stats.AverageScore)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT platform, COUNT(*) FROM posts_history GROUP BY platform`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var platform string
		var count int
		if err := rows.Scan(&platform, &count); err != nil {
			return nil, err
		}
		stats.PerPlatform[platform] = count
	}
	return stats, rows.Err()
}

// --- feedback ---

// FeedbackKind classifies user feedback.
type FeedbackKind string

const (
	FeedbackPositive   FeedbackKind = "positive"
	FeedbackNegative   FeedbackKind = "negative"
	FeedbackAdjustment FeedbackKind = "adjustment"
)

// AddFeedback records one reaction and trims the kind to feedbackLimit.
// For adjustments, preview carries the adjustment type ("shorter",
// "less_emoji") and reason the optional details.
func (s *Store) AddFeedback(ctx context.Context, kind FeedbackKind, platform, preview, reason string) error {
	id := fmt.Sprintf("fb_%d", time.Now().UnixNano())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, kind, platform, preview, reason, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, kind, platform, snippet(preview, 200), reason, time.Now())
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM feedback WHERE kind = ? AND id NOT IN (
			SELECT id FROM feedback WHERE kind = ? ORDER BY created_at DESC, id DESC LIMIT ?)`,
		kind, kind, feedbackLimit)
	return err
}

// LearningContext builds the prompt block teaching the copywriter what the
// user liked, disliked, and keeps asking to change. Empty when no feedback
// exists for the platform.
func (s *Store) LearningContext(ctx context.Context, platform string) (string, error) {
	positive, err := s.recentFeedback(ctx, FeedbackPositive, platform, 3)
	if err != nil {
		return "", err
	}
	negative, err := s.recentFeedback(ctx, FeedbackNegative, platform, 3)
	if err != nil {
		return "", err
	}
	adjustments, err := s.recentFeedback(ctx, FeedbackAdjustment, "", 10)
	if err != nil {
		return "", err
	}

	var parts []string

	if len(positive) > 0 {
		parts = append(parts, "=== GOOD STYLE EXAMPLES ===")
		for _, p := range positive {
			parts = append(parts, "+ "+p.preview)
		}
	}

	if len(negative) > 0 {
		parts = append(parts, "\n=== WHAT TO AVOID ===")
		for _, n := range negative {
			line := "- " + n.preview
			if n.reason != "" {
				line += " (reason: " + n.reason + ")"
			}
			parts = append(parts, line)
		}
	}

	// Only adjustments the user repeated count as a preference.
	counts := make(map[string]int)
	for _, a := range adjustments {
		counts[a.preview]++
	}
	var prefs []string
	for adj, n := range counts {
		if n >= 2 {
			prefs = append(prefs, "- Prefers: "+adj)
		}
	}
	if len(prefs) > 0 {
		parts = append(parts, "\n=== USER PREFERENCES ===")
		parts = append(parts, prefs...)
	}

	return strings.Join(parts, "\n"), nil
}

type feedbackRow struct {
	preview string
	reason  string
}

func (s *Store) recentFeedback(ctx context.Context, kind FeedbackKind, platform string, limit int) ([]feedbackRow, error) {
	query := `SELECT preview, COALESCE(reason, '') FROM feedback WHERE kind = ?`
	args := []interface{}{kind}
	if platform != "" {
		query += ` AND platform = ?`
		args = append(args, platform)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []feedbackRow
	for rows.Next() {
		var r feedbackRow
		if err := rows.Scan(&r.preview, &r.reason); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// normalizeText trims whitespace and applies Unicode NFC normalization for
// consistent comparison of stored keys.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

func snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
