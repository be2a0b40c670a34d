// Package audit persists command outcomes.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/argtree/foundation/cmdtree/executor"
	mdwerror "github.com/msto63/argtree/foundation/core/error"
)

// Record is one stored outcome
type Record struct {
	ID         string                 `json:"id"`
	Timestamp  time.Time              `json:"timestamp"`
	Sender     string                 `json:"sender"`
	Input      string                 `json:"input"`
	Path       string                 `json:"path"`
	Kind       string                 `json:"kind"`
	Message    string                 `json:"message,omitempty"`
	DurationMS float64                `json:"duration_ms"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// Filter for querying records
type Filter struct {
	Kind   string
	Sender string
	Since  time.Time
	Limit  int
}

// Store defines the interface for outcome storage
type Store interface {
	executor.Auditor

	Query(ctx context.Context, filter Filter) ([]*Record, error)
	Stats(ctx context.Context) (map[string]int64, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// NewRecord converts an outcome
func NewRecord(o *executor.Outcome) *Record {
	id := o.ID
	if id == "" {
		id = uuid.NewString()
	}
	ts := o.Started
	if ts.IsZero() {
		ts = time.Now()
	}

	r := &Record{
		ID:         id,
		Timestamp:  ts,
		Sender:     SenderName(o.Sender),
		Input:      o.Input,
		Path:       strings.Join(o.Path, " "),
		Kind:       o.Kind(),
		DurationMS: float64(o.Duration().Microseconds()) / 1000,
	}
	if f := o.Failure; f != nil {
		r.Message = f.Message
		if len(f.Path) > 0 {
			r.Path = strings.Join(f.Path, " ")
		}
		r.Details = f.AsError().Details()
	}
	return r
}

// SenderName renders a sender for storage
func SenderName(sender any) string {
	switch s := sender.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%T", sender)
	}
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/audit.db",
	}
}

// NewSQLiteStore creates a new SQLite-based outcome store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dbError(err, "failed to create directory")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database")
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS outcomes (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		sender TEXT NOT NULL,
		input TEXT NOT NULL,
		path TEXT NOT NULL,
		kind TEXT NOT NULL,
		message TEXT,
		duration_ms REAL NOT NULL,
		details TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_outcomes_timestamp ON outcomes(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_outcomes_kind ON outcomes(kind);
	CREATE INDEX IF NOT EXISTS idx_outcomes_sender ON outcomes(sender);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores an outcome
func (s *SQLiteStore) Record(ctx context.Context, o *executor.Outcome) error {
	return s.Insert(ctx, NewRecord(o))
}

// Insert stores a record
func (s *SQLiteStore) Insert(ctx context.Context, r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var detailsJSON []byte
	if len(r.Details) > 0 {
		detailsJSON, _ = json.Marshal(r.Details)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcomes (id, timestamp, sender, input, path, kind, message, duration_ms, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Timestamp.UTC(), r.Sender, r.Input, r.Path, r.Kind, r.Message, r.DurationMS, detailsJSON)

	if err != nil {
		return dbError(err, "failed to insert outcome").WithDetail("id", r.ID)
	}
	return nil
}

// Query retrieves records, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, sender, input, path, kind, message, duration_ms, details FROM outcomes WHERE 1=1`
	var args []interface{}

	if filter.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filter.Kind)
	}
	if filter.Sender != "" {
		query += " AND sender = ?"
		args = append(args, filter.Sender)
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query outcomes")
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var r Record
		var message, detailsJSON sql.NullString

		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Sender, &r.Input, &r.Path, &r.Kind,
			&message, &r.DurationMS, &detailsJSON); err != nil {
			return nil, dbError(err, "failed to scan outcome")
		}

		r.Message = message.String
		if detailsJSON.Valid && detailsJSON.String != "" {
			json.Unmarshal([]byte(detailsJSON.String), &r.Details)
		}

		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read outcomes")
	}

	return records, nil
}

// Stats returns the number of records per kind
func (s *SQLiteStore) Stats(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM outcomes GROUP BY kind`)
	if err != nil {
		return nil, dbError(err, "failed to query stats")
	}
	defer rows.Close()

	stats := make(map[string]int64)
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, dbError(err, "failed to scan stats")
		}
		stats[kind] = count
	}
	return stats, rows.Err()
}

// Prune removes records older than the specified duration
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()

	result, err := s.db.ExecContext(ctx, `DELETE FROM outcomes WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, dbError(err, "failed to prune outcomes")
	}
	deleted, _ := result.RowsAffected()
	return deleted, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func dbError(err error, msg string) *mdwerror.Error {
	return mdwerror.Wrap(err, msg).WithCode(mdwerror.CodeDatabaseError).WithOperation("audit")
}

// MemoryStore is an in-memory implementation for testing
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make([]*Record, 0)}
}

// Record stores an outcome
func (s *MemoryStore) Record(_ context.Context, o *executor.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, NewRecord(o))
	return nil
}

// Query retrieves records, newest first
func (s *MemoryStore) Query(_ context.Context, filter Filter) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Record
	for _, r := range s.records {
		if filter.Kind != "" && r.Kind != filter.Kind {
			continue
		}
		if filter.Sender != "" && r.Sender != filter.Sender {
			continue
		}
		if !filter.Since.IsZero() && r.Timestamp.Before(filter.Since) {
			continue
		}
		result = append(result, r)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Stats returns the number of records per kind
func (s *MemoryStore) Stats(context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]int64)
	for _, r := range s.records {
		stats[r.Kind]++
	}
	return stats, nil
}

// Prune removes records older than the specified duration
func (s *MemoryStore) Prune(_ context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	kept := s.records[:0]
	var deleted int64
	for _, r := range s.records {
		if r.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return deleted, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
