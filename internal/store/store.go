package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tubescout/internal/core"
)

// Store is the SQLite-backed durable store for video summaries and final
// reports. Both tables are upserted by their unique key, so reruns of the
// same research overwrite prior rows rather than accumulating duplicates.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the research database in dataDir and
// ensures the schema exists.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "tubescout.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	summariesTable := `
	CREATE TABLE IF NOT EXISTS summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		video_url TEXT UNIQUE NOT NULL,
		video_title TEXT NOT NULL,
		summary TEXT NOT NULL,
		topic_focus TEXT NOT NULL,
		query TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		original_length INTEGER,
		summary_length INTEGER
	);`

	reportTable := `
	CREATE TABLE IF NOT EXISTS final_report (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_name TEXT UNIQUE NOT NULL,
		report TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	tables := []string{summariesTable, reportTable}
	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertSummary inserts or replaces one summary row keyed by video URL.
func (s *Store) UpsertSummary(row core.StoredSummary) error {
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
	INSERT OR REPLACE INTO summaries
	(video_url, video_title, summary, topic_focus, query, created_at, original_length, summary_length)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		row.VideoURL,
		row.VideoTitle,
		row.Summary,
		row.TopicFocus,
		row.Query,
		createdAt,
		row.OriginalLength,
		row.SummaryLength,
	)

	return err
}

// QuerySummaries returns all rows whose stored query equals the given query
// or whose topic focus contains the given focus as a substring, most recent
// first.
func (s *Store) QuerySummaries(query, topicFocus string) ([]core.StoredSummary, error) {
	rows, err := s.db.Query(`
	SELECT video_url, video_title, summary, topic_focus, query, created_at, original_length, summary_length
	FROM summaries
	WHERE query = ? OR topic_focus LIKE ?
	ORDER BY created_at DESC`,
		query, "%"+topicFocus+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []core.StoredSummary
	for rows.Next() {
		var row core.StoredSummary
		if err := rows.Scan(
			&row.VideoURL,
			&row.VideoTitle,
			&row.Summary,
			&row.TopicFocus,
			&row.Query,
			&row.CreatedAt,
			&row.OriginalLength,
			&row.SummaryLength,
		); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

// UpsertReport inserts or replaces the final report row keyed by report name.
func (s *Store) UpsertReport(reportName, report string) error {
	_, err := s.db.Exec(`
	INSERT OR REPLACE INTO final_report (report_name, report, created_at)
	VALUES (?, ?, ?)`,
		reportName, report, time.Now().UTC())
	return err
}

// GetReport returns the stored report for a name, or nil when absent.
func (s *Store) GetReport(reportName string) (*core.StoredReport, error) {
	row := s.db.QueryRow(`
	SELECT report_name, report, created_at FROM final_report WHERE report_name = ?`,
		reportName)

	var report core.StoredReport
	err := row.Scan(&report.ReportName, &report.Report, &report.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	return &report, nil
}

// Stats represents store statistics
type Stats struct {
	SummaryCount int
	ReportCount  int
	StoreSize    int64
	LastUpdated  time.Time
}

// GetStats returns statistics about the store
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	queries := map[string]*int{
		"SELECT COUNT(*) FROM summaries":    &stats.SummaryCount,
		"SELECT COUNT(*) FROM final_report": &stats.ReportCount,
	}

	for query, target := range queries {
		if err := s.db.QueryRow(query).Scan(target); err != nil {
			return nil, fmt.Errorf("failed to get count: %w", err)
		}
	}

	if fileInfo, err := os.Stat(s.path); err == nil {
		stats.StoreSize = fileInfo.Size()
		stats.LastUpdated = fileInfo.ModTime()
	}

	return stats, nil
}

// Clear removes all stored summaries and reports
func (s *Store) Clear() error {
	tables := []string{"summaries", "final_report"}

	for _, table := range tables {
		if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear %s table: %w", table, err)
		}
	}

	// Vacuum to reclaim space
	if _, err := s.db.Exec("VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}

	return nil
}
