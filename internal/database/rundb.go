package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Melvillian/navi/internal/model"
)

// FileName is the name of the database file inside the data directory.
const FileName = "navi.db"

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = errors.New("run not found")

// RunDB provides SQLite-based storage for crawl runs.
type RunDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run a crawl first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Path returns the database file path.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

func (rdb *RunDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workspace TEXT NOT NULL,
		window_ns INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		page_count INTEGER NOT NULL,
		root_count INTEGER NOT NULL,
		truncated_pages INTEGER NOT NULL,
		pages_json TEXT NOT NULL,
		digest_hash TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_workspace ON runs(workspace, window_ns);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_hash ON runs(workspace, digest_hash);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// Run is one stored crawl.
type Run struct {
	ID         int64
	Workspace  string
	Window     time.Duration
	StartedAt  time.Time
	Pages      []model.ParsedPage
	DigestHash string
}

// RootCount returns the number of changed root blocks across all pages.
func (r *Run) RootCount() int {
	n := 0
	for _, p := range r.Pages {
		n += p.RootCount()
	}
	return n
}

// TruncatedCount returns the number of pages whose root search timed out.
func (r *Run) TruncatedCount() int {
	n := 0
	for _, p := range r.Pages {
		if p.Truncated {
			n++
		}
	}
	return n
}

// RunMetadata is the summary of a run, without its pages. ListRuns returns
// it so that listing never decodes stored digests.
type RunMetadata struct {
	ID        int64
	Workspace string
	Window    time.Duration
	StartedAt time.Time

	// PageCount is the number of pages with changed blocks.
	PageCount int

	// RootCount is the number of changed root blocks over all pages.
	RootCount int

	// TruncatedPages is the number of pages whose root search hit the time
	// budget.
	TruncatedPages int

	// DigestHash is the hash of the stored pages, see DigestHash.
	DigestHash string
}

// DigestHash returns the hex encoded SHA3-256 hash of the JSON encoding of
// pages. Equal crawl results give equal hashes.
func DigestHash(pages []model.ParsedPage) (string, error) {
	data, err := marshalPages(pages)
	if err != nil {
		return "", err
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func marshalPages(pages []model.ParsedPage) ([]byte, error) {
	if pages == nil {
		pages = []model.ParsedPage{}
	}
	data, err := json.Marshal(pages)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize pages: %w", err)
	}
	return data, nil
}

// SaveRun stores a run and returns its ID. run.ID and run.DigestHash are set
// on success.
func (rdb *RunDB) SaveRun(ctx context.Context, run *Run) (int64, error) {
	data, err := marshalPages(run.Pages)
	if err != nil {
		return 0, err
	}
	sum := sha3.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	query := `
	INSERT INTO runs (workspace, window_ns, started_at, page_count, root_count, truncated_pages, pages_json, digest_hash)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := rdb.db.ExecContext(ctx, query,
		run.Workspace,
		int64(run.Window),
		run.StartedAt.UTC().Format(storedTimeLayout),
		len(run.Pages),
		run.RootCount(),
		run.TruncatedCount(),
		string(data),
		hash,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	run.ID = id
	run.DigestHash = hash
	return id, nil
}

// GetRun retrieves a run by its ID. It returns ErrNotFound when no run has
// that ID.
func (rdb *RunDB) GetRun(ctx context.Context, id int64) (*Run, error) {
	query := `
	SELECT id, workspace, window_ns, started_at, pages_json, digest_hash
	FROM runs
	WHERE id = ?
	`
	return rdb.scanRun(rdb.db.QueryRowContext(ctx, query, id))
}

// LatestRun retrieves the most recent run for a workspace and window, or
// ErrNotFound.
func (rdb *RunDB) LatestRun(ctx context.Context, workspace string, window time.Duration) (*Run, error) {
	query := `
	SELECT id, workspace, window_ns, started_at, pages_json, digest_hash
	FROM runs
	WHERE workspace = ? AND window_ns = ?
	ORDER BY started_at DESC, id DESC
	LIMIT 1
	`
	return rdb.scanRun(rdb.db.QueryRowContext(ctx, query, workspace, int64(window)))
}

func (rdb *RunDB) scanRun(row *sql.Row) (*Run, error) {
	var (
		run       Run
		windowNS  int64
		startedAt string
		pagesJSON string
	)

	err := row.Scan(&run.ID, &run.Workspace, &windowNS, &startedAt, &pagesJSON, &run.DigestHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.Window = time.Duration(windowNS)
	run.StartedAt = parseTimestamp(startedAt)
	if err := json.Unmarshal([]byte(pagesJSON), &run.Pages); err != nil {
		return nil, fmt.Errorf("failed to parse run %d: %w", run.ID, err)
	}
	return &run, nil
}

// HasDigest reports whether a run with the same digest hash was already
// stored for the workspace.
func (rdb *RunDB) HasDigest(ctx context.Context, workspace, hash string) (bool, error) {
	query := `SELECT COUNT(*) FROM runs WHERE workspace = ? AND digest_hash = ?`

	var count int
	if err := rdb.db.QueryRowContext(ctx, query, workspace, hash).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check digest: %w", err)
	}
	return count > 0, nil
}

// ListRuns returns run metadata, most recent first. An empty workspace lists
// every workspace; limit <= 0 means no limit.
func (rdb *RunDB) ListRuns(ctx context.Context, workspace string, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, workspace, window_ns, started_at, page_count, root_count, truncated_pages, digest_hash
	FROM runs
	WHERE 1=1
	`
	args := make([]any, 0, 2)

	if workspace != "" {
		query += " AND workspace = ?"
		args = append(args, workspace)
	}
	query += " ORDER BY started_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var (
			meta      RunMetadata
			windowNS  int64
			startedAt string
		)
		if err := rows.Scan(
			&meta.ID,
			&meta.Workspace,
			&windowNS,
			&startedAt,
			&meta.PageCount,
			&meta.RootCount,
			&meta.TruncatedPages,
			&meta.DigestHash,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		meta.Window = time.Duration(windowNS)
		meta.StartedAt = parseTimestamp(startedAt)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// storedTimeLayout is RFC 3339 with a fixed nine digit fraction. Stored
// values are always UTC, so their text order is their time order.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// timestampFormats contains the timestamp formats that may be stored.
// More specific formats come first.
var timestampFormats = []string{
	storedTimeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
