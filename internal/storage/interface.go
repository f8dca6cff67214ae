/*
Package storage implements the optional call history store.

Every tool call can be recorded as a CallRecord in a SQLite database so the
operator can see which tools are used and how they perform. Arguments are
stored only as a hash. The store degrades gracefully: if the database cannot
be opened, recording becomes a no-op and tool calls are never affected.

The database uses modernc.org/sqlite (a pure Go, CGo-free implementation).
*/
package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/khanglvm/portfolio-mcp/internal/logging"

	_ "modernc.org/sqlite"
)

// Storage defines the call history operations.
type Storage interface {
	// Init opens the database and runs migrations.
	Init() error

	// RecordCall appends a call record.
	RecordCall(ctx context.Context, rec CallRecord) error

	// RecentCalls returns up to limit records, newest first.
	RecentCalls(ctx context.Context, limit int) ([]CallRecord, error)

	// ToolCounts aggregates calls per tool since the given time.
	ToolCounts(ctx context.Context, since time.Time) ([]ToolCount, error)

	// Cleanup removes records older than retention and returns how many
	// were deleted.
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)

	// Close closes the database connection.
	Close() error
}

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	logger   *log.Logger
	mu       sync.Mutex
	initOnce sync.Once
}

// NewStorage creates a SQLite store at dbPath. The database is not opened
// until Init. An empty path yields a disabled store whose operations are
// no-ops.
func NewStorage(dbPath string, logger *log.Logger) *SQLiteStorage {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SQLiteStorage{
		dbPath:  dbPath,
		enabled: dbPath != "",
		logger:  logger,
	}
}

// Enabled reports whether the store is usable.
func (s *SQLiteStorage) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled && s.db != nil
}

// Init initializes the database and runs migrations.
//
// If initialization fails, storage is disabled and subsequent operations
// become no-ops. The error is still returned so the caller can report it.
func (s *SQLiteStorage) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o755); err != nil {
			initErr = fmt.Errorf("failed to create history directory: %w", err)
			s.disable(initErr)
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open history database: %w", err)
			s.disable(initErr)
			return
		}
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping history database: %w", err)
			s.disable(initErr)
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run history migrations: %w", err)
			s.disable(initErr)
			return
		}

		s.logger.Debug("History database ready", "path", s.dbPath)
	})

	return initErr
}

// disable turns the store into a no-op. Callers hold s.mu.
func (s *SQLiteStorage) disable(err error) {
	s.logger.Warn("Call history disabled", "path", s.dbPath, "err", err)
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
	s.enabled = false
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close history database: %w", err)
	}

	s.db = nil
	return nil
}

// HashArgs returns a SHA256 hex digest of the canonical JSON encoding of
// args. Map keys are encoded in sorted order, so equal arguments always hash
// alike.
func HashArgs(args map[string]interface{}) string {
	data, err := json.Marshal(args)
	if err != nil {
		data = []byte(fmt.Sprint(args))
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
