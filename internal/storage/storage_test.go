/*
Package storage provides tests for the call history store.
*/
package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s := NewStorage(filepath.Join(t.TempDir(), "history", "test.db"), nil)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestInit verifies database initialization and schema creation.
func TestInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	s := NewStorage(dbPath, nil)

	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file not created")
	}
	if !s.Enabled() {
		t.Error("Expected storage to be enabled after Init")
	}

	// Init is idempotent
	if err := s.Init(); err != nil {
		t.Errorf("second Init failed: %v", err)
	}
}

// TestMigrationsReopen verifies an existing database is reused.
func TestMigrationsReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	first := NewStorage(dbPath, nil)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	first.RecordCall(ctx, CallRecord{Tool: "get_project", OK: true})
	first.Close()

	second := NewStorage(dbPath, nil)
	if err := second.Init(); err != nil {
		t.Fatalf("reopen Init failed: %v", err)
	}
	defer second.Close()

	records, err := second.RecentCalls(ctx, 10)
	if err != nil {
		t.Fatalf("RecentCalls failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record after reopen, got %d", len(records))
	}
}

// TestRecordCall verifies recording and reading back calls.
func TestRecordCall(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Minute)

	calls := []CallRecord{
		{Tool: "query_projects", ArgsHash: HashArgs(map[string]interface{}{"query": "go"}), Transport: "stdio", Duration: 2 * time.Millisecond, OK: true, Timestamp: base},
		{Tool: "bogus_tool", Transport: "http", OK: false, Error: "Unknown tool: bogus_tool", Timestamp: base.Add(time.Second)},
		{Tool: "query_projects", Transport: "cli", Duration: 4 * time.Millisecond, OK: true, Timestamp: base.Add(2 * time.Second)},
	}
	for _, c := range calls {
		if err := s.RecordCall(ctx, c); err != nil {
			t.Fatalf("RecordCall failed: %v", err)
		}
	}

	records, err := s.RecentCalls(ctx, 2)
	if err != nil {
		t.Fatalf("RecentCalls failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Transport != "cli" {
		t.Errorf("Expected newest record first, got transport %q", records[0].Transport)
	}
	if records[1].OK || records[1].Error != "Unknown tool: bogus_tool" {
		t.Errorf("Expected failed record with error, got %+v", records[1])
	}
	if records[0].ID == "" {
		t.Error("Expected generated record ID")
	}
	if records[0].Duration != 4*time.Millisecond {
		t.Errorf("Expected duration 4ms, got %v", records[0].Duration)
	}
	if !records[0].Timestamp.Equal(base.Add(2 * time.Second)) {
		t.Errorf("Timestamp not preserved: %v", records[0].Timestamp)
	}
}

// TestToolCounts verifies per-tool aggregation.
func TestToolCounts(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Now()

	s.RecordCall(ctx, CallRecord{Tool: "search_all", OK: true, Duration: 10 * time.Millisecond, Timestamp: now})
	s.RecordCall(ctx, CallRecord{Tool: "search_all", OK: false, Duration: 20 * time.Millisecond, Timestamp: now})
	s.RecordCall(ctx, CallRecord{Tool: "get_blog", OK: true, Timestamp: now})
	s.RecordCall(ctx, CallRecord{Tool: "get_blog", OK: true, Timestamp: now.Add(-48 * time.Hour)})

	counts, err := s.ToolCounts(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("ToolCounts failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("Expected 2 tools, got %d", len(counts))
	}
	if counts[0].Tool != "search_all" || counts[0].Calls != 2 || counts[0].Failures != 1 {
		t.Errorf("Unexpected search_all count: %+v", counts[0])
	}
	if counts[0].AvgDuration != 15*time.Millisecond {
		t.Errorf("Expected 15ms average, got %v", counts[0].AvgDuration)
	}
	if counts[1].Tool != "get_blog" || counts[1].Calls != 1 {
		t.Errorf("Unexpected get_blog count: %+v", counts[1])
	}
}

// TestCleanup verifies retention pruning.
func TestCleanup(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	s.RecordCall(ctx, CallRecord{Tool: "old", OK: true, Timestamp: time.Now().Add(-72 * time.Hour)})
	s.RecordCall(ctx, CallRecord{Tool: "new", OK: true})

	removed, err := s.Cleanup(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 removed record, got %d", removed)
	}

	records, _ := s.RecentCalls(ctx, 10)
	if len(records) != 1 || records[0].Tool != "new" {
		t.Errorf("Expected only the new record to remain, got %+v", records)
	}
}

// TestConcurrentRecordCall verifies concurrent writers do not fail.
func TestConcurrentRecordCall(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordCall(ctx, CallRecord{Tool: "list_projects", OK: true})
		}()
	}
	wg.Wait()

	counts, err := s.ToolCounts(ctx, time.Time{})
	if err != nil {
		t.Fatalf("ToolCounts failed: %v", err)
	}
	if len(counts) != 1 || counts[0].Calls != 20 {
		t.Errorf("Expected 20 recorded calls, got %+v", counts)
	}
}

// TestHashArgs verifies argument hashing consistency.
func TestHashArgs(t *testing.T) {
	a := map[string]interface{}{"query": "go", "limit": 5}
	b := map[string]interface{}{"limit": 5, "query": "go"}

	if HashArgs(a) != HashArgs(b) {
		t.Error("HashArgs depends on map order")
	}
	if HashArgs(a) == HashArgs(map[string]interface{}{"query": "rust"}) {
		t.Error("HashArgs collided for different arguments")
	}
	if len(HashArgs(a)) != 64 { // SHA256 hex = 64 chars
		t.Errorf("Expected hash length 64, got %d", len(HashArgs(a)))
	}
}

// TestGracefulDegradation verifies behavior when the DB is unavailable.
func TestGracefulDegradation(t *testing.T) {
	ctx := context.Background()

	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStorage(filepath.Join(blocker, "sub", "test.db"), nil)

	if err := s.Init(); err == nil {
		t.Error("Expected Init to report the failure")
	}
	if s.Enabled() {
		t.Error("Expected storage to be disabled")
	}

	if err := s.RecordCall(ctx, CallRecord{Tool: "test"}); err != nil {
		t.Errorf("RecordCall should return nil on disabled storage, got: %v", err)
	}
	records, err := s.RecentCalls(ctx, 5)
	if err != nil || len(records) != 0 {
		t.Errorf("Expected empty history on disabled storage, got %d records, err %v", len(records), err)
	}
	if _, err := s.Cleanup(ctx, time.Hour); err != nil {
		t.Errorf("Cleanup should not error on disabled storage, got: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close should not error on disabled storage, got: %v", err)
	}
}

// TestDisabledWithoutPath verifies an empty path disables the store.
func TestDisabledWithoutPath(t *testing.T) {
	s := NewStorage("", nil)
	if err := s.Init(); err != nil {
		t.Errorf("Init on disabled store returned %v", err)
	}
	if s.Enabled() {
		t.Error("Expected disabled store")
	}
}
