package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "focusflow.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE objects (collection TEXT, id TEXT, data TEXT)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO objects VALUES ('tasks', 't1', '{"title":"Mock test"}')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM objects").Scan(&n); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("expected backup in %s, got %s", mgr.Dir(), path)
	}
	if got := countRows(t, path); got != 1 {
		t.Errorf("expected 1 row in backup, got %d", got)
	}
}

func TestCreateUniqueNames(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2026, 1, 5, 9, 30, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.keep = 2

	base := time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)
	for i := 0; i < 4; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		mgr.now = func() time.Time { return ts }
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups after rotation, got %d", len(backups))
	}
	if !backups[0].Timestamp.Equal(base.Add(3 * time.Hour)) {
		t.Errorf("expected newest backup first, got %v", backups[0].Timestamp)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec(`DELETE FROM objects`); err != nil {
		t.Fatalf("failed to delete rows: %v", err)
	}
	db.Close()

	mgr.now = func() time.Time { return time.Now().Add(time.Hour) }
	saved, err := mgr.Restore(path)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if saved == "" {
		t.Error("expected the current database to be saved before restoring")
	}
	if got := countRows(t, dbPath); got != 1 {
		t.Errorf("expected restored database to have 1 row, got %d", got)
	}
}

func TestRestoreMissingFile(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	if _, err := mgr.Restore(filepath.Join(os.TempDir(), "does-not-exist.db")); err == nil {
		t.Error("expected error for missing backup file")
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"20260105-0930", true},
		{"20260105-093015", true},
		{"20260105-093015-2", true},
		{"not-a-stamp", false},
	}
	for _, tt := range tests {
		if _, ok := parseStamp(tt.in); ok != tt.ok {
			t.Errorf("parseStamp(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}
