package workers

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"hookdash/internal/platform/repositories"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}

	query := `
	CREATE TABLE webhook_events (
		id TEXT PRIMARY KEY,
		type TEXT,
		status TEXT,
		amount INTEGER,
		amount_received INTEGER,
		currency TEXT,
		customer_name TEXT,
		customer_email TEXT,
		customer_phone TEXT,
		shipping_name TEXT,
		shipping_phone TEXT,
		shipping_address_line1 TEXT,
		shipping_address_line2 TEXT,
		shipping_address_city TEXT,
		shipping_address_state TEXT,
		shipping_address_country TEXT,
		shipping_address_postal_code TEXT,
		raw_payload TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE TABLE stat_snapshots (
		id TEXT PRIMARY KEY,
		window_start INTEGER NOT NULL,
		window_end INTEGER NOT NULL,
		total INTEGER NOT NULL,
		delta_pct REAL NOT NULL,
		created_at INTEGER NOT NULL,
		UNIQUE(window_start)
	);
	`
	if _, err := db.Exec(query); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}
	return db
}

func seedEvent(t *testing.T, db *sql.DB, id string, createdAt int64) {
	_, err := db.Exec(
		`INSERT INTO webhook_events (id, type, raw_payload, created_at) VALUES (?, ?, ?, ?)`,
		id, "payment_intent.succeeded", "{}", createdAt,
	)
	if err != nil {
		t.Fatalf("Seed insert failed: %v", err)
	}
}

func TestStatsWorker_RunOnce(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	seedEvent(t, db, "evt_1", now.Add(-30*time.Minute).UnixMilli())
	seedEvent(t, db, "evt_2", now.Add(-30*time.Minute).UnixMilli())
	seedEvent(t, db, "evt_3", now.Add(-5*time.Minute).UnixMilli())
	seedEvent(t, db, "evt_old", now.Add(-2*time.Hour).UnixMilli()) // outside window

	events := repositories.NewEventRepository(db)
	snapshots := repositories.NewSnapshotRepository(db)

	worker := NewStatsWorker(events, snapshots, time.Hour, func() time.Time { return now })

	if err := worker.RunOnce(); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}

	snaps, err := snapshots.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(snaps))
	}
	if snaps[0].Total != 3 {
		t.Errorf("Expected 3 events inside the window, got %d", snaps[0].Total)
	}

	// Re-running the same window replaces, not duplicates.
	if err := worker.RunOnce(); err != nil {
		t.Fatalf("Second RunOnce failed: %v", err)
	}
	snaps, _ = snapshots.List(10)
	if len(snaps) != 1 {
		t.Errorf("Expected upsert to keep 1 snapshot, got %d", len(snaps))
	}
}
