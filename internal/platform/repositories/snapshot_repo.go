package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"hookdash/internal/platform/models"
)

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Upsert writes one aggregation checkpoint keyed on the window start,
// replacing a prior run over the same window.
func (r *SnapshotRepository) Upsert(s *models.StatSnapshot) error {
	query := `
		INSERT INTO stat_snapshots (id, window_start, window_end, total, delta_pct, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(window_start) DO UPDATE SET
			window_end=excluded.window_end,
			total=excluded.total,
			delta_pct=excluded.delta_pct
	`
	id := fmt.Sprintf("snap_%d", s.WindowStart)

	_, err := r.db.Exec(query,
		id, s.WindowStart, s.WindowEnd, s.Total, s.DeltaPct,
		time.Now().Unix(),
	)
	return err
}

func (r *SnapshotRepository) List(limit int) ([]*models.StatSnapshot, error) {
	query := `
		SELECT id, window_start, window_end, total, delta_pct, created_at
		FROM stat_snapshots
		ORDER BY window_start DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*models.StatSnapshot
	for rows.Next() {
		var s models.StatSnapshot
		if err := rows.Scan(&s.ID, &s.WindowStart, &s.WindowEnd, &s.Total, &s.DeltaPct, &s.CreatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, &s)
	}
	return snaps, rows.Err()
}
