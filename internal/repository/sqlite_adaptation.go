package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/db"
)

type SQLiteAdaptationRepo struct {
	db db.DBTX
}

func NewSQLiteAdaptationRepo(conn db.DBTX) *SQLiteAdaptationRepo {
	return &SQLiteAdaptationRepo{db: conn}
}

// Create stores rec. The target version must already be saved.
func (r *SQLiteAdaptationRepo) Create(ctx context.Context, rec *AdaptationRecord) error {
	updates, err := json.Marshal(rec.Updates)
	if err != nil {
		return fmt.Errorf("encoding confidence updates: %w", err)
	}
	insights, err := json.Marshal(rec.Insights)
	if err != nil {
		return fmt.Errorf("encoding adaptation insights: %w", err)
	}

	query := `INSERT INTO adaptations (id, schedule_id, from_version, to_version, current_week,
		updates, insights, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.ScheduleID,
		rec.FromVersion,
		rec.ToVersion,
		rec.CurrentWeek,
		string(updates),
		string(insights),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting adaptation: %w", err)
	}
	return nil
}

// ListBySchedule returns a schedule's adaptations, oldest version first.
func (r *SQLiteAdaptationRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]AdaptationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, schedule_id, from_version, to_version, current_week,
		updates, insights, created_at
		FROM adaptations WHERE schedule_id = ? ORDER BY to_version, created_at`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("listing adaptations: %w", err)
	}
	defer rows.Close()

	var out []AdaptationRecord
	for rows.Next() {
		var rec AdaptationRecord
		var updates, insights, createdAt string
		if err := rows.Scan(&rec.ID, &rec.ScheduleID, &rec.FromVersion, &rec.ToVersion, &rec.CurrentWeek,
			&updates, &insights, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning adaptation: %w", err)
		}
		if err := json.Unmarshal([]byte(updates), &rec.Updates); err != nil {
			return nil, fmt.Errorf("decoding confidence updates of %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(insights), &rec.Insights); err != nil {
			return nil, fmt.Errorf("decoding adaptation insights of %s: %w", rec.ID, err)
		}
		rec.CreatedAt = parseTime(createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
