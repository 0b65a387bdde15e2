package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

// SQLiteScheduleRepo stores each schedule version as a JSON payload keyed by
// (id, version).
type SQLiteScheduleRepo struct {
	db db.DBTX
}

func NewSQLiteScheduleRepo(conn db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn}
}

// Save writes s under its ScheduleID and Version. Saving an existing version
// replaces its payload.
func (r *SQLiteScheduleRepo) Save(ctx context.Context, s *domain.StudySchedule, model string) error {
	if s.ScheduleID == "" {
		return fmt.Errorf("saving schedule: missing schedule id")
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding schedule %s v%d: %w", s.ScheduleID, s.Version, err)
	}

	query := `INSERT INTO schedules (id, version, target_date, payload, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id, version) DO UPDATE SET
			target_date = excluded.target_date,
			payload = excluded.payload,
			model = excluded.model,
			created_at = excluded.created_at`
	_, err = r.db.ExecContext(ctx, query,
		s.ScheduleID,
		s.Version,
		s.TargetDate,
		string(payload),
		model,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("saving schedule %s v%d: %w", s.ScheduleID, s.Version, err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) Latest(ctx context.Context, id string) (*domain.StudySchedule, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT payload FROM schedules WHERE id = ? ORDER BY version DESC LIMIT 1`, id)
	return scanSchedule(row, id)
}

func (r *SQLiteScheduleRepo) GetVersion(ctx context.Context, id string, version int) (*domain.StudySchedule, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT payload FROM schedules WHERE id = ? AND version = ?`, id, version)
	return scanSchedule(row, id)
}

func (r *SQLiteScheduleRepo) ListVersions(ctx context.Context, id string) ([]ScheduleVersion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, version, target_date, model, created_at FROM schedules WHERE id = ? ORDER BY version`, id)
	if err != nil {
		return nil, fmt.Errorf("listing schedule versions: %w", err)
	}
	defer rows.Close()

	var out []ScheduleVersion
	for rows.Next() {
		var v ScheduleVersion
		var createdAt string
		if err := rows.Scan(&v.ScheduleID, &v.Version, &v.TargetDate, &v.Model, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning schedule version: %w", err)
		}
		v.CreatedAt = parseTime(createdAt)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule versions: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}
	return out, nil
}

func scanSchedule(row *sql.Row, id string) (*domain.StudySchedule, error) {
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}
	var s domain.StudySchedule
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, fmt.Errorf("decoding schedule %s: %w", id, err)
	}
	return &s, nil
}
