package leave

import (
	"context"
	"database/sql"

	"yukyu/internal/platform/db"
)

// SaveRecord inserts or replaces a single leave record by id.
func (s *Store) SaveRecord(ctx context.Context, record LeaveRecord) error {
	err := s.DB.Transaction(ctx, func(tx *sql.Tx) error {
		return upsertRecord(ctx, tx, record)
	})
	if err != nil {
		return &StorageWriteError{Op: "save leave record", Err: err}
	}
	return nil
}

func upsertRecord(ctx context.Context, q db.Querier, record LeaveRecord) error {
	_, err := q.ExecContext(ctx, `
    INSERT OR REPLACE INTO leave_records
      (id, employee_id, date, type, duration, note, status, created_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?)
  `, record.ID, record.EmployeeID, record.Date, record.Type, record.Duration, record.Note, record.Status, record.CreatedAt)
	return err
}

func (s *Store) ListRecords(ctx context.Context) ([]LeaveRecord, error) {
	rows, err := s.reader().QueryContext(ctx, `
    SELECT id, employee_id, date, type, duration, note, status, created_at
    FROM leave_records
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []LeaveRecord{}
	for rows.Next() {
		var rec LeaveRecord
		var employeeID, date, kind, duration, status, createdAt, note sql.NullString
		if err := rows.Scan(&rec.ID, &employeeID, &date, &kind, &duration, &note, &status, &createdAt); err != nil {
			return nil, err
		}
		rec.EmployeeID = employeeID.String
		rec.Date = date.String
		rec.Type = kind.String
		rec.Duration = duration.String
		rec.Status = status.String
		rec.CreatedAt = createdAt.String
		if note.Valid {
			value := note.String
			rec.Note = &value
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
