package leave

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const upsertEmployeeSQL = `
    INSERT OR REPLACE INTO employees
      (id, employee_num, name, haken, granted, used, balance, usage_rate, year, period_history, yukyu_dates, last_updated)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
  `

// SyncEmployees replaces each employee row by id in one transaction. All rows
// of the batch share the same last_updated value. Any failure rolls back the
// whole batch and is returned as *StorageWriteError.
func (s *Store) SyncEmployees(ctx context.Context, employees []Employee) (int, error) {
	timestamp := s.now().Format(time.RFC3339Nano)

	err := s.DB.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertEmployeeSQL)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, emp := range employees {
			periods, err := encodeBlob(emp.PeriodHistory)
			if err != nil {
				return fmt.Errorf("employee %d (%s): encode periodHistory: %w", i, emp.ID, err)
			}
			dates, err := encodeBlob(emp.YukyuDates)
			if err != nil {
				return fmt.Errorf("employee %d (%s): encode yukyuDates: %w", i, emp.ID, err)
			}
			if _, err := stmt.ExecContext(ctx,
				emp.ID, emp.EmployeeNum, emp.Name, emp.Haken,
				emp.Granted, emp.Used, emp.Balance, emp.UsageRate,
				emp.Year, periods, dates, timestamp,
			); err != nil {
				return fmt.Errorf("employee %d (%s): %w", i, emp.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, &StorageWriteError{Op: "sync employees", Err: err}
	}
	return len(employees), nil
}

// ListEmployees returns every employee row in storage order.
func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.reader().QueryContext(ctx, `
    SELECT id, employee_num, name, haken, granted, used, balance, usage_rate, year,
           period_history, yukyu_dates, last_updated
    FROM employees
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []Employee{}
	for rows.Next() {
		var (
			emp                               Employee
			employeeNum, name, lastUpdated    sql.NullString
			haken                             sql.NullString
			granted, used, balance, usageRate sql.NullFloat64
			year                              sql.NullInt64
			periods, dates                    sql.NullString
		)
		if err := rows.Scan(&emp.ID, &employeeNum, &name, &haken, &granted, &used, &balance, &usageRate, &year,
			&periods, &dates, &lastUpdated); err != nil {
			return nil, err
		}
		emp.EmployeeNum = employeeNum.String
		emp.Name = name.String
		if haken.Valid {
			value := haken.String
			emp.Haken = &value
		}
		emp.Granted = granted.Float64
		emp.Used = used.Float64
		emp.Balance = balance.Float64
		emp.UsageRate = usageRate.Float64
		emp.Year = int(year.Int64)
		emp.LastUpdated = lastUpdated.String

		if emp.PeriodHistory, err = decodeBlob[PeriodHistory]("period_history", periods); err != nil {
			return nil, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
		emp.PeriodHistory = normalizePeriods(emp.PeriodHistory)
		if emp.YukyuDates, err = decodeBlob[string]("yukyu_dates", dates); err != nil {
			return nil, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}
