package leave

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// encodeBlob serializes a nested sequence into a text column. Empty and nil
// sequences are stored as NULL.
func encodeBlob[T any](items []T) (sql.NullString, error) {
	if len(items) == 0 {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

// decodeBlob is the inverse of encodeBlob. NULL and empty columns decode to a
// non-nil empty slice so they render as [] on the wire.
func decodeBlob[T any](column string, raw sql.NullString) ([]T, error) {
	out := []T{}
	if !raw.Valid || raw.String == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", column, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func normalizePeriods(periods []PeriodHistory) []PeriodHistory {
	for i := range periods {
		if periods[i].YukyuDates == nil {
			periods[i].YukyuDates = []string{}
		}
	}
	return periods
}
