package leave

import (
	"time"

	"yukyu/internal/platform/db"
)

type Store struct {
	DB  *db.DB
	Now func() time.Time
}

func NewStore(database *db.DB) *Store {
	return &Store{DB: database, Now: time.Now}
}

// reader is the connection list queries run on.
func (s *Store) reader() db.Querier {
	return s.DB.SQL
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
