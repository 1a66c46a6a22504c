package leave

import "context"

// StoreAPI is what the HTTP layer needs from the leave store.
type StoreAPI interface {
	SyncEmployees(ctx context.Context, employees []Employee) (int, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	SaveRecord(ctx context.Context, record LeaveRecord) error
	ListRecords(ctx context.Context) ([]LeaveRecord, error)
}

var _ StoreAPI = (*Store)(nil)
