package recordhandler

import "yukyu/internal/domain/leave"

type recordPayload struct {
	ID         *string `json:"id" validate:"required,min=1"`
	EmployeeID *string `json:"employeeId" validate:"required"`
	Date       *string `json:"date" validate:"required"`
	Type       *string `json:"type" validate:"required"`
	Duration   *string `json:"duration" validate:"required"`
	Note       *string `json:"note"`
	Status     *string `json:"status" validate:"required"`
	CreatedAt  *string `json:"createdAt" validate:"required"`
}

func (p recordPayload) toRecord() leave.LeaveRecord {
	return leave.LeaveRecord{
		ID:         *p.ID,
		EmployeeID: *p.EmployeeID,
		Date:       *p.Date,
		Type:       *p.Type,
		Duration:   *p.Duration,
		Note:       p.Note,
		Status:     *p.Status,
		CreatedAt:  *p.CreatedAt,
	}
}
