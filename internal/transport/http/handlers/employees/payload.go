package employeehandler

import "yukyu/internal/domain/leave"

type periodPayload struct {
	PeriodIndex     *int      `json:"periodIndex" validate:"required"`
	PeriodName      *string   `json:"periodName" validate:"required"`
	ElapsedMonths   *int      `json:"elapsedMonths" validate:"required"`
	YukyuStartDate  *string   `json:"yukyuStartDate" validate:"required"`
	GrantDate       *string   `json:"grantDate" validate:"required"`
	ExpiryDate      *string   `json:"expiryDate" validate:"required"`
	Granted         *float64  `json:"granted" validate:"required"`
	Used            *float64  `json:"used" validate:"required"`
	Balance         *float64  `json:"balance" validate:"required"`
	Expired         *float64  `json:"expired" validate:"required"`
	IsExpired       *bool     `json:"isExpired" validate:"required"`
	IsCurrentPeriod *bool     `json:"isCurrentPeriod" validate:"required"`
	YukyuDates      []*string `json:"yukyuDates" validate:"omitempty,dive,required"`
	Source          *string   `json:"source" validate:"required"`
	SyncedAt        *string   `json:"syncedAt" validate:"required"`
}

type employeePayload struct {
	ID            *string         `json:"id" validate:"required,min=1"`
	EmployeeNum   *string         `json:"employeeNum" validate:"required"`
	Name          *string         `json:"name" validate:"required"`
	Haken         *string         `json:"haken"`
	Granted       *float64        `json:"granted" validate:"required"`
	Used          *float64        `json:"used" validate:"required"`
	Balance       *float64        `json:"balance" validate:"required"`
	UsageRate     *float64        `json:"usageRate" validate:"required"`
	Year          *int            `json:"year" validate:"required"`
	PeriodHistory []periodPayload `json:"periodHistory" validate:"omitempty,dive"`
	YukyuDates    []*string       `json:"yukyuDates" validate:"omitempty,dive,required"`
}

// toEmployee assumes the payload passed validation.
func (p employeePayload) toEmployee() leave.Employee {
	e := leave.Employee{
		ID:          *p.ID,
		EmployeeNum: *p.EmployeeNum,
		Name:        *p.Name,
		Haken:       p.Haken,
		Granted:     *p.Granted,
		Used:        *p.Used,
		Balance:     *p.Balance,
		UsageRate:   *p.UsageRate,
		Year:        *p.Year,
		YukyuDates:  derefDates(p.YukyuDates),
	}
	e.PeriodHistory = make([]leave.PeriodHistory, 0, len(p.PeriodHistory))
	for _, ph := range p.PeriodHistory {
		e.PeriodHistory = append(e.PeriodHistory, ph.toPeriod())
	}
	return e
}

func (p periodPayload) toPeriod() leave.PeriodHistory {
	return leave.PeriodHistory{
		PeriodIndex:     *p.PeriodIndex,
		PeriodName:      *p.PeriodName,
		ElapsedMonths:   *p.ElapsedMonths,
		YukyuStartDate:  *p.YukyuStartDate,
		GrantDate:       *p.GrantDate,
		ExpiryDate:      *p.ExpiryDate,
		Granted:         *p.Granted,
		Used:            *p.Used,
		Balance:         *p.Balance,
		Expired:         *p.Expired,
		IsExpired:       *p.IsExpired,
		IsCurrentPeriod: *p.IsCurrentPeriod,
		YukyuDates:      derefDates(p.YukyuDates),
		Source:          *p.Source,
		SyncedAt:        *p.SyncedAt,
	}
}

// derefDates expects every element to be non-nil.
func derefDates(values []*string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, *v)
	}
	return out
}
