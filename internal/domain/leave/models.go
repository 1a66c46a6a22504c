package leave

// Employee is the wire shape of one employee's paid-leave snapshot for a
// single entitlement year. Balance and UsageRate are computed by the client
// and stored as given.
type Employee struct {
	ID            string          `json:"id"`
	EmployeeNum   string          `json:"employeeNum"`
	Name          string          `json:"name"`
	Haken         *string         `json:"haken"`
	Granted       float64         `json:"granted"`
	Used          float64         `json:"used"`
	Balance       float64         `json:"balance"`
	UsageRate     float64         `json:"usageRate"`
	Year          int             `json:"year"`
	PeriodHistory []PeriodHistory `json:"periodHistory"`
	YukyuDates    []string        `json:"yukyuDates"`
	LastUpdated   string          `json:"lastUpdated,omitempty"`
}

// PeriodHistory is one grant period of an employee. It has no identity of
// its own and is persisted inside the parent employee row.
type PeriodHistory struct {
	PeriodIndex     int      `json:"periodIndex"`
	PeriodName      string   `json:"periodName"`
	ElapsedMonths   int      `json:"elapsedMonths"`
	YukyuStartDate  string   `json:"yukyuStartDate"`
	GrantDate       string   `json:"grantDate"`
	ExpiryDate      string   `json:"expiryDate"`
	Granted         float64  `json:"granted"`
	Used            float64  `json:"used"`
	Balance         float64  `json:"balance"`
	Expired         float64  `json:"expired"`
	IsExpired       bool     `json:"isExpired"`
	IsCurrentPeriod bool     `json:"isCurrentPeriod"`
	YukyuDates      []string `json:"yukyuDates"`
	Source          string   `json:"source"`
	SyncedAt        string   `json:"syncedAt"`
}

// LeaveRecord is a single leave entry. EmployeeID is not checked against the
// employees table.
type LeaveRecord struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date"`
	Type       string  `json:"type"`
	Duration   string  `json:"duration"`
	Note       *string `json:"note"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}
