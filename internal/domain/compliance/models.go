package compliance

// StatusEmployed is the roster status of a currently employed person.
const StatusEmployed = "在職中"

const (
	// RiskGrantedThreshold is the grant size from which the five-day annual
	// usage obligation applies.
	RiskGrantedThreshold = 10
	RiskUsedThreshold    = 5
	maxPromptNames       = 10
	maxInsights          = 3
)

const (
	InsightWarning = "warning"
	InsightInfo    = "info"
	InsightSuccess = "success"
)

// EmployeeSummary is the per-employee aggregate sent by the client for
// analysis. Unknown fields in the request are ignored.
type EmployeeSummary struct {
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	GrantedTotal float64 `json:"grantedTotal"`
	UsedTotal    float64 `json:"usedTotal"`
}

type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}
