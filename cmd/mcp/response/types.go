package response

// AccountInfo represents the monitored subscription
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// AzureSubscription represents Azure subscription details
type AzureSubscription struct {
	SubscriptionID string `json:"subscription_id"`
	DisplayName    string `json:"display_name"`
	State          string `json:"state"`
}

// CostSummary compares month-to-date spend and its forecasts with last month
type CostSummary struct {
	ActualCost      float64  `json:"actual_cost"`
	RunRateForecast float64  `json:"run_rate_forecast"`
	AzureForecast   *float64 `json:"azure_forecast,omitempty"`
	LastMonthCost   float64  `json:"last_month_cost"`
	Difference      float64  `json:"forecast_vs_last_month"`
	PercentChange   float64  `json:"percent_change"`
	Currency        string   `json:"currency"`
}

// MonthCost is one month of the cost trend
type MonthCost struct {
	Month    string  `json:"month"`
	Label    string  `json:"label"`
	Amount   float64 `json:"amount"`
	Forecast bool    `json:"forecast"`
}

// TrendSummary provides summary statistics over the complete months of a trend
type TrendSummary struct {
	TotalSpend     float64 `json:"total_spend"`
	AverageMonthly float64 `json:"average_monthly"`
	HighestMonth   string  `json:"highest_month"`
	HighestAmount  float64 `json:"highest_amount"`
	LowestMonth    string  `json:"lowest_month"`
	LowestAmount   float64 `json:"lowest_amount"`
}

// CostTrend represents the monthly cost history with summary
type CostTrend struct {
	Months  []MonthCost  `json:"months"`
	Summary TrendSummary `json:"summary"`
}

// ProjectCost represents cost attributed to one project tag
type ProjectCost struct {
	Project   string  `json:"project"`
	LastMonth float64 `json:"last_month"`
	Projected float64 `json:"projected"`
}

// ProjectBreakdown lists project costs with totals
type ProjectBreakdown struct {
	Projects       []ProjectCost `json:"projects"`
	TotalLastMonth float64       `json:"total_last_month"`
	TotalProjected float64       `json:"total_projected"`
}

// CostChange represents a significant month-over-month service change
type CostChange struct {
	Month         string  `json:"month"`
	Service       string  `json:"service"`
	Previous      float64 `json:"previous"`
	Current       float64 `json:"current"`
	Difference    float64 `json:"difference"`
	PercentChange float64 `json:"percent_change"`
	Impact        string  `json:"impact"`
}

// UnusedVolume represents an unused managed disk
type UnusedVolume struct {
	ID     string `json:"id"`
	SizeGB int32  `json:"size_gb"`
	Status string `json:"status"`
}

// StoppedInstance represents a deallocated virtual machine
type StoppedInstance struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnusedIP represents an unassociated public IP address
type UnusedIP struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Reservation represents a reservation order close to or past expiry
type Reservation struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	Status          string `json:"status"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

// WasteSummary aggregates all waste detection results
type WasteSummary struct {
	AccountID            string            `json:"account_id"`
	UnusedVolumes        []UnusedVolume    `json:"unused_volumes"`
	AttachedVolumes      []UnusedVolume    `json:"volumes_attached_to_stopped_instances"`
	UnusedIPs            []UnusedIP        `json:"unused_ips"`
	StoppedInstances     []StoppedInstance `json:"stopped_instances"`
	ExpiringReservations []Reservation     `json:"expiring_reservations"`
}

// SecurityScore summarises the Security Center assessments
type SecurityScore struct {
	ScorePercentage  int      `json:"score_percentage"`
	Healthy          int      `json:"healthy"`
	Unhealthy        int      `json:"unhealthy"`
	NotApplicable    int      `json:"not_applicable"`
	TotalAssessments int      `json:"total_assessments"`
	TopUnhealthy     []string `json:"top_unhealthy"`
}

// Overview is a one-call snapshot of the dashboard. A section that could not
// be collected is nil and its error is listed.
type Overview struct {
	Cost     *CostSummary      `json:"cost,omitempty"`
	Waste    *WasteSummary     `json:"waste,omitempty"`
	Security *SecurityScore    `json:"security,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}
