package model

import "time"

// Granularity is the bucketing applied by the cost query API
type Granularity string

const (
	GranularityNone    Granularity = "None"
	GranularityDaily   Granularity = "Daily"
	GranularityMonthly Granularity = "Monthly"
)

// Dimension is the grouping applied by the cost query API
type Dimension string

const (
	DimensionNone          Dimension = ""
	DimensionResourceGroup Dimension = "ResourceGroup"
	DimensionServiceName   Dimension = "ServiceName"
)

// CostQuery describes one time-windowed aggregate cost query
type CostQuery struct {
	From        time.Time
	To          time.Time
	Granularity Granularity
	GroupBy     Dimension
}

// CostRow is one aggregated cost observation for a dimension in a billing period.
// PeriodKey is "2006-01" for monthly rows, "2006-01-02" for daily rows and empty
// when the query had no granularity.
type CostRow struct {
	DimensionValue string
	Cost           float64
	PeriodKey      string
	Currency       string
}

// CostSummary is the month-to-date overview
type CostSummary struct {
	ActualCost        float64  `json:"actualCost"`
	ForecastCost      float64  `json:"forecastCost"`
	AzureForecastCost *float64 `json:"azureForecastCost"`
	LastMonthCost     float64  `json:"lastMonthCost"`
	Currency          string   `json:"currency"`
}

// CostBreakdownEntry is the cost attributed to one project label
type CostBreakdownEntry struct {
	Name      string  `json:"name"`
	Actual    float64 `json:"actual"`
	Projected float64 `json:"projected"`
}

// CostBreakdown aggregates resource group costs by project tag
type CostBreakdown struct {
	Breakdown      []CostBreakdownEntry `json:"breakdown"`
	TotalActual    float64              `json:"totalActual"`
	TotalProjected float64              `json:"totalProjected"`
}

// HistoryPoint is one chronological bucket of the cost history chart
type HistoryPoint struct {
	Period       string   `json:"period"`
	PeriodLabel  string   `json:"periodLabel"`
	ActualCost   *float64 `json:"actualCost"`
	ForecastCost *float64 `json:"forecastCost"`
}

// CostHistory is the chart-ready monthly series
type CostHistory struct {
	History []HistoryPoint `json:"history"`
}

// Impact classifies the size of a month-over-month change
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// VarianceChange is a significant month-over-month change for one service
type VarianceChange struct {
	PeriodLabel   string  `json:"month"`
	Period        string  `json:"monthRaw"`
	Dimension     string  `json:"service"`
	Delta         float64 `json:"rawDiff"`
	Previous      float64 `json:"previous"`
	Current       float64 `json:"current"`
	PercentChange float64 `json:"percentChange"`
	Impact        Impact  `json:"impact"`
	Change        string  `json:"change"`
	Reason        string  `json:"reason"`
}

// CostVariance lists the significant changes in chronological order
type CostVariance struct {
	Changes []VarianceChange `json:"changes"`
}

// ResourceGroupCost is the cost of one resource group
type ResourceGroupCost struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// UntaggedCosts lists resource groups without a project tag
type UntaggedCosts struct {
	ResourceGroups []ResourceGroupCost `json:"resourceGroups"`
}

// ServiceCost represents cost for a single service
type ServiceCost struct {
	Service string  `json:"service"`
	Cost    float64 `json:"cost"`
}

// ServiceBreakdown is the top services for one month
type ServiceBreakdown struct {
	Month     string        `json:"month"`
	TotalCost float64       `json:"totalCost"`
	Breakdown []ServiceCost `json:"breakdown"`
}
