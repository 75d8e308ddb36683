package azurecostmanagement

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/saral-digital/ops-dashboard/service/retry"
)

const defaultCurrency = "USD"

func NewService(subscriptionID string, credential Credential) (*service, error) {
	// Rate limiting is retried by retry.Do so the SDK pipeline must not retry too
	options := &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: -1},
		},
	}

	queryClient, err := armcostmanagement.NewQueryClient(credential, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}

	forecastClient, err := armcostmanagement.NewForecastClient(credential, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost forecast client: %w", err)
	}

	return &service{
		scope:    fmt.Sprintf("/subscriptions/%s", subscriptionID),
		query:    queryClient,
		forecast: forecastClient,
	}, nil
}

// Query runs one aggregate cost query and returns its rows in upstream order
func (s *service) Query(ctx context.Context, query model.CostQuery) ([]model.CostRow, error) {
	definition := armcostmanagement.QueryDefinition{
		Type:      to.Ptr(armcostmanagement.ExportTypeUsage),
		Timeframe: to.Ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(query.From),
			To:   to.Ptr(query.To),
		},
		Dataset: &armcostmanagement.QueryDataset{
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     to.Ptr("PreTaxCost"),
					Function: to.Ptr(armcostmanagement.FunctionTypeSum),
				},
			},
		},
	}
	if query.Granularity != model.GranularityNone && query.Granularity != "" {
		definition.Dataset.Granularity = to.Ptr(armcostmanagement.GranularityType(query.Granularity))
	}
	if query.GroupBy != model.DimensionNone {
		definition.Dataset.Grouping = []*armcostmanagement.QueryGrouping{
			{
				Type: to.Ptr(armcostmanagement.QueryColumnTypeDimension),
				Name: to.Ptr(string(query.GroupBy)),
			},
		}
	}

	resp, err := retry.Do(ctx, s.retry, func(ctx context.Context) (armcostmanagement.QueryClientUsageResponse, error) {
		return s.query.Usage(ctx, s.scope, definition, nil)
	})
	if err != nil {
		return nil, fetchFailed(fmt.Errorf("failed to query costs: %w", err))
	}

	if resp.Properties == nil {
		return []model.CostRow{}, nil
	}
	return parseRows(resp.Properties.Columns, resp.Properties.Rows, query)
}

// Forecast returns the upstream forecast total for the window, actual cost included
func (s *service) Forecast(ctx context.Context, from, until time.Time) (float64, error) {
	definition := armcostmanagement.ForecastDefinition{
		Type:      to.Ptr(armcostmanagement.ForecastTypeUsage),
		Timeframe: to.Ptr(armcostmanagement.ForecastTimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(from),
			To:   to.Ptr(until),
		},
		Dataset: &armcostmanagement.ForecastDataset{
			Granularity: to.Ptr(armcostmanagement.GranularityTypeDaily),
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     to.Ptr("PreTaxCost"),
					Function: to.Ptr(armcostmanagement.FunctionTypeSum),
				},
			},
		},
		IncludeActualCost:       to.Ptr(true),
		IncludeFreshPartialCost: to.Ptr(false),
	}

	resp, err := retry.Do(ctx, s.retry, func(ctx context.Context) (armcostmanagement.ForecastClientUsageResponse, error) {
		return s.forecast.Usage(ctx, s.scope, definition, nil)
	})
	if err != nil {
		return 0, fetchFailed(fmt.Errorf("failed to query cost forecast: %w", err))
	}

	if resp.Properties == nil || len(resp.Properties.Rows) == 0 {
		return 0, nil
	}

	costIdx, err := FindColumn(resp.Properties.Columns, "PreTaxCost", "Cost", "totalCost")
	if err != nil {
		return 0, err
	}

	var total float64
	for _, row := range resp.Properties.Rows {
		if costIdx >= len(row) {
			continue
		}
		if cost, ok := toFloat(row[costIdx]); ok {
			total += cost
		}
	}
	return total, nil
}

// FindColumn returns the index of the first column whose name matches one of
// the candidates, compared case-insensitively.
func FindColumn(columns []*armcostmanagement.QueryColumn, candidates ...string) (int, error) {
	for _, candidate := range candidates {
		for i, column := range columns {
			if column == nil || column.Name == nil {
				continue
			}
			if strings.EqualFold(*column.Name, candidate) {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: %s", model.ErrColumnNotFound, strings.Join(candidates, "/"))
}

func parseRows(columns []*armcostmanagement.QueryColumn, rows [][]any, query model.CostQuery) ([]model.CostRow, error) {
	result := make([]model.CostRow, 0, len(rows))
	if len(rows) == 0 {
		return result, nil
	}

	costIdx, err := FindColumn(columns, "PreTaxCost", "Cost", "totalCost")
	if err != nil {
		return nil, err
	}

	periodIdx := -1
	periodLayout := ""
	switch query.Granularity {
	case model.GranularityMonthly:
		periodLayout = "2006-01"
	case model.GranularityDaily:
		periodLayout = "2006-01-02"
	}
	if periodLayout != "" {
		if periodIdx, err = FindColumn(columns, "BillingMonth", "UsageDate"); err != nil {
			return nil, err
		}
	}

	dimensionIdx := -1
	if query.GroupBy != model.DimensionNone {
		if dimensionIdx, err = FindColumn(columns, string(query.GroupBy)); err != nil {
			return nil, err
		}
	}

	currencyIdx, err := FindColumn(columns, "Currency")
	if err != nil {
		currencyIdx = -1
	}

	for _, row := range rows {
		cost, ok := cellFloat(row, costIdx)
		if !ok {
			continue
		}

		costRow := model.CostRow{Cost: cost, Currency: defaultCurrency}

		if periodIdx >= 0 {
			period, ok := cellTime(row, periodIdx)
			if !ok {
				continue
			}
			costRow.PeriodKey = period.Format(periodLayout)
		}

		if dimensionIdx >= 0 {
			costRow.DimensionValue = dimensionValue(cellString(row, dimensionIdx))
		}

		if currency := cellString(row, currencyIdx); currency != "" {
			costRow.Currency = currency
		}

		result = append(result, costRow)
	}

	return result, nil
}

// dimensionValue reduces a full resource identifier to its lowercased last segment
func dimensionValue(value string) string {
	if !strings.Contains(value, "/") {
		return value
	}
	segments := strings.Split(strings.TrimRight(value, "/"), "/")
	return strings.ToLower(segments[len(segments)-1])
}

func cellFloat(row []any, idx int) (float64, bool) {
	if idx < 0 || idx >= len(row) {
		return 0, false
	}
	return toFloat(row[idx])
}

func cellString(row []any, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	if s, ok := row[idx].(string); ok {
		return s
	}
	return fmt.Sprint(row[idx])
}

func cellTime(row []any, idx int) (time.Time, bool) {
	if idx < 0 || idx >= len(row) {
		return time.Time{}, false
	}
	return ParsePeriod(row[idx])
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

var periodLayouts = []string{
	"20060102",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParsePeriod reads a billing period cell. UsageDate arrives as a number such as
// 20250101 and BillingMonth as a date-time string.
func ParsePeriod(value any) (time.Time, bool) {
	var raw string
	switch v := value.(type) {
	case float64:
		raw = strconv.FormatInt(int64(v), 10)
	case int:
		raw = strconv.Itoa(v)
	case int64:
		raw = strconv.FormatInt(v, 10)
	case string:
		raw = strings.TrimSpace(v)
	default:
		return time.Time{}, false
	}

	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func fetchFailed(err error) error {
	status := 0
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		status = respErr.StatusCode
	}
	return model.NewFetchFailed(source, status, err)
}
