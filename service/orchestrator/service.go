package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/config"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/saral-digital/ops-dashboard/service/cache"
	"github.com/saral-digital/ops-dashboard/service/costanalysis"
	"golang.org/x/sync/errgroup"
)

func NewService(cfg *config.Config, services Services, store *cache.Store, logger zerolog.Logger) *orchestratorService {
	return &orchestratorService{
		cfg:      cfg,
		services: services,
		cache:    store,
		logger:   logger.With().Str("component", "orchestrator").Logger(),
		now:      time.Now,
	}
}

// cached wraps cache.Fetch with a debug line per upstream refresh
func cached[T any](s *orchestratorService, key string, ttl time.Duration, fetch func() (T, error)) (T, bool, error) {
	return cache.Fetch(s.cache, key, ttl, func() (T, error) {
		s.logger.Debug().Str("key", key).Msg("refreshing cache entry")
		return fetch()
	})
}

func (s *orchestratorService) GetAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	if err := s.cfg.RequireAzure(); err != nil {
		return nil, err
	}
	return s.services.Identity.GetAccountInfo(ctx)
}

// ListSubscriptions lists the enabled subscriptions the credential can read
func (s *orchestratorService) ListSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	if err := s.cfg.RequireAzure(); err != nil {
		return nil, err
	}
	return s.services.Identity.ListSubscriptions(ctx)
}

// GetCostSummary returns month-to-date spend, its run-rate forecast, the
// provider's own forecast and last month's total
func (s *orchestratorService) GetCostSummary(ctx context.Context) (*model.CostSummary, bool, error) {
	if err := s.cfg.RequireAzure(); err != nil {
		return nil, false, err
	}
	return cached(s, KeyCost, costTTL, func() (*model.CostSummary, error) {
		return s.fetchCostSummary(ctx)
	})
}

func (s *orchestratorService) fetchCostSummary(ctx context.Context) (*model.CostSummary, error) {
	now := s.now().UTC()
	monthStart := costanalysis.FirstDayOfMonth(now)
	lastMonth := monthStart.AddDate(0, -1, 0)

	var current, previous []model.CostRow
	var azureForecast *float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.services.Cost.Query(gctx, model.CostQuery{From: monthStart, To: now, Granularity: model.GranularityNone})
		current = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.services.Cost.Query(gctx, model.CostQuery{
			From:        lastMonth,
			To:          costanalysis.LastDayOfMonth(lastMonth),
			Granularity: model.GranularityNone,
		})
		previous = rows
		return err
	})
	g.Go(func() error {
		forecast, err := s.services.Cost.Forecast(gctx, monthStart, costanalysis.LastDayOfMonth(now))
		if err != nil {
			s.logger.Warn().Err(err).Str("endpoint", KeyCost).Msg("provider forecast unavailable")
			return nil
		}
		azureForecast = &forecast
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	actual := totalCost(current)
	return &model.CostSummary{
		ActualCost:        actual,
		ForecastCost:      costanalysis.RunRateForecast(actual, now.Day(), costanalysis.DaysInMonth(now)),
		AzureForecastCost: azureForecast,
		LastMonthCost:     totalCost(previous),
		Currency:          currency(current, previous),
	}, nil
}

// GetCostHistory returns the monthly series from the configured start
func (s *orchestratorService) GetCostHistory(ctx context.Context) (*model.CostHistory, bool, error) {
	if err := s.cfg.RequireAzure(); err != nil {
		return nil, false, err
	}
	return cached(s, KeyCostHistory, analysisTTL, func() (*model.CostHistory, error) {
		now := s.now().UTC()
		rows, err := s.services.Cost.Query(ctx, model.CostQuery{
			From:        s.cfg.HistoryStart(now),
			To:          now,
			Granularity: model.GranularityMonthly,
		})
		if err != nil {
			return nil, err
		}
		return &model.CostHistory{History: costanalysis.BuildHistory(rows, now)}, nil
	})
}

// GetCostVariance returns significant month-over-month service cost changes
func (s *orchestratorService) GetCostVariance(ctx context.Context) (*model.CostVariance, bool, error) {
	if err := s.cfg.RequireAzure(); err != nil {
		return nil, false, err
	}
	return cached(s, KeyCostVariance, analysisTTL, func() (*model.CostVariance, error) {
		now := s.now().UTC()
		rows, err := s.services.Cost.Query(ctx, model.CostQuery{
			From:        s.cfg.HistoryStart(now),
			To:          now,
			Granularity: model.GranularityMonthly,
			GroupBy:     model.DimensionServiceName,
		})
		if err != nil {
			return nil, err
		}
		return &model.CostVariance{Changes: costanalysis.DetectVariance(rows, now)}, nil
	})
}

// GetCostByResourceGroup attributes last month's spend and this month's
// projection to project tags
func (s *orchestratorService) GetCostByResourceGroup(ctx context.Context) (*model.CostBreakdown, bool, error) {
	if err := s.cfg.RequireAzure(); err != nil {
		return nil, false, err
	}
	return cached(s, KeyCostByRG, analysisTTL, func() (*model.CostBreakdown, error) {
		now := s.now().UTC()
		lastMonth := costanalysis.FirstDayOfMonth(now).AddDate(0, -1, 0)

		var groups []model.ResourceGroup
		var previous, current []model.CostRow

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			groups, err = s.services.Resources.ListResourceGroups(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			previous, err = s.services.Cost.Query(gctx, resourceGroupQuery(lastMonth, costanalysis.LastDayOfMonth(lastMonth)))
			return err
		})
		g.Go(func() error {
			var err error
			current, err = s.services.Cost.Query(gctx, resourceGroupQuery(costanalysis.FirstDayOfMonth(now), now))
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		projected := costanalysis.ProjectRunRate(costanalysis.SumByResourceGroup(current), now.Day(), costanalysis.DaysInMonth(now))
		breakdown := costanalysis.BuildBreakdown(
			costanalysis.ResolveProjectTags(groups),
			costanalysis.SumByResourceGroup(previous),
			projected,
		)
		return &breakdown, nil
	})
}

// GetUntaggedCosts lists last month's spend in resource groups without a project tag
func (s *orchestratorService) GetUntaggedCosts(ctx context.Context) (*model.UntaggedCosts, bool, error) {
	if err := s.cfg.RequireAzure(); err != nil {
		return nil, false, err
	}
	return cached(s, KeyUntaggedCosts, analysisTTL, func() (*model.UntaggedCosts, error) {
		lastMonth := costanalysis.FirstDayOfMonth(s.now().UTC()).AddDate(0, -1, 0)

		var groups []model.ResourceGroup
		var rows []model.CostRow

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			groups, err = s.services.Resources.ListResourceGroups(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			rows, err = s.services.Cost.Query(gctx, resourceGroupQuery(lastMonth, costanalysis.LastDayOfMonth(lastMonth)))
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return &model.UntaggedCosts{
			ResourceGroups: costanalysis.UntaggedResourceGroups(
				costanalysis.ResolveProjectTags(groups),
				costanalysis.SumByResourceGroup(rows),
			),
		}, nil
	})
}

// GetServiceBreakdown returns the ten most expensive services of a month
// ("2006-01"). An empty month means last month.
func (s *orchestratorService) GetServiceBreakdown(ctx context.Context, month string) (*model.ServiceBreakdown, bool, error) {
	now := s.now().UTC()
	start := costanalysis.FirstDayOfMonth(now).AddDate(0, -1, 0)
	if month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %q", model.ErrInvalidMonth, month)
		}
		if parsed.After(now) {
			return nil, false, fmt.Errorf("%w: %q is in the future", model.ErrInvalidMonth, month)
		}
		start = parsed
	}
	if err := s.cfg.RequireAzure(); err != nil {
		return nil, false, err
	}

	key := KeyServiceBreakdown + ":" + costanalysis.PeriodKey(start)
	return cached(s, key, analysisTTL, func() (*model.ServiceBreakdown, error) {
		end := costanalysis.LastDayOfMonth(start)
		if end.After(now) {
			end = now
		}
		rows, err := s.services.Cost.Query(ctx, model.CostQuery{
			From:        start,
			To:          end,
			Granularity: model.GranularityNone,
			GroupBy:     model.DimensionServiceName,
		})
		if err != nil {
			return nil, err
		}

		services, total := costanalysis.TopServices(rows)
		return &model.ServiceBreakdown{
			Month:     costanalysis.PeriodKey(start),
			TotalCost: total,
			Breakdown: services,
		}, nil
	})
}

func (s *orchestratorService) GetResources(ctx context.Context) (*model.ResourceInventory, bool, error) {
	if err := s.cfg.RequireAzure(); err != nil {
		return nil, false, err
	}
	return cached(s, KeyResources, resourceTTL, func() (*model.ResourceInventory, error) {
		return s.services.Resources.ListResources(ctx)
	})
}

func (s *orchestratorService) GetWasteReport(ctx context.Context) (*model.WasteReport, bool, error) {
	if err := s.cfg.RequireAzure(); err != nil {
		return nil, false, err
	}
	return cached(s, KeyWaste, resourceTTL, func() (*model.WasteReport, error) {
		return s.services.Waste.GetWasteReport(ctx)
	})
}

func (s *orchestratorService) GetSecurityScore(ctx context.Context) (*model.SecurityScore, bool, error) {
	if err := s.cfg.RequireAzure(); err != nil {
		return nil, false, err
	}
	return cached(s, KeySecurityScore, securityTTL, func() (*model.SecurityScore, error) {
		return s.services.Security.GetSecurityScore(ctx)
	})
}

func (s *orchestratorService) GetTechStack(ctx context.Context) (*model.TechStack, bool, error) {
	if err := s.cfg.RequireDevOps(); err != nil {
		return nil, false, err
	}
	return cached(s, KeyTechStack, securityTTL, func() (*model.TechStack, error) {
		return s.services.TechStack.GetTechStack(ctx)
	})
}

// GetSecurityScan checks the detected tech stack against OSV. A cached scan
// is returned as a copy flagged Cached.
func (s *orchestratorService) GetSecurityScan(ctx context.Context) (*model.SecurityScan, bool, error) {
	if err := s.cfg.RequireDevOps(); err != nil {
		return nil, false, err
	}
	scan, hit, err := cached(s, KeySecurityScan, securityTTL, func() (*model.SecurityScan, error) {
		stack, _, err := s.GetTechStack(ctx)
		if err != nil {
			return nil, err
		}
		return s.services.Vulnerabilities.Scan(ctx, stack.TechStack), nil
	})
	if err != nil || !hit {
		return scan, hit, err
	}

	flagged := *scan
	flagged.Cached = true
	return &flagged, true, nil
}

func (s *orchestratorService) GetProjects(ctx context.Context) (*model.DevOpsProjects, error) {
	if err := s.cfg.RequireDevOps(); err != nil {
		return nil, err
	}
	projects, err := s.services.Pipelines.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return &model.DevOpsProjects{Projects: projects, Count: len(projects)}, nil
}

func (s *orchestratorService) GetPipelineRuns(ctx context.Context, projects []string, includeScans bool) (*model.PipelineRuns, error) {
	if err := s.cfg.RequireDevOps(); err != nil {
		return nil, err
	}
	return s.services.Pipelines.GetPipelineRuns(ctx, projects, includeScans)
}

func (s *orchestratorService) GetTasks(ctx context.Context) (*model.TaskList, error) {
	if err := s.cfg.RequireJira(); err != nil {
		return nil, err
	}
	return s.services.Tasks.GetTasks(ctx)
}

func (s *orchestratorService) GetHealth(ctx context.Context) *model.HealthReport {
	return s.services.Health.Check(ctx)
}

func resourceGroupQuery(from, to time.Time) model.CostQuery {
	return model.CostQuery{
		From:        from,
		To:          to,
		Granularity: model.GranularityNone,
		GroupBy:     model.DimensionResourceGroup,
	}
}

func totalCost(rows []model.CostRow) float64 {
	return lo.SumBy(rows, func(row model.CostRow) float64 { return row.Cost })
}

// currency takes the first reported currency, USD when no rows came back
func currency(rowSets ...[]model.CostRow) string {
	for _, rows := range rowSets {
		if row, ok := lo.Find(rows, func(row model.CostRow) bool { return row.Currency != "" }); ok {
			return row.Currency
		}
	}
	return "USD"
}
