// Package services orchestrates snapshot loading, metric computation and
// caching behind the HTTP layer.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dstmrk/kanso/internal/cache"
	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/log"
	"github.com/dstmrk/kanso/internal/metrics"
	"github.com/dstmrk/kanso/internal/quality"
)

// SnapshotLoader reads stored sheet snapshots for one user.
type SnapshotLoader interface {
	LoadTables(ctx context.Context, userKey string) (map[core.SheetKind]*core.RawTable, error)
	CombinedHash(ctx context.Context, userKey string) (string, error)
}

// RefreshPublisher asks the worker to refetch a user's sheets.
type RefreshPublisher interface {
	PublishSheetRefresh(ctx context.Context, user string) error
}

// KPIData is the headline-figures payload of the dashboard.
type KPIData struct {
	NetWorth          float64 `json:"net_worth"`
	NetWorthFormatted string  `json:"net_worth_formatted"`
	LastUpdate        string  `json:"last_update"`

	MonthOverMonthPercent  float64 `json:"mom_percent"`
	MonthOverMonthAbsolute float64 `json:"mom_absolute"`
	YearOverYearPercent    float64 `json:"yoy_percent"`
	YearOverYearAbsolute   float64 `json:"yoy_absolute"`

	SavingRatioPercent   float64 `json:"saving_ratio_percent"`
	SavingRatioFormatted string  `json:"saving_ratio_formatted"`
	SavingRatioAbsolute  float64 `json:"saving_ratio_absolute"`
}

// ChartData bundles every chart-shaped aggregate in one payload.
type ChartData struct {
	NetWorth           metrics.ChartSeries         `json:"net_worth"`
	IncomesVsExpenses  metrics.IncomeExpenseSeries `json:"incomes_vs_expenses"`
	CashFlow           map[string]float64          `json:"cash_flow"`
	ExpensesByCategory map[string]float64          `json:"expenses_by_category"`
	AssetsLiabilities  map[string]map[string]any   `json:"assets_liabilities"`
}

// DashboardService computes dashboard payloads from stored snapshots,
// caching each computation per user until the underlying sheet content
// changes or the TTL expires.
type DashboardService struct {
	store     SnapshotLoader
	publisher RefreshPublisher
	currency  string
	logger    *log.Logger

	kpiCache     *cache.LRUCache[KPIData]
	chartCache   *cache.LRUCache[ChartData]
	qualityCache *cache.LRUCache[[]quality.Warning]
}

func NewDashboardService(store SnapshotLoader, publisher RefreshPublisher, currency string, cacheSize int, cacheTTL time.Duration, logger *log.Logger) *DashboardService {
	return &DashboardService{
		store:        store,
		publisher:    publisher,
		currency:     currency,
		logger:       logger.WithComponent(log.ComponentDashboard),
		kpiCache:     cache.NewLRUCache[KPIData](cacheSize, cacheTTL),
		chartCache:   cache.NewLRUCache[ChartData](cacheSize, cacheTTL),
		qualityCache: cache.NewLRUCache[[]quality.Warning](cacheSize, cacheTTL),
	}
}

// cacheKey ties a computation to a user and the content of their sheets:
// a refreshed snapshot changes the combined hash, so stale entries are
// simply never hit again.
func (s *DashboardService) cacheKey(ctx context.Context, user, computation string) string {
	hash, err := s.store.CombinedHash(ctx, user)
	if err != nil {
		s.logger.WarnContext(ctx, "combined hash unavailable, caching disabled for call",
			log.FieldUser, user, log.FieldError, err.Error())
		return ""
	}
	return user + "|" + computation + "|" + hash
}

func (s *DashboardService) calculator(ctx context.Context, user string) (*metrics.Calculator, error) {
	tables, err := s.store.LoadTables(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	return metrics.NewCalculatorFromTables(tables), nil
}

// KPIs returns the headline figures for one user.
func (s *DashboardService) KPIs(ctx context.Context, user string) (KPIData, error) {
	key := s.cacheKey(ctx, user, "kpis")
	if key != "" {
		if data, ok := s.kpiCache.Get(key); ok {
			s.logger.DebugContext(ctx, "kpi cache hit", log.FieldUser, user)
			return data, nil
		}
	}

	calc, err := s.calculator(ctx, user)
	if err != nil {
		return KPIData{}, err
	}

	netWorth := calc.CurrentNetWorth()
	savingPercent := calc.AverageSavingRatioPercent()
	data := KPIData{
		NetWorth:          netWorth,
		NetWorthFormatted: core.FormatAmount(netWorth, s.currency),
		LastUpdate:        calc.LastUpdate(),

		MonthOverMonthPercent:  calc.MonthOverMonthPercent(),
		MonthOverMonthAbsolute: calc.MonthOverMonthAbsolute(),
		YearOverYearPercent:    calc.YearOverYearPercent(),
		YearOverYearAbsolute:   calc.YearOverYearAbsolute(),

		SavingRatioPercent:   savingPercent,
		SavingRatioFormatted: core.FormatPercent(savingPercent, s.currency),
		SavingRatioAbsolute:  calc.AverageSavingRatioAbsolute(),
	}

	if key != "" {
		s.kpiCache.Set(key, data)
	}
	return data, nil
}

// Charts returns every chart aggregate for one user.
func (s *DashboardService) Charts(ctx context.Context, user string) (ChartData, error) {
	key := s.cacheKey(ctx, user, "charts")
	if key != "" {
		if data, ok := s.chartCache.Get(key); ok {
			s.logger.DebugContext(ctx, "chart cache hit", log.FieldUser, user)
			return data, nil
		}
	}

	calc, err := s.calculator(ctx, user)
	if err != nil {
		return ChartData{}, err
	}

	data := ChartData{
		NetWorth:           calc.MonthlyNetWorth(),
		IncomesVsExpenses:  calc.IncomesVsExpenses(),
		CashFlow:           calc.CashFlowLast12Months(),
		ExpensesByCategory: calc.ExpensesByCategoryLast12Months(),
		AssetsLiabilities:  calc.AssetsLiabilitiesSnapshot(),
	}

	if key != "" {
		s.chartCache.Set(key, data)
	}
	return data, nil
}

// Quality returns the data quality warnings for one user's sheets.
func (s *DashboardService) Quality(ctx context.Context, user string) ([]quality.Warning, error) {
	key := s.cacheKey(ctx, user, "quality")
	if key != "" {
		if warnings, ok := s.qualityCache.Get(key); ok {
			return warnings, nil
		}
	}

	tables, err := s.store.LoadTables(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}

	warnings := quality.NewChecker().CheckAll(tables)

	if key != "" {
		s.qualityCache.Set(key, warnings)
	}
	return warnings, nil
}

// RequestRefresh publishes a refresh message for the user and drops their
// cached computations so the next read recomputes against fresh snapshots.
func (s *DashboardService) RequestRefresh(ctx context.Context, user string) error {
	if s.publisher == nil {
		return fmt.Errorf("refresh not available: no publisher configured")
	}
	if err := s.publisher.PublishSheetRefresh(ctx, user); err != nil {
		return fmt.Errorf("publish refresh: %w", err)
	}
	s.Invalidate(user)
	return nil
}

// RegisterCaches registers the service's caches with a manager so a
// periodic sweep evicts expired entries instead of leaving them to lazy
// eviction on the next access.
func (s *DashboardService) RegisterCaches(m *cache.Manager) {
	m.Register(s.kpiCache)
	m.Register(s.chartCache)
	m.Register(s.qualityCache)
}

// Invalidate drops every cached computation of one user.
func (s *DashboardService) Invalidate(user string) {
	prefix := user + "|"
	removed := s.kpiCache.DeletePrefix(prefix) +
		s.chartCache.DeletePrefix(prefix) +
		s.qualityCache.DeletePrefix(prefix)
	if removed > 0 {
		s.logger.Info("dashboard cache invalidated", log.FieldUser, user, "entries", removed)
	}
}
