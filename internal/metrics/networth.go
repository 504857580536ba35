package metrics

import (
	"math"
	"sort"

	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/dataset"
)

// NetWorthPoint is one month of the net-worth time series.
type NetWorthPoint struct {
	Month core.Month
	Value float64
}

// NetWorthSeries returns the monthly net-worth time series, ascending by
// month. The month set is the union of the months present in Assets and
// Liabilities; net worth for a month is the assets total minus the
// absolute liabilities total, so liabilities count as a magnitude whether
// the source stores them as positive or negative numbers.
//
// When an Incomes dataset is available the series is cut off at the latest
// Incomes month: no net-worth point is reported for a month with no known
// income data.
func (c *Calculator) NetWorthSeries() []NetWorthPoint {
	if c.netWorthDone {
		return c.netWorth
	}
	c.netWorthDone = true

	assets := c.assetsDataset()
	liabilities := c.liabilitiesDataset()

	seen := map[string]core.Month{}
	for _, m := range assets.Months() {
		seen[m.Key()] = m
	}
	for _, m := range liabilities.Months() {
		seen[m.Key()] = m
	}

	var horizon core.Month
	if inc := c.incomesDataset(); !inc.Empty() {
		horizon = inc.MaxMonth()
	}

	months := make([]core.Month, 0, len(seen))
	for _, m := range seen {
		if !horizon.IsZero() && m.After(horizon) {
			continue
		}
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	points := make([]NetWorthPoint, 0, len(months))
	for _, m := range months {
		var value float64
		if row, ok := assets.RowForMonth(m); ok {
			value = row.SumMonetary(dataset.DateLabel)
		}
		if row, ok := liabilities.RowForMonth(m); ok {
			value -= math.Abs(row.SumMonetary(dataset.DateLabel, dataset.CategoryLabel))
		}
		points = append(points, NetWorthPoint{Month: m, Value: value})
	}

	c.netWorth = points
	return points
}

// CurrentNetWorth returns the most recent net-worth value, or 0 when the
// series is empty.
func (c *Calculator) CurrentNetWorth() float64 {
	s := c.NetWorthSeries()
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Value
}

// LastUpdate returns the display label of the most recent net-worth month,
// or "" when the series is empty.
func (c *Calculator) LastUpdate() string {
	s := c.NetWorthSeries()
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1].Month.Label()
}

// MonthOverMonthPercent returns the relative net-worth change between the
// last two series points; 0 when the series is too short or the previous
// value is 0.
func (c *Calculator) MonthOverMonthPercent() float64 {
	return c.variationPercent(1)
}

// MonthOverMonthAbsolute returns the absolute net-worth change between the
// last two series points.
func (c *Calculator) MonthOverMonthAbsolute() float64 {
	return c.variationAbsolute(1)
}

// YearOverYearPercent compares the last series point with the one twelve
// months earlier by position; it needs at least 13 points.
func (c *Calculator) YearOverYearPercent() float64 {
	return c.variationPercent(12)
}

// YearOverYearAbsolute is the absolute counterpart of YearOverYearPercent.
func (c *Calculator) YearOverYearAbsolute() float64 {
	return c.variationAbsolute(12)
}

// Comparisons are positional: offset 1 reads the second-to-last element,
// offset 12 the element 13 positions back. This assumes one contiguous row
// per calendar month.
func (c *Calculator) variationPercent(offset int) float64 {
	s := c.NetWorthSeries()
	if len(s) < offset+1 {
		return 0
	}
	current := s[len(s)-1].Value
	previous := s[len(s)-1-offset].Value
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous
}

func (c *Calculator) variationAbsolute(offset int) float64 {
	s := c.NetWorthSeries()
	if len(s) < offset+1 {
		return 0
	}
	return s[len(s)-1].Value - s[len(s)-1-offset].Value
}

// AverageSavingRatioPercent returns (income-expense)/income over the 12
// calendar months ending at the latest Expenses month; 0 when Expenses is
// absent or window income is 0.
func (c *Calculator) AverageSavingRatioPercent() float64 {
	from, to, ok := c.trailingWindow()
	if !ok {
		return 0
	}
	income := c.incomeTotal(from, to)
	if income == 0 {
		return 0
	}
	return (income - c.expenseTotal(from, to)) / income
}

// AverageSavingRatioAbsolute returns the average monthly savings over the
// trailing 12-month window; 0 when Expenses is absent.
func (c *Calculator) AverageSavingRatioAbsolute() float64 {
	from, to, ok := c.trailingWindow()
	if !ok {
		return 0
	}
	return (c.incomeTotal(from, to) - c.expenseTotal(from, to)) / 12
}
