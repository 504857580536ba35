package metrics

import (
	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/dataset"
)

// ChartSeries is one month-indexed line: parallel Months labels and Values.
type ChartSeries struct {
	Months []string  `json:"months"`
	Values []float64 `json:"values"`
}

// IncomeExpenseSeries carries the monthly income and expense totals over the
// trailing window. Expenses are negated so both series plot around zero.
type IncomeExpenseSeries struct {
	Months   []string  `json:"months"`
	Incomes  []float64 `json:"incomes"`
	Expenses []float64 `json:"expenses"`
}

// AssetsLiabilitiesSnapshot returns the latest per-column balances, grouped
// for display. Hierarchical columns nest as category -> item -> amount
// (columns with an empty category are skipped); flat columns map the label
// straight to its amount. Liability amounts come from the liabilities row
// closest at-or-before the latest assets month, so a liabilities sheet that
// lags a month still pairs with the assets it belongs to; when every
// liabilities row is newer, the latest one is used instead.
func (c *Calculator) AssetsLiabilitiesSnapshot() map[string]map[string]any {
	out := map[string]map[string]any{
		"assets":      {},
		"liabilities": {},
	}

	assetsRow, ok := c.assetsDataset().LatestRow()
	ref := core.Month{}
	if ok {
		ref = assetsRow.Month
		out["assets"] = snapshotGroups(assetsRow, dataset.DateLabel)
	}
	if liabRow, ok := c.liabilitiesDataset().LatestRowAtOrBefore(ref); ok {
		out["liabilities"] = snapshotGroups(liabRow, dataset.DateLabel, dataset.CategoryLabel)
	}
	return out
}

func snapshotGroups(row dataset.CanonicalRow, exclude ...string) map[string]any {
	groups := map[string]any{}
	for k, v := range row.Cells {
		if k.MatchesAny(exclude...) {
			continue
		}
		amount := core.ParseMonetaryValue(v)
		if !k.Hierarchical() {
			groups[k.Category] = amount
			continue
		}
		if k.Category == "" {
			continue
		}
		nested, _ := groups[k.Category].(map[string]float64)
		if nested == nil {
			nested = map[string]float64{}
			groups[k.Category] = nested
		}
		nested[k.Item] = amount
	}
	return groups
}

// MonthlyNetWorth returns the net-worth series shaped for charting.
func (c *Calculator) MonthlyNetWorth() ChartSeries {
	series := c.NetWorthSeries()
	out := ChartSeries{
		Months: make([]string, 0, len(series)),
		Values: make([]float64, 0, len(series)),
	}
	for _, p := range series {
		out.Months = append(out.Months, p.Month.Label())
		out.Values = append(out.Values, p.Value)
	}
	return out
}

// IncomesVsExpenses returns the month-by-month income and expense totals
// over the trailing 12-month window. Months without rows contribute zeros,
// keeping the series a fixed 12 points wide.
func (c *Calculator) IncomesVsExpenses() IncomeExpenseSeries {
	out := IncomeExpenseSeries{}
	from, _, ok := c.trailingWindow()
	if !ok {
		return out
	}
	for i := 0; i < 12; i++ {
		m := from.AddMonths(i)
		out.Months = append(out.Months, m.Label())
		out.Incomes = append(out.Incomes, c.incomeTotal(m, m))
		out.Expenses = append(out.Expenses, -c.expenseTotal(m, m))
	}
	return out
}
