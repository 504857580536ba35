// Package metrics derives every dashboard-facing figure from the canonical
// sheet datasets: the net-worth series, month/year deltas, saving ratio,
// cash-flow and category breakdowns, and the chart-ready sequences.
package metrics

import (
	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/dataset"
)

// Calculator composes up to four raw tables (Assets, Liabilities, Incomes,
// Expenses — each independently optional) into dashboard metrics. Every
// derived artifact (each sheet's canonical form, the net-worth series) is
// computed at most once and cached for the instance's lifetime.
//
// Instances are cheap and single-use: build one per request/render cycle.
// They are not safe for concurrent use, but independent instances need no
// coordination. No accessor fails: a missing sheet yields the documented
// zero or empty default and a malformed cell degrades to 0 at the parser.
type Calculator struct {
	assetsRaw      *core.RawTable
	liabilitiesRaw *core.RawTable
	expensesRaw    *core.RawTable
	incomesRaw     *core.RawTable

	assets, liabilities, expenses, incomes                 *dataset.Dataset
	assetsDone, liabilitiesDone, expensesDone, incomesDone bool

	netWorth     []NetWorthPoint
	netWorthDone bool
}

// NewCalculator builds a Calculator over the given raw tables; any of them
// may be nil.
func NewCalculator(assets, liabilities, expenses, incomes *core.RawTable) *Calculator {
	return &Calculator{
		assetsRaw:      assets,
		liabilitiesRaw: liabilities,
		expensesRaw:    expenses,
		incomesRaw:     incomes,
	}
}

// NewCalculatorFromTables builds a Calculator from a sheet-kind keyed set,
// as loaded from a snapshot store.
func NewCalculatorFromTables(tables map[core.SheetKind]*core.RawTable) *Calculator {
	return NewCalculator(
		tables[core.SheetAssets],
		tables[core.SheetLiabilities],
		tables[core.SheetExpenses],
		tables[core.SheetIncomes],
	)
}

func (c *Calculator) assetsDataset() *dataset.Dataset {
	if !c.assetsDone {
		c.assets = dataset.Preprocess(c.assetsRaw)
		c.assetsDone = true
	}
	return c.assets
}

func (c *Calculator) liabilitiesDataset() *dataset.Dataset {
	if !c.liabilitiesDone {
		c.liabilities = dataset.Preprocess(c.liabilitiesRaw)
		c.liabilitiesDone = true
	}
	return c.liabilities
}

func (c *Calculator) expensesDataset() *dataset.Dataset {
	if !c.expensesDone {
		c.expenses = dataset.Preprocess(c.expensesRaw)
		c.expensesDone = true
	}
	return c.expenses
}

func (c *Calculator) incomesDataset() *dataset.Dataset {
	if !c.incomesDone {
		c.incomes = dataset.Preprocess(c.incomesRaw)
		c.incomesDone = true
	}
	return c.incomes
}

// trailingWindow returns the 12 calendar months ending at the latest month
// present in Expenses; ok is false when no Expenses data is available.
func (c *Calculator) trailingWindow() (from, to core.Month, ok bool) {
	exp := c.expensesDataset()
	if exp.Empty() {
		return core.Month{}, core.Month{}, false
	}
	to = exp.MaxMonth()
	if to.IsZero() {
		return core.Month{}, core.Month{}, false
	}
	return to.AddMonths(-11), to, true
}

func inWindow(m, from, to core.Month) bool {
	return !m.IsZero() && !m.Before(from) && !m.After(to)
}

// incomeTotal sums every non-date monetary column across Incomes rows
// inside the window; 0 when Incomes is absent.
func (c *Calculator) incomeTotal(from, to core.Month) float64 {
	inc := c.incomesDataset()
	if inc.Empty() {
		return 0
	}
	var total float64
	for _, row := range inc.Rows {
		if inWindow(row.Month, from, to) {
			total += row.SumMonetary(dataset.DateLabel)
		}
	}
	return total
}

// expenseTotal sums the parsed Amount of every Expenses row inside the
// window.
func (c *Calculator) expenseTotal(from, to core.Month) float64 {
	exp := c.expensesDataset()
	if exp.Empty() {
		return 0
	}
	amountCol, ok := exp.Column("Amount")
	if !ok {
		return 0
	}
	var total float64
	for _, row := range exp.Rows {
		if inWindow(row.Month, from, to) {
			total += core.ParseMonetaryValue(row.Cells[amountCol])
		}
	}
	return total
}

// expensesByCategory groups parsed Expenses amounts by the Category cell
// inside the window.
func (c *Calculator) expensesByCategory(from, to core.Month) map[string]float64 {
	out := map[string]float64{}
	exp := c.expensesDataset()
	if exp.Empty() {
		return out
	}
	amountCol, ok := exp.Column("Amount")
	if !ok {
		return out
	}
	categoryCol, ok := exp.Column(dataset.CategoryLabel)
	if !ok {
		return out
	}
	for _, row := range exp.Rows {
		if !inWindow(row.Month, from, to) {
			continue
		}
		category := dataset.CellText(row.Cells[categoryCol])
		if category == "" {
			continue
		}
		out[category] += core.ParseMonetaryValue(row.Cells[amountCol])
	}
	return out
}
