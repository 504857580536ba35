package metrics

import (
	"strconv"
	"strings"

	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/dataset"
)

// defaultIncomeLabel is used when no token of a hierarchical income column
// survives the header-noise filter.
const defaultIncomeLabel = "Income"

// IncomeSourcesBetween sums each income column inside [from, to] and keys
// the result by a display label. Flat columns use the column name;
// hierarchical columns use the last meaningful token (see
// incomeSourceLabel). Date columns never produce a label.
func (c *Calculator) IncomeSourcesBetween(from, to core.Month) map[string]float64 {
	out := map[string]float64{}
	inc := c.incomesDataset()
	if inc.Empty() {
		return out
	}
	for _, col := range inc.Columns {
		if col.Matches(dataset.DateLabel) {
			continue
		}
		label := incomeSourceLabel(col)
		var total float64
		for _, row := range inc.Rows {
			if inWindow(row.Month, from, to) {
				total += core.ParseMonetaryValue(row.Cells[col])
			}
		}
		out[label] += total
	}
	return out
}

// incomeSourceLabel derives a display label from a possibly malformed
// two-level header. Tokens that parse as a nonzero amount (a data value
// bleeding into the header) or look purely numeric or date-shaped are
// discarded; the last surviving token wins, the category falling back to
// defaultIncomeLabel when nothing survives.
func incomeSourceLabel(col dataset.ColumnKey) string {
	if !col.Hierarchical() {
		return col.Category
	}
	label := defaultIncomeLabel
	for _, token := range []string{col.Category, col.Item} {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if core.ParseMonetaryValue(token) != 0 {
			continue
		}
		if looksNumericOrDate(token) {
			continue
		}
		label = token
	}
	return label
}

func looksNumericOrDate(s string) bool {
	if _, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return true
	}
	_, ok := core.ParseMonth(s)
	return ok
}

// CashFlowLast12Months merges the income-source breakdown, the derived
// Savings figure, the total Expenses figure and the per-category expense
// breakdown into one flat label-to-amount mapping over the trailing
// 12-month window. Without an Expenses dataset it returns
// {Savings: 0, Expenses: 0} with no further keys.
func (c *Calculator) CashFlowLast12Months() map[string]float64 {
	out := map[string]float64{"Savings": 0, "Expenses": 0}
	from, to, ok := c.trailingWindow()
	if !ok {
		return out
	}

	var totalIncome float64
	for label, amount := range c.IncomeSourcesBetween(from, to) {
		out[label] = amount
		totalIncome += amount
	}

	totalExpense := c.expenseTotal(from, to)
	out["Expenses"] = totalExpense
	out["Savings"] = totalIncome - totalExpense

	for category, amount := range c.expensesByCategory(from, to) {
		out[category] = amount
	}
	return out
}

// ExpensesByCategoryLast12Months returns the per-category expense totals
// over the trailing 12-month window; empty without an Expenses dataset.
func (c *Calculator) ExpensesByCategoryLast12Months() map[string]float64 {
	from, to, ok := c.trailingWindow()
	if !ok {
		return map[string]float64{}
	}
	return c.expensesByCategory(from, to)
}
