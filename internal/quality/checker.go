// Package quality cross-checks the four source sheets for structural
// completeness. Its findings are advisory: they are surfaced to the user
// but never block metric computation.
package quality

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/dataset"
)

// Warning severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Warning describes one structural problem found in the source tables.
type Warning struct {
	Sheet    string `json:"sheet"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
}

// requiredColumns per sheet; Date is required everywhere, Expenses carries
// the transactional schema.
var requiredColumns = map[core.SheetKind][]string{
	core.SheetAssets:      {dataset.DateLabel},
	core.SheetLiabilities: {dataset.DateLabel},
	core.SheetIncomes:     {dataset.DateLabel},
	core.SheetExpenses:    {dataset.DateLabel, "Merchant", "Amount", "Category", "Type"},
}

// Checker validates the completeness of the sheet set backing a dashboard.
type Checker struct{}

// NewChecker returns a Checker.
func NewChecker() *Checker { return &Checker{} }

// CheckMissingSheets flags sheets absent from the input set.
func (c *Checker) CheckMissingSheets(tables map[core.SheetKind]*core.RawTable) []Warning {
	var warnings []Warning
	for _, kind := range core.SheetKinds() {
		if tables[kind] != nil {
			continue
		}
		warnings = append(warnings, Warning{
			Sheet:    string(kind),
			Severity: SeverityError,
			Message:  fmt.Sprintf("%s sheet is not loaded", kind),
			Details:  "Check the spreadsheet configuration and refresh data.",
		})
		slog.Warn("missing sheet", "sheet", string(kind))
	}
	return warnings
}

// CheckEmptySheets flags sheets that are present but carry zero data rows.
func (c *Checker) CheckEmptySheets(tables map[core.SheetKind]*core.RawTable) []Warning {
	var warnings []Warning
	for _, kind := range core.SheetKinds() {
		t := tables[kind]
		if t == nil || len(t.Rows) > 0 {
			continue
		}
		warnings = append(warnings, Warning{
			Sheet:    string(kind),
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s sheet has no data", kind),
			Details:  "Add at least one row of data to see visualizations.",
		})
		slog.Warn("empty sheet", "sheet", string(kind))
	}
	return warnings
}

// CheckMissingColumns flags non-empty sheets lacking a structurally
// required column in either header level.
func (c *Checker) CheckMissingColumns(tables map[core.SheetKind]*core.RawTable) []Warning {
	var warnings []Warning
	for _, kind := range core.SheetKinds() {
		t := tables[kind]
		if t == nil || len(t.Rows) == 0 {
			continue
		}
		var missing []string
		for _, col := range requiredColumns[kind] {
			if !headerContains(t.Header, col) {
				missing = append(missing, col)
			}
		}
		if len(missing) == 0 {
			continue
		}
		warnings = append(warnings, Warning{
			Sheet:    string(kind),
			Severity: SeverityError,
			Message:  fmt.Sprintf("%s sheet is missing required columns", kind),
			Details:  "Missing: " + strings.Join(missing, ", "),
		})
		slog.Warn("missing columns", "sheet", string(kind), "columns", strings.Join(missing, ","))
	}
	return warnings
}

// CheckAll runs every check in severity order and returns the combined
// warning list.
func (c *Checker) CheckAll(tables map[core.SheetKind]*core.RawTable) []Warning {
	var all []Warning
	all = append(all, c.CheckMissingSheets(tables)...)
	all = append(all, c.CheckEmptySheets(tables)...)
	all = append(all, c.CheckMissingColumns(tables)...)
	if len(all) > 0 {
		slog.Info("data quality check found issues", "count", len(all))
	}
	return all
}

func headerContains(header [][]string, label string) bool {
	for _, level := range header {
		for _, cell := range level {
			if strings.TrimSpace(cell) == label {
				return true
			}
		}
	}
	return false
}
