// Package dataset canonicalizes raw spreadsheet tables into month-sorted
// datasets the metrics calculator can aggregate over.
package dataset

import (
	"strings"

	"github.com/dstmrk/kanso/internal/core"
)

// DateLabel is the header label identifying a table's date column.
const DateLabel = "Date"

// CategoryLabel names the liabilities grouping column, excluded from
// monetary sums alongside the date columns.
const CategoryLabel = "Category"

// ColumnKey is the identity of a table column: a flat label (Item empty),
// or a (Category, Item) pair for two-level headers.
type ColumnKey struct {
	Category string
	Item     string
}

// Hierarchical reports whether the key came from a two-level header.
func (k ColumnKey) Hierarchical() bool { return k.Item != "" }

// Matches reports whether either hierarchical token equals label.
func (k ColumnKey) Matches(label string) bool {
	return k.Category == label || k.Item == label
}

// MatchesAny reports whether either token is in the exclusion set.
func (k ColumnKey) MatchesAny(labels ...string) bool {
	for _, l := range labels {
		if k.Matches(l) {
			return true
		}
	}
	return false
}

func (k ColumnKey) String() string {
	if k.Item == "" {
		return k.Category
	}
	return k.Category + "/" + k.Item
}

// CanonicalRow is one source row keyed by canonical column identity. Month
// is zero when the row's date cell could not be parsed; such rows are
// retained but excluded from month-keyed aggregation.
type CanonicalRow struct {
	Month core.Month
	Cells map[ColumnKey]any
}

// SumMonetary sums the parsed value of every cell whose column has no
// hierarchical token in the exclusion set.
func (r CanonicalRow) SumMonetary(exclude ...string) float64 {
	var total float64
	for k, v := range r.Cells {
		if k.MatchesAny(exclude...) {
			continue
		}
		total += core.ParseMonetaryValue(v)
	}
	return total
}

// Dataset is the canonical, month-sorted form of one raw table. A Dataset
// is built once per table and treated as immutable afterwards. All methods
// are nil-safe so a missing sheet degrades to empty results.
type Dataset struct {
	Kind    core.SheetKind
	Columns []ColumnKey
	Rows    []CanonicalRow
}

// Empty reports whether the dataset is absent or has no rows.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}

// Months returns the distinct parsed months in ascending order.
func (d *Dataset) Months() []core.Month {
	if d == nil {
		return nil
	}
	var out []core.Month
	for _, r := range d.Rows {
		if r.Month.IsZero() {
			continue
		}
		if len(out) > 0 && out[len(out)-1].Equal(r.Month) {
			continue
		}
		out = append(out, r.Month)
	}
	return out
}

// MaxMonth returns the latest parsed month, or the zero Month when no row
// has a valid date.
func (d *Dataset) MaxMonth() core.Month {
	if d == nil {
		return core.Month{}
	}
	for i := len(d.Rows) - 1; i >= 0; i-- {
		if !d.Rows[i].Month.IsZero() {
			return d.Rows[i].Month
		}
	}
	return core.Month{}
}

// RowForMonth returns the row carrying m; with duplicate months the last
// one wins.
func (d *Dataset) RowForMonth(m core.Month) (CanonicalRow, bool) {
	if d == nil || m.IsZero() {
		return CanonicalRow{}, false
	}
	for i := len(d.Rows) - 1; i >= 0; i-- {
		if d.Rows[i].Month.Equal(m) {
			return d.Rows[i], true
		}
	}
	return CanonicalRow{}, false
}

// LatestRow returns the row with the greatest parsed month.
func (d *Dataset) LatestRow() (CanonicalRow, bool) {
	if d == nil {
		return CanonicalRow{}, false
	}
	for i := len(d.Rows) - 1; i >= 0; i-- {
		if !d.Rows[i].Month.IsZero() {
			return d.Rows[i], true
		}
	}
	return CanonicalRow{}, false
}

// LatestRowAtOrBefore returns the row whose month is closest at-or-before
// ref. When every row is newer than ref, or ref is zero, it falls back to
// the latest row.
func (d *Dataset) LatestRowAtOrBefore(ref core.Month) (CanonicalRow, bool) {
	if d == nil {
		return CanonicalRow{}, false
	}
	if ref.IsZero() {
		return d.LatestRow()
	}
	for i := len(d.Rows) - 1; i >= 0; i-- {
		m := d.Rows[i].Month
		if m.IsZero() {
			continue
		}
		if !m.After(ref) {
			return d.Rows[i], true
		}
	}
	return d.LatestRow()
}

// Column returns the first column whose identity matches label.
func (d *Dataset) Column(label string) (ColumnKey, bool) {
	if d == nil {
		return ColumnKey{}, false
	}
	for _, k := range d.Columns {
		if k.Matches(label) {
			return k, true
		}
	}
	return ColumnKey{}, false
}

// CellText returns the trimmed string form of a cell, or "" for non-text
// cells.
func CellText(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
