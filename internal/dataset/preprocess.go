package dataset

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/dstmrk/kanso/internal/core"
)

// Preprocess canonicalizes a raw table: columns get ColumnKey identity,
// each row's date cell is normalized to its first-of-month Month, and rows
// are stably sorted ascending by month with unparsable dates last.
//
// Returns nil when the table is nil or has no Date column; downstream the
// calculator treats a nil Dataset as "this sheet is unavailable".
func Preprocess(t *core.RawTable) *Dataset {
	if t == nil || len(t.Header) == 0 {
		return nil
	}

	cols := columnKeys(t.Header)
	dateIdx := -1
	for i, k := range cols {
		if k.Matches(DateLabel) {
			dateIdx = i
			break
		}
	}
	if dateIdx == -1 {
		slog.Warn("sheet has no Date column, skipping", "sheet", string(t.Kind))
		return nil
	}

	ds := &Dataset{Kind: t.Kind, Columns: cols}
	unparsed := 0
	for _, raw := range t.Rows {
		row := CanonicalRow{Cells: make(map[ColumnKey]any, len(cols))}
		for i, k := range cols {
			if i < len(raw) {
				row.Cells[k] = raw[i]
			}
		}
		if dateIdx < len(raw) {
			if m, ok := core.ParseMonth(raw[dateIdx]); ok {
				row.Month = m
			} else {
				unparsed++
			}
		} else {
			unparsed++
		}
		ds.Rows = append(ds.Rows, row)
	}
	if unparsed > 0 {
		slog.Warn("rows with unparsable dates retained without month identity",
			"sheet", string(t.Kind), "rows", unparsed)
	}

	sort.SliceStable(ds.Rows, func(i, j int) bool {
		return monthLess(ds.Rows[i].Month, ds.Rows[j].Month)
	})
	return ds
}

// monthLess orders months ascending with the null-month sentinel last.
func monthLess(a, b core.Month) bool {
	if a.IsZero() {
		return false
	}
	if b.IsZero() {
		return true
	}
	return a.Before(b)
}

func columnKeys(header [][]string) []ColumnKey {
	top := header[0]
	var sub []string
	if len(header) > 1 {
		sub = header[1]
	}
	keys := make([]ColumnKey, len(top))
	for i := range top {
		k := ColumnKey{Category: strings.TrimSpace(top[i])}
		if i < len(sub) {
			k.Item = strings.TrimSpace(sub[i])
		}
		keys[i] = k
	}
	return keys
}
