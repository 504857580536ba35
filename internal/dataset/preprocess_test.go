package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/dstmrk/kanso/internal/core"
)

func flatAssets(rows ...[]any) *core.RawTable {
	return &core.RawTable{
		Kind:   core.SheetAssets,
		Header: [][]string{{"Date", "Cash", "Stocks"}},
		Rows:   rows,
	}
}

func TestPreprocessSortsByMonth(t *testing.T) {
	ds := Preprocess(flatAssets(
		[]any{"2024-03", "€ 12.000", "€ 500"},
		[]any{"2024-01", "€ 10.000", "€ 300"},
		[]any{"2024-02", "€ 11.000", "€ 400"},
	))
	if ds.Empty() {
		t.Fatal("expected dataset")
	}
	if len(ds.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ds.Rows))
	}
	want := []string{"2024-01", "2024-02", "2024-03"}
	for i, w := range want {
		if got := ds.Rows[i].Month.Key(); got != w {
			t.Fatalf("row %d month = %s, want %s", i, got, w)
		}
	}
}

func TestPreprocessMissingDateColumn(t *testing.T) {
	ds := Preprocess(&core.RawTable{
		Kind:   core.SheetAssets,
		Header: [][]string{{"Cash", "Stocks"}},
		Rows:   [][]any{{"€ 100", "€ 200"}},
	})
	if ds != nil {
		t.Fatal("missing Date column must yield a nil dataset")
	}
	if Preprocess(nil) != nil {
		t.Fatal("nil table must yield a nil dataset")
	}
}

func TestPreprocessHierarchicalHeader(t *testing.T) {
	ds := Preprocess(&core.RawTable{
		Kind: core.SheetAssets,
		Header: [][]string{
			{"Date", "Cash", "Cash", "Stocks"},
			{"", "Checking", "Savings", "ETF"},
		},
		Rows: [][]any{
			{"2024-01", "€ 1.000", "€ 2.000", "€ 3.000"},
		},
	})
	if ds == nil {
		t.Fatal("expected dataset")
	}
	if len(ds.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(ds.Columns))
	}
	if !ds.Columns[1].Hierarchical() || ds.Columns[1].Category != "Cash" || ds.Columns[1].Item != "Checking" {
		t.Fatalf("unexpected column key: %+v", ds.Columns[1])
	}
	// The date column is found through the first level even with a
	// two-row header.
	if ds.Rows[0].Month.Key() != "2024-01" {
		t.Fatalf("month = %s", ds.Rows[0].Month.Key())
	}
}

func TestPreprocessDateInSecondLevel(t *testing.T) {
	ds := Preprocess(&core.RawTable{
		Kind: core.SheetLiabilities,
		Header: [][]string{
			{"", "Mortgage"},
			{"Date", "House"},
		},
		Rows: [][]any{{"2024-02", "€ -98.000"}},
	})
	if ds == nil {
		t.Fatal("Date in the second header level must be discovered")
	}
	if ds.Rows[0].Month.Key() != "2024-02" {
		t.Fatalf("month = %s", ds.Rows[0].Month.Key())
	}
}

func TestPreprocessUnparsableDateKeepsRow(t *testing.T) {
	ds := Preprocess(flatAssets(
		[]any{"2024-01", "€ 100", "€ 200"},
		[]any{"not a date", "€ 999", "€ 999"},
	))
	if len(ds.Rows) != 2 {
		t.Fatalf("unparsable date must not drop the row, got %d rows", len(ds.Rows))
	}
	// Sentinel rows sort last and are invisible to month accessors.
	if !ds.Rows[1].Month.IsZero() {
		t.Fatal("expected null-month sentinel to sort last")
	}
	if got := len(ds.Months()); got != 1 {
		t.Fatalf("Months() = %d entries, want 1", got)
	}
	if ds.MaxMonth().Key() != "2024-01" {
		t.Fatalf("MaxMonth = %s", ds.MaxMonth().Key())
	}
}

func TestPreprocessRicherDateValues(t *testing.T) {
	ds := Preprocess(flatAssets(
		[]any{time.Date(2024, time.May, 17, 9, 30, 0, 0, time.UTC), "€ 100", "€ 200"},
	))
	if ds.Rows[0].Month.Key() != "2024-05" {
		t.Fatalf("timestamp cell not normalized to first-of-month: %s", ds.Rows[0].Month.Key())
	}
}

func TestSumMonetaryExcludesLabels(t *testing.T) {
	ds := Preprocess(&core.RawTable{
		Kind: core.SheetLiabilities,
		Header: [][]string{
			{"Date", "Category", "Mortgage", "Loans"},
		},
		Rows: [][]any{
			{"2024-01", "Debt", "€ -98.000", "€ -2.000"},
		},
	})
	row, ok := ds.RowForMonth(core.NewMonth(2024, time.January))
	if !ok {
		t.Fatal("row not found")
	}
	got := row.SumMonetary(DateLabel, CategoryLabel)
	if math.Abs(got-(-100000)) > 1e-9 {
		t.Fatalf("SumMonetary = %v, want -100000", got)
	}
	// Without the Category exclusion the label cell parses to 0 anyway,
	// but the date cell must never leak into the sum.
	if got := row.SumMonetary(DateLabel); math.Abs(got-(-100000)) > 1e-9 {
		t.Fatalf("SumMonetary without Category = %v", got)
	}
}

func TestLatestRowAtOrBefore(t *testing.T) {
	ds := Preprocess(flatAssets(
		[]any{"2024-01", "€ 100", "0"},
		[]any{"2024-03", "€ 300", "0"},
	))
	row, ok := ds.LatestRowAtOrBefore(core.NewMonth(2024, time.February))
	if !ok || row.Month.Key() != "2024-01" {
		t.Fatalf("expected 2024-01, got %v ok=%v", row.Month.Key(), ok)
	}
	// A reference older than every row falls back to the latest row, so a
	// sheet that only has newer data still contributes a snapshot.
	row, ok = ds.LatestRowAtOrBefore(core.NewMonth(2023, time.December))
	if !ok || row.Month.Key() != "2024-03" {
		t.Fatalf("expected fallback to 2024-03, got %v ok=%v", row.Month.Key(), ok)
	}
}
