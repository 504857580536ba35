package memory

import (
	"context"
	"testing"

	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/sheets"
)

func TestStoreReadTable(t *testing.T) {
	s := New()
	s.Put(&core.RawTable{
		Kind:   core.SheetAssets,
		Header: [][]string{{"Date", "Cash"}},
		Rows:   [][]any{{"2024-01", "100"}},
	})

	table, err := s.ReadTable(context.Background(), core.SheetAssets)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if table == nil || len(table.Rows) != 1 {
		t.Fatalf("ReadTable returned %+v", table)
	}

	missing, err := s.ReadTable(context.Background(), core.SheetIncomes)
	if err != nil {
		t.Fatalf("ReadTable(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("missing sheet = %+v, want nil", missing)
	}
}

func TestNewWithSampleData(t *testing.T) {
	s := NewWithSampleData()
	for _, kind := range core.SheetKinds() {
		table, err := s.ReadTable(context.Background(), kind)
		if err != nil {
			t.Fatalf("ReadTable(%s): %v", kind, err)
		}
		if table == nil || len(table.Rows) == 0 {
			t.Fatalf("sample sheet %s empty: %+v", kind, table)
		}
		if table.Header[0][0] != "Date" {
			t.Errorf("sample sheet %s missing Date column: %v", kind, table.Header[0])
		}
	}
}

func TestReadAll(t *testing.T) {
	s := NewWithTables(map[core.SheetKind]*core.RawTable{
		core.SheetAssets:   {Kind: core.SheetAssets, Header: [][]string{{"Date"}}},
		core.SheetExpenses: {Kind: core.SheetExpenses, Header: [][]string{{"Date"}}},
		core.SheetIncomes:  nil,
	})

	tables, err := sheets.ReadAll(context.Background(), s)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("len(tables) = %d, want 2: %v", len(tables), tables)
	}
	if tables[core.SheetAssets] == nil || tables[core.SheetExpenses] == nil {
		t.Error("seeded sheets missing from ReadAll result")
	}
}
