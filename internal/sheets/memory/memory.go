// Package memory is an in-memory table source for tests and local runs
// without a spreadsheet behind them.
package memory

import (
	"context"
	"sync"

	"github.com/dstmrk/kanso/internal/core"
	ports "github.com/dstmrk/kanso/internal/sheets"
)

type Store struct {
	mu     sync.RWMutex
	tables map[core.SheetKind]*core.RawTable
}

var _ ports.TableReader = (*Store)(nil)

func New() *Store {
	return &Store{tables: make(map[core.SheetKind]*core.RawTable)}
}

// NewWithTables seeds the store, skipping nil entries.
func NewWithTables(tables map[core.SheetKind]*core.RawTable) *Store {
	s := New()
	for kind, table := range tables {
		if table != nil {
			s.tables[kind] = table
		}
	}
	return s
}

// NewWithSampleData seeds the store with a small demo ledger so the full
// refresh pipeline can run locally without a spreadsheet or credentials.
func NewWithSampleData() *Store {
	return NewWithTables(map[core.SheetKind]*core.RawTable{
		core.SheetAssets: {
			Kind: core.SheetAssets,
			Header: [][]string{
				{"Date", "Bank", "Bank", "Investments"},
				{"", "Checking", "Savings", "ETF"},
			},
			Rows: [][]any{
				{"2024-01", "1.200,00 €", "5.000,00 €", "2.500,00 €"},
				{"2024-02", "1.350,00 €", "5.100,00 €", "2.650,00 €"},
				{"2024-03", "1.100,00 €", "5.400,00 €", "2.800,00 €"},
			},
		},
		core.SheetLiabilities: {
			Kind:   core.SheetLiabilities,
			Header: [][]string{{"Date", "Category", "Mortgage"}},
			Rows: [][]any{
				{"2024-01", "Debt", "-90.000,00 €"},
				{"2024-02", "Debt", "-89.500,00 €"},
				{"2024-03", "Debt", "-89.000,00 €"},
			},
		},
		core.SheetExpenses: {
			Kind:   core.SheetExpenses,
			Header: [][]string{{"Date", "Merchant", "Amount", "Category", "Type"}},
			Rows: [][]any{
				{"2024-01", "Supermarket", "240,50 €", "Groceries", "Card"},
				{"2024-02", "Landlord", "850,00 €", "Housing", "Transfer"},
				{"2024-03", "Supermarket", "255,10 €", "Groceries", "Card"},
			},
		},
		core.SheetIncomes: {
			Kind:   core.SheetIncomes,
			Header: [][]string{{"Date", "Salary"}},
			Rows: [][]any{
				{"2024-01", "2.400,00 €"},
				{"2024-02", "2.400,00 €"},
				{"2024-03", "2.400,00 €"},
			},
		},
	})
}

// Put stores or replaces one table.
func (s *Store) Put(table *core.RawTable) {
	if table == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table.Kind] = table
}

// ReadTable returns the stored table for kind, or (nil, nil) when absent.
func (s *Store) ReadTable(_ context.Context, kind core.SheetKind) (*core.RawTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables[kind], nil
}
