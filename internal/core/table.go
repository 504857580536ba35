package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// SheetKind names one of the four source tables backing the dashboard.
type SheetKind string

const (
	SheetAssets      SheetKind = "Assets"
	SheetLiabilities SheetKind = "Liabilities"
	SheetIncomes     SheetKind = "Incomes"
	SheetExpenses    SheetKind = "Expenses"
)

// SheetKinds returns the four sheet kinds in canonical order.
func SheetKinds() []SheetKind {
	return []SheetKind{SheetAssets, SheetLiabilities, SheetIncomes, SheetExpenses}
}

// RawTable is a spreadsheet table as fetched from a backend: one or two
// parallel header rows plus ordered data rows. Cells are strings, numbers
// or timestamps depending on the source; monetary cells stay unparsed until
// a metric needs them.
type RawTable struct {
	Kind   SheetKind  `json:"kind"`
	Header [][]string `json:"header"` // one row for flat tables, two for hierarchical ones
	Rows   [][]any    `json:"rows"`
}

// Hierarchical reports whether the table carries a two-level header.
func (t *RawTable) Hierarchical() bool {
	return t != nil && len(t.Header) > 1
}

// Empty reports whether the table is absent or has no data rows.
func (t *RawTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Hash returns a content hash of the table, used as a cache-key component
// so identical inputs are never recomputed.
func (t *RawTable) Hash() string {
	if t == nil {
		return ""
	}
	payload, err := json.Marshal(t)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
