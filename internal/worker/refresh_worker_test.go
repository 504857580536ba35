package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/dstmrk/kanso/internal/amqp"
	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/sheets/memory"
)

type fakeStore struct {
	saved   map[core.SheetKind]*core.RawTable
	saveErr error
}

func (f *fakeStore) SaveTable(_ context.Context, _ string, table *core.RawTable) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	if f.saved == nil {
		f.saved = make(map[core.SheetKind]*core.RawTable)
	}
	f.saved[table.Kind] = table
	return table.Hash(), nil
}

func TestHandleRefreshMessage(t *testing.T) {
	source := memory.NewWithTables(map[core.SheetKind]*core.RawTable{
		core.SheetAssets: {
			Kind:   core.SheetAssets,
			Header: [][]string{{"Date", "Cash"}},
			Rows:   [][]any{{"2024-01", "100"}},
		},
		core.SheetExpenses: {
			Kind:   core.SheetExpenses,
			Header: [][]string{{"Date", "Merchant", "Amount", "Category", "Type"}},
		},
	})
	store := &fakeStore{}
	w := NewRefreshWorker(source, store)

	err := w.HandleRefreshMessage(context.Background(), amqp.NewSheetRefreshMessage("alice"))
	if err != nil {
		t.Fatalf("HandleRefreshMessage: %v", err)
	}
	if len(store.saved) != 2 {
		t.Fatalf("saved %d sheets, want 2", len(store.saved))
	}
	if store.saved[core.SheetAssets] == nil {
		t.Error("assets snapshot not saved")
	}
}

func TestHandleRefreshMessageSaveError(t *testing.T) {
	source := memory.NewWithTables(map[core.SheetKind]*core.RawTable{
		core.SheetAssets: {Kind: core.SheetAssets, Header: [][]string{{"Date"}}},
	})
	store := &fakeStore{saveErr: errors.New("disk full")}
	w := NewRefreshWorker(source, store)

	err := w.HandleRefreshMessage(context.Background(), amqp.NewSheetRefreshMessage("alice"))
	if err == nil {
		t.Fatal("expected error when snapshot save fails")
	}
}
