// Package worker refreshes sheet snapshots in response to AMQP messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dstmrk/kanso/internal/amqp"
	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/sheets"
	"github.com/dstmrk/kanso/internal/storage"
)

// SnapshotWriter persists a fetched table for a user.
type SnapshotWriter interface {
	SaveTable(ctx context.Context, userKey string, table *core.RawTable) (string, error)
}

var _ SnapshotWriter = (*storage.SQLiteRepository)(nil)

// RefreshWorker fetches a user's sheets from the upstream source and
// replaces the stored snapshots.
type RefreshWorker struct {
	reader sheets.TableReader
	store  SnapshotWriter
}

func NewRefreshWorker(reader sheets.TableReader, store SnapshotWriter) *RefreshWorker {
	return &RefreshWorker{
		reader: reader,
		store:  store,
	}
}

// HandleRefreshMessage processes a single sheet refresh message from AMQP.
// Sheets absent upstream are skipped; the stale snapshot, if any, stays in
// place rather than being wiped by a transient upstream gap.
func (w *RefreshWorker) HandleRefreshMessage(ctx context.Context, msg *amqp.SheetRefreshMessage) error {
	slog.InfoContext(ctx, "Processing sheet refresh message", "user", msg.User)

	tables, err := sheets.ReadAll(ctx, w.reader)
	if err != nil {
		return fmt.Errorf("read sheets: %w", err)
	}

	for _, kind := range core.SheetKinds() {
		table, ok := tables[kind]
		if !ok {
			slog.WarnContext(ctx, "Sheet missing upstream, keeping existing snapshot",
				"user", msg.User, "sheet", string(kind))
			continue
		}
		hash, err := w.store.SaveTable(ctx, msg.User, table)
		if err != nil {
			return fmt.Errorf("save snapshot %s: %w", kind, err)
		}
		slog.InfoContext(ctx, "Sheet snapshot saved",
			"user", msg.User,
			"sheet", string(kind),
			"rows", len(table.Rows),
			"content_hash", hash)
	}

	return nil
}
