// Package sheets defines the ports for tabular data sources. An adapter
// turns one backing store (a Google spreadsheet, an xlsx workbook, an
// in-memory fixture) into raw tables keyed by sheet kind.
package sheets

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dstmrk/kanso/internal/core"
)

// TableReader reads one raw table from the backing store. A missing sheet
// is not an error: adapters return (nil, nil) so the caller can degrade to
// partial data and let the quality checker report it.
type TableReader interface {
	ReadTable(ctx context.Context, kind core.SheetKind) (*core.RawTable, error)
}

// ReadAll fetches every sheet kind concurrently. The result holds an entry
// for each kind that exists in the store; the first read error cancels the
// remaining fetches.
func ReadAll(ctx context.Context, reader TableReader) (map[core.SheetKind]*core.RawTable, error) {
	var mu sync.Mutex
	tables := make(map[core.SheetKind]*core.RawTable)

	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range core.SheetKinds() {
		g.Go(func() error {
			table, err := reader.ReadTable(ctx, kind)
			if err != nil {
				return err
			}
			if table == nil {
				return nil
			}
			mu.Lock()
			tables[kind] = table
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
