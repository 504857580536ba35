// Package xlsx reads raw tables from a local Excel workbook. It exists so
// the dashboard can run against an exported copy of the spreadsheet with
// no Google account involved.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dstmrk/kanso/internal/config"
	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/log"
	ports "github.com/dstmrk/kanso/internal/sheets"
)

type Reader struct {
	path       string
	sheetNames map[core.SheetKind]string
	logger     *log.Logger
}

var _ ports.TableReader = (*Reader)(nil)

// New creates a workbook reader. The file is opened per read so a
// re-exported workbook is picked up without restarting.
func New(cfg *config.Config, logger *log.Logger) *Reader {
	names := make(map[core.SheetKind]string, len(core.SheetKinds()))
	for _, kind := range core.SheetKinds() {
		names[kind] = cfg.SheetName(kind)
	}
	return &Reader{
		path:       cfg.XLSXWorkbookPath,
		sheetNames: names,
		logger:     logger.WithComponent(log.ComponentSheets),
	}
}

func headerRows(kind core.SheetKind) int {
	if kind == core.SheetExpenses {
		return 1
	}
	return 2
}

// ReadTable reads one worksheet as formatted strings. A worksheet absent
// from the workbook yields (nil, nil).
func (r *Reader) ReadTable(ctx context.Context, kind core.SheetKind) (*core.RawTable, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", r.path, err)
	}
	defer f.Close()

	name := r.sheetNames[kind]
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("lookup worksheet %s: %w", name, err)
	}
	if idx == -1 {
		r.logger.WarnContext(ctx, "worksheet not found in workbook",
			log.FieldSheet, string(kind), "sheet_name", name)
		return nil, nil
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", name, err)
	}

	table := &core.RawTable{Kind: kind}
	nHeader := headerRows(kind)
	for i, row := range rows {
		if i < nHeader {
			table.Header = append(table.Header, row)
			continue
		}
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		table.Rows = append(table.Rows, cells)
	}

	r.logger.DebugContext(ctx, "worksheet read",
		log.FieldSheet, string(kind), log.FieldRows, len(table.Rows))
	return table, nil
}
