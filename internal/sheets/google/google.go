// Package google reads raw tables from a Google spreadsheet through the
// Sheets API with Service Account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/dstmrk/kanso/internal/config"
	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/log"
	ports "github.com/dstmrk/kanso/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetNames    map[core.SheetKind]string
	logger        *log.Logger
}

var _ ports.TableReader = (*Client)(nil)

// New creates a Sheets client from the application configuration, using
// either inline Service Account JSON or a credentials file.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Client, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing Google spreadsheet ID")
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	names := make(map[core.SheetKind]string, len(core.SheetKinds()))
	for _, kind := range core.SheetKinds() {
		names[kind] = cfg.SheetName(kind)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetNames:    names,
		logger:        logger.WithComponent(log.ComponentSheets),
	}, nil
}

func loadCredentials(cfg *config.Config) ([]byte, error) {
	switch {
	case cfg.GoogleCredentialsJSON != "":
		return []byte(cfg.GoogleCredentialsJSON), nil
	case cfg.GoogleCredentialsFile != "":
		data, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing Google credentials (set GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE)")
	}
}

// headerRows is how many leading rows form the header of each sheet kind.
// Assets, Liabilities and Incomes use two-level (Category/Item) headers;
// Expenses is a flat transaction log.
func headerRows(kind core.SheetKind) int {
	if kind == core.SheetExpenses {
		return 1
	}
	return 2
}

// ReadTable fetches one sheet as formatted strings, exactly as a user sees
// them in the spreadsheet UI. A sheet that does not exist in the
// spreadsheet yields (nil, nil).
func (c *Client) ReadTable(ctx context.Context, kind core.SheetKind) (*core.RawTable, error) {
	name := c.sheetNames[kind]
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, name).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		if isMissingSheet(err) {
			c.logger.WarnContext(ctx, "sheet not found in spreadsheet",
				log.FieldSheet, string(kind), "sheet_name", name)
			return nil, nil
		}
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}

	table := &core.RawTable{Kind: kind}
	nHeader := headerRows(kind)
	for i, row := range resp.Values {
		if i < nHeader {
			header := make([]string, len(row))
			for j, cell := range row {
				header[j] = fmt.Sprint(cell)
			}
			table.Header = append(table.Header, header)
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	c.logger.DebugContext(ctx, "sheet fetched",
		log.FieldSheet, string(kind), log.FieldRows, len(table.Rows))
	return table, nil
}

// isMissingSheet reports whether the API error means the requested tab does
// not exist. The Sheets API signals this as a 400 whose message starts with
// "Unable to parse range".
func isMissingSheet(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == 400 && strings.Contains(apiErr.Message, "Unable to parse range")
}
