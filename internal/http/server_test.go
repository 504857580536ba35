package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dstmrk/kanso/internal/core"
	"github.com/dstmrk/kanso/internal/log"
	"github.com/dstmrk/kanso/internal/services"
)

type stubLoader struct {
	tables map[core.SheetKind]*core.RawTable
}

func (s *stubLoader) LoadTables(_ context.Context, _ string) (map[core.SheetKind]*core.RawTable, error) {
	return s.tables, nil
}

func (s *stubLoader) CombinedHash(_ context.Context, _ string) (string, error) {
	return "h", nil
}

type stubPublisher struct{ published int }

func (s *stubPublisher) PublishSheetRefresh(_ context.Context, _ string) error {
	s.published++
	return nil
}

func newTestServer(publisher services.RefreshPublisher) *Server {
	loader := &stubLoader{tables: map[core.SheetKind]*core.RawTable{
		core.SheetAssets: {
			Kind:   core.SheetAssets,
			Header: [][]string{{"Date", "Cash"}},
			Rows:   [][]any{{"2024-01", "1000"}},
		},
		core.SheetLiabilities: {
			Kind:   core.SheetLiabilities,
			Header: [][]string{{"Date", "Category", "Loan"}},
			Rows:   [][]any{{"2024-01", "Debt", "-300"}},
		},
		core.SheetExpenses: {
			Kind:   core.SheetExpenses,
			Header: [][]string{{"Date", "Merchant", "Amount", "Category", "Type"}},
			Rows:   [][]any{{"2024-01", "Shop", "50", "Groceries", "Card"}},
		},
		core.SheetIncomes: {
			Kind:   core.SheetIncomes,
			Header: [][]string{{"Date", "Salary"}},
			Rows:   [][]any{{"2024-01", "3000"}},
		},
	}}
	logger := log.New(log.DefaultConfig())
	dashboard := services.NewDashboardService(loader, publisher, "EUR", 16, time.Minute, logger)
	return NewServer(":0", dashboard, "alice", logger)
}

func TestHandleKPIs(t *testing.T) {
	srv := newTestServer(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/kpis", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload["net_worth"] != 700.0 {
		t.Errorf("net_worth = %v, want 700", payload["net_worth"])
	}
	if payload["net_worth_formatted"] != "700 €" {
		t.Errorf("net_worth_formatted = %v", payload["net_worth_formatted"])
	}
}

func TestHandleCharts(t *testing.T) {
	srv := newTestServer(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/charts", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload struct {
		NetWorth struct {
			Months []string  `json:"months"`
			Values []float64 `json:"values"`
		} `json:"net_worth"`
		CashFlow map[string]float64 `json:"cash_flow"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(payload.NetWorth.Months) != 1 {
		t.Errorf("net worth months = %d, want 1", len(payload.NetWorth.Months))
	}
	if payload.CashFlow["Expenses"] != 50 {
		t.Errorf("cash_flow[Expenses] = %v, want 50", payload.CashFlow["Expenses"])
	}
}

func TestHandleQuality(t *testing.T) {
	srv := newTestServer(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/quality", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload struct {
		Warnings []map[string]any `json:"warnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Warnings == nil {
		t.Error("warnings is null, want empty array")
	}
}

func TestHandleRefresh(t *testing.T) {
	publisher := &stubPublisher{}
	srv := newTestServer(publisher)
	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if publisher.published != 1 {
		t.Errorf("published = %d, want 1", publisher.published)
	}
}

func TestHandleRefreshWithoutPublisher(t *testing.T) {
	srv := newTestServer(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
