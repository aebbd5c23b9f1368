package ginserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"staybook/internal/app/commands"
	catalogapp "staybook/internal/app/handlers/catalog"
	invoiceapp "staybook/internal/app/handlers/invoice"
	reservationapp "staybook/internal/app/handlers/reservation"
	"staybook/internal/app/middleware"
	appoutbox "staybook/internal/app/outbox"
	"staybook/internal/app/queries"
	domaincatalog "staybook/internal/domain/catalog"
	"staybook/internal/domain/shared/money"
	"staybook/internal/infra/config"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/obs"
	paymemory "staybook/internal/infra/payments/memory"
	"staybook/internal/infra/storage/memory"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	catalogRepo := memory.NewCatalogRepository()
	spa := domaincatalog.Facility{ID: "spa", Name: "Spa access", Price: money.Must(2500, "USD")}
	property := &domaincatalog.Property{
		ID:          "prop-1",
		Title:       "Seaside loft",
		NightlyRate: money.Must(10000, "USD"),
		GuestsLimit: 4,
		Facilities:  []domaincatalog.Facility{spa},
	}
	if err := catalogRepo.Save(context.Background(), property); err != nil {
		t.Fatalf("seed property: %v", err)
	}
	catalogRepo.SetFacilities([]domaincatalog.Facility{spa})

	factory := memory.Factory{
		CatalogRepo:    catalogRepo,
		OrderRepo:      memory.NewOrderRepository(),
		ServiceReqRepo: memory.NewServiceRequestRepository(),
	}
	drafts := memory.NewDraftStore(0)
	box := memory.NewOutbox()
	encoder := appoutbox.JSONEventEncoder{}
	fees := reservationapp.FeeSchedule{CleaningCents: 800, ServiceCents: 1300, TaxCents: 1100}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, reservationapp.StartDraftCommand{}.Key(), &reservationapp.StartDraftHandler{
		UoWFactory: factory, Drafts: drafts, Fees: fees, Outbox: box, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, reservationapp.AddLineItemCommand{}.Key(), &reservationapp.AddLineItemHandler{
		Catalog: catalogRepo, Drafts: drafts,
	})
	commands.RegisterHandler(commandBus, reservationapp.RemoveLineItemCommand{}.Key(), &reservationapp.RemoveLineItemHandler{
		Drafts: drafts,
	})
	commands.RegisterHandler(commandBus, reservationapp.AdvanceDraftCommand{}.Key(), &reservationapp.AdvanceDraftHandler{
		UoWFactory: factory, Drafts: drafts, Payments: paymemory.New(), Outbox: box, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, reservationapp.AbandonDraftCommand{}.Key(), &reservationapp.AbandonDraftHandler{
		Drafts: drafts,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, reservationapp.GetDraftQuery{}.Key(), &reservationapp.GetDraftHandler{Drafts: drafts})
	queries.RegisterHandler(queryBus, catalogapp.GetPropertyQuery{}.Key(), &catalogapp.GetPropertyHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, catalogapp.ListFacilitiesQuery{}.Key(), &catalogapp.ListFacilitiesHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, invoiceapp.PriceInvoiceQuery{}.Key(), &invoiceapp.PriceInvoiceHandler{})

	chained := middleware.ChainCommands(
		commandBus,
		middleware.Validation(middleware.SelfValidator{}),
		middleware.Idempotency(memory.NewIdempotencyStore(), nil),
		middleware.Transaction(factory, nil),
		middleware.OutboxFlush(box),
	)
	queryChained := middleware.ChainQueries(queryBus)

	handlers := ginserver.Handlers{
		Reservation: ginserver.ReservationHandler{Commands: chained, Queries: queryChained},
		Catalog:     ginserver.CatalogHandler{Queries: queryChained},
		Invoice:     ginserver.InvoiceHandler{Queries: queryChained},
	}
	cfg := config.Config{Env: "test", HTTPAddr: ":0"}
	server := ginserver.NewServer(cfg, obs.Middleware{}, obs.HealthHandlers{}, handlers)
	return server.Handler
}

func doJSON(t *testing.T, h http.Handler, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestReservationFlow(t *testing.T) {
	h := newTestServer(t)
	session := "sess-http-1"

	start := map[string]any{
		"property_id": "prop-1",
		"check_in":    "2026-03-10T00:00:00Z",
		"check_out":   "2026-03-13T00:00:00Z",
		"travelers":   2,
	}
	rr := doJSON(t, h, http.MethodPost, "/api/v1/reservations", session, start)
	if rr.Code != http.StatusCreated {
		t.Fatalf("start: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, h, http.MethodPost, "/api/v1/reservations/current/items", session, map[string]any{
		"kind":        "catalog",
		"facility_id": "spa",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var last struct {
		Draft struct {
			Step string `json:"step"`
			Quote *struct {
				Total struct {
					Amount int64 `json:"amount"`
				} `json:"total"`
			} `json:"quote"`
		} `json:"draft"`
		OrderID string `json:"order_id"`
	}
	for i := 0; i < 3; i++ {
		rr = doJSON(t, h, http.MethodPost, "/api/v1/reservations/current/advance", session, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("advance %d: expected 200, got %d: %s", i, rr.Code, rr.Body.String())
		}
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &last); err != nil {
		t.Fatalf("decode advance response: %v", err)
	}
	if last.Draft.Step != "confirmed" {
		t.Fatalf("expected confirmed, got %s", last.Draft.Step)
	}
	if last.OrderID == "" {
		t.Fatalf("expected an order id on the final advance")
	}
	// 3 nights x 2 travelers x $100 + $25 spa + $8 + $13 + $11 fees.
	if last.Draft.Quote == nil || last.Draft.Quote.Total.Amount != 65700 {
		t.Fatalf("expected total 65700, got %+v", last.Draft.Quote)
	}
}

func TestStartRequiresSessionHeader(t *testing.T) {
	h := newTestServer(t)
	rr := doJSON(t, h, http.MethodPost, "/api/v1/reservations", "", map[string]any{"property_id": "prop-1"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without session header, got %d", rr.Code)
	}
}

func TestGetDraftNotFound(t *testing.T) {
	h := newTestServer(t)
	rr := doJSON(t, h, http.MethodGet, "/api/v1/reservations/current", "sess-unknown", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestPriceInvoiceEndpoint(t *testing.T) {
	h := newTestServer(t)
	rr := doJSON(t, h, http.MethodPost, "/api/v1/invoices/price", "", map[string]any{
		"lines": []map[string]any{
			{"description": "Late checkout", "quantity": 2, "unit_price_cents": 50},
		},
		"currency":         "USD",
		"discount_mode":    "amount",
		"discount_cents":   10,
		"tax_rate_percent": 20,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var totals struct {
		Total struct {
			Amount int64 `json:"amount"`
		} `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &totals); err != nil {
		t.Fatalf("decode totals: %v", err)
	}
	if totals.Total.Amount != 108 {
		t.Fatalf("expected total 108, got %d", totals.Total.Amount)
	}
}

func TestListFacilities(t *testing.T) {
	h := newTestServer(t)
	rr := doJSON(t, h, http.MethodGet, "/api/v1/facilities", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}
