package reservation_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"staybook/internal/app/commands"
	reservationapp "staybook/internal/app/handlers/reservation"
	"staybook/internal/app/middleware"
	appoutbox "staybook/internal/app/outbox"
	domaincatalog "staybook/internal/domain/catalog"
	domainreservation "staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
	paymemory "staybook/internal/infra/payments/memory"
	"staybook/internal/infra/storage/memory"
)

type fixture struct {
	bus      commands.Bus
	drafts   *memory.DraftStore
	orders   *memory.OrderRepository
	payments *paymemory.Payments
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	catalogRepo := memory.NewCatalogRepository()
	property := &domaincatalog.Property{
		ID:          "prop-1",
		Title:       "Seaside loft",
		NightlyRate: money.Must(10000, "USD"),
		GuestsLimit: 4,
	}
	if err := catalogRepo.Save(context.Background(), property); err != nil {
		t.Fatalf("seed property: %v", err)
	}

	orders := memory.NewOrderRepository()
	factory := memory.Factory{
		CatalogRepo:    catalogRepo,
		OrderRepo:      orders,
		ServiceReqRepo: memory.NewServiceRequestRepository(),
	}
	drafts := memory.NewDraftStore(0)
	payments := paymemory.New()
	box := memory.NewOutbox()

	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, reservationapp.AdvanceDraftCommand{}.Key(), &reservationapp.AdvanceDraftHandler{
		UoWFactory: factory,
		Drafts:     drafts,
		Payments:   payments,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
	})

	chained := middleware.ChainCommands(
		bus,
		middleware.Validation(middleware.SelfValidator{}),
		middleware.Idempotency(memory.NewIdempotencyStore(), nil),
		middleware.Transaction(factory, nil),
		middleware.OutboxFlush(box),
	)
	return fixture{bus: chained, drafts: drafts, orders: orders, payments: payments}
}

func seedDraft(t *testing.T, drafts *memory.DraftStore, step domainreservation.Step) {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	draft, err := domainreservation.NewDraft(domainreservation.CreateParams{
		SessionID: "sess-1",
		Property: &domaincatalog.Property{
			ID:          "prop-1",
			Title:       "Seaside loft",
			NightlyRate: money.Must(10000, "USD"),
			GuestsLimit: 4,
		},
		Range:     dr,
		Travelers: 2,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}
	draft.ClearEvents()
	for draft.Step != step {
		quote, err := draft.Price()
		if err != nil {
			t.Fatalf("Price: %v", err)
		}
		draft.Advance(quote, time.Now().UTC())
		draft.ClearEvents()
	}
	if err := drafts.Save(context.Background(), "sess-1", draft); err != nil {
		t.Fatalf("Save draft: %v", err)
	}
}

func TestAdvanceMidFlowStoresQuote(t *testing.T) {
	fx := newFixture(t)
	seedDraft(t, fx.drafts, domainreservation.StepBrowsing)

	cmd := reservationapp.AdvanceDraftCommand{CommandID: "cmd-1", SessionID: "sess-1"}
	res, err := commands.Dispatch[reservationapp.AdvanceDraftCommand, *reservationapp.AdvanceDraftResult](context.Background(), fx.bus, cmd)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.OrderID != "" {
		t.Fatalf("no order expected before the final step, got %q", res.OrderID)
	}
	if res.Draft.Step != string(domainreservation.StepServices) {
		t.Fatalf("expected services, got %s", res.Draft.Step)
	}

	stored, err := fx.drafts.Load(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored.Quote == nil || stored.Quote.Total.Amount != 60000 {
		t.Fatalf("expected stored quote total 60000, got %+v", stored.Quote)
	}
}

func TestFinalAdvanceSubmitsOrder(t *testing.T) {
	fx := newFixture(t)
	seedDraft(t, fx.drafts, domainreservation.StepPayment)

	cmd := reservationapp.AdvanceDraftCommand{CommandID: "cmd-1", SessionID: "sess-1", IdempotencyKeyV: "idem-1"}
	res, err := commands.Dispatch[reservationapp.AdvanceDraftCommand, *reservationapp.AdvanceDraftResult](context.Background(), fx.bus, cmd)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.OrderID != "cmd-1" {
		t.Fatalf("expected order id cmd-1, got %q", res.OrderID)
	}
	if res.Draft.Step != string(domainreservation.StepConfirmed) {
		t.Fatalf("expected confirmed, got %s", res.Draft.Step)
	}

	order, err := fx.orders.ByID(context.Background(), "cmd-1")
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if order.Quote.Total.Amount != 60000 {
		t.Fatalf("expected order total 60000, got %d", order.Quote.Total.Amount)
	}
	if !fx.payments.Captured(order.PaymentRef) {
		t.Fatalf("expected hold %s captured", order.PaymentRef)
	}
}

func TestFinalAdvanceReplayDoesNotResubmit(t *testing.T) {
	fx := newFixture(t)
	seedDraft(t, fx.drafts, domainreservation.StepPayment)

	cmd := reservationapp.AdvanceDraftCommand{CommandID: "cmd-1", SessionID: "sess-1", IdempotencyKeyV: "idem-1"}
	first, err := commands.Dispatch[reservationapp.AdvanceDraftCommand, *reservationapp.AdvanceDraftResult](context.Background(), fx.bus, cmd)
	if err != nil {
		t.Fatalf("first Dispatch: %v", err)
	}
	second, err := commands.Dispatch[reservationapp.AdvanceDraftCommand, *reservationapp.AdvanceDraftResult](context.Background(), fx.bus, cmd)
	if err != nil {
		t.Fatalf("replay Dispatch: %v", err)
	}
	if first.OrderID != second.OrderID {
		t.Fatalf("replay produced a different order: %q vs %q", first.OrderID, second.OrderID)
	}

	orders, err := fx.orders.ListBySession(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected exactly one order after replay, got %d", len(orders))
	}
}

func TestFinalAdvancePaymentHoldFailure(t *testing.T) {
	fx := newFixture(t)
	seedDraft(t, fx.drafts, domainreservation.StepPayment)
	fx.payments.FailHold = errors.New("card declined")

	cmd := reservationapp.AdvanceDraftCommand{CommandID: "cmd-1", SessionID: "sess-1"}
	_, err := commands.Dispatch[reservationapp.AdvanceDraftCommand, *reservationapp.AdvanceDraftResult](context.Background(), fx.bus, cmd)
	if !errors.Is(err, reservationapp.ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}

	stored, err := fx.drafts.Load(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored.Step != domainreservation.StepPayment {
		t.Fatalf("failed submission must leave the draft at payment, got %s", stored.Step)
	}
	if orders, _ := fx.orders.ListBySession(context.Background(), "sess-1"); len(orders) != 0 {
		t.Fatalf("no order expected after hold failure, got %d", len(orders))
	}
}

func TestFinalAdvanceCaptureFailureReleasesHold(t *testing.T) {
	fx := newFixture(t)
	seedDraft(t, fx.drafts, domainreservation.StepPayment)
	fx.payments.FailCapture = errors.New("capture rejected")

	cmd := reservationapp.AdvanceDraftCommand{CommandID: "cmd-1", SessionID: "sess-1"}
	_, err := commands.Dispatch[reservationapp.AdvanceDraftCommand, *reservationapp.AdvanceDraftResult](context.Background(), fx.bus, cmd)
	if !errors.Is(err, reservationapp.ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "capture") {
		t.Fatalf("expected a capture error, got %v", err)
	}

	stored, err := fx.drafts.Load(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored.Step != domainreservation.StepPayment {
		t.Fatalf("failed capture must leave the draft at payment, got %s", stored.Step)
	}
}

func TestAdvanceConfirmedDraftIsReadOnly(t *testing.T) {
	fx := newFixture(t)
	seedDraft(t, fx.drafts, domainreservation.StepConfirmed)

	cmd := reservationapp.AdvanceDraftCommand{CommandID: "cmd-2", SessionID: "sess-1"}
	res, err := commands.Dispatch[reservationapp.AdvanceDraftCommand, *reservationapp.AdvanceDraftResult](context.Background(), fx.bus, cmd)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.OrderID != "" {
		t.Fatalf("confirmed draft must not submit again, got order %q", res.OrderID)
	}
	if res.Draft.Step != string(domainreservation.StepConfirmed) {
		t.Fatalf("expected confirmed, got %s", res.Draft.Step)
	}
	if orders, _ := fx.orders.ListBySession(context.Background(), "sess-1"); len(orders) != 0 {
		t.Fatalf("no order expected, got %d", len(orders))
	}
}
