package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Invoice errors.
var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrInvoiceAlreadyPaid = errors.New("invoice already paid")
)

// InvoiceStore is the invoice storage. *repository.InvoiceRepository
// implements it.
type InvoiceStore interface {
	List(ctx context.Context) ([]model.Invoice, error)
	Create(ctx context.Context, inv *model.Invoice) error
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (*model.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MonthlyEarnings(ctx context.Context) ([]model.MonthlyEarning, error)
}

// InvoiceService bills clients and records their payments.
type InvoiceService struct {
	invoices InvoiceStore
	now      func() time.Time
	log      zerolog.Logger
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoices InvoiceStore, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		now:      time.Now,
		log:      log.With().Str("component", "invoice_service").Logger(),
	}
}

// ListInvoices returns every invoice, newest first.
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	return s.invoices.List(ctx)
}

// MonthlyEarnings returns paid totals per payment month for the admin dashboard.
func (s *InvoiceService) MonthlyEarnings(ctx context.Context) ([]model.MonthlyEarning, error) {
	return s.invoices.MonthlyEarnings(ctx)
}

// CreateInvoice bills a client. The invoice starts unpaid.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *model.CreateInvoiceRequest, actor uuid.UUID) (*model.Invoice, error) {
	due, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("parse due date: %w", err)
	}

	inv := &model.Invoice{UserID: req.UserID, AmountCents: req.AmountCents, DueDate: due}
	if err := s.invoices.Create(ctx, inv); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.log.Info().
		Str("invoice_id", inv.ID.String()).
		Str("user_id", inv.UserID.String()).
		Int64("amount_cents", inv.AmountCents).
		Str("actor_id", actor.String()).
		Msg("Invoice created")
	return inv, nil
}

// MarkInvoicePaid records a payment at paidAt, or now when paidAt is nil.
func (s *InvoiceService) MarkInvoicePaid(ctx context.Context, id uuid.UUID, paidAt *time.Time, actor uuid.UUID) (*model.Invoice, error) {
	when := s.now()
	if paidAt != nil {
		when = *paidAt
	}

	inv, err := s.invoices.MarkPaid(ctx, id, when)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrInvoiceNotFound
		case errors.Is(err, repository.ErrInvoiceAlreadyPaid):
			return nil, ErrInvoiceAlreadyPaid
		}
		return nil, err
	}

	s.log.Info().
		Str("invoice_id", id.String()).
		Time("payment_date", when).
		Str("actor_id", actor.String()).
		Msg("Invoice paid")
	return inv, nil
}

// DeleteInvoice removes an invoice.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id, actor uuid.UUID) error {
	if err := s.invoices.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvoiceNotFound
		}
		return err
	}

	s.log.Info().
		Str("invoice_id", id.String()).
		Str("actor_id", actor.String()).
		Msg("Invoice deleted")
	return nil
}
