package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invoiceColumns = `i.id, i.user_id, i.amount_cents, i.due_date, i.paid, i.payment_date, i.created_at, i.updated_at`

// InvoiceRepository handles membership invoices.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

func scanInvoice(row pgx.Row, inv *model.Invoice, extra ...any) error {
	dest := append([]any{
		&inv.ID, &inv.UserID, &inv.AmountCents, &inv.DueDate, &inv.Paid, &inv.PaymentDate,
		&inv.CreatedAt, &inv.UpdatedAt,
	}, extra...)
	return row.Scan(dest...)
}

// List retrieves every invoice with its client's name and email, newest first.
func (r *InvoiceRepository) List(ctx context.Context) ([]model.Invoice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+invoiceColumns+`, u.name, u.email
		 FROM invoices i
		 JOIN users u ON u.id = i.user_id
		 ORDER BY i.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []model.Invoice{}
	for rows.Next() {
		var inv model.Invoice
		if err := scanInvoice(rows, &inv, &inv.UserName, &inv.UserEmail); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Create inserts an unpaid invoice. An unknown user surfaces as a foreign key
// violation.
func (r *InvoiceRepository) Create(ctx context.Context, inv *model.Invoice) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO invoices (user_id, amount_cents, due_date)
		 VALUES ($1, $2, $3)
		 RETURNING id, paid, created_at, updated_at`,
		inv.UserID, inv.AmountCents, inv.DueDate,
	).Scan(&inv.ID, &inv.Paid, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// MarkPaid records the payment of an unpaid invoice.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (*model.Invoice, error) {
	inv := &model.Invoice{}
	err := scanInvoice(r.pool.QueryRow(ctx,
		`UPDATE invoices i
		 SET paid = TRUE, payment_date = $2, updated_at = NOW()
		 WHERE i.id = $1 AND NOT i.paid
		 RETURNING `+invoiceColumns, id, paidAt,
	), inv)
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("mark invoice paid: %w", err)
	}

	// No unpaid row matched: tell a missing invoice from a paid one.
	var paid bool
	if err := r.pool.QueryRow(ctx, `SELECT paid FROM invoices WHERE id = $1`, id).Scan(&paid); err != nil {
		return nil, notFound(err)
	}
	return nil, ErrInvoiceAlreadyPaid
}

// MonthlyEarnings sums paid invoices by the month of their payment date,
// oldest month first.
func (r *InvoiceRepository) MonthlyEarnings(ctx context.Context) ([]model.MonthlyEarning, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT to_char(date_trunc('month', payment_date), 'YYYY-MM') AS month, SUM(amount_cents)::BIGINT
		 FROM invoices
		 WHERE paid
		 GROUP BY month
		 ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("monthly earnings: %w", err)
	}
	defer rows.Close()

	earnings := []model.MonthlyEarning{}
	for rows.Next() {
		var e model.MonthlyEarning
		if err := rows.Scan(&e.Month, &e.TotalCents); err != nil {
			return nil, fmt.Errorf("scan earnings: %w", err)
		}
		earnings = append(earnings, e)
	}
	return earnings, rows.Err()
}

// Delete removes an invoice.
func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
