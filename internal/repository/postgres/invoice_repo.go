package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billforge/internal/domain"
	"billforge/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// invoiceRow maps the invoices table. Parties, context, and line items are
// stored as JSONB: the editor always loads and saves an invoice whole, so
// relational line rows would buy nothing.
type invoiceRow struct {
	ID            uuid.UUID       `db:"id"`
	InvoiceNumber string          `db:"invoice_number"`
	InvoiceDate   string          `db:"invoice_date"`
	DueDate       string          `db:"due_date"`
	BillTo        json.RawMessage `db:"bill_to"`
	ShipTo        json.RawMessage `db:"ship_to"`
	SameAsBilling bool            `db:"same_as_billing"`
	Context       json.RawMessage `db:"context"`
	Items         json.RawMessage `db:"items"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func toRow(inv *domain.Invoice) (*invoiceRow, error) {
	billTo, err := json.Marshal(inv.BillTo)
	if err != nil {
		return nil, fmt.Errorf("marshaling bill_to: %w", err)
	}
	shipTo, err := json.Marshal(inv.ShipTo)
	if err != nil {
		return nil, fmt.Errorf("marshaling ship_to: %w", err)
	}
	ctx, err := json.Marshal(inv.Context)
	if err != nil {
		return nil, fmt.Errorf("marshaling context: %w", err)
	}
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return nil, fmt.Errorf("marshaling items: %w", err)
	}
	return &invoiceRow{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		BillTo:        billTo,
		ShipTo:        shipTo,
		SameAsBilling: inv.SameAsBilling,
		Context:       ctx,
		Items:         items,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}, nil
}

func (r *invoiceRow) toDomain() (*domain.Invoice, error) {
	inv := &domain.Invoice{
		ID:            r.ID,
		InvoiceNumber: r.InvoiceNumber,
		InvoiceDate:   r.InvoiceDate,
		DueDate:       r.DueDate,
		SameAsBilling: r.SameAsBilling,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if err := json.Unmarshal(r.BillTo, &inv.BillTo); err != nil {
		return nil, fmt.Errorf("unmarshaling bill_to: %w", err)
	}
	if err := json.Unmarshal(r.ShipTo, &inv.ShipTo); err != nil {
		return nil, fmt.Errorf("unmarshaling ship_to: %w", err)
	}
	if err := json.Unmarshal(r.Context, &inv.Context); err != nil {
		return nil, fmt.Errorf("unmarshaling context: %w", err)
	}
	if err := json.Unmarshal(r.Items, &inv.Items); err != nil {
		return nil, fmt.Errorf("unmarshaling items: %w", err)
	}
	return inv, nil
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	row, err := toRow(inv)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	query := `INSERT INTO invoices (
		id, invoice_number, invoice_date, due_date,
		bill_to, ship_to, same_as_billing, context, items,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8, $9,
		$10, $11
	)`

	_, err = r.db.ExecContext(ctx, query,
		row.ID, row.InvoiceNumber, row.InvoiceDate, row.DueDate,
		row.BillTo, row.ShipTo, row.SameAsBilling, row.Context, row.Items,
		row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var row invoiceRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *invoiceRepo) List(ctx context.Context, offset, limit int) ([]domain.Invoice, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices"); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	var rows []invoiceRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}

	invoices := make([]domain.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()

	row, err := toRow(inv)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}

	query := `UPDATE invoices SET
		invoice_number = $2, invoice_date = $3, due_date = $4,
		bill_to = $5, ship_to = $6, same_as_billing = $7,
		context = $8, items = $9, updated_at = $10
	WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		row.ID, row.InvoiceNumber, row.InvoiceDate, row.DueDate,
		row.BillTo, row.ShipTo, row.SameAsBilling,
		row.Context, row.Items, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	if affected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	if affected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
