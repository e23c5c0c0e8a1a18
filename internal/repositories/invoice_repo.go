package repositories

import (
	"context"

	"resellerdesk/internal/models"

	"github.com/google/uuid"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	CreateLine(ctx context.Context, line *models.InvoiceLine) error
	// ListPostedByOrigin returns posted invoices created from the given sale
	// order reference, newest first, with their lines loaded.
	ListPostedByOrigin(ctx context.Context, origin string) ([]*models.Invoice, error)
	GetLines(ctx context.Context, invoiceID uuid.UUID) ([]*models.InvoiceLine, error)
}

type invoiceRepo struct {
	db DB
}

func NewInvoiceRepo(db DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (id, number, origin, partner_id, state, invoice_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, invoice.ID, invoice.Number, invoice.Origin, invoice.PartnerID,
		invoice.State, invoice.InvoiceDate)
	return err
}

func (r *invoiceRepo) CreateLine(ctx context.Context, line *models.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, product_name, product_sku, quantity, unit_price, discount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, line.ID, line.InvoiceID, line.ProductName, line.ProductSKU,
		line.Quantity, line.UnitPrice, line.Discount)
	return err
}

func (r *invoiceRepo) ListPostedByOrigin(ctx context.Context, origin string) ([]*models.Invoice, error) {
	query := `
		SELECT id, number, origin, partner_id, state, invoice_date, created_at, updated_at
		FROM invoices
		WHERE origin = $1 AND state = 'posted'
		ORDER BY invoice_date DESC
	`
	rows, err := r.db.Query(ctx, query, origin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice := &models.Invoice{}
		if err := rows.Scan(&invoice.ID, &invoice.Number, &invoice.Origin, &invoice.PartnerID,
			&invoice.State, &invoice.InvoiceDate, &invoice.CreatedAt, &invoice.UpdatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, invoice := range invoices {
		lines, err := r.GetLines(ctx, invoice.ID)
		if err != nil {
			return nil, err
		}
		invoice.Lines = lines
	}
	return invoices, nil
}

func (r *invoiceRepo) GetLines(ctx context.Context, invoiceID uuid.UUID) ([]*models.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, product_name, product_sku, quantity, unit_price, discount
		FROM invoice_lines
		WHERE invoice_id = $1
	`
	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.InvoiceLine
	for rows.Next() {
		line := &models.InvoiceLine{}
		if err := rows.Scan(&line.ID, &line.InvoiceID, &line.ProductName, &line.ProductSKU,
			&line.Quantity, &line.UnitPrice, &line.Discount); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
