package repositories

import (
	"context"

	"resellerdesk/internal/models"

	"github.com/google/uuid"
)

type SaleOrderRepository interface {
	Create(ctx context.Context, order *models.SaleOrder) error
	CreateLine(ctx context.Context, line *models.SaleOrderLine) error
	// ListMatching returns confirmed sale orders whose buyer website contains
	// the given domain and that carry at least one line referencing the SKU,
	// most recently modified first (creation time when never modified).
	ListMatching(ctx context.Context, domain, skuID, skuName string) ([]*models.SaleOrder, error)
	GetLines(ctx context.Context, orderID uuid.UUID) ([]*models.SaleOrderLine, error)
}

type saleOrderRepo struct {
	db DB
}

func NewSaleOrderRepo(db DB) SaleOrderRepository {
	return &saleOrderRepo{db: db}
}

func (r *saleOrderRepo) Create(ctx context.Context, order *models.SaleOrder) error {
	query := `
		INSERT INTO sale_orders (id, name, partner_id, recurrence, state, order_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.Name, order.PartnerID, order.Recurrence,
		order.State, order.OrderDate)
	return err
}

func (r *saleOrderRepo) CreateLine(ctx context.Context, line *models.SaleOrderLine) error {
	query := `
		INSERT INTO sale_order_lines (id, order_id, product_name, product_sku, quantity, unit_price, discount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, line.ID, line.OrderID, line.ProductName, line.ProductSKU,
		line.Quantity, line.UnitPrice, line.Discount)
	return err
}

func (r *saleOrderRepo) ListMatching(ctx context.Context, domain, skuID, skuName string) ([]*models.SaleOrder, error) {
	query := `
		SELECT DISTINCT o.id, o.name, o.partner_id, o.recurrence, o.state, o.order_date, o.created_at, o.updated_at
		FROM sale_orders o
		JOIN partners p ON p.id = o.partner_id
		JOIN sale_order_lines l ON l.order_id = o.id
		WHERE p.website ILIKE '%' || $1 || '%'
		  AND (l.product_sku = $2 OR l.product_name ILIKE '%' || $3 || '%')
		ORDER BY COALESCE(o.updated_at, o.created_at) DESC
	`
	rows, err := r.db.Query(ctx, query, domain, skuID, skuName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.SaleOrder
	for rows.Next() {
		order := &models.SaleOrder{}
		if err := rows.Scan(&order.ID, &order.Name, &order.PartnerID, &order.Recurrence,
			&order.State, &order.OrderDate, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		lines, err := r.GetLines(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Lines = lines
	}
	return orders, nil
}

func (r *saleOrderRepo) GetLines(ctx context.Context, orderID uuid.UUID) ([]*models.SaleOrderLine, error) {
	query := `
		SELECT id, order_id, product_name, product_sku, quantity, unit_price, discount
		FROM sale_order_lines
		WHERE order_id = $1
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.SaleOrderLine
	for rows.Next() {
		line := &models.SaleOrderLine{}
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductName, &line.ProductSKU,
			&line.Quantity, &line.UnitPrice, &line.Discount); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
