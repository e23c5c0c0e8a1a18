package models

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Number      string    `json:"number" db:"number"`
	Origin      string    `json:"origin" db:"origin"` // sale order reference this invoice was created from
	PartnerID   uuid.UUID `json:"partner_id" db:"partner_id"`
	State       string    `json:"state" db:"state"`
	InvoiceDate time.Time `json:"invoice_date" db:"invoice_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Lines []*InvoiceLine `json:"lines,omitempty" db:"-"`
}

type InvoiceLine struct {
	ID          uuid.UUID `json:"id" db:"id"`
	InvoiceID   uuid.UUID `json:"invoice_id" db:"invoice_id"`
	ProductName string    `json:"product_name" db:"product_name"`
	ProductSKU  string    `json:"product_sku" db:"product_sku"`
	Quantity    float64   `json:"quantity" db:"quantity"`
	UnitPrice   float64   `json:"unit_price" db:"unit_price"`
	Discount    float64   `json:"discount" db:"discount"`
}

const InvoiceStatePosted = "posted"
