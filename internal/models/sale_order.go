package models

import (
	"time"

	"github.com/google/uuid"
)

type SaleOrder struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"` // order reference, used as invoice origin
	PartnerID  uuid.UUID  `json:"partner_id" db:"partner_id"`
	Recurrence string     `json:"recurrence" db:"recurrence"` // "monthly" or "yearly"
	State      string     `json:"state" db:"state"`
	OrderDate  time.Time  `json:"order_date" db:"order_date"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at" db:"updated_at"`

	Lines []*SaleOrderLine `json:"lines,omitempty" db:"-"`
}

type SaleOrderLine struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OrderID     uuid.UUID `json:"order_id" db:"order_id"`
	ProductName string    `json:"product_name" db:"product_name"`
	ProductSKU  string    `json:"product_sku" db:"product_sku"`
	Quantity    float64   `json:"quantity" db:"quantity"`
	UnitPrice   float64   `json:"unit_price" db:"unit_price"`
	Discount    float64   `json:"discount" db:"discount"` // percentage, 0-100
}

const (
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
)
