package models

import (
	"time"

	"github.com/google/uuid"
)

// Partner is a generic party record: a company (IsCompany true, no parent) or a
// person attached to a company through ParentID. Persons are looked up by email,
// companies by name.
type Partner struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Email       string     `json:"email" db:"email"`
	Phone       string     `json:"phone" db:"phone"`
	IsCompany   bool       `json:"is_company" db:"is_company"`
	ParentID    *uuid.UUID `json:"parent_id" db:"parent_id"`
	Street      string     `json:"street" db:"street"`
	City        string     `json:"city" db:"city"`
	State       string     `json:"state" db:"state"`
	Zip         string     `json:"zip" db:"zip"`
	CountryCode string     `json:"country_code" db:"country_code"`
	Website     string     `json:"website" db:"website"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
