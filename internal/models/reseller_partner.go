package models

import (
	"time"

	"github.com/google/uuid"
)

// ResellerPartner is one row per end-customer organization managed through the
// reseller console. CloudIdentityID is the natural key once the remote side has
// assigned one; until then lookups fall back to the organization display name.
type ResellerPartner struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"` // console resource name, e.g. accounts/C123/customers/S456
	OrgDisplayName     string    `json:"org_display_name" db:"org_display_name"`
	RegionCode         string    `json:"region_code" db:"region_code"`
	PostalCode         string    `json:"postal_code" db:"postal_code"`
	AdministrativeArea string    `json:"administrative_area" db:"administrative_area"`
	Locality           string    `json:"locality" db:"locality"`
	Sublocality        string    `json:"sublocality" db:"sublocality"`
	Address            string    `json:"address" db:"address"` // space-joined composite of the parts below
	AddressLine1       string    `json:"address_line_1" db:"address_line_1"`
	AddressLine2       string    `json:"address_line_2" db:"address_line_2"`
	AddressLine3       string    `json:"address_line_3" db:"address_line_3"`
	Organization       string    `json:"organization" db:"organization"`
	FirstName          string    `json:"first_name" db:"first_name"`
	LastName           string    `json:"last_name" db:"last_name"`
	DisplayName        string    `json:"display_name" db:"display_name"`
	Email              string    `json:"email" db:"email"`
	Phone              string    `json:"phone" db:"phone"`
	AlternateEmail     string    `json:"alternate_email" db:"alternate_email"`
	Domain             string    `json:"domain" db:"domain"`
	CloudIdentityID    string    `json:"cloud_identity_id" db:"cloud_identity_id"`
	LanguageCode       string    `json:"language_code" db:"language_code"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	SyncDate           time.Time `json:"sync_date" db:"sync_date"`
}
