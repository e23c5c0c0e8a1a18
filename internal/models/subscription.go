package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription mirrors a remote reseller subscription. SubscriptionID is the
// natural key; a re-sync with the same id updates the row in place.
//
// CreationTime, StartTime and EndTime stay epoch-millisecond strings exactly as
// the API returns them. StartDateDisplay / EndDateDisplay are derived and must be
// recomputed whenever the source field changes, never hand-edited.
type Subscription struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Kind             string    `json:"kind" db:"kind"`
	CustomerID       string    `json:"customer_id" db:"customer_id"`
	SubscriptionID   string    `json:"subscription_id" db:"subscription_id"`
	SkuID            string    `json:"sku_id" db:"sku_id"`
	SkuName          string    `json:"sku_name" db:"sku_name"`
	BillingMethod    string    `json:"billing_method" db:"billing_method"`
	CreationTime     string    `json:"creation_time" db:"creation_time"`
	PlanName         string    `json:"plan_name" db:"plan_name"`
	IsCommitmentPlan bool      `json:"is_commitment_plan" db:"is_commitment_plan"`
	StartTime        string    `json:"start_time" db:"start_time"`
	EndTime          string    `json:"end_time" db:"end_time"`
	NumberOfSeats    int       `json:"number_of_seats" db:"number_of_seats"`
	LicensedSeats    int       `json:"licensed_seats" db:"licensed_seats"`
	IsInTrial        bool      `json:"is_in_trial" db:"is_in_trial"`
	RenewalType      string    `json:"renewal_type" db:"renewal_type"`
	PurchaseOrderID  string    `json:"purchase_order_id" db:"purchase_order_id"`
	Status           string    `json:"status" db:"status"`
	ResourceUIURL    string    `json:"resource_ui_url" db:"resource_ui_url"`
	StartDateDisplay string    `json:"start_date_display" db:"start_date_display"`
	EndDateDisplay   string    `json:"end_date_display" db:"end_date_display"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Subscription status values as reported by the remote API
const (
	SubscriptionStatusActive    = "ACTIVE"
	SubscriptionStatusSuspended = "SUSPENDED"
	SubscriptionStatusCancelled = "CANCELLED"
)
