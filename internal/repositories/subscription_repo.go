package repositories

import (
	"context"

	"resellerdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) error
	Update(ctx context.Context, subscription *models.Subscription) error
	GetBySubscriptionID(ctx context.Context, subscriptionID string) (*models.Subscription, error)
	List(ctx context.Context, limit, offset int) ([]*models.Subscription, error)
}

type subscriptionRepo struct {
	db DB
}

func NewSubscriptionRepo(db DB) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

const subscriptionColumns = `id, kind, customer_id, subscription_id, sku_id, sku_name, billing_method, creation_time, plan_name, is_commitment_plan, start_time, end_time, number_of_seats, licensed_seats, is_in_trial, renewal_type, purchase_order_id, status, resource_ui_url, start_date_display, end_date_display, created_at, updated_at`

func (r *subscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		subscription.ID, subscription.Kind, subscription.CustomerID, subscription.SubscriptionID,
		subscription.SkuID, subscription.SkuName, subscription.BillingMethod, subscription.CreationTime,
		subscription.PlanName, subscription.IsCommitmentPlan, subscription.StartTime, subscription.EndTime,
		subscription.NumberOfSeats, subscription.LicensedSeats, subscription.IsInTrial,
		subscription.RenewalType, subscription.PurchaseOrderID, subscription.Status,
		subscription.ResourceUIURL, subscription.StartDateDisplay, subscription.EndDateDisplay)
	return err
}

func (r *subscriptionRepo) Update(ctx context.Context, subscription *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET kind = $1, customer_id = $2, sku_id = $3, sku_name = $4, billing_method = $5,
		    creation_time = $6, plan_name = $7, is_commitment_plan = $8, start_time = $9, end_time = $10,
		    number_of_seats = $11, licensed_seats = $12, is_in_trial = $13, renewal_type = $14,
		    purchase_order_id = $15, status = $16, resource_ui_url = $17, start_date_display = $18,
		    end_date_display = $19, updated_at = NOW()
		WHERE subscription_id = $20
	`
	_, err := r.db.Exec(ctx, query,
		subscription.Kind, subscription.CustomerID, subscription.SkuID, subscription.SkuName,
		subscription.BillingMethod, subscription.CreationTime, subscription.PlanName,
		subscription.IsCommitmentPlan, subscription.StartTime, subscription.EndTime,
		subscription.NumberOfSeats, subscription.LicensedSeats, subscription.IsInTrial,
		subscription.RenewalType, subscription.PurchaseOrderID, subscription.Status,
		subscription.ResourceUIURL, subscription.StartDateDisplay, subscription.EndDateDisplay,
		subscription.SubscriptionID)
	return err
}

func (r *subscriptionRepo) scanOne(row pgx.Row) (*models.Subscription, error) {
	subscription := &models.Subscription{}
	err := row.Scan(&subscription.ID, &subscription.Kind, &subscription.CustomerID,
		&subscription.SubscriptionID, &subscription.SkuID, &subscription.SkuName,
		&subscription.BillingMethod, &subscription.CreationTime, &subscription.PlanName,
		&subscription.IsCommitmentPlan, &subscription.StartTime, &subscription.EndTime,
		&subscription.NumberOfSeats, &subscription.LicensedSeats, &subscription.IsInTrial,
		&subscription.RenewalType, &subscription.PurchaseOrderID, &subscription.Status,
		&subscription.ResourceUIURL, &subscription.StartDateDisplay, &subscription.EndDateDisplay,
		&subscription.CreatedAt, &subscription.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

func (r *subscriptionRepo) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1 LIMIT 1`
	return r.scanOne(r.db.QueryRow(ctx, query, subscriptionID))
}

func (r *subscriptionRepo) List(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subscriptions []*models.Subscription
	for rows.Next() {
		subscription, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, subscription)
	}
	return subscriptions, rows.Err()
}
