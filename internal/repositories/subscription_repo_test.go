package repositories

import (
	"context"
	"testing"
	"time"

	"resellerdesk/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SubscriptionRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    SubscriptionRepository
	context context.Context
}

func (suite *SubscriptionRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewSubscriptionRepo(mock)
	suite.context = context.Background()
}

func (suite *SubscriptionRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestSubscriptionRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionRepoTestSuite))
}

func (suite *SubscriptionRepoTestSuite) sampleSubscription() *models.Subscription {
	return &models.Subscription{
		ID:               uuid.New(),
		Kind:             "reseller#subscription",
		CustomerID:       "abc123",
		SubscriptionID:   "sub-1",
		SkuID:            "1010020027",
		SkuName:          "Google Workspace Business Plus",
		BillingMethod:    "ONLINE",
		CreationTime:     "1577836800000",
		PlanName:         "ANNUAL",
		IsCommitmentPlan: true,
		StartTime:        "1577836800000",
		EndTime:          "1609459200000",
		NumberOfSeats:    60,
		LicensedSeats:    50,
		RenewalType:      "AUTO_RENEW",
		Status:           models.SubscriptionStatusActive,
		StartDateDisplay: "01/01/2020",
		EndDateDisplay:   "01/01/2021",
	}
}

func (suite *SubscriptionRepoTestSuite) TestCreate_Success() {
	sub := suite.sampleSubscription()

	suite.mock.ExpectExec(`INSERT INTO subscriptions`).
		WithArgs(sub.ID, sub.Kind, sub.CustomerID, sub.SubscriptionID, sub.SkuID, sub.SkuName,
			sub.BillingMethod, sub.CreationTime, sub.PlanName, sub.IsCommitmentPlan, sub.StartTime,
			sub.EndTime, sub.NumberOfSeats, sub.LicensedSeats, sub.IsInTrial, sub.RenewalType,
			sub.PurchaseOrderID, sub.Status, sub.ResourceUIURL, sub.StartDateDisplay, sub.EndDateDisplay).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, sub)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SubscriptionRepoTestSuite) TestUpdate_KeyedByRemoteID() {
	sub := suite.sampleSubscription()

	suite.mock.ExpectExec(`UPDATE subscriptions`).
		WithArgs(sub.Kind, sub.CustomerID, sub.SkuID, sub.SkuName, sub.BillingMethod,
			sub.CreationTime, sub.PlanName, sub.IsCommitmentPlan, sub.StartTime, sub.EndTime,
			sub.NumberOfSeats, sub.LicensedSeats, sub.IsInTrial, sub.RenewalType,
			sub.PurchaseOrderID, sub.Status, sub.ResourceUIURL, sub.StartDateDisplay,
			sub.EndDateDisplay, sub.SubscriptionID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, sub)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SubscriptionRepoTestSuite) TestGetBySubscriptionID_Found() {
	sub := suite.sampleSubscription()
	now := time.Now()

	rows := pgxmock.NewRows([]string{
		"id", "kind", "customer_id", "subscription_id", "sku_id", "sku_name", "billing_method",
		"creation_time", "plan_name", "is_commitment_plan", "start_time", "end_time",
		"number_of_seats", "licensed_seats", "is_in_trial", "renewal_type", "purchase_order_id",
		"status", "resource_ui_url", "start_date_display", "end_date_display", "created_at", "updated_at",
	}).AddRow(sub.ID, sub.Kind, sub.CustomerID, sub.SubscriptionID, sub.SkuID, sub.SkuName,
		sub.BillingMethod, sub.CreationTime, sub.PlanName, sub.IsCommitmentPlan, sub.StartTime,
		sub.EndTime, sub.NumberOfSeats, sub.LicensedSeats, sub.IsInTrial, sub.RenewalType,
		sub.PurchaseOrderID, sub.Status, sub.ResourceUIURL, sub.StartDateDisplay, sub.EndDateDisplay,
		now, now)

	suite.mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE subscription_id = \$1`).
		WithArgs("sub-1").
		WillReturnRows(rows)

	got, err := suite.repo.GetBySubscriptionID(suite.context, "sub-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), sub.SubscriptionID, got.SubscriptionID)
	assert.Equal(suite.T(), 50, got.LicensedSeats)
	assert.Equal(suite.T(), "01/01/2020", got.StartDateDisplay)
}

func (suite *SubscriptionRepoTestSuite) TestGetBySubscriptionID_NotFound() {
	suite.mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE subscription_id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.GetBySubscriptionID(suite.context, "missing")
	assert.True(suite.T(), IsNotFound(err))
}
