package jobs

import (
	"context"
	"errors"
	"testing"

	"resellerdesk/internal/google"
	"resellerdesk/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) ListCustomers(ctx context.Context) ([]google.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]google.Customer), args.Error(1)
}

func (m *mockDirectory) ListSubscriptions(ctx context.Context, customerID string) ([]google.Subscription, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]google.Subscription), args.Error(1)
}

func (m *mockDirectory) ListDomainUsers(ctx context.Context, domain string) ([]google.DirectoryUser, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]google.DirectoryUser), args.Error(1)
}

type mockResellerPartnerRepo struct {
	mock.Mock
}

func (m *mockResellerPartnerRepo) Create(ctx context.Context, partner *models.ResellerPartner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *mockResellerPartnerRepo) Update(ctx context.Context, partner *models.ResellerPartner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *mockResellerPartnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ResellerPartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResellerPartner), args.Error(1)
}

func (m *mockResellerPartnerRepo) GetByCloudIdentityID(ctx context.Context, cloudIdentityID string) (*models.ResellerPartner, error) {
	args := m.Called(ctx, cloudIdentityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResellerPartner), args.Error(1)
}

func (m *mockResellerPartnerRepo) GetByOrgDisplayName(ctx context.Context, name string) (*models.ResellerPartner, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResellerPartner), args.Error(1)
}

func (m *mockResellerPartnerRepo) GetByCustomerRef(ctx context.Context, ref string) (*models.ResellerPartner, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResellerPartner), args.Error(1)
}

func (m *mockResellerPartnerRepo) List(ctx context.Context, limit, offset int) ([]*models.ResellerPartner, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ResellerPartner), args.Error(1)
}

func (m *mockResellerPartnerRepo) HasPartnerLink(ctx context.Context, resellerPartnerID, partnerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, resellerPartnerID, partnerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockResellerPartnerRepo) LinkPartner(ctx context.Context, resellerPartnerID, partnerID uuid.UUID) error {
	return m.Called(ctx, resellerPartnerID, partnerID).Error(0)
}

func (m *mockResellerPartnerRepo) HasSubscriptionLink(ctx context.Context, resellerPartnerID, subscriptionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, resellerPartnerID, subscriptionID)
	return args.Bool(0), args.Error(1)
}

func (m *mockResellerPartnerRepo) LinkSubscription(ctx context.Context, resellerPartnerID, subscriptionID uuid.UUID) error {
	return m.Called(ctx, resellerPartnerID, subscriptionID).Error(0)
}

type mockPartnerRepo struct {
	mock.Mock
}

func (m *mockPartnerRepo) Create(ctx context.Context, partner *models.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *mockPartnerRepo) Update(ctx context.Context, partner *models.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *mockPartnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

func (m *mockPartnerRepo) GetByEmail(ctx context.Context, email string) (*models.Partner, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

func (m *mockPartnerRepo) GetCompanyByName(ctx context.Context, name string) (*models.Partner, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

func (m *mockPartnerRepo) List(ctx context.Context, limit, offset int) ([]*models.Partner, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Partner), args.Error(1)
}

func (m *mockPartnerRepo) AddTags(ctx context.Context, partnerID uuid.UUID, tagIDs []uuid.UUID) error {
	return m.Called(ctx, partnerID, tagIDs).Error(0)
}

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) error {
	return m.Called(ctx, subscription).Error(0)
}

func (m *mockSubscriptionRepo) Update(ctx context.Context, subscription *models.Subscription) error {
	return m.Called(ctx, subscription).Error(0)
}

func (m *mockSubscriptionRepo) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*models.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) List(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

type mockTagService struct {
	mock.Mock
}

func (m *mockTagService) EnsureTags(ctx context.Context, names []string) ([]uuid.UUID, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type ResellerSyncTestSuite struct {
	suite.Suite
	directory        *mockDirectory
	resellerRepo     *mockResellerPartnerRepo
	partnerRepo      *mockPartnerRepo
	subscriptionRepo *mockSubscriptionRepo
	tagSvc           *mockTagService
	sync             *ResellerSync
	ctx              context.Context
}

func (suite *ResellerSyncTestSuite) SetupTest() {
	suite.directory = new(mockDirectory)
	suite.resellerRepo = new(mockResellerPartnerRepo)
	suite.partnerRepo = new(mockPartnerRepo)
	suite.subscriptionRepo = new(mockSubscriptionRepo)
	suite.tagSvc = new(mockTagService)
	suite.ctx = context.Background()

	suite.sync = NewResellerSync(
		suite.directory,
		suite.resellerRepo,
		suite.partnerRepo,
		suite.subscriptionRepo,
		suite.tagSvc,
		nil,
		[]string{"Reseller Console"},
	)
}

func TestResellerSyncTestSuite(t *testing.T) {
	suite.Run(t, new(ResellerSyncTestSuite))
}

func (suite *ResellerSyncTestSuite) acmeCustomer() google.Customer {
	return google.Customer{
		Name:            "accounts/C123/customers/S456",
		OrgDisplayName:  "Acme School",
		Domain:          "acme.edu",
		CloudIdentityID: "abc123",
		PrimaryContactInfo: &google.ContactInfo{
			Email: "admin@acme.edu",
			Phone: "+1 555 0100",
		},
	}
}

func (suite *ResellerSyncTestSuite) TestSyncContacts_CreatesNewCustomer() {
	tagID := uuid.New()
	customer := suite.acmeCustomer()

	suite.directory.On("ListCustomers", suite.ctx).Return([]google.Customer{customer}, nil)
	suite.tagSvc.On("EnsureTags", suite.ctx, []string{"Reseller Console"}).Return([]uuid.UUID{tagID}, nil)

	suite.resellerRepo.On("GetByCloudIdentityID", suite.ctx, "abc123").Return(nil, pgx.ErrNoRows)
	suite.resellerRepo.On("GetByOrgDisplayName", suite.ctx, "Acme School").Return(nil, pgx.ErrNoRows)

	var createdPartner *models.ResellerPartner
	suite.resellerRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.ResellerPartner")).
		Run(func(args mock.Arguments) {
			createdPartner = args.Get(1).(*models.ResellerPartner)
		}).Return(nil)

	suite.partnerRepo.On("GetCompanyByName", suite.ctx, "Acme School").Return(nil, pgx.ErrNoRows)
	suite.partnerRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Partner")).Return(nil)
	suite.partnerRepo.On("AddTags", suite.ctx, mock.Anything, []uuid.UUID{tagID}).Return(nil)

	suite.resellerRepo.On("HasPartnerLink", suite.ctx, mock.Anything, mock.Anything).Return(false, nil)
	suite.resellerRepo.On("LinkPartner", suite.ctx, mock.Anything, mock.Anything).Return(nil)

	// Customer has not granted directory access; the sync must still succeed.
	suite.directory.On("ListDomainUsers", suite.ctx, "acme.edu").Return(nil, google.ErrPermissionDenied)

	result := suite.sync.SyncContacts(suite.ctx)

	assert.Equal(suite.T(), 1, result.Processed)
	assert.Equal(suite.T(), 1, result.Created)
	assert.Equal(suite.T(), 0, result.Updated)
	assert.Empty(suite.T(), result.Errors)

	assert.NotNil(suite.T(), createdPartner)
	assert.Equal(suite.T(), "abc123", createdPartner.CloudIdentityID)
	assert.Equal(suite.T(), "Acme School", createdPartner.OrgDisplayName)
	assert.Equal(suite.T(), "admin@acme.edu", createdPartner.Email)

	suite.resellerRepo.AssertCalled(suite.T(), "LinkPartner", suite.ctx, mock.Anything, mock.Anything)
}

func (suite *ResellerSyncTestSuite) TestSyncContacts_ResyncUpdatesWithoutDuplicates() {
	tagID := uuid.New()
	customer := suite.acmeCustomer()

	existing := &models.ResellerPartner{
		ID:              uuid.New(),
		OrgDisplayName:  "Acme School",
		CloudIdentityID: "abc123",
	}
	company := &models.Partner{ID: uuid.New(), Name: "Acme School", IsCompany: true}

	suite.directory.On("ListCustomers", suite.ctx).Return([]google.Customer{customer}, nil)
	suite.tagSvc.On("EnsureTags", suite.ctx, mock.Anything).Return([]uuid.UUID{tagID}, nil)

	suite.resellerRepo.On("GetByCloudIdentityID", suite.ctx, "abc123").Return(existing, nil)
	suite.resellerRepo.On("Update", suite.ctx, existing).Return(nil)

	suite.partnerRepo.On("GetCompanyByName", suite.ctx, "Acme School").Return(company, nil)
	suite.partnerRepo.On("Update", suite.ctx, company).Return(nil)
	suite.partnerRepo.On("AddTags", suite.ctx, company.ID, []uuid.UUID{tagID}).Return(nil)

	// Already linked from the previous pass: no second link row.
	suite.resellerRepo.On("HasPartnerLink", suite.ctx, existing.ID, company.ID).Return(true, nil)

	suite.directory.On("ListDomainUsers", suite.ctx, "acme.edu").Return(nil, google.ErrNotFound)

	result := suite.sync.SyncContacts(suite.ctx)

	assert.Equal(suite.T(), 1, result.Processed)
	assert.Equal(suite.T(), 0, result.Created)
	assert.Equal(suite.T(), 1, result.Updated)

	suite.resellerRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	suite.resellerRepo.AssertNotCalled(suite.T(), "LinkPartner", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ResellerSyncTestSuite) TestSyncContacts_EmptyRemoteFieldKeepsStoredValue() {
	customer := suite.acmeCustomer()
	customer.PrimaryContactInfo.Phone = ""

	existing := &models.ResellerPartner{
		ID:              uuid.New(),
		OrgDisplayName:  "Acme School",
		CloudIdentityID: "abc123",
		Phone:           "+1 555 0100",
	}
	company := &models.Partner{ID: uuid.New(), Name: "Acme School", IsCompany: true}

	suite.directory.On("ListCustomers", suite.ctx).Return([]google.Customer{customer}, nil)
	suite.tagSvc.On("EnsureTags", suite.ctx, mock.Anything).Return([]uuid.UUID{}, nil)

	suite.resellerRepo.On("GetByCloudIdentityID", suite.ctx, "abc123").Return(existing, nil)
	suite.resellerRepo.On("Update", suite.ctx, existing).Return(nil)

	suite.partnerRepo.On("GetCompanyByName", suite.ctx, "Acme School").Return(company, nil)
	suite.partnerRepo.On("Update", suite.ctx, company).Return(nil)

	suite.resellerRepo.On("HasPartnerLink", suite.ctx, existing.ID, company.ID).Return(true, nil)
	suite.directory.On("ListDomainUsers", suite.ctx, "acme.edu").Return(nil, google.ErrPermissionDenied)

	suite.sync.SyncContacts(suite.ctx)

	assert.Equal(suite.T(), "+1 555 0100", existing.Phone, "remote empty string must not erase the stored phone")
	assert.Equal(suite.T(), "admin@acme.edu", existing.Email)
}

func (suite *ResellerSyncTestSuite) TestSyncContacts_FetchFailureRecorded() {
	suite.directory.On("ListCustomers", suite.ctx).Return(nil, errors.New("boom"))

	result := suite.sync.SyncContacts(suite.ctx)

	assert.Equal(suite.T(), 0, result.Processed)
	assert.Len(suite.T(), result.Errors, 1)
	suite.tagSvc.AssertNotCalled(suite.T(), "EnsureTags", mock.Anything, mock.Anything)
}

func (suite *ResellerSyncTestSuite) TestSyncSubscriptions_CreatesAndLinksOwner() {
	customer := suite.acmeCustomer()
	owner := &models.ResellerPartner{ID: uuid.New(), OrgDisplayName: "Acme School", CloudIdentityID: "abc123"}

	remoteSub := google.Subscription{
		SubscriptionID: "sub-1",
		CustomerID:     "abc123",
		SkuID:          "1010020027",
		SkuName:        "Google Workspace Business Plus",
		Status:         models.SubscriptionStatusActive,
		Seats:          &google.Seats{NumberOfSeats: 60, LicensedNumberOfSeats: 50},
	}

	suite.directory.On("ListCustomers", suite.ctx).Return([]google.Customer{customer}, nil)
	suite.directory.On("ListSubscriptions", suite.ctx, "abc123").Return([]google.Subscription{remoteSub}, nil)

	suite.resellerRepo.On("GetByCloudIdentityID", suite.ctx, "abc123").Return(owner, nil)
	suite.subscriptionRepo.On("GetBySubscriptionID", suite.ctx, "sub-1").Return(nil, pgx.ErrNoRows)

	var created *models.Subscription
	suite.subscriptionRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Subscription")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Subscription)
		}).Return(nil)

	suite.resellerRepo.On("HasSubscriptionLink", suite.ctx, owner.ID, mock.Anything).Return(false, nil)
	suite.resellerRepo.On("LinkSubscription", suite.ctx, owner.ID, mock.Anything).Return(nil)

	result := suite.sync.SyncSubscriptions(suite.ctx)

	assert.Equal(suite.T(), 1, result.Processed)
	assert.Equal(suite.T(), 1, result.Created)
	assert.Empty(suite.T(), result.Errors)

	assert.NotNil(suite.T(), created)
	assert.Equal(suite.T(), 50, created.LicensedSeats)
	assert.Equal(suite.T(), DateUnavailable, created.StartDateDisplay)
}

func (suite *ResellerSyncTestSuite) TestSyncSubscriptions_AlreadyLinkedIsNotRelinked() {
	customer := suite.acmeCustomer()
	owner := &models.ResellerPartner{ID: uuid.New(), CloudIdentityID: "abc123"}
	stored := &models.Subscription{ID: uuid.New(), SubscriptionID: "sub-1"}

	remoteSub := google.Subscription{
		SubscriptionID: "sub-1",
		CustomerID:     "abc123",
		Status:         models.SubscriptionStatusActive,
	}

	suite.directory.On("ListCustomers", suite.ctx).Return([]google.Customer{customer}, nil)
	suite.directory.On("ListSubscriptions", suite.ctx, "abc123").Return([]google.Subscription{remoteSub}, nil)

	suite.resellerRepo.On("GetByCloudIdentityID", suite.ctx, "abc123").Return(owner, nil)
	suite.subscriptionRepo.On("GetBySubscriptionID", suite.ctx, "sub-1").Return(stored, nil)
	suite.subscriptionRepo.On("Update", suite.ctx, stored).Return(nil)
	suite.resellerRepo.On("HasSubscriptionLink", suite.ctx, owner.ID, stored.ID).Return(true, nil)

	result := suite.sync.SyncSubscriptions(suite.ctx)

	assert.Equal(suite.T(), 1, result.Updated)
	suite.resellerRepo.AssertNotCalled(suite.T(), "LinkSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ResellerSyncTestSuite) TestSyncSubscriptions_CustomerWithoutIdentifierSkipped() {
	// No cloud identity id and no domain: an unfiltered listing would return
	// the whole account's subscriptions, so the customer must be skipped.
	nameless := google.Customer{OrgDisplayName: "Nameless Org"}

	suite.directory.On("ListCustomers", suite.ctx).Return([]google.Customer{nameless}, nil)

	result := suite.sync.SyncSubscriptions(suite.ctx)

	assert.Equal(suite.T(), 0, result.Processed)
	assert.Len(suite.T(), result.Errors, 1)
	suite.directory.AssertNotCalled(suite.T(), "ListSubscriptions", mock.Anything, mock.Anything)
}

func (suite *ResellerSyncTestSuite) TestSyncSubscriptions_PermissionDeniedSkipsCustomer() {
	customer := suite.acmeCustomer()

	suite.directory.On("ListCustomers", suite.ctx).Return([]google.Customer{customer}, nil)
	suite.directory.On("ListSubscriptions", suite.ctx, "abc123").Return(nil, google.ErrPermissionDenied)

	result := suite.sync.SyncSubscriptions(suite.ctx)

	assert.Equal(suite.T(), 0, result.Processed)
	assert.Len(suite.T(), result.Errors, 1)
	suite.subscriptionRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}
