package repositories

import (
	"context"
	"errors"

	"resellerdesk/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ResellerPartnerRepository interface {
	Create(ctx context.Context, partner *models.ResellerPartner) error
	Update(ctx context.Context, partner *models.ResellerPartner) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ResellerPartner, error)
	GetByCloudIdentityID(ctx context.Context, cloudIdentityID string) (*models.ResellerPartner, error)
	GetByOrgDisplayName(ctx context.Context, name string) (*models.ResellerPartner, error)
	GetByCustomerRef(ctx context.Context, ref string) (*models.ResellerPartner, error)
	List(ctx context.Context, limit, offset int) ([]*models.ResellerPartner, error)
	HasPartnerLink(ctx context.Context, resellerPartnerID, partnerID uuid.UUID) (bool, error)
	LinkPartner(ctx context.Context, resellerPartnerID, partnerID uuid.UUID) error
	HasSubscriptionLink(ctx context.Context, resellerPartnerID, subscriptionID uuid.UUID) (bool, error)
	LinkSubscription(ctx context.Context, resellerPartnerID, subscriptionID uuid.UUID) error
}

type resellerPartnerRepo struct {
	db DB
}

func NewResellerPartnerRepo(db DB) ResellerPartnerRepository {
	return &resellerPartnerRepo{db: db}
}

const resellerPartnerColumns = `id, name, org_display_name, region_code, postal_code, administrative_area, locality, sublocality, address, address_line_1, address_line_2, address_line_3, organization, first_name, last_name, display_name, email, phone, alternate_email, domain, cloud_identity_id, language_code, created_at, sync_date`

func (r *resellerPartnerRepo) Create(ctx context.Context, partner *models.ResellerPartner) error {
	query := `
		INSERT INTO reseller_partners (` + resellerPartnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		partner.ID, partner.Name, partner.OrgDisplayName, partner.RegionCode, partner.PostalCode,
		partner.AdministrativeArea, partner.Locality, partner.Sublocality, partner.Address,
		partner.AddressLine1, partner.AddressLine2, partner.AddressLine3, partner.Organization,
		partner.FirstName, partner.LastName, partner.DisplayName, partner.Email, partner.Phone,
		partner.AlternateEmail, partner.Domain, partner.CloudIdentityID, partner.LanguageCode)
	return err
}

func (r *resellerPartnerRepo) Update(ctx context.Context, partner *models.ResellerPartner) error {
	query := `
		UPDATE reseller_partners
		SET name = $1, org_display_name = $2, region_code = $3, postal_code = $4, administrative_area = $5,
		    locality = $6, sublocality = $7, address = $8, address_line_1 = $9, address_line_2 = $10,
		    address_line_3 = $11, organization = $12, first_name = $13, last_name = $14, display_name = $15,
		    email = $16, phone = $17, alternate_email = $18, domain = $19, cloud_identity_id = $20,
		    language_code = $21, sync_date = NOW()
		WHERE id = $22
	`
	_, err := r.db.Exec(ctx, query,
		partner.Name, partner.OrgDisplayName, partner.RegionCode, partner.PostalCode,
		partner.AdministrativeArea, partner.Locality, partner.Sublocality, partner.Address,
		partner.AddressLine1, partner.AddressLine2, partner.AddressLine3, partner.Organization,
		partner.FirstName, partner.LastName, partner.DisplayName, partner.Email, partner.Phone,
		partner.AlternateEmail, partner.Domain, partner.CloudIdentityID, partner.LanguageCode,
		partner.ID)
	return err
}

func (r *resellerPartnerRepo) scanOne(row pgx.Row) (*models.ResellerPartner, error) {
	partner := &models.ResellerPartner{}
	err := row.Scan(&partner.ID, &partner.Name, &partner.OrgDisplayName, &partner.RegionCode,
		&partner.PostalCode, &partner.AdministrativeArea, &partner.Locality, &partner.Sublocality,
		&partner.Address, &partner.AddressLine1, &partner.AddressLine2, &partner.AddressLine3,
		&partner.Organization, &partner.FirstName, &partner.LastName, &partner.DisplayName,
		&partner.Email, &partner.Phone, &partner.AlternateEmail, &partner.Domain,
		&partner.CloudIdentityID, &partner.LanguageCode, &partner.CreatedAt, &partner.SyncDate)
	if err != nil {
		return nil, err
	}
	return partner, nil
}

func (r *resellerPartnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ResellerPartner, error) {
	query := `SELECT ` + resellerPartnerColumns + ` FROM reseller_partners WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *resellerPartnerRepo) GetByCloudIdentityID(ctx context.Context, cloudIdentityID string) (*models.ResellerPartner, error) {
	query := `SELECT ` + resellerPartnerColumns + ` FROM reseller_partners WHERE cloud_identity_id = $1 LIMIT 1`
	return r.scanOne(r.db.QueryRow(ctx, query, cloudIdentityID))
}

func (r *resellerPartnerRepo) GetByOrgDisplayName(ctx context.Context, name string) (*models.ResellerPartner, error) {
	query := `SELECT ` + resellerPartnerColumns + ` FROM reseller_partners WHERE org_display_name = $1 LIMIT 1`
	return r.scanOne(r.db.QueryRow(ctx, query, name))
}

// GetByCustomerRef resolves a reseller partner from a remote customer
// reference, which may be a cloud identity id or a primary domain.
func (r *resellerPartnerRepo) GetByCustomerRef(ctx context.Context, ref string) (*models.ResellerPartner, error) {
	query := `SELECT ` + resellerPartnerColumns + ` FROM reseller_partners WHERE cloud_identity_id = $1 OR domain = $1 LIMIT 1`
	return r.scanOne(r.db.QueryRow(ctx, query, ref))
}

func (r *resellerPartnerRepo) List(ctx context.Context, limit, offset int) ([]*models.ResellerPartner, error) {
	query := `SELECT ` + resellerPartnerColumns + ` FROM reseller_partners ORDER BY org_display_name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []*models.ResellerPartner
	for rows.Next() {
		partner, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		partners = append(partners, partner)
	}
	return partners, rows.Err()
}

func (r *resellerPartnerRepo) HasPartnerLink(ctx context.Context, resellerPartnerID, partnerID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reseller_partner_partners WHERE reseller_partner_id = $1 AND partner_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, resellerPartnerID, partnerID).Scan(&exists)
	return exists, err
}

func (r *resellerPartnerRepo) LinkPartner(ctx context.Context, resellerPartnerID, partnerID uuid.UUID) error {
	query := `
		INSERT INTO reseller_partner_partners (reseller_partner_id, partner_id)
		VALUES ($1, $2)
		ON CONFLICT (reseller_partner_id, partner_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, resellerPartnerID, partnerID)
	return err
}

func (r *resellerPartnerRepo) HasSubscriptionLink(ctx context.Context, resellerPartnerID, subscriptionID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reseller_partner_subscriptions WHERE reseller_partner_id = $1 AND subscription_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, resellerPartnerID, subscriptionID).Scan(&exists)
	return exists, err
}

func (r *resellerPartnerRepo) LinkSubscription(ctx context.Context, resellerPartnerID, subscriptionID uuid.UUID) error {
	query := `
		INSERT INTO reseller_partner_subscriptions (reseller_partner_id, subscription_id)
		VALUES ($1, $2)
		ON CONFLICT (reseller_partner_id, subscription_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, resellerPartnerID, subscriptionID)
	return err
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
