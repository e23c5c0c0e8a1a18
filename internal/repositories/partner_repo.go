package repositories

import (
	"context"

	"resellerdesk/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PartnerRepository interface {
	Create(ctx context.Context, partner *models.Partner) error
	Update(ctx context.Context, partner *models.Partner) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	GetByEmail(ctx context.Context, email string) (*models.Partner, error)
	GetCompanyByName(ctx context.Context, name string) (*models.Partner, error)
	List(ctx context.Context, limit, offset int) ([]*models.Partner, error)
	AddTags(ctx context.Context, partnerID uuid.UUID, tagIDs []uuid.UUID) error
}

type partnerRepo struct {
	db DB
}

func NewPartnerRepo(db DB) PartnerRepository {
	return &partnerRepo{db: db}
}

const partnerColumns = `id, name, email, phone, is_company, parent_id, street, city, state, zip, country_code, website, created_at, updated_at`

func (r *partnerRepo) Create(ctx context.Context, partner *models.Partner) error {
	query := `
		INSERT INTO partners (id, name, email, phone, is_company, parent_id, street, city, state, zip, country_code, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, partner.ID, partner.Name, partner.Email, partner.Phone,
		partner.IsCompany, partner.ParentID, partner.Street, partner.City, partner.State,
		partner.Zip, partner.CountryCode, partner.Website)
	return err
}

func (r *partnerRepo) Update(ctx context.Context, partner *models.Partner) error {
	query := `
		UPDATE partners
		SET name = $1, email = $2, phone = $3, is_company = $4, parent_id = $5, street = $6,
		    city = $7, state = $8, zip = $9, country_code = $10, website = $11, updated_at = NOW()
		WHERE id = $12
	`
	_, err := r.db.Exec(ctx, query, partner.Name, partner.Email, partner.Phone, partner.IsCompany,
		partner.ParentID, partner.Street, partner.City, partner.State, partner.Zip,
		partner.CountryCode, partner.Website, partner.ID)
	return err
}

func (r *partnerRepo) scanOne(row pgx.Row) (*models.Partner, error) {
	partner := &models.Partner{}
	err := row.Scan(&partner.ID, &partner.Name, &partner.Email, &partner.Phone, &partner.IsCompany,
		&partner.ParentID, &partner.Street, &partner.City, &partner.State, &partner.Zip,
		&partner.CountryCode, &partner.Website, &partner.CreatedAt, &partner.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return partner, nil
}

func (r *partnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByEmail is the person lookup; persons are keyed by email address.
func (r *partnerRepo) GetByEmail(ctx context.Context, email string) (*models.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE email = $1 AND is_company = false LIMIT 1`
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

// GetCompanyByName is the company lookup; companies are keyed by display name.
func (r *partnerRepo) GetCompanyByName(ctx context.Context, name string) (*models.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE name = $1 AND is_company = true LIMIT 1`
	return r.scanOne(r.db.QueryRow(ctx, query, name))
}

func (r *partnerRepo) List(ctx context.Context, limit, offset int) ([]*models.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []*models.Partner
	for rows.Next() {
		partner, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		partners = append(partners, partner)
	}
	return partners, rows.Err()
}

// AddTags attaches tags to a partner. Already-attached tags are left alone.
func (r *partnerRepo) AddTags(ctx context.Context, partnerID uuid.UUID, tagIDs []uuid.UUID) error {
	query := `
		INSERT INTO partner_tags (partner_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (partner_id, tag_id) DO NOTHING
	`
	for _, tagID := range tagIDs {
		if _, err := r.db.Exec(ctx, query, partnerID, tagID); err != nil {
			return err
		}
	}
	return nil
}
