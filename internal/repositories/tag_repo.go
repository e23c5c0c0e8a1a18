package repositories

import (
	"context"

	"resellerdesk/internal/models"
)

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context) ([]*models.Tag, error)
}

type tagRepo struct {
	db DB
}

func NewTagRepo(db DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) Create(ctx context.Context, tag *models.Tag) error {
	query := `
		INSERT INTO tags (id, name, color, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, tag.ID, tag.Name, tag.Color)
	return err
}

func (r *tagRepo) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	tag := &models.Tag{}
	query := `SELECT id, name, color, created_at FROM tags WHERE name = $1`
	err := r.db.QueryRow(ctx, query, name).Scan(&tag.ID, &tag.Name, &tag.Color, &tag.CreatedAt)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *tagRepo) List(ctx context.Context) ([]*models.Tag, error) {
	query := `SELECT id, name, color, created_at FROM tags ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		tag := &models.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
