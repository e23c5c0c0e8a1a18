package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"resellerdesk/internal/caching"
	"resellerdesk/internal/models"
	"resellerdesk/internal/repositories"

	"github.com/google/uuid"
)

const tagCacheTTL = 12 * time.Hour

// TagService ensures the classification tags applied to synced contacts exist.
type TagService interface {
	// EnsureTags looks every name up by exact match, creates missing tags with
	// the default color, and returns the identifiers in input order. Repeated
	// calls never create duplicates.
	EnsureTags(ctx context.Context, names []string) ([]uuid.UUID, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
	cache   caching.CacheService
}

func NewTagService(tagRepo repositories.TagRepository, cache caching.CacheService) TagService {
	return &tagService{tagRepo: tagRepo, cache: cache}
}

func (s *tagService) EnsureTags(ctx context.Context, names []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		id, err := s.ensureTag(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to ensure tag %q: %w", name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *tagService) ensureTag(ctx context.Context, name string) (uuid.UUID, error) {
	if s.cache != nil {
		if id, err := s.cache.GetTagID(ctx, name); err == nil {
			return id, nil
		}
	}

	tag, err := s.tagRepo.GetByName(ctx, name)
	if err != nil {
		if !repositories.IsNotFound(err) {
			return uuid.Nil, err
		}
		tag = &models.Tag{
			ID:    uuid.New(),
			Name:  name,
			Color: models.DefaultTagColor,
		}
		if err := s.tagRepo.Create(ctx, tag); err != nil {
			return uuid.Nil, err
		}
		// A concurrent creator may have won the ON CONFLICT race; re-read so
		// every caller sees the same identifier.
		if existing, err := s.tagRepo.GetByName(ctx, name); err == nil {
			tag = existing
		}
	}

	if s.cache != nil {
		if err := s.cache.SetTagID(ctx, name, tag.ID, tagCacheTTL); err != nil {
			log.Printf("Failed to cache tag %q: %v", name, err)
		}
	}
	return tag.ID, nil
}
