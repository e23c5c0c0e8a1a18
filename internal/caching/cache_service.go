package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"resellerdesk/internal/models"
)

type CacheService interface {
	// Tag identifier caching for the label provisioner
	GetTagID(ctx context.Context, name string) (uuid.UUID, error)
	SetTagID(ctx context.Context, name string, id uuid.UUID, ttl time.Duration) error

	// Last sync summary per sync kind ("contacts", "subscriptions")
	GetLastSyncResult(ctx context.Context, kind string) (*models.SyncResult, error)
	SetLastSyncResult(ctx context.Context, kind string, result *models.SyncResult, ttl time.Duration) error

	// Reseller partner lookup caching keyed by cloud identity id
	GetResellerPartner(ctx context.Context, cloudIdentityID string) (*models.ResellerPartner, error)
	SetResellerPartner(ctx context.Context, partner *models.ResellerPartner, ttl time.Duration) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both host:port and redis://host:port forms
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func tagKey(name string) string {
	return "tag:" + name
}

func (s *redisCacheService) GetTagID(ctx context.Context, name string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, tagKey(name)).Result()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(val)
}

func (s *redisCacheService) SetTagID(ctx context.Context, name string, id uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, tagKey(name), id.String(), ttl).Err()
}

func (s *redisCacheService) GetLastSyncResult(ctx context.Context, kind string) (*models.SyncResult, error) {
	data, err := s.client.Get(ctx, "sync:last:"+kind).Result()
	if err != nil {
		return nil, err
	}
	result := &models.SyncResult{}
	if err := json.Unmarshal([]byte(data), result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached sync result: %w", err)
	}
	return result, nil
}

func (s *redisCacheService) SetLastSyncResult(ctx context.Context, kind string, result *models.SyncResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal sync result: %w", err)
	}
	return s.client.Set(ctx, "sync:last:"+kind, data, ttl).Err()
}

func (s *redisCacheService) GetResellerPartner(ctx context.Context, cloudIdentityID string) (*models.ResellerPartner, error) {
	data, err := s.client.Get(ctx, "reseller_partner:ci:"+cloudIdentityID).Result()
	if err != nil {
		return nil, err
	}
	partner := &models.ResellerPartner{}
	if err := json.Unmarshal([]byte(data), partner); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached reseller partner: %w", err)
	}
	return partner, nil
}

func (s *redisCacheService) SetResellerPartner(ctx context.Context, partner *models.ResellerPartner, ttl time.Duration) error {
	if partner.CloudIdentityID == "" {
		return nil // nothing to key on yet
	}
	data, err := json.Marshal(partner)
	if err != nil {
		return fmt.Errorf("failed to marshal reseller partner: %w", err)
	}
	return s.client.Set(ctx, "reseller_partner:ci:"+partner.CloudIdentityID, data, ttl).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
