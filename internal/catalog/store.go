package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trimsync/barbershop-api/internal/apperr"
	"github.com/trimsync/barbershop-api/internal/models"
	"github.com/trimsync/barbershop-api/internal/tenant"
)

// cacheTTL is short on purpose: the catalog is read-mostly and writes
// invalidate eagerly, the TTL only bounds staleness after a missed invalidate.
const cacheTTL = 5 * time.Minute

// Store reads barbers, services and customers for the scheduler. Lookups are
// cached in redis by id; the tenant check runs on every read, cached or not,
// so a cache hit can never leak another barbershop's row past the scope.
type Store struct {
	db  *gorm.DB
	rdb *redis.Client
	log *zap.Logger
}

func NewStore(db *gorm.DB, rdb *redis.Client, log *zap.Logger) *Store {
	return &Store{db: db, rdb: rdb, log: log}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (s *Store) Barber(
	ctx context.Context,
	scope tenant.Scope,
	id uuid.UUID,
) (*models.Barber, error) {

	var b models.Barber
	if err := s.fetch(ctx, "catalog:barber:"+id.String(), &b, func(dst any) error {
		return s.db.WithContext(ctx).Where("id = ?", id).First(dst).Error
	}); err != nil {
		return nil, notFoundOr(err, "barber")
	}

	if !scope.Owns(b.BarbershopID) {
		return nil, apperr.CrossTenant("barber")
	}
	return &b, nil
}

func (s *Store) Service(
	ctx context.Context,
	scope tenant.Scope,
	id uuid.UUID,
) (*models.Service, error) {

	var svc models.Service
	if err := s.fetch(ctx, "catalog:service:"+id.String(), &svc, func(dst any) error {
		return s.db.WithContext(ctx).Where("id = ?", id).First(dst).Error
	}); err != nil {
		return nil, notFoundOr(err, "service")
	}

	if !scope.Owns(svc.BarbershopID) {
		return nil, apperr.CrossTenant("service")
	}
	return &svc, nil
}

func (s *Store) Customer(
	ctx context.Context,
	scope tenant.Scope,
	id uuid.UUID,
) (*models.Customer, error) {

	var c models.Customer
	if err := s.fetch(ctx, "catalog:customer:"+id.String(), &c, func(dst any) error {
		return s.db.WithContext(ctx).Where("id = ?", id).First(dst).Error
	}); err != nil {
		return nil, notFoundOr(err, "customer")
	}

	if !scope.Owns(c.BarbershopID) {
		return nil, apperr.CrossTenant("customer")
	}
	return &c, nil
}

// --------------------------------------------------
// Invalidation (called by catalog write handlers)
// --------------------------------------------------

func (s *Store) InvalidateBarber(ctx context.Context, id uuid.UUID) {
	s.invalidate(ctx, "catalog:barber:"+id.String())
}

func (s *Store) InvalidateService(ctx context.Context, id uuid.UUID) {
	s.invalidate(ctx, "catalog:service:"+id.String())
}

func (s *Store) InvalidateCustomer(ctx context.Context, id uuid.UUID) {
	s.invalidate(ctx, "catalog:customer:"+id.String())
}

// --------------------------------------------------
// Cache plumbing
// --------------------------------------------------

// fetch is look-aside: redis first, DB on miss, best-effort backfill. Redis
// being down degrades to plain DB reads.
func (s *Store) fetch(
	ctx context.Context,
	key string,
	dst any,
	load func(dst any) error,
) error {

	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			if jsonErr := json.Unmarshal(raw, dst); jsonErr == nil {
				return nil
			}
			s.invalidate(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	if err := load(dst); err != nil {
		return err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(dst); err == nil {
			if err := s.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
				s.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return nil
}

func (s *Store) invalidate(ctx context.Context, key string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn("catalog cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}

func notFoundOr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity)
	}
	return apperr.Internal("catalog lookup failed", err)
}
