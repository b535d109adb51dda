package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/advocate-directory-api/internal/models"
	appErrors "github.com/noah-isme/advocate-directory-api/pkg/errors"
)

type advocateStore interface {
	EnsureSchema(ctx context.Context) error
	ReplaceAll(ctx context.Context, advocates []models.Advocate) ([]models.Advocate, error)
}

// SeedService replaces the durable advocate store with a known data set.
type SeedService struct {
	store     advocateStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSeedService constructs the seed service. cache may be nil.
func NewSeedService(store advocateStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SeedService {
	if validate == nil {
		validate = models.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{store: store, cache: cache, validator: validate, logger: logger}
}

// Validate checks every advocate against the record invariants.
func (s *SeedService) Validate(advocates []models.Advocate) error {
	for i := range advocates {
		if err := s.validator.Struct(advocates[i]); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				fmt.Sprintf("invalid advocate %d (%s)", i, advocates[i].FullName()))
		}
	}
	return nil
}

// Seed validates advocates, replaces the stored set and drops cached search results.
// It returns the number of inserted advocates.
func (s *SeedService) Seed(ctx context.Context, advocates []models.Advocate) (int, error) {
	if err := s.Validate(advocates); err != nil {
		return 0, err
	}
	if err := s.store.EnsureSchema(ctx); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to prepare advocates table")
	}

	s.logger.Info("seeding advocates", zap.Int("count", len(advocates)))
	inserted, err := s.store.ReplaceAll(ctx, advocates)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed advocates")
	}

	// Stale entries expire on their own; a failed invalidation only delays visibility.
	if _, err := s.cache.Invalidate(ctx, AdvocateCachePattern); err != nil {
		s.logger.Warn("seeded advocates but cache invalidation failed", zap.Error(err))
	}

	s.logger.Info("advocates seeded", zap.Int("inserted", len(inserted)))
	return len(inserted), nil
}
