package catalog

import (
	"context"
	"fmt"
	"strings"

	catalogRepo "labbook/database/repository/catalog"
	"labbook/metrics"
	"labbook/models"

	"go.uber.org/zap"
)

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *DefaultCatalogService) ListTests(ctx context.Context, f TestFilter) ([]models.LabTest, error) {
	f.Limit, f.Offset = normalizePage(f.Limit, f.Offset)
	f.Category = strings.TrimSpace(f.Category)
	f.Search = strings.TrimSpace(f.Search)
	if strings.EqualFold(f.Category, catalogRepo.CategoryAll) {
		f.Category = ""
	}

	var tests []models.LabTest
	if s.cacheGet(ctx, testsKey(f), &tests) {
		return tests, nil
	}
	tests, err := s.Repo.ListTests(ctx, catalogRepo.TestQuery{
		Category: f.Category,
		Search:   f.Search,
		Limit:    f.Limit,
		Offset:   f.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	s.cacheSet(ctx, testsKey(f), tests)
	return tests, nil
}

func (s *DefaultCatalogService) ListCombos(ctx context.Context, f ComboFilter) ([]models.ComboPackage, error) {
	f.Limit, f.Offset = normalizePage(f.Limit, f.Offset)
	f.Search = strings.TrimSpace(f.Search)

	var combos []models.ComboPackage
	if s.cacheGet(ctx, combosKey(f), &combos) {
		return combos, nil
	}
	combos, err := s.Repo.ListCombos(ctx, catalogRepo.ComboQuery{
		Search: f.Search,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list combo packages: %w", err)
	}
	s.cacheSet(ctx, combosKey(f), combos)
	return combos, nil
}

func (s *DefaultCatalogService) GetTest(ctx context.Context, id string) (*models.LabTest, error) {
	test, err := s.Repo.GetTest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get test %s: %w", id, err)
	}
	return test, nil
}

func (s *DefaultCatalogService) GetCombo(ctx context.Context, id string) (*models.ComboPackage, error) {
	combo, err := s.Repo.GetCombo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get combo package %s: %w", id, err)
	}
	return combo, nil
}

// Snapshot returns every bookable test and combo for a new booking form.
func (s *DefaultCatalogService) Snapshot(ctx context.Context) (models.CatalogSnapshot, error) {
	var snap models.CatalogSnapshot
	if s.cacheGet(ctx, snapshotKey, &snap) {
		return snap, nil
	}
	tests, err := s.Repo.ListTests(ctx, catalogRepo.TestQuery{})
	if err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("failed to load tests: %w", err)
	}
	combos, err := s.Repo.ListCombos(ctx, catalogRepo.ComboQuery{})
	if err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("failed to load combo packages: %w", err)
	}
	snap = models.CatalogSnapshot{Tests: tests, Combos: combos}
	s.cacheSet(ctx, snapshotKey, snap)
	return snap, nil
}

// cacheGet reports a hit. Cache failures are logged and read through to the store.
func (s *DefaultCatalogService) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.Cache == nil {
		return false
	}
	hit, err := s.Cache.Get(ctx, key, dst)
	switch {
	case err != nil:
		metrics.CatalogCacheLookups.WithLabelValues("error").Inc()
		s.Logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	case hit:
		metrics.CatalogCacheLookups.WithLabelValues("hit").Inc()
		return true
	}
	metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()
	return false
}

func (s *DefaultCatalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, key, value); err != nil {
		s.Logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *DefaultCatalogService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.Logger.Error("failed to invalidate catalog cache", zap.Error(err))
	}
}
