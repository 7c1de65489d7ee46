package catalog

import (
	"context"

	catalogRepo "labbook/database/repository/catalog"
	"labbook/models"

	"go.uber.org/zap"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// TestFilter narrows ListTests. Category "" or "all" matches every category.
type TestFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

type ComboFilter struct {
	Search string
	Limit  int
	Offset int
}

// CatalogService reads the lab catalog and lets admins maintain it.
type CatalogService interface {
	ListTests(ctx context.Context, f TestFilter) ([]models.LabTest, error)
	ListCombos(ctx context.Context, f ComboFilter) ([]models.ComboPackage, error)
	GetTest(ctx context.Context, id string) (*models.LabTest, error)
	GetCombo(ctx context.Context, id string) (*models.ComboPackage, error)
	Categories() []models.TestCategory
	Snapshot(ctx context.Context) (models.CatalogSnapshot, error)

	CreateTest(ctx context.Context, in models.LabTestInput) (*models.LabTest, error)
	UpdateTest(ctx context.Context, id string, in models.LabTestInput) (*models.LabTest, error)
	CreateCombo(ctx context.Context, in models.ComboPackageInput) (*models.ComboPackage, error)
	UpdateCombo(ctx context.Context, id string, in models.ComboPackageInput) (*models.ComboPackage, error)
}

// DefaultCatalogService implements CatalogService. Cache may be nil.
type DefaultCatalogService struct {
	Repo   catalogRepo.CatalogRepository
	Cache  CatalogCache
	Logger *zap.Logger
}

func NewCatalogService(repo catalogRepo.CatalogRepository, cache CatalogCache, logger *zap.Logger) *DefaultCatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultCatalogService{Repo: repo, Cache: cache, Logger: logger}
}
