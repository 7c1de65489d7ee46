package catalogRepo

import (
	"context"

	"labbook/database/recordstore"
	"labbook/models"
)

// TestQuery filters lab tests. An empty or "all" Category matches every category.
type TestQuery struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

type ComboQuery struct {
	Search string
	Limit  int
	Offset int
}

type CatalogRepository interface {
	ListTests(ctx context.Context, q TestQuery) ([]models.LabTest, error)
	ListCombos(ctx context.Context, q ComboQuery) ([]models.ComboPackage, error)
	GetTest(ctx context.Context, id string) (*models.LabTest, error)
	GetCombo(ctx context.Context, id string) (*models.ComboPackage, error)
	CreateTest(ctx context.Context, test *models.LabTest) error
	UpdateTest(ctx context.Context, id string, fields map[string]interface{}) error
	CreateCombo(ctx context.Context, combo *models.ComboPackage) error
	UpdateCombo(ctx context.Context, id string, fields map[string]interface{}) error
}

type recordCatalogRepo struct {
	store recordstore.Store
}

// NewCatalogRepo returns a CatalogRepository backed by the given record store.
func NewCatalogRepo(store recordstore.Store) CatalogRepository {
	return &recordCatalogRepo{store: store}
}
