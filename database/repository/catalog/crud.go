package catalogRepo

import (
	"context"
	"time"

	"labbook/database/recordstore"
	"labbook/models"

	"github.com/google/uuid"
)

// CreateTest inserts a new lab test, assigning its ID and timestamps.
func (r *recordCatalogRepo) CreateTest(ctx context.Context, test *models.LabTest) error {
	if test.ID == "" {
		test.ID = uuid.New().String()
	}
	test.CreatedAt = time.Now()
	test.UpdatedAt = test.CreatedAt
	return r.store.CreateRecord(ctx, recordstore.TableLabTest, test)
}

func (r *recordCatalogRepo) UpdateTest(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updatedAt"] = time.Now()
	return r.store.UpdateRecord(ctx, recordstore.TableLabTest, id, fields)
}

// CreateCombo inserts a new combo package, assigning its ID and timestamps.
func (r *recordCatalogRepo) CreateCombo(ctx context.Context, combo *models.ComboPackage) error {
	if combo.ID == "" {
		combo.ID = uuid.New().String()
	}
	if combo.Tests == nil {
		combo.Tests = []string{}
	}
	combo.CreatedAt = time.Now()
	combo.UpdatedAt = combo.CreatedAt
	return r.store.CreateRecord(ctx, recordstore.TableComboPackage, combo)
}

func (r *recordCatalogRepo) UpdateCombo(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updatedAt"] = time.Now()
	return r.store.UpdateRecord(ctx, recordstore.TableComboPackage, id, fields)
}
