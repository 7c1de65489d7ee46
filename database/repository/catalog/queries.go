package catalogRepo

import (
	"context"
	"strings"

	"labbook/database/recordstore"
	"labbook/models"
)

const CategoryAll = "all"

func testQuery(q TestQuery) recordstore.Query {
	where := []recordstore.Condition{recordstore.Eq("isDeleted", false)}
	if q.Category != "" && !strings.EqualFold(q.Category, CategoryAll) {
		where = append(where, recordstore.Eq("category", q.Category))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		where = append(where, recordstore.Contains("name", s))
	}
	return recordstore.Query{
		Where:   where,
		OrderBy: []recordstore.Order{{Field: "name"}},
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
}

func comboQuery(q ComboQuery) recordstore.Query {
	where := []recordstore.Condition{recordstore.Eq("isDeleted", false)}
	if s := strings.TrimSpace(q.Search); s != "" {
		where = append(where, recordstore.Contains("name", s))
	}
	return recordstore.Query{
		Where:   where,
		OrderBy: []recordstore.Order{{Field: "name"}},
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
}

// ListTests returns matching tests ordered by name; no match is an empty slice.
func (r *recordCatalogRepo) ListTests(ctx context.Context, q TestQuery) ([]models.LabTest, error) {
	tests := []models.LabTest{}
	if err := r.store.FetchRecords(ctx, recordstore.TableLabTest, testQuery(q), &tests); err != nil {
		return nil, err
	}
	if tests == nil {
		tests = []models.LabTest{}
	}
	return tests, nil
}

func (r *recordCatalogRepo) ListCombos(ctx context.Context, q ComboQuery) ([]models.ComboPackage, error) {
	combos := []models.ComboPackage{}
	if err := r.store.FetchRecords(ctx, recordstore.TableComboPackage, comboQuery(q), &combos); err != nil {
		return nil, err
	}
	if combos == nil {
		combos = []models.ComboPackage{}
	}
	return combos, nil
}

// GetTest treats soft-deleted tests as missing.
func (r *recordCatalogRepo) GetTest(ctx context.Context, id string) (*models.LabTest, error) {
	var test models.LabTest
	if err := r.store.GetRecordByID(ctx, recordstore.TableLabTest, id, &test); err != nil {
		return nil, err
	}
	if test.IsDeleted {
		return nil, recordstore.ErrNotFound
	}
	return &test, nil
}

func (r *recordCatalogRepo) GetCombo(ctx context.Context, id string) (*models.ComboPackage, error) {
	var combo models.ComboPackage
	if err := r.store.GetRecordByID(ctx, recordstore.TableComboPackage, id, &combo); err != nil {
		return nil, err
	}
	if combo.IsDeleted {
		return nil, recordstore.ErrNotFound
	}
	return &combo, nil
}
