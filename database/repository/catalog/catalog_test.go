package catalogRepo

import (
	"context"
	"testing"

	"labbook/database/recordstore"
	"labbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	tests   []models.LabTest
	combos  []models.ComboPackage
	queries []recordstore.Query
	created []interface{}
	updated map[string]map[string]interface{}
}

func (f *fakeStore) FetchRecords(_ context.Context, table string, q recordstore.Query, out interface{}) error {
	f.queries = append(f.queries, q)
	switch dst := out.(type) {
	case *[]models.LabTest:
		*dst = append(*dst, f.tests...)
	case *[]models.ComboPackage:
		*dst = append(*dst, f.combos...)
	}
	return nil
}

func (f *fakeStore) GetRecordByID(_ context.Context, table, id string, out interface{}) error {
	switch dst := out.(type) {
	case *models.LabTest:
		for _, t := range f.tests {
			if t.ID == id {
				*dst = t
				return nil
			}
		}
	case *models.ComboPackage:
		for _, c := range f.combos {
			if c.ID == id {
				*dst = c
				return nil
			}
		}
	}
	return recordstore.ErrNotFound
}

func (f *fakeStore) CreateRecord(_ context.Context, table string, record interface{}) error {
	f.created = append(f.created, record)
	return nil
}

func (f *fakeStore) UpdateRecord(_ context.Context, table, id string, fields map[string]interface{}) error {
	if f.updated == nil {
		f.updated = map[string]map[string]interface{}{}
	}
	f.updated[table+"/"+id] = fields
	return nil
}

func TestTestQueryFilters(t *testing.T) {
	tests := []struct {
		name string
		in   TestQuery
		want []recordstore.Condition
	}{
		{
			name: "no filters",
			in:   TestQuery{},
			want: []recordstore.Condition{recordstore.Eq("isDeleted", false)},
		},
		{
			name: "all category is ignored",
			in:   TestQuery{Category: "All"},
			want: []recordstore.Condition{recordstore.Eq("isDeleted", false)},
		},
		{
			name: "category and search",
			in:   TestQuery{Category: "blood", Search: " cbc "},
			want: []recordstore.Condition{
				recordstore.Eq("isDeleted", false),
				recordstore.Eq("category", "blood"),
				recordstore.Contains("name", "cbc"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := testQuery(tt.in)
			assert.Equal(t, tt.want, q.Where)
			assert.Equal(t, []recordstore.Order{{Field: "name"}}, q.OrderBy)
		})
	}
}

func TestListTestsNeverReturnsNil(t *testing.T) {
	repo := NewCatalogRepo(&fakeStore{})

	tests, err := repo.ListTests(context.Background(), TestQuery{Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, tests)
	assert.Empty(t, tests)

	combos, err := repo.ListCombos(context.Background(), ComboQuery{Search: "health"})
	require.NoError(t, err)
	assert.NotNil(t, combos)
}

func TestGetTestHidesDeleted(t *testing.T) {
	store := &fakeStore{tests: []models.LabTest{
		{ID: "cbc", Name: "CBC"},
		{ID: "old", Name: "Retired", IsDeleted: true},
	}}
	repo := NewCatalogRepo(store)

	got, err := repo.GetTest(context.Background(), "cbc")
	require.NoError(t, err)
	assert.Equal(t, "CBC", got.Name)

	_, err = repo.GetTest(context.Background(), "old")
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
	_, err = repo.GetCombo(context.Background(), "missing")
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	store := &fakeStore{}
	repo := NewCatalogRepo(store)

	combo := &models.ComboPackage{Name: "Heart Health", Price: 79.99}
	require.NoError(t, repo.CreateCombo(context.Background(), combo))

	assert.NotEmpty(t, combo.ID)
	assert.False(t, combo.CreatedAt.IsZero())
	assert.Equal(t, combo.CreatedAt, combo.UpdatedAt)
	assert.NotNil(t, combo.Tests)
	require.Len(t, store.created, 1)

	require.NoError(t, repo.UpdateTest(context.Background(), "cbc", map[string]interface{}{"price": 30.0}))
	assert.Contains(t, store.updated[recordstore.TableLabTest+"/cbc"], "updatedAt")
}
