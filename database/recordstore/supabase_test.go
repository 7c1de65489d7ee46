package recordstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type capturedRequest struct {
	method string
	path   string
	query  map[string][]string
	body   []byte
	apiKey string
}

// newSupabaseTestStore serves every request with respond and records what it received.
func newSupabaseTestStore(t *testing.T, respond string) (*SupabaseStore, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured = append(captured, capturedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			body:   body,
			apiKey: r.Header.Get("apikey"),
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, respond)
	}))
	t.Cleanup(srv.Close)

	store, err := NewSupabaseStore(srv.URL, "service-key")
	require.NoError(t, err)
	return store, &captured
}

func TestSupabaseFetchRecords(t *testing.T) {
	store, captured := newSupabaseTestStore(t, `[{"id":"cbc","name":"Complete Blood Count (CBC)","price":25.99}]`)

	var out []row
	err := store.FetchRecords(context.Background(), TableLabTest, Query{
		Where:   []Condition{Eq("isDeleted", false), Eq("category", "blood"), Contains("name", "blood")},
		OrderBy: []Order{{Field: "name"}},
		Limit:   20,
	}, &out)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "cbc", out[0].ID)
	assert.InDelta(t, 25.99, out[0].Price, 1e-9)

	require.Len(t, *captured, 1)
	req := (*captured)[0]
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/rest/v1/lab_test", req.path)
	assert.Equal(t, "service-key", req.apiKey)
	assert.Equal(t, []string{"eq.false"}, req.query["isDeleted"])
	assert.Equal(t, []string{"eq.blood"}, req.query["category"])
	assert.Equal(t, []string{"ilike.%blood%"}, req.query["name"])
	require.NotEmpty(t, req.query["order"])
	assert.Contains(t, req.query["order"][0], "name.asc")
}

func TestSupabaseGetRecordByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store, captured := newSupabaseTestStore(t, `[{"id":"lipid","name":"Lipid Panel","price":35.5}]`)

		var out row
		require.NoError(t, store.GetRecordByID(context.Background(), TableLabTest, "lipid", &out))
		assert.Equal(t, "Lipid Panel", out.Name)
		assert.Equal(t, []string{"eq.lipid"}, (*captured)[0].query["id"])
	})

	t.Run("missing", func(t *testing.T) {
		store, _ := newSupabaseTestStore(t, `[]`)

		var out row
		err := store.GetRecordByID(context.Background(), TableLabTest, "nope", &out)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSupabaseCreateRecord(t *testing.T) {
	store, captured := newSupabaseTestStore(t, `[{"id":"bk-1"}]`)

	err := store.CreateRecord(context.Background(), TableBooking, row{ID: "bk-1", Name: "John"})

	require.NoError(t, err)
	req := (*captured)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/rest/v1/booking", req.path)
	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(req.body, &sent))
	assert.Equal(t, "bk-1", sent["id"])
}

func TestSupabaseUpdateRecord(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		store, captured := newSupabaseTestStore(t, `[{"id":"cbc"}]`)

		err := store.UpdateRecord(context.Background(), TableLabTest, "cbc", map[string]interface{}{"price": 27.5})

		require.NoError(t, err)
		req := (*captured)[0]
		assert.Equal(t, http.MethodPatch, req.method)
		assert.Equal(t, []string{"eq.cbc"}, req.query["id"])
	})

	t.Run("no matching row", func(t *testing.T) {
		store, _ := newSupabaseTestStore(t, `[]`)
		err := store.UpdateRecord(context.Background(), TableLabTest, "gone", map[string]interface{}{"price": 1})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSupabaseHonoursCancelledContext(t *testing.T) {
	store, captured := newSupabaseTestStore(t, `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out []row
	assert.ErrorIs(t, store.FetchRecords(ctx, TableLabTest, Query{}, &out), context.Canceled)
	assert.Empty(t, *captured)
}

func TestSupabasePing(t *testing.T) {
	store, captured := newSupabaseTestStore(t, `[]`)

	require.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, []string{"id"}, (*captured)[0].query["select"])
}
