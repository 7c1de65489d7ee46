package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

// querier is the part of the Supabase client the store needs.
type querier interface {
	From(table string) *postgrest.QueryBuilder
}

// SupabaseStore reads and writes tables through the Supabase REST API.
// Column names match the JSON names of the models.
type SupabaseStore struct {
	client querier
}

func NewSupabaseStore(url, key string) (*SupabaseStore, error) {
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return &SupabaseStore{client: client}, nil
}

// The postgrest client carries no context; ctx is only checked before each call.
func (s *SupabaseStore) FetchRecords(ctx context.Context, table string, q Query, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	columns := "*"
	if len(q.Fields) > 0 {
		columns = strings.Join(q.Fields, ",")
	}
	query := s.client.From(table).Select(columns, "", false)
	for _, c := range q.Where {
		switch c.Operator {
		case OpEquals, "":
			query = query.Eq(c.Field, fmt.Sprint(c.Value))
		case OpContains:
			query = query.Ilike(c.Field, "%"+fmt.Sprint(c.Value)+"%")
		default:
			return fmt.Errorf("unsupported operator %q on %s", c.Operator, c.Field)
		}
	}
	for _, o := range q.OrderBy {
		query = query.Order(o.Field, &postgrest.OrderOpts{Ascending: !o.Descending})
	}
	switch {
	case q.Limit > 0:
		query = query.Range(q.Offset, q.Offset+q.Limit-1, "")
	case q.Offset > 0:
		query = query.Range(q.Offset, math.MaxInt32, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", table, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s records: %w", table, err)
	}
	return nil
}

func (s *SupabaseStore) GetRecordByID(ctx context.Context, table, id string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, _, err := s.client.From(table).
		Select("*", "", false).
		Eq("id", id).
		Limit(1, "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to fetch %s %s: %w", table, id, err)
	}
	return decodeFirst(data, out)
}

func (s *SupabaseStore) CreateRecord(ctx context.Context, table string, record interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := s.client.From(table).Insert(record, false, "", "representation", "").Execute(); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func (s *SupabaseStore) UpdateRecord(ctx context.Context, table, id string, fields map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, _, err := s.client.From(table).
		Update(fields, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", table, id, err)
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to decode %s update: %w", table, err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeFirst(data []byte, out interface{}) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return json.Unmarshal(rows[0], out)
}

// Ping reads a single catalog id to confirm the REST API answers.
func (s *SupabaseStore) Ping(ctx context.Context) error {
	var rows []struct {
		ID string `json:"id"`
	}
	return s.FetchRecords(ctx, TableLabTest, Query{Fields: []string{"id"}, Limit: 1}, &rows)
}
