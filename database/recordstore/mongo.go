package recordstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore keeps each table in a collection of the same name.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) FetchRecords(ctx context.Context, table string, q Query, out interface{}) error {
	filter, err := buildFilter(q.Where)
	if err != nil {
		return err
	}
	cursor, err := s.db.Collection(table).Find(ctx, filter, findOptions(q))
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s records: %w", table, err)
	}
	return nil
}

func (s *MongoStore) GetRecordByID(ctx context.Context, table, id string, out interface{}) error {
	err := s.db.Collection(table).FindOne(ctx, bson.M{"id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s %s: %w", table, id, err)
	}
	return nil
}

func (s *MongoStore) CreateRecord(ctx context.Context, table string, record interface{}) error {
	if _, err := s.db.Collection(table).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func (s *MongoStore) UpdateRecord(ctx context.Context, table, id string, fields map[string]interface{}) error {
	res, err := s.db.Collection(table).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", table, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func buildFilter(where []Condition) (bson.M, error) {
	filter := bson.M{}
	for _, c := range where {
		switch c.Operator {
		case OpEquals, "":
			filter[c.Field] = c.Value
		case OpContains:
			filter[c.Field] = bson.M{
				"$regex":   regexp.QuoteMeta(fmt.Sprint(c.Value)),
				"$options": "i",
			}
		default:
			return nil, fmt.Errorf("unsupported operator %q on %s", c.Operator, c.Field)
		}
	}
	return filter, nil
}

func findOptions(q Query) *options.FindOptions {
	opts := options.Find()
	if len(q.Fields) > 0 {
		projection := bson.D{}
		for _, f := range q.Fields {
			projection = append(projection, bson.E{Key: f, Value: 1})
		}
		opts.SetProjection(projection)
	}
	if len(q.OrderBy) > 0 {
		sort := bson.D{}
		for _, o := range q.OrderBy {
			dir := 1
			if o.Descending {
				dir = -1
			}
			sort = append(sort, bson.E{Key: o.Field, Value: dir})
		}
		opts.SetSort(sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}
	return opts
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}
