package recordstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// bookingValidator rejects booking documents that skip a required payload field.
var bookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"id", "name", "email", "phone", "address",
			"selectedDate", "selectedTime", "bookingType", "status", "createdAt",
		},
		"additionalProperties": true,
		"properties": bson.M{
			"id":    bson.M{"bsonType": "string", "minLength": 1},
			"name":  bson.M{"bsonType": "string", "minLength": 1},
			"email": bson.M{"bsonType": "string", "pattern": `^\S+@\S+\.\S+$`},
			"phone": bson.M{"bsonType": "string", "pattern": `^\d{10}$`},
			"selectedDate": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},
			"selectedTime": bson.M{"bsonType": "string", "minLength": 1},
			"bookingType":  bson.M{"bsonType": "string", "enum": []string{"test", "combo"}},
			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"pending", "confirmed", "completed", "cancelled"},
			},
			"createdAt": bson.M{"bsonType": "date"},
		},
	},
}

// catalogIndexes back the list queries: non-deleted, optional category, ordered by name.
func catalogIndexes(withCategory bool) []mongo.IndexModel {
	listKeys := bson.D{{Key: "isDeleted", Value: 1}}
	if withCategory {
		listKeys = append(listKeys, bson.E{Key: "category", Value: 1})
	}
	listKeys = append(listKeys, bson.E{Key: "name", Value: 1})
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: listKeys},
	}
}

func bookingIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "isDeleted", Value: 1}, {Key: "selectedDate", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
}

// EnsureSchema creates the booking collection validator and the indexes for every table.
func (s *MongoStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.ensureValidator(ctx, TableBooking, bookingValidator); err != nil {
		return err
	}

	indexes := map[string][]mongo.IndexModel{
		TableLabTest:      catalogIndexes(true),
		TableComboPackage: catalogIndexes(false),
		TableBooking:      bookingIndexes(),
	}
	for table, models := range indexes {
		if _, err := s.db.Collection(table).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", table, err)
		}
	}
	return nil
}

func (s *MongoStore) ensureValidator(ctx context.Context, table string, validator bson.M) error {
	err := s.db.CreateCollection(ctx, table, options.CreateCollection().SetValidator(validator))
	if err == nil {
		return nil
	}
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Name != "NamespaceExists" {
		return fmt.Errorf("failed to create %s collection: %w", table, err)
	}
	// Collection already exists; refresh its validator.
	cmd := bson.D{{Key: "collMod", Value: table}, {Key: "validator", Value: validator}}
	if err := s.db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("failed to update %s validator: %w", table, err)
	}
	return nil
}
