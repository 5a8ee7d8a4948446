package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections names the collections the repositories bind to.
type Collections struct {
	Staff     string
	Reviews   string
	Customers string
	Accounts  string
}

// DefaultCollections matches the names the existing data set uses.
var DefaultCollections = Collections{
	Staff:     "waitresses",
	Reviews:   "reviews",
	Customers: "customers",
	Accounts:  "admins",
}

// EnsureIndexes creates the indexes the API relies on. Existing ones are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database, names Collections) error {
	plan := map[string][]mongo.IndexModel{
		names.Reviews: {
			{Keys: bson.D{{Key: "waitress", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "rating", Value: 1}}},
			{Keys: bson.D{{Key: "ipAddress", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		names.Staff: {
			{Keys: bson.D{{Key: "employeeId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "active", Value: 1}}},
		},
		names.Accounts: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		names.Customers: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}
	for collection, models := range plan {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
