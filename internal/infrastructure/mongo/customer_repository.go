package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	adminapp "github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CustomerRepository is the Mongo-backed customer store.
type CustomerRepository struct {
	collection *mongo.Collection
}

// NewCustomerRepository binds a CustomerRepository to the named collection.
func NewCustomerRepository(db *mongo.Database, collection string) *CustomerRepository {
	return &CustomerRepository{collection: db.Collection(collection)}
}

// FindAll returns every customer, newest first.
func (r *CustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	customers := make([]domain.Customer, 0)
	for cursor.Next(ctx) {
		var doc CustomerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		customers = append(customers, mapCustomerDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc CustomerDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	customer := mapCustomerDocument(doc)
	return &customer, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	doc := CustomerDocument{
		ID:         primitive.NewObjectID(),
		Name:       customer.Name,
		Document:   customer.Document,
		Phone:      customer.Phone,
		Email:      customer.Email,
		WeekStates: weekStateStrings(domain.NormalizeWeekStates(customer.WeekStates)),
		CreatedAt:  customer.CreatedAt.UTC(),
		UpdatedAt:  customer.UpdatedAt.UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	customer.ID = doc.ID.Hex()
	return nil
}

// Update rewrites only the contact fields present in the patch.
func (r *CustomerRepository) Update(ctx context.Context, id string, patch adminapp.CustomerPatch, now time.Time) (*domain.Customer, error) {
	set := bson.M{"updatedAt": now.UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Document != nil {
		set["document"] = *patch.Document
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	return r.updateOne(ctx, id, set)
}

// SetWeek sets a single weekStates element by position.
func (r *CustomerRepository) SetWeek(ctx context.Context, id string, index int, state domain.WeekState, now time.Time) (*domain.Customer, error) {
	if err := domain.ValidateWeekIndex(index); err != nil {
		return nil, err
	}
	set := bson.M{
		fmt.Sprintf("weekStates.%d", index): string(state),
		"updatedAt":                         now.UTC(),
	}
	return r.updateOne(ctx, id, set)
}

func (r *CustomerRepository) updateOne(ctx context.Context, id string, set bson.M) (*domain.Customer, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc CustomerDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	customer := mapCustomerDocument(doc)
	return &customer, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
