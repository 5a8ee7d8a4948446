package mongo

import (
	"context"
	"errors"
	"time"

	adminapp "github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StaffRepository is the Mongo-backed staff store. It serves both the public and the admin ports.
type StaffRepository struct {
	collection *mongo.Collection
}

// NewStaffRepository binds a StaffRepository to the named collection.
func NewStaffRepository(db *mongo.Database, collection string) *StaffRepository {
	return &StaffRepository{collection: db.Collection(collection)}
}

// FindActive returns the active members ordered by name.
func (r *StaffRepository) FindActive(ctx context.Context) ([]domain.StaffMember, error) {
	return r.find(ctx, bson.M{"active": true})
}

// FindAll returns every member, active or not.
func (r *StaffRepository) FindAll(ctx context.Context) ([]domain.StaffMember, error) {
	return r.find(ctx, bson.M{})
}

func (r *StaffRepository) find(ctx context.Context, filter bson.M) ([]domain.StaffMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	members := make([]domain.StaffMember, 0)
	for cursor.Next(ctx) {
		var doc StaffDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		members = append(members, mapStaffDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// FindByID looks a member up by hex ObjectID.
func (r *StaffRepository) FindByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc StaffDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	member := mapStaffDocument(doc)
	return &member, nil
}

// FindByIDs loads several members with $in, keyed by ID.
func (r *StaffRepository) FindByIDs(ctx context.Context, ids []string) (map[string]domain.StaffMember, error) {
	result := make(map[string]domain.StaffMember)
	objectIDs := parseObjectIDs(ids)
	if len(objectIDs) == 0 {
		return result, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc StaffDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result[doc.ID.Hex()] = mapStaffDocument(doc)
	}
	return result, cursor.Err()
}

// Create inserts the member and assigns its ID. A taken employee code surfaces as ErrAlreadyExists.
func (r *StaffRepository) Create(ctx context.Context, member *domain.StaffMember) error {
	doc := StaffDocument{
		ID:         primitive.NewObjectID(),
		Name:       member.Name,
		PhotoURL:   member.PhotoURL,
		EmployeeID: member.EmployeeID,
		Gender:     string(member.Gender),
		Active:     member.Active,
		CreatedAt:  member.CreatedAt.UTC(),
		UpdatedAt:  member.UpdatedAt.UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	member.ID = doc.ID.Hex()
	return nil
}

// Update sets only the given fields and returns the updated document.
func (r *StaffRepository) Update(ctx context.Context, id string, patch adminapp.StaffPatch, now time.Time) (*domain.StaffMember, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{"updatedAt": now.UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.PhotoURL != nil {
		set["photoUrl"] = *patch.PhotoURL
	}
	if patch.Gender != nil {
		set["gender"] = string(*patch.Gender)
	}
	if patch.Active != nil {
		set["active"] = *patch.Active
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc StaffDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	member := mapStaffDocument(doc)
	return &member, nil
}

// Delete removes the member only; reviews are cleaned up by the caller.
func (r *StaffRepository) Delete(ctx context.Context, id string) error {
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

// CountActive counts members with active set.
func (r *StaffRepository) CountActive(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"active": true})
}
