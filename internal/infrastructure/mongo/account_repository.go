package mongo

import (
	"context"
	"errors"
	"strings"

	"github.com/reviewly/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AccountRepository stores back-office accounts, password hashes included.
type AccountRepository struct {
	collection *mongo.Collection
}

// NewAccountRepository binds an AccountRepository to the named collection.
func NewAccountRepository(db *mongo.Database, collection string) *AccountRepository {
	return &AccountRepository{collection: db.Collection(collection)}
}

// Count returns the number of accounts. Registration is open while it is zero.
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	accounts := make([]domain.Account, 0)
	for cursor.Next(ctx) {
		var doc AccountDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		accounts = append(accounts, mapAccountDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

// FindByUsername matches the exact stored username.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"username": strings.TrimSpace(username)})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var doc AccountDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	account := mapAccountDocument(doc)
	return &account, nil
}

// ExistsByUsernameOrEmail reports whether username or email is taken by an account other than excludeID.
func (r *AccountRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error) {
	clauses := bson.A{}
	if username != "" {
		clauses = append(clauses, bson.M{"username": username})
	}
	if email != "" {
		clauses = append(clauses, bson.M{"email": email})
	}
	if len(clauses) == 0 {
		return false, nil
	}
	filter := bson.M{"$or": clauses}
	if excludeID != "" {
		if objectID, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": objectID}
		}
	}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the account. The unique indexes back up the service-level duplicate check.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	doc := buildAccountDocument(account, primitive.NewObjectID())
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	account.ID = doc.ID.Hex()
	return nil
}

// Save replaces the stored account with the given state.
func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	objectID, err := parseObjectID(account.ID)
	if err != nil {
		return err
	}
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, buildAccountDocument(account, objectID))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
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

func buildAccountDocument(account *domain.Account, id primitive.ObjectID) AccountDocument {
	return AccountDocument{
		ID:        id,
		Username:  account.Username,
		Email:     account.Email,
		Password:  account.PasswordHash,
		Role:      string(account.Role),
		Active:    account.Active,
		CreatedAt: account.CreatedAt.UTC(),
		UpdatedAt: account.UpdatedAt.UTC(),
	}
}
