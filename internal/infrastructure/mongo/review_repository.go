package mongo

import (
	"context"
	"errors"
	"time"

	adminapp "github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/domain"
	publicapp "github.com/reviewly/api/internal/public/application"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository is the Mongo-backed review store.
type ReviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository binds a ReviewRepository to the named collection.
func NewReviewRepository(db *mongo.Database, collection string) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(collection)}
}

// ExistsFromAddressSince reports whether any review from address was stored at or after since.
func (r *ReviewRepository) ExistsFromAddressSince(ctx context.Context, address string, since time.Time) (bool, error) {
	filter := bson.M{
		"ipAddress": address,
		"createdAt": bson.M{"$gte": since.UTC()},
	}
	err := r.collection.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// Create inserts the review and writes the generated ID back.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	staffID, err := parseObjectID(review.StaffID)
	if err != nil {
		return err
	}
	doc := buildReviewDocument(review, staffID)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	review.ID = doc.ID.Hex()
	return nil
}

// FindByStaff pages through a member's reviews, newest first.
func (r *ReviewRepository) FindByStaff(ctx context.Context, staffID string, paging publicapp.Paging) ([]domain.Review, int64, error) {
	objectID, err := primitive.ObjectIDFromHex(staffID)
	if err != nil {
		return []domain.Review{}, 0, nil
	}
	return r.page(ctx, bson.M{"waitress": objectID}, paging.Skip(), paging.Limit)
}

// Find backs the moderation list. Stars matches the rounded rating.
func (r *ReviewRepository) Find(ctx context.Context, filter adminapp.ReviewFilter, paging adminapp.Paging) ([]domain.Review, int64, error) {
	mongoFilter := bson.M{}
	if filter.StaffID != "" {
		objectID, err := primitive.ObjectIDFromHex(filter.StaffID)
		if err != nil {
			return []domain.Review{}, 0, nil
		}
		mongoFilter["waitress"] = objectID
	}
	if filter.Stars > 0 {
		mongoFilter["rating"] = starRange(filter.Stars)
	}
	return r.page(ctx, mongoFilter, paging.Skip(), paging.Limit)
}

// starRange matches the ratings that round to stars. The ends widen to include 1.0 and 5.0.
func starRange(stars int) bson.M {
	lower := float64(stars) - 0.5
	upper := float64(stars) + 0.5
	if stars <= domain.MinScore {
		lower = 0
	}
	if stars >= domain.MaxScore {
		return bson.M{"$gte": lower}
	}
	return bson.M{"$gte": lower, "$lt": upper}
}

func (r *ReviewRepository) page(ctx context.Context, filter bson.M, skip int64, limit int) ([]domain.Review, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	reviews, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Review, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, mapReviewDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindForStats loads the reviews to aggregate. An empty staffID means every review.
func (r *ReviewRepository) FindForStats(ctx context.Context, staffID string) ([]domain.Review, error) {
	filter := bson.M{}
	if staffID != "" {
		objectID, err := primitive.ObjectIDFromHex(staffID)
		if err != nil {
			return []domain.Review{}, nil
		}
		filter["waitress"] = objectID
	}
	return r.find(ctx, filter, options.Find())
}

// Recent returns the newest reviews.
func (r *ReviewRepository) Recent(ctx context.Context, limit int) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

// Delete removes one review.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
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

// DeleteByStaff removes every review that references the member.
func (r *ReviewRepository) DeleteByStaff(ctx context.Context, staffID string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(staffID)
	if err != nil {
		return 0, nil
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"waitress": objectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// RatingsByStaff groups by member and returns the count and the average rounded to one decimal.
func (r *ReviewRepository) RatingsByStaff(ctx context.Context, staffIDs []string) (map[string]domain.StaffRating, error) {
	result := make(map[string]domain.StaffRating)
	objectIDs := parseObjectIDs(staffIDs)
	if len(objectIDs) == 0 {
		return result, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"waitress": bson.M{"$in": objectIDs}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$waitress",
			"sum":   bson.M{"$sum": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Sum   float64            `bson:"sum"`
			Count int                `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		result[row.ID.Hex()] = domain.StaffRating{
			Average: domain.MeanRating(row.Sum, row.Count),
			Count:   row.Count,
		}
	}
	return result, cursor.Err()
}
