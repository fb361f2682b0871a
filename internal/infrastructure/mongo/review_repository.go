package mongo

import (
	"context"
	"fmt"
	"time"

	adminapp "github.com/hostlink-ma/hostlink-services/api/internal/admin/application"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	publicapp "github.com/hostlink-ma/hostlink-services/api/internal/public/application"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository stores visitor reviews for every listing kind.
type ReviewRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewReviewRepository(db *mongo.Database, collectionName string) *ReviewRepository {
	return &ReviewRepository{
		collection: db.Collection(collectionName),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a pending review.
func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) (string, error) {
	doc, err := reviewToDocument(review)
	if err != nil {
		return "", err
	}
	doc.ID = primitive.NewObjectID()
	doc.UpdatedAt = doc.CreatedAt
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", translate(err, "insert review")
	}
	return doc.ID.Hex(), nil
}

// FindApprovedByTarget lists approved reviews of one listing, newest first.
func (r *ReviewRepository) FindApprovedByTarget(ctx context.Context, target domain.ReviewTarget, paging publicapp.Paging) ([]domain.Review, error) {
	oid, err := objectID(target.ListingID())
	if err != nil {
		return []domain.Review{}, nil
	}
	filter := bson.M{
		"target.kind":      string(target.Kind()),
		"target.listingId": oid,
		"status":           string(domain.StatusApproved),
	}
	opts := pageOptions(paging.Page, paging.Limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, filter, opts)
}

// RatingSummaries averages approved reviews per listing id in a single aggregation.
// Listings without approved reviews are absent from the result.
func (r *ReviewRepository) RatingSummaries(ctx context.Context, kind domain.Kind, ids []string) (map[string]domain.RatingSummary, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	result := make(map[string]domain.RatingSummary, len(oids))
	if len(oids) == 0 {
		return result, nil
	}
	cursor, err := r.collection.Aggregate(ctx, ratingPipeline(kind, oids))
	if err != nil {
		return nil, translate(err, "aggregate ratings")
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row struct {
			ListingID primitive.ObjectID `bson:"_id"`
			Average   float64            `bson:"average"`
			Count     int                `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, translate(err, "decode rating")
		}
		result[row.ListingID.Hex()] = domain.RatingSummary{Average: row.Average, Count: row.Count}
	}
	if err := cursor.Err(); err != nil {
		return nil, translate(err, "iterate ratings")
	}
	return result, nil
}

func ratingPipeline(kind domain.Kind, ids []primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "target.kind", Value: string(kind)},
			{Key: "target.listingId", Value: bson.D{{Key: "$in", Value: ids}}},
			{Key: "status", Value: string(domain.StatusApproved)},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$target.listingId"},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

// FindByID returns a review in any state.
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (domain.Review, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Review{}, err
	}
	var doc ReviewDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return domain.Review{}, translate(err, fmt.Sprintf("find review %s", id))
	}
	return mapReviewDocument(doc)
}

// Find lists reviews for the admin console, newest first.
func (r *ReviewRepository) Find(ctx context.Context, filter adminapp.ReviewFilter, paging adminapp.Paging) ([]domain.Review, error) {
	mongoFilter := bson.M{}
	if filter.Status != "" {
		mongoFilter["status"] = string(filter.Status)
	}
	if filter.Kind != "" {
		mongoFilter["target.kind"] = string(filter.Kind)
	}
	if filter.ListingID != "" {
		oid, err := objectID(filter.ListingID)
		if err != nil {
			return []domain.Review{}, nil
		}
		mongoFilter["target.listingId"] = oid
	}
	opts := pageOptions(paging.Page, paging.Limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, mongoFilter, opts)
}

// TransitionStatus sets to only while the stored status is still from.
func (r *ReviewRepository) TransitionStatus(ctx context.Context, id string, from, to domain.Status) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updatedAt": r.now()}},
	)
	if err != nil {
		return false, translate(err, fmt.Sprintf("update review %s", id))
	}
	return res.ModifiedCount > 0, nil
}

// CountByStatus groups all reviews by moderation status.
func (r *ReviewRepository) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	return countByStatus(ctx, r.collection, "status")
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Review, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, "find reviews")
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, translate(err, "decode review")
		}
		review, err := mapReviewDocument(doc)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := cursor.Err(); err != nil {
		return nil, translate(err, "iterate reviews")
	}
	return reviews, nil
}

func reviewToDocument(review domain.Review) (ReviewDocument, error) {
	listingID, err := objectID(review.Target.ListingID())
	if err != nil {
		return ReviewDocument{}, err
	}
	return ReviewDocument{
		Target: ReviewTargetDocument{
			Kind:      string(review.Target.Kind()),
			ListingID: listingID,
		},
		AuthorName: review.AuthorName,
		Rating:     review.Rating,
		Comment:    review.Comment,
		Status:     string(review.Status),
		CreatedAt:  review.CreatedAt,
	}, nil
}

func mapReviewDocument(doc ReviewDocument) (domain.Review, error) {
	kind, err := domain.ParseKind(doc.Target.Kind)
	if err != nil {
		return domain.Review{}, fmt.Errorf("review %s: %w", doc.ID.Hex(), err)
	}
	target, err := domain.NewReviewTarget(kind, doc.Target.ListingID.Hex())
	if err != nil {
		return domain.Review{}, err
	}
	status, err := domain.ParseStatus(doc.Status)
	if err != nil {
		return domain.Review{}, fmt.Errorf("review %s: %w", doc.ID.Hex(), err)
	}
	return domain.Review{
		ID:         doc.ID.Hex(),
		Target:     target,
		AuthorName: doc.AuthorName,
		Rating:     doc.Rating,
		Comment:    doc.Comment,
		Status:     status,
		CreatedAt:  doc.CreatedAt,
	}, nil
}
