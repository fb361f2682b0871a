package mongo

import (
	"context"
	"fmt"
	"strings"

	adminapp "github.com/hostlink-ma/hostlink-services/api/internal/admin/application"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Find returns listings of a kind in any state for the admin console.
func (r *ListingRepository) Find(ctx context.Context, kind domain.Kind, filter adminapp.ListingFilter, paging adminapp.Paging) ([]domain.Listing, error) {
	base := bson.M{}
	if filter.Status != "" {
		base["status"] = string(filter.Status)
	}
	if owner := strings.TrimSpace(filter.OwnerID); owner != "" {
		base["ownerId"] = owner
	}
	clauses := make([]bson.M, 0, 1)
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		clauses = append(clauses, keywordClause(keyword))
	}
	opts := pageOptions(paging.Page, paging.Limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, kind, andClauses(base, clauses), opts)
}

// TransitionStatus sets to only while the stored status is still from.
func (r *ListingRepository) TransitionStatus(ctx context.Context, kind domain.Kind, id string, from, to domain.Status) (bool, error) {
	return r.conditionalUpdate(ctx, kind, id,
		bson.M{"status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updatedAt": r.now()}},
	)
}

// SetPremium writes the flag only when it differs.
func (r *ListingRepository) SetPremium(ctx context.Context, kind domain.Kind, id string, premium bool) (bool, error) {
	return r.conditionalUpdate(ctx, kind, id,
		bson.M{"isPremium": bson.M{"$ne": premium}},
		bson.M{"$set": bson.M{"isPremium": premium, "updatedAt": r.now()}},
	)
}

// ApprovePhoto moves url from the pending queue to the approved list in one
// document update. A url that is not pending matches nothing.
func (r *ListingRepository) ApprovePhoto(ctx context.Context, kind domain.Kind, id, url string) (bool, error) {
	return r.conditionalUpdate(ctx, kind, id,
		bson.M{"portfolioPhotosPending": url},
		bson.M{
			"$pull":     bson.M{"portfolioPhotosPending": url},
			"$addToSet": bson.M{"portfolioPhotos": url},
			"$set":      bson.M{"updatedAt": r.now()},
		},
	)
}

// RejectPhoto drops url from the pending queue.
func (r *ListingRepository) RejectPhoto(ctx context.Context, kind domain.Kind, id, url string) (bool, error) {
	return r.conditionalUpdate(ctx, kind, id,
		bson.M{"portfolioPhotosPending": url},
		bson.M{
			"$pull": bson.M{"portfolioPhotosPending": url},
			"$set":  bson.M{"updatedAt": r.now()},
		},
	)
}

// ApproveAllPhotos appends every pending url not already approved, in queue
// order, and empties the queue. The pipeline reads both arrays from the same
// document snapshot.
func (r *ListingRepository) ApproveAllPhotos(ctx context.Context, kind domain.Kind, id string) (bool, error) {
	return r.conditionalUpdate(ctx, kind, id, hasPendingPhotos(), approveAllPipeline(r.now()))
}

// RejectAllPhotos empties the pending queue.
func (r *ListingRepository) RejectAllPhotos(ctx context.Context, kind domain.Kind, id string) (bool, error) {
	return r.conditionalUpdate(ctx, kind, id, hasPendingPhotos(),
		bson.M{"$set": bson.M{"portfolioPhotosPending": bson.A{}, "updatedAt": r.now()}},
	)
}

// FindWithPendingPhotos returns listings whose queue is not empty, oldest update first.
func (r *ListingRepository) FindWithPendingPhotos(ctx context.Context, kind domain.Kind, paging adminapp.Paging) ([]domain.Listing, error) {
	opts := pageOptions(paging.Page, paging.Limit).SetSort(bson.D{{Key: "updatedAt", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, kind, hasPendingPhotos(), opts)
}

// CountWithPendingPhotos counts listings of a kind whose queue is not empty.
func (r *ListingRepository) CountWithPendingPhotos(ctx context.Context, kind domain.Kind) (int64, error) {
	c, err := r.collection(kind)
	if err != nil {
		return 0, err
	}
	n, err := c.CountDocuments(ctx, hasPendingPhotos())
	if err != nil {
		return 0, translate(err, fmt.Sprintf("count pending photos of %s", kind))
	}
	return n, nil
}

// CountByStatus groups the listings of a kind by moderation status.
func (r *ListingRepository) CountByStatus(ctx context.Context, kind domain.Kind) (map[domain.Status]int64, error) {
	c, err := r.collection(kind)
	if err != nil {
		return nil, err
	}
	return countByStatus(ctx, c, "status")
}

func (r *ListingRepository) conditionalUpdate(ctx context.Context, kind domain.Kind, id string, guard bson.M, update any) (bool, error) {
	c, err := r.collection(kind)
	if err != nil {
		return false, err
	}
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	filter := bson.M{"_id": oid}
	for k, v := range guard {
		filter[k] = v
	}
	res, err := c.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, translate(err, fmt.Sprintf("update %s listing %s", kind, id))
	}
	return res.ModifiedCount > 0, nil
}

func hasPendingPhotos() bson.M {
	return bson.M{"portfolioPhotosPending.0": bson.M{"$exists": true}}
}

func approveAllPipeline(now any) mongo.Pipeline {
	approved := bson.D{{Key: "$ifNull", Value: bson.A{"$portfolioPhotos", bson.A{}}}}
	fresh := bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: "$portfolioPhotosPending"},
		{Key: "as", Value: "photo"},
		{Key: "cond", Value: bson.D{{Key: "$not", Value: bson.A{
			bson.D{{Key: "$in", Value: bson.A{"$$photo", approved}}},
		}}}},
	}}}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "portfolioPhotos", Value: bson.D{{Key: "$concatArrays", Value: bson.A{approved, fresh}}}},
			{Key: "portfolioPhotosPending", Value: bson.D{{Key: "$literal", Value: bson.A{}}}},
			{Key: "updatedAt", Value: now},
		}}},
	}
}

func countByStatus(ctx context.Context, c *mongo.Collection, field string) (map[domain.Status]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err, "count by status")
	}
	defer cursor.Close(ctx)

	counts := map[domain.Status]int64{
		domain.StatusPending:  0,
		domain.StatusApproved: 0,
		domain.StatusRejected: 0,
	}
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, translate(err, "decode status count")
		}
		if status, err := domain.ParseStatus(row.Status); err == nil {
			counts[status] = row.Count
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, translate(err, "iterate status counts")
	}
	return counts, nil
}
