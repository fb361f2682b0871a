package mongo

import (
	"context"

	"github.com/hostlink-ma/hostlink-services/api/internal/infrastructure/messenger"
	"go.mongodb.org/mongo-driver/mongo"
)

// FailedNotificationRepository keeps admin alerts the messenger could not deliver.
type FailedNotificationRepository struct {
	collection *mongo.Collection
}

func NewFailedNotificationRepository(db *mongo.Database, collectionName string) *FailedNotificationRepository {
	return &FailedNotificationRepository{collection: db.Collection(collectionName)}
}

// Record stores one undelivered alert.
func (r *FailedNotificationRepository) Record(ctx context.Context, failure messenger.Failure) error {
	doc := FailedNotificationDocument{
		Kind:        failure.Kind,
		Destination: failure.Destination,
		Text:        failure.Text,
		Error:       failure.Error,
		Attempts:    failure.Attempts,
		CreatedAt:   failure.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translate(err, "insert failed notification")
	}
	return nil
}
