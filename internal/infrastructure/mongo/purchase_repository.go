package mongo

import (
	"context"

	shopdomain "github.com/hostlink-ma/hostlink-services/api/internal/shop/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PurchaseRepository records paid sessions keyed by the gateway session id.
type PurchaseRepository struct {
	collection *mongo.Collection
}

func NewPurchaseRepository(db *mongo.Database, collectionName string) *PurchaseRepository {
	return &PurchaseRepository{collection: db.Collection(collectionName)}
}

// Upsert inserts the purchase only when the session is unknown. Webhook
// replays hit $setOnInsert and leave the stored record untouched.
func (r *PurchaseRepository) Upsert(ctx context.Context, purchase shopdomain.Purchase) (bool, error) {
	doc := purchaseToDocument(purchase)
	update := bson.M{"$setOnInsert": bson.M{
		"productId": doc.ProductID,
		"email":     doc.Email,
		"amount":    doc.Amount,
		"currency":  doc.Currency,
		"status":    doc.Status,
		"createdAt": doc.CreatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.SessionID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, translate(err, "upsert purchase "+purchase.SessionID)
	}
	return res.UpsertedCount > 0, nil
}

// FindBySession returns the purchase of a checkout session.
func (r *PurchaseRepository) FindBySession(ctx context.Context, sessionID string) (shopdomain.Purchase, error) {
	var doc PurchaseDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc); err != nil {
		return shopdomain.Purchase{}, translate(err, "purchase "+sessionID)
	}
	return mapPurchaseDocument(doc), nil
}

func purchaseToDocument(p shopdomain.Purchase) PurchaseDocument {
	return PurchaseDocument{
		SessionID: p.SessionID,
		ProductID: p.ProductID,
		Email:     p.Email,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}

func mapPurchaseDocument(doc PurchaseDocument) shopdomain.Purchase {
	return shopdomain.Purchase{
		SessionID: doc.SessionID,
		ProductID: doc.ProductID,
		Email:     doc.Email,
		Amount:    doc.Amount,
		Currency:  doc.Currency,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
	}
}
