package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	shopdomain "github.com/hostlink-ma/hostlink-services/api/internal/shop/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository reads the storefront catalogue.
type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database, collectionName string) *ProductRepository {
	return &ProductRepository{collection: db.Collection(collectionName)}
}

// FindActive lists purchasable products, newest first.
func (r *ProductRepository) FindActive(ctx context.Context) ([]shopdomain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, translate(err, "find products")
	}
	defer cursor.Close(ctx)

	products := make([]shopdomain.Product, 0)
	for cursor.Next(ctx) {
		var doc ProductDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, translate(err, "decode product")
		}
		products = append(products, mapProductDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, translate(err, "iterate products")
	}
	return products, nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (shopdomain.Product, error) {
	return r.findOne(ctx, bson.M{"slug": strings.TrimSpace(slug)}, "product "+slug)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (shopdomain.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return shopdomain.Product{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid}, "product "+id)
}

// Upsert writes a product keyed by slug. The seeder uses it.
func (r *ProductRepository) Upsert(ctx context.Context, product shopdomain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	createdAt := product.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	update := bson.M{
		"$set": bson.M{
			"title":       product.Title,
			"description": product.Description,
			"price":       product.Price,
			"currency":    product.Currency,
			"fileKey":     product.FileKey,
			"active":      product.Active,
		},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID(), "createdAt": createdAt},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"slug": product.Slug}, update, options.Update().SetUpsert(true))
	if err != nil {
		return translate(err, fmt.Sprintf("upsert product %s", product.Slug))
	}
	return nil
}

func (r *ProductRepository) findOne(ctx context.Context, filter bson.M, what string) (shopdomain.Product, error) {
	var doc ProductDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return shopdomain.Product{}, translate(err, what)
	}
	return mapProductDocument(doc), nil
}

func mapProductDocument(doc ProductDocument) shopdomain.Product {
	currency := doc.Currency
	if currency == "" {
		currency = shopdomain.DefaultCurrency
	}
	return shopdomain.Product{
		ID:          doc.ID.Hex(),
		Slug:        doc.Slug,
		Title:       doc.Title,
		Description: doc.Description,
		Price:       doc.Price,
		Currency:    currency,
		FileKey:     doc.FileKey,
		Active:      doc.Active,
		CreatedAt:   doc.CreatedAt,
	}
}
