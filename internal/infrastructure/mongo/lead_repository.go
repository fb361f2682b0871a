package mongo

import (
	"context"

	calcapp "github.com/hostlink-ma/hostlink-services/api/internal/calculator/application"
	calcdomain "github.com/hostlink-ma/hostlink-services/api/internal/calculator/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LeadRepository is an insert-only store of calculator leads. It exposes no
// update path so a captured snapshot cannot drift.
type LeadRepository struct {
	collection *mongo.Collection
}

func NewLeadRepository(db *mongo.Database, collectionName string) *LeadRepository {
	return &LeadRepository{collection: db.Collection(collectionName)}
}

// Insert stores a new lead and returns its id.
func (r *LeadRepository) Insert(ctx context.Context, lead calcdomain.Lead) (string, error) {
	doc := leadToDocument(lead)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", translate(err, "insert lead")
	}
	return doc.ID.Hex(), nil
}

// List returns leads newest first.
func (r *LeadRepository) List(ctx context.Context, paging calcapp.Paging) ([]calcdomain.Lead, error) {
	opts := pageOptions(paging.Page, paging.Limit).SetSort(bson.D{{Key: "capturedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err, "find leads")
	}
	defer cursor.Close(ctx)

	leads := make([]calcdomain.Lead, 0)
	for cursor.Next(ctx) {
		var doc LeadDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, translate(err, "decode lead")
		}
		leads = append(leads, mapLeadDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, translate(err, "iterate leads")
	}
	return leads, nil
}

func leadToDocument(lead calcdomain.Lead) LeadDocument {
	e := lead.Inputs.Expenses
	return LeadDocument{
		Email: lead.Email,
		Inputs: LeadInputsDocument{
			PurchasePrice: lead.Inputs.PurchasePrice,
			NightlyRate:   lead.Inputs.NightlyRate,
			OccupancyRate: lead.Inputs.OccupancyRate,
			Expenses: ExpensesDocument{
				Conciergerie: e.Conciergerie,
				Menage:       e.Menage,
				Electricite:  e.Electricite,
				Taxe:         e.Taxe,
				Assurance:    e.Assurance,
				Autre:        e.Autre,
			},
		},
		Estimate: LeadEstimateDocument{
			MonthlyRevenue:   lead.Estimate.MonthlyRevenue,
			TotalExpenses:    lead.Estimate.TotalExpenses,
			MonthlyProfit:    lead.Estimate.MonthlyProfit,
			YearlyROIPercent: lead.Estimate.YearlyROIPercent,
		},
		CapturedAt: lead.CapturedAt,
	}
}

func mapLeadDocument(doc LeadDocument) calcdomain.Lead {
	e := doc.Inputs.Expenses
	return calcdomain.Lead{
		ID:    doc.ID.Hex(),
		Email: doc.Email,
		Inputs: calcdomain.Inputs{
			PurchasePrice: doc.Inputs.PurchasePrice,
			NightlyRate:   doc.Inputs.NightlyRate,
			OccupancyRate: doc.Inputs.OccupancyRate,
			Expenses: calcdomain.Expenses{
				Conciergerie: e.Conciergerie,
				Menage:       e.Menage,
				Electricite:  e.Electricite,
				Taxe:         e.Taxe,
				Assurance:    e.Assurance,
				Autre:        e.Autre,
			},
		},
		Estimate: calcdomain.Estimate{
			MonthlyRevenue:   doc.Estimate.MonthlyRevenue,
			TotalExpenses:    doc.Estimate.TotalExpenses,
			MonthlyProfit:    doc.Estimate.MonthlyProfit,
			YearlyROIPercent: doc.Estimate.YearlyROIPercent,
		},
		CapturedAt: doc.CapturedAt,
	}
}
