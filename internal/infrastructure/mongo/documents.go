package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocalizedTextDocument stores one optional value per language.
type LocalizedTextDocument struct {
	FR *string `bson:"fr,omitempty"`
	EN *string `bson:"en,omitempty"`
	AR *string `bson:"ar,omitempty"`
}

// LocalizedListDocument stores one array per language.
type LocalizedListDocument struct {
	FR []string `bson:"fr,omitempty"`
	EN []string `bson:"en,omitempty"`
	AR []string `bson:"ar,omitempty"`
}

// ContactDocument is the contact block embedded in a listing.
type ContactDocument struct {
	Email    string `bson:"email,omitempty"`
	Phone    string `bson:"phone,omitempty"`
	WhatsApp string `bson:"whatsapp,omitempty"`
	Website  string `bson:"website,omitempty"`
}

// ListingDocument is the schema shared by the concierges, cleanings and designers
// collections. Services and citiesCovered are only written for companies,
// styles only for designers.
type ListingDocument struct {
	ID                     primitive.ObjectID     `bson:"_id"`
	OwnerID                string                 `bson:"ownerId"`
	Name                   string                 `bson:"name"`
	Description            LocalizedTextDocument  `bson:"description"`
	City                   LocalizedTextDocument  `bson:"city"`
	Logo                   *string                `bson:"logo,omitempty"`
	PortfolioPhotos        []string               `bson:"portfolioPhotos"`
	PortfolioPhotosPending []string               `bson:"portfolioPhotosPending"`
	PortfolioURLs          []string               `bson:"portfolioUrls,omitempty"`
	Credentials            []string               `bson:"credentials,omitempty"`
	Contact                ContactDocument        `bson:"contact"`
	Services               *LocalizedListDocument `bson:"services,omitempty"`
	CitiesCovered          *LocalizedListDocument `bson:"citiesCovered,omitempty"`
	Styles                 *LocalizedListDocument `bson:"styles,omitempty"`
	Status                 string                 `bson:"status"`
	IsPremium              bool                   `bson:"isPremium"`
	CreatedAt              time.Time              `bson:"createdAt"`
	UpdatedAt              time.Time              `bson:"updatedAt"`
}

// ReviewTargetDocument names the reviewed listing.
type ReviewTargetDocument struct {
	Kind      string             `bson:"kind"`
	ListingID primitive.ObjectID `bson:"listingId"`
}

// ReviewDocument is a visitor review.
type ReviewDocument struct {
	ID         primitive.ObjectID   `bson:"_id"`
	Target     ReviewTargetDocument `bson:"target"`
	AuthorName string               `bson:"authorName"`
	Rating     int                  `bson:"rating"`
	Comment    string               `bson:"comment"`
	Status     string               `bson:"status"`
	CreatedAt  time.Time            `bson:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt"`
}

// ExpensesDocument mirrors the calculator's monthly expense lines.
type ExpensesDocument struct {
	Conciergerie float64 `bson:"conciergerie"`
	Menage       float64 `bson:"menage"`
	Electricite  float64 `bson:"electricite"`
	Taxe         float64 `bson:"taxe"`
	Assurance    float64 `bson:"assurance"`
	Autre        float64 `bson:"autre"`
}

// LeadInputsDocument is the input snapshot stored with a lead.
type LeadInputsDocument struct {
	PurchasePrice float64          `bson:"purchasePrice"`
	NightlyRate   float64          `bson:"nightlyRate"`
	OccupancyRate float64          `bson:"occupancyRate"`
	Expenses      ExpensesDocument `bson:"expenses"`
}

// LeadEstimateDocument is the result snapshot stored with a lead.
type LeadEstimateDocument struct {
	MonthlyRevenue   float64 `bson:"monthlyRevenue"`
	TotalExpenses    float64 `bson:"totalExpenses"`
	MonthlyProfit    float64 `bson:"monthlyProfit"`
	YearlyROIPercent float64 `bson:"yearlyRoiPercent"`
}

// LeadDocument is a write-once calculator lead.
type LeadDocument struct {
	ID         primitive.ObjectID   `bson:"_id"`
	Email      string               `bson:"email"`
	Inputs     LeadInputsDocument   `bson:"inputs"`
	Estimate   LeadEstimateDocument `bson:"estimate"`
	CapturedAt time.Time            `bson:"capturedAt"`
}

// ProductDocument is a storefront product.
type ProductDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Slug        string             `bson:"slug"`
	Title       map[string]string  `bson:"title"`
	Description map[string]string  `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	Currency    string             `bson:"currency,omitempty"`
	FileKey     string             `bson:"fileKey"`
	Active      bool               `bson:"active"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// PurchaseDocument records a paid checkout session.
type PurchaseDocument struct {
	SessionID string    `bson:"_id"`
	ProductID string    `bson:"productId"`
	Email     string    `bson:"email,omitempty"`
	Amount    float64   `bson:"amount"`
	Currency  string    `bson:"currency,omitempty"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"createdAt"`
}

// FailedNotificationDocument keeps an undelivered admin alert for later replay.
type FailedNotificationDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Kind        string             `bson:"kind"`
	Destination string             `bson:"destination,omitempty"`
	Text        string             `bson:"text"`
	Error       string             `bson:"error"`
	Attempts    int                `bson:"attempts"`
	CreatedAt   time.Time          `bson:"createdAt"`
}
