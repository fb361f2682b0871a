package mongo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	publicapp "github.com/hostlink-ma/hostlink-services/api/internal/public/application"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListingCollections names the collection of each listing kind.
type ListingCollections struct {
	Concierges string
	Cleanings  string
	Designers  string
}

// ListingRepository stores the three listing kinds, one collection each. It
// serves the visitor, owner and admin ports.
type ListingRepository struct {
	collections map[domain.Kind]*mongo.Collection
	now         func() time.Time
}

// NewListingRepository binds the kind collections of db.
func NewListingRepository(db *mongo.Database, names ListingCollections) *ListingRepository {
	return &ListingRepository{
		collections: map[domain.Kind]*mongo.Collection{
			domain.KindConcierge: db.Collection(names.Concierges),
			domain.KindCleaning:  db.Collection(names.Cleanings),
			domain.KindDesigner:  db.Collection(names.Designers),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *ListingRepository) collection(kind domain.Kind) (*mongo.Collection, error) {
	c, ok := r.collections[kind]
	if !ok {
		return nil, fmt.Errorf("unknown listing kind %q: %w", kind, apperrors.ErrValidation)
	}
	return c, nil
}

// Create inserts a new listing and returns its hex id.
func (r *ListingRepository) Create(ctx context.Context, listing domain.Listing) (string, error) {
	c, err := r.collection(listing.Kind())
	if err != nil {
		return "", err
	}
	doc := listingToDocument(listing)
	doc.ID = primitive.NewObjectID()
	if _, err := c.InsertOne(ctx, doc); err != nil {
		return "", translate(err, "insert listing")
	}
	listing.Core().ID = doc.ID.Hex()
	return doc.ID.Hex(), nil
}

// FindByID returns a listing in any state.
func (r *ListingRepository) FindByID(ctx context.Context, kind domain.Kind, id string) (domain.Listing, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, kind, bson.M{"_id": oid})
}

// FindByOwner returns every listing of ownerID across kinds, newest first.
func (r *ListingRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	result := make([]domain.Listing, 0)
	for _, kind := range domain.AllKinds {
		items, err := r.find(ctx, kind, bson.M{"ownerId": ownerID}, options.Find())
		if err != nil {
			return nil, err
		}
		result = append(result, items...)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Core().CreatedAt.After(result[j].Core().CreatedAt)
	})
	return result, nil
}

// UpdateContent overwrites the editable fields. Status, premium flag and the
// photo queues are not part of the update.
func (r *ListingRepository) UpdateContent(ctx context.Context, listing domain.Listing, ownerID string) error {
	c, err := r.collection(listing.Kind())
	if err != nil {
		return err
	}
	oid, err := objectID(listing.Core().ID)
	if err != nil {
		return err
	}
	doc := listingToDocument(listing)
	set := bson.M{
		"name":          doc.Name,
		"description":   doc.Description,
		"city":          doc.City,
		"logo":          doc.Logo,
		"portfolioUrls": doc.PortfolioURLs,
		"credentials":   doc.Credentials,
		"contact":       doc.Contact,
		"updatedAt":     r.now(),
	}
	if doc.Services != nil {
		set["services"] = doc.Services
	}
	if doc.CitiesCovered != nil {
		set["citiesCovered"] = doc.CitiesCovered
	}
	if doc.Styles != nil {
		set["styles"] = doc.Styles
	}
	res, err := c.UpdateOne(ctx, bson.M{"_id": oid, "ownerId": ownerID}, bson.M{"$set": set})
	if err != nil {
		return translate(err, "update listing")
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("listing %s: %w", listing.Core().ID, apperrors.ErrNotFound)
	}
	return nil
}

// SubmitPhoto queues url unless it is already approved or pending. Both guards
// live in the filter, so a modified document means the queue grew.
func (r *ListingRepository) SubmitPhoto(ctx context.Context, kind domain.Kind, id, ownerID, url string) (bool, error) {
	c, err := r.collection(kind)
	if err != nil {
		return false, err
	}
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	filter := bson.M{
		"_id":                    oid,
		"ownerId":                ownerID,
		"portfolioPhotos":        bson.M{"$ne": url},
		"portfolioPhotosPending": bson.M{"$ne": url},
	}
	update := bson.M{
		"$addToSet": bson.M{"portfolioPhotosPending": url},
		"$set":      bson.M{"updatedAt": r.now()},
	}
	res, err := c.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, translate(err, "submit photo")
	}
	return res.ModifiedCount > 0, nil
}

// FindApproved returns approved listings matching filter, premium first.
func (r *ListingRepository) FindApproved(ctx context.Context, kind domain.Kind, filter publicapp.ListingFilter, paging publicapp.Paging) ([]domain.Listing, error) {
	opts := pageOptions(paging.Page, paging.Limit).
		SetSort(bson.D{{Key: "isPremium", Value: -1}, {Key: "createdAt", Value: -1}})
	return r.find(ctx, kind, publicFilter(kind, filter), opts)
}

// FindApprovedByID returns the listing only when it is approved.
func (r *ListingRepository) FindApprovedByID(ctx context.Context, kind domain.Kind, id string) (domain.Listing, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, kind, bson.M{"_id": oid, "status": string(domain.StatusApproved)})
}

func publicFilter(kind domain.Kind, filter publicapp.ListingFilter) bson.M {
	base := bson.M{"status": string(domain.StatusApproved)}
	clauses := make([]bson.M, 0, 3)
	if city := strings.TrimSpace(filter.City); city != "" {
		match := exactPattern(city)
		or := anyLanguage("city", match)
		if kind != domain.KindDesigner {
			or = append(or, anyLanguage("citiesCovered", match)...)
		}
		clauses = append(clauses, bson.M{"$or": or})
	}
	if service := strings.TrimSpace(filter.Service); service != "" {
		field := "services"
		if kind == domain.KindDesigner {
			field = "styles"
		}
		clauses = append(clauses, bson.M{"$or": anyLanguage(field, exactPattern(service))})
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		clauses = append(clauses, keywordClause(keyword))
	}
	if filter.PremiumOnly {
		base["isPremium"] = true
	}
	return andClauses(base, clauses)
}

func keywordClause(keyword string) bson.M {
	regex := containsPattern(keyword)
	or := bson.A{bson.M{"name": regex}}
	or = append(or, anyLanguage("description", regex)...)
	or = append(or, anyLanguage("city", regex)...)
	return bson.M{"$or": or}
}

func (r *ListingRepository) findOne(ctx context.Context, kind domain.Kind, filter bson.M) (domain.Listing, error) {
	c, err := r.collection(kind)
	if err != nil {
		return nil, err
	}
	var doc ListingDocument
	if err := c.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err, fmt.Sprintf("find %s listing", kind))
	}
	return mapListingDocument(kind, doc)
}

func (r *ListingRepository) find(ctx context.Context, kind domain.Kind, filter bson.M, opts *options.FindOptions) ([]domain.Listing, error) {
	c, err := r.collection(kind)
	if err != nil {
		return nil, err
	}
	cursor, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("find %s listings", kind))
	}
	defer cursor.Close(ctx)

	listings := make([]domain.Listing, 0)
	for cursor.Next(ctx) {
		var doc ListingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, translate(err, "decode listing")
		}
		listing, err := mapListingDocument(kind, doc)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err := cursor.Err(); err != nil {
		return nil, translate(err, "iterate listings")
	}
	return listings, nil
}

func listingToDocument(listing domain.Listing) ListingDocument {
	core := listing.Core()
	doc := ListingDocument{
		OwnerID:                core.OwnerID,
		Name:                   core.Name,
		Description:            textDocument(core.Description),
		City:                   textDocument(core.City),
		Logo:                   core.Logo,
		PortfolioPhotos:        nonNil(core.PortfolioPhotos),
		PortfolioPhotosPending: nonNil(core.PortfolioPhotosPending),
		PortfolioURLs:          core.PortfolioURLs,
		Credentials:            core.Credentials,
		Contact: ContactDocument{
			Email:    core.Contact.Email.String(),
			Phone:    core.Contact.Phone,
			WhatsApp: core.Contact.WhatsApp,
			Website:  core.Contact.Website.String(),
		},
		Status:    string(core.Status),
		IsPremium: core.IsPremium,
		CreatedAt: core.CreatedAt,
		UpdatedAt: core.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(core.ID); err == nil {
		doc.ID = oid
	}
	switch l := listing.(type) {
	case *domain.ConciergeListing:
		doc.Services = listDocument(l.Services)
		doc.CitiesCovered = listDocument(l.CitiesCovered)
	case *domain.CleaningListing:
		doc.Services = listDocument(l.Services)
		doc.CitiesCovered = listDocument(l.CitiesCovered)
	case *domain.DesignerListing:
		doc.Styles = listDocument(l.Styles)
	}
	return doc
}

func mapListingDocument(kind domain.Kind, doc ListingDocument) (domain.Listing, error) {
	listing, err := domain.NewEmptyListing(kind)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(doc.Status)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", doc.ID.Hex(), err)
	}
	core := listing.Core()
	*core = domain.ListingCore{
		ID:                     doc.ID.Hex(),
		OwnerID:                doc.OwnerID,
		Name:                   doc.Name,
		Description:            localizedText(doc.Description),
		City:                   localizedText(doc.City),
		Logo:                   doc.Logo,
		PortfolioPhotos:        nonNil(doc.PortfolioPhotos),
		PortfolioPhotosPending: nonNil(doc.PortfolioPhotosPending),
		PortfolioURLs:          append([]string{}, doc.PortfolioURLs...),
		Credentials:            append([]string{}, doc.Credentials...),
		Contact: domain.Contact{
			Email:    domain.Email(doc.Contact.Email),
			Phone:    doc.Contact.Phone,
			WhatsApp: doc.Contact.WhatsApp,
			Website:  domain.URL(doc.Contact.Website),
		},
		Status:    status,
		IsPremium: doc.IsPremium,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	switch l := listing.(type) {
	case *domain.ConciergeListing:
		l.Services = localizedList(doc.Services)
		l.CitiesCovered = localizedList(doc.CitiesCovered)
	case *domain.CleaningListing:
		l.Services = localizedList(doc.Services)
		l.CitiesCovered = localizedList(doc.CitiesCovered)
	case *domain.DesignerListing:
		l.Styles = localizedList(doc.Styles)
	}
	return listing, nil
}

func textDocument(t domain.LocalizedText) LocalizedTextDocument {
	return LocalizedTextDocument{FR: t.FR, EN: t.EN, AR: t.AR}
}

func localizedText(d LocalizedTextDocument) domain.LocalizedText {
	return domain.LocalizedText{FR: d.FR, EN: d.EN, AR: d.AR}
}

func listDocument(l domain.LocalizedList) *LocalizedListDocument {
	return &LocalizedListDocument{FR: l.FR, EN: l.EN, AR: l.AR}
}

func localizedList(d *LocalizedListDocument) domain.LocalizedList {
	if d == nil {
		return domain.LocalizedList{}
	}
	return domain.LocalizedList{
		FR: append([]string(nil), d.FR...),
		EN: append([]string(nil), d.EN...),
		AR: append([]string(nil), d.AR...),
	}
}

func nonNil(values []string) []string {
	return append([]string{}, values...)
}
