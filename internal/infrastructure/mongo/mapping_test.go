package mongo

import (
	"errors"
	"testing"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	publicapp "github.com/hostlink-ma/hostlink-services/api/internal/public/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestObjectIDRejectsMalformedIDsAsNotFound(t *testing.T) {
	_, err := objectID("not-hex")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	oid := primitive.NewObjectID()
	got, err := objectID(" " + oid.Hex() + " ")
	require.NoError(t, err)
	assert.Equal(t, oid, got)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "x"))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments, "find"), apperrors.ErrNotFound)

	err := translate(errors.New("socket closed"), "find")
	assert.ErrorIs(t, err, apperrors.ErrDependency)
	assert.Contains(t, err.Error(), "socket closed")
}

func TestPageOptionsClamps(t *testing.T) {
	opts := pageOptions(3, 500)
	assert.Equal(t, int64(maxLimit), *opts.Limit)
	assert.Equal(t, int64(2*maxLimit), *opts.Skip)

	opts = pageOptions(0, 0)
	assert.Equal(t, int64(defaultLimit), *opts.Limit)
	assert.Equal(t, int64(0), *opts.Skip)
}

func TestListingDocumentRoundTripKeepsVariantFields(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	listing, err := domain.NewListing(domain.KindConcierge, "owner-1", domain.ListingContent{
		Name:          "Riad Keys",
		City:          domain.NewLocalizedText("Marrakech", "", "مراكش"),
		Email:         "hello@riadkeys.ma",
		Services:      domain.LocalizedList{FR: []string{"Check-in", "Ménage"}},
		CitiesCovered: domain.LocalizedList{FR: []string{"Marrakech", "Essaouira"}},
	}, now)
	require.NoError(t, err)
	listing.Core().ID = primitive.NewObjectID().Hex()
	listing.Core().PortfolioPhotosPending = []string{"https://cdn.example.com/a.jpg"}

	doc := listingToDocument(listing)
	assert.Nil(t, doc.Styles)
	require.NotNil(t, doc.Services)

	back, err := mapListingDocument(domain.KindConcierge, doc)
	require.NoError(t, err)
	concierge, ok := back.(*domain.ConciergeListing)
	require.True(t, ok)
	assert.Equal(t, listing.Core().ID, concierge.ID)
	assert.Equal(t, domain.StatusPending, concierge.Status)
	assert.Equal(t, []string{"Check-in", "Ménage"}, concierge.Services.FR)
	assert.Equal(t, "مراكش", concierge.City.Resolve(domain.LangAR))
	assert.Equal(t, []string{}, concierge.PortfolioPhotos)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, concierge.PortfolioPhotosPending)
	assert.Equal(t, "hello@riadkeys.ma", concierge.Contact.Email.String())
}

func TestMapListingDocumentRejectsUnknownStatus(t *testing.T) {
	_, err := mapListingDocument(domain.KindDesigner, ListingDocument{ID: primitive.NewObjectID(), Status: "archived"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPublicFilterAlwaysPinsApproved(t *testing.T) {
	filter := publicFilter(domain.KindDesigner, publicapp.ListingFilter{City: "Fès", Service: "Moderne", Keyword: "zellige", PremiumOnly: true})

	assert.Equal(t, "approved", filter["status"])
	assert.Equal(t, true, filter["isPremium"])
	clauses, ok := filter["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, clauses, 3)

	cityOr := clauses[0]["$or"].(bson.A)
	assert.Len(t, cityOr, 3, "designers have no covered cities")
	styleOr := clauses[1]["$or"].(bson.A)
	assert.Contains(t, styleOr, bson.M{"styles.fr": exactPattern("Moderne")})
}

func TestPublicFilterForCompaniesSearchesCoveredCities(t *testing.T) {
	filter := publicFilter(domain.KindCleaning, publicapp.ListingFilter{City: "Rabat"})

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	assert.Len(t, or, 6)
	assert.Contains(t, or, bson.M{"citiesCovered.en": exactPattern("Rabat")})
}

func TestExactPatternEscapesMetacharacters(t *testing.T) {
	assert.Equal(t, `^a\.b\+$`, exactPattern(" a.b+ ").Pattern)
	assert.Equal(t, "i", containsPattern("x").Options)
}

func TestApproveAllPipelineKeepsQueueOrder(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pipeline := approveAllPipeline(now)

	require.Len(t, pipeline, 1)
	stage := pipeline[0]
	require.Equal(t, "$set", stage[0].Key)
	fields := stage[0].Value.(bson.D)
	assert.Equal(t, "portfolioPhotos", fields[0].Key)
	concat := fields[0].Value.(bson.D)[0]
	assert.Equal(t, "$concatArrays", concat.Key)
	assert.Len(t, concat.Value.(bson.A), 2)
	assert.Equal(t, "portfolioPhotosPending", fields[1].Key)
	assert.Equal(t, now, fields[2].Value)
}

func TestReviewDocumentMapping(t *testing.T) {
	listingID := primitive.NewObjectID()
	review, err := domain.NewReview(domain.DesignerTarget(listingID.Hex()), "Youssef", 4, "Très bon accompagnement.", time.Now().UTC())
	require.NoError(t, err)

	doc, err := reviewToDocument(review)
	require.NoError(t, err)
	assert.Equal(t, "designer", doc.Target.Kind)
	assert.Equal(t, listingID, doc.Target.ListingID)

	doc.ID = primitive.NewObjectID()
	back, err := mapReviewDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, review.Target, back.Target)
	assert.Equal(t, domain.StatusPending, back.Status)
	assert.Equal(t, doc.ID.Hex(), back.ID)

	_, err = reviewToDocument(domain.Review{Target: domain.DesignerTarget("bad")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRatingPipelineMatchesApprovedOnly(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID()}
	pipeline := ratingPipeline(domain.KindCleaning, ids)

	match := pipeline[0][0].Value.(bson.D)
	assert.Contains(t, match, bson.E{Key: "status", Value: "approved"})
	assert.Contains(t, match, bson.E{Key: "target.kind", Value: "cleaning"})
}
