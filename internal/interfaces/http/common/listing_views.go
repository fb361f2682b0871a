package common

import (
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
)

// LocalizedText is the wire form of domain.LocalizedText.
type LocalizedText struct {
	FR *string `json:"fr,omitempty"`
	EN *string `json:"en,omitempty"`
	AR *string `json:"ar,omitempty"`
}

// Domain converts the wire form, treating blank values as absent.
func (t LocalizedText) Domain() domain.LocalizedText {
	return domain.NewLocalizedText(deref(t.FR), deref(t.EN), deref(t.AR))
}

// LocalizedList is the wire form of domain.LocalizedList.
type LocalizedList struct {
	FR []string `json:"fr,omitempty"`
	EN []string `json:"en,omitempty"`
	AR []string `json:"ar,omitempty"`
}

func (l LocalizedList) Domain() domain.LocalizedList {
	return domain.LocalizedList{FR: l.FR, EN: l.EN, AR: l.AR}
}

// ContactResponse is the public contact block.
type ContactResponse struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Website  string `json:"website,omitempty"`
}

// RatingResponse is a rating aggregate.
type RatingResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

func NewRatingResponse(summary domain.RatingSummary) RatingResponse {
	return RatingResponse{Average: summary.Average, Count: summary.Count}
}

// ListingResponse is the full listing as owners and admins see it, every
// language included.
type ListingResponse struct {
	ID                     string          `json:"id"`
	Kind                   string          `json:"kind"`
	OwnerID                string          `json:"ownerId"`
	Name                   string          `json:"name"`
	Description            LocalizedText   `json:"description"`
	City                   LocalizedText   `json:"city"`
	Logo                   *string         `json:"logo,omitempty"`
	PortfolioPhotos        []string        `json:"portfolioPhotos"`
	PortfolioPhotosPending []string        `json:"portfolioPhotosPending"`
	PortfolioURLs          []string        `json:"portfolioUrls"`
	Credentials            []string        `json:"credentials"`
	Contact                ContactResponse `json:"contact"`
	Services               *LocalizedList  `json:"services,omitempty"`
	CitiesCovered          *LocalizedList  `json:"citiesCovered,omitempty"`
	Styles                 *LocalizedList  `json:"styles,omitempty"`
	Status                 string          `json:"status"`
	IsPremium              bool            `json:"isPremium"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

func NewListingResponse(listing domain.Listing) ListingResponse {
	core := listing.Core()
	resp := ListingResponse{
		ID:                     core.ID,
		Kind:                   listing.Kind().String(),
		OwnerID:                core.OwnerID,
		Name:                   core.Name,
		Description:            LocalizedText{FR: core.Description.FR, EN: core.Description.EN, AR: core.Description.AR},
		City:                   LocalizedText{FR: core.City.FR, EN: core.City.EN, AR: core.City.AR},
		Logo:                   core.Logo,
		PortfolioPhotos:        nonNil(core.PortfolioPhotos),
		PortfolioPhotosPending: nonNil(core.PortfolioPhotosPending),
		PortfolioURLs:          nonNil(core.PortfolioURLs),
		Credentials:            nonNil(core.Credentials),
		Contact:                contactResponse(core.Contact),
		Status:                 core.Status.String(),
		IsPremium:              core.IsPremium,
		CreatedAt:              core.CreatedAt,
		UpdatedAt:              core.UpdatedAt,
	}
	switch l := listing.(type) {
	case *domain.ConciergeListing:
		resp.Services, resp.CitiesCovered = listResponse(l.Services), listResponse(l.CitiesCovered)
	case *domain.CleaningListing:
		resp.Services, resp.CitiesCovered = listResponse(l.Services), listResponse(l.CitiesCovered)
	case *domain.DesignerListing:
		resp.Styles = listResponse(l.Styles)
	}
	return resp
}

// PublicListingResponse is a listing resolved into one language. Pending
// photos, owner and moderation fields are never exposed.
type PublicListingResponse struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	City            string          `json:"city"`
	Logo            *string         `json:"logo,omitempty"`
	PortfolioPhotos []string        `json:"portfolioPhotos"`
	PortfolioURLs   []string        `json:"portfolioUrls"`
	Credentials     []string        `json:"credentials"`
	Contact         ContactResponse `json:"contact"`
	Services        []string        `json:"services,omitempty"`
	CitiesCovered   []string        `json:"citiesCovered,omitempty"`
	Styles          []string        `json:"styles,omitempty"`
	IsPremium       bool            `json:"isPremium"`
	Rating          RatingResponse  `json:"rating"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func NewPublicListingResponse(listing domain.Listing, rating domain.RatingSummary, lang string) PublicListingResponse {
	core := listing.Core()
	resp := PublicListingResponse{
		ID:              core.ID,
		Kind:            listing.Kind().String(),
		Name:            core.Name,
		Description:     core.Description.Resolve(lang),
		City:            core.City.Resolve(lang),
		Logo:            core.Logo,
		PortfolioPhotos: nonNil(core.PortfolioPhotos),
		PortfolioURLs:   nonNil(core.PortfolioURLs),
		Credentials:     nonNil(core.Credentials),
		Contact:         contactResponse(core.Contact),
		IsPremium:       core.IsPremium,
		Rating:          NewRatingResponse(rating),
		CreatedAt:       core.CreatedAt,
	}
	if listing.Kind() == domain.KindDesigner {
		resp.Styles = nonNil(listing.Offerings().Resolve(lang))
	} else {
		resp.Services = listing.Offerings().Resolve(lang)
		resp.CitiesCovered = listing.Coverage().Resolve(lang)
	}
	return resp
}

// ReviewResponse is a review as shown to visitors and admins.
type ReviewResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	ListingID  string    `json:"listingId"`
	AuthorName string    `json:"authorName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewReviewResponse builds the response. withStatus is false for public views.
func NewReviewResponse(review domain.Review, withStatus bool) ReviewResponse {
	resp := ReviewResponse{
		ID:         review.ID,
		Kind:       review.Target.Kind().String(),
		ListingID:  review.Target.ListingID(),
		AuthorName: review.AuthorName,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
	if withStatus {
		resp.Status = review.Status.String()
	}
	return resp
}

func contactResponse(c domain.Contact) ContactResponse {
	return ContactResponse{
		Email:    c.Email.String(),
		Phone:    c.Phone,
		WhatsApp: c.WhatsApp,
		Website:  c.Website.String(),
	}
}

func listResponse(l domain.LocalizedList) *LocalizedList {
	return &LocalizedList{FR: nonNil(l.FR), EN: nonNil(l.EN), AR: nonNil(l.AR)}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
