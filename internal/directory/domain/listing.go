package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
)

const (
	MaxListingNameRunes   = 120
	MaxDescriptionRunes   = 4000
	MaxPortfolioURLs      = 20
	MaxCredentials        = 20
	MaxLocalizedListItems = 50
)

// Contact is the public contact block of a listing.
type Contact struct {
	Email    Email
	Phone    string
	WhatsApp string
	Website  URL
}

// ListingCore carries the fields and moderation state common to every variant.
type ListingCore struct {
	ID                     string
	OwnerID                string
	Name                   string
	Description            LocalizedText
	City                   LocalizedText
	Logo                   *string
	PortfolioPhotos        []string
	PortfolioPhotosPending []string
	PortfolioURLs          []string
	Credentials            []string
	Contact                Contact
	Status                 Status
	IsPremium              bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Photos returns the photo queue view of the core.
func (c *ListingCore) Photos() PhotoQueue {
	return PhotoQueue{
		Approved: append([]string(nil), c.PortfolioPhotos...),
		Pending:  append([]string(nil), c.PortfolioPhotosPending...),
	}
}

// SetPhotos replaces both photo lists.
func (c *ListingCore) SetPhotos(q PhotoQueue) {
	c.PortfolioPhotos = append([]string{}, q.Approved...)
	c.PortfolioPhotosPending = append([]string{}, q.Pending...)
}

// VisibleTo reports whether a viewer may read the listing. Visitors see approved
// listings only; owners see their own listings in every state.
func (c *ListingCore) VisibleTo(viewer Actor) bool {
	if c.Status.IsPublic() || viewer.IsAdmin() {
		return true
	}
	return viewer.ID != "" && viewer.ID == c.OwnerID
}

// Listing is implemented by the three provider variants.
type Listing interface {
	Kind() Kind
	Core() *ListingCore
	// Offerings is the filterable catalogue: services for companies, styles for designers.
	Offerings() LocalizedList
	// Coverage lists the cities a company serves. Designers return an empty list.
	Coverage() LocalizedList
}

type ConciergeListing struct {
	ListingCore
	Services      LocalizedList
	CitiesCovered LocalizedList
}

func (l *ConciergeListing) Kind() Kind               { return KindConcierge }
func (l *ConciergeListing) Core() *ListingCore       { return &l.ListingCore }
func (l *ConciergeListing) Offerings() LocalizedList { return l.Services }
func (l *ConciergeListing) Coverage() LocalizedList  { return l.CitiesCovered }

type CleaningListing struct {
	ListingCore
	Services      LocalizedList
	CitiesCovered LocalizedList
}

func (l *CleaningListing) Kind() Kind               { return KindCleaning }
func (l *CleaningListing) Core() *ListingCore       { return &l.ListingCore }
func (l *CleaningListing) Offerings() LocalizedList { return l.Services }
func (l *CleaningListing) Coverage() LocalizedList  { return l.CitiesCovered }

type DesignerListing struct {
	ListingCore
	Styles LocalizedList
}

func (l *DesignerListing) Kind() Kind               { return KindDesigner }
func (l *DesignerListing) Core() *ListingCore       { return &l.ListingCore }
func (l *DesignerListing) Offerings() LocalizedList { return l.Styles }
func (l *DesignerListing) Coverage() LocalizedList  { return LocalizedList{} }

// NewEmptyListing returns a zero listing of the given kind.
func NewEmptyListing(kind Kind) (Listing, error) {
	switch kind {
	case KindConcierge:
		return &ConciergeListing{}, nil
	case KindCleaning:
		return &CleaningListing{}, nil
	case KindDesigner:
		return &DesignerListing{}, nil
	}
	return nil, fmt.Errorf("unknown listing kind %q: %w", kind, apperrors.ErrValidation)
}

// ListingContent is the owner-editable part of a listing. Status, premium flag
// and photo queues are never part of it.
type ListingContent struct {
	Name          string
	Description   LocalizedText
	City          LocalizedText
	Logo          string
	PortfolioURLs []string
	Credentials   []string
	Email         string
	Phone         string
	WhatsApp      string
	Website       string
	Services      LocalizedList
	CitiesCovered LocalizedList
	Styles        LocalizedList
}

// NewListing creates a pending listing owned by ownerID.
func NewListing(kind Kind, ownerID string, content ListingContent, now time.Time) (Listing, error) {
	listing, err := NewEmptyListing(kind)
	if err != nil {
		return nil, err
	}
	if err := ApplyContent(listing, content); err != nil {
		return nil, err
	}
	core := listing.Core()
	core.OwnerID = strings.TrimSpace(ownerID)
	core.Status = StatusPending
	core.PortfolioPhotos = []string{}
	core.PortfolioPhotosPending = []string{}
	core.CreatedAt = now
	core.UpdatedAt = now
	return listing, nil
}

// ApplyContent validates content and copies it onto listing.
func ApplyContent(listing Listing, content ListingContent) error {
	name := strings.TrimSpace(content.Name)
	if name == "" {
		return fmt.Errorf("name is required: %w", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(name) > MaxListingNameRunes {
		return fmt.Errorf("name must be at most %d characters: %w", MaxListingNameRunes, apperrors.ErrValidation)
	}
	for _, v := range []*string{content.Description.FR, content.Description.EN, content.Description.AR} {
		if v != nil && utf8.RuneCountInString(*v) > MaxDescriptionRunes {
			return fmt.Errorf("description must be at most %d characters: %w", MaxDescriptionRunes, apperrors.ErrValidation)
		}
	}

	var logo *string
	if trimmed := strings.TrimSpace(content.Logo); trimmed != "" {
		photo, err := NewPhotoURL(trimmed)
		if err != nil {
			return fmt.Errorf("logo: %w", err)
		}
		value := photo.String()
		logo = &value
	}
	links, err := NewURLList(content.PortfolioURLs, MaxPortfolioURLs)
	if err != nil {
		return fmt.Errorf("portfolio links: %w", err)
	}
	credentials, err := cleanList(content.Credentials, MaxCredentials)
	if err != nil {
		return fmt.Errorf("credentials: %w", err)
	}
	email, err := NewEmail(content.Email)
	if err != nil {
		return err
	}
	website, err := NewURL(content.Website)
	if err != nil {
		return fmt.Errorf("website: %w", err)
	}

	core := listing.Core()
	core.Name = name
	core.Description = content.Description
	core.City = content.City
	core.Logo = logo
	core.PortfolioURLs = links
	core.Credentials = credentials
	core.Contact = Contact{
		Email:    email,
		Phone:    strings.TrimSpace(content.Phone),
		WhatsApp: strings.TrimSpace(content.WhatsApp),
		Website:  website,
	}

	switch l := listing.(type) {
	case *ConciergeListing:
		if l.Services, err = cleanLocalizedList(content.Services); err != nil {
			return fmt.Errorf("services: %w", err)
		}
		if l.CitiesCovered, err = cleanLocalizedList(content.CitiesCovered); err != nil {
			return fmt.Errorf("cities covered: %w", err)
		}
	case *CleaningListing:
		if l.Services, err = cleanLocalizedList(content.Services); err != nil {
			return fmt.Errorf("services: %w", err)
		}
		if l.CitiesCovered, err = cleanLocalizedList(content.CitiesCovered); err != nil {
			return fmt.Errorf("cities covered: %w", err)
		}
	case *DesignerListing:
		if l.Styles, err = cleanLocalizedList(content.Styles); err != nil {
			return fmt.Errorf("styles: %w", err)
		}
	}
	return nil
}

// ContentOf extracts the editable content of listing.
func ContentOf(listing Listing) ListingContent {
	core := listing.Core()
	content := ListingContent{
		Name:          core.Name,
		Description:   core.Description,
		City:          core.City,
		PortfolioURLs: append([]string(nil), core.PortfolioURLs...),
		Credentials:   append([]string(nil), core.Credentials...),
		Email:         core.Contact.Email.String(),
		Phone:         core.Contact.Phone,
		WhatsApp:      core.Contact.WhatsApp,
		Website:       core.Contact.Website.String(),
	}
	if core.Logo != nil {
		content.Logo = *core.Logo
	}
	switch l := listing.(type) {
	case *ConciergeListing:
		content.Services = l.Services
		content.CitiesCovered = l.CitiesCovered
	case *CleaningListing:
		content.Services = l.Services
		content.CitiesCovered = l.CitiesCovered
	case *DesignerListing:
		content.Styles = l.Styles
	}
	return content
}

func cleanLocalizedList(l LocalizedList) (LocalizedList, error) {
	fr, err := cleanList(l.FR, MaxLocalizedListItems)
	if err != nil {
		return LocalizedList{}, err
	}
	en, err := cleanList(l.EN, MaxLocalizedListItems)
	if err != nil {
		return LocalizedList{}, err
	}
	ar, err := cleanList(l.AR, MaxLocalizedListItems)
	if err != nil {
		return LocalizedList{}, err
	}
	return LocalizedList{FR: fr, EN: en, AR: ar}, nil
}

func cleanList(values []string, limit int) ([]string, error) {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	if limit > 0 && len(result) > limit {
		return nil, fmt.Errorf("at most %d entries allowed: %w", limit, apperrors.ErrValidation)
	}
	return result, nil
}
