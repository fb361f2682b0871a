package owner

import (
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
)

type contactRequest struct {
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Phone    string `json:"phone" validate:"max=32"`
	WhatsApp string `json:"whatsapp" validate:"max=32"`
	Website  string `json:"website" validate:"omitempty,http_url"`
}

// listingRequest is the full editable content of a listing. Kind-specific
// lists that do not apply to the target kind are ignored.
type listingRequest struct {
	Name          string               `json:"name" validate:"required,max=120"`
	Description   common.LocalizedText `json:"description"`
	City          common.LocalizedText `json:"city"`
	Logo          string               `json:"logo" validate:"omitempty,http_url"`
	PortfolioURLs []string             `json:"portfolioUrls" validate:"max=20"`
	Credentials   []string             `json:"credentials" validate:"max=20"`
	Contact       contactRequest       `json:"contact"`
	Services      common.LocalizedList `json:"services"`
	CitiesCovered common.LocalizedList `json:"citiesCovered"`
	Styles        common.LocalizedList `json:"styles"`
}

func (req listingRequest) content() domain.ListingContent {
	return domain.ListingContent{
		Name:          req.Name,
		Description:   req.Description.Domain(),
		City:          req.City.Domain(),
		Logo:          req.Logo,
		PortfolioURLs: req.PortfolioURLs,
		Credentials:   req.Credentials,
		Email:         req.Contact.Email,
		Phone:         req.Contact.Phone,
		WhatsApp:      req.Contact.WhatsApp,
		Website:       req.Contact.Website,
		Services:      req.Services.Domain(),
		CitiesCovered: req.CitiesCovered.Domain(),
		Styles:        req.Styles.Domain(),
	}
}

// listingPatchRequest changes only the fields that are present.
type listingPatchRequest struct {
	Name          *string               `json:"name" validate:"omitempty,min=1,max=120"`
	Description   *common.LocalizedText `json:"description"`
	City          *common.LocalizedText `json:"city"`
	Logo          *string               `json:"logo"`
	PortfolioURLs *[]string             `json:"portfolioUrls"`
	Credentials   *[]string             `json:"credentials"`
	Contact       *contactRequest       `json:"contact"`
	Services      *common.LocalizedList `json:"services"`
	CitiesCovered *common.LocalizedList `json:"citiesCovered"`
	Styles        *common.LocalizedList `json:"styles"`
}

func (req listingPatchRequest) apply(content domain.ListingContent) domain.ListingContent {
	if req.Name != nil {
		content.Name = *req.Name
	}
	if req.Description != nil {
		content.Description = req.Description.Domain()
	}
	if req.City != nil {
		content.City = req.City.Domain()
	}
	if req.Logo != nil {
		content.Logo = *req.Logo
	}
	if req.PortfolioURLs != nil {
		content.PortfolioURLs = *req.PortfolioURLs
	}
	if req.Credentials != nil {
		content.Credentials = *req.Credentials
	}
	if req.Contact != nil {
		content.Email = req.Contact.Email
		content.Phone = req.Contact.Phone
		content.WhatsApp = req.Contact.WhatsApp
		content.Website = req.Contact.Website
	}
	if req.Services != nil {
		content.Services = req.Services.Domain()
	}
	if req.CitiesCovered != nil {
		content.CitiesCovered = req.CitiesCovered.Domain()
	}
	if req.Styles != nil {
		content.Styles = req.Styles.Domain()
	}
	return content
}

type photoRequest struct {
	URL string `json:"url" validate:"required,http_url"`
}

type listingListResponse struct {
	Items []common.ListingResponse `json:"items"`
}
