package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// ServiceCategory classifies funeral and aftercare providers.
type ServiceCategory string

const (
	CategoryFuneralHome ServiceCategory = "funeral_home"
	CategoryFlorist     ServiceCategory = "florist"
	CategoryCaterer     ServiceCategory = "caterer"
	CategoryMonument    ServiceCategory = "monument"
	CategoryGriefCare   ServiceCategory = "grief_care"
)

func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryFuneralHome, CategoryFlorist, CategoryCaterer, CategoryMonument, CategoryGriefCare:
		return true
	}
	return false
}

// Provider is one listing in the service directory.
type Provider struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      ServiceCategory `json:"category"`
	Description   string          `json:"description,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Website       string          `json:"website,omitempty"`
	City          string          `json:"city"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	StartingPrice decimal.Decimal `json:"startingPrice"`
	Rating        float64         `json:"rating"`
}

// SearchResult is a provider plus its distance from the search point.
type SearchResult struct {
	Provider
	DistanceKm float64 `json:"distanceKm"`
}

// SearchRequest filters the directory around a point.
type SearchRequest struct {
	Category  ServiceCategory `json:"category" form:"category"`
	Latitude  float64         `json:"latitude" form:"lat"`
	Longitude float64         `json:"longitude" form:"lng"`
	RadiusKm  float64         `json:"radiusKm" form:"radius"`
}

func (r SearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category,
			validation.When(r.Category != "",
				validation.By(func(interface{}) error {
					if !r.Category.Valid() {
						return validation.NewError("validation_category", "unknown service category")
					}
					return nil
				}),
			),
		),
		validation.Field(&r.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&r.RadiusKm, validation.Min(0.0)),
	)
}

// Lead is a contact request from a bereaved family to a provider.
type Lead struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"providerId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type LeadRequest struct {
	ProviderID string `json:"providerId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

func (r LeadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProviderID, validation.Required.Error("provider id is required")),
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(1, 100)),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Message, validation.Length(0, 2000)),
	)
}
