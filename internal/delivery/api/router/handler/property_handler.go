package handler

import (
	"log/slog"

	"estate/internal/delivery/api/response"
	"estate/internal/domain/entity"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PropertyHandlerParams holds dependencies for PropertyHandler, injected by Fx.
type PropertyHandlerParams struct {
	fx.In

	ListingUC usecase.ListingUsecase
	Logger    *slog.Logger
}

// PropertyHandler serves the listing store. Browsing needs no authentication.
type PropertyHandler struct {
	listingUC usecase.ListingUsecase
	logger    *slog.Logger
}

// NewPropertyHandler is the constructor for PropertyHandler
func NewPropertyHandler(params PropertyHandlerParams) *PropertyHandler {
	return &PropertyHandler{
		listingUC: params.ListingUC,
		logger:    params.Logger,
	}
}

type createPropertyRequest struct {
	Title         string                `json:"title"`
	Type          entity.PropertyType   `json:"type" validate:"omitempty,oneof=Residential Commercial Industrial"`
	Description   string                `json:"description"`
	Address       entity.ListingAddress `json:"address"`
	ForSale       bool                  `json:"forSale"`
	Price         *float64              `json:"price" validate:"required,gte=0"`
	DiscountPrice *float64              `json:"discountPrice" validate:"omitempty,gte=0"`
	Beds          *int                  `json:"beds" validate:"omitempty,gte=0"`
	Baths         *int                  `json:"baths" validate:"omitempty,gte=0"`
	ParkingSpot   bool                  `json:"parkingSpot"`
	Furnished     bool                  `json:"furnished"`
	Images        []string              `json:"images" validate:"required,min=1,dive,required"`
	OwnerID       *uuid.UUID            `json:"ownerId"`
}

type updatePropertyRequest struct {
	Title         *string                `json:"title"`
	Type          *entity.PropertyType   `json:"type" validate:"omitempty,oneof=Residential Commercial Industrial"`
	Description   *string                `json:"description"`
	Address       *entity.ListingAddress `json:"address"`
	ForSale       *bool                  `json:"forSale"`
	Price         *float64               `json:"price" validate:"omitempty,gte=0"`
	DiscountPrice *float64               `json:"discountPrice" validate:"omitempty,gte=0"`
	Beds          *int                   `json:"beds" validate:"omitempty,gte=0"`
	Baths         *int                   `json:"baths" validate:"omitempty,gte=0"`
	ParkingSpot   *bool                  `json:"parkingSpot"`
	Furnished     *bool                  `json:"furnished"`
	Images        *[]string              `json:"images" validate:"omitempty,min=1,dive,required"`
}

type availabilityRequest struct {
	ForSale *bool `json:"forSale" validate:"required"`
}

type propertyPage struct {
	Items  []*entity.Listing `json:"items"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// List browses listings. Every query parameter is an optional filter and they combine with AND.
func (h *PropertyHandler) List(c echo.Context) error {
	q := newQueryParams(c)

	var filter entity.ListingFilter
	if v := q.String("type"); v != nil {
		kind := entity.PropertyType(*v)
		filter.Type = &kind
	}
	filter.City = q.String("city")
	filter.MinPrice = q.Float("minPrice")
	filter.MaxPrice = q.Float("maxPrice")
	filter.ForSale = q.Bool("forSale")
	filter.OwnerID = q.UUID("ownerId")
	filter.MinBeds = q.Int("minBeds")
	filter.MinBaths = q.Int("minBaths")

	input := usecase.ListListingsInput{Filter: filter}
	if limit := q.Int("limit"); limit != nil {
		input.Limit = *limit
	}
	if offset := q.Int("offset"); offset != nil {
		input.Offset = *offset
	}
	if err := q.err(); err != nil {
		return err
	}

	out, err := h.listingUC.List(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.OK(c, "Properties retrieved successfully", propertyPage{
		Items:  out.Items,
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	})
}

func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	listing, err := h.listingUC.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.OK(c, "Property retrieved successfully", listing)
}

func (h *PropertyHandler) Create(c echo.Context) error {
	var req createPropertyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	listing, err := h.listingUC.Create(c.Request().Context(), actor(c), usecase.CreateListingInput{
		Title:         req.Title,
		Type:          req.Type,
		Description:   req.Description,
		Address:       req.Address,
		ForSale:       req.ForSale,
		Price:         *req.Price,
		DiscountPrice: req.DiscountPrice,
		Beds:          req.Beds,
		Baths:         req.Baths,
		ParkingSpot:   req.ParkingSpot,
		Furnished:     req.Furnished,
		Images:        req.Images,
		OwnerID:       req.OwnerID,
	})
	if err != nil {
		return err
	}

	return response.Created(c, "Property created successfully", listing)
}

// Update merges the supplied fields into the listing.
func (h *PropertyHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updatePropertyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	listing, err := h.listingUC.Update(c.Request().Context(), actor(c), id, usecase.UpdateListingInput{
		Title:         req.Title,
		Type:          req.Type,
		Description:   req.Description,
		Address:       req.Address,
		ForSale:       req.ForSale,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Beds:          req.Beds,
		Baths:         req.Baths,
		ParkingSpot:   req.ParkingSpot,
		Furnished:     req.Furnished,
		Images:        req.Images,
	})
	if err != nil {
		return err
	}

	return response.OK(c, "Property updated successfully", listing)
}

func (h *PropertyHandler) SetAvailability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req availabilityRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	out, err := h.listingUC.SetAvailability(c.Request().Context(), actor(c), id, *req.ForSale)
	if err != nil {
		return err
	}

	return response.OK(c, "Property availability updated successfully", map[string]any{
		"id":      out.ID,
		"forSale": out.ForSale,
	})
}

func (h *PropertyHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.listingUC.Delete(c.Request().Context(), actor(c), id); err != nil {
		return err
	}

	return response.OK(c, "Property deleted successfully", nil)
}
