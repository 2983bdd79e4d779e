package handler

import (
	"estate/internal/delivery/api/response"
	"estate/internal/domain/access"
	"estate/internal/domain/entity"
	"estate/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for the seller and customer handlers, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	SellerUC       usecase.SellerUsecase
	CustomerUC     usecase.CustomerUsecase
	RegistrationUC usecase.RegistrationUsecase
}

// SellerHandler serves the seller registry.
type SellerHandler struct {
	sellerUC       usecase.SellerUsecase
	registrationUC usecase.RegistrationUsecase
}

// CustomerHandler serves the customer registry.
type CustomerHandler struct {
	customerUC     usecase.CustomerUsecase
	registrationUC usecase.RegistrationUsecase
}

func NewSellerHandler(params ProfileHandlerParams) *SellerHandler {
	return &SellerHandler{
		sellerUC:       params.SellerUC,
		registrationUC: params.RegistrationUC,
	}
}

func NewCustomerHandler(params ProfileHandlerParams) *CustomerHandler {
	return &CustomerHandler{
		customerUC:     params.CustomerUC,
		registrationUC: params.RegistrationUC,
	}
}

type updateSellerRequest struct {
	FirstName          *string              `json:"firstName"`
	LastName           *string              `json:"lastName"`
	Email              *string              `json:"email" validate:"omitempty,email"`
	Phone              *string              `json:"phone"`
	IdentificationDoc  *string              `json:"identificationDoc"`
	ProfilePicture     *string              `json:"profilePicture"`
	Bio                *string              `json:"bio"`
	SocialLinks        *entity.SocialLinks  `json:"socialLinks"`
	PreferredLanguages *[]string            `json:"preferredLanguages"`
	Business           *entity.BusinessInfo `json:"business"`
	Username           *string              `json:"username"`
}

type updateSellerStatusRequest struct {
	Status entity.SellerStatus `json:"status" validate:"required,oneof=Pending Approved Rejected"`
}

type updateCustomerRequest struct {
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	Email     *string   `json:"email" validate:"omitempty,email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	Interests *[]string `json:"interests"`
}

func (h *SellerHandler) List(c echo.Context) error {
	var status *entity.SellerStatus
	if v := c.QueryParam("status"); v != "" {
		s := entity.SellerStatus(v)
		status = &s
	}

	sellers, err := h.sellerUC.List(c.Request().Context(), actor(c), status)
	if err != nil {
		return err
	}

	return response.OK(c, "Sellers retrieved successfully", sellers)
}

func (h *SellerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	seller, err := h.sellerUC.Get(c.Request().Context(), actor(c), id)
	if err != nil {
		return err
	}

	return response.OK(c, "Seller retrieved successfully", seller)
}

func (h *SellerHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateSellerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	seller, err := h.sellerUC.Update(c.Request().Context(), actor(c), id, usecase.UpdateSellerInput{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Phone:              req.Phone,
		IdentificationDoc:  req.IdentificationDoc,
		ProfilePicture:     req.ProfilePicture,
		Bio:                req.Bio,
		SocialLinks:        req.SocialLinks,
		PreferredLanguages: req.PreferredLanguages,
		Business:           req.Business,
		Username:           req.Username,
	})
	if err != nil {
		return err
	}

	return response.OK(c, "Seller updated successfully", seller)
}

func (h *SellerHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateSellerStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	seller, err := h.sellerUC.UpdateStatus(c.Request().Context(), actor(c), id, req.Status)
	if err != nil {
		return err
	}

	return response.OK(c, "Seller status updated successfully", seller)
}

func (h *SellerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.registrationUC.DeleteAccount(c.Request().Context(), actor(c), access.KindSeller, id); err != nil {
		return err
	}

	return response.OK(c, "Seller deleted successfully", nil)
}

func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.customerUC.List(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}

	return response.OK(c, "Customers retrieved successfully", customers)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	customer, err := h.customerUC.Get(c.Request().Context(), actor(c), id)
	if err != nil {
		return err
	}

	return response.OK(c, "Customer retrieved successfully", customer)
}

func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateCustomerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	customer, err := h.customerUC.Update(c.Request().Context(), actor(c), id, usecase.UpdateCustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Interests: req.Interests,
	})
	if err != nil {
		return err
	}

	return response.OK(c, "Customer updated successfully", customer)
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.registrationUC.DeleteAccount(c.Request().Context(), actor(c), access.KindCustomer, id); err != nil {
		return err
	}

	return response.OK(c, "Customer deleted successfully", nil)
}
