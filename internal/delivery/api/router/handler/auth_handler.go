package handler

import (
	"log/slog"
	"time"

	"estate/internal/delivery/api/response"
	deliverycontext "estate/internal/delivery/context"
	"estate/internal/domain/entity"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	RegistrationUC usecase.RegistrationUsecase
	AuthUC         usecase.AuthUsecase
	Logger         *slog.Logger
}

// AuthHandler serves registration, sessions and the caller's own account.
type AuthHandler struct {
	registrationUC usecase.RegistrationUsecase
	authUC         usecase.AuthUsecase
	logger         *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		registrationUC: params.RegistrationUC,
		authUC:         params.AuthUC,
		logger:         params.Logger,
	}
}

// sellerProfileRequest carries the seller attributes shared by self-registration and admin creation.
type sellerProfileRequest struct {
	FirstName          string               `json:"firstName"`
	LastName           string               `json:"lastName"`
	Phone              string               `json:"phone"`
	IdentificationDoc  string               `json:"identificationDoc"`
	ProfilePicture     string               `json:"profilePicture"`
	Bio                string               `json:"bio"`
	SocialLinks        *entity.SocialLinks  `json:"socialLinks"`
	PreferredLanguages []string             `json:"preferredLanguages"`
	Business           *entity.BusinessInfo `json:"business"`
	Username           string               `json:"username"`
}

func (r *sellerProfileRequest) fields() usecase.SellerProfileFields {
	return usecase.SellerProfileFields{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Phone:              r.Phone,
		IdentificationDoc:  r.IdentificationDoc,
		ProfilePicture:     r.ProfilePicture,
		Bio:                r.Bio,
		SocialLinks:        r.SocialLinks,
		PreferredLanguages: r.PreferredLanguages,
		Business:           r.Business,
		Username:           r.Username,
	}
}

type customerProfileRequest struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	Interests []string `json:"interests"`
}

func (r *customerProfileRequest) fields() usecase.CustomerProfileFields {
	return usecase.CustomerProfileFields{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Address:   r.Address,
		Interests: r.Interests,
	}
}

type registerSellerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	sellerProfileRequest
}

type registerCustomerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	DisplayName string `json:"displayName"`
	customerProfileRequest
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	PrincipalID     *uuid.UUID `json:"principalId"`
	CurrentPassword string     `json:"currentPassword"`
	NewPassword     string     `json:"newPassword" validate:"required"`
}

type loginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      *entity.Principal `json:"user"`
}

type meResponse struct {
	User     *entity.Principal       `json:"user"`
	Seller   *entity.SellerProfile   `json:"seller,omitempty"`
	Customer *entity.CustomerProfile `json:"customer,omitempty"`
}

// RegisterSeller creates a seller principal and its profile in one transaction.
func (h *AuthHandler) RegisterSeller(c echo.Context) error {
	var req registerSellerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	out, err := h.registrationUC.RegisterSeller(c.Request().Context(), usecase.RegisterSellerInput{
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.sellerProfileRequest.fields(),
	})
	if err != nil {
		return err
	}

	return response.Created(c, "Seller registered successfully", map[string]any{
		"id":     out.ProfileID,
		"status": out.Status,
	})
}

// RegisterCustomer creates a customer principal and its profile in one transaction.
func (h *AuthHandler) RegisterCustomer(c echo.Context) error {
	var req registerCustomerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	out, err := h.registrationUC.RegisterCustomer(c.Request().Context(), usecase.RegisterCustomerInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Profile:     req.customerProfileRequest.fields(),
	})
	if err != nil {
		return err
	}

	return response.Created(c, "Customer registered successfully", map[string]any{"id": out.ProfileID})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	out, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.OK(c, "Login successful", loginResponse{
		Token:     out.Token,
		ExpiresAt: out.ExpiresAt,
		User:      out.Principal,
	})
}

// Logout revokes the token that authenticated the request.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUC.Logout(c.Request().Context(), deliverycontext.GetToken(c)); err != nil {
		return err
	}

	return response.OK(c, "Logged out successfully", nil)
}

func (h *AuthHandler) Me(c echo.Context) error {
	out, err := h.authUC.Me(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}

	return response.OK(c, "Account retrieved successfully", meResponse{
		User:     out.Principal,
		Seller:   out.Seller,
		Customer: out.Customer,
	})
}

// ChangePassword changes the caller's password, or another account's when the caller is an admin.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	caller := actor(c)
	principalID := caller.ID
	if req.PrincipalID != nil {
		principalID = *req.PrincipalID
	}

	err := h.authUC.ChangePassword(c.Request().Context(), caller, usecase.ChangePasswordInput{
		PrincipalID:     principalID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return err
	}

	return response.OK(c, "Password changed successfully", nil)
}
