package handler

import (
	"estate/internal/delivery/api/response"
	"estate/internal/domain/access"
	"estate/internal/domain/entity"
	"estate/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	PrincipalUC    usecase.PrincipalUsecase
	RegistrationUC usecase.RegistrationUsecase
}

// UserHandler administers principals.
type UserHandler struct {
	principalUC    usecase.PrincipalUsecase
	registrationUC usecase.RegistrationUsecase
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		principalUC:    params.PrincipalUC,
		registrationUC: params.RegistrationUC,
	}
}

type createUserRequest struct {
	Role            entity.Role             `json:"role" validate:"required,oneof=admin seller customer"`
	DisplayName     string                  `json:"displayName"`
	Email           string                  `json:"email" validate:"required,email"`
	Password        string                  `json:"password" validate:"required"`
	SellerProfile   *sellerProfileRequest   `json:"sellerProfile"`
	CustomerProfile *customerProfileRequest `json:"customerProfile"`
}

type updateUserRequest struct {
	DisplayName *string      `json:"displayName"`
	Email       *string      `json:"email" validate:"omitempty,email"`
	Role        *entity.Role `json:"role" validate:"omitempty,oneof=admin seller customer"`
}

func (h *UserHandler) List(c echo.Context) error {
	var role *entity.Role
	if v := c.QueryParam("role"); v != "" {
		r := entity.Role(v)
		role = &r
	}

	principals, err := h.principalUC.List(c.Request().Context(), actor(c), role)
	if err != nil {
		return err
	}

	return response.OK(c, "Users retrieved successfully", principals)
}

// Create issues an account of any role. Profile fields are optional.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	input := usecase.CreatePrincipalInput{
		Role:        req.Role,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
	}
	if req.SellerProfile != nil {
		fields := req.SellerProfile.fields()
		input.SellerProfile = &fields
	}
	if req.CustomerProfile != nil {
		fields := req.CustomerProfile.fields()
		input.CustomerProfile = &fields
	}

	principal, err := h.registrationUC.CreatePrincipal(c.Request().Context(), actor(c), input)
	if err != nil {
		return err
	}

	return response.Created(c, "User created successfully", principal)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	principal, err := h.principalUC.Get(c.Request().Context(), actor(c), id)
	if err != nil {
		return err
	}

	return response.OK(c, "User retrieved successfully", principal)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	principal, err := h.principalUC.Update(c.Request().Context(), actor(c), id, usecase.UpdatePrincipalInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}

	return response.OK(c, "User updated successfully", principal)
}

// Delete removes the principal together with its profile, listings and conversations.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.registrationUC.DeleteAccount(c.Request().Context(), actor(c), access.KindPrincipal, id); err != nil {
		return err
	}

	return response.OK(c, "User deleted successfully", nil)
}
