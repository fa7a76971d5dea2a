package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/qrgtech/qrguard-api/internal/application/dto"
	"github.com/qrgtech/qrguard-api/internal/application/usecase"
	"github.com/qrgtech/qrguard-api/internal/domain"
)

// UserHandler gestión de vendedores (rutas de admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// CreateSalesman godoc
// @Summary      Registrar vendedor
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSalesmanRequest  true  "perfil + pin"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/salesmen [post]
func (h *UserHandler) CreateSalesman(c *fiber.Ctx) error {
	var in dto.CreateSalesmanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	salesman, err := h.uc.CreateSalesman(c.Context(), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "faltan campos requeridos del vendedor"})
		case domain.ErrMobileAlreadyExists:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_IDENTITY", Message: "el móvil ya está registrado"})
		case domain.ErrEmailAlreadyExists:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_IDENTITY", Message: "el email ya está registrado"})
		case domain.ErrAadharAlreadyExists:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_IDENTITY", Message: "el número de aadhar ya está registrado"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(salesman)
}

// ListSalesmen godoc
// @Summary      Listar vendedores
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users/salesmen [get]
func (h *UserHandler) ListSalesmen(c *fiber.Ctx) error {
	salesmen, err := h.uc.ListSalesmen(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(salesmen)
}

// GetSalesman godoc
// @Summary      Obtener vendedor por ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "id del vendedor"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/salesmen/{id} [get]
func (h *UserHandler) GetSalesman(c *fiber.Ctx) error {
	salesman, err := h.uc.GetSalesman(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vendedor no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(salesman)
}

// DeleteSalesman godoc
// @Summary      Eliminar vendedor
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "id del vendedor"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/salesmen/{id} [delete]
func (h *UserHandler) DeleteSalesman(c *fiber.Ctx) error {
	if err := h.uc.DeleteSalesman(c.Context(), c.Params("id")); err != nil {
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vendedor no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "vendedor eliminado"})
}
