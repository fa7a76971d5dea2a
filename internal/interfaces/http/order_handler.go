package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/qrgtech/qrguard-api/internal/application/dto"
	"github.com/qrgtech/qrguard-api/internal/application/usecase"
	"github.com/qrgtech/qrguard-api/internal/domain"
	"github.com/qrgtech/qrguard-api/internal/domain/repository"
)

// OrderHandler maneja las órdenes: alta, consultas con alcance por rol,
// transición de estado y estadísticas.
type OrderHandler struct {
	orderUC *usecase.OrderUseCase
	statsUC *usecase.StatsUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orderUC *usecase.OrderUseCase, statsUC *usecase.StatsUseCase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC, statsUC: statsUC}
}

// Create godoc
// @Summary      Registrar cliente + orden (vendedor)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateOrderRequest  true  "cliente, qr_id, pago"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/salesman/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orderUC.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "faltan campos requeridos del cliente o el QR"})
		case domain.ErrInvalidPayment:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PAYMENT", Message: "pago online requiere transaction_id"})
		case domain.ErrQrAlreadyRegistered:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_QR", Message: "el QR ya está registrado"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// ListMine godoc
// @Summary      Órdenes propias del vendedor con conteos
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SalesmanOrdersResponse
// @Router       /api/orders/salesman/orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.orderUC.ListMine(c.Context(), GetUserID(c))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Listado filtrado de órdenes (admin)
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status       query  string  false  "pending|accepted|processed|rejected|activated"
// @Param        salesman_id  query  string  false  "filtrar por vendedor"
// @Param        start_date   query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        end_date     query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        search       query  string  false  "substring sobre qr, nombre, vehículo, móvil"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/admin/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	filter := repository.OrderFilter{
		Status:     c.Query("status"),
		SalesmanID: c.Query("salesman_id"),
		Search:     c.Query("search"),
	}
	var err error
	if filter.From, err = parseDate(c.Query("start_date"), false); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválida"})
	}
	if filter.To, err = parseDate(c.Query("end_date"), true); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválida"})
	}
	orders, err := h.orderUC.ListAll(c.Context(), filter)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(orders)
}

// UpdateStatus godoc
// @Summary      Transición de estado de una orden (admin)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id de la orden"
// @Param        body  body  dto.UpdateStatusRequest  true  "status, remark"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orderUC.UpdateStatus(c.Context(), GetRole(c), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el admin puede cambiar el estado"})
		case domain.ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "estado no reconocido"})
		case domain.ErrOrderNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return internalError(c, err)
	}
	return c.JSON(order)
}

// GetDetails godoc
// @Summary      Detalle de una orden con pago (admin o vendedor dueño)
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "id de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/admin/orders/{id} [get]
func (h *OrderHandler) GetDetails(c *fiber.Ctx) error {
	order, err := h.orderUC.GetDetails(c.Context(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		switch err {
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado a esta orden"})
		case domain.ErrOrderNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return internalError(c, err)
	}
	return c.JSON(order)
}

// GetByQr godoc
// @Summary      Consulta pública por QR (sin pago)
// @Tags         orders
// @Produce      json
// @Param        qrId  path      string  true  "QR/VIN id"
// @Success      200   {object}  dto.PublicOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/public/qr/{qrId} [get]
func (h *OrderHandler) GetByQr(c *fiber.Ctx) error {
	order, err := h.orderUC.GetByQr(c.Context(), c.Params("qrId"))
	if err != nil {
		if err == domain.ErrOrderNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return internalError(c, err)
	}
	return c.JSON(order)
}

// SalesmanStats godoc
// @Summary      Estadísticas agregadas de un vendedor (propio o admin)
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "id del vendedor"
// @Success      200  {object}  dto.SalesmanStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/salesman/{id}/stats [get]
func (h *OrderHandler) SalesmanStats(c *fiber.Ctx) error {
	stats, err := h.statsUC.SalesmanStats(c.Context(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el propio vendedor o el admin"})
		}
		return internalError(c, err)
	}
	return c.JSON(stats)
}

// parseDate acepta YYYY-MM-DD o RFC3339; vacío devuelve nil (sin filtro).
// Con endOfDay la fecha sin hora se lleva al final del día para que el rango sea inclusivo.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
