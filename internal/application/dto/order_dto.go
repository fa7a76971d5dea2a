package dto

import (
	"time"

	"github.com/qrgtech/qrguard-api/internal/domain/repository"
)

// CustomerInput datos del cliente que llegan junto con la orden.
type CustomerInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Mobile       string `json:"mobile" validate:"required"`
	VehicleNo    string `json:"vehicle_no" validate:"required"`
	ModelName    string `json:"model_name" validate:"required"`
	DriverMobile string `json:"driver_mobile" validate:"required"`
}

// CreateOrderRequest alta atómica de cliente + orden por parte del vendedor.
type CreateOrderRequest struct {
	Customer      CustomerInput `json:"customer"`
	QrID          string        `json:"qr_id" validate:"required"`
	PaymentMode   string        `json:"payment_mode" validate:"required,oneof=cash online"`
	TransactionID string        `json:"transaction_id" validate:"omitempty"`
}

// UpdateStatusRequest transición de estado por el admin, con remark opcional.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted processed rejected activated"`
	Remark string `json:"remark" validate:"omitempty,max=500"`
}

// PaymentDTO pago de la orden (solo vistas autenticadas).
type PaymentDTO struct {
	Mode          string  `json:"mode"`
	TransactionID *string `json:"transaction_id"`
}

// CustomerDTO resumen del cliente en vistas de orden.
type CustomerDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	VehicleNo    string `json:"vehicle_no"`
	ModelName    string `json:"model_name"`
	DriverMobile string `json:"driver_mobile"`
}

// SalesmanDTO resumen del vendedor en vistas de orden. Si el vendedor fue
// eliminado, Name y DisplayID se muestran como "N/A".
type SalesmanDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Mobile    string `json:"mobile,omitempty"`
	DisplayID string `json:"display_id"`
}

// OrderResponse vista completa de la orden (vendedor dueño o admin): incluye pago.
type OrderResponse struct {
	ID        string      `json:"id"`
	QrID      string      `json:"qr_id"`
	Status    string      `json:"status"`
	Remark    string      `json:"remark"`
	Payment   PaymentDTO  `json:"payment"`
	Customer  CustomerDTO `json:"customer"`
	Salesman  SalesmanDTO `json:"salesman"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// PublicCustomerDTO campos del cliente expuestos sin autenticación.
type PublicCustomerDTO struct {
	Name      string `json:"name"`
	VehicleNo string `json:"vehicle_no"`
	ModelName string `json:"model_name"`
}

// PublicOrderResponse vista pública redactada de una orden.
// El tipo no tiene campo de pago: la redacción es estructural, no un omitempty.
type PublicOrderResponse struct {
	QrID      string            `json:"qr_id"`
	Status    string            `json:"status"`
	Remark    string            `json:"remark"`
	Customer  PublicCustomerDTO `json:"customer"`
	Salesman  SalesmanDTO       `json:"salesman"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// OrderCounts conteos por estado sobre un conjunto de órdenes.
type OrderCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Processed int `json:"processed"`
	Rejected  int `json:"rejected"`
	Activated int `json:"activated"`
}

// SalesmanOrdersResponse órdenes propias del vendedor más sus conteos.
type SalesmanOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Stats  OrderCounts     `json:"stats"`
}

// ToOrderResponse convierte el resultado joineado a la vista completa.
func ToOrderResponse(row *repository.OrderWithRefs) OrderResponse {
	return OrderResponse{
		ID:     row.Order.ID,
		QrID:   row.Order.QrID,
		Status: row.Order.Status,
		Remark: row.Order.Remark,
		Payment: PaymentDTO{
			Mode:          row.Order.Payment.Mode,
			TransactionID: row.Order.Payment.TransactionID,
		},
		Customer: CustomerDTO{
			ID:           row.Customer.ID,
			Name:         row.Customer.Name,
			Email:        row.Customer.Email,
			Mobile:       row.Customer.Mobile,
			VehicleNo:    row.Customer.VehicleNo,
			ModelName:    row.Customer.ModelName,
			DriverMobile: row.Customer.DriverMobile,
		},
		Salesman:  toSalesmanDTO(row.Order.SalesmanID, row.Salesman),
		CreatedAt: row.Order.CreatedAt,
		UpdatedAt: row.Order.UpdatedAt,
	}
}

// ToPublicOrderResponse convierte el resultado joineado a la vista pública redactada.
func ToPublicOrderResponse(row *repository.OrderWithRefs) PublicOrderResponse {
	salesman := toSalesmanDTO(row.Order.SalesmanID, row.Salesman)
	salesman.Mobile = "" // el móvil del vendedor tampoco se expone al público
	return PublicOrderResponse{
		QrID:   row.Order.QrID,
		Status: row.Order.Status,
		Remark: row.Order.Remark,
		Customer: PublicCustomerDTO{
			Name:      row.Customer.Name,
			VehicleNo: row.Customer.VehicleNo,
			ModelName: row.Customer.ModelName,
		},
		Salesman:  salesman,
		CreatedAt: row.Order.CreatedAt,
		UpdatedAt: row.Order.UpdatedAt,
	}
}

func toSalesmanDTO(salesmanID string, ref *repository.SalesmanRef) SalesmanDTO {
	if ref == nil {
		// Vendedor eliminado: la referencia histórica se conserva, la vista degrada a N/A
		return SalesmanDTO{ID: salesmanID, Name: notAvailable, DisplayID: notAvailable}
	}
	return SalesmanDTO{
		ID:        ref.ID,
		Name:      ref.Name,
		Mobile:    ref.Mobile,
		DisplayID: ref.DisplayID,
	}
}
