package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qrgtech/qrguard-api/internal/application/dto"
	"github.com/qrgtech/qrguard-api/internal/domain"
	"github.com/qrgtech/qrguard-api/internal/domain/entity"
	"github.com/qrgtech/qrguard-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una misma transacción.
// Lo implementa postgres.TxRunner; la interfaz permite fakes en tests.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// OrderUseCase alta de órdenes, máquina de estados y consultas con alcance por rol.
type OrderUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, customerRepo: customerRepo, orderRepo: orderRepo}
}

// Create registra cliente + orden como una sola unidad durable.
//
// Pasos:
//  1. Rechaza si el QR ya está registrado (chequeo rápido; el constraint único
//     dentro de la transacción es la garantía real ante concurrencia).
//  2. Valida el pago: online exige transaction_id; cash lo fuerza a nil.
//  3. Persiste Customer y Order (status pending) en una transacción: si la
//     orden falla, el cliente se revierte — nunca queda un Customer huérfano.
func (uc *OrderUseCase) Create(ctx context.Context, salesmanID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.QrID == "" {
		return nil, domain.ErrInvalidInput
	}
	c := in.Customer
	if c.Name == "" || c.Email == "" || c.Mobile == "" || c.VehicleNo == "" || c.ModelName == "" || c.DriverMobile == "" {
		return nil, domain.ErrInvalidInput
	}

	payment, err := buildPayment(in.PaymentMode, in.TransactionID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.customerRepo.GetByQr(ctx, in.QrID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrQrAlreadyRegistered
	}

	now := time.Now()
	order := &entity.Order{
		ID:         uuid.New().String(),
		SalesmanID: salesmanID,
		QrID:       in.QrID, // copia desnormalizada del QR del cliente, escrita una sola vez
		Payment:    payment,
		Status:     entity.StatusPending,
		Remark:     "",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(customers repository.CustomerRepository, orders repository.OrderRepository) error {
		customer := &entity.Customer{
			ID:           uuid.New().String(),
			Name:         c.Name,
			Email:        strings.ToLower(c.Email),
			Mobile:       c.Mobile,
			VehicleNo:    c.VehicleNo,
			ModelName:    c.ModelName,
			DriverMobile: c.DriverMobile,
			QrID:         in.QrID,
			SalesmanID:   salesmanID,
			CreatedAt:    now,
		}
		if err := customers.Create(ctx, customer); err != nil {
			return err
		}
		order.CustomerID = customer.ID
		return orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	created, err := uc.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, domain.ErrOrderNotFound
	}
	out := dto.ToOrderResponse(created)
	return &out, nil
}

// UpdateStatus fija el estado de la orden (solo admin) y reemplaza el remark.
// Cualquier estado reconocido puede reemplazar a cualquier otro: no hay grafo
// de transiciones. Un estado no reconocido se rechaza sin tocar la orden.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, callerRole, orderID string, in dto.UpdateStatusRequest) (*dto.OrderResponse, error) {
	if callerRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if err := uc.orderRepo.UpdateStatus(ctx, orderID, in.Status, in.Remark); err != nil {
		return nil, err
	}
	updated, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrOrderNotFound
	}
	out := dto.ToOrderResponse(updated)
	return &out, nil
}

// ListMine devuelve las órdenes del vendedor autenticado más los conteos por
// estado sobre exactamente ese conjunto.
func (uc *OrderUseCase) ListMine(ctx context.Context, salesmanID string) (*dto.SalesmanOrdersResponse, error) {
	rows, err := uc.orderRepo.ListBySalesman(ctx, salesmanID)
	if err != nil {
		return nil, err
	}
	out := &dto.SalesmanOrdersResponse{Orders: make([]dto.OrderResponse, 0, len(rows))}
	for _, row := range rows {
		out.Orders = append(out.Orders, dto.ToOrderResponse(row))
	}
	out.Stats = countByStatus(rows)
	return out, nil
}

// ListAll devuelve órdenes de todos los vendedores según el filtro (solo admin).
func (uc *OrderUseCase) ListAll(ctx context.Context, filter repository.OrderFilter) ([]dto.OrderResponse, error) {
	rows, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ToOrderResponse(row))
	}
	return out, nil
}

// GetDetails devuelve la orden con pago incluido. Admin accede a cualquiera;
// un vendedor solo a las propias.
func (uc *OrderUseCase) GetDetails(ctx context.Context, callerID, callerRole, orderID string) (*dto.OrderResponse, error) {
	row, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrOrderNotFound
	}
	if callerRole != entity.RoleAdmin && row.Order.SalesmanID != callerID {
		return nil, domain.ErrForbidden
	}
	out := dto.ToOrderResponse(row)
	return &out, nil
}

// GetByQr devuelve la vista pública redactada: sin pago, sin autenticación.
func (uc *OrderUseCase) GetByQr(ctx context.Context, qrID string) (*dto.PublicOrderResponse, error) {
	row, err := uc.orderRepo.GetByQr(ctx, qrID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrOrderNotFound
	}
	out := dto.ToPublicOrderResponse(row)
	return &out, nil
}

// buildPayment valida el modo y normaliza el transaction id según el modo.
func buildPayment(mode, transactionID string) (entity.Payment, error) {
	switch mode {
	case entity.PaymentOnline:
		id := strings.TrimSpace(transactionID)
		if id == "" {
			return entity.Payment{}, domain.ErrInvalidPayment
		}
		return entity.Payment{Mode: mode, TransactionID: &id}, nil
	case entity.PaymentCash:
		// En efectivo no hay transaction id, aunque el cliente lo envíe
		return entity.Payment{Mode: mode, TransactionID: nil}, nil
	default:
		return entity.Payment{}, domain.ErrInvalidPayment
	}
}

func countByStatus(rows []*repository.OrderWithRefs) dto.OrderCounts {
	counts := dto.OrderCounts{Total: len(rows)}
	for _, row := range rows {
		switch row.Order.Status {
		case entity.StatusPending:
			counts.Pending++
		case entity.StatusAccepted:
			counts.Accepted++
		case entity.StatusProcessed:
			counts.Processed++
		case entity.StatusRejected:
			counts.Rejected++
		case entity.StatusActivated:
			counts.Activated++
		}
	}
	return counts
}
