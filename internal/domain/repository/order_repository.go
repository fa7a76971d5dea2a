package repository

import (
	"context"
	"time"

	"github.com/qrgtech/qrguard-api/internal/domain/entity"
)

// SalesmanRef resumen del vendedor en vistas de orden.
type SalesmanRef struct {
	ID        string
	Name      string
	Mobile    string
	DisplayID string
}

// OrderWithRefs orden junto con su cliente y el resumen del vendedor.
// Salesman es nil cuando el vendedor fue eliminado (referencia colgante tolerada);
// la capa de presentación lo muestra como "N/A".
type OrderWithRefs struct {
	Order    entity.Order
	Customer entity.Customer
	Salesman *SalesmanRef
}

// OrderFilter criterios del listado de admin. Los campos en cero no filtran.
type OrderFilter struct {
	Status     string
	SalesmanID string
	From       *time.Time
	To         *time.Time
	Search     string // substring case-insensitive sobre qr, nombre, vehículo y móvil del cliente
}

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*OrderWithRefs, error)
	GetByQr(ctx context.Context, qrID string) (*OrderWithRefs, error)
	// ListBySalesman devuelve solo las órdenes del vendedor, más reciente primero.
	ListBySalesman(ctx context.Context, salesmanID string) ([]*OrderWithRefs, error)
	// List devuelve órdenes de todos los vendedores según filter, más reciente primero.
	List(ctx context.Context, filter OrderFilter) ([]*OrderWithRefs, error)
	// UpdateStatus fija estado y remark y refresca updated_at.
	// Devuelve ErrOrderNotFound si la orden no existe.
	UpdateStatus(ctx context.Context, id, status, remark string) error
}
