package repository

import (
	"context"

	"github.com/qrgtech/qrguard-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// No hay update ni delete: el registro es inmutable tras la creación.
type CustomerRepository interface {
	// Create persiste el cliente. La unicidad de QrID se garantiza con un
	// constraint en la capa de almacenamiento: ante dos inserciones concurrentes
	// con el mismo QR, la segunda recibe ErrQrAlreadyRegistered.
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByQr(ctx context.Context, qrID string) (*entity.Customer, error)
}
