package repository

import (
	"context"

	"github.com/qrgtech/qrguard-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmailAndRole(ctx context.Context, email, role string) (*entity.User, error)
	GetByMobileAndRole(ctx context.Context, mobile, role string) (*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
	// NextSalesmanDisplayID emite el siguiente id visible (SAL0001, SAL0002, ...).
	// Monotónico: un id emitido no se reutiliza aunque el vendedor sea eliminado.
	NextSalesmanDisplayID(ctx context.Context) (string, error)
}
