package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/qrgtech/qrguard-api/internal/application/dto"
	"github.com/qrgtech/qrguard-api/internal/domain"
	"github.com/qrgtech/qrguard-api/internal/domain/entity"
	"github.com/qrgtech/qrguard-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase gestión de vendedores (operaciones de admin).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// CreateSalesman registra un vendedor: hashea el PIN con bcrypt, asigna el
// siguiente display id secuencial y persiste. La unicidad de móvil, email y
// aadhar la garantiza el almacenamiento; el conflicto llega nombrando el campo.
func (uc *UserUseCase) CreateSalesman(ctx context.Context, in dto.CreateSalesmanRequest) (*dto.UserResponse, error) {
	if in.Pin == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	displayID, err := uc.repo.NextSalesmanDisplayID(ctx)
	if err != nil {
		return nil, err
	}
	salesman, err := entity.NewSalesman(uuid.New().String(), entity.SalesmanProfile{
		Name:         in.Name,
		Email:        in.Email,
		Mobile:       in.Mobile,
		AadharNumber: in.AadharNumber,
		Address:      in.Address,
		PhotoURL:     in.PhotoURL,
		Bank: entity.BankDetails{
			AccountNumber: in.BankDetails.AccountNumber,
			IFSCCode:      in.BankDetails.IFSCCode,
			BankName:      in.BankDetails.BankName,
		},
	}, string(hash), displayID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, salesman); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(salesman), nil
}

// ListSalesmen lista todos los vendedores, más reciente primero.
func (uc *UserUseCase) ListSalesmen(ctx context.Context) ([]*dto.UserResponse, error) {
	salesmen, err := uc.repo.ListByRole(ctx, entity.RoleSalesman)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(salesmen))
	for _, s := range salesmen {
		out = append(out, dto.ToUserResponse(s))
	}
	return out, nil
}

// GetSalesman obtiene un vendedor por ID.
func (uc *UserUseCase) GetSalesman(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleSalesman {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// DeleteSalesman elimina el vendedor. Sus órdenes y clientes históricos
// conservan el id (las vistas muestran "N/A" para el vendedor ausente).
func (uc *UserUseCase) DeleteSalesman(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil || user.Role != entity.RoleSalesman {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(ctx, id)
}
