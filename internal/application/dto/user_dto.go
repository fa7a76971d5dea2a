package dto

import (
	"time"

	"github.com/qrgtech/qrguard-api/internal/domain/entity"
)

// AdminLoginRequest entrada del login del administrador reservado.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SalesmanLoginRequest entrada del login de vendedor: móvil + PIN.
type SalesmanLoginRequest struct {
	Mobile string `json:"mobile" validate:"required"`
	Pin    string `json:"pin" validate:"required"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// BankDetailsDTO datos bancarios del vendedor.
type BankDetailsDTO struct {
	AccountNumber string `json:"account_number" validate:"required"`
	IFSCCode      string `json:"ifsc_code" validate:"required"`
	BankName      string `json:"bank_name" validate:"required"`
}

// CreateSalesmanRequest entrada para registrar un vendedor (PIN en claro, se hashea en el use case).
type CreateSalesmanRequest struct {
	Name         string         `json:"name" validate:"required,max=200"`
	Email        string         `json:"email" validate:"required,email"`
	Mobile       string         `json:"mobile" validate:"required"`
	AadharNumber string         `json:"aadhar_number" validate:"required"`
	Address      string         `json:"address" validate:"required"`
	PhotoURL     string         `json:"photo_url" validate:"omitempty,url"`
	BankDetails  BankDetailsDTO `json:"bank_details"`
	Pin          string         `json:"pin" validate:"required,min=4"`
}

// UserResponse salida de un principal (sin hash de PIN, nunca).
type UserResponse struct {
	ID           string          `json:"id"`
	Role         string          `json:"role"`
	Name         string          `json:"name"`
	Email        string          `json:"email,omitempty"`
	Mobile       string          `json:"mobile"`
	DisplayID    string          `json:"display_id"`
	AadharNumber string          `json:"aadhar_number,omitempty"`
	Address      string          `json:"address,omitempty"`
	PhotoURL     string          `json:"photo_url,omitempty"`
	BankDetails  *BankDetailsDTO `json:"bank_details,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToUserResponse convierte la entidad a su representación pública.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	out := &UserResponse{
		ID:           u.ID,
		Role:         u.Role,
		Name:         u.Name,
		Email:        u.Email,
		Mobile:       u.Mobile,
		DisplayID:    u.DisplayID,
		AadharNumber: u.AadharNumber,
		Address:      u.Address,
		PhotoURL:     u.PhotoURL,
		CreatedAt:    u.CreatedAt,
	}
	if u.Role == entity.RoleSalesman {
		out.BankDetails = &BankDetailsDTO{
			AccountNumber: u.Bank.AccountNumber,
			IFSCCode:      u.Bank.IFSCCode,
			BankName:      u.Bank.BankName,
		}
	}
	return out
}
