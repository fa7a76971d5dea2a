package entity

import (
	"time"

	"github.com/qrgtech/qrguard-api/internal/domain"
)

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleSalesman = "salesman"
)

// BankDetails datos bancarios del vendedor (pago de comisiones).
type BankDetails struct {
	AccountNumber string
	IFSCCode      string
	BankName      string
}

// User representa un principal del sistema: el administrador reservado o un vendedor.
// Los campos requeridos dependen del rol; los constructores NewAdmin y NewSalesman
// validan cada variante, el struct en sí no impone condicionales por rol.
type User struct {
	ID           string
	Role         string // admin, salesman
	Name         string
	Email        string // requerido para admin; informativo para salesman
	Mobile       string
	PinHash      string // bcrypt hash del PIN, solo salesman; nunca en claro tras persistir
	DisplayID    string // ADMIN001 / SAL0001, SAL0002, ... secuencial, nunca reutilizado
	AadharNumber string // solo salesman
	Address      string // solo salesman
	PhotoURL     string
	Bank         BankDetails // solo salesman
	CreatedAt    time.Time
}

// SalesmanProfile campos de perfil que entrega el admin al registrar un vendedor.
type SalesmanProfile struct {
	Name         string
	Email        string
	Mobile       string
	AadharNumber string
	Address      string
	PhotoURL     string
	Bank         BankDetails
}

// NewAdmin construye el registro del administrador reservado (aprovisionado en el primer login).
func NewAdmin(id, name, email, mobile, displayID string) *User {
	return &User{
		ID:        id,
		Role:      RoleAdmin,
		Name:      name,
		Email:     email,
		Mobile:    mobile,
		DisplayID: displayID,
		CreatedAt: time.Now(),
	}
}

// NewSalesman valida los campos obligatorios del rol y construye el registro.
// pinHash debe llegar ya hasheado; la entidad nunca ve el PIN en claro.
func NewSalesman(id string, p SalesmanProfile, pinHash, displayID string) (*User, error) {
	if p.Name == "" || p.Email == "" || p.Mobile == "" || p.AadharNumber == "" || p.Address == "" {
		return nil, domain.ErrInvalidInput
	}
	if p.Bank.AccountNumber == "" || p.Bank.IFSCCode == "" || p.Bank.BankName == "" {
		return nil, domain.ErrInvalidInput
	}
	if pinHash == "" || displayID == "" {
		return nil, domain.ErrInvalidInput
	}
	return &User{
		ID:           id,
		Role:         RoleSalesman,
		Name:         p.Name,
		Email:        p.Email,
		Mobile:       p.Mobile,
		PinHash:      pinHash,
		DisplayID:    displayID,
		AadharNumber: p.AadharNumber,
		Address:      p.Address,
		PhotoURL:     p.PhotoURL,
		Bank:         p.Bank,
		CreatedAt:    time.Now(),
	}, nil
}
