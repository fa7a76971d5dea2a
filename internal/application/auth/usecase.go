package auth

import (
	"context"
	"crypto/subtle"

	"github.com/google/uuid"
	"github.com/qrgtech/qrguard-api/internal/application/dto"
	"github.com/qrgtech/qrguard-api/internal/domain"
	"github.com/qrgtech/qrguard-api/internal/domain/entity"
	"github.com/qrgtech/qrguard-api/internal/domain/repository"
	"github.com/qrgtech/qrguard-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Display id fijo del administrador aprovisionado.
const adminDisplayID = "ADMIN001"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminCredentials identidad reservada del administrador. Con Secret vacío el
// login de admin está deshabilitado (no hay fallback a una credencial embebida).
type AdminCredentials struct {
	Email  string
	Secret string
}

// AuthUseCase casos de uso de autenticación: login de admin y de vendedor.
type AuthUseCase struct {
	userRepo repository.UserRepository
	admin    AdminCredentials
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, admin AdminCredentials, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, admin: admin, jwtCfg: jwtCfg}
}

// AdminLogin acepta únicamente la identidad reservada del administrador.
// En el primer login exitoso aprovisiona el registro de admin en la DB.
// Cualquier otro par email/secret devuelve ErrInvalidCredentials.
func (uc *AuthUseCase) AdminLogin(ctx context.Context, in dto.AdminLoginRequest) (*dto.LoginResponse, error) {
	if uc.admin.Secret == "" {
		return nil, domain.ErrInvalidCredentials
	}
	// Comparación en tiempo constante de ambas partes de la credencial
	emailOK := subtle.ConstantTimeCompare([]byte(in.Email), []byte(uc.admin.Email)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(uc.admin.Secret)) == 1
	if !emailOK || !secretOK {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := uc.userRepo.GetByEmailAndRole(ctx, uc.admin.Email, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		admin = entity.NewAdmin(uuid.New().String(), "System Admin", uc.admin.Email, "0000000000", adminDisplayID)
		if err := uc.userRepo.Create(ctx, admin); err != nil {
			return nil, err
		}
	}

	return uc.loginResponse(admin)
}

// SalesmanLogin verifica móvil + PIN contra el hash bcrypt almacenado.
// Móvil desconocido y PIN incorrecto devuelven el mismo error para no permitir
// enumeración de usuarios.
func (uc *AuthUseCase) SalesmanLogin(ctx context.Context, in dto.SalesmanLoginRequest) (*dto.LoginResponse, error) {
	salesman, err := uc.userRepo.GetByMobileAndRole(ctx, in.Mobile, entity.RoleSalesman)
	if err != nil {
		return nil, err
	}
	if salesman == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(salesman.PinHash), []byte(in.Pin)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.loginResponse(salesman)
}

func (uc *AuthUseCase) loginResponse(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.ToUserResponse(user),
	}, nil
}
