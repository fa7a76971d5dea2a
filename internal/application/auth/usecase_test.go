package auth_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/qrgtech/qrguard-api/internal/application/auth"
	"github.com/qrgtech/qrguard-api/internal/application/dto"
	"github.com/qrgtech/qrguard-api/internal/domain"
	"github.com/qrgtech/qrguard-api/internal/domain/entity"
	"github.com/qrgtech/qrguard-api/internal/domain/repository"
	pkgjwt "github.com/qrgtech/qrguard-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de usuarios
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users   map[string]*entity.User // por ID
	creates int                     // llamadas a Create
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.creates++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndRole(_ context.Context, email, role string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Role == role {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByMobileAndRole(_ context.Context, mobile, role string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Mobile == mobile && u.Role == role {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) NextSalesmanDisplayID(_ context.Context) (string, error) {
	return "SAL0001", nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret     = "test-jwt-secret"
	testAdminEmail = "admin@qrgtech.com"
	testAdminPass  = "super-secreto"
)

func newAuthUC(repo *fakeUserRepo, adminSecret string) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo,
		auth.AdminCredentials{Email: testAdminEmail, Secret: adminSecret},
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "qrguard-test"},
	)
}

func seedSalesman(t *testing.T, repo *fakeUserRepo, mobile, pin string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:        "33333333-3333-3333-3333-333333333333",
		Role:      entity.RoleSalesman,
		Name:      "Suresh",
		Email:     "suresh@example.com",
		Mobile:    mobile,
		PinHash:   string(hash),
		DisplayID: "SAL0001",
	}
	require.NoError(t, repo.Create(context.Background(), u))
	repo.creates = 0 // el seed no cuenta
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// AdminLogin
// ──────────────────────────────────────────────────────────────────────────────

// Sin ADMIN_SECRET configurado el login de admin queda deshabilitado: no hay
// credencial embebida de respaldo.
func TestAdminLogin_SecretVacio_Deshabilitado(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(), "")

	_, err := uc.AdminLogin(context.Background(), dto.AdminLoginRequest{
		Email: testAdminEmail, Password: "",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// El primer login exitoso aprovisiona el registro de admin; los siguientes
// reutilizan el existente sin crear duplicados.
func TestAdminLogin_AprovisionaUnaSolaVez(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo, testAdminPass)
	ctx := context.Background()
	req := dto.AdminLoginRequest{Email: testAdminEmail, Password: testAdminPass}

	out, err := uc.AdminLogin(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAdmin, out.User.Role)
	assert.Equal(t, "ADMIN001", out.User.DisplayID)
	assert.Equal(t, "System Admin", out.User.Name)
	assert.Equal(t, 1, repo.creates, "el primer login crea el registro")

	// El token emitido lleva el rol admin
	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)

	out2, err := uc.AdminLogin(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, out2.User.ID, "segundo login reutiliza el mismo registro")
	assert.Equal(t, 1, repo.creates, "no debe crearse un segundo admin")
}

func TestAdminLogin_CredencialesIncorrectas(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(), testAdminPass)
	ctx := context.Background()

	_, err := uc.AdminLogin(ctx, dto.AdminLoginRequest{Email: testAdminEmail, Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.AdminLogin(ctx, dto.AdminLoginRequest{Email: "otro@qrgtech.com", Password: testAdminPass})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ──────────────────────────────────────────────────────────────────────────────
// SalesmanLogin
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesmanLogin_OK(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedSalesman(t, repo, "9876543210", "1234")
	uc := newAuthUC(repo, testAdminPass)

	out, err := uc.SalesmanLogin(context.Background(), dto.SalesmanLoginRequest{
		Mobile: "9876543210", Pin: "1234",
	})
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, out.User.ID)
	assert.Equal(t, entity.RoleSalesman, out.User.Role)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, userID)
	assert.Equal(t, entity.RoleSalesman, role)
}

// PIN incorrecto y móvil desconocido devuelven exactamente el mismo error:
// la respuesta no permite enumerar móviles registrados.
func TestSalesmanLogin_MismoErrorParaPinYMovil(t *testing.T) {
	repo := newFakeUserRepo()
	seedSalesman(t, repo, "9876543210", "1234")
	uc := newAuthUC(repo, testAdminPass)
	ctx := context.Background()

	_, errPin := uc.SalesmanLogin(ctx, dto.SalesmanLoginRequest{Mobile: "9876543210", Pin: "0000"})
	_, errMovil := uc.SalesmanLogin(ctx, dto.SalesmanLoginRequest{Mobile: "0000000001", Pin: "1234"})

	assert.ErrorIs(t, errPin, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errMovil, domain.ErrInvalidCredentials)
	assert.Equal(t, errPin, errMovil)
}

// La respuesta de login nunca serializa el hash del PIN.
func TestSalesmanLogin_NoExponeHashDelPin(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedSalesman(t, repo, "9876543210", "1234")
	uc := newAuthUC(repo, testAdminPass)

	out, err := uc.SalesmanLogin(context.Background(), dto.SalesmanLoginRequest{
		Mobile: "9876543210", Pin: "1234",
	})
	require.NoError(t, err)

	raw, err := json.Marshal(out.User)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), seeded.PinHash)
	assert.NotContains(t, string(raw), "pin")
}
