package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/qrgtech/qrguard-api/internal/domain"
	"github.com/qrgtech/qrguard-api/internal/domain/entity"
	"github.com/qrgtech/qrguard-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, role, name, email, mobile, pin_hash, display_id, aadhar_number,
		address, photo_url, bank_account_number, bank_ifsc_code, bank_name, created_at`

// Create persiste un nuevo usuario. Traduce violaciones de unicidad al campo en conflicto.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Role, user.Name, nullIfEmpty(user.Email), user.Mobile,
		nullIfEmpty(user.PinHash), user.DisplayID, nullIfEmpty(user.AadharNumber),
		nullIfEmpty(user.Address), nullIfEmpty(user.PhotoURL),
		nullIfEmpty(user.Bank.AccountNumber), nullIfEmpty(user.Bank.IFSCCode), nullIfEmpty(user.Bank.BankName),
		user.CreatedAt,
	)
	if err != nil {
		switch uniqueConstraint(err) {
		case "users_mobile_key":
			return domain.ErrMobileAlreadyExists
		case "users_email_key":
			return domain.ErrEmailAlreadyExists
		case "users_aadhar_number_key":
			return domain.ErrAadharAlreadyExists
		}
		if isUniqueViolation(err) {
			return domain.ErrMobileAlreadyExists
		}
		return storageErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByEmailAndRole obtiene un usuario por email y rol (login de admin).
func (r *UserRepo) GetByEmailAndRole(ctx context.Context, email, role string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND role = $2`
	return r.scanOne(ctx, query, email, role)
}

// GetByMobileAndRole obtiene un usuario por móvil y rol (login de vendedor).
func (r *UserRepo) GetByMobileAndRole(ctx context.Context, mobile, role string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE mobile = $1 AND role = $2`
	return r.scanOne(ctx, query, mobile, role)
}

// ListByRole lista usuarios por rol, más reciente primero.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, role)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID. Las órdenes y clientes históricos conservan
// el id del vendedor (referencia colgante tolerada).
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// NextSalesmanDisplayID emite el siguiente id visible desde la secuencia.
// La secuencia nunca retrocede: los ids no se reutilizan tras una eliminación.
func (r *UserRepo) NextSalesmanDisplayID(ctx context.Context) (string, error) {
	var displayID string
	err := r.q.QueryRow(ctx,
		`SELECT 'SAL' || LPAD(nextval('salesman_display_seq')::TEXT, 4, '0')`,
	).Scan(&displayID)
	if err != nil {
		return "", storageErr("next display id", err)
	}
	return displayID, nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get user", err)
	}
	return u, nil
}

// scanUser lee una fila de users; los campos opcionales por rol vienen como NULL.
func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var email, pinHash, aadhar, address, photo, bankAccount, bankIFSC, bankName *string
	err := row.Scan(
		&u.ID, &u.Role, &u.Name, &email, &u.Mobile, &pinHash, &u.DisplayID, &aadhar,
		&address, &photo, &bankAccount, &bankIFSC, &bankName, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Email = deref(email)
	u.PinHash = deref(pinHash)
	u.AadharNumber = deref(aadhar)
	u.Address = deref(address)
	u.PhotoURL = deref(photo)
	u.Bank = entity.BankDetails{
		AccountNumber: deref(bankAccount),
		IFSCCode:      deref(bankIFSC),
		BankName:      deref(bankName),
	}
	return &u, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
