package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/qrgtech/qrguard-api/internal/domain"
	"github.com/qrgtech/qrguard-api/internal/domain/entity"
	"github.com/qrgtech/qrguard-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente. El constraint único de qr_id es la garantía
// real contra registros concurrentes con el mismo QR: el segundo Exec recibe 23505.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, mobile, vehicle_no, model_name, driver_mobile, qr_id, salesman_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Mobile,
		customer.VehicleNo, customer.ModelName, customer.DriverMobile,
		customer.QrID, customer.SalesmanID, customer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrQrAlreadyRegistered
		}
		return storageErr("insert customer", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.scanOne(ctx, `WHERE id = $1`, id)
}

// GetByQr obtiene un cliente por QR/VIN id.
func (r *CustomerRepo) GetByQr(ctx context.Context, qrID string) (*entity.Customer, error) {
	return r.scanOne(ctx, `WHERE qr_id = $1`, qrID)
}

func (r *CustomerRepo) scanOne(ctx context.Context, where string, args ...any) (*entity.Customer, error) {
	query := `
		SELECT id, name, email, mobile, vehicle_no, model_name, driver_mobile, qr_id, salesman_id, created_at
		FROM customers ` + where
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Email, &c.Mobile, &c.VehicleNo, &c.ModelName,
		&c.DriverMobile, &c.QrID, &c.SalesmanID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get customer", err)
	}
	return &c, nil
}
