package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/qrgtech/qrguard-api/internal/domain"
	"github.com/qrgtech/qrguard-api/internal/domain/entity"
	"github.com/qrgtech/qrguard-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste una nueva orden.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, salesman_id, qr_id, payment_mode, transaction_id, status, remark, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.CustomerID, order.SalesmanID, order.QrID,
		order.Payment.Mode, order.Payment.TransactionID,
		order.Status, order.Remark, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert order", err)
	}
	return nil
}

// UpdateStatus fija estado y remark y refresca updated_at.
// No valida transiciones: cualquier estado puede reemplazar a cualquier otro.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status, remark string) error {
	query := `UPDATE orders SET status = $2, remark = $3, updated_at = NOW() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, remark)
	if err != nil {
		return storageErr("update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// joinedSelect columnas de la orden con su cliente y el resumen del vendedor.
// LEFT JOIN sobre users: las órdenes de un vendedor eliminado siguen siendo visibles.
const joinedSelect = `
	SELECT o.id, o.customer_id, o.salesman_id, o.qr_id, o.payment_mode, o.transaction_id,
	       o.status, o.remark, o.created_at, o.updated_at,
	       c.id, c.name, c.email, c.mobile, c.vehicle_no, c.model_name, c.driver_mobile, c.qr_id, c.salesman_id, c.created_at,
	       u.id, u.name, u.mobile, u.display_id
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
	LEFT JOIN users u ON u.id = o.salesman_id`

// GetByID obtiene una orden con cliente y vendedor.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.OrderWithRefs, error) {
	return r.scanOne(ctx, joinedSelect+` WHERE o.id = $1`, id)
}

// GetByQr obtiene una orden por QR/VIN id (consulta pública).
func (r *OrderRepo) GetByQr(ctx context.Context, qrID string) (*repository.OrderWithRefs, error) {
	return r.scanOne(ctx, joinedSelect+` WHERE o.qr_id = $1`, qrID)
}

// ListBySalesman devuelve las órdenes del vendedor, más reciente primero.
func (r *OrderRepo) ListBySalesman(ctx context.Context, salesmanID string) ([]*repository.OrderWithRefs, error) {
	query := joinedSelect + ` WHERE o.salesman_id = $1 ORDER BY o.created_at DESC`
	return r.scanMany(ctx, query, salesmanID)
}

// List devuelve órdenes según el filtro de admin, más reciente primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*repository.OrderWithRefs, error) {
	var where []string
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if f.SalesmanID != "" {
		args = append(args, f.SalesmanID)
		where = append(where, fmt.Sprintf("o.salesman_id = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("o.created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("o.created_at <= $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(o.qr_id ILIKE $%d OR c.name ILIKE $%d OR c.vehicle_no ILIKE $%d OR c.mobile ILIKE $%d)",
			n, n, n, n))
	}

	query := joinedSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY o.created_at DESC"

	return r.scanMany(ctx, query, args...)
}

func (r *OrderRepo) scanOne(ctx context.Context, query string, args ...any) (*repository.OrderWithRefs, error) {
	row, err := scanOrderWithRefs(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get order", err)
	}
	return row, nil
}

func (r *OrderRepo) scanMany(ctx context.Context, query string, args ...any) ([]*repository.OrderWithRefs, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list orders", err)
	}
	defer rows.Close()
	var list []*repository.OrderWithRefs
	for rows.Next() {
		row, err := scanOrderWithRefs(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func scanOrderWithRefs(row pgx.Row) (*repository.OrderWithRefs, error) {
	var out repository.OrderWithRefs
	var salesmanID, salesmanName, salesmanMobile, salesmanDisplayID *string
	err := row.Scan(
		&out.Order.ID, &out.Order.CustomerID, &out.Order.SalesmanID, &out.Order.QrID,
		&out.Order.Payment.Mode, &out.Order.Payment.TransactionID,
		&out.Order.Status, &out.Order.Remark, &out.Order.CreatedAt, &out.Order.UpdatedAt,
		&out.Customer.ID, &out.Customer.Name, &out.Customer.Email, &out.Customer.Mobile,
		&out.Customer.VehicleNo, &out.Customer.ModelName, &out.Customer.DriverMobile,
		&out.Customer.QrID, &out.Customer.SalesmanID, &out.Customer.CreatedAt,
		&salesmanID, &salesmanName, &salesmanMobile, &salesmanDisplayID,
	)
	if err != nil {
		return nil, err
	}
	if salesmanID != nil {
		out.Salesman = &repository.SalesmanRef{
			ID:        *salesmanID,
			Name:      deref(salesmanName),
			Mobile:    deref(salesmanMobile),
			DisplayID: deref(salesmanDisplayID),
		}
	}
	return &out, nil
}
