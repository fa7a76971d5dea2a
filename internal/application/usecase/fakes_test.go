package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/qrgtech/qrguard-api/internal/domain"
	"github.com/qrgtech/qrguard-api/internal/domain/entity"
	"github.com/qrgtech/qrguard-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Reproducen los contratos
// relevantes del almacenamiento real: unicidad de QR, referencia de vendedor
// que puede colgar, orden más reciente primero y rollback transaccional.
// ──────────────────────────────────────────────────────────────────────────────

var errInsertFailed = errors.New("insert falló")

type memStore struct {
	customers map[string]*entity.Customer // por ID
	orders    []*entity.Order
	users     map[string]*entity.User // por ID

	displaySeq      int  // secuencia de display ids, nunca retrocede
	failOrderCreate bool // fuerza el fallo del insert de orden dentro de la tx
}

func newMemStore() *memStore {
	return &memStore{
		customers: make(map[string]*entity.Customer),
		users:     make(map[string]*entity.User),
	}
}

func (s *memStore) customerByQr(qrID string) *entity.Customer {
	for _, c := range s.customers {
		if c.QrID == qrID {
			return c
		}
	}
	return nil
}

// join arma la vista orden + cliente + resumen del vendedor (nil si fue eliminado).
func (s *memStore) join(o *entity.Order) *repository.OrderWithRefs {
	row := &repository.OrderWithRefs{Order: *o}
	if c, ok := s.customers[o.CustomerID]; ok {
		row.Customer = *c
	}
	if u, ok := s.users[o.SalesmanID]; ok {
		row.Salesman = &repository.SalesmanRef{
			ID:        u.ID,
			Name:      u.Name,
			Mobile:    u.Mobile,
			DisplayID: u.DisplayID,
		}
	}
	return row
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct{ store *memStore }

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	if r.store.customerByQr(customer.QrID) != nil {
		return domain.ErrQrAlreadyRegistered
	}
	cp := *customer
	r.store.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if c, ok := r.store.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByQr(_ context.Context, qrID string) (*entity.Customer, error) {
	if c := r.store.customerByQr(qrID); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct{ store *memStore }

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if r.store.failOrderCreate {
		return errInsertFailed
	}
	cp := *order
	r.store.orders = append(r.store.orders, &cp)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*repository.OrderWithRefs, error) {
	for _, o := range r.store.orders {
		if o.ID == id {
			return r.store.join(o), nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByQr(_ context.Context, qrID string) (*repository.OrderWithRefs, error) {
	for _, o := range r.store.orders {
		if o.QrID == qrID {
			return r.store.join(o), nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) ListBySalesman(_ context.Context, salesmanID string) ([]*repository.OrderWithRefs, error) {
	var out []*repository.OrderWithRefs
	for _, o := range r.store.orders {
		if o.SalesmanID == salesmanID {
			out = append(out, r.store.join(o))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*repository.OrderWithRefs, error) {
	var out []*repository.OrderWithRefs
	for _, o := range r.store.orders {
		row := r.store.join(o)
		if filter.Status != "" && row.Order.Status != filter.Status {
			continue
		}
		if filter.SalesmanID != "" && row.Order.SalesmanID != filter.SalesmanID {
			continue
		}
		if filter.From != nil && row.Order.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && row.Order.CreatedAt.After(*filter.To) {
			continue
		}
		if filter.Search != "" && !matchesSearch(row, filter.Search) {
			continue
		}
		out = append(out, row)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id, status, remark string) error {
	for _, o := range r.store.orders {
		if o.ID == id {
			o.Status = status
			o.Remark = remark
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

func matchesSearch(row *repository.OrderWithRefs, search string) bool {
	s := strings.ToLower(search)
	for _, field := range []string{row.Order.QrID, row.Customer.Name, row.Customer.VehicleNo, row.Customer.Mobile} {
		if strings.Contains(strings.ToLower(field), s) {
			return true
		}
	}
	return false
}

func sortNewestFirst(rows []*repository.OrderWithRefs) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Order.CreatedAt.After(rows[j].Order.CreatedAt)
	})
}

// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRunner emula la transacción con snapshot + restore: si fn falla,
// ninguna de las escrituras queda visible.
type fakeTxRunner struct{ store *memStore }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
) error) error {
	customersSnap := make(map[string]*entity.Customer, len(t.store.customers))
	for k, v := range t.store.customers {
		customersSnap[k] = v
	}
	ordersSnap := make([]*entity.Order, len(t.store.orders))
	copy(ordersSnap, t.store.orders)

	err := fn(&fakeCustomerRepo{store: t.store}, &fakeOrderRepo{store: t.store})
	if err != nil {
		t.store.customers = customersSnap
		t.store.orders = ordersSnap
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct{ store *memStore }

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	cp := *user
	r.store.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.store.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndRole(_ context.Context, email, role string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.Email == email && u.Role == role {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByMobileAndRole(_ context.Context, mobile, role string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.Mobile == mobile && u.Role == role {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.store.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.store.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.store.users, id)
	return nil
}

func (r *fakeUserRepo) NextSalesmanDisplayID(_ context.Context) (string, error) {
	r.store.displaySeq++
	return fmt.Sprintf("SAL%04d", r.store.displaySeq), nil
}
