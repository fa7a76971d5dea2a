package entity

import "time"

// Estados válidos de una orden. El flujo habitual es
// pending -> accepted|rejected -> processed -> activated, pero el admin puede
// fijar cualquier estado en cualquier momento: no hay grafo de transiciones.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusProcessed = "processed"
	StatusRejected  = "rejected"
	StatusActivated = "activated"
)

// Statuses lista los estados reconocidos, en el orden del flujo.
var Statuses = []string{StatusPending, StatusAccepted, StatusProcessed, StatusRejected, StatusActivated}

// ValidStatus indica si s es uno de los cinco estados reconocidos.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusProcessed, StatusRejected, StatusActivated:
		return true
	}
	return false
}

// Modos de pago.
const (
	PaymentCash   = "cash"
	PaymentOnline = "online"
)

// Payment datos de pago de la orden.
// TransactionID es obligatorio con modo online y debe ser nil con modo cash.
type Payment struct {
	Mode          string
	TransactionID *string
}

// Order es la entidad central: referencia a Customer y vendedor, pago y estado.
// QrID es copia desnormalizada del QrID del Customer, escrita una vez en la
// creación y nunca actualizada.
type Order struct {
	ID         string
	CustomerID string
	SalesmanID string // referencia débil: el vendedor puede haber sido eliminado
	QrID       string
	Payment    Payment
	Status     string
	Remark     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
