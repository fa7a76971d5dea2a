package postgres

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/qrgtech/qrguard-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// uniqueConstraint devuelve el nombre del constraint violado, si el error es un 23505.
// Permite traducir el conflicto al campo concreto (mobile, email, aadhar, qr).
func uniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}
	return ""
}

// storageErr traduce fallos de conectividad a ErrStorageUnavailable (condición
// transitoria para el llamador) y envuelve el resto con la operación.
func storageErr(op string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.ErrStorageUnavailable
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return domain.ErrStorageUnavailable
	}
	return fmt.Errorf("%s: %w", op, err)
}
