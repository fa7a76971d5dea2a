package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrOrderNotFound      = errors.New("orden no encontrada")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrForbidden          = errors.New("acceso denegado")

	// Conflictos de unicidad; cada uno nombra el campo en conflicto.
	ErrMobileAlreadyExists = errors.New("el móvil ya está registrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrAadharAlreadyExists = errors.New("el número de aadhar ya está registrado")
	ErrQrAlreadyRegistered = errors.New("el QR ya está registrado")

	ErrInvalidPayment = errors.New("datos de pago inválidos")
	ErrInvalidStatus  = errors.New("estado de orden inválido")

	// ErrStorageUnavailable es la única condición potencialmente transitoria:
	// el backend de persistencia no responde. Todo lo demás es terminal para la petición.
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
)
