package dto

// ErrorResponse cuerpo de error HTTP: código estable para máquinas + mensaje para humanos.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de confirmación simple.
type MessageResponse struct {
	Message string `json:"message"`
}

// notAvailable valor mostrado cuando una referencia apunta a un principal eliminado.
const notAvailable = "N/A"
