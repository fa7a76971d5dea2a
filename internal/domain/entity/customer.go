package entity

import "time"

// Customer representa un vehículo/propietario registrado, identificado por su QR/VIN.
// Se crea una sola vez junto con su orden y es inmutable después.
type Customer struct {
	ID           string
	Name         string
	Email        string
	Mobile       string
	VehicleNo    string
	ModelName    string
	DriverMobile string
	QrID         string // único global entre todos los customers
	SalesmanID   string // vendedor que lo registró; referencia débil (sin FK)
	CreatedAt    time.Time
}
