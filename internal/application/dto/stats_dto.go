package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsBlock conteos por estado más métricas derivadas del vendedor.
type StatsBlock struct {
	OrderCounts
	Revenue        decimal.Decimal `json:"revenue"`         // precio fijo × número de órdenes (métrica placeholder)
	CompletionRate int             `json:"completion_rate"` // round(100·(activated+processed)/total), 0 si total=0
}

// RecentOrderDTO resumen de una orden reciente para el panel del vendedor.
type RecentOrderDTO struct {
	ID             string    `json:"id"`
	QrID           string    `json:"qr_id"`
	CustomerName   string    `json:"customer_name"`
	CustomerMobile string    `json:"customer_mobile"`
	VehicleNo      string    `json:"vehicle_no"`
	Status         string    `json:"status"`
	PaymentMode    string    `json:"payment_mode"`
	CreatedAt      time.Time `json:"created_at"`
}

// MonthlyCount órdenes por mes calendario (nombre corto del mes).
type MonthlyCount struct {
	Month  string `json:"month"`
	Orders int    `json:"orders"`
}

// StatsSummary resumen agregado del vendedor.
type StatsSummary struct {
	ActiveOrders    int `json:"active_orders"`    // pending + accepted + processed
	CompletedOrders int `json:"completed_orders"` // activated
	SuccessRate     int `json:"success_rate"`     // round(100·activated/total), 0 si total=0
}

// SalesmanInfoDTO identificación del vendedor al que pertenecen las estadísticas.
type SalesmanInfoDTO struct {
	Name      string `json:"name"`
	DisplayID string `json:"display_id"`
	Email     string `json:"email,omitempty"`
	Mobile    string `json:"mobile"`
}

// SalesmanStatsResponse estadísticas agregadas de un vendedor.
type SalesmanStatsResponse struct {
	Stats        StatsBlock       `json:"stats"`
	RecentOrders []RecentOrderDTO `json:"recent_orders"`
	MonthlyStats []MonthlyCount   `json:"monthly_stats"`
	Summary      StatsSummary     `json:"summary"`
	SalesmanInfo *SalesmanInfoDTO `json:"salesman_info,omitempty"`
}
