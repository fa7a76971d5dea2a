package usecase

import (
	"context"
	"math"
	"time"

	"github.com/qrgtech/qrguard-api/internal/application/dto"
	"github.com/qrgtech/qrguard-api/internal/domain"
	"github.com/qrgtech/qrguard-api/internal/domain/entity"
	"github.com/qrgtech/qrguard-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const recentOrdersLimit = 5 // órdenes recientes en el panel del vendedor

// StatsUseCase estadísticas agregadas por vendedor.
//
// La métrica de ingresos es un múltiplo del número de órdenes a precio fijo:
// no existe un modelo real de precios por orden.
type StatsUseCase struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	unitPrice decimal.Decimal
}

// NewStatsUseCase construye el caso de uso. unitPrice es el precio fijo por orden.
func NewStatsUseCase(orderRepo repository.OrderRepository, userRepo repository.UserRepository, unitPrice int64) *StatsUseCase {
	return &StatsUseCase{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		unitPrice: decimal.NewFromInt(unitPrice),
	}
}

// SalesmanStats calcula las estadísticas del vendedor indicado.
// Autorizado solo para el propio vendedor o un admin.
// Con cero órdenes devuelve todos los conteos y tasas en 0 (sin división por cero).
func (uc *StatsUseCase) SalesmanStats(ctx context.Context, callerID, callerRole, salesmanID string) (*dto.SalesmanStatsResponse, error) {
	if callerRole != entity.RoleAdmin && callerID != salesmanID {
		return nil, domain.ErrForbidden
	}

	rows, err := uc.orderRepo.ListBySalesman(ctx, salesmanID)
	if err != nil {
		return nil, err
	}

	counts := countByStatus(rows)
	out := &dto.SalesmanStatsResponse{
		Stats: dto.StatsBlock{
			OrderCounts:    counts,
			Revenue:        uc.unitPrice.Mul(decimal.NewFromInt(int64(counts.Total))),
			CompletionRate: roundedRate(counts.Activated+counts.Processed, counts.Total),
		},
		RecentOrders: recentOrders(rows),
		MonthlyStats: monthlyCounts(rows),
		Summary: dto.StatsSummary{
			ActiveOrders:    counts.Pending + counts.Accepted + counts.Processed,
			CompletedOrders: counts.Activated,
			SuccessRate:     roundedRate(counts.Activated, counts.Total),
		},
	}

	salesman, err := uc.userRepo.GetByID(ctx, salesmanID)
	if err != nil {
		return nil, err
	}
	if salesman != nil {
		out.SalesmanInfo = &dto.SalesmanInfoDTO{
			Name:      salesman.Name,
			DisplayID: salesman.DisplayID,
			Email:     salesman.Email,
			Mobile:    salesman.Mobile,
		}
	}
	return out, nil
}

// roundedRate devuelve round(100·part/total), 0 cuando total es 0.
func roundedRate(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

// recentOrders toma las primeras N filas (ya vienen más reciente primero).
func recentOrders(rows []*repository.OrderWithRefs) []dto.RecentOrderDTO {
	n := len(rows)
	if n > recentOrdersLimit {
		n = recentOrdersLimit
	}
	out := make([]dto.RecentOrderDTO, 0, n)
	for _, row := range rows[:n] {
		out = append(out, dto.RecentOrderDTO{
			ID:             row.Order.ID,
			QrID:           row.Order.QrID,
			CustomerName:   row.Customer.Name,
			CustomerMobile: row.Customer.Mobile,
			VehicleNo:      row.Customer.VehicleNo,
			Status:         row.Order.Status,
			PaymentMode:    row.Order.Payment.Mode,
			CreatedAt:      row.Order.CreatedAt,
		})
	}
	return out
}

// monthlyCounts agrupa órdenes por mes calendario. El resultado va en orden
// calendario (Jan..Dec), no alfabético, e incluye solo meses con órdenes.
func monthlyCounts(rows []*repository.OrderWithRefs) []dto.MonthlyCount {
	byMonth := make(map[time.Month]int)
	for _, row := range rows {
		byMonth[row.Order.CreatedAt.Month()]++
	}
	out := make([]dto.MonthlyCount, 0, len(byMonth))
	for m := time.January; m <= time.December; m++ {
		if count, ok := byMonth[m]; ok {
			out = append(out, dto.MonthlyCount{Month: m.String()[:3], Orders: count})
		}
	}
	return out
}
