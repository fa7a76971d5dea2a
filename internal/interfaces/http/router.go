package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/qrgtech/qrguard-api/internal/application/auth"
	"github.com/qrgtech/qrguard-api/internal/application/usecase"
	"github.com/qrgtech/qrguard-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	OrderUC   *usecase.OrderUseCase
	StatsUC   *usecase.StatsUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/admin/login", authHandler.AdminLogin)
	authGroup.Post("/salesman/login", authHandler.SalesmanLogin)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.StatsUC)

	// Consulta pública por QR: sin autenticación, vista redactada sin pago
	orders.Get("/public/qr/:qrId", orderHandler.GetByQr)

	// Gestión de vendedores (solo admin)
	users := api.Group("/users", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/salesmen", userHandler.CreateSalesman)
	users.Get("/salesmen", userHandler.ListSalesmen)
	users.Get("/salesmen/:id", userHandler.GetSalesman)
	users.Delete("/salesmen/:id", userHandler.DeleteSalesman)

	// Rutas de órdenes protegidas (requieren Bearer Token)
	protected := orders.Group("/", AuthMiddleware(deps.JWTSecret))

	salesman := protected.Group("/salesman")
	salesman.Post("/orders", RequireRole(entity.RoleSalesman), orderHandler.Create)
	salesman.Get("/orders", RequireRole(entity.RoleSalesman), orderHandler.ListMine)
	salesman.Get("/orders/:id", RequireRole(entity.RoleSalesman), orderHandler.GetDetails)
	// Estadísticas: el propio vendedor o el admin (el use case verifica la identidad)
	salesman.Get("/:id/stats", RequireRole(entity.RoleSalesman, entity.RoleAdmin), orderHandler.SalesmanStats)

	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Get("/orders", orderHandler.ListAll)
	admin.Put("/orders/:id/status", orderHandler.UpdateStatus)
	admin.Get("/orders/:id", orderHandler.GetDetails)
}
