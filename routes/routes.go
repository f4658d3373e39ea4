package routes

import (
	"fmt"
	"net/http"

	"restaurant/configs"
	"restaurant/controllers"
	"restaurant/entity"
	"restaurant/middlewares"
	"restaurant/pkg/metrics"
	"restaurant/services"
	"restaurant/web"
	"restaurant/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.FloorHub) error {
	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// Services
	userSvc := services.NewUserService(db)
	authSvc := services.NewAuthService(userSvc, cfg.JWTSecret, cfg.JWTTTL)
	customerSvc := services.NewCustomerService(db)
	menuSvc := services.NewMenuService(db)
	tableSvc := services.NewTableService(db, hub)
	orderSvc := services.NewOrderService(db, hub)
	reservationSvc := services.NewReservationService(db, hub)
	inventorySvc := services.NewInventoryService(db)
	dashboardSvc := services.NewDashboardService(db)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, cfg.CookieSecure)
	dashCtrl := controllers.NewDashboardController(dashboardSvc)
	customerCtrl := controllers.NewCustomerController(customerSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	tableCtrl := controllers.NewTableController(tableSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, tableSvc, customerSvc, menuSvc)
	reservationCtrl := controllers.NewReservationController(reservationSvc, tableSvc)
	inventoryCtrl := controllers.NewInventoryController(inventorySvc)
	apiCtrl := controllers.NewAPIController(menuSvc, tableSvc, customerSvc, orderSvc)
	healthCtrl := controllers.NewHealthController(db)

	r.GET("/health", healthCtrl.Check)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Public pages
	public := r.Group("/", middlewares.OptionalAuth(cfg.JWTSecret))
	{
		public.GET("/", authCtrl.Index)
		public.GET("/login", authCtrl.LoginPage)
		public.POST("/login", authCtrl.Login)
		public.GET("/register", authCtrl.RegisterPage)
		public.POST("/register", authCtrl.Register)
	}

	// Signed-in pages
	auth := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		auth.GET("/logout", authCtrl.Logout)
		auth.GET("/dashboard", dashCtrl.Show)
		auth.GET("/ws/tables", hub.HandleWebSocket)

		auth.GET("/customers", customerCtrl.List)
		auth.GET("/customers/add", customerCtrl.New)
		auth.POST("/customers/add", customerCtrl.Create)
		auth.GET("/customers/edit/:id", customerCtrl.Edit)
		auth.POST("/customers/edit/:id", customerCtrl.Update)
		auth.POST("/customers/delete/:id", customerCtrl.Delete)

		auth.GET("/menu", menuCtrl.List)
		auth.GET("/tables", tableCtrl.List)

		auth.GET("/orders", orderCtrl.List)
		auth.GET("/orders/add", orderCtrl.New)
		auth.POST("/orders/add", orderCtrl.Create)
		auth.GET("/orders/:id/items", orderCtrl.Items)
		auth.POST("/orders/:id/items", orderCtrl.AddItem)
		auth.POST("/orders/:id/items/:item_id/delete", orderCtrl.RemoveItem)
		auth.POST("/orders/:id/items/:item_id/status", orderCtrl.ItemStatus)
		auth.POST("/orders/:id/prepare", orderCtrl.Prepare)
		auth.POST("/orders/:id/serve", orderCtrl.Serve)
		auth.POST("/orders/:id/complete", orderCtrl.Complete)
		auth.POST("/orders/:id/cancel", orderCtrl.Cancel)
		auth.POST("/orders/:id/recalculate", orderCtrl.Recalculate)

		auth.GET("/reservations", reservationCtrl.List)
		auth.GET("/reservations/add", reservationCtrl.New)
		auth.POST("/reservations/add", reservationCtrl.Create)
		auth.GET("/reservations/edit/:id", reservationCtrl.Edit)
		auth.POST("/reservations/edit/:id", reservationCtrl.Update)
		auth.POST("/reservations/:id/status", reservationCtrl.SetStatus)
	}

	// Menu and floor plan (admin, manager)
	managers := auth.Group("/", middlewares.RequireRoles(entity.RoleAdmin, entity.RoleManager))
	{
		managers.GET("/menu/add", menuCtrl.New)
		managers.POST("/menu/add", menuCtrl.Create)
		managers.GET("/menu/edit/:id", menuCtrl.Edit)
		managers.POST("/menu/edit/:id", menuCtrl.Update)
		managers.POST("/menu/delete/:id", menuCtrl.Delete)

		managers.GET("/tables/add", tableCtrl.New)
		managers.POST("/tables/add", tableCtrl.Create)
		managers.GET("/tables/edit/:id", tableCtrl.Edit)
		managers.POST("/tables/edit/:id", tableCtrl.Update)
	}

	// Stock (admin, manager, chef)
	stock := auth.Group("/inventory", middlewares.RequireRoles(entity.RoleAdmin, entity.RoleManager, entity.RoleChef))
	{
		stock.GET("", inventoryCtrl.List)
		stock.GET("/add", inventoryCtrl.New)
		stock.POST("/add", inventoryCtrl.Create)
		stock.GET("/edit/:id", inventoryCtrl.Edit)
		stock.POST("/edit/:id", inventoryCtrl.Update)
		stock.POST("/delete/:id", inventoryCtrl.Delete)
	}

	// POS API
	limiter := middlewares.NewRateLimiter(cfg.APIRateLimit, cfg.APIRateBurst)
	api := r.Group("/api", middlewares.CORSMiddleware(), limiter.Handler())
	{
		api.GET("/menu", apiCtrl.ListMenu)
		api.GET("/tables", apiCtrl.ListTables)
		api.GET("/customers", apiCtrl.ListCustomers)
		api.POST("/orders", apiCtrl.CreateOrder)
		api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	return nil
}
