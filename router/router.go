package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dealstack/crm-backend/controllers"
	"github.com/dealstack/crm-backend/middlewares"
)

// SetupRouter builds the route table. Extra middleware (such as the
// global rate limiter) must be passed here so it registers before the
// routes; gin binds handler chains at registration time.
func SetupRouter(db *gorm.DB, middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middleware...)

	userCtrl := controllers.NewUserController(db)
	customerCtrl := controllers.NewCustomerController(db)
	worksheetCtrl := controllers.NewWorksheetController(db)
	invoiceCtrl := controllers.NewInvoiceController(db)
	orderCtrl := controllers.NewOrderController(db)
	ticketCtrl := controllers.NewTicketController(db)
	dashboardCtrl := controllers.NewDashboardController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api/v1")

	// Login/register sit behind the strict limiter
	public := api.Group("/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/auth/profile", userCtrl.GetProfile)
	auth.GET("/auth/users", userCtrl.GetAllUsers)
	auth.POST("/auth/logout", userCtrl.Logout)

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.PUT("/customers/:customer_id", customerCtrl.UpdateCustomer)
	auth.DELETE("/customers/:customer_id", middlewares.RequireRoles("admin"), customerCtrl.DeleteCustomer)

	// WORKSHEETS
	auth.GET("/worksheets", worksheetCtrl.GetAllWorksheets)
	auth.POST("/worksheets", worksheetCtrl.CreateWorksheet)
	auth.GET("/worksheets/:worksheet_id", worksheetCtrl.GetWorksheetByID)
	auth.PUT("/worksheets/:worksheet_id", worksheetCtrl.UpdateWorksheet)
	auth.DELETE("/worksheets/:worksheet_id", worksheetCtrl.DeleteWorksheet)

	// INVOICES
	auth.GET("/invoices", invoiceCtrl.GetAllInvoices)
	auth.POST("/invoices", invoiceCtrl.CreateInvoice)
	auth.GET("/invoices/:invoice_id", invoiceCtrl.GetInvoiceByID)
	auth.PUT("/invoices/:invoice_id", invoiceCtrl.UpdateInvoice)
	auth.DELETE("/invoices/:invoice_id", middlewares.RequireRoles("admin"), invoiceCtrl.DeleteInvoice)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PUT("/orders/:order_id", orderCtrl.UpdateOrder)
	auth.DELETE("/orders/:order_id", middlewares.RequireRoles("admin"), orderCtrl.DeleteOrder)

	// SUPPORT TICKETS
	auth.GET("/tickets", ticketCtrl.GetAllTickets)
	auth.POST("/tickets", ticketCtrl.CreateTicket)
	auth.GET("/tickets/:ticket_id", ticketCtrl.GetTicketByID)
	auth.PUT("/tickets/:ticket_id", ticketCtrl.UpdateTicket)
	auth.POST("/tickets/:ticket_id/messages", ticketCtrl.AddTicketMessage)
	auth.DELETE("/tickets/:ticket_id", middlewares.RequireRoles("admin"), ticketCtrl.DeleteTicket)

	// DASHBOARD
	auth.GET("/dashboard/stats", dashboardCtrl.GetDashboardStats)
	auth.GET("/dashboard/recent", dashboardCtrl.GetRecentActivity)

	return r
}
