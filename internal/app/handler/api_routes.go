package handler

import (
	"marketadmin/internal/app/ds"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes mounts the admin API under /api. Only login and
// register are reachable without an admin token.
func (h *Handler) RegisterAPIRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// ============ Auth (public) ============
	api.POST("/admin/login", h.AuthHandler.AdminLogin)
	api.POST("/admin/register", h.AuthHandler.AdminRegister)

	admin := api.Group("/admin")
	admin.Use(h.Auth.WithAuthCheck(ds.RoleAdmin))

	// ============ Users ============
	users := admin.Group("/users")
	{
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.PUT("/:id/password", h.UpdateUserPassword)
		users.DELETE("/:id", h.DeleteUser)
	}

	// ============ Categories ============
	categories := admin.Group("/categories")
	{
		categories.GET("", h.GetCategories)
		categories.GET("/:id", h.GetCategory)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	// ============ Products (multipart writes) ============
	products := admin.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}

	// ============ Payments ============
	payments := admin.Group("/payments")
	{
		payments.GET("/pending", h.GetPendingPayments)
		payments.GET("/:id", h.GetPayment)
		payments.PATCH("/:id/approve", h.ApprovePayment)
	}

	// ============ Orders and licenses ============
	orders := admin.Group("/orders")
	{
		orders.GET("", h.GetAllOrders)
		orders.GET("/paid", h.GetPaidOrders)
		orders.PATCH("/:id/license", h.UpdateLicenseRedeemed)
	}
	admin.POST("/licenses", h.CreateLicense)

	router.GET("/ping", h.Ping)
}

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}
