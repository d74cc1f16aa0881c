package router

import (
	"github.com/labstack/echo/v4"

	"miniMercado/internal/rest"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/:id", handler.GetUserByID, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired)
	users.DELETE("/:id", handler.DeleteUser, authRequired)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, authRequired)
	products.PUT("/:id", handler.UpdateProduct, authRequired)
	products.DELETE("/:id", handler.DeleteProduct, authRequired)
}

func SetupCartRoutes(api *echo.Group, handler *rest.CartHandler, authRequired echo.MiddlewareFunc) {
	carts := api.Group("/cart", authRequired)

	carts.POST("", handler.AddToCart)
	carts.GET("/:userId", handler.GetCart)
	carts.PUT("/:id", handler.UpdateCartItem)
	carts.DELETE("/:id", handler.RemoveCartItem)
	carts.DELETE("/user/:userId", handler.ClearCart)
}
