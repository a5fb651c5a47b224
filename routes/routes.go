package routes

import (
	"net/http"

	"agromandi/admin"
	"agromandi/auth"
	"agromandi/cart"
	"agromandi/catalog"
	"agromandi/live"
	"agromandi/middleware"
	"agromandi/models"
	"agromandi/orders"
	"agromandi/profile"
	"agromandi/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/user/current", ratelim.RateLimit(auth.CurrentUser))
	router.POST("/api/logout/:userId", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddCartRoutes(router *httprouter.Router) {
	router.POST("/api/cart/add", middleware.Authenticate(cart.AddToCart))
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.GET("/api/cart/count", middleware.Authenticate(cart.CartCount))
	router.PATCH("/api/cart/:id", middleware.Authenticate(cart.UpdateCartItem))
	router.DELETE("/api/cart/remove/:id", middleware.Authenticate(cart.RemoveCartItem))
	router.DELETE("/api/cart/clear", middleware.Authenticate(cart.ClearCart))

	router.POST("/api/placeOrder", ratelim.RateLimit(middleware.Authenticate(cart.PlaceOrder)))
	router.GET("/api/orders/:orderId/receipt", middleware.Authenticate(cart.OrderReceipt))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.GET("/api/farmer/orders-history", middleware.Authenticate(middleware.RequireRole(models.RoleFarmer, orders.FarmerOrdersHistory)))
	router.GET("/api/buyer/orders-history", middleware.Authenticate(middleware.RequireRole(models.RoleBuyer, orders.BuyerOrdersHistory)))
	router.GET("/api/orders/:orderId", middleware.Authenticate(orders.GetOrder))
	router.PATCH("/api/orders/:orderId/status", middleware.Authenticate(orders.UpdateOrderStatus))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/farmerproducts", ratelim.RateLimit(catalog.GetFarmerProducts))
	router.GET("/api/productcategories", catalog.GetProductCategories)
	router.GET("/api/farmerproducts/:id", catalog.GetProduct)
	router.POST("/api/farmerproducts", middleware.Authenticate(middleware.RequireRole(models.RoleFarmer, catalog.CreateProduct)))
	router.PUT("/api/farmerproducts/:id", middleware.Authenticate(middleware.RequireRole(models.RoleFarmer, catalog.UpdateProduct)))
	router.DELETE("/api/farmerproducts/:id", middleware.Authenticate(middleware.RequireRole(models.RoleFarmer, catalog.DeleteProduct)))

	router.GET("/api/vehicles", ratelim.RateLimit(catalog.GetVehicles))
	router.GET("/api/vehicles/:id", catalog.GetVehicle)
	router.POST("/api/vehicles", middleware.Authenticate(middleware.RequireRole(models.RoleTransporter, catalog.CreateVehicle)))
	router.PUT("/api/vehicles/:id", middleware.Authenticate(middleware.RequireRole(models.RoleTransporter, catalog.UpdateVehicle)))
	router.DELETE("/api/vehicles/:id", middleware.Authenticate(middleware.RequireRole(models.RoleTransporter, catalog.DeleteVehicle)))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.UpdateProfile))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/orders", middleware.Authenticate(middleware.RequireRole(models.RoleAdmin, admin.GetOrders)))
	router.GET("/api/admin/orders/:orderId", middleware.Authenticate(middleware.RequireRole(models.RoleAdmin, admin.GetOrderDetail)))
	router.GET("/api/admin/users", middleware.Authenticate(middleware.RequireRole(models.RoleAdmin, admin.GetUsers)))
	router.PATCH("/api/admin/users/:userId/role", middleware.Authenticate(middleware.RequireRole(models.RoleAdmin, admin.UpdateUserRole)))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/orders/:userid", live.OrderFeed(hub))
}
