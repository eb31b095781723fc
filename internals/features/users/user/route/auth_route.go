// file: internals/features/users/user/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "klubku_backend/internals/features/users/user/controller"
	"klubku_backend/internals/middlewares"
)

// AuthRoutes: endpoint publik register/login/refresh.
//   /api/public/auth/register
//   /api/public/auth/login
//   /api/public/auth/refresh
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	authCtl := &userController.AuthController{DB: db}

	auth := r.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), authCtl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), authCtl.Login)
	auth.Post("/refresh", middlewares.LoginRateLimiter(), authCtl.Refresh)
}

// UserRoutes: endpoint user ber-JWT.
//   /api/u/users/me
//   /api/u/users/devices
func UserRoutes(r fiber.Router, db *gorm.DB) {
	authCtl := &userController.AuthController{DB: db}
	deviceCtl := &userController.DeviceController{DB: db}

	users := r.Group("/users")
	users.Get("/me", authCtl.Me)
	users.Post("/devices", deviceCtl.RegisterDevice)
}
