// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	klubMiddleware "klubku_backend/internals/middlewares/auth_club"

	attendanceRoute "klubku_backend/internals/features/attendance/route"
	courseRoute "klubku_backend/internals/features/activities/courses/route"
	eventRoute "klubku_backend/internals/features/activities/events/route"
	clubRoute "klubku_backend/internals/features/clubs/clubs/route"
	applicationRoute "klubku_backend/internals/features/enrollments/applications/route"
	leaveRoute "klubku_backend/internals/features/leaves/route"
	paymentRoute "klubku_backend/internals/features/payments/route"
	userRoute "klubku_backend/internals/features/users/user/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ===================== AUTH BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	userRoute.AuthRoutes(public, db)

	// PRIVATE (USER) → JWT wajib
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		klubMiddleware.AuthJWT(klubMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ADMIN (per klub) → JWT + cek relasi klub per route group
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		klubMiddleware.AuthJWT(klubMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting User routes...")
	userRoute.UserRoutes(private, db)

	log.Println("[INFO] Mounting Club routes...")
	clubRoute.ClubPublicRoutes(public, db)
	clubRoute.ClubUserRoutes(private, db)
	clubRoute.ClubAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Course routes...")
	courseRoute.CoursePublicRoutes(public, db)
	courseRoute.CourseAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Event routes...")
	eventRoute.EventPublicRoutes(public, db)
	eventRoute.EventAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Application routes...")
	applicationRoute.ApplicationUserRoutes(private, db)
	applicationRoute.ApplicationAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Payment routes...")
	paymentRoute.PaymentUserRoutes(private, db)
	paymentRoute.PaymentAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Leave routes...")
	leaveRoute.LeaveUserRoutes(private, db)
	leaveRoute.LeaveAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Attendance routes...")
	attendanceRoute.AttendanceAdminRoutes(admin, db)
}
