// file: internals/features/attendance/route/attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "klubku_backend/internals/features/attendance/controller"
	featuresMw "klubku_backend/internals/middlewares/features"
)

// AttendanceAdminRoutes:
//   POST /api/a/clubs/:club_id/attendance
//   GET  /api/a/clubs/:club_id/sessions/:session_id/attendance
func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &attendanceController.AttendanceController{DB: db}

	club := r.Group("/clubs/:club_id", featuresMw.IsClubReviewer())
	club.Post("/attendance", ctl.SetAttendance)
	club.Get("/sessions/:session_id/attendance", ctl.SessionRoster)
}
