// file: internals/features/leaves/route/leave_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	leaveController "klubku_backend/internals/features/leaves/controller"
	featuresMw "klubku_backend/internals/middlewares/features"
)

// LeaveUserRoutes:
//   POST /api/u/clubs/:club_id/leaves
//   GET  /api/u/clubs/:club_id/leaves
func LeaveUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &leaveController.LeaveController{DB: db}

	// klaim member = gerbang awal; controller memverifikasi enrollment row
	club := r.Group("/clubs/:club_id/leaves", featuresMw.IsClubMember())
	club.Post("/", ctl.RequestLeave)
	club.Get("/", ctl.ListMine)
}

// LeaveAdminRoutes:
//   GET  /api/a/clubs/:club_id/leaves
//   POST /api/a/clubs/:club_id/leaves/:id/approve
//   POST /api/a/clubs/:club_id/leaves/:id/reject
func LeaveAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &leaveController.LeaveController{DB: db}

	club := r.Group("/clubs/:club_id/leaves", featuresMw.IsClubReviewer())
	club.Get("/", ctl.List)
	club.Post("/:id/approve", ctl.ApproveLeave)
	club.Post("/:id/reject", ctl.RejectLeave)
}
