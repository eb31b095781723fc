// file: internals/features/activities/courses/route/course_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "klubku_backend/internals/features/activities/courses/controller"
	featuresMw "klubku_backend/internals/middlewares/features"
)

// CoursePublicRoutes:
//   GET /api/public/clubs/:club_id/courses
//   GET /api/public/clubs/:club_id/courses/:course_id
//   GET /api/public/clubs/:club_id/courses/:course_id/sessions
func CoursePublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &courseController.CourseController{DB: db}

	club := r.Group("/clubs/:club_id/courses")
	club.Get("/", ctl.List)
	club.Get("/:course_id", ctl.Detail)
	club.Get("/:course_id/sessions", ctl.ListSessions)
}

// CourseAdminRoutes:
//   POST /api/a/clubs/:club_id/courses
//   POST /api/a/clubs/:club_id/courses/:course_id/sessions
func CourseAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &courseController.CourseController{DB: db}

	club := r.Group("/clubs/:club_id/courses", featuresMw.IsClubAdmin())
	club.Post("/", ctl.Create)
	club.Post("/:course_id/sessions", ctl.CreateSession)
}
