// file: internals/features/activities/events/route/event_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eventController "klubku_backend/internals/features/activities/events/controller"
	featuresMw "klubku_backend/internals/middlewares/features"
)

// EventPublicRoutes:
//   GET /api/public/clubs/:club_id/events
//   GET /api/public/clubs/:club_id/events/:event_id
//   GET /api/public/clubs/:club_id/events/:event_id/sessions
func EventPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &eventController.EventController{DB: db}

	club := r.Group("/clubs/:club_id/events")
	club.Get("/", ctl.List)
	club.Get("/:event_id", ctl.Detail)
	club.Get("/:event_id/sessions", ctl.ListSessions)
}

// EventAdminRoutes:
//   POST /api/a/clubs/:club_id/events
//   POST /api/a/clubs/:club_id/events/:event_id/sessions
func EventAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &eventController.EventController{DB: db}

	club := r.Group("/clubs/:club_id/events", featuresMw.IsClubAdmin())
	club.Post("/", ctl.Create)
	club.Post("/:event_id/sessions", ctl.CreateSession)
}
