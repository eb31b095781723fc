// file: internals/features/clubs/clubs/route/club_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	clubController "klubku_backend/internals/features/clubs/clubs/controller"
	featuresMw "klubku_backend/internals/middlewares/features"
)

// ClubPublicRoutes:
//   GET /api/public/clubs
//   GET /api/public/clubs/:club_id
//   GET /api/public/clubs/:club_id/teams
func ClubPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &clubController.ClubController{DB: db}

	clubs := r.Group("/clubs")
	clubs.Get("/", ctl.List)
	clubs.Get("/:club_id", ctl.Detail)
	clubs.Get("/:club_id/teams", ctl.ListTeams)
}

// ClubUserRoutes:
//   POST /api/u/clubs  (pembuat otomatis jadi admin)
func ClubUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &clubController.ClubController{DB: db}
	r.Post("/clubs", ctl.Create)
}

// ClubAdminRoutes:
//   PATCH /api/a/clubs/:club_id
//   POST  /api/a/clubs/:club_id/teams
func ClubAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &clubController.ClubController{DB: db}

	club := r.Group("/clubs/:club_id", featuresMw.IsClubAdmin())
	club.Patch("/", ctl.Update)
	club.Post("/teams", ctl.CreateTeam)
}
