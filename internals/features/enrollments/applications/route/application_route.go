// file: internals/features/enrollments/applications/route/application_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	appController "klubku_backend/internals/features/enrollments/applications/controller"
	featuresMw "klubku_backend/internals/middlewares/features"
)

// ApplicationUserRoutes: aksi subject (member/calon member).
//   POST /api/u/clubs/:club_id/memberships/apply
//   POST /api/u/clubs/:club_id/applications/:id/cancel
//   POST /api/u/clubs/:club_id/courses/apply
//   POST /api/u/clubs/:club_id/events/apply
//   GET  /api/u/clubs/:club_id/enrollments
//   GET  /api/u/clubs/:club_id/session-enrollments
func ApplicationUserRoutes(r fiber.Router, db *gorm.DB) {
	membershipCtl := &appController.MembershipApplicationController{DB: db}
	enrollmentCtl := &appController.EnrollmentApplicationController{DB: db}

	// apply membership & cancel terbuka untuk calon member (belum punya klaim)
	club := r.Group("/clubs/:club_id")
	club.Post("/memberships/apply", membershipCtl.Apply)
	club.Post("/applications/:id/cancel", membershipCtl.Cancel)

	// pendaftaran course/event mensyaratkan klaim member (fast-path;
	// controller tetap cek row club_members)
	member := r.Group("/clubs/:club_id", featuresMw.IsClubMember())
	member.Post("/courses/apply", enrollmentCtl.ApplyToCourse)
	member.Post("/events/apply", enrollmentCtl.ApplyToEvent)
	member.Get("/enrollments", enrollmentCtl.ListMine)
	member.Get("/session-enrollments", enrollmentCtl.ListMySessionEnrollments)
}

// ApplicationAdminRoutes: aksi reviewer (admin/staff/coach; guard klaim di
// middleware, verifikasi final terhadap membership row di controller).
//   GET    /api/a/clubs/:club_id/memberships
//   POST   /api/a/clubs/:club_id/memberships/:id/approve
//   POST   /api/a/clubs/:club_id/memberships/:id/reject
//   DELETE /api/a/clubs/:club_id/members/:member_id
//   POST   /api/a/clubs/:club_id/enrollments/:id/approve
//   POST   /api/a/clubs/:club_id/enrollments/:id/reject
//   POST   /api/a/clubs/:club_id/courses/direct-enroll
func ApplicationAdminRoutes(r fiber.Router, db *gorm.DB) {
	membershipCtl := &appController.MembershipApplicationController{DB: db}
	enrollmentCtl := &appController.EnrollmentApplicationController{DB: db}

	club := r.Group("/clubs/:club_id", featuresMw.IsClubReviewer())
	club.Get("/memberships", membershipCtl.List)
	club.Post("/memberships/:id/approve", membershipCtl.Approve)
	club.Post("/memberships/:id/reject", membershipCtl.Reject)
	club.Delete("/members/:member_id", membershipCtl.RemoveMember)

	club.Post("/enrollments/:id/approve", enrollmentCtl.Approve)
	club.Post("/enrollments/:id/reject", enrollmentCtl.Reject)
	club.Post("/courses/direct-enroll", enrollmentCtl.AdminDirectEnroll)
}
