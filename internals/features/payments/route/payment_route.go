// file: internals/features/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "klubku_backend/internals/features/payments/controller"
	featuresMw "klubku_backend/internals/middlewares/features"
)

// PaymentUserRoutes: subject submit & lihat payment miliknya.
//   POST /api/u/applications/:application_id/payment/evidence
//   GET  /api/u/applications/:application_id/payment
func PaymentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &paymentController.PaymentController{DB: db}

	apps := r.Group("/applications/:application_id/payment")
	apps.Post("/evidence", ctl.SubmitEvidence)
	apps.Get("/", ctl.GetByApplication)
}

// PaymentAdminRoutes: review, rekonsiliasi manual, refund.
//   POST /api/a/clubs/:club_id/applications/:application_id/payment/review
//   POST /api/a/clubs/:club_id/applications/:application_id/payment/manual
//   POST /api/a/clubs/:club_id/applications/:application_id/payment/refund
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &paymentController.PaymentController{DB: db}

	club := r.Group("/clubs/:club_id", featuresMw.IsClubReviewer())
	club.Post("/applications/:application_id/payment/review", ctl.Review)
	club.Post("/applications/:application_id/payment/manual", ctl.SetManually)
	club.Post("/applications/:application_id/payment/refund", ctl.Refund)
}
