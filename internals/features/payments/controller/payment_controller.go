// file: internals/features/payments/controller/payment_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"klubku_backend/internals/configs"
	"klubku_backend/internals/constants"
	memberModel "klubku_backend/internals/features/clubs/members/model"
	appModel "klubku_backend/internals/features/enrollments/applications/model"
	dto "klubku_backend/internals/features/payments/dto"
	model "klubku_backend/internals/features/payments/model"
	helper "klubku_backend/internals/helpers"
	helperAuth "klubku_backend/internals/helpers/auth"
)

type PaymentController struct {
	DB *gorm.DB
}

func parseApplicationIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("application_id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "application_id path tidak valid")
	}
	return id, nil
}

func reviewerRelationship(tx *gorm.DB, clubID, userID uuid.UUID) (string, error) {
	var member memberModel.ClubMemberModel
	err := tx.
		Where("club_member_club_id = ? AND club_member_user_id = ?", clubID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return member.ClubMemberRelationship, nil
}

// lockPayment mengambil payment row FOR UPDATE via application id.
func lockPayment(tx *gorm.DB, appID uuid.UUID) (*model.PaymentModel, *appModel.ApplicationModel, error) {
	var app appModel.ApplicationModel
	if err := tx.Where("application_id = ?", appID).First(&app).Error; err != nil {
		return nil, nil, err
	}
	var pay model.PaymentModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_application_id = ?", appID).
		First(&pay).Error; err != nil {
		return nil, nil, err
	}
	return &pay, &app, nil
}

/* ======================================================
   SUBMIT EVIDENCE — POST /api/u/applications/:application_id/payment/evidence
   multipart: file "evidence_image" + field amount/bank_name/note
====================================================== */

func (ctl *PaymentController) SubmitEvidence(c *fiber.Ctx) error {
	appID, err := parseApplicationIDParam(c)
	if err != nil {
		return err
	}
	subjectID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.SubmitEvidenceRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Normalize()
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	fileHeader, err := c.FormFile("evidence_image")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"evidence_image": {"file bukti wajib di-upload"}})
	}

	payloadMap := fiber.Map{}
	if body.Amount != nil {
		payloadMap["amount"] = *body.Amount
	}
	if body.BankName != nil {
		payloadMap["bank_name"] = *body.BankName
	}
	if body.Note != nil {
		payloadMap["note"] = *body.Note
	}
	payloadBytes, _ := json.Marshal(payloadMap)

	tx := ctl.DB.WithContext(c.Context()).Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to start transaction")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	pay, app, err := lockPayment(tx, appID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment record tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load payment")
	}
	if app.ApplicationSubjectID != subjectID {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusForbidden, "Hanya pemilik application yang boleh submit bukti")
	}

	// state guard dulu, baru simpan file — submit yang ditolak tidak boleh
	// meninggalkan file yatim di evidence dir
	if !pay.CanSubmitEvidence() {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, helper.ErrCodeInvalidTransition,
			"Bukti hanya bisa dikirim saat status unpaid/rejected")
	}

	evidenceURL, err := helper.SaveEvidenceImage(configs.EvidenceDir, configs.EvidenceBaseURL, fileHeader)
	if err != nil {
		tx.Rollback()
		log.Printf("[PaymentSubmit] save image failed: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := pay.SubmitEvidence(evidenceURL, datatypes.JSON(payloadBytes), time.Now()); err != nil {
		tx.Rollback()
		helper.RemoveEvidenceImage(configs.EvidenceDir, configs.EvidenceBaseURL, evidenceURL)
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, helper.ErrCodeInvalidTransition,
			"Bukti hanya bisa dikirim saat status unpaid/rejected")
	}

	if err := tx.Model(&model.PaymentModel{}).
		Where("payment_id = ?", pay.PaymentID).
		Updates(map[string]any{
			"payment_status":           pay.PaymentStatus,
			"payment_evidence_url":     pay.PaymentEvidenceURL,
			"payment_evidence_payload": pay.PaymentEvidencePayload,
			"payment_evidence_version": pay.PaymentEvidenceVersion,
			"payment_reject_reason":    nil,
			"payment_submitted_at":     pay.PaymentSubmittedAt,
		}).Error; err != nil {
		tx.Rollback()
		helper.RemoveEvidenceImage(configs.EvidenceDir, configs.EvidenceBaseURL, evidenceURL)
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update payment")
	}
	if err := tx.Commit().Error; err != nil {
		helper.RemoveEvidenceImage(configs.EvidenceDir, configs.EvidenceBaseURL, evidenceURL)
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	log.Printf("[PaymentSubmit] application_id=%s version=%d", appID, pay.PaymentEvidenceVersion)
	return helper.JsonUpdated(c, "Bukti pembayaran terkirim, menunggu review", dto.FromPaymentModel(pay))
}

/* ======================================================
   REVIEW — POST /api/a/clubs/:club_id/applications/:application_id/payment/review
====================================================== */

func (ctl *PaymentController) Review(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	appID, err := parseApplicationIDParam(c)
	if err != nil {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.ReviewRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Normalize()
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	tx := ctl.DB.WithContext(c.Context()).Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to start transaction")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	rel, err := reviewerRelationship(tx, clubID, reviewerID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load reviewer membership")
	}
	if !constants.IsReviewerRelationship(rel) {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("review pembayaran"))
	}

	pay, app, err := lockPayment(tx, appID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment record tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load payment")
	}
	if app.ApplicationClubID != clubID {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusNotFound, "Application bukan milik club ini")
	}

	now := time.Now()
	switch body.Decision {
	case "approve":
		err = pay.ReviewApprove(reviewerID, body.EvidenceVersion, now)
	case "reject":
		reason := ""
		if body.Reason != nil {
			reason = *body.Reason
		}
		err = pay.ReviewReject(reviewerID, body.EvidenceVersion, reason, now)
	}
	if err != nil {
		tx.Rollback()
		switch {
		case errors.Is(err, model.ErrReasonRequired):
			return helper.JsonValidationError(c, map[string][]string{"reason": {"wajib diisi untuk reject"}})
		case errors.Is(err, model.ErrStaleEvidence):
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeStaleState,
				"Bukti sudah diganti subject; re-fetch sebelum memutuskan")
		default:
			return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, helper.ErrCodeInvalidTransition,
				"Review hanya berlaku saat status pending")
		}
	}

	if err := tx.Model(&model.PaymentModel{}).
		Where("payment_id = ?", pay.PaymentID).
		Updates(map[string]any{
			"payment_status":        pay.PaymentStatus,
			"payment_reviewer_id":   pay.PaymentReviewerID,
			"payment_reject_reason": pay.PaymentRejectReason,
			"payment_reviewed_at":   pay.PaymentReviewedAt,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update payment")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	log.Printf("[PaymentReview] application_id=%s decision=%s status=%s", appID, body.Decision, pay.PaymentStatus)
	return helper.JsonUpdated(c, "Review pembayaran tersimpan", dto.FromPaymentModel(pay))
}

/* ======================================================
   SET MANUAL — POST /api/a/clubs/:club_id/applications/:application_id/payment/manual
====================================================== */

func (ctl *PaymentController) SetManually(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	appID, err := parseApplicationIDParam(c)
	if err != nil {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.SetManualRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Normalize()
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	tx := ctl.DB.WithContext(c.Context()).Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to start transaction")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	rel, err := reviewerRelationship(tx, clubID, reviewerID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load reviewer membership")
	}
	if !constants.IsReviewerRelationship(rel) {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("rekonsiliasi manual"))
	}

	pay, app, err := lockPayment(tx, appID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment record tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load payment")
	}
	if app.ApplicationClubID != clubID {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusNotFound, "Application bukan milik club ini")
	}

	if err := pay.SetManually(reviewerID, model.PaymentStatus(body.Target), time.Now()); err != nil {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, helper.ErrCodeInvalidTransition,
			"Manual override tidak berlaku dari status saat ini")
	}

	if err := tx.Model(&model.PaymentModel{}).
		Where("payment_id = ?", pay.PaymentID).
		Updates(map[string]any{
			"payment_status":      pay.PaymentStatus,
			"payment_reviewer_id": pay.PaymentReviewerID,
			"payment_reviewed_at": pay.PaymentReviewedAt,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update payment")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	log.Printf("[PaymentManual] application_id=%s target=%s by=%s", appID, body.Target, reviewerID)
	return helper.JsonUpdated(c, "Status pembayaran di-set manual", dto.FromPaymentModel(pay))
}

/* ======================================================
   REFUND — POST /api/a/clubs/:club_id/applications/:application_id/payment/refund
====================================================== */

func (ctl *PaymentController) Refund(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	appID, err := parseApplicationIDParam(c)
	if err != nil {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	tx := ctl.DB.WithContext(c.Context()).Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to start transaction")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	rel, err := reviewerRelationship(tx, clubID, reviewerID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load reviewer membership")
	}
	// refund administratif: khusus admin
	if rel != constants.RelationshipAdmin {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("refund"))
	}

	pay, app, err := lockPayment(tx, appID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment record tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load payment")
	}
	if app.ApplicationClubID != clubID {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusNotFound, "Application bukan milik club ini")
	}

	if err := pay.Refund(reviewerID, time.Now()); err != nil {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, helper.ErrCodeInvalidTransition,
			"Refund hanya berlaku dari status paid")
	}

	if err := tx.Model(&model.PaymentModel{}).
		Where("payment_id = ?", pay.PaymentID).
		Updates(map[string]any{
			"payment_status":      pay.PaymentStatus,
			"payment_reviewer_id": pay.PaymentReviewerID,
			"payment_refunded_at": pay.PaymentRefundedAt,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update payment")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	return helper.JsonUpdated(c, "Pembayaran di-refund", dto.FromPaymentModel(pay))
}

/* ======================================================
   GET — GET /api/u/applications/:application_id/payment
====================================================== */

func (ctl *PaymentController) GetByApplication(c *fiber.Ctx) error {
	appID, err := parseApplicationIDParam(c)
	if err != nil {
		return err
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	db := ctl.DB.WithContext(c.Context())
	var app appModel.ApplicationModel
	if err := db.Where("application_id = ?", appID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Application tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load application")
	}

	// boleh dilihat pemilik atau reviewer club
	if app.ApplicationSubjectID != userID {
		rel, err := reviewerRelationship(db, app.ApplicationClubID, userID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load membership")
		}
		if !constants.IsReviewerRelationship(rel) {
			return helper.JsonError(c, fiber.StatusForbidden, "Tidak berhak melihat payment ini")
		}
	}

	var pay model.PaymentModel
	if err := db.Where("payment_application_id = ?", appID).First(&pay).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment record tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load payment")
	}
	return helper.JsonOK(c, "payment detail", dto.FromPaymentModel(&pay))
}

func parseClubIDPath(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("club_id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "club_id path tidak valid")
	}
	return id, nil
}
