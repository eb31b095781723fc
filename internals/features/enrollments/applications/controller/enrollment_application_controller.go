// file: internals/features/enrollments/applications/controller/enrollment_application_controller.go
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

	"klubku_backend/internals/constants"
	courseModel "klubku_backend/internals/features/activities/courses/model"
	eventModel "klubku_backend/internals/features/activities/events/model"
	dto "klubku_backend/internals/features/enrollments/applications/dto"
	model "klubku_backend/internals/features/enrollments/applications/model"
	service "klubku_backend/internals/features/enrollments/applications/service"
	paymentModel "klubku_backend/internals/features/payments/model"
	helper "klubku_backend/internals/helpers"
	helperAuth "klubku_backend/internals/helpers/auth"
)

type EnrollmentApplicationController struct {
	DB *gorm.DB
}

// duplicate guard lintas kind enrollment: satu subject satu application aktif
// (pending/approved) per target.
func hasActiveApplication(tx *gorm.DB, clubID uuid.UUID, kind model.ApplicationKind, subjectID, targetID uuid.UUID) (bool, error) {
	var n int64
	err := tx.Model(&model.ApplicationModel{}).
		Where("application_club_id = ? AND application_kind = ? AND application_subject_id = ? AND application_target_id = ?",
			clubID, kind, subjectID, targetID).
		Where("application_status IN ?", []model.ApplicationStatus{model.ApplicationPending, model.ApplicationApproved}).
		Count(&n).Error
	return n > 0, err
}

func encodeRequestedSessions(ids []uuid.UUID) datatypes.JSON {
	if len(ids) == 0 {
		return nil
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func decodeRequestedSessions(raw datatypes.JSON) []uuid.UUID {
	if len(raw) == 0 {
		return nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}

// createEnrollmentApplication: jalur bersama ApplyToCourse / ApplyToEvent /
// AdminDirectEnroll. Status awal ditentukan caller.
func (ctl *EnrollmentApplicationController) createEnrollmentApplication(
	c *fiber.Ctx,
	clubID uuid.UUID,
	kind model.ApplicationKind,
	subjectID, targetID uuid.UUID,
	sessionIDs []uuid.UUID,
) error {
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

	// eligibility: harus member club (Membership Registry men-gate ledger)
	rel, err := relationshipInClubDB(tx, clubID, subjectID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check membership")
	}
	if rel == "" {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorMember("pendaftaran course/event"))
	}

	// target harus ada di club ini
	switch kind {
	case model.KindCourseEnrollment:
		var course courseModel.CourseModel
		if err := tx.Where("course_id = ? AND course_club_id = ?", targetID, clubID).First(&course).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan di club ini")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load course")
		}
	case model.KindEventApplication:
		var event eventModel.EventModel
		if err := tx.Where("event_id = ? AND event_club_id = ?", targetID, clubID).First(&event).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Event tidak ditemukan di club ini")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load event")
		}
	}

	dup, err := hasActiveApplication(tx, clubID, kind, subjectID, targetID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check duplicates")
	}
	if dup {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Masih ada pendaftaran aktif untuk target ini")
	}

	now := time.Now()
	app := model.ApplicationModel{
		ApplicationClubID:            clubID,
		ApplicationKind:              kind,
		ApplicationSubjectID:         subjectID,
		ApplicationTargetID:          targetID,
		ApplicationStatus:            model.ApplicationPending,
		ApplicationAppliedAt:         now,
		ApplicationRequestedSessions: encodeRequestedSessions(sessionIDs),
	}
	if err := tx.Create(&app).Error; err != nil {
		tx.Rollback()
		if helper.IsUniqueViolation(err) {
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Pendaftaran duplikat")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create application")
	}

	// payment track lahir bersama application (1:1, mulai unpaid)
	pay := paymentModel.PaymentModel{
		PaymentClubID:        clubID,
		PaymentApplicationID: app.ApplicationID,
		PaymentStatus:        paymentModel.PaymentUnpaid,
	}
	if err := tx.Create(&pay).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create payment record")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	log.Printf("[EnrollmentApply] club_id=%s kind=%s subject_id=%s target_id=%s application_id=%s",
		clubID, kind, subjectID, targetID, app.ApplicationID)
	return helper.JsonCreated(c, "Pendaftaran terkirim", dto.FromApplicationModel(&app))
}

/* ======================================================
   APPLY — POST /api/u/clubs/:club_id/courses/apply
           POST /api/u/clubs/:club_id/events/apply
====================================================== */

func (ctl *EnrollmentApplicationController) ApplyToCourse(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	subjectID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var body dto.ApplyEnrollmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	return ctl.createEnrollmentApplication(c, clubID, model.KindCourseEnrollment, subjectID, body.TargetID, body.SessionIDs)
}

func (ctl *EnrollmentApplicationController) ApplyToEvent(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	subjectID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var body dto.ApplyEnrollmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if fieldErrs := helper.ValidateStruct(&body); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	return ctl.createEnrollmentApplication(c, clubID, model.KindEventApplication, subjectID, body.TargetID, body.SessionIDs)
}

/* ======================================================
   ADMIN DIRECT ENROLL — POST /api/a/clubs/:club_id/courses/direct-enroll

   Untuk course offline/non-recurring: staff mendaftarkan subject dan
   langsung approve dalam satu transaksi (skip pending).
====================================================== */

func (ctl *EnrollmentApplicationController) AdminDirectEnroll(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var body dto.AdminDirectEnrollRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
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

	callerRel, err := relationshipInClubDB(tx, clubID, reviewerID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load reviewer membership")
	}
	if !constants.IsReviewerRelationship(callerRel) {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("direct enroll"))
	}

	var course courseModel.CourseModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("course_id = ? AND course_club_id = ?", body.TargetID, clubID).
		First(&course).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan di club ini")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load course")
	}
	if !course.CourseAllowsDirectEnroll {
		return rollbackWith(tx, c, fiber.StatusBadRequest, "Course ini tidak mengizinkan pendaftaran langsung")
	}

	dup, err := hasActiveApplication(tx, clubID, model.KindCourseEnrollment, body.SubjectID, body.TargetID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check duplicates")
	}
	if dup {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Subject masih punya pendaftaran aktif di course ini")
	}

	now := time.Now()
	app := model.ApplicationModel{
		ApplicationClubID:            clubID,
		ApplicationKind:              model.KindCourseEnrollment,
		ApplicationSubjectID:         body.SubjectID,
		ApplicationTargetID:          body.TargetID,
		ApplicationStatus:            model.ApplicationPending,
		ApplicationAppliedAt:         now,
		ApplicationRequestedSessions: encodeRequestedSessions(body.SessionIDs),
	}
	if err := tx.Create(&app).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create application")
	}
	pay := paymentModel.PaymentModel{
		PaymentClubID:        clubID,
		PaymentApplicationID: app.ApplicationID,
		PaymentStatus:        paymentModel.PaymentUnpaid,
	}
	if err := tx.Create(&pay).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create payment record")
	}

	enrollments, ferr := ctl.approveCourseLocked(tx, c, &app, &course, reviewerID, now)
	if ferr != nil {
		return ferr // sudah rollback + response
	}

	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}
	log.Printf("[DirectEnroll] application_id=%s subject_id=%s course_id=%s sessions=%d",
		app.ApplicationID, body.SubjectID, body.TargetID, len(enrollments))
	return helper.JsonCreated(c, "Subject terdaftar langsung", dto.ApproveEnrollmentResponse{
		Application: dto.FromApplicationModel(&app),
		Enrollments: dto.FromSessionEnrollmentModels(enrollments),
	})
}

func rollbackWith(tx *gorm.DB, c *fiber.Ctx, status int, msg string) error {
	tx.Rollback()
	return helper.JsonError(c, status, msg)
}

/* ======================================================
   APPROVE — POST /api/a/clubs/:club_id/enrollments/:id/approve
====================================================== */

// approveCourseLocked: course row SUDAH terkunci FOR UPDATE oleh caller.
// Cek kapasitas terhadap approved_count live, materialize sesi, naikkan
// counter. Return error berarti response sudah dikirim dan tx di-rollback.
func (ctl *EnrollmentApplicationController) approveCourseLocked(
	tx *gorm.DB,
	c *fiber.Ctx,
	app *model.ApplicationModel,
	course *courseModel.CourseModel,
	reviewerID uuid.UUID,
	now time.Time,
) ([]model.SessionEnrollmentModel, error) {
	if !course.HasApproveCapacity() {
		tx.Rollback()
		return nil, helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeCapacityExceeded, "Kapasitas course sudah penuh")
	}

	if err := app.MarkApproved(reviewerID, now); err != nil {
		tx.Rollback()
		return nil, helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeStaleState, "Application sudah diproses reviewer lain; silakan re-fetch")
	}

	var sessions []courseModel.CourseSessionModel
	if err := tx.
		Where("course_session_course_id = ?", course.CourseID).
		Order("course_session_start_time ASC").
		Find(&sessions).Error; err != nil {
		tx.Rollback()
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "failed to load sessions")
	}

	picked, err := service.PickCourseSessions(
		sessions,
		app.ApplicationAppliedAt,
		course.CourseMinConsecutiveSessions,
		course.CourseIsRecurring,
		decodeRequestedSessions(app.ApplicationRequestedSessions),
	)
	if err != nil {
		tx.Rollback()
		return nil, helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	rows := service.BuildSessionEnrollments(app, picked)
	if err := tx.Create(&rows).Error; err != nil {
		tx.Rollback()
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "failed to create enrollments")
	}

	if err := tx.Model(&model.ApplicationModel{}).
		Where("application_id = ?", app.ApplicationID).
		Updates(map[string]any{
			"application_status":      app.ApplicationStatus,
			"application_reviewer_id": app.ApplicationReviewerID,
			"application_approved_at": app.ApplicationApprovedAt,
		}).Error; err != nil {
		tx.Rollback()
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "failed to update application")
	}

	if err := tx.Model(&courseModel.CourseModel{}).
		Where("course_id = ?", course.CourseID).
		Update("course_approved_count", gorm.Expr("course_approved_count + 1")).Error; err != nil {
		tx.Rollback()
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "failed to bump approved count")
	}
	sessionIDs := make([]uuid.UUID, 0, len(picked))
	for _, s := range picked {
		sessionIDs = append(sessionIDs, s.CourseSessionID)
	}
	if err := tx.Model(&courseModel.CourseSessionModel{}).
		Where("course_session_id IN ?", sessionIDs).
		Update("course_session_enrolled_count", gorm.Expr("course_session_enrolled_count + 1")).Error; err != nil {
		tx.Rollback()
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "failed to bump session counters")
	}

	return rows, nil
}

func (ctl *EnrollmentApplicationController) Approve(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	appID, err := parseApplicationIDPath(c)
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

	callerRel, err := relationshipInClubDB(tx, clubID, reviewerID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load reviewer membership")
	}
	if !constants.IsReviewerRelationship(callerRel) {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("approve pendaftaran"))
	}

	var app model.ApplicationModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ? AND application_club_id = ?", appID, clubID).
		Where("application_kind IN ?", []model.ApplicationKind{model.KindCourseEnrollment, model.KindEventApplication}).
		First(&app).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Application tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load application")
	}

	now := time.Now()

	if app.ApplicationKind == model.KindCourseEnrollment {
		var course courseModel.CourseModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("course_id = ?", app.ApplicationTargetID).
			First(&course).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load course")
		}
		rows, ferr := ctl.approveCourseLocked(tx, c, &app, &course, reviewerID, now)
		if ferr != nil {
			return ferr
		}
		if err := tx.Commit().Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
		}
		log.Printf("[EnrollmentApprove] application_id=%s reviewer_id=%s sessions=%d", appID, reviewerID, len(rows))
		return helper.JsonUpdated(c, "Pendaftaran di-approve", dto.ApproveEnrollmentResponse{
			Application: dto.FromApplicationModel(&app),
			Enrollments: dto.FromSessionEnrollmentModels(rows),
		})
	}

	// event: kapasitas di level event, enrollment per sesi event
	var event eventModel.EventModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ?", app.ApplicationTargetID).
		First(&event).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load event")
	}
	if !event.HasApproveCapacity() {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeCapacityExceeded, "Kapasitas event sudah penuh")
	}
	if err := app.MarkApproved(reviewerID, now); err != nil {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeStaleState, "Application sudah diproses reviewer lain; silakan re-fetch")
	}

	var eventSessions []eventModel.EventSessionModel
	if err := tx.
		Where("event_session_event_id = ?", event.EventID).
		Order("event_session_start_time ASC").
		Find(&eventSessions).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load event sessions")
	}
	rows := make([]model.SessionEnrollmentModel, 0, len(eventSessions))
	for _, s := range eventSessions {
		rows = append(rows, model.SessionEnrollmentModel{
			SessionEnrollmentClubID:        app.ApplicationClubID,
			SessionEnrollmentApplicationID: app.ApplicationID,
			SessionEnrollmentSubjectID:     app.ApplicationSubjectID,
			SessionEnrollmentTargetID:      app.ApplicationTargetID,
			SessionEnrollmentSessionID:     s.EventSessionID,
			SessionEnrollmentFromTime:      s.EventSessionStartTime,
			SessionEnrollmentToTime:        s.EventSessionEndTime,
			SessionEnrollmentStatus:        model.SessionEnrollmentActive,
		})
	}
	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create enrollments")
		}
	}

	if err := tx.Model(&model.ApplicationModel{}).
		Where("application_id = ?", app.ApplicationID).
		Updates(map[string]any{
			"application_status":      app.ApplicationStatus,
			"application_reviewer_id": app.ApplicationReviewerID,
			"application_approved_at": app.ApplicationApprovedAt,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update application")
	}
	if err := tx.Model(&eventModel.EventModel{}).
		Where("event_id = ?", event.EventID).
		Update("event_approved_count", gorm.Expr("event_approved_count + 1")).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to bump approved count")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	log.Printf("[EnrollmentApprove] application_id=%s reviewer_id=%s sessions=%d", appID, reviewerID, len(rows))
	return helper.JsonUpdated(c, "Pendaftaran di-approve", dto.ApproveEnrollmentResponse{
		Application: dto.FromApplicationModel(&app),
		Enrollments: dto.FromSessionEnrollmentModels(rows),
	})
}

/* ======================================================
   REJECT — POST /api/a/clubs/:club_id/enrollments/:id/reject
====================================================== */

func (ctl *EnrollmentApplicationController) Reject(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	appID, err := parseApplicationIDPath(c)
	if err != nil {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.RejectRequest
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

	callerRel, err := relationshipInClubDB(tx, clubID, reviewerID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load reviewer membership")
	}
	if !constants.IsReviewerRelationship(callerRel) {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("reject pendaftaran"))
	}

	var app model.ApplicationModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ? AND application_club_id = ?", appID, clubID).
		Where("application_kind IN ?", []model.ApplicationKind{model.KindCourseEnrollment, model.KindEventApplication}).
		First(&app).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Application tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load application")
	}

	if err := app.MarkRejected(reviewerID, body.Reason, time.Now()); err != nil {
		tx.Rollback()
		if errors.Is(err, model.ErrReasonRequired) {
			return helper.JsonValidationError(c, map[string][]string{"reason": {"wajib diisi"}})
		}
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeStaleState, "Application sudah diproses reviewer lain; silakan re-fetch")
	}

	if err := tx.Model(&model.ApplicationModel{}).
		Where("application_id = ?", app.ApplicationID).
		Updates(map[string]any{
			"application_status":        app.ApplicationStatus,
			"application_reviewer_id":   app.ApplicationReviewerID,
			"application_reject_reason": app.ApplicationRejectReason,
			"application_rejected_at":   app.ApplicationRejectedAt,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update application")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}
	return helper.JsonUpdated(c, "Pendaftaran ditolak", dto.FromApplicationModel(&app))
}

/* ======================================================
   LIST MINE — GET /api/u/clubs/:club_id/enrollments
====================================================== */

func (ctl *EnrollmentApplicationController) ListMine(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	subjectID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.WithContext(c.Context()).
		Model(&model.ApplicationModel{}).
		Where("application_club_id = ? AND application_subject_id = ?", clubID, subjectID).
		Where("application_kind IN ?", []model.ApplicationKind{model.KindCourseEnrollment, model.KindEventApplication})

	if s := strings.TrimSpace(c.Query("status")); s != "" {
		st := model.ApplicationStatus(strings.ToLower(s))
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "status filter tidak valid")
		}
		q = q.Where("application_status = ?", st)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count applications")
	}
	var rows []model.ApplicationModel
	if err := q.Order("application_applied_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list applications")
	}

	out := make([]dto.ApplicationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromApplicationModel(&rows[i]))
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "daftar pendaftaran saya", out, &p)
}

/* ======================================================
   MY SESSION ENROLLMENTS — GET /api/u/clubs/:club_id/session-enrollments
====================================================== */

func (ctl *EnrollmentApplicationController) ListMySessionEnrollments(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	subjectID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.SessionEnrollmentModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("session_enrollment_club_id = ? AND session_enrollment_subject_id = ?", clubID, subjectID).
		Order("session_enrollment_from_time ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list enrollments")
	}
	return helper.JsonOK(c, "daftar sesi saya", dto.FromSessionEnrollmentModels(rows))
}
