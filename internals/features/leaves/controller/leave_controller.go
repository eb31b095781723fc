// file: internals/features/leaves/controller/leave_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"klubku_backend/internals/constants"
	courseModel "klubku_backend/internals/features/activities/courses/model"
	attendanceModel "klubku_backend/internals/features/attendance/model"
	memberModel "klubku_backend/internals/features/clubs/members/model"
	enrollModel "klubku_backend/internals/features/enrollments/applications/model"
	dto "klubku_backend/internals/features/leaves/dto"
	model "klubku_backend/internals/features/leaves/model"
	helper "klubku_backend/internals/helpers"
	helperAuth "klubku_backend/internals/helpers/auth"
)

type LeaveController struct {
	DB *gorm.DB
}

func parseClubIDPath(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("club_id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "club_id path tidak valid")
	}
	return id, nil
}

func parseLeaveIDPath(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "leave_request_id path tidak valid")
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

/* ======================================================
   REQUEST — POST /api/u/clubs/:club_id/leaves
====================================================== */

func (ctl *LeaveController) RequestLeave(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	subjectID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.RequestLeaveRequest
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

	// enrollment milik subject, masih active
	var enr enrollModel.SessionEnrollmentModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("session_enrollment_id = ? AND session_enrollment_club_id = ?", body.EnrollmentID, clubID).
		Where("session_enrollment_subject_id = ?", subjectID).
		First(&enr).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load enrollment")
	}
	if enr.SessionEnrollmentStatus != enrollModel.SessionEnrollmentActive {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Enrollment ini sudah berstatus leave")
	}

	now := time.Now()
	if err := model.GuardRequestable(enr.SessionEnrollmentFromTime, now); err != nil {
		tx.Rollback()
		return helper.JsonValidationError(c, map[string][]string{"enrollment_id": {"sesi sudah dimulai"}})
	}

	// satu leave outstanding per enrollment
	var outstanding int64
	if err := tx.Model(&model.LeaveRequestModel{}).
		Where("leave_request_enrollment_id = ? AND leave_request_status = ?", enr.SessionEnrollmentID, model.LeaveRequested).
		Count(&outstanding).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check outstanding leave")
	}
	if outstanding > 0 {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Masih ada leave request yang belum diproses untuk sesi ini")
	}

	lr := model.LeaveRequestModel{
		LeaveRequestClubID:       clubID,
		LeaveRequestCourseID:     enr.SessionEnrollmentTargetID,
		LeaveRequestSessionID:    enr.SessionEnrollmentSessionID,
		LeaveRequestEnrollmentID: enr.SessionEnrollmentID,
		LeaveRequestSubjectID:    subjectID,
		LeaveRequestStatus:       model.LeaveRequested,
		LeaveRequestReason:       body.Reason,
		LeaveRequestRequestedAt:  now,
	}
	if err := tx.Create(&lr).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create leave request")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	log.Printf("[LeaveRequest] enrollment_id=%s subject_id=%s leave_request_id=%s",
		enr.SessionEnrollmentID, subjectID, lr.LeaveRequestID)
	return helper.JsonCreated(c, "Leave request terkirim", dto.FromLeaveModel(&lr))
}

/* ======================================================
   APPROVE — POST /api/a/clubs/:club_id/leaves/:id/approve

   Side effects: attendance sesi asal → leave, enrollment asal → leave,
   dan (opsional) enrollment make-up baru. Jumlah sesi aktif subject
   tetap: satu terpakai sebagai leave, satu pengganti masuk.
====================================================== */

func (ctl *LeaveController) ApproveLeave(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	leaveID, err := parseLeaveIDPath(c)
	if err != nil {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.ApproveLeaveRequest
	_ = c.BodyParser(&body) // body opsional

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
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("approve leave"))
	}

	var lr model.LeaveRequestModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("leave_request_id = ? AND leave_request_club_id = ?", leaveID, clubID).
		First(&lr).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Leave request tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load leave request")
	}

	var enr enrollModel.SessionEnrollmentModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("session_enrollment_id = ?", lr.LeaveRequestEnrollmentID).
		First(&enr).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load enrollment")
	}

	now := time.Now()

	// make-up opsional: validasi sebelum state berubah
	var makeUp *courseModel.CourseSessionModel
	if body.MakeUpSessionID != nil {
		var s courseModel.CourseSessionModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("course_session_id = ?", *body.MakeUpSessionID).
			First(&s).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Sesi pengganti tidak ditemukan")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load make-up session")
		}
		if s.CourseSessionCourseID != lr.LeaveRequestCourseID {
			tx.Rollback()
			return helper.JsonValidationError(c, map[string][]string{"make_up_session_id": {"sesi pengganti harus dari course yang sama"}})
		}
		if !s.HasSeat() {
			tx.Rollback()
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeCapacityExceeded, "Sesi pengganti sudah penuh")
		}
		var already int64
		if err := tx.Model(&enrollModel.SessionEnrollmentModel{}).
			Where("session_enrollment_session_id = ? AND session_enrollment_subject_id = ?", s.CourseSessionID, lr.LeaveRequestSubjectID).
			Where("session_enrollment_status = ?", enrollModel.SessionEnrollmentActive).
			Count(&already).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check make-up enrollment")
		}
		if already > 0 {
			tx.Rollback()
			return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Subject sudah terdaftar di sesi pengganti")
		}
		makeUp = &s
	}

	if err := lr.MarkApproved(reviewerID, body.MakeUpSessionID, now); err != nil {
		tx.Rollback()
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeStaleState, "Leave request sudah diproses; silakan re-fetch")
	}

	// 1) enrollment asal → leave
	if err := tx.Model(&enrollModel.SessionEnrollmentModel{}).
		Where("session_enrollment_id = ?", enr.SessionEnrollmentID).
		Update("session_enrollment_status", enrollModel.SessionEnrollmentLeave).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to mark enrollment leave")
	}
	if err := tx.Model(&courseModel.CourseSessionModel{}).
		Where("course_session_id = ?", enr.SessionEnrollmentSessionID).
		Where("course_session_enrolled_count > 0").
		Update("course_session_enrolled_count", gorm.Expr("course_session_enrolled_count - 1")).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to release session slot")
	}

	// 2) attendance sesi asal → leave (tulisan sistem, menimpa roll-call)
	var att attendanceModel.AttendanceRecordModel
	err = tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("attendance_record_session_id = ? AND attendance_record_enrollment_id = ?",
			enr.SessionEnrollmentSessionID, enr.SessionEnrollmentID).
		First(&att).Error
	switch {
	case err == nil:
		att.MarkLeave(now)
		if err := tx.Model(&attendanceModel.AttendanceRecordModel{}).
			Where("attendance_record_id = ?", att.AttendanceRecordID).
			Updates(map[string]any{
				"attendance_record_status":    att.AttendanceRecordStatus,
				"attendance_record_marked_by": nil,
				"attendance_record_marked_at": att.AttendanceRecordMarkedAt,
			}).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update attendance")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		att = attendanceModel.AttendanceRecordModel{
			AttendanceRecordClubID:       clubID,
			AttendanceRecordSessionID:    enr.SessionEnrollmentSessionID,
			AttendanceRecordEnrollmentID: enr.SessionEnrollmentID,
			AttendanceRecordSubjectID:    lr.LeaveRequestSubjectID,
		}
		att.MarkLeave(now)
		if err := tx.Create(&att).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create attendance")
		}
	default:
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load attendance")
	}

	// 3) enrollment make-up
	var makeUpEnr *enrollModel.SessionEnrollmentModel
	if makeUp != nil {
		newEnr := enrollModel.SessionEnrollmentModel{
			SessionEnrollmentClubID:        enr.SessionEnrollmentClubID,
			SessionEnrollmentApplicationID: enr.SessionEnrollmentApplicationID,
			SessionEnrollmentSubjectID:     enr.SessionEnrollmentSubjectID,
			SessionEnrollmentTargetID:      enr.SessionEnrollmentTargetID,
			SessionEnrollmentSessionID:     makeUp.CourseSessionID,
			SessionEnrollmentFromTime:      makeUp.CourseSessionStartTime,
			SessionEnrollmentToTime:        makeUp.CourseSessionEndTime,
			SessionEnrollmentStatus:        enrollModel.SessionEnrollmentActive,
			SessionEnrollmentIsMakeUp:      true,
		}
		if err := tx.Create(&newEnr).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create make-up enrollment")
		}
		if err := tx.Model(&courseModel.CourseSessionModel{}).
			Where("course_session_id = ?", makeUp.CourseSessionID).
			Update("course_session_enrolled_count", gorm.Expr("course_session_enrolled_count + 1")).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to bump make-up counter")
		}
		makeUpEnrID := newEnr.SessionEnrollmentID
		lr.LeaveRequestMakeUpEnrollmentID = &makeUpEnrID
		makeUpEnr = &newEnr
	}

	if err := tx.Model(&model.LeaveRequestModel{}).
		Where("leave_request_id = ?", lr.LeaveRequestID).
		Updates(map[string]any{
			"leave_request_status":                lr.LeaveRequestStatus,
			"leave_request_resolver_id":           lr.LeaveRequestResolverID,
			"leave_request_make_up_session_id":    lr.LeaveRequestMakeUpSessionID,
			"leave_request_make_up_enrollment_id": lr.LeaveRequestMakeUpEnrollmentID,
			"leave_request_resolved_at":           lr.LeaveRequestResolvedAt,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update leave request")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	resp := fiber.Map{"leave_request": dto.FromLeaveModel(&lr)}
	if makeUpEnr != nil {
		resp["make_up_enrollment_id"] = makeUpEnr.SessionEnrollmentID
	}
	log.Printf("[LeaveApprove] leave_request_id=%s reviewer_id=%s make_up=%v", leaveID, reviewerID, body.MakeUpSessionID != nil)
	return helper.JsonUpdated(c, "Leave di-approve", resp)
}

/* ======================================================
   REJECT — POST /api/a/clubs/:club_id/leaves/:id/reject
   Tidak menyentuh enrollment/attendance sama sekali.
====================================================== */

func (ctl *LeaveController) RejectLeave(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	leaveID, err := parseLeaveIDPath(c)
	if err != nil {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.RejectLeaveRequest
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
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("reject leave"))
	}

	var lr model.LeaveRequestModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("leave_request_id = ? AND leave_request_club_id = ?", leaveID, clubID).
		First(&lr).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Leave request tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load leave request")
	}

	if err := lr.MarkRejected(reviewerID, body.Reason, time.Now()); err != nil {
		tx.Rollback()
		if errors.Is(err, model.ErrReasonRequired) {
			return helper.JsonValidationError(c, map[string][]string{"reason": {"wajib diisi"}})
		}
		return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeStaleState, "Leave request sudah diproses; silakan re-fetch")
	}

	if err := tx.Model(&model.LeaveRequestModel{}).
		Where("leave_request_id = ?", lr.LeaveRequestID).
		Updates(map[string]any{
			"leave_request_status":      lr.LeaveRequestStatus,
			"leave_request_resolver_id": lr.LeaveRequestResolverID,
			"leave_request_reject_note": lr.LeaveRequestRejectNote,
			"leave_request_resolved_at": lr.LeaveRequestResolvedAt,
		}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update leave request")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}
	return helper.JsonUpdated(c, "Leave ditolak", dto.FromLeaveModel(&lr))
}

/* ======================================================
   LIST — GET /api/a/clubs/:club_id/leaves
          GET /api/u/clubs/:club_id/leaves (punya sendiri)
====================================================== */

func (ctl *LeaveController) List(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.LeaveRequestModel{}).
		Where("leave_request_club_id = ?", clubID)
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		st := model.LeaveStatus(strings.ToLower(s))
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "status filter tidak valid")
		}
		q = q.Where("leave_request_status = ?", st)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count leave requests")
	}
	var rows []model.LeaveRequestModel
	if err := q.Order("leave_request_requested_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list leave requests")
	}
	out := make([]dto.LeaveResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromLeaveModel(&rows[i]))
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "daftar leave request", out, &p)
}

func (ctl *LeaveController) ListMine(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	subjectID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.LeaveRequestModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("leave_request_club_id = ? AND leave_request_subject_id = ?", clubID, subjectID).
		Order("leave_request_requested_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list leave requests")
	}
	out := make([]dto.LeaveResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromLeaveModel(&rows[i]))
	}
	return helper.JsonOK(c, "leave request saya", out)
}
