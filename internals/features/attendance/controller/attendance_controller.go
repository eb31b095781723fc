// file: internals/features/attendance/controller/attendance_controller.go
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
	dto "klubku_backend/internals/features/attendance/dto"
	model "klubku_backend/internals/features/attendance/model"
	memberModel "klubku_backend/internals/features/clubs/members/model"
	enrollModel "klubku_backend/internals/features/enrollments/applications/model"
	helper "klubku_backend/internals/helpers"
	helperAuth "klubku_backend/internals/helpers/auth"
)

type AttendanceController struct {
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

/* ======================================================
   SET — POST /api/a/clubs/:club_id/attendance

   Roll-call oleh reviewer (admin/staff/coach). Record dibuat lazily
   saat pertama kali disentuh.
====================================================== */

func (ctl *AttendanceController) SetAttendance(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	markerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.SetAttendanceRequest
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

	var member memberModel.ClubMemberModel
	if err := tx.
		Where("club_member_club_id = ? AND club_member_user_id = ?", clubID, markerID).
		First(&member).Error; err != nil || !constants.IsReviewerRelationship(member.ClubMemberRelationship) {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("roll-call"))
	}

	// enrollment harus ada dan cocok dengan sesi
	var enr enrollModel.SessionEnrollmentModel
	if err := tx.
		Where("session_enrollment_id = ? AND session_enrollment_club_id = ?", body.EnrollmentID, clubID).
		Where("session_enrollment_session_id = ?", body.SessionID).
		First(&enr).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment untuk sesi ini tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load enrollment")
	}

	now := time.Now()
	target := model.AttendanceStatus(body.Status)

	var rec model.AttendanceRecordModel
	err = tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("attendance_record_session_id = ? AND attendance_record_enrollment_id = ?", body.SessionID, body.EnrollmentID).
		First(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec = model.AttendanceRecordModel{
			AttendanceRecordClubID:       clubID,
			AttendanceRecordSessionID:    body.SessionID,
			AttendanceRecordEnrollmentID: body.EnrollmentID,
			AttendanceRecordSubjectID:    enr.SessionEnrollmentSubjectID,
			AttendanceRecordStatus:       model.AttendanceUnknown,
		}
		if _, gerr := rec.SetRollCall(target, markerID, now); gerr != nil {
			tx.Rollback()
			return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, helper.ErrCodeInvalidTransition, gerr.Error())
		}
		if err := tx.Create(&rec).Error; err != nil {
			tx.Rollback()
			if helper.IsUniqueViolation(err) {
				return helper.JsonErrorCode(c, fiber.StatusConflict, helper.ErrCodeConflict, "Record attendance sedang diubah; coba lagi")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create attendance")
		}
	case err != nil:
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load attendance")
	default:
		changed, gerr := rec.SetRollCall(target, markerID, now)
		if gerr != nil {
			tx.Rollback()
			if errors.Is(gerr, model.ErrLeaveLocked) {
				return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, helper.ErrCodeInvalidTransition,
					"Record leave milik sistem; roll-call ditolak")
			}
			return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, helper.ErrCodeInvalidTransition, gerr.Error())
		}
		if changed {
			if err := tx.Model(&model.AttendanceRecordModel{}).
				Where("attendance_record_id = ?", rec.AttendanceRecordID).
				Updates(map[string]any{
					"attendance_record_status":    rec.AttendanceRecordStatus,
					"attendance_record_marked_by": rec.AttendanceRecordMarkedBy,
					"attendance_record_marked_at": rec.AttendanceRecordMarkedAt,
				}).Error; err != nil {
				tx.Rollback()
				return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update attendance")
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to commit")
	}

	log.Printf("[Attendance] session_id=%s enrollment_id=%s status=%s by=%s",
		body.SessionID, body.EnrollmentID, rec.AttendanceRecordStatus, markerID)
	return helper.JsonUpdated(c, "Attendance tersimpan", dto.FromAttendanceModel(&rec))
}

/* ======================================================
   ROSTER — GET /api/a/clubs/:club_id/sessions/:session_id/attendance
====================================================== */

func (ctl *AttendanceController) SessionRoster(c *fiber.Ctx) error {
	clubID, err := parseClubIDPath(c)
	if err != nil {
		return err
	}
	rawSession := strings.TrimSpace(c.Params("session_id"))
	sessionID, err := uuid.Parse(rawSession)
	if err != nil || sessionID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "session_id path tidak valid")
	}

	var rows []model.AttendanceRecordModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("attendance_record_club_id = ? AND attendance_record_session_id = ?", clubID, sessionID).
		Order("attendance_record_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list attendance")
	}
	return helper.JsonOK(c, "attendance sesi", dto.FromAttendanceModels(rows))
}
