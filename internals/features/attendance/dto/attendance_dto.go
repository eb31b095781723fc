// file: internals/features/attendance/dto/attendance_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "klubku_backend/internals/features/attendance/model"
)

type SetAttendanceRequest struct {
	SessionID    uuid.UUID `json:"session_id" validate:"required"`
	EnrollmentID uuid.UUID `json:"enrollment_id" validate:"required"`
	Status       string    `json:"status" validate:"required,oneof=unknown present absent"`
}

func (r *SetAttendanceRequest) Normalize() { r.Status = strings.ToLower(strings.TrimSpace(r.Status)) }

type AttendanceResponse struct {
	AttendanceRecordID           uuid.UUID              `json:"attendance_record_id"`
	AttendanceRecordSessionID    uuid.UUID              `json:"attendance_record_session_id"`
	AttendanceRecordEnrollmentID uuid.UUID              `json:"attendance_record_enrollment_id"`
	AttendanceRecordSubjectID    uuid.UUID              `json:"attendance_record_subject_id"`
	AttendanceRecordStatus       model.AttendanceStatus `json:"attendance_record_status"`
	AttendanceRecordMarkedBy     *uuid.UUID             `json:"attendance_record_marked_by,omitempty"`
	AttendanceRecordMarkedAt     *time.Time             `json:"attendance_record_marked_at,omitempty"`
}

func FromAttendanceModel(m *model.AttendanceRecordModel) AttendanceResponse {
	return AttendanceResponse{
		AttendanceRecordID:           m.AttendanceRecordID,
		AttendanceRecordSessionID:    m.AttendanceRecordSessionID,
		AttendanceRecordEnrollmentID: m.AttendanceRecordEnrollmentID,
		AttendanceRecordSubjectID:    m.AttendanceRecordSubjectID,
		AttendanceRecordStatus:       m.AttendanceRecordStatus,
		AttendanceRecordMarkedBy:     m.AttendanceRecordMarkedBy,
		AttendanceRecordMarkedAt:     m.AttendanceRecordMarkedAt,
	}
}

func FromAttendanceModels(ms []model.AttendanceRecordModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromAttendanceModel(&ms[i]))
	}
	return out
}
