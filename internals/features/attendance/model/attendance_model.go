// file: internals/features/attendance/model/attendance_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendanceUnknown AttendanceStatus = "unknown"
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceUnknown, AttendancePresent, AttendanceAbsent, AttendanceLeave:
		return true
	}
	return false
}

var (
	ErrInvalidTransition = errors.New("transisi attendance tidak diizinkan")
	ErrLeaveLocked       = errors.New("attendance leave hanya ditulis sistem dan tidak bisa di-roll-call")
)

// AttendanceRecordModel: status roll-call per (session, enrollment).
type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordClubID       uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_club_id" json:"attendance_record_club_id"`
	AttendanceRecordSessionID    uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_session_id;uniqueIndex:ux_attendance_session_enrollment" json:"attendance_record_session_id"`
	AttendanceRecordEnrollmentID uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_enrollment_id;uniqueIndex:ux_attendance_session_enrollment" json:"attendance_record_enrollment_id"`
	AttendanceRecordSubjectID    uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_subject_id;index:idx_attendance_subject" json:"attendance_record_subject_id"`

	AttendanceRecordStatus AttendanceStatus `gorm:"type:varchar(16);not null;default:'unknown';column:attendance_record_status" json:"attendance_record_status"`

	// siapa yang terakhir roll-call (null utk tulisan sistem/leave)
	AttendanceRecordMarkedBy *uuid.UUID `gorm:"type:uuid;column:attendance_record_marked_by" json:"attendance_record_marked_by,omitempty"`
	AttendanceRecordMarkedAt *time.Time `gorm:"column:attendance_record_marked_at" json:"attendance_record_marked_at,omitempty"`

	AttendanceRecordCreatedAt time.Time      `gorm:"not null;default:now();column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time      `gorm:"not null;default:now();column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at"`
	AttendanceRecordDeletedAt gorm.DeletedAt `gorm:"column:attendance_record_deleted_at;index" json:"attendance_record_deleted_at,omitempty"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

/* ======================================================
   Tabel transisi roll-call

   unknown → present | absent
   present → unknown   (toggle off)
   absent  → unknown   (toggle off)
   X → X               (no-op, bukan error)
   leave   → apapun    (ditolak; leave milik sistem)
====================================================== */

// SetRollCall menerapkan aksi roll-call dari pengguna. Mengembalikan
// changed=false untuk no-op (set nilai yang sama).
func (m *AttendanceRecordModel) SetRollCall(target AttendanceStatus, markedBy uuid.UUID, now time.Time) (changed bool, err error) {
	if target != AttendanceUnknown && target != AttendancePresent && target != AttendanceAbsent {
		return false, ErrInvalidTransition
	}
	if m.AttendanceRecordStatus == AttendanceLeave {
		return false, ErrLeaveLocked
	}
	if m.AttendanceRecordStatus == target {
		return false, nil
	}
	// present ↔ absent langsung tidak ada di tabel transisi; harus lewat unknown
	if m.AttendanceRecordStatus != AttendanceUnknown && target != AttendanceUnknown {
		return false, ErrInvalidTransition
	}
	m.AttendanceRecordStatus = target
	m.AttendanceRecordMarkedBy = &markedBy
	t := now
	m.AttendanceRecordMarkedAt = &t
	return true, nil
}

// MarkLeave: tulisan sistem dari approval leave request. Idempotent.
func (m *AttendanceRecordModel) MarkLeave(now time.Time) {
	if m.AttendanceRecordStatus == AttendanceLeave {
		return
	}
	m.AttendanceRecordStatus = AttendanceLeave
	m.AttendanceRecordMarkedBy = nil
	t := now
	m.AttendanceRecordMarkedAt = &t
}
