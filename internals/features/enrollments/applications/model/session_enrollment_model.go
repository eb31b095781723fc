// file: internals/features/enrollments/applications/model/session_enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionEnrollmentStatus string

const (
	SessionEnrollmentActive SessionEnrollmentStatus = "active"
	SessionEnrollmentLeave  SessionEnrollmentStatus = "leave"
)

// SessionEnrollmentModel mengikat satu Application approved ke satu sesi
// konkret. Tidak pernah ada row tanpa application induk yang approved.
type SessionEnrollmentModel struct {
	SessionEnrollmentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:session_enrollment_id" json:"session_enrollment_id"`

	// tenant & relations
	SessionEnrollmentClubID        uuid.UUID `gorm:"type:uuid;not null;column:session_enrollment_club_id" json:"session_enrollment_club_id"`
	SessionEnrollmentApplicationID uuid.UUID `gorm:"type:uuid;not null;column:session_enrollment_application_id;index:idx_session_enrollments_application" json:"session_enrollment_application_id"`
	SessionEnrollmentSubjectID     uuid.UUID `gorm:"type:uuid;not null;column:session_enrollment_subject_id;index:idx_session_enrollments_subject" json:"session_enrollment_subject_id"`
	SessionEnrollmentTargetID      uuid.UUID `gorm:"type:uuid;not null;column:session_enrollment_target_id" json:"session_enrollment_target_id"`
	SessionEnrollmentSessionID     uuid.UUID `gorm:"type:uuid;not null;column:session_enrollment_session_id;index:idx_session_enrollments_session" json:"session_enrollment_session_id"`

	// snapshot jadwal sesi saat enroll
	SessionEnrollmentFromTime time.Time `gorm:"not null;column:session_enrollment_from_time" json:"session_enrollment_from_time"`
	SessionEnrollmentToTime   time.Time `gorm:"not null;column:session_enrollment_to_time" json:"session_enrollment_to_time"`

	SessionEnrollmentStatus   SessionEnrollmentStatus `gorm:"type:varchar(16);not null;default:'active';column:session_enrollment_status" json:"session_enrollment_status"`
	SessionEnrollmentIsMakeUp bool                    `gorm:"not null;default:false;column:session_enrollment_is_make_up" json:"session_enrollment_is_make_up"`

	SessionEnrollmentCreatedAt time.Time      `gorm:"not null;default:now();column:session_enrollment_created_at;autoCreateTime" json:"session_enrollment_created_at"`
	SessionEnrollmentUpdatedAt time.Time      `gorm:"not null;default:now();column:session_enrollment_updated_at;autoUpdateTime" json:"session_enrollment_updated_at"`
	SessionEnrollmentDeletedAt gorm.DeletedAt `gorm:"column:session_enrollment_deleted_at;index" json:"session_enrollment_deleted_at,omitempty"`
}

func (SessionEnrollmentModel) TableName() string { return "session_enrollments" }
