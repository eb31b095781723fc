// file: internals/features/leaves/model/leave_request_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveStatus string

const (
	LeaveRequested LeaveStatus = "requested"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeaveRequested, LeaveApproved, LeaveRejected:
		return true
	}
	return false
}

func (s LeaveStatus) Terminal() bool { return s == LeaveApproved || s == LeaveRejected }

var (
	ErrNotRequested   = errors.New("leave request sudah diproses")
	ErrSessionStarted = errors.New("sesi sudah dimulai, leave tidak bisa diajukan")
	ErrReasonRequired = errors.New("alasan penolakan wajib diisi")
	ErrNotSubject     = errors.New("bukan pemilik leave request")
)

// LeaveRequestModel: izin tidak hadir utk satu sesi pada satu enrollment.
type LeaveRequestModel struct {
	LeaveRequestID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:leave_request_id" json:"leave_request_id"`

	LeaveRequestClubID       uuid.UUID `gorm:"type:uuid;not null;column:leave_request_club_id;index:idx_leave_requests_club" json:"leave_request_club_id"`
	LeaveRequestCourseID     uuid.UUID `gorm:"type:uuid;not null;column:leave_request_course_id" json:"leave_request_course_id"`
	LeaveRequestSessionID    uuid.UUID `gorm:"type:uuid;not null;column:leave_request_session_id;index:idx_leave_requests_session" json:"leave_request_session_id"`
	LeaveRequestEnrollmentID uuid.UUID `gorm:"type:uuid;not null;column:leave_request_enrollment_id" json:"leave_request_enrollment_id"`
	LeaveRequestSubjectID    uuid.UUID `gorm:"type:uuid;not null;column:leave_request_subject_id;index:idx_leave_requests_subject" json:"leave_request_subject_id"`

	LeaveRequestStatus LeaveStatus `gorm:"type:varchar(16);not null;default:'requested';column:leave_request_status" json:"leave_request_status"`
	LeaveRequestReason *string     `gorm:"type:text;column:leave_request_reason" json:"leave_request_reason,omitempty"`

	// terisi hanya saat approve memberi sesi pengganti
	LeaveRequestMakeUpSessionID    *uuid.UUID `gorm:"type:uuid;column:leave_request_make_up_session_id" json:"leave_request_make_up_session_id,omitempty"`
	LeaveRequestMakeUpEnrollmentID *uuid.UUID `gorm:"type:uuid;column:leave_request_make_up_enrollment_id" json:"leave_request_make_up_enrollment_id,omitempty"`

	LeaveRequestResolverID *uuid.UUID `gorm:"type:uuid;column:leave_request_resolver_id" json:"leave_request_resolver_id,omitempty"`
	LeaveRequestRejectNote *string    `gorm:"type:text;column:leave_request_reject_note" json:"leave_request_reject_note,omitempty"`

	LeaveRequestRequestedAt time.Time  `gorm:"not null;default:now();column:leave_request_requested_at" json:"leave_request_requested_at"`
	LeaveRequestResolvedAt  *time.Time `gorm:"column:leave_request_resolved_at" json:"leave_request_resolved_at,omitempty"`

	LeaveRequestCreatedAt time.Time      `gorm:"not null;default:now();column:leave_request_created_at;autoCreateTime" json:"leave_request_created_at"`
	LeaveRequestUpdatedAt time.Time      `gorm:"not null;default:now();column:leave_request_updated_at;autoUpdateTime" json:"leave_request_updated_at"`
	LeaveRequestDeletedAt gorm.DeletedAt `gorm:"column:leave_request_deleted_at;index" json:"leave_request_deleted_at,omitempty"`
}

func (LeaveRequestModel) TableName() string { return "leave_requests" }

// GuardRequestable: pengecekan waktu sebelum row dibuat. Leave hanya
// boleh diajukan sebelum sesi dimulai.
func GuardRequestable(sessionStart, now time.Time) error {
	if !now.Before(sessionStart) {
		return ErrSessionStarted
	}
	return nil
}

// MarkApproved: requested → approved. makeUpSessionID boleh nil
// (approve tanpa sesi pengganti).
func (m *LeaveRequestModel) MarkApproved(resolverID uuid.UUID, makeUpSessionID *uuid.UUID, now time.Time) error {
	if m.LeaveRequestStatus != LeaveRequested {
		return ErrNotRequested
	}
	m.LeaveRequestStatus = LeaveApproved
	m.LeaveRequestResolverID = &resolverID
	m.LeaveRequestMakeUpSessionID = makeUpSessionID
	t := now
	m.LeaveRequestResolvedAt = &t
	return nil
}

// MarkRejected: requested → rejected, catatan wajib.
func (m *LeaveRequestModel) MarkRejected(resolverID uuid.UUID, note string, now time.Time) error {
	if m.LeaveRequestStatus != LeaveRequested {
		return ErrNotRequested
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return ErrReasonRequired
	}
	m.LeaveRequestStatus = LeaveRejected
	m.LeaveRequestResolverID = &resolverID
	m.LeaveRequestRejectNote = &note
	t := now
	m.LeaveRequestResolvedAt = &t
	return nil
}
