// file: internals/features/enrollments/applications/model/application_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ======================================================
   ENUM mapping (Postgres: application_kind / application_status)
====================================================== */

type ApplicationKind string

const (
	KindClubMembership   ApplicationKind = "club_membership"
	KindTeamMembership   ApplicationKind = "team_membership"
	KindCourseEnrollment ApplicationKind = "course_enrollment"
	KindEventApplication ApplicationKind = "event_application"
)

func (k ApplicationKind) Valid() bool {
	switch k {
	case KindClubMembership, KindTeamMembership, KindCourseEnrollment, KindEventApplication:
		return true
	}
	return false
}

// IsMembership: kind yang approval-nya men-stamp ClubRelationship.
func (k ApplicationKind) IsMembership() bool {
	return k == KindClubMembership || k == KindTeamMembership
}

// IsEnrollment: kind yang approval-nya materialize SessionEnrollment.
func (k ApplicationKind) IsEnrollment() bool {
	return k == KindCourseEnrollment || k == KindEventApplication
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
	ApplicationCanceled ApplicationStatus = "canceled"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected, ApplicationCanceled:
		return true
	}
	return false
}

// Terminal = tidak boleh ditransisikan lagi; record tetap tersimpan sebagai
// riwayat dan subject boleh mengajukan application baru untuk target yang sama.
func (s ApplicationStatus) Terminal() bool {
	return s != ApplicationPending
}

/* ======================================================
   Sentinel errors untuk guard transisi
====================================================== */

var (
	ErrNotPending     = errors.New("application tidak lagi berstatus pending")
	ErrReasonRequired = errors.New("reject reason wajib diisi")
	ErrNotSubject     = errors.New("hanya subject yang boleh cancel")
)

/* ======================================================
   Model: applications
====================================================== */

type ApplicationModel struct {
	ApplicationID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:application_id" json:"application_id"`

	// tenant & relations. Partial unique index = penjaga terakhir aturan
	// "maksimal satu application pending per (subject, target)": guard
	// pre-read di controller bisa lolos dua-duanya saat race, constraint ini
	// yang menggagalkan insert kedua (di-map ke 409 CONFLICT). Status lain
	// sengaja di luar predicate supaya riwayat tidak menghalangi re-apply.
	ApplicationClubID    uuid.UUID       `gorm:"type:uuid;not null;column:application_club_id;index:idx_applications_club;uniqueIndex:ux_applications_pending,where:application_status = 'pending'" json:"application_club_id"`
	ApplicationKind      ApplicationKind `gorm:"type:application_kind;not null;column:application_kind;uniqueIndex:ux_applications_pending,where:application_status = 'pending'" json:"application_kind"`
	ApplicationSubjectID uuid.UUID       `gorm:"type:uuid;not null;column:application_subject_id;index:idx_applications_subject;uniqueIndex:ux_applications_pending,where:application_status = 'pending'" json:"application_subject_id"`
	ApplicationTargetID  uuid.UUID       `gorm:"type:uuid;not null;column:application_target_id;index:idx_applications_target;uniqueIndex:ux_applications_pending,where:application_status = 'pending'" json:"application_target_id"`

	// status
	ApplicationStatus       ApplicationStatus `gorm:"type:application_status;not null;default:'pending';column:application_status" json:"application_status"`
	ApplicationRejectReason *string           `gorm:"type:text;column:application_reject_reason" json:"application_reject_reason,omitempty"`

	// relationship yang di-stamp saat membership di-approve (admin/staff/coach/player)
	ApplicationRelationship *string `gorm:"type:varchar(16);column:application_relationship" json:"application_relationship,omitempty"`

	// sesi yang diminta saat apply (course/event); dipakai saat materialize
	ApplicationRequestedSessions datatypes.JSON `gorm:"column:application_requested_sessions" json:"application_requested_sessions,omitempty"`

	// reviewer terakhir yang mengambil keputusan
	ApplicationReviewerID *uuid.UUID `gorm:"type:uuid;column:application_reviewer_id" json:"application_reviewer_id,omitempty"`

	// jejak waktu (audit)
	ApplicationAppliedAt  time.Time  `gorm:"not null;default:now();column:application_applied_at" json:"application_applied_at"`
	ApplicationApprovedAt *time.Time `gorm:"column:application_approved_at" json:"application_approved_at,omitempty"`
	ApplicationRejectedAt *time.Time `gorm:"column:application_rejected_at" json:"application_rejected_at,omitempty"`
	ApplicationCanceledAt *time.Time `gorm:"column:application_canceled_at" json:"application_canceled_at,omitempty"`

	ApplicationCreatedAt time.Time      `gorm:"not null;default:now();column:application_created_at;autoCreateTime" json:"application_created_at"`
	ApplicationUpdatedAt time.Time      `gorm:"not null;default:now();column:application_updated_at;autoUpdateTime" json:"application_updated_at"`
	ApplicationDeletedAt gorm.DeletedAt `gorm:"column:application_deleted_at;index" json:"application_deleted_at,omitempty"`
}

func (ApplicationModel) TableName() string { return "applications" }

/* ======================================================
   Guard transisi (pure, dipakai controller & service)
====================================================== */

// MarkApproved: pending → approved. Stamp reviewer + waktu.
func (m *ApplicationModel) MarkApproved(reviewerID uuid.UUID, now time.Time) error {
	if m.ApplicationStatus != ApplicationPending {
		return ErrNotPending
	}
	m.ApplicationStatus = ApplicationApproved
	m.ApplicationReviewerID = &reviewerID
	t := now
	m.ApplicationApprovedAt = &t
	return nil
}

// MarkRejected: pending → rejected, reason wajib.
func (m *ApplicationModel) MarkRejected(reviewerID uuid.UUID, reason string, now time.Time) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if m.ApplicationStatus != ApplicationPending {
		return ErrNotPending
	}
	m.ApplicationStatus = ApplicationRejected
	m.ApplicationReviewerID = &reviewerID
	m.ApplicationRejectReason = &reason
	t := now
	m.ApplicationRejectedAt = &t
	return nil
}

// MarkCanceled: pending → canceled, hanya oleh subject.
func (m *ApplicationModel) MarkCanceled(subjectID uuid.UUID, now time.Time) error {
	if m.ApplicationSubjectID != subjectID {
		return ErrNotSubject
	}
	if m.ApplicationStatus != ApplicationPending {
		return ErrNotPending
	}
	m.ApplicationStatus = ApplicationCanceled
	t := now
	m.ApplicationCanceledAt = &t
	return nil
}

// StampRelationship: dipanggil setelah MarkApproved untuk kind membership.
func (m *ApplicationModel) StampRelationship(rel string) {
	m.ApplicationRelationship = &rel
}
